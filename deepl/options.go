package deepl

import (
	"fmt"

	"golang.org/x/text/language"
)

// Language is a source or target language code accepted by the translation
// API. The set of supported codes is closed; use ParseLanguage to turn
// arbitrary user input into a member of the set.
type Language string

const (
	English    Language = "en"
	German     Language = "de"
	French     Language = "fr"
	Spanish    Language = "es"
	Portuguese Language = "pt"
	Italian    Language = "it"
	Dutch      Language = "nl"
	Polish     Language = "pl"
	Russian    Language = "ru"
)

var supportedLanguages = []Language{
	English, German, French, Spanish, Portuguese, Italian, Dutch, Polish, Russian,
}

// Languages returns the closed set of supported language codes.
func Languages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

func (l Language) valid() bool {
	for _, s := range supportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

// ParseLanguage canonicalizes a language spelling such as "EN", "de" or
// "en-US" to a supported code. Regional subtags are reduced to their base
// language before the membership check.
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: unknown language %q", ErrInvalidConfig, s)
	}
	base, _ := tag.Base()
	l := Language(base.String())
	if !l.valid() {
		return "", fmt.Errorf("%w: unsupported language %q", ErrInvalidConfig, s)
	}
	return l, nil
}

// SentenceSplitting controls how the service splits input into sentences
// before translating. The zero value is the service default.
type SentenceSplitting int

const (
	// SplitAll splits on newlines and punctuation.
	SplitAll SentenceSplitting = iota
	// SplitNone disables sentence splitting.
	SplitNone
	// SplitNoNewlines splits on punctuation only.
	SplitNoNewlines
)

func (s SentenceSplitting) valid() bool {
	return s >= SplitAll && s <= SplitNoNewlines
}

func (s SentenceSplitting) wireValue() string {
	switch s {
	case SplitNone:
		return "0"
	case SplitNoNewlines:
		return "nonewlines"
	default:
		return "1"
	}
}

// Formatting controls whether the service preserves the formatting of the
// input text.
type Formatting int

const (
	FormatDiscard Formatting = iota
	FormatPreserve
)

func (f Formatting) valid() bool {
	return f == FormatDiscard || f == FormatPreserve
}

func (f Formatting) wireValue() string {
	if f == FormatPreserve {
		return "1"
	}
	return "0"
}

// TagHandling selects structured-markup handling. The zero value means the
// input is treated as plain text and no markup parameters are sent.
type TagHandling int

const (
	TagHandlingNone TagHandling = iota
	TagHandlingXML
)

func (t TagHandling) valid() bool {
	return t == TagHandlingNone || t == TagHandlingXML
}

func (t TagHandling) wireValue() string {
	if t == TagHandlingXML {
		return "xml"
	}
	return ""
}

// Outline controls automatic outline detection. Only meaningful when tag
// handling is active.
type Outline int

const (
	OutlineDetect Outline = iota
	OutlineIgnore
)

func (o Outline) valid() bool {
	return o == OutlineDetect || o == OutlineIgnore
}

func (o Outline) wireValue() string {
	if o == OutlineIgnore {
		return "0"
	}
	return "1"
}
