/*
Copyright © 2025 Mirko Lenz

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mirkolenz/deepl-pro/deepl"
)

var (
	inputFile string

	splitSentences     string
	preserveFormatting bool
	tagHandling        string
	outlineDetection   bool
	nonSplittingTags   []string
	splittingTags      []string
	ignoreTags         []string

	retryLimit   int
	retryTimeout time.Duration

	parallel bool
	workers  int
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]...",
	Short: "Translate one or more texts",
	Long: `Translate the argument texts, or the lines of --input, printing one
translation per line in input order.

Sentence splitting modes:
  all         split on newlines and punctuation (default)
  none        no splitting
  nonewlines  split on punctuation only

Markup handling:
  --tag-handling xml   treat the input as XML; --non-splitting-tags,
                       --splitting-tags and --ignore-tags refine how
                       individual tags are translated`,
	RunE: func(cmd *cobra.Command, args []string) error {
		texts := args
		if inputFile != "" {
			data, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			for _, line := range strings.Split(string(data), "\n") {
				if line = strings.TrimRight(line, "\r"); line != "" {
					texts = append(texts, line)
				}
			}
		}
		if len(texts) == 0 {
			return fmt.Errorf("no input text: pass arguments or --input")
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		logger := zap.NewNop()
		if verbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()
		}

		translator, err := deepl.New(cfg, logger)
		if err != nil {
			return err
		}

		results, err := translator.TranslateTexts(cmd.Context(), texts, parallel)
		if err != nil {
			return err
		}

		for _, result := range results {
			fmt.Println(result)
		}
		return nil
	},
}

// buildConfig maps the CLI flags onto a validated library configuration.
func buildConfig() (deepl.Config, error) {
	source, err := deepl.ParseLanguage(viper.GetString("source_lang"))
	if err != nil {
		return deepl.Config{}, err
	}
	target, err := deepl.ParseLanguage(viper.GetString("target_lang"))
	if err != nil {
		return deepl.Config{}, err
	}

	cfg := deepl.NewConfig(viper.GetString("auth_key"), source, target)
	cfg.RetryLimit = retryLimit
	cfg.RetryTimeout = retryTimeout
	cfg.Workers = workers
	cfg.NonSplittingTags = nonSplittingTags
	cfg.SplittingTags = splittingTags
	cfg.IgnoreTags = ignoreTags

	switch splitSentences {
	case "all":
		cfg.SplitSentences = deepl.SplitAll
	case "none":
		cfg.SplitSentences = deepl.SplitNone
	case "nonewlines":
		cfg.SplitSentences = deepl.SplitNoNewlines
	default:
		return deepl.Config{}, fmt.Errorf("unknown sentence splitting mode %q", splitSentences)
	}

	if preserveFormatting {
		cfg.PreserveFormatting = deepl.FormatPreserve
	}

	switch tagHandling {
	case "":
	case "xml":
		cfg.TagHandling = deepl.TagHandlingXML
	default:
		return deepl.Config{}, fmt.Errorf("unknown tag handling mode %q", tagHandling)
	}

	if !outlineDetection {
		cfg.OutlineDetection = deepl.OutlineIgnore
	}

	return cfg, nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "read texts from file, one per line")

	translateCmd.Flags().StringVar(&splitSentences, "split-sentences", "all", "sentence splitting mode (all, none, nonewlines)")
	translateCmd.Flags().BoolVar(&preserveFormatting, "preserve-formatting", false, "preserve formatting of the input text")
	translateCmd.Flags().StringVar(&tagHandling, "tag-handling", "", "markup handling mode (xml)")
	translateCmd.Flags().BoolVar(&outlineDetection, "outline-detection", true, "detect the XML outline automatically")
	translateCmd.Flags().StringSliceVar(&nonSplittingTags, "non-splitting-tags", nil, "tags that never split sentences")
	translateCmd.Flags().StringSliceVar(&splittingTags, "splitting-tags", nil, "tags that always split sentences")
	translateCmd.Flags().StringSliceVar(&ignoreTags, "ignore-tags", nil, "tags whose content is not translated")

	translateCmd.Flags().IntVar(&retryLimit, "retry-limit", deepl.DefaultRetryLimit, "maximum retries after a rate limit or outage")
	translateCmd.Flags().DurationVar(&retryTimeout, "retry-timeout", deepl.DefaultRetryTimeout, "delay between retries")

	translateCmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "translate texts concurrently")
	translateCmd.Flags().IntVar(&workers, "workers", 0, "worker count for --parallel (0 = one per CPU)")
}
