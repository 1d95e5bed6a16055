package deepl

import (
	"context"
	"sync"
)

// TranslateTexts translates texts and returns the results in input order.
// Sequential mode stops at the first failure. Parallel mode distributes the
// texts across a fixed worker pool; each text retries independently, and a
// failure in any worker fails the whole batch with no partial results.
func (t *Translator) TranslateTexts(ctx context.Context, texts []string, parallel bool) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	if parallel {
		return t.translateParallel(ctx, texts)
	}

	results := make([]string, len(texts))
	for i, text := range texts {
		translated, err := t.TranslateText(ctx, text)
		if err != nil {
			return nil, err
		}
		results[i] = translated
	}
	return results, nil
}

func (t *Translator) translateParallel(ctx context.Context, texts []string) ([]string, error) {
	type job struct {
		index int
		text  string
	}

	workers := t.workers
	if workers > len(texts) {
		workers = len(texts)
	}

	jobs := make(chan job)
	results := make([]string, len(texts))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				translated, err := t.TranslateText(ctx, j.text)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				// Each worker writes a distinct index, so no lock is
				// needed for the results slice.
				results[j.index] = translated
			}
		}()
	}

	for i, text := range texts {
		jobs <- job{index: i, text: text}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
