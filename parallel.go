package guesslang

import (
	"context"
	"runtime"
	"sync"
)

var defaultWorkers = runtime.GOMAXPROCS(0)

// DetectBatch explains every text using a pool of goroutines. Results are
// returned in input order. Identical texts are detected once.
func (d *Detector) DetectBatch(ctx context.Context, texts []string) ([]Result, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	type batchResult struct {
		text   string
		result Result
	}

	// Deduplicate texts first
	unique := make([]string, 0, len(texts))
	seen := make(map[string]bool, len(texts))
	for _, t := range texts {
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}

	workers := d.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(unique) {
		workers = len(unique)
	}

	jobs := make(chan string)
	results := make(chan batchResult, len(unique))
	var wg sync.WaitGroup

	// Launch workers
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				results <- batchResult{text: t, result: d.Explain(t)}
			}
		}()
	}

	// Feed jobs until done or cancelled
	go func() {
		defer close(jobs)
		for _, t := range unique {
			select {
			case jobs <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close results channel when all goroutines complete
	go func() {
		wg.Wait()
		close(results)
	}()

	byText := make(map[string]Result, len(unique))
	for r := range results {
		byText[r.text] = r.result
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Build output preserving original order
	out := make([]Result, len(texts))
	for i, t := range texts {
		out[i] = byText[t]
	}
	return out, nil
}

// DetectAll is DetectBatch reduced to language codes.
func (d *Detector) DetectAll(ctx context.Context, texts []string) ([]string, error) {
	results, err := d.DetectBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	codes := make([]string, len(results))
	for i, r := range results {
		codes[i] = r.Code
	}
	return codes, nil
}
