// Package translate machine-translates translation sets through an external
// service. Every value is sent as a separate request; a failed request puts
// ErrorSentinel in place of the value instead of failing the whole set.
//
// Backends: Google Translate (free web endpoint) and LibreTranslate.
package translate

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/minios-linux/i18nkit/catalog"
)

// ErrorSentinel replaces the value of every entry whose translation failed.
const ErrorSentinel = "Translation error"

// Translator translates a single text between two language codes.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text, from, to string) (string, error)

// Translate calls f.
func (f TranslatorFunc) Translate(ctx context.Context, text, from, to string) (string, error) {
	return f(ctx, text, from, to)
}

// ---------------------------------------------------------------------------
// Translation options
// ---------------------------------------------------------------------------

// Options controls how a set is translated.
type Options struct {
	// Translator performs the per-entry requests.
	Translator Translator
	// From is the source language code, passed verbatim to the Translator.
	From string
	// To is the target language code, passed verbatim to the Translator.
	To string
	// MaxConcurrent caps in-flight requests. Zero or negative means one
	// goroutine per entry with no cap.
	MaxConcurrent int
	// OnProgress is called after each entry settles. It may be called from
	// several goroutines at once.
	OnProgress func(done, total int)
}

// Result is a translated set plus the entries that failed.
type Result struct {
	// Set holds every source key, in source order.
	Set *catalog.Set
	// Failed lists keys whose value is ErrorSentinel because the request
	// failed, in source order.
	Failed []string
	// Errors maps each failed key to its error.
	Errors map[string]error
}

// TranslateSet translates every value of src and waits for all requests to
// settle. Requests run concurrently; results are placed back by position,
// so the output order matches src regardless of completion order. Errors
// are never returned: they are recorded in Result and the value becomes
// ErrorSentinel. No request is retried.
func TranslateSet(ctx context.Context, src *catalog.Set, opts Options) *Result {
	entries := src.Entries()
	total := len(entries)
	values := make([]string, total)
	errs := make([]error, total)

	var done atomic.Int64
	runParallel(total, opts.MaxConcurrent, func(i int) {
		text, err := translateEntry(ctx, opts, entries[i].Value)
		if err != nil {
			values[i] = ErrorSentinel
			errs[i] = err
		} else {
			values[i] = text
		}
		n := done.Add(1)
		if opts.OnProgress != nil {
			opts.OnProgress(int(n), total)
		}
	})

	res := &Result{Set: catalog.New(), Errors: make(map[string]error)}
	for i, e := range entries {
		res.Set.Set(e.Key, values[i])
		if errs[i] != nil {
			res.Failed = append(res.Failed, e.Key)
			res.Errors[e.Key] = errs[i]
		}
	}
	return res
}

func translateEntry(ctx context.Context, opts Options, value string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return opts.Translator.Translate(ctx, value, opts.From, opts.To)
}

// ---------------------------------------------------------------------------
// Parallel runner
// ---------------------------------------------------------------------------

// runParallel calls fn(i) for every i in [0, n) and returns once all calls
// have returned. At most maxConcurrent calls run at once; maxConcurrent <= 0
// starts all of them immediately.
func runParallel(n, maxConcurrent int, fn func(i int)) {
	if maxConcurrent <= 0 || maxConcurrent > n {
		maxConcurrent = n
	}

	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		sem <- struct{}{}
		wg.Add(1)

		go func(i int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			fn(i)
		}(i)
	}

	wg.Wait()
}
