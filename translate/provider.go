package translate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bregydoc/gtranslate"
)

// ---------------------------------------------------------------------------
// Provider IDs
// ---------------------------------------------------------------------------

const (
	ProviderGoogle         = "google"
	ProviderLibreTranslate = "libretranslate"
)

// ---------------------------------------------------------------------------
// Provider configuration
// ---------------------------------------------------------------------------

// Provider holds the configuration for a translation service.
type Provider struct {
	// ID is the provider identifier (google, libretranslate).
	ID string
	// Name is the display name.
	Name string
	// BaseURL is the API base URL (LibreTranslate only).
	BaseURL string
	// APIKey is the authentication key (empty for open instances).
	APIKey string
	// Proxy is an optional HTTP/HTTPS proxy URL (LibreTranslate only;
	// Google requests follow HTTP_PROXY/HTTPS_PROXY).
	Proxy string
	// Timeout bounds each translation request. Zero means no limit.
	Timeout time.Duration
}

// DefaultProviders returns the pre-configured provider definitions.
func DefaultProviders() map[string]Provider {
	return map[string]Provider{
		ProviderGoogle: {
			ID:   ProviderGoogle,
			Name: "Google Translate",
		},
		ProviderLibreTranslate: {
			ID:      ProviderLibreTranslate,
			Name:    "LibreTranslate",
			BaseURL: "http://localhost:5000",
		},
	}
}

// NewTranslator returns the backend for prov.ID.
func NewTranslator(prov Provider) (Translator, error) {
	switch prov.ID {
	case ProviderGoogle, "":
		return GoogleTranslator{Timeout: prov.Timeout}, nil
	case ProviderLibreTranslate:
		if prov.BaseURL == "" {
			return nil, fmt.Errorf("provider %s requires a base URL", prov.ID)
		}
		return NewLibreTranslator(prov), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (available: %s, %s)", prov.ID, ProviderGoogle, ProviderLibreTranslate)
	}
}

// ---------------------------------------------------------------------------
// Google Translate
// ---------------------------------------------------------------------------

// googleTries is the number of attempts gtranslate makes per call.
const googleTries = 1

// GoogleTranslator uses the free Google Translate web endpoint.
type GoogleTranslator struct {
	// Timeout bounds each call. Zero means no limit.
	Timeout time.Duration
}

func googleParams(from, to string) gtranslate.TranslationParams {
	return gtranslate.TranslationParams{
		From:  from,
		To:    to,
		Tries: googleTries,
	}
}

// Translate sends one request and waits for it or for ctx. The library has
// no context support, so a cancelled call is abandoned rather than aborted.
func (g GoogleTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		translated, err := gtranslate.TranslateWithParams(text, googleParams(from, to))
		ch <- result{translated, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("google translate: %w", r.err)
		}
		return r.text, nil
	}
}

// ---------------------------------------------------------------------------
// HTTP client with real proxy support
// ---------------------------------------------------------------------------

func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	// Support both --proxy flag and HTTP_PROXY/HTTPS_PROXY env vars
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
