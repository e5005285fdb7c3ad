package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// LibreTranslator talks to a LibreTranslate server.
type LibreTranslator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText *string `json:"translatedText"`
	Error          string  `json:"error"`
}

// NewLibreTranslator builds a client for prov.BaseURL.
func NewLibreTranslator(prov Provider) *LibreTranslator {
	return &LibreTranslator{
		endpoint: strings.TrimRight(prov.BaseURL, "/") + "/translate",
		apiKey:   prov.APIKey,
		client:   makeHTTPClient(prov.Proxy, prov.Timeout),
	}
}

// Translate sends a single POST /translate request. Non-200 responses and
// responses without translatedText are errors; nothing is retried.
func (l *LibreTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	body, err := json.Marshal(libreRequest{
		Q:      text,
		Source: from,
		Target: to,
		Format: "text",
		APIKey: l.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var out libreResponse
	decodeErr := json.Unmarshal(respBody, &out)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != "" {
			return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}
	if decodeErr != nil {
		return "", fmt.Errorf("invalid JSON response: %w", decodeErr)
	}
	if out.Error != "" {
		return "", fmt.Errorf("API error: %s", out.Error)
	}
	if out.TranslatedText == nil {
		return "", fmt.Errorf("could not extract text from response: %s", truncate(string(respBody), 500))
	}
	return *out.TranslatedText, nil
}
