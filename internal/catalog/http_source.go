package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultCatalogURL          = "https://fakestoreapi.com/products"
	responseBodyReadLimit int64 = 1024
)

// HTTPSource issues one parameterless GET against a fixed catalog location.
type HTTPSource struct {
	httpClient *http.Client
	url        string
}

// HTTPOption configures optional HTTPSource behavior.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default client.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewHTTPSource builds a catalog source for url, falling back to the public demo catalog.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	source := &HTTPSource{
		url:        strings.TrimSpace(url),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	if source.url == "" {
		source.url = DefaultCatalogURL
	}
	for _, opt := range opts {
		if opt != nil {
			opt(source)
		}
	}
	return source
}

// URL reports the catalog location this source reads.
func (s *HTTPSource) URL() string {
	return s.url
}

// Fetch retrieves and decodes the full catalog.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, retrievalFailure(fmt.Errorf("build catalog request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, retrievalFailure(fmt.Errorf("execute catalog request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, retrievalFailure(fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, retrievalFailure(fmt.Errorf("decode catalog response: %w", err))
	}
	if products == nil {
		return nil, retrievalFailure(fmt.Errorf("catalog response was null"))
	}

	return normalizeProducts(products), nil
}
