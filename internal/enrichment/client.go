// Package enrichment resolves country codes to demonyms via a
// RestCountries-compatible API (GET {base}/alpha/{code}).
//
// Lookups are strictly best-effort: every transport error, non-200 response,
// timeout, or malformed payload is absorbed here and yields no demonym.
// A third-party outage must never block a client write.
//
// Demonym policy: only the English-language entry is consulted; the male
// form is preferred, falling back to the female form when the male form is
// empty. There is no cross-language fallback.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Resolver resolves a country code to a demonym. An empty result means no
// demonym is available; implementations must be safe for concurrent use.
type Resolver interface {
	ResolveDemonym(ctx context.Context, countryCode string) (string, error)
}

// maxResponseBytes caps how much of the countries API response is read.
const maxResponseBytes = 1 << 20

// countryEntry is the slice element shape of the countries API response.
// Demonyms are keyed by language code ("eng", "spa", ...).
type countryEntry struct {
	Demonyms map[string]demonymForms `json:"demonyms"`
}

type demonymForms struct {
	Female string `json:"f"`
	Male   string `json:"m"`
}

var tracer = otel.Tracer("clientele/internal/enrichment")

// HTTPResolver queries the countries API over HTTP with a bounded timeout.
// It holds no state between calls.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	metrics *Metrics
}

// NewHTTPResolver builds a resolver for the given API base URL. The timeout
// bounds the whole lookup so a slow third party cannot hang a write.
func NewHTTPResolver(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *Metrics) *HTTPResolver {
	return &HTTPResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: metrics,
	}
}

// ResolveDemonym returns the demonym for a country code, or "" when the code
// is empty, unknown, or the lookup fails in any way. Failures are logged and
// absorbed; they never propagate to the caller.
func (r *HTTPResolver) ResolveDemonym(ctx context.Context, countryCode string) (string, error) {
	if countryCode == "" {
		return "", nil
	}

	ctx, span := tracer.Start(ctx, "enrichment.ResolveDemonym")
	span.SetAttributes(attribute.String("country.code", countryCode))
	defer span.End()

	demonym, err := r.lookup(ctx, countryCode)
	if err != nil {
		r.metrics.ObserveLookup("error")
		r.logger.WarnContext(ctx, "country lookup failed",
			"country", countryCode,
			"error", err.Error(),
		)
		return "", nil
	}
	if demonym == "" {
		r.metrics.ObserveLookup("missing")
		return "", nil
	}
	r.metrics.ObserveLookup("hit")
	return demonym, nil
}

func (r *HTTPResolver) lookup(ctx context.Context, code string) (string, error) {
	endpoint := fmt.Sprintf("%s/alpha/%s", r.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call countries API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("countries API returned status %d", resp.StatusCode)
	}

	var entries []countryEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&entries); err != nil {
		return "", fmt.Errorf("decode countries API response: %w", err)
	}
	if len(entries) == 0 {
		return "", nil
	}

	// A code can map to several entries; only the first is consulted.
	forms, ok := entries[0].Demonyms["eng"]
	if !ok {
		return "", nil
	}
	if forms.Male != "" {
		return forms.Male, nil
	}
	return forms.Female, nil
}
