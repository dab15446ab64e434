package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newResolver(baseURL string, timeout time.Duration) *HTTPResolver {
	return NewHTTPResolver(baseURL, timeout, slog.New(slog.DiscardHandler), nil)
}

func TestResolveDemonym(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the English male form", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/alpha/US", r.URL.Path)
			fmt.Fprint(w, `[{"demonyms":{"eng":{"f":"American","m":"American"}}}]`)
		})

		demonym, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "US")
		require.NoError(t, err)
		assert.Equal(t, "American", demonym)
	})

	t.Run("falls back to the female form when the male form is empty", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[{"demonyms":{"eng":{"f":"Fallback","m":""}}}]`)
		})

		demonym, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "US")
		require.NoError(t, err)
		assert.Equal(t, "Fallback", demonym)
	})

	t.Run("yields nothing when no English entry exists", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[{"demonyms":{"spa":{"f":"Estadounidense","m":"Estadounidense"}}}]`)
		})

		demonym, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "US")
		require.NoError(t, err)
		assert.Empty(t, demonym)
	})

	t.Run("consults only the first entry", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[
				{"demonyms":{"eng":{"f":"First","m":"First"}}},
				{"demonyms":{"eng":{"f":"Second","m":"Second"}}}
			]`)
		})

		demonym, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "US")
		require.NoError(t, err)
		assert.Equal(t, "First", demonym)
	})

	t.Run("yields nothing on an empty response array", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[]`)
		})

		demonym, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "US")
		require.NoError(t, err)
		assert.Empty(t, demonym)
	})

	t.Run("absorbs a non-200 status", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		demonym, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "ZZ")
		require.NoError(t, err)
		assert.Empty(t, demonym)
	})

	t.Run("absorbs a malformed payload", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{not json`)
		})

		demonym, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "US")
		require.NoError(t, err)
		assert.Empty(t, demonym)
	})

	t.Run("absorbs a timeout", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			fmt.Fprint(w, `[{"demonyms":{"eng":{"f":"Slow","m":"Slow"}}}]`)
		})

		demonym, err := newResolver(server.URL, 20*time.Millisecond).ResolveDemonym(ctx, "US")
		require.NoError(t, err)
		assert.Empty(t, demonym)
	})

	t.Run("absorbs an unreachable host", func(t *testing.T) {
		demonym, err := newResolver("http://127.0.0.1:1", time.Second).ResolveDemonym(ctx, "US")
		require.NoError(t, err)
		assert.Empty(t, demonym)
	})

	t.Run("makes no call for an empty code", func(t *testing.T) {
		var calls atomic.Int64
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			fmt.Fprint(w, `[]`)
		})

		demonym, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, demonym)
		assert.Zero(t, calls.Load())
	})

	t.Run("escapes the country code in the path", func(t *testing.T) {
		var path atomic.Value
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			path.Store(r.URL.EscapedPath())
			fmt.Fprint(w, `[]`)
		})

		_, err := newResolver(server.URL, time.Second).ResolveDemonym(ctx, "a/b")
		require.NoError(t, err)
		assert.Equal(t, "/alpha/a%2Fb", path.Load())
	})
}
