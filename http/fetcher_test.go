package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/termspider"
	tshttp "github.com/fwojciec/termspider/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		resp, err := tshttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, server.URL, resp.URL)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, resp.OK())
		assert.Equal(t, "<html><body>Hello World</body></html>", resp.Body)
	})

	t.Run("sends browser user agent by default", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		_, err := tshttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, tshttp.DefaultUserAgent, got)
	})

	t.Run("sends configured user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := tshttp.NewFetcher(tshttp.WithUserAgent("termspider-test/1.0"))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "termspider-test/1.0", got)
		assert.Equal(t, "termspider-test/1.0", fetcher.UserAgent())
	})

	t.Run("returns non-200 status without error or body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("<html>not found, but mentions term1</html>"))
		}))
		defer server.Close()

		resp, err := tshttp.NewFetcher().Fetch(context.Background(), server.URL+"/missing")

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.False(t, resp.OK())
		assert.Empty(t, resp.Body)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := tshttp.NewFetcher(tshttp.WithTimeout(10 * time.Millisecond))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, termspider.ENETWORK, termspider.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tshttp.NewFetcher().Fetch(ctx, server.URL)

		require.Error(t, err)
	})

	t.Run("connection failure is a network error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := tshttp.NewFetcher().Fetch(context.Background(), url)

		require.Error(t, err)
		assert.Equal(t, termspider.ENETWORK, termspider.ErrorCode(err))
	})

	t.Run("decodes declared charset to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			// "café" in Latin-1.
			_, _ = w.Write([]byte{'<', 'p', '>', 'c', 'a', 'f', 0xe9, '<', '/', 'p', '>'})
		}))
		defer server.Close()

		resp, err := tshttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", resp.Body)
	})

	t.Run("uses provided client", func(t *testing.T) {
		t.Parallel()

		var hit bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hit = true
		}))
		defer server.Close()

		fetcher := tshttp.NewFetcher(tshttp.WithClient(server.Client()))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.True(t, hit)
	})
}
