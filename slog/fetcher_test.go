package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/termspider"
	"github.com/fwojciec/termspider/mock"
	tsslog "github.com/fwojciec/termspider/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*termspider.Response, error) {
				return &termspider.Response{URL: url, StatusCode: 200, Body: "<html>content</html>"}, nil
			},
		}

		fetcher := tsslog.NewLoggingFetcher(inner, debugLogger(&buf))
		resp, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", resp.Body)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*termspider.Response, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := tsslog.NewLoggingFetcher(inner, debugLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "status=0")
		assert.Contains(t, output, "err=\"network error\"")
	})

	t.Run("stays quiet at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*termspider.Response, error) {
				return &termspider.Response{URL: url, StatusCode: 200}, nil
			},
		}

		fetcher := tsslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := fetcher.Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingResultWriter_WriteResults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	store := termspider.NewResultStore([]string{"a", "b"})
	store.Add(termspider.MatchRecord{Term: "a", URL: "https://example.com", Direct: true})
	inner := &mock.ResultWriter{
		WriteResultsFn: func(ctx context.Context, s *termspider.ResultStore) error {
			assert.Same(t, store, s)
			return nil
		},
	}

	w := tsslog.NewLoggingResultWriter(inner, slog.New(slog.NewTextHandler(&buf, nil)))
	err := w.WriteResults(context.Background(), store)

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "write results")
	assert.Contains(t, output, "terms=2")
	assert.Contains(t, output, "records=1")
}
