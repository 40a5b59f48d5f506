package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/termspider"
	main "github.com/fwojciec/termspider/cmd/termspider"
	"github.com/fwojciec/termspider/crawl"
	tshttp "github.com/fwojciec/termspider/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termspider.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := main.NewConfig()

	assert.Equal(t, crawl.DefaultMaxPages, cfg.MaxPages)
	assert.Equal(t, tshttp.DefaultFetchTimeout, cfg.Timeout)
	assert.Equal(t, tshttp.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, "breadth", cfg.Order)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads all fields", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
terms: [term1, "big data"]
sites:
  - https://example.com
max_pages: 25
timeout: 3s
user_agent: termspider-test
wrapper_id: ExampleClass
wrapper_tag: topbar
output_dir: out
include_debug: true
concurrency: 4
order: depth
sitemap: true
`)

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"term1", "big data"}, cfg.Terms)
		assert.Equal(t, []string{"https://example.com"}, cfg.Sites)
		assert.Equal(t, 25, cfg.MaxPages)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.Equal(t, "termspider-test", cfg.UserAgent)
		assert.Equal(t, "ExampleClass", cfg.WrapperID)
		assert.Equal(t, "topbar", cfg.WrapperTag)
		assert.Equal(t, "out", cfg.OutputDir)
		assert.True(t, cfg.IncludeDebug)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, "depth", cfg.Order)
		assert.True(t, cfg.Sitemap)
	})

	t.Run("keeps defaults for missing fields", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(writeConfig(t, "terms: [a]\n"))

		require.NoError(t, err)
		assert.Equal(t, crawl.DefaultMaxPages, cfg.MaxPages)
		assert.Equal(t, tshttp.DefaultUserAgent, cfg.UserAgent)
	})

	t.Run("accepts empty file", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(writeConfig(t, ""))

		require.NoError(t, err)
		assert.Equal(t, main.NewConfig(), cfg)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(writeConfig(t, "max_page: 10\n"))

		require.Error(t, err)
		assert.Equal(t, termspider.EINVALID, termspider.ErrorCode(err))
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(writeConfig(t, "invalid: yaml: content: ["))

		require.Error(t, err)
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorIs(t, err, main.ErrConfigNotFound)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *main.Config {
		cfg := main.NewConfig()
		cfg.Terms = []string{"term1"}
		cfg.Sites = []string{"https://example.com"}
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*main.Config)
	}{
		{name: "no terms", mutate: func(c *main.Config) { c.Terms = nil }},
		{name: "blank term", mutate: func(c *main.Config) { c.Terms = []string{" "} }},
		{name: "no sites", mutate: func(c *main.Config) { c.Sites = nil }},
		{name: "zero max pages", mutate: func(c *main.Config) { c.MaxPages = 0 }},
		{name: "zero timeout", mutate: func(c *main.Config) { c.Timeout = 0 }},
		{name: "zero concurrency", mutate: func(c *main.Config) { c.Concurrency = 0 }},
		{name: "unknown order", mutate: func(c *main.Config) { c.Order = "random" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Equal(t, termspider.EINVALID, termspider.ErrorCode(err))
		})
	}
}
