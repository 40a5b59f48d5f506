package termspider_test

import (
	"testing"

	"github.com/fwojciec/termspider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSite(t *testing.T) {
	t.Parallel()

	t.Run("derives domain from host", func(t *testing.T) {
		t.Parallel()

		site, err := termspider.NewSite("https://example.one.com/start")
		require.NoError(t, err)
		assert.Equal(t, "https://example.one.com/start", site.BaseURL)
		assert.Equal(t, "example.one.com", site.Domain)
	})

	t.Run("rejects invalid URLs", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "example.com", "ftp://example.com", "https://"} {
			_, err := termspider.NewSite(raw)
			require.Error(t, err, raw)
			assert.Equal(t, termspider.EINVALID, termspider.ErrorCode(err), raw)
		}
	})
}

func TestSite_Contains(t *testing.T) {
	t.Parallel()

	site, err := termspider.NewSite("https://example.com")
	require.NoError(t, err)

	assert.True(t, site.Contains("https://example.com/a"))
	assert.True(t, site.Contains("http://example.com/b"))
	assert.False(t, site.Contains("https://sub.example.com/a"))
	assert.False(t, site.Contains("https://other.com/"))
}
