package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/termspider/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_MaybeContains(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.MaybeContains("https://example.com/page1"))

	f.Add("https://example.com/page1")

	assert.True(t, f.MaybeContains("https://example.com/page1"))
	assert.False(t, f.MaybeContains("https://example.com/page2"))
}

func TestFilter_zero_capacity(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)
	f.Add("https://example.com/")

	assert.True(t, f.MaybeContains("https://example.com/"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	for i := range 3 {
		f.Add(fmt.Sprintf("https://example.com/page%d", i))
	}
	// Re-adding does not change the estimate.
	f.Add("https://example.com/page0")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_no_false_negatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(5000, 0.01)
	for i := range 5000 {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	for i := range 5000 {
		url := fmt.Sprintf("https://example.com/added/%d", i)
		assert.True(t, f.MaybeContains(url), url)
	}
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.MaybeContains(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
