package termspider_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/termspider"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := termspider.Errorf(termspider.ENOTFOUND, "run %q not found", "test")

	assert.Equal(t, termspider.ENOTFOUND, termspider.ErrorCode(err))
	assert.Equal(t, "run \"test\" not found", termspider.ErrorMessage(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset by peer")
	err := termspider.WrapError(termspider.ENETWORK, cause, "fetch %s", "https://example.com")

	assert.Equal(t, termspider.ENETWORK, termspider.ErrorCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", termspider.Errorf(termspider.EMALFORMED, "bad href"))

	assert.Equal(t, termspider.EMALFORMED, termspider.ErrorCode(err))
	assert.Equal(t, "bad href", termspider.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, termspider.EINTERNAL, termspider.ErrorCode(err))
	assert.Equal(t, "Internal error", termspider.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, termspider.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, termspider.ErrorMessage(nil))
}
