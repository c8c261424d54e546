package storescope_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/storescope"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := storescope.Errorf(storescope.EUNREACHABLE, "site %q not reachable", "example.com")

	assert.Equal(t, storescope.EUNREACHABLE, storescope.ErrorCode(err))
	assert.Equal(t, "site \"example.com\" not reachable", storescope.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, storescope.ErrorCode(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("fetch: %w", storescope.Errorf(storescope.EINVALID, "bad url"))
		assert.Equal(t, storescope.EINVALID, storescope.ErrorCode(err))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, storescope.EINTERNAL, storescope.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, storescope.ErrorMessage(nil))
	})

	t.Run("plain error is opaque", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", storescope.ErrorMessage(errors.New("db password leaked")))
	})
}
