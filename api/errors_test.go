package api_test

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/momentics/hioload-ring/api"
)

func TestErrorUnwrapsToSentinel(t *testing.T) {
	cases := map[api.ErrorCode]error{
		api.ErrCodeInvalidArgument:   api.ErrInvalidArgument,
		api.ErrCodeResourceExhausted: api.ErrResourceExhausted,
		api.ErrCodeNoCapacity:        api.ErrNoCapacity,
		api.ErrCodeNotSupported:      api.ErrNotSupported,
	}
	for code, sentinel := range cases {
		err := errors.Wrap(api.NewError(code, "op failed"), "outer")
		assert.ErrorIs(t, err, sentinel, "code %d", code)
		assert.Equal(t, code, api.CodeOf(err))
	}

	internal := api.NewError(api.ErrCodeInternal, "bug")
	assert.Nil(t, internal.Unwrap())
}

func TestErrorMessage(t *testing.T) {
	err := api.NewError(api.ErrCodeInvalidArgument, "ring: resize below current size")
	assert.Equal(t, "ring: resize below current size", err.Error())

	err.WithContext("requested", 2)
	assert.Equal(t, "ring: resize below current size (context: map[requested:2])", err.Error())

	var zero api.Error
	zero.WithContext("k", "v")
	assert.Equal(t, "v", zero.Context["k"])
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, api.ErrCodeOK, api.CodeOf(nil))
	assert.Equal(t, api.ErrCodeInternal, api.CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, api.ErrCodeNoCapacity,
		api.CodeOf(fmt.Errorf("wrapped: %w", api.NewError(api.ErrCodeNoCapacity, "x"))))
}
