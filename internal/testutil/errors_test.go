package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrMockSFFailed", ErrMockSFFailed, "sf command failed"},
		{"ErrMockNetwork", ErrMockNetwork, "network error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestMockErrorsAreSentinelErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("fetch: %w", ErrMockNetwork)
	assert.ErrorIs(t, wrapped, ErrMockNetwork)
	assert.False(t, errors.Is(errors.New("wrapped: network error"), ErrMockNetwork))
}
