package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	err := NewActionableError("deployment not found", "check the id")
	assert.Equal(t, "deployment not found", err.Error())

	err.WithContext("0Af000000000001")
	assert.Equal(t, "deployment not found (0Af000000000001)", err.Error())
}

func TestFromError(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, FromError(nil))
	})

	t.Run("known sentinel", func(t *testing.T) {
		t.Parallel()

		cause := deverrors.Wrap(deverrors.ErrDeploymentNotFound, "0Af000000000001")
		ae := FromError(cause)

		require.NotNil(t, ae)
		msg, action := deverrors.Actionable(cause)
		assert.Equal(t, msg, ae.Message)
		assert.Equal(t, action, ae.Suggestion)
		assert.Equal(t, cause.Error(), ae.Context)
		assert.ErrorIs(t, ae, deverrors.ErrDeploymentNotFound)
	})

	t.Run("already actionable", func(t *testing.T) {
		t.Parallel()

		orig := NewActionableError("boom", "retry")
		wrapped := fmt.Errorf("outer: %w", orig)
		assert.Same(t, orig, FromError(wrapped))
	})

	t.Run("plain error keeps text", func(t *testing.T) {
		t.Parallel()

		ae := FromError(errors.New("something odd")) //nolint:err113 // test error
		require.NotNil(t, ae)
		assert.Contains(t, ae.Error(), "something odd")
	})
}
