package source

import (
	"testing"

	"github.com/stretchr/testify/assert"

	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

func TestValidateDeploymentID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		wantErr error
	}{
		{"0Afq000001HKFDO", nil},
		{"0Afq000001HKFDOCA5", nil},
		{"  0Afq000001HKFDO ", nil},
		{"", deverrors.ErrDeploymentIDRequired},
		{"   ", deverrors.ErrDeploymentIDRequired},
		{"0Afq000001", deverrors.ErrInvalidDeploymentID},
		{"0Afq000001HKFDOCA5X", deverrors.ErrInvalidDeploymentID},
		{"0Afq000001HKF-O", deverrors.ErrInvalidDeploymentID},
		{"0Afq000001HKFDÖ", deverrors.ErrInvalidDeploymentID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			err := ValidateDeploymentID(tt.id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
