package source

import (
	"strings"

	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// ValidateDeploymentID checks that id looks like a record id: 15 or 18
// ASCII letters and digits, e.g. 0Afq000001HKFDO.
func ValidateDeploymentID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return deverrors.ErrDeploymentIDRequired
	}
	if len(id) != 15 && len(id) != 18 {
		return deverrors.Wrapf(deverrors.ErrInvalidDeploymentID, "%q has %d characters", id, len(id))
	}
	for _, r := range id {
		if !isAlnum(r) {
			return deverrors.Wrapf(deverrors.ErrInvalidDeploymentID, "%q contains %q", id, r)
		}
	}
	return nil
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
