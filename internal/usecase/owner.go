package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultOwnerID is used by single-user deployments and the CLI.
const DefaultOwnerID = "local"

var ownerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

func normalizeOwner(ownerID string) (string, error) {
	ownerID = strings.TrimSpace(ownerID)
	if !ownerIDPattern.MatchString(ownerID) {
		return "", fmt.Errorf("%w: owner id must be 1-64 letters, digits, '.', '_' or '-'", ErrInvalidInput)
	}
	return ownerID, nil
}
