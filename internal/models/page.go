package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidPageID indicates a page ID that is not 32 hex characters,
// with or without dashes at the canonical UUID offsets.
var ErrInvalidPageID = errors.New("invalid page id")

// PageRequest identifies one page to export.
type PageRequest struct {
	Name string
	ID   string
}

// NormalizePageID converts a Notion page ID into the canonical dashed UUID
// form (dashes at offsets 8, 13, 18 and 23). It accepts the ID with or
// without dashes and is idempotent. Validation happens here, before any
// network call is made with the ID.
func NormalizePageID(s string) (string, error) {
	if len(s) != 32 && len(s) != 36 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPageID, s)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPageID, s)
	}
	return id.String(), nil
}
