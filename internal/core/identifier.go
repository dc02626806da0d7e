package core

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.New().String()
}

// ValidateID rejects malformed identifiers before any store lookup so
// bad ids surface as 400s, not as empty 404s.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("malformed id %q: %w", id, ErrInvalidInput)
	}
	return nil
}
