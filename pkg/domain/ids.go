// Package domain holds the typed identifiers shared across layers. Wrapping
// uuid.UUID in distinct types keeps IDs from being mixed up at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "clientele/pkg/domain-errors"
)

// ClientID uniquely identifies a client record. It is assigned once at
// creation, never changes, and is never reused.
type ClientID uuid.UUID

// NewClientID generates a fresh random identifier.
func NewClientID() ClientID {
	return ClientID(uuid.New())
}

// ParseClientID validates and parses an identifier from its string form.
// IDs must be valid, non-empty, non-nil UUIDs.
func ParseClientID(s string) (ClientID, error) {
	if s == "" {
		return ClientID{}, dErrors.New(dErrors.CodeInvalidInput, "client id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ClientID{}, dErrors.New(dErrors.CodeInvalidInput, "client id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return ClientID{}, dErrors.New(dErrors.CodeInvalidInput, "client id cannot be the nil UUID")
	}
	return ClientID(parsed), nil
}

func (id ClientID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the ID is unset.
func (id ClientID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText renders the canonical UUID form so JSON bodies carry strings,
// not byte arrays.
func (id ClientID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

// UnmarshalText parses the canonical UUID form.
func (id *ClientID) UnmarshalText(text []byte) error {
	parsed, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = ClientID(parsed)
	return nil
}
