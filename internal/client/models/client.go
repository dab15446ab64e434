package models

import (
	"net/mail"
	"strings"
	"time"

	id "clientele/pkg/domain"
	dErrors "clientele/pkg/domain-errors"
)

// Client is the aggregate root for a client record.
//
// Invariants:
//   - ID is assigned once at creation and never changes
//   - FirstName and LastName are non-empty; all four name fields are
//     immutable after creation
//   - Email is syntactically valid and stored lower-cased; the store
//     enforces case-insensitive uniqueness across all records
//   - Country is a 2-3 character code; actual ISO validity is not checked
//   - Demonym is system-populated only: overwritten when a country lookup
//     succeeds, otherwise left at its previous value
type Client struct {
	ID             id.ClientID `json:"id"`
	FirstName      string      `json:"firstName"`
	MiddleName     string      `json:"middleName,omitempty"`
	LastName       string      `json:"lastName"`
	SecondLastName string      `json:"secondLastName,omitempty"`
	Email          string      `json:"email"`
	Address        string      `json:"address"`
	Phone          string      `json:"phone"`
	Country        string      `json:"country"`
	Demonym        string      `json:"demonym,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// NewClient constructs a validated client record. The email is normalized to
// lower case; the demonym starts unset and is only ever filled by a
// successful country lookup.
func NewClient(clientID id.ClientID, firstName, middleName, lastName, secondLastName, email, address, phone, country string, now time.Time) (*Client, error) {
	c := &Client{
		ID:             clientID,
		FirstName:      strings.TrimSpace(firstName),
		MiddleName:     strings.TrimSpace(middleName),
		LastName:       strings.TrimSpace(lastName),
		SecondLastName: strings.TrimSpace(secondLastName),
		Email:          NormalizeEmail(email),
		Address:        strings.TrimSpace(address),
		Phone:          strings.TrimSpace(phone),
		Country:        strings.TrimSpace(country),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyUpdate overwrites the mutable contact fields. Identity and name
// fields are preserved; the demonym stays untouched until a lookup succeeds.
// The receiver is unchanged when validation fails.
func (c *Client) ApplyUpdate(email, address, phone, country string, now time.Time) error {
	updated := *c
	updated.Email = NormalizeEmail(email)
	updated.Address = strings.TrimSpace(address)
	updated.Phone = strings.TrimSpace(phone)
	updated.Country = strings.TrimSpace(country)
	updated.UpdatedAt = now
	if err := updated.validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}

// SetDemonym records the result of a successful country lookup. Empty
// results leave the previous value in place.
func (c *Client) SetDemonym(demonym string) {
	if demonym != "" {
		c.Demonym = demonym
	}
}

func (c *Client) validate() error {
	if c.FirstName == "" {
		return dErrors.New(dErrors.CodeValidation, "firstName is required")
	}
	if c.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "lastName is required")
	}
	if c.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid address")
	}
	if c.Address == "" {
		return dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if c.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	}
	if n := len(c.Country); n < 2 || n > 3 {
		return dErrors.New(dErrors.CodeValidation, "country must be a 2-3 character code")
	}
	return nil
}

// NormalizeEmail lower-cases an email for storage and uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
