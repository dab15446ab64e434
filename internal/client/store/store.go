// Package store persists client records. Implementations return sentinel
// errors for factual states (not found, uniqueness conflict) so services can
// translate them into domain errors.
package store

import (
	"context"

	"clientele/internal/client/models"
	id "clientele/pkg/domain"
)

// Store is the persistence boundary for client records.
type Store interface {
	// Create persists a new record. Returns sentinel.ErrConflict when
	// another record already holds the same normalized email.
	Create(ctx context.Context, client *models.Client) error

	// FindByID returns the record or sentinel.ErrNotFound.
	FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error)

	// FindByEmail matches case-insensitively on the email. At most one
	// record can match by the uniqueness invariant.
	FindByEmail(ctx context.Context, email string) (*models.Client, error)

	// ListAll returns every record; order is unspecified.
	ListAll(ctx context.Context) ([]*models.Client, error)

	// ListByCountry matches the country code exactly, with no case folding.
	// No matches yields an empty slice, never an error.
	ListByCountry(ctx context.Context, country string) ([]*models.Client, error)

	// Update overwrites the record with the same ID. Returns
	// sentinel.ErrNotFound when it does not exist, or sentinel.ErrConflict
	// when the new email collides with a different record.
	Update(ctx context.Context, client *models.Client) error

	// Delete removes the record, returning sentinel.ErrNotFound when there
	// was nothing to remove.
	Delete(ctx context.Context, clientID id.ClientID) error
}
