//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clientele/internal/client/models"
	"clientele/internal/client/store"
	id "clientele/pkg/domain"
	"clientele/pkg/platform/sentinel"
	"clientele/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.Pool)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "clients"))
}

func (s *PostgresStoreSuite) newClient(email, country string) *models.Client {
	client, err := models.NewClient(id.NewClientID(),
		"John", "", "Doe", "",
		email, "123 Main St", "+1234567890", country,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	s.Require().NoError(err)
	return client
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()

	client := s.newClient("john@example.com", "US")
	client.SetDemonym("American")
	s.Require().NoError(s.store.Create(ctx, client))

	found, err := s.store.FindByID(ctx, client.ID)
	s.Require().NoError(err)
	s.Equal(client.ID, found.ID)
	s.Equal("john@example.com", found.Email)
	s.Equal("American", found.Demonym)
	s.Equal("US", found.Country)
}

func (s *PostgresStoreSuite) TestFindByEmailIsCaseInsensitive() {
	ctx := context.Background()

	client := s.newClient("case@example.com", "US")
	s.Require().NoError(s.store.Create(ctx, client))

	found, err := s.store.FindByEmail(ctx, "CASE@Example.COM")
	s.Require().NoError(err)
	s.Equal(client.ID, found.ID)

	_, err = s.store.FindByEmail(ctx, "missing@example.com")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentEmailCollision verifies the unique index is the source of
// truth: concurrent creates with the same email yield exactly one success.
func (s *PostgresStoreSuite) TestConcurrentEmailCollision() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := s.store.Create(ctx, s.newClient("raced@example.com", "US"))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get a conflict")
}

func (s *PostgresStoreSuite) TestListByCountry() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, s.newClient("us1@example.com", "US")))
	s.Require().NoError(s.store.Create(ctx, s.newClient("us2@example.com", "US")))
	s.Require().NoError(s.store.Create(ctx, s.newClient("ca@example.com", "CA")))

	clients, err := s.store.ListByCountry(ctx, "US")
	s.Require().NoError(err)
	s.Len(clients, 2)

	clients, err = s.store.ListByCountry(ctx, "ZZ")
	s.Require().NoError(err)
	s.NotNil(clients)
	s.Empty(clients)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()

	client := s.newClient("before@example.com", "US")
	s.Require().NoError(s.store.Create(ctx, client))

	other := s.newClient("taken@example.com", "CA")
	s.Require().NoError(s.store.Create(ctx, other))

	s.Run("persists new contact fields", func() {
		s.Require().NoError(client.ApplyUpdate("after@example.com", "456 Updated Ave", "+0987654321", "CA", time.Now().UTC()))
		client.SetDemonym("Canadian")
		s.Require().NoError(s.store.Update(ctx, client))

		found, err := s.store.FindByID(ctx, client.ID)
		s.Require().NoError(err)
		s.Equal("after@example.com", found.Email)
		s.Equal("Canadian", found.Demonym)
		s.Equal("John", found.FirstName)
	})

	s.Run("rejects an email held by a different record", func() {
		s.Require().NoError(client.ApplyUpdate("TAKEN@example.com", "addr", "+111", "US", time.Now().UTC()))
		s.Require().ErrorIs(s.store.Update(ctx, client), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for a missing record", func() {
		s.Require().ErrorIs(s.store.Update(ctx, s.newClient("ghost@example.com", "US")), sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()

	client := s.newClient("gone@example.com", "US")
	s.Require().NoError(s.store.Create(ctx, client))

	s.Require().NoError(s.store.Delete(ctx, client.ID))
	s.Require().ErrorIs(s.store.Delete(ctx, client.ID), sentinel.ErrNotFound)
}
