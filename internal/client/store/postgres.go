package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"clientele/internal/client/models"
	id "clientele/pkg/domain"
	"clientele/pkg/platform/sentinel"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the Postgres error code for unique constraint hits.
const uniqueViolation = "23505"

// Postgres persists client records in PostgreSQL. The unique index on
// lower(email) is the source of truth for the email uniqueness invariant;
// constraint violations surface as sentinel.ErrConflict so the loser of a
// concurrent create still gets a clean conflict, not a generic failure.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the clients table and its indexes if missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply clients schema: %w", err)
	}
	return nil
}

const clientColumns = `id, first_name, middle_name, last_name, second_last_name, email, address, phone, country, demonym, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.pool.Exec(ctx, query,
		uuid.UUID(client.ID),
		client.FirstName,
		client.MiddleName,
		client.LastName,
		client.SecondLastName,
		client.Email,
		client.Address,
		client.Phone,
		client.Country,
		client.Demonym,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(s.pool.QueryRow(ctx, query, uuid.UUID(clientID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find client by id: %w", err)
	}
	return client, nil
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE lower(email) = lower($1)`

	client, err := scanClient(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find client by email: %w", err)
	}
	return client, nil
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func (s *Postgres) ListByCountry(ctx context.Context, country string) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE country = $1 ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, country)
	if err != nil {
		return nil, fmt.Errorf("list clients by country: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func (s *Postgres) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET email = $2, address = $3, phone = $4, country = $5, demonym = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.pool.Exec(ctx, query,
		uuid.UUID(client.ID),
		client.Email,
		client.Address,
		client.Phone,
		client.Country,
		client.Demonym,
		client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, clientID id.ClientID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, uuid.UUID(clientID))
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*models.Client, error) {
	var c models.Client
	var clientID uuid.UUID
	err := row.Scan(
		&clientID,
		&c.FirstName,
		&c.MiddleName,
		&c.LastName,
		&c.SecondLastName,
		&c.Email,
		&c.Address,
		&c.Phone,
		&c.Country,
		&c.Demonym,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ID = id.ClientID(clientID)
	return &c, nil
}

func collectClients(rows pgx.Rows) ([]*models.Client, error) {
	clients := make([]*models.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}
