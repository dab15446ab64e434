// Package service orchestrates the client record lifecycle: uniqueness
// checks, country enrichment, persistence, and lifecycle events.
package service

import (
	"context"
	"errors"
	"log/slog"

	"clientele/internal/client/metrics"
	"clientele/internal/client/models"
	"clientele/internal/client/store"
	"clientele/internal/enrichment"
	"clientele/internal/events"
	id "clientele/pkg/domain"
	dErrors "clientele/pkg/domain-errors"
	"clientele/pkg/platform/sentinel"
	"clientele/pkg/requestcontext"
)

// CreateInput carries the caller-supplied fields for a new client record.
// The identifier and demonym are never accepted from callers.
type CreateInput struct {
	FirstName      string
	MiddleName     string
	LastName       string
	SecondLastName string
	Email          string
	Address        string
	Phone          string
	Country        string
}

// UpdateInput carries the mutable fields for an update. Name fields are
// immutable after creation and deliberately absent here.
type UpdateInput struct {
	Email   string
	Address string
	Phone   string
	Country string
}

// ClientService is the business logic layer for client records.
type ClientService struct {
	clients  store.Store
	resolver enrichment.Resolver
	events   events.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures a ClientService.
type Option func(*ClientService)

func WithLogger(logger *slog.Logger) Option {
	return func(s *ClientService) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ClientService) { s.metrics = m }
}

func WithEvents(publisher events.Publisher) Option {
	return func(s *ClientService) { s.events = publisher }
}

func NewClientService(clients store.Store, resolver enrichment.Resolver, opts ...Option) *ClientService {
	s := &ClientService{
		clients:  clients,
		resolver: resolver,
		events:   events.Noop{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates, enriches, and persists a new client record. The email
// uniqueness pre-check gives callers a clean conflict before any lookup is
// spent; the store's unique constraint stays the source of truth under
// concurrent creates.
func (s *ClientService) Create(ctx context.Context, input CreateInput) (*models.Client, error) {
	client, err := models.NewClient(
		id.NewClientID(),
		input.FirstName,
		input.MiddleName,
		input.LastName,
		input.SecondLastName,
		input.Email,
		input.Address,
		input.Phone,
		input.Country,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailAvailable(ctx, client.Email, client.ID); err != nil {
		return nil, err
	}

	s.enrich(ctx, client)

	if err := s.clients.Create(ctx, client); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, emailConflict(client.Email)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create client")
	}

	s.metrics.IncrementCreated()
	s.events.Publish(ctx, events.Event{
		Type:     events.TypeClientCreated,
		ClientID: client.ID.String(),
		Country:  client.Country,
	})
	return client, nil
}

// Get returns a single client record.
func (s *ClientService) Get(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	return client, nil
}

// List returns every client record; order is unspecified.
func (s *ClientService) List(ctx context.Context) ([]*models.Client, error) {
	clients, err := s.clients.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list clients")
	}
	return clients, nil
}

// ListByCountry returns the records matching a country code exactly. An
// empty or unknown code yields an empty slice, never an error.
func (s *ClientService) ListByCountry(ctx context.Context, country string) ([]*models.Client, error) {
	if country == "" {
		return []*models.Client{}, nil
	}
	clients, err := s.clients.ListByCountry(ctx, country)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list clients by country")
	}
	return clients, nil
}

// Update applies the mutable contact fields to an existing record. Name
// fields are preserved; the demonym is re-resolved and kept at its previous
// value when the lookup fails.
func (s *ClientService) Update(ctx context.Context, clientID id.ClientID, input UpdateInput) (*models.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, wrapLookupErr(err)
	}

	if err := s.checkEmailAvailable(ctx, models.NormalizeEmail(input.Email), clientID); err != nil {
		return nil, err
	}

	if err := client.ApplyUpdate(input.Email, input.Address, input.Phone, input.Country, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}

	s.enrich(ctx, client)

	if err := s.clients.Update(ctx, client); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, emailConflict(client.Email)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update client")
	}

	s.metrics.IncrementUpdated()
	s.events.Publish(ctx, events.Event{
		Type:     events.TypeClientUpdated,
		ClientID: client.ID.String(),
		Country:  client.Country,
	})
	return client, nil
}

// Delete removes a record permanently.
func (s *ClientService) Delete(ctx context.Context, clientID id.ClientID) error {
	if err := s.clients.Delete(ctx, clientID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete client")
	}

	s.metrics.IncrementDeleted()
	s.events.Publish(ctx, events.Event{
		Type:     events.TypeClientDeleted,
		ClientID: clientID.String(),
	})
	return nil
}

// checkEmailAvailable rejects an email already held by a different record.
func (s *ClientService) checkEmailAvailable(ctx context.Context, email string, self id.ClientID) error {
	existing, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email uniqueness")
	}
	if existing.ID != self {
		return emailConflict(email)
	}
	return nil
}

// enrich resolves the demonym for the client's country. Best effort: any
// failure or absent result leaves the previous demonym in place.
func (s *ClientService) enrich(ctx context.Context, client *models.Client) {
	if client.Country == "" {
		return
	}
	demonym, err := s.resolver.ResolveDemonym(ctx, client.Country)
	if err != nil {
		s.logger.WarnContext(ctx, "demonym lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"client_id", client.ID,
			"country", client.Country,
			"error", err.Error(),
		)
		return
	}
	client.SetDemonym(demonym)
}

func emailConflict(email string) error {
	return dErrors.Newf(dErrors.CodeConflict, "client with email %s already exists", email)
}

func wrapLookupErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "client not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}
