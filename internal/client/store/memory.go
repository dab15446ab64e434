package store

import (
	"context"
	"sync"

	"clientele/internal/client/models"
	id "clientele/pkg/domain"
	"clientele/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded Store used for development and tests. The
// email index makes the uniqueness check-then-write atomic under the lock,
// matching the guarantee the Postgres unique index provides.
type InMemory struct {
	mu      sync.RWMutex
	clients map[id.ClientID]*models.Client
	byEmail map[string]id.ClientID
}

func NewInMemory() *InMemory {
	return &InMemory{
		clients: make(map[id.ClientID]*models.Client),
		byEmail: make(map[string]id.ClientID),
	}
}

func (s *InMemory) Create(_ context.Context, client *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.NormalizeEmail(client.Email)
	if _, taken := s.byEmail[key]; taken {
		return sentinel.ErrConflict
	}

	cp := *client
	s.clients[client.ID] = &cp
	s.byEmail[key] = client.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, clientID id.ClientID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[clientID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *client
	return &cp, nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clientID, ok := s.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.clients[clientID]
	return &cp, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Client, 0, len(s.clients))
	for _, client := range s.clients {
		cp := *client
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemory) ListByCountry(_ context.Context, country string) ([]*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Client, 0)
	for _, client := range s.clients {
		if client.Country == country {
			cp := *client
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *InMemory) Update(_ context.Context, client *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.clients[client.ID]
	if !ok {
		return sentinel.ErrNotFound
	}

	newKey := models.NormalizeEmail(client.Email)
	if owner, taken := s.byEmail[newKey]; taken && owner != client.ID {
		return sentinel.ErrConflict
	}

	delete(s.byEmail, models.NormalizeEmail(existing.Email))
	s.byEmail[newKey] = client.ID

	cp := *client
	s.clients[client.ID] = &cp
	return nil
}

func (s *InMemory) Delete(_ context.Context, clientID id.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.clients[clientID]
	if !ok {
		return sentinel.ErrNotFound
	}

	delete(s.byEmail, models.NormalizeEmail(existing.Email))
	delete(s.clients, clientID)
	return nil
}
