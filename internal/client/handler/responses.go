package handler

import (
	"time"

	"clientele/internal/client/models"
)

// ClientResponse is the public wire shape of a client record.
type ClientResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	MiddleName     string    `json:"middleName,omitempty"`
	LastName       string    `json:"lastName"`
	SecondLastName string    `json:"secondLastName,omitempty"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Country        string    `json:"country"`
	Demonym        string    `json:"demonym,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromClient converts a domain client to its HTTP response.
func FromClient(c *models.Client) *ClientResponse {
	return &ClientResponse{
		ID:             c.ID.String(),
		FirstName:      c.FirstName,
		MiddleName:     c.MiddleName,
		LastName:       c.LastName,
		SecondLastName: c.SecondLastName,
		Email:          c.Email,
		Address:        c.Address,
		Phone:          c.Phone,
		Country:        c.Country,
		Demonym:        c.Demonym,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// FromClients converts a list, always yielding a non-nil slice so empty
// results render as [] rather than null.
func FromClients(clients []*models.Client) []*ClientResponse {
	out := make([]*ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, FromClient(c))
	}
	return out
}
