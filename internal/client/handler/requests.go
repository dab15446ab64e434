package handler

import (
	"net/mail"
	"strings"

	"clientele/internal/client/service"
	dErrors "clientele/pkg/domain-errors"
)

// CreateClientRequest is the body for POST /clients. The identifier and
// demonym are system-generated and not accepted here.
type CreateClientRequest struct {
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
}

// Validate normalizes and checks the request. Implements
// httputil.Validatable.
func (r *CreateClientRequest) Validate() error {
	r.trim()
	if r.FirstName == "" {
		return dErrors.New(dErrors.CodeValidation, "firstName is required")
	}
	if r.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "lastName is required")
	}
	return validateContactFields(r.Email, r.Address, r.Phone, r.Country)
}

func (r *CreateClientRequest) trim() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.MiddleName = strings.TrimSpace(r.MiddleName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.SecondLastName = strings.TrimSpace(r.SecondLastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Country = strings.TrimSpace(r.Country)
}

func (r *CreateClientRequest) Input() service.CreateInput {
	return service.CreateInput{
		FirstName:      r.FirstName,
		MiddleName:     r.MiddleName,
		LastName:       r.LastName,
		SecondLastName: r.SecondLastName,
		Email:          r.Email,
		Address:        r.Address,
		Phone:          r.Phone,
		Country:        r.Country,
	}
}

// UpdateClientRequest is the body for PUT /clients/{id}. Name fields are
// accepted for wire compatibility but ignored: they are immutable after
// creation.
type UpdateClientRequest struct {
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
}

// Validate normalizes and checks the mutable fields. Implements
// httputil.Validatable.
func (r *UpdateClientRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Country = strings.TrimSpace(r.Country)
	return validateContactFields(r.Email, r.Address, r.Phone, r.Country)
}

func (r *UpdateClientRequest) Input() service.UpdateInput {
	return service.UpdateInput{
		Email:   r.Email,
		Address: r.Address,
		Phone:   r.Phone,
		Country: r.Country,
	}
}

func validateContactFields(email, address, phone, country string) error {
	if email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid address")
	}
	if address == "" {
		return dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if phone == "" {
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	}
	if n := len(country); n < 2 || n > 3 {
		return dErrors.New(dErrors.CodeValidation, "country must be a 2-3 character code")
	}
	return nil
}
