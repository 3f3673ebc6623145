package dto

import "time"

// ClientPayload datos de cliente tal como llegan por el API (creación directa
// o embebidos en la creación de una factura).
type ClientPayload struct {
	Name             string `json:"name"`
	Company          string `json:"company,omitempty"`
	Address          string `json:"address"`
	Country          string `json:"country"`
	City             string `json:"city"`
	ZipCode          string `json:"zipCode"`
	PhoneNumber      string `json:"phoneNumber"`
	Email            string `json:"email"`
	UniqueBusinessID string `json:"uniqueBusinessId"`
}

// UpdateClientRequest parche parcial: cada campo presente reemplaza el valor
// almacenado; un campo ausente se deja sin tocar. Sustituye el merge dinámico
// de claves arbitrarias por un parche tipado campo a campo.
type UpdateClientRequest struct {
	Name        *string `json:"name,omitempty"`
	Company     *string `json:"company,omitempty"`
	Address     *string `json:"address,omitempty"`
	Country     *string `json:"country,omitempty"`
	City        *string `json:"city,omitempty"`
	ZipCode     *string `json:"zipCode,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Company          string    `json:"company,omitempty"`
	Address          string    `json:"address"`
	Country          string    `json:"country"`
	City             string    `json:"city"`
	ZipCode          string    `json:"zipCode"`
	PhoneNumber      string    `json:"phoneNumber"`
	Email            string    `json:"email"`
	UniqueBusinessID string    `json:"uniqueBusinessId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
