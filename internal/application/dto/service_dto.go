package dto

import "github.com/shopspring/decimal"

// CreateServiceRequest body para POST /api/services/create.
type CreateServiceRequest struct {
	ServiceName  string          `json:"serviceName"`
	ServicePrice decimal.Decimal `json:"servicePrice"`
}

// UpdateServiceRequest parche parcial de una entrada del catálogo.
type UpdateServiceRequest struct {
	ServiceName  *string          `json:"serviceName,omitempty"`
	ServicePrice *decimal.Decimal `json:"servicePrice,omitempty"`
}

// ServiceResponse entrada del catálogo en respuestas.
type ServiceResponse struct {
	ID           string          `json:"id"`
	ServiceName  string          `json:"serviceName"`
	ServicePrice decimal.Decimal `json:"servicePrice"`
}
