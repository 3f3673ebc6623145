package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service es una entrada del catálogo de servicios facturables.
// ServiceName es único por regla de negocio; ante duplicados en storage gana
// la entrada creada primero (ver ServiceRepository.FindByName).
type Service struct {
	ID           string
	ServiceName  string
	ServicePrice decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
