package entity

import "time"

// Client representa un cliente facturable. UniqueBusinessID es el identificador
// externo (NUI) con el que el negocio lo referencia; Email también es único.
type Client struct {
	ID               string
	Name             string
	Company          string // opcional
	Address          string
	Country          string
	City             string
	ZipCode          string
	PhoneNumber      string
	Email            string
	UniqueBusinessID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
