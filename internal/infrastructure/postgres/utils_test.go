package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/oltiademi/hatom-invoice-task/internal/domain"
)

func pgUniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgUniqueViolation("clients_email_key")))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", pgUniqueViolation("users_email_key"))))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestConstraintName(t *testing.T) {
	assert.Equal(t, "invoices_invoice_number_key",
		constraintName(pgUniqueViolation("invoices_invoice_number_key")))
	assert.Equal(t, "", constraintName(errors.New("sin detalle")))
}

// El error de duplicado distingue el campo en conflicto según el constraint.
func TestDuplicateClientError(t *testing.T) {
	err := duplicateClientError(pgUniqueViolation("clients_email_key"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "email")

	err = duplicateClientError(pgUniqueViolation("clients_unique_business_id_key"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "businessId")
}
