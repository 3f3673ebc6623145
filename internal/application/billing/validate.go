package billing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oltiademi/hatom-invoice-task/internal/application/dto"
	"github.com/oltiademi/hatom-invoice-task/internal/domain"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe   = regexp.MustCompile(`^10\d{3}$`)
)

// ValidateClientPayload valida los campos de un cliente antes de crearlo.
// No se crea nada parcialmente: el primer campo inválido aborta con ErrInvalidInput.
func ValidateClientPayload(in dto.ClientPayload) error {
	if len(strings.TrimSpace(in.Name)) < 3 {
		return fmt.Errorf("%w: name demasiado corto", domain.ErrInvalidInput)
	}
	for field, value := range map[string]string{
		"address":          in.Address,
		"country":          in.Country,
		"city":             in.City,
		"phoneNumber":      in.PhoneNumber,
		"uniqueBusinessId": in.UniqueBusinessID,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s requerido", domain.ErrInvalidInput, field)
		}
	}
	if !zipRe.MatchString(in.ZipCode) {
		return fmt.Errorf("%w: zipCode %q no es válido", domain.ErrInvalidInput, in.ZipCode)
	}
	if !emailRe.MatchString(in.Email) {
		return fmt.Errorf("%w: email %q no es válido", domain.ErrInvalidInput, in.Email)
	}
	return nil
}

// ValidEmail indica si el string tiene forma de email.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidZipCode indica si el string tiene forma de código postal soportado.
func ValidZipCode(zip string) bool {
	return zipRe.MatchString(zip)
}
