package invoicing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oltiademi/hatom-invoice-task/internal/domain"
)

// FormatNumber construye el número de factura PREFIX/YYYY/NNN.
// La secuencia se rellena a 3 dígitos (004) y crece sin relleno a partir
// de 1000 (PREFIX/YYYY/1000).
func FormatNumber(prefix string, year, sequence int) string {
	return fmt.Sprintf("%s/%d/%03d", prefix, year, sequence)
}

// SequenceOf extrae la secuencia numérica del tercer segmento de un número
// de factura (PREFIX/YYYY/NNN).
func SequenceOf(invoiceNumber string) (int, error) {
	parts := strings.Split(invoiceNumber, "/")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: número de factura %q", domain.ErrInvalidInput, invoiceNumber)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("%w: secuencia %q", domain.ErrInvalidInput, parts[2])
	}
	return seq, nil
}

// SanitizeNumber reemplaza los separadores de ruta del número de factura por
// "-" para usarlo como nombre de archivo (HA/2025/003 -> HA-2025-003).
func SanitizeNumber(invoiceNumber string) string {
	return strings.ReplaceAll(invoiceNumber, "/", "-")
}
