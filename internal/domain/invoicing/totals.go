// Package invoicing contiene la lógica de dominio pura de facturación:
// cálculo de totales y formato/secuencia del número de factura.
package invoicing

import "github.com/shopspring/decimal"

// Line es una línea (cantidad, precio unitario) para el cálculo de totales.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// LineTotal calcula el total de una línea: Quantity * UnitPrice (sin redondear).
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Totals calcula subtotal, monto de IVA y total de la factura.
//
//	subtotal  = Σ (quantity * unitPrice)
//	vatAmount = subtotal * vatPercent / 100
//	total     = round2(subtotal + vatAmount - discount)
//
// Solo el total final se redondea (2 decimales, mitad hacia arriba); los
// intermedios se mantienen exactos. Un descuento mayor que subtotal+IVA
// produce un total negativo: se acepta tal cual.
func Totals(lines []Line, vatPercent, discount decimal.Decimal) (subtotal, vatAmount, total decimal.Decimal) {
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.Quantity, l.UnitPrice))
	}
	vatAmount = subtotal.Mul(vatPercent).Div(decimal.NewFromInt(100))
	total = subtotal.Add(vatAmount).Sub(discount).Round(2)
	return subtotal, vatAmount, total
}
