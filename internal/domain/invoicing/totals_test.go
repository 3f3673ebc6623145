package invoicing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oltiademi/hatom-invoice-task/internal/domain/invoicing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTotals_CasoBase(t *testing.T) {
	lines := []invoicing.Line{
		{Quantity: dec("1"), UnitPrice: dec("600")},
		{Quantity: dec("1"), UnitPrice: dec("600")},
		{Quantity: dec("1"), UnitPrice: dec("600")},
	}

	subtotal, vatAmount, total := invoicing.Totals(lines, dec("20"), dec("10"))

	assert.True(t, subtotal.Equal(dec("1800")), "subtotal: %s", subtotal)
	assert.True(t, vatAmount.Equal(dec("360")), "vatAmount: %s", vatAmount)
	assert.True(t, total.Equal(dec("2150")), "total: %s", total)
}

// Solo el total final se redondea; subtotal e IVA se mantienen exactos.
func TestTotals_RedondeoSoloAlFinal(t *testing.T) {
	lines := []invoicing.Line{
		{Quantity: dec("3"), UnitPrice: dec("33.333")},
	}

	subtotal, vatAmount, total := invoicing.Totals(lines, dec("19"), dec("0"))

	require.True(t, subtotal.Equal(dec("99.999")), "subtotal sin redondear: %s", subtotal)
	require.True(t, vatAmount.Equal(dec("18.99981")), "iva sin redondear: %s", vatAmount)
	// 99.999 + 18.99981 = 118.99881 → 119.00
	assert.Equal(t, "119.00", total.StringFixed(2))
}

// Redondeo mitad hacia arriba: 0.005 sube.
func TestTotals_MitadHaciaArriba(t *testing.T) {
	lines := []invoicing.Line{
		{Quantity: dec("1"), UnitPrice: dec("10.005")},
	}

	_, _, total := invoicing.Totals(lines, dec("0"), dec("0"))
	assert.Equal(t, "10.01", total.StringFixed(2))
}

func TestTotals_DescuentoMayorProduceNegativo(t *testing.T) {
	lines := []invoicing.Line{
		{Quantity: dec("1"), UnitPrice: dec("100")},
	}

	_, _, total := invoicing.Totals(lines, dec("0"), dec("150"))
	assert.Equal(t, "-50.00", total.StringFixed(2))
}

func TestTotals_SinLineas(t *testing.T) {
	subtotal, vatAmount, total := invoicing.Totals(nil, dec("20"), dec("0"))

	assert.True(t, subtotal.IsZero())
	assert.True(t, vatAmount.IsZero())
	assert.True(t, total.IsZero())
}

func TestLineTotal_CantidadFraccionaria(t *testing.T) {
	total := invoicing.LineTotal(dec("2.5"), dec("100"))
	assert.True(t, total.Equal(dec("250")))
}
