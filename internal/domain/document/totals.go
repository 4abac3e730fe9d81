package document

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// TaxRate tasa fija del IGV (18%).
var TaxRate = decimal.RequireFromString("0.18")

// currencyPlaces decimales de la moneda.
const currencyPlaces = 2

// MaxAmount mayor monto que admiten precios unitarios y totales de documento (NUMERIC(12,2)).
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Totals agregados de un documento.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Totalize suma los subtotales de las líneas y deriva IGV y total:
//
//	subtotal = Σ línea.Subtotal
//	igv      = round(subtotal × 0.18, 2)   (half-up)
//	total    = subtotal + igv
//
// Solo se redondea el IGV. Una lista vacía produce (0, 0, 0). No muta las líneas.
func Totalize(lines []entity.LineItem) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
	}
	tax := Tax(subtotal)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Tax IGV de un subtotal, redondeado a 2 decimales.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	// decimal.Round redondea half away from zero: para montos positivos equivale a half-up.
	return subtotal.Mul(TaxRate).Round(currencyPlaces)
}

// Consistent verifica total = subtotal + igv e igv = round(subtotal × tasa, 2).
func (t Totals) Consistent() bool {
	return t.Tax.Equal(Tax(t.Subtotal)) && t.Total.Equal(t.Subtotal.Add(t.Tax))
}

// Validate exige totales coherentes y dentro de MaxAmount. Un total fuera de rango es
// ErrInvalidInput; totales incoherentes indican un documento corrupto.
func (t Totals) Validate() error {
	if !t.Consistent() {
		return fmt.Errorf("totales incoherentes: subtotal %s, igv %s, total %s",
			t.Subtotal.StringFixed(2), t.Tax.StringFixed(2), t.Total.StringFixed(2))
	}
	if t.Total.GreaterThan(MaxAmount) {
		return fmt.Errorf("el total %s supera el máximo %s: %w",
			t.Total.StringFixed(2), MaxAmount.StringFixed(2), domain.ErrInvalidInput)
	}
	return nil
}
