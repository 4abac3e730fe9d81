// Package pdf genera con Maroto v2 el comprobante de venta y los reportes de la farmacia.
// Solo presenta montos ya calculados y persistidos; nunca recalcula totales.
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// currencySymbol símbolo del sol peruano.
const currencySymbol = "S/ "

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator y report.PDFGenerator.
type MarotoPDFGenerator struct {
	storeName string
}

// NewMarotoPDFGenerator construye el generador; storeName encabeza cada documento.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	if storeName == "" {
		storeName = "Farmacia"
	}
	return &MarotoPDFGenerator{storeName: storeName}
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.storeName, true).
		Build()
	return maroto.New(cfg)
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un monto con dos decimales y separador de miles.
// Ej: 1234.5 → "S/ 1,234.50"
func money(d decimal.Decimal) string {
	return currencySymbol + groupThousands(d.StringFixed(2))
}

// groupThousands inserta comas de miles en la parte entera de un string numérico.
// Ej: "25000.00" → "25,000.00", "-1000" → "-1,000"
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := sign + string(buf)
	if hasFrac {
		out += "." + frac
	}
	return out
}
