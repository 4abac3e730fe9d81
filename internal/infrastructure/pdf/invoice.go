package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/pkg/names"
)

// Layout de la factura (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Farmacia             │  N° Factura + Fecha         │
//	│  CLIENTE: Nombre + DNI + dirección                           │
//	│  ATENDIDO POR: empleado                                      │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  TOTALES: Op. gravada / IGV 18% / TOTAL                      │
//	│  FOOTER: QR de verificación + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// GenerateInvoicePDF genera el PDF de una factura finalizada y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
	employee *entity.Employee,
	lines []billing.InvoiceLineForPDF,
) ([]byte, error) {
	m := g.newDocument("Factura " + invoice.ID)

	m.AddRows(g.invoiceHeaderRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(employeeRow(employee))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(invoice))

	return render(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) invoiceHeaderRow(invoice *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de venta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+invoice.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("DNI: %s   |   Dirección: %s   |   Email: %s",
				customer.DNI,
				nonEmpty(customer.Address, "-"),
				nonEmpty(customer.Email, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func employeeRow(employee *entity.Employee) core.Row {
	return row.New(7).Add(
		col.New(12).Add(
			text.New("Atendido por: "+names.Join(employee.Person.FirstName, employee.Person.LastNames), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows una fila por línea, con el precio congelado en la línea.
func tableLineRows(lines []billing.InvoiceLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: 12,
		})
	}
	igv := fmt.Sprintf("IGV (%s%%):", document.TaxRate.Shift(2).String())

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Op. gravada:"),
			text.New(igv, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			grand("TOTAL:", 2),
		),
		col.New(3).Add(
			value(money(invoice.Subtotal), 0),
			value(money(invoice.Tax), 6),
			grand(money(invoice.Total), 1),
		),
	)
}

// footerRow QR con id y total para verificar el comprobante en caja.
func footerRow(invoice *entity.Invoice) core.Row {
	qr := fmt.Sprintf("%s|%s|%s", invoice.ID, invoice.Date.Format("2006-01-02"), invoice.Total.StringFixed(2))
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Gracias por su compra.", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6, Left: 3, Color: colorPrimary,
			}),
			text.New("Conserve este comprobante. El IGV se calcula sobre la operación gravada.", props.Text{
				Size: 7, Top: 16, Left: 3, Color: colorGray,
			}),
		),
	)
}
