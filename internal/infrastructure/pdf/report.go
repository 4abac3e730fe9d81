package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/report"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// GenerateGeneralReportPDF renderiza el reporte general.
func (g *MarotoPDFGenerator) GenerateGeneralReportPDF(_ context.Context, r *dto.GeneralReportDTO) ([]byte, error) {
	m := g.newDocument("Reporte general")
	m.AddRows(g.reportTitleRow("REPORTE GENERAL", r.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(r.Sales, r.Purchases, r.NetProfit)...)
	m.AddRows(topProductRows(r.TopProducts)...)
	m.AddRows(topSupplierRows(r.TopSuppliers)...)
	return render(m)
}

// GenerateMonthlyReportPDF renderiza el reporte del mes con su desglose por producto.
func (g *MarotoPDFGenerator) GenerateMonthlyReportPDF(_ context.Context, r *dto.MonthlyReportDTO) ([]byte, error) {
	m := g.newDocument("Reporte mensual " + r.Label)
	m.AddRows(g.reportTitleRow("REPORTE MENSUAL: "+r.Label, r.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(r.Sales, r.Purchases, r.NetProfit)...)
	m.AddRows(breakdownRows(r.Breakdown)...)
	m.AddRows(topProductRows(r.TopProducts)...)
	m.AddRows(topSupplierRows(r.TopSuppliers)...)
	return render(m)
}

func (g *MarotoPDFGenerator) reportTitleRow(title, generatedAt string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.storeName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 9}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt, props.Text{Size: 7, Align: align.Right, Top: 3, Color: colorGray}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

// headerCells fila de encabezado de tabla; sizes debe sumar 12.
func headerCells(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func valueCells(values []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func summaryRows(sales, purchases dto.DocumentTotalsDTO, net decimal.Decimal) []core.Row {
	sizes := []int{3, 2, 2, 2, 3}
	return []core.Row{
		sectionRow("RESUMEN"),
		headerCells([]string{"Concepto", "Documentos", "Subtotal", "IGV", "Total"}, sizes),
		valueCells([]string{"Ventas", fmt.Sprintf("%d", sales.Count), money(sales.Subtotal), money(sales.Tax), money(sales.Total)}, sizes),
		valueCells([]string{"Compras", fmt.Sprintf("%d", purchases.Count), money(purchases.Subtotal), money(purchases.Tax), money(purchases.Total)}, sizes),
		row.New(8).Add(
			col.New(9).Add(text.New("Utilidad neta (ventas - compras):", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2,
			})),
			col.New(3).Add(text.New(money(net), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1, Color: colorPrimary,
			})),
		),
	}
}

func topProductRows(products []dto.TopProductDTO) []core.Row {
	sizes := []int{7, 2, 3}
	rows := []core.Row{
		sectionRow("PRODUCTOS MÁS VENDIDOS"),
		headerCells([]string{"Producto", "Unidades", "Ingresos"}, sizes),
	}
	if len(products) == 0 {
		return append(rows, emptyRow("Sin ventas en el período."))
	}
	for _, p := range products {
		rows = append(rows, valueCells([]string{p.ProductName, fmt.Sprintf("%d", p.UnitsSold), money(p.Revenue)}, sizes))
	}
	return rows
}

func topSupplierRows(suppliers []dto.TopSupplierResponse) []core.Row {
	sizes := []int{7, 2, 3}
	rows := []core.Row{
		sectionRow("PROVEEDORES"),
		headerCells([]string{"Proveedor", "Pedidos", "Total comprado"}, sizes),
	}
	if len(suppliers) == 0 {
		return append(rows, emptyRow("Sin pedidos completados en el período."))
	}
	for _, s := range suppliers {
		rows = append(rows, valueCells([]string{s.SupplierName, fmt.Sprintf("%d", s.OrderCount), money(s.Total)}, sizes))
	}
	return rows
}

func breakdownRows(items []dto.ProductSalesBreakdownDTO) []core.Row {
	sizes := []int{4, 2, 2, 2, 2}
	rows := []core.Row{
		sectionRow("VENTAS POR PRODUCTO"),
		headerCells([]string{"Producto", "Unidades", "Subtotal", "IGV", "Total"}, sizes),
	}
	if len(items) == 0 {
		return append(rows, emptyRow("Sin ventas en el mes."))
	}
	for _, b := range items {
		rows = append(rows, valueCells([]string{
			b.ProductName, fmt.Sprintf("%d", b.UnitsSold), money(b.Subtotal), money(b.Tax), money(b.Total),
		}, sizes))
	}
	return rows
}
