package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agrega sobre los documentos FINALIZED del Store.
type ReportRepo struct {
	s *Store
}

// NewReportRepository construye el repositorio de reportes sobre s.
func NewReportRepository(s *Store) *ReportRepo { return &ReportRepo{s: s} }

func inPeriod(p repository.Period, t time.Time) bool {
	if !p.Start.IsZero() && t.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && !t.Before(p.End) {
		return false
	}
	return true
}

func (r *ReportRepo) finalizedInvoices(p repository.Period) []entity.Invoice {
	var out []entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.Status == entity.StatusFinalized && inPeriod(p, inv.Date) {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (r *ReportRepo) finalizedOrders(p repository.Period) []entity.PurchaseOrder {
	var out []entity.PurchaseOrder
	for _, po := range r.s.orders {
		if po.Status == entity.StatusFinalized && inPeriod(p, po.OrderDate) {
			out = append(out, po)
		}
	}
	return out
}

// GetSalesTotals suma las facturas finalizadas del período.
func (r *ReportRepo) GetSalesTotals(_ context.Context, p repository.Period) (repository.DocumentTotalsResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := repository.DocumentTotalsResult{}
	for _, inv := range r.finalizedInvoices(p) {
		res.Count++
		res.Subtotal = res.Subtotal.Add(inv.Subtotal)
		res.Tax = res.Tax.Add(inv.Tax)
		res.Total = res.Total.Add(inv.Total)
	}
	return res, nil
}

// GetPurchaseTotals suma los pedidos finalizados del período.
func (r *ReportRepo) GetPurchaseTotals(_ context.Context, p repository.Period) (repository.DocumentTotalsResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := repository.DocumentTotalsResult{}
	for _, po := range r.finalizedOrders(p) {
		res.Count++
		res.Subtotal = res.Subtotal.Add(po.Subtotal)
		res.Tax = res.Tax.Add(po.Tax)
		res.Total = res.Total.Add(po.Total)
	}
	return res, nil
}

// GetTopProducts ordena por unidades vendidas.
func (r *ReportRepo) GetTopProducts(_ context.Context, p repository.Period, limit int) ([]repository.ProductSalesResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byID := map[string]*repository.ProductSalesResult{}
	for _, inv := range r.finalizedInvoices(p) {
		for _, l := range inv.Lines {
			row, ok := byID[l.ProductID]
			if !ok {
				row = &repository.ProductSalesResult{ProductID: l.ProductID, ProductName: r.s.products[l.ProductID].Name}
				byID[l.ProductID] = row
			}
			row.UnitsSold += l.Quantity
			row.Revenue = row.Revenue.Add(l.Subtotal)
		}
	}
	out := make([]repository.ProductSalesResult, 0, len(byID))
	for _, row := range byID {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitsSold == out[j].UnitsSold {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].UnitsSold > out[j].UnitsSold
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetTopSuppliers ordena por monto comprado.
func (r *ReportRepo) GetTopSuppliers(_ context.Context, p repository.Period, limit int) ([]repository.SupplierPurchasesResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byID := map[string]*repository.SupplierPurchasesResult{}
	for _, po := range r.finalizedOrders(p) {
		row, ok := byID[po.SupplierID]
		if !ok {
			row = &repository.SupplierPurchasesResult{
				SupplierID:   po.SupplierID,
				SupplierName: r.s.suppliers[po.SupplierID].Name,
				Total:        decimal.Zero,
			}
			byID[po.SupplierID] = row
		}
		row.OrderCount++
		row.Total = row.Total.Add(po.Total)
	}
	out := make([]repository.SupplierPurchasesResult, 0, len(byID))
	for _, row := range byID {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Equal(out[j].Total) {
			return out[i].SupplierName < out[j].SupplierName
		}
		return out[i].Total.GreaterThan(out[j].Total)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListSoldLines devuelve las líneas vendidas del período.
func (r *ReportRepo) ListSoldLines(_ context.Context, p repository.Period) ([]repository.SoldLineResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.SoldLineResult
	for _, inv := range r.finalizedInvoices(p) {
		for _, l := range inv.Lines {
			out = append(out, repository.SoldLineResult{
				InvoiceID:   inv.ID,
				ProductID:   l.ProductID,
				ProductName: r.s.products[l.ProductID].Name,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				Subtotal:    l.Subtotal,
			})
		}
	}
	return out, nil
}
