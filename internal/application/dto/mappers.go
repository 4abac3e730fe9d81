package dto

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// LineItemsFrom mapea líneas de dominio; names aporta el nombre del producto si se conoce.
func LineItemsFrom(lines []entity.LineItem, names map[string]string) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineItemResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: names[l.ProductID],
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}

// InvoiceFrom mapea una factura de dominio.
func InvoiceFrom(inv *entity.Invoice, names map[string]string) InvoiceResponse {
	resp := InvoiceResponse{
		ID:         inv.ID,
		EmployeeID: inv.EmployeeID,
		CustomerID: inv.CustomerID,
		Date:       inv.Date,
		Status:     string(inv.Status),
		Subtotal:   inv.Subtotal,
		Tax:        inv.Tax,
		Total:      inv.Total,
	}
	if len(inv.Lines) > 0 {
		resp.Lines = LineItemsFrom(inv.Lines, names)
	}
	return resp
}

// PurchaseOrderFrom mapea un pedido de compra de dominio.
func PurchaseOrderFrom(po *entity.PurchaseOrder, names map[string]string) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:         po.ID,
		SupplierID: po.SupplierID,
		OrderDate:  po.OrderDate,
		Status:     string(po.Status),
		Subtotal:   po.Subtotal,
		Tax:        po.Tax,
		Total:      po.Total,
	}
	if len(po.Lines) > 0 {
		resp.Lines = LineItemsFrom(po.Lines, names)
	}
	return resp
}
