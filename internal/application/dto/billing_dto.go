package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest crea o actualiza un cliente. DNI: 8 dígitos.
type CustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address" validate:"max=255"`
	DNI       string `json:"dni" validate:"required,len=8,numeric"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	DNI          string    `json:"dni"`
	RegisteredAt time.Time `json:"registered_at"`
}

// LineItemRequest línea de factura o pedido. Sin unit_price se toma el precio del producto.
// La cantidad la valida el cálculo de líneas (debe ser > 0).
type LineItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateInvoiceRequest body para POST /api/v1/invoices.
// Draft=true deja la factura en DRAFT sin tocar stock.
type CreateInvoiceRequest struct {
	EmployeeID string            `json:"employee_id" validate:"required,uuid"`
	CustomerID string            `json:"customer_id" validate:"required,uuid"`
	Draft      bool              `json:"draft"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// LineItemResponse línea en respuestas.
type LineItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura con detalle para GET /api/v1/invoices/:id.
type InvoiceResponse struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employee_id"`
	CustomerID string             `json:"customer_id"`
	Date       time.Time          `json:"date"`
	Status     string             `json:"status"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Tax        decimal.Decimal    `json:"tax"`
	Total      decimal.Decimal    `json:"total"`
	Lines      []LineItemResponse `json:"lines,omitempty"`
}

// CreatePurchaseOrderRequest body para POST /api/v1/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string            `json:"supplier_id" validate:"required,uuid"`
	OrderDate  string            `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest body para PUT /api/v1/purchase-orders/:id/status.
// Acepta DRAFT, IN_PROCESS, FINALIZED o las etiquetas Pendiente, En Proceso, Completado.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PurchaseOrderResponse pedido de compra en respuestas.
type PurchaseOrderResponse struct {
	ID         string             `json:"id"`
	SupplierID string             `json:"supplier_id"`
	OrderDate  time.Time          `json:"order_date"`
	Status     string             `json:"status"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Tax        decimal.Decimal    `json:"tax"`
	Total      decimal.Decimal    `json:"total"`
	Lines      []LineItemResponse `json:"lines,omitempty"`
}
