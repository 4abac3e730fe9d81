package entity

import "github.com/shopspring/decimal"

// DocumentStatus estado de una factura o pedido de compra.
type DocumentStatus string

// Estados de un documento. El avance es monótono: DRAFT -> IN_PROCESS -> FINALIZED.
const (
	StatusDraft     DocumentStatus = "DRAFT"      // Pendiente
	StatusInProcess DocumentStatus = "IN_PROCESS" // En proceso
	StatusFinalized DocumentStatus = "FINALIZED"  // Completado; ya afectó el stock
)

// LineItem línea de un documento. UnitPrice es una foto del precio al momento de crearla
// y no cambia aunque cambie el precio del producto.
type LineItem struct {
	ID         string
	DocumentID string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}
