package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas sin hora en requests y responses.
const DateLayout = "2006-01-02"

// CreateProductRequest entrada para crear un producto. Stock es el stock inicial.
type CreateProductRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=255"`
	Description    string          `json:"description" validate:"max=2000"`
	Presentation   string          `json:"presentation" validate:"max=100"`
	ExpirationDate string          `json:"expiration_date" validate:"required,datetime=2006-01-02"`
	SupplierID     string          `json:"supplier_id" validate:"omitempty,uuid"`
	CategoryID     string          `json:"category_id" validate:"omitempty,uuid"`
	ImageURL       string          `json:"image_url" validate:"omitempty,url,max=500"`
	Stock          int64           `json:"stock" validate:"min=0"`
	Price          decimal.Decimal `json:"price"`
}

// UpdateProductRequest actualización parcial. Stock no se edita por aquí.
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string          `json:"description" validate:"omitempty,max=2000"`
	Presentation   *string          `json:"presentation" validate:"omitempty,max=100"`
	ExpirationDate *string          `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	SupplierID     *string          `json:"supplier_id" validate:"omitempty,uuid"`
	CategoryID     *string          `json:"category_id" validate:"omitempty,uuid"`
	ImageURL       *string          `json:"image_url" validate:"omitempty,url,max=500"`
	Price          *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Presentation   string          `json:"presentation"`
	ExpirationDate string          `json:"expiration_date"`
	SupplierID     string          `json:"supplier_id,omitempty"`
	CategoryID     string          `json:"category_id,omitempty"`
	ImageURL       string          `json:"image_url,omitempty"`
	Stock          int64           `json:"stock"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MedicineRequest crea o actualiza un medicamento.
type MedicineRequest struct {
	ProductID            string `json:"product_id" validate:"required,uuid"`
	PrescriptionRequired bool   `json:"prescription_required"`
}

// MedicineResponse salida de un medicamento.
type MedicineResponse struct {
	ID                   string    `json:"id"`
	ProductID            string    `json:"product_id"`
	PrescriptionRequired bool      `json:"prescription_required"`
	CreatedAt            time.Time `json:"created_at"`
}

// CategoryRequest crea o renombra una categoría.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SupplierRequest crea o actualiza un proveedor.
type SupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Address string `json:"address" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// TopSupplierResponse proveedor en el ranking de compras.
type TopSupplierResponse struct {
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	OrderCount   int             `json:"order_count"`
	Total        decimal.Decimal `json:"total"`
}
