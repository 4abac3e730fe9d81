package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// maxProductPrice tope de products.price NUMERIC(10,2).
var maxProductPrice = decimal.RequireFromString("99999999.99")

// validPrice exige un monto no negativo con a lo sumo dos decimales.
func validPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return fmt.Errorf("el precio no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if p.GreaterThan(maxProductPrice) {
		return fmt.Errorf("el precio supera el máximo %s: %w", maxProductPrice, domain.ErrInvalidInput)
	}
	if !p.Equal(p.Round(2)) {
		return fmt.Errorf("el precio admite a lo sumo dos decimales: %w", domain.ErrInvalidInput)
	}
	return nil
}

// parseExpiration valida que la fecha de vencimiento no sea anterior a hoy.
func parseExpiration(s string, now time.Time) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha de vencimiento %q: %w", s, domain.ErrInvalidInput)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return time.Time{}, fmt.Errorf("la fecha de vencimiento no puede estar en el pasado: %w", domain.ErrInvalidInput)
	}
	return d, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dto.DateLayout)
}
