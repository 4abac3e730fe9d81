package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(id, price string, stock int64) *entity.Product {
	return &entity.Product{ID: id, Name: "Producto " + id, Price: dec(price), Stock: stock}
}

func TestNewLineItem_UsaPrecioDelProducto(t *testing.T) {
	line, err := document.NewLineItem(product("p1", "10.00", 5), 3, nil)
	require.NoError(t, err)

	assert.Equal(t, "p1", line.ProductID)
	assert.EqualValues(t, 3, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(dec("10.00")))
	assert.True(t, line.Subtotal.Equal(dec("30.00")), "subtotal = 10.00 × 3")
	assert.NotEmpty(t, line.ID)
}

func TestNewLineItem_PrecioExplicitoTienePrioridad(t *testing.T) {
	price := dec("7.35")
	line, err := document.NewLineItem(product("p1", "10.00", 5), 4, &price)
	require.NoError(t, err)

	assert.True(t, line.UnitPrice.Equal(price))
	assert.True(t, line.Subtotal.Equal(dec("29.40")))
}

// El precio queda congelado: cambiar el producto después no altera la línea.
func TestNewLineItem_PrecioEsFoto(t *testing.T) {
	p := product("p1", "10.00", 5)
	line, err := document.NewLineItem(p, 2, nil)
	require.NoError(t, err)

	p.Price = dec("99.99")
	assert.True(t, line.UnitPrice.Equal(dec("10.00")))
	assert.True(t, line.Subtotal.Equal(dec("20.00")))
}

func TestNewLineItem_CantidadNoPositiva(t *testing.T) {
	for _, q := range []int64{0, -1, -100} {
		_, err := document.NewLineItem(product("p1", "10.00", 5), q, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d", q)
	}
}

func TestNewLineItem_PrecioNegativo(t *testing.T) {
	price := dec("-1.00")
	_, err := document.NewLineItem(product("p1", "10.00", 5), 1, &price)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewLineItem_PrecioConMasDeDosDecimales(t *testing.T) {
	price := dec("1.005")
	_, err := document.NewLineItem(product("p1", "10.00", 5), 1, &price)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	price = dec("1.500")
	_, err = document.NewLineItem(product("p1", "10.00", 5), 1, &price)
	assert.NoError(t, err, "ceros a la derecha no agregan precisión")
}

func TestNewLineItem_SinProducto(t *testing.T) {
	_, err := document.NewLineItem(nil, 1, nil)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Para cualquier p ≥ 0 y q > 0 el subtotal es exactamente p × q, sin redondeo.
func TestLineSubtotal_Exacto(t *testing.T) {
	cases := []struct {
		price string
		qty   int64
		want  string
	}{
		{"0.00", 7, "0.00"},
		{"0.01", 1, "0.01"},
		{"0.10", 3, "0.30"},
		{"19.99", 3, "59.97"},
		{"1234567.89", 1000, "1234567890.00"},
		{"0.333", 3, "0.999"},
	}
	for _, c := range cases {
		got := document.LineSubtotal(dec(c.price), c.qty)
		assert.True(t, got.Equal(dec(c.want)), "%s × %d = %s, obtenido %s", c.price, c.qty, c.want, got)
	}
}

func TestNewLineItem_PrecioSobreElMaximo(t *testing.T) {
	price := document.MaxAmount.Add(dec("0.01"))
	_, err := document.NewLineItem(product("p1", "10.00", 5), 1, &price)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = document.NewLineItem(product("p1", "10.00", 5), 1, &document.MaxAmount)
	assert.NoError(t, err, "el máximo exacto se acepta")
}
