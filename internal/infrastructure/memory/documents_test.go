package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
)

func TestDocumentos_IDNoUUID(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	invoices := memory.NewInvoiceRepository(store)
	orders := memory.NewPurchaseOrderRepository(store)

	inv, err := invoices.GetByID(ctx, "abc")
	assert.Error(t, err)
	assert.Nil(t, inv)
	assert.Error(t, invoices.Delete(ctx, "abc"))

	po, err := orders.GetForUpdate(ctx, "abc")
	assert.Error(t, err)
	assert.Nil(t, po)
	assert.Error(t, orders.Delete(ctx, "abc"))

	missing, err := invoices.GetByID(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
