package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
)

func TestCustomerUseCase_Create(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepository(memory.NewStore()))
	ctx := context.Background()

	c, err := uc.Register(ctx, dto.CustomerRequest{FirstName: " rosa  maría", LastName: "QUISPE", DNI: "45678912"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Rosa María", c.FirstName)
	assert.Equal(t, "Rosa María Quispe", c.FullName)
	assert.False(t, c.RegisteredAt.IsZero())

	_, err = uc.Create(ctx, dto.CustomerRequest{FirstName: "Otro", DNI: "45678912"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomerUseCase_DNIInvalido(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepository(memory.NewStore()))
	for _, dni := range []string{"", "1234567", "123456789", "1234567a"} {
		_, err := uc.Create(context.Background(), dto.CustomerRequest{FirstName: "X", DNI: dni})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "dni %q", dni)
	}
}

func TestCustomerUseCase_UpdateYDelete(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepository(memory.NewStore()))
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CustomerRequest{FirstName: "Ana", DNI: "11111111"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CustomerRequest{FirstName: "Beto", DNI: "22222222"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, a.ID, dto.CustomerRequest{FirstName: "Ana", DNI: "22222222"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := uc.Update(ctx, a.ID, dto.CustomerRequest{FirstName: "ana lucía", Address: "Av. Sol 123", DNI: "33333333"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lucía", upd.FirstName)
	assert.Equal(t, "33333333", upd.DNI)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	require.NoError(t, uc.Delete(ctx, a.ID))
	_, err = uc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
