package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
)

func futureDate() string {
	return time.Now().AddDate(1, 0, 0).Format(dto.DateLayout)
}

func newProductUseCase(store *memory.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(
		memory.NewProductRepository(store),
		memory.NewCategoryRepository(store),
		memory.NewSupplierRepository(store),
	)
}

func TestProductUseCase_Create(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	cats := usecase.NewCategoryUseCase(memory.NewCategoryRepository(store))
	cat, err := cats.Create(ctx, dto.CategoryRequest{Name: "Analgésicos"})
	require.NoError(t, err)
	uc := newProductUseCase(store)

	p, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:           "Ibuprofeno 400mg",
		Presentation:   "caja x 10",
		ExpirationDate: futureDate(),
		CategoryID:     cat.ID,
		Stock:          20,
		Price:          decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), p.Stock)
	assert.Equal(t, "12.50", p.Price.StringFixed(2))

	byCat, err := uc.ListByCategory(ctx, cat.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, byCat.Items, 1)
	assert.Equal(t, p.ID, byCat.Items[0].ID)

	_, err = uc.ListByCategory(ctx, uuid.New().String(), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_CreateValida(t *testing.T) {
	uc := newProductUseCase(memory.NewStore())
	ctx := context.Background()
	base := dto.CreateProductRequest{Name: "X", ExpirationDate: futureDate(), Price: decimal.RequireFromString("1.00")}

	past := base
	past.ExpirationDate = time.Now().AddDate(0, 0, -2).Format(dto.DateLayout)
	_, err := uc.Create(ctx, past)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := base
	negative.Price = decimal.RequireFromString("-1")
	_, err = uc.Create(ctx, negative)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	huge := base
	huge.Price = decimal.RequireFromString("100000000.00")
	_, err = uc.Create(ctx, huge)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	precise := base
	precise.Price = decimal.RequireFromString("1.999")
	_, err = uc.Create(ctx, precise)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	orphan := base
	orphan.CategoryID = uuid.New().String()
	_, err = uc.Create(ctx, orphan)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	today := base
	today.ExpirationDate = time.Now().Format(dto.DateLayout)
	_, err = uc.Create(ctx, today)
	assert.NoError(t, err)
}

func TestProductUseCase_UpdateNoTocaStock(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{
		Name: "Jarabe", ExpirationDate: futureDate(), Stock: 7, Price: decimal.RequireFromString("9.90"),
	})
	require.NoError(t, err)

	name := "Jarabe para la tos"
	price := decimal.RequireFromString("11.00")
	upd, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, name, upd.Name)
	assert.Equal(t, "11.00", upd.Price.StringFixed(2))

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Stock)

	require.NoError(t, uc.Delete(ctx, p.ID))
	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMedicineUseCase(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	p, err := newProductUseCase(store).Create(ctx, dto.CreateProductRequest{
		Name: "Amoxicilina", ExpirationDate: futureDate(), Price: decimal.RequireFromString("15.00"),
	})
	require.NoError(t, err)
	uc := usecase.NewMedicineUseCase(memory.NewMedicineRepository(store))

	m, err := uc.Create(ctx, dto.MedicineRequest{ProductID: p.ID, PrescriptionRequired: true})
	require.NoError(t, err)
	assert.True(t, m.PrescriptionRequired)

	_, err = uc.Create(ctx, dto.MedicineRequest{ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.MedicineRequest{ProductID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	upd, err := uc.Update(ctx, m.ID, dto.MedicineRequest{ProductID: p.ID})
	require.NoError(t, err)
	assert.False(t, upd.PrescriptionRequired)

	require.NoError(t, uc.Delete(ctx, m.ID))
	_, err = uc.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUseCase_NombreUnico(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memory.NewCategoryRepository(memory.NewStore()))
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CategoryRequest{Name: " Vitaminas "})
	require.NoError(t, err)
	assert.Equal(t, "Vitaminas", a.Name)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "vitaminas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	b, err := uc.Create(ctx, dto.CategoryRequest{Name: "Antibióticos"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, b.ID, dto.CategoryRequest{Name: "VITAMINAS"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

func TestSupplierUseCase_Top(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewSupplierUseCase(memory.NewSupplierRepository(store), memory.NewReportRepository(store))
	orders := memory.NewPurchaseOrderRepository(store)

	big, err := uc.Create(ctx, dto.SupplierRequest{Name: "Droguería Norte"})
	require.NoError(t, err)
	small, err := uc.Create(ctx, dto.SupplierRequest{Name: "Laboratorio Sur"})
	require.NoError(t, err)

	addOrder := func(supplierID, total string, status entity.DocumentStatus) {
		tot := decimal.RequireFromString(total)
		require.NoError(t, orders.Create(ctx, &entity.PurchaseOrder{
			ID: uuid.New().String(), SupplierID: supplierID, OrderDate: time.Now(),
			Status: status, Subtotal: tot, Tax: decimal.Zero, Total: tot,
		}))
	}
	addOrder(big.ID, "500.00", entity.StatusFinalized)
	addOrder(big.ID, "100.00", entity.StatusFinalized)
	addOrder(small.ID, "50.00", entity.StatusFinalized)
	addOrder(small.ID, "9000.00", entity.StatusDraft)

	top, err := uc.Top(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, big.ID, top[0].SupplierID)
	assert.Equal(t, 2, top[0].OrderCount)
	assert.Equal(t, "600.00", top[0].Total.StringFixed(2))
	assert.Equal(t, "Laboratorio Sur", top[1].SupplierName)

	assert.ErrorIs(t, uc.Delete(ctx, big.ID), domain.ErrConflict)
}

func TestEmployeeUseCase(t *testing.T) {
	uc := usecase.NewEmployeeUseCase(memory.NewEmployeeRepository(memory.NewStore()))
	ctx := context.Background()
	in := dto.EmployeeRequest{
		Person:   dto.PersonRequest{FirstName: "carlos", LastNames: "RAMOS díaz", Identification: "70112233"},
		Position: "Químico farmacéutico",
		HireDate: "2024-02-01",
		Salary:   decimal.RequireFromString("2500.00"),
	}

	e, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Ramos Díaz", e.Person.FullName)
	assert.Equal(t, entity.RoleEmpleado, e.Role)
	assert.Equal(t, "2024-02-01", e.HireDate)

	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	in.Role = entity.RoleAdmin
	in.HireDate = "01-02-2024"
	_, err = uc.Update(ctx, e.ID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.HireDate = ""
	upd, err := uc.Update(ctx, e.ID, in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, upd.Role)
	assert.Empty(t, upd.HireDate)

	require.NoError(t, uc.Delete(ctx, e.ID))
	_, err = uc.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
