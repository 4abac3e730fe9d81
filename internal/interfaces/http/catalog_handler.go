package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// CategoryHandler CRUD de categorías (protegido).
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	var in dto.CategoryRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SupplierHandler CRUD de proveedores y ranking de compras (protegido).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GET /api/v1/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Top godoc
// @Summary      Proveedores con más compras
// @Description  Los 10 proveedores con mayor total en pedidos finalizados.
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TopSupplierResponse
// @Router       /api/v1/suppliers/top [get]
func (h *SupplierHandler) Top(c *fiber.Ctx) error {
	out, err := h.uc.Top(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	var in dto.SupplierRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
