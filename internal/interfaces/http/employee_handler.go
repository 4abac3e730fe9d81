package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// EmployeeHandler CRUD de empleados con su persona anidada (protegido).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeRequest  true  "Empleado y datos personales"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
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

// GET /api/v1/employees
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PUT /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	var in dto.EmployeeRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
