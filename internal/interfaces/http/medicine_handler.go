package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// MedicineHandler CRUD de medicamentos (protegido).
type MedicineHandler struct {
	uc *usecase.MedicineUseCase
}

func NewMedicineHandler(uc *usecase.MedicineUseCase) *MedicineHandler {
	return &MedicineHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar medicamento
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MedicineRequest  true  "Producto y receta"
// @Success      201   {object}  dto.MedicineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/medicines [post]
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var in dto.MedicineRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GET /api/v1/medicines/:id
func (h *MedicineHandler) GetByID(c *fiber.Ctx) error {
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

// GET /api/v1/medicines
func (h *MedicineHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PUT /api/v1/medicines/:id
func (h *MedicineHandler) Update(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	var in dto.MedicineRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DELETE /api/v1/medicines/:id
func (h *MedicineHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrNotFound)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
