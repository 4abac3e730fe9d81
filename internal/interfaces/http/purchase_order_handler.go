package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// PurchaseOrderHandler maneja los pedidos de compra a proveedores (protegido).
type PurchaseOrderHandler struct {
	uc *purchasing.UseCase
}

func NewPurchaseOrderHandler(uc *purchasing.UseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido de compra
// @Description  El pedido nace en DRAFT; el stock no cambia hasta que pasa a FINALIZED.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  DRAFT -> IN_PROCESS -> FINALIZED. Al pasar a FINALIZED se suma el stock.
// @Description  Acepta también Pendiente, En Proceso y Completado.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del pedido"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/v1/purchase-orders/{id}/status [put]
func (h *PurchaseOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrDocumentNotFound)
	if !ok {
		return err
	}
	var in dto.UpdateStatusRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrDocumentNotFound)
	if !ok {
		return err
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DELETE /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrDocumentNotFound)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
