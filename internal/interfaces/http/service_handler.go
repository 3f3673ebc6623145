package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/oltiademi/hatom-invoice-task/internal/application/billing"
	"github.com/oltiademi/hatom-invoice-task/internal/application/dto"
	"github.com/oltiademi/hatom-invoice-task/internal/domain"
)

// ServiceHandler maneja las peticiones HTTP del catálogo de servicios (protegido).
type ServiceHandler struct {
	uc *billing.ServiceUseCase
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *billing.ServiceUseCase) *ServiceHandler {
	return &ServiceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear servicio del catálogo
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateServiceRequest  true  "nombre y precio"
// @Success      201   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/services/create [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	svc, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "serviceName y servicePrice son requeridos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un servicio con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(svc)
}

// List godoc
// @Summary      Listar servicios del catálogo
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/services/all [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener servicio por ID
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        serviceId  path  string  true  "ID del servicio"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/findById/{serviceId} [get]
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("serviceId")
	svc, err := h.uc.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "servicio no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(svc)
}

// Update godoc
// @Summary      Actualizar servicio (patch parcial)
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        serviceId  path  string                    true  "ID del servicio"
// @Param        body       body  dto.UpdateServiceRequest  true  "campos a reemplazar"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/update/{serviceId} [patch]
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	id := c.Params("serviceId")
	var patch dto.UpdateServiceRequest
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	svc, err := h.uc.Update(id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "servicio no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(svc)
}

// Delete godoc
// @Summary      Eliminar servicio del catálogo
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        serviceId  path  string  true  "ID del servicio"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/delete/{serviceId} [delete]
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("serviceId")
	if err := h.uc.DeleteByID(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "servicio no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
