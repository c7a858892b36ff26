package http

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/pkg/logger"
	"github.com/jhoicas/kiosco-api/pkg/pagination"
	"github.com/jhoicas/kiosco-api/pkg/validator"
)

// HeaderPagination metadatos de la página en JSON.
const HeaderPagination = "X-Pagination"

// writeError traduce un error de la capa de aplicación a su respuesta HTTP.
// Los errores no reconocidos se registran y salen como 500 sin detalle interno.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var (
		verr  *domain.ValidationError
		rerr  *domain.InvalidRangeError
		nferr *domain.ProductNotFoundError
		serr  *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: verr.Error(),
			Details: fiber.Map{"field": verr.Field, "reason": verr.Reason},
		})
	case errors.As(err, &rerr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_RANGE", Message: rerr.Error(),
			Details: fiber.Map{"bound": rerr.Bound, "reason": rerr.Reason},
		})
	case errors.As(err, &nferr):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "PRODUCT_NOT_FOUND", Message: nferr.Error(),
			Details: fiber.Map{"product_ids": nferr.ProductIDs},
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.As(err, &serr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: serr.Error(),
			Details: fiber.Map{"product_id": serr.ProductID, "requested": serr.Requested, "available": serr.Available},
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CANCELLED", Message: "la operación fue cancelada"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Str("kiosco_id", GetKioscoID(c)).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// bindJSON parsea el cuerpo y corre las reglas `validate`. Devuelve false si ya respondió 400.
func bindJSON(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(out); len(errs) > 0 {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "campos inválidos", Details: errs,
		})
	}
	return true, nil
}

// unauthorized respuesta para un token sin kiosco.
func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "kiosco_id requerido"})
}

// pathID devuelve el :id de la ruta; uno mal formado responde 404 igual que uno inexistente.
func pathID(c *fiber.Ctx) (string, bool, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return id, true, nil
}

func setPagination(c *fiber.Ctx, meta pagination.Metadata) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return
	}
	c.Set(HeaderPagination, string(raw))
}
