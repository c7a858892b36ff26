package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/application/usecase"
	"github.com/jhoicas/kiosco-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	var in dto.CreateProductRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), kioscoID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.Context(), kioscoID, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Más recientes primero. page_size se acota a [1,10]. Metadatos en el header X-Pagination.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page       query  int  false  "Página"          default(1)
// @Param        page_size  query  int  false  "Tamaño de página" default(10)
// @Success      200        {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	page, err := h.uc.List(c.Context(), kioscoID, c.QueryInt("page", 1), c.QueryInt("page_size", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	setPagination(c, page.Metadata())
	return c.JSON(page.Items)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Solo los campos presentes. Costo y stock no se modifican por esta vía.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var in dto.UpdateProductRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), kioscoID, id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
