package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/application/ledger"
	"github.com/jhoicas/kiosco-api/internal/application/reports"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/pkg/logger"
	"github.com/jhoicas/kiosco-api/pkg/pagination"
)

// Paginación de los listados de compras y ventas.
const (
	ledgerPageDefault = 20
	ledgerPageMax     = 100
)

// LedgerHandler compras y ventas (protegido).
type LedgerHandler struct {
	ledger       *ledger.StockLedger
	maxRangeDays int
	now          func() time.Time
	log          *logger.Logger
}

// NewLedgerHandler construye el handler. maxRangeDays acota el rango de los listados.
func NewLedgerHandler(l *ledger.StockLedger, maxRangeDays int, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{ledger: l, maxRangeDays: maxRangeDays, now: time.Now, log: log}
}

// CreatePurchase godoc
// @Summary      Registrar compra
// @Description  Suma stock y actualiza el costo actual de cada producto. Todo o nada.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *LedgerHandler) CreatePurchase(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	var in dto.CreatePurchaseRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	lines := make([]ledger.PurchaseLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.PurchaseLineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	meta := ledger.PurchaseMetadata{UserID: GetUserID(c), Supplier: in.Supplier, Notes: in.Notes}
	if in.Date != nil {
		meta.Date = *in.Date
	}
	p, err := h.ledger.RecordPurchase(c.Context(), kioscoID, lines, meta)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(p))
}

// GetPurchase godoc
// @Summary      Obtener compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *LedgerHandler) GetPurchase(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	p, err := h.ledger.GetPurchase(c.Context(), kioscoID, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toPurchaseResponse(p))
}

// ListPurchases godoc
// @Summary      Listar compras
// @Description  Más recientes primero. Metadatos en el header X-Pagination.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD. Default: primer día del mes."
// @Param        end_date    query  string  false  "YYYY-MM-DD. Default: hoy."
// @Param        page        query  int     false  "Página" default(1)
// @Param        page_size   query  int     false  "Tamaño de página (máx 100)" default(20)
// @Success      200  {array}   dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *LedgerHandler) ListPurchases(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	r, err := reports.ParseRange(c.Query("start_date"), c.Query("end_date"), h.now(), h.maxRangeDays)
	if err != nil {
		return writeError(c, h.log, err)
	}
	page, size := listPage(c)
	out, err := h.ledger.ListPurchases(c.Context(), kioscoID, r.Start, r.End, page, size)
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.PurchaseResponse, 0, len(out.Items))
	for _, p := range out.Items {
		items = append(items, toPurchaseResponse(p))
	}
	setPagination(c, out.Metadata())
	return c.JSON(items)
}

// CreateSale godoc
// @Summary      Registrar venta
// @Description  Descuenta stock al precio actual de cada producto. Si alguna línea excede el stock no se aplica nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *LedgerHandler) CreateSale(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	var in dto.CreateSaleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	lines := make([]ledger.SaleLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.SaleLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	s, err := h.ledger.RecordSale(c.Context(), kioscoID, lines, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(s))
}

// GetSale godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *LedgerHandler) GetSale(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	s, err := h.ledger.GetSale(c.Context(), kioscoID, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toSaleResponse(s))
}

// ListSales godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        page        query  int     false  "Página" default(1)
// @Param        page_size   query  int     false  "Tamaño de página (máx 100)" default(20)
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *LedgerHandler) ListSales(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	r, err := reports.ParseRange(c.Query("start_date"), c.Query("end_date"), h.now(), h.maxRangeDays)
	if err != nil {
		return writeError(c, h.log, err)
	}
	page, size := listPage(c)
	out, err := h.ledger.ListSales(c.Context(), kioscoID, r.Start, r.End, page, size)
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.SaleResponse, 0, len(out.Items))
	for _, s := range out.Items {
		items = append(items, toSaleResponse(s))
	}
	setPagination(c, out.Metadata())
	return c.JSON(items)
}

func listPage(c *fiber.Ctx) (page, size int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	size = pagination.Clamp(c.QueryInt("page_size", 0), ledgerPageDefault, 1, ledgerPageMax)
	return page, size
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	out := dto.PurchaseResponse{
		ID:       p.ID,
		KioscoID: p.KioscoID,
		UserID:   p.UserID,
		Supplier: p.Supplier,
		Notes:    p.Notes,
		Date:     p.Date,
		Total:    p.Total,
		Lines:    make([]dto.PurchaseLineResponse, 0, len(p.Lines)),
	}
	for _, l := range p.Lines {
		out.Lines = append(out.Lines, dto.PurchaseLineResponse{
			ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity, UnitCost: l.UnitCost, Subtotal: l.Subtotal,
		})
	}
	return out
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:       s.ID,
		KioscoID: s.KioscoID,
		UserID:   s.UserID,
		Date:     s.Date,
		Total:    s.Total,
		Lines:    make([]dto.SaleLineResponse, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice, Subtotal: l.Subtotal,
		})
	}
	return out
}
