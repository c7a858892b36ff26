package reports

import (
	"context"
	"time"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/pkg/pagination"
)

// Reporter los cuatro reportes. Lo implementan Engine (cálculo directo) y CachedReports.
type Reporter interface {
	KPISummary(ctx context.Context, kioscoID string, r Range) (*dto.KPISummaryDTO, error)
	TopProducts(ctx context.Context, kioscoID string, r Range, q TopQuery) (pagination.Page[dto.TopProductDTO], error)
	SalesByDay(ctx context.Context, kioscoID string, r Range) ([]dto.DailySalesDTO, error)
	CategoryProfitability(ctx context.Context, kioscoID string, r Range) ([]dto.CategoryProfitabilityDTO, error)
}

// Cache almacenamiento de resultados serializados con expiración deslizante y absoluta.
// Get devuelve ok=false si la clave no existe o expiró.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, sliding, absolute time.Duration) error
}

// Exporter convierte una tabla de reporte en un documento descargable.
type Exporter interface {
	Export(t Table) ([]byte, error)
	ContentType() string
	Extension() string
}
