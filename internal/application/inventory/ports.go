package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la pieza, sus tres colecciones hijas y el stock se guarden de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		manufacturerRepo repository.PartManufacturerRepository,
		distributorRepo repository.PartDistributorRepository,
		parameterRepo repository.PartParameterRepository,
		stockRepo repository.StockEntryRepository,
	) error) error
}

// References repositorios de catálogo usados para resolver las referencias de una pieza.
type References struct {
	Categories       repository.CategoryRepository
	Footprints       repository.FootprintRepository
	StorageLocations repository.StorageLocationRepository
	PartUnits        repository.PartUnitRepository
	Manufacturers    repository.ManufacturerRepository
	Distributors     repository.DistributorRepository
}

// StockChangedEvent evento publicado tras cada movimiento de stock confirmado.
type StockChangedEvent struct {
	EventID       string    `json:"event_id"`
	PartID        int64     `json:"part_id"`
	PartName      string    `json:"part_name"`
	Quantity      int64     `json:"quantity"`
	StockLevel    int64     `json:"stock_level"`
	MinStockLevel int64     `json:"min_stock_level"`
	BelowMinimum  bool      `json:"below_minimum"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher publica eventos de inventario hacia sistemas externos.
type EventPublisher interface {
	PublishStockChanged(ctx context.Context, event StockChangedEvent) error
}

// PartSheetGenerator genera la hoja de datos (PDF) de una pieza.
type PartSheetGenerator interface {
	GeneratePartSheet(ctx context.Context, part entity.PartSnapshot, tr domain.Translator) ([]byte, error)
}
