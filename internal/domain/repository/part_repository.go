package repository

import (
	"context"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PartFilter criterios de listado de piezas.
type PartFilter struct {
	CategoryID *int64
	Query      string // coincidencia parcial por nombre, sin distinguir mayúsculas
	Limit      int
	Offset     int
}

// PartRepository define el puerto de persistencia para la raíz Part (DIP).
// Las lecturas devuelven la pieza con sus referencias (categoría, footprint, unidad, lugar)
// resueltas; las colecciones hijas se cargan con sus propios repositorios.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id int64) (*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
	// UpdateCachedAggregates persiste sólo stock y precio promedio cacheados.
	UpdateCachedAggregates(ctx context.Context, id int64, stockLevel int64, averagePrice decimal.NullDecimal) error
	List(ctx context.Context, filter PartFilter) ([]*entity.Part, int, error)
	// ListBelowMinStock piezas cuyo stock cacheado es menor al mínimo, paginadas por
	// faltante (min - stock) descendente, luego nombre e id.
	ListBelowMinStock(ctx context.Context, limit, offset int) ([]*entity.Part, error)
	// Delete borra la pieza y en cascada sus fabricantes, distribuidores, parámetros y stock.
	Delete(ctx context.Context, id int64) error
}
