package repository

import (
	"context"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
)

// StockEntryRepository puerto para los movimientos de stock de las piezas.
// Implementa entity.StockLevelQuerier: SumQuantity es la fuente de verdad del stock.
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	// ListByPart devuelve los movimientos más recientes primero; limit <= 0 devuelve todos.
	ListByPart(ctx context.Context, partID int64, limit, offset int) ([]*entity.StockEntry, error)
	CountByPart(ctx context.Context, partID int64) (int, error)
	SumQuantity(ctx context.Context, partID int64) (int64, error)
}
