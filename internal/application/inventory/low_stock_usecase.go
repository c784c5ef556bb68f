package inventory

import (
	"context"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain/inventory"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

// LowStockUseCase genera la lista de reposición: piezas con stock cacheado bajo el mínimo.
type LowStockUseCase struct {
	partRepo repository.PartRepository
}

// NewLowStockUseCase construye el caso de uso de reposición.
func NewLowStockUseCase(partRepo repository.PartRepository) *LowStockUseCase {
	return &LowStockUseCase{partRepo: partRepo}
}

// List devuelve las piezas bajo el mínimo con la cantidad faltante y el costo estimado
// de reponerla al precio promedio. El repositorio ordena y pagina por mayor faltante.
func (uc *LowStockUseCase) List(ctx context.Context, in dto.PageRequest) ([]dto.LowStockItem, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	parts, err := uc.partRepo.ListBelowMinStock(ctx, int(in.Limit), int(in.Offset))
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItem, 0, len(parts))
	for _, p := range parts {
		item := dto.LowStockItem{
			PartID:        p.ID,
			Name:          p.Name,
			StockLevel:    p.CachedStockLevel,
			MinStockLevel: p.MinStockLevel(),
			Shortfall:     inventory.Shortfall(p),
		}
		if p.AveragePrice.Valid {
			avg := p.AveragePrice.Decimal
			item.AveragePrice = &avg
		}
		if cost := inventory.ReorderCost(p); cost.Valid {
			c := cost.Decimal
			item.EstimatedCost = &c
		}
		if p.Category != nil {
			name := p.Category.Name
			item.CategoryName = &name
		}
		if p.StorageLocation != nil {
			name := p.StorageLocation.Name
			item.StorageLocationName = &name
		}
		items = append(items, item)
	}
	return items, nil
}
