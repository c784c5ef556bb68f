package repository

import (
	"context"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
)

// PartManufacturerRepository puerto para la colección de fabricantes de una pieza.
type PartManufacturerRepository interface {
	ListByPart(ctx context.Context, partID int64) ([]*entity.PartManufacturer, error)
	Create(ctx context.Context, pm *entity.PartManufacturer) error
	Update(ctx context.Context, pm *entity.PartManufacturer) error
	Delete(ctx context.Context, id int64) error
}

// PartDistributorRepository puerto para la colección de distribuidores de una pieza.
type PartDistributorRepository interface {
	ListByPart(ctx context.Context, partID int64) ([]*entity.PartDistributor, error)
	Create(ctx context.Context, pd *entity.PartDistributor) error
	Update(ctx context.Context, pd *entity.PartDistributor) error
	Delete(ctx context.Context, id int64) error
}

// PartParameterRepository puerto para los parámetros técnicos de una pieza.
type PartParameterRepository interface {
	ListByPart(ctx context.Context, partID int64) ([]*entity.PartParameter, error)
	Create(ctx context.Context, pp *entity.PartParameter) error
	Update(ctx context.Context, pp *entity.PartParameter) error
	Delete(ctx context.Context, id int64) error
}
