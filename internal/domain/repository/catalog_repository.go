package repository

import (
	"context"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
)

// Los List devuelven la página pedida y el total de registros.

// FootprintRepository puerto de persistencia para Footprint.
type FootprintRepository interface {
	Create(ctx context.Context, f *entity.Footprint) error
	GetByID(ctx context.Context, id int64) (*entity.Footprint, error)
	Update(ctx context.Context, f *entity.Footprint) error
	List(ctx context.Context, limit, offset int) ([]*entity.Footprint, int, error)
	Delete(ctx context.Context, id int64) error
}

// StorageLocationRepository puerto de persistencia para StorageLocation.
type StorageLocationRepository interface {
	Create(ctx context.Context, s *entity.StorageLocation) error
	GetByID(ctx context.Context, id int64) (*entity.StorageLocation, error)
	Update(ctx context.Context, s *entity.StorageLocation) error
	List(ctx context.Context, limit, offset int) ([]*entity.StorageLocation, int, error)
	Delete(ctx context.Context, id int64) error
}

// ManufacturerRepository puerto de persistencia para Manufacturer.
type ManufacturerRepository interface {
	Create(ctx context.Context, m *entity.Manufacturer) error
	GetByID(ctx context.Context, id int64) (*entity.Manufacturer, error)
	Update(ctx context.Context, m *entity.Manufacturer) error
	List(ctx context.Context, limit, offset int) ([]*entity.Manufacturer, int, error)
	Delete(ctx context.Context, id int64) error
}

// DistributorRepository puerto de persistencia para Distributor.
type DistributorRepository interface {
	Create(ctx context.Context, d *entity.Distributor) error
	GetByID(ctx context.Context, id int64) (*entity.Distributor, error)
	Update(ctx context.Context, d *entity.Distributor) error
	List(ctx context.Context, limit, offset int) ([]*entity.Distributor, int, error)
	Delete(ctx context.Context, id int64) error
}

// PartUnitRepository puerto de persistencia para PartUnit.
type PartUnitRepository interface {
	Create(ctx context.Context, u *entity.PartUnit) error
	GetByID(ctx context.Context, id int64) (*entity.PartUnit, error)
	GetDefault(ctx context.Context) (*entity.PartUnit, error)
	Update(ctx context.Context, u *entity.PartUnit) error
	// SaveAsDefault crea (ID 0) o actualiza la unidad como predeterminada y desmarca las demás
	// en una sola escritura atómica: si falla, la predeterminada anterior se conserva.
	SaveAsDefault(ctx context.Context, u *entity.PartUnit) error
	List(ctx context.Context, limit, offset int) ([]*entity.PartUnit, int, error)
	Delete(ctx context.Context, id int64) error
}
