package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var (
	_ repository.PartManufacturerRepository = (*PartManufacturerRepo)(nil)
	_ repository.PartDistributorRepository  = (*PartDistributorRepo)(nil)
	_ repository.PartParameterRepository    = (*PartParameterRepo)(nil)
)

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

// PartManufacturerRepo fabricantes de una pieza en memoria.
type PartManufacturerRepo struct {
	h handle
}

// NewPartManufacturerRepository construye el repositorio.
func NewPartManufacturerRepository(store *Store) *PartManufacturerRepo {
	return &PartManufacturerRepo{h: handle{store: store}}
}

func (r *PartManufacturerRepo) ListByPart(ctx context.Context, partID int64) ([]*entity.PartManufacturer, error) {
	out := []*entity.PartManufacturer{}
	err := r.h.read(ctx, func(s *state) error {
		var rows []partManufacturerRow
		for _, row := range s.partManufacturers {
			if row.PartID == partID {
				rows = append(rows, row)
			}
		}
		sortByID(rows, func(r partManufacturerRow) int64 { return r.ID })
		for _, row := range rows {
			pm := &entity.PartManufacturer{ID: row.ID, PartID: row.PartID, PartNumber: row.PartNumber}
			if m, ok := s.manufacturers[row.ManufacturerID]; ok {
				pm.Manufacturer = &m
			}
			out = append(out, pm)
		}
		return nil
	})
	return out, err
}

func (s *state) manufacturerRow(pm *entity.PartManufacturer) (partManufacturerRow, error) {
	if _, ok := s.parts[pm.PartID]; !ok {
		return partManufacturerRow{}, domain.ErrConflict
	}
	if pm.Manufacturer == nil {
		return partManufacturerRow{}, domain.ErrInvalidInput
	}
	if _, ok := s.manufacturers[pm.Manufacturer.ID]; !ok {
		return partManufacturerRow{}, domain.ErrConflict
	}
	return partManufacturerRow{ID: pm.ID, PartID: pm.PartID, ManufacturerID: pm.Manufacturer.ID, PartNumber: pm.PartNumber}, nil
}

func (r *PartManufacturerRepo) Create(ctx context.Context, pm *entity.PartManufacturer) error {
	return r.h.write(ctx, func(s *state) error {
		row, err := s.manufacturerRow(pm)
		if err != nil {
			return err
		}
		row.ID = s.next("part_manufacturers")
		s.partManufacturers[row.ID] = row
		pm.ID = row.ID
		return nil
	})
}

func (r *PartManufacturerRepo) Update(ctx context.Context, pm *entity.PartManufacturer) error {
	return r.h.write(ctx, func(s *state) error {
		if _, ok := s.partManufacturers[pm.ID]; !ok {
			return nil
		}
		row, err := s.manufacturerRow(pm)
		if err != nil {
			return err
		}
		s.partManufacturers[pm.ID] = row
		return nil
	})
}

func (r *PartManufacturerRepo) Delete(ctx context.Context, id int64) error {
	return r.h.write(ctx, func(s *state) error {
		delete(s.partManufacturers, id)
		return nil
	})
}

// PartDistributorRepo distribuidores de una pieza en memoria.
type PartDistributorRepo struct {
	h handle
}

// NewPartDistributorRepository construye el repositorio.
func NewPartDistributorRepository(store *Store) *PartDistributorRepo {
	return &PartDistributorRepo{h: handle{store: store}}
}

func (r *PartDistributorRepo) ListByPart(ctx context.Context, partID int64) ([]*entity.PartDistributor, error) {
	out := []*entity.PartDistributor{}
	err := r.h.read(ctx, func(s *state) error {
		var rows []partDistributorRow
		for _, row := range s.partDistributors {
			if row.PartID == partID {
				rows = append(rows, row)
			}
		}
		sortByID(rows, func(r partDistributorRow) int64 { return r.ID })
		for _, row := range rows {
			pd := entity.NewPartDistributor()
			pd.ID = row.ID
			pd.PartID = row.PartID
			pd.OrderNumber = row.OrderNumber
			pd.Price = row.Price
			_ = pd.SetPackagingUnit(row.PackagingUnit)
			if d, ok := s.distributors[row.DistributorID]; ok {
				pd.Distributor = &d
			}
			out = append(out, pd)
		}
		return nil
	})
	return out, err
}

func (s *state) distributorRow(pd *entity.PartDistributor) (partDistributorRow, error) {
	if _, ok := s.parts[pd.PartID]; !ok {
		return partDistributorRow{}, domain.ErrConflict
	}
	if pd.Distributor == nil {
		return partDistributorRow{}, domain.ErrInvalidInput
	}
	if _, ok := s.distributors[pd.Distributor.ID]; !ok {
		return partDistributorRow{}, domain.ErrConflict
	}
	return partDistributorRow{
		ID:            pd.ID,
		PartID:        pd.PartID,
		DistributorID: pd.Distributor.ID,
		OrderNumber:   pd.OrderNumber,
		PackagingUnit: pd.PackagingUnit(),
		Price:         pd.Price,
	}, nil
}

func (r *PartDistributorRepo) Create(ctx context.Context, pd *entity.PartDistributor) error {
	return r.h.write(ctx, func(s *state) error {
		row, err := s.distributorRow(pd)
		if err != nil {
			return err
		}
		row.ID = s.next("part_distributors")
		s.partDistributors[row.ID] = row
		pd.ID = row.ID
		return nil
	})
}

func (r *PartDistributorRepo) Update(ctx context.Context, pd *entity.PartDistributor) error {
	return r.h.write(ctx, func(s *state) error {
		if _, ok := s.partDistributors[pd.ID]; !ok {
			return nil
		}
		row, err := s.distributorRow(pd)
		if err != nil {
			return err
		}
		s.partDistributors[pd.ID] = row
		return nil
	})
}

func (r *PartDistributorRepo) Delete(ctx context.Context, id int64) error {
	return r.h.write(ctx, func(s *state) error {
		delete(s.partDistributors, id)
		return nil
	})
}

// PartParameterRepo parámetros de una pieza en memoria.
type PartParameterRepo struct {
	h handle
}

// NewPartParameterRepository construye el repositorio.
func NewPartParameterRepository(store *Store) *PartParameterRepo {
	return &PartParameterRepo{h: handle{store: store}}
}

func (r *PartParameterRepo) ListByPart(ctx context.Context, partID int64) ([]*entity.PartParameter, error) {
	out := []*entity.PartParameter{}
	err := r.h.read(ctx, func(s *state) error {
		var rows []entity.PartParameter
		for _, row := range s.parameters {
			if row.PartID == partID {
				rows = append(rows, row)
			}
		}
		sortByID(rows, func(r entity.PartParameter) int64 { return r.ID })
		for i := range rows {
			pp := rows[i]
			out = append(out, &pp)
		}
		return nil
	})
	return out, err
}

func (r *PartParameterRepo) Create(ctx context.Context, pp *entity.PartParameter) error {
	return r.h.write(ctx, func(s *state) error {
		if _, ok := s.parts[pp.PartID]; !ok {
			return domain.ErrConflict
		}
		row := *pp
		row.ID = s.next("part_parameters")
		s.parameters[row.ID] = row
		pp.ID = row.ID
		return nil
	})
}

func (r *PartParameterRepo) Update(ctx context.Context, pp *entity.PartParameter) error {
	return r.h.write(ctx, func(s *state) error {
		if _, ok := s.parameters[pp.ID]; !ok {
			return nil
		}
		s.parameters[pp.ID] = *pp
		return nil
	})
}

func (r *PartParameterRepo) Delete(ctx context.Context, id int64) error {
	return r.h.write(ctx, func(s *state) error {
		delete(s.parameters, id)
		return nil
	})
}
