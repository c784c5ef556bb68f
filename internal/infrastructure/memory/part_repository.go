package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación en memoria de PartRepository.
type PartRepo struct {
	h handle
}

// NewPartRepository construye el repositorio sobre el store.
func NewPartRepository(store *Store) *PartRepo {
	return &PartRepo{h: handle{store: store}}
}

func idOf[T any](v *T, id func(*T) int64) *int64 {
	if v == nil {
		return nil
	}
	n := id(v)
	return &n
}

func toPartRow(p *entity.Part) partRow {
	return partRow{
		ID:                p.ID,
		Name:              p.Name,
		Comment:           p.Comment,
		MinStockLevel:     p.MinStockLevel(),
		StockLevel:        p.CachedStockLevel,
		AveragePrice:      p.AveragePrice,
		CategoryID:        idOf(p.Category, func(c *entity.Category) int64 { return c.ID }),
		FootprintID:       idOf(p.Footprint, func(f *entity.Footprint) int64 { return f.ID }),
		PartUnitID:        idOf(p.PartUnit, func(u *entity.PartUnit) int64 { return u.ID }),
		StorageLocationID: idOf(p.StorageLocation, func(l *entity.StorageLocation) int64 { return l.ID }),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// checkRefs emula las claves foráneas de la tabla parts.
func (s *state) checkRefs(row partRow) error {
	if row.CategoryID != nil {
		if _, ok := s.categories[*row.CategoryID]; !ok {
			return domain.ErrConflict
		}
	}
	if row.FootprintID != nil {
		if _, ok := s.footprints[*row.FootprintID]; !ok {
			return domain.ErrConflict
		}
	}
	if row.PartUnitID != nil {
		if _, ok := s.units[*row.PartUnitID]; !ok {
			return domain.ErrConflict
		}
	}
	if row.StorageLocationID != nil {
		if _, ok := s.locations[*row.StorageLocationID]; !ok {
			return domain.ErrConflict
		}
	}
	return nil
}

// hydrate construye la entidad con sus referencias resueltas (sin colecciones hijas).
func (s *state) hydrate(row partRow) *entity.Part {
	p := entity.NewPart()
	p.ID = row.ID
	p.Name = row.Name
	p.Comment = row.Comment
	_ = p.SetMinStockLevel(row.MinStockLevel)
	p.CachedStockLevel = row.StockLevel
	p.AveragePrice = row.AveragePrice
	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	if row.CategoryID != nil {
		if c, ok := s.categories[*row.CategoryID]; ok {
			p.Category = &c
		}
	}
	if row.FootprintID != nil {
		if f, ok := s.footprints[*row.FootprintID]; ok {
			p.Footprint = &f
		}
	}
	if row.PartUnitID != nil {
		if u, ok := s.units[*row.PartUnitID]; ok {
			p.PartUnit = &u
		}
	}
	if row.StorageLocationID != nil {
		if l, ok := s.locations[*row.StorageLocationID]; ok {
			p.StorageLocation = &l
		}
	}
	return p
}

// Create persiste una nueva pieza y asigna su ID.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	return r.h.write(ctx, func(s *state) error {
		row := toPartRow(part)
		if err := s.checkRefs(row); err != nil {
			return err
		}
		row.ID = s.next("parts")
		s.parts[row.ID] = row
		part.ID = row.ID
		return nil
	})
}

// GetByID obtiene una pieza por ID.
func (r *PartRepo) GetByID(ctx context.Context, id int64) (*entity.Part, error) {
	var out *entity.Part
	err := r.h.read(ctx, func(s *state) error {
		if row, ok := s.parts[id]; ok {
			out = s.hydrate(row)
		}
		return nil
	})
	return out, err
}

// Update actualiza campos escalares y referencias. No toca los valores cacheados.
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	return r.h.write(ctx, func(s *state) error {
		cur, ok := s.parts[part.ID]
		if !ok {
			return nil
		}
		row := toPartRow(part)
		if err := s.checkRefs(row); err != nil {
			return err
		}
		row.StockLevel = cur.StockLevel
		row.AveragePrice = cur.AveragePrice
		row.CreatedAt = cur.CreatedAt
		s.parts[part.ID] = row
		return nil
	})
}

// UpdateCachedAggregates persiste stock y precio promedio cacheados.
func (r *PartRepo) UpdateCachedAggregates(ctx context.Context, id int64, stockLevel int64, averagePrice decimal.NullDecimal) error {
	return r.h.write(ctx, func(s *state) error {
		row, ok := s.parts[id]
		if !ok {
			return nil
		}
		row.StockLevel = stockLevel
		row.AveragePrice = averagePrice
		s.parts[id] = row
		return nil
	})
}

// List filtra por categoría y nombre (sin distinguir mayúsculas), ordenado por nombre.
func (r *PartRepo) List(ctx context.Context, filter repository.PartFilter) ([]*entity.Part, int, error) {
	var out []*entity.Part
	var total int
	err := r.h.read(ctx, func(s *state) error {
		q := strings.ToLower(strings.TrimSpace(filter.Query))
		rows := make([]partRow, 0, len(s.parts))
		for _, row := range s.parts {
			if filter.CategoryID != nil && (row.CategoryID == nil || *row.CategoryID != *filter.CategoryID) {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(row.Name), q) {
				continue
			}
			rows = append(rows, row)
		}
		sortedByName(rows, func(r partRow) string { return r.Name }, func(r partRow) int64 { return r.ID })
		total = len(rows)
		for _, row := range paginate(rows, filter.Limit, filter.Offset) {
			out = append(out, s.hydrate(row))
		}
		return nil
	})
	return out, total, err
}

// ListBelowMinStock piezas con stock cacheado menor al mínimo: mayor faltante primero, luego nombre e id.
func (r *PartRepo) ListBelowMinStock(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	var out []*entity.Part
	err := r.h.read(ctx, func(s *state) error {
		var rows []partRow
		for _, row := range s.parts {
			if row.StockLevel < row.MinStockLevel {
				rows = append(rows, row)
			}
		}
		sortedByName(rows, func(r partRow) string { return r.Name }, func(r partRow) int64 { return r.ID })
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].MinStockLevel-rows[i].StockLevel > rows[j].MinStockLevel-rows[j].StockLevel
		})
		for _, row := range paginate(rows, limit, offset) {
			out = append(out, s.hydrate(row))
		}
		return nil
	})
	return out, err
}

// Delete borra la pieza y en cascada sus hijos y movimientos.
func (r *PartRepo) Delete(ctx context.Context, id int64) error {
	return r.h.write(ctx, func(s *state) error {
		delete(s.parts, id)
		for k, v := range s.partManufacturers {
			if v.PartID == id {
				delete(s.partManufacturers, k)
			}
		}
		for k, v := range s.partDistributors {
			if v.PartID == id {
				delete(s.partDistributors, k)
			}
		}
		for k, v := range s.parameters {
			if v.PartID == id {
				delete(s.parameters, k)
			}
		}
		for k, v := range s.stock {
			if v.PartID == id {
				delete(s.stock, k)
			}
		}
		return nil
	})
}
