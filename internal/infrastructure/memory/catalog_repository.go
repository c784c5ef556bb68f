package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository        = (*CategoryRepo)(nil)
	_ repository.FootprintRepository       = (*FootprintRepo)(nil)
	_ repository.StorageLocationRepository = (*StorageLocationRepo)(nil)
	_ repository.ManufacturerRepository    = (*ManufacturerRepo)(nil)
	_ repository.DistributorRepository     = (*DistributorRepo)(nil)
	_ repository.PartUnitRepository        = (*PartUnitRepo)(nil)
)

// table describe una tabla de catálogo: acceso a sus filas, id, nombre y las claves
// foráneas que apuntan a ella (inUse).
type table[T any] struct {
	name   string
	rows   func(*state) map[int64]T
	id     func(*T) *int64
	label  func(*T) string
	unique bool
	inUse  func(*state, int64) bool
}

func (t table[T]) duplicate(s *state, v *T) bool {
	if !t.unique {
		return false
	}
	name := strings.ToLower(t.label(v))
	for _, row := range t.rows(s) {
		if *t.id(&row) != *t.id(v) && strings.ToLower(t.label(&row)) == name {
			return true
		}
	}
	return false
}

func (t table[T]) create(ctx context.Context, h handle, v *T) error {
	return h.write(ctx, func(s *state) error {
		*t.id(v) = 0
		if t.duplicate(s, v) {
			return domain.ErrDuplicate
		}
		id := s.next(t.name)
		*t.id(v) = id
		t.rows(s)[id] = *v
		return nil
	})
}

func (t table[T]) get(ctx context.Context, h handle, id int64) (*T, error) {
	var out *T
	err := h.read(ctx, func(s *state) error {
		if row, ok := t.rows(s)[id]; ok {
			out = &row
		}
		return nil
	})
	return out, err
}

func (t table[T]) update(ctx context.Context, h handle, v *T) error {
	return h.write(ctx, func(s *state) error {
		id := *t.id(v)
		if _, ok := t.rows(s)[id]; !ok {
			return nil
		}
		if t.duplicate(s, v) {
			return domain.ErrDuplicate
		}
		t.rows(s)[id] = *v
		return nil
	})
}

func (t table[T]) list(ctx context.Context, h handle, limit, offset int) ([]*T, int, error) {
	var out []*T
	var total int
	err := h.read(ctx, func(s *state) error {
		rows := make([]T, 0, len(t.rows(s)))
		for _, row := range t.rows(s) {
			rows = append(rows, row)
		}
		sortedByName(rows, func(v T) string { return t.label(&v) }, func(v T) int64 { return *t.id(&v) })
		total = len(rows)
		page := paginate(rows, limit, offset)
		out = make([]*T, 0, len(page))
		for i := range page {
			out = append(out, &page[i])
		}
		return nil
	})
	return out, total, err
}

func (t table[T]) delete(ctx context.Context, h handle, id int64) error {
	return h.write(ctx, func(s *state) error {
		if t.inUse != nil && t.inUse(s, id) {
			return domain.ErrConflict
		}
		delete(t.rows(s), id)
		return nil
	})
}

func partsReference(s *state, ref func(partRow) *int64, id int64) bool {
	for _, p := range s.parts {
		if r := ref(p); r != nil && *r == id {
			return true
		}
	}
	return false
}

// ── Category ──────────────────────────────────────────────────────────────────

var categories = table[entity.Category]{
	name:  "categories",
	rows:  func(s *state) map[int64]entity.Category { return s.categories },
	id:    func(c *entity.Category) *int64 { return &c.ID },
	label: func(c *entity.Category) string { return c.Name },
	inUse: func(s *state, id int64) bool {
		for _, c := range s.categories {
			if c.ParentID != nil && *c.ParentID == id {
				return true
			}
		}
		return partsReference(s, func(p partRow) *int64 { return p.CategoryID }, id)
	},
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ h handle }

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(store *Store) *CategoryRepo {
	return &CategoryRepo{h: handle{store: store}}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return categories.create(ctx, r.h, c)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return categories.get(ctx, r.h, id)
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return categories.update(ctx, r.h, c)
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error) {
	return categories.list(ctx, r.h, limit, offset)
}

func (r *CategoryRepo) ListAll(ctx context.Context) ([]*entity.Category, error) {
	list, _, err := categories.list(ctx, r.h, 0, 0)
	return list, err
}

// ListByParent hijos directos; parentID nil devuelve las raíces.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID *int64) ([]*entity.Category, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []*entity.Category{}
	for _, c := range all {
		switch {
		case parentID == nil && c.ParentID == nil:
			out = append(out, c)
		case parentID != nil && c.ParentID != nil && *c.ParentID == *parentID:
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	return categories.delete(ctx, r.h, id)
}

// ── Footprint ─────────────────────────────────────────────────────────────────

var footprints = table[entity.Footprint]{
	name:   "footprints",
	rows:   func(s *state) map[int64]entity.Footprint { return s.footprints },
	id:     func(f *entity.Footprint) *int64 { return &f.ID },
	label:  func(f *entity.Footprint) string { return f.Name },
	unique: true,
	inUse: func(s *state, id int64) bool {
		return partsReference(s, func(p partRow) *int64 { return p.FootprintID }, id)
	},
}

// FootprintRepo footprints en memoria.
type FootprintRepo struct{ h handle }

// NewFootprintRepository construye el repositorio.
func NewFootprintRepository(store *Store) *FootprintRepo {
	return &FootprintRepo{h: handle{store: store}}
}

func (r *FootprintRepo) Create(ctx context.Context, f *entity.Footprint) error {
	return footprints.create(ctx, r.h, f)
}

func (r *FootprintRepo) GetByID(ctx context.Context, id int64) (*entity.Footprint, error) {
	return footprints.get(ctx, r.h, id)
}

func (r *FootprintRepo) Update(ctx context.Context, f *entity.Footprint) error {
	return footprints.update(ctx, r.h, f)
}

func (r *FootprintRepo) List(ctx context.Context, limit, offset int) ([]*entity.Footprint, int, error) {
	return footprints.list(ctx, r.h, limit, offset)
}

func (r *FootprintRepo) Delete(ctx context.Context, id int64) error {
	return footprints.delete(ctx, r.h, id)
}

// ── StorageLocation ───────────────────────────────────────────────────────────

var locations = table[entity.StorageLocation]{
	name:   "storage_locations",
	rows:   func(s *state) map[int64]entity.StorageLocation { return s.locations },
	id:     func(l *entity.StorageLocation) *int64 { return &l.ID },
	label:  func(l *entity.StorageLocation) string { return l.Name },
	unique: true,
	inUse: func(s *state, id int64) bool {
		return partsReference(s, func(p partRow) *int64 { return p.StorageLocationID }, id)
	},
}

// StorageLocationRepo lugares de almacenamiento en memoria.
type StorageLocationRepo struct{ h handle }

// NewStorageLocationRepository construye el repositorio.
func NewStorageLocationRepository(store *Store) *StorageLocationRepo {
	return &StorageLocationRepo{h: handle{store: store}}
}

func (r *StorageLocationRepo) Create(ctx context.Context, l *entity.StorageLocation) error {
	return locations.create(ctx, r.h, l)
}

func (r *StorageLocationRepo) GetByID(ctx context.Context, id int64) (*entity.StorageLocation, error) {
	return locations.get(ctx, r.h, id)
}

func (r *StorageLocationRepo) Update(ctx context.Context, l *entity.StorageLocation) error {
	return locations.update(ctx, r.h, l)
}

func (r *StorageLocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.StorageLocation, int, error) {
	return locations.list(ctx, r.h, limit, offset)
}

func (r *StorageLocationRepo) Delete(ctx context.Context, id int64) error {
	return locations.delete(ctx, r.h, id)
}

// ── Manufacturer ──────────────────────────────────────────────────────────────

var manufacturers = table[entity.Manufacturer]{
	name:   "manufacturers",
	rows:   func(s *state) map[int64]entity.Manufacturer { return s.manufacturers },
	id:     func(m *entity.Manufacturer) *int64 { return &m.ID },
	label:  func(m *entity.Manufacturer) string { return m.Name },
	unique: true,
	inUse: func(s *state, id int64) bool {
		for _, pm := range s.partManufacturers {
			if pm.ManufacturerID == id {
				return true
			}
		}
		return false
	},
}

// ManufacturerRepo fabricantes en memoria.
type ManufacturerRepo struct{ h handle }

// NewManufacturerRepository construye el repositorio.
func NewManufacturerRepository(store *Store) *ManufacturerRepo {
	return &ManufacturerRepo{h: handle{store: store}}
}

func (r *ManufacturerRepo) Create(ctx context.Context, m *entity.Manufacturer) error {
	return manufacturers.create(ctx, r.h, m)
}

func (r *ManufacturerRepo) GetByID(ctx context.Context, id int64) (*entity.Manufacturer, error) {
	return manufacturers.get(ctx, r.h, id)
}

func (r *ManufacturerRepo) Update(ctx context.Context, m *entity.Manufacturer) error {
	return manufacturers.update(ctx, r.h, m)
}

func (r *ManufacturerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Manufacturer, int, error) {
	return manufacturers.list(ctx, r.h, limit, offset)
}

func (r *ManufacturerRepo) Delete(ctx context.Context, id int64) error {
	return manufacturers.delete(ctx, r.h, id)
}

// ── Distributor ───────────────────────────────────────────────────────────────

var distributors = table[entity.Distributor]{
	name:   "distributors",
	rows:   func(s *state) map[int64]entity.Distributor { return s.distributors },
	id:     func(d *entity.Distributor) *int64 { return &d.ID },
	label:  func(d *entity.Distributor) string { return d.Name },
	unique: true,
	inUse: func(s *state, id int64) bool {
		for _, pd := range s.partDistributors {
			if pd.DistributorID == id {
				return true
			}
		}
		return false
	},
}

// DistributorRepo distribuidores en memoria.
type DistributorRepo struct{ h handle }

// NewDistributorRepository construye el repositorio.
func NewDistributorRepository(store *Store) *DistributorRepo {
	return &DistributorRepo{h: handle{store: store}}
}

func (r *DistributorRepo) Create(ctx context.Context, d *entity.Distributor) error {
	return distributors.create(ctx, r.h, d)
}

func (r *DistributorRepo) GetByID(ctx context.Context, id int64) (*entity.Distributor, error) {
	return distributors.get(ctx, r.h, id)
}

func (r *DistributorRepo) Update(ctx context.Context, d *entity.Distributor) error {
	return distributors.update(ctx, r.h, d)
}

func (r *DistributorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Distributor, int, error) {
	return distributors.list(ctx, r.h, limit, offset)
}

func (r *DistributorRepo) Delete(ctx context.Context, id int64) error {
	return distributors.delete(ctx, r.h, id)
}

// ── PartUnit ──────────────────────────────────────────────────────────────────

var units = table[entity.PartUnit]{
	name:   "part_units",
	rows:   func(s *state) map[int64]entity.PartUnit { return s.units },
	id:     func(u *entity.PartUnit) *int64 { return &u.ID },
	label:  func(u *entity.PartUnit) string { return u.Name },
	unique: true,
	inUse: func(s *state, id int64) bool {
		return partsReference(s, func(p partRow) *int64 { return p.PartUnitID }, id)
	},
}

// PartUnitRepo unidades de medida en memoria.
type PartUnitRepo struct{ h handle }

// NewPartUnitRepository construye el repositorio.
func NewPartUnitRepository(store *Store) *PartUnitRepo {
	return &PartUnitRepo{h: handle{store: store}}
}

func (r *PartUnitRepo) Create(ctx context.Context, u *entity.PartUnit) error {
	return units.create(ctx, r.h, u)
}

func (r *PartUnitRepo) GetByID(ctx context.Context, id int64) (*entity.PartUnit, error) {
	return units.get(ctx, r.h, id)
}

// GetDefault unidad marcada como predeterminada; nil si no hay.
func (r *PartUnitRepo) GetDefault(ctx context.Context) (*entity.PartUnit, error) {
	var out *entity.PartUnit
	err := r.h.read(ctx, func(s *state) error {
		for _, u := range s.units {
			if u.IsDefault && (out == nil || u.ID < out.ID) {
				u := u
				out = &u
			}
		}
		return nil
	})
	return out, err
}

func (r *PartUnitRepo) Update(ctx context.Context, u *entity.PartUnit) error {
	return units.update(ctx, r.h, u)
}

// SaveAsDefault escribe la unidad y desmarca las demás dentro de una única escritura.
func (r *PartUnitRepo) SaveAsDefault(ctx context.Context, u *entity.PartUnit) error {
	return r.h.write(ctx, func(s *state) error {
		row := *u
		row.IsDefault = true
		if row.ID != 0 {
			if _, ok := s.units[row.ID]; !ok {
				return nil
			}
		}
		if units.duplicate(s, &row) {
			return domain.ErrDuplicate
		}
		if row.ID == 0 {
			row.ID = s.next(units.name)
		}
		for id, other := range s.units {
			if id != row.ID && other.IsDefault {
				other.IsDefault = false
				s.units[id] = other
			}
		}
		s.units[row.ID] = row
		*u = row
		return nil
	})
}

func (r *PartUnitRepo) List(ctx context.Context, limit, offset int) ([]*entity.PartUnit, int, error) {
	return units.list(ctx, r.h, limit, offset)
}

func (r *PartUnitRepo) Delete(ctx context.Context, id int64) error {
	return units.delete(ctx, r.h, id)
}
