package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo movimientos de stock en memoria.
type StockEntryRepo struct {
	h handle
}

// NewStockEntryRepository construye el repositorio.
func NewStockEntryRepository(store *Store) *StockEntryRepo {
	return &StockEntryRepo{h: handle{store: store}}
}

func (r *StockEntryRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	return r.h.write(ctx, func(s *state) error {
		if _, ok := s.parts[entry.PartID]; !ok {
			return domain.ErrConflict
		}
		row := *entry
		row.ID = s.next("stock_entries")
		s.stock[row.ID] = row
		entry.ID = row.ID
		return nil
	})
}

// ListByPart más recientes primero; limit <= 0 devuelve todos.
func (r *StockEntryRepo) ListByPart(ctx context.Context, partID int64, limit, offset int) ([]*entity.StockEntry, error) {
	out := []*entity.StockEntry{}
	err := r.h.read(ctx, func(s *state) error {
		var rows []entity.StockEntry
		for _, e := range s.stock {
			if e.PartID == partID {
				rows = append(rows, e)
			}
		}
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].DateTime.Equal(rows[j].DateTime) {
				return rows[i].DateTime.After(rows[j].DateTime)
			}
			return rows[i].ID > rows[j].ID
		})
		for _, e := range paginate(rows, limit, offset) {
			e := e
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

func (r *StockEntryRepo) CountByPart(ctx context.Context, partID int64) (int, error) {
	var n int
	err := r.h.read(ctx, func(s *state) error {
		for _, e := range s.stock {
			if e.PartID == partID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// SumQuantity suma con signo de todos los movimientos; 0 si no hay ninguno.
func (r *StockEntryRepo) SumQuantity(ctx context.Context, partID int64) (int64, error) {
	var sum int64
	err := r.h.read(ctx, func(s *state) error {
		for _, e := range s.stock {
			if e.PartID == partID {
				sum += e.StockLevel
			}
		}
		return nil
	})
	return sum, err
}
