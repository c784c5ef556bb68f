package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo movimientos de stock. Sus filas son la fuente de verdad del stock de cada pieza.
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

func (r *StockEntryRepo) Create(ctx context.Context, e *entity.StockEntry) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_entries (part_id, stock_level, price, date_time, comment)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		e.PartID, e.StockLevel, e.Price, e.DateTime, e.Comment,
	).Scan(&e.ID)
	return writeErr(err, "insert stock entry")
}

func (r *StockEntryRepo) ListByPart(ctx context.Context, partID int64, limit, offset int) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, part_id, stock_level, price, date_time, comment
		FROM stock_entries
		WHERE part_id = $1
		ORDER BY date_time DESC, id DESC
		LIMIT $2 OFFSET $3`, partID, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()

	list := []*entity.StockEntry{}
	for rows.Next() {
		e := &entity.StockEntry{}
		if err := rows.Scan(&e.ID, &e.PartID, &e.StockLevel, &e.Price, &e.DateTime, &e.Comment); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *StockEntryRepo) CountByPart(ctx context.Context, partID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_entries WHERE part_id = $1`, partID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock entries: %w", err)
	}
	return n, nil
}

// SumQuantity suma con signo de los movimientos; 0 si la pieza no tiene ninguno.
func (r *StockEntryRepo) SumQuantity(ctx context.Context, partID int64) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(stock_level), 0)::BIGINT FROM stock_entries WHERE part_id = $1`, partID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock entries: %w", err)
	}
	return sum, nil
}
