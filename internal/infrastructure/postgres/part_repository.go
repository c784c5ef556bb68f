package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de persistencia para piezas. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partSelect = `
	SELECT p.id, p.name, p.comment, p.min_stock_level, p.stock_level, p.average_price, p.created_at, p.updated_at,
	       c.id, c.parent_id, c.name, c.description,
	       f.id, f.name, f.description,
	       u.id, u.name, u.short_name, u.is_default,
	       s.id, s.name
	FROM parts p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN footprints f ON f.id = p.footprint_id
	LEFT JOIN part_units u ON u.id = p.part_unit_id
	LEFT JOIN storage_locations s ON s.id = p.storage_location_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPart(row rowScanner) (*entity.Part, error) {
	p := entity.NewPart()
	var (
		minStock            int64
		catID, catParent    *int64
		catName, catDesc    *string
		fpID                *int64
		fpName, fpDesc      *string
		unitID              *int64
		unitName, unitShort *string
		unitDefault         *bool
		locID               *int64
		locName             *string
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Comment, &minStock, &p.CachedStockLevel, &p.AveragePrice, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catParent, &catName, &catDesc,
		&fpID, &fpName, &fpDesc,
		&unitID, &unitName, &unitShort, &unitDefault,
		&locID, &locName,
	); err != nil {
		return nil, err
	}
	if err := p.SetMinStockLevel(minStock); err != nil {
		return nil, err
	}
	if catID != nil {
		p.SetCategory(&entity.Category{ID: *catID, ParentID: catParent, Name: *catName, Description: *catDesc})
	}
	if fpID != nil {
		p.SetFootprint(&entity.Footprint{ID: *fpID, Name: *fpName, Description: *fpDesc})
	}
	if unitID != nil {
		p.SetPartUnit(&entity.PartUnit{ID: *unitID, Name: *unitName, ShortName: *unitShort, IsDefault: *unitDefault})
	}
	if locID != nil {
		p.SetStorageLocation(&entity.StorageLocation{ID: *locID, Name: *locName})
	}
	return p, nil
}

func refID[T any](v *T, id func(*T) int64) *int64 {
	if v == nil {
		return nil
	}
	n := id(v)
	return &n
}

func partRefs(p *entity.Part) (category, footprint, unit, location *int64) {
	category = refID(p.Category, func(c *entity.Category) int64 { return c.ID })
	footprint = refID(p.Footprint, func(f *entity.Footprint) int64 { return f.ID })
	unit = refID(p.PartUnit, func(u *entity.PartUnit) int64 { return u.ID })
	location = refID(p.StorageLocation, func(s *entity.StorageLocation) int64 { return s.ID })
	return
}

// Create persiste una pieza nueva y asigna su ID.
func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	category, footprint, unit, location := partRefs(p)
	err := r.q.QueryRow(ctx, `
		INSERT INTO parts (name, comment, min_stock_level, stock_level, average_price,
		                   category_id, footprint_id, part_unit_id, storage_location_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		p.Name, p.Comment, p.MinStockLevel(), p.CachedStockLevel, p.AveragePrice,
		category, footprint, unit, location, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return writeErr(err, "insert part")
}

// GetByID obtiene una pieza con sus referencias. Devuelve nil, nil si no existe.
func (r *PartRepo) GetByID(ctx context.Context, id int64) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, partSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables. Stock y precio promedio cacheados no se tocan aquí.
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	category, footprint, unit, location := partRefs(p)
	_, err := r.q.Exec(ctx, `
		UPDATE parts SET name = $2, comment = $3, min_stock_level = $4,
		       category_id = $5, footprint_id = $6, part_unit_id = $7, storage_location_id = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Name, p.Comment, p.MinStockLevel(), category, footprint, unit, location, p.UpdatedAt,
	)
	return writeErr(err, "update part")
}

// UpdateCachedAggregates persiste stock y precio promedio; no toca las columnas editables.
func (r *PartRepo) UpdateCachedAggregates(ctx context.Context, id int64, stockLevel int64, averagePrice decimal.NullDecimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE parts SET stock_level = $2, average_price = $3 WHERE id = $1`,
		id, stockLevel, averagePrice,
	)
	if err != nil {
		return writeErr(err, "update part aggregates")
	}
	return nil
}

// List filtra por categoría y nombre (ILIKE); devuelve la página y el total.
func (r *PartRepo) List(ctx context.Context, filter repository.PartFilter) ([]*entity.Part, int, error) {
	var (
		where []string
		args  []any
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM parts p`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count parts: %w", err)
	}

	args = append(args, limitArg(filter.Limit), filter.Offset)
	query := fmt.Sprintf("%s%s ORDER BY p.name, p.id LIMIT $%d OFFSET $%d", partSelect, cond, len(args)-1, len(args))
	list, err := r.queryParts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListBelowMinStock piezas con stock cacheado menor al mínimo: mayor faltante primero, luego nombre e id.
func (r *PartRepo) ListBelowMinStock(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	return r.queryParts(ctx, partSelect+`
		WHERE p.stock_level < p.min_stock_level
		ORDER BY (p.min_stock_level - p.stock_level) DESC, p.name, p.id LIMIT $1 OFFSET $2`, limitArg(limit), offset)
}

func (r *PartRepo) queryParts(ctx context.Context, query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	list := []*entity.Part{}
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina la pieza; las FK ON DELETE CASCADE borran hijos y movimientos.
func (r *PartRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	return writeErr(err, "delete part")
}

// escapeLike escapa los comodines de LIKE en la búsqueda del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
