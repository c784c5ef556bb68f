package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
// parent_id es ON DELETE RESTRICT: borrar una categoría con hijos o piezas devuelve domain.ErrConflict.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, parent_id, name, description, created_at, updated_at`

func scanCategory(row rowScanner) (*entity.Category, error) {
	c := &entity.Category{}
	err := row.Scan(&c.ID, &c.ParentID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO categories (parent_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.ParentID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	return writeErr(err, "insert category")
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	return noRows(c, err, "get category")
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`UPDATE categories SET parent_id = $2, name = $3, description = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.ParentID, c.Name, c.Description, c.UpdatedAt,
	)
	return writeErr(err, "update category")
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error) {
	total, err := count(ctx, r.q, "categories")
	if err != nil {
		return nil, 0, err
	}
	list, err := r.query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll todas las categorías; el árbol se arma en el caso de uso.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*entity.Category, error) {
	return r.query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
}

// ListByParent hijos directos; parentID nil devuelve las raíces.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID *int64) ([]*entity.Category, error) {
	if parentID == nil {
		return r.query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id IS NULL ORDER BY name, id`)
	}
	return r.query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1 ORDER BY name, id`, *parentID)
}

func (r *CategoryRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := []*entity.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return writeErr(err, "delete category")
}
