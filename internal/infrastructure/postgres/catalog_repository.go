package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var (
	_ repository.FootprintRepository       = (*FootprintRepo)(nil)
	_ repository.StorageLocationRepository = (*StorageLocationRepo)(nil)
	_ repository.ManufacturerRepository    = (*ManufacturerRepo)(nil)
	_ repository.DistributorRepository     = (*DistributorRepo)(nil)
	_ repository.PartUnitRepository        = (*PartUnitRepo)(nil)
)

// count total de filas de una tabla de catálogo.
func count(ctx context.Context, q Querier, table string) (int, error) {
	var n int
	if err := q.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// noRows convierte pgx.ErrNoRows en (nil, nil) para los GetByID.
func noRows[T any](v *T, err error, op string) (*T, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// ─── Footprint ───────────────────────────────────────────────────────────────

// FootprintRepo tabla footprints.
type FootprintRepo struct {
	q Querier
}

func NewFootprintRepository(q Querier) *FootprintRepo {
	return &FootprintRepo{q: q}
}

func (r *FootprintRepo) Create(ctx context.Context, f *entity.Footprint) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO footprints (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		f.Name, f.Description, f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
	return writeErr(err, "insert footprint")
}

func (r *FootprintRepo) GetByID(ctx context.Context, id int64) (*entity.Footprint, error) {
	f := &entity.Footprint{}
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM footprints WHERE id = $1`, id,
	).Scan(&f.ID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt)
	return noRows(f, err, "get footprint")
}

func (r *FootprintRepo) Update(ctx context.Context, f *entity.Footprint) error {
	_, err := r.q.Exec(ctx,
		`UPDATE footprints SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		f.ID, f.Name, f.Description, f.UpdatedAt,
	)
	return writeErr(err, "update footprint")
}

func (r *FootprintRepo) List(ctx context.Context, limit, offset int) ([]*entity.Footprint, int, error) {
	total, err := count(ctx, r.q, "footprints")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, created_at, updated_at FROM footprints
		ORDER BY name, id LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list footprints: %w", err)
	}
	defer rows.Close()
	list := []*entity.Footprint{}
	for rows.Next() {
		f := &entity.Footprint{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan footprint: %w", err)
		}
		list = append(list, f)
	}
	return list, total, rows.Err()
}

func (r *FootprintRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM footprints WHERE id = $1`, id)
	return writeErr(err, "delete footprint")
}

// ─── StorageLocation ─────────────────────────────────────────────────────────

// StorageLocationRepo tabla storage_locations.
type StorageLocationRepo struct {
	q Querier
}

func NewStorageLocationRepository(q Querier) *StorageLocationRepo {
	return &StorageLocationRepo{q: q}
}

func (r *StorageLocationRepo) Create(ctx context.Context, l *entity.StorageLocation) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO storage_locations (name, created_at, updated_at)
		VALUES ($1, $2, $3) RETURNING id`,
		l.Name, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	return writeErr(err, "insert storage location")
}

func (r *StorageLocationRepo) GetByID(ctx context.Context, id int64) (*entity.StorageLocation, error) {
	l := &entity.StorageLocation{}
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM storage_locations WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	return noRows(l, err, "get storage location")
}

func (r *StorageLocationRepo) Update(ctx context.Context, l *entity.StorageLocation) error {
	_, err := r.q.Exec(ctx,
		`UPDATE storage_locations SET name = $2, updated_at = $3 WHERE id = $1`,
		l.ID, l.Name, l.UpdatedAt,
	)
	return writeErr(err, "update storage location")
}

func (r *StorageLocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.StorageLocation, int, error) {
	total, err := count(ctx, r.q, "storage_locations")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, name, created_at, updated_at FROM storage_locations
		ORDER BY name, id LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list storage locations: %w", err)
	}
	defer rows.Close()
	list := []*entity.StorageLocation{}
	for rows.Next() {
		l := &entity.StorageLocation{}
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan storage location: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

func (r *StorageLocationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM storage_locations WHERE id = $1`, id)
	return writeErr(err, "delete storage location")
}

// ─── Manufacturer / Distributor ──────────────────────────────────────────────

// companyTable fabricantes y distribuidores comparten columnas (nombre + contacto).
type companyTable struct {
	q     Querier
	table string
}

type companyRow struct {
	id   *int64
	name *string
	c    *entity.Contact
	ts   [2]any
}

func (t companyTable) insert(ctx context.Context, r companyRow) error {
	err := t.q.QueryRow(ctx, `
		INSERT INTO `+t.table+` (name, address, url, email, phone, fax, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		*r.name, r.c.Address, r.c.URL, r.c.Email, r.c.Phone, r.c.Fax, r.c.Comment, r.ts[0], r.ts[1],
	).Scan(r.id)
	return writeErr(err, "insert "+t.table)
}

func (t companyTable) get(ctx context.Context, id int64, r companyRow, created, updated any) error {
	return t.q.QueryRow(ctx, `
		SELECT id, name, address, url, email, phone, fax, comment, created_at, updated_at
		FROM `+t.table+` WHERE id = $1`, id,
	).Scan(r.id, r.name, &r.c.Address, &r.c.URL, &r.c.Email, &r.c.Phone, &r.c.Fax, &r.c.Comment, created, updated)
}

func (t companyTable) update(ctx context.Context, r companyRow) error {
	_, err := t.q.Exec(ctx, `
		UPDATE `+t.table+`
		SET name = $2, address = $3, url = $4, email = $5, phone = $6, fax = $7, comment = $8, updated_at = $9
		WHERE id = $1`,
		*r.id, *r.name, r.c.Address, r.c.URL, r.c.Email, r.c.Phone, r.c.Fax, r.c.Comment, r.ts[1],
	)
	return writeErr(err, "update "+t.table)
}

func (t companyTable) list(ctx context.Context, limit, offset int, scan func(pgx.Rows) error) (int, error) {
	total, err := count(ctx, t.q, t.table)
	if err != nil {
		return 0, err
	}
	rows, err := t.q.Query(ctx, `
		SELECT id, name, address, url, email, phone, fax, comment, created_at, updated_at
		FROM `+t.table+` ORDER BY name, id LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return 0, fmt.Errorf("scan %s: %w", t.table, err)
		}
	}
	return total, rows.Err()
}

func (t companyTable) delete(ctx context.Context, id int64) error {
	_, err := t.q.Exec(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	return writeErr(err, "delete "+t.table)
}

// ManufacturerRepo tabla manufacturers.
type ManufacturerRepo struct {
	t companyTable
}

func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{t: companyTable{q: q, table: "manufacturers"}}
}

func manufacturerRow(m *entity.Manufacturer) companyRow {
	return companyRow{id: &m.ID, name: &m.Name, c: &m.Contact, ts: [2]any{m.CreatedAt, m.UpdatedAt}}
}

func (r *ManufacturerRepo) Create(ctx context.Context, m *entity.Manufacturer) error {
	return r.t.insert(ctx, manufacturerRow(m))
}

func (r *ManufacturerRepo) GetByID(ctx context.Context, id int64) (*entity.Manufacturer, error) {
	m := &entity.Manufacturer{}
	err := r.t.get(ctx, id, manufacturerRow(m), &m.CreatedAt, &m.UpdatedAt)
	return noRows(m, err, "get manufacturer")
}

func (r *ManufacturerRepo) Update(ctx context.Context, m *entity.Manufacturer) error {
	return r.t.update(ctx, manufacturerRow(m))
}

func (r *ManufacturerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Manufacturer, int, error) {
	list := []*entity.Manufacturer{}
	total, err := r.t.list(ctx, limit, offset, func(rows pgx.Rows) error {
		m := &entity.Manufacturer{}
		c := &m.Contact
		if err := rows.Scan(&m.ID, &m.Name, &c.Address, &c.URL, &c.Email, &c.Phone, &c.Fax, &c.Comment, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return err
		}
		list = append(list, m)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ManufacturerRepo) Delete(ctx context.Context, id int64) error {
	return r.t.delete(ctx, id)
}

// DistributorRepo tabla distributors.
type DistributorRepo struct {
	t companyTable
}

func NewDistributorRepository(q Querier) *DistributorRepo {
	return &DistributorRepo{t: companyTable{q: q, table: "distributors"}}
}

func distributorRow(d *entity.Distributor) companyRow {
	return companyRow{id: &d.ID, name: &d.Name, c: &d.Contact, ts: [2]any{d.CreatedAt, d.UpdatedAt}}
}

func (r *DistributorRepo) Create(ctx context.Context, d *entity.Distributor) error {
	return r.t.insert(ctx, distributorRow(d))
}

func (r *DistributorRepo) GetByID(ctx context.Context, id int64) (*entity.Distributor, error) {
	d := &entity.Distributor{}
	err := r.t.get(ctx, id, distributorRow(d), &d.CreatedAt, &d.UpdatedAt)
	return noRows(d, err, "get distributor")
}

func (r *DistributorRepo) Update(ctx context.Context, d *entity.Distributor) error {
	return r.t.update(ctx, distributorRow(d))
}

func (r *DistributorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Distributor, int, error) {
	list := []*entity.Distributor{}
	total, err := r.t.list(ctx, limit, offset, func(rows pgx.Rows) error {
		d := &entity.Distributor{}
		c := &d.Contact
		if err := rows.Scan(&d.ID, &d.Name, &c.Address, &c.URL, &c.Email, &c.Phone, &c.Fax, &c.Comment, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return err
		}
		list = append(list, d)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *DistributorRepo) Delete(ctx context.Context, id int64) error {
	return r.t.delete(ctx, id)
}

// ─── PartUnit ────────────────────────────────────────────────────────────────

// PartUnitRepo tabla part_units. El índice parcial uq_part_units_default garantiza una sola predeterminada.
type PartUnitRepo struct {
	q Querier
}

func NewPartUnitRepository(q Querier) *PartUnitRepo {
	return &PartUnitRepo{q: q}
}

const unitColumns = `id, name, short_name, is_default, created_at, updated_at`

func scanUnit(row rowScanner) (*entity.PartUnit, error) {
	u := &entity.PartUnit{}
	err := row.Scan(&u.ID, &u.Name, &u.ShortName, &u.IsDefault, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *PartUnitRepo) Create(ctx context.Context, u *entity.PartUnit) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO part_units (name, short_name, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		u.Name, u.ShortName, u.IsDefault, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	return writeErr(err, "insert part unit")
}

func (r *PartUnitRepo) GetByID(ctx context.Context, id int64) (*entity.PartUnit, error) {
	u, err := scanUnit(r.q.QueryRow(ctx, `SELECT `+unitColumns+` FROM part_units WHERE id = $1`, id))
	return noRows(u, err, "get part unit")
}

func (r *PartUnitRepo) GetDefault(ctx context.Context) (*entity.PartUnit, error) {
	u, err := scanUnit(r.q.QueryRow(ctx, `SELECT `+unitColumns+` FROM part_units WHERE is_default ORDER BY id LIMIT 1`))
	return noRows(u, err, "get default part unit")
}

func (r *PartUnitRepo) Update(ctx context.Context, u *entity.PartUnit) error {
	_, err := r.q.Exec(ctx,
		`UPDATE part_units SET name = $2, short_name = $3, is_default = $4, updated_at = $5 WHERE id = $1`,
		u.ID, u.Name, u.ShortName, u.IsDefault, u.UpdatedAt,
	)
	return writeErr(err, "update part unit")
}

// SaveAsDefault desmarca la predeterminada actual y escribe u en la misma transacción
// (savepoint si q ya es una tx). El índice parcial exige desmarcar antes de escribir.
func (r *PartUnitRepo) SaveAsDefault(ctx context.Context, u *entity.PartUnit) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save default part unit: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `UPDATE part_units SET is_default = false WHERE is_default AND id <> $1`, u.ID); err != nil {
		return writeErr(err, "clear default part unit")
	}
	row := *u
	row.IsDefault = true
	inTx := NewPartUnitRepository(tx)
	if row.ID == 0 {
		err = inTx.Create(ctx, &row)
	} else {
		err = inTx.Update(ctx, &row)
	}
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save default part unit: %w", err)
	}
	*u = row
	return nil
}

func (r *PartUnitRepo) List(ctx context.Context, limit, offset int) ([]*entity.PartUnit, int, error) {
	total, err := count(ctx, r.q, "part_units")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+unitColumns+` FROM part_units ORDER BY name, id LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list part units: %w", err)
	}
	defer rows.Close()
	list := []*entity.PartUnit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan part unit: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

func (r *PartUnitRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM part_units WHERE id = $1`, id)
	return writeErr(err, "delete part unit")
}
