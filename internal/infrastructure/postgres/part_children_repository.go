package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

var (
	_ repository.PartManufacturerRepository = (*PartManufacturerRepo)(nil)
	_ repository.PartDistributorRepository  = (*PartDistributorRepo)(nil)
	_ repository.PartParameterRepository    = (*PartParameterRepo)(nil)
)

// ─── Fabricantes de una pieza ────────────────────────────────────────────────

// PartManufacturerRepo colección part_manufacturers.
type PartManufacturerRepo struct {
	q Querier
}

func NewPartManufacturerRepository(q Querier) *PartManufacturerRepo {
	return &PartManufacturerRepo{q: q}
}

func (r *PartManufacturerRepo) ListByPart(ctx context.Context, partID int64) ([]*entity.PartManufacturer, error) {
	rows, err := r.q.Query(ctx, `
		SELECT pm.id, pm.part_id, pm.part_number, m.id, m.name
		FROM part_manufacturers pm
		JOIN manufacturers m ON m.id = pm.manufacturer_id
		WHERE pm.part_id = $1
		ORDER BY pm.id`, partID)
	if err != nil {
		return nil, fmt.Errorf("list part manufacturers: %w", err)
	}
	defer rows.Close()

	list := []*entity.PartManufacturer{}
	for rows.Next() {
		pm := &entity.PartManufacturer{Manufacturer: &entity.Manufacturer{}}
		if err := rows.Scan(&pm.ID, &pm.PartID, &pm.PartNumber, &pm.Manufacturer.ID, &pm.Manufacturer.Name); err != nil {
			return nil, fmt.Errorf("scan part manufacturer: %w", err)
		}
		list = append(list, pm)
	}
	return list, rows.Err()
}

func (r *PartManufacturerRepo) Create(ctx context.Context, pm *entity.PartManufacturer) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO part_manufacturers (part_id, manufacturer_id, part_number)
		VALUES ($1, $2, $3) RETURNING id`,
		pm.PartID, pm.Manufacturer.ID, pm.PartNumber,
	).Scan(&pm.ID)
	return writeErr(err, "insert part manufacturer")
}

func (r *PartManufacturerRepo) Update(ctx context.Context, pm *entity.PartManufacturer) error {
	_, err := r.q.Exec(ctx,
		`UPDATE part_manufacturers SET manufacturer_id = $2, part_number = $3 WHERE id = $1`,
		pm.ID, pm.Manufacturer.ID, pm.PartNumber,
	)
	return writeErr(err, "update part manufacturer")
}

func (r *PartManufacturerRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM part_manufacturers WHERE id = $1`, id)
	return writeErr(err, "delete part manufacturer")
}

// ─── Distribuidores de una pieza ─────────────────────────────────────────────

// PartDistributorRepo colección part_distributors.
type PartDistributorRepo struct {
	q Querier
}

func NewPartDistributorRepository(q Querier) *PartDistributorRepo {
	return &PartDistributorRepo{q: q}
}

func (r *PartDistributorRepo) ListByPart(ctx context.Context, partID int64) ([]*entity.PartDistributor, error) {
	rows, err := r.q.Query(ctx, `
		SELECT pd.id, pd.part_id, pd.order_number, pd.packaging_unit, pd.price, d.id, d.name
		FROM part_distributors pd
		JOIN distributors d ON d.id = pd.distributor_id
		WHERE pd.part_id = $1
		ORDER BY pd.id`, partID)
	if err != nil {
		return nil, fmt.Errorf("list part distributors: %w", err)
	}
	defer rows.Close()

	list := []*entity.PartDistributor{}
	for rows.Next() {
		pd := entity.NewPartDistributor()
		pd.Distributor = &entity.Distributor{}
		var packaging int64
		var price decimal.NullDecimal
		if err := rows.Scan(&pd.ID, &pd.PartID, &pd.OrderNumber, &packaging, &price, &pd.Distributor.ID, &pd.Distributor.Name); err != nil {
			return nil, fmt.Errorf("scan part distributor: %w", err)
		}
		if err := pd.SetPackagingUnit(packaging); err != nil {
			return nil, err
		}
		pd.Price = price
		list = append(list, pd)
	}
	return list, rows.Err()
}

func (r *PartDistributorRepo) Create(ctx context.Context, pd *entity.PartDistributor) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO part_distributors (part_id, distributor_id, order_number, packaging_unit, price)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		pd.PartID, pd.Distributor.ID, pd.OrderNumber, pd.PackagingUnit(), pd.Price,
	).Scan(&pd.ID)
	return writeErr(err, "insert part distributor")
}

func (r *PartDistributorRepo) Update(ctx context.Context, pd *entity.PartDistributor) error {
	_, err := r.q.Exec(ctx, `
		UPDATE part_distributors
		SET distributor_id = $2, order_number = $3, packaging_unit = $4, price = $5
		WHERE id = $1`,
		pd.ID, pd.Distributor.ID, pd.OrderNumber, pd.PackagingUnit(), pd.Price,
	)
	return writeErr(err, "update part distributor")
}

func (r *PartDistributorRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM part_distributors WHERE id = $1`, id)
	return writeErr(err, "delete part distributor")
}

// ─── Parámetros técnicos ─────────────────────────────────────────────────────

// PartParameterRepo colección part_parameters.
type PartParameterRepo struct {
	q Querier
}

func NewPartParameterRepository(q Querier) *PartParameterRepo {
	return &PartParameterRepo{q: q}
}

func (r *PartParameterRepo) ListByPart(ctx context.Context, partID int64) ([]*entity.PartParameter, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, part_id, name, description, value, unit
		FROM part_parameters
		WHERE part_id = $1
		ORDER BY id`, partID)
	if err != nil {
		return nil, fmt.Errorf("list part parameters: %w", err)
	}
	defer rows.Close()

	list := []*entity.PartParameter{}
	for rows.Next() {
		pp := &entity.PartParameter{}
		if err := rows.Scan(&pp.ID, &pp.PartID, &pp.Name, &pp.Description, &pp.Value, &pp.Unit); err != nil {
			return nil, fmt.Errorf("scan part parameter: %w", err)
		}
		list = append(list, pp)
	}
	return list, rows.Err()
}

func (r *PartParameterRepo) Create(ctx context.Context, pp *entity.PartParameter) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO part_parameters (part_id, name, description, value, unit)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		pp.PartID, pp.Name, pp.Description, pp.Value, pp.Unit,
	).Scan(&pp.ID)
	return writeErr(err, "insert part parameter")
}

func (r *PartParameterRepo) Update(ctx context.Context, pp *entity.PartParameter) error {
	_, err := r.q.Exec(ctx,
		`UPDATE part_parameters SET name = $2, description = $3, value = $4, unit = $5 WHERE id = $1`,
		pp.ID, pp.Name, pp.Description, pp.Value, pp.Unit,
	)
	return writeErr(err, "update part parameter")
}

func (r *PartParameterRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM part_parameters WHERE id = $1`, id)
	return writeErr(err, "delete part parameter")
}
