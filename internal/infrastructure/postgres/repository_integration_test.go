package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
	"github.com/jhoicas/partdb-api/internal/infrastructure/postgres"
	"github.com/jhoicas/partdb-api/pkg/config"
)

// Un solo contenedor por ejecución del paquete; cada test parte de tablas vacías.
var (
	pgOnce      sync.Once
	pgContainer *tcPostgres.PostgresContainer
	pgPool      *pgxpool.Pool
	pgErr       error
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgPool != nil {
		pgPool.Close()
	}
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func startPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	c, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("partdb_test"),
		tcPostgres.WithUsername("partdb"),
		tcPostgres.WithPassword("partdb"),
		tcPostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, err
	}
	pgContainer = c

	url, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}
	return postgres.NewPool(ctx, config.DBConfig{Driver: config.DriverPostgres, DatabaseURL: url, MaxConns: 4})
}

// integrationPool devuelve un pool sobre un esquema recién migrado. Sin Docker el test se omite.
func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("PostgreSQL en contenedor omitido con -short")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pgOnce.Do(func() { pgPool, pgErr = startPostgres(ctx) })
	require.NoError(t, pgErr)

	// la segunda migración vuelve a sembrar la unidad "Pieces"
	require.NoError(t, postgres.Migrate(ctx, pgPool))
	_, err := pgPool.Exec(ctx, `TRUNCATE parts, categories, footprints, storage_locations,
		manufacturers, distributors, part_units RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, pgPool))
	return pgPool
}

func newPart(t *testing.T, pool *pgxpool.Pool, name string, minStock, stock int64) *entity.Part {
	t.Helper()
	p := entity.NewPart()
	p.Name = name
	require.NoError(t, p.SetMinStockLevel(minStock))
	p.CachedStockLevel = stock
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	require.NoError(t, postgres.NewPartRepository(pool).Create(context.Background(), p))
	return p
}

func partNames(list []*entity.Part) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Name)
	}
	return out
}

func TestStockEntryRepo_SumaSinMovimientosEsCero(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	stock := postgres.NewStockEntryRepository(pool)
	p := newPart(t, pool, "LM317", 0, 0)

	sum, err := stock.SumQuantity(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, sum)

	for _, q := range []int64{5, -2, 10} {
		require.NoError(t, stock.Create(ctx, &entity.StockEntry{PartID: p.ID, StockLevel: q, DateTime: time.Now()}))
	}
	sum, err = stock.SumQuantity(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(13), sum)
}

func TestStockEntryRepo_LimiteCeroDevuelveTodo(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	stock := postgres.NewStockEntryRepository(pool)
	p := newPart(t, pool, "NE555", 0, 0)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, stock.Create(ctx, &entity.StockEntry{PartID: p.ID, StockLevel: 1, DateTime: base.Add(time.Duration(i) * time.Hour)}))
	}

	all, err := stock.ListByPart(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].DateTime.After(all[2].DateTime), "más reciente primero")

	page, err := stock.ListByPart(ctx, p.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	parts, total, err := postgres.NewPartRepository(pool).List(ctx, repository.PartFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, parts, 1)
}

func TestPartRepo_BorradoEnCascada(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	p := newPart(t, pool, "BC547", 0, 0)

	m := &entity.Manufacturer{Name: "onsemi"}
	require.NoError(t, postgres.NewManufacturerRepository(pool).Create(ctx, m))
	require.NoError(t, postgres.NewPartManufacturerRepository(pool).Create(ctx,
		&entity.PartManufacturer{PartID: p.ID, Manufacturer: m, PartNumber: "BC547BTA"}))
	require.NoError(t, postgres.NewPartParameterRepository(pool).Create(ctx,
		&entity.PartParameter{PartID: p.ID, Name: "hFE", Value: decimal.NewFromInt(110)}))
	stock := postgres.NewStockEntryRepository(pool)
	require.NoError(t, stock.Create(ctx, &entity.StockEntry{PartID: p.ID, StockLevel: 7, DateTime: time.Now()}))

	require.NoError(t, postgres.NewPartRepository(pool).Delete(ctx, p.ID))

	n, err := stock.CountByPart(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	links, err := postgres.NewPartManufacturerRepository(pool).ListByPart(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
	params, err := postgres.NewPartParameterRepository(pool).ListByPart(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, params)

	// el fabricante sigue existiendo y ya no está referenciado
	require.NoError(t, postgres.NewManufacturerRepository(pool).Delete(ctx, m.ID))
}

func TestCatalogo_ReferenciadoDevuelveConflicto(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	footprints := postgres.NewFootprintRepository(pool)

	f := &entity.Footprint{Name: "TO-92"}
	require.NoError(t, footprints.Create(ctx, f))
	p := entity.NewPart()
	p.Name = "2N2222"
	p.SetFootprint(f)
	require.NoError(t, postgres.NewPartRepository(pool).Create(ctx, p))

	assert.ErrorIs(t, footprints.Delete(ctx, f.ID), domain.ErrConflict)
	assert.ErrorIs(t, footprints.Create(ctx, &entity.Footprint{Name: "to-92"}), domain.ErrDuplicate)

	ghost := entity.NewPart()
	ghost.Name = "fantasma"
	ghost.SetFootprint(&entity.Footprint{ID: 9999})
	assert.ErrorIs(t, postgres.NewPartRepository(pool).Create(ctx, ghost), domain.ErrConflict)
}

func TestPartRepo_BusquedaEscapaComodines(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	parts := postgres.NewPartRepository(pool)
	for _, name := range []string{"100% Cotton", "1000 Ohm", "a_b", "axb", `back\slash`} {
		newPart(t, pool, name, 0, 0)
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"0%", []string{"100% Cotton"}},
		{"a_b", []string{"a_b"}},
		{`k\s`, []string{`back\slash`}},
		{"OHM", []string{"1000 Ohm"}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			list, total, err := parts.List(ctx, repository.PartFilter{Query: tc.query})
			require.NoError(t, err)
			assert.Equal(t, len(tc.want), total)
			assert.Equal(t, tc.want, partNames(list))
		})
	}
}

func TestPartRepo_LeeReferenciasDelJoin(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()

	parent := &entity.Category{Name: "Semiconductores"}
	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, parent))
	cat := &entity.Category{Name: "Transistores", ParentID: &parent.ID, Description: "BJT"}
	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, cat))
	f := &entity.Footprint{Name: "SOT-23", Description: "3 pines"}
	require.NoError(t, postgres.NewFootprintRepository(pool).Create(ctx, f))
	loc := &entity.StorageLocation{Name: "Cajón A1"}
	require.NoError(t, postgres.NewStorageLocationRepository(pool).Create(ctx, loc))
	unit, err := postgres.NewPartUnitRepository(pool).GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, unit)

	p := entity.NewPart()
	p.Name = "BC847"
	p.SetCategory(cat)
	p.SetFootprint(f)
	p.SetStorageLocation(loc)
	p.SetPartUnit(unit)
	parts := postgres.NewPartRepository(pool)
	require.NoError(t, parts.Create(ctx, p))
	bare := newPart(t, pool, "Sin referencias", 0, 0)

	got, err := parts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Transistores", got.Category.Name)
	assert.Equal(t, "BJT", got.Category.Description)
	require.NotNil(t, got.Category.ParentID)
	assert.Equal(t, parent.ID, *got.Category.ParentID)
	require.NotNil(t, got.Footprint)
	assert.Equal(t, "3 pines", got.Footprint.Description)
	require.NotNil(t, got.StorageLocation)
	assert.Equal(t, "Cajón A1", got.StorageLocation.Name)
	require.NotNil(t, got.PartUnit)
	assert.Equal(t, "Pieces", got.PartUnit.Name)
	assert.True(t, got.PartUnit.IsDefault)

	got, err = parts.GetByID(ctx, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.Footprint)
	assert.Nil(t, got.StorageLocation)
	assert.Nil(t, got.PartUnit)

	missing, err := parts.GetByID(ctx, 424242)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPartRepo_StockBajoPaginaPorFaltante(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	newPart(t, pool, "A", 10, 9)
	newPart(t, pool, "B", 10, 8)
	newPart(t, pool, "Z", 100, 0)
	newPart(t, pool, "Lleno", 5, 5)

	first, err := postgres.NewPartRepository(pool).ListBelowMinStock(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "B"}, partNames(first))

	rest, err := postgres.NewPartRepository(pool).ListBelowMinStock(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, partNames(rest))
}

func TestPartUnitRepo_SaveAsDefaultEsAtomico(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	units := postgres.NewPartUnitRepository(pool)

	err := units.SaveAsDefault(ctx, &entity.PartUnit{Name: "pieces"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	def, err := units.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Pieces", def.Name)

	m := &entity.PartUnit{Name: "Meter", ShortName: "m"}
	require.NoError(t, units.SaveAsDefault(ctx, m))
	def, err = units.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, m.ID, def.ID)

	// dentro de una tx, Begin abre un savepoint
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()
	require.NoError(t, postgres.NewPartUnitRepository(tx).SaveAsDefault(ctx, &entity.PartUnit{Name: "Gram", ShortName: "g"}))
	require.NoError(t, tx.Commit(ctx))

	def, err = units.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Gram", def.Name)
}
