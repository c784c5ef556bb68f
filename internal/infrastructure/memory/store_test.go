package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
	"github.com/jhoicas/partdb-api/internal/infrastructure/memory"
)

func newPart(t *testing.T, repo *memory.PartRepo, name string) *entity.Part {
	t.Helper()
	p := entity.NewPart()
	p.Name = name
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestTxRunner_ErrorDescartaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	parts := memory.NewPartRepository(store)
	tx := memory.NewTxRunner(store)
	boom := errors.New("falla a mitad de camino")

	err := tx.Run(ctx, func(
		partRepo repository.PartRepository,
		_ repository.PartManufacturerRepository,
		_ repository.PartDistributorRepository,
		parameterRepo repository.PartParameterRepository,
		_ repository.StockEntryRepository,
	) error {
		p := entity.NewPart()
		p.Name = "Transistor"
		require.NoError(t, partRepo.Create(ctx, p))
		require.NoError(t, parameterRepo.Create(ctx, &entity.PartParameter{PartID: p.ID, Name: "hFE"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, total, err := parts.List(ctx, repository.PartFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestTxRunner_Commit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)

	var id int64
	err := tx.Run(ctx, func(
		partRepo repository.PartRepository,
		_ repository.PartManufacturerRepository,
		_ repository.PartDistributorRepository,
		_ repository.PartParameterRepository,
		stockRepo repository.StockEntryRepository,
	) error {
		p := entity.NewPart()
		p.Name = "Diode"
		if err := partRepo.Create(ctx, p); err != nil {
			return err
		}
		id = p.ID
		return stockRepo.Create(ctx, &entity.StockEntry{PartID: p.ID, StockLevel: 4, DateTime: time.Now()})
	})
	require.NoError(t, err)

	sum, err := memory.NewStockEntryRepository(store).SumQuantity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sum)
}

func TestPartRepo_DeleteEnCascada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	parts := memory.NewPartRepository(store)
	stock := memory.NewStockEntryRepository(store)
	params := memory.NewPartParameterRepository(store)
	manufacturers := memory.NewManufacturerRepository(store)
	links := memory.NewPartManufacturerRepository(store)

	p := newPart(t, parts, "LED")
	m := &entity.Manufacturer{Name: "Kingbright"}
	require.NoError(t, manufacturers.Create(ctx, m))
	require.NoError(t, links.Create(ctx, &entity.PartManufacturer{PartID: p.ID, Manufacturer: m, PartNumber: "L-7104"}))
	require.NoError(t, params.Create(ctx, &entity.PartParameter{PartID: p.ID, Name: "Color"}))
	require.NoError(t, stock.Create(ctx, &entity.StockEntry{PartID: p.ID, StockLevel: 10}))

	// Con vínculos el fabricante está en uso.
	assert.ErrorIs(t, manufacturers.Delete(ctx, m.ID), domain.ErrConflict)

	require.NoError(t, parts.Delete(ctx, p.ID))

	got, err := parts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	sum, err := stock.SumQuantity(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, sum)
	pl, err := params.ListByPart(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, pl)
	ml, err := links.ListByPart(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, ml)

	assert.NoError(t, manufacturers.Delete(ctx, m.ID))
}

func TestStockEntryRepo_SumaSinMovimientosEsCero(t *testing.T) {
	store := memory.NewStore()
	p := newPart(t, memory.NewPartRepository(store), "Capacitor")

	sum, err := memory.NewStockEntryRepository(store).SumQuantity(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestStockEntryRepo_HistorialMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := newPart(t, memory.NewPartRepository(store), "Relay")
	stock := memory.NewStockEntryRepository(store)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, qty := range []int64{5, -2, 7} {
		require.NoError(t, stock.Create(ctx, &entity.StockEntry{
			PartID: p.ID, StockLevel: qty, DateTime: base.Add(time.Duration(i) * time.Hour),
			Price: decimal.NullDecimal{},
		}))
	}
	list, err := stock.ListByPart(ctx, p.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(7), list[0].StockLevel)
	assert.Equal(t, int64(-2), list[1].StockLevel)

	n, err := stock.CountByPart(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCatalog_NombreDuplicadoYEnUso(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	footprints := memory.NewFootprintRepository(store)
	parts := memory.NewPartRepository(store)

	f := &entity.Footprint{Name: "0805"}
	require.NoError(t, footprints.Create(ctx, f))
	assert.ErrorIs(t, footprints.Create(ctx, &entity.Footprint{Name: "0805"}), domain.ErrDuplicate)

	p := entity.NewPart()
	p.Name = "Resistor"
	p.SetFootprint(f)
	require.NoError(t, parts.Create(ctx, p))
	assert.ErrorIs(t, footprints.Delete(ctx, f.ID), domain.ErrConflict)
}

func TestPartUnitRepo_UnidadPredeterminada(t *testing.T) {
	ctx := context.Background()
	units := memory.NewPartUnitRepository(memory.NewStore())

	def, err := units.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Pieces", def.Name)

	m := &entity.PartUnit{Name: "Meter", ShortName: "m"}
	require.NoError(t, units.SaveAsDefault(ctx, m))
	require.Positive(t, m.ID)
	assert.True(t, m.IsDefault)

	def, err = units.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, m.ID, def.ID)

	list, _, err := units.List(ctx, 0, 0)
	require.NoError(t, err)
	defaults := 0
	for _, u := range list {
		if u.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestPartUnitRepo_SaveAsDefaultFallidoConservaPredeterminada(t *testing.T) {
	ctx := context.Background()
	units := memory.NewPartUnitRepository(memory.NewStore())

	err := units.SaveAsDefault(ctx, &entity.PartUnit{Name: "pieces"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	def, err := units.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Pieces", def.Name)
}
