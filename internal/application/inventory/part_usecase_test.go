package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/part"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
	"github.com/jhoicas/partdb-api/internal/infrastructure/memory"
)

func TestAddOrUpdatePart_CreaConValoresPorDefecto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	s, err := e.parts.AddOrUpdatePart(ctx, e.tr, dto.SavePartRequest{Name: "Resistor 10k"})
	require.NoError(t, err)
	assert.Positive(t, s.ID)
	assert.Equal(t, "Resistor 10k", s.Name)
	assert.Equal(t, int64(0), s.MinStockLevel)
	assert.Equal(t, int64(0), s.StockLevel)
	assert.Nil(t, s.AveragePrice)
	require.NotNil(t, s.PartUnitID, "las piezas nuevas usan la unidad predeterminada")
	assert.Equal(t, "Pieces", s.PartUnitName)

	got, err := e.parts.Get(ctx, e.tr, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Resistor 10k", got.Name)
	assert.Equal(t, int64(0), got.StockLevel)
}

func TestAddOrUpdatePart_StockMinimoNegativo(t *testing.T) {
	e := newEnv(t)
	level := dto.FlexInt(-1)

	_, err := e.parts.AddOrUpdatePart(context.Background(), e.tr, dto.SavePartRequest{Name: "LED", MinStockLevel: &level})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	ex, _ := domain.AsException(err)
	assert.Equal(t, "The minimum stock level must be 0 or higher", ex.Serialize(e.tr).Detail)
}

func TestAddOrUpdatePart_NombreRequerido(t *testing.T) {
	e := newEnv(t)
	_, err := e.parts.AddOrUpdatePart(context.Background(), e.tr, dto.SavePartRequest{})
	assert.Equal(t, domain.KindValidation, kindOf(t, err))
}

func TestAddOrUpdatePart_ActualizaSinTocarStockMinimo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	created := e.createPart(t, "Capacitor 100nF", 20)

	comment := "cerámico"
	s, err := e.parts.AddOrUpdatePart(ctx, e.tr, dto.SavePartRequest{
		Part:    dto.FlexInt(created.ID),
		Name:    "Capacitor 100nF X7R",
		Comment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, s.ID)
	assert.Equal(t, "Capacitor 100nF X7R", s.Name)
	assert.Equal(t, "cerámico", s.Comment)
	assert.Equal(t, int64(20), s.MinStockLevel)
}

func TestAddOrUpdatePart_PiezaInexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.parts.AddOrUpdatePart(context.Background(), e.tr, dto.SavePartRequest{Part: 999, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddOrUpdatePart_ReferenciaInexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.parts.AddOrUpdatePart(context.Background(), e.tr, dto.SavePartRequest{Name: "X", FootprintID: dto.ID(44)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddOrUpdatePart_ColeccionesHijas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	yageo := e.manufacturer(t, "Yageo")
	vishay := e.manufacturer(t, "Vishay")
	mouser := e.distributor(t, "Mouser")
	pack := dto.FlexInt(100)

	s, err := e.parts.AddOrUpdatePart(ctx, e.tr, dto.SavePartRequest{
		Name: "Resistor 4k7",
		ManufacturerChanges: part.ChangeSet[dto.PartManufacturerRecord]{
			Inserts: []dto.PartManufacturerRecord{
				{ManufacturerID: dto.ID(yageo), PartNumber: "RC0603FR-074K7L"},
				{ManufacturerID: dto.ID(vishay), PartNumber: "CRCW06034K70FKEA"},
			},
		},
		DistributorChanges: part.ChangeSet[dto.PartDistributorRecord]{
			Inserts: []dto.PartDistributorRecord{
				{DistributorID: dto.ID(mouser), OrderNumber: "603-RC0603FR-074K7L", PackagingUnit: &pack,
					Price: decimal.NewNullDecimal(decimal.RequireFromString("0.10"))},
			},
		},
		ParameterChanges: part.ChangeSet[dto.PartParameterRecord]{
			Inserts: []dto.PartParameterRecord{
				{Name: "Resistance", Value: decimal.NewFromInt(4700), Unit: "Ω"},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, s.Manufacturers, 2)
	require.Len(t, s.Distributors, 1)
	require.Len(t, s.Parameters, 1)
	assert.Equal(t, int64(100), s.Distributors[0].PackagingUnit)
	assert.Equal(t, "Yageo", *s.Manufacturers[0].ManufacturerName)

	// Quita Vishay, renombra el número de Yageo y agrega un parámetro.
	first, second := s.Manufacturers[0], s.Manufacturers[1]
	s, err = e.parts.AddOrUpdatePart(ctx, e.tr, dto.SavePartRequest{
		Part: dto.FlexInt(s.ID),
		Name: "Resistor 4k7",
		ManufacturerChanges: part.ChangeSet[dto.PartManufacturerRecord]{
			Updates:  []dto.PartManufacturerRecord{{ID: dto.FlexInt(first.ID), ManufacturerID: dto.ID(yageo), PartNumber: "RC0603"}},
			Removals: []dto.PartManufacturerRecord{{ID: dto.FlexInt(second.ID)}},
		},
		ParameterChanges: part.ChangeSet[dto.PartParameterRecord]{
			Inserts: []dto.PartParameterRecord{{Name: "Tolerance", Value: decimal.NewFromInt(1), Unit: "%"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, s.Manufacturers, 1)
	assert.Equal(t, "RC0603", s.Manufacturers[0].PartNumber)
	assert.Len(t, s.Distributors, 1, "sin cambios en la grilla la colección queda igual")
	assert.Len(t, s.Parameters, 2)
}

func TestAddOrUpdatePart_IdAjenoAbortaTodoElGuardado(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	yageo := e.manufacturer(t, "Yageo")
	other := e.createPart(t, "Otra", 0)
	created := e.createPart(t, "Diodo 1N4148", 0)

	_, err := e.parts.AddOrUpdatePart(ctx, e.tr, dto.SavePartRequest{
		Part: dto.FlexInt(other.ID),
		Name: "Otra",
		ManufacturerChanges: part.ChangeSet[dto.PartManufacturerRecord]{
			Inserts: []dto.PartManufacturerRecord{{ManufacturerID: dto.ID(yageo), PartNumber: "A"}},
		},
	})
	require.NoError(t, err)
	withChild, err := e.parts.Get(ctx, e.tr, other.ID)
	require.NoError(t, err)
	foreign := withChild.Manufacturers[0].ID

	_, err = e.parts.AddOrUpdatePart(ctx, e.tr, dto.SavePartRequest{
		Part: dto.FlexInt(created.ID),
		Name: "Diodo renombrado",
		ManufacturerChanges: part.ChangeSet[dto.PartManufacturerRecord]{
			Inserts: []dto.PartManufacturerRecord{{ManufacturerID: dto.ID(yageo), PartNumber: "B"}},
			Updates: []dto.PartManufacturerRecord{{ID: dto.FlexInt(foreign), ManufacturerID: dto.ID(yageo), PartNumber: "robado"}},
		},
	})
	assert.Equal(t, domain.KindInvalidInput, kindOf(t, err))

	got, err := e.parts.Get(ctx, e.tr, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diodo 1N4148", got.Name, "el nombre no debe persistir si falla una fila hija")
	assert.Empty(t, got.Manufacturers)

	got, err = e.parts.Get(ctx, e.tr, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Manufacturers[0].PartNumber)
}

func TestAddOrUpdatePart_UnidadDeEmpaqueInvalidaRevierte(t *testing.T) {
	e := newEnv(t)
	mouser := e.distributor(t, "Mouser")
	zero := dto.FlexInt(0)

	_, err := e.parts.AddOrUpdatePart(context.Background(), e.tr, dto.SavePartRequest{
		Name: "Transistor",
		DistributorChanges: part.ChangeSet[dto.PartDistributorRecord]{
			Inserts: []dto.PartDistributorRecord{{DistributorID: dto.ID(mouser), PackagingUnit: &zero}},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	list, err := e.parts.List(context.Background(), e.tr, dto.PartListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.TotalCount, "la pieza no debe crearse")
}

func TestAddOrUpdatePart_FabricanteSinId(t *testing.T) {
	e := newEnv(t)
	_, err := e.parts.AddOrUpdatePart(context.Background(), e.tr, dto.SavePartRequest{
		Name: "X",
		ManufacturerChanges: part.ChangeSet[dto.PartManufacturerRecord]{
			Inserts: []dto.PartManufacturerRecord{{PartNumber: "sin fabricante"}},
		},
	})
	ex, ok := domain.AsException(err)
	require.True(t, ok)
	assert.Contains(t, ex.Fields, "manufacturerChanges.inserts[0].manufacturer_id")
}

func TestPartUseCase_ListYDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.createPart(t, "Resistor 1k", 0)
	e.createPart(t, "Resistor 2k", 0)
	led := e.createPart(t, "LED rojo", 0)

	list, err := e.parts.List(ctx, e.tr, dto.PartListRequest{Query: "resistor"})
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalCount)
	require.Len(t, list.Data, 2)

	list, err = e.parts.List(ctx, e.tr, dto.PartListRequest{PageRequest: dto.PageRequest{Limit: 1}})
	require.NoError(t, err)
	assert.Equal(t, 3, list.TotalCount)
	assert.Len(t, list.Data, 1)

	require.NoError(t, e.parts.Delete(ctx, led.ID))
	_, err = e.parts.Get(ctx, e.tr, led.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, e.parts.Delete(ctx, led.ID), domain.ErrNotFound)
}

func TestPartUseCase_SheetSinGenerador(t *testing.T) {
	e := newEnv(t)
	p := e.createPart(t, "X", 0)
	_, _, err := e.parts.Sheet(context.Background(), e.tr, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// deletingRunner borra una referencia justo antes de abrir la transacción.
type deletingRunner struct {
	inner  inventory.TxRunner
	before func()
}

func (r deletingRunner) Run(ctx context.Context, fn func(
	repository.PartRepository,
	repository.PartManufacturerRepository,
	repository.PartDistributorRepository,
	repository.PartParameterRepository,
	repository.StockEntryRepository,
) error) error {
	r.before()
	return r.inner.Run(ctx, fn)
}

func TestAddOrUpdatePart_ReferenciaBorradaEnCarrera(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	footprints := memory.NewFootprintRepository(store)
	f := &entity.Footprint{Name: "SOT-23"}
	require.NoError(t, footprints.Create(ctx, f))

	refs := inventory.References{
		Categories:       memory.NewCategoryRepository(store),
		Footprints:       footprints,
		StorageLocations: memory.NewStorageLocationRepository(store),
		PartUnits:        memory.NewPartUnitRepository(store),
		Manufacturers:    memory.NewManufacturerRepository(store),
		Distributors:     memory.NewDistributorRepository(store),
	}
	runner := deletingRunner{
		inner:  memory.NewTxRunner(store),
		before: func() { require.NoError(t, footprints.Delete(ctx, f.ID)) },
	}
	parts := inventory.NewPartUseCase(
		runner, memory.NewPartRepository(store),
		memory.NewPartManufacturerRepository(store),
		memory.NewPartDistributorRepository(store),
		memory.NewPartParameterRepository(store),
		memory.NewStockEntryRepository(store), refs, nil,
	)
	tr := newEnv(t).tr

	_, err := parts.AddOrUpdatePart(ctx, tr, dto.SavePartRequest{Name: "BC547", FootprintID: dto.ID(f.ID)})
	assert.Equal(t, domain.KindInvalidInput, kindOf(t, err))

	_, total, err := memory.NewPartRepository(store).List(ctx, repository.PartFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}
