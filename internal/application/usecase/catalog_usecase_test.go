package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/application/usecase"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func kindOf(t *testing.T, err error) string {
	t.Helper()
	ex, ok := domain.AsException(err)
	require.True(t, ok, "se esperaba una excepción de dominio, llegó %v", err)
	return ex.Kind
}

// ─────────────────────────────────────────────────────────────────────────────
// Categorías
// ─────────────────────────────────────────────────────────────────────────────

func TestCategory_ArbolYMovimiento(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memory.NewCategoryRepository(memory.NewStore()))
	ctx := context.Background()

	root, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Electrónica"})
	require.NoError(t, err)
	passive, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Pasivos", Parent: dto.ID(root.ID)})
	require.NoError(t, err)
	res, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Resistencias", Parent: dto.ID(passive.ID)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Capacitores", Parent: dto.ID(passive.ID)})
	require.NoError(t, err)

	tree, err := uc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	kids := tree[0].Children[0].Children
	require.Len(t, kids, 2)
	assert.Equal(t, "Capacitores", kids[0].Name, "hijos ordenados por nombre")

	// Mover la raíz debajo de un descendiente forma un ciclo.
	_, err = uc.Update(ctx, root.ID, dto.UpdateCategoryRequest{Parent: dto.ID(res.ID)})
	assert.Equal(t, domain.KindInvalidInput, kindOf(t, err))
	_, err = uc.Update(ctx, root.ID, dto.UpdateCategoryRequest{Parent: dto.ID(root.ID)})
	assert.Equal(t, domain.KindInvalidInput, kindOf(t, err))

	// Subir Resistencias a la raíz.
	moved, err := uc.Update(ctx, res.ID, dto.UpdateCategoryRequest{Parent: dto.Null()})
	require.NoError(t, err)
	assert.Nil(t, moved.Parent)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "X", Parent: dto.ID(999)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_DeleteConHijos(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memory.NewCategoryRepository(memory.NewStore()))
	ctx := context.Background()
	root, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Raíz"})
	require.NoError(t, err)
	child, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Hija", Parent: dto.ID(root.ID)})
	require.NoError(t, err)

	err = uc.Delete(ctx, root.ID)
	assert.Equal(t, domain.KindInUse, kindOf(t, err))

	require.NoError(t, uc.Delete(ctx, child.ID))
	require.NoError(t, uc.Delete(ctx, root.ID))
	assert.ErrorIs(t, uc.Delete(ctx, root.ID), domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Catálogo con nombre único
// ─────────────────────────────────────────────────────────────────────────────

func TestFootprint_DuplicadoYEnUso(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewFootprintUseCase(memory.NewFootprintRepository(store))
	ctx := context.Background()

	fp, err := uc.Create(ctx, dto.CreateFootprintRequest{Name: "0603"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateFootprintRequest{Name: "0603"})
	assert.Equal(t, domain.KindDuplicate, kindOf(t, err))

	p := entity.NewPart()
	p.SetName("Resistor")
	p.SetFootprint(&entity.Footprint{ID: fp.ID, Name: fp.Name})
	require.NoError(t, memory.NewPartRepository(store).Create(ctx, p))

	err = uc.Delete(ctx, fp.ID)
	assert.Equal(t, domain.KindInUse, kindOf(t, err))

	updated, err := uc.Update(ctx, fp.ID, dto.UpdateFootprintRequest{Description: strPtr("SMD 1.6x0.8mm")})
	require.NoError(t, err)
	assert.Equal(t, "0603", updated.Name)
	assert.Equal(t, "SMD 1.6x0.8mm", updated.Description)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)
}

func TestStorageLocation_CRUD(t *testing.T) {
	uc := usecase.NewStorageLocationUseCase(memory.NewStorageLocationRepository(memory.NewStore()))
	ctx := context.Background()

	loc, err := uc.Create(ctx, dto.CreateStorageLocationRequest{Name: "Cajón A1"})
	require.NoError(t, err)
	got, err := uc.GetByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cajón A1", got.Name)

	require.NoError(t, uc.Delete(ctx, loc.ID))
	_, err = uc.GetByID(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestManufacturer_ValidaContacto(t *testing.T) {
	uc := usecase.NewManufacturerUseCase(memory.NewManufacturerRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CompanyRequest{})
	assert.Equal(t, domain.KindValidation, kindOf(t, err))

	in := dto.CompanyRequest{Name: strPtr("Yageo")}
	in.Email = strPtr("no-es-email")
	_, err = uc.Create(ctx, in)
	ex, ok := domain.AsException(err)
	require.True(t, ok)
	assert.Contains(t, ex.Fields, "email")

	in.Email = strPtr("ventas@yageo.com")
	m, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "ventas@yageo.com", m.Email)
}

func TestPartUnit_SoloUnaPredeterminada(t *testing.T) {
	repo := memory.NewPartUnitRepository(memory.NewStore())
	uc := usecase.NewPartUnitUseCase(repo)
	ctx := context.Background()

	def, err := repo.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)

	meters, err := uc.Create(ctx, dto.CreatePartUnitRequest{Name: "Meters", ShortName: "m", IsDefault: true})
	require.NoError(t, err)

	def, err = repo.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, meters.ID, def.ID)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	defaults := 0
	for _, u := range list.Data {
		if u.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestPartUnit_PredeterminadaDuplicadaNoPierdeLaActual(t *testing.T) {
	repo := memory.NewPartUnitRepository(memory.NewStore())
	uc := usecase.NewPartUnitUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreatePartUnitRequest{Name: "pieces", ShortName: "pc", IsDefault: true})
	assert.Equal(t, domain.KindDuplicate, kindOf(t, err))

	def, err := repo.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Pieces", def.Name)
}
