package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/infrastructure/memory"
	"github.com/jhoicas/partdb-api/pkg/i18n"
	"github.com/jhoicas/partdb-api/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []inventory.StockChangedEvent
	err    error
}

func (p *recordingPublisher) PublishStockChanged(_ context.Context, e inventory.StockChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type env struct {
	parts     *inventory.PartUseCase
	stock     *inventory.StockUseCase
	lowStock  *inventory.LowStockUseCase
	refs      inventory.References
	publisher *recordingPublisher
	tr        domain.Translator
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	refs := inventory.References{
		Categories:       memory.NewCategoryRepository(store),
		Footprints:       memory.NewFootprintRepository(store),
		StorageLocations: memory.NewStorageLocationRepository(store),
		PartUnits:        memory.NewPartUnitRepository(store),
		Manufacturers:    memory.NewManufacturerRepository(store),
		Distributors:     memory.NewDistributorRepository(store),
	}
	txRunner := memory.NewTxRunner(store)
	partRepo := memory.NewPartRepository(store)
	stockRepo := memory.NewStockEntryRepository(store)
	pub := &recordingPublisher{}

	translator, err := i18n.New("en")
	require.NoError(t, err)

	return &env{
		parts: inventory.NewPartUseCase(
			txRunner, partRepo,
			memory.NewPartManufacturerRepository(store),
			memory.NewPartDistributorRepository(store),
			memory.NewPartParameterRepository(store),
			stockRepo, refs, nil,
		),
		stock:     inventory.NewStockUseCase(txRunner, partRepo, stockRepo, pub, logger.Nop()),
		lowStock:  inventory.NewLowStockUseCase(partRepo),
		refs:      refs,
		publisher: pub,
		tr:        translator.Default(),
	}
}

func (e *env) createPart(t *testing.T, name string, minStock int64) *entity.PartSnapshot {
	t.Helper()
	level := dto.FlexInt(minStock)
	s, err := e.parts.AddOrUpdatePart(context.Background(), e.tr, dto.SavePartRequest{Name: name, MinStockLevel: &level})
	require.NoError(t, err)
	return s
}

func (e *env) manufacturer(t *testing.T, name string) int64 {
	t.Helper()
	m := &entity.Manufacturer{Name: name}
	require.NoError(t, e.refs.Manufacturers.Create(context.Background(), m))
	return m.ID
}

func (e *env) distributor(t *testing.T, name string) int64 {
	t.Helper()
	d := &entity.Distributor{Name: name}
	require.NoError(t, e.refs.Distributors.Create(context.Background(), d))
	return d.ID
}

func kindOf(t *testing.T, err error) string {
	t.Helper()
	ex, ok := domain.AsException(err)
	require.True(t, ok, "se esperaba una excepción de dominio, llegó %v", err)
	return ex.Kind
}
