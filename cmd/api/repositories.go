package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
	"github.com/jhoicas/partdb-api/internal/infrastructure/memory"
	"github.com/jhoicas/partdb-api/internal/infrastructure/postgres"
	"github.com/jhoicas/partdb-api/pkg/config"
)

// repositories adaptadores de persistencia del driver elegido (DB_DRIVER).
type repositories struct {
	txRunner          inventory.TxRunner
	parts             repository.PartRepository
	partManufacturers repository.PartManufacturerRepository
	partDistributors  repository.PartDistributorRepository
	partParameters    repository.PartParameterRepository
	stock             repository.StockEntryRepository
	refs              inventory.References
}

// openRepositories abre la persistencia y devuelve la función que la libera.
func openRepositories(ctx context.Context, cfg config.DBConfig) (*repositories, func(), error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.NewStore()
		return &repositories{
			txRunner:          memory.NewTxRunner(store),
			parts:             memory.NewPartRepository(store),
			partManufacturers: memory.NewPartManufacturerRepository(store),
			partDistributors:  memory.NewPartDistributorRepository(store),
			partParameters:    memory.NewPartParameterRepository(store),
			stock:             memory.NewStockEntryRepository(store),
			refs: inventory.References{
				Categories:       memory.NewCategoryRepository(store),
				Footprints:       memory.NewFootprintRepository(store),
				StorageLocations: memory.NewStorageLocationRepository(store),
				PartUnits:        memory.NewPartUnitRepository(store),
				Manufacturers:    memory.NewManufacturerRepository(store),
				Distributors:     memory.NewDistributorRepository(store),
			},
		}, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return &repositories{
		txRunner:          postgres.NewTxRunner(pool),
		parts:             postgres.NewPartRepository(pool),
		partManufacturers: postgres.NewPartManufacturerRepository(pool),
		partDistributors:  postgres.NewPartDistributorRepository(pool),
		partParameters:    postgres.NewPartParameterRepository(pool),
		stock:             postgres.NewStockEntryRepository(pool),
		refs: inventory.References{
			Categories:       postgres.NewCategoryRepository(pool),
			Footprints:       postgres.NewFootprintRepository(pool),
			StorageLocations: postgres.NewStorageLocationRepository(pool),
			PartUnits:        postgres.NewPartUnitRepository(pool),
			Manufacturers:    postgres.NewManufacturerRepository(pool),
			Distributors:     postgres.NewDistributorRepository(pool),
		},
	}, pool.Close, nil
}
