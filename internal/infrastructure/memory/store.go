// Package memory implementa los puertos de persistencia en memoria. Se usa con
// DB_DRIVER=memory y como doble de la base de datos en los tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

type partRow struct {
	ID                int64
	Name              string
	Comment           string
	MinStockLevel     int64
	StockLevel        int64
	AveragePrice      decimal.NullDecimal
	CategoryID        *int64
	FootprintID       *int64
	PartUnitID        *int64
	StorageLocationID *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type partManufacturerRow struct {
	ID             int64
	PartID         int64
	ManufacturerID int64
	PartNumber     string
}

type partDistributorRow struct {
	ID            int64
	PartID        int64
	DistributorID int64
	OrderNumber   string
	PackagingUnit int64
	Price         decimal.NullDecimal
}

// state tablas en memoria. Las filas se guardan por valor; clone copia los mapas.
type state struct {
	seq               map[string]int64
	parts             map[int64]partRow
	categories        map[int64]entity.Category
	footprints        map[int64]entity.Footprint
	locations         map[int64]entity.StorageLocation
	manufacturers     map[int64]entity.Manufacturer
	distributors      map[int64]entity.Distributor
	units             map[int64]entity.PartUnit
	partManufacturers map[int64]partManufacturerRow
	partDistributors  map[int64]partDistributorRow
	parameters        map[int64]entity.PartParameter
	stock             map[int64]entity.StockEntry
}

func newState() *state {
	return &state{
		seq:               map[string]int64{},
		parts:             map[int64]partRow{},
		categories:        map[int64]entity.Category{},
		footprints:        map[int64]entity.Footprint{},
		locations:         map[int64]entity.StorageLocation{},
		manufacturers:     map[int64]entity.Manufacturer{},
		distributors:      map[int64]entity.Distributor{},
		units:             map[int64]entity.PartUnit{},
		partManufacturers: map[int64]partManufacturerRow{},
		partDistributors:  map[int64]partDistributorRow{},
		parameters:        map[int64]entity.PartParameter{},
		stock:             map[int64]entity.StockEntry{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		seq:               cloneMap(s.seq),
		parts:             cloneMap(s.parts),
		categories:        cloneMap(s.categories),
		footprints:        cloneMap(s.footprints),
		locations:         cloneMap(s.locations),
		manufacturers:     cloneMap(s.manufacturers),
		distributors:      cloneMap(s.distributors),
		units:             cloneMap(s.units),
		partManufacturers: cloneMap(s.partManufacturers),
		partDistributors:  cloneMap(s.partDistributors),
		parameters:        cloneMap(s.parameters),
		stock:             cloneMap(s.stock),
	}
}

func (s *state) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// Store base de datos en memoria. Las transacciones trabajan sobre una copia que
// reemplaza al estado sólo si la función termina sin error.
type Store struct {
	txMu sync.Mutex   // serializa escrituras (transacciones y autocommit)
	mu   sync.RWMutex // protege data
	data *state
}

// NewStore crea una base vacía con la unidad predeterminada "Pieces", igual que la migración inicial.
func NewStore() *Store {
	s := &Store{data: newState()}
	now := time.Now()
	id := s.data.next("part_units")
	s.data.units[id] = entity.PartUnit{ID: id, Name: "Pieces", ShortName: "pcs", IsDefault: true, CreatedAt: now, UpdatedAt: now}
	return s
}

// handle acceso a las tablas: tx != nil dentro de una transacción, si no autocommit sobre el store.
type handle struct {
	store *Store
	tx    *state
}

func (h handle) read(ctx context.Context, fn func(s *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return fn(h.store.data)
}

// write en autocommit aplica fn sobre una copia, igual que una transacción de una sentencia.
func (h handle) write(ctx context.Context, fn func(s *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.tx != nil {
		return fn(h.tx)
	}
	return h.store.atomically(fn)
}

func (s *Store) atomically(fn func(s *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción en memoria.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a una copia del estado; si fn falla la copia se descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	manufacturerRepo repository.PartManufacturerRepository,
	distributorRepo repository.PartDistributorRepository,
	parameterRepo repository.PartParameterRepository,
	stockRepo repository.StockEntryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.atomically(func(tx *state) error {
		h := handle{store: r.store, tx: tx}
		return fn(
			&PartRepo{h: h},
			&PartManufacturerRepo{h: h},
			&PartDistributorRepo{h: h},
			&PartParameterRepo{h: h},
			&StockEntryRepo{h: h},
		)
	})
}

// paginate aplica limit/offset sobre una lista ya ordenada; limit <= 0 devuelve el resto.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortedByName[T any](items []T, name func(T) string, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool {
		ni, nj := name(items[i]), name(items[j])
		if ni != nj {
			return ni < nj
		}
		return id(items[i]) < id(items[j])
	})
}
