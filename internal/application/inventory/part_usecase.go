package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/inventory"
	"github.com/jhoicas/partdb-api/internal/domain/part"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

// Nombres de entidad usados en los mensajes (se traducen al serializar la excepción).
const (
	entityPart            = "Part"
	entityCategory        = "Category"
	entityFootprint       = "Footprint"
	entityStorageLocation = "Storage Location"
	entityPartUnit        = "Part Unit"
	entityManufacturer    = "Manufacturer"
	entityDistributor     = "Distributor"
)

// PartUseCase orquesta el agregado Part: guardado con sus colecciones hijas, lectura,
// listado, borrado en cascada y recálculo de los valores cacheados.
type PartUseCase struct {
	txRunner         TxRunner
	partRepo         repository.PartRepository
	manufacturerRepo repository.PartManufacturerRepository
	distributorRepo  repository.PartDistributorRepository
	parameterRepo    repository.PartParameterRepository
	stockRepo        repository.StockEntryRepository
	refs             References
	sheets           PartSheetGenerator
}

// NewPartUseCase construye el caso de uso. sheets puede ser nil si no se exponen hojas PDF.
func NewPartUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	manufacturerRepo repository.PartManufacturerRepository,
	distributorRepo repository.PartDistributorRepository,
	parameterRepo repository.PartParameterRepository,
	stockRepo repository.StockEntryRepository,
	refs References,
	sheets PartSheetGenerator,
) *PartUseCase {
	return &PartUseCase{
		txRunner:         txRunner,
		partRepo:         partRepo,
		manufacturerRepo: manufacturerRepo,
		distributorRepo:  distributorRepo,
		parameterRepo:    parameterRepo,
		stockRepo:        stockRepo,
		refs:             refs,
		sheets:           sheets,
	}
}

// resolvedRefs referencias de la pieza y de las filas hijas ya cargadas desde el catálogo.
type resolvedRefs struct {
	category        *entity.Category
	footprint       *entity.Footprint
	storageLocation *entity.StorageLocation
	partUnit        *entity.PartUnit
	manufacturers   map[int64]*entity.Manufacturer
	distributors    map[int64]*entity.Distributor
}

// AddOrUpdatePart crea la pieza (in.Part = 0) o actualiza la existente, aplicando los cambios
// de las grillas de fabricantes, distribuidores y parámetros. Todo se guarda en una sola
// transacción: cualquier error (rango, id ajeno, referencia inexistente) aborta el guardado.
func (uc *PartUseCase) AddOrUpdatePart(ctx context.Context, tr domain.Translator, in dto.SavePartRequest) (*entity.PartSnapshot, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	refs, err := uc.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var saved *entity.Part
	err = uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		manufacturerRepo repository.PartManufacturerRepository,
		distributorRepo repository.PartDistributorRepository,
		parameterRepo repository.PartParameterRepository,
		stockRepo repository.StockEntryRepository,
	) error {
		p, err := uc.buildPart(ctx, partRepo, in, refs, now)
		if err != nil {
			return err
		}
		if p.ID == 0 {
			err = partRepo.Create(ctx, p)
		} else {
			err = partRepo.Update(ctx, p)
		}
		if err != nil {
			return partWriteError(err)
		}

		if err := applyManufacturers(ctx, manufacturerRepo, p.ID, in.ManufacturerChanges, refs); err != nil {
			return err
		}
		if err := applyDistributors(ctx, distributorRepo, p.ID, in.DistributorChanges, refs); err != nil {
			return err
		}
		if err := applyParameters(ctx, parameterRepo, p.ID, in.ParameterChanges); err != nil {
			return err
		}

		saved, err = loadPart(ctx, partRepo, manufacturerRepo, distributorRepo, parameterRepo, p.ID)
		if err != nil {
			return err
		}
		return saved.UpdateStockLevel(ctx, stockRepo)
	})
	if err != nil {
		return nil, err
	}
	s := saved.Serialize(tr)
	return &s, nil
}

// partWriteError traduce la violación de FK (referencia borrada tras resolverla) a una
// excepción de dominio.
func partWriteError(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return domain.NewInvalidInput("A referenced record no longer exists")
	}
	return err
}

// buildPart carga (o crea) la pieza y le aplica los campos escalares y referencias posteadas.
func (uc *PartUseCase) buildPart(ctx context.Context, partRepo repository.PartRepository, in dto.SavePartRequest, refs resolvedRefs, now time.Time) (*entity.Part, error) {
	var p *entity.Part
	if id := in.Part.Int64(); id > 0 {
		existing, err := partRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.NewNotFound(entityPart, id)
		}
		p = existing
	} else {
		p = entity.NewPart()
		p.CreatedAt = now
		// Las piezas nuevas sin unidad usan la unidad predeterminada, si existe.
		if !in.PartUnitID.Set {
			def, err := uc.refs.PartUnits.GetDefault(ctx)
			if err != nil {
				return nil, err
			}
			p.SetPartUnit(def)
		}
	}

	p.SetName(in.Name)
	if in.Comment != nil {
		p.SetComment(*in.Comment)
	}
	if in.MinStockLevel != nil {
		if err := p.SetMinStockLevel(in.MinStockLevel.Int64()); err != nil {
			return nil, err
		}
	}
	if in.CategoryID.Set {
		p.SetCategory(refs.category)
	}
	if in.FootprintID.Set {
		p.SetFootprint(refs.footprint)
	}
	if in.StorageLocationID.Set {
		p.SetStorageLocation(refs.storageLocation)
	}
	if in.PartUnitID.Set {
		p.SetPartUnit(refs.partUnit)
	}
	p.UpdatedAt = now
	return p, nil
}

// resolve carga las referencias del catálogo antes de abrir la transacción.
func (uc *PartUseCase) resolve(ctx context.Context, in dto.SavePartRequest) (resolvedRefs, error) {
	refs := resolvedRefs{
		manufacturers: map[int64]*entity.Manufacturer{},
		distributors:  map[int64]*entity.Distributor{},
	}
	var err error
	if in.CategoryID.Valid {
		if refs.category, err = lookup(ctx, uc.refs.Categories.GetByID, entityCategory, in.CategoryID.Value); err != nil {
			return refs, err
		}
	}
	if in.FootprintID.Valid {
		if refs.footprint, err = lookup(ctx, uc.refs.Footprints.GetByID, entityFootprint, in.FootprintID.Value); err != nil {
			return refs, err
		}
	}
	if in.StorageLocationID.Valid {
		if refs.storageLocation, err = lookup(ctx, uc.refs.StorageLocations.GetByID, entityStorageLocation, in.StorageLocationID.Value); err != nil {
			return refs, err
		}
	}
	if in.PartUnitID.Valid {
		if refs.partUnit, err = lookup(ctx, uc.refs.PartUnits.GetByID, entityPartUnit, in.PartUnitID.Value); err != nil {
			return refs, err
		}
	}

	missing := map[string]string{}
	rows := map[string][]dto.PartManufacturerRecord{
		"manufacturerChanges.inserts": in.ManufacturerChanges.Inserts,
		"manufacturerChanges.updates": in.ManufacturerChanges.Updates,
	}
	for grid, records := range rows {
		for i, r := range records {
			if !r.ManufacturerID.Valid {
				missing[fmt.Sprintf("%s[%d].manufacturer_id", grid, i)] = "This field is required"
				continue
			}
			if _, ok := refs.manufacturers[r.ManufacturerID.Value]; ok {
				continue
			}
			m, err := lookup(ctx, uc.refs.Manufacturers.GetByID, entityManufacturer, r.ManufacturerID.Value)
			if err != nil {
				return refs, err
			}
			refs.manufacturers[m.ID] = m
		}
	}
	drows := map[string][]dto.PartDistributorRecord{
		"distributorChanges.inserts": in.DistributorChanges.Inserts,
		"distributorChanges.updates": in.DistributorChanges.Updates,
	}
	for grid, records := range drows {
		for i, r := range records {
			if !r.DistributorID.Valid {
				missing[fmt.Sprintf("%s[%d].distributor_id", grid, i)] = "This field is required"
				continue
			}
			if _, ok := refs.distributors[r.DistributorID.Value]; ok {
				continue
			}
			d, err := lookup(ctx, uc.refs.Distributors.GetByID, entityDistributor, r.DistributorID.Value)
			if err != nil {
				return refs, err
			}
			refs.distributors[d.ID] = d
		}
	}
	if len(missing) > 0 {
		return refs, domain.NewValidation(missing)
	}
	return refs, nil
}

// lookup obtiene una entidad por id y traduce la ausencia en NotFoundException.
func lookup[T any](ctx context.Context, get func(context.Context, int64) (*T, error), name string, id int64) (*T, error) {
	v, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.NewNotFound(name, id)
	}
	return v, nil
}

func applyManufacturers(ctx context.Context, repo repository.PartManufacturerRepository, partID int64, changes part.ChangeSet[dto.PartManufacturerRecord], refs resolvedRefs) error {
	if changes.Empty() {
		return nil
	}
	current, err := repo.ListByPart(ctx, partID)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(current))
	for _, c := range current {
		ids = append(ids, c.ID)
	}
	plan, err := part.Reconcile(ids, changes)
	if err != nil {
		return err
	}
	for _, id := range plan.Removals {
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
	}
	for _, r := range plan.Updates {
		pm := &entity.PartManufacturer{ID: r.RecordID(), PartID: partID, Manufacturer: refs.manufacturers[r.ManufacturerID.Value], PartNumber: r.PartNumber}
		if err := repo.Update(ctx, pm); err != nil {
			return err
		}
	}
	for _, r := range plan.Inserts {
		pm := &entity.PartManufacturer{PartID: partID, Manufacturer: refs.manufacturers[r.ManufacturerID.Value], PartNumber: r.PartNumber}
		if err := repo.Create(ctx, pm); err != nil {
			return err
		}
	}
	return nil
}

func applyDistributors(ctx context.Context, repo repository.PartDistributorRepository, partID int64, changes part.ChangeSet[dto.PartDistributorRecord], refs resolvedRefs) error {
	if changes.Empty() {
		return nil
	}
	current, err := repo.ListByPart(ctx, partID)
	if err != nil {
		return err
	}
	byID := make(map[int64]*entity.PartDistributor, len(current))
	ids := make([]int64, 0, len(current))
	for _, c := range current {
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}
	plan, err := part.Reconcile(ids, changes)
	if err != nil {
		return err
	}

	build := func(r dto.PartDistributorRecord, base *entity.PartDistributor) (*entity.PartDistributor, error) {
		pd := entity.NewPartDistributor()
		if base != nil {
			if err := pd.SetPackagingUnit(base.PackagingUnit()); err != nil {
				return nil, err
			}
		}
		pd.ID = r.RecordID()
		pd.PartID = partID
		pd.Distributor = refs.distributors[r.DistributorID.Value]
		pd.OrderNumber = r.OrderNumber
		pd.Price = r.Price
		if r.PackagingUnit != nil {
			if err := pd.SetPackagingUnit(r.PackagingUnit.Int64()); err != nil {
				return nil, err
			}
		}
		return pd, nil
	}

	for _, id := range plan.Removals {
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
	}
	for _, r := range plan.Updates {
		pd, err := build(r, byID[r.RecordID()])
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, pd); err != nil {
			return err
		}
	}
	for _, r := range plan.Inserts {
		pd, err := build(r, nil)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, pd); err != nil {
			return err
		}
	}
	return nil
}

func applyParameters(ctx context.Context, repo repository.PartParameterRepository, partID int64, changes part.ChangeSet[dto.PartParameterRecord]) error {
	if changes.Empty() {
		return nil
	}
	current, err := repo.ListByPart(ctx, partID)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(current))
	for _, c := range current {
		ids = append(ids, c.ID)
	}
	plan, err := part.Reconcile(ids, changes)
	if err != nil {
		return err
	}
	toEntity := func(r dto.PartParameterRecord) *entity.PartParameter {
		return &entity.PartParameter{
			ID:          r.RecordID(),
			PartID:      partID,
			Name:        r.Name,
			Description: r.Description,
			Value:       r.Value,
			Unit:        r.Unit,
		}
	}
	for _, id := range plan.Removals {
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
	}
	for _, r := range plan.Updates {
		if err := repo.Update(ctx, toEntity(r)); err != nil {
			return err
		}
	}
	for _, r := range plan.Inserts {
		if err := repo.Create(ctx, toEntity(r)); err != nil {
			return err
		}
	}
	return nil
}

// loadPart hidrata la pieza con sus tres colecciones hijas. Devuelve nil, nil si no existe.
func loadPart(
	ctx context.Context,
	partRepo repository.PartRepository,
	manufacturerRepo repository.PartManufacturerRepository,
	distributorRepo repository.PartDistributorRepository,
	parameterRepo repository.PartParameterRepository,
	id int64,
) (*entity.Part, error) {
	p, err := partRepo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if p.Manufacturers, err = manufacturerRepo.ListByPart(ctx, id); err != nil {
		return nil, err
	}
	if p.Distributors, err = distributorRepo.ListByPart(ctx, id); err != nil {
		return nil, err
	}
	if p.Parameters, err = parameterRepo.ListByPart(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// Get obtiene una pieza con su nivel de stock vivo (recalculado desde los movimientos).
func (uc *PartUseCase) Get(ctx context.Context, tr domain.Translator, id int64) (*entity.PartSnapshot, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	s := p.Serialize(tr)
	return &s, nil
}

func (uc *PartUseCase) get(ctx context.Context, id int64) (*entity.Part, error) {
	p, err := loadPart(ctx, uc.partRepo, uc.manufacturerRepo, uc.distributorRepo, uc.parameterRepo, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(entityPart, id)
	}
	if err := p.UpdateStockLevel(ctx, uc.stockRepo); err != nil {
		return nil, err
	}
	return p, nil
}

// List lista piezas con paginación, filtro por categoría y búsqueda por nombre.
// Las colecciones hijas no se cargan en el listado.
func (uc *PartUseCase) List(ctx context.Context, tr domain.Translator, in dto.PartListRequest) (*dto.PartListResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.partRepo.List(ctx, repository.PartFilter{
		CategoryID: in.Category.Ptr(),
		Query:      in.Query,
		Limit:      int(in.Limit),
		Offset:     int(in.Offset),
	})
	if err != nil {
		return nil, err
	}
	items := make([]entity.PartSnapshot, 0, len(list))
	for _, p := range list {
		items = append(items, p.Serialize(tr))
	}
	return &dto.PartListResponse{Data: items, TotalCount: total}, nil
}

// Delete elimina la pieza; fabricantes, distribuidores, parámetros y movimientos caen en cascada.
func (uc *PartUseCase) Delete(ctx context.Context, id int64) error {
	p, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewNotFound(entityPart, id)
	}
	return uc.partRepo.Delete(ctx, id)
}

// UpdateStockLevel recalcula y persiste el stock y el precio promedio cacheados de la pieza.
func (uc *PartUseCase) UpdateStockLevel(ctx context.Context, tr domain.Translator, id int64) (*entity.PartSnapshot, error) {
	var p *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		manufacturerRepo repository.PartManufacturerRepository,
		distributorRepo repository.PartDistributorRepository,
		parameterRepo repository.PartParameterRepository,
		stockRepo repository.StockEntryRepository,
	) error {
		var err error
		p, err = loadPart(ctx, partRepo, manufacturerRepo, distributorRepo, parameterRepo, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound(entityPart, id)
		}
		return refreshAggregates(ctx, partRepo, stockRepo, p)
	})
	if err != nil {
		return nil, err
	}
	s := p.Serialize(tr)
	return &s, nil
}

// refreshAggregates recalcula stock y precio promedio desde los movimientos y los persiste.
func refreshAggregates(ctx context.Context, partRepo repository.PartRepository, stockRepo repository.StockEntryRepository, p *entity.Part) error {
	if err := p.UpdateStockLevel(ctx, stockRepo); err != nil {
		return err
	}
	entries, err := stockRepo.ListByPart(ctx, p.ID, 0, 0)
	if err != nil {
		return err
	}
	p.SetAveragePrice(inventory.AveragePrice(entries))
	return partRepo.UpdateCachedAggregates(ctx, p.ID, p.CachedStockLevel, p.AveragePrice)
}

// Sheet genera la hoja de datos PDF de la pieza. Devuelve el PDF y un nombre de archivo.
func (uc *PartUseCase) Sheet(ctx context.Context, tr domain.Translator, id int64) ([]byte, string, error) {
	if uc.sheets == nil {
		return nil, "", fmt.Errorf("hoja PDF: %w", domain.ErrInvalidInput)
	}
	s, err := uc.Get(ctx, tr, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.sheets.GeneratePartSheet(ctx, *s, tr)
	if err != nil {
		return nil, "", fmt.Errorf("hoja PDF: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("part_%d.pdf", id), nil
}
