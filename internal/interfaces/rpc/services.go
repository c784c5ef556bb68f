package rpc

import (
	"context"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/internal/application/usecase"
	"github.com/jhoicas/partdb-api/internal/domain"
)

// Deps casos de uso expuestos por el endpoint REST.
type Deps struct {
	Parts            *inventory.PartUseCase
	Stock            *inventory.StockUseCase
	LowStock         *inventory.LowStockUseCase
	Categories       *usecase.CategoryUseCase
	Footprints       *usecase.FootprintUseCase
	StorageLocations *usecase.StorageLocationUseCase
	Manufacturers    *usecase.ManufacturerUseCase
	Distributors     *usecase.DistributorUseCase
	PartUnits        *usecase.PartUnitUseCase
}

// Services tabla completa de servicios. Nombres como los usa el editor web.
func Services(d Deps) map[string]Service {
	return map[string]Service{
		"Part":            partService(d.Parts, d.Stock, d.LowStock),
		"Category":        categoryService(d.Categories),
		"Footprint":       crud[dto.CreateFootprintRequest, dto.UpdateFootprintRequest, dto.FootprintResponse]{d.Footprints.Create, d.Footprints.GetByID, d.Footprints.Update, d.Footprints.List, d.Footprints.Delete}.service(),
		"StorageLocation": crud[dto.CreateStorageLocationRequest, dto.UpdateStorageLocationRequest, dto.StorageLocationResponse]{d.StorageLocations.Create, d.StorageLocations.GetByID, d.StorageLocations.Update, d.StorageLocations.List, d.StorageLocations.Delete}.service(),
		"Manufacturer":    crud[dto.CompanyRequest, dto.CompanyRequest, dto.CompanyResponse]{d.Manufacturers.Create, d.Manufacturers.GetByID, d.Manufacturers.Update, d.Manufacturers.List, d.Manufacturers.Delete}.service(),
		"Distributor":     crud[dto.CompanyRequest, dto.CompanyRequest, dto.CompanyResponse]{d.Distributors.Create, d.Distributors.GetByID, d.Distributors.Update, d.Distributors.List, d.Distributors.Delete}.service(),
		"PartUnit":        crud[dto.CreatePartUnitRequest, dto.UpdatePartUnitRequest, dto.PartUnitResponse]{d.PartUnits.Create, d.PartUnits.GetByID, d.PartUnits.Update, d.PartUnits.List, d.PartUnits.Delete}.service(),
	}
}

func requireID(req *Request, keys ...string) (int64, error) {
	id := req.RecordID(keys...)
	if id <= 0 {
		return 0, domain.NewInvalidInput("Record id is required")
	}
	return id, nil
}

// crud servicio get/create/update/destroy sobre un caso de uso de catálogo.
type crud[C, U, R any] struct {
	create  func(context.Context, C) (*R, error)
	get     func(context.Context, int64) (*R, error)
	update  func(context.Context, int64, U) (*R, error)
	list    func(context.Context, dto.PageRequest) (*dto.ListResponse[R], error)
	destroy func(context.Context, int64) error
}

func (c crud[C, U, R]) service() Service {
	return Service{
		// get sin id lista con paginación.
		"get": func(ctx context.Context, req *Request) (any, error) {
			if id := req.RecordID(); id > 0 {
				return c.get(ctx, id)
			}
			var in dto.PageRequest
			if err := req.Decode(&in); err != nil {
				return nil, err
			}
			return c.list(ctx, in)
		},
		"create": func(ctx context.Context, req *Request) (any, error) {
			var in C
			if err := req.Decode(&in); err != nil {
				return nil, err
			}
			return c.create(ctx, in)
		},
		"update": func(ctx context.Context, req *Request) (any, error) {
			id, err := requireID(req)
			if err != nil {
				return nil, err
			}
			var in U
			if err := req.Decode(&in); err != nil {
				return nil, err
			}
			return c.update(ctx, id, in)
		},
		"destroy": func(ctx context.Context, req *Request) (any, error) {
			id, err := requireID(req)
			if err != nil {
				return nil, err
			}
			return nil, c.destroy(ctx, id)
		},
	}
}

func categoryService(uc *usecase.CategoryUseCase) Service {
	svc := crud[dto.CreateCategoryRequest, dto.UpdateCategoryRequest, dto.CategoryResponse]{
		uc.Create, uc.GetByID, uc.Update, uc.List, uc.Delete,
	}.service()
	svc["getCategoryTree"] = func(ctx context.Context, _ *Request) (any, error) {
		return uc.Tree(ctx)
	}
	return svc
}

func partService(parts *inventory.PartUseCase, stock *inventory.StockUseCase, lowStock *inventory.LowStockUseCase) Service {
	save := func(ctx context.Context, req *Request, id int64) (any, error) {
		var in dto.SavePartRequest
		if err := req.Decode(&in); err != nil {
			return nil, err
		}
		if id >= 0 {
			in.Part = dto.FlexInt(id)
		}
		return parts.AddOrUpdatePart(ctx, req.Translator, in)
	}
	destroy := func(ctx context.Context, req *Request) (any, error) {
		id, err := requireID(req, "part")
		if err != nil {
			return nil, err
		}
		return nil, parts.Delete(ctx, id)
	}
	stockChange := func(add bool) Handler {
		return func(ctx context.Context, req *Request) (any, error) {
			var in dto.StockChangeRequest
			if err := req.Decode(&in); err != nil {
				return nil, err
			}
			if in.Part <= 0 {
				in.Part = dto.FlexInt(req.RecordID())
			}
			if add {
				return stock.AddStock(ctx, req.Translator, in)
			}
			return stock.RemoveStock(ctx, req.Translator, in)
		}
	}

	return Service{
		"get": func(ctx context.Context, req *Request) (any, error) {
			if id := req.RecordID("part"); id > 0 {
				return parts.Get(ctx, req.Translator, id)
			}
			var in dto.PartListRequest
			if err := req.Decode(&in); err != nil {
				return nil, err
			}
			return parts.List(ctx, req.Translator, in)
		},
		"create": func(ctx context.Context, req *Request) (any, error) {
			return save(ctx, req, 0)
		},
		"update": func(ctx context.Context, req *Request) (any, error) {
			id, err := requireID(req, "part")
			if err != nil {
				return nil, err
			}
			return save(ctx, req, id)
		},
		// addOrUpdatePart decide por el parámetro "part" (o el id de la ruta).
		"addOrUpdatePart": func(ctx context.Context, req *Request) (any, error) {
			if req.ID > 0 {
				return save(ctx, req, req.ID)
			}
			return save(ctx, req, -1)
		},
		"destroy":     destroy,
		"deletePart":  destroy,
		"addStock":    stockChange(true),
		"removeStock": stockChange(false),
		"getStockHistory": func(ctx context.Context, req *Request) (any, error) {
			var in dto.StockHistoryRequest
			if err := req.Decode(&in); err != nil {
				return nil, err
			}
			if in.Part <= 0 {
				in.Part = dto.FlexInt(req.RecordID())
			}
			return stock.History(ctx, in)
		},
		"getLowStockParts": func(ctx context.Context, req *Request) (any, error) {
			var in dto.PageRequest
			if err := req.Decode(&in); err != nil {
				return nil, err
			}
			return lowStock.List(ctx, in)
		},
		"updateStockLevel": func(ctx context.Context, req *Request) (any, error) {
			id, err := requireID(req, "part")
			if err != nil {
				return nil, err
			}
			return parts.UpdateStockLevel(ctx, req.Translator, id)
		},
	}
}
