package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

const entityPartUnit = "Part Unit"

// PartUnitUseCase casos de uso CRUD para unidades de medida. A lo sumo una es la predeterminada.
type PartUnitUseCase struct {
	repo repository.PartUnitRepository
}

// NewPartUnitUseCase construye el caso de uso.
func NewPartUnitUseCase(repo repository.PartUnitRepository) *PartUnitUseCase {
	return &PartUnitUseCase{repo: repo}
}

// Create crea una unidad. Si se marca como predeterminada, las demás dejan de serlo.
func (uc *PartUnitUseCase) Create(ctx context.Context, in dto.CreatePartUnitRequest) (*dto.PartUnitResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.PartUnit{
		Name:      in.Name,
		ShortName: in.ShortName,
		IsDefault: in.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.save(ctx, u, uc.repo.Create); err != nil {
		return nil, err
	}
	return toPartUnitResponse(u), nil
}

// GetByID obtiene una unidad por ID.
func (uc *PartUnitUseCase) GetByID(ctx context.Context, id int64) (*dto.PartUnitResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFound(entityPartUnit, id)
	}
	return toPartUnitResponse(u), nil
}

// Update actualiza la unidad; marcarla como predeterminada desmarca las demás.
func (uc *PartUnitUseCase) Update(ctx context.Context, id int64, in dto.UpdatePartUnitRequest) (*dto.PartUnitResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFound(entityPartUnit, id)
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.ShortName != nil {
		u.ShortName = *in.ShortName
	}
	if in.IsDefault != nil {
		u.IsDefault = *in.IsDefault
	}
	u.UpdatedAt = time.Now()
	if err := uc.save(ctx, u, uc.repo.Update); err != nil {
		return nil, err
	}
	return toPartUnitResponse(u), nil
}

// save escribe con write o, si la unidad es predeterminada, con SaveAsDefault (atómico).
func (uc *PartUnitUseCase) save(ctx context.Context, u *entity.PartUnit, write func(context.Context, *entity.PartUnit) error) error {
	if u.IsDefault {
		write = uc.repo.SaveAsDefault
	}
	if err := write(ctx, u); err != nil {
		return writeError(err, entityPartUnit)
	}
	return nil
}

// List lista unidades con paginación.
func (uc *PartUnitUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.ListResponse[dto.PartUnitResponse], error) {
	limit, offset, err := pageOf(in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartUnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toPartUnitResponse(u))
	}
	return &dto.ListResponse[dto.PartUnitResponse]{Data: items, TotalCount: total}, nil
}

// Delete elimina una unidad que ninguna pieza use.
func (uc *PartUnitUseCase) Delete(ctx context.Context, id int64) error {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFound(entityPartUnit, id)
	}
	return writeError(uc.repo.Delete(ctx, id), entityPartUnit)
}

func toPartUnitResponse(u *entity.PartUnit) *dto.PartUnitResponse {
	return &dto.PartUnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		ShortName: u.ShortName,
		IsDefault: u.IsDefault,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
