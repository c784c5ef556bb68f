package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

const entityFootprint = "Footprint"

// FootprintUseCase casos de uso CRUD para footprints (encapsulados).
type FootprintUseCase struct {
	repo repository.FootprintRepository
}

// NewFootprintUseCase construye el caso de uso.
func NewFootprintUseCase(repo repository.FootprintRepository) *FootprintUseCase {
	return &FootprintUseCase{repo: repo}
}

// Create crea un footprint.
func (uc *FootprintUseCase) Create(ctx context.Context, in dto.CreateFootprintRequest) (*dto.FootprintResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	f := &entity.Footprint{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		return nil, writeError(err, entityFootprint)
	}
	return toFootprintResponse(f), nil
}

// GetByID obtiene un footprint por ID.
func (uc *FootprintUseCase) GetByID(ctx context.Context, id int64) (*dto.FootprintResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.NewNotFound(entityFootprint, id)
	}
	return toFootprintResponse(f), nil
}

// Update actualiza nombre y/o descripción.
func (uc *FootprintUseCase) Update(ctx context.Context, id int64, in dto.UpdateFootprintRequest) (*dto.FootprintResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.NewNotFound(entityFootprint, id)
	}
	if in.Name != nil {
		f.Name = *in.Name
	}
	if in.Description != nil {
		f.Description = *in.Description
	}
	f.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, writeError(err, entityFootprint)
	}
	return toFootprintResponse(f), nil
}

// List lista footprints con paginación.
func (uc *FootprintUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.ListResponse[dto.FootprintResponse], error) {
	limit, offset, err := pageOf(in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FootprintResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFootprintResponse(f))
	}
	return &dto.ListResponse[dto.FootprintResponse]{Data: items, TotalCount: total}, nil
}

// Delete elimina un footprint que ninguna pieza use.
func (uc *FootprintUseCase) Delete(ctx context.Context, id int64) error {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.NewNotFound(entityFootprint, id)
	}
	return writeError(uc.repo.Delete(ctx, id), entityFootprint)
}

func toFootprintResponse(f *entity.Footprint) *dto.FootprintResponse {
	return &dto.FootprintResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
