package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

const entityStorageLocation = "Storage Location"

// StorageLocationUseCase casos de uso CRUD para lugares de almacenamiento.
type StorageLocationUseCase struct {
	repo repository.StorageLocationRepository
}

// NewStorageLocationUseCase construye el caso de uso.
func NewStorageLocationUseCase(repo repository.StorageLocationRepository) *StorageLocationUseCase {
	return &StorageLocationUseCase{repo: repo}
}

// Create crea un nuevo lugar de almacenamiento.
func (uc *StorageLocationUseCase) Create(ctx context.Context, in dto.CreateStorageLocationRequest) (*dto.StorageLocationResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	location := &entity.StorageLocation{
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, writeError(err, entityStorageLocation)
	}
	return toStorageLocationResponse(location), nil
}

// GetByID obtiene un lugar de almacenamiento por ID.
func (uc *StorageLocationUseCase) GetByID(ctx context.Context, id int64) (*dto.StorageLocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.NewNotFound(entityStorageLocation, id)
	}
	return toStorageLocationResponse(location), nil
}

// Update renombra un lugar de almacenamiento.
func (uc *StorageLocationUseCase) Update(ctx context.Context, id int64, in dto.UpdateStorageLocationRequest) (*dto.StorageLocationResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.NewNotFound(entityStorageLocation, id)
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, location); err != nil {
		return nil, writeError(err, entityStorageLocation)
	}
	return toStorageLocationResponse(location), nil
}

// List lista lugares de almacenamiento con paginación.
func (uc *StorageLocationUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.ListResponse[dto.StorageLocationResponse], error) {
	limit, offset, err := pageOf(in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageLocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toStorageLocationResponse(l))
	}
	return &dto.ListResponse[dto.StorageLocationResponse]{Data: items, TotalCount: total}, nil
}

// Delete elimina un lugar de almacenamiento. Falla con InUseException si alguna pieza lo usa.
func (uc *StorageLocationUseCase) Delete(ctx context.Context, id int64) error {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.NewNotFound(entityStorageLocation, id)
	}
	return writeError(uc.repo.Delete(ctx, id), entityStorageLocation)
}

func toStorageLocationResponse(l *entity.StorageLocation) *dto.StorageLocationResponse {
	if l == nil {
		return nil
	}
	return &dto.StorageLocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
