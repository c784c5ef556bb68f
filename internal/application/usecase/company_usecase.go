package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

const (
	entityManufacturer = "Manufacturer"
	entityDistributor  = "Distributor"
)

// ManufacturerUseCase casos de uso CRUD para fabricantes.
type ManufacturerUseCase struct {
	repo repository.ManufacturerRepository
}

// NewManufacturerUseCase construye el caso de uso.
func NewManufacturerUseCase(repo repository.ManufacturerRepository) *ManufacturerUseCase {
	return &ManufacturerUseCase{repo: repo}
}

// Create crea un fabricante. El nombre es obligatorio.
func (uc *ManufacturerUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := validateCompany(in, true); err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Manufacturer{Name: *in.Name, CreatedAt: now, UpdatedAt: now}
	applyContact(&m.Contact, in.ContactRequest)
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, writeError(err, entityManufacturer)
	}
	return toCompanyResponse(m.ID, m.Name, m.Contact, m.CreatedAt, m.UpdatedAt), nil
}

// GetByID obtiene un fabricante por ID.
func (uc *ManufacturerUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFound(entityManufacturer, id)
	}
	return toCompanyResponse(m.ID, m.Name, m.Contact, m.CreatedAt, m.UpdatedAt), nil
}

// Update actualiza los campos presentes en la petición.
func (uc *ManufacturerUseCase) Update(ctx context.Context, id int64, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := validateCompany(in, false); err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFound(entityManufacturer, id)
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	applyContact(&m.Contact, in.ContactRequest)
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, writeError(err, entityManufacturer)
	}
	return toCompanyResponse(m.ID, m.Name, m.Contact, m.CreatedAt, m.UpdatedAt), nil
}

// List lista fabricantes con paginación.
func (uc *ManufacturerUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.ListResponse[dto.CompanyResponse], error) {
	limit, offset, err := pageOf(in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toCompanyResponse(m.ID, m.Name, m.Contact, m.CreatedAt, m.UpdatedAt))
	}
	return &dto.ListResponse[dto.CompanyResponse]{Data: items, TotalCount: total}, nil
}

// Delete elimina un fabricante sin piezas vinculadas.
func (uc *ManufacturerUseCase) Delete(ctx context.Context, id int64) error {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.NewNotFound(entityManufacturer, id)
	}
	return writeError(uc.repo.Delete(ctx, id), entityManufacturer)
}

// DistributorUseCase casos de uso CRUD para distribuidores.
type DistributorUseCase struct {
	repo repository.DistributorRepository
}

// NewDistributorUseCase construye el caso de uso.
func NewDistributorUseCase(repo repository.DistributorRepository) *DistributorUseCase {
	return &DistributorUseCase{repo: repo}
}

// Create crea un distribuidor. El nombre es obligatorio.
func (uc *DistributorUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := validateCompany(in, true); err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.Distributor{Name: *in.Name, CreatedAt: now, UpdatedAt: now}
	applyContact(&d.Contact, in.ContactRequest)
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, writeError(err, entityDistributor)
	}
	return toCompanyResponse(d.ID, d.Name, d.Contact, d.CreatedAt, d.UpdatedAt), nil
}

// GetByID obtiene un distribuidor por ID.
func (uc *DistributorUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NewNotFound(entityDistributor, id)
	}
	return toCompanyResponse(d.ID, d.Name, d.Contact, d.CreatedAt, d.UpdatedAt), nil
}

// Update actualiza los campos presentes en la petición.
func (uc *DistributorUseCase) Update(ctx context.Context, id int64, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := validateCompany(in, false); err != nil {
		return nil, err
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NewNotFound(entityDistributor, id)
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	applyContact(&d.Contact, in.ContactRequest)
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, writeError(err, entityDistributor)
	}
	return toCompanyResponse(d.ID, d.Name, d.Contact, d.CreatedAt, d.UpdatedAt), nil
}

// List lista distribuidores con paginación.
func (uc *DistributorUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.ListResponse[dto.CompanyResponse], error) {
	limit, offset, err := pageOf(in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toCompanyResponse(d.ID, d.Name, d.Contact, d.CreatedAt, d.UpdatedAt))
	}
	return &dto.ListResponse[dto.CompanyResponse]{Data: items, TotalCount: total}, nil
}

// Delete elimina un distribuidor sin piezas vinculadas.
func (uc *DistributorUseCase) Delete(ctx context.Context, id int64) error {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.NewNotFound(entityDistributor, id)
	}
	return writeError(uc.repo.Delete(ctx, id), entityDistributor)
}

func validateCompany(in dto.CompanyRequest, create bool) error {
	if create && in.Name == nil {
		return domain.NewValidation(map[string]string{"name": "This field is required"})
	}
	return dto.Validate(&in)
}

// applyContact copia sólo los campos de contacto presentes.
func applyContact(c *entity.Contact, in dto.ContactRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.Address, in.Address)
	set(&c.URL, in.URL)
	set(&c.Email, in.Email)
	set(&c.Phone, in.Phone)
	set(&c.Fax, in.Fax)
	set(&c.Comment, in.Comment)
}

func toCompanyResponse(id int64, name string, c entity.Contact, createdAt, updatedAt time.Time) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        id,
		Name:      name,
		Address:   c.Address,
		URL:       c.URL,
		Email:     c.Email,
		Phone:     c.Phone,
		Fax:       c.Fax,
		Comment:   c.Comment,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
