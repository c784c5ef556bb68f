package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. Parent vacío = raíz.
type CreateCategoryRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description"`
	Parent      OptionalID `json:"parent"`
}

// UpdateCategoryRequest entrada para actualizar (o mover) una categoría.
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Parent      OptionalID `json:"parent"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Parent      *int64    `json:"parent"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryNode nodo del árbol de categorías.
type CategoryNode struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Children    []CategoryNode `json:"children"`
}

// CreateFootprintRequest entrada para crear un footprint.
type CreateFootprintRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

// UpdateFootprintRequest entrada para actualizar un footprint.
type UpdateFootprintRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// FootprintResponse salida de un footprint.
type FootprintResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateStorageLocationRequest entrada para crear un lugar de almacenamiento.
type CreateStorageLocationRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateStorageLocationRequest entrada para renombrar un lugar de almacenamiento.
type UpdateStorageLocationRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// StorageLocationResponse salida de un lugar de almacenamiento.
type StorageLocationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactRequest datos de contacto compartidos por fabricantes y distribuidores.
type ContactRequest struct {
	Address *string `json:"address"`
	URL     *string `json:"url" validate:"omitempty,url"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=64"`
	Fax     *string `json:"fax" validate:"omitempty,max=64"`
	Comment *string `json:"comment"`
}

// CompanyRequest entrada de fabricante o distribuidor. Name es obligatorio al crear.
type CompanyRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
	ContactRequest
}

// CompanyResponse salida de fabricante o distribuidor.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	URL       string    `json:"url"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Fax       string    `json:"fax"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePartUnitRequest entrada para crear una unidad de medida.
type CreatePartUnitRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	ShortName string `json:"shortName" validate:"max=32"`
	IsDefault bool   `json:"default"`
}

// UpdatePartUnitRequest entrada para actualizar una unidad de medida.
type UpdatePartUnitRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	ShortName *string `json:"shortName" validate:"omitempty,max=32"`
	IsDefault *bool   `json:"default"`
}

// PartUnitResponse salida de una unidad de medida.
type PartUnitResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"shortName"`
	IsDefault bool      `json:"default"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
