package entity

import (
	"context"
	"time"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/shopspring/decimal"
)

// StockLevelQuerier resuelve el agregado de stock de una pieza contra la fuente de verdad
// (las filas de StockEntry). Lo implementa el repositorio de stock.
type StockLevelQuerier interface {
	SumQuantity(ctx context.Context, partID int64) (int64, error)
}

// Part es la raíz del agregado: una pieza del inventario con sus referencias y colecciones hijas.
// CachedStockLevel y AveragePrice son valores cacheados; la fuente de verdad son los StockEntry.
type Part struct {
	ID               int64
	Name             string
	Comment          string
	minStockLevel    int64
	CachedStockLevel int64
	AveragePrice     decimal.NullDecimal // inválido = sin datos de precio

	Category        *Category
	Footprint       *Footprint
	PartUnit        *PartUnit
	StorageLocation *StorageLocation

	Manufacturers []*PartManufacturer
	Distributors  []*PartDistributor
	Parameters    []*PartParameter

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPart crea una pieza vacía con las colecciones hijas inicializadas.
func NewPart() *Part {
	return &Part{
		Manufacturers: []*PartManufacturer{},
		Distributors:  []*PartDistributor{},
		Parameters:    []*PartParameter{},
	}
}

// MinStockLevel devuelve el umbral de stock mínimo.
func (p *Part) MinStockLevel() int64 { return p.minStockLevel }

// SetMinStockLevel fija el stock mínimo; valores negativos se rechazan con OutOfRangeException.
func (p *Part) SetMinStockLevel(value int64) error {
	if value < 0 {
		return domain.NewOutOfRange(
			"Minimum Stock Level is out of range",
			"The minimum stock level must be 0 or higher",
		)
	}
	p.minStockLevel = value
	return nil
}

func (p *Part) SetName(name string)       { p.Name = name }
func (p *Part) SetComment(comment string) { p.Comment = comment }

// SetCategory reemplaza la categoría; nil la limpia.
func (p *Part) SetCategory(c *Category) { p.Category = c }

// SetFootprint reemplaza el footprint; nil la limpia.
func (p *Part) SetFootprint(f *Footprint) { p.Footprint = f }

// SetStorageLocation reemplaza el lugar de almacenamiento. El formulario lo exige; la entidad no.
func (p *Part) SetStorageLocation(s *StorageLocation) { p.StorageLocation = s }

// SetPartUnit reemplaza la unidad de medida.
func (p *Part) SetPartUnit(u *PartUnit) { p.PartUnit = u }

// SetAveragePrice fija el precio promedio cacheado (inválido = sin precio).
func (p *Part) SetAveragePrice(price decimal.NullDecimal) { p.AveragePrice = price }

// StockLevel consulta la suma de cantidades de todos los StockEntry de la pieza.
// Una pieza sin movimientos tiene stock 0.
func (p *Part) StockLevel(ctx context.Context, q StockLevelQuerier) (int64, error) {
	if p.ID == 0 {
		return 0, nil
	}
	return q.SumQuantity(ctx, p.ID)
}

// UpdateStockLevel recalcula el valor cacheado desde StockLevel.
func (p *Part) UpdateStockLevel(ctx context.Context, q StockLevelQuerier) error {
	level, err := p.StockLevel(ctx, q)
	if err != nil {
		return err
	}
	p.CachedStockLevel = level
	return nil
}

// BelowMinimum indica si el stock cacheado está por debajo del mínimo.
func (p *Part) BelowMinimum() bool {
	return p.CachedStockLevel < p.minStockLevel
}

// PartSnapshot es la forma serializada de una pieza (superficie de exportación hacia el cable).
type PartSnapshot struct {
	ID                  int64                      `json:"id"`
	Name                string                     `json:"name"`
	Comment             string                     `json:"comment"`
	StockLevel          int64                      `json:"stockLevel"`
	MinStockLevel       int64                      `json:"minStockLevel"`
	AveragePrice        *decimal.Decimal           `json:"averagePrice"`
	FootprintID         *int64                     `json:"footprint_id"`
	FootprintName       *string                    `json:"footprintName"`
	StorageLocationID   *int64                     `json:"storageLocation_id"`
	StorageLocationName *string                    `json:"storageLocationName"`
	CategoryID          *int64                     `json:"category_id"`
	CategoryName        *string                    `json:"categoryName"`
	PartUnitID          *int64                     `json:"partUnit_id"`
	PartUnitName        string                     `json:"partUnit_name"`
	PartUnitShortName   string                     `json:"partUnit_shortName"`
	Manufacturers       []PartManufacturerSnapshot `json:"manufacturers"`
	Distributors        []PartDistributorSnapshot  `json:"distributors"`
	Parameters          []PartParameterSnapshot    `json:"parameters"`
}

// Serialize produce un snapshot del estado actual. No consulta almacenamiento:
// stockLevel es el valor cacheado (refrescar antes con UpdateStockLevel si se requiere el vivo).
func (p *Part) Serialize(tr domain.Translator) PartSnapshot {
	s := PartSnapshot{
		ID:                p.ID,
		Name:              p.Name,
		Comment:           p.Comment,
		StockLevel:        p.CachedStockLevel,
		MinStockLevel:     p.minStockLevel,
		PartUnitName:      tr.T("Pieces"),
		PartUnitShortName: "",
		Manufacturers:     make([]PartManufacturerSnapshot, 0, len(p.Manufacturers)),
		Distributors:      make([]PartDistributorSnapshot, 0, len(p.Distributors)),
		Parameters:        make([]PartParameterSnapshot, 0, len(p.Parameters)),
	}
	if p.AveragePrice.Valid {
		price := p.AveragePrice.Decimal
		s.AveragePrice = &price
	}
	if p.Footprint != nil {
		s.FootprintID = ptr(p.Footprint.ID)
		s.FootprintName = ptr(p.Footprint.Name)
	}
	if p.StorageLocation != nil {
		s.StorageLocationID = ptr(p.StorageLocation.ID)
		s.StorageLocationName = ptr(p.StorageLocation.Name)
	}
	if p.Category != nil {
		s.CategoryID = ptr(p.Category.ID)
		s.CategoryName = ptr(p.Category.Name)
	}
	if p.PartUnit != nil {
		s.PartUnitID = ptr(p.PartUnit.ID)
		s.PartUnitName = p.PartUnit.Name
		s.PartUnitShortName = p.PartUnit.ShortName
	}
	for _, m := range p.Manufacturers {
		s.Manufacturers = append(s.Manufacturers, m.Serialize())
	}
	for _, d := range p.Distributors {
		s.Distributors = append(s.Distributors, d.Serialize())
	}
	for _, pp := range p.Parameters {
		s.Parameters = append(s.Parameters, pp.Serialize())
	}
	return s
}

func ptr[T any](v T) *T { return &v }
