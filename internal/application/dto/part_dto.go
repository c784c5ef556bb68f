package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/part"
)

// SavePartRequest entrada del editor de piezas (addOrUpdatePart / create / update).
// Part = 0 crea una pieza nueva; cualquier otro valor actualiza la existente.
type SavePartRequest struct {
	Part              FlexInt    `json:"part"`
	Name              string     `json:"name" validate:"required,max=255"`
	Comment           *string    `json:"comment"`
	MinStockLevel     *FlexInt   `json:"minStockLevel"`
	PartUnitID        OptionalID `json:"partUnit_id"`
	CategoryID        OptionalID `json:"category_id"`
	StorageLocationID OptionalID `json:"storageLocation_id"`
	FootprintID       OptionalID `json:"footprint_id"`

	ManufacturerChanges part.ChangeSet[PartManufacturerRecord] `json:"manufacturerChanges"`
	DistributorChanges  part.ChangeSet[PartDistributorRecord]  `json:"distributorChanges"`
	ParameterChanges    part.ChangeSet[PartParameterRecord]    `json:"parameterChanges"`
}

// PartManufacturerRecord fila de la grilla de fabricantes.
type PartManufacturerRecord struct {
	ID             FlexInt    `json:"id"`
	ManufacturerID OptionalID `json:"manufacturer_id"`
	PartNumber     string     `json:"partNumber" validate:"max=255"`
}

func (r PartManufacturerRecord) RecordID() int64 { return int64(r.ID) }

// PartDistributorRecord fila de la grilla de distribuidores.
type PartDistributorRecord struct {
	ID            FlexInt             `json:"id"`
	DistributorID OptionalID          `json:"distributor_id"`
	OrderNumber   string              `json:"orderNumber" validate:"max=255"`
	PackagingUnit *FlexInt            `json:"packagingUnit"`
	Price         decimal.NullDecimal `json:"price"`
}

func (r PartDistributorRecord) RecordID() int64 { return int64(r.ID) }

// PartParameterRecord fila de la grilla de parámetros.
type PartParameterRecord struct {
	ID          FlexInt         `json:"id"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Unit        string          `json:"unit" validate:"max=32"`
}

func (r PartParameterRecord) RecordID() int64 { return int64(r.ID) }

// PartListRequest filtros del listado de piezas.
type PartListRequest struct {
	PageRequest
	Category OptionalID `json:"category"`
	Query    string     `json:"query"`
}

// PartListResponse lista paginada de piezas serializadas.
type PartListResponse = ListResponse[entity.PartSnapshot]

// StockChangeRequest entrada de addStock / removeStock.
type StockChangeRequest struct {
	Part    FlexInt             `json:"part"`
	Stock   FlexInt             `json:"stock"`
	Price   decimal.NullDecimal `json:"price"`
	Comment string              `json:"comment" validate:"max=1000"`
}

// StockHistoryRequest entrada de getStockHistory.
type StockHistoryRequest struct {
	PageRequest
	Part FlexInt `json:"part"`
}

// StockEntryResponse salida de un movimiento de stock.
type StockEntryResponse struct {
	ID         int64            `json:"id"`
	PartID     int64            `json:"part_id"`
	StockLevel int64            `json:"stockLevel"`
	Price      *decimal.Decimal `json:"price"`
	DateTime   time.Time        `json:"dateTime"`
	Comment    string           `json:"comment"`
}

// StockChangeResponse movimiento creado y estado resultante de la pieza.
type StockChangeResponse struct {
	Entry StockEntryResponse  `json:"stockEntry"`
	Part  entity.PartSnapshot `json:"part"`
}

// LowStockItem pieza bajo el stock mínimo con la sugerencia de reposición.
type LowStockItem struct {
	PartID              int64            `json:"part_id"`
	Name                string           `json:"name"`
	StockLevel          int64            `json:"stockLevel"`
	MinStockLevel       int64            `json:"minStockLevel"`
	Shortfall           int64            `json:"shortfall"`
	AveragePrice        *decimal.Decimal `json:"averagePrice"`
	EstimatedCost       *decimal.Decimal `json:"estimatedCost"`
	CategoryName        *string          `json:"categoryName"`
	StorageLocationName *string          `json:"storageLocationName"`
}
