package entity

import (
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/shopspring/decimal"
)

// PartDistributor vincula una pieza con un distribuidor: número de pedido, unidad de empaque y precio.
type PartDistributor struct {
	ID            int64
	PartID        int64
	Distributor   *Distributor
	OrderNumber   string
	packagingUnit int64
	Price         decimal.NullDecimal
}

// NewPartDistributor crea el vínculo con unidad de empaque 1.
func NewPartDistributor() *PartDistributor {
	return &PartDistributor{packagingUnit: 1}
}

func (d *PartDistributor) PackagingUnit() int64 { return d.packagingUnit }

// SetPackagingUnit exige al menos 1 unidad por empaque.
func (d *PartDistributor) SetPackagingUnit(units int64) error {
	if units < 1 {
		return domain.NewOutOfRange(
			"Packaging unit is out of range",
			"The packaging unit must be 1 or higher",
		)
	}
	d.packagingUnit = units
	return nil
}

// PartDistributorSnapshot forma serializada del vínculo.
type PartDistributorSnapshot struct {
	ID              int64            `json:"id"`
	DistributorID   *int64           `json:"distributor_id"`
	DistributorName *string          `json:"distributor_name"`
	OrderNumber     string           `json:"orderNumber"`
	PackagingUnit   int64            `json:"packagingUnit"`
	Price           *decimal.Decimal `json:"price"`
}

func (d *PartDistributor) Serialize() PartDistributorSnapshot {
	s := PartDistributorSnapshot{
		ID:            d.ID,
		OrderNumber:   d.OrderNumber,
		PackagingUnit: d.packagingUnit,
	}
	if d.Distributor != nil {
		s.DistributorID = ptr(d.Distributor.ID)
		s.DistributorName = ptr(d.Distributor.Name)
	}
	if d.Price.Valid {
		s.Price = ptr(d.Price.Decimal)
	}
	return s
}
