package entity

import "github.com/shopspring/decimal"

// PartParameter es un parámetro técnico de una pieza (ej. resistencia = 10 kΩ).
type PartParameter struct {
	ID          int64
	PartID      int64
	Name        string
	Description string
	Value       decimal.Decimal
	Unit        string
}

type PartParameterSnapshot struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Unit        string          `json:"unit"`
}

func (pp *PartParameter) Serialize() PartParameterSnapshot {
	return PartParameterSnapshot{
		ID:          pp.ID,
		Name:        pp.Name,
		Description: pp.Description,
		Value:       pp.Value,
		Unit:        pp.Unit,
	}
}
