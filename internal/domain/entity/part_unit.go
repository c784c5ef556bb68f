package entity

import "time"

// PartUnit unidad de medida de una pieza (ej. "Pieces"/"pcs", "Meter"/"m").
// A lo sumo una unidad es la predeterminada.
type PartUnit struct {
	ID        int64
	Name      string
	ShortName string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
