package entity

import "time"

// Footprint representa el encapsulado físico de una pieza (ej. SOT-23, 0805, DIP-8).
type Footprint struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
