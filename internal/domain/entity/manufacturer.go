package entity

import "time"

// Manufacturer representa un fabricante de componentes.
type Manufacturer struct {
	ID   int64
	Name string
	Contact
	CreatedAt time.Time
	UpdatedAt time.Time
}
