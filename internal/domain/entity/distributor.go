package entity

import "time"

// Distributor representa un proveedor/distribuidor donde se compran piezas.
type Distributor struct {
	ID   int64
	Name string
	Contact
	CreatedAt time.Time
	UpdatedAt time.Time
}
