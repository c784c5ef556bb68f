package entity

import "time"

// StorageLocation representa un lugar físico de almacenamiento (cajón, gaveta, estante).
type StorageLocation struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
