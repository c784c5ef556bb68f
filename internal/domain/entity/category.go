package entity

import "time"

// Category representa una categoría de piezas (árbol; ParentID nil si es raíz).
type Category struct {
	ID          int64
	ParentID    *int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool { return c.ParentID == nil }
