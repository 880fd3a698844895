package entity

// Category representa una categoría de productos.
type Category struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Active           bool   `json:"active"`
	QuantityProducts int    `json:"quantityProducts"`
}

// EntityID implementa Identifiable.
func (c Category) EntityID() int64 { return c.ID }
