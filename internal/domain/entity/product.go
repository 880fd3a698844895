package entity

// Product representa un producto. Pertenece a exactamente un inventario y
// puede estar asociado a varias categorías (conjunto keyed por id).
type Product struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Quantity        int        `json:"quantity"`
	SerialNumber    string     `json:"serialNumber"`
	Batch           *int64     `json:"batch,omitempty"` // nil = sin lote
	Active          bool       `json:"active"`
	Categories      []Category `json:"categories"`
	Inventory       *Inventory `json:"inventory"`
	CreatedByUserID int64      `json:"createdByUserId"`
	CreateDate      string     `json:"createDate,omitempty"`
}

// EntityID implementa Identifiable.
func (p Product) EntityID() int64 { return p.ID }
