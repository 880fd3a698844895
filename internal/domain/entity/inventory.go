package entity

// Inventory representa un inventario/almacén físico.
// CreateDate viaja como fecha plana (YYYY-MM-DD), igual que en el backend.
type Inventory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Active      bool   `json:"active"`
	Quantity    int    `json:"quantity"`
	CreateDate  string `json:"createDate"`
}

// EntityID implementa Identifiable.
func (i Inventory) EntityID() int64 { return i.ID }
