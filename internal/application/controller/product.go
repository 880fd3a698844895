package controller

import (
	"context"

	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// ProductList descriptor de listado para productos. La búsqueda local filtra
// por nombre y número de serie.
func ProductList() ListDescriptor[entity.Product] {
	return ListDescriptor[entity.Product]{
		Name: "producto",
		SearchText: func(p entity.Product) []string {
			return []string{p.Name, p.SerialNumber}
		},
		Fallback: productFallback,
	}
}

func productFallback() []entity.Product {
	batch := func(n int64) *int64 { return &n }
	return []entity.Product{
		{ID: 1, Name: "Laptop Dell XPS", Description: "Laptop de alto rendimiento", Quantity: 15, SerialNumber: "DELL-001", Batch: batch(1), Active: true, CreateDate: "2024-01-15"},
		{ID: 2, Name: "Monitor Samsung 27\"", Description: "Monitor 4K UHD", Quantity: 30, SerialNumber: "SAM-002", Batch: batch(2), Active: true, CreateDate: "2024-01-14"},
		{ID: 3, Name: "Teclado Mecánico RGB", Description: "Teclado gaming", Quantity: 50, SerialNumber: "KEY-003", Batch: batch(1), Active: true, CreateDate: "2024-01-13"},
		{ID: 4, Name: "Mouse Logitech", Description: "Mouse inalámbrico", Quantity: 100, SerialNumber: "LOG-004", Batch: batch(3), Active: false, CreateDate: "2024-01-12"},
		{ID: 5, Name: "Webcam HD", Description: "Cámara 1080p", Quantity: 25, SerialNumber: "CAM-005", Batch: batch(1), Active: true, CreateDate: "2024-01-11"},
	}
}

// ProductForm descriptor de formulario para productos. currentUserID aporta
// el usuario en sesión: las altas quedan selladas con createdByUserId.
func ProductForm(gw ports.EntityGateway[entity.Product], currentUserID func() int64) FormDescriptor[entity.Product] {
	return FormDescriptor[entity.Product]{
		Name: "producto",
		DefaultDraft: func() entity.Product {
			return entity.Product{Active: true, Categories: []entity.Category{}}
		},
		Normalize: func(p *entity.Product) {
			if p.Categories == nil {
				p.Categories = []entity.Category{}
			}
		},
		Validate: func(p entity.Product) map[string]string {
			errs := map[string]string{}
			if !required(p.Name) {
				errs["name"] = "El nombre es requerido"
			}
			if p.Quantity == 0 {
				errs["quantity"] = "La cantidad es requerida"
			}
			if p.Quantity < 0 {
				errs["quantity"] = "La cantidad debe ser mayor o igual a 0"
			}
			if p.Inventory == nil {
				errs["inventory"] = "Porfavor indique el inventario"
			}
			return errs
		},
		Create: func(ctx context.Context, p entity.Product) error {
			p.CreatedByUserID = currentUserID()
			_, err := gw.Create(ctx, p)
			return err
		},
		Update: func(ctx context.Context, p entity.Product) error {
			_, err := gw.Update(ctx, p)
			return err
		},
		CreatedMsg: "Producto creado correctamente",
		UpdatedMsg: "Producto actualizado correctamente",
		FailMsg:    "Error al guardar el producto",
	}
}

// AddProductCategory agrega una categoría al borrador; idempotente por id.
func AddProductCategory(f *FormController[entity.Product], c entity.Category) {
	f.SetField("categories", func(p *entity.Product) {
		p.Categories = entity.AddByID(p.Categories, c)
	})
}

// RemoveProductCategory quita una categoría del borrador; no-op si no está.
func RemoveProductCategory(f *FormController[entity.Product], id int64) {
	f.SetField("categories", func(p *entity.Product) {
		p.Categories = entity.RemoveByID(p.Categories, id)
	})
}

// SetProductInventory fija el inventario (asociación única obligatoria).
func SetProductInventory(f *FormController[entity.Product], inv entity.Inventory) {
	f.SetField("inventory", func(p *entity.Product) {
		p.Inventory = &inv
	})
}
