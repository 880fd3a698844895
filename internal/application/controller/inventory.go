package controller

import (
	"context"

	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// InventoryList descriptor de listado para inventarios. La búsqueda local
// filtra por nombre y por ubicación.
func InventoryList() ListDescriptor[entity.Inventory] {
	return ListDescriptor[entity.Inventory]{
		Name: "inventario",
		SearchText: func(i entity.Inventory) []string {
			return []string{i.Name, i.Location}
		},
		Fallback: inventoryFallback,
	}
}

func inventoryFallback() []entity.Inventory {
	return []entity.Inventory{
		{ID: 1, Name: "Almacén Principal", Description: "Almacén central de la empresa", Location: "Edificio A, Piso 1", Quantity: 245, CreateDate: "2024-01-01"},
		{ID: 2, Name: "Bodega Sur", Description: "Bodega de productos terminados", Location: "Zona Industrial Sur", Quantity: 189, CreateDate: "2024-01-05"},
		{ID: 3, Name: "Depósito Norte", Description: "Materias primas", Location: "Zona Industrial Norte", Quantity: 312, CreateDate: "2024-01-10"},
		{ID: 4, Name: "Almacén Temporal", Description: "Para productos en tránsito", Location: "Edificio B", Quantity: 56, CreateDate: "2024-01-15"},
	}
}

// InventoryForm descriptor de formulario para inventarios.
func InventoryForm(gw ports.EntityGateway[entity.Inventory]) FormDescriptor[entity.Inventory] {
	return FormDescriptor[entity.Inventory]{
		Name: "inventario",
		DefaultDraft: func() entity.Inventory {
			return entity.Inventory{Active: false}
		},
		Validate: func(i entity.Inventory) map[string]string {
			errs := map[string]string{}
			if !required(i.Name) {
				errs["name"] = "El nombre es requerido"
			}
			if !required(i.Location) {
				errs["location"] = "La ubicación es requerida"
			}
			return errs
		},
		Create: func(ctx context.Context, i entity.Inventory) error {
			_, err := gw.Create(ctx, i)
			return err
		},
		Update: func(ctx context.Context, i entity.Inventory) error {
			_, err := gw.Update(ctx, i)
			return err
		},
		CreatedMsg: "Inventario creado correctamente",
		UpdatedMsg: "Inventario actualizado correctamente",
		FailMsg:    "Error al guardar el inventario",
	}
}
