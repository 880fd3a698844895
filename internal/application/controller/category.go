package controller

import (
	"context"

	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// CategoryList descriptor de listado para categorías. La búsqueda local
// filtra solo por nombre.
func CategoryList() ListDescriptor[entity.Category] {
	return ListDescriptor[entity.Category]{
		Name: "categoría",
		SearchText: func(c entity.Category) []string {
			return []string{c.Name}
		},
		Fallback: categoryFallback,
	}
}

// categoryFallback datos de muestra cuando el backend no responde.
func categoryFallback() []entity.Category {
	return []entity.Category{
		{ID: 1, Name: "Electrónicos", Active: true, QuantityProducts: 45},
		{ID: 2, Name: "Accesorios", Active: true, QuantityProducts: 120},
		{ID: 3, Name: "Periféricos", Active: true, QuantityProducts: 67},
		{ID: 4, Name: "Software", Active: false, QuantityProducts: 23},
		{ID: 5, Name: "Redes", Active: true, QuantityProducts: 34},
	}
}

// CategoryForm descriptor de formulario para categorías.
func CategoryForm(gw ports.EntityGateway[entity.Category]) FormDescriptor[entity.Category] {
	return FormDescriptor[entity.Category]{
		Name: "categoría",
		DefaultDraft: func() entity.Category {
			return entity.Category{Active: false}
		},
		Validate: func(c entity.Category) map[string]string {
			errs := map[string]string{}
			if !required(c.Name) {
				errs["name"] = "Requerido"
			}
			return errs
		},
		Create: func(ctx context.Context, c entity.Category) error {
			_, err := gw.Create(ctx, c)
			return err
		},
		Update: func(ctx context.Context, c entity.Category) error {
			_, err := gw.Update(ctx, c)
			return err
		},
		CreatedMsg: "Categoría creada correctamente",
		UpdatedMsg: "Categoría actualizada correctamente",
		FailMsg:    "Error",
	}
}
