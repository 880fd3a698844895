package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

func newProductCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Gestiona los productos",
	}
	cmd.AddCommand(
		newProductListCmd(deps),
		newProductGetCmd(deps),
		newProductCreateCmd(deps),
		newProductUpdateCmd(deps),
		newProductDeleteCmd(deps),
		newProductToggleCmd(deps),
		newProductSearchCmd(deps),
		newProductByCategoryCmd(deps),
	)
	return cmd
}

func printProduct(cmd *cobra.Command, p entity.Product) {
	inv := "-"
	if p.Inventory != nil {
		inv = p.Inventory.Name
	}
	cats := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		cats = append(cats, c.Name)
	}
	cmd.Printf("%4d  %-25s %5d uds  %-12s %-9s inv: %-20s %s\n",
		p.ID, p.Name, p.Quantity, p.SerialNumber, activeLabel(p.Active), inv, strings.Join(cats, ", "))
}

func newProductListCmd(deps *Deps) *cobra.Command {
	var page int
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los productos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			return runList(cmd.Context(), cmd, deps, controller.ProductList(), deps.Products, page, search,
				printProduct)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "página (desde 1)")
	cmd.Flags().StringVar(&search, "search", "", "filtro local por nombre o número de serie")
	return cmd
}

func newProductGetCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Muestra un producto por id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			p, err := deps.Products.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			printProduct(cmd, p)
			if p.Description != "" {
				cmd.Printf("      %s\n", p.Description)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del producto")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// productFlags campos de texto del formulario: cantidad y lote llegan como
// texto y se convierten aquí, en el borde, no en el controlador.
type productFlags struct {
	name        string
	description string
	quantity    string
	serial      string
	batch       string
	active      bool
	inventoryID int64
	categoryIDs []int64
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "nombre")
	cmd.Flags().StringVar(&f.description, "description", "", "descripción")
	cmd.Flags().StringVar(&f.quantity, "quantity", "", "cantidad")
	cmd.Flags().StringVar(&f.serial, "serial", "", "número de serie")
	cmd.Flags().StringVar(&f.batch, "batch", "", "lote (opcional)")
	cmd.Flags().BoolVar(&f.active, "active", true, "activo")
	cmd.Flags().Int64Var(&f.inventoryID, "inventory", 0, "id del inventario")
	cmd.Flags().Int64SliceVar(&f.categoryIDs, "category", nil, "id de categoría (repetible)")
}

// apply vuelca al formulario solo los flags presentes en la línea de comandos.
// Las asociaciones se resuelven contra el backend para validar que existan.
func (f *productFlags) apply(cmd *cobra.Command, deps *Deps, form *controller.FormController[entity.Product]) error {
	if cmd.Flags().Changed("name") {
		form.SetField("name", func(p *entity.Product) { p.Name = f.name })
	}
	if cmd.Flags().Changed("description") {
		form.SetField("description", func(p *entity.Product) { p.Description = f.description })
	}
	if cmd.Flags().Changed("quantity") {
		qty, err := strconv.Atoi(strings.TrimSpace(f.quantity))
		if err != nil {
			return fmt.Errorf("cantidad inválida %q: %w", f.quantity, domain.ErrInvalidInput)
		}
		form.SetField("quantity", func(p *entity.Product) { p.Quantity = qty })
	}
	if cmd.Flags().Changed("serial") {
		form.SetField("serialNumber", func(p *entity.Product) { p.SerialNumber = f.serial })
	}
	if cmd.Flags().Changed("batch") {
		if strings.TrimSpace(f.batch) == "" {
			form.SetField("batch", func(p *entity.Product) { p.Batch = nil })
		} else {
			batch, err := strconv.ParseInt(strings.TrimSpace(f.batch), 10, 64)
			if err != nil {
				return fmt.Errorf("lote inválido %q: %w", f.batch, domain.ErrInvalidInput)
			}
			form.SetField("batch", func(p *entity.Product) { p.Batch = &batch })
		}
	}
	if cmd.Flags().Changed("active") {
		form.SetField("active", func(p *entity.Product) { p.Active = f.active })
	}
	if cmd.Flags().Changed("inventory") {
		inv, err := deps.Inventories.Get(cmd.Context(), f.inventoryID)
		if err != nil {
			deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
			return err
		}
		controller.SetProductInventory(form, inv)
	}
	if cmd.Flags().Changed("category") {
		form.SetField("categories", func(p *entity.Product) { p.Categories = []entity.Category{} })
		for _, cid := range f.categoryIDs {
			cat, err := deps.Categories.Get(cmd.Context(), cid)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			controller.AddProductCategory(form, cat)
		}
	}
	return nil
}

func newProductForm(deps *Deps) *controller.FormController[entity.Product] {
	desc := controller.ProductForm(deps.Products, func() int64 {
		if u := deps.Session.User(); u != nil {
			return u.ID
		}
		return 0
	})
	return controller.NewFormController(desc, nil, deps.Notify, deps.Log)
}

func newProductCreateCmd(deps *Deps) *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un producto",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			form := newProductForm(deps)
			form.Open(nil)
			if err := flags.apply(cmd, deps, form); err != nil {
				return err
			}
			return submitForm(cmd, form)
		},
	}
	flags.register(cmd)
	return cmd
}

func newProductUpdateCmd(deps *Deps) *cobra.Command {
	var id int64
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edita un producto existente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			existing, err := deps.Products.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}

			form := newProductForm(deps)
			form.Open(&existing)
			if err := flags.apply(cmd, deps, form); err != nil {
				return err
			}
			return submitForm(cmd, form)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del producto")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newProductDeleteCmd(deps *Deps) *cobra.Command {
	var id int64
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Elimina un producto",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			if !confirmDelete(cmd, yes, fmt.Sprintf("el producto %d", id)) {
				return nil
			}
			if err := deps.Products.Delete(cmd.Context(), id); err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error al eliminar el producto"))
				return err
			}
			deps.Notify.Success("Éxito", "Producto eliminado correctamente")
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del producto")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newProductToggleCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Activa o desactiva un producto",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			existing, err := deps.Products.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			if err := deps.Products.ToggleActive(cmd.Context(), id); err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			if existing.Active {
				deps.Notify.Success("Éxito", "Producto desactivado")
			} else {
				deps.Notify.Success("Éxito", "Producto activado")
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del producto")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newProductSearchCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <texto>",
		Short: "Busca productos en el backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			products, err := deps.Products.Search(cmd.Context(), args[0])
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			for _, p := range products {
				printProduct(cmd, p)
			}
			return nil
		},
	}
	return cmd
}

func newProductByCategoryCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "by-category",
		Short: "Lista los productos de una categoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			products, err := deps.Products.ByCategory(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			for _, p := range products {
				printProduct(cmd, p)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id de la categoría")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
