package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

func newInventoryCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Gestiona los inventarios",
	}
	cmd.AddCommand(
		newInventoryListCmd(deps),
		newInventoryGetCmd(deps),
		newInventoryCreateCmd(deps),
		newInventoryUpdateCmd(deps),
		newInventoryDeleteCmd(deps),
		newInventoryStatsCmd(deps),
		newInventoryProductsCmd(deps),
	)
	return cmd
}

func newInventoryListCmd(deps *Deps) *cobra.Command {
	var page int
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los inventarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			return runList(cmd.Context(), cmd, deps, controller.InventoryList(), deps.Inventories, page, search,
				func(cmd *cobra.Command, i entity.Inventory) {
					cmd.Printf("%4d  %-25s %-25s %5d uds  %s\n", i.ID, i.Name, i.Location, i.Quantity, i.CreateDate)
				})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "página (desde 1)")
	cmd.Flags().StringVar(&search, "search", "", "filtro local por nombre o ubicación")
	return cmd
}

func newInventoryGetCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Muestra un inventario por id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			i, err := deps.Inventories.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			cmd.Printf("%4d  %-25s %-25s %5d uds  %s\n", i.ID, i.Name, i.Location, i.Quantity, i.CreateDate)
			if i.Description != "" {
				cmd.Printf("      %s\n", i.Description)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del inventario")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newInventoryCreateCmd(deps *Deps) *cobra.Command {
	var draft entity.Inventory
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un inventario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			form := controller.NewFormController(controller.InventoryForm(deps.Inventories), nil, deps.Notify, deps.Log)
			form.Open(nil)
			form.SetField("name", func(i *entity.Inventory) { i.Name = draft.Name })
			form.SetField("description", func(i *entity.Inventory) { i.Description = draft.Description })
			form.SetField("location", func(i *entity.Inventory) { i.Location = draft.Location })
			form.SetField("active", func(i *entity.Inventory) { i.Active = draft.Active })
			return submitForm(cmd, form)
		},
	}
	cmd.Flags().StringVar(&draft.Name, "name", "", "nombre")
	cmd.Flags().StringVar(&draft.Description, "description", "", "descripción")
	cmd.Flags().StringVar(&draft.Location, "location", "", "ubicación")
	cmd.Flags().BoolVar(&draft.Active, "active", false, "activo")
	return cmd
}

func newInventoryUpdateCmd(deps *Deps) *cobra.Command {
	var id int64
	var draft entity.Inventory
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edita un inventario existente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			existing, err := deps.Inventories.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}

			form := controller.NewFormController(controller.InventoryForm(deps.Inventories), nil, deps.Notify, deps.Log)
			form.Open(&existing)
			if cmd.Flags().Changed("name") {
				form.SetField("name", func(i *entity.Inventory) { i.Name = draft.Name })
			}
			if cmd.Flags().Changed("description") {
				form.SetField("description", func(i *entity.Inventory) { i.Description = draft.Description })
			}
			if cmd.Flags().Changed("location") {
				form.SetField("location", func(i *entity.Inventory) { i.Location = draft.Location })
			}
			if cmd.Flags().Changed("active") {
				form.SetField("active", func(i *entity.Inventory) { i.Active = draft.Active })
			}
			return submitForm(cmd, form)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del inventario")
	cmd.Flags().StringVar(&draft.Name, "name", "", "nombre")
	cmd.Flags().StringVar(&draft.Description, "description", "", "descripción")
	cmd.Flags().StringVar(&draft.Location, "location", "", "ubicación")
	cmd.Flags().BoolVar(&draft.Active, "active", false, "activo")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newInventoryDeleteCmd(deps *Deps) *cobra.Command {
	var id int64
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Elimina un inventario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			if !confirmDelete(cmd, yes, fmt.Sprintf("el inventario %d", id)) {
				return nil
			}
			if err := deps.Inventories.Delete(cmd.Context(), id); err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error al eliminar el inventario"))
				return err
			}
			deps.Notify.Success("Éxito", "Inventario eliminado correctamente")
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del inventario")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newInventoryStatsCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Muestra los totales de un inventario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			stats, err := deps.Inventories.Stats(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			cmd.Printf("productos: %d\nunidades:  %d\n", stats.TotalProducts, stats.TotalQuantity)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del inventario")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newInventoryProductsCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Lista los productos de un inventario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			products, err := deps.Inventories.Products(cmd.Context(), id)
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
	cmd.Flags().Int64Var(&id, "id", 0, "id del inventario")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
