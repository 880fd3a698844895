package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

func newCategoryCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Gestiona las categorías",
	}
	cmd.AddCommand(
		newCategoryListCmd(deps),
		newCategoryGetCmd(deps),
		newCategoryCreateCmd(deps),
		newCategoryUpdateCmd(deps),
		newCategoryDeleteCmd(deps),
		newCategoryToggleCmd(deps),
	)
	return cmd
}

func newCategoryGetCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Muestra una categoría por id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			c, err := deps.Categories.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			cmd.Printf("%4d  %-30s %-9s %d productos\n", c.ID, c.Name, activeLabel(c.Active), c.QuantityProducts)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id de la categoría")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCategoryDeleteCmd(deps *Deps) *cobra.Command {
	var id int64
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Elimina una categoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			if !confirmDelete(cmd, yes, fmt.Sprintf("la categoría %d", id)) {
				return nil
			}
			if err := deps.Categories.Delete(cmd.Context(), id); err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error al eliminar la categoría"))
				return err
			}
			deps.Notify.Success("Éxito", "Categoría eliminada correctamente")
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id de la categoría")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCategoryListCmd(deps *Deps) *cobra.Command {
	var page int
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las categorías",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			return runList(cmd.Context(), cmd, deps, controller.CategoryList(), deps.Categories, page, search,
				func(cmd *cobra.Command, c entity.Category) {
					cmd.Printf("%4d  %-30s %-9s %d productos\n", c.ID, c.Name, activeLabel(c.Active), c.QuantityProducts)
				})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "página (desde 1)")
	cmd.Flags().StringVar(&search, "search", "", "filtro local por nombre")
	return cmd
}

func newCategoryCreateCmd(deps *Deps) *cobra.Command {
	var name string
	var active bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea una categoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			form := controller.NewFormController(controller.CategoryForm(deps.Categories), nil, deps.Notify, deps.Log)
			form.Open(nil)
			form.SetField("name", func(c *entity.Category) { c.Name = name })
			form.SetField("active", func(c *entity.Category) { c.Active = active })
			return submitForm(cmd, form)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nombre")
	cmd.Flags().BoolVar(&active, "active", false, "activa")
	return cmd
}

func newCategoryUpdateCmd(deps *Deps) *cobra.Command {
	var id int64
	var name string
	var active bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edita una categoría existente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			existing, err := deps.Categories.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}

			form := controller.NewFormController(controller.CategoryForm(deps.Categories), nil, deps.Notify, deps.Log)
			form.Open(&existing)
			if cmd.Flags().Changed("name") {
				form.SetField("name", func(c *entity.Category) { c.Name = name })
			}
			if cmd.Flags().Changed("active") {
				form.SetField("active", func(c *entity.Category) { c.Active = active })
			}
			return submitForm(cmd, form)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id de la categoría")
	cmd.Flags().StringVar(&name, "name", "", "nombre")
	cmd.Flags().BoolVar(&active, "active", false, "activa")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCategoryToggleCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Activa o desactiva una categoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			existing, err := deps.Categories.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			if err := deps.Categories.ToggleActive(cmd.Context(), id); err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			if existing.Active {
				deps.Notify.Success("Éxito", "Categoría desactivada")
			} else {
				deps.Notify.Success("Éxito", "Categoría activada")
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id de la categoría")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
