package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

func newUserCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Gestiona los usuarios",
	}
	cmd.AddCommand(
		newUserListCmd(deps),
		newUserGetCmd(deps),
		newUserCreateCmd(deps),
		newUserUpdateCmd(deps),
		newUserDeleteCmd(deps),
		newUserToggleCmd(deps),
		newUserRolesCmd(deps),
		newUserAssignRolesCmd(deps),
		newProfileCmd(deps),
	)
	return cmd
}

func printUser(cmd *cobra.Command, u entity.User) {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	cmd.Printf("%4d  %-25s %-15s %-30s %-9s %s\n",
		u.ID, u.FullName(), u.Username, u.Email, activeLabel(u.Active), strings.Join(roles, ", "))
}

// availableRoles trae los roles del servidor; si el listado remoto falla se
// cae a los roles de muestra, igual que hacen los listados degradados.
func availableRoles(ctx context.Context, deps *Deps) []entity.Role {
	page, err := deps.Roles.List(ctx, 0, deps.Config.API.PageSize)
	if err != nil {
		deps.Log.Warn().Err(err).Msg("listado remoto de roles falló, usando roles de muestra")
		return controller.RoleFallback()
	}
	return page.Items
}

// resolveRoles mapea ids de rol contra el catálogo disponible.
func resolveRoles(ctx context.Context, deps *Deps, ids []int64) ([]entity.Role, error) {
	catalog := availableRoles(ctx, deps)
	roles := make([]entity.Role, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, r := range catalog {
			if r.ID == id {
				roles = append(roles, r)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("rol %d no existe: %w", id, domain.ErrInvalidInput)
		}
	}
	return roles, nil
}

func newUserListCmd(deps *Deps) *cobra.Command {
	var page int
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los usuarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			return runList(cmd.Context(), cmd, deps, controller.UserList(), deps.Users, page, search,
				printUser)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "página (desde 1)")
	cmd.Flags().StringVar(&search, "search", "", "filtro local por nombre o email")
	return cmd
}

func newUserGetCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Muestra un usuario por id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			u, err := deps.Users.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			printUser(cmd, u)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del usuario")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// userFlags flags compartidos entre alta y edición de usuarios.
type userFlags struct {
	name     string
	lastname string
	username string
	email    string
	birthday string
	active   bool
	roleIDs  []int64
	password string
	confirm  string
}

func (f *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "nombre")
	cmd.Flags().StringVar(&f.lastname, "lastname", "", "apellido")
	cmd.Flags().StringVar(&f.username, "username", "", "username")
	cmd.Flags().StringVar(&f.email, "email", "", "correo")
	cmd.Flags().StringVar(&f.birthday, "birthday", "", "fecha de nacimiento (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.active, "active", true, "activo")
	cmd.Flags().Int64SliceVar(&f.roleIDs, "role", nil, "id de rol (repetible)")
	cmd.Flags().StringVar(&f.password, "password", "", "contraseña")
	cmd.Flags().StringVar(&f.confirm, "password-confirm", "", "confirmación de contraseña")
}

func (f *userFlags) apply(cmd *cobra.Command, deps *Deps, form *controller.FormController[controller.UserDraft]) error {
	if cmd.Flags().Changed("name") {
		form.SetField("name", func(d *controller.UserDraft) { d.Name = f.name })
	}
	if cmd.Flags().Changed("lastname") {
		form.SetField("lastname", func(d *controller.UserDraft) { d.Lastname = f.lastname })
	}
	if cmd.Flags().Changed("username") {
		form.SetField("username", func(d *controller.UserDraft) { d.Username = f.username })
	}
	if cmd.Flags().Changed("email") {
		form.SetField("email", func(d *controller.UserDraft) { d.Email = f.email })
	}
	if cmd.Flags().Changed("birthday") {
		form.SetField("birthday", func(d *controller.UserDraft) { d.Birthday = f.birthday })
	}
	if cmd.Flags().Changed("active") {
		form.SetField("active", func(d *controller.UserDraft) { d.Active = f.active })
	}
	if cmd.Flags().Changed("role") {
		roles, err := resolveRoles(cmd.Context(), deps, f.roleIDs)
		if err != nil {
			return err
		}
		form.SetField("roles", func(d *controller.UserDraft) { d.Roles = []entity.Role{} })
		for _, r := range roles {
			controller.AddUserRole(form, r)
		}
	}
	if cmd.Flags().Changed("password") {
		form.SetField("password", func(d *controller.UserDraft) {
			d.SetPassword = true
			d.Password = f.password
			d.PasswordConfirm = f.confirm
		})
	}
	return nil
}

func newUserForm(deps *Deps) *controller.FormController[controller.UserDraft] {
	return controller.NewFormController(controller.UserForm(deps.Users), nil, deps.Notify, deps.Log)
}

func newUserCreateCmd(deps *Deps) *cobra.Command {
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			form := newUserForm(deps)
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

func newUserUpdateCmd(deps *Deps) *cobra.Command {
	var id int64
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edita un usuario existente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			existing, err := deps.Users.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}

			form := newUserForm(deps)
			draft := controller.UserDraft{User: existing}
			form.Open(&draft)
			if err := flags.apply(cmd, deps, form); err != nil {
				return err
			}
			return submitForm(cmd, form)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del usuario")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newUserDeleteCmd(deps *Deps) *cobra.Command {
	var id int64
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Elimina un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			if !confirmDelete(cmd, yes, fmt.Sprintf("el usuario %d", id)) {
				return nil
			}
			if err := deps.Users.Delete(cmd.Context(), id); err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error al eliminar el usuario"))
				return err
			}
			deps.Notify.Success("Éxito", "Usuario eliminado correctamente")
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del usuario")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newUserToggleCmd(deps *Deps) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Activa o desactiva un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			existing, err := deps.Users.Get(cmd.Context(), id)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			if err := deps.Users.ToggleActive(cmd.Context(), id); err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			if existing.Active {
				deps.Notify.Success("Éxito", "Usuario desactivado")
			} else {
				deps.Notify.Success("Éxito", "Usuario activado")
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del usuario")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newUserRolesCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "Lista los roles disponibles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			for _, r := range availableRoles(cmd.Context(), deps) {
				cmd.Printf("%4d  %s\n", r.ID, r.Name)
			}
			return nil
		},
	}
}

func newUserAssignRolesCmd(deps *Deps) *cobra.Command {
	var id int64
	var roleIDs []int64
	cmd := &cobra.Command{
		Use:   "assign-roles",
		Short: "Reemplaza los roles de un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			if len(roleIDs) == 0 {
				return fmt.Errorf("se requiere al menos un rol: %w", domain.ErrInvalidInput)
			}
			if _, err := resolveRoles(cmd.Context(), deps, roleIDs); err != nil {
				return err
			}
			if err := deps.Users.AssignRoles(cmd.Context(), id, roleIDs); err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error al asignar roles"))
				return err
			}
			deps.Notify.Success("Éxito", "Roles actualizados")
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id del usuario")
	cmd.Flags().Int64SliceVar(&roleIDs, "role", nil, "id de rol (repetible)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newProfileCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Muestra o edita el perfil del usuario autenticado",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			u, err := deps.Users.Profile(cmd.Context())
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			printUser(cmd, u)
			cmd.Printf("      nacimiento: %s\n", u.Birthday)
			return nil
		},
	}
	cmd.AddCommand(newProfileUpdateCmd(deps))
	return cmd
}

func newProfileUpdateCmd(deps *Deps) *cobra.Command {
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edita el perfil del usuario autenticado",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			u, err := deps.Users.Profile(cmd.Context())
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error"))
				return err
			}
			if cmd.Flags().Changed("name") {
				u.Name = flags.name
			}
			if cmd.Flags().Changed("lastname") {
				u.Lastname = flags.lastname
			}
			if cmd.Flags().Changed("email") {
				if !controller.ValidEmail(flags.email) {
					return fmt.Errorf("formato de correo inválido: %w", domain.ErrInvalidInput)
				}
				u.Email = flags.email
			}
			if cmd.Flags().Changed("birthday") {
				u.Birthday = flags.birthday
			}
			updated, err := deps.Users.UpdateProfile(cmd.Context(), u)
			if err != nil {
				deps.Notify.Error("Error", domain.MessageOr(err, "Error al actualizar el perfil"))
				return err
			}
			deps.Session.UpdateUser(updated)
			deps.Notify.Success("Éxito", "Perfil actualizado")
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.name, "name", "", "nombre")
	cmd.Flags().StringVar(&flags.lastname, "lastname", "", "apellido")
	cmd.Flags().StringVar(&flags.email, "email", "", "correo")
	cmd.Flags().StringVar(&flags.birthday, "birthday", "", "fecha de nacimiento (YYYY-MM-DD)")
	return cmd
}
