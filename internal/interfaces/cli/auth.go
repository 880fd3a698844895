package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

func newLoginCmd(deps *Deps) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión contra el backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("el username es requerido: %w", domain.ErrInvalidInput)
			}
			if password == "" {
				return fmt.Errorf("la contraseña es requerida: %w", domain.ErrInvalidInput)
			}
			result := deps.Session.Login(cmd.Context(), username, password)
			if !result.Success {
				deps.Notify.Error("Error", result.Message)
				return domain.ErrUnauthorized
			}
			deps.Notify.Success("¡Bienvenido!", "Has iniciado sesión correctamente")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña")
	return cmd
}

func newLogoutCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión y limpia las credenciales guardadas",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.Session.Logout()
			deps.Notify.Info("Sesión cerrada", "")
			return nil
		},
	}
}

func newRegisterCmd(deps *Deps) *cobra.Command {
	var user entity.User
	var password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Registra un usuario nuevo (no inicia sesión)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := validateRegister(user, password, confirm); len(errs) > 0 {
				printFieldErrors(cmd, errs)
				return domain.ErrValidation
			}
			result := deps.Session.Register(cmd.Context(), user, password)
			if !result.Success {
				deps.Notify.Error("Error", result.Message)
				return domain.ErrRemoteCall
			}
			deps.Notify.Success("¡Registro exitoso!", "Ahora puedes iniciar sesión")
			return nil
		},
	}
	cmd.Flags().StringVar(&user.Name, "name", "", "nombre")
	cmd.Flags().StringVar(&user.Lastname, "lastname", "", "apellido")
	cmd.Flags().StringVar(&user.Username, "username", "", "username")
	cmd.Flags().StringVar(&user.Email, "email", "", "email")
	cmd.Flags().StringVar(&user.Birthday, "birthday", "", "fecha de nacimiento (YYYY-MM-DD)")
	cmd.Flags().StringVar(&password, "password", "", "contraseña")
	cmd.Flags().StringVar(&confirm, "password-confirm", "", "confirmación de contraseña")
	return cmd
}

// validateRegister reglas del formulario de registro.
func validateRegister(u entity.User, password, confirm string) map[string]string {
	errs := map[string]string{}
	if u.Name == "" {
		errs["name"] = "Requerido"
	}
	if u.Username == "" {
		errs["username"] = "Requerido"
	}
	if u.Email == "" {
		errs["email"] = "Requerido"
	} else if !controller.ValidEmail(u.Email) {
		errs["email"] = "Formato de correo inválido"
	}
	if password != confirm {
		errs["password"] = "Las contrasenas no coinciden"
	}
	if !controller.ValidPassword(password) {
		errs["password"] = "La contraseña no cumple el formato requerido: 8 - 35 caracteres, mayúsculas, minúsculas, números y un símbolo."
	}
	return errs
}

func newWhoamiCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario en sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			u := deps.Session.User()
			cmd.Printf("%s (@%s) <%s>\n", u.FullName(), u.Username, u.Email)
			for _, r := range u.Roles {
				cmd.Printf("  rol: %s\n", r.Name)
			}
			return nil
		},
	}
}

func newChangePasswordCmd(deps *Deps) *cobra.Command {
	var current, newPass, confirm string
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Cambia la contraseña del usuario en sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(deps); err != nil {
				return err
			}
			if newPass != confirm {
				deps.Notify.Error("Error", "Las contraseñas nuevas no coinciden")
				return domain.ErrValidation
			}
			if !controller.ValidPassword(newPass) {
				deps.Notify.Error("Error", "La contraseña no cumple el formato requerido: 8 - 35 caracteres, mayúsculas, minúsculas, números y un símbolo.")
				return domain.ErrValidation
			}
			result := deps.Session.ChangePassword(cmd.Context(), current, newPass)
			if !result.Success {
				deps.Notify.Error("Error", "No se pudo cambiar la contraseña")
				return domain.ErrRemoteCall
			}
			deps.Notify.Success("Contraseña actualizada", "Tu contraseña ha sido cambiada correctamente")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "contraseña actual")
	cmd.Flags().StringVar(&newPass, "new", "", "contraseña nueva")
	cmd.Flags().StringVar(&confirm, "confirm", "", "confirmación de la contraseña nueva")
	return cmd
}

// printFieldErrors pinta los errores campo a campo, como los mensajes junto
// a cada input del formulario.
func printFieldErrors(cmd *cobra.Command, errs map[string]string) {
	for field, msg := range errs {
		cmd.PrintErrf("%s: %s\n", field, msg)
	}
}
