package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-client/internal/application/notify"
	"github.com/jhoicas/inventario-client/internal/application/session"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/infrastructure/api"
	"github.com/jhoicas/inventario-client/pkg/config"
	"github.com/jhoicas/inventario-client/pkg/logger"
)

// Deps dependencias del árbol de comandos, cableadas en cmd/app.
type Deps struct {
	Config      *config.Config
	Log         *logger.Logger
	Session     *session.Manager
	Guard       *session.Guard
	Notify      *notify.Center
	Categories  *api.CategoryGateway
	Inventories *api.InventoryGateway
	Products    *api.ProductGateway
	Users       *api.UserGateway
	Roles       *api.RoleGateway
	Auth        *api.AuthGateway
}

// NewRootCmd construye el comando raíz con todos los subcomandos.
func NewRootCmd(deps *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "inventario",
		Short:         "Cliente de terminal para Inventory Manager",
		Long:          "Cliente de terminal para el backend de Inventory Manager: sesión, categorías, inventarios, productos y usuarios.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// restaurar la sesión persistida antes de cualquier comando
			deps.Session.Bootstrap()
		},
	}

	root.AddCommand(
		newLoginCmd(deps),
		newLogoutCmd(deps),
		newRegisterCmd(deps),
		newWhoamiCmd(deps),
		newChangePasswordCmd(deps),
		newCategoryCmd(deps),
		newInventoryCmd(deps),
		newProductCmd(deps),
		newUserCmd(deps),
	)
	return root
}

// requireAuth aplica el guard de rutas protegidas: toda navegación hacia una
// zona protegida pasa por aquí, no solo el arranque.
func requireAuth(deps *Deps) error {
	switch deps.Guard.Check() {
	case session.DecisionAllow:
		return nil
	case session.DecisionPending:
		// Bootstrap es síncrono; llegar aquí es un error de cableado
		return domain.ErrNotLoggedIn
	default:
		deps.Notify.Warning("Sesión requerida", "Inicia sesión con 'inventario login'")
		return domain.ErrNotLoggedIn
	}
}
