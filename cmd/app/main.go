package main

import (
	"os"

	"github.com/jhoicas/inventario-client/internal/application/notify"
	"github.com/jhoicas/inventario-client/internal/application/session"
	"github.com/jhoicas/inventario-client/internal/infrastructure/api"
	"github.com/jhoicas/inventario-client/internal/infrastructure/store"
	"github.com/jhoicas/inventario-client/internal/interfaces/cli"
	"github.com/jhoicas/inventario-client/pkg/config"
	"github.com/jhoicas/inventario-client/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando cliente")

	credStore := store.NewFileStore(cfg.Auth.CredentialsFile)

	// El cliente HTTP toma el token de la sesión viva; el gateway de auth
	// usa ese mismo cliente, así que el manager se cablea en dos pasos.
	var manager *session.Manager
	client := api.NewClient(cfg.API, func() string {
		if manager == nil {
			return ""
		}
		return manager.Token()
	}, log)
	authGw := api.NewAuthGateway(client)
	manager = session.NewManager(credStore, authGw, log)

	center := notify.NewCenter(log, cli.ToastPrinter(os.Stdout))
	defer center.Close()

	deps := &cli.Deps{
		Config:      cfg,
		Log:         log,
		Session:     manager,
		Guard:       session.NewGuard(manager),
		Notify:      center,
		Categories:  api.NewCategoryGateway(client),
		Inventories: api.NewInventoryGateway(client),
		Products:    api.NewProductGateway(client),
		Users:       api.NewUserGateway(client),
		Roles:       api.NewRoleGateway(client),
		Auth:        authGw,
	}

	if err := cli.NewRootCmd(deps).Execute(); err != nil {
		log.Debug().Err(err).Msg("comando terminó con error")
		os.Exit(1)
	}
}
