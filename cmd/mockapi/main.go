package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/inventario-client/internal/mockapi"
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

	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	secret := os.Getenv("MOCKAPI_JWT_SECRET")
	if secret == "" {
		secret = "inventario-mock-secret"
	}

	srv := mockapi.New(secret, log)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("apagando servidor de pruebas")
		_ = srv.App().Shutdown()
	}()

	log.Info().Str("addr", addr).Msg("servidor de pruebas escuchando")
	if err := srv.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("servidor de pruebas")
	}
}
