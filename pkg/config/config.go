package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	API  APIConfig
	Auth AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del backend REST que consume el cliente.
type APIConfig struct {
	BaseURL    string // ej. http://localhost:8080/api
	TimeoutSec int    // timeout por petición
	Retries    int    // reintentos para GETs idempotentes
	PageSize   int    // tamaño de página en listados
}

// Timeout devuelve el timeout por petición como time.Duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// AuthConfig configuración de la sesión local.
type AuthConfig struct {
	CredentialsFile string // archivo donde se persisten token + usuario
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, API_TIMEOUT_SECONDS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-client"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:    getString(v, "API_BASE_URL", "http://localhost:8080/api"),
			TimeoutSec: getInt(v, "API_TIMEOUT_SECONDS", 10),
			Retries:    getInt(v, "API_RETRIES", 2),
			PageSize:   getInt(v, "API_PAGE_SIZE", 10),
		},
		Auth: AuthConfig{
			CredentialsFile: getString(v, "AUTH_CREDENTIALS_FILE", defaultCredentialsFile()),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL no puede estar vacío")
	}
	if cfg.API.PageSize <= 0 {
		cfg.API.PageSize = 10
	}

	return cfg, nil
}

// defaultCredentialsFile ubica las credenciales en el directorio de configuración del usuario.
func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".inventario-credentials.json"
	}
	return filepath.Join(dir, "inventario-client", "credentials.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
