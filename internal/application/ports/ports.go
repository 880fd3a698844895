package ports

import (
	"context"

	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// Page es el resultado de un listado paginado. El backend pagina con índice
// cero; TotalPages es 1 cuando el servidor no lo reporta.
type Page[T any] struct {
	Items      []T
	TotalPages int
}

// EntityGateway define el puerto de salida hacia una colección remota.
// Cada tipo de entidad aporta solo configuración, no flujo de control:
// los controladores genéricos trabajan contra este contrato.
// Page usa índice cero (convención del backend); la conversión desde la
// paginación 1-based de la vista es responsabilidad del controlador.
type EntityGateway[T entity.Identifiable] interface {
	List(ctx context.Context, page, size int) (Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// ActivableGateway lo implementan los gateways cuyo recurso soporta
// PATCH /{id}/toggle-active.
type ActivableGateway interface {
	ToggleActive(ctx context.Context, id int64) error
}

// AuthGateway define el puerto hacia los endpoints de autenticación.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (entity.Credentials, error)
	Register(ctx context.Context, user entity.User, password string) error
	ChangePassword(ctx context.Context, current, newPassword string) error
}

// CredentialStore persiste el par (token, usuario) entre ejecuciones.
// Load devuelve (nil, nil) cuando no hay credenciales guardadas.
// Clear es idempotente.
type CredentialStore interface {
	Save(creds entity.Credentials) error
	Load() (*entity.Credentials, error)
	Clear() error
}

// Notifier es el canal de notificaciones fire-and-forget que consumen
// todas las pantallas. Devuelve el id por si el llamador quiere
// descartar la notificación antes de que expire.
type Notifier interface {
	Success(title, message string) string
	Error(title, message string) string
	Warning(title, message string) string
	Info(title, message string) string
}
