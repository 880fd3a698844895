package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
	"github.com/jhoicas/inventario-client/pkg/jwt"
	"github.com/jhoicas/inventario-client/pkg/logger"
)

// Result resultado uniforme de login/register: éxito, o mensaje legible para
// el usuario (del servidor cuando lo envió, genérico si no).
type Result struct {
	Success bool
	Message string
}

// Manager es el estado de sesión del proceso. Es el único recurso mutable
// compartido: muchas vistas lo leen, pero solo se muta a través de estas
// operaciones. Se construye una vez al arrancar y se desmonta en Logout.
type Manager struct {
	mu      sync.RWMutex
	sess    entity.Session
	token   string
	store   ports.CredentialStore
	gateway ports.AuthGateway
	boot    sync.Once
	log     *logger.Logger
}

// NewManager construye el manager sin sesión. Llamar Bootstrap antes de usar.
func NewManager(store ports.CredentialStore, gateway ports.AuthGateway, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		sess:    entity.Session{Loading: true},
		store:   store,
		gateway: gateway,
		log:     log,
	}
}

// Bootstrap lee las credenciales persistidas y fija el estado inicial.
// No hace ninguna llamada de red y se completa exactamente una vez; después
// Loading queda en false. Un token guardado pero ya expirado se trata como
// "no autenticado", no como error.
func (m *Manager) Bootstrap() {
	m.boot.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		defer func() { m.sess.Loading = false }()

		creds, err := m.store.Load()
		if err != nil {
			m.log.Warn().Err(err).Msg("no se pudieron leer las credenciales guardadas")
			return
		}
		if creds == nil || creds.Token == "" {
			return
		}
		if jwt.Expired(creds.Token, time.Now()) {
			m.log.Info().Msg("token guardado expirado; se requiere nuevo login")
			return
		}
		user := creds.User
		m.token = creds.Token
		m.sess.User = &user
		m.sess.IsAuthenticated = true
		m.log.Info().Str("username", user.Username).Msg("sesión restaurada")
	})
}

// Login autentica contra el gateway. En éxito persiste token + usuario y marca
// la sesión como autenticada. En fallo no persiste nada y la sesión queda
// como estaba (no autenticada).
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	creds, err := m.gateway.Login(ctx, username, password)
	if err != nil {
		m.log.Warn().Err(err).Str("username", username).Msg("login fallido")
		return Result{Message: domain.MessageOr(err, "Error al iniciar sesión")}
	}

	if err := m.store.Save(creds); err != nil {
		// la sesión en memoria sigue siendo válida aunque no se pudo persistir
		m.log.Warn().Err(err).Msg("no se pudieron guardar las credenciales")
	}

	m.mu.Lock()
	user := creds.User
	m.token = creds.Token
	m.sess.User = &user
	m.sess.IsAuthenticated = true
	m.mu.Unlock()

	m.log.Info().Str("username", user.Username).Msg("sesión iniciada")
	return Result{Success: true}
}

// Register registra un usuario nuevo. No autentica al llamador: registro y
// login son pasos separados.
func (m *Manager) Register(ctx context.Context, user entity.User, password string) Result {
	if err := m.gateway.Register(ctx, user, password); err != nil {
		m.log.Warn().Err(err).Str("username", user.Username).Msg("registro fallido")
		return Result{Message: domain.MessageOr(err, "Error al registrarse")}
	}
	return Result{Success: true}
}

// ChangePassword cambia la contraseña del usuario autenticado.
func (m *Manager) ChangePassword(ctx context.Context, current, newPassword string) Result {
	if err := m.gateway.ChangePassword(ctx, current, newPassword); err != nil {
		return Result{Message: domain.MessageOr(err, "Error al cambiar la contraseña")}
	}
	return Result{Success: true}
}

// Logout limpia credenciales persistidas y deja la sesión sin usuario.
// Idempotente: es seguro llamarlo sin sesión activa.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("no se pudieron limpiar las credenciales")
	}

	m.mu.Lock()
	m.token = ""
	m.sess.User = nil
	m.sess.IsAuthenticated = false
	m.mu.Unlock()
}

// UpdateUser reemplaza el usuario en sesión (p. ej. tras editar el perfil) y
// re-persiste las credenciales para que sobrevivan al reinicio.
func (m *Manager) UpdateUser(user entity.User) {
	m.mu.Lock()
	token := m.token
	u := user
	m.sess.User = &u
	m.mu.Unlock()

	if token == "" {
		return
	}
	if err := m.store.Save(entity.Credentials{Token: token, User: user}); err != nil {
		m.log.Warn().Err(err).Msg("no se pudo persistir el usuario actualizado")
	}
}

// Current devuelve una copia del estado de sesión.
func (m *Manager) Current() entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess := m.sess
	if m.sess.User != nil {
		u := *m.sess.User
		sess.User = &u
	}
	return sess
}

// User devuelve el usuario en sesión o nil.
func (m *Manager) User() *entity.User {
	return m.Current().User
}

// Token devuelve el token actual; vacío si no hay sesión. Lo consume el
// cliente HTTP como proveedor de credenciales.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}
