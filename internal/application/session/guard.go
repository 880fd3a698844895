package session

// Decision resultado de evaluar el guard de una vista protegida.
type Decision int

const (
	// DecisionPending la sesión aún se está restaurando; mostrar estado de carga.
	DecisionPending Decision = iota
	// DecisionAllow sesión autenticada; permitir la navegación.
	DecisionAllow
	// DecisionRedirectLogin sin sesión; redirigir al punto de entrada de login.
	DecisionRedirectLogin
)

// Guard gatekeeper de vistas protegidas. Se evalúa en cada navegación hacia
// una zona protegida, no solo al arrancar.
type Guard struct {
	manager *Manager
}

// NewGuard construye el guard sobre el manager de sesión.
func NewGuard(manager *Manager) *Guard {
	return &Guard{manager: manager}
}

// Check evalúa el estado actual de la sesión.
func (g *Guard) Check() Decision {
	sess := g.manager.Current()
	switch {
	case sess.Loading:
		return DecisionPending
	case sess.IsAuthenticated:
		return DecisionAllow
	default:
		return DecisionRedirectLogin
	}
}
