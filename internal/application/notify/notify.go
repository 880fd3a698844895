package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-client/pkg/logger"
)

// DefaultDuration tiempo de vida de una notificación si no se indica otro.
const DefaultDuration = 5 * time.Second

// Kind clase de notificación.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Toast es una notificación efímera. Vive solo en memoria: se autodestruye
// cuando expira su duración o cuando el usuario la descarta antes.
type Toast struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// Center es la cola ordenada de notificaciones del proceso. Varias pueden
// coexistir; el orden de presentación es el orden de llegada y no hay
// de-duplicación de mensajes idénticos.
type Center struct {
	mu     sync.Mutex
	queue  []Toast
	timers map[string]*time.Timer
	onShow func(Toast)
	log    *logger.Logger
}

// NewCenter construye el centro de notificaciones. onShow se invoca al
// encolar cada toast (la capa de presentación decide cómo pintarlo);
// puede ser nil.
func NewCenter(log *logger.Logger, onShow func(Toast)) *Center {
	if log == nil {
		log = logger.Nop()
	}
	return &Center{
		timers: make(map[string]*time.Timer),
		onShow: onShow,
		log:    log,
	}
}

// Notify encola una notificación con id único y programa su expiración.
// Devuelve el id para poder descartarla antes de tiempo.
func (c *Center) Notify(kind Kind, title, message string, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultDuration
	}
	t := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Duration:  duration,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.queue = append(c.queue, t)
	c.timers[t.ID] = time.AfterFunc(duration, func() { c.Dismiss(t.ID) })
	show := c.onShow
	c.mu.Unlock()

	c.log.Debug().Str("kind", string(kind)).Str("title", title).Msg("notificación encolada")
	if show != nil {
		show(t)
	}
	return t.ID
}

// Success, Error, Warning, Info atajos con la duración por defecto.
func (c *Center) Success(title, message string) string {
	return c.Notify(KindSuccess, title, message, DefaultDuration)
}

func (c *Center) Error(title, message string) string {
	return c.Notify(KindError, title, message, DefaultDuration)
}

func (c *Center) Warning(title, message string) string {
	return c.Notify(KindWarning, title, message, DefaultDuration)
}

func (c *Center) Info(title, message string) string {
	return c.Notify(KindInfo, title, message, DefaultDuration)
}

// Dismiss elimina la notificación con ese id si sigue presente; no-op si no.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i, t := range c.queue {
		if t.ID == id {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return
		}
	}
}

// Active devuelve una copia de la cola en orden de llegada.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.queue))
	copy(out, c.queue)
	return out
}

// Close detiene todos los timers pendientes y vacía la cola.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.queue = nil
}
