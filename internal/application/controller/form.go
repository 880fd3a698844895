package controller

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/pkg/logger"
)

// FormState estado del ciclo de vida de un formulario de alta/edición.
type FormState int

const (
	// FormClosed no hay operación en curso.
	FormClosed FormState = iota
	// FormOpenForCreate borrador nuevo a partir del draft por defecto.
	FormOpenForCreate
	// FormOpenForEdit borrador sembrado desde una entidad existente.
	FormOpenForEdit
	// FormSubmitting envío en vuelo; el borrador se conserva hasta resolver.
	FormSubmitting
)

// FormDescriptor configura el controlador de formulario para un tipo de
// borrador. Create y Update son los enlaces de capacidad hacia el gateway;
// los mensajes son los que se notifican al usuario en cada desenlace.
type FormDescriptor[D any] struct {
	// Name nombre legible del tipo ("producto").
	Name string
	// DefaultDraft borrador inicial para un alta.
	DefaultDraft func() D
	// Normalize completa campos ausentes del borrador sembrado (sets vacíos,
	// strings vacíos). Puede ser nil.
	Normalize func(*D)
	// Validate borrador -> errores por campo. Mapa vacío = válido.
	Validate func(D) map[string]string
	// Create y Update enlazan con el gateway del tipo.
	Create func(context.Context, D) error
	Update func(context.Context, D) error
	// Mensajes notificados en cada desenlace. FailMsg es el fallback cuando
	// el servidor no manda mensaje.
	CreatedMsg string
	UpdatedMsg string
	FailMsg    string
}

// FormController gestiona una operación de alta o edición con alcance de
// modal: borrador mutable, errores por campo, envío y cierre. El borrador se
// descarta en Cancel y se conserva ante un fallo de envío para reintentar
// sin reescribir.
type FormController[D any] struct {
	mu       sync.Mutex
	desc     FormDescriptor[D]
	owner    Refresher
	notifier ports.Notifier
	state    FormState
	draft    D
	errors   map[string]string
	log      *logger.Logger
}

// Refresher es la vista de lista dueña del formulario; se refresca tras cada
// envío exitoso.
type Refresher interface {
	Refresh(ctx context.Context)
}

// NewFormController construye el controlador cerrado.
func NewFormController[D any](desc FormDescriptor[D], owner Refresher, notifier ports.Notifier, log *logger.Logger) *FormController[D] {
	if log == nil {
		log = logger.Nop()
	}
	return &FormController[D]{
		desc:     desc,
		owner:    owner,
		notifier: notifier,
		state:    FormClosed,
		errors:   map[string]string{},
		log:      log,
	}
}

// Open abre el formulario. Con una entidad existente siembra el borrador
// desde ella (copia campo a campo, defaulting de ausentes vía Normalize);
// sin ella usa el borrador por defecto del tipo. Siempre limpia los errores
// previos.
func (f *FormController[D]) Open(existing *D) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing != nil {
		f.draft = *existing
		f.state = FormOpenForEdit
	} else {
		f.draft = f.desc.DefaultDraft()
		f.state = FormOpenForCreate
	}
	if f.desc.Normalize != nil {
		f.desc.Normalize(&f.draft)
	}
	f.errors = map[string]string{}
}

// SetField aplica una mutación al borrador y limpia el error de ese campo si
// lo había. Los errores se limpian al editar, no se revalida hasta Submit.
func (f *FormController[D]) SetField(field string, apply func(draft *D)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormClosed {
		return
	}
	apply(&f.draft)
	delete(f.errors, field)
}

// Validate evalúa el borrador actual sin efectos: borrador -> errores por
// campo. Mapa vacío cuando el borrador es válido.
func (f *FormController[D]) Validate() map[string]string {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()
	return f.desc.Validate(draft)
}

// Submit valida y envía. Con errores de validación los almacena y el
// formulario permanece abierto sin tocar la red. En éxito cierra, notifica y
// pide a la lista dueña que se refresque. En fallo remoto el formulario
// sigue abierto con el borrador intacto y se notifica el mensaje del
// servidor (o el fallback del tipo).
func (f *FormController[D]) Submit(ctx context.Context) error {
	f.mu.Lock()
	openState := f.state
	if openState != FormOpenForCreate && openState != FormOpenForEdit {
		f.mu.Unlock()
		return domain.ErrFormClosed
	}

	errs := f.desc.Validate(f.draft)
	if len(errs) > 0 {
		f.errors = errs
		f.mu.Unlock()
		return domain.ErrValidation
	}

	f.state = FormSubmitting
	draft := f.draft
	f.mu.Unlock()

	var err error
	var okMsg string
	if openState == FormOpenForCreate {
		err = f.desc.Create(ctx, draft)
		okMsg = f.desc.CreatedMsg
	} else {
		err = f.desc.Update(ctx, draft)
		okMsg = f.desc.UpdatedMsg
	}

	f.mu.Lock()
	if err != nil {
		// el borrador se conserva: el usuario puede reintentar sin reescribir
		f.state = openState
		f.mu.Unlock()
		f.log.Warn().Err(err).Str("form", f.desc.Name).Msg("envío fallido")
		f.notifier.Error("Error", domain.MessageOr(err, f.desc.FailMsg))
		return err
	}
	f.state = FormClosed
	f.errors = map[string]string{}
	f.mu.Unlock()

	f.notifier.Success("Éxito", okMsg)
	if f.owner != nil {
		f.owner.Refresh(ctx)
	}
	return nil
}

// Cancel descarta el borrador sin fusionarlo y cierra el formulario.
func (f *FormController[D]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero D
	f.draft = zero
	f.errors = map[string]string{}
	f.state = FormClosed
}

// Draft devuelve una copia del borrador actual.
func (f *FormController[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors devuelve una copia del mapeo campo -> mensaje de error.
func (f *FormController[D]) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// State estado actual del formulario.
func (f *FormController[D]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
