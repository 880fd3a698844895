package controller_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeNotifier registra las notificaciones emitidas, en orden.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []notified
}

type notified struct {
	kind    string
	title   string
	message string
}

func (n *fakeNotifier) record(kind, title, message string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notified{kind, title, message})
	return "id"
}

func (n *fakeNotifier) Success(title, message string) string { return n.record("success", title, message) }
func (n *fakeNotifier) Error(title, message string) string   { return n.record("error", title, message) }
func (n *fakeNotifier) Warning(title, message string) string { return n.record("warning", title, message) }
func (n *fakeNotifier) Info(title, message string) string    { return n.record("info", title, message) }

func (n *fakeNotifier) last() notified {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[len(n.calls)-1]
}

// fakeRefresher cuenta cuántas veces la lista dueña fue refrescada.
type fakeRefresher struct{ count int }

func (r *fakeRefresher) Refresh(ctx context.Context) { r.count++ }

func newCategoryForm(gw *fakeGateway, owner controller.Refresher, n *fakeNotifier) *controller.FormController[entity.Category] {
	return controller.NewFormController(controller.CategoryForm(gw), owner, n, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestFormController_SubmitCerradoEsError(t *testing.T) {
	form := newCategoryForm(&fakeGateway{}, nil, &fakeNotifier{})

	err := form.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrFormClosed)
}

func TestFormController_OpenSinEntidadUsaBorradorPorDefecto(t *testing.T) {
	form := newCategoryForm(&fakeGateway{}, nil, &fakeNotifier{})

	form.Open(nil)

	assert.Equal(t, controller.FormOpenForCreate, form.State())
	assert.Zero(t, form.Draft().ID)
}

func TestFormController_OpenConEntidadSiembraBorrador(t *testing.T) {
	form := newCategoryForm(&fakeGateway{}, nil, &fakeNotifier{})
	existente := entity.Category{ID: 9, Name: "Redes", Active: true}

	form.Open(&existente)

	assert.Equal(t, controller.FormOpenForEdit, form.State())
	assert.Equal(t, "Redes", form.Draft().Name)
}

// Cancel descarta el borrador: reabrir no debe rescatar nada de lo escrito.
func TestFormController_CancelDescartaElBorrador(t *testing.T) {
	form := newCategoryForm(&fakeGateway{}, nil, &fakeNotifier{})
	form.Open(nil)
	form.SetField("name", func(c *entity.Category) { c.Name = "Borrador perdido" })

	form.Cancel()
	assert.Equal(t, controller.FormClosed, form.State())

	form.Open(nil)
	assert.Empty(t, form.Draft().Name, "el borrador cancelado no se fusiona al reabrir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

// Un envío inválido no toca la red: los errores quedan por campo y el
// formulario sigue abierto.
func TestFormController_SubmitInvalidoNoTocaLaRed(t *testing.T) {
	gw := &fakeGateway{}
	form := newCategoryForm(gw, nil, &fakeNotifier{})
	form.Open(nil)

	err := form.Submit(context.Background())

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Requerido", form.Errors()["name"])
	assert.Equal(t, controller.FormOpenForCreate, form.State())
	assert.Empty(t, gw.asked(), "la validación fallida no llega al gateway")
}

// Editar un campo limpia su error inmediatamente; no se revalida hasta el
// siguiente Submit.
func TestFormController_EditarCampoLimpiaSuError(t *testing.T) {
	form := newCategoryForm(&fakeGateway{}, nil, &fakeNotifier{})
	form.Open(nil)
	_ = form.Submit(context.Background())
	require.Contains(t, form.Errors(), "name")

	form.SetField("name", func(c *entity.Category) { c.Name = "x" })

	assert.NotContains(t, form.Errors(), "name", "el error del campo editado desaparece en caliente")
}

// Validate es puro: evalúa sin mutar el estado del formulario.
func TestFormController_ValidateNoTieneEfectos(t *testing.T) {
	form := newCategoryForm(&fakeGateway{}, nil, &fakeNotifier{})
	form.Open(nil)

	errs := form.Validate()

	assert.Equal(t, "Requerido", errs["name"])
	assert.Empty(t, form.Errors(), "Validate no almacena errores")
	assert.Equal(t, controller.FormOpenForCreate, form.State())
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío
// ──────────────────────────────────────────────────────────────────────────────

func TestFormController_AltaExitosaCierraNotificaYRefresca(t *testing.T) {
	gw := &fakeGateway{}
	owner := &fakeRefresher{}
	notifier := &fakeNotifier{}
	form := newCategoryForm(gw, owner, notifier)
	form.Open(nil)
	form.SetField("name", func(c *entity.Category) { c.Name = "Monitores" })

	err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, controller.FormClosed, form.State())
	assert.Equal(t, 1, owner.count, "la lista dueña se refresca tras el alta")
	ultima := notifier.last()
	assert.Equal(t, "success", ultima.kind)
	assert.Equal(t, "Categoría creada correctamente", ultima.message)
}

func TestFormController_EdicionExitosaNotificaActualizado(t *testing.T) {
	notifier := &fakeNotifier{}
	form := newCategoryForm(&fakeGateway{}, &fakeRefresher{}, notifier)
	existente := entity.Category{ID: 4, Name: "Redes"}
	form.Open(&existente)

	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, "Categoría actualizada correctamente", notifier.last().message)
}

// Ante un fallo remoto el formulario sigue abierto con el borrador intacto
// y se notifica el mensaje normalizado del servidor.
func TestFormController_FalloRemotoConservaBorrador(t *testing.T) {
	notifier := &fakeNotifier{}
	form := controller.NewFormController(controller.FormDescriptor[entity.Category]{
		Name:         "categoría",
		DefaultDraft: func() entity.Category { return entity.Category{} },
		Validate:     func(entity.Category) map[string]string { return nil },
		Create: func(ctx context.Context, c entity.Category) error {
			return &domain.RemoteError{Status: 409, Message: "La categoría ya existe"}
		},
		FailMsg: "Error",
	}, nil, notifier, nil)
	form.Open(nil)
	form.SetField("name", func(c *entity.Category) { c.Name = "Duplicada" })

	err := form.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, controller.FormOpenForCreate, form.State(), "el formulario no se cierra en fallo")
	assert.Equal(t, "Duplicada", form.Draft().Name, "el borrador se conserva para reintentar")
	ultima := notifier.last()
	assert.Equal(t, "error", ultima.kind)
	assert.Equal(t, "La categoría ya existe", ultima.message)
}

// Cuando el servidor no manda mensaje se usa el fallback del tipo.
func TestFormController_FalloSinMensajeUsaFallback(t *testing.T) {
	notifier := &fakeNotifier{}
	form := controller.NewFormController(controller.FormDescriptor[entity.Category]{
		Name:         "categoría",
		DefaultDraft: func() entity.Category { return entity.Category{} },
		Validate:     func(entity.Category) map[string]string { return nil },
		Create: func(ctx context.Context, c entity.Category) error {
			return errors.New("dial tcp: connection refused")
		},
		FailMsg: "Error al guardar la categoría",
	}, nil, notifier, nil)
	form.Open(nil)

	_ = form.Submit(context.Background())

	assert.Equal(t, "Error al guardar la categoría", notifier.last().message)
}
