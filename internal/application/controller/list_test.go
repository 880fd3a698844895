package controller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeGateway implementa ports.EntityGateway[entity.Category] con respuestas
// programables y registro de las páginas pedidas.
type fakeGateway struct {
	mu         sync.Mutex
	pagesAsked []int
	items      []entity.Category
	totalPages int
	err        error
	// onList permite sincronizar cargas concurrentes; puede ser nil.
	onList func(page int) (ports.Page[entity.Category], error)
}

func (g *fakeGateway) List(ctx context.Context, page, size int) (ports.Page[entity.Category], error) {
	g.mu.Lock()
	g.pagesAsked = append(g.pagesAsked, page)
	onList := g.onList
	g.mu.Unlock()

	if onList != nil {
		return onList(page)
	}
	if g.err != nil {
		return ports.Page[entity.Category]{}, g.err
	}
	return ports.Page[entity.Category]{Items: g.items, TotalPages: g.totalPages}, nil
}

func (g *fakeGateway) Get(ctx context.Context, id int64) (entity.Category, error) {
	return entity.Category{}, errors.New("no implementado")
}

func (g *fakeGateway) Create(ctx context.Context, c entity.Category) (entity.Category, error) {
	return c, nil
}

func (g *fakeGateway) Update(ctx context.Context, c entity.Category) (entity.Category, error) {
	return c, nil
}

func (g *fakeGateway) Delete(ctx context.Context, id int64) error { return nil }

func (g *fakeGateway) asked() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]int, len(g.pagesAsked))
	copy(out, g.pagesAsked)
	return out
}

func newCategoryList(gw *fakeGateway) *controller.ListController[entity.Category] {
	return controller.NewListController(controller.CategoryList(), gw, 10, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga y paginación
// ──────────────────────────────────────────────────────────────────────────────

// La vista pagina desde 1 pero el backend usa índice cero: Load(1) debe
// pedir la página 0 al gateway.
func TestListController_Conversion1BasedAIndiceCero(t *testing.T) {
	gw := &fakeGateway{items: []entity.Category{{ID: 1, Name: "Redes"}}, totalPages: 3}
	lc := newCategoryList(gw)

	lc.Load(context.Background(), 1)

	require.Equal(t, []int{0}, gw.asked(), "la página 1 de la vista es la 0 del backend")
	assert.Equal(t, controller.ListLoaded, lc.State())
	assert.Equal(t, 3, lc.TotalPages())
	assert.Len(t, lc.Items(), 1)
}

func TestListController_ChangePageCargaLaPaginaPedida(t *testing.T) {
	gw := &fakeGateway{items: []entity.Category{{ID: 7, Name: "Software"}}, totalPages: 5}
	lc := newCategoryList(gw)

	lc.ChangePage(context.Background(), 3)

	assert.Equal(t, 3, lc.CurrentPage())
	assert.Equal(t, []int{2}, gw.asked())
}

// Si el servidor no reporta totalPages (respuesta como arreglo plano), el
// total queda en 1.
func TestListController_TotalPagesMinimoUno(t *testing.T) {
	gw := &fakeGateway{items: []entity.Category{{ID: 1, Name: "Redes"}}, totalPages: 0}
	lc := newCategoryList(gw)

	lc.Load(context.Background(), 1)

	assert.Equal(t, 1, lc.TotalPages())
}

func TestListController_RefreshRecargaLaPaginaActual(t *testing.T) {
	gw := &fakeGateway{items: []entity.Category{{ID: 1, Name: "Redes"}}, totalPages: 9}
	lc := newCategoryList(gw)

	lc.ChangePage(context.Background(), 4)
	lc.Refresh(context.Background())

	assert.Equal(t, []int{3, 3}, gw.asked(), "Refresh repite la página vigente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Degradado a datos de muestra
// ──────────────────────────────────────────────────────────────────────────────

// Ante un fallo remoto la vista no se rompe: muestra los datos de muestra
// del tipo, resetea el total a 1 y el estado degradado queda observable.
func TestListController_FalloRemotoDegradaAMuestra(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	lc := newCategoryList(gw)

	lc.Load(context.Background(), 1)

	assert.Equal(t, controller.ListDegraded, lc.State())
	assert.True(t, lc.Degraded())
	assert.Equal(t, 1, lc.TotalPages())
	require.NotEmpty(t, lc.Items(), "los datos de muestra reemplazan a la página")
	assert.Equal(t, "Electrónicos", lc.Items()[0].Name)
}

// Una carga exitosa posterior saca al controlador del degradado.
func TestListController_RecuperacionTrasDegradado(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	lc := newCategoryList(gw)

	lc.Load(context.Background(), 1)
	require.True(t, lc.Degraded())

	gw.err = nil
	gw.items = []entity.Category{{ID: 10, Name: "Cables"}}
	gw.totalPages = 2
	lc.Refresh(context.Background())

	assert.Equal(t, controller.ListLoaded, lc.State())
	assert.Equal(t, 2, lc.TotalPages())
	assert.Equal(t, "Cables", lc.Items()[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda local
// ──────────────────────────────────────────────────────────────────────────────

// Cambiar el término de búsqueda nunca toca la red: filtra localmente la
// última página cargada.
func TestListController_BusquedaEsLocal(t *testing.T) {
	gw := &fakeGateway{
		items: []entity.Category{
			{ID: 1, Name: "Electrónicos"},
			{ID: 2, Name: "Accesorios"},
			{ID: 3, Name: "Periféricos"},
		},
		totalPages: 1,
	}
	lc := newCategoryList(gw)
	lc.Load(context.Background(), 1)
	llamadas := len(gw.asked())

	lc.SetSearchTerm("acce")

	assert.Len(t, gw.asked(), llamadas, "SetSearchTerm no dispara llamadas de red")
	visibles := lc.Visible()
	require.Len(t, visibles, 1)
	assert.Equal(t, "Accesorios", visibles[0].Name)
}

// El filtrado ignora mayúsculas y acentos: "electronicos" encuentra
// "Electrónicos".
func TestListController_BusquedaInsensibleAAcentos(t *testing.T) {
	gw := &fakeGateway{
		items: []entity.Category{
			{ID: 1, Name: "Electrónicos"},
			{ID: 2, Name: "Redes"},
		},
		totalPages: 1,
	}
	lc := newCategoryList(gw)
	lc.Load(context.Background(), 1)

	lc.SetSearchTerm("ELECTRONICOS")

	visibles := lc.Visible()
	require.Len(t, visibles, 1)
	assert.Equal(t, "Electrónicos", visibles[0].Name)
}

func TestListController_TerminoVacioMuestraTodo(t *testing.T) {
	gw := &fakeGateway{
		items:      []entity.Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		totalPages: 1,
	}
	lc := newCategoryList(gw)
	lc.Load(context.Background(), 1)

	lc.SetSearchTerm("")

	assert.Len(t, lc.Visible(), 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cargas solapadas
// ──────────────────────────────────────────────────────────────────────────────

// Con dos cargas en vuelo gana la última en empezar: la respuesta de la
// primera, aunque llegue después, se descarta por número de secuencia.
func TestListController_GanaLaUltimaRespuesta(t *testing.T) {
	primeraPuedeResponder := make(chan struct{})
	gw := &fakeGateway{}
	gw.onList = func(page int) (ports.Page[entity.Category], error) {
		if page == 0 {
			// la primera carga queda retenida hasta que la segunda termine
			<-primeraPuedeResponder
			return ports.Page[entity.Category]{
				Items:      []entity.Category{{ID: 1, Name: "vieja"}},
				TotalPages: 1,
			}, nil
		}
		return ports.Page[entity.Category]{
			Items:      []entity.Category{{ID: 2, Name: "nueva"}},
			TotalPages: 2,
		}, nil
	}
	lc := newCategoryList(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		lc.Load(context.Background(), 1) // quedará obsoleta
	}()

	// espera a que la primera carga esté en vuelo antes de lanzar la segunda
	require.Eventually(t, func() bool { return len(gw.asked()) == 1 }, 2*time.Second, time.Millisecond)

	lc.Load(context.Background(), 2)
	close(primeraPuedeResponder)
	wg.Wait()

	require.Len(t, lc.Items(), 1)
	assert.Equal(t, "nueva", lc.Items()[0].Name, "la respuesta obsoleta no debe pisar a la nueva")
	assert.Equal(t, 2, lc.TotalPages())
	assert.Equal(t, controller.ListLoaded, lc.State())
}
