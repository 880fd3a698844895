package controller

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
	"github.com/jhoicas/inventario-client/pkg/logger"
)

// ListState estado del controlador de listado.
type ListState int

const (
	// ListIdle aún no se ha pedido ninguna página.
	ListIdle ListState = iota
	// ListLoading hay una carga en vuelo.
	ListLoading
	// ListLoaded la página mostrada viene del servidor.
	ListLoaded
	// ListDegraded la última carga falló y se muestran los datos de muestra.
	// Es una política explícita de degradado a demo, no una sustitución
	// silenciosa: el estado es observable y la presentación decide si avisa.
	ListDegraded
)

// ListDescriptor configura el controlador de listado para un tipo de entidad.
type ListDescriptor[T entity.Identifiable] struct {
	Name       string           // nombre legible en singular ("categoría")
	SearchText func(T) []string // campos sobre los que filtra la búsqueda local
	Fallback   func() []T       // datos de muestra ante fallo remoto
}

// ListController mantiene una vista paginada y buscable de un tipo de
// entidad, sincronizada con el gateway remoto y con degradado controlado.
//
// La paginación es 1-based de cara a la vista; el backend usa índice cero y
// la conversión ocurre aquí. Las cargas solapadas no se bloquean: gana la
// última respuesta en llegar (las demás se descartan por número de secuencia).
type ListController[T entity.Identifiable] struct {
	mu          sync.Mutex
	desc        ListDescriptor[T]
	gateway     ports.EntityGateway[T]
	pageSize    int
	items       []T
	currentPage int
	totalPages  int
	searchTerm  string
	state       ListState
	seq         uint64
	log         *logger.Logger
}

// NewListController construye el controlador en estado Idle, página 1.
func NewListController[T entity.Identifiable](desc ListDescriptor[T], gateway ports.EntityGateway[T], pageSize int, log *logger.Logger) *ListController[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ListController[T]{
		desc:        desc,
		gateway:     gateway,
		pageSize:    pageSize,
		currentPage: 1,
		totalPages:  1,
		state:       ListIdle,
		log:         log,
	}
}

// Load pide al gateway la página indicada (1-based aquí, índice cero en el
// backend). En éxito reemplaza los items y actualiza totalPages (1 si el
// servidor no lo reporta). En fallo degrada a los datos de muestra del tipo
// y resetea totalPages a 1; la vista sigue operativa.
func (l *ListController[T]) Load(ctx context.Context, page int) {
	l.mu.Lock()
	l.state = ListLoading
	l.seq++
	mySeq := l.seq
	size := l.pageSize
	l.mu.Unlock()

	pageResult, err := l.gateway.List(ctx, page-1, size)

	l.mu.Lock()
	defer l.mu.Unlock()
	if mySeq != l.seq {
		// llegó una respuesta más nueva mientras tanto; esta se descarta
		l.log.Debug().Int("page", page).Msg("respuesta de listado obsoleta descartada")
		return
	}

	if err != nil {
		l.log.Warn().Err(err).Str("entity", l.desc.Name).Msg("fallo al listar; usando datos de muestra")
		l.items = l.desc.Fallback()
		l.totalPages = 1
		l.state = ListDegraded
		return
	}

	l.items = pageResult.Items
	l.totalPages = pageResult.TotalPages
	if l.totalPages < 1 {
		l.totalPages = 1
	}
	l.state = ListLoaded
}

// ChangePage fija la página actual y dispara su carga. No recorta n al rango
// [1, totalPages]: evitar valores fuera de rango es responsabilidad del
// llamador.
func (l *ListController[T]) ChangePage(ctx context.Context, n int) {
	l.mu.Lock()
	l.currentPage = n
	l.mu.Unlock()
	l.Load(ctx, n)
}

// Refresh recarga la página actual. Se usa tras cada creación o edición
// exitosa.
func (l *ListController[T]) Refresh(ctx context.Context) {
	l.mu.Lock()
	page := l.currentPage
	l.mu.Unlock()
	l.Load(ctx, page)
}

// SetSearchTerm actualiza el término de búsqueda. Nunca dispara una llamada
// de red: el filtrado es puramente local sobre la última página cargada.
func (l *ListController[T]) SetSearchTerm(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.searchTerm = term
}

// Visible devuelve los items filtrados por el término de búsqueda actual
// (substring, insensible a mayúsculas y acentos, sobre los campos que
// declara el descriptor).
func (l *ListController[T]) Visible() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, 0, len(l.items))
	for _, it := range l.items {
		if matchesSearch(l.searchTerm, l.desc.SearchText(it)) {
			out = append(out, it)
		}
	}
	return out
}

// Items devuelve la última página cargada sin filtrar.
func (l *ListController[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// CurrentPage página actual (1-based).
func (l *ListController[T]) CurrentPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentPage
}

// TotalPages total de páginas reportado por el servidor (mínimo 1).
func (l *ListController[T]) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages
}

// SearchTerm término de búsqueda vigente.
func (l *ListController[T]) SearchTerm() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.searchTerm
}

// State estado actual del listado.
func (l *ListController[T]) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Degraded reporta si la vista muestra datos de muestra por un fallo remoto.
func (l *ListController[T]) Degraded() bool {
	return l.State() == ListDegraded
}
