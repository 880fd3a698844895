package mockapi

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// memoryStore es el almacén en memoria del backend simulado. Sin base de
// datos a propósito: existe para desarrollo local y tests end-to-end.
type memoryStore struct {
	mu          sync.Mutex
	categories  []entity.Category
	inventories []entity.Inventory
	products    []entity.Product
	users       []entity.User
	roles       []entity.Role
	passwords   map[int64][]byte // userID -> hash bcrypt
	nextID      int64
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{
		passwords: make(map[int64][]byte),
		nextID:    1000,
	}
	s.seed()
	return s
}

// seed datos iniciales mínimos: roles de referencia, un admin y un catálogo
// pequeño con el que el cliente tiene algo que listar.
func (s *memoryStore) seed() {
	s.roles = []entity.Role{
		{ID: 1, Name: "ROLE_ADMIN", Active: true},
		{ID: 2, Name: "ROLE_USER", Active: true},
	}

	admin := entity.User{
		ID:       1,
		Name:     "Admin",
		Lastname: "Local",
		Username: "admin",
		Email:    "admin@local.test",
		Birthday: "1990-01-01",
		Active:   true,
		Roles:    []entity.Role{s.roles[0]},
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("Admin123#"), bcrypt.DefaultCost)
	s.users = []entity.User{admin}
	s.passwords[admin.ID] = hash

	s.categories = []entity.Category{
		{ID: 1, Name: "Electrónicos", Active: true, QuantityProducts: 2},
		{ID: 2, Name: "Accesorios", Active: true, QuantityProducts: 1},
		{ID: 3, Name: "Software", Active: false},
	}
	s.inventories = []entity.Inventory{
		{ID: 1, Name: "Almacén Principal", Description: "Almacén central", Location: "Edificio A", Active: true, Quantity: 45, CreateDate: "2024-01-01"},
		{ID: 2, Name: "Bodega Sur", Description: "Productos terminados", Location: "Zona Industrial Sur", Active: true, Quantity: 30, CreateDate: "2024-01-05"},
	}
	inv := s.inventories[0]
	s.products = []entity.Product{
		{ID: 1, Name: "Laptop Dell XPS", Description: "Alto rendimiento", Quantity: 15, SerialNumber: "DELL-001", Active: true, Categories: []entity.Category{s.categories[0]}, Inventory: &inv, CreatedByUserID: 1, CreateDate: "2024-01-15"},
		{ID: 2, Name: "Mouse Logitech", Description: "Inalámbrico", Quantity: 30, SerialNumber: "LOG-004", Active: true, Categories: []entity.Category{s.categories[1]}, Inventory: &inv, CreatedByUserID: 1, CreateDate: "2024-01-12"},
	}
}

// id asigna el siguiente id para un recurso creado.
func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

// paginate corta un slice con paginación de índice cero y reporta totalPages
// (mínimo 1).
func paginate[T any](items []T, page, size int) ([]T, int) {
	if size <= 0 {
		size = 10
	}
	total := (len(items) + size - 1) / size
	if total < 1 {
		total = 1
	}
	start := page * size
	if start >= len(items) {
		return []T{}, total
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, total
}

// hashPassword hash bcrypt con el costo por defecto.
func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// findByID busca por id en un slice de entidades.
func findByID[T entity.Identifiable](items []T, id int64) (int, bool) {
	for i, it := range items {
		if it.EntityID() == id {
			return i, true
		}
	}
	return -1, false
}
