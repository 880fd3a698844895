package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// pagePayload es la forma paginada que puede tomar el payload de un listado:
// o bien un arreglo pelado, o bien un objeto con el arreglo bajo data (o
// content) y totalPages.
type pagePayload[T any] struct {
	Data       []T `json:"data"`
	Content    []T `json:"content"`
	TotalPages int `json:"totalPages"`
}

// decodePage tolera las dos formas de listado del backend.
func decodePage[T any](env envelope) (ports.Page[T], error) {
	page := ports.Page[T]{TotalPages: 1}
	if len(env.Data) == 0 {
		return page, nil
	}

	var bare []T
	if err := json.Unmarshal(env.Data, &bare); err == nil {
		page.Items = bare
		if env.TotalPages > 0 {
			page.TotalPages = env.TotalPages
		}
		return page, nil
	}

	var paged pagePayload[T]
	if err := json.Unmarshal(env.Data, &paged); err != nil {
		return page, fmt.Errorf("decodificar página: %w", err)
	}
	page.Items = paged.Data
	if page.Items == nil {
		page.Items = paged.Content
	}
	if paged.TotalPages > 0 {
		page.TotalPages = paged.TotalPages
	}
	return page, nil
}

// restGateway implementa ports.EntityGateway contra un recurso REST con la
// convención uniforme del backend: listado paginado con índice cero, alta
// con POST a la colección y edición con PUT a la colección (el id viaja en
// el cuerpo).
type restGateway[T entity.Identifiable] struct {
	c             *Client
	path          string
	doubleWrapped bool // el recurso de inventarios envuelve data dos veces
}

func (g *restGateway[T]) List(ctx context.Context, page, size int) (ports.Page[T], error) {
	env, err := g.c.getData(ctx, fmt.Sprintf("%s?page=%d&size=%d", g.path, page, size))
	if err != nil {
		return ports.Page[T]{}, err
	}
	return decodePage[T](env)
}

func (g *restGateway[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	env, err := g.c.getData(ctx, fmt.Sprintf("%s/%d", g.path, id))
	if err != nil {
		return out, err
	}
	err = unwrap(env.Data, g.doubleWrapped, &out)
	return out, err
}

func (g *restGateway[T]) Create(ctx context.Context, item T) (T, error) {
	return g.send(ctx, http.MethodPost, g.path, item)
}

func (g *restGateway[T]) Update(ctx context.Context, item T) (T, error) {
	return g.send(ctx, http.MethodPut, g.path, item)
}

func (g *restGateway[T]) send(ctx context.Context, method, path string, body any) (T, error) {
	var out T
	var env envelope
	if err := g.c.do(ctx, method, path, body, &env); err != nil {
		return out, err
	}
	err := unwrap(env.Data, g.doubleWrapped, &out)
	return out, err
}

func (g *restGateway[T]) Delete(ctx context.Context, id int64) error {
	return g.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", g.path, id), nil, nil)
}

func (g *restGateway[T]) ToggleActive(ctx context.Context, id int64) error {
	return g.c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/toggle-active", g.path, id), nil, nil)
}

// CategoryGateway recurso /category.
type CategoryGateway struct {
	restGateway[entity.Category]
}

// NewCategoryGateway construye el gateway de categorías.
func NewCategoryGateway(c *Client) *CategoryGateway {
	return &CategoryGateway{restGateway[entity.Category]{c: c, path: "/category"}}
}

// Active devuelve solo las categorías activas.
func (g *CategoryGateway) Active(ctx context.Context) ([]entity.Category, error) {
	env, err := g.c.getData(ctx, "/category/active")
	if err != nil {
		return nil, err
	}
	var out []entity.Category
	err = unwrap(env.Data, false, &out)
	return out, err
}

// InventoryGateway recurso /inventory. Sus respuestas de detalle vienen con
// el payload envuelto dos veces.
type InventoryGateway struct {
	restGateway[entity.Inventory]
}

// NewInventoryGateway construye el gateway de inventarios.
func NewInventoryGateway(c *Client) *InventoryGateway {
	return &InventoryGateway{restGateway[entity.Inventory]{c: c, path: "/inventory", doubleWrapped: true}}
}

// InventoryStats estadísticas agregadas de un inventario.
type InventoryStats struct {
	TotalProducts int `json:"totalProducts"`
	TotalQuantity int `json:"totalQuantity"`
}

// Stats devuelve las estadísticas del inventario.
func (g *InventoryGateway) Stats(ctx context.Context, id int64) (InventoryStats, error) {
	var out InventoryStats
	env, err := g.c.getData(ctx, fmt.Sprintf("/inventory/%d/stats", id))
	if err != nil {
		return out, err
	}
	err = unwrap(env.Data, true, &out)
	return out, err
}

// Products devuelve los productos almacenados en el inventario.
func (g *InventoryGateway) Products(ctx context.Context, id int64) ([]entity.Product, error) {
	env, err := g.c.getData(ctx, fmt.Sprintf("/inventory/%d/products", id))
	if err != nil {
		return nil, err
	}
	var out []entity.Product
	err = unwrap(env.Data, true, &out)
	return out, err
}

// ProductGateway recurso /product.
type ProductGateway struct {
	restGateway[entity.Product]
}

// NewProductGateway construye el gateway de productos.
func NewProductGateway(c *Client) *ProductGateway {
	return &ProductGateway{restGateway[entity.Product]{c: c, path: "/product"}}
}

// Search búsqueda remota por texto libre (GET /product/search?q=).
func (g *ProductGateway) Search(ctx context.Context, query string) ([]entity.Product, error) {
	env, err := g.c.getData(ctx, "/product/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	var out []entity.Product
	err = unwrap(env.Data, false, &out)
	return out, err
}

// ByInventory productos de un inventario.
func (g *ProductGateway) ByInventory(ctx context.Context, inventoryID int64) ([]entity.Product, error) {
	return g.listUnder(ctx, fmt.Sprintf("/product/inventory/%d", inventoryID))
}

// ByCategory productos de una categoría.
func (g *ProductGateway) ByCategory(ctx context.Context, categoryID int64) ([]entity.Product, error) {
	return g.listUnder(ctx, fmt.Sprintf("/product/category/%d", categoryID))
}

func (g *ProductGateway) listUnder(ctx context.Context, path string) ([]entity.Product, error) {
	env, err := g.c.getData(ctx, path)
	if err != nil {
		return nil, err
	}
	var out []entity.Product
	err = unwrap(env.Data, false, &out)
	return out, err
}

// userPayload es el cuerpo de alta/edición de usuarios: la entidad más la
// contraseña cuando se está fijando.
type userPayload struct {
	entity.User
	Password       string `json:"password,omitempty"`
	PasswordRepeat string `json:"passwordRepeat,omitempty"`
}

// UserGateway recurso /user. Implementa además controller.UserGateway para
// los flujos con contraseña.
type UserGateway struct {
	restGateway[entity.User]
}

// NewUserGateway construye el gateway de usuarios.
func NewUserGateway(c *Client) *UserGateway {
	return &UserGateway{restGateway[entity.User]{c: c, path: "/user"}}
}

// CreateWithPassword alta de usuario con contraseña.
func (g *UserGateway) CreateWithPassword(ctx context.Context, user entity.User, password, confirm string) (entity.User, error) {
	var out entity.User
	var env envelope
	body := userPayload{User: user, Password: password, PasswordRepeat: confirm}
	if err := g.c.do(ctx, http.MethodPost, "/user", body, &env); err != nil {
		return out, err
	}
	err := unwrap(env.Data, false, &out)
	return out, err
}

// UpdateWithPassword edición de usuario; password vacío = sin cambio de
// contraseña.
func (g *UserGateway) UpdateWithPassword(ctx context.Context, user entity.User, password, confirm string) (entity.User, error) {
	var out entity.User
	var env envelope
	body := userPayload{User: user, Password: password, PasswordRepeat: confirm}
	if err := g.c.do(ctx, http.MethodPut, "/user", body, &env); err != nil {
		return out, err
	}
	err := unwrap(env.Data, false, &out)
	return out, err
}

// AssignRoles reemplaza los roles del usuario (PUT /user/{id}/roles).
func (g *UserGateway) AssignRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	body := map[string][]int64{"roleIds": roleIDs}
	return g.c.do(ctx, http.MethodPut, fmt.Sprintf("/user/%d/roles", userID), body, nil)
}

// Profile devuelve el perfil del usuario autenticado.
func (g *UserGateway) Profile(ctx context.Context) (entity.User, error) {
	var out entity.User
	env, err := g.c.getData(ctx, "/user/profile")
	if err != nil {
		return out, err
	}
	err = unwrap(env.Data, false, &out)
	return out, err
}

// UpdateProfile actualiza el perfil propio.
func (g *UserGateway) UpdateProfile(ctx context.Context, user entity.User) (entity.User, error) {
	var out entity.User
	var env envelope
	if err := g.c.do(ctx, http.MethodPut, "/user/profile", user, &env); err != nil {
		return out, err
	}
	err := unwrap(env.Data, false, &out)
	return out, err
}

// RoleGateway recurso /role: solo listado (dato de referencia).
type RoleGateway struct {
	c *Client
}

// NewRoleGateway construye el gateway de roles.
func NewRoleGateway(c *Client) *RoleGateway {
	return &RoleGateway{c: c}
}

// List devuelve una página de roles.
func (g *RoleGateway) List(ctx context.Context, page, size int) (ports.Page[entity.Role], error) {
	env, err := g.c.getData(ctx, fmt.Sprintf("/role?page=%d&size=%d", page, size))
	if err != nil {
		return ports.Page[entity.Role]{}, err
	}
	return decodePage[entity.Role](env)
}
