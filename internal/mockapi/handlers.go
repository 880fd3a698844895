package mockapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

func pageParams(c *fiber.Ctx) (page, size int) {
	return c.QueryInt("page", 0), c.QueryInt("size", 10)
}

func idParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	return int64(id), err
}

// ── Category ────────────────────────────────────────────────────────────────

func (s *Server) listCategories(c *fiber.Ctx) error {
	page, size := pageParams(c)
	s.store.mu.Lock()
	items, total := paginate(s.store.categories, page, size)
	s.store.mu.Unlock()
	return pageJSON(c, items, total)
}

func (s *Server) activeCategories(c *fiber.Ctx) error {
	s.store.mu.Lock()
	out := []entity.Category{}
	for _, cat := range s.store.categories {
		if cat.Active {
			out = append(out, cat)
		}
	}
	s.store.mu.Unlock()
	return dataJSON(c, fiber.StatusOK, out)
}

func (s *Server) getCategory(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.categories, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Categoría no encontrada")
	}
	return dataJSON(c, fiber.StatusOK, s.store.categories[i])
}

func (s *Server) createCategory(c *fiber.Ctx) error {
	var in entity.Category
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if strings.TrimSpace(in.Name) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "El nombre es requerido")
	}
	s.store.mu.Lock()
	in.ID = s.store.id()
	s.store.categories = append(s.store.categories, in)
	s.store.mu.Unlock()
	return dataJSON(c, fiber.StatusCreated, in)
}

func (s *Server) updateCategory(c *fiber.Ctx) error {
	var in entity.Category
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.categories, in.ID)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Categoría no encontrada")
	}
	s.store.categories[i] = in
	return dataJSON(c, fiber.StatusOK, in)
}

func (s *Server) deleteCategory(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.categories, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Categoría no encontrada")
	}
	s.store.categories = append(s.store.categories[:i], s.store.categories[i+1:]...)
	return dataJSON(c, fiber.StatusOK, fiber.Map{"ok": true})
}

func (s *Server) toggleCategory(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.categories, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Categoría no encontrada")
	}
	s.store.categories[i].Active = !s.store.categories[i].Active
	return dataJSON(c, fiber.StatusOK, s.store.categories[i])
}

// ── Inventory ───────────────────────────────────────────────────────────────
// Los detalles de inventario responden con el payload envuelto dos veces,
// reproduciendo la peculiaridad del backend real.

func (s *Server) listInventories(c *fiber.Ctx) error {
	page, size := pageParams(c)
	s.store.mu.Lock()
	items, total := paginate(s.store.inventories, page, size)
	s.store.mu.Unlock()
	return pageJSON(c, items, total)
}

func (s *Server) getInventory(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.inventories, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Inventario no encontrado")
	}
	return doubleJSON(c, fiber.StatusOK, s.store.inventories[i])
}

func (s *Server) createInventory(c *fiber.Ctx) error {
	var in entity.Inventory
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "nombre y ubicación son requeridos")
	}
	s.store.mu.Lock()
	in.ID = s.store.id()
	s.store.inventories = append(s.store.inventories, in)
	s.store.mu.Unlock()
	return doubleJSON(c, fiber.StatusCreated, in)
}

func (s *Server) updateInventory(c *fiber.Ctx) error {
	var in entity.Inventory
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.inventories, in.ID)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Inventario no encontrado")
	}
	s.store.inventories[i] = in
	return doubleJSON(c, fiber.StatusOK, in)
}

func (s *Server) deleteInventory(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.inventories, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Inventario no encontrado")
	}
	s.store.inventories = append(s.store.inventories[:i], s.store.inventories[i+1:]...)
	return doubleJSON(c, fiber.StatusOK, fiber.Map{"ok": true})
}

func (s *Server) inventoryStats(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := findByID(s.store.inventories, id); !ok {
		return errorJSON(c, fiber.StatusNotFound, "Inventario no encontrado")
	}
	products, quantity := 0, 0
	for _, p := range s.store.products {
		if p.Inventory != nil && p.Inventory.ID == id {
			products++
			quantity += p.Quantity
		}
	}
	return doubleJSON(c, fiber.StatusOK, fiber.Map{
		"totalProducts": products,
		"totalQuantity": quantity,
	})
}

func (s *Server) inventoryProducts(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := []entity.Product{}
	for _, p := range s.store.products {
		if p.Inventory != nil && p.Inventory.ID == id {
			out = append(out, p)
		}
	}
	return doubleJSON(c, fiber.StatusOK, out)
}

// ── Product ─────────────────────────────────────────────────────────────────

func (s *Server) listProducts(c *fiber.Ctx) error {
	page, size := pageParams(c)
	s.store.mu.Lock()
	items, total := paginate(s.store.products, page, size)
	s.store.mu.Unlock()
	return pageJSON(c, items, total)
}

func (s *Server) getProduct(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.products, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	return dataJSON(c, fiber.StatusOK, s.store.products[i])
}

func (s *Server) createProduct(c *fiber.Ctx) error {
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if strings.TrimSpace(in.Name) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "El nombre es requerido")
	}
	if in.Inventory == nil {
		return errorJSON(c, fiber.StatusBadRequest, "El inventario es requerido")
	}
	s.store.mu.Lock()
	in.ID = s.store.id()
	if in.Categories == nil {
		in.Categories = []entity.Category{}
	}
	s.store.products = append(s.store.products, in)
	s.store.mu.Unlock()
	return dataJSON(c, fiber.StatusCreated, in)
}

func (s *Server) updateProduct(c *fiber.Ctx) error {
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.products, in.ID)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	s.store.products[i] = in
	return dataJSON(c, fiber.StatusOK, in)
}

func (s *Server) deleteProduct(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.products, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	s.store.products = append(s.store.products[:i], s.store.products[i+1:]...)
	return dataJSON(c, fiber.StatusOK, fiber.Map{"ok": true})
}

func (s *Server) toggleProduct(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.products, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	s.store.products[i].Active = !s.store.products[i].Active
	return dataJSON(c, fiber.StatusOK, s.store.products[i])
}

func (s *Server) searchProducts(c *fiber.Ctx) error {
	q := strings.ToLower(c.Query("q"))
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := []entity.Product{}
	for _, p := range s.store.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SerialNumber), q) {
			out = append(out, p)
		}
	}
	return dataJSON(c, fiber.StatusOK, out)
}

func (s *Server) productsByInventory(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := []entity.Product{}
	for _, p := range s.store.products {
		if p.Inventory != nil && p.Inventory.ID == id {
			out = append(out, p)
		}
	}
	return dataJSON(c, fiber.StatusOK, out)
}

func (s *Server) productsByCategory(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := []entity.Product{}
	for _, p := range s.store.products {
		if entity.ContainsID(p.Categories, id) {
			out = append(out, p)
		}
	}
	return dataJSON(c, fiber.StatusOK, out)
}

// ── User / Role ─────────────────────────────────────────────────────────────

func (s *Server) listUsers(c *fiber.Ctx) error {
	page, size := pageParams(c)
	s.store.mu.Lock()
	items, total := paginate(s.store.users, page, size)
	s.store.mu.Unlock()
	return pageJSON(c, items, total)
}

func (s *Server) getUser(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.users, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	return dataJSON(c, fiber.StatusOK, s.store.users[i])
}

type userPayload struct {
	entity.User
	Password       string `json:"password"`
	PasswordRepeat string `json:"passwordRepeat"`
}

func (s *Server) createUser(c *fiber.Ctx) error {
	var in userPayload
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if in.Username == "" {
		return errorJSON(c, fiber.StatusBadRequest, "El username es requerido")
	}
	if in.Password != in.PasswordRepeat {
		return errorJSON(c, fiber.StatusBadRequest, "Las contraseñas no coinciden")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, u := range s.store.users {
		if u.Username == in.Username {
			return errorJSON(c, fiber.StatusConflict, "El username ya está registrado")
		}
	}
	user := in.User
	user.ID = s.store.id()
	if user.Roles == nil {
		user.Roles = []entity.Role{}
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return errorJSON(c, fiber.StatusInternalServerError, err.Error())
		}
		s.store.passwords[user.ID] = hash
	}
	s.store.users = append(s.store.users, user)
	return dataJSON(c, fiber.StatusCreated, user)
}

func (s *Server) updateUser(c *fiber.Ctx) error {
	var in userPayload
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.users, in.User.ID)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	if in.Password != "" {
		if in.Password != in.PasswordRepeat {
			return errorJSON(c, fiber.StatusBadRequest, "Las contraseñas no coinciden")
		}
		hash, err := hashPassword(in.Password)
		if err != nil {
			return errorJSON(c, fiber.StatusInternalServerError, err.Error())
		}
		s.store.passwords[in.User.ID] = hash
	}
	s.store.users[i] = in.User
	return dataJSON(c, fiber.StatusOK, in.User)
}

func (s *Server) deleteUser(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.users, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	s.store.users = append(s.store.users[:i], s.store.users[i+1:]...)
	delete(s.store.passwords, id)
	return dataJSON(c, fiber.StatusOK, fiber.Map{"ok": true})
}

func (s *Server) toggleUser(c *fiber.Ctx) error {
	id, _ := idParam(c)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.users, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	s.store.users[i].Active = !s.store.users[i].Active
	return dataJSON(c, fiber.StatusOK, s.store.users[i])
}

type assignRolesRequest struct {
	RoleIDs []int64 `json:"roleIds"`
}

func (s *Server) assignRoles(c *fiber.Ctx) error {
	id, _ := idParam(c)
	var in assignRolesRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.users, id)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	roles := []entity.Role{}
	for _, rid := range in.RoleIDs {
		if j, ok := findByID(s.store.roles, rid); ok {
			roles = entity.AddByID(roles, s.store.roles[j])
		}
	}
	s.store.users[i].Roles = roles
	return dataJSON(c, fiber.StatusOK, s.store.users[i])
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.users, currentUserID(c))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	return dataJSON(c, fiber.StatusOK, s.store.users[i])
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var in entity.User
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := findByID(s.store.users, currentUserID(c))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	// el perfil no puede cambiar id, estado ni roles
	in.ID = s.store.users[i].ID
	in.Active = s.store.users[i].Active
	in.Roles = s.store.users[i].Roles
	s.store.users[i] = in
	return dataJSON(c, fiber.StatusOK, in)
}

func (s *Server) listRoles(c *fiber.Ctx) error {
	page, size := pageParams(c)
	s.store.mu.Lock()
	items, total := paginate(s.store.roles, page, size)
	s.store.mu.Unlock()
	return pageJSON(c, items, total)
}
