package mockapi

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-client/internal/domain/entity"
	"github.com/jhoicas/inventario-client/pkg/jwt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login verifica credenciales y emite un JWT. La respuesta va a nivel raíz
// (sin envelope), igual que el backend real.
func (s *Server) login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}

	s.store.mu.Lock()
	var user *entity.User
	for i := range s.store.users {
		if s.store.users[i].Username == in.Username {
			user = &s.store.users[i]
			break
		}
	}
	var hash []byte
	if user != nil {
		hash = s.store.passwords[user.ID]
	}
	s.store.mu.Unlock()

	if user == nil || bcrypt.CompareHashAndPassword(hash, []byte(in.Password)) != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}
	if !user.Active {
		return errorJSON(c, fiber.StatusForbidden, "Usuario inactivo")
	}

	token, err := jwt.Generate(s.secret, user.ID, user.Username, s.issuer, tokenExpMinutes)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token, "user": user})
}

type registerRequest struct {
	entity.User
	Password string `json:"password"`
}

// register crea un usuario con hash bcrypt. No emite token: login aparte.
func (s *Server) register(c *fiber.Ctx) error {
	var in registerRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if in.Username == "" || in.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "username y password son requeridos")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, u := range s.store.users {
		if u.Username == in.Username {
			return errorJSON(c, fiber.StatusConflict, "El username ya está registrado")
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	user := in.User
	user.ID = s.store.id()
	user.Active = true
	if user.Roles == nil {
		user.Roles = []entity.Role{}
	}
	s.store.users = append(s.store.users, user)
	s.store.passwords[user.ID] = hash

	return dataJSON(c, fiber.StatusCreated, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// changePassword cambia la contraseña del usuario autenticado tras verificar
// la actual.
func (s *Server) changePassword(c *fiber.Ctx) error {
	var in changePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "cuerpo inválido")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	userID := currentUserID(c)
	hash, ok := s.store.passwords[userID]
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "usuario no encontrado")
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(in.CurrentPassword)) != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "La contraseña actual no es correcta")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	s.store.passwords[userID] = newHash
	return dataJSON(c, fiber.StatusOK, fiber.Map{"ok": true})
}
