package mockapi

import (
	"net"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-client/pkg/jwt"
	"github.com/jhoicas/inventario-client/pkg/logger"
)

// tokenExpMinutes vigencia de los tokens emitidos por el backend simulado.
const tokenExpMinutes = 60

// Server es un backend simulado en memoria que implementa el contrato REST
// que consume el cliente: envelope {data: ...}, paginación con índice cero y
// los endpoints de la tabla de recursos. Sirve para desarrollo sin backend
// real y para los tests end-to-end.
type Server struct {
	app    *fiber.App
	store  *memoryStore
	secret string
	issuer string
	log    *logger.Logger
}

// New construye el servidor con datos de semilla (usuario admin/Admin123#).
func New(secret string, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "inventario-mockapi",
			ReadTimeout:           time.Second * 10,
			WriteTimeout:          time.Second * 10,
			DisableStartupMessage: true,
		}),
		store:  newMemoryStore(),
		secret: secret,
		issuer: "inventario-mockapi",
		log:    log,
	}
	s.app.Use(recover.New())
	s.routes()
	return s
}

// LocalUserID key de c.Locals para el id del usuario autenticado.
const LocalUserID = "user_id"

// authRequired valida el Bearer Token JWT y deja el user id en c.Locals.
func (s *Server) authRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "formato: Bearer <token>"})
		}
		claims, err := jwt.Parse(s.secret, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		return c.Next()
	}
}

// currentUserID devuelve el user id del contexto tras authRequired.
func currentUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	// Auth (público salvo change-password)
	auth := api.Group("/auth")
	auth.Post("/login", s.login)
	auth.Post("/register", s.register)
	auth.Post("/change-password", s.authRequired(), s.changePassword)

	protected := api.Group("/", s.authRequired())

	category := protected.Group("/category")
	category.Get("/", s.listCategories)
	category.Get("/active", s.activeCategories)
	category.Get("/:id", s.getCategory)
	category.Post("/", s.createCategory)
	category.Put("/", s.updateCategory)
	category.Delete("/:id", s.deleteCategory)
	category.Patch("/:id/toggle-active", s.toggleCategory)

	inventory := protected.Group("/inventory")
	inventory.Get("/", s.listInventories)
	inventory.Get("/:id/stats", s.inventoryStats)
	inventory.Get("/:id/products", s.inventoryProducts)
	inventory.Get("/:id", s.getInventory)
	inventory.Post("/", s.createInventory)
	inventory.Put("/", s.updateInventory)
	inventory.Delete("/:id", s.deleteInventory)

	product := protected.Group("/product")
	product.Get("/", s.listProducts)
	product.Get("/search", s.searchProducts)
	product.Get("/inventory/:id", s.productsByInventory)
	product.Get("/category/:id", s.productsByCategory)
	product.Get("/:id", s.getProduct)
	product.Post("/", s.createProduct)
	product.Put("/", s.updateProduct)
	product.Delete("/:id", s.deleteProduct)
	product.Patch("/:id/toggle-active", s.toggleProduct)

	user := protected.Group("/user")
	user.Get("/", s.listUsers)
	user.Get("/profile", s.getProfile)
	user.Put("/profile", s.updateProfile)
	user.Get("/:id", s.getUser)
	user.Post("/", s.createUser)
	user.Put("/", s.updateUser)
	user.Delete("/:id", s.deleteUser)
	user.Put("/:id/roles", s.assignRoles)
	user.Patch("/:id/toggle-active", s.toggleUser)

	protected.Get("/role", s.listRoles)
}

// App expone la aplicación Fiber (tests con app.Test).
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen sirve en la dirección dada (bloqueante).
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("mockapi escuchando")
	return s.app.Listen(addr)
}

// Start levanta el servidor en un puerto efímero y devuelve la URL base
// (con el prefijo /api) y una función de parada. Pensado para tests
// end-to-end.
func (s *Server) Start() (baseURL string, stop func(), err error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.log.Error().Err(err).Msg("mockapi terminó con error")
		}
	}()
	baseURL = "http://" + ln.Addr().String() + "/api"
	stop = func() { _ = s.app.Shutdown() }
	return baseURL, stop, nil
}

// Respuestas con la convención de envelope del backend real.

// dataJSON payload bajo {data: ...}.
func dataJSON(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}

// pageJSON listado paginado: {data: {data: [...], totalPages: n}}.
func pageJSON(c *fiber.Ctx, items any, totalPages int) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{"data": items, "totalPages": totalPages},
	})
}

// doubleJSON detalle de inventario: el payload viaja envuelto dos veces,
// como en el backend real.
func doubleJSON(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{
		"data": fiber.Map{"data": payload},
	})
}

// errorJSON error con mensaje legible.
func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}
