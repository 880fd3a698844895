package mockapi_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/application/notify"
	"github.com/jhoicas/inventario-client/internal/application/session"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
	"github.com/jhoicas/inventario-client/internal/infrastructure/api"
	"github.com/jhoicas/inventario-client/internal/infrastructure/store"
	"github.com/jhoicas/inventario-client/internal/mockapi"
	"github.com/jhoicas/inventario-client/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests end-to-end: cliente real (gateways + sesión + controladores) contra
// el backend simulado escuchando en un puerto efímero.
// ──────────────────────────────────────────────────────────────────────────────

const e2eSecret = "secret-e2e"

// testEnv cablea el cliente completo contra un mockapi recién levantado.
type testEnv struct {
	manager     *session.Manager
	guard       *session.Guard
	credStore   *store.FileStore
	categories  *api.CategoryGateway
	inventories *api.InventoryGateway
	products    *api.ProductGateway
	users       *api.UserGateway
	roles       *api.RoleGateway
	notify      *notify.Center
	baseURL     string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	srv := mockapi.New(e2eSecret, nil)
	baseURL, stop, err := srv.Start()
	require.NoError(t, err)
	t.Cleanup(stop)
	return newEnvAgainst(t, baseURL)
}

// newEnvAgainst permite apuntar a una URL arbitraria (p. ej. un backend ya
// apagado, para el flujo degradado).
func newEnvAgainst(t *testing.T, baseURL string) *testEnv {
	t.Helper()
	credStore := store.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))

	var manager *session.Manager
	client := api.NewClient(config.APIConfig{
		BaseURL:    baseURL,
		TimeoutSec: 5,
		Retries:    0,
		PageSize:   10,
	}, func() string {
		if manager == nil {
			return ""
		}
		return manager.Token()
	}, nil)
	authGw := api.NewAuthGateway(client)
	manager = session.NewManager(credStore, authGw, nil)

	center := notify.NewCenter(nil, nil)
	t.Cleanup(center.Close)

	return &testEnv{
		manager:     manager,
		guard:       session.NewGuard(manager),
		credStore:   credStore,
		categories:  api.NewCategoryGateway(client),
		inventories: api.NewInventoryGateway(client),
		products:    api.NewProductGateway(client),
		users:       api.NewUserGateway(client),
		roles:       api.NewRoleGateway(client),
		notify:      center,
		baseURL:     baseURL,
	}
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	e.manager.Bootstrap()
	res := e.manager.Login(context.Background(), "admin", "Admin123#")
	require.True(t, res.Success, "login de semilla debe funcionar: %s", res.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario A: arranque, login, restauración y logout
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_SesionCompleta(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	// arranque en frío: sin credenciales, el guard manda al login
	env.manager.Bootstrap()
	require.Equal(t, session.DecisionRedirectLogin, env.guard.Check())

	// credenciales malas: mensaje del servidor, sesión intacta
	res := env.manager.Login(ctx, "admin", "incorrecta")
	assert.False(t, res.Success)
	assert.Equal(t, "Credenciales inválidas", res.Message)

	// credenciales buenas: sesión autenticada y persistida
	res = env.manager.Login(ctx, "admin", "Admin123#")
	require.True(t, res.Success)
	require.Equal(t, session.DecisionAllow, env.guard.Check())
	assert.Equal(t, "admin", env.manager.User().Username)

	// un proceso nuevo sobre el mismo archivo restaura la sesión sin red
	m2 := session.NewManager(env.credStore, nil, nil)
	m2.Bootstrap()
	assert.True(t, m2.Current().IsAuthenticated, "el token persistido restaura la sesión")

	// logout limpia todo; un tercer proceso ya no restaura nada
	env.manager.Logout()
	assert.Equal(t, session.DecisionRedirectLogin, env.guard.Check())
	m3 := session.NewManager(env.credStore, nil, nil)
	m3.Bootstrap()
	assert.False(t, m3.Current().IsAuthenticated)
}

// Las rutas protegidas rechazan las peticiones sin token.
func TestE2E_RecursosProtegidosSinToken(t *testing.T) {
	env := newEnv(t)

	_, err := env.categories.List(context.Background(), 0, 10)

	require.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario B: listado paginado con envelope real
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_ListadoPaginado(t *testing.T) {
	env := newEnv(t)
	env.login(t)
	ctx := context.Background()

	lc := controller.NewListController(controller.CategoryList(), env.categories, 2, nil)
	lc.Load(ctx, 1)

	require.Equal(t, controller.ListLoaded, lc.State())
	assert.Len(t, lc.Items(), 2, "página de tamaño 2 sobre 3 categorías de semilla")
	assert.Equal(t, 2, lc.TotalPages())

	lc.ChangePage(ctx, 2)
	assert.Len(t, lc.Items(), 1)
	assert.Equal(t, 2, lc.CurrentPage())
}

// La búsqueda local filtra la página cargada sin más viajes al servidor.
func TestE2E_BusquedaLocalSobreLaPagina(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	lc := controller.NewListController(controller.CategoryList(), env.categories, 10, nil)
	lc.Load(context.Background(), 1)
	require.Equal(t, controller.ListLoaded, lc.State())

	lc.SetSearchTerm("electronicos") // sin acento: el folding lo encuentra

	visibles := lc.Visible()
	require.Len(t, visibles, 1)
	assert.Equal(t, "Electrónicos", visibles[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario C: alta con validación, envío y refresco de la lista
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_AltaDeCategoriaConFormulario(t *testing.T) {
	env := newEnv(t)
	env.login(t)
	ctx := context.Background()

	lc := controller.NewListController(controller.CategoryList(), env.categories, 10, nil)
	lc.Load(ctx, 1)
	antes := len(lc.Items())

	form := controller.NewFormController(controller.CategoryForm(env.categories), lc, env.notify, nil)
	form.Open(nil)

	// primer intento: inválido, no toca la red y la lista no cambia
	require.Error(t, form.Submit(ctx))
	assert.Equal(t, "Requerido", form.Errors()["name"])
	assert.Len(t, lc.Items(), antes)

	// corregir y reenviar: cierra, notifica y la lista dueña se refresca
	form.SetField("name", func(c *entity.Category) { c.Name = "Monitores" })
	form.SetField("active", func(c *entity.Category) { c.Active = true })
	require.NoError(t, form.Submit(ctx))

	assert.Equal(t, controller.FormClosed, form.State())
	assert.Len(t, lc.Items(), antes+1, "la lista se refresca tras el alta")
	toasts := env.notify.Active()
	require.NotEmpty(t, toasts)
	assert.Equal(t, "Categoría creada correctamente", toasts[len(toasts)-1].Message)
}

func TestE2E_EdicionYToggleDeCategoria(t *testing.T) {
	env := newEnv(t)
	env.login(t)
	ctx := context.Background()

	existente, err := env.categories.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, existente.Active)

	form := controller.NewFormController(controller.CategoryForm(env.categories), nil, env.notify, nil)
	form.Open(&existente)
	form.SetField("name", func(c *entity.Category) { c.Name = "Electrónica de consumo" })
	require.NoError(t, form.Submit(ctx))

	tras, err := env.categories.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Electrónica de consumo", tras.Name)

	require.NoError(t, env.categories.ToggleActive(ctx, 1))
	tras, err = env.categories.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, tras.Active)
}

// El alta de producto exige inventario y sella el autor autenticado.
func TestE2E_AltaDeProductoConAsociaciones(t *testing.T) {
	env := newEnv(t)
	env.login(t)
	ctx := context.Background()

	desc := controller.ProductForm(env.products, func() int64 { return env.manager.User().ID })
	form := controller.NewFormController(desc, nil, env.notify, nil)
	form.Open(nil)
	form.SetField("name", func(p *entity.Product) { p.Name = "Teclado mecánico" })
	form.SetField("quantity", func(p *entity.Product) { p.Quantity = 12 })

	// sin inventario el envío se rechaza localmente
	require.Error(t, form.Submit(ctx))
	assert.Equal(t, "Porfavor indique el inventario", form.Errors()["inventory"])

	inv, err := env.inventories.Get(ctx, 1)
	require.NoError(t, err)
	controller.SetProductInventory(form, inv)
	cat, err := env.categories.Get(ctx, 2)
	require.NoError(t, err)
	controller.AddProductCategory(form, cat)

	require.NoError(t, form.Submit(ctx))

	// el producto creado está en el backend, con autor y asociaciones
	creados, err := env.products.Search(ctx, "Teclado")
	require.NoError(t, err)
	require.Len(t, creados, 1)
	assert.Equal(t, int64(1), creados[0].CreatedByUserID)
	require.NotNil(t, creados[0].Inventory)
	assert.Equal(t, "Almacén Principal", creados[0].Inventory.Name)
	require.Len(t, creados[0].Categories, 1)
	assert.Equal(t, "Accesorios", creados[0].Categories[0].Name)
}

// Alta de usuario con política de contraseñas y asignación de roles.
func TestE2E_AltaDeUsuarioYRoles(t *testing.T) {
	env := newEnv(t)
	env.login(t)
	ctx := context.Background()

	rolesPage, err := env.roles.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, rolesPage.Items, 2)

	form := controller.NewFormController(controller.UserForm(env.users), nil, env.notify, nil)
	form.Open(nil)
	form.SetField("name", func(d *controller.UserDraft) { d.Name = "María" })
	form.SetField("lastname", func(d *controller.UserDraft) { d.Lastname = "García" })
	form.SetField("username", func(d *controller.UserDraft) { d.Username = "mgarcia" })
	form.SetField("email", func(d *controller.UserDraft) { d.Email = "maria@email.com" })
	form.SetField("birthday", func(d *controller.UserDraft) { d.Birthday = "1992-07-20" })
	controller.AddUserRole(form, rolesPage.Items[1])
	form.SetField("password", func(d *controller.UserDraft) {
		d.Password = "Clave123#"
		d.PasswordConfirm = "Clave123#"
	})

	require.NoError(t, form.Submit(ctx))

	// el usuario nuevo puede iniciar sesión con su contraseña
	otro := newEnvAgainst(t, env.baseURL)
	otro.manager.Bootstrap()
	res := otro.manager.Login(ctx, "mgarcia", "Clave123#")
	assert.True(t, res.Success, res.Message)

	// y el admin puede reasignarle roles
	usuarios, err := env.users.List(ctx, 0, 10)
	require.NoError(t, err)
	var maria entity.User
	for _, u := range usuarios.Items {
		if u.Username == "mgarcia" {
			maria = u
		}
	}
	require.NotZero(t, maria.ID)
	require.NoError(t, env.users.AssignRoles(ctx, maria.ID, []int64{1, 2}))
	tras, err := env.users.Get(ctx, maria.ID)
	require.NoError(t, err)
	assert.Len(t, tras.Roles, 2)
}

func TestE2E_PerfilYCambioDeContrasena(t *testing.T) {
	env := newEnv(t)
	env.login(t)
	ctx := context.Background()

	perfil, err := env.users.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", perfil.Username)

	perfil.Name = "Administrador"
	actualizado, err := env.users.UpdateProfile(ctx, perfil)
	require.NoError(t, err)
	assert.Equal(t, "Administrador", actualizado.Name)

	res := env.manager.ChangePassword(ctx, "Admin123#", "Nueva123#")
	require.True(t, res.Success, res.Message)

	otro := newEnvAgainst(t, env.baseURL)
	otro.manager.Bootstrap()
	assert.False(t, otro.manager.Login(ctx, "admin", "Admin123#").Success, "la contraseña vieja deja de valer")
	assert.True(t, otro.manager.Login(ctx, "admin", "Nueva123#").Success)
}

// Estadísticas y productos por inventario.
func TestE2E_InventarioStatsYProductos(t *testing.T) {
	env := newEnv(t)
	env.login(t)
	ctx := context.Background()

	stats, err := env.inventories.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts, "la semilla tiene dos productos en el almacén principal")
	assert.Equal(t, 45, stats.TotalQuantity)

	productos, err := env.inventories.Products(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, productos, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario D: backend caído, degradado a datos de muestra
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_BackendCaidoDegradaADemo(t *testing.T) {
	srv := mockapi.New(e2eSecret, nil)
	baseURL, stop, err := srv.Start()
	require.NoError(t, err)

	env := newEnvAgainst(t, baseURL)
	env.login(t)

	// el backend muere después del login
	stop()

	lc := controller.NewListController(controller.InventoryList(), env.inventories, 10, nil)
	lc.Load(context.Background(), 1)

	require.Equal(t, controller.ListDegraded, lc.State())
	require.NotEmpty(t, lc.Items(), "sin backend la vista muestra los datos de muestra")
	assert.Equal(t, "Almacén Principal", lc.Items()[0].Name)
	assert.Equal(t, 1, lc.TotalPages())

	// la búsqueda local sigue funcionando sobre los datos de muestra
	lc.SetSearchTerm("bodega")
	visibles := lc.Visible()
	require.Len(t, visibles, 1)
	assert.Equal(t, "Bodega Sur", visibles[0].Name)
}
