package controller_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// fakeUserGateway registra lo que recibe para verificar el flujo opcional de
// contraseña.
type fakeUserGateway struct {
	createdPass string
	updatedPass string
}

func (g *fakeUserGateway) CreateWithPassword(ctx context.Context, u entity.User, pass, confirm string) (entity.User, error) {
	g.createdPass = pass
	return u, nil
}

func (g *fakeUserGateway) UpdateWithPassword(ctx context.Context, u entity.User, pass, confirm string) (entity.User, error) {
	g.updatedPass = pass
	return u, nil
}

func borradorValido() controller.UserDraft {
	return controller.UserDraft{
		User: entity.User{
			Name:     "Juan",
			Lastname: "Pérez",
			Username: "jperez",
			Email:    "juan@email.com",
			Birthday: "1990-04-12",
			Active:   true,
			Roles:    []entity.Role{{ID: 1, Name: "ROLE_ADMIN"}},
		},
		SetPassword:     true,
		Password:        "Abcdef1#",
		PasswordConfirm: "Abcdef1#",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación del borrador de usuario
// ──────────────────────────────────────────────────────────────────────────────

func TestUserForm_BorradorValidoPasa(t *testing.T) {
	desc := controller.UserForm(&fakeUserGateway{})
	assert.Empty(t, desc.Validate(borradorValido()))
}

func TestUserForm_CamposRequeridos(t *testing.T) {
	desc := controller.UserForm(&fakeUserGateway{})
	d := borradorValido()
	d.Name = ""
	d.Username = "   " // solo espacios también cuenta como vacío
	d.Birthday = ""
	d.Roles = nil

	errs := desc.Validate(d)

	assert.Equal(t, "Requerido", errs["name"])
	assert.Equal(t, "Requerido", errs["username"])
	assert.Equal(t, "Requerido", errs["birthday"])
	assert.Equal(t, "Requerido", errs["roles"])
}

func TestUserForm_EmailConFormatoInvalido(t *testing.T) {
	desc := controller.UserForm(&fakeUserGateway{})
	d := borradorValido()
	d.Email = "no-es-un-correo"

	errs := desc.Validate(d)

	assert.Equal(t, "Formato de correo inválido", errs["email"])
}

func TestUserForm_ContrasenasNoCoinciden(t *testing.T) {
	desc := controller.UserForm(&fakeUserGateway{})
	d := borradorValido()
	d.PasswordConfirm = "Otra1#ab"

	errs := desc.Validate(d)

	// las dos contraseñas son válidas por formato, así que el mensaje que
	// queda es el de no coincidencia
	assert.Equal(t, "Las contrasenas no coinciden", errs["password"])
}

func TestUserForm_ContrasenaConFormatoInvalido(t *testing.T) {
	desc := controller.UserForm(&fakeUserGateway{})
	d := borradorValido()
	d.Password = "corta"
	d.PasswordConfirm = "corta"

	errs := desc.Validate(d)

	assert.Contains(t, errs["password"], "8 - 35 caracteres")
}

// En edición sin cambio de contraseña la política no aplica.
func TestUserForm_EdicionSinContrasenaNoValidaPolitica(t *testing.T) {
	gw := &fakeUserGateway{}
	desc := controller.UserForm(gw)
	d := borradorValido()
	d.SetPassword = false
	d.Password = ""
	d.PasswordConfirm = ""

	require.Empty(t, desc.Validate(d))
	require.NoError(t, desc.Update(context.Background(), d))
	assert.Empty(t, gw.updatedPass, "sin cambio de contraseña el gateway recibe contraseña vacía")
}

func TestUserForm_AltaEnviaLaContrasena(t *testing.T) {
	gw := &fakeUserGateway{}
	desc := controller.UserForm(gw)

	require.NoError(t, desc.Create(context.Background(), borradorValido()))

	assert.Equal(t, "Abcdef1#", gw.createdPass)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conjuntos de roles keyed por id
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRoles_AgregarEsIdempotente(t *testing.T) {
	form := controller.NewFormController(controller.UserForm(&fakeUserGateway{}), nil, &fakeNotifier{}, nil)
	form.Open(nil)
	admin := entity.Role{ID: 1, Name: "ROLE_ADMIN"}

	controller.AddUserRole(form, admin)
	controller.AddUserRole(form, admin)

	assert.Len(t, form.Draft().Roles, 1, "agregar el mismo rol dos veces no duplica")
}

func TestUserRoles_QuitarAusenteEsNoOp(t *testing.T) {
	form := controller.NewFormController(controller.UserForm(&fakeUserGateway{}), nil, &fakeNotifier{}, nil)
	form.Open(nil)
	controller.AddUserRole(form, entity.Role{ID: 1, Name: "ROLE_ADMIN"})

	controller.RemoveUserRole(form, 99)

	assert.Len(t, form.Draft().Roles, 1)

	controller.RemoveUserRole(form, 1)
	assert.Empty(t, form.Draft().Roles)
}
