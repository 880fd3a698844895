package controller

import (
	"context"

	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// UserDraft es el borrador del formulario de usuario. Además de la entidad
// lleva el flujo opcional de contraseña: en altas (o cambio explícito)
// SetPassword está activo y la política de contraseñas aplica.
type UserDraft struct {
	entity.User
	SetPassword     bool
	Password        string
	PasswordConfirm string
}

// UserGateway es la capacidad extendida que necesita el formulario de
// usuario: altas y ediciones pueden llevar contraseña.
type UserGateway interface {
	CreateWithPassword(ctx context.Context, user entity.User, password, confirm string) (entity.User, error)
	UpdateWithPassword(ctx context.Context, user entity.User, password, confirm string) (entity.User, error)
}

// UserList descriptor de listado para usuarios. La búsqueda local filtra por
// nombre y email.
func UserList() ListDescriptor[entity.User] {
	return ListDescriptor[entity.User]{
		Name: "usuario",
		SearchText: func(u entity.User) []string {
			return []string{u.Name, u.Email}
		},
		Fallback: userFallback,
	}
}

func userFallback() []entity.User {
	return []entity.User{
		{ID: 1, Name: "Juan", Lastname: "Pérez", Username: "jperez", Email: "juan@email.com", Active: true, Birthday: "2026-01-01", Roles: []entity.Role{{ID: 1, Name: "ROLE_ADMIN"}}},
		{ID: 2, Name: "María", Lastname: "García", Username: "mgarcia", Email: "maria@email.com", Active: true, Birthday: "2026-01-01", Roles: []entity.Role{{ID: 2, Name: "ROLE_USER"}}},
	}
}

// RoleFallback roles de muestra cuando el listado remoto de roles falla.
func RoleFallback() []entity.Role {
	return []entity.Role{
		{ID: 1, Name: "Admin"},
		{ID: 2, Name: "User"},
	}
}

// UserForm descriptor de formulario para usuarios.
func UserForm(gw UserGateway) FormDescriptor[UserDraft] {
	return FormDescriptor[UserDraft]{
		Name: "usuario",
		DefaultDraft: func() UserDraft {
			return UserDraft{
				User:        entity.User{Active: true, Roles: []entity.Role{}},
				SetPassword: true, // usuario nuevo: la contraseña es parte del alta
			}
		},
		Normalize: func(d *UserDraft) {
			if d.Roles == nil {
				d.Roles = []entity.Role{}
			}
		},
		Validate: validateUserDraft,
		Create: func(ctx context.Context, d UserDraft) error {
			_, err := gw.CreateWithPassword(ctx, d.User, d.Password, d.PasswordConfirm)
			return err
		},
		Update: func(ctx context.Context, d UserDraft) error {
			pass, confirm := "", ""
			if d.SetPassword {
				pass, confirm = d.Password, d.PasswordConfirm
			}
			_, err := gw.UpdateWithPassword(ctx, d.User, pass, confirm)
			return err
		},
		CreatedMsg: "Usuario creado",
		UpdatedMsg: "Usuario actualizado",
		FailMsg:    "Error al guardar",
	}
}

func validateUserDraft(d UserDraft) map[string]string {
	errs := map[string]string{}
	if !required(d.Name) {
		errs["name"] = "Requerido"
	}
	if !required(d.Username) {
		errs["username"] = "Requerido"
	}
	if !required(d.Email) {
		errs["email"] = "Requerido"
	} else if !ValidEmail(d.Email) {
		errs["email"] = "Formato de correo inválido"
	}
	if !required(d.Birthday) {
		errs["birthday"] = "Requerido"
	}
	if len(d.Roles) == 0 {
		errs["roles"] = "Requerido"
	}
	if d.SetPassword {
		if d.Password != d.PasswordConfirm {
			errs["password"] = "Las contrasenas no coinciden"
		}
		if !ValidPassword(d.Password) {
			errs["password"] = "La contraseña no cumple el formato requerido: 8 - 35 caracteres, mayúsculas, minúsculas, números y un símbolo."
		}
	}
	return errs
}

// AddUserRole agrega un rol al borrador; idempotente por id.
func AddUserRole(f *FormController[UserDraft], r entity.Role) {
	f.SetField("roles", func(d *UserDraft) {
		d.Roles = entity.AddByID(d.Roles, r)
	})
}

// RemoveUserRole quita un rol del borrador; no-op si no está.
func RemoveUserRole(f *FormController[UserDraft], id int64) {
	f.SetField("roles", func(d *UserDraft) {
		d.Roles = entity.RemoveByID(d.Roles, id)
	})
}
