package entity

// Role es dato de referencia del servidor: solo se consume, nunca se muta
// localmente salvo para alternar su pertenencia al conjunto de roles de un usuario.
type Role struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// EntityID implementa Identifiable.
func (r Role) EntityID() int64 { return r.ID }

// User representa un usuario del sistema. Roles es un conjunto keyed por id.
// Birthday viaja como fecha plana (YYYY-MM-DD).
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
	Active   bool   `json:"active"`
	Roles    []Role `json:"roles"`
}

// EntityID implementa Identifiable.
func (u User) EntityID() int64 { return u.ID }

// FullName devuelve nombre y apellido para presentación.
func (u User) FullName() string {
	if u.Lastname == "" {
		return u.Name
	}
	return u.Name + " " + u.Lastname
}
