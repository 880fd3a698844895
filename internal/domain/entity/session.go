package entity

// Credentials es el par (token, usuario) que se persiste entre ejecuciones.
// Se guarda y se limpia siempre junto.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session es el estado de autenticación del proceso.
// Invariante: IsAuthenticated == true implica User != nil.
type Session struct {
	User            *User
	IsAuthenticated bool
	Loading         bool
}
