package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrSessionExpired = errors.New("la sesión ha expirado")
	ErrNotLoggedIn    = errors.New("no has iniciado sesión")
	ErrValidation     = errors.New("el formulario tiene errores")
	ErrFormClosed     = errors.New("el formulario no está abierto")
	ErrPageOutOfRange = errors.New("página fuera de rango")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrRemoteCall     = errors.New("error al comunicarse con el servidor")
)
