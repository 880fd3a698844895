package domain

import "errors"

// RemoteError es un fallo de llamada remota con el mensaje que reportó el
// servidor. El backend es inconsistente en sus cuerpos de error; la capa de
// gateway los normaliza siempre a este tipo.
type RemoteError struct {
	Status  int    // código HTTP; 0 si la petición nunca llegó
	Message string // mensaje del servidor; vacío si no envió ninguno
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrRemoteCall.Error()
}

// Unwrap permite errors.Is(err, ErrRemoteCall).
func (e *RemoteError) Unwrap() error { return ErrRemoteCall }

// MessageOr extrae el mensaje del servidor de un error remoto, o devuelve el
// fallback genérico. Es el único punto de extracción de mensajes de error.
func MessageOr(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
