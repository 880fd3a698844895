package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/pkg/config"
	"github.com/jhoicas/inventario-client/pkg/logger"
)

// Client es el cliente HTTP hacia el backend REST. Todas las llamadas llevan
// context, timeout por petición y, para GETs idempotentes, un número acotado
// de reintentos. El token de sesión se obtiene en cada petición vía tokenFn
// para seguir siempre al estado de sesión vigente.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokenFn func() string
	retries int
	log     *logger.Logger
}

// NewClient construye el cliente. tokenFn puede devolver vacío (peticiones
// sin autenticar, p. ej. login).
func NewClient(cfg config.APIConfig, tokenFn func() string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if tokenFn == nil {
		tokenFn = func() string { return "" }
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: cfg.Timeout()},
		tokenFn: tokenFn,
		retries: cfg.Retries,
		log:     log,
	}
}

// envelope es la convención de respuesta del backend: el payload viaja bajo
// "data". Algunos endpoints reportan además totalPages al mismo nivel o
// dentro de data.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	TotalPages int             `json:"totalPages"`
	Message    string          `json:"message"`
}

// errorBody cuerpos de error que manda el backend, normalizados aquí a
// domain.RemoteError (el backend es inconsistente: a veces message, a veces
// error).
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do ejecuta una petición y decodifica el cuerpo en out (puede ser nil).
// Los GET se reintentan hasta c.retries veces ante errores de red o 5xx;
// el resto de métodos se intenta una sola vez (un clic, un intento).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	attempts := 1
	if method == http.MethodGet {
		attempts += c.retries
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return &domain.RemoteError{Message: ctx.Err().Error()}
			case <-time.After(time.Duration(i) * 200 * time.Millisecond):
			}
			c.log.Debug().Str("path", path).Int("attempt", i+1).Msg("reintentando petición")
		}
		retryable, err := c.doOnce(ctx, method, path, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

// doOnce ejecuta un único intento. Devuelve retryable=true solo para fallos
// de transporte o respuestas 5xx.
func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) (bool, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokenFn(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// sin mensaje de servidor: el llamador mostrará su fallback genérico
		c.log.Debug().Err(err).Str("path", path).Msg("fallo de transporte")
		return true, &domain.RemoteError{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		return resp.StatusCode >= 500, &domain.RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decodificar respuesta: %w", err)
	}
	return false, nil
}

// getData hace GET y devuelve el payload bajo el envelope {data: ...}.
func (c *Client) getData(ctx context.Context, path string) (envelope, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return envelope{}, err
	}
	return env, nil
}

// unwrap decodifica el payload de un envelope en out, atravesando el doble
// envoltorio {data:{data:...}} que usa el recurso de inventarios.
func unwrap(raw json.RawMessage, doubleWrapped bool, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if doubleWrapped {
		var inner envelope
		if err := json.Unmarshal(raw, &inner); err == nil && len(inner.Data) > 0 {
			raw = inner.Data
		}
	}
	return json.Unmarshal(raw, out)
}
