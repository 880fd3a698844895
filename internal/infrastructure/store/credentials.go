package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// Claves fijas bajo las que se persisten el token y el usuario serializado.
// Se guardan y se limpian siempre juntos.
const (
	keyToken = "token"
	keyUser  = "user"
)

// FileStore persiste las credenciales de sesión en un archivo JSON con
// permisos restringidos. Sobrevive reinicios del proceso.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore construye el almacén sobre la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save escribe token + usuario. Crea el directorio si no existe.
func (s *FileStore) Save(creds entity.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, err := json.Marshal(creds.User)
	if err != nil {
		return fmt.Errorf("serializar usuario: %w", err)
	}
	payload := map[string]json.RawMessage{
		keyToken: mustJSON(creds.Token),
		keyUser:  rawUser,
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar credenciales: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("crear directorio de credenciales: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("escribir credenciales: %w", err)
	}
	return nil
}

// Load lee las credenciales guardadas. Devuelve (nil, nil) si no hay archivo
// o si el par está incompleto: ausencia de credenciales no es un error.
func (s *FileStore) Load() (*entity.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer credenciales: %w", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("credenciales corruptas: %w", err)
	}

	var creds entity.Credentials
	if err := json.Unmarshal(payload[keyToken], &creds.Token); err != nil {
		return nil, nil
	}
	if err := json.Unmarshal(payload[keyUser], &creds.User); err != nil {
		return nil, nil
	}
	if creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

// Clear elimina el archivo de credenciales. Idempotente.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("limpiar credenciales: %w", err)
	}
	return nil
}

func mustJSON(v any) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
