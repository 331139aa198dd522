package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tu-usuario/marketplace-api/internal/application/ports"
	"github.com/tu-usuario/marketplace-api/pkg/config"
)

var _ ports.FileStorage = (*LocalStorage)(nil)

// LocalStorage guarda archivos en disco bajo baseDir/{scope}/ y construye
// URLs públicas con el prefijo configurado. El nombre en disco es un UUID
// con la extensión original: el nombre del cliente nunca toca el filesystem.
type LocalStorage struct {
	baseDir   string
	publicURL string
}

// NewLocalStorage crea el adaptador de almacenamiento local.
func NewLocalStorage(cfg config.StorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStorage{
		baseDir:   cfg.BaseDir,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload escribe el archivo y devuelve su URL pública y clave interna.
func (s *LocalStorage) Upload(_ context.Context, name, _ string, data []byte, scope string) (*ports.StoredFile, error) {
	dir := filepath.Join(s.baseDir, scope)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio %s: %w", scope, err)
	}
	key := scope + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(name))
	if err := os.WriteFile(filepath.Join(s.baseDir, filepath.FromSlash(key)), data, 0o644); err != nil {
		return nil, fmt.Errorf("escribir archivo: %w", err)
	}
	return &ports.StoredFile{
		URL: s.publicURL + "/" + key,
		Key: key,
	}, nil
}

// DeleteByURL elimina el archivo a partir de su URL pública. URLs fuera del
// prefijo configurado se ignoran en silencio.
func (s *LocalStorage) DeleteByURL(_ context.Context, url string) error {
	if !strings.HasPrefix(url, s.publicURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(url, s.publicURL+"/")
	if strings.Contains(key, "..") {
		return fmt.Errorf("clave inválida: %s", key)
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

// ListAll lista las claves existentes bajo un scope.
func (s *LocalStorage) ListAll(_ context.Context, scope string) ([]string, error) {
	dir := filepath.Join(s.baseDir, scope)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listar %s: %w", scope, err)
	}
	var keys []string
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, scope+"/"+e.Name())
		}
	}
	return keys, nil
}
