package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps uploads on disk under Dir/<bucket>/<path> and serves them
// from BaseURL/files.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) resolve(bucket, path string) (string, error) {
	clean := filepath.Clean("/" + filepath.ToSlash(path))
	if strings.Contains(bucket, "..") || strings.ContainsAny(bucket, `/\`) || clean == "/" {
		return "", fmt.Errorf("invalid storage path %q", path)
	}
	return filepath.Join(s.Dir, bucket, filepath.FromSlash(clean)), nil
}

func (s *LocalStorage) Upload(ctx context.Context, bucket, path string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(full); err == nil {
		return fmt.Errorf("storage upload %s: object already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage upload %s: %w", path, err)
	}
	if err := os.WriteFile(full, body, 0o644); err != nil {
		return fmt.Errorf("storage upload %s: %w", path, err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(bucket, path string) string {
	return s.BaseURL + "/files/" + bucket + "/" + strings.TrimLeft(path, "/")
}

func (s *LocalStorage) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(bucket, path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}
