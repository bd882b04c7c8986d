package certificate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage persists uploaded certificate files outside the database. The disk
// implementation keys files by user so one employee can never collide with
// another's uploads.
type Storage interface {
	Save(userID, ext string, r io.Reader) (string, error)
	Open(storedPath string) (io.ReadCloser, error)
	Remove(storedPath string) error
}

type diskStorage struct {
	baseDir string
}

func NewDiskStorage(baseDir string) (Storage, error) {
	if baseDir == "" {
		baseDir = "./storage/certificates"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &diskStorage{baseDir: baseDir}, nil
}

func (s *diskStorage) Save(userID, ext string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d.%s", time.Now().UnixNano(), strings.TrimPrefix(ext, "."))
	storedPath := filepath.Join(userID, name)

	f, err := os.Create(filepath.Join(s.baseDir, storedPath))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return storedPath, nil
}

func (s *diskStorage) Open(storedPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.baseDir, filepath.Clean(storedPath)))
}

func (s *diskStorage) Remove(storedPath string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.Clean(storedPath)))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
