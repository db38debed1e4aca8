package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
)

// localStorage writes uploads to a directory served by the /static route.
// Files are retained indefinitely; they back the history records.
type localStorage struct {
	dir          string
	publicPrefix string
}

func NewLocalStorage(dir, publicPrefix string) (Storage, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &localStorage{dir: dir, publicPrefix: publicPrefix}, nil
}

func (s *localStorage) Save(_ context.Context, name string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("writing stored file: %w", err)
	}

	return path.Join(s.publicPrefix, name), nil
}
