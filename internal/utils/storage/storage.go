package storage

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Storage persists an uploaded file under the given name and returns the
// URL the stored copy is reachable at.
type Storage interface {
	Save(ctx context.Context, name string, file *multipart.FileHeader) (string, error)
}

// AllowImage lists the upload extensions accepted for food photos.
var AllowImage = []string{".png", ".jpg", ".jpeg", ".gif"}

func IsAllowedImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowImage {
		if ext == allowed {
			return true
		}
	}
	return false
}

// MimeType maps an image filename to its MIME type, defaulting to jpeg.
func MimeType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
