package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
)

func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("reading form: %v", err)
	}
	return form.File["image"][0]
}

func TestLocalStorage_SaveAndServePath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/static/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage error: %v", err)
	}

	url, err := store.Save(context.Background(), "1700000000_dinner.jpg", uploadedFile(t, "dinner.jpg", []byte("jpegbytes")))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if url != "/static/uploads/1700000000_dinner.jpg" {
		t.Fatalf("unexpected public path: %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "1700000000_dinner.jpg"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "jpegbytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestIsAllowedImage(t *testing.T) {
	allowed := []string{"a.png", "b.jpg", "c.JPEG", "d.gif"}
	for _, name := range allowed {
		if !IsAllowedImage(name) {
			t.Errorf("IsAllowedImage(%q) = false, want true", name)
		}
	}

	rejected := []string{"e.webp", "f.txt", "g.exe", "noext", "h.jpg.sh"}
	for _, name := range rejected {
		if IsAllowedImage(name) {
			t.Errorf("IsAllowedImage(%q) = true, want false", name)
		}
	}
}
