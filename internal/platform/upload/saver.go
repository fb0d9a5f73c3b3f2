// Package upload stores multipart image uploads on the local filesystem.
package upload

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize is the maximum accepted upload size (2MB).
const MaxFileSize = 2 * 1024 * 1024

// allowedExtensions whitelists the accepted image extensions.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// Saver writes uploads under a base directory and returns their public
// paths. Filenames are random, so an upload can never overwrite another.
type Saver struct {
	baseDir string
}

// NewSaver creates a new Saver rooted at baseDir.
func NewSaver(baseDir string) *Saver {
	return &Saver{baseDir: baseDir}
}

// Save validates the upload and writes it to <baseDir>/<folder>/<random>.<ext>,
// returning the public path /uploads/<folder>/<random>.<ext>.
func (s *Saver) Save(file *multipart.FileHeader, folder string) (string, error) {
	if file.Size > MaxFileSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", MaxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	name, err := randomName()
	if err != nil {
		return "", err
	}
	filename := name + ext

	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return "/uploads/" + folder + "/" + filename, nil
}

// randomName returns a 16-byte random hex filename stem.
func randomName() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}
	return hex.EncodeToString(b), nil
}
