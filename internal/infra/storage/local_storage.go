// Package storage provides a local-disk implementation of the FileStorage
// domain service for uploaded sauce images.
package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"piquant/config"
	"piquant/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// localStorage saves uploads under a single directory that the HTTP layer
// serves statically.
type localStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage is the constructor for localStorage. It creates the
// image directory if it does not exist yet.
func NewLocalStorage(cfg *config.Config) (service.FileStorage, error) {
	if cfg.Storage == nil || cfg.Storage.ImageDir == "" || cfg.Storage.BaseURL == "" {
		return nil, errors.New("storage imageDir and baseUrl must be configured")
	}

	if err := os.MkdirAll(cfg.Storage.ImageDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create image directory")
	}

	return &localStorage{
		dir:     cfg.Storage.ImageDir,
		baseURL: strings.TrimSuffix(cfg.Storage.BaseURL, "/"),
	}, nil
}

// Store writes the content to disk under a collision-free name derived from
// the suggested name and returns its public URL. Spaces in the original
// name are replaced and a random suffix avoids duplicates.
func (s *localStorage) Store(ctx context.Context, content io.Reader, suggestedName string) (string, error) {
	name := buildFilename(suggestedName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "failed to create image file")
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		// Remove the partial file so no orphan is left behind.
		os.Remove(f.Name())

		return "", errors.Wrap(err, "failed to write image file")
	}

	return s.baseURL + "/" + name, nil
}

// Remove deletes the file behind a previously returned URL. A missing file
// is not an error.
func (s *localStorage) Remove(ctx context.Context, url string) error {
	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		return errors.Errorf("invalid stored file url: %s", url)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove image file")
	}

	return nil
}

// buildFilename sanitizes the client-supplied name and appends a random
// suffix, keeping the extension so static serving sets the right mime type.
func buildFilename(suggestedName string) string {
	base := strings.ReplaceAll(filepath.Base(suggestedName), " ", "_")
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || stem == "." {
		stem = "image"
	}

	return stem + "_" + uuid.NewString() + ext
}
