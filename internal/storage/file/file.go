package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DMarby/picsum-optimizer/internal/storage"
)

// Provider implements a file-based image storage
type Provider struct {
	path string
}

// New returns a new Provider instance
func New(path string) (*Provider, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	return &Provider{
		path,
	}, nil
}

// Get returns the image data for a key
func (p *Provider) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := p.resolve(key)
	if err != nil {
		return nil, err
	}

	imageData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}

	return imageData, nil
}

// Put writes the image data for a key, creating directories as needed
func (p *Provider) Put(ctx context.Context, key string, data []byte) error {
	path, err := p.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return writeFile(path, data)
}

// writeFile writes to a temporary file next to path and renames it into place,
// so an interrupted write never leaves a truncated image behind
func writeFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}

	if err = tmp.Chmod(0644); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// resolve maps a key to a path, refusing keys that escape the storage root
func (p *Provider) resolve(key string) (string, error) {
	path := filepath.Join(p.path, filepath.FromSlash(key))

	rel, err := filepath.Rel(p.path, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key %q", key)
	}

	return path, nil
}
