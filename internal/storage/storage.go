package storage

import (
	"context"
	"errors"
)

// Provider is an interface for retrieving and storing images
type Provider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Errors
var (
	ErrNotFound = errors.New("Image does not exist")
)
