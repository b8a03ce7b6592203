package mock

import (
	"context"
	"errors"
)

// Provider implements a broken image storage
type Provider struct {
}

// Get returns an error
func (p *Provider) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("get error")
}

// Put returns an error
func (p *Provider) Put(ctx context.Context, key string, data []byte) error {
	return errors.New("put error")
}
