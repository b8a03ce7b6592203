package optimizer

import (
	"context"
)

// Optimizer post-processes an encoded image
type Optimizer interface {
	// ShouldRun reports whether the optimizer applies to an image with the given extension
	ShouldRun(extension string, buffer []byte) bool
	// RunOptimizer returns the optimized image, or the original buffer if it could not be optimized
	RunOptimizer(ctx context.Context, request *Request, extension string, buffer []byte) []byte
}

// Request contains the filters attached to an image request, in order
type Request struct {
	Filters []string
}

// NewRequest creates a new request with the given filters
func NewRequest(filters ...string) *Request {
	return &Request{
		Filters: filters,
	}
}

// HasFilter returns whether the request contains the named filter
func (r *Request) HasFilter(name string) bool {
	if r == nil {
		return false
	}

	for _, filter := range r.Filters {
		if filter == name {
			return true
		}
	}

	return false
}

// Run runs the optimizer if it applies to the extension, otherwise it returns the buffer untouched
func Run(ctx context.Context, o Optimizer, request *Request, extension string, buffer []byte) []byte {
	if !o.ShouldRun(extension, buffer) {
		return buffer
	}

	return o.RunOptimizer(ctx, request, extension, buffer)
}
