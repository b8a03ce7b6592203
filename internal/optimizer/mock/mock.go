package mock

import (
	"context"
	"strings"

	"github.com/DMarby/picsum-optimizer/internal/optimizer"
)

// Optimizer implements a mock optimizer that runs for .jpg and replaces the image with Output
type Optimizer struct {
	Output []byte
	OnRun  func(ctx context.Context) // Called before returning Output
}

// ShouldRun returns whether the extension is .jpg
func (o *Optimizer) ShouldRun(extension string, buffer []byte) bool {
	return strings.ToLower(extension) == ".jpg"
}

// RunOptimizer returns Output
func (o *Optimizer) RunOptimizer(ctx context.Context, request *optimizer.Request, extension string, buffer []byte) []byte {
	if o.OnRun != nil {
		o.OnRun(ctx)
	}

	return o.Output
}

var _ optimizer.Optimizer = (*Optimizer)(nil)
