package jpegtran

import (
	"context"
	"errors"
	"expvar"
	"strings"

	"github.com/DMarby/picsum-optimizer/internal/command"
	"github.com/DMarby/picsum-optimizer/internal/logger"
	"github.com/DMarby/picsum-optimizer/internal/optimizer"
)

// StripICCFilter makes jpegtran keep only comment markers
const StripICCFilter = "strip_icc"

var failures = expvar.NewInt("counter_jpegtran_failures")

// Failures returns how many jpegtran runs have failed in this process
func Failures() int64 {
	return failures.Value()
}

// Config configures the jpegtran optimizer
type Config struct {
	Path        string // Path to the jpegtran binary
	Progressive bool
}

// Optimizer losslessly optimizes jpeg images using jpegtran
type Optimizer struct {
	config Config
	runner command.Runner
	log    *logger.Logger
}

var _ optimizer.Optimizer = (*Optimizer)(nil)

// New creates a new jpegtran optimizer
func New(config Config, runner command.Runner, log *logger.Logger) *Optimizer {
	return &Optimizer{
		config: config,
		runner: runner,
		log:    log,
	}
}

// ShouldRun returns whether the extension is a jpeg extension
func (o *Optimizer) ShouldRun(extension string, buffer []byte) bool {
	switch strings.ToLower(extension) {
	case ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

// Args returns the jpegtran command line for a request
func (o *Optimizer) Args(request *optimizer.Request) []string {
	copyMarkers := "all"
	if request.HasFilter(StripICCFilter) {
		copyMarkers = "comments"
	}

	args := []string{o.config.Path, "-copy", copyMarkers}
	if o.config.Progressive {
		args = append(args, "-progressive")
	}

	return args
}

// RunOptimizer pipes the buffer through jpegtran and returns its output
// The original buffer is returned if the extension doesn't match or jpegtran fails
func (o *Optimizer) RunOptimizer(ctx context.Context, request *optimizer.Request, extension string, buffer []byte) []byte {
	if !o.ShouldRun(extension, buffer) {
		return buffer
	}

	output, err := o.runner.Run(ctx, o.Args(request), buffer)
	if err != nil {
		failures.Add(1)

		fields := []interface{}{"error", err, "extension", extension}
		var cmdErr *command.Error
		if errors.As(err, &cmdErr) {
			fields = append(fields, "exit-code", cmdErr.ExitCode, "stderr", cmdErr.Stderr)
		}

		o.log.Warnw("jpegtran failed, returning original image", fields...)
		return buffer
	}

	return output
}
