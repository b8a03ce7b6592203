package batch

import (
	"context"
	"expvar"
	"fmt"
	"path"
	"strings"

	"github.com/DMarby/picsum-optimizer/internal/logger"
	"github.com/DMarby/picsum-optimizer/internal/optimizer"
	"github.com/DMarby/picsum-optimizer/internal/queue"
	"github.com/DMarby/picsum-optimizer/internal/storage"
	"github.com/DMarby/picsum-optimizer/internal/tracing"
	"golang.org/x/sync/errgroup"
)

var (
	queueSize       = expvar.NewInt("gauge_optimizer_queue_size")
	processedImages = expvar.NewMap("counter_labelmap_extension_optimizer_processed_images")
)

// Task is an image to optimize
type Task struct {
	Key       string
	Extension string // Defaults to the extension of Key
	Request   *optimizer.Request
}

// NewTask creates a new task for the image stored under key
func NewTask(key string, request *optimizer.Request) *Task {
	return &Task{
		Key:     key,
		Request: request,
	}
}

func (t *Task) extension() string {
	if t.Extension != "" {
		return t.Extension
	}

	return path.Ext(t.Key)
}

// Processor optimizes images from one storage into another using a worker queue
type Processor struct {
	queue       *queue.Queue
	source      storage.Provider
	destination storage.Provider
	optimizer   optimizer.Optimizer
	log         *logger.Logger
	tracer      *tracing.Tracer
}

// New initializes a new processor and starts its workers
// The workers stop when ctx is done
func New(ctx context.Context, log *logger.Logger, tracer *tracing.Tracer, workers int, source, destination storage.Provider, o optimizer.Optimizer) *Processor {
	p := &Processor{
		source:      source,
		destination: destination,
		optimizer:   o,
		log:         log,
		tracer:      tracer,
	}

	p.queue = queue.New(ctx, workers, p.process)
	go p.queue.Run()
	log.Infof("starting optimizer worker queue with %d workers", workers)

	return p
}

// Optimize queues a task, waits for it to complete, and returns the stored image
func (p *Processor) Optimize(ctx context.Context, task *Task) ([]byte, error) {
	ctx, span := p.tracer.Start(ctx, "batch.Optimize")
	defer span.End()

	queueSize.Add(1)
	defer queueSize.Add(-1)

	result, err := p.queue.Process(ctx, task)
	if err != nil {
		return nil, err
	}

	buffer, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("error getting result")
	}

	return buffer, nil
}

// OptimizeAll optimizes all tasks concurrently, returning the first error encountered
func (p *Processor) OptimizeAll(ctx context.Context, tasks []*Task) error {
	group, ctx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		task := task
		group.Go(func() error {
			if _, err := p.Optimize(ctx, task); err != nil {
				return fmt.Errorf("error optimizing %s: %w", task.Key, err)
			}

			p.log.Debugw("optimized image", "key", task.Key)
			return nil
		})
	}

	return group.Wait()
}

func (p *Processor) process(ctx context.Context, data interface{}) (interface{}, error) {
	task, ok := data.(*Task)
	if !ok {
		return nil, fmt.Errorf("invalid data")
	}

	buffer, err := p.get(ctx, task.Key)
	if err != nil {
		return nil, fmt.Errorf("error getting image from storage: %w", err)
	}

	extension := task.extension()
	result := optimizer.Run(ctx, p.optimizer, task.Request, extension, buffer)
	processedImages.Add(strings.ToLower(extension), 1)

	// jpegtran is killed on cancellation, don't store whatever it fell back to
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.put(ctx, task.Key, result); err != nil {
		return nil, fmt.Errorf("error storing image: %w", err)
	}

	return result, nil
}

func (p *Processor) get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := p.tracer.Start(ctx, "storage.Get")
	defer span.End()

	return p.source.Get(ctx, key)
}

func (p *Processor) put(ctx context.Context, key string, data []byte) error {
	ctx, span := p.tracer.Start(ctx, "storage.Put")
	defer span.End()

	return p.destination.Put(ctx, key, data)
}
