package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/DMarby/picsum-optimizer/internal/batch"
	"github.com/DMarby/picsum-optimizer/internal/cmd"
	"github.com/DMarby/picsum-optimizer/internal/command"
	"github.com/DMarby/picsum-optimizer/internal/logger"
	"github.com/DMarby/picsum-optimizer/internal/metrics"
	"github.com/DMarby/picsum-optimizer/internal/optimizer"
	"github.com/DMarby/picsum-optimizer/internal/optimizer/jpegtran"
	"github.com/DMarby/picsum-optimizer/internal/storage"
	fileStorage "github.com/DMarby/picsum-optimizer/internal/storage/file"
	"github.com/DMarby/picsum-optimizer/internal/storage/spaces"
	"github.com/DMarby/picsum-optimizer/internal/tracing"

	"github.com/jamiealquiza/envy"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

const serviceName = "jpegtran-optimizer"

// Comandline flags
var (
	// Global
	loglevel = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")
	workers  = flag.Int("workers", 3, "number of images to optimize concurrently in batch mode")

	// Jpegtran
	jpegtranPath = flag.String("jpegtran-path", "jpegtran", "path to the jpegtran binary")
	progressive  = flag.Bool("progressive", false, "output progressive jpegs")

	// Request
	filters   = flag.String("filters", "", "comma separated list of request filters, e.g. strip_icc")
	extension = flag.String("extension", ".jpg", "extension of the image read from stdin")

	// Storage
	storageBackend = flag.String("storage", "file", "which storage backend to read images from in batch mode (file, spaces)")
	outputPath     = flag.String("output-path", "", "directory to write optimized images to, defaults to overwriting the source images")

	// Storage - File
	storageFilePath = flag.String("storage-file-path", ".", "path to the file storage")

	// Storage - Spaces
	storageSpacesSpace          = flag.String("storage-spaces-space", "", "digitalocean space to use")
	storageSpacesEndpoint       = flag.String("storage-spaces-endpoint", "", "spaces endpoint")
	storageSpacesAccessKey      = flag.String("storage-spaces-access-key", "", "spaces access key")
	storageSpacesSecretKey      = flag.String("storage-spaces-secret-key", "", "spaces secret key")
	storageSpacesForcePathStyle = flag.Bool("storage-spaces-force-path-style", false, "use path style addressing for the spaces endpoint")

	// Metrics
	metricsListen = flag.String("metrics-listen", "", "listen address for the metrics and pprof http server in batch mode, disabled when empty")

	// Tracing
	tracingEnabled = flag.Bool("tracing", false, "export traces over otlp, configured through the OTEL_EXPORTER_OTLP_* environment variables")
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse environment variables
	envy.Parse("OPTIMIZER")

	// Parse commandline flags
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [key...]\n\nOptimizes stdin to stdout, or the images stored under the given keys.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	keys := flag.Args()

	// Initialize the logger, stdout carries the image when optimizing stdin
	var log *logger.Logger
	if len(keys) == 0 {
		log = logger.NewWithOutput(*loglevel, os.Stderr)
	} else {
		log = logger.New(*loglevel)
	}
	defer log.Sync()

	// Set GOMAXPROCS
	maxprocs.Set(maxprocs.Logger(log.Debugf))

	// Set up context for shutting down
	shutdownCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	go func() {
		if err := cmd.WaitForInterrupt(shutdownCtx); shutdownCtx.Err() == nil {
			log.Infof("shutting down: %s", err)
			shutdown()
		}
	}()

	// Initialize tracing
	tracer := tracing.Noop(log)
	if *tracingEnabled {
		var err error
		tracer, err = tracing.New(shutdownCtx, log, serviceName)
		if err != nil {
			log.Errorf("error initializing tracing: %s", err)
			return 1
		}
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
		defer cancel()
		tracer.Shutdown(ctx)
	}()

	// Initialize the optimizer
	jpegtranOptimizer := jpegtran.New(jpegtran.Config{
		Path:        *jpegtranPath,
		Progressive: *progressive,
	}, command.Exec{}, log)
	request := optimizer.NewRequest(cmd.SplitList(*filters)...)

	if len(keys) == 0 {
		if err := optimizeStream(shutdownCtx, jpegtranOptimizer, request, *extension, os.Stdin, os.Stdout); err != nil {
			log.Errorf("error optimizing stdin: %s", err)
			return 1
		}
		return 0
	}

	// Initialize the storage
	source, destination, err := setupStorage()
	if err != nil {
		log.Errorf("error initializing storage: %s", err)
		return 1
	}

	// Serve metrics while the batch runs
	if *metricsListen != "" {
		metricsCtx, metricsCancel := context.WithCancel(shutdownCtx)
		defer metricsCancel()
		go metrics.Serve(metricsCtx, log, *metricsListen)
	}

	processor := batch.New(shutdownCtx, log, tracer, *workers, source, destination, jpegtranOptimizer)

	tasks := make([]*batch.Task, 0, len(keys))
	for _, key := range keys {
		tasks = append(tasks, batch.NewTask(key, request))
	}

	if err := processor.OptimizeAll(shutdownCtx, tasks); err != nil {
		log.Errorw("error optimizing images", "error", err, "jpegtran-failures", jpegtran.Failures())
		return 1
	}

	log.Infow("optimized images", "images", len(tasks), "jpegtran-failures", jpegtran.Failures())
	return 0
}

// optimizeStream reads a whole image from in and writes the optimized image to out
func optimizeStream(ctx context.Context, o optimizer.Optimizer, request *optimizer.Request, extension string, in io.Reader, out io.Writer) error {
	buffer, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	_, err = out.Write(optimizer.Run(ctx, o, request, extension, buffer))
	return err
}

func setupStorage() (source storage.Provider, destination storage.Provider, err error) {
	switch *storageBackend {
	case "file":
		source, err = fileStorage.New(*storageFilePath)
	case "spaces":
		source, err = spaces.New(*storageSpacesSpace, *storageSpacesEndpoint, *storageSpacesAccessKey, *storageSpacesSecretKey, *storageSpacesForcePathStyle)
	default:
		err = fmt.Errorf("invalid storage backend")
	}

	if err != nil {
		return
	}

	destination = source
	if *outputPath != "" {
		if err = os.MkdirAll(*outputPath, 0755); err != nil {
			return
		}

		destination, err = fileStorage.New(*outputPath)
	}

	return
}
