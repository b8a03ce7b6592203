package metrics

import (
	"context"
	"net/http"
	"net/http/pprof"

	"github.com/DMarby/picsum-optimizer/internal/logger"
	"tailscale.com/tsweb"
)

// Router returns a http handler exposing the expvar metrics in prometheus format, and pprof
func Router() http.Handler {
	router := http.NewServeMux()
	router.HandleFunc("/metrics", tsweb.VarzHandler)

	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return router
}

// Serve starts an http server for metrics, and shuts it down when ctx is done
func Serve(ctx context.Context, log *logger.Logger, listenAddress string) {
	server := &http.Server{
		Addr:    listenAddress,
		Handler: Router(),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warnf("shutting down the metrics http server: %s", err)
		}
	}()

	log.Infof("metrics http server listening on %s", listenAddress)

	<-ctx.Done()

	if err := server.Close(); err != nil {
		log.Warnf("error shutting down metrics http server: %s", err)
	}
}
