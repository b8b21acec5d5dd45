package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux returns the handler serving /metrics and /healthz
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func StartMetricsServer(ctx context.Context, port int, log logger.Logger) *http.Server {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: NewMux(),
	}

	go func() {
		log.Info(ctx, "Metrics server starting on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "Metrics server error: %v", err)
		}
	}()

	return srv
}
