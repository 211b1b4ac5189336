package rest

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/metric"
)

// RouterConfig collects the handlers served on the HTTP port.
type RouterConfig struct {
	Prediction *PredictionHandler
	Health     *HealthHandler
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Meter enables request duration metrics when set.
	Meter  metric.Meter
	Logger *slog.Logger
}

// NewRouter registers every route and wraps the mux in recovery, CORS,
// metrics and access logging.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	mux := http.NewServeMux()
	cfg.Prediction.RegisterRoutes(mux)
	cfg.Health.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	mws := []Middleware{
		LoggingMiddleware(cfg.Logger),
		RecoveryMiddleware(cfg.Logger),
		CORSMiddleware(),
	}
	if cfg.Meter != nil {
		mw, err := MetricsMiddleware(mux, cfg.Meter)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}

	return Chain(mux, mws...), nil
}
