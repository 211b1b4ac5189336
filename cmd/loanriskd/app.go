package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/metric"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/dto"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/usecase"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/service"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/config"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/dataset"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/messaging"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/metrics"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml/forest"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml/onnx"
	infrapostgres "github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/postgres"
	grpcpresentation "github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/presentation/grpc"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/presentation/rest"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/auth"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/kafka"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/postgres"
)

// app holds everything the servers share. It is built once at startup and
// passed around explicitly.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	meter     metric.Meter
	modelInfo dto.ModelInfo
	predict   *usecase.PredictDefault
	checks    map[string]rest.ReadinessCheck
	pool      *pgxpool.Pool
	closers   []func() error
}

// newApp obtains the classifier and wires the prediction use case. Any error
// here is fatal to startup.
func newApp(ctx context.Context, cfg config.Config, meter metric.Meter, logger *slog.Logger) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: logger,
		meter:  meter,
		checks: map[string]rest.ReadinessCheck{},
	}

	classifier, err := a.loadClassifier(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	publisher, err := a.eventPublisher(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	recorder, err := metrics.NewPredictionRecorder(meter)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create prediction recorder: %w", err)
	}

	a.predict = usecase.NewPredictDefault(classifier, service.NewScoringPolicy(), publisher, recorder, logger)
	return a, nil
}

// loadClassifier returns the serving classifier wrapped in instrumentation and,
// when configured, a prediction cache.
func (a *app) loadClassifier(ctx context.Context) (port.Classifier, error) {
	var (
		base port.Classifier
		err  error
	)
	switch a.cfg.Model.Format {
	case "onnx":
		base, err = a.loadONNX()
	default:
		base, err = a.bootstrapForest(ctx)
	}
	if err != nil {
		return nil, err
	}

	clf, err := ml.NewInstrumentedClassifier(base, a.meter, a.cfg.Model.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to instrument classifier: %w", err)
	}

	if a.cfg.Model.CacheSize > 0 {
		cached, err := ml.NewCachedClassifier(clf, a.cfg.Model.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create prediction cache: %w", err)
		}
		return cached, nil
	}
	return clf, nil
}

func (a *app) loadONNX() (port.Classifier, error) {
	clf, err := onnx.Load(a.cfg.Model.ONNXPath, a.cfg.Model.ONNXLibrary)
	if err != nil {
		return nil, fmt.Errorf("failed to load onnx model: %w", err)
	}
	a.closers = append(a.closers, clf.Close)

	a.modelInfo = dto.ModelInfo{
		Source:   dto.ModelSourceONNX,
		Path:     a.cfg.Model.ONNXPath,
		LoadedAt: time.Now().UTC(),
	}
	a.logger.Info("onnx model loaded", slog.String("path", a.cfg.Model.ONNXPath))
	return clf, nil
}

func (a *app) bootstrapForest(ctx context.Context) (port.Classifier, error) {
	loader, err := a.datasetLoader(ctx)
	if err != nil {
		return nil, err
	}

	trainer := ml.NewForestTrainer(forest.Params{
		Trees: a.cfg.Model.Trees,
		Seed:  a.cfg.Model.Seed,
	}, a.cfg.Model.TestSize)

	bootstrap := usecase.NewBootstrapModel(
		ml.NewFileModelStore(a.cfg.Model.ArtifactPath),
		loader,
		trainer,
		a.cfg.Model.ArtifactPath,
		a.logger,
	)

	clf, info, err := bootstrap.Execute(ctx)
	if err != nil {
		return nil, err
	}
	a.modelInfo = info
	return clf, nil
}

// datasetLoader returns the training data source.
func (a *app) datasetLoader(ctx context.Context) (port.DatasetLoader, error) {
	if a.cfg.Dataset.Source != "postgres" {
		return dataset.NewCSVLoader(a.cfg.Dataset.File), nil
	}

	pool, err := a.database(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.NewPostgresLoader(pool, a.cfg.Dataset.Table), nil
}

// database runs migrations and opens the pool on first use. The pool is
// shared by the dataset loader and the prediction log and adds a readiness
// check.
func (a *app) database(ctx context.Context) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}

	pgCfg := a.cfg.Postgres()
	result, err := postgres.Migrate(a.cfg.DB.MigrationsPath, pgCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	a.logger.Info("database migrations applied",
		slog.Uint64("version", uint64(result.Version)),
		slog.Bool("changed", result.Changed),
	)

	pool, err := postgres.NewPool(ctx, pgCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})
	a.checks["database"] = func(ctx context.Context) error {
		return postgres.HealthCheck(ctx, pool)
	}

	a.pool = pool
	return pool, nil
}

// eventPublisher sends events to Kafka when brokers are configured and to the
// log otherwise, plus the prediction log when enabled.
func (a *app) eventPublisher(ctx context.Context) (port.EventPublisher, error) {
	var primary port.EventPublisher
	if a.cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(a.cfg.KafkaClient())
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka producer: %w", err)
		}
		a.closers = append(a.closers, producer.Close)

		a.logger.Info("publishing prediction events to kafka",
			slog.Any("brokers", a.cfg.Kafka.Brokers),
			slog.String("topic", a.cfg.Kafka.Topic),
		)
		primary = messaging.NewKafkaPublisher(producer, a.cfg.Kafka.Topic, a.logger)
	} else {
		a.logger.Info("no kafka brokers configured, prediction events are logged")
		primary = messaging.NewLogPublisher(a.logger)
	}

	if !a.cfg.DB.PredictionLog {
		return primary, nil
	}

	pool, err := a.database(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("prediction log enabled")
	return messaging.NewFanoutPublisher(primary, infrapostgres.NewPredictionLog(pool)), nil
}

// HTTPHandler builds the public HTTP API. metricsHandler may be nil.
func (a *app) HTTPHandler(metricsHandler http.Handler) (http.Handler, error) {
	return rest.NewRouter(rest.RouterConfig{
		Prediction: rest.NewPredictionHandler(a.predict, a.logger),
		Health:     rest.NewHealthHandler(a.cfg.ServiceName, a.modelInfo, a.checks),
		Metrics:    metricsHandler,
		Meter:      a.meter,
		Logger:     a.logger,
	})
}

// GRPCServer returns nil when gRPC is disabled.
func (a *app) GRPCServer() (*grpcpresentation.Server, error) {
	if !a.cfg.GRPC.Enabled {
		return nil, nil
	}

	jwtService, err := a.jwtService()
	if err != nil {
		return nil, err
	}
	if jwtService == nil {
		a.logger.Warn("gRPC authentication disabled, no JWT key configured")
	}

	handler := grpcpresentation.NewLoanRiskHandler(a.predict, a.modelInfo, a.logger)
	return grpcpresentation.NewServer(handler, grpcpresentation.ServerConfig{
		Address:       a.cfg.GRPCAddr(),
		Reflection:    a.cfg.GRPC.Reflection,
		TLSCertFile:   a.cfg.GRPC.TLSCertFile,
		TLSKeyFile:    a.cfg.GRPC.TLSKeyFile,
		HealthService: a.cfg.ServiceName,
	}, jwtService, a.logger)
}

func (a *app) jwtService() (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Secret: a.cfg.GRPC.JWTSecret,
		Issuer: a.cfg.GRPC.JWTIssuer,
	}
	if path := a.cfg.GRPC.JWTPublicKeyFile; path != "" {
		pem, err := auth.LoadKeyFromFile(path)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	if jwtCfg.Secret == "" && jwtCfg.PublicKeyPEM == "" {
		return nil, nil
	}
	return auth.NewJWTService(jwtCfg)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close error", slog.String("error", err.Error()))
		}
	}
	a.closers = nil
}
