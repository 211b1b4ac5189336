package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/kafka"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/postgres"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML
// file. Values from the file are applied first; environment variables win.
const ConfigFileEnv = "LOANRISK_CONFIG"

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ModelConfig struct {
	// Format selects the model provider: "forest" trains or loads a random
	// forest artifact, "onnx" serves an exported ONNX classifier.
	Format       string  `yaml:"format"`
	ArtifactPath string  `yaml:"artifact_path"`
	ONNXPath     string  `yaml:"onnx_path"`
	ONNXLibrary  string  `yaml:"onnx_library"`
	Trees        int     `yaml:"trees"`
	Seed         uint64  `yaml:"seed"`
	TestSize     float64 `yaml:"test_size"`
	CacheSize    int     `yaml:"cache_size"`
}

type DatasetConfig struct {
	// Source is "csv" or "postgres".
	Source string `yaml:"source"`
	File   string `yaml:"file"`
	Table  string `yaml:"table"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	// MigrationsPath is a golang-migrate source URL.
	MigrationsPath string `yaml:"migrations_path"`
	// PredictionLog writes every scored prediction to the prediction_log table.
	PredictionLog bool `yaml:"prediction_log"`
}

type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	Topic         string   `yaml:"topic"`
	TLS           bool     `yaml:"tls"`
	CAFile        string   `yaml:"ca_file"`
	SASLMechanism string   `yaml:"sasl_mechanism"`
	SASLUsername  string   `yaml:"sasl_username"`
	SASLPassword  string   `yaml:"sasl_password"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`
}

type GRPCConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Port        int    `yaml:"port"`
	Reflection  bool   `yaml:"reflection"`
	TLSCertFile string `yaml:"tls_cert_file"`
	TLSKeyFile  string `yaml:"tls_key_file"`
	// JWTSecret or JWTPublicKeyFile turns on bearer token checks for RPCs.
	JWTSecret        string `yaml:"jwt_secret"`
	JWTPublicKeyFile string `yaml:"jwt_public_key_file"`
	JWTIssuer        string `yaml:"jwt_issuer"`
}

// Config holds all configuration for the loan risk service.
type Config struct {
	ServiceName string          `yaml:"service_name"`
	Environment string          `yaml:"environment"`
	HTTPPort    int             `yaml:"http_port"`
	GRPC        GRPCConfig      `yaml:"grpc"`
	Log         LogConfig       `yaml:"log"`
	Model       ModelConfig     `yaml:"model"`
	Dataset     DatasetConfig   `yaml:"dataset"`
	DB          DatabaseConfig  `yaml:"database"`
	Kafka       KafkaConfig     `yaml:"kafka"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		ServiceName: "loanrisk-service",
		Environment: "development",
		HTTPPort:    8000,
		GRPC: GRPCConfig{
			Port: 9000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Model: ModelConfig{
			Format:       "forest",
			ArtifactPath: "loan_default_model.json",
			ONNXPath:     "loan_default_model.onnx",
			Trees:        100,
			Seed:         42,
			TestSize:     0.2,
			CacheSize:    1024,
		},
		Dataset: DatasetConfig{
			Source: "csv",
			File:   "loan_default.csv",
			Table:  "loan_history",
		},
		DB: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "loanrisk",
			Name:           "loanrisk",
			SSLMode:        "require",
			MigrationsPath: "file://migrations",
		},
		Kafka: KafkaConfig{
			Topic: "loan-risk-events",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by LOANRISK_CONFIG, and environment variables, in that order.
func Load() (Config, error) {
	cfg := Defaults()

	if path := getEnv(ConfigFileEnv, ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays YAML values onto cfg. A missing file leaves cfg unchanged.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.HTTPPort = getEnvInt("HTTP_PORT", c.HTTPPort)

	c.GRPC.Enabled = getEnvBool("GRPC_ENABLED", c.GRPC.Enabled)
	c.GRPC.Port = getEnvInt("GRPC_PORT", c.GRPC.Port)
	c.GRPC.Reflection = getEnvBool("GRPC_REFLECTION", c.GRPC.Reflection)
	c.GRPC.TLSCertFile = getEnv("GRPC_TLS_CERT_FILE", c.GRPC.TLSCertFile)
	c.GRPC.TLSKeyFile = getEnv("GRPC_TLS_KEY_FILE", c.GRPC.TLSKeyFile)
	c.GRPC.JWTSecret = getEnv("JWT_SECRET", c.GRPC.JWTSecret)
	c.GRPC.JWTPublicKeyFile = getEnv("JWT_PUBLIC_KEY_FILE", c.GRPC.JWTPublicKeyFile)
	c.GRPC.JWTIssuer = getEnv("JWT_ISSUER", c.GRPC.JWTIssuer)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	c.Model.Format = getEnv("MODEL_FORMAT", c.Model.Format)
	c.Model.ArtifactPath = getEnv("MODEL_FILE", c.Model.ArtifactPath)
	c.Model.ONNXPath = getEnv("ONNX_MODEL_FILE", c.Model.ONNXPath)
	c.Model.ONNXLibrary = getEnv("ONNXRUNTIME_SHARED_LIBRARY_PATH", c.Model.ONNXLibrary)
	c.Model.Trees = getEnvInt("MODEL_TREES", c.Model.Trees)
	c.Model.Seed = uint64(getEnvInt("MODEL_SEED", int(c.Model.Seed)))
	c.Model.TestSize = getEnvFloat("MODEL_TEST_SIZE", c.Model.TestSize)
	c.Model.CacheSize = getEnvInt("PREDICTION_CACHE_SIZE", c.Model.CacheSize)

	c.Dataset.Source = getEnv("DATASET_SOURCE", c.Dataset.Source)
	c.Dataset.File = getEnv("DATASET_FILE", c.Dataset.File)
	c.Dataset.Table = getEnv("DATASET_TABLE", c.Dataset.Table)

	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnvInt("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)
	c.DB.SSLMode = getEnv("DB_SSLMODE", c.DB.SSLMode)
	c.DB.MigrationsPath = getEnv("DB_MIGRATIONS_PATH", c.DB.MigrationsPath)
	c.DB.PredictionLog = getEnvBool("PREDICTION_LOG_ENABLED", c.DB.PredictionLog)

	c.Kafka.Brokers = getEnvList("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)
	c.Kafka.TLS = getEnvBool("KAFKA_TLS", c.Kafka.TLS)
	c.Kafka.CAFile = getEnv("KAFKA_CA_FILE", c.Kafka.CAFile)
	c.Kafka.SASLMechanism = getEnv("KAFKA_SASL_MECHANISM", c.Kafka.SASLMechanism)
	c.Kafka.SASLUsername = getEnv("KAFKA_SASL_USERNAME", c.Kafka.SASLUsername)
	c.Kafka.SASLPassword = getEnv("KAFKA_SASL_PASSWORD", c.Kafka.SASLPassword)

	c.Telemetry.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Telemetry.OTLPEndpoint)
	c.Telemetry.OTLPInsecure = getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", c.Telemetry.OTLPInsecure)
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch c.Model.Format {
	case "forest", "onnx":
	default:
		return fmt.Errorf("MODEL_FORMAT must be forest or onnx, got %q", c.Model.Format)
	}
	switch c.Dataset.Source {
	case "csv", "postgres":
	default:
		return fmt.Errorf("DATASET_SOURCE must be csv or postgres, got %q", c.Dataset.Source)
	}
	if c.DatabaseRequired() && c.DB.Password == "" {
		return errors.New("DB_PASSWORD is required when DATASET_SOURCE=postgres or PREDICTION_LOG_ENABLED=true")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.GRPC.Enabled && (c.GRPC.Port <= 0 || c.GRPC.Port > 65535) {
		return fmt.Errorf("GRPC_PORT out of range: %d", c.GRPC.Port)
	}
	if c.Model.TestSize <= 0 || c.Model.TestSize >= 1 {
		return fmt.Errorf("MODEL_TEST_SIZE must be in (0, 1), got %v", c.Model.TestSize)
	}
	if c.Model.Trees <= 0 {
		return fmt.Errorf("MODEL_TREES must be positive, got %d", c.Model.Trees)
	}
	return nil
}

// HTTPAddr returns the full HTTP listen address.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GRPCAddr returns the full gRPC listen address.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPC.Port)
}

// DatabaseRequired reports whether the service needs a PostgreSQL connection.
func (c Config) DatabaseRequired() bool {
	return c.Dataset.Source == "postgres" || c.DB.PredictionLog
}

// KafkaEnabled reports whether events should go to Kafka.
func (c Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// KafkaClient returns the client settings for pkg/kafka. SASL is on when a
// username is set.
func (c Config) KafkaClient() kafka.Config {
	return kafka.Config{
		Brokers:       c.Kafka.Brokers,
		ClientID:      c.ServiceName,
		TLS:           c.Kafka.TLS,
		CAFile:        c.Kafka.CAFile,
		SASLEnabled:   c.Kafka.SASLUsername != "",
		SASLMechanism: c.Kafka.SASLMechanism,
		SASLUsername:  c.Kafka.SASLUsername,
		SASLPassword:  c.Kafka.SASLPassword,
	}
}

// Postgres returns the connection settings for pkg/postgres.
func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:            c.DB.Host,
		Port:            c.DB.Port,
		User:            c.DB.User,
		Password:        c.DB.Password,
		Database:        c.DB.Name,
		SSLMode:         c.DB.SSLMode,
		ApplicationName: c.ServiceName,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
