package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, ":8000", cfg.HTTPAddr())
	assert.Equal(t, "forest", cfg.Model.Format)
	assert.Equal(t, "loan_default_model.json", cfg.Model.ArtifactPath)
	assert.Equal(t, 100, cfg.Model.Trees)
	assert.Equal(t, uint64(42), cfg.Model.Seed)
	assert.Equal(t, 0.2, cfg.Model.TestSize)
	assert.Equal(t, "csv", cfg.Dataset.Source)
	assert.Equal(t, "loan_default.csv", cfg.Dataset.File)
	assert.False(t, cfg.GRPC.Enabled)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("GRPC_ENABLED", "true")
	t.Setenv("GRPC_PORT", "9091")
	t.Setenv("MODEL_FILE", "/models/clf.json")
	t.Setenv("MODEL_TEST_SIZE", "0.25")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("PREDICTION_CACHE_SIZE", "0")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTPPort)
	assert.True(t, cfg.GRPC.Enabled)
	assert.Equal(t, ":9091", cfg.GRPCAddr())
	assert.Equal(t, "/models/clf.json", cfg.Model.ArtifactPath)
	assert.Equal(t, 0.25, cfg.Model.TestSize)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, 0, cfg.Model.CacheSize)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("GRPC_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.False(t, cfg.GRPC.Enabled)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loanrisk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_port: 7000
model:
  format: onnx
  onnx_path: /models/clf.onnx
dataset:
  file: /data/history.csv
kafka:
  brokers: ["file-broker:9092"]
  topic: from-file
`), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("KAFKA_TOPIC", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.HTTPPort)
	assert.Equal(t, "onnx", cfg.Model.Format)
	assert.Equal(t, "/models/clf.onnx", cfg.Model.ONNXPath)
	assert.Equal(t, "/data/history.csv", cfg.Dataset.File)
	assert.Equal(t, []string{"file-broker:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "from-env", cfg.Kafka.Topic)
	// untouched keys keep defaults
	assert.Equal(t, 100, cfg.Model.Trees)
}

func TestLoad_MissingYAMLFileUsesDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.HTTPPort)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_port: [oops"), 0o600))
	t.Setenv(ConfigFileEnv, path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "unknown model format", mutate: func(c *Config) { c.Model.Format = "pickle" }, wantErr: "MODEL_FORMAT"},
		{name: "unknown dataset source", mutate: func(c *Config) { c.Dataset.Source = "s3" }, wantErr: "DATASET_SOURCE"},
		{name: "postgres without password", mutate: func(c *Config) { c.Dataset.Source = "postgres" }, wantErr: "DB_PASSWORD"},
		{name: "prediction log without password", mutate: func(c *Config) { c.DB.PredictionLog = true }, wantErr: "DB_PASSWORD"},
		{name: "bad http port", mutate: func(c *Config) { c.HTTPPort = 0 }, wantErr: "HTTP_PORT"},
		{name: "bad grpc port when enabled", mutate: func(c *Config) { c.GRPC.Enabled = true; c.GRPC.Port = 70000 }, wantErr: "GRPC_PORT"},
		{name: "bad test size", mutate: func(c *Config) { c.Model.TestSize = 1 }, wantErr: "MODEL_TEST_SIZE"},
		{name: "no trees", mutate: func(c *Config) { c.Model.Trees = 0 }, wantErr: "MODEL_TREES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ClientSettings(t *testing.T) {
	cfg := Defaults()
	cfg.DB.Password = "s3cret"
	cfg.Kafka.Brokers = []string{"kafka:9092"}

	pg := cfg.Postgres()
	assert.Equal(t, "loanrisk", pg.Database)
	assert.Equal(t, "loanrisk-service", pg.ApplicationName)
	assert.Contains(t, pg.DSN(), "loanrisk:s3cret@localhost:5432/loanrisk")

	kc := cfg.KafkaClient()
	assert.Equal(t, "loanrisk-service", kc.ClientID)
	assert.False(t, kc.SASLEnabled)
	require.NoError(t, kc.Validate())

	cfg.Kafka.SASLUsername = "svc"
	cfg.Kafka.SASLMechanism = "SCRAM-SHA-512"
	assert.True(t, cfg.KafkaClient().SASLEnabled)
	assert.NoError(t, cfg.KafkaClient().Validate())

	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("KAFKA_CA_FILE", "/etc/kafka/ca.pem")
	cfg.applyEnv()
	assert.True(t, cfg.KafkaClient().TLS)
	assert.Equal(t, "/etc/kafka/ca.pem", cfg.KafkaClient().CAFile)
}
