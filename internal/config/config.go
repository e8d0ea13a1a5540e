package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"model-serving-service/internal/core/domain"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Registry   RegistryConfig
	Model      ModelConfig
	Serving    ServingConfig
	Kubernetes KubernetesConfig
	Data       DataConfig
	Validation ValidationConfig
	Database   DatabaseConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

// RegistryConfig points at an MLflow-compatible model registry.
type RegistryConfig struct {
	TrackingURI string
	TokenEnv    string
	Username    string
	Password    string
	Timeout     time.Duration
}

type ModelConfig struct {
	Name  string
	Stage string
}

type ServingConfig struct {
	URL      string
	Protocol string // mlflow | kserve
	Timeout  time.Duration
}

type KubernetesConfig struct {
	Enabled        bool
	InCluster      bool
	KubeConfigPath string
	DefaultNS      string
	ServiceName    string // template, {name} and {version} are substituted
}

type DataConfig struct {
	TrainPath        string
	TestPath         string
	LabelColumn      string
	MinPositiveRatio float64
	MaxPositiveRatio float64
}

type ValidationConfig struct {
	SampleSize   int
	MinAccuracy  float64
	MinPrecision float64
	MinRecall    float64
	MinF1        float64
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	v.SetDefault("REGISTRY_TRACKING_URI", "https://dagshub.com/MANJESH-ctrl/MLOPS.mlflow")
	v.SetDefault("REGISTRY_TOKEN_ENV", "CAPSTONE_TEST")
	v.SetDefault("REGISTRY_TIMEOUT", "30s")
	v.SetDefault("MODEL_NAME", "my_model")
	v.SetDefault("MODEL_STAGE", string(domain.StageNone))

	v.SetDefault("SERVING_URL", "http://localhost:5001")
	v.SetDefault("SERVING_PROTOCOL", "mlflow")
	v.SetDefault("SERVING_TIMEOUT", "30s")

	v.SetDefault("KUBERNETES_ENABLED", false)
	v.SetDefault("KUBERNETES_IN_CLUSTER", false)
	v.SetDefault("KUBERNETES_DEFAULT_NS", "model-serving")
	v.SetDefault("KUBERNETES_SERVICE_NAME", "{name}-v{version}")

	v.SetDefault("DATA_TRAIN_PATH", "data/processed/train_final.csv")
	v.SetDefault("DATA_TEST_PATH", "data/processed/test_final.csv")
	v.SetDefault("DATA_LABEL_COLUMN", "Response")
	v.SetDefault("DATA_MIN_POSITIVE_RATIO", 0.05)
	v.SetDefault("DATA_MAX_POSITIVE_RATIO", 0.95)

	v.SetDefault("VALIDATION_SAMPLE_SIZE", 10)
	v.SetDefault("VALIDATION_MIN_ACCURACY", 0.40)
	v.SetDefault("VALIDATION_MIN_PRECISION", 0.40)
	v.SetDefault("VALIDATION_MIN_RECALL", 0.40)
	v.SetDefault("VALIDATION_MIN_F1", 0.40)

	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "model_validation")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 5)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 1)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")

	// Env
	v.AutomaticEnv()

	// The registry takes the same token as username and password unless the
	// MLflow variables are set explicitly.
	token := v.GetString(v.GetString("REGISTRY_TOKEN_ENV"))
	username := v.GetString("MLFLOW_TRACKING_USERNAME")
	if username == "" {
		username = token
	}
	password := v.GetString("MLFLOW_TRACKING_PASSWORD")
	if password == "" {
		password = token
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: duration(v, "SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Registry: RegistryConfig{
			TrackingURI: v.GetString("REGISTRY_TRACKING_URI"),
			TokenEnv:    v.GetString("REGISTRY_TOKEN_ENV"),
			Username:    username,
			Password:    password,
			Timeout:     duration(v, "REGISTRY_TIMEOUT", 30*time.Second),
		},
		Model: ModelConfig{
			Name:  v.GetString("MODEL_NAME"),
			Stage: v.GetString("MODEL_STAGE"),
		},
		Serving: ServingConfig{
			URL:      v.GetString("SERVING_URL"),
			Protocol: v.GetString("SERVING_PROTOCOL"),
			Timeout:  duration(v, "SERVING_TIMEOUT", 30*time.Second),
		},
		Kubernetes: KubernetesConfig{
			Enabled:        v.GetBool("KUBERNETES_ENABLED"),
			InCluster:      v.GetBool("KUBERNETES_IN_CLUSTER"),
			KubeConfigPath: v.GetString("KUBERNETES_KUBECONFIG"),
			DefaultNS:      v.GetString("KUBERNETES_DEFAULT_NS"),
			ServiceName:    v.GetString("KUBERNETES_SERVICE_NAME"),
		},
		Data: DataConfig{
			TrainPath:        v.GetString("DATA_TRAIN_PATH"),
			TestPath:         v.GetString("DATA_TEST_PATH"),
			LabelColumn:      v.GetString("DATA_LABEL_COLUMN"),
			MinPositiveRatio: v.GetFloat64("DATA_MIN_POSITIVE_RATIO"),
			MaxPositiveRatio: v.GetFloat64("DATA_MAX_POSITIVE_RATIO"),
		},
		Validation: ValidationConfig{
			SampleSize:   v.GetInt("VALIDATION_SAMPLE_SIZE"),
			MinAccuracy:  v.GetFloat64("VALIDATION_MIN_ACCURACY"),
			MinPrecision: v.GetFloat64("VALIDATION_MIN_PRECISION"),
			MinRecall:    v.GetFloat64("VALIDATION_MIN_RECALL"),
			MinF1:        v.GetFloat64("VALIDATION_MIN_F1"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: duration(v, "DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
	}

	if cfg.Data.MinPositiveRatio >= cfg.Data.MaxPositiveRatio {
		return nil, fmt.Errorf("positive ratio bounds: min %v must be below max %v",
			cfg.Data.MinPositiveRatio, cfg.Data.MaxPositiveRatio)
	}

	return cfg, nil
}

// RequireRegistryCredentials fails when the registry token was not provided.
func (c *Config) RequireRegistryCredentials() error {
	if c.Registry.Username == "" || c.Registry.Password == "" {
		return fmt.Errorf("%w: set %s", domain.ErrMissingCredentials, c.Registry.TokenEnv)
	}
	return nil
}

func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
