package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Grpc      GrpcConfig      `mapstructure:"grpc"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Majors    MajorsConfig    `mapstructure:"majors"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port            string   `mapstructure:"port"`
	ReadTimeout     int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout    int      `mapstructure:"write_timeout_seconds"`
	IdleTimeout     int      `mapstructure:"idle_timeout_seconds"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout_seconds"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "memory".
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time_seconds"`
}

type GrpcConfig struct {
	Port string `mapstructure:"port"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type UserConfig struct {
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	Roles    []string `mapstructure:"roles"`
}

type AuthConfig struct {
	JWTSecret       string       `mapstructure:"jwt_secret"`
	TokenTTLMinutes int          `mapstructure:"token_ttl_minutes"`
	SecureCookie    bool         `mapstructure:"secure_cookie"`
	GoogleClientID  string       `mapstructure:"google_client_id"`
	AdminEmails     []string     `mapstructure:"admin_emails"`
	Users           []UserConfig `mapstructure:"users"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type MajorsConfig struct {
	// Options is a comma separated list.
	Options string `mapstructure:"options"`
}

// List splits Options, dropping blanks.
func (m MajorsConfig) List() []string {
	var out []string
	for _, opt := range strings.Split(m.Options, ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Mode is "file" or "synthetic".
	Mode string `mapstructure:"mode"`
	// Dir overrides the embedded dataset when set.
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type TelemetryConfig struct {
	// OTLPEndpoint enables metric export when set.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.idle_timeout_seconds", 60)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "academic")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime_seconds", 300)
	v.SetDefault("database.conn_max_idle_time_seconds", 60)

	v.SetDefault("grpc.port", "9090")

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "academic.records")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "academic-records")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_minutes", 60)
	v.SetDefault("auth.secure_cookie", false)
	v.SetDefault("auth.google_client_id", "")
	v.SetDefault("auth.admin_emails", []string{})
	v.SetDefault("auth.users", []map[string]interface{}{
		{"username": "admin", "password": "admin", "roles": []string{"ADMIN"}},
		{"username": "user", "password": "user", "roles": []string{"USER"}},
	})

	v.SetDefault("majors.options", "Sistem Informasi,Teknologi Informasi")

	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.mode", "file")
	v.SetDefault("seed.dir", "")

	v.SetDefault("log.level", "info")

	v.SetDefault("telemetry.otlp_endpoint", "")
}

// Load reads config.<ENV>.yaml and applies environment overrides on top.
// Nested keys map to upper case variables with dots replaced, for example
// DATABASE_DRIVER or SEED_MODE.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	v := viper.New()
	setDefaults(v)
	v.Set("env", env)

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yaml")
	v.AddConfigPath("/configs")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional - continue with defaults and ENV variables
		slog.Info("no config file found, using defaults and environment", "env", env, "error", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.google_client_id", "GOOGLE_CLIENT_ID")
	_ = v.BindEnv("telemetry.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	switch c.Seed.Mode {
	case "file", "synthetic":
	default:
		return fmt.Errorf("unsupported seed.mode %q", c.Seed.Mode)
	}
	if c.Auth.JWTSecret == "" {
		if c.Env != "local" && c.Env != "test" {
			return fmt.Errorf("auth.jwt_secret is required in %s", c.Env)
		}
		c.Auth.JWTSecret = "local-development-secret"
	}
	return nil
}
