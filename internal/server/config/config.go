// Package config загружает настройки сервера: значения по умолчанию,
// затем .env файл и переменные окружения POSTBOARD_*, затем флаги командной строки.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MinSecretLen минимальная длина ключа подписи HS256
const MinSecretLen = 32

// envPrefix префикс переменных окружения
const envPrefix = "POSTBOARD_"

// Config holds runtime settings for the postboard server.
type Config struct {
	ListenAddr      string
	StorageDriver   string
	SQLitePath      string
	PostgresDSN     string
	JWTSecret       string // обязателен, без значения по умолчанию
	LogLevel        string
	LogFormat       string
	EnvFile         string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	SecureCookie    bool
	ShowVersion     bool
}

// Defaults возвращает конфигурацию по умолчанию
func Defaults() *Config {
	return &Config{
		ListenAddr:      ":8080",
		StorageDriver:   DriverSQLite,
		SQLitePath:      "postboard.db",
		LogLevel:        "info",
		LogFormat:       "json",
		EnvFile:         ".env",
		TokenTTL:        time.Hour,
		ShutdownTimeout: 10 * time.Second,
		SecureCookie:    true,
	}
}

// Load builds a Config from defaults, the .env file, the environment and args
// (without the program name), then validates it. With -version set the
// result is returned unvalidated.
func Load(args []string) (*Config, error) {
	cfg := Defaults()

	// путь к .env можно переопределить только через окружение
	if path, ok := os.LookupEnv(envPrefix + "ENV_FILE"); ok {
		cfg.EnvFile = path
	}

	fileValues, err := readEnvFile(cfg.EnvFile)
	if err != nil {
		return nil, err
	}

	// переменные окружения важнее значений из файла
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readEnvFile читает .env файл. Отсутствующий файл не является ошибкой
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	str("ADDR", &c.ListenAddr)
	str("STORAGE", &c.StorageDriver)
	str("SQLITE_PATH", &c.SQLitePath)
	str("POSTGRES_DSN", &c.PostgresDSN)
	str("JWT_SECRET", &c.JWTSecret)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)

	if v, ok := lookup(envPrefix + "TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTOKEN_TTL: %w", envPrefix, err)
		}
		c.TokenTTL = d
	}
	if v, ok := lookup(envPrefix + "SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sSHUTDOWN_TIMEOUT: %w", envPrefix, err)
		}
		c.ShutdownTimeout = d
	}
	if v, ok := lookup(envPrefix + "SECURE_COOKIE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSECURE_COOKIE: %w", envPrefix, err)
		}
		c.SecureCookie = b
	}

	return nil
}

func (c *Config) parseFlags(args []string) error {
	flags := flag.NewFlagSet("postboard-server", flag.ContinueOnError)

	flags.BoolVar(&c.ShowVersion, "version", false, "show version information")
	flags.StringVar(&c.ListenAddr, "a", c.ListenAddr, "address and port to run server")
	flags.StringVar(&c.StorageDriver, "storage", c.StorageDriver, "storage driver: sqlite or postgres")
	flags.StringVar(&c.SQLitePath, "db", c.SQLitePath, "path to SQLite database")
	flags.StringVar(&c.PostgresDSN, "dsn", c.PostgresDSN, "PostgreSQL DSN")
	flags.DurationVar(&c.TokenTTL, "token-ttl", c.TokenTTL, "session token lifetime")
	flags.BoolVar(&c.SecureCookie, "secure-cookie", c.SecureCookie, "set Secure on the session cookie")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: json or text")
	flags.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout, "graceful shutdown timeout")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	return nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen address is required"))
	}

	switch c.StorageDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite path is required"))
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("postgres DSN is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.StorageDriver))
	}

	if len(c.JWTSecret) < MinSecretLen {
		errs = append(errs, fmt.Errorf("%sJWT_SECRET must be at least %d bytes", envPrefix, MinSecretLen))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token TTL must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// NewLogger создает slog логгер по настройкам конфигурации
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
