package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const defaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

// JWT configures the identity provider. Secret is the project JWT secret
// used to verify HS256 access tokens.
type JWT struct {
	Secret            string
	Issuer            string
	Audience          string
	AccessTokenTTLMin int
	LeewaySec         int
}

type DB struct {
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	QueryTimeoutSec    int
	SlowThresholdMs    int
	LogLevel           string
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Limits struct {
	RPS               float64
	Burst             int
	MaxConcurrent     int64 `mapstructure:"max_concurrent"`
	RequestTimeoutSec int   `mapstructure:"request_timeout_sec"`
	MaxBodyBytes      int64 `mapstructure:"max_body_bytes"`
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	CORS   CORS   `mapstructure:"cors"`
	Limits Limits `mapstructure:"limits"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "urbanvibe-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 10)
	v.SetDefault("app.http.writetimeoutsec", 20)
	v.SetDefault("app.http.idletimeoutsec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/api.log")
	v.SetDefault("log.file.maxsizemb", 100)
	v.SetDefault("log.file.maxbackups", 5)
	v.SetDefault("log.file.maxagedays", 14)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.audience", "authenticated")
	v.SetDefault("jwt.accesstokenttlmin", 60)
	v.SetDefault("jwt.leewaysec", 30)

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.maxopenconns", 10)
	v.SetDefault("db.maxidleconns", 1)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.querytimeoutsec", 10)
	v.SetDefault("db.slowthresholdms", 200)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.max_concurrent", 300)
	v.SetDefault("limits.request_timeout_sec", 15)
	v.SetDefault("limits.max_body_bytes", 1<<20)
}

// Load reads the YAML file at path (CONFIG_PATH or the local default when
// empty) and applies APP_* overrides. The default file is optional; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Names used by the previous deployment.
	_ = v.BindEnv("db.dsn", "APP_DB_DSN", "DATABASE_URL")
	_ = v.BindEnv("cors.allowed_origins", "APP_CORS_ALLOWED_ORIGINS", "ALLOWED_ORIGINS")
	_ = v.BindEnv("jwt.secret", "APP_JWT_SECRET", "SUPABASE_JWT_SECRET")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		path = defaultPath
	}
	_, statErr := os.Stat(path)
	if explicit || !errors.Is(statErr, os.ErrNotExist) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.CORS.AllowedOrigins = cleanList(c.CORS.AllowedOrigins)
	return &c, nil
}

// cleanList trims entries and drops blanks; env values arrive comma-split.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
