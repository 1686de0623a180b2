package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Events   EventsConfig
	Engine   EngineConfig
}

type AppConfig struct {
	AppName     string `validate:"required"`
	Environment string `validate:"required"`
	HTTPPort    string `validate:"required,numeric"`
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration `validate:"gte=0"`
	PoolMaxConns          int32         `validate:"gte=0"`
	PoolMinConns          int32         `validate:"gte=0,ltefield=PoolMaxConns"`
	PoolMaxConnLifetime   time.Duration `validate:"gte=0"`
	PoolMaxConnIdleTime   time.Duration `validate:"gte=0"`
	PoolHealthCheckPeriod time.Duration `validate:"gte=0"`

	AutoMigrate bool
	AutoSeed    bool
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int           `validate:"gte=0"`
	ListingTTL time.Duration `validate:"gte=0"`
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

type JWTConfig struct {
	AccessSecret  string        `validate:"required,min=16"`
	RefreshSecret string        `validate:"required,min=16,nefield=AccessSecret"`
	AccessTTL     time.Duration `validate:"gt=0"`
	RefreshTTL    time.Duration `validate:"gt=0"`
	Issuer        string
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

func (c EventsConfig) Enabled() bool {
	return strings.TrimSpace(c.AMQPURL) != ""
}

type EngineConfig struct {
	Storage        string `validate:"oneof=memory postgres"`
	RecommendLimit int    `validate:"gte=0"`
	LifeBoost      int    `validate:"gte=0,lte=100"`
	BadgeTable     string `validate:"required"`
	DedupeDaily    bool
	ScoringWorkers int `validate:"gte=1"`
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var defaults = map[string]any{
	"APP_NAME":               "skill-match",
	"APP_ENV":                "development",
	"HTTP_PORT":              "8080",
	"LOG_JSON":               false,
	"LOG_DEBUG":              false,
	"DB_PORT":                "5432",
	"DB_SSL_MODE":            "disable",
	"DB_CONNECT_TIMEOUT":     "5s",
	"DB_POOL_MAX_CONNS":      10,
	"DB_POOL_MIN_CONNS":      0,
	"DB_AUTO_MIGRATE":        true,
	"DB_AUTO_SEED":           true,
	"REDIS_DB":               0,
	"REDIS_LISTING_TTL":      "5m",
	"JWT_ACCESS_EXPIRES_IN":  "15m",
	"JWT_REFRESH_EXPIRES_IN": "168h",
	"JWT_ISSUER":             "skill-match",
	"AMQP_EXCHANGE":          "skillmatch.events",
	"ENGINE_STORAGE":         StorageMemory,
	"ENGINE_RECOMMEND_LIMIT": 2,
	"ENGINE_LIFE_BOOST":      15,
	"ENGINE_BADGE_TABLE":     "Beginner:0,Contributor:100,ChampionCandidate:300,ClimateChampion:600",
	"LEDGER_DEDUPE_DAILY":    true,
	"ENGINE_SCORING_WORKERS": 4,
}

// Load reads configuration from the process environment, after merging a
// .env file from the working directory if one exists.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromViper(NewViper())
}

// NewViper returns a viper instance bound to the environment with the
// service defaults applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	return v
}

func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogJSON:     v.GetBool("LOG_JSON"),
		LogDebug:    v.GetBool("LOG_DEBUG"),
	}

	cfg.Engine = EngineConfig{
		Storage:        strings.ToLower(opt("ENGINE_STORAGE")),
		RecommendLimit: v.GetInt("ENGINE_RECOMMEND_LIMIT"),
		LifeBoost:      v.GetInt("ENGINE_LIFE_BOOST"),
		BadgeTable:     opt("ENGINE_BADGE_TABLE"),
		DedupeDaily:    v.GetBool("LEDGER_DEDUPE_DAILY"),
		ScoringWorkers: v.GetInt("ENGINE_SCORING_WORKERS"),
	}

	dbField := opt
	if cfg.Engine.Storage == StoragePostgres {
		dbField = req
	}
	cfg.Database = DatabaseConfig{
		DBHost:     dbField("DB_HOST"),
		DBPort:     dbField("DB_PORT"),
		DBName:     dbField("DB_NAME"),
		DBUser:     dbField("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),

		AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		AutoSeed:    v.GetBool("DB_AUTO_SEED"),
	}

	cfg.Redis = RedisConfig{
		Addr:       opt("REDIS_ADDR"),
		Password:   opt("REDIS_PASSWORD"),
		DB:         v.GetInt("REDIS_DB"),
		ListingTTL: v.GetDuration("REDIS_LISTING_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:  req("JWT_ACCESS_SECRET"),
		RefreshSecret: req("JWT_REFRESH_SECRET"),
		AccessTTL:     v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshTTL:    v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
		Issuer:        opt("JWT_ISSUER"),
	}

	cfg.Events = EventsConfig{
		AMQPURL:  opt("AMQP_URL"),
		Exchange: opt("AMQP_EXCHANGE"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
