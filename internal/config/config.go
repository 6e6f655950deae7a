// Package config загружает конфигурацию сервиса из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Режимы проверки токенов.
const (
	AuthModeSupabase = "supabase" // HS256-токены Supabase, подпись проверяется секретом
	AuthModeNoop     = "noop"     // токен = user_id, только для локальной разработки
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- HTTP ---
	HTTPAddr           string        `envconfig:"HTTP_ADDR" default:":8080"`
	HTTPRequestTimeout time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"15s"`
	// Доверять X-Forwarded-For/X-Real-IP только за своим прокси (nginx, балансировщик).
	// Иначе клиент подставит любой адрес и обойдёт лимиты и блокировку входа в админку.
	HTTPTrustProxy bool `envconfig:"HTTP_TRUST_PROXY" default:"false"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"cepte"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"cepte_motivasyon"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	DBMaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Границы суток ("сегодня") считаются в этом поясе на стороне сервера
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Istanbul"`

	// --- Auth ---
	AuthMode            string `envconfig:"AUTH_MODE" default:"supabase"`
	SupabaseJWTSecret   string `envconfig:"SUPABASE_JWT_SECRET"`
	SupabaseJWTAudience string `envconfig:"SUPABASE_JWT_AUDIENCE" default:"authenticated"`

	// --- Admin ---
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`
	AdminSessionTTL   time.Duration `envconfig:"ADMIN_SESSION_TTL" default:"24h"`

	// --- Firestore (цитаты) ---
	// Пустой project ID = встроенный список цитат без обращения к Firestore
	FirestoreProjectID        string `envconfig:"FIRESTORE_PROJECT_ID"`
	FirestoreQuotesCollection string `envconfig:"FIRESTORE_QUOTES_COLLECTION" default:"MotivasyonSozleri"`
	FirestoreCredentialsFile  string `envconfig:"FIRESTORE_CREDENTIALS_FILE"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureMarketEnabled bool `envconfig:"FEATURE_MARKET_ENABLED" default:"true"`
	FeatureBadgesEnabled bool `envconfig:"FEATURE_BADGES_ENABLED" default:"true"`
	FeatureQuotesEnabled bool `envconfig:"FEATURE_QUOTES_ENABLED" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Validate проверяет связанные между собой настройки.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeSupabase:
		if c.SupabaseJWTSecret == "" {
			return fmt.Errorf("SUPABASE_JWT_SECRET обязателен при AUTH_MODE=%s", AuthModeSupabase)
		}
	case AuthModeNoop:
		if c.AppEnv == "production" {
			return fmt.Errorf("AUTH_MODE=noop запрещён в production")
		}
	default:
		return fmt.Errorf("неизвестный AUTH_MODE %q", c.AuthMode)
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS и RATE_LIMIT_WINDOW должны быть > 0")
	}
	if c.HTTPRequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT должен быть > 0")
	}
	if _, err := time.LoadLocation(c.AppTimezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE %q: %w", c.AppTimezone, err)
	}
	if !strings.HasPrefix(c.AdminPasswordHash, "$argon2id$") {
		return fmt.Errorf("ADMIN_PASSWORD_HASH должен быть в формате argon2id (cmd/hashpass)")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	cfg.AuthMode = strings.ToLower(strings.TrimSpace(cfg.AuthMode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
