package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	HTTP        HTTPConfig
	JWT         JWTConfig
	Marketplace MarketplaceConfig
	Catalog     CatalogConfig
	Redis       RedisConfig
	DB          DBConfig
	Kafka       KafkaConfig
	RateLimit   RateLimitConfig
	Report      ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// ProxyHeader cabecera con la IP real del cliente detrás de un proxy ("X-Forwarded-For").
	// Vacía usa la IP de la conexión.
	ProxyHeader string
	// TrustedProxies IPs o rangos CIDR cuyo ProxyHeader se respeta; vacío confía en cualquiera.
	TrustedProxies []string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT de sesión de cliente.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// MarketplaceConfig backend REST del marketplace.
type MarketplaceConfig struct {
	BaseURL      string // ej. https://api.renexpress.ru/api
	Timeout      time.Duration
	MaxBodyBytes int64
}

// CatalogConfig caché y presentación del catálogo.
type CatalogConfig struct {
	CacheTTL  time.Duration // snapshot fresco
	StaleTTL  time.Duration // snapshot servible mientras se refresca
	HomeLabel string
	PageSize  int
	MaxPrice  int
}

// RedisConfig caché compartida del catálogo. Si Enabled es false se usa caché en memoria.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// DBConfig configuración de PostgreSQL (borradores de vendedor).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Enabled     bool
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// KafkaConfig eventos de la tienda. Sin brokers el publicador queda deshabilitado.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// RateLimitConfig límite por IP de login y registro. LoginLimit 0 lo desactiva.
type RateLimitConfig struct {
	LoginLimit  int
	LoginWindow time.Duration
}

// ReportConfig informe PDF del vendedor.
type ReportConfig struct {
	StoreName    string
	DashboardURL string // vacío omite el QR
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, MARKETPLACE_BASE_URL, REDIS_ADDR, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "storefront-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			ReadTimeout:    getDuration(v, "HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDuration(v, "HTTP_WRITE_TIMEOUT", 15*time.Second),
			ProxyHeader:    getString(v, "HTTP_PROXY_HEADER", ""),
			TrustedProxies: getStrings(v, "HTTP_TRUSTED_PROXIES"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "storefront-api"),
		},
		Marketplace: MarketplaceConfig{
			BaseURL:      strings.TrimRight(getString(v, "MARKETPLACE_BASE_URL", "http://localhost:8000/api"), "/"),
			Timeout:      getDuration(v, "MARKETPLACE_TIMEOUT", 15*time.Second),
			MaxBodyBytes: int64(getInt(v, "MARKETPLACE_MAX_BODY_BYTES", 16<<20)),
		},
		Catalog: CatalogConfig{
			CacheTTL:  getDuration(v, "CATALOG_CACHE_TTL", 5*time.Minute),
			StaleTTL:  getDuration(v, "CATALOG_STALE_TTL", time.Hour),
			HomeLabel: getString(v, "CATALOG_HOME_LABEL", "Home"),
			PageSize:  getInt(v, "CATALOG_PAGE_SIZE", 12),
			MaxPrice:  getInt(v, "CATALOG_MAX_PRICE", 100000),
		},
		Redis: RedisConfig{
			Enabled:  getBool(v, "REDIS_ENABLED", false),
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Prefix:   getString(v, "REDIS_PREFIX", "storefront"),
		},
		DB: DBConfig{
			Enabled:     getBool(v, "DB_ENABLED", false),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "storefront"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers: getStrings(v, "KAFKA_BROKERS"),
			Topic:   getString(v, "KAFKA_TOPIC", "storefront.events"),
		},
		RateLimit: RateLimitConfig{
			LoginLimit:  getInt(v, "RATE_LIMIT_LOGIN", 10),
			LoginWindow: getDuration(v, "RATE_LIMIT_LOGIN_WINDOW", time.Minute),
		},
		Report: ReportConfig{
			StoreName:    getString(v, "REPORT_STORE_NAME", "Renexpress"),
			DashboardURL: getString(v, "REPORT_DASHBOARD_URL", ""),
		},
	}
	cfg.Kafka.Enabled = len(cfg.Kafka.Brokers) > 0

	if cfg.App.Env == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en production")
	}
	if cfg.Catalog.StaleTTL < cfg.Catalog.CacheTTL {
		cfg.Catalog.StaleTTL = cfg.Catalog.CacheTTL
	}
	if cfg.Catalog.PageSize <= 0 {
		cfg.Catalog.PageSize = 12
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getDuration acepta "90s", "5m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

// getStrings lista separada por comas, sin vacíos.
func getStrings(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
