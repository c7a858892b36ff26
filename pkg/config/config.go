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
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Reports ReportsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// Configured indica si hay datos de conexión; sin ellos la API arranca con el store en memoria.
func (c DBConfig) Configured() bool {
	return c.DatabaseURL != "" || c.Host != ""
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

// JWTConfig configuración de JWT. La emisión de tokens es externa; aquí solo se valida.
type JWTConfig struct {
	Secret string
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig expiraciones del caché de reportes.
type CacheConfig struct {
	Backend          string // memory | redis
	SlidingMinutes   int
	AbsoluteHours    int
	MaxMemoryEntries int
}

// Sliding expiración deslizante (se renueva en cada acierto).
func (c CacheConfig) Sliding() time.Duration {
	return time.Duration(c.SlidingMinutes) * time.Minute
}

// Absolute expiración absoluta (nunca se renueva).
func (c CacheConfig) Absolute() time.Duration {
	return time.Duration(c.AbsoluteHours) * time.Hour
}

// RedisConfig conexión opcional a Redis para el caché compartido entre réplicas.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ReportsConfig límites de reportes, exportaciones y listados.
type ReportsConfig struct {
	TopDefault         int
	TopMin             int
	TopMax             int
	MaxRangeDays       int
	CatalogPageDefault int
	CatalogPageMax     int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, CACHE_SLIDING_MINUTES, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "kiosco-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "kiosco"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getPositiveInt(v, "DB_MAX_CONNS", 25),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "kiosco-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Cache: CacheConfig{
			Backend:          strings.ToLower(getString(v, "CACHE_BACKEND", "memory")),
			SlidingMinutes:   getPositiveInt(v, "CACHE_SLIDING_MINUTES", 30),
			AbsoluteHours:    getPositiveInt(v, "CACHE_ABSOLUTE_HOURS", 4),
			MaxMemoryEntries: getPositiveInt(v, "CACHE_MAX_ENTRIES", 10000),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Reports: ReportsConfig{
			TopDefault:         getPositiveInt(v, "REPORT_TOP_DEFAULT", 10),
			TopMin:             getPositiveInt(v, "REPORT_TOP_MIN", 1),
			TopMax:             getPositiveInt(v, "REPORT_TOP_MAX", 50),
			MaxRangeDays:       getPositiveInt(v, "REPORT_MAX_RANGE_DAYS", 366),
			CatalogPageDefault: getPositiveInt(v, "CATALOG_PAGE_SIZE_DEFAULT", 10),
			CatalogPageMax:     getPositiveInt(v, "CATALOG_PAGE_SIZE_MAX", 10),
		},
	}

	if cfg.Cache.Backend == "redis" && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("config: CACHE_BACKEND=redis requiere REDIS_ADDR")
	}
	if cfg.Reports.TopMin > cfg.Reports.TopMax {
		return nil, fmt.Errorf("config: REPORT_TOP_MIN (%d) mayor que REPORT_TOP_MAX (%d)", cfg.Reports.TopMin, cfg.Reports.TopMax)
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
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
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

// getPositiveInt como getInt, pero valores <= 0 vuelven al default.
func getPositiveInt(v *viper.Viper, key string, def int) int {
	n := getInt(v, key, def)
	if n <= 0 {
		return def
	}
	return n
}
