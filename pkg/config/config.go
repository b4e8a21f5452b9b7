package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Swagger SwaggerConfig
	Sales   SalesConfig
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
	Driver         string // postgres | memory
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int32
	MigrationsAuto bool // aplica migraciones pendientes al iniciar
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string con URL encoding para caracteres especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de validación de tokens.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// RedisConfig destino de los eventos posteriores al commit. URL vacía desactiva la publicación.
type RedisConfig struct {
	URL   string
	Queue string
}

// SwaggerConfig UI de documentación en /docs.
type SwaggerConfig struct {
	Enabled bool
	File    string
}

// SalesConfig parámetros de pagos de la venta.
type SalesConfig struct {
	ReceivableDueDays       int
	InstallmentIntervalDays int
	ReceivableMethod        string
	StoreName               string // encabezado del comprobante PDF
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // el archivo es opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:         strings.ToLower(v.GetString("STORE_DRIVER")),
			DatabaseURL:    v.GetString("DATABASE_URL"),
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetInt("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			DBName:         v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			MigrationsAuto: v.GetBool("MIGRATIONS_AUTO"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Redis: RedisConfig{
			URL:   v.GetString("REDIS_URL"),
			Queue: v.GetString("EVENTS_QUEUE"),
		},
		Swagger: SwaggerConfig{
			Enabled: v.GetBool("SWAGGER_ENABLED"),
			File:    v.GetString("SWAGGER_FILE"),
		},
		Sales: SalesConfig{
			ReceivableDueDays:       v.GetInt("RECEIVABLE_DUE_DAYS"),
			InstallmentIntervalDays: v.GetInt("INSTALLMENT_INTERVAL_DAYS"),
			ReceivableMethod:        v.GetString("RECEIVABLE_METHOD_LABEL"),
			StoreName:               v.GetString("STORE_NAME"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "backoffice-api")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "backoffice")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("MIGRATIONS_AUTO", false)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "backoffice-api")

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("EVENTS_QUEUE", "backoffice:events")

	v.SetDefault("SWAGGER_ENABLED", false)
	v.SetDefault("SWAGGER_FILE", "./docs/swagger.json")

	v.SetDefault("RECEIVABLE_DUE_DAYS", 30)
	v.SetDefault("INSTALLMENT_INTERVAL_DAYS", 30)
	v.SetDefault("RECEIVABLE_METHOD_LABEL", "A Receber")
	v.SetDefault("STORE_NAME", "Backoffice")
}

// Validate revisa combinaciones inválidas antes de arrancar.
func (c *Config) Validate() error {
	var errs []error
	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverMemory {
		errs = append(errs, fmt.Errorf("STORE_DRIVER desconocido: %q", c.DB.Driver))
	}
	if c.App.Env == "production" && c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET es obligatorio en production"))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT fuera de rango: %d", c.HTTP.Port))
	}
	if c.DB.MaxConns <= 0 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS debe ser positivo: %d", c.DB.MaxConns))
	}
	if c.Sales.ReceivableDueDays <= 0 || c.Sales.InstallmentIntervalDays <= 0 {
		errs = append(errs, errors.New("RECEIVABLE_DUE_DAYS e INSTALLMENT_INTERVAL_DAYS deben ser positivos"))
	}
	return errors.Join(errs...)
}
