package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, 30, cfg.Sales.ReceivableDueDays)
	assert.Equal(t, 30, cfg.Sales.InstallmentIntervalDays)
	assert.Equal(t, "A Receber", cfg.Sales.ReceivableMethod)
	assert.Equal(t, "backoffice:events", cfg.Redis.Queue)
	assert.Empty(t, cfg.Redis.URL)
	assert.False(t, cfg.Swagger.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RECEIVABLE_DUE_DAYS", "45")
	t.Setenv("SWAGGER_ENABLED", "true")
	t.Setenv("DB_MAX_CONNS", "5")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 45, cfg.Sales.ReceivableDueDays)
	assert.True(t, cfg.Swagger.Enabled)
	assert.Equal(t, int32(5), cfg.DB.MaxConns)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := config.Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/shop?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
