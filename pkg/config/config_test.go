package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercado-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "agromercado-api", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.Model.CacheTTL,
		"la caché de predicciones dura 1 hora por defecto")
	assert.Empty(t, cfg.SMTP.Host, "sin SMTP_HOST el email queda en modo log")
}

func TestLoad_EnvSobreescribe(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MODEL_CACHE_TTL_MINUTES", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.Model.CacheTTL)
}

func TestDBConfig_DSN_EscapaCredenciales(t *testing.T) {
	c := config.DBConfig{
		Host: "db.interna", Port: 5432,
		User: "agro", Password: "p@ss:word/1",
		DBName: "agromercado", SSLMode: "require",
	}
	dsn := c.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.interna:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss:word/1",
		"la contraseña debe viajar URL-encoded en el DSN")
}

func TestHTTPConfig_Addr(t *testing.T) {
	c := config.HTTPConfig{Host: "127.0.0.1", Port: 3000}
	assert.Equal(t, "127.0.0.1:3000", c.Addr())
}
