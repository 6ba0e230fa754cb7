package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colegio-cartera/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "excel", cfg.Ledger.Driver)
	assert.Equal(t, "CARTERA_ESTUDIANTES", cfg.Ledger.Sheet)
	assert.Equal(t, "logs_pqrs.xlsx", cfg.Petitions.XLSXPath)
	assert.Equal(t, "COL", cfg.Payment.RefPrefix)
	assert.Equal(t, "openai", cfg.Chat.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Chat.OpenAIModel)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.Features.Chat)
	assert.Len(t, cfg.Features.Map(), 4)
}

func TestFromViper_FeaturesDesdeTexto(t *testing.T) {
	v := viper.New()
	v.Set("FEATURE_CHAT", "false")
	v.Set("FEATURE_PQRS", "no-es-bool")
	v.Set("HTTP_PORT", "9090")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.Features.Chat)
	assert.True(t, cfg.Features.PQRS, "valor ilegible conserva el defecto")
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_ValoresInvalidos(t *testing.T) {
	for key, val := range map[string]string{
		"LEDGER_DRIVER":        "csv",
		"PETITION_DRIVER":      "mongo",
		"CHAT_PROVIDER":        "llama",
		"CHAT_SESSION_STORE":   "disk",
		"CHAT_TIMEOUT_SECONDS": "0",
	} {
		v := viper.New()
		v.Set(key, val)
		_, err := config.FromViper(v)
		assert.Error(t, err, key)
	}
}

func TestAppConfig_Location(t *testing.T) {
	loc := config.AppConfig{Timezone: "Zona/Inexistente"}.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "COT", loc.String())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "colegio", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/colegio?sslmode=disable", c.ConnectionString())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
