package postgres

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colegio-cartera/pkg/config"
)

func TestPoolConfigFor(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.local", Port: 5433, User: "colegio", Password: "p@ss",
		DBName: "cartera", SSLMode: "disable", MaxConns: 7, ForceIPv4: true,
	}
	pc, err := poolConfigFor(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfigFor_DatabaseURLYValoresPorDefecto(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://u:p@10.0.0.5:6543/colegio?sslmode=require"})
	require.NoError(t, err)
	assert.Equal(t, int32(5), pc.MaxConns)
	assert.Equal(t, "10.0.0.5", pc.ConnConfig.Host)
	assert.Equal(t, "colegio", pc.ConnConfig.Database)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}

func TestLookupIPv4_Literales(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), net.DefaultResolver, "192.168.1.10")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.10", ip)

	_, err = lookupIPv4(context.Background(), net.DefaultResolver, "::1")
	assert.Error(t, err)
}
