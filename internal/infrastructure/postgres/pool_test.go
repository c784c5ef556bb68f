package postgres_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/infrastructure/postgres"
	"github.com/jhoicas/partdb-api/pkg/config"
)

func TestPoolConfig_TamanoDesdeConfiguracion(t *testing.T) {
	cfg := config.DBConfig{
		Driver: config.DriverPostgres, Host: "db.internal", Port: 5432, User: "part", DBName: "partdb", SSLMode: "disable",
		MaxConns: 7, MinConns: 3, MaxConnLifetime: 10 * time.Minute, MaxConnIdleTime: time.Minute,
	}
	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 10*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host, "el host no se reescribe a una IP")
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_IPv4SoloSiSeActiva(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@db.internal:5432/partdb"}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)
	defaultDial := pc.ConnConfig.DialFunc

	cfg.ForceIPv4 = true
	forced, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, forced.ConnConfig.DialFunc)
	assert.Equal(t, "db.internal", forced.ConnConfig.Host)
	if defaultDial != nil {
		assert.NotEqual(t, fmt.Sprintf("%p", defaultDial), fmt.Sprintf("%p", forced.ConnConfig.DialFunc))
	}
}

func TestPoolConfig_RechazaOtroDriver(t *testing.T) {
	_, err := postgres.PoolConfig(config.DBConfig{Driver: config.DriverMemory})
	assert.Error(t, err)
}
