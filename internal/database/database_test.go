package database

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/config"
	"github.com/qs3c/salon_go_server/internal/model"
)

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	require.NoError(t, Migrate(db))

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestNewRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := NewRedis(&config.RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	defer client.Close()
}

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := NewRedis(&config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}
