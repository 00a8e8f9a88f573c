package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hustwenchao/bookshelf/pkg/config"
)

type sessionLikeConfig struct {
	Secret string        `env:"TEST_CFG_SECRET,required"`
	TTL    time.Duration `env:"TEST_CFG_TTL" envDefault:"720h"`
	Admins []string      `env:"TEST_CFG_ADMINS" envSeparator:","`
}

type defaultsOnlyConfig struct {
	Addr string `env:"TEST_CFG_ADDR" envDefault:":8080"`
}

func TestLoad(t *testing.T) {
	t.Run("parses values and defaults", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_SECRET", "s3cret")
		t.Setenv("TEST_CFG_ADMINS", "a,b")

		var cfg sessionLikeConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "s3cret", cfg.Secret)
		assert.Equal(t, 720*time.Hour, cfg.TTL)
		assert.Equal(t, []string{"a", "b"}, cfg.Admins)
	})

	t.Run("caches by type", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_ADDR", ":9000")

		var first defaultsOnlyConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_CFG_ADDR", ":9001")
		var second defaultsOnlyConfig
		require.NoError(t, config.Load(&second))

		assert.Equal(t, ":9000", second.Addr)

		config.Reset()
		var third defaultsOnlyConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, ":9001", third.Addr)
	})

	t.Run("missing required value", func(t *testing.T) {
		config.Reset()
		os.Unsetenv("TEST_CFG_SECRET")

		var cfg sessionLikeConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *defaultsOnlyConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad_Panics(t *testing.T) {
	config.Reset()
	os.Unsetenv("TEST_CFG_SECRET")

	assert.Panics(t, func() {
		var cfg sessionLikeConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_FROM_FILE=yes\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TEST_CFG_FROM_FILE") })

	require.NoError(t, config.LoadEnvFiles(path))
	assert.Equal(t, "yes", os.Getenv("TEST_CFG_FROM_FILE"))

	err := config.LoadEnvFiles(filepath.Join(dir, "missing.env"))
	assert.ErrorIs(t, err, config.ErrEnvFile)

	assert.NoError(t, config.LoadEnvFiles())
}
