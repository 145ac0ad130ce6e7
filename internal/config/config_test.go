package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("HELP_ADDR", "")
		t.Setenv("HELP_DECLARATIONS", "")
		t.Setenv("HELP_ROOT_TITLE", "")
		t.Setenv("HELP_HOT_RELOAD", "")
		t.Setenv("HELP_WELCOME_PATH", "help/welcome.stx")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultAddr, cfg.GetAddr())
		assert.Equal(t, DefaultRootTitle, cfg.GetRootTitle())
		assert.Equal(t, "help/welcome.stx", cfg.GetWelcomePath())
		assert.Empty(t, cfg.GetDeclarations())
		assert.False(t, cfg.GetHotReload())
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Setenv("HELP_ADDR", "127.0.0.1:9000")
		t.Setenv("HELP_DECLARATIONS", "help/help.yaml")
		t.Setenv("HELP_ROOT_TITLE", "Hilfe")
		t.Setenv("HELP_HOT_RELOAD", "true")
		t.Setenv("HELP_WELCOME_PATH", "help/welcome.stx")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, &Config{
			Addr:         "127.0.0.1:9000",
			Declarations: "help/help.yaml",
			RootTitle:    "Hilfe",
			WelcomePath:  "help/welcome.stx",
			HotReload:    true,
		}, cfg)
	})

	t.Run("missing welcome path", func(t *testing.T) {
		t.Setenv("HELP_WELCOME_PATH", "")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "HELP_WELCOME_PATH")
	})

	t.Run("invalid hot reload flag", func(t *testing.T) {
		t.Setenv("HELP_WELCOME_PATH", "help/welcome.stx")
		t.Setenv("HELP_HOT_RELOAD", "sometimes")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "HELP_HOT_RELOAD")
	})
}
