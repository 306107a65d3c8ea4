package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-login-manager/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOGIN_CLIENT_ID", "test-client")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "test-client", cfg.ClientID)
	require.Equal(t, []string{"openid", "email", "profile"}, cfg.Scopes)
	require.Equal(t, "https://accounts.google.com/o/oauth2/auth", cfg.AuthURL)
	require.Equal(t, "login-accounts.db", cfg.StorePath)
	require.Equal(t, "127.0.0.1:0", cfg.CallbackAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOGIN_CLIENT_ID", "test-client")
	t.Setenv("LOGIN_SCOPES", "openid https://www.example.com/auth/devtools")
	t.Setenv("LOGIN_EMAIL_URL", "https://id.example.com/email")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"openid", "https://www.example.com/auth/devtools"}, cfg.Scopes)
	require.Equal(t, "https://id.example.com/email", cfg.EmailURL)
}

func TestLoadRequiresClientID(t *testing.T) {
	t.Setenv("LOGIN_CLIENT_ID", "") // registers the restore
	require.NoError(t, os.Unsetenv("LOGIN_CLIENT_ID"))

	_, err := config.Load()
	require.Error(t, err)
}
