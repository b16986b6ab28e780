package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_ENV", "test")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, STORE_POSTGRES, cfg.StoreDriver)
	assert.Equal(t, MAIL_SMTP, cfg.Mail.Transport)
	assert.Equal(t, 400, cfg.Places.PhotoMaxWidth)
	assert.Equal(t, 5*time.Second, cfg.Places.Timeout)
	assert.True(t, cfg.Places.MarkFailures)
	assert.Equal(t, "https://user-event.vercel.app/payment/", cfg.PaymentBaseURL)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("API_ENV", "test")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("API_ENV", "test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC",
	}}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.GetDSN())
}
