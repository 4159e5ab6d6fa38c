package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig() {
	AppConfig = nil
	loadOnce = sync.Once{}
}

func TestGetConfigDefaults(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	cfg := GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "csrippers", cfg.Mongo.Database)
	assert.Equal(t, "24h", cfg.JWT.Expiry)
	assert.Equal(t, "noreply@csrippers.tech", cfg.Email.MailerSend.FromEmail)
}

func TestEnvOverrides(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	t.Setenv("ADMIN_EMAIL", "root@csrippers.tech")
	t.Setenv("RESEND_API_KEY", "re_test_key")

	cfg := GetConfig()
	assert.Equal(t, "root@csrippers.tech", cfg.Admin.Email)
	assert.Equal(t, "re_test_key", cfg.Email.Resend.APIKey)
	// Providing a key enables the provider.
	assert.True(t, cfg.Email.Resend.Enabled)
}

func TestGetConfigConcurrentFirstUse(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	configs := make([]*Config, 8)
	var wg sync.WaitGroup
	for i := range configs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			configs[i] = GetConfig()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, configs[0])
	for _, cfg := range configs[1:] {
		assert.Same(t, configs[0], cfg)
	}
}
