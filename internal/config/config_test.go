package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("MEMORY_STORE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.MemoryStore)
}

func TestNewServerConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non-numeric port", map[string]string{"PORT": "abc", "DATABASE_URL": "x"}},
		{"port out of range", map[string]string{"PORT": "70000", "DATABASE_URL": "x"}},
		{"no database and no memory store", map[string]string{"PORT": "8080"}},
		{"bad log format", map[string]string{"MEMORY_STORE": "true", "LOG_FORMAT": "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"PORT", "DATABASE_URL", "MEMORY_STORE", "LOG_LEVEL", "LOG_FORMAT"} {
				t.Setenv(k, tt.env[k])
			}
			_, err := NewServerConfig()
			require.Error(t, err)
		})
	}
}

func TestNewServerConfig_MemoryStoreNeedsNoDatabase(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MEMORY_STORE", "true")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.True(t, cfg.MemoryStore)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration string
		wantInErr  string
	}{
		{"missing secret", "", "24", "JWT_SECRET"},
		{"non-numeric expiration", "secret", "invalid", "JWT_EXPIRATION_HOURS"},
		{"zero expiration", "secret", "0", "JWT_EXPIRATION_HOURS"},
		{"negative expiration", "secret", "-1", "JWT_EXPIRATION_HOURS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantInErr)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "global-pepper")

	peppered, err := NewPasswordConfig()
	require.NoError(t, err)
	hash, err := peppered.HashPassword("pw123456")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("pw123456", hash))

	plain := &PasswordConfig{BcryptCost: 10}
	assert.False(t, plain.VerifyPassword("pw123456", hash))
}

func TestPasswordConfig_CostRange(t *testing.T) {
	for _, cost := range []string{"9", "15"} {
		t.Setenv("BCRYPT_COST", cost)
		_, err := NewPasswordConfig()
		require.Error(t, err)
	}
}
