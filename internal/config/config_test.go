package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "Valid development config",
			config: Config{
				Env:       "development",
				Port:      "8457",
				JWTSecret: "dev-secret",
			},
			expectError: false,
		},
		{
			name: "Missing port",
			config: Config{
				Env:       "development",
				JWTSecret: "dev-secret",
			},
			expectError: true,
		},
		{
			name: "Missing JWT secret",
			config: Config{
				Env:  "development",
				Port: "8457",
			},
			expectError: true,
		},
		{
			name: "Production with default JWT secret",
			config: Config{
				Env:        "production",
				Port:       "8457",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "secure-password",
			},
			expectError: true,
		},
		{
			name: "Production with short JWT secret",
			config: Config{
				Env:        "production",
				Port:       "8457",
				JWTSecret:  "short",
				DBPassword: "secure-password",
			},
			expectError: true,
		},
		{
			name: "Production with default DB password",
			config: Config{
				Env:        "production",
				Port:       "8457",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "password",
			},
			expectError: true,
		},
		{
			name: "Valid production config",
			config: Config{
				Env:        "production",
				Port:       "8457",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "secure-password",
				DBSSLMode:  "require",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
