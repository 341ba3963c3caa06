package config_test

import (
	"errors"
	"testing"

	"shopsready/backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	valid := config.Config{
		DBHost:         "localhost",
		DBUser:         "user",
		DBName:         "db",
		ChunkPageLimit: 10,
		DailyRunLimit:  3,
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
		errIs   error
	}{
		{
			name:    "Valid Config",
			mutate:  func(c *config.Config) {},
			wantErr: false,
		},
		{
			name:    "Missing DBHost",
			mutate:  func(c *config.Config) { c.DBHost = "" },
			wantErr: true,
			errIs:   config.ErrMissingRequired,
		},
		{
			name:    "Missing DBUser",
			mutate:  func(c *config.Config) { c.DBUser = "" },
			wantErr: true,
			errIs:   config.ErrMissingRequired,
		},
		{
			name:    "Missing DBName",
			mutate:  func(c *config.Config) { c.DBName = "" },
			wantErr: true,
			errIs:   config.ErrMissingRequired,
		},
		{
			name:    "Zero ChunkPageLimit",
			mutate:  func(c *config.Config) { c.ChunkPageLimit = 0 },
			wantErr: true,
			errIs:   config.ErrMissingRequired,
		},
		{
			name:    "Negative DailyRunLimit",
			mutate:  func(c *config.Config) { c.DailyRunLimit = -1 },
			wantErr: true,
			errIs:   config.ErrMissingRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.True(t, errors.Is(err, tt.errIs))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
