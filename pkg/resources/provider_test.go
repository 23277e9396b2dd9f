package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     "localhost",
		Port:     123,
		Database: "db",
		User:     "user",
		Password: "p4ssw0rd",
	}
}

func snowflakeConfig() SnowflakeConfig {
	return SnowflakeConfig{
		Account:      "act",
		Organization: "org",
		Database:     "db",
		Username:     "user",
		Password:     "pwd",
		Schema:       "schema",
	}
}

func redisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     123,
		Password: "abc",
		DB:       3,
	}
}

func TestCreateAllProviderTypes(t *testing.T) {
	configs := []ProviderConfig{
		redisConfig(),
		snowflakeConfig(),
		postgresConfig(),
	}

	for _, config := range configs {
		p, err := NewProvider(Provider{
			Name:        "name",
			Description: "desc",
			Function:    "fn",
			Team:        "team",
			Config:      config,
		})
		require.NoError(t, err)
		assert.Equal(t, config, p.Config)
	}
}

func TestInvalidProviders(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{
			name: "missing name",
			provider: Provider{
				Description: "desc",
				Function:    "fn",
				Team:        "team",
				Config:      snowflakeConfig(),
			},
		},
		{
			name: "missing function",
			provider: Provider{
				Name:        "name",
				Description: "desc",
				Team:        "team",
				Config:      snowflakeConfig(),
			},
		},
		{
			name: "missing config",
			provider: Provider{
				Name:        "name",
				Description: "desc",
				Function:    "fn",
				Team:        "team",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.provider)
			assert.ErrorIs(t, err, ErrInvalidResource)
		})
	}
}

// A provider's name is a free-form label: no consistency with the config
// kind is enforced.
func TestProviderNameIndependentOfConfigKind(t *testing.T) {
	p, err := NewProvider(Provider{
		Name:        "snowflake",
		Description: "desc",
		Function:    "fn",
		Team:        "team",
		Config:      redisConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, redisConfig(), p.Config)
}
