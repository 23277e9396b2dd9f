package resources

// ProviderConfig is the connection configuration held by a provider. It is a
// closed sum: exactly the Postgres, Snowflake, and Redis variants implement
// it. Configs carry no behavior beyond identity and equality.
type ProviderConfig interface {
	providerConfig()
}

// PostgresConfig holds Postgres connection parameters.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

func (PostgresConfig) providerConfig() {}

// SnowflakeConfig holds Snowflake connection parameters.
type SnowflakeConfig struct {
	Account      string
	Organization string
	Database     string
	Username     string
	Password     string
	Schema       string
}

func (SnowflakeConfig) providerConfig() {}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (RedisConfig) providerConfig() {}

// Provider is a storage or compute backend that sources, features, labels,
// and training sets live on. The name is a free-form label; no consistency
// between the name and the config kind is enforced.
type Provider struct {
	Name        string         `validate:"required"`
	Description string         `validate:"required"`
	Function    string         `validate:"required"`
	Team        string         `validate:"required"`
	Config      ProviderConfig `validate:"required"`
}

// NewProvider validates and returns a provider.
func NewProvider(p Provider) (Provider, error) {
	if err := checkStruct(TypeProvider, p); err != nil {
		return Provider{}, err
	}
	return p, nil
}

// Type returns the kind discriminator.
func (p Provider) Type() Type {
	return TypeProvider
}

// ID returns the identity key.
func (p Provider) ID() ResourceID {
	return ResourceID{Type: TypeProvider, Name: p.Name}
}
