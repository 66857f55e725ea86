package drafts

// Config holds configuration for draft persistence.
type Config struct {
	// Enabled selects Redis for drafts. When false drafts live in memory.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Addr is the Redis host:port.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis database number.
	DB int `mapstructure:"db" default:"0"`
	// PoolSize is the maximum number of socket connections.
	PoolSize int `mapstructure:"pool_size" default:"10"`
	// TTLSeconds is how long a draft survives without being saved again.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"604800"`
	// KeyPrefix is prepended to every draft key.
	KeyPrefix string `mapstructure:"key_prefix" default:"pricing:draft:"`
}
