package reconcile

import "time"

// Config holds configuration for live editing sessions.
type Config struct {
	// IdleTTLSeconds evicts a session's engine after this long without use.
	IdleTTLSeconds int `mapstructure:"idle_ttl_seconds" default:"1800"`
	// SweepIntervalSeconds is how often idle engines are evicted.
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" default:"60"`
}

// IdleTTL returns the idle eviction age.
func (c Config) IdleTTL() time.Duration {
	if c.IdleTTLSeconds <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.IdleTTLSeconds) * time.Second
}

// SweepInterval returns the eviction period.
func (c Config) SweepInterval() time.Duration {
	if c.SweepIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}
