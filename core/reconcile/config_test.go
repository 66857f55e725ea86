package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigDurations(t *testing.T) {
	cfg := Config{IdleTTLSeconds: 90, SweepIntervalSeconds: 5}
	assert.Equal(t, 90*time.Second, cfg.IdleTTL())
	assert.Equal(t, 5*time.Second, cfg.SweepInterval())

	var zero Config
	assert.Equal(t, 30*time.Minute, zero.IdleTTL())
	assert.Equal(t, time.Minute, zero.SweepInterval())
}
