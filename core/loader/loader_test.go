package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("Skips disabled features", func(t *testing.T) {
		on := &fakeFeature{name: "modeller", enabled: true}
		off := &fakeFeature{name: "submission"}

		m := NewManager(nil)
		m.Register(on)
		m.Register(off)

		require.NoError(t, m.LoadAll(fiber.New()))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
		assert.Len(t, m.Features(), 2)
	})

	t.Run("Stops at the first failure", func(t *testing.T) {
		broken := &fakeFeature{name: "integrity", enabled: true, err: errors.New("boom")}
		after := &fakeFeature{name: "modeller", enabled: true}

		m := NewManager(nil)
		m.Register(broken)
		m.Register(after)

		err := m.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "failed to load feature integrity")
		assert.False(t, after.loaded)
	})
}
