package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGlyphConstants(t *testing.T) {
	t.Run("glyphs carry a trailing space", func(t *testing.T) {
		assert.Equal(t, "✔ ", SuccessGlyph)
		assert.Equal(t, "✖ ", ErrorGlyph)
	})
}

func TestRetryConstants(t *testing.T) {
	t.Run("MaxRetryAttempts is bounded", func(t *testing.T) {
		assert.Equal(t, 3, MaxRetryAttempts)
	})

	t.Run("InitialBackoff is reasonable", func(t *testing.T) {
		assert.Equal(t, time.Second, InitialBackoff)
		assert.Less(t, InitialBackoff, DefaultSourceTimeout)
	})
}

func TestPathConstants(t *testing.T) {
	assert.Equal(t, ".devops", DevopsHome)
	assert.Equal(t, "devops.log", CLILogFileName)
	assert.Equal(t, "DEVOPS", EnvPrefix)
}
