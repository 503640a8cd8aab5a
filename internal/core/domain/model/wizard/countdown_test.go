package wizard_test

import (
	"testing"

	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown_Tick(t *testing.T) {
	t.Run("should fire exactly once after five ticks", func(t *testing.T) {
		c, err := wizard.NewCountdown(wizard.DefaultCountdownSeconds)
		require.NoError(t, err)

		fired := 0
		firedAt := 0
		for i := 1; i <= 10; i++ {
			if c.Tick() {
				fired++
				firedAt = i
			}
		}

		assert.Equal(t, 1, fired)
		assert.Equal(t, 5, firedAt)
		assert.Zero(t, c.Remaining())
		assert.True(t, c.Fired())
	})

	t.Run("should count down", func(t *testing.T) {
		c, _ := wizard.NewCountdown(3)

		assert.False(t, c.Tick())
		assert.Equal(t, 2, c.Remaining())
		assert.False(t, c.Fired())
	})

	t.Run("should reject non-positive duration", func(t *testing.T) {
		_, err := wizard.NewCountdown(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
