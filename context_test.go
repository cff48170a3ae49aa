package vulkanengine

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestAwaitCopy(t *testing.T) {
	t.Run("completed copy does not drain", func(t *testing.T) {
		drained := false
		err := awaitCopy(
			func() error { return nil },
			func() error { drained = true; return nil },
		)
		assert.NoError(t, err)
		assert.False(t, drained)
	})

	t.Run("failed wait drains before returning", func(t *testing.T) {
		var order []string
		lost := vkError(vk.ErrorDeviceLost, "wait for fences")
		err := awaitCopy(
			func() error { order = append(order, "wait"); return lost },
			func() error { order = append(order, "drain"); return nil },
		)
		assert.Equal(t, []string{"wait", "drain"}, order)
		assert.True(t, errors.Is(err, lost))
		assert.Contains(t, err.Error(), "wait for copy")
	})

	t.Run("drain failure is kept", func(t *testing.T) {
		err := awaitCopy(
			func() error { return errors.New("timeout") },
			func() error { return errors.New("queue lost") },
		)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})
}
