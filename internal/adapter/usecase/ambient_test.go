package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"popup-ads/internal/core/domain"
)

func TestAmbientWatcher(t *testing.T) {
	var w AmbientWatcher
	base := AmbientContext{Trigger: domain.TriggerAppOpen, Prefecture: "Tokyo", Revision: "1"}

	assert.True(t, w.Changed(base))
	assert.False(t, w.Changed(base))

	moved := base
	moved.Prefecture = "Osaka"
	assert.True(t, w.Changed(moved))

	edited := moved
	edited.Revision = "2"
	assert.True(t, w.Changed(edited))

	assert.False(t, w.Changed(AmbientContext{Revision: "2"}), "contexts without a trigger never fire")
}
