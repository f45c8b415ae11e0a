package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimingDefaults(t *testing.T) {
	assert.Equal(t, 0.1, ClickDelay())
	assert.Equal(t, 0.5, DragDelay())
	assert.Equal(t, 0.5, DropDelay())
	assert.Equal(t, 0.2, KeysDelay())
	assert.Equal(t, 0.1, TypeDelay())
	assert.Equal(t, 0.2, RescanSpeedOnFind())
}

func TestBackendDefaults(t *testing.T) {
	assert.Equal(t, "autopy", DesktopControlBackend())
	assert.Equal(t, "hybrid", FindBackend())
	assert.Equal(t, "ccoeff_normed", TemplateMatchBackend())
	assert.Equal(t, "ORB", FeatureDetectBackend())
	assert.Equal(t, "ORB", FeatureExtractBackend())
	assert.Equal(t, "BruteForce-Hamming", FeatureMatchBackend())
}

func TestSetDesktopControlBackend(t *testing.T) {
	prev := DesktopControlBackend()
	defer func() { require.NoError(t, SetDesktopControlBackend(prev)) }()

	require.NoError(t, SetDesktopControlBackend("vncdotool"))
	assert.Equal(t, "vncdotool", DesktopControlBackend())

	err := SetDesktopControlBackend("xdotool")
	assert.Error(t, err)
	assert.Equal(t, "vncdotool", DesktopControlBackend())
}

func TestOverridesStick(t *testing.T) {
	prev := ClickDelay()
	defer SetClickDelay(prev)

	SetClickDelay(0.3)
	assert.Equal(t, 0.3, ClickDelay())
}
