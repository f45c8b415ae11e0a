package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendsCatalog(t *testing.T) {
	assert.Equal(t, []string{"autopy", "qemu", "vncdotool"}, Backends())
}

func TestNewUnconfigured(t *testing.T) {
	e, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "", e.Backend())
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New("xdotool")
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestConfigureAutopyDefaults(t *testing.T) {
	e, err := New("autopy")
	require.NoError(t, err)

	osType, ok := e.Param("os_type")
	require.True(t, ok)
	assert.Equal(t, "linux", osType)
}

func TestConfigureQemuMonitor(t *testing.T) {
	e, err := New("qemu")
	require.NoError(t, err)
	monitor, ok := e.Param("qemu_monitor")
	require.True(t, ok)
	assert.Nil(t, monitor)

	require.NoError(t, e.Configure("qemu", "monitor-handle"))
	monitor, _ = e.Param("qemu_monitor")
	assert.Equal(t, "monitor-handle", monitor)
}

func TestConfigureVNCConnection(t *testing.T) {
	e, err := New("vncdotool")
	require.NoError(t, err)
	host, _ := e.Param("vnc_hostname")
	port, _ := e.Param("vnc_port")
	assert.Equal(t, "localhost", host)
	assert.Equal(t, 0, port)

	require.NoError(t, e.Configure("vncdotool", 5901))
	port, _ = e.Param("vnc_port")
	assert.Equal(t, 5901, port)

	require.NoError(t, e.Configure("vncdotool", "vmhost", 5902))
	host, _ = e.Param("vnc_hostname")
	port, _ = e.Param("vnc_port")
	assert.Equal(t, "vmhost", host)
	assert.Equal(t, 5902, port)
}

func TestConfigureResetsParams(t *testing.T) {
	e, err := New("vncdotool")
	require.NoError(t, err)
	e.SetParam("vnc_port", 6000)

	require.NoError(t, e.Configure("autopy"))
	assert.Equal(t, "autopy", e.Backend())
	_, ok := e.Param("vnc_port")
	assert.False(t, ok)
}
