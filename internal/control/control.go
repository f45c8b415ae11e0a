// Package control selects and parameterizes the desktop control backend.
// It mirrors the matching equalizer's shape but is simpler: one backend,
// one flat parameter map, no categories.
package control

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrUnsupportedBackend reports a backend name outside the control catalog.
var ErrUnsupportedBackend = errors.New("unsupported desktop control backend")

var backends = []string{"autopy", "qemu", "vncdotool"}

// Backends returns the closed catalog of desktop control backends.
func Backends() []string {
	out := make([]string, len(backends))
	copy(out, backends)
	return out
}

// Equalizer holds the desktop control backend selection and its parameters.
// Parameters are free-form (hostnames, port numbers, monitor handles), so
// unlike the matching registry they are not calibrated or persisted.
type Equalizer struct {
	current string
	params  map[string]any
}

// New returns a control equalizer, preconfigured when backend is non-empty.
func New(backend string) (*Equalizer, error) {
	e := &Equalizer{params: make(map[string]any)}
	if backend != "" {
		if err := e.Configure(backend); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Backend returns the current backend name, or the empty string when none
// has been selected.
func (e *Equalizer) Backend() string { return e.current }

// Configure selects a backend and resets its parameters to the backend's
// defaults. Optional positional arguments seed connection parameters:
// vncdotool accepts (host, port) or (port); qemu accepts a monitor handle.
func (e *Equalizer) Configure(name string, args ...any) error {
	supported := false
	for _, b := range backends {
		if b == name {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, name)
	}

	e.current = name
	e.params = make(map[string]any)
	switch name {
	case "autopy":
		// autopy behaves differently per OS, so the OS is a parameter
		e.params["os_type"] = "linux"
	case "qemu":
		// monitor handle of the controlled virtual machine
		e.params["qemu_monitor"] = nil
		if len(args) == 1 {
			e.params["qemu_monitor"] = args[0]
		}
	case "vncdotool":
		e.params["vnc_hostname"] = "localhost"
		e.params["vnc_port"] = 0
		switch len(args) {
		case 2:
			e.params["vnc_hostname"] = args[0]
			e.params["vnc_port"] = args[1]
		case 1:
			e.params["vnc_port"] = args[0]
		}
	}
	log.Trace().Str("backend", name).Msg("desktop control backend selected")
	return nil
}

// Param returns a backend parameter, if set.
func (e *Equalizer) Param(name string) (any, bool) {
	v, ok := e.params[name]
	return v, ok
}

// SetParam overrides a backend parameter.
func (e *Equalizer) SetParam(name string, v any) {
	e.params[name] = v
}
