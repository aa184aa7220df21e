// Package player implements playback of scraped mixtape audio.
//
// The architecture splits the logical side (the position/state tracker) from
// the physical side (a Transport). Transports cannot seek within a loaded
// stream: every seek or resume re-slices the raw audio bytes from a computed
// offset and restarts playback. The tracker owns the arithmetic that keeps
// the logical elapsed time correct across those destructive reloads.
package player

import (
	"fmt"
	"runtime"

	"github.com/mixtape-cli/mixtape/constant"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/spf13/viper"
)

// Transport encapsulates the required capabilities for a playback backend.
//
// LoadBytes hands the backend the raw mp3 payload starting at fromOffset;
// Start begins playback of the last loaded payload. A backend is free to
// implement Start as "launch a fresh player process"; the tracker never
// assumes the previous playback survived a load.
type Transport interface {
	// LoadBytes stages the payload from the given byte offset for playback.
	LoadBytes(content []byte, fromOffset int64) error

	// Start begins playback of the staged payload.
	// A failed start is fatal to the session and surfaces as *InitError.
	Start() error

	// Halt stops playback. Safe to call when nothing is playing.
	Halt() error

	// SetVolume sets the backend volume, 0-100.
	SetVolume(percent int) error

	// Close releases all resources held by the backend.
	Close() error
}

// Backend identifiers accepted by the player.backend config key.
const (
	BackendAuto    = "auto"
	BackendMPV     = "mpv"
	BackendAndroid = "android"
)

// NewTransport selects and constructs a Transport from configuration.
// The "auto" backend resolves to the intent transport on Android and mpv
// everywhere else.
func NewTransport() (Transport, error) {
	backend := viper.GetString(key.PlayerBackend)
	if backend == "" || backend == BackendAuto {
		if runtime.GOOS == constant.Android {
			backend = BackendAndroid
		} else {
			backend = BackendMPV
		}
	}

	switch backend {
	case BackendMPV:
		return NewMPV(), nil
	case BackendAndroid:
		return NewAndroid(), nil
	default:
		return nil, fmt.Errorf("unknown player backend %q", backend)
	}
}
