package player

import (
	"fmt"
	"os"
	"os/exec"
)

// droidTmp is where the staged payload slice lives on Android. VLC's intent
// handler needs a world-readable path, so it sits on shared storage.
const droidTmp = "/sdcard/.mixtape_tmp.mp3"

// Android implements Transport on Termux by firing a VIEW intent at whatever
// audio player handles it (VLC in practice) and stopping VLC's playback
// service to halt. There is no IPC channel, playback is fire-and-forget and
// all position bookkeeping lives in the tracker.
type Android struct {
	mediaPath string
}

// NewAndroid creates the intent-based Android transport.
func NewAndroid() *Android {
	return &Android{mediaPath: droidTmp}
}

// LoadBytes writes the payload slice from fromOffset to shared storage.
func (a *Android) LoadBytes(content []byte, fromOffset int64) error {
	if fromOffset < 0 {
		fromOffset = 0
	}
	if fromOffset > int64(len(content)) {
		fromOffset = int64(len(content))
	}

	if err := os.WriteFile(a.mediaPath, content[fromOffset:], 0o644); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}

	return nil
}

// Start fires an android.intent.action.VIEW intent for the staged file.
func (a *Android) Start() error {
	cmd := exec.Command("am", "start",
		"--user", "0",
		"-a", "android.intent.action.VIEW",
		"-d", "file://"+a.mediaPath,
		"-t", "audio/*",
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return &InitError{
			Backend: BackendAndroid,
			Err:     fmt.Errorf("am start: %v: %s", err, out),
		}
	}

	return nil
}

// Halt stops VLC's playback service. Errors from a service that is not
// running are ignored.
func (a *Android) Halt() error {
	cmd := exec.Command("am", "stopservice",
		"org.videolan.vlc/org.videolan.vlc.PlaybackService",
	)
	_ = cmd.Run()
	return nil
}

// SetVolume sets the music stream volume through termux-volume. The Termux
// API maps the music stream to 0-15, not percent.
func (a *Android) SetVolume(percent int) error {
	level := percent * 15 / 100
	cmd := exec.Command("termux-volume", "music", fmt.Sprint(level))

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("termux-volume: %w", err)
	}

	return nil
}

// Close halts playback and removes the staged file.
func (a *Android) Close() error {
	_ = a.Halt()
	_ = os.Remove(a.mediaPath)
	return nil
}
