package player

import (
	"sync"
	"time"

	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/log"
	"github.com/spf13/viper"
)

// Direction selects which way a relative seek moves.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Tracker maintains the logical playback position of a track over a
// Transport that can only restart playback from a byte offset.
//
// Every positional operation (seek, resume) is implemented as "compute the
// target position in seconds, convert to a byte offset, reload the transport
// from that offset, re-anchor the clock". The position clock is wall time
// against a start anchor, so reads are cheap and lock-free on the writer's
// side.
//
// All mutating methods assume a single caller goroutine. Position, State and
// Finished are safe to call concurrently from a read-only poll loop.
type Tracker struct {
	mu sync.RWMutex

	transport Transport
	track     *Track

	state State

	// startTime is the wall-clock anchor while Playing: the position is
	// now minus startTime. Reloading at position P simply sets the anchor
	// P seconds into the past.
	startTime time.Time

	// pausedAt is the frozen position while Paused.
	pausedAt float64

	volume int

	// now is swappable for tests.
	now func() time.Time

	tickerStop chan struct{}
	tickerDone chan struct{}
}

// NewTracker wraps a transport. The initial volume comes from config and is
// applied on the first successful start.
func NewTracker(transport Transport) *Tracker {
	return &Tracker{
		transport: transport,
		state:     Stopped,
		volume:    clampVolume(viper.GetInt(key.PlayerVolume)),
		now:       time.Now,
	}
}

// Load validates and stages a track for playback. Any previous track, its
// position clock and its poll loop are discarded. The new track does not
// start playing until Play is called.
func (t *Tracker) Load(track *Track) error {
	if !track.Valid() {
		return ErrInvalidTrack
	}

	t.StopTicker()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.track = track
	t.state = Loading
	t.pausedAt = 0
	t.startTime = time.Time{}

	log.Debugf("loaded %q (%.0fs, %d bytes)", track.Title, track.Duration, track.ContentLength)
	return nil
}

// Play starts or restarts playback offset seconds away from the current
// logical position. From Paused the offset is added to the pause position,
// from Playing to the live position, and from a fresh load it is absolute.
// The target is clamped at zero, seeking before the start of the track
// restarts it.
func (t *Tracker) Play(offset float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.play(offset)
}

// play is the locked core shared by Play, Resume and Seek.
func (t *Tracker) play(offset float64) error {
	if t.track == nil {
		return ErrNoMediaLoaded
	}

	var base float64
	switch t.state {
	case Playing:
		base = t.position()
	case Paused:
		base = t.pausedAt
	}

	target := base + offset
	if target < 0 {
		target = 0
	}

	// Never reload from byte zero, mid-stream restarts at offset 0 stall
	// some backends. One second of audio is the floor.
	bps := t.track.BytesPerSec()
	byteOffset := int64(target * bps)
	if floor := int64(bps); byteOffset < floor {
		byteOffset = floor
	}

	if err := t.transport.Halt(); err != nil {
		log.Warnf("halt before reload: %v", err)
	}

	if err := t.transport.LoadBytes(t.track.Content, byteOffset); err != nil {
		t.failReload(base)
		return err
	}

	if err := t.transport.Start(); err != nil {
		t.failReload(base)
		return err
	}

	if err := t.transport.SetVolume(t.volume); err != nil {
		log.Warnf("set volume: %v", err)
	}

	t.startTime = t.now().Add(-time.Duration(target * float64(time.Second)))
	t.pausedAt = 0
	t.state = Playing

	log.Debugf("playing from %.1fs (byte offset %d)", target, byteOffset)
	return nil
}

// failReload parks a previously audible track at its old position when a
// reload fails. The transport was already halted, so leaving the clock
// running would show a position advancing over silence.
func (t *Tracker) failReload(base float64) {
	if t.state == Playing || t.state == Paused {
		t.pausedAt = base
		t.state = Paused
	}
}

// Pause freezes the position clock and halts the transport. Pausing while
// already paused is a no-op.
func (t *Tracker) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case Paused:
		return nil
	case Playing:
	default:
		return ErrInvalidTransition
	}

	t.pausedAt = t.position()
	t.state = Paused

	return t.transport.Halt()
}

// Resume continues playback from the pause position.
func (t *Tracker) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Paused {
		return ErrInvalidTransition
	}

	return t.play(0)
}

// Seek moves the position by delta seconds in the given direction. Seeking
// while paused resumes playback at the new position.
func (t *Tracker) Seek(delta float64, dir Direction) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Playing && t.state != Paused {
		return ErrInvalidTransition
	}

	if dir == Backward {
		delta = -delta
	}

	return t.play(delta)
}

// Stop halts playback and discards the current track, position clock and
// poll loop.
func (t *Tracker) Stop() error {
	t.StopTicker()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.track = nil
	t.state = Stopped
	t.pausedAt = 0
	t.startTime = time.Time{}

	return t.transport.Halt()
}

// Position returns the current logical position in seconds: live elapsed
// time while playing, the frozen pause position while paused, zero
// otherwise.
func (t *Tracker) Position() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.position()
}

func (t *Tracker) position() float64 {
	switch t.state {
	case Playing:
		return t.now().Sub(t.startTime).Seconds()
	case Paused:
		return t.pausedAt
	default:
		return 0
	}
}

// State returns the current playback state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Current returns the loaded track.
func (t *Tracker) Current() (*Track, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.track == nil {
		return nil, ErrNoMediaLoaded
	}
	return t.track, nil
}

// Finished reports whether the playing track has run past its duration.
// A paused or stopped track is never finished.
func (t *Tracker) Finished() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state == Playing && t.track != nil && t.position() >= t.track.Duration
}

// SetVolume sets the volume to an exact level, clamped to 0-100.
func (t *Tracker) SetVolume(percent int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.volume = clampVolume(percent)
	return t.transport.SetVolume(t.volume)
}

// VolumeUp raises the volume by delta percent.
func (t *Tracker) VolumeUp(delta int) error {
	return t.SetVolume(t.Volume() + delta)
}

// VolumeDown lowers the volume by delta percent.
func (t *Tracker) VolumeDown(delta int) error {
	return t.SetVolume(t.Volume() - delta)
}

// Volume returns the current volume level.
func (t *Tracker) Volume() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.volume
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// StartTicker begins a once-per-second poll loop that reports the position
// and duration of the playing track to onTick. The loop is read-only with
// respect to playback state and stops on StopTicker, Stop, Load or when
// playback finishes. onTick runs on the poll goroutine and must not call
// back into the tracker's mutating methods.
func (t *Tracker) StartTicker(onTick func(position, duration float64)) {
	t.StopTicker()

	stop := make(chan struct{})
	done := make(chan struct{})

	t.mu.Lock()
	t.tickerStop = stop
	t.tickerDone = done
	t.mu.Unlock()

	go func() {
		defer close(done)

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				track, err := t.Current()
				if err != nil {
					continue
				}
				onTick(t.Position(), track.Duration)
				if t.Finished() {
					return
				}
			}
		}
	}()
}

// StopTicker cancels the poll loop and waits for it to exit.
func (t *Tracker) StopTicker() {
	t.mu.Lock()
	stop, done := t.tickerStop, t.tickerDone
	t.tickerStop, t.tickerDone = nil, nil
	t.mu.Unlock()

	if stop == nil {
		return
	}

	close(stop)
	<-done
}

// Close stops playback and releases the transport.
func (t *Tracker) Close() error {
	t.StopTicker()
	if err := t.Stop(); err != nil {
		log.Warnf("stop on close: %v", err)
	}
	return t.transport.Close()
}
