package player

import (
	"bytes"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeTransport records every interaction so tests can assert on the byte
// offsets the tracker computed.
type fakeTransport struct {
	loads   []int64
	starts  int
	halts   int
	volumes []int
	closed  bool

	loadErr  error
	startErr error
}

func (f *fakeTransport) LoadBytes(content []byte, fromOffset int64) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loads = append(f.loads, fromOffset)
	return nil
}

func (f *fakeTransport) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.starts++
	return nil
}

func (f *fakeTransport) Halt() error {
	f.halts++
	return nil
}

func (f *fakeTransport) SetVolume(percent int) error {
	f.volumes = append(f.volumes, percent)
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

// fakeClock lets tests advance playback time deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(seconds float64) {
	c.t = c.t.Add(time.Duration(seconds * float64(time.Second)))
}

// 180 second track at 320000 bytes per second.
func testTrack() *Track {
	return &Track{
		Title:         "Intro",
		Duration:      180,
		ContentLength: 57600000,
		Content:       bytes.Repeat([]byte{0xff}, 64),
	}
}

func newTestTracker() (*Tracker, *fakeTransport, *fakeClock) {
	transport := &fakeTransport{}
	clock := &fakeClock{t: time.Unix(1700000000, 0)}

	tracker := NewTracker(transport)
	tracker.now = clock.now

	return tracker, transport, clock
}

func TestTracker(t *testing.T) {
	Convey("Tracker", t, func() {
		tracker, transport, clock := newTestTracker()

		Convey("Load", func() {
			Convey("Should reject a track without duration", func() {
				err := tracker.Load(&Track{ContentLength: 1000})
				So(err, ShouldEqual, ErrInvalidTrack)
				So(tracker.State(), ShouldEqual, Stopped)
			})

			Convey("Should reject a track without content length", func() {
				err := tracker.Load(&Track{Duration: 60})
				So(err, ShouldEqual, ErrInvalidTrack)
			})

			Convey("Should stage a valid track without starting playback", func() {
				So(tracker.Load(testTrack()), ShouldBeNil)
				So(tracker.State(), ShouldEqual, Loading)
				So(transport.starts, ShouldEqual, 0)
				So(tracker.Position(), ShouldEqual, 0)
			})

			Convey("Should discard the previous position clock", func() {
				So(tracker.Load(testTrack()), ShouldBeNil)
				So(tracker.Play(0), ShouldBeNil)
				clock.advance(30)

				So(tracker.Load(testTrack()), ShouldBeNil)
				So(tracker.Position(), ShouldEqual, 0)
			})
		})

		Convey("Play", func() {
			Convey("Should fail with no media loaded", func() {
				So(tracker.Play(0), ShouldEqual, ErrNoMediaLoaded)
			})

			Convey("Should start from the beginning with offset zero", func() {
				So(tracker.Load(testTrack()), ShouldBeNil)
				So(tracker.Play(0), ShouldBeNil)

				So(tracker.State(), ShouldEqual, Playing)
				So(tracker.Position(), ShouldAlmostEqual, 0, 0.001)
			})

			Convey("Should never reload from byte zero", func() {
				So(tracker.Load(testTrack()), ShouldBeNil)
				So(tracker.Play(0), ShouldBeNil)

				// floor is one second's worth of bytes
				So(transport.loads, ShouldResemble, []int64{320000})
			})

			Convey("Should convert seconds to bytes at the track's rate", func() {
				So(tracker.Load(testTrack()), ShouldBeNil)
				So(tracker.Play(30), ShouldBeNil)

				So(transport.loads, ShouldResemble, []int64{30 * 320000})
				So(tracker.Position(), ShouldAlmostEqual, 30, 0.001)
			})

			Convey("Should apply the configured volume on start", func() {
				So(tracker.SetVolume(55), ShouldBeNil)
				So(tracker.Load(testTrack()), ShouldBeNil)
				So(tracker.Play(0), ShouldBeNil)

				So(transport.volumes[len(transport.volumes)-1], ShouldEqual, 55)
			})
		})

		Convey("Position", func() {
			So(tracker.Load(testTrack()), ShouldBeNil)
			So(tracker.Play(0), ShouldBeNil)

			Convey("Should advance with wall time while playing", func() {
				clock.advance(12.5)
				So(tracker.Position(), ShouldAlmostEqual, 12.5, 0.001)
			})

			Convey("Should freeze while paused", func() {
				clock.advance(20)
				So(tracker.Pause(), ShouldBeNil)
				clock.advance(999)
				So(tracker.Position(), ShouldAlmostEqual, 20, 0.001)
			})

			Convey("Should be zero after stop", func() {
				clock.advance(20)
				So(tracker.Stop(), ShouldBeNil)
				So(tracker.Position(), ShouldEqual, 0)
			})
		})

		Convey("Pause and Resume", func() {
			So(tracker.Load(testTrack()), ShouldBeNil)
			So(tracker.Play(0), ShouldBeNil)
			clock.advance(45)

			Convey("Pause should halt the transport", func() {
				haltsBefore := transport.halts
				So(tracker.Pause(), ShouldBeNil)
				So(tracker.State(), ShouldEqual, Paused)
				So(transport.halts, ShouldEqual, haltsBefore+1)
			})

			Convey("Pause should be idempotent", func() {
				So(tracker.Pause(), ShouldBeNil)
				pos := tracker.Position()
				So(tracker.Pause(), ShouldBeNil)
				So(tracker.Position(), ShouldEqual, pos)
			})

			Convey("Resume should continue from the pause position", func() {
				So(tracker.Pause(), ShouldBeNil)
				clock.advance(300)
				So(tracker.Resume(), ShouldBeNil)

				So(tracker.State(), ShouldEqual, Playing)
				So(tracker.Position(), ShouldAlmostEqual, 45, 0.001)
				So(transport.loads[len(transport.loads)-1], ShouldEqual, 45*320000)
			})

			Convey("Resume without a pause should fail", func() {
				So(tracker.Resume(), ShouldEqual, ErrInvalidTransition)
			})

			Convey("Pause before play should fail", func() {
				fresh, _, _ := newTestTracker()
				So(fresh.Load(testTrack()), ShouldBeNil)
				So(fresh.Pause(), ShouldEqual, ErrInvalidTransition)
			})
		})

		Convey("Seek", func() {
			So(tracker.Load(testTrack()), ShouldBeNil)
			So(tracker.Play(0), ShouldBeNil)
			clock.advance(60)

			Convey("Forward then backward by the same delta should round-trip", func() {
				So(tracker.Seek(5, Forward), ShouldBeNil)
				So(tracker.Position(), ShouldAlmostEqual, 65, 0.001)

				So(tracker.Seek(5, Backward), ShouldBeNil)
				So(tracker.Position(), ShouldAlmostEqual, 60, 0.001)
			})

			Convey("Backward past the start should clamp to zero", func() {
				So(tracker.Seek(500, Backward), ShouldBeNil)
				So(tracker.Position(), ShouldAlmostEqual, 0, 0.001)

				// the byte offset still gets the one second floor
				So(transport.loads[len(transport.loads)-1], ShouldEqual, 320000)
			})

			Convey("Seeking while paused should resume at the new position", func() {
				So(tracker.Pause(), ShouldBeNil)
				So(tracker.Seek(10, Forward), ShouldBeNil)

				So(tracker.State(), ShouldEqual, Playing)
				So(tracker.Position(), ShouldAlmostEqual, 70, 0.001)
			})

			Convey("Seeking while stopped should fail", func() {
				So(tracker.Stop(), ShouldBeNil)
				So(tracker.Seek(5, Forward), ShouldEqual, ErrInvalidTransition)
			})
		})

		Convey("Finished", func() {
			So(tracker.Load(testTrack()), ShouldBeNil)

			Convey("Should be false before the end", func() {
				So(tracker.Play(0), ShouldBeNil)
				clock.advance(179.5)
				So(tracker.Finished(), ShouldBeFalse)
			})

			Convey("Should be true exactly at the duration", func() {
				So(tracker.Play(0), ShouldBeNil)
				clock.advance(180)
				So(tracker.Finished(), ShouldBeTrue)
			})

			Convey("Should be false while paused, even at the end", func() {
				So(tracker.Play(0), ShouldBeNil)
				clock.advance(180)
				So(tracker.Pause(), ShouldBeNil)
				So(tracker.Finished(), ShouldBeFalse)
			})

			Convey("Should be false when stopped", func() {
				So(tracker.Finished(), ShouldBeFalse)
			})
		})

		Convey("Stop", func() {
			So(tracker.Load(testTrack()), ShouldBeNil)
			So(tracker.Play(0), ShouldBeNil)

			So(tracker.Stop(), ShouldBeNil)
			So(tracker.State(), ShouldEqual, Stopped)

			_, err := tracker.Current()
			So(err, ShouldEqual, ErrNoMediaLoaded)
		})

		Convey("Failed reload", func() {
			So(tracker.Load(testTrack()), ShouldBeNil)
			So(tracker.Play(0), ShouldBeNil)
			clock.advance(30)

			Convey("Should park a playing track at its old position", func() {
				transport.loadErr = errors.New("disk full")
				So(tracker.Seek(5, Forward), ShouldNotBeNil)

				So(tracker.State(), ShouldEqual, Paused)
				clock.advance(999)
				So(tracker.Position(), ShouldAlmostEqual, 30, 0.001)
			})

			Convey("Should park on a failed transport start too", func() {
				transport.startErr = errors.New("backend gone")
				So(tracker.Seek(5, Forward), ShouldNotBeNil)

				So(tracker.State(), ShouldEqual, Paused)
				So(tracker.Position(), ShouldAlmostEqual, 30, 0.001)
			})

			Convey("Should stay resumable from the parked position", func() {
				transport.loadErr = errors.New("disk full")
				So(tracker.Seek(5, Forward), ShouldNotBeNil)

				transport.loadErr = nil
				So(tracker.Resume(), ShouldBeNil)
				So(tracker.Position(), ShouldAlmostEqual, 30, 0.001)
			})

			Convey("Should leave a fresh load in Loading", func() {
				fresh, transport, _ := newTestTracker()
				So(fresh.Load(testTrack()), ShouldBeNil)

				transport.startErr = errors.New("backend gone")
				So(fresh.Play(0), ShouldNotBeNil)

				So(fresh.State(), ShouldEqual, Loading)
				So(fresh.Position(), ShouldEqual, 0)
			})
		})

		Convey("Volume", func() {
			Convey("Should clamp to the 0-100 range", func() {
				So(tracker.SetVolume(150), ShouldBeNil)
				So(tracker.Volume(), ShouldEqual, 100)

				So(tracker.SetVolume(-10), ShouldBeNil)
				So(tracker.Volume(), ShouldEqual, 0)
			})

			Convey("Up and down should move relative to the current level", func() {
				So(tracker.SetVolume(50), ShouldBeNil)
				So(tracker.VolumeUp(20), ShouldBeNil)
				So(tracker.Volume(), ShouldEqual, 70)

				So(tracker.VolumeDown(30), ShouldBeNil)
				So(tracker.Volume(), ShouldEqual, 40)
			})

			Convey("Up past the ceiling should clamp", func() {
				So(tracker.SetVolume(95), ShouldBeNil)
				So(tracker.VolumeUp(20), ShouldBeNil)
				So(tracker.Volume(), ShouldEqual, 100)
			})
		})

		Convey("Close", func() {
			So(tracker.Close(), ShouldBeNil)
			So(transport.closed, ShouldBeTrue)
		})
	})
}

func TestTrackerTicker(t *testing.T) {
	Convey("Ticker", t, func() {
		tracker, _, clock := newTestTracker()
		So(tracker.Load(testTrack()), ShouldBeNil)
		So(tracker.Play(0), ShouldBeNil)

		// pollLoop returns the running loop's done channel.
		pollLoop := func() chan struct{} {
			tracker.mu.RLock()
			defer tracker.mu.RUnlock()
			return tracker.tickerDone
		}

		exitsWithin := func(done chan struct{}, d time.Duration) bool {
			select {
			case <-done:
				return true
			case <-time.After(d):
				return false
			}
		}

		Convey("Should report the live position to the callback", func() {
			ticks := make(chan float64, 1)
			tracker.StartTicker(func(position, duration float64) {
				select {
				case ticks <- position:
				default:
				}
			})
			defer tracker.StopTicker()

			clock.advance(5)

			select {
			case position := <-ticks:
				So(position, ShouldAlmostEqual, 5, 0.001)
			case <-time.After(3 * time.Second):
				So("no tick arrived", ShouldBeEmpty)
			}
		})

		Convey("StopTicker should cancel the loop and wait for it", func() {
			tracker.StartTicker(func(position, duration float64) {})
			done := pollLoop()
			So(done, ShouldNotBeNil)

			tracker.StopTicker()
			So(exitsWithin(done, time.Second), ShouldBeTrue)
			So(pollLoop(), ShouldBeNil)
		})

		Convey("Stop should cancel the loop", func() {
			tracker.StartTicker(func(position, duration float64) {})
			done := pollLoop()

			So(tracker.Stop(), ShouldBeNil)
			So(exitsWithin(done, time.Second), ShouldBeTrue)
			So(pollLoop(), ShouldBeNil)
		})

		Convey("Load should cancel the loop", func() {
			tracker.StartTicker(func(position, duration float64) {})
			done := pollLoop()

			So(tracker.Load(testTrack()), ShouldBeNil)
			So(exitsWithin(done, time.Second), ShouldBeTrue)
			So(pollLoop(), ShouldBeNil)
		})

		Convey("Should exit on its own when the track finishes", func() {
			tracker.StartTicker(func(position, duration float64) {})
			done := pollLoop()

			clock.advance(181)
			So(exitsWithin(done, 3*time.Second), ShouldBeTrue)
		})

		Convey("Restarting should replace the previous loop", func() {
			tracker.StartTicker(func(position, duration float64) {})
			first := pollLoop()

			tracker.StartTicker(func(position, duration float64) {})
			So(exitsWithin(first, time.Second), ShouldBeTrue)
			So(pollLoop(), ShouldNotEqual, first)

			tracker.StopTicker()
		})
	})
}

func TestTrackBytesPerSec(t *testing.T) {
	Convey("BytesPerSec", t, func() {
		track := &Track{Duration: 180, ContentLength: 57600000}
		So(track.BytesPerSec(), ShouldAlmostEqual, 320000, 0.001)
	})
}
