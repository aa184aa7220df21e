package mini

import (
	"testing"
	"time"

	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/player"
	. "github.com/smartystreets/goconvey/convey"
)

type silentTransport struct{}

func (silentTransport) LoadBytes([]byte, int64) error { return nil }
func (silentTransport) Start() error                  { return nil }
func (silentTransport) Halt() error                   { return nil }
func (silentTransport) SetVolume(int) error           { return nil }
func (silentTransport) Close() error                  { return nil }

func shortTrack(duration float64) *player.Track {
	return &player.Track{
		Title:         "Intro",
		Number:        1,
		Duration:      duration,
		ContentLength: 4096,
		Content:       make([]byte, 4096),
	}
}

func TestPlaybackWatcher(t *testing.T) {
	Convey("Given a mini session with a single-track album", t, func() {
		m := &mini{
			tracker: player.NewTracker(silentTransport{}),
			mp3s: media.Mp3FromSource(&media.Mp3Source{
				Titles:    []string{"Intro"},
				Fragments: []string{"intro.mp3"},
				AlbumID:   "1",
				AlbumName: "Demo",
			}),
			trackNumber: 1,
		}

		start := func(duration float64) *player.Track {
			track := shortTrack(duration)
			So(m.tracker.Load(track), ShouldBeNil)
			So(m.tracker.Play(0), ShouldBeNil)
			m.current = track
			return track
		}

		Convey("watchEnd should signal once playback runs past the duration", func() {
			start(0.2)

			ended := make(chan struct{}, 1)
			m.watchEnd(ended)
			defer m.tracker.StopTicker()

			select {
			case <-ended:
			case <-time.After(3 * time.Second):
				So("no end signal arrived", ShouldBeEmpty)
			}
		})

		Convey("watchEnd should stay quiet mid-track", func() {
			start(600)

			ended := make(chan struct{}, 1)
			m.watchEnd(ended)
			defer m.tracker.StopTicker()

			select {
			case <-ended:
				So("unexpected end signal", ShouldBeEmpty)
			case <-time.After(1500 * time.Millisecond):
			}
		})

		Convey("advanceTrack should ignore a stale signal", func() {
			track := start(600)

			ended := make(chan struct{}, 1)
			So(m.advanceTrack(ended), ShouldBeTrue)

			current, number := m.nowPlaying()
			So(current, ShouldEqual, track)
			So(number, ShouldEqual, 1)
		})

		Convey("advanceTrack should stop playback after the last track", func() {
			start(0.05)
			time.Sleep(100 * time.Millisecond)
			So(m.tracker.Finished(), ShouldBeTrue)

			ended := make(chan struct{}, 1)
			So(m.advanceTrack(ended), ShouldBeFalse)

			current, _ := m.nowPlaying()
			So(current, ShouldBeNil)
			So(m.tracker.State(), ShouldEqual, player.Stopped)
		})
	})
}
