package mini

import (
	"fmt"

	"github.com/mixtape-cli/mixtape/history"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/mixtape-cli/mixtape/query"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/mixtape-cli/mixtape/style"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type state int

const (
	categorySelectState state = iota + 1
	searchState
	mixtapeSelectState
	trackSelectState
	playbackState
	historySelectState
	quitState
)

// option renders a category name in the select menu.
type option string

func (o option) String() string {
	return util.Capitalize(string(o))
}

// songItem renders one album track in the select menu.
type songItem struct {
	number int
	title  string
}

func (s songItem) String() string {
	return fmt.Sprintf("%2d. %s", s.number, s.title)
}

func (m *mini) handleCategorySelectState() error {
	title("Browse Mixtapes")

	categories := lo.Map(media.Categories, func(c string, _ int) option {
		return option(c)
	})

	b, category, err := menu(categories, search)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case search.eq(b):
		m.newState(searchState)
		return nil
	}

	erase := progress("Fetching listing..")
	entries, err := m.mixtapes.ByCategory(string(category))
	erase()
	if err != nil {
		fail(err.Error())
		return nil
	}

	m.listingKey = string(category)
	m.cachedListings[m.listingKey] = media.Limit(entries, viper.GetInt(key.SearchLimit))
	m.newState(mixtapeSelectState)
	return nil
}

func (m *mini) handleSearchState() error {
	var searchLoop func() error
	title("Search Mixtapes")

	searchLoop = func() error {
		in, err := getInput(func(s string) bool {
			return s != ""
		})
		if err != nil {
			return err
		}

		q := in.value
		if suggestion := query.Suggest(q); suggestion.IsPresent() {
			fmt.Println(style.Faint("Related: " + suggestion.MustGet()))
		}

		erase := progress("Searching..")
		entries, err := m.mixtapes.Search(q)
		erase()
		if err != nil {
			fail(err.Error())
			return searchLoop()
		}

		entries = media.Limit(entries, viper.GetInt(key.SearchLimit))
		if len(entries) == 0 {
			fail("No search results found")
			return searchLoop()
		}

		_ = query.Remember(q, 1)

		m.listingKey = "search:" + q
		m.cachedListings[m.listingKey] = entries
		m.newState(mixtapeSelectState)
		return nil
	}

	return searchLoop()
}

func (m *mini) handleMixtapeSelectState() error {
	title("Mixtapes >>")

	b, entry, err := menu(m.cachedListings[m.listingKey], back)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case back.eq(b):
		m.previousState()
		return nil
	}

	if err := m.openAlbum(entry); err != nil {
		fail(err.Error())
		return nil
	}

	m.newState(trackSelectState)
	return nil
}

// openAlbum resolves a listing entry into its playable track list.
func (m *mini) openAlbum(entry scrape.ListingEntry) error {
	erase := progress("Fetching album..")
	defer erase()

	album, err := media.NewAlbum(m.session, entry.Link)
	if err != nil {
		return err
	}

	mp3s, err := media.NewMp3(album)
	if err != nil {
		return err
	}

	m.selectedEntry = entry
	m.mp3s = mp3s
	return nil
}

func (m *mini) handleTrackSelectState() error {
	title(fmt.Sprintf("%s - %s", m.selectedEntry.Artist, m.selectedEntry.Title))

	songs := lo.Map(m.mp3s.Songs(), func(s string, i int) songItem {
		return songItem{number: i + 1, title: s}
	})

	b, song, err := menu(songs, back)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case back.eq(b):
		m.previousState()
		return nil
	}

	m.trackNumber = song.number
	m.newState(playbackState)
	return nil
}

func (m *mini) handlePlaybackState() error {
	if err := m.startTrack(m.trackNumber); err != nil {
		fail(err.Error())
		m.previousState()
		return nil
	}

	ended := make(chan struct{}, 1)
	m.watchEnd(ended)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			case <-ended:
				if !m.advanceTrack(ended) {
					return
				}
			}
		}
	}()
	defer func() {
		close(stop)
		<-done
	}()

	seekStep := float64(viper.GetInt(key.PlayerSeekStep))

	for {
		track, number := m.nowPlaying()
		if track == nil {
			// The watcher ran past the last track.
			m.previousState()
			return nil
		}

		util.ClearScreen()
		title(fmt.Sprintf("%s %s", songItem{number, track.Title}, style.Faint(
			fmt.Sprintf("%s / %s", util.FormatClock(m.tracker.Position()), util.FormatClock(track.Duration)),
		)))

		var options []*bind
		if m.tracker.State() == player.Paused {
			options = append(options, resumeB)
		} else {
			options = append(options, pauseB)
		}
		options = append(options, forwardB, rewindB, volUp, volDown)
		if number > 1 {
			options = append(options, prev)
		}
		if number < m.mp3s.Len() {
			options = append(options, next)
		}
		options = append(options, replay, downloadB, back)

		b, _, err := menu([]fmt.Stringer{}, options...)
		if err != nil {
			return err
		}

		switch b {
		case pauseB:
			err = m.tracker.Pause()
		case resumeB:
			err = m.tracker.Resume()
		case forwardB:
			err = m.tracker.Seek(seekStep, player.Forward)
		case rewindB:
			err = m.tracker.Seek(seekStep, player.Backward)
		case volUp:
			err = m.tracker.VolumeUp(5)
		case volDown:
			err = m.tracker.VolumeDown(5)
		case next:
			m.skipTo(1)
			return nil
		case prev:
			m.skipTo(-1)
			return nil
		case replay:
			err = m.tracker.Play(-m.tracker.Position())
		case downloadB:
			var path string
			path, err = media.Download(track)
			if err == nil {
				fmt.Println("Saved to " + style.Faint(path))
			}
		case back:
			m.saveProgress()
			_ = m.tracker.Stop()
			m.previousState()
			return nil
		case quit:
			m.saveProgress()
			_ = m.tracker.Stop()
			m.newState(quitState)
			return nil
		}

		if err != nil {
			fail(err.Error())
		}
	}
}

// watchEnd polls the tracker and signals ended once playback runs past the
// track's duration. Load cancels the previous poll loop, so every started
// track needs its own watchEnd call.
func (m *mini) watchEnd(ended chan<- struct{}) {
	m.tracker.StartTicker(func(position, duration float64) {
		if duration > 0 && position >= duration {
			select {
			case ended <- struct{}{}:
			default:
			}
		}
	})
}

// advanceTrack moves playback to the next track after the current one
// finished. It reports whether the watcher should keep running.
func (m *mini) advanceTrack(ended chan<- struct{}) bool {
	m.playMu.Lock()
	defer m.playMu.Unlock()

	// The signal may be stale: the user could have replayed or seeked
	// back between the tick and this handler.
	if m.current == nil || !m.tracker.Finished() {
		return true
	}

	m.saveProgressLocked()

	if m.trackNumber >= m.mp3s.Len() {
		m.current = nil
		_ = m.tracker.Stop()
		return false
	}

	m.trackNumber++
	if err := m.startTrackLocked(m.trackNumber); err != nil {
		m.current = nil
		_ = m.tracker.Stop()
		return false
	}

	m.watchEnd(ended)
	return true
}

// skipTo jumps delta tracks relative to the current one. The playback state
// handler re-enters and starts the new track.
func (m *mini) skipTo(delta int) {
	m.playMu.Lock()
	defer m.playMu.Unlock()

	m.saveProgressLocked()
	m.trackNumber += delta
}

// nowPlaying snapshots the playing track and its 1-based number.
func (m *mini) nowPlaying() (*player.Track, int) {
	m.playMu.Lock()
	defer m.playMu.Unlock()

	return m.current, m.trackNumber
}

// startTrack fetches, loads and plays the 1-based track number.
func (m *mini) startTrack(number int) error {
	m.playMu.Lock()
	defer m.playMu.Unlock()

	return m.startTrackLocked(number)
}

func (m *mini) startTrackLocked(number int) error {
	erase := progress("Fetching track..")
	track, err := media.FetchTrack(m.session, m.mp3s, number)
	erase()
	if err != nil {
		return err
	}

	if err = m.tracker.Load(track); err != nil {
		return err
	}

	if err = m.tracker.Play(0); err != nil {
		return err
	}

	m.current = track
	return nil
}

// saveProgress records how much of the track was heard.
func (m *mini) saveProgress() {
	m.playMu.Lock()
	defer m.playMu.Unlock()

	m.saveProgressLocked()
}

func (m *mini) saveProgressLocked() {
	if m.current == nil || !viper.GetBool(key.HistorySaveOnPlay) {
		return
	}

	percentage := 0.0
	if m.current.Duration > 0 {
		percentage = m.tracker.Position() / m.current.Duration * 100
	}

	_ = history.Save(&history.SavedTrack{
		MixtapeName: m.selectedEntry.Title,
		Artist:      m.selectedEntry.Artist,
		MixtapeLink: m.selectedEntry.Link,
		TrackTitle:  m.current.Title,
		TrackNumber: m.trackNumber,
		TracksTotal: m.mp3s.Len(),
	}, percentage)
}

func (m *mini) handleHistorySelectState() error {
	h, err := history.Get()
	if err != nil {
		return err
	}

	records := lo.Values(h)

	title("History Results >>")
	b, record, err := menu(records)
	if err != nil {
		return err
	}

	if quit.eq(b) {
		m.newState(quitState)
		return nil
	}

	entry := scrape.ListingEntry{
		Title:  record.MixtapeName,
		Artist: record.Artist,
		Link:   record.MixtapeLink,
	}

	if err := m.openAlbum(entry); err != nil {
		fail(err.Error())
		m.newState(categorySelectState)
		return nil
	}

	m.trackNumber = record.TrackNumber
	m.newState(playbackState)
	return nil
}
