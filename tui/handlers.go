package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mixtape-cli/mixtape/history"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/mixtape-cli/mixtape/query"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Messages produced by the asynchronous workflow commands.
type (
	mixtapesFoundMsg struct {
		entries []scrape.ListingEntry
	}

	albumOpenedMsg struct {
		entry scrape.ListingEntry
		mp3s  *media.Mp3
		bio   string
	}

	trackStartedMsg struct {
		number int
		track  *player.Track
	}

	errMsg struct {
		err error
	}
)

// fetchCategory loads a category listing in the background.
func (b *statefulBubble) fetchCategory(category string) tea.Cmd {
	return func() tea.Msg {
		entries, err := b.mixtapes.ByCategory(category)
		if err != nil {
			return errMsg{err}
		}

		return mixtapesFoundMsg{media.Limit(entries, viper.GetInt(key.SearchLimit))}
	}
}

// searchMixtapes runs a site search in the background.
func (b *statefulBubble) searchMixtapes(q string) tea.Cmd {
	return func() tea.Msg {
		entries, err := b.mixtapes.Search(q)
		if err != nil {
			return errMsg{err}
		}

		_ = query.Remember(q, 1)

		return mixtapesFoundMsg{media.Limit(entries, viper.GetInt(key.SearchLimit))}
	}
}

// openAlbum resolves a listing entry into its track list in the background.
func (b *statefulBubble) openAlbum(entry scrape.ListingEntry) tea.Cmd {
	return func() tea.Msg {
		album, err := media.NewAlbum(b.session, entry.Link)
		if err != nil {
			return errMsg{err}
		}

		mp3s, err := media.NewMp3(album)
		if err != nil {
			return errMsg{err}
		}

		bio, err := album.Bio()
		if err != nil {
			bio = ""
		}

		return albumOpenedMsg{entry: entry, mp3s: mp3s, bio: bio}
	}
}

// startTrack fetches and plays the 1-based track number in the background.
func (b *statefulBubble) startTrack(number int) tea.Cmd {
	return func() tea.Msg {
		track, err := media.FetchTrack(b.session, b.mp3s, number)
		if err != nil {
			return errMsg{err}
		}

		if err := b.tracker.Load(track); err != nil {
			return errMsg{err}
		}

		if err := b.tracker.Play(0); err != nil {
			return errMsg{err}
		}

		return trackStartedMsg{number: number, track: track}
	}
}

// setMixtapes populates the mixtapes list component.
func (b *statefulBubble) setMixtapes(entries []scrape.ListingEntry) tea.Cmd {
	return b.mixtapesC.SetItems(lo.Map(entries, func(e scrape.ListingEntry, _ int) list.Item {
		return &listItem{internal: e}
	}))
}

// setTracks populates the tracks list component from the open album.
func (b *statefulBubble) setTracks() tea.Cmd {
	return b.tracksC.SetItems(lo.Map(b.mp3s.Songs(), func(title string, i int) list.Item {
		return &listItem{internal: song{number: i + 1, title: title}}
	}))
}

// loadHistory populates the history list from the persistent store.
func (b *statefulBubble) loadHistory() ([]list.Item, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	items := lo.Map(lo.Values(saved), func(record *history.SavedTrack, _ int) list.Item {
		return &listItem{internal: record}
	})

	b.historyC.SetItems(items)
	return items, nil
}

// saveProgress records how much of the current track was heard.
func (b *statefulBubble) saveProgress() {
	if b.currentTrack == nil || !viper.GetBool(key.HistorySaveOnPlay) {
		return
	}

	percentage := 0.0
	if b.currentTrack.Duration > 0 {
		percentage = b.tracker.Position() / b.currentTrack.Duration * 100
	}

	_ = history.Save(&history.SavedTrack{
		MixtapeName: b.selectedEntry.Title,
		Artist:      b.selectedEntry.Artist,
		MixtapeLink: b.selectedEntry.Link,
		TrackTitle:  b.currentTrack.Title,
		TrackNumber: b.trackNumber,
		TracksTotal: b.mp3s.Len(),
	}, percentage)
}

// stopPlayback saves progress and halts the transport.
func (b *statefulBubble) stopPlayback() {
	b.saveProgress()
	_ = b.tracker.Stop()
	b.currentTrack = nil
}
