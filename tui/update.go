package tui

import (
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mixtape-cli/mixtape/history"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/open"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/mixtape-cli/mixtape/query"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/spf13/viper"
)

// playTickMsg drives the once-per-second refresh of the now playing view.
type playTickMsg time.Time

func playTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return playTickMsg(t)
	})
}

// Update routes messages to global handlers first, then to the active state.
func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.stopPlayback()
			return b, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case errMsg:
		b.stopLoading()
		b.raiseError(msg.err)
		return b, nil

	case mixtapesFoundMsg:
		b.stopLoading()
		cmd := b.setMixtapes(msg.entries)
		b.newState(mixtapesState)
		return b, cmd

	case albumOpenedMsg:
		b.stopLoading()
		b.selectedEntry = msg.entry
		b.mp3s = msg.mp3s
		b.albumBio = msg.bio

		// A history continuation jumps straight back into playback.
		if b.resumeTrackNumber > 0 {
			number := b.resumeTrackNumber
			b.resumeTrackNumber = 0
			return b, tea.Batch(b.startLoading(), b.startTrack(number))
		}

		cmd := b.setTracks()
		b.newState(tracksState)
		return b, cmd

	case trackStartedMsg:
		b.stopLoading()
		b.trackNumber = msg.number
		b.currentTrack = msg.track
		b.newState(playbackState)
		return b, playTick()

	case playTickMsg:
		if b.state != playbackState || b.currentTrack == nil {
			return b, nil
		}

		if b.tracker.Finished() {
			b.saveProgress()
			if b.trackNumber < b.mp3s.Len() {
				return b, tea.Batch(b.startLoading(), b.startTrack(b.trackNumber+1))
			}

			b.stopPlayback()
			b.previousState()
			return b, nil
		}

		return b, playTick()
	}

	return b.updateState(msg)
}

// updateState handles keys and component updates for the active state.
func (b *statefulBubble) updateState(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch b.state {
	case loadingState, errorState:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case bubblesKey.Matches(msg, b.keymap.back):
				b.previousState()
			case bubblesKey.Matches(msg, b.keymap.quit):
				return b, tea.Quit
			}
		}
		return b, nil

	case historyState:
		return b.updateHistory(msg)

	case categoriesState:
		return b.updateCategories(msg)

	case searchState:
		return b.updateSearch(msg)

	case mixtapesState:
		return b.updateMixtapes(msg)

	case tracksState:
		return b.updateTracks(msg)

	case playbackState:
		return b.updatePlayback(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				break
			}
			record := item.internal.(*history.SavedTrack)

			entry := scrape.ListingEntry{
				Title:  record.MixtapeName,
				Artist: record.Artist,
				Link:   record.MixtapeLink,
			}

			b.resumeTrackNumber = record.TrackNumber
			return b, tea.Batch(b.startLoading(), b.openAlbum(entry))

		case bubblesKey.Matches(msg, b.keymap.remove):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				_ = history.Remove(item.internal.(*history.SavedTrack))
				_, _ = b.loadHistory()
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.back):
			b.newState(categoriesState)
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateCategories(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if bubblesKey.Matches(msg, b.keymap.confirm) {
			item, ok := b.categoriesC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			category := item.internal.(string)
			if category == "search" {
				b.inputC.Focus()
				b.newState(searchState)
				return b, nil
			}

			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.fetchCategory(category))
		}
	}

	var cmd tea.Cmd
	b.categoriesC, cmd = b.categoriesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			q := b.inputC.Value()
			if q == "" {
				return b, nil
			}

			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.searchMixtapes(q))

		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	b.searchSuggestion = query.Suggest(b.inputC.Value())
	return b, cmd
}

func (b *statefulBubble) updateMixtapes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.mixtapesC.SelectedItem().(*listItem)
			if !ok {
				break
			}

			entry := item.internal.(scrape.ListingEntry)
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.openAlbum(entry))

		case bubblesKey.Matches(msg, b.keymap.openURL):
			if item, ok := b.mixtapesC.SelectedItem().(*listItem); ok {
				_ = open.Start(item.internal.(scrape.ListingEntry).Link)
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.mixtapesC, cmd = b.mixtapesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateTracks(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.play):
			item, ok := b.tracksC.SelectedItem().(*listItem)
			if !ok {
				break
			}

			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.startTrack(item.internal.(song).number))

		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.tracksC, cmd = b.tracksC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlayback(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	seekStep := float64(viper.GetInt(key.PlayerSeekStep))

	switch {
	case bubblesKey.Matches(msgKey, b.keymap.playPause):
		if b.tracker.State() == player.Paused {
			_ = b.tracker.Resume()
		} else {
			_ = b.tracker.Pause()
		}

	case bubblesKey.Matches(msgKey, b.keymap.seekForward):
		_ = b.tracker.Seek(seekStep, player.Forward)

	case bubblesKey.Matches(msgKey, b.keymap.seekBack):
		_ = b.tracker.Seek(seekStep, player.Backward)

	case bubblesKey.Matches(msgKey, b.keymap.nextTrack):
		if b.trackNumber < b.mp3s.Len() {
			b.saveProgress()
			return b, tea.Batch(b.startLoading(), b.startTrack(b.trackNumber+1))
		}

	case bubblesKey.Matches(msgKey, b.keymap.prevTrack):
		if b.trackNumber > 1 {
			b.saveProgress()
			return b, tea.Batch(b.startLoading(), b.startTrack(b.trackNumber-1))
		}

	case bubblesKey.Matches(msgKey, b.keymap.replay):
		_ = b.tracker.Play(-b.tracker.Position())

	case bubblesKey.Matches(msgKey, b.keymap.volumeUp):
		_ = b.tracker.VolumeUp(5)

	case bubblesKey.Matches(msgKey, b.keymap.volumeDown):
		_ = b.tracker.VolumeDown(5)

	case bubblesKey.Matches(msgKey, b.keymap.download):
		if b.currentTrack != nil {
			_, _ = media.Download(b.currentTrack)
		}

	case bubblesKey.Matches(msgKey, b.keymap.back):
		b.stopPlayback()
		b.previousState()

	case bubblesKey.Matches(msgKey, b.keymap.quit):
		b.stopPlayback()
		return b, tea.Quit
	}

	return b, nil
}
