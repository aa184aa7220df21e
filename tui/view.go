package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mixtape-cli/mixtape/color"
	"github.com/mixtape-cli/mixtape/icon"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/mixtape-cli/mixtape/style"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case historyState:
		return listExtraPaddingStyle.Render(b.historyC.View())
	case categoriesState:
		return listExtraPaddingStyle.Render(b.categoriesC.View())
	case searchState:
		return b.viewSearch()
	case mixtapesState:
		return listExtraPaddingStyle.Render(b.mixtapesC.View())
	case tracksState:
		return b.viewTracks()
	case playbackState:
		return b.viewPlayback()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " Working..",
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Mixtapes"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint("Suggestion: "+suggestion))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewTracks() string {
	view := b.tracksC.View()

	if b.albumBio != "" {
		bio := style.Faint(wrap.String(b.albumBio, util.Max(b.width-4, 20)))
		view += "\n\n" + bio
	}

	return listExtraPaddingStyle.Render(view)
}

func (b *statefulBubble) viewPlayback() string {
	track := b.currentTrack
	if track == nil {
		return b.viewLoading()
	}

	position := b.tracker.Position()
	percent := 0.0
	if track.Duration > 0 {
		percent = position / track.Duration
	}
	if percent > 1 {
		percent = 1
	}

	stateIcon := icon.Get(icon.Play)
	if b.tracker.State() == player.Paused {
		stateIcon = icon.Get(icon.Pause)
	}

	clock := fmt.Sprintf("%s / %s", util.FormatClock(position), util.FormatClock(track.Duration))

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", stateIcon, style.Fg(color.Purple)(track.Title))),
		style.Truncate(b.width)(style.Faint(fmt.Sprintf("%s - %s (%d/%d)", b.selectedEntry.Artist, b.selectedEntry.Title, b.trackNumber, b.mp3s.Len()))),
		"",
		b.progressC.ViewAs(percent),
		style.Faint(clock),
		"",
		style.Faint(fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), b.tracker.Volume())),
	}

	if viper.GetBool(key.TUIShowURLs) {
		lines = append(lines, "", style.Faint(track.URL))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)

	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
