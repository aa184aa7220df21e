package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mixtape-cli/mixtape/history"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/mixtape-cli/mixtape/style"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/spf13/viper"
)

// song is one playable album track shown in the tracks list.
type song struct {
	number int
	title  string
}

// listItem implements the list.Item interface, wrapping domain models for terminal display.
type listItem struct {
	internal interface{}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case scrape.ListingEntry:
		title = e.Title
	case song:
		title = fmt.Sprintf("%2d. %s", e.number, e.title)
	case *history.SavedTrack:
		title = e.MixtapeName
	case string:
		title = util.Capitalize(e)
	default:
		title = t.FilterValue()
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case scrape.ListingEntry:
		description = style.Faint(e.Artist)
	case *history.SavedTrack:
		completionThreshold := viper.GetFloat64(key.PlayerCompletionPercentage)
		if completionThreshold <= 0 {
			completionThreshold = 80.0
		}

		progressStr := ""
		if e.ListenedPercentage > 0 && e.ListenedPercentage < completionThreshold {
			progressStr = lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf(" (%.0f%%)", e.ListenedPercentage))
		} else if e.ListenedPercentage >= completionThreshold {
			progressStr = lipgloss.NewStyle().Foreground(style.Green).Render(" (Heard)")
		}

		description = fmt.Sprintf("%s : %d / %d%s", e.TrackTitle, e.TrackNumber, e.TracksTotal, progressStr)
	}

	return
}

// FilterValue returns the string used for real-time list filtering.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case scrape.ListingEntry:
		return e.Artist + " " + e.Title
	case song:
		return e.title
	case *history.SavedTrack:
		return e.MixtapeName
	case string:
		return e
	default:
		return ""
	}
}
