package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mixtape-cli/mixtape/constant"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/mixtape-cli/mixtape/style"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the application state, component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	session  *network.Session
	mixtapes *media.Mixtapes
	tracker  *player.Tracker

	// components
	spinnerC    spinner.Model
	inputC      textinput.Model
	historyC    list.Model
	categoriesC list.Model
	mixtapesC   list.Model
	tracksC     list.Model
	progressC   progress.Model
	helpC       help.Model

	selectedEntry scrape.ListingEntry
	mp3s          *media.Mp3
	albumBio      string
	trackNumber   int
	currentTrack  *player.Track

	// resumeTrackNumber carries the track to jump back into when
	// continuing from history, zero otherwise.
	resumeTrackNumber int

	lastError error

	width, height    int
	searchSuggestion mo.Option[string]

	options *Options
}

// raiseError dispatches a terminal error and transitions to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the workflow and its keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to a target state, recording the previous state in the
// navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if !lo.Contains([]state{
		loadingState,
		playbackState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, listC := range []*list.Model{&b.historyC, &b.categoriesC, &b.mixtapesC, &b.tracksC} {
		listC.SetSize(listWidth, listHeight)
		listC.Help.Width = listWidth
	}

	b.progressC.Width = listWidth
	b.helpC.Width = listWidth

	b.width = width - x
	b.height = height - y
}

func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	return tea.Batch(b.mixtapesC.StartSpinner(), b.tracksC.StartSpinner())
}

func (b *statefulBubble) stopLoading() tea.Cmd {
	b.loading = false
	b.mixtapesC.StopSpinner()
	b.tracksC.StopSpinner()
	return nil
}

// newBubble performs a complete initialization of the primary UI model.
func newBubble(options *Options) (*statefulBubble, error) {
	transport, err := player.NewTransport()
	if err != nil {
		return nil, err
	}

	session := network.NewSession()
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		session:       session,
		mixtapes:      media.NewMixtapes(session),
		tracker:       player.NewTracker(transport),
		options:       options,
	}

	makeList := func(title string, description bool, titleBackground lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(titleBackground).Padding(0, 1)
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search Mixtapes (v%s)", constant.Version)
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	bubble.historyC = makeList("History", true, style.Yellow)
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.categoriesC = makeList("Browse", false, style.AccentColor)
	bubble.categoriesC.SetStatusBarItemName("category", "categories")
	bubble.categoriesC.SetItems(append(
		lo.Map(media.Categories, func(c string, _ int) list.Item {
			return &listItem{internal: c}
		}),
		&listItem{internal: "search"},
	))

	bubble.mixtapesC = makeList("Mixtapes", true, style.Lavender)
	bubble.mixtapesC.SetStatusBarItemName("mixtape", "mixtapes")

	bubble.tracksC = makeList("Tracks", false, style.Peach)
	bubble.tracksC.SetStatusBarItemName("track", "tracks")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble, nil
}
