// Package mini implements a lightweight, minimalist interface for mixtape search and playback.
package mini

import (
	"os"
	"sync"

	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/samber/lo"
)

var (
	truncateAt = 100
)

type Options struct {
	Continue bool
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	session  *network.Session
	mixtapes *media.Mixtapes
	tracker  *player.Tracker

	cachedListings map[string][]scrape.ListingEntry

	listingKey    string
	selectedEntry scrape.ListingEntry
	mp3s          *media.Mp3

	// playMu guards current and trackNumber, which the end-of-track
	// watcher goroutine mutates while the menu loop reads them.
	playMu      sync.Mutex
	current     *player.Track
	trackNumber int
}

func newMini() (*mini, error) {
	transport, err := player.NewTransport()
	if err != nil {
		return nil, err
	}

	session := network.NewSession()

	return &mini{
		statesHistory:  util.Stack[state]{},
		session:        session,
		mixtapes:       media.NewMixtapes(session),
		tracker:        player.NewTracker(transport),
		cachedListings: make(map[string][]scrape.ListingEntry),
	}, nil
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{playbackState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

func Run(options *Options) error {
	m, err := newMini()
	if err != nil {
		return err
	}
	defer util.Ignore(m.tracker.Close)

	m.state = categorySelectState
	if options.Continue {
		m.state = historySelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case historySelectState:
		return m.handleHistorySelectState()
	case categorySelectState:
		return m.handleCategorySelectState()
	case searchState:
		return m.handleSearchState()
	case mixtapeSelectState:
		return m.handleMixtapeSelectState()
	case trackSelectState:
		return m.handleTrackSelectState()
	case playbackState:
		return m.handlePlaybackState()
	case quitState:
		os.Exit(0)
	}

	return nil
}
