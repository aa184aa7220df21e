package tui

type state int

const (
	loadingState state = iota
	errorState
	historyState
	categoriesState
	searchState
	mixtapesState
	tracksState
	playbackState
)
