package player

// State is the playback lifecycle state of the tracker.
type State int

const (
	// Stopped means no playback and no position clock.
	Stopped State = iota

	// Loading means a track is validated and staged but not yet playing.
	Loading

	// Playing means the position clock is running.
	Playing

	// Paused means the position clock is frozen at the pause position.
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}
