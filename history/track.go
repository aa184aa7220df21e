package history

import (
	"fmt"
)

// SavedTrack represents a single playback entry preserved in the user's history.
type SavedTrack struct {
	MixtapeName        string  `json:"mixtape_name"`
	Artist             string  `json:"artist"`
	MixtapeLink        string  `json:"mixtape_link"`
	TrackTitle         string  `json:"track_title"`
	TrackNumber        int     `json:"track_number"`
	TracksTotal        int     `json:"tracks_total"`
	ListenedPercentage float64 `json:"listened_percentage"`
}

func (s *SavedTrack) encode() string {
	return fmt.Sprintf("%s (%s)", s.MixtapeName, s.Artist)
}

func (s *SavedTrack) String() string {
	return fmt.Sprintf("%s : %d / %d", s.MixtapeName, s.TrackNumber, s.TracksTotal)
}
