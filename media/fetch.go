package media

import (
	"github.com/mixtape-cli/mixtape/log"
	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/player"
)

// FetchTrack downloads the payload of the 1-based track number and probes it
// into a playable track.
func FetchTrack(session *network.Session, mp3s *Mp3, number int) (*player.Track, error) {
	url, err := mp3s.URLAt(number)
	if err != nil {
		return nil, err
	}

	payload, err := session.GetBytes(url)
	if err != nil {
		return nil, err
	}

	title := mp3s.Songs()[number-1]
	log.Debugf("fetched %q: %d bytes", title, len(payload))

	return BuildTrack(title, mp3s.Album(), number, url, payload), nil
}
