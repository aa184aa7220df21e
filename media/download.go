package media

import (
	"fmt"
	"path/filepath"

	"github.com/mixtape-cli/mixtape/filesystem"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/mixtape-cli/mixtape/where"
)

// Download writes a fetched track's payload to the downloads directory and
// returns the written path. Album tracks land in a per-album subdirectory.
func Download(track *player.Track) (string, error) {
	if len(track.Content) == 0 {
		return "", fmt.Errorf("track %q has no payload to save", track.Title)
	}

	dir := where.Downloads()
	if track.Album != "" {
		dir = filepath.Join(dir, util.SanitizeFilename(track.Album))
		if err := filesystem.API().MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	name := util.SanitizeFilename(track.Title)
	if track.Number > 0 {
		name = fmt.Sprintf("%02d - %s", track.Number, name)
	}

	path := filepath.Join(dir, name+".mp3")
	if err := filesystem.API().WriteFile(path, track.Content, 0o644); err != nil {
		return "", err
	}

	return path, nil
}
