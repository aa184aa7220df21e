package media

import (
	"bytes"
	"errors"
	"io"

	"github.com/dhowden/tag"
	"github.com/mixtape-cli/mixtape/log"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/tcolgate/mp3"
)

// fallbackBitrate is assumed when no mp3 frame decodes, 192 kbps.
const fallbackBitrate = 192000

// BuildTrack turns a fetched mp3 payload into a playable track. The duration
// comes from walking the payload's frames, the scraped title and album are
// used unless the payload carries better ID3 metadata.
func BuildTrack(title, album string, number int, url string, payload []byte) *player.Track {
	track := &player.Track{
		Title:         title,
		Album:         album,
		Number:        number,
		URL:           url,
		Duration:      probeDuration(payload),
		ContentLength: int64(len(payload)),
		Content:       payload,
	}

	if meta, err := tag.ReadFrom(bytes.NewReader(payload)); err == nil {
		if t := meta.Title(); t != "" {
			track.Title = t
		}
		track.Artist = meta.Artist()
		if a := meta.Album(); a != "" {
			track.Album = a
		}
	}

	return track
}

// probeDuration decodes the payload frame by frame and sums frame durations.
// Payloads that yield no frames at all fall back to an average bitrate
// estimate.
func probeDuration(payload []byte) float64 {
	dec := mp3.NewDecoder(bytes.NewReader(payload))

	var (
		total   float64
		frames  int
		skipped int
	)

	for {
		var frame mp3.Frame
		if err := dec.Decode(&frame, &skipped); err != nil {
			if !errors.Is(err, io.EOF) && frames == 0 {
				log.Debugf("no mp3 frames decoded, estimating duration: %v", err)
				return estimateDuration(len(payload))
			}
			break
		}
		total += frame.Duration().Seconds()
		frames++
	}

	if frames == 0 {
		return estimateDuration(len(payload))
	}

	return total
}

func estimateDuration(size int) float64 {
	return float64(size) * 8 / fallbackBitrate
}
