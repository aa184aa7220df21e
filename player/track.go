package player

// Track is a fully resolved, playable song: identifying metadata plus the
// raw mp3 payload and the two numbers the tracker's offset arithmetic
// depends on.
type Track struct {
	Title  string
	Artist string
	Album  string

	// Number is the 1-based position of the track within its album.
	Number int

	// Duration is the track length in seconds.
	Duration float64

	// ContentLength is the size of the mp3 payload in bytes.
	ContentLength int64

	// Content is the raw mp3 payload.
	Content []byte

	// URL is the source the payload was fetched from.
	URL string
}

// BytesPerSec is the average byte rate of the payload, the conversion
// factor between a position in seconds and a byte offset into Content.
func (t *Track) BytesPerSec() float64 {
	return float64(t.ContentLength) / t.Duration
}

// Valid reports whether the track carries the metadata playback requires.
func (t *Track) Valid() bool {
	return t != nil && t.Duration > 0 && t.ContentLength > 0
}
