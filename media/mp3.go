package media

import (
	"fmt"
)

// Mp3 exposes an album's playable tracks: their display titles and the
// media host URLs of the raw payloads.
type Mp3 struct {
	album *Mp3Source
}

// Mp3Source is the slice of Album that Mp3 depends on, kept narrow so tests
// can feed scraped fixtures without a live session.
type Mp3Source struct {
	Titles    []string
	Fragments []string
	AlbumID   string
	AlbumName string
}

// NewMp3 resolves an album's track list from its embed page.
func NewMp3(album *Album) (*Mp3, error) {
	titles, err := album.songTitles()
	if err != nil {
		return nil, err
	}

	fragments, err := album.mp3Fragments()
	if err != nil {
		return nil, err
	}

	if len(titles) != len(fragments) {
		return nil, fmt.Errorf("album track list mismatch: %d titles, %d mp3 fragments", len(titles), len(fragments))
	}

	id, err := album.ID()
	if err != nil {
		return nil, err
	}

	name, err := album.Name()
	if err != nil {
		name = ""
	}

	return &Mp3{album: &Mp3Source{
		Titles:    titles,
		Fragments: fragments,
		AlbumID:   id,
		AlbumName: name,
	}}, nil
}

// Mp3FromSource wraps an already-resolved track list, bypassing the scrape.
func Mp3FromSource(source *Mp3Source) *Mp3 {
	return &Mp3{album: source}
}

// Songs returns the display titles in album order.
func (m *Mp3) Songs() []string {
	return m.album.Titles
}

// Album returns the album title, empty when it could not be scraped.
func (m *Mp3) Album() string {
	return m.album.AlbumName
}

// URLAt returns the payload URL of the 1-based track number.
func (m *Mp3) URLAt(number int) (string, error) {
	if number < 1 || number > len(m.album.Fragments) {
		return "", fmt.Errorf("track %d out of range, album has %d tracks", number, len(m.album.Fragments))
	}
	return mediaURL + m.album.AlbumID + "/" + m.album.Fragments[number-1], nil
}

// URLs returns every payload URL in album order.
func (m *Mp3) URLs() []string {
	urls := make([]string, len(m.album.Fragments))
	for i, fragment := range m.album.Fragments {
		urls[i] = mediaURL + m.album.AlbumID + "/" + fragment
	}
	return urls
}

// Len returns the number of tracks.
func (m *Mp3) Len() int {
	return len(m.album.Titles)
}
