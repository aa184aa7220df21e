package media

import (
	"fmt"

	"github.com/mixtape-cli/mixtape/log"
	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/scrape"
)

// Album is one mixtape resolved from its listing link: the embed player page
// it was scraped from plus the public album page for uploader details.
//
// The desktop embed page is tried first. When its markup does not yield a
// player id the mobile variant is fetched instead, the two differ in layout
// but expose the same track data.
type Album struct {
	session *network.Session

	link   string
	number string

	embedHTML string
	pageHTML  string
	mobile    bool
}

// NewAlbum resolves a scraped listing link into an Album. It fetches the
// embed player page eagerly since every other lookup depends on it.
func NewAlbum(session *network.Session, link string) (*Album, error) {
	number, err := scrape.AlbumSuffixNumber(link)
	if err != nil {
		return nil, fmt.Errorf("album link %q: %w", link, err)
	}

	album := &Album{
		session: session,
		link:    absoluteLink(link),
		number:  number,
	}

	if err := album.fetchEmbed(); err != nil {
		return nil, err
	}

	return album, nil
}

func (a *Album) fetchEmbed() error {
	html, err := a.session.Get(embedPlayerURL(a.number, false))
	if err == nil {
		if _, idErr := scrape.EmbedPlayerID(html); idErr == nil {
			a.embedHTML = html
			return nil
		}
		log.Debugf("desktop embed page for %s has no player id, trying mobile", a.number)
	}

	html, err = a.session.Get(embedPlayerURL(a.number, true))
	if err != nil {
		return err
	}

	a.embedHTML = html
	a.mobile = true
	return nil
}

// page lazily fetches the public album page used for uploader details.
func (a *Album) page() (string, error) {
	if a.pageHTML != "" {
		return a.pageHTML, nil
	}

	html, err := a.session.Get(a.link)
	if err != nil {
		return "", err
	}

	a.pageHTML = html
	return html, nil
}

// Name returns the album title.
func (a *Album) Name() (string, error) {
	return scrape.AlbumName(a.embedHTML, a.mobile)
}

// ID returns the media host album id the mp3 URLs are keyed by.
func (a *Album) ID() (string, error) {
	return scrape.EmbedPlayerID(a.embedHTML)
}

// Link returns the absolute album page URL.
func (a *Album) Link() string {
	return a.link
}

// songTitles returns the embed page's track titles in album order.
func (a *Album) songTitles() ([]string, error) {
	return scrape.SongTitles(a.embedHTML)
}

// mp3Fragments returns the embed page's payload URL fragments.
func (a *Album) mp3Fragments() ([]string, error) {
	return scrape.Mp3URLFragments(a.embedHTML)
}

// Uploader returns the username that published the mixtape.
func (a *Album) Uploader() (string, error) {
	html, err := a.page()
	if err != nil {
		return "", err
	}
	return scrape.UploaderName(html)
}

// Bio returns the uploader's description of the mixtape.
func (a *Album) Bio() (string, error) {
	html, err := a.page()
	if err != nil {
		return "", err
	}
	return scrape.UploaderBio(html)
}
