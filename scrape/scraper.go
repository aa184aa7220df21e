// Package scrape implements the regex extraction rules for the mixtape site's markup.
//
// The site exposes no public API; album and track metadata come from its
// embedded player pages and mixtape listing pages. These rules are inherently
// brittle against markup changes, so every extractor returns a descriptive
// error instead of a partial result when its pattern stops matching.
package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mixtape-cli/mixtape/util"
)

var (
	songTitleRe   = regexp.MustCompile(`"title"\s*:\s*"(?P<title>[^"]+)"`)
	mp3FragmentRe = regexp.MustCompile(`"mp3"\s*:\s*"(?P<mp3>[^"]+\.mp3)"`)
	embedIDRe     = regexp.MustCompile(`hw-mp3\.datpiff\.com/mixtapes/(?P<id>\d+/m[0-9a-f]+)/`)
	albumSuffixRe = regexp.MustCompile(`\.(?P<number>\d+)\.html`)

	uploaderNameRe = regexp.MustCompile(`profile-link"[^>]*>\s*(?P<name>[^<]+?)\s*</a>`)
	uploaderBioRe  = regexp.MustCompile(`(?s)<div class="bio">\s*(?P<bio>.*?)\s*</div>`)

	// Desktop markup broke in mid-2020 and only the album title div stopped
	// populating; the mobile page's og:title meta is the fallback.
	albumNameDesktopRe = regexp.MustCompile(`title">(?P<name>[^<]+)</div`)
	albumNameMobileRe  = regexp.MustCompile(`og:title"\s*content="(?P<name>[^"]+)"`)

	listingItemRe = regexp.MustCompile(`(?s)<div class="contentItemInner">.*?<a href="(?P<link>[^"]+\.html)"[^>]*title="(?P<title>[^"]+)".*?<div class="artist">(?P<artist>[^<]+)</div>`)

	tagRe = regexp.MustCompile(`<[^>]+>`)
)

// SongTitles returns every track title found on an embed player page, in page order.
func SongTitles(html string) ([]string, error) {
	matches := songTitleRe.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no song titles found in embed player page")
	}

	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		titles = append(titles, strings.TrimSpace(m[1]))
	}
	return titles, nil
}

// Mp3URLFragments returns the per-track mp3 path fragments from an embed
// player page, url-encoded so they can be joined onto the media host prefix.
func Mp3URLFragments(html string) ([]string, error) {
	matches := mp3FragmentRe.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no mp3 fragments found in embed player page")
	}

	fragments := make([]string, 0, len(matches))
	for _, m := range matches {
		fragments = append(fragments, strings.ReplaceAll(m[1], " ", "%20"))
	}
	return fragments, nil
}

// EmbedPlayerID extracts the album's media reference id (e.g. "6/m1393dba")
// from an embed player page.
func EmbedPlayerID(html string) (string, error) {
	groups := util.ReGroups(embedIDRe, html)
	id, ok := groups["id"]
	if !ok || id == "" {
		return "", fmt.Errorf("no embed player id found")
	}
	return id, nil
}

// AlbumSuffixNumber extracts the numeric album id from a mixtape page link
// (the digits before the ".html" suffix).
func AlbumSuffixNumber(link string) (string, error) {
	groups := util.ReGroups(albumSuffixRe, link)
	number, ok := groups["number"]
	if !ok || number == "" {
		return "", fmt.Errorf("no album id in link %q", link)
	}
	return number, nil
}

// UploaderName extracts the uploader's display name from a mixtape page.
func UploaderName(html string) (string, error) {
	groups := util.ReGroups(uploaderNameRe, html)
	name, ok := groups["name"]
	if !ok || name == "" {
		return "", fmt.Errorf("no uploader name found")
	}
	return name, nil
}

// UploaderBio extracts the uploader's bio from a mixtape page, stripped of markup.
func UploaderBio(html string) (string, error) {
	groups := util.ReGroups(uploaderBioRe, html)
	bio, ok := groups["bio"]
	if !ok || bio == "" {
		return "", fmt.Errorf("no uploader bio found")
	}
	return strings.TrimSpace(tagRe.ReplaceAllString(bio, "")), nil
}

// AlbumName extracts the album title. The mobile flag selects the mobile
// page's og:title fallback over the desktop title div.
func AlbumName(html string, mobile bool) (string, error) {
	re := albumNameDesktopRe
	if mobile {
		re = albumNameMobileRe
	}

	groups := util.ReGroups(re, html)
	name, ok := groups["name"]
	if !ok || name == "" {
		return "", fmt.Errorf("no album name found")
	}
	return strings.TrimSpace(name), nil
}

// ListingEntry is one mixtape on a category or search results page.
type ListingEntry struct {
	Title  string
	Artist string
	Link   string
}

func (e ListingEntry) String() string {
	return fmt.Sprintf("%s - %s", e.Artist, e.Title)
}

// Listing returns every mixtape entry found on a category or search results page.
func Listing(html string) ([]ListingEntry, error) {
	matches := listingItemRe.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no mixtape entries found in listing page")
	}

	names := listingItemRe.SubexpNames()
	entries := make([]ListingEntry, 0, len(matches))
	for _, m := range matches {
		var entry ListingEntry
		for i, name := range names {
			switch name {
			case "link":
				entry.Link = m[i]
			case "title":
				entry.Title = strings.TrimSpace(m[i])
			case "artist":
				entry.Artist = strings.TrimSpace(m[i])
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
