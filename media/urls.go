// Package media models datpiff's public surface: mixtape listings, albums,
// their embedded track lists and the mp3 payloads behind them.
package media

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	baseURL   = "https://www.datpiff.com"
	mobileURL = "https://m.datpiff.com"

	// mp3 payloads are served from a separate media host, keyed by an
	// album id scraped from the embed player page.
	mediaURL = "https://hw-mp3.datpiff.com/mixtapes/"
)

// embedPlayerURL builds the embed player page URL for an album's suffix
// number. The mobile platform variant serves a simpler page that survives
// when the desktop one is geo-blocked or rearranged.
func embedPlayerURL(number string, mobile bool) string {
	host, platform := "embeds", "desktop"
	if mobile {
		host, platform = "mobile", "mobile"
	}
	return fmt.Sprintf("https://%s.datpiff.com/mixtape/%s?trackid=1&platform=%s", host, number, platform)
}

// absoluteLink resolves a scraped album link against the site root.
func absoluteLink(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return baseURL + "/" + strings.TrimLeft(link, "/")
}

// searchURL builds the mixtape search endpoint for a query.
func searchURL(query string) string {
	return baseURL + "/mixtapes-search?criteria=" + url.QueryEscape(query) + "&sort=relevance"
}

// categoryURL builds the listing page URL for a category path.
func categoryURL(path string) string {
	return baseURL + path
}
