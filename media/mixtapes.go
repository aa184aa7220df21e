package media

import (
	"fmt"

	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/samber/lo"
)

// Categories are the site's browsable mixtape listings, in display order.
var Categories = []string{
	"hot",
	"new",
	"top",
	"celebrated",
	"popular",
	"exclusive",
	"most-download",
	"most-listen",
	"most-favorite",
	"highest-rating",
}

// categoryPaths maps a category name to its listing page path.
var categoryPaths = map[string]string{
	"hot":            "/mixtapes/hot",
	"new":            "/mixtapes/new",
	"top":            "/mixtapes/top",
	"celebrated":     "/mixtapes/celebrated",
	"popular":        "/mixtapes-popular.php?filter=month",
	"exclusive":      "/mixtapes-exclusive.php?filter=month",
	"most-download":  "/mixtapes-popular.php?sort=downloads",
	"most-listen":    "/mixtapes-popular.php?sort=listens",
	"most-favorite":  "/mixtapes-popular.php?sort=favorites",
	"highest-rating": "/mixtapes-popular.php?sort=rating",
}

// Mixtapes browses and searches the site's mixtape listings.
type Mixtapes struct {
	session *network.Session
}

// NewMixtapes creates a listing browser over the given session.
func NewMixtapes(session *network.Session) *Mixtapes {
	return &Mixtapes{session: session}
}

// ValidCategory reports whether name is a browsable category.
func ValidCategory(name string) bool {
	_, ok := categoryPaths[name]
	return ok
}

// ByCategory fetches the listing page of a category and returns its entries.
func (m *Mixtapes) ByCategory(category string) ([]scrape.ListingEntry, error) {
	path, ok := categoryPaths[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %q, expected one of %v", category, Categories)
	}

	page, err := m.session.Get(categoryURL(path))
	if err != nil {
		return nil, err
	}

	return scrape.Listing(page)
}

// Search queries the site's mixtape search and returns matching entries.
func (m *Mixtapes) Search(query string) ([]scrape.ListingEntry, error) {
	page, err := m.session.Get(searchURL(query))
	if err != nil {
		return nil, err
	}

	return scrape.Listing(page)
}

// Limit truncates entries to at most n, keeping listing order.
func Limit(entries []scrape.ListingEntry, n int) []scrape.ListingEntry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return lo.Subset(entries, 0, uint(n))
}
