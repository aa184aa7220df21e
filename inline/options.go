package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/samber/mo"
)

type (
	// MixtapePicker narrows a listing down to a single entry.
	MixtapePicker func([]scrape.ListingEntry) *scrape.ListingEntry

	// TracksFilter selects 1-based track numbers from an album's titles.
	TracksFilter func(titles []string) ([]int, error)
)

type Options struct {
	Out           io.Writer
	Session       *network.Session
	Query         string
	Category      string
	Json          bool
	URLs          bool
	Download      bool
	MixtapePicker mo.Option[MixtapePicker]
	TracksFilter  mo.Option[TracksFilter]
}

// ParseMixtapePicker builds a picker from its CLI description.
func ParseMixtapePicker(kind, value string) (MixtapePicker, error) {
	switch kind {
	case "first":
		return func(entries []scrape.ListingEntry) *scrape.ListingEntry {
			if len(entries) == 0 {
				return nil
			}
			return &entries[0]
		}, nil
	case "last":
		return func(entries []scrape.ListingEntry) *scrape.ListingEntry {
			if len(entries) == 0 {
				return nil
			}
			return &entries[len(entries)-1]
		}, nil
	case "exact":
		return func(entries []scrape.ListingEntry) *scrape.ListingEntry {
			for i, e := range entries {
				if e.Title == value {
					return &entries[i]
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(entries []scrape.ListingEntry) *scrape.ListingEntry {
			if len(entries) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(entries)-1))
			return &entries[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseTracksFilter builds a filter from its CLI description.
// Accepted forms: "first", "last", "all", a range "2-5", a substring "@text@"
// and a single 1-based number "3".
func ParseTracksFilter(description string) (TracksFilter, error) {
	switch description {
	case "first":
		return func(titles []string) ([]int, error) {
			if len(titles) == 0 {
				return nil, nil
			}
			return []int{1}, nil
		}, nil
	case "last":
		return func(titles []string) ([]int, error) {
			if len(titles) == 0 {
				return nil, nil
			}
			return []int{len(titles)}, nil
		}, nil
	case "all":
		return func(titles []string) ([]int, error) {
			return allTrackNumbers(len(titles)), nil
		}, nil
	}

	// Range: "2-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil && from >= 1 {
				return func(titles []string) ([]int, error) {
					var numbers []int
					for n := from; n <= to && n <= uint64(len(titles)); n++ {
						numbers = append(numbers, int(n))
					}
					return numbers, nil
				}, nil
			}
		}
	}

	// Substring: "@text@"
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(titles []string) ([]int, error) {
			var numbers []int
			for i, title := range titles {
				if strings.Contains(strings.ToLower(title), sub) {
					numbers = append(numbers, i+1)
				}
			}
			return numbers, nil
		}, nil
	}

	// Single number: "3"
	if n, err := strconv.ParseUint(description, 10, 16); err == nil && n >= 1 {
		return func(titles []string) ([]int, error) {
			if uint64(len(titles)) < n {
				return nil, nil
			}
			return []int{int(n)}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid tracks filter: %s", description)
}
