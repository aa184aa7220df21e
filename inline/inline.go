// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"os"

	"github.com/mixtape-cli/mixtape/log"
	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/scrape"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	mixtapes := media.NewMixtapes(options.Session)

	// Step 1: resolve the listing, either a site search or a category page.
	var (
		entries []scrape.ListingEntry
		err     error
	)
	if options.Category != "" {
		entries, err = mixtapes.ByCategory(options.Category)
	} else {
		entries, err = mixtapes.Search(options.Query)
	}
	if err != nil {
		return err
	}

	// Step 2: apply mixtape selection logic if a picker is defined.
	var selected []scrape.ListingEntry
	if options.MixtapePicker.IsPresent() {
		picker := options.MixtapePicker.MustGet()
		if choice := picker(entries); choice != nil {
			selected = []scrape.ListingEntry{*choice}
		}
	} else {
		selected = entries
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, []*Mixtape{}, options)
		}
		return nil
	}

	// Step 3: resolve track lists for the selected mixtapes.
	var results []*Mixtape
	for _, entry := range selected {
		mixtape, err := prepareMixtape(entry, options)
		if err != nil {
			return err
		}
		results = append(results, mixtape)
	}

	// Step 4: dispatch the processed results to the output writer.
	if options.Json {
		return writeJson(options.Out, results, options)
	}

	for _, mixtape := range results {
		for _, track := range mixtape.Tracks {
			if options.URLs {
				fmt.Fprintln(options.Out, track.URL)
			} else {
				fmt.Fprintf(options.Out, "%d. %s\n", track.Number, track.Title)
			}
		}
	}

	return nil
}

func prepareMixtape(entry scrape.ListingEntry, options *Options) (*Mixtape, error) {
	album, err := media.NewAlbum(options.Session, entry.Link)
	if err != nil {
		return nil, err
	}

	mp3s, err := media.NewMp3(album)
	if err != nil {
		return nil, err
	}

	numbers := allTrackNumbers(mp3s.Len())
	if options.TracksFilter.IsPresent() {
		filter := options.TracksFilter.MustGet()
		numbers, err = filter(mp3s.Songs())
		if err != nil {
			return nil, err
		}
	}

	mixtape := &Mixtape{
		Artist: entry.Artist,
		Title:  entry.Title,
		Link:   entry.Link,
		Album:  mp3s.Album(),
	}

	titles := mp3s.Songs()
	for _, number := range numbers {
		track := &Track{
			Number: number,
			Title:  titles[number-1],
		}

		if options.URLs || options.Download || options.Json {
			track.URL, err = mp3s.URLAt(number)
			if err != nil {
				return nil, err
			}
		}

		if options.Download {
			fetched, err := media.FetchTrack(options.Session, mp3s, number)
			if err != nil {
				log.Warnf("fetch %q: %v", track.Title, err)
				continue
			}

			track.Path, err = media.Download(fetched)
			if err != nil {
				return nil, err
			}
		}

		mixtape.Tracks = append(mixtape.Tracks, track)
	}

	return mixtape, nil
}

func allTrackNumbers(n int) []int {
	numbers := make([]int, n)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}
