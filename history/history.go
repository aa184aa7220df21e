// Package history tracks and persists which mixtape tracks the user has listened to.
package history

import (
	"github.com/metafates/gache"
	"github.com/mixtape-cli/mixtape/filesystem"
	"github.com/mixtape-cli/mixtape/where"
)

// cacher provides an abstracted, disk-backed registry for playback progress records.
var cacher = gache.New[map[string]*SavedTrack](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of historical playback records from the persistent store.
func Get() (map[string]*SavedTrack, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedTrack), nil
	}
	return cached, nil
}

// Save persists the playback progress of a track to the history registry.
func Save(record *SavedTrack, percentage float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	// Idempotency: keep the maximum observed percentage so a re-listen
	// never regresses a finished record.
	if existing, exists := saved[record.encode()]; exists {
		if percentage < existing.ListenedPercentage {
			percentage = existing.ListenedPercentage
		}
	}
	record.ListenedPercentage = percentage

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a playback record from the history registry.
func Remove(record *SavedTrack) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}
