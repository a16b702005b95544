// Package media provides in-memory implementations of the observable
// collaborators the producers watch: a playable item with descriptive
// attributes and a media engine with attribute observation, session
// notifications and periodic progress.
package media

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/eddytalvala/KDEAudioPlayer/adapter/observe"
	"github.com/eddytalvala/KDEAudioPlayer/domain"
	"github.com/eddytalvala/KDEAudioPlayer/ports"
)

// Item is a playable item with six observable descriptive attributes.
//
// Attribute observers are invoked synchronously on the goroutine mutating
// the item, and only when the value actually changed: setting an attribute
// to its current value notifies nobody.
type Item struct {
	// ID uniquely identifies the item
	ID string

	// URL locates the item's media (file path or remote URL)
	URL string

	// mu protects the attributes
	mu sync.RWMutex

	artist      string
	title       string
	album       string
	trackCount  int
	trackNumber int
	artwork     []byte

	registry *observe.Registry
}

// NewItem creates an item for the given media URL.
func NewItem(url string) *Item {
	return &Item{
		ID:       uuid.NewString(),
		URL:      url,
		registry: observe.NewRegistry(),
	}
}

// SetLogger sets the logger used for observer delivery traces.
func (it *Item) SetLogger(logger *slog.Logger) {
	it.registry.SetLogger(logger)
}

// Observe registers fn for changes of the given attribute.
func (it *Item) Observe(attribute domain.ItemAttribute, fn ports.ItemAttributeObserver) ports.ObservationID {
	return it.registry.Observe(string(attribute), func(key string, _ any) {
		fn(domain.ItemAttribute(key))
	})
}

// Unobserve removes a registration. Unknown IDs are a no-op.
func (it *Item) Unobserve(id ports.ObservationID) {
	it.registry.Unobserve(id)
}

// Artist returns the item's artist.
func (it *Item) Artist() string {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.artist
}

// SetArtist updates the item's artist.
func (it *Item) SetArtist(artist string) {
	it.mu.Lock()
	if it.artist == artist {
		it.mu.Unlock()
		return
	}
	it.artist = artist
	it.mu.Unlock()

	it.registry.Notify(string(domain.ItemAttributeArtist), nil)
}

// Title returns the item's title.
func (it *Item) Title() string {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.title
}

// SetTitle updates the item's title.
func (it *Item) SetTitle(title string) {
	it.mu.Lock()
	if it.title == title {
		it.mu.Unlock()
		return
	}
	it.title = title
	it.mu.Unlock()

	it.registry.Notify(string(domain.ItemAttributeTitle), nil)
}

// Album returns the item's album.
func (it *Item) Album() string {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.album
}

// SetAlbum updates the item's album.
func (it *Item) SetAlbum(album string) {
	it.mu.Lock()
	if it.album == album {
		it.mu.Unlock()
		return
	}
	it.album = album
	it.mu.Unlock()

	it.registry.Notify(string(domain.ItemAttributeAlbum), nil)
}

// TrackCount returns the number of tracks on the item's album.
func (it *Item) TrackCount() int {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.trackCount
}

// SetTrackCount updates the album's track count.
func (it *Item) SetTrackCount(count int) {
	it.mu.Lock()
	if it.trackCount == count {
		it.mu.Unlock()
		return
	}
	it.trackCount = count
	it.mu.Unlock()

	it.registry.Notify(string(domain.ItemAttributeTrackCount), nil)
}

// TrackNumber returns the item's track number on its album.
func (it *Item) TrackNumber() int {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.trackNumber
}

// SetTrackNumber updates the item's track number.
func (it *Item) SetTrackNumber(number int) {
	it.mu.Lock()
	if it.trackNumber == number {
		it.mu.Unlock()
		return
	}
	it.trackNumber = number
	it.mu.Unlock()

	it.registry.Notify(string(domain.ItemAttributeTrackNumber), nil)
}

// Artwork returns the item's artwork as raw image bytes.
func (it *Item) Artwork() []byte {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.artwork
}

// SetArtwork updates the item's artwork.
func (it *Item) SetArtwork(artwork []byte) {
	it.mu.Lock()
	if bytes.Equal(it.artwork, artwork) {
		it.mu.Unlock()
		return
	}
	it.artwork = artwork
	it.mu.Unlock()

	it.registry.Notify(string(domain.ItemAttributeArtwork), nil)
}

// Verify that Item implements the ObservableItem interface
var _ ports.ObservableItem = (*Item)(nil)
