package media

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
)

// LoadItemFromFile creates an Item whose descriptive attributes are read
// from the audio file's embedded tags.
//
// A file without readable tags is not an error: the item falls back to the
// file name as its title, matching how the player treats untagged media.
func LoadItemFromFile(path string) (*Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewMetadataError(path, "cannot open file", err)
	}
	defer func() {
		_ = file.Close()
	}()

	item := NewItem(path)

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		// No readable tags; fall back to the file name
		item.SetTitle(titleFromPath(path))
		return item, nil
	}

	if title := strings.TrimSpace(metadata.Title()); title != "" {
		item.SetTitle(title)
	} else {
		item.SetTitle(titleFromPath(path))
	}

	if artist := strings.TrimSpace(metadata.Artist()); artist != "" {
		item.SetArtist(artist)
	}

	if album := strings.TrimSpace(metadata.Album()); album != "" {
		item.SetAlbum(album)
	}

	trackNumber, trackCount := metadata.Track()
	if trackNumber > 0 {
		item.SetTrackNumber(trackNumber)
	}
	if trackCount > 0 {
		item.SetTrackCount(trackCount)
	}

	if picture := metadata.Picture(); picture != nil {
		item.SetArtwork(picture.Data)
	}

	return item, nil
}

// titleFromPath derives a display title from the file name.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
