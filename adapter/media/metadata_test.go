package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eddytalvala/KDEAudioPlayer/domain"
)

func TestLoadItemFromFile_MissingFile(t *testing.T) {
	item, err := LoadItemFromFile("/nonexistent/song.mp3")

	assert.Nil(t, item)
	require.Error(t, err)

	var metadataErr *domain.MetadataError
	require.ErrorAs(t, err, &metadataErr)
	assert.Equal(t, "/nonexistent/song.mp3", metadataErr.Path)
}

func TestLoadItemFromFile_UntaggedFileFallsBackToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untitled-demo.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o600))

	item, err := LoadItemFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, "untitled-demo", item.Title())
	assert.Empty(t, item.Artist())
	assert.Empty(t, item.Album())
	assert.Zero(t, item.TrackNumber())
	assert.Zero(t, item.TrackCount())
	assert.Nil(t, item.Artwork())
	assert.Equal(t, path, item.URL)
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "song", titleFromPath("/music/song.mp3"))
	assert.Equal(t, "song", titleFromPath("song.flac"))
	assert.Equal(t, "no-extension", titleFromPath("/a/no-extension"))
}
