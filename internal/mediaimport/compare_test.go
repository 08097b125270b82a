package mediaimport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/mediasync/internal/library"
)

func movieItem() *library.Item {
	return &library.Item{
		MediaType: library.MediaTypeMovie,
		Title:     "Heat",
		Plot:      "A crew of career criminals.",
		Year:      1995,
		Genre:     []string{"Crime", "Thriller"},
		Director:  []string{"Michael Mann"},
		Cast: []library.Actor{
			{Name: "Al Pacino", Role: "Vincent Hanna", Thumb: "http://img/pacino.jpg"},
			{Name: "Robert De Niro", Role: "Neil McCauley"},
		},
		Art:     map[string]string{"poster": "http://img/heat-poster.jpg"},
		Season:  -1,
		Episode: -1,
	}
}

func TestCompare_Identical(t *testing.T) {
	a, b := movieItem(), movieItem()
	assert.True(t, Compare(a, b, true, true, movieIgnoreDifferences))
}

func TestCompare_IgnoredFields(t *testing.T) {
	a, b := movieItem(), movieItem()
	// Fields from another hierarchy level never flip a movie to changed.
	b.Season = 2
	b.Episode = 5
	b.ShowTitle = "Not A Show"
	assert.True(t, Compare(a, b, true, true, movieIgnoreDifferences))

	b.Plot = "Something else entirely."
	assert.False(t, Compare(a, b, true, true, movieIgnoreDifferences))
}

func TestCompare_LightweightMode(t *testing.T) {
	a, b := movieItem(), movieItem()
	b.Plot = "Rewritten plot."
	b.Genre = []string{"Drama"}
	b.Art = map[string]string{"poster": "http://img/replaced-poster.jpg"}

	// Metadata differences, artwork included, are invisible when only
	// playback is synced.
	assert.True(t, Compare(a, b, false, true, movieIgnoreDifferences))

	b.PlayCount = 3
	assert.False(t, Compare(a, b, false, true, movieIgnoreDifferences))
}

func TestCompare_PlaybackFlag(t *testing.T) {
	a, b := movieItem(), movieItem()
	now := time.Now()
	b.PlayCount = 2
	b.LastPlayed = &now
	b.ResumeSeconds = 300

	assert.True(t, Compare(a, b, true, false, movieIgnoreDifferences))
	assert.False(t, Compare(a, b, true, true, movieIgnoreDifferences))
}

func TestCompareArt_AutoEntriesStripped(t *testing.T) {
	local := movieItem()
	incoming := movieItem()

	// Generated and placeholder artwork on the local side is not a
	// difference the source needs to reconcile.
	local.Art = map[string]string{
		"poster": "http://img/heat-poster.jpg",
		"thumb":  "image://video@smb%3a%2f%2fnas%2fheat.mkv/",
		"icon":   "DefaultVideo.png",
	}
	incoming.Art = map[string]string{"poster": "http://img/heat-poster.jpg"}
	assert.True(t, compareArt(local, incoming))

	// A genuinely different value still counts.
	incoming.Art = map[string]string{"poster": "http://img/other.jpg"}
	assert.False(t, compareArt(local, incoming))

	// Artwork only the incoming side has counts as well.
	incoming.Art = map[string]string{
		"poster": "http://img/heat-poster.jpg",
		"fanart": "http://img/heat-fanart.jpg",
	}
	assert.False(t, compareArt(local, incoming))
}

func TestCompareArt_ParentPrefixes(t *testing.T) {
	local := &library.Item{
		MediaType: library.MediaTypeEpisode,
		Art: map[string]string{
			"thumb":         "http://img/ep.jpg",
			"tvshow.poster": "http://img/show.jpg",
			"season.banner": "http://img/season.jpg",
		},
	}
	incoming := &library.Item{
		MediaType: library.MediaTypeEpisode,
		Art:       map[string]string{"thumb": "http://img/ep.jpg"},
	}
	assert.True(t, compareArt(local, incoming))
}

func TestCastEqual(t *testing.T) {
	original := []library.Actor{
		{Name: "Al Pacino", Role: "Vincent Hanna", Thumb: "http://img/pacino.jpg"},
	}

	// Empty incoming cast means the source did not provide one.
	assert.True(t, castEqual(original, nil))

	// Missing incoming thumbnail is not a difference.
	assert.True(t, castEqual(original, []library.Actor{
		{Name: "Al Pacino", Role: "Vincent Hanna"},
	}))

	// A conflicting thumbnail is.
	assert.False(t, castEqual(original, []library.Actor{
		{Name: "Al Pacino", Role: "Vincent Hanna", Thumb: "http://img/new.jpg"},
	}))

	assert.False(t, castEqual(original, []library.Actor{
		{Name: "Al Pacino", Role: "Lt. Hanna"},
	}))
	assert.False(t, castEqual(original, []library.Actor{
		{Name: "Al Pacino", Role: "Vincent Hanna"},
		{Name: "Val Kilmer", Role: "Chris"},
	}))
}

func TestCompare_LastPlayed(t *testing.T) {
	a, b := movieItem(), movieItem()
	played := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	a.LastPlayed = &played
	same := played
	b.LastPlayed = &same
	assert.True(t, Compare(a, b, true, true, movieIgnoreDifferences))

	later := played.Add(time.Hour)
	b.LastPlayed = &later
	assert.False(t, Compare(a, b, true, true, movieIgnoreDifferences))
}

func TestIsAutoArtwork(t *testing.T) {
	assert.True(t, isAutoArtwork(library.MediaTypeMovie, "icon", "DefaultVideo.png"))
	assert.True(t, isAutoArtwork(library.MediaTypeMovie, "poster", "DefaultFolder.png"))
	assert.True(t, isAutoArtwork(library.MediaTypeMovie, "thumb", "image://video@file/"))
	assert.True(t, isAutoArtwork(library.MediaTypeMovie, "set.poster", "http://img/set.jpg"))
	assert.True(t, isAutoArtwork(library.MediaTypeSeason, "tvshow.poster", "http://img/show.jpg"))
	assert.True(t, isAutoArtwork(library.MediaTypeSeason, "season.banner", "http://img/season.jpg"))
	assert.True(t, isAutoArtwork(library.MediaTypeEpisode, "season.banner", "http://img/season.jpg"))
	assert.False(t, isAutoArtwork(library.MediaTypeMovie, "poster", "http://img/movie.jpg"))
	assert.False(t, isAutoArtwork(library.MediaTypeTvShow, "tvshow.poster", "http://img/show.jpg"))
}
