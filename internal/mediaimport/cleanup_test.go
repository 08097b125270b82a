package mediaimport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/mediaimport"
)

func season(showTitle, title string, num int, path string) *library.Item {
	return &library.Item{
		MediaType: library.MediaTypeSeason,
		Title:     title,
		ShowTitle: showTitle,
		Season:    num,
		Episode:   -1,
		Path:      path,
	}
}

func TestCleanupImport_RemovesEmptyContainers(t *testing.T) {
	e := setupEnv(t)
	ctrl := gomock.NewController(t)
	imp := e.seedImport(t, "plex-main", "smb://nas/tv/",
		library.MediaTypeTvShow, library.MediaTypeSeason, library.MediaTypeEpisode)

	fooShow := show("Foo", 2020, "smb://nas/tv/Foo/")
	fooSeason := season("Foo", "Season 1", 1, "smb://nas/tv/Foo/Season 1/")

	_, err := e.sync.Synchronize(context.Background(), imp, stubRetriever(ctrl, feed{
		library.MediaTypeTvShow: entries(fooShow),
		library.MediaTypeSeason: entries(fooSeason),
		library.MediaTypeEpisode: entries(
			episode("Foo", "Pilot", 1, 1, "smb://nas/tv/Foo/Season 1/S01E01.mkv"),
			episode("Foo", "Fallout", 1, 2, "smb://nas/tv/Foo/Season 1/S01E02.mkv"),
		),
	}, false))
	require.NoError(t, err)
	require.Equal(t, 1, e.countItems(t, library.MediaTypeTvShow))
	require.Equal(t, 1, e.countItems(t, library.MediaTypeSeason))
	require.Equal(t, 2, e.countItems(t, library.MediaTypeEpisode))

	// The source stops listing the episodes but still lists the show and
	// season; the run leaves the empty containers in place.
	res, err := e.sync.Synchronize(context.Background(), imp, stubRetriever(ctrl, feed{
		library.MediaTypeTvShow: entries(show("Foo", 2020, "smb://nas/tv/Foo/")),
		library.MediaTypeSeason: entries(season("Foo", "Season 1", 1, "smb://nas/tv/Foo/Season 1/")),
	}, false))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)
	require.Equal(t, 1, e.countItems(t, library.MediaTypeTvShow))
	require.Equal(t, 1, e.countItems(t, library.MediaTypeSeason))

	// Cleanup collects the childless season, then the childless show.
	require.NoError(t, e.cleaner.CleanupImport(imp))
	assert.Equal(t, 0, e.countItems(t, library.MediaTypeSeason))
	assert.Equal(t, 0, e.countItems(t, library.MediaTypeTvShow))
}

func TestCleanupImport_SharedShowSurvives(t *testing.T) {
	e := setupEnv(t)
	ctrl := gomock.NewController(t)
	impA := e.seedImport(t, "plex-a", "smb://a/tv/",
		library.MediaTypeTvShow, library.MediaTypeEpisode)
	impB := e.seedImport(t, "plex-b", "smb://b/tv/",
		library.MediaTypeTvShow, library.MediaTypeEpisode)

	// Both sources contribute episodes of the same show.
	_, err := e.sync.Synchronize(context.Background(), impA, stubRetriever(ctrl, feed{
		library.MediaTypeEpisode: tagged(mediaimport.ChangesetAdded,
			episode("Foo", "Pilot", 1, 1, "smb://a/tv/Foo/Season 1/S01E01.mkv"),
		),
	}, true))
	require.NoError(t, err)
	_, err = e.sync.Synchronize(context.Background(), impB, stubRetriever(ctrl, feed{
		library.MediaTypeEpisode: tagged(mediaimport.ChangesetAdded,
			episode("Foo", "Fallout", 1, 2, "smb://b/tv/Foo/Season 1/S01E02.mkv"),
		),
	}, true))
	require.NoError(t, err)

	shows := e.itemsOf(t, library.MediaTypeTvShow)
	require.Len(t, shows, 1)
	showID := shows[0].DbID

	links, err := e.library.CountItemImports(showID)
	require.NoError(t, err)
	assert.Equal(t, 2, links)

	// Source A withdraws its episode. Cleanup must only untag the show:
	// source B still owns an episode under it.
	_, err = e.sync.Synchronize(context.Background(), impA, stubRetriever(ctrl, feed{
		library.MediaTypeEpisode: tagged(mediaimport.ChangesetRemoved,
			episode("Foo", "Pilot", 1, 1, "smb://a/tv/Foo/Season 1/S01E01.mkv"),
		),
	}, true))
	require.NoError(t, err)
	require.NoError(t, e.cleaner.CleanupImport(impA))

	shows = e.itemsOf(t, library.MediaTypeTvShow)
	require.Len(t, shows, 1)
	assert.Equal(t, showID, shows[0].DbID)
	links, err = e.library.CountItemImports(showID)
	require.NoError(t, err)
	assert.Equal(t, 1, links)

	// Source B withdraws too; now the show's last children are gone and the
	// row is deleted.
	_, err = e.sync.Synchronize(context.Background(), impB, stubRetriever(ctrl, feed{
		library.MediaTypeEpisode: tagged(mediaimport.ChangesetRemoved,
			episode("Foo", "Fallout", 1, 2, "smb://b/tv/Foo/Season 1/S01E02.mkv"),
		),
	}, true))
	require.NoError(t, err)
	require.NoError(t, e.cleaner.CleanupImport(impB))

	assert.Equal(t, 0, e.countItems(t, library.MediaTypeTvShow))
	assert.Equal(t, 0, e.countItems(t, library.MediaTypeEpisode))
}

func TestRemoveImport(t *testing.T) {
	e := setupEnv(t)
	ctrl := gomock.NewController(t)
	imp := e.seedImport(t, "plex-main", "smb://nas/tv/",
		library.MediaTypeTvShow, library.MediaTypeSeason, library.MediaTypeEpisode)

	_, err := e.sync.Synchronize(context.Background(), imp, stubRetriever(ctrl, feed{
		library.MediaTypeTvShow: entries(show("Foo", 2020, "smb://nas/tv/Foo/")),
		library.MediaTypeSeason: entries(season("Foo", "Season 1", 1, "smb://nas/tv/Foo/Season 1/")),
		library.MediaTypeEpisode: entries(
			episode("Foo", "Pilot", 1, 1, "smb://nas/tv/Foo/Season 1/S01E01.mkv"),
		),
	}, false))
	require.NoError(t, err)

	require.NoError(t, e.cleaner.RemoveImport(imp, "smb://nas/tv/"))

	assert.Equal(t, 0, e.countItems(t, library.MediaTypeEpisode))
	assert.Equal(t, 0, e.countItems(t, library.MediaTypeSeason))
	assert.Equal(t, 0, e.countItems(t, library.MediaTypeTvShow))
}
