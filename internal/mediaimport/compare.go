package mediaimport

import (
	"strings"

	"github.com/vmunix/mediasync/internal/library"
)

// Artwork values matching these tokens are "automatic": injected by the
// presentation layer rather than supplied by a source, so they never count
// as a metadata difference.
const (
	defaultVideoArt      = "DefaultVideo.png"
	defaultFolderArt     = "DefaultFolder.png"
	generatedThumbPrefix = "image://"
)

// parentArtPrefixes maps a media type to the artwork key prefixes it
// inherits from parent entities.
var parentArtPrefixes = map[library.MediaType][]string{
	library.MediaTypeMovie:   {"set."},
	library.MediaTypeSeason:  {"tvshow.", "season."},
	library.MediaTypeEpisode: {"tvshow.", "season."},
}

func isAutoArtwork(mediaType library.MediaType, key, value string) bool {
	if value == defaultVideoArt || value == defaultFolderArt {
		return true
	}
	if strings.HasPrefix(value, generatedThumbPrefix) {
		return true
	}
	for _, prefix := range parentArtPrefixes[mediaType] {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// removeAutoArtwork returns art without automatic entries.
func removeAutoArtwork(mediaType library.MediaType, art map[string]string) map[string]string {
	stripped := make(map[string]string, len(art))
	for k, v := range art {
		if !isAutoArtwork(mediaType, k, v) {
			stripped[k] = v
		}
	}
	return stripped
}

func artEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// compareArt reports whether two items' artwork is meaningfully equal.
// Automatic entries on the original side are stripped before giving up.
func compareArt(original, incoming *library.Item) bool {
	if artEqual(original.Art, incoming.Art) {
		return true
	}
	stripped := removeAutoArtwork(original.MediaType, original.Art)
	if len(stripped) != len(incoming.Art) {
		return false
	}
	return artEqual(stripped, incoming.Art)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// castEqual compares cast lists element-wise by name, role, and thumbnail.
// An empty incoming cast means "not provided", never "cleared". Thumbnail
// differences are ignored when the incoming side has no thumbnail.
func castEqual(original, incoming []library.Actor) bool {
	if len(incoming) == 0 {
		return true
	}
	if len(original) != len(incoming) {
		return false
	}
	for i := range original {
		if original[i].Name != incoming[i].Name || original[i].Role != incoming[i].Role {
			return false
		}
		if incoming[i].Thumb != "" && original[i].Thumb != incoming[i].Thumb {
			return false
		}
	}
	return true
}

func playbackEqual(original, incoming *library.Item) bool {
	if original.PlayCount != incoming.PlayCount || original.ResumeSeconds != incoming.ResumeSeconds {
		return false
	}
	switch {
	case original.LastPlayed == nil && incoming.LastPlayed == nil:
		return true
	case original.LastPlayed == nil || incoming.LastPlayed == nil:
		return false
	default:
		return original.LastPlayed.Equal(*incoming.LastPlayed)
	}
}

// diffFields computes the set of fields whose values differ between the two
// versions of the same logical item.
func diffFields(original, incoming *library.Item) map[string]struct{} {
	diffs := make(map[string]struct{})
	mark := func(field string, differs bool) {
		if differs {
			diffs[field] = struct{}{}
		}
	}

	mark(FieldTitle, original.Title != incoming.Title)
	mark(FieldSortTitle, original.SortTitle != incoming.SortTitle)
	mark(FieldPlot, original.Plot != incoming.Plot)
	mark(FieldYear, original.Year != incoming.Year)
	mark(FieldPremiered, original.Premiered != incoming.Premiered)
	mark(FieldMPAA, original.MPAA != incoming.MPAA)
	mark(FieldUniqueID, original.UniqueID != incoming.UniqueID)
	mark(FieldGenre, !stringsEqual(original.Genre, incoming.Genre))
	mark(FieldStudio, !stringsEqual(original.Studio, incoming.Studio))
	mark(FieldCountry, !stringsEqual(original.Country, incoming.Country))
	mark(FieldDirector, !stringsEqual(original.Director, incoming.Director))
	mark(FieldWriter, !stringsEqual(original.Writer, incoming.Writer))
	mark(FieldArt, !compareArt(original, incoming))
	mark(FieldCast, !castEqual(original.Cast, incoming.Cast))
	mark(FieldShowTitle, original.ShowTitle != incoming.ShowTitle)
	mark(FieldSeason, original.Season != incoming.Season)
	mark(FieldEpisode, original.Episode != incoming.Episode)
	mark(FieldSetTitle, original.SetTitle != incoming.SetTitle)
	mark(FieldPlayCount, original.PlayCount != incoming.PlayCount)
	mark(FieldLastPlayed, !lastPlayedEqual(original, incoming))
	mark(FieldResume, original.ResumeSeconds != incoming.ResumeSeconds)

	return diffs
}

func lastPlayedEqual(original, incoming *library.Item) bool {
	switch {
	case original.LastPlayed == nil && incoming.LastPlayed == nil:
		return true
	case original.LastPlayed == nil || incoming.LastPlayed == nil:
		return false
	default:
		return original.LastPlayed.Equal(*incoming.LastPlayed)
	}
}

// Compare decides whether two versions of the same logical item are equal
// for synchronization purposes.
//
// With allMetadata false, equality reduces to playback state (play count,
// last played, resume position); no other field, artwork included, is
// looked at. Otherwise the full field difference set is computed, then
// playback fields are dropped when playbackMetadata is false, and every
// field in ignore is dropped. The items are equal iff the remaining set is
// empty.
func Compare(original, incoming *library.Item, allMetadata, playbackMetadata bool, ignore map[string]struct{}) bool {
	if !allMetadata {
		return playbackEqual(original, incoming)
	}

	diffs := diffFields(original, incoming)

	if !playbackMetadata {
		for _, f := range playbackFields {
			delete(diffs, f)
		}
	}
	for f := range ignore {
		delete(diffs, f)
	}

	return len(diffs) == 0
}
