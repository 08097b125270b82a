package mediaimport

// Field names used by the comparator's difference sets. Each handler
// declares the fields that must never flip an item to Changed for its type
// (metadata that belongs to a different level of the hierarchy, or noise
// from other media kinds).
const (
	FieldTitle      = "title"
	FieldSortTitle  = "sorttitle"
	FieldPlot       = "plot"
	FieldYear       = "year"
	FieldPremiered  = "premiered"
	FieldMPAA       = "mpaa"
	FieldUniqueID   = "uniqueid"
	FieldGenre      = "genre"
	FieldStudio     = "studio"
	FieldCountry    = "country"
	FieldDirector   = "director"
	FieldWriter     = "writer"
	FieldArt        = "art"
	FieldCast       = "cast"
	FieldShowTitle  = "showtitle"
	FieldSeason     = "season"
	FieldEpisode    = "episode"
	FieldSetTitle   = "settitle"
	FieldPlayCount  = "playcount"
	FieldLastPlayed = "lastplayed"
	FieldResume     = "resume"
)

// playbackFields are reconciled only when the import syncs playback
// metadata from the source.
var playbackFields = []string{FieldPlayCount, FieldLastPlayed, FieldResume}

func fieldSet(fields ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

var (
	movieIgnoreDifferences = fieldSet(
		FieldSeason, FieldEpisode, FieldShowTitle,
	)

	movieSetIgnoreDifferences = fieldSet(
		FieldYear, FieldPremiered, FieldMPAA, FieldUniqueID,
		FieldGenre, FieldStudio, FieldCountry, FieldDirector, FieldWriter,
		FieldCast, FieldShowTitle, FieldSeason, FieldEpisode, FieldSetTitle,
	)

	tvShowIgnoreDifferences = fieldSet(
		FieldSeason, FieldEpisode, FieldSetTitle,
	)

	seasonIgnoreDifferences = fieldSet(
		FieldEpisode, FieldSetTitle, FieldSortTitle,
		FieldStudio, FieldCountry, FieldDirector, FieldWriter,
	)

	episodeIgnoreDifferences = fieldSet(
		FieldGenre, FieldMPAA, FieldSetTitle, FieldSortTitle,
		FieldStudio, FieldCountry, FieldShowTitle,
	)

	musicVideoIgnoreDifferences = fieldSet(
		FieldSeason, FieldEpisode, FieldShowTitle, FieldSetTitle, FieldMPAA,
	)
)
