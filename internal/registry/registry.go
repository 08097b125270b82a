// Package registry tracks media sources and their import configurations.
// A source is an external provider of media metadata; an import scopes a
// source to a group of related media types synchronized together.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/mediasync/internal/library"
)

var (
	// ErrNotFound indicates the requested source or import doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a source or import already exists.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrInvalid indicates a source or import fails validation.
	ErrInvalid = errors.New("invalid")
)

// TriggerMode selects how an import's synchronization runs are started.
type TriggerMode string

const (
	TriggerAuto   TriggerMode = "auto"
	TriggerManual TriggerMode = "manual"
)

// ImportSettings holds the per-import synchronization switches.
type ImportSettings struct {
	Trigger TriggerMode

	// UpdateImportedItems controls whether matched items are compared in
	// full; when false only playback state is reconciled.
	UpdateImportedItems bool

	// UpdatePlaybackFromSource copies play count / last played / resume
	// position from the source onto local file records.
	UpdatePlaybackFromSource bool

	// UpdatePlaybackOnSource pushes local playback state back to the
	// source after a run.
	UpdatePlaybackOnSource bool
}

// DefaultSettings returns the settings applied to newly created imports.
func DefaultSettings() ImportSettings {
	return ImportSettings{
		Trigger:                  TriggerAuto,
		UpdateImportedItems:      true,
		UpdatePlaybackFromSource: true,
		UpdatePlaybackOnSource:   false,
	}
}

// Source is an external provider of media metadata.
type Source struct {
	Identifier    string
	BasePath      string
	FriendlyName  string
	IconURL       string
	ImporterID    string
	ManuallyAdded bool
	Active        bool
	Ready         bool
	LastSynced    *time.Time
	AddedAt       time.Time
	UpdatedAt     time.Time
}

// Validate checks the source's required fields.
func (s *Source) Validate() error {
	if s.Identifier == "" {
		return fmt.Errorf("%w: source identifier is empty", ErrInvalid)
	}
	if s.BasePath == "" {
		return fmt.Errorf("%w: source %q has no base path", ErrInvalid, s.Identifier)
	}
	return nil
}

// Import scopes a source to an ordered group of related media types
// synchronized together (e.g. tvshow+season+episode).
type Import struct {
	ID         int64
	SourceID   string
	MediaTypes []library.MediaType
	Settings   ImportSettings
	LastSynced *time.Time
	AddedAt    time.Time
	UpdatedAt  time.Time
}

// Validate checks that the import has media types and names a source.
func (i *Import) Validate() error {
	if i.SourceID == "" {
		return fmt.Errorf("%w: import has no source", ErrInvalid)
	}
	if len(i.MediaTypes) == 0 {
		return fmt.Errorf("%w: import for source %q has no media types", ErrInvalid, i.SourceID)
	}
	return nil
}

// Describe returns the import's (source, mediaTypes) descriptor for logs.
func (i *Import) Describe() string {
	return i.SourceID + " [" + joinMediaTypes(i.MediaTypes) + "]"
}

// ContainsMediaType reports whether the import covers the given type.
func (i *Import) ContainsMediaType(mt library.MediaType) bool {
	for _, t := range i.MediaTypes {
		if t == mt {
			return true
		}
	}
	return false
}

func joinMediaTypes(types []library.MediaType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

func splitMediaTypes(s string) []library.MediaType {
	fields := strings.Fields(s)
	types := make([]library.MediaType, len(fields))
	for i, f := range fields {
		types[i] = library.MediaType(f)
	}
	return types
}
