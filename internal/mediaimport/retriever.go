package mediaimport

import (
	"context"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

//go:generate mockgen -source=retriever.go -destination=mocks/retriever.go -package=mocks

// ItemRetriever supplies the incoming items of a source for one media
// type. Implementations wrap the source's lookup protocol (out of scope
// here); partial reports whether the returned entries are pre-tagged with
// changeset types instead of being a full listing.
type ItemRetriever interface {
	RetrieveItems(ctx context.Context, imp *registry.Import, mediaType library.MediaType) (items []ChangesetItem, partial bool, err error)
}
