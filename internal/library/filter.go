package library

// ItemFilter specifies criteria for listing or counting items.
type ItemFilter struct {
	MediaType *MediaType
	ImportID  *int64 // restrict to items linked to this import
	ShowID    *int64
	SetID     *int64
	Title     *string
	Year      *int
	Season    *int
	Enabled   *bool
	Limit     int // 0 = no limit
	Offset    int
}
