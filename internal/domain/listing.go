package domain

// ListingEntry is one post returned by the listing API before filtering.
type ListingEntry struct {
	Name      string // fullname, used as the pagination cursor (e.g. "t3_abc123")
	Title     string
	URL       string
	Subreddit string
	Permalink string
	Author    string
	Thumbnail string
	Score     int
	IsVideo   bool
	HasMedia  bool
}

// IsVideoLike reports whether the entry is a native video or carries embedded media.
func (e ListingEntry) IsVideoLike() bool {
	return e.IsVideo || e.HasMedia
}

// ListingPage is a single page of the listing API.
type ListingPage struct {
	Entries []ListingEntry
	After   string
}
