package reddit

import "encoding/json"

// Listing represents the reddit listing response structure.
type Listing struct {
	Kind string      `json:"kind"`
	Data ListingData `json:"data"`
}

type ListingData struct {
	After    string  `json:"after"`
	Before   string  `json:"before"`
	Dist     int     `json:"dist"`
	Children []Child `json:"children"`
}

type Child struct {
	Kind string `json:"kind"`
	Data Post   `json:"data"`
}

type Post struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Subreddit string          `json:"subreddit"`
	Permalink string          `json:"permalink"`
	Author    string          `json:"author"`
	Thumbnail string          `json:"thumbnail"`
	Score     int             `json:"score"`
	IsVideo   bool            `json:"is_video"`
	Media     json.RawMessage `json:"media"`
}

// hasMedia reports a non-null "media" object. secure_media is not consulted.
func (p Post) hasMedia() bool {
	return isPresent(p.Media)
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
