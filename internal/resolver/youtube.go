// Package resolver extracts embeddable YouTube video ids from post URLs.
package resolver

import "regexp"

// IDLength is the length of every valid YouTube video id.
const IDLength = 11

// Matches youtu.be/<id>, /v/<id>, /u/<x>/<id>, embed/<id> and watch?v=<id>.
var youtubeRe = regexp.MustCompile(`^.*((youtu.be/)|(v/)|(/u/\w/)|(embed/)|(watch\?))\??v?=?([^#&?]*).*`)

// Resolve returns the video id embedded in targetURL. The second result is
// false when the URL is not a recognized form or the id is not IDLength long.
func Resolve(targetURL string) (string, bool) {
	m := youtubeRe.FindStringSubmatch(targetURL)
	if m == nil || len(m[7]) != IDLength {
		return "", false
	}
	return m[7], true
}
