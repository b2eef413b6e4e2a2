// package models defines domain types shared across packages
package models

// TrackSummary is the flattened shape of a track returned by the
// /me/top-tracks endpoint: display name, ordered artist names, canonical
// external URL, and an optional cover image URL.
type TrackSummary struct {
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
	URL     string   `json:"url,omitempty"`
	Image   string   `json:"image,omitempty"`
}

// TrackList is the JSON envelope returned by the protected query endpoint.
type TrackList struct {
	Items []TrackSummary `json:"items"`
}
