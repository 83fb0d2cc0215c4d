package dto

import "time"

// WatchlistEntryResponse is one bookmarked item with a listing summary.
type WatchlistEntryResponse struct {
	ID        string       `json:"id"`
	ItemID    string       `json:"itemId"`
	CreatedAt time.Time    `json:"createdAt"`
	Item      ItemResponse `json:"item"`
}

// WatchToggleResponse reports the state after a toggle.
type WatchToggleResponse struct {
	ItemID   string `json:"itemId"`
	Watching bool   `json:"watching"`
}
