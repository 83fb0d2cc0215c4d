package dto

import "time"

// CreateRatingRequest submits feedback about another user, optionally
// tied to the item that was traded.
type CreateRatingRequest struct {
	RatedUserID string  `json:"ratedUserId"`
	ItemID      *string `json:"itemId"`
	Rating      int     `json:"rating"`
	Comment     *string `json:"comment"`
}

// RatingResponse is one rating a user received.
type RatingResponse struct {
	ID          string    `json:"id"`
	RatedUserID string    `json:"ratedUserId"`
	RaterUserID string    `json:"raterUserId"`
	RaterName   *string   `json:"raterName"`
	ItemID      *string   `json:"itemId"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}
