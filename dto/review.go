package dto

import "time"

type ReviewInput struct {
	Review string `json:"review" binding:"required,max=4000"`
	Stars  *int   `json:"stars" binding:"required,gte=1,lte=5"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	SpotID    uint      `json:"spotId"`
	Review    string    `json:"review"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewDetail is a review with its author, images and, for the current
// user's list, the reviewed spot.
type ReviewDetail struct {
	ReviewResponse
	User         *UserSummary          `json:"User"`
	Spot         *SpotSummary          `json:"Spot,omitempty"`
	ReviewImages []ReviewImageResponse `json:"ReviewImages"`
}

type ReviewListResponse struct {
	Reviews []ReviewDetail `json:"Reviews"`
}
