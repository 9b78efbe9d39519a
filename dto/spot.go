package dto

import "time"

// SpotInput is the body of spot create and edit.
type SpotInput struct {
	Address     string   `json:"address" binding:"required"`
	City        string   `json:"city" binding:"required"`
	State       string   `json:"state" binding:"required"`
	Country     string   `json:"country" binding:"required"`
	Lat         *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng         *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
	Name        string   `json:"name" binding:"required,max=50"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gt=0"`
}

// SpotQuery holds the raw list filters; validator.ValidateSpotQuery parses them.
type SpotQuery struct {
	Page     string `form:"page"`
	Size     string `form:"size"`
	MinLat   string `form:"minLat"`
	MaxLat   string `form:"maxLat"`
	MinLng   string `form:"minLng"`
	MaxLng   string `form:"maxLng"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
}

type SpotResponse struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"ownerId"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpotListItem is one entry of GET /api/spots and /api/spots/current.
type SpotListItem struct {
	SpotResponse
	AvgRating    *float64 `json:"avgRating"`
	PreviewImage *string  `json:"previewImage"`
}

type SpotListResponse struct {
	Page  int            `json:"page,omitempty"`
	Size  int            `json:"size,omitempty"`
	Spots []SpotListItem `json:"Spots"`
}

type SpotDetail struct {
	SpotResponse
	NumReviews    int                 `json:"numReviews"`
	AvgStarRating *float64            `json:"avgStarRating"`
	SpotImages    []SpotImageResponse `json:"SpotImages"`
	Owner         *UserSummary        `json:"Owner"`
}

// SpotSummary is the spot attached to reviews and bookings of the current user.
type SpotSummary struct {
	ID           uint    `json:"id"`
	OwnerID      uint    `json:"ownerId"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PreviewImage *string `json:"previewImage"`
}
