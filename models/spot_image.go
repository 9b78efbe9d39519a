package models

import "time"

type SpotImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SpotID    uint      `json:"spotId" gorm:"not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	Preview   bool      `json:"preview" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// PreviewImage returns the URL of the first image flagged as preview, or nil.
// images are expected in insertion order.
func PreviewImage(images []SpotImage) *string {
	for _, img := range images {
		if img.Preview {
			url := img.URL
			return &url
		}
	}
	return nil
}
