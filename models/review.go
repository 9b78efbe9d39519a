package models

import "time"

type Review struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	UserID       uint          `json:"userId" gorm:"not null;uniqueIndex:idx_reviews_user_spot"`
	SpotID       uint          `json:"spotId" gorm:"not null;uniqueIndex:idx_reviews_user_spot;index"`
	Review       string        `json:"review" gorm:"type:text;not null"`
	Stars        int           `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	CreatedAt    time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
	User         *User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ReviewImages []ReviewImage `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

type ReviewImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReviewID  uint      `json:"reviewId" gorm:"not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// StarValues extracts the star ratings of reviews in order.
func StarValues(reviews []Review) []int {
	stars := make([]int, 0, len(reviews))
	for _, r := range reviews {
		stars = append(stars, r.Stars)
	}
	return stars
}
