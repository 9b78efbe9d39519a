package models

import (
	"fmt"
	"time"
)

type Spot struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OwnerID     uint        `json:"ownerId" gorm:"not null;index"`
	Owner       *User       `json:"-" gorm:"foreignKey:OwnerID"`
	Address     string      `json:"address" gorm:"not null"`
	City        string      `json:"city" gorm:"not null"`
	State       string      `json:"state" gorm:"not null"`
	Country     string      `json:"country" gorm:"not null"`
	Lat         float64     `json:"lat" gorm:"not null;check:lat >= -90 AND lat <= 90"`
	Lng         float64     `json:"lng" gorm:"not null;check:lng >= -180 AND lng <= 180"`
	Name        string      `json:"name" gorm:"size:50;not null"`
	Description string      `json:"description" gorm:"not null"`
	Price       float64     `json:"price" gorm:"not null;check:price >= 0"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
	SpotImages  []SpotImage `json:"-" gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE"`
	Reviews     []Review    `json:"-" gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE"`
	Bookings    []Booking   `json:"-" gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE"`
}

func (s *Spot) ValidateCoordinates() error {
	if s.Lat < -90 || s.Lat > 90 {
		return fmt.Errorf("invalid lat: %f, must be between -90 and 90", s.Lat)
	}
	if s.Lng < -180 || s.Lng > 180 {
		return fmt.Errorf("invalid lng: %f, must be between -180 and 180", s.Lng)
	}
	return nil
}

// IsOwnedBy reports whether userID owns the spot.
func (s *Spot) IsOwnedBy(userID uint) bool {
	return userID != 0 && s.OwnerID == userID
}
