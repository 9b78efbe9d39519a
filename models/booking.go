package models

import (
	"time"

	"spotbook/daterange"

	"gorm.io/datatypes"
)

// Booking is a guest's reservation of a spot for [StartDate, EndDate).
type Booking struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SpotID    uint           `json:"spotId" gorm:"not null;index"`
	Spot      *Spot          `json:"-" gorm:"foreignKey:SpotID"`
	UserID    uint           `json:"userId" gorm:"not null;index"`
	User      *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	StartDate datatypes.Date `json:"startDate" gorm:"type:date;not null"`
	EndDate   datatypes.Date `json:"endDate" gorm:"type:date;not null;check:end_date > start_date"`
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Range returns the booked days as a half-open range.
func (b *Booking) Range() daterange.Range {
	return daterange.Range{
		Start: daterange.CalendarDay(time.Time(b.StartDate)),
		End:   daterange.CalendarDay(time.Time(b.EndDate)),
	}
}

// SetRange replaces the booked days.
func (b *Booking) SetRange(r daterange.Range) {
	b.StartDate = datatypes.Date(r.Start)
	b.EndDate = datatypes.Date(r.End)
}
