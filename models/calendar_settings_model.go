package models

import "time"

// CalendarSettings is a single global row, created with defaults on first read.
type CalendarSettings struct {
	ID                    uint `gorm:"primary_key" json:"-"`
	SlotDuration          int  `gorm:"not null;default:60" json:"slot_duration"`
	StartHour             int  `gorm:"not null;default:8" json:"start_hour"`
	EndHour               int  `gorm:"not null;default:22" json:"end_hour"`
	MaxBookingsPerStudent int  `gorm:"not null;default:5" json:"max_bookings_per_student"`

	UpdatedAt time.Time `json:"-"`
}
