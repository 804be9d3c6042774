package services

import (
	"errors"

	"github.com/dquispe/tutoria_online/models"
	"gorm.io/gorm"
)

const (
	DefaultSlotDuration          = 60
	DefaultStartHour             = 8
	DefaultEndHour               = 22
	DefaultMaxBookingsPerStudent = 5
)

// GetCalendarSettings returns the single global settings row, creating it with
// defaults the first time anything reads it.
func GetCalendarSettings(db *gorm.DB) (*models.CalendarSettings, error) {
	var settings models.CalendarSettings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.CalendarSettings{
			SlotDuration:          DefaultSlotDuration,
			StartHour:             DefaultStartHour,
			EndHour:               DefaultEndHour,
			MaxBookingsPerStudent: DefaultMaxBookingsPerStudent,
		}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateCalendarSettings overwrites the operating window and quota. The slot duration
// is fixed platform-wide and not updatable.
func UpdateCalendarSettings(db *gorm.DB, startHour, endHour, maxBookings int) (*models.CalendarSettings, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, errors.New("operating hours must satisfy 0 <= start < end <= 24")
	}
	if maxBookings < 1 {
		return nil, errors.New("max bookings per student must be at least 1")
	}

	settings, err := GetCalendarSettings(db)
	if err != nil {
		return nil, err
	}
	settings.StartHour = startHour
	settings.EndHour = endHour
	settings.MaxBookingsPerStudent = maxBookings
	if err := db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
