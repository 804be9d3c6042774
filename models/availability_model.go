package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityRange is one contiguous interval of a teacher's recurring weekly
// availability. DayKey and the times are always stored in UTC; the set of rows for a
// given (teacher, day) is kept merge-normalized: sorted by start, no two rows overlap
// or touch.
type AvailabilityRange struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID uuid.UUID `gorm:"not null;index:idx_availability_teacher_day" json:"-"`
	DayKey    string    `gorm:"size:10;not null;index:idx_availability_teacher_day" json:"day"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
