package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// ClassBooking is a confirmed one-on-one class. Day is an ISO calendar date and
// TimeSlot an "HH:MM-HH:MM" interval, both in UTC. At most one non-cancelled booking
// may exist per (teacher, day, time_slot); the partial unique index created in
// database.Migrate backs this up at the storage layer.
type ClassBooking struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID    uuid.UUID `gorm:"not null;index" json:"student_id"`
	TeacherID    uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	EnrollmentID uuid.UUID `gorm:"not null" json:"enrollment_id"`
	Day          string    `gorm:"size:10;not null" json:"day"`
	TimeSlot     string    `gorm:"size:11;not null" json:"time_slot"`
	Status       string    `gorm:"size:20;not null;default:'confirmed'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy *uuid.UUID `json:"cancelled_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Student    User       `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Teacher    User       `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Enrollment Enrollment `gorm:"foreignkey:EnrollmentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
