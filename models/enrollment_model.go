package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusPaused    = "paused"
	EnrollmentStatusCompleted = "completed"
)

// Enrollment rows are owned by the course service; the scheduler only ever reads them
// to verify that the booking student holds an active enrollment.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	CourseID  uuid.UUID `gorm:"not null" json:"course_id"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
