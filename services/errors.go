package services

import "errors"

// Business-rule failures returned by the scheduling services. Handlers branch on
// these with errors.Is and turn them into user-facing validation messages; none of
// them is retried.
var (
	ErrInvalidSlot  = errors.New("invalid time slot format, expected HH:MM-HH:MM")
	ErrInvalidRange = errors.New("invalid availability range")

	ErrSlotNotAvailable = errors.New("the teacher is not available for the requested slot")
	ErrSlotConflict     = errors.New("this schedule overlaps with an existing booking")
	ErrQuotaExceeded    = errors.New("maximum number of active bookings reached")

	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrEnrollmentMismatch = errors.New("enrollment does not belong to this student")
	ErrEnrollmentInactive = errors.New("enrollment is not active")

	ErrRangeNotFound   = errors.New("no availability range matches the requested start and end")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotParticipant  = errors.New("you are not a participant of this booking")
)
