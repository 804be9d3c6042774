package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dquispe/tutoria_online/models"
	"github.com/dquispe/tutoria_online/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookClassInput struct {
	TeacherID    uuid.UUID
	StudentID    uuid.UUID
	EnrollmentID uuid.UUID
	Day          string // UTC calendar date, YYYY-MM-DD
	Slot         string // UTC slot, HH:MM-HH:MM
}

// SlotWithinRanges reports whether [start, end) is fully contained in a single merged
// range. A slot spanning the gap between two ranges is not contained even when each
// range covers one of its halves.
func SlotWithinRanges(merged []MinuteRange, start, end int) bool {
	for _, r := range merged {
		if r.Start <= start && r.End >= end {
			return true
		}
	}
	return false
}

// FindConflict scans non-cancelled bookings for a half-open overlap with [start, end).
// Touching slots do not conflict. The excluded id skips the booking being rescheduled.
func FindConflict(bookings []models.ClassBooking, start, end int, exclude uuid.UUID) (*models.ClassBooking, error) {
	for i := range bookings {
		b := &bookings[i]
		if b.ID == exclude || b.Status == models.BookingStatusCancelled {
			continue
		}
		bStart, bEnd, err := utils.SlotToMinutes(b.TimeSlot)
		if err != nil {
			return nil, fmt.Errorf("%w: stored slot %q", ErrInvalidSlot, b.TimeSlot)
		}
		if start < bEnd && bStart < end {
			return b, nil
		}
	}
	return nil, nil
}

// ValidateEnrollment applies the enrollment gates of the allocation check.
func ValidateEnrollment(enrollment *models.Enrollment, studentID uuid.UUID) error {
	if enrollment == nil {
		return ErrEnrollmentNotFound
	}
	if enrollment.StudentID != studentID {
		return ErrEnrollmentMismatch
	}
	if enrollment.Status != models.EnrollmentStatusActive {
		return ErrEnrollmentInactive
	}
	return nil
}

// ResolveSlotToUTC converts a date-keyed slot from an IANA zone into the UTC day and
// slot the store and allocator work in. An empty zone or "UTC" means the input is
// already UTC and passes through untouched.
func ResolveSlotToUTC(day, slot, zone string) (string, string, error) {
	if zone == "" || zone == "UTC" {
		return day, slot, nil
	}
	loc, err := utils.LoadZone(zone)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	start, end, err := utils.SplitTimeSlot(slot)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	utcDay, utcStart, utcEnd, err := utils.ConvertDateSlotToUTC(day, start, end, loc)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	return utcDay, utcStart + "-" + utcEnd, nil
}

func parseBookingSlot(slot string) (int, int, error) {
	start, end, err := utils.SlotToMinutes(slot)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("%w: %q is empty or reversed", ErrInvalidSlot, slot)
	}
	return start, end, nil
}

// lockTeacher serializes allocations per teacher. Contention is naturally partitioned
// by teacher, so a row lock on the teacher is all the coordination booking needs; the
// partial unique index on (teacher_id, day, time_slot) is the storage-level backstop.
func lockTeacher(tx *gorm.DB, teacherID uuid.UUID) error {
	var teacher models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&teacher, "id = ?", teacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotAvailable
		}
		return err
	}
	return nil
}

func runAllocationGates(tx *gorm.DB, teacherID uuid.UUID, day string, start, end int, exclude uuid.UUID) error {
	date, err := utils.ParseDate(day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	dayKey := utils.DayKeyForWeekday(date.Weekday())

	merged, err := mergedRangesForWeekday(tx, teacherID, dayKey)
	if err != nil {
		return err
	}
	if !SlotWithinRanges(merged, start, end) {
		return ErrSlotNotAvailable
	}

	var existing []models.ClassBooking
	if err := tx.Where("teacher_id = ? AND day = ? AND status <> ?", teacherID, day, models.BookingStatusCancelled).Find(&existing).Error; err != nil {
		return err
	}
	conflict, err := FindConflict(existing, start, end, exclude)
	if err != nil {
		return err
	}
	if conflict != nil {
		return ErrSlotConflict
	}
	return nil
}

// BookClass validates and creates a single booking. Every gate short-circuits on the
// first failure, and the whole read-check-write sequence runs inside one transaction
// holding the teacher row lock, so two concurrent requests for overlapping slots
// cannot both pass the conflict scan.
func BookClass(db *gorm.DB, in BookClassInput) (*models.ClassBooking, error) {
	start, end, err := parseBookingSlot(in.Slot)
	if err != nil {
		return nil, err
	}

	var booking models.ClassBooking
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := lockTeacher(tx, in.TeacherID); err != nil {
			return err
		}
		if err := runAllocationGates(tx, in.TeacherID, in.Day, start, end, uuid.Nil); err != nil {
			return err
		}

		settings, err := GetCalendarSettings(tx)
		if err != nil {
			return err
		}
		var active int64
		if err := tx.Model(&models.ClassBooking{}).
			Where("student_id = ? AND status = ?", in.StudentID, models.BookingStatusConfirmed).
			Count(&active).Error; err != nil {
			return err
		}
		if active >= int64(settings.MaxBookingsPerStudent) {
			return ErrQuotaExceeded
		}

		var enrollment models.Enrollment
		if err := tx.First(&enrollment, "id = ?", in.EnrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}
		if err := ValidateEnrollment(&enrollment, in.StudentID); err != nil {
			return err
		}

		booking = models.ClassBooking{
			StudentID:    in.StudentID,
			TeacherID:    in.TeacherID,
			EnrollmentID: in.EnrollmentID,
			Day:          in.Day,
			TimeSlot:     utils.FormatSlot(start, end),
			Status:       models.BookingStatusConfirmed,
		}
		if err := tx.Create(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking flips a booking to cancelled on behalf of its student or teacher.
// Cancelling an already-cancelled booking is a no-op success.
func CancelBooking(db *gorm.DB, bookingID, requesterID uuid.UUID) (*models.ClassBooking, error) {
	var booking models.ClassBooking
	if err := db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.StudentID != requesterID && booking.TeacherID != requesterID {
		return nil, ErrNotParticipant
	}
	if booking.Status == models.BookingStatusCancelled {
		return &booking, nil
	}

	now := time.Now().UTC()
	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = &requesterID
	if err := db.Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// RescheduleBooking moves a booking to a new day and slot, re-running the
// availability and conflict gates against the target while excluding the booking
// itself from the conflict scan. On any failure the original booking is untouched.
func RescheduleBooking(db *gorm.DB, bookingID, requesterID uuid.UUID, newDay, newSlot string) (*models.ClassBooking, error) {
	start, end, err := parseBookingSlot(newSlot)
	if err != nil {
		return nil, err
	}

	var booking models.ClassBooking
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.StudentID != requesterID && booking.TeacherID != requesterID {
			return ErrNotParticipant
		}
		if err := lockTeacher(tx, booking.TeacherID); err != nil {
			return err
		}
		if err := runAllocationGates(tx, booking.TeacherID, newDay, start, end, booking.ID); err != nil {
			return err
		}

		booking.Day = newDay
		booking.TimeSlot = utils.FormatSlot(start, end)
		if err := tx.Save(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// completionGate decides whether a booking may transition to completed right now.
// A booking cancelled in the meantime fails the status check and stays cancelled.
func completionGate(booking *models.ClassBooking, now time.Time) error {
	if booking.Status != models.BookingStatusConfirmed {
		return errors.New("only confirmed bookings can be marked as complete")
	}
	_, endAt, err := utils.SlotInstants(booking.Day, booking.TimeSlot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if endAt.After(now) {
		return errors.New("cannot mark a class as complete before it has ended")
	}
	return nil
}

// CompleteBooking marks a confirmed booking as completed once its end instant has
// passed. Called by the teacher endpoint and the completion sweep job. The locked read
// keeps a concurrent cancel from being overwritten.
func CompleteBooking(db *gorm.DB, bookingID uuid.UUID, now time.Time) (*models.ClassBooking, error) {
	var booking models.ClassBooking
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if err := completionGate(&booking, now); err != nil {
			return err
		}

		completedAt := now.UTC()
		booking.Status = models.BookingStatusCompleted
		booking.CompletedAt = &completedAt
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
