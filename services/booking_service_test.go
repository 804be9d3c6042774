package services

import (
	"testing"
	"time"

	"github.com/dquispe/tutoria_online/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSlotWithinRanges(t *testing.T) {
	// 09:00-10:00 and 10:00-11:00 merge into one range, so 09:30-10:30 fits.
	merged := MergeOverlappingRanges([]MinuteRange{{540, 600}, {600, 660}})
	require.True(t, SlotWithinRanges(merged, 570, 630))

	// 09:00-10:00 and 10:30-11:00 keep their gap; 09:30-10:45 spans it.
	gapped := MergeOverlappingRanges([]MinuteRange{{540, 600}, {630, 660}})
	require.False(t, SlotWithinRanges(gapped, 570, 645))

	require.True(t, SlotWithinRanges(gapped, 540, 600), "exact range is contained")
	require.False(t, SlotWithinRanges(gapped, 539, 600), "one minute early is not")
	require.False(t, SlotWithinRanges(nil, 540, 600))
}

func booking(teacher uuid.UUID, slot, status string) models.ClassBooking {
	return models.ClassBooking{
		ID:        uuid.New(),
		TeacherID: teacher,
		Day:       "2026-09-01",
		TimeSlot:  slot,
		Status:    status,
	}
}

func TestFindConflictHalfOpen(t *testing.T) {
	teacher := uuid.New()
	existing := []models.ClassBooking{booking(teacher, "14:00-15:00", models.BookingStatusConfirmed)}

	// Touching slots do not overlap.
	conflict, err := FindConflict(existing, 15*60, 16*60, uuid.Nil)
	require.NoError(t, err)
	require.Nil(t, conflict)

	conflict, err = FindConflict(existing, 13*60, 14*60, uuid.Nil)
	require.NoError(t, err)
	require.Nil(t, conflict)

	// One shared minute does.
	conflict, err = FindConflict(existing, 14*60+59, 15*60+30, uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, conflict)
}

func TestFindConflictSkipsCancelledAndExcluded(t *testing.T) {
	teacher := uuid.New()
	cancelled := booking(teacher, "14:00-15:00", models.BookingStatusCancelled)
	confirmed := booking(teacher, "14:00-15:00", models.BookingStatusConfirmed)

	conflict, err := FindConflict([]models.ClassBooking{cancelled}, 14*60, 15*60, uuid.Nil)
	require.NoError(t, err)
	require.Nil(t, conflict, "cancelled bookings never conflict")

	conflict, err = FindConflict([]models.ClassBooking{confirmed}, 14*60, 15*60, confirmed.ID)
	require.NoError(t, err)
	require.Nil(t, conflict, "the booking being rescheduled is excluded")

	conflict, err = FindConflict([]models.ClassBooking{confirmed}, 14*60, 15*60, uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, conflict)
}

func TestValidateEnrollment(t *testing.T) {
	student := uuid.New()

	require.ErrorIs(t, ValidateEnrollment(nil, student), ErrEnrollmentNotFound)

	other := models.Enrollment{ID: uuid.New(), StudentID: uuid.New(), Status: models.EnrollmentStatusActive}
	require.ErrorIs(t, ValidateEnrollment(&other, student), ErrEnrollmentMismatch)

	paused := models.Enrollment{ID: uuid.New(), StudentID: student, Status: models.EnrollmentStatusPaused}
	require.ErrorIs(t, ValidateEnrollment(&paused, student), ErrEnrollmentInactive)

	active := models.Enrollment{ID: uuid.New(), StudentID: student, Status: models.EnrollmentStatusActive}
	require.NoError(t, ValidateEnrollment(&active, student))
}

func TestParseBookingSlot(t *testing.T) {
	start, end, err := parseBookingSlot("14:00-15:00")
	require.NoError(t, err)
	require.Equal(t, 14*60, start)
	require.Equal(t, 15*60, end)

	_, _, err = parseBookingSlot("14:00")
	require.ErrorIs(t, err, ErrInvalidSlot)

	_, _, err = parseBookingSlot("15:00-14:00")
	require.ErrorIs(t, err, ErrInvalidSlot)

	_, _, err = parseBookingSlot("14:00-14:00")
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestResolveSlotToUTC(t *testing.T) {
	// Lima evening rolls into the next UTC calendar day.
	day, slot, err := ResolveSlotToUTC("2026-03-02", "20:00-22:00", "America/Lima")
	require.NoError(t, err)
	require.Equal(t, "2026-03-03", day)
	require.Equal(t, "01:00-03:00", slot)

	day, slot, err = ResolveSlotToUTC("2026-03-02", "20:00-22:00", "")
	require.NoError(t, err)
	require.Equal(t, "2026-03-02", day)
	require.Equal(t, "20:00-22:00", slot)

	_, _, err = ResolveSlotToUTC("2026-03-02", "20:00-22:00", "Mars/Olympus")
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCompletionGate(t *testing.T) {
	confirmed := booking(uuid.New(), "14:00-15:00", models.BookingStatusConfirmed)
	afterEnd := time.Date(2026, 9, 1, 15, 0, 1, 0, time.UTC)

	require.NoError(t, completionGate(&confirmed, afterEnd))
	require.Error(t, completionGate(&confirmed, time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)),
		"a class still in progress cannot be completed")

	// A booking cancelled between the candidate scan and the transition must stay
	// cancelled.
	cancelled := booking(uuid.New(), "14:00-15:00", models.BookingStatusCancelled)
	require.Error(t, completionGate(&cancelled, afterEnd))

	completed := booking(uuid.New(), "14:00-15:00", models.BookingStatusCompleted)
	require.Error(t, completionGate(&completed, afterEnd))
}
