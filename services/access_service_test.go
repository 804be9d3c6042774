package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	accessDay  = "2026-09-01"
	accessSlot = "14:00-15:00"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 9, 1, hour, min, sec, 0, time.UTC)
}

func TestEvaluateAccessTeacherGrace(t *testing.T) {
	// Exactly ten minutes before the start the door opens for the teacher.
	d := EvaluateAccess(accessDay, accessSlot, at(13, 50, 0), true)
	require.True(t, d.CanAccess)

	d = EvaluateAccess(accessDay, accessSlot, at(13, 49, 0), true)
	require.False(t, d.CanAccess)
	require.Contains(t, d.Reason, "1 minutes remaining")

	// The grace window never applies to students.
	d = EvaluateAccess(accessDay, accessSlot, at(13, 50, 0), false)
	require.False(t, d.CanAccess)
}

func TestEvaluateAccessStudentCountdown(t *testing.T) {
	d := EvaluateAccess(accessDay, accessSlot, at(13, 59, 30), false)
	require.False(t, d.CanAccess)
	require.Equal(t, 30, d.SecondsUntilStart)
	require.Equal(t, "class starts in 30 seconds", d.Reason)

	// At the scheduled start itself the student is in.
	d = EvaluateAccess(accessDay, accessSlot, at(14, 0, 0), false)
	require.True(t, d.CanAccess)

	d = EvaluateAccess(accessDay, accessSlot, at(13, 0, 0), false)
	require.Equal(t, "class starts in 60 minutes", d.Reason)

	d = EvaluateAccess(accessDay, accessSlot, at(10, 45, 0), false)
	require.Equal(t, "class starts in 3 hours 15 minutes", d.Reason)
}

func TestEvaluateAccessEndedIsTerminal(t *testing.T) {
	for _, isTeacher := range []bool{true, false} {
		d := EvaluateAccess(accessDay, accessSlot, at(15, 0, 1), isTeacher)
		require.False(t, d.CanAccess)
		require.Equal(t, "class has already finished", d.Reason)
		require.Negative(t, d.SecondsUntilEnd)
	}

	// The final scheduled second still counts as in progress.
	d := EvaluateAccess(accessDay, accessSlot, at(15, 0, 0), false)
	require.True(t, d.CanAccess)

	// A whole day later the class is long gone, grace or not.
	d = EvaluateAccess(accessDay, accessSlot, time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC), true)
	require.False(t, d.CanAccess)
	require.Equal(t, "class has already finished", d.Reason)
}

func TestEvaluateAccessMidnightCrossing(t *testing.T) {
	d := EvaluateAccess(accessDay, "23:00-00:00", at(23, 30, 0), false)
	require.True(t, d.CanAccess, "the slot runs until the following midnight")

	d = EvaluateAccess(accessDay, "23:00-00:00", time.Date(2026, 9, 2, 0, 0, 1, 0, time.UTC), false)
	require.False(t, d.CanAccess)
	require.Equal(t, "class has already finished", d.Reason)
}

func TestEvaluateAccessAnyDuration(t *testing.T) {
	d := EvaluateAccess(accessDay, "14:00-14:15", at(14, 10, 0), false)
	require.True(t, d.CanAccess)
	require.Equal(t, 5, d.MinutesUntilEnd)

	d = EvaluateAccess(accessDay, "14:00-17:00", at(16, 59, 0), true)
	require.True(t, d.CanAccess)

	d = EvaluateAccess(accessDay, "14:00-14:15", at(14, 16, 0), false)
	require.False(t, d.CanAccess)
}

func TestEvaluateAccessMalformedSchedule(t *testing.T) {
	d := EvaluateAccess(accessDay, "not-a-slot", at(14, 0, 0), true)
	require.False(t, d.CanAccess)
	require.Contains(t, d.Reason, "invalid class schedule")

	d = EvaluateAccess("someday", accessSlot, at(14, 0, 0), false)
	require.False(t, d.CanAccess)
	require.Contains(t, d.Reason, "invalid class schedule")
}

func TestShouldShowEndWarning(t *testing.T) {
	require.True(t, ShouldShowEndWarning(5))
	require.True(t, ShouldShowEndWarning(1))
	require.False(t, ShouldShowEndWarning(6))
	require.False(t, ShouldShowEndWarning(0))
	require.False(t, ShouldShowEndWarning(-1))
}
