package services

import (
	"fmt"
	"time"

	"github.com/dquispe/tutoria_online/utils"
)

// TeacherGraceMinutes is how long before the scheduled start a teacher may enter the
// classroom. Students wait for the start itself.
const TeacherGraceMinutes = 10

// AccessDecision is the result of evaluating whether a participant may enter a class
// right now. The countdown fields feed UI timers and are populated on every decision,
// negative once the corresponding instant has passed.
type AccessDecision struct {
	CanAccess         bool   `json:"can_access"`
	Reason            string `json:"reason,omitempty"`
	MinutesUntilStart int    `json:"minutes_until_start"`
	MinutesUntilEnd   int    `json:"minutes_until_end"`
	SecondsUntilStart int    `json:"seconds_until_start"`
	SecondsUntilEnd   int    `json:"seconds_until_end"`
}

// EvaluateAccess decides whether a teacher or student may enter the class scheduled at
// (day, slot), both in UTC, at the instant now. It never fails: malformed schedules
// deny access with a parse reason. A slot ending at or before its start time runs into
// the next calendar day, so "23:00-00:00" ends at the following midnight.
func EvaluateAccess(day, slot string, now time.Time, isTeacher bool) AccessDecision {
	startAt, endAt, err := utils.SlotInstants(day, slot)
	if err != nil {
		return AccessDecision{CanAccess: false, Reason: fmt.Sprintf("invalid class schedule: %v", err)}
	}

	secondsUntilStart := int(startAt.Sub(now) / time.Second)
	secondsUntilEnd := int(endAt.Sub(now) / time.Second)
	decision := AccessDecision{
		MinutesUntilStart: secondsUntilStart / 60,
		MinutesUntilEnd:   secondsUntilEnd / 60,
		SecondsUntilStart: secondsUntilStart,
		SecondsUntilEnd:   secondsUntilEnd,
	}

	// A finished class is closed for everyone; no role overrides this.
	if now.After(endAt) {
		decision.Reason = "class has already finished"
		return decision
	}

	if isTeacher {
		graceAt := startAt.Add(-TeacherGraceMinutes * time.Minute)
		if now.Before(graceAt) {
			wait := int(graceAt.Sub(now)+time.Minute-time.Second) / int(time.Minute)
			decision.Reason = fmt.Sprintf("you can enter %d minutes before the class starts (%d minutes remaining)", TeacherGraceMinutes, wait)
			return decision
		}
		decision.CanAccess = true
		return decision
	}

	if now.Before(startAt) {
		decision.Reason = "class starts in " + formatCountdown(secondsUntilStart)
		return decision
	}
	decision.CanAccess = true
	return decision
}

// formatCountdown keeps the boundary contract: under a minute it speaks in seconds,
// above an hour it surfaces hours.
func formatCountdown(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}
	minutes := seconds / 60
	if minutes > 60 {
		return fmt.Sprintf("%d hours %d minutes", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// ShouldShowEndWarning reports whether the imminent-end warning should be visible:
// strictly after the end would it be pointless, and with more than five minutes left
// it is premature.
func ShouldShowEndWarning(minutesUntilEnd int) bool {
	return minutesUntilEnd > 0 && minutesUntilEnd <= 5
}
