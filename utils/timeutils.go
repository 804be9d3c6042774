package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned for any malformed "HH:MM", slot or day input.
var ErrInvalidFormat = fmt.Errorf("invalid time format")

const DefaultTimeZone = "America/Lima"

// dayKeys is indexed by time.Weekday (Sunday=0 ... Saturday=6).
var dayKeys = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Spanish weekday names are accepted everywhere an English one is.
var weekdayAliases = map[string]int{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4, "friday": 5, "saturday": 6,
	"domingo": 0, "lunes": 1, "martes": 2, "miercoles": 3, "miércoles": 3,
	"jueves": 4, "viernes": 5, "sabado": 6, "sábado": 6,
}

// TimeToMinutes parses a zero-padded 24-hour "HH:MM" string into minutes since
// midnight.
func TimeToMinutes(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, hhmm)
	}
	h, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, hhmm)
	}
	m, err := strconv.Atoi(hhmm[3:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, hhmm)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidFormat, hhmm)
	}
	return h*60 + m, nil
}

// MinutesToTime is the inverse of TimeToMinutes. Minute 1440 wraps to "00:00".
func MinutesToTime(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SplitTimeSlot splits an "HH:MM-HH:MM" slot into its halves, validating each half.
// It does not require start < end; a slot ending at "00:00" runs to midnight.
func SplitTimeSlot(slot string) (string, string, error) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: slot %q", ErrInvalidFormat, slot)
	}
	if _, err := TimeToMinutes(parts[0]); err != nil {
		return "", "", err
	}
	if _, err := TimeToMinutes(parts[1]); err != nil {
		return "", "", err
	}
	return parts[0], parts[1], nil
}

// SlotToMinutes parses a slot into (start, end) minutes since midnight. An end of
// "00:00" is returned as 1440 so that slots running to midnight stay ordered.
func SlotToMinutes(slot string) (int, int, error) {
	startStr, endStr, err := SplitTimeSlot(slot)
	if err != nil {
		return 0, 0, err
	}
	start, _ := TimeToMinutes(startStr)
	end, _ := TimeToMinutes(endStr)
	if end == 0 && start > 0 {
		end = 1440
	}
	return start, end, nil
}

func FormatSlot(startMinutes, endMinutes int) string {
	return MinutesToTime(startMinutes) + "-" + MinutesToTime(endMinutes)
}

// WeekdayIndex resolves a lowercase English or Spanish weekday name to its index
// (Sunday=0 ... Saturday=6).
func WeekdayIndex(dayKey string) (int, error) {
	idx, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(dayKey))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown day %q", ErrInvalidFormat, dayKey)
	}
	return idx, nil
}

// DayKeyForWeekday returns the canonical (English, lowercase) key for a weekday.
func DayKeyForWeekday(w time.Weekday) string {
	return dayKeys[int(w)]
}

// ParseDate parses an ISO "YYYY-MM-DD" calendar date as a UTC midnight instant.
func ParseDate(day string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidFormat, day)
	}
	return t, nil
}

// LoadZone resolves an IANA zone identifier, falling back to the platform default
// when empty.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimeZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q", ErrInvalidFormat, name)
	}
	return loc, nil
}

// NextDateForWeekday returns the next (or current) calendar date in loc that falls on
// the given weekday index, counting from reference. Weekday-keyed ranges have no
// calendar date of their own, so DST offsets are resolved against this occurrence.
func NextDateForWeekday(reference time.Time, weekdayIdx int, loc *time.Location) time.Time {
	ref := reference.In(loc)
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
	offset := (weekdayIdx - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// WallClockRange is a weekday-keyed wall-clock interval in some timezone.
type WallClockRange struct {
	DayKey string
	Start  string
	End    string
}

// convertRange shifts a weekday-keyed range between two zones, anchoring the weekday
// to its next occurrence relative to reference so the DST offset of that date is the
// one applied. A range whose converted endpoints straddle midnight is split in two,
// keeping every stored range inside a single day.
func convertRange(dayKey, start, end string, from, to *time.Location, reference time.Time) ([]WallClockRange, error) {
	idx, err := WeekdayIndex(dayKey)
	if err != nil {
		return nil, err
	}
	startMin, err := TimeToMinutes(start)
	if err != nil {
		return nil, err
	}
	endMin, err := TimeToMinutes(end)
	if err != nil {
		return nil, err
	}
	if endMin == 0 {
		endMin = 1440
	}
	if endMin <= startMin {
		return nil, fmt.Errorf("%w: range %s-%s is empty", ErrInvalidFormat, start, end)
	}

	day := NextDateForWeekday(reference, idx, from)
	startAt := day.Add(time.Duration(startMin) * time.Minute).In(to)
	endAt := day.Add(time.Duration(endMin) * time.Minute).In(to)

	outDay := DayKeyForWeekday(startAt.Weekday())
	outStart := startAt.Hour()*60 + startAt.Minute()
	outEnd := endAt.Hour()*60 + endAt.Minute()
	if outEnd == 0 {
		outEnd = 1440
	}

	if outEnd > outStart {
		return []WallClockRange{{DayKey: outDay, Start: MinutesToTime(outStart), End: MinutesToTime(outEnd)}}, nil
	}
	// Straddles midnight in the target zone.
	nextDay := DayKeyForWeekday(startAt.AddDate(0, 0, 1).Weekday())
	return []WallClockRange{
		{DayKey: outDay, Start: MinutesToTime(outStart), End: "00:00"},
		{DayKey: nextDay, Start: "00:00", End: MinutesToTime(outEnd)},
	}, nil
}

// ConvertRangeToUTC converts a recurring local availability range to UTC.
func ConvertRangeToUTC(dayKey, start, end string, loc *time.Location, reference time.Time) ([]WallClockRange, error) {
	return convertRange(dayKey, start, end, loc, time.UTC, reference)
}

// ConvertRangeFromUTC converts a stored UTC availability range to a local zone.
func ConvertRangeFromUTC(dayKey, start, end string, loc *time.Location, reference time.Time) ([]WallClockRange, error) {
	return convertRange(dayKey, start, end, time.UTC, loc, reference)
}

// ConvertDateSlotToUTC converts a date-keyed local slot to UTC. The returned day is
// the UTC calendar date of the start instant; it rolls forward or backward when the
// offset crosses midnight. An end landing on a later day is returned as its plain
// wall-clock value, with end <= start meaning "next day" (the "23:00-00:00"
// convention).
func ConvertDateSlotToUTC(day, start, end string, loc *time.Location) (string, string, string, error) {
	return convertDateSlot(day, start, end, loc, time.UTC)
}

// ConvertDateSlotFromUTC is the inverse of ConvertDateSlotToUTC.
func ConvertDateSlotFromUTC(day, start, end string, loc *time.Location) (string, string, string, error) {
	return convertDateSlot(day, start, end, time.UTC, loc)
}

func convertDateSlot(day, start, end string, from, to *time.Location) (string, string, string, error) {
	date, err := ParseDate(day)
	if err != nil {
		return "", "", "", err
	}
	startMin, err := TimeToMinutes(start)
	if err != nil {
		return "", "", "", err
	}
	endMin, err := TimeToMinutes(end)
	if err != nil {
		return "", "", "", err
	}
	if endMin <= startMin {
		endMin += 1440
	}

	base := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, from)
	startAt := base.Add(time.Duration(startMin) * time.Minute).In(to)
	endAt := base.Add(time.Duration(endMin) * time.Minute).In(to)

	return startAt.Format("2006-01-02"), startAt.Format("15:04"), endAt.Format("15:04"), nil
}

// SlotInstants resolves a (UTC date, slot) pair into absolute start and end instants.
// A slot whose end is not after its start runs into the next calendar day.
func SlotInstants(day, slot string) (time.Time, time.Time, error) {
	date, err := ParseDate(day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startStr, endStr, err := SplitTimeSlot(slot)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startMin, _ := TimeToMinutes(startStr)
	endMin, _ := TimeToMinutes(endStr)

	start := date.Add(time.Duration(startMin) * time.Minute)
	end := date.Add(time.Duration(endMin) * time.Minute)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}
