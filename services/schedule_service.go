package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/dquispe/tutoria_online/models"
	"github.com/dquispe/tutoria_online/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinuteRange is a [Start, End) interval in minutes since midnight. End may be 1440
// for ranges running to midnight.
type MinuteRange struct {
	Start int
	End   int
}

// MergeOverlappingRanges normalizes a set of ranges for one day: sorted by start,
// with overlapping and touching neighbours collapsed. The union of minutes covered is
// preserved exactly, and the result is stable under re-merging.
func MergeOverlappingRanges(ranges []MinuteRange) []MinuteRange {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]MinuteRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []MinuteRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
		} else {
			merged = append(merged, r)
		}
	}
	return merged
}

// DaySlots is one local day of a bulk availability update.
type DaySlots struct {
	Day   string   `json:"day" validate:"required"`
	Slots []string `json:"slots" validate:"dive,required"`
}

func rangeMinutes(start, end string) (MinuteRange, error) {
	s, err := utils.TimeToMinutes(start)
	if err != nil {
		return MinuteRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	e, err := utils.TimeToMinutes(end)
	if err != nil {
		return MinuteRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	// An end of "00:00" is midnight at the end of the day, so "00:00-00:00" is the
	// whole day. This is also how a merged full-day range comes back off disk.
	if e == 0 {
		e = 1440
	}
	if e <= s {
		return MinuteRange{}, fmt.Errorf("%w: %s-%s is empty or reversed", ErrInvalidRange, start, end)
	}
	return MinuteRange{Start: s, End: e}, nil
}

func rowsToMinutes(rows []models.AvailabilityRange) ([]MinuteRange, error) {
	out := make([]MinuteRange, 0, len(rows))
	for _, row := range rows {
		r, err := rangeMinutes(row.StartTime, row.EndTime)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func minutesToRows(teacherID uuid.UUID, dayKey string, ranges []MinuteRange) []models.AvailabilityRange {
	rows := make([]models.AvailabilityRange, 0, len(ranges))
	for _, r := range ranges {
		rows = append(rows, models.AvailabilityRange{
			TeacherID: teacherID,
			DayKey:    dayKey,
			StartTime: utils.MinutesToTime(r.Start),
			EndTime:   utils.MinutesToTime(r.End),
		})
	}
	return rows
}

func canonicalDayKey(day string) (string, error) {
	idx, err := utils.WeekdayIndex(day)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return utils.DayKeyForWeekday(time.Weekday(idx)), nil
}

// SetAvailability toggles a single recurring range for a teacher. DayKey, start and
// end are interpreted in UTC. Adding inserts the range and re-merges the day; removing
// deletes only a range whose start and end exactly match a stored row, so switching
// off a sub-interval of a larger merged range fails with ErrRangeNotFound. Week
// reshaping goes through BulkReplaceAvailability.
func SetAvailability(db *gorm.DB, teacherID uuid.UUID, day, start, end string, available bool) error {
	dayKey, err := canonicalDayKey(day)
	if err != nil {
		return err
	}
	newRange, err := rangeMinutes(start, end)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if !available {
			res := tx.Where(
				"teacher_id = ? AND day_key = ? AND start_time = ? AND end_time = ?",
				teacherID, dayKey, utils.MinutesToTime(newRange.Start), utils.MinutesToTime(newRange.End),
			).Delete(&models.AvailabilityRange{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrRangeNotFound
			}
			return nil
		}

		var rows []models.AvailabilityRange
		if err := tx.Where("teacher_id = ? AND day_key = ?", teacherID, dayKey).Find(&rows).Error; err != nil {
			return err
		}
		existing, err := rowsToMinutes(rows)
		if err != nil {
			return err
		}
		merged := MergeOverlappingRanges(append(existing, newRange))

		if err := tx.Where("teacher_id = ? AND day_key = ?", teacherID, dayKey).Delete(&models.AvailabilityRange{}).Error; err != nil {
			return err
		}
		return tx.Create(minutesToRows(teacherID, dayKey, merged)).Error
	})
}

// BulkReplaceAvailability converts a teacher's local weekly schedule to UTC and
// replaces the stored ranges for every affected UTC day in one transaction. Each local
// slot is converted day by day; slots that cross UTC midnight are split, so a single
// local day can contribute to two UTC days. The delete and the insert either both
// happen or neither does.
func BulkReplaceAvailability(db *gorm.DB, teacherID uuid.UUID, days []DaySlots, loc *time.Location, reference time.Time) error {
	perDay := make(map[string][]MinuteRange)
	affected := make(map[string]bool)

	for _, d := range days {
		idx, err := utils.WeekdayIndex(d.Day)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		// A local day projects onto at most two UTC days; both are owned by
		// this replacement even when the new set leaves them empty.
		localDate := utils.NextDateForWeekday(reference, idx, loc)
		affected[utils.DayKeyForWeekday(localDate.UTC().Weekday())] = true
		affected[utils.DayKeyForWeekday(localDate.Add(24*time.Hour-time.Minute).UTC().Weekday())] = true

		for _, slot := range d.Slots {
			start, end, err := utils.SplitTimeSlot(slot)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidRange, err)
			}
			converted, err := utils.ConvertRangeToUTC(d.Day, start, end, loc, reference)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidRange, err)
			}
			for _, c := range converted {
				r, err := rangeMinutes(c.Start, c.End)
				if err != nil {
					return err
				}
				perDay[c.DayKey] = append(perDay[c.DayKey], r)
				affected[c.DayKey] = true
			}
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for dayKey := range affected {
			if err := tx.Where("teacher_id = ? AND day_key = ?", teacherID, dayKey).Delete(&models.AvailabilityRange{}).Error; err != nil {
				return err
			}
		}
		for dayKey, ranges := range perDay {
			rows := minutesToRows(teacherID, dayKey, MergeOverlappingRanges(ranges))
			if len(rows) == 0 {
				continue
			}
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SlotRange is a merged availability interval as returned to callers.
type SlotRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// GetAvailability returns a teacher's merged weekly availability keyed by weekday.
// With an empty or "UTC" zone the stored ranges are returned as persisted; otherwise
// every range is converted to the requested zone, re-bucketed by local weekday and
// re-merged (two UTC days can fold into one local day).
func GetAvailability(db *gorm.DB, teacherID uuid.UUID, zone string, reference time.Time) (map[string][]SlotRange, error) {
	var rows []models.AvailabilityRange
	if err := db.Where("teacher_id = ?", teacherID).Order("day_key, start_time").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string][]SlotRange)
	if zone == "" || zone == "UTC" {
		for _, row := range rows {
			out[row.DayKey] = append(out[row.DayKey], SlotRange{StartTime: row.StartTime, EndTime: row.EndTime})
		}
		return out, nil
	}

	loc, err := utils.LoadZone(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	perDay := make(map[string][]MinuteRange)
	for _, row := range rows {
		converted, err := utils.ConvertRangeFromUTC(row.DayKey, row.StartTime, row.EndTime, loc, reference)
		if err != nil {
			return nil, err
		}
		for _, c := range converted {
			r, err := rangeMinutes(c.Start, c.End)
			if err != nil {
				return nil, err
			}
			perDay[c.DayKey] = append(perDay[c.DayKey], r)
		}
	}
	for dayKey, ranges := range perDay {
		for _, r := range MergeOverlappingRanges(ranges) {
			out[dayKey] = append(out[dayKey], SlotRange{
				StartTime: utils.MinutesToTime(r.Start),
				EndTime:   utils.MinutesToTime(r.End),
			})
		}
	}
	return out, nil
}

// mergedRangesForWeekday loads the already-merged UTC availability of one weekday.
func mergedRangesForWeekday(tx *gorm.DB, teacherID uuid.UUID, dayKey string) ([]MinuteRange, error) {
	var rows []models.AvailabilityRange
	if err := tx.Where("teacher_id = ? AND day_key = ?", teacherID, dayKey).Order("start_time").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rowsToMinutes(rows)
}

// AvailableSlotStarts expands merged availability into bookable slot starts of the
// given duration, clipped to the operating window and skipping anything that overlaps
// a busy interval. Returned as "HH:MM-HH:MM" slots.
func AvailableSlotStarts(merged, busy []MinuteRange, durationMinutes, startHour, endHour int) []string {
	if durationMinutes <= 0 {
		return nil
	}
	windowStart := startHour * 60
	windowEnd := endHour * 60

	var slots []string
	for _, r := range merged {
		from := r.Start
		if from < windowStart {
			from = windowStart
		}
		to := r.End
		if to > windowEnd {
			to = windowEnd
		}
		for t := from; t+durationMinutes <= to; t += durationMinutes {
			if !overlapsAny(t, t+durationMinutes, busy) {
				slots = append(slots, utils.FormatSlot(t, t+durationMinutes))
			}
		}
	}
	return slots
}

func overlapsAny(start, end int, busy []MinuteRange) bool {
	for _, b := range busy {
		if start < b.End && b.Start < end {
			return true
		}
	}
	return false
}
