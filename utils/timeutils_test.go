package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeToMinutes(t *testing.T) {
	m, err := TimeToMinutes("00:00")
	require.NoError(t, err)
	require.Equal(t, 0, m)

	m, err = TimeToMinutes("09:30")
	require.NoError(t, err)
	require.Equal(t, 570, m)

	m, err = TimeToMinutes("23:59")
	require.NoError(t, err)
	require.Equal(t, 1439, m)

	for _, bad := range []string{"9:30", "24:00", "12:60", "12.30", "ab:cd", "12:3", "", "12:345"} {
		_, err := TimeToMinutes(bad)
		require.ErrorIs(t, err, ErrInvalidFormat, "input %q", bad)
	}
}

func TestSplitTimeSlot(t *testing.T) {
	start, end, err := SplitTimeSlot("14:00-15:00")
	require.NoError(t, err)
	require.Equal(t, "14:00", start)
	require.Equal(t, "15:00", end)

	// Reversed halves split fine; ordering is the caller's concern.
	_, _, err = SplitTimeSlot("15:00-14:00")
	require.NoError(t, err)

	for _, bad := range []string{"14:00", "14:00–15:00", "14:00 - 15:00", "14:00-25:00", "14:00-15:00-16:00"} {
		_, _, err := SplitTimeSlot(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestSlotToMinutesMidnightEnd(t *testing.T) {
	start, end, err := SlotToMinutes("23:00-00:00")
	require.NoError(t, err)
	require.Equal(t, 1380, start)
	require.Equal(t, 1440, end)
}

func TestWeekdayIndexAliases(t *testing.T) {
	cases := map[string]int{
		"sunday": 0, "monday": 1, "saturday": 6,
		"domingo": 0, "lunes": 1, "miércoles": 3, "miercoles": 3, "sábado": 6,
		"  Lunes ": 1,
	}
	for key, want := range cases {
		got, err := WeekdayIndex(key)
		require.NoError(t, err, "key %q", key)
		require.Equal(t, want, got, "key %q", key)
	}

	_, err := WeekdayIndex("funday")
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNextDateForWeekday(t *testing.T) {
	// 2026-09-01 is a Tuesday.
	ref := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tue := NextDateForWeekday(ref, 2, time.UTC)
	require.Equal(t, "2026-09-01", tue.Format("2006-01-02"))

	mon := NextDateForWeekday(ref, 1, time.UTC)
	require.Equal(t, "2026-09-07", mon.Format("2006-01-02"))
}

func TestConvertRangeRoundTrip(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	ref := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// Lima has no DST, so a same-day range round-trips exactly.
	utc, err := ConvertRangeToUTC("monday", "09:00", "11:00", lima, ref)
	require.NoError(t, err)
	require.Len(t, utc, 1)
	require.Equal(t, WallClockRange{DayKey: "monday", Start: "14:00", End: "16:00"}, utc[0])

	back, err := ConvertRangeFromUTC(utc[0].DayKey, utc[0].Start, utc[0].End, lima, ref)
	require.NoError(t, err)
	require.Len(t, back, 1)
	require.Equal(t, WallClockRange{DayKey: "monday", Start: "09:00", End: "11:00"}, back[0])
}

func TestConvertRangeSplitsAtMidnight(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	ref := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// Lima monday 18:00-20:00 is UTC monday 23:00 through tuesday 01:00.
	utc, err := ConvertRangeToUTC("monday", "18:00", "20:00", lima, ref)
	require.NoError(t, err)
	require.Len(t, utc, 2)
	require.Equal(t, WallClockRange{DayKey: "monday", Start: "23:00", End: "00:00"}, utc[0])
	require.Equal(t, WallClockRange{DayKey: "tuesday", Start: "00:00", End: "01:00"}, utc[1])
}

func TestConvertRangeFullDay(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	ref := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// A full Lima day is UTC 05:00 through 05:00 the next day.
	utc, err := ConvertRangeToUTC("monday", "00:00", "00:00", lima, ref)
	require.NoError(t, err)
	require.Len(t, utc, 2)
	require.Equal(t, WallClockRange{DayKey: "monday", Start: "05:00", End: "00:00"}, utc[0])
	require.Equal(t, WallClockRange{DayKey: "tuesday", Start: "00:00", End: "05:00"}, utc[1])
}

func TestConvertRangeSpanishDayKey(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	ref := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	fromSpanish, err := ConvertRangeToUTC("lunes", "09:00", "11:00", lima, ref)
	require.NoError(t, err)
	fromEnglish, err := ConvertRangeToUTC("monday", "09:00", "11:00", lima, ref)
	require.NoError(t, err)
	require.Equal(t, fromEnglish, fromSpanish)
}

func TestConvertDateSlotRollsDay(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	day, start, end, err := ConvertDateSlotToUTC("2026-03-02", "20:00", "22:00", lima)
	require.NoError(t, err)
	require.Equal(t, "2026-03-03", day)
	require.Equal(t, "01:00", start)
	require.Equal(t, "03:00", end)

	backDay, backStart, backEnd, err := ConvertDateSlotFromUTC(day, start, end, lima)
	require.NoError(t, err)
	require.Equal(t, "2026-03-02", backDay)
	require.Equal(t, "20:00", backStart)
	require.Equal(t, "22:00", backEnd)
}

func TestConvertDateSlotAppliesDSTOffset(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Winter: UTC-5.
	_, start, _, err := ConvertDateSlotToUTC("2026-01-15", "09:00", "10:00", ny)
	require.NoError(t, err)
	require.Equal(t, "14:00", start)

	// Summer: UTC-4.
	_, start, _, err = ConvertDateSlotToUTC("2026-07-15", "09:00", "10:00", ny)
	require.NoError(t, err)
	require.Equal(t, "13:00", start)
}

func TestSlotInstants(t *testing.T) {
	start, end, err := SlotInstants("2026-09-01", "14:00-15:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC), end)

	// An end at or before the start belongs to the next calendar day.
	start, end, err = SlotInstants("2026-09-01", "23:00-00:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), end)

	_, _, err = SlotInstants("2026-13-01", "14:00-15:00")
	require.Error(t, err)
	_, _, err = SlotInstants("2026-09-01", "14:00")
	require.Error(t, err)
}
