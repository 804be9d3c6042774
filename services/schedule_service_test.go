package services

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMergeOverlappingRanges(t *testing.T) {
	cases := []struct {
		name string
		in   []MinuteRange
		want []MinuteRange
	}{
		{"empty", nil, nil},
		{"single", []MinuteRange{{540, 600}}, []MinuteRange{{540, 600}}},
		{
			"overlapping",
			[]MinuteRange{{540, 620}, {600, 660}},
			[]MinuteRange{{540, 660}},
		},
		{
			"touching ranges collapse",
			[]MinuteRange{{540, 600}, {600, 660}},
			[]MinuteRange{{540, 660}},
		},
		{
			"gap preserved",
			[]MinuteRange{{540, 600}, {630, 660}},
			[]MinuteRange{{540, 600}, {630, 660}},
		},
		{
			"unsorted input with containment",
			[]MinuteRange{{700, 720}, {540, 660}, {560, 580}},
			[]MinuteRange{{540, 660}, {700, 720}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, MergeOverlappingRanges(tc.in))
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		var ranges []MinuteRange
		for j := 0; j < rng.Intn(12); j++ {
			start := rng.Intn(1380)
			ranges = append(ranges, MinuteRange{Start: start, End: start + 1 + rng.Intn(1440-start-1)})
		}
		once := MergeOverlappingRanges(ranges)
		twice := MergeOverlappingRanges(once)
		require.Equal(t, once, twice)
	}
}

func coveredMinutes(ranges []MinuteRange) map[int]bool {
	covered := make(map[int]bool)
	for _, r := range ranges {
		for m := r.Start; m < r.End; m++ {
			covered[m] = true
		}
	}
	return covered
}

func TestMergePreservesCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		var ranges []MinuteRange
		for j := 0; j < 1+rng.Intn(8); j++ {
			start := rng.Intn(1380)
			ranges = append(ranges, MinuteRange{Start: start, End: start + 1 + rng.Intn(120)})
		}
		merged := MergeOverlappingRanges(ranges)
		require.Equal(t, coveredMinutes(ranges), coveredMinutes(merged))

		// Merged output is sorted and pairwise non-touching.
		for k := 1; k < len(merged); k++ {
			require.Greater(t, merged[k].Start, merged[k-1].End)
		}
	}
}

func TestRangeMinutesRejectsBadInput(t *testing.T) {
	_, err := rangeMinutes("10:00", "10:00")
	require.ErrorIs(t, err, ErrInvalidRange, "zero-width range")

	_, err = rangeMinutes("11:00", "10:00")
	require.ErrorIs(t, err, ErrInvalidRange, "reversed range")

	_, err = rangeMinutes("1:00", "10:00")
	require.ErrorIs(t, err, ErrInvalidRange, "malformed start")

	r, err := rangeMinutes("23:00", "00:00")
	require.NoError(t, err)
	require.Equal(t, MinuteRange{1380, 1440}, r)

	r, err = rangeMinutes("00:00", "00:00")
	require.NoError(t, err)
	require.Equal(t, MinuteRange{0, 1440}, r, "an end of 00:00 is midnight, so this is the full day")
}

func TestFullDayAvailabilityRoundTrip(t *testing.T) {
	// Two halves covering the whole day merge into {0, 1440}, which is stored as
	// "00:00"-"00:00" and must come back off disk intact.
	merged := MergeOverlappingRanges([]MinuteRange{{0, 720}, {720, 1440}})
	require.Equal(t, []MinuteRange{{0, 1440}}, merged)

	rows := minutesToRows(uuid.New(), "monday", merged)
	require.Len(t, rows, 1)
	require.Equal(t, "00:00", rows[0].StartTime)
	require.Equal(t, "00:00", rows[0].EndTime)

	back, err := rowsToMinutes(rows)
	require.NoError(t, err)
	require.Equal(t, merged, back)
}

func TestCanonicalDayKey(t *testing.T) {
	got, err := canonicalDayKey("lunes")
	require.NoError(t, err)
	require.Equal(t, "monday", got)

	_, err = canonicalDayKey("someday")
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestAvailableSlotStarts(t *testing.T) {
	merged := []MinuteRange{{9 * 60, 12 * 60}}

	slots := AvailableSlotStarts(merged, nil, 60, 8, 22)
	require.Equal(t, []string{"09:00-10:00", "10:00-11:00", "11:00-12:00"}, slots)

	// A booked hour drops its slot, touching neighbours stay.
	busy := []MinuteRange{{10 * 60, 11 * 60}}
	slots = AvailableSlotStarts(merged, busy, 60, 8, 22)
	require.Equal(t, []string{"09:00-10:00", "11:00-12:00"}, slots)

	// Operating window clips availability outside it.
	slots = AvailableSlotStarts(merged, nil, 60, 10, 22)
	require.Equal(t, []string{"10:00-11:00", "11:00-12:00"}, slots)

	require.Nil(t, AvailableSlotStarts(merged, nil, 0, 8, 22))
	require.Nil(t, AvailableSlotStarts(nil, nil, 60, 8, 22))
}
