package record_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/worktime-engine/clock"
	"github.com/warp/worktime-engine/record"
)

func rec(id string, date clock.Date, in, out string) record.DailyRecord {
	return record.DailyRecord{
		ID:            id,
		EmployeeID:    "emp-1",
		Date:          date,
		ClockIn:       in,
		ClockOut:      out,
		LunchStart:    "12:00",
		LunchEnd:      "13:00",
		ShiftPolicyID: "shift-standard",
	}
}

func TestSortByDate_StableForSameDay(t *testing.T) {
	day1 := clock.NewDate(2025, time.March, 10)
	day2 := day1.AddDays(1)

	recs := []record.DailyRecord{
		rec("c", day2, "08:00", "17:00"),
		rec("a", day1, "08:00", "12:00"),
		rec("b", day1, "13:00", "17:00"),
	}

	record.SortByDate(recs)

	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, "b", recs[1].ID, "same-day records keep entry order")
	assert.Equal(t, "c", recs[2].ID)
}

func TestConsolidateByDay_MergesSameDate(t *testing.T) {
	// GIVEN: a split day entered as two records, out of order
	// THEN:  one record with earliest-in/latest-out and both break lists

	day := clock.NewDate(2025, time.March, 10)

	afternoon := rec("pm", day, "13:00", "17:30")
	afternoon.Breaks = []record.BreakEntry{{Start: "15:00", End: "15:10"}}

	morning := rec("am", day, "08:00", "12:00")
	morning.Breaks = []record.BreakEntry{{Start: "10:00", End: "10:15"}}

	out, err := record.ConsolidateByDay([]record.DailyRecord{afternoon, morning})
	require.NoError(t, err)
	require.Len(t, out, 1)

	merged := out[0]
	assert.Equal(t, "08:00", merged.ClockIn)
	assert.Equal(t, "17:30", merged.ClockOut)
	assert.Equal(t, "12:00", merged.LunchStart)
	assert.Equal(t, "13:00", merged.LunchEnd)

	// Breaks concatenate in encounter order; overlaps are not merged.
	require.Len(t, merged.Breaks, 2)
	assert.Equal(t, "15:00", merged.Breaks[0].Start)
	assert.Equal(t, "10:00", merged.Breaks[1].Start)
}

func TestConsolidateByDay_PreservesFirstOccurrenceOrder(t *testing.T) {
	day1 := clock.NewDate(2025, time.March, 10)
	day2 := day1.AddDays(1)

	out, err := record.ConsolidateByDay([]record.DailyRecord{
		rec("b1", day2, "08:00", "12:00"),
		rec("a1", day1, "08:00", "17:00"),
		rec("b2", day2, "13:00", "17:00"),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, out[0].Date.Equal(day2), "day2 appeared first in the input")
	assert.True(t, out[1].Date.Equal(day1))
}

func TestConsolidateByDay_SingleRecordsPassThrough(t *testing.T) {
	day := clock.NewDate(2025, time.March, 10)
	in := []record.DailyRecord{rec("only", day, "08:00", "17:00")}

	out, err := record.ConsolidateByDay(in)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "only", out[0].ID)
}

func TestConsolidateByDay_DoesNotAliasInputBreaks(t *testing.T) {
	// Merging must not grow the caller's break slice in place.
	day := clock.NewDate(2025, time.March, 10)

	first := rec("am", day, "08:00", "12:00")
	first.Breaks = []record.BreakEntry{{Start: "10:00", End: "10:15"}}
	second := rec("pm", day, "13:00", "17:00")
	second.Breaks = []record.BreakEntry{{Start: "15:00", End: "15:10"}}

	_, err := record.ConsolidateByDay([]record.DailyRecord{first, second})
	require.NoError(t, err)

	require.Len(t, first.Breaks, 1, "input record must be untouched")
}

func TestConsolidateByDay_NoLunchDay(t *testing.T) {
	// GIVEN: a split day where neither entry declares a lunch - both lunch
	//        fields are blank, which the daily calculation accepts as a
	//        no-lunch day
	// THEN:  consolidation merges them instead of choking on the blanks

	day := clock.NewDate(2025, time.March, 10)

	morning := rec("am", day, "08:00", "12:00")
	morning.LunchStart, morning.LunchEnd = "", ""
	afternoon := rec("pm", day, "13:00", "17:00")
	afternoon.LunchStart, afternoon.LunchEnd = "", ""

	out, err := record.ConsolidateByDay([]record.DailyRecord{morning, afternoon})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "08:00", out[0].ClockIn)
	assert.Equal(t, "17:00", out[0].ClockOut)
	assert.Empty(t, out[0].LunchStart)
	assert.Empty(t, out[0].LunchEnd)
}

func TestConsolidateByDay_LunchOnOneEntryOnly(t *testing.T) {
	// Only the afternoon entry carries the lunch; the blank side must not
	// shadow it.
	day := clock.NewDate(2025, time.March, 10)

	morning := rec("am", day, "08:00", "12:00")
	morning.LunchStart, morning.LunchEnd = "", ""
	afternoon := rec("pm", day, "13:00", "17:00")

	out, err := record.ConsolidateByDay([]record.DailyRecord{morning, afternoon})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "12:00", out[0].LunchStart)
	assert.Equal(t, "13:00", out[0].LunchEnd)
}

func TestConsolidateByDay_MalformedTimeFails(t *testing.T) {
	day := clock.NewDate(2025, time.March, 10)

	_, err := record.ConsolidateByDay([]record.DailyRecord{
		rec("a", day, "08:00", "12:00"),
		rec("b", day, "8h30", "17:00"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, clock.ErrInvalidTimeFormat))
}

func TestHasDeclaredOvertime(t *testing.T) {
	r := rec("a", clock.NewDate(2025, time.March, 10), "08:00", "17:00")
	assert.False(t, r.HasDeclaredOvertime())

	r.OvertimeStart = "17:00"
	assert.False(t, r.HasDeclaredOvertime(), "both ends are required")

	r.OvertimeEnd = "19:00"
	assert.True(t, r.HasDeclaredOvertime())
}
