package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/worktime-engine/clock"
	"github.com/warp/worktime-engine/engine"
	"github.com/warp/worktime-engine/policy"
	"github.com/warp/worktime-engine/record"
)

func testTiers() *policy.OvertimeTiers {
	return &policy.OvertimeTiers{
		FreeDuration:     30,
		NextDuration:     120,
		NextMultiplier:   decimal.RequireFromString("1.5"),
		BeyondMultiplier: decimal.RequireFromString("2.0"),
	}
}

func interval(start, end string) clock.Interval {
	return clock.Interval{Start: mustClock(start), End: mustClock(end)}
}

func TestOvertimeSegments_NextTierCappedByAvailable(t *testing.T) {
	// GIVEN: tiers free=30/next=120 and a 120min declared window 17:00-19:00
	// THEN:  30min free, then only the remaining 90 of the 120 allowed next
	//        minutes; no beyond segment

	segments := engine.CalculateOvertimeSegments(interval("17:00", "19:00"), nil, testTiers())

	require.Len(t, segments, 2)
	assert.Equal(t, clock.Minutes(30), segments[0].DurationMinutes)
	assert.True(t, segments[0].Multiplier.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, clock.Minutes(90), segments[1].DurationMinutes)
	assert.True(t, segments[1].Multiplier.Equal(decimal.RequireFromString("1.5")))
}

func TestOvertimeSegments_BeyondTier(t *testing.T) {
	// 17:00-20:30 is 210 minutes: 30 free + 120 next + 60 beyond.
	segments := engine.CalculateOvertimeSegments(interval("17:00", "20:30"), nil, testTiers())

	require.Len(t, segments, 3)
	assert.Equal(t, clock.Minutes(30), segments[0].DurationMinutes)
	assert.Equal(t, clock.Minutes(120), segments[1].DurationMinutes)
	assert.Equal(t, clock.Minutes(60), segments[2].DurationMinutes)
	assert.True(t, segments[2].Multiplier.Equal(decimal.RequireFromString("2.0")))
}

func TestOvertimeSegments_BreakOverlapIsClipped(t *testing.T) {
	// GIVEN: a 16:30-17:30 break straddling the window start
	// THEN:  only the 30 overlapping minutes are deducted, leaving 90

	breaks := []clock.Interval{interval("16:30", "17:30")}
	segments := engine.CalculateOvertimeSegments(interval("17:00", "19:00"), breaks, testTiers())

	require.Len(t, segments, 2)
	assert.Equal(t, clock.Minutes(30), segments[0].DurationMinutes)
	assert.Equal(t, clock.Minutes(60), segments[1].DurationMinutes)
}

func TestOvertimeSegments_ShortWindowOnlyFreeTier(t *testing.T) {
	segments := engine.CalculateOvertimeSegments(interval("17:00", "17:20"), nil, testTiers())

	require.Len(t, segments, 1)
	assert.Equal(t, clock.Minutes(20), segments[0].DurationMinutes)
	assert.True(t, segments[0].Multiplier.Equal(decimal.NewFromInt(1)))
}

func TestOvertimeSegments_EmptyCases(t *testing.T) {
	// No tier config.
	assert.Nil(t, engine.CalculateOvertimeSegments(interval("17:00", "19:00"), nil, nil))

	// Zero-length window.
	assert.Nil(t, engine.CalculateOvertimeSegments(interval("17:00", "17:00"), nil, testTiers()))

	// Breaks swallow the whole window.
	breaks := []clock.Interval{interval("17:00", "19:00")}
	assert.Nil(t, engine.CalculateOvertimeSegments(interval("17:00", "19:00"), breaks, testTiers()))
}

func TestSegmentsForRecord(t *testing.T) {
	pol := standardPolicy()
	pol.OvertimeTiers = testTiers()

	// Without a declared window: nothing, even with tiers configured.
	rec := dayRecord("08:00", "17:00")
	segments, err := engine.SegmentsForRecord(rec, pol)
	require.NoError(t, err)
	assert.Nil(t, segments)

	// Declared 17:00-19:00 window; lunch is outside it, so no deduction.
	rec.OvertimeStart, rec.OvertimeEnd = "17:00", "19:00"
	segments, err = engine.SegmentsForRecord(rec, pol)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, clock.Minutes(30), segments[0].DurationMinutes)
	assert.Equal(t, clock.Minutes(90), segments[1].DurationMinutes)

	// A break inside the window is clipped out.
	rec.Breaks = []record.BreakEntry{{Start: "18:00", End: "18:30"}}
	segments, err = engine.SegmentsForRecord(rec, pol)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, clock.Minutes(60), segments[1].DurationMinutes)
}

func TestSegmentsForRecord_NoTiersConfigured(t *testing.T) {
	rec := dayRecord("08:00", "17:00")
	rec.OvertimeStart, rec.OvertimeEnd = "17:00", "19:00"

	segments, err := engine.SegmentsForRecord(rec, standardPolicy())
	require.NoError(t, err)
	assert.Nil(t, segments)
}
