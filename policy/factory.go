/*
factory.go - JSON to ShiftPolicy conversion

PURPOSE:
  Policies live in flat storage as JSON blobs and in admin UIs as plain
  text fields. This file converts that shape into a validated ShiftPolicy
  and back. Construction is the single validation point: once a ShiftPolicy
  exists, every time field in it is a parsed, range-checked minute value.

JSON SCHEMA:
  {
    "id": "shift-standard",
    "name": "Standard Day Shift",
    "company_id": "acme",
    "regular_start": "08:00",
    "regular_end": "17:00",
    "lunch": {
      "default_start": "12:00",
      "duration_minutes": 60,
      "flex_window": {"start": "11:30", "end": "13:30"}
    },
    "early_arrival": {"max_minutes": 30, "counts_toward_total": true},
    "late_stay": {"max_minutes": 30, "counts_toward_total": true, "overtime_multiplier": "1.5"},
    "overtime_tiers": {
      "free_duration": 30, "next_duration": 120,
      "next_multiplier": "1.5", "beyond_multiplier": "2.0"
    },
    "shift_bonus": "0.5"
  }

  Multipliers are JSON strings to keep decimal precision through storage.

SEE ALSO:
  - policy/policy.go:     the target struct
  - store/sqlite:         persists the JSON shape in a config column
*/
package policy

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/worktime-engine/clock"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

type PolicyJSON struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	CompanyID     string             `json:"company_id,omitempty"`
	RegularStart  string             `json:"regular_start"`
	RegularEnd    string             `json:"regular_end"`
	Lunch         LunchJSON          `json:"lunch"`
	EarlyArrival  EarlyArrivalJSON   `json:"early_arrival"`
	LateStay      LateStayJSON       `json:"late_stay"`
	OvertimeTiers *OvertimeTiersJSON `json:"overtime_tiers,omitempty"`
	ShiftBonus    string             `json:"shift_bonus,omitempty"`
}

type LunchJSON struct {
	DefaultStart    string       `json:"default_start"`
	DurationMinutes int          `json:"duration_minutes"`
	FlexWindow      IntervalJSON `json:"flex_window"`
}

type IntervalJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type EarlyArrivalJSON struct {
	MaxMinutes        int  `json:"max_minutes"`
	CountsTowardTotal bool `json:"counts_toward_total"`
}

type LateStayJSON struct {
	MaxMinutes         int    `json:"max_minutes"`
	CountsTowardTotal  bool   `json:"counts_toward_total"`
	OvertimeMultiplier string `json:"overtime_multiplier"`
}

type OvertimeTiersJSON struct {
	FreeDuration     int    `json:"free_duration"`
	NextDuration     int    `json:"next_duration"`
	NextMultiplier   string `json:"next_multiplier"`
	BeyondMultiplier string `json:"beyond_multiplier"`
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// Parse parses a JSON string into a validated ShiftPolicy.
func Parse(jsonStr string) (ShiftPolicy, error) {
	var pj PolicyJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return ShiftPolicy{}, fmt.Errorf("failed to parse policy JSON: %w", err)
	}
	return FromJSON(pj)
}

// FromJSON converts the stored JSON shape into a ShiftPolicy, validating
// every time string and multiplier. Errors name the offending field.
func FromJSON(pj PolicyJSON) (ShiftPolicy, error) {
	p := ShiftPolicy{
		ID:        pj.ID,
		CompanyID: pj.CompanyID,
		Name:      pj.Name,
	}

	var err error
	if p.RegularStart, err = parseField("regular_start", pj.RegularStart); err != nil {
		return ShiftPolicy{}, err
	}
	if p.RegularEnd, err = parseField("regular_end", pj.RegularEnd); err != nil {
		return ShiftPolicy{}, err
	}

	if p.Lunch.DefaultStart, err = parseField("lunch.default_start", pj.Lunch.DefaultStart); err != nil {
		return ShiftPolicy{}, err
	}
	if pj.Lunch.DurationMinutes < 0 {
		return ShiftPolicy{}, fmt.Errorf("lunch.duration_minutes: must not be negative")
	}
	p.Lunch.DurationMinutes = clock.Minutes(pj.Lunch.DurationMinutes)
	if p.Lunch.FlexWindow.Start, err = parseField("lunch.flex_window.start", pj.Lunch.FlexWindow.Start); err != nil {
		return ShiftPolicy{}, err
	}
	if p.Lunch.FlexWindow.End, err = parseField("lunch.flex_window.end", pj.Lunch.FlexWindow.End); err != nil {
		return ShiftPolicy{}, err
	}

	p.EarlyArrival = EarlyArrivalRule{
		MaxMinutes:        clock.Minutes(pj.EarlyArrival.MaxMinutes),
		CountsTowardTotal: pj.EarlyArrival.CountsTowardTotal,
	}

	p.LateStay = LateStayRule{
		MaxMinutes:        clock.Minutes(pj.LateStay.MaxMinutes),
		CountsTowardTotal: pj.LateStay.CountsTowardTotal,
	}
	if p.LateStay.OvertimeMultiplier, err = parseMultiplier("late_stay.overtime_multiplier", pj.LateStay.OvertimeMultiplier); err != nil {
		return ShiftPolicy{}, err
	}

	if pj.OvertimeTiers != nil {
		tiers := OvertimeTiers{
			FreeDuration: clock.Minutes(pj.OvertimeTiers.FreeDuration),
			NextDuration: clock.Minutes(pj.OvertimeTiers.NextDuration),
		}
		if tiers.NextMultiplier, err = parseMultiplier("overtime_tiers.next_multiplier", pj.OvertimeTiers.NextMultiplier); err != nil {
			return ShiftPolicy{}, err
		}
		if tiers.BeyondMultiplier, err = parseMultiplier("overtime_tiers.beyond_multiplier", pj.OvertimeTiers.BeyondMultiplier); err != nil {
			return ShiftPolicy{}, err
		}
		p.OvertimeTiers = &tiers
	}

	if pj.ShiftBonus != "" {
		if p.ShiftBonus, err = parseMultiplier("shift_bonus", pj.ShiftBonus); err != nil {
			return ShiftPolicy{}, err
		}
	}

	return p, nil
}

// ToJSON converts a ShiftPolicy back to its storable JSON shape.
func ToJSON(p ShiftPolicy) PolicyJSON {
	pj := PolicyJSON{
		ID:           p.ID,
		Name:         p.Name,
		CompanyID:    p.CompanyID,
		RegularStart: clock.FormatMinutes(p.RegularStart),
		RegularEnd:   clock.FormatMinutes(p.RegularEnd),
		Lunch: LunchJSON{
			DefaultStart:    clock.FormatMinutes(p.Lunch.DefaultStart),
			DurationMinutes: int(p.Lunch.DurationMinutes),
			FlexWindow: IntervalJSON{
				Start: clock.FormatMinutes(p.Lunch.FlexWindow.Start),
				End:   clock.FormatMinutes(p.Lunch.FlexWindow.End),
			},
		},
		EarlyArrival: EarlyArrivalJSON{
			MaxMinutes:        int(p.EarlyArrival.MaxMinutes),
			CountsTowardTotal: p.EarlyArrival.CountsTowardTotal,
		},
		LateStay: LateStayJSON{
			MaxMinutes:         int(p.LateStay.MaxMinutes),
			CountsTowardTotal:  p.LateStay.CountsTowardTotal,
			OvertimeMultiplier: p.LateStay.OvertimeMultiplier.String(),
		},
	}
	if p.OvertimeTiers != nil {
		pj.OvertimeTiers = &OvertimeTiersJSON{
			FreeDuration:     int(p.OvertimeTiers.FreeDuration),
			NextDuration:     int(p.OvertimeTiers.NextDuration),
			NextMultiplier:   p.OvertimeTiers.NextMultiplier.String(),
			BeyondMultiplier: p.OvertimeTiers.BeyondMultiplier.String(),
		}
	}
	if !p.ShiftBonus.IsZero() {
		pj.ShiftBonus = p.ShiftBonus.String()
	}
	return pj
}

func parseField(field, value string) (clock.Minutes, error) {
	m, err := clock.ParseClock(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return m, nil
}

func parseMultiplier(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: not a decimal number: %q", field, value)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s: must not be negative", field)
	}
	return d, nil
}
