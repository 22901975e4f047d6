/*
flexbank.go - Running flex-time balance

PURPOSE:
  The flex bank is a signed balance of over/under-worked minutes relative
  to each day's requirement, carried indefinitely - no weekly or monthly
  reset. It is a strict left-fold over the employee's records in date
  order:

    balance[0] = actual[0] - required[0]
    balance[i] = balance[i-1] + (actual[i] - required[i])

  Recomputation IS the source of truth: the balance at any point in
  history is obtained by folding everything before it, never by reading a
  stored checkpoint. Callers may cache results for display, but any edit
  to a historical record invalidates everything after it.

ORDERING:
  The fold is order-sensitive by design. Feeding records out of date order
  produces a wrong (not erroring) result; sort first. record.SortByDate
  does this.
*/
package engine

import (
	"github.com/warp/worktime-engine/clock"
	"github.com/warp/worktime-engine/policy"
	"github.com/warp/worktime-engine/record"
)

// PolicyResolver supplies fully populated shift policies by ID. Stores and
// plain maps (PolicySet) implement it.
type PolicyResolver interface {
	ResolvePolicy(id string) (policy.ShiftPolicy, error)
}

// PolicySet is a PolicyResolver over an in-memory policy collection,
// keyed by policy ID.
type PolicySet map[string]policy.ShiftPolicy

func (ps PolicySet) ResolvePolicy(id string) (policy.ShiftPolicy, error) {
	p, ok := ps[id]
	if !ok {
		return policy.ShiftPolicy{}, ErrMissingPolicy
	}
	return p, nil
}

// CalculateFlexBank folds the records into per-day flex-bank entries,
// starting from a zero balance. Records must already be date-ascending.
//
// A record with an unresolvable policy is fatal here: the fold cannot skip
// a day without corrupting every balance after it. The weekly aggregator
// handles skipping at its own level by pre-filtering.
func CalculateFlexBank(ordered []record.DailyRecord, policies PolicyResolver) ([]FlexBankEntry, error) {
	return foldFlexBank(ordered, policies, 0)
}

// foldFlexBank continues a fold from a seed balance. Folding [0..k) and
// then [k..n) with the first fold's final balance as seed yields the same
// result as folding [0..n) in one pass.
func foldFlexBank(ordered []record.DailyRecord, policies PolicyResolver, seed clock.Minutes) ([]FlexBankEntry, error) {
	balance := seed
	entries := make([]FlexBankEntry, 0, len(ordered))

	for _, rec := range ordered {
		delta, err := flexDelta(rec, policies)
		if err != nil {
			return nil, err
		}
		balance += delta
		entries = append(entries, FlexBankEntry{
			Date:                  rec.Date,
			DailyDeltaMinutes:     delta,
			RunningBalanceMinutes: balance,
		})
	}
	return entries, nil
}

// flexDelta computes one record's signed contribution: actual worked
// minutes minus the policy's daily requirement.
func flexDelta(rec record.DailyRecord, policies PolicyResolver) (clock.Minutes, error) {
	pol, err := policies.ResolvePolicy(rec.ShiftPolicyID)
	if err != nil {
		return 0, &MissingPolicyError{RecordID: rec.ID, PolicyID: rec.ShiftPolicyID, Date: rec.Date}
	}
	res, err := CalculateDaily(rec, pol)
	if err != nil {
		return 0, err
	}
	return res.TotalWorkingMinutes - pol.RequiredMinutes(), nil
}
