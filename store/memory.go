/*
Package store provides the in-memory collaborator store.

PURPOSE:
  The engine never persists anything; it reads records and policies from
  collaborator stores and hands back ephemeral results. This package is the
  in-memory implementation used in tests and single-session tools. The
  SQLite implementation lives in store/sqlite.

CONTRACT:
  - Plain CRUD plus change notification. No business logic lives here; the
    calculation functions take explicit inputs and never reach into a store
    on their own.
  - ListByEmployee returns records in insertion order; the engine performs
    its own date sort before folding.
  - Every mutation fires the registered change listeners, so callers that
    cache derived results (flex balances, weekly summaries) know to drop
    them - editing a historical record invalidates everything after it.
*/
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/warp/worktime-engine/engine"
	"github.com/warp/worktime-engine/policy"
	"github.com/warp/worktime-engine/record"
)

// ErrRecordNotFound is returned by Update/Delete for an unknown record ID.
var ErrRecordNotFound = errors.New("record not found")

// Memory is an in-memory record and policy store.
type Memory struct {
	mu        sync.RWMutex
	records   map[string][]record.DailyRecord // by employee, insertion order
	policies  map[string]policy.ShiftPolicy
	listeners []func()
}

func NewMemory() *Memory {
	return &Memory{
		records:  make(map[string][]record.DailyRecord),
		policies: make(map[string]policy.ShiftPolicy),
	}
}

// OnChange registers a listener invoked after every mutation. Intended for
// cache invalidation; listeners run synchronously under no lock.
func (m *Memory) OnChange(fn func()) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *Memory) notify() {
	m.mu.RLock()
	listeners := append([]func(){}, m.listeners...)
	m.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// =============================================================================
// POLICIES
// =============================================================================

// SavePolicy inserts or replaces a policy, assigning an ID when absent.
func (m *Memory) SavePolicy(p policy.ShiftPolicy) policy.ShiftPolicy {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.mu.Lock()
	m.policies[p.ID] = p
	m.mu.Unlock()
	m.notify()
	return p
}

// ResolvePolicy implements engine.PolicyResolver.
func (m *Memory) ResolvePolicy(id string) (policy.ShiftPolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.policies[id]
	if !ok {
		return policy.ShiftPolicy{}, engine.ErrMissingPolicy
	}
	return p, nil
}

// ListPolicies returns all stored policies in unspecified order.
func (m *Memory) ListPolicies() []policy.ShiftPolicy {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]policy.ShiftPolicy, 0, len(m.policies))
	for _, p := range m.policies {
		out = append(out, p)
	}
	return out
}

// =============================================================================
// RECORDS
// =============================================================================

// AppendRecord stores a new record, assigning an ID when absent.
func (m *Memory) AppendRecord(rec record.DailyRecord) record.DailyRecord {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.mu.Lock()
	m.records[rec.EmployeeID] = append(m.records[rec.EmployeeID], rec)
	m.mu.Unlock()
	m.notify()
	return rec
}

// UpdateRecord replaces an existing record in place, keeping its position
// in the insertion order.
func (m *Memory) UpdateRecord(rec record.DailyRecord) error {
	m.mu.Lock()
	recs := m.records[rec.EmployeeID]
	for i := range recs {
		if recs[i].ID == rec.ID {
			recs[i] = rec
			m.mu.Unlock()
			m.notify()
			return nil
		}
	}
	m.mu.Unlock()
	return ErrRecordNotFound
}

// DeleteRecord removes a record by employee and ID.
func (m *Memory) DeleteRecord(employeeID, id string) error {
	m.mu.Lock()
	recs := m.records[employeeID]
	for i := range recs {
		if recs[i].ID == id {
			m.records[employeeID] = append(recs[:i], recs[i+1:]...)
			m.mu.Unlock()
			m.notify()
			return nil
		}
	}
	m.mu.Unlock()
	return ErrRecordNotFound
}

// ListByEmployee returns the employee's records in insertion order.
func (m *Memory) ListByEmployee(employeeID string) ([]record.DailyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]record.DailyRecord, len(m.records[employeeID]))
	copy(out, m.records[employeeID])
	return out, nil
}

var _ engine.PolicyResolver = (*Memory)(nil)
