/*
Package sqlite provides the SQLite-backed collaborator store.

PURPOSE:
  Flat persistence for daily records and shift policies. The schema is
  deliberately dumb - two tables, policies as JSON config blobs, breaks as
  a JSON array column - because the engine treats storage as opaque
  key-value data and recomputes every derived number on read.

KEY TABLES:
  shift_policies: id, company_id, name, config_json
  daily_records:  one row per entered employee-day, times as "HH:MM" text

ORDERING:
  ListByEmployee returns rows in insertion (rowid) order. Date ordering is
  the engine's job; the store makes no promises about it.

WAL MODE:
  The database is opened with WAL journaling so readers don't block while
  the UI writes.

USAGE:
  st, err := sqlite.Open("./worktime.db", logger)
  defer st.Close()
  calc := engine.NewWeeklyCalculator(st, logger)

SEE ALSO:
  - store/memory.go: in-memory implementation with the same surface
  - policy/factory.go: the JSON shape stored in config_json
*/
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/warp/worktime-engine/clock"
	"github.com/warp/worktime-engine/engine"
	"github.com/warp/worktime-engine/policy"
	"github.com/warp/worktime-engine/record"
)

// ErrRecordNotFound is returned by Update/Delete for an unknown record ID.
var ErrRecordNotFound = errors.New("record not found")

// Store persists records and policies in SQLite.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the database at path and migrates the
// schema. Use ":memory:" for an in-memory database. A nil logger disables
// logging.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Debug("sqlite store opened", zap.String("path", path))
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shift_policies (
		id TEXT PRIMARY KEY,
		company_id TEXT,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		clock_in TEXT NOT NULL,
		clock_out TEXT NOT NULL,
		lunch_start TEXT,
		lunch_end TEXT,
		breaks_json TEXT,
		shift_policy_id TEXT NOT NULL,
		overtime_start TEXT,
		overtime_end TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_employee
		ON daily_records(employee_id);
	CREATE INDEX IF NOT EXISTS idx_records_employee_date
		ON daily_records(employee_id, date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// POLICIES
// =============================================================================

// SavePolicy inserts or replaces a policy, assigning an ID when absent.
// The policy is stored as its JSON config shape.
func (s *Store) SavePolicy(p policy.ShiftPolicy) (policy.ShiftPolicy, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	config, err := json.Marshal(policy.ToJSON(p))
	if err != nil {
		return policy.ShiftPolicy{}, fmt.Errorf("failed to encode policy config: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO shift_policies (id, company_id, name, config_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_id = excluded.company_id,
			name = excluded.name,
			config_json = excluded.config_json`,
		p.ID, p.CompanyID, p.Name, string(config), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return policy.ShiftPolicy{}, fmt.Errorf("failed to save policy: %w", err)
	}
	return p, nil
}

// ResolvePolicy implements engine.PolicyResolver.
func (s *Store) ResolvePolicy(id string) (policy.ShiftPolicy, error) {
	var config string
	err := s.db.QueryRow(`SELECT config_json FROM shift_policies WHERE id = ?`, id).Scan(&config)
	if errors.Is(err, sql.ErrNoRows) {
		return policy.ShiftPolicy{}, engine.ErrMissingPolicy
	}
	if err != nil {
		return policy.ShiftPolicy{}, fmt.Errorf("failed to load policy %s: %w", id, err)
	}
	return policy.Parse(config)
}

// ListPolicies returns all policies for a company; empty companyID lists all.
func (s *Store) ListPolicies(companyID string) ([]policy.ShiftPolicy, error) {
	query := `SELECT config_json FROM shift_policies`
	args := []any{}
	if companyID != "" {
		query += ` WHERE company_id = ?`
		args = append(args, companyID)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	var out []policy.ShiftPolicy
	for rows.Next() {
		var config string
		if err := rows.Scan(&config); err != nil {
			return nil, err
		}
		p, err := policy.Parse(config)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// =============================================================================
// RECORDS
// =============================================================================

// AppendRecord stores a new record, assigning an ID when absent.
func (s *Store) AppendRecord(rec record.DailyRecord) (record.DailyRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	breaks, err := json.Marshal(rec.Breaks)
	if err != nil {
		return record.DailyRecord{}, fmt.Errorf("failed to encode breaks: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_records
			(id, employee_id, date, clock_in, clock_out, lunch_start, lunch_end,
			 breaks_json, shift_policy_id, overtime_start, overtime_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.Date.String(), rec.ClockIn, rec.ClockOut,
		rec.LunchStart, rec.LunchEnd, string(breaks), rec.ShiftPolicyID,
		rec.OvertimeStart, rec.OvertimeEnd, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return record.DailyRecord{}, fmt.Errorf("failed to append record: %w", err)
	}
	return rec, nil
}

// UpdateRecord replaces an existing record, keeping its insertion position.
func (s *Store) UpdateRecord(rec record.DailyRecord) error {
	breaks, err := json.Marshal(rec.Breaks)
	if err != nil {
		return fmt.Errorf("failed to encode breaks: %w", err)
	}
	res, err := s.db.Exec(`
		UPDATE daily_records SET
			employee_id = ?, date = ?, clock_in = ?, clock_out = ?,
			lunch_start = ?, lunch_end = ?, breaks_json = ?,
			shift_policy_id = ?, overtime_start = ?, overtime_end = ?
		WHERE id = ?`,
		rec.EmployeeID, rec.Date.String(), rec.ClockIn, rec.ClockOut,
		rec.LunchStart, rec.LunchEnd, string(breaks), rec.ShiftPolicyID,
		rec.OvertimeStart, rec.OvertimeEnd, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteRecord removes a record by ID.
func (s *Store) DeleteRecord(id string) error {
	res, err := s.db.Exec(`DELETE FROM daily_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListByEmployee returns the employee's records in insertion order.
func (s *Store) ListByEmployee(employeeID string) ([]record.DailyRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, employee_id, date, clock_in, clock_out, lunch_start,
		       lunch_end, breaks_json, shift_policy_id, overtime_start, overtime_end
		FROM daily_records
		WHERE employee_id = ?
		ORDER BY rowid`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var out []record.DailyRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(rows *sql.Rows) (record.DailyRecord, error) {
	var rec record.DailyRecord
	var date, breaksJSON string
	if err := rows.Scan(&rec.ID, &rec.EmployeeID, &date, &rec.ClockIn, &rec.ClockOut,
		&rec.LunchStart, &rec.LunchEnd, &breaksJSON, &rec.ShiftPolicyID,
		&rec.OvertimeStart, &rec.OvertimeEnd); err != nil {
		return record.DailyRecord{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return record.DailyRecord{}, fmt.Errorf("record %s has bad date %q: %w", rec.ID, date, err)
	}
	rec.Date = clock.DateOf(day)

	if breaksJSON != "" {
		if err := json.Unmarshal([]byte(breaksJSON), &rec.Breaks); err != nil {
			return record.DailyRecord{}, fmt.Errorf("record %s has bad breaks: %w", rec.ID, err)
		}
	}
	return rec, nil
}

var _ engine.PolicyResolver = (*Store)(nil)
