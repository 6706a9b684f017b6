/*
Package sqlite provides the SQLite-backed implementation of the asset and
payroll store interfaces.

PURPOSE:
  One Store implements assets.HistoryStore and payroll.Store. Every table
  carries tenant_id and every query filters on it - tenant isolation is a
  hard partition at the SQL level.

APPEND-ONLY ENFORCEMENT:
  lifecycle_events has no UPDATE or DELETE path. Periods and deductions are
  derived from the log on demand, never written back.

KEY TABLES:
  assets:            subject records with current holder
  lifecycle_events:  immutable assignment history (replay order = recorded_at)
  salary_structures: active compensation per member
  loans:             staff loans with remaining balances
  leave_requests:    leave workflow output, read-only to this engine

WAL MODE:
  Opened with WAL for better read concurrency, same as any SQLite-backed
  service here.

MIGRATION:
  Schema is bootstrapped on New(). Versioned migration tooling is out of
  scope for this engine.

SEE ALSO:
  - assets/store.go, payroll/store.go: interface definitions
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/workforce-engine/assets"
	"github.com/warp/workforce-engine/generic"
	"github.com/warp/workforce-engine/payroll"
)

// Compile-time interface checks.
var (
	_ assets.HistoryStore = (*Store)(nil)
	_ payroll.Store       = (*Store)(nil)
)

const (
	dayFormat  = "2006-01-02"
	timeFormat = time.RFC3339Nano
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and bootstraps the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assets (
		id TEXT NOT NULL,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		purchase_date TEXT,
		created_at TEXT NOT NULL,
		holder_id TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (tenant_id, id)
	);

	-- Immutable assignment history. No UPDATE, no DELETE.
	CREATE TABLE IF NOT EXISTS lifecycle_events (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		action TEXT NOT NULL,
		counterparty_id TEXT NOT NULL DEFAULT '',
		effective_date TEXT,
		recorded_at TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_events_subject_recorded
		ON lifecycle_events(tenant_id, subject_id, recorded_at);

	CREATE TABLE IF NOT EXISTS salary_structures (
		tenant_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		member_name TEXT NOT NULL,
		basic TEXT NOT NULL,
		housing TEXT NOT NULL,
		transport TEXT NOT NULL,
		food TEXT NOT NULL,
		phone TEXT NOT NULL,
		other TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (tenant_id, member_id)
	);

	CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		start_date TEXT NOT NULL,
		monthly_deduction TEXT NOT NULL,
		remaining_amount TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_loans_tenant_status
		ON loans(tenant_id, status, start_date);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		status TEXT NOT NULL,
		leave_type_id TEXT NOT NULL DEFAULT '',
		is_paid INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		total_days TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_leaves_member_range
		ON leave_requests(tenant_id, member_id, start_date, end_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DATE ENCODING
// =============================================================================

func encodeDay(tp generic.TimePoint) any {
	if tp.IsZero() {
		return nil
	}
	return tp.String()
}

func decodeDay(s sql.NullString) (generic.TimePoint, error) {
	if !s.Valid || s.String == "" {
		return generic.TimePoint{}, nil
	}
	t, err := time.Parse(dayFormat, s.String)
	if err != nil {
		return generic.TimePoint{}, fmt.Errorf("parse day %q: %w", s.String, err)
	}
	return generic.DateOf(t), nil
}

func decodeDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// =============================================================================
// WRITE SIDE
// =============================================================================

func (s *Store) SaveAsset(ctx context.Context, a assets.Asset) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (id, tenant_id, name, purchase_date, created_at, holder_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (tenant_id, id) DO UPDATE SET
			name = excluded.name,
			purchase_date = excluded.purchase_date,
			holder_id = excluded.holder_id`,
		a.ID, a.TenantID, a.Name, encodeDay(a.PurchaseDate), encodeDay(a.CreatedAt), a.HolderID)
	return err
}

// AppendEvent inserts one lifecycle event. A missing ID gets a fresh UUID.
// There is no corresponding update or delete.
func (s *Store) AppendEvent(ctx context.Context, ev assets.LifecycleEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lifecycle_events
			(id, tenant_id, subject_id, action, counterparty_id, effective_date, recorded_at, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.TenantID, ev.SubjectID, string(ev.Action), ev.CounterpartyID,
		encodeDay(ev.EffectiveDate), ev.RecordedAt.UTC().Format(timeFormat), ev.Notes)
	return err
}

func (s *Store) SaveSalaryStructure(ctx context.Context, tenantID string, ss payroll.SalaryStructure) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO salary_structures
			(tenant_id, member_id, member_name, basic, housing, transport, food, phone, other, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT (tenant_id, member_id) DO UPDATE SET
			member_name = excluded.member_name,
			basic = excluded.basic,
			housing = excluded.housing,
			transport = excluded.transport,
			food = excluded.food,
			phone = excluded.phone,
			other = excluded.other,
			active = 1`,
		tenantID, ss.MemberID, ss.MemberName,
		ss.Basic.String(), ss.Housing.String(), ss.Transport.String(),
		ss.Food.String(), ss.Phone.String(), ss.Other.String())
	return err
}

func (s *Store) SaveLoan(ctx context.Context, tenantID string, l payroll.Loan) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO loans (id, tenant_id, member_id, label, status, start_date, monthly_deduction, remaining_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			remaining_amount = excluded.remaining_amount`,
		l.ID, tenantID, l.MemberID, l.Label, string(l.Status),
		l.StartDate.String(), l.MonthlyDeduction.String(), l.RemainingAmount.String())
	return err
}

func (s *Store) SaveLeaveRequest(ctx context.Context, tenantID string, l payroll.LeaveRequest) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests
			(id, tenant_id, member_id, status, leave_type_id, is_paid, start_date, end_date, total_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			total_days = excluded.total_days`,
		l.ID, tenantID, l.MemberID, string(l.Status), l.LeaveTypeID, boolToInt(l.IsPaid),
		l.Start.String(), l.End.String(), l.TotalDays.String())
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// =============================================================================
// assets.HistoryStore
// =============================================================================

func (s *Store) GetAsset(ctx context.Context, tenantID, assetID string) (assets.Asset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, purchase_date, created_at, holder_id
		FROM assets WHERE tenant_id = ? AND id = ?`, tenantID, assetID)

	var (
		a                 assets.Asset
		purchase, created sql.NullString
	)
	err := row.Scan(&a.ID, &a.TenantID, &a.Name, &purchase, &created, &a.HolderID)
	if err == sql.ErrNoRows {
		return assets.Asset{}, &generic.NotFoundError{Kind: "asset", ID: assetID, TenantID: tenantID}
	}
	if err != nil {
		return assets.Asset{}, err
	}
	if a.PurchaseDate, err = decodeDay(purchase); err != nil {
		return assets.Asset{}, err
	}
	if a.CreatedAt, err = decodeDay(created); err != nil {
		return assets.Asset{}, err
	}
	return a, nil
}

func (s *Store) EventsBySubject(ctx context.Context, tenantID, subjectID string) ([]assets.LifecycleEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tenant_id, subject_id, action, counterparty_id, effective_date, recorded_at, notes
		FROM lifecycle_events
		WHERE tenant_id = ? AND subject_id = ?
		ORDER BY recorded_at ASC`, tenantID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []assets.LifecycleEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *Store) LatestAssignmentTo(ctx context.Context, tenantID, subjectID, counterpartyID string) (*assets.LifecycleEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tenant_id, subject_id, action, counterparty_id, effective_date, recorded_at, notes
		FROM lifecycle_events
		WHERE tenant_id = ? AND subject_id = ? AND action = ? AND counterparty_id = ?
		ORDER BY recorded_at DESC
		LIMIT 1`, tenantID, subjectID, string(assets.ActionAssigned), counterpartyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	ev, err := scanEvent(rows)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func scanEvent(rows *sql.Rows) (assets.LifecycleEvent, error) {
	var (
		ev        assets.LifecycleEvent
		action    string
		effective sql.NullString
		recorded  string
	)
	if err := rows.Scan(&ev.ID, &ev.TenantID, &ev.SubjectID, &action, &ev.CounterpartyID,
		&effective, &recorded, &ev.Notes); err != nil {
		return assets.LifecycleEvent{}, err
	}
	ev.Action = assets.EventAction(action)

	var err error
	if ev.EffectiveDate, err = decodeDay(effective); err != nil {
		return assets.LifecycleEvent{}, err
	}
	if ev.RecordedAt, err = time.Parse(timeFormat, recorded); err != nil {
		return assets.LifecycleEvent{}, fmt.Errorf("parse recorded_at %q: %w", recorded, err)
	}
	return ev, nil
}

// =============================================================================
// payroll.Store
// =============================================================================

func (s *Store) ActiveSalaryStructures(ctx context.Context, tenantID string) ([]payroll.SalaryStructure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT member_id, member_name, basic, housing, transport, food, phone, other
		FROM salary_structures
		WHERE tenant_id = ? AND active = 1`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []payroll.SalaryStructure
	for rows.Next() {
		var (
			ss                                            payroll.SalaryStructure
			basic, housing, transport, food, phone, other string
		)
		if err := rows.Scan(&ss.MemberID, &ss.MemberName, &basic, &housing, &transport, &food, &phone, &other); err != nil {
			return nil, err
		}
		for _, field := range []struct {
			raw string
			dst *decimal.Decimal
		}{
			{basic, &ss.Basic}, {housing, &ss.Housing}, {transport, &ss.Transport},
			{food, &ss.Food}, {phone, &ss.Phone}, {other, &ss.Other},
		} {
			if *field.dst, err = decodeDecimal(field.raw); err != nil {
				return nil, err
			}
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}

func (s *Store) ActiveLoans(ctx context.Context, tenantID string, onOrBefore generic.TimePoint) ([]payroll.Loan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, label, status, start_date, monthly_deduction, remaining_amount
		FROM loans
		WHERE tenant_id = ? AND status = ? AND start_date <= ?`,
		tenantID, string(payroll.LoanActive), onOrBefore.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []payroll.Loan
	for rows.Next() {
		var (
			l                            payroll.Loan
			status, start, monthly, rest string
		)
		if err := rows.Scan(&l.ID, &l.MemberID, &l.Label, &status, &start, &monthly, &rest); err != nil {
			return nil, err
		}
		l.Status = payroll.LoanStatus(status)
		if l.StartDate, err = decodeDay(sql.NullString{String: start, Valid: true}); err != nil {
			return nil, err
		}
		if l.MonthlyDeduction, err = decodeDecimal(monthly); err != nil {
			return nil, err
		}
		if l.RemainingAmount, err = decodeDecimal(rest); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) ApprovedUnpaidLeaves(ctx context.Context, tenantID, memberID string, from, to generic.TimePoint) ([]payroll.LeaveRequest, error) {
	// Overlap: starts in range, ends in range, or spans it entirely.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, status, leave_type_id, is_paid, start_date, end_date, total_days
		FROM leave_requests
		WHERE tenant_id = ? AND member_id = ? AND status = ? AND is_paid = 0
		  AND start_date <= ? AND end_date >= ?`,
		tenantID, memberID, string(payroll.LeaveApproved), to.String(), from.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []payroll.LeaveRequest
	for rows.Next() {
		var (
			l                  payroll.LeaveRequest
			status, start, end string
			isPaid             int
			totalDays          string
		)
		if err := rows.Scan(&l.ID, &l.MemberID, &status, &l.LeaveTypeID, &isPaid, &start, &end, &totalDays); err != nil {
			return nil, err
		}
		l.Status = payroll.LeaveStatus(status)
		l.IsPaid = isPaid != 0
		if l.Start, err = decodeDay(sql.NullString{String: start, Valid: true}); err != nil {
			return nil, err
		}
		if l.End, err = decodeDay(sql.NullString{String: end, Valid: true}); err != nil {
			return nil, err
		}
		if l.TotalDays, err = decodeDecimal(totalDays); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
