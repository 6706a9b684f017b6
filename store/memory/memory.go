// Package memory provides in-memory implementations of the asset and
// payroll store interfaces, for tests and the demo seed.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/workforce-engine/assets"
	"github.com/warp/workforce-engine/generic"
	"github.com/warp/workforce-engine/payroll"
)

// Compile-time interface checks.
var (
	_ assets.HistoryStore = (*Store)(nil)
	_ payroll.Store       = (*Store)(nil)
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Store struct {
	mu      sync.RWMutex
	assets  map[recordKey]assets.Asset
	events  map[recordKey][]assets.LifecycleEvent // kept sorted by RecordedAt
	salary  map[string][]payroll.SalaryStructure  // by tenant
	loans   map[string][]payroll.Loan
	leaves  map[string][]payroll.LeaveRequest
}

type recordKey struct {
	TenantID string
	ID       string
}

func New() *Store {
	return &Store{
		assets: make(map[recordKey]assets.Asset),
		events: make(map[recordKey][]assets.LifecycleEvent),
		salary: make(map[string][]payroll.SalaryStructure),
		loans:  make(map[string][]payroll.Loan),
		leaves: make(map[string][]payroll.LeaveRequest),
	}
}

// =============================================================================
// WRITE SIDE - seed helpers
// =============================================================================

func (s *Store) PutAsset(a assets.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[recordKey{a.TenantID, a.ID}] = a
}

// RecordEvent appends a lifecycle event, keeping the log in recorded order.
// Events are append-only; there is no update or delete.
func (s *Store) RecordEvent(ev assets.LifecycleEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{ev.TenantID, ev.SubjectID}
	log := s.events[k]
	i := sort.Search(len(log), func(i int) bool {
		return log[i].RecordedAt.After(ev.RecordedAt)
	})
	log = append(log, assets.LifecycleEvent{})
	copy(log[i+1:], log[i:])
	log[i] = ev
	s.events[k] = log
}

func (s *Store) PutSalaryStructure(tenantID string, ss payroll.SalaryStructure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salary[tenantID] = append(s.salary[tenantID], ss)
}

func (s *Store) PutLoan(tenantID string, l payroll.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans[tenantID] = append(s.loans[tenantID], l)
}

func (s *Store) PutLeaveRequest(tenantID string, l payroll.LeaveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves[tenantID] = append(s.leaves[tenantID], l)
}

// =============================================================================
// assets.HistoryStore
// =============================================================================

func (s *Store) GetAsset(_ context.Context, tenantID, assetID string) (assets.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assets[recordKey{tenantID, assetID}]
	if !ok {
		return assets.Asset{}, &generic.NotFoundError{Kind: "asset", ID: assetID, TenantID: tenantID}
	}
	return a, nil
}

func (s *Store) EventsBySubject(_ context.Context, tenantID, subjectID string) ([]assets.LifecycleEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.events[recordKey{tenantID, subjectID}]
	out := make([]assets.LifecycleEvent, len(log))
	copy(out, log)
	return out, nil
}

func (s *Store) LatestAssignmentTo(_ context.Context, tenantID, subjectID, counterpartyID string) (*assets.LifecycleEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.events[recordKey{tenantID, subjectID}]
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].Action == assets.ActionAssigned && log[i].CounterpartyID == counterpartyID {
			ev := log[i]
			return &ev, nil
		}
	}
	return nil, nil
}

// =============================================================================
// payroll.Store
// =============================================================================

func (s *Store) ActiveSalaryStructures(_ context.Context, tenantID string) ([]payroll.SalaryStructure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]payroll.SalaryStructure, len(s.salary[tenantID]))
	copy(out, s.salary[tenantID])
	return out, nil
}

func (s *Store) ActiveLoans(_ context.Context, tenantID string, onOrBefore generic.TimePoint) ([]payroll.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []payroll.Loan
	for _, l := range s.loans[tenantID] {
		if l.Status == payroll.LoanActive && l.StartDate.BeforeOrEqual(onOrBefore) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) ApprovedUnpaidLeaves(_ context.Context, tenantID, memberID string, from, to generic.TimePoint) ([]payroll.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []payroll.LeaveRequest
	for _, l := range s.leaves[tenantID] {
		if l.MemberID != memberID || l.Status != payroll.LeaveApproved || l.IsPaid {
			continue
		}
		if l.Start.BeforeOrEqual(to) && l.End.AfterOrEqual(from) {
			out = append(out, l)
		}
	}
	return out, nil
}
