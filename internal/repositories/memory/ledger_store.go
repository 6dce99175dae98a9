package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	"github.com/cajacentral/caja_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// LedgerStore is an in-memory implementation of the ledger ports. A single
// mutex serializes the read-tail, compute, append sequence, which gives the
// same per-currency ordering guarantee the SQL implementation gets from its
// advisory locks. Used by service tests and local tooling.
type LedgerStore struct {
	mu      sync.Mutex
	entries []domain.LedgerEntry
	nextID  int64
}

// NewLedgerStore creates an empty in-memory ledger.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{nextID: 1}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerStore)(nil)

// AppendEntry resolves the intent against the currency's tail balance and
// appends the entry.
func (s *LedgerStore) AppendEntry(ctx context.Context, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	if err := intent.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balanceBefore := decimal.Zero
	if tail := s.tailLocked(intent.Currency); tail != nil {
		balanceBefore = tail.BalanceAfter
	}

	entry := intent.Resolve(balanceBefore, time.Now().UTC())
	entry.EntryID = s.nextID
	s.nextID++
	s.entries = append(s.entries, entry)

	return &entry, nil
}

// FindLastEntry retrieves the highest-id entry for a currency.
func (s *LedgerStore) FindLastEntry(ctx context.Context, currency domain.Currency) (*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tail := s.tailLocked(currency)
	if tail == nil {
		return nil, apperrors.ErrNotFound
	}
	entry := *tail
	return &entry, nil
}

// FindEntriesByOperation retrieves all entries matching operation ID and
// kind, in ledger order.
func (s *LedgerStore) FindEntriesByOperation(ctx context.Context, operationID string, kind domain.EntryKind) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []domain.LedgerEntry{}
	for _, e := range s.entries {
		if e.OperationID == operationID && e.Kind == kind {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// ListEntries retrieves a filtered page of entries, newest first.
func (s *LedgerStore) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	var afterID int64
	if nextToken != nil && *nextToken != "" {
		id, err := pagination.DecodeIDToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		afterID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page := []domain.LedgerEntry{}
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if afterID > 0 && e.EntryID >= afterID {
			continue
		}
		if !matchesFilter(e, filter) {
			continue
		}
		page = append(page, e)
		if len(page) > limit {
			break
		}
	}

	var nextTokenVal *string
	if len(page) > limit {
		page = page[:limit]
		token := pagination.EncodeIDToken(page[limit-1].EntryID)
		nextTokenVal = &token
	}

	return page, nextTokenVal, nil
}

// FindEntriesForAggregation retrieves every matching entry in ledger order.
func (s *LedgerStore) FindEntriesForAggregation(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []domain.LedgerEntry{}
	for _, e := range s.entries {
		if matchesFilter(e, filter) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// EntriesByCurrency returns a copy of all entries for a currency in ledger
// order. Test helper.
func (s *LedgerStore) EntriesByCurrency(currency domain.Currency) []domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.LedgerEntry{}
	for _, e := range s.entries {
		if e.Currency == currency {
			out = append(out, e)
		}
	}
	return out
}

func (s *LedgerStore) tailLocked(currency domain.Currency) *domain.LedgerEntry {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Currency == currency {
			return &s.entries[i]
		}
	}
	return nil
}

func matchesFilter(e domain.LedgerEntry, filter domain.EntryFilter) bool {
	if filter.Currency != nil && e.Currency != *filter.Currency {
		return false
	}
	if filter.OperationID != nil && e.OperationID != *filter.OperationID {
		return false
	}
	if len(filter.Kinds) > 0 {
		found := false
		for _, k := range filter.Kinds {
			if e.Kind == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.From != nil && e.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !e.CreatedAt.Before(*filter.To) {
		return false
	}
	return true
}
