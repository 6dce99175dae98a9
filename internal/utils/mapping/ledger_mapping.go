package mapping

import (
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/internal/models"
)

// ToDomainLedgerEntry converts a ledger row to its domain representation.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		Kind:          domain.EntryKind(m.Kind),
		OperationID:   m.OperationID,
		Currency:      domain.Currency(m.Currency),
		Amount:        m.Amount,
		IsCredit:      m.IsCredit,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Concept:       m.Concept,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of ledger rows.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainLedgerEntry(m)
	}
	return entries
}

// ToModelLedgerEntry converts a domain entry to its row shape.
func ToModelLedgerEntry(e domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       e.EntryID,
		Kind:          string(e.Kind),
		OperationID:   e.OperationID,
		Currency:      string(e.Currency),
		Amount:        e.Amount,
		IsCredit:      e.IsCredit,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Concept:       e.Concept,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ToDomainPharmacyEntry converts a shadow-ledger row to its domain shape.
func ToDomainPharmacyEntry(m models.PharmacyEntry) domain.PharmacyEntry {
	return domain.PharmacyEntry{
		EntryID:   m.EntryID,
		Concept:   m.Concept,
		Amount:    m.Amount,
		Currency:  domain.Currency(m.Currency),
		ExpenseID: m.ExpenseID,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

// ToDomainPharmacyEntrySlice converts a slice of shadow-ledger rows.
func ToDomainPharmacyEntrySlice(ms []models.PharmacyEntry) []domain.PharmacyEntry {
	entries := make([]domain.PharmacyEntry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainPharmacyEntry(m)
	}
	return entries
}
