package services

import (
	"context"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/cajacentral/caja_backend/internal/events"
	"github.com/cajacentral/caja_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService exposes direct reads over the caja mayor plus the one write
// that bypasses an operation record: the manual adjustment.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	publisher  events.MovementPublisher
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, publisher events.MovementPublisher) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, publisher: publisher}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// AppendAdjustment appends a manual ADJUSTMENT entry. Adjustments are how
// counted-cash differences get reconciled; they carry their own operation
// ID and are never cancelled, only adjusted again.
func (s *LedgerService) AppendAdjustment(ctx context.Context, req dto.AppendAdjustmentRequest, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := domain.ParseCurrency(req.CurrencyCode)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("adjustment amount must be positive")
	}

	intent := domain.EntryIntent{
		Kind:        domain.KindAdjustment,
		OperationID: uuid.New().String(),
		Currency:    currency,
		Amount:      req.Amount,
		IsCredit:    req.IsCredit,
		Concept:     req.Concept,
		CreatedBy:   actorID,
	}

	entry, err := s.ledgerRepo.AppendEntry(ctx, intent)
	if err != nil {
		logger.Error("failed to append adjustment", "error", err, "currency", string(currency))
		return nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("adjustment appended",
		"entryID", entry.EntryID, "currency", string(currency), "actorID", actorID)
	return entry, nil
}

// ListMovements retrieves a filtered, paginated view of the ledger.
func (s *LedgerService) ListMovements(ctx context.Context, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	filter := domain.EntryFilter{From: params.From, To: params.To}

	if params.CurrencyCode != "" {
		currency, err := domain.ParseCurrency(params.CurrencyCode)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Currency = &currency
	}
	if params.Kind != "" {
		filter.Kinds = []domain.EntryKind{domain.EntryKind(params.Kind)}
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListMovementsResponse{
		Movements: dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// VerifyContinuity walks a currency's full chain and returns the first
// entry whose balanceBefore does not continue the previous balanceAfter,
// or nil when the chain holds. A broken chain is evidence of external
// tampering; it is reported, never repaired.
func (s *LedgerService) VerifyContinuity(ctx context.Context, currency domain.Currency) (*domain.LedgerEntry, error) {
	if !currency.IsValid() {
		return nil, apperrors.NewValidationError("invalid currency " + string(currency))
	}

	entries, err := s.ledgerRepo.FindEntriesForAggregation(ctx, domain.EntryFilter{Currency: &currency})
	if err != nil {
		return nil, err
	}

	prev := decimal.Zero
	for i := range entries {
		if !entries[i].BalanceBefore.Equal(prev) {
			broken := entries[i]
			middleware.GetLoggerFromCtx(ctx).Error("ledger continuity broken",
				"currency", string(currency), "entryID", broken.EntryID,
				"expected", prev.String(), "found", broken.BalanceBefore.String())
			return &broken, nil
		}
		prev = entries[i].BalanceAfter
	}
	return nil, nil
}

func (s *LedgerService) publishMovements(ctx context.Context, entries []domain.LedgerEntry) {
	if err := s.publisher.PublishMovements(ctx, entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to publish movement events", "error", err)
	}
}
