package services

import (
	"context"
	"time"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/cajacentral/caja_backend/internal/events"
	"github.com/cajacentral/caja_backend/internal/middleware"
	"github.com/google/uuid"
)

// AdvanceService orchestrates cash advances (vales). Handing one out debits
// the drawer; each return, full or partial, credits it back. Cancellation
// is only allowed while nothing has been returned.
type AdvanceService struct {
	advanceRepo portsrepo.AdvanceRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	publisher   events.MovementPublisher
}

// NewAdvanceService creates a new AdvanceService.
func NewAdvanceService(advanceRepo portsrepo.AdvanceRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, publisher events.MovementPublisher) *AdvanceService {
	return &AdvanceService{
		advanceRepo: advanceRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
	}
}

var _ portssvc.AdvanceSvcFacade = (*AdvanceService)(nil)

// CreateAdvance validates and persists the advance with its ledger debit.
func (s *AdvanceService) CreateAdvance(ctx context.Context, req dto.CreateAdvanceRequest, actorID string) (*domain.CashAdvance, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := domain.ParseCurrency(req.CurrencyCode)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("advance amount must be positive")
	}

	now := time.Now().UTC()
	advance := domain.CashAdvance{
		AdvanceID:  uuid.New().String(),
		PersonName: req.PersonName,
		Amount:     req.Amount,
		Currency:   currency,
		Concept:    req.Concept,
		Status:     domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	intent := domain.EntryIntent{
		Kind:        domain.KindCashAdvance,
		OperationID: advance.AdvanceID,
		Currency:    currency,
		Amount:      req.Amount,
		IsCredit:    false,
		Concept:     "Vale " + req.PersonName,
		CreatedBy:   actorID,
	}

	entry, err := s.advanceRepo.SaveAdvanceWithEntry(ctx, advance, intent)
	if err != nil {
		logger.Error("failed to save advance", "error", err, "advanceID", advance.AdvanceID)
		return nil, nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("advance created", "advanceID", advance.AdvanceID, "actorID", actorID)
	return &advance, entry, nil
}

// RegisterReturn credits a full or partial return against the advance. The
// returned total can never exceed the amount handed out.
func (s *AdvanceService) RegisterReturn(ctx context.Context, advanceID string, req dto.RegisterReturnRequest, actorID string) (*domain.CashAdvance, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	advance, err := s.advanceRepo.FindAdvanceByID(ctx, advanceID)
	if err != nil {
		return nil, nil, err
	}
	if advance.IsCancelled() {
		return nil, nil, apperrors.NewAppError(409, "advance "+advanceID+" is cancelled", apperrors.ErrConflict)
	}
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("return amount must be positive")
	}
	if req.Amount.GreaterThan(advance.Outstanding()) {
		return nil, nil, apperrors.NewValidationError(
			"return amount " + req.Amount.String() + " exceeds outstanding " + advance.Outstanding().String())
	}

	now := time.Now().UTC()
	advance.ReturnedAmount = advance.ReturnedAmount.Add(req.Amount)
	advance.LastUpdatedAt = now
	advance.LastUpdatedBy = actorID

	intent := domain.EntryIntent{
		Kind:        domain.KindCashReturn,
		OperationID: advanceID,
		Currency:    advance.Currency,
		Amount:      req.Amount,
		IsCredit:    true,
		Concept:     "Devolución vale " + advance.PersonName,
		CreatedBy:   actorID,
	}

	entry, err := s.advanceRepo.RegisterReturnWithEntry(ctx, *advance, intent)
	if err != nil {
		logger.Error("failed to register return", "error", err, "advanceID", advanceID)
		return nil, nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("advance return registered",
		"advanceID", advanceID, "amount", req.Amount.String(), "actorID", actorID)
	return advance, entry, nil
}

// CancelAdvance appends the compensating credit for an untouched advance
// and moves it to its terminal state.
func (s *AdvanceService) CancelAdvance(ctx context.Context, advanceID string, reason string, actorID string) (*domain.CashAdvance, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	advance, err := s.advanceRepo.FindAdvanceByID(ctx, advanceID)
	if err != nil {
		return nil, nil, err
	}
	if advance.IsCancelled() {
		return nil, nil, apperrors.NewAppError(409, "advance "+advanceID+" is already cancelled", apperrors.ErrConflict)
	}
	if advance.ReturnedAmount.IsPositive() {
		return nil, nil, apperrors.NewAppError(409,
			"advance "+advanceID+" has registered returns and cannot be cancelled", apperrors.ErrConflict)
	}

	originals, err := s.ledgerRepo.FindEntriesByOperation(ctx, advanceID, domain.KindCashAdvance)
	if err != nil {
		return nil, nil, err
	}
	if len(originals) != 1 {
		logger.Error("advance has unexpected ledger entry count",
			"advanceID", advanceID, "count", len(originals))
		return nil, nil, apperrors.NewAppError(500,
			"advance "+advanceID+" ledger entries are inconsistent", apperrors.ErrIntegrity)
	}

	intent := originals[0].CompensatingIntent(domain.KindAdvanceCancellation, "Anulación vale: "+reason, actorID)

	now := time.Now().UTC()
	advance.Status = domain.StatusCancelled
	advance.Concept = advance.Concept + domain.CancellationSuffix
	advance.LastUpdatedAt = now
	advance.LastUpdatedBy = actorID

	entry, err := s.advanceRepo.CancelAdvanceWithEntry(ctx, *advance, intent)
	if err != nil {
		logger.Error("failed to cancel advance", "error", err, "advanceID", advanceID)
		return nil, nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("advance cancelled", "advanceID", advanceID, "actorID", actorID)
	return advance, entry, nil
}

// ListAdvances retrieves a page of advances, newest first.
func (s *AdvanceService) ListAdvances(ctx context.Context, limit int, nextToken *string) (*dto.ListAdvancesResponse, error) {
	advances, token, err := s.advanceRepo.ListAdvances(ctx, limit, nextToken)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdvanceResponse, len(advances))
	for i := range advances {
		responses[i] = dto.ToAdvanceResponse(&advances[i])
	}
	return &dto.ListAdvancesResponse{Advances: responses, NextToken: token}, nil
}

func (s *AdvanceService) publishMovements(ctx context.Context, entries []domain.LedgerEntry) {
	if err := s.publisher.PublishMovements(ctx, entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to publish movement events", "error", err)
	}
}
