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

// DepositService orchestrates bank deposits. Depositing takes cash out of
// the caja mayor, so creation debits the drawer and cancellation credits it
// back.
type DepositService struct {
	depositRepo portsrepo.DepositRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	publisher   events.MovementPublisher
}

// NewDepositService creates a new DepositService.
func NewDepositService(depositRepo portsrepo.DepositRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, publisher events.MovementPublisher) *DepositService {
	return &DepositService{
		depositRepo: depositRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
	}
}

var _ portssvc.DepositSvcFacade = (*DepositService)(nil)

// CreateDeposit validates and persists the deposit with its ledger debit.
func (s *DepositService) CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, actorID string) (*domain.BankDeposit, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := domain.ParseCurrency(req.CurrencyCode)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("deposit amount must be positive")
	}

	now := time.Now().UTC()
	deposit := domain.BankDeposit{
		DepositID:     uuid.New().String(),
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		ReceiptNumber: req.ReceiptNumber,
		Amount:        req.Amount,
		Currency:      currency,
		Concept:       req.Concept,
		Status:        domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	intent := domain.EntryIntent{
		Kind:        domain.KindDeposit,
		OperationID: deposit.DepositID,
		Currency:    currency,
		Amount:      req.Amount,
		IsCredit:    false,
		Concept:     "Depósito " + req.BankName + " recibo " + req.ReceiptNumber,
		CreatedBy:   actorID,
	}

	entry, err := s.depositRepo.SaveDepositWithEntry(ctx, deposit, intent)
	if err != nil {
		logger.Error("failed to save deposit", "error", err, "depositID", deposit.DepositID)
		return nil, nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("deposit created", "depositID", deposit.DepositID, "actorID", actorID)
	return &deposit, entry, nil
}

// CancelDeposit appends the compensating credit for an active deposit and
// moves it to its terminal state.
func (s *DepositService) CancelDeposit(ctx context.Context, depositID string, reason string, actorID string) (*domain.BankDeposit, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deposit, err := s.depositRepo.FindDepositByID(ctx, depositID)
	if err != nil {
		return nil, nil, err
	}
	if deposit.IsCancelled() {
		return nil, nil, apperrors.NewAppError(409, "deposit "+depositID+" is already cancelled", apperrors.ErrConflict)
	}

	originals, err := s.ledgerRepo.FindEntriesByOperation(ctx, depositID, domain.KindDeposit)
	if err != nil {
		return nil, nil, err
	}
	if len(originals) != 1 {
		logger.Error("deposit has unexpected ledger entry count",
			"depositID", depositID, "count", len(originals))
		return nil, nil, apperrors.NewAppError(500,
			"deposit "+depositID+" ledger entries are inconsistent", apperrors.ErrIntegrity)
	}

	intent := originals[0].CompensatingIntent(domain.KindDepositCancellation, "Anulación depósito: "+reason, actorID)

	now := time.Now().UTC()
	deposit.Status = domain.StatusCancelled
	deposit.Concept = deposit.Concept + domain.CancellationSuffix
	deposit.LastUpdatedAt = now
	deposit.LastUpdatedBy = actorID

	entry, err := s.depositRepo.CancelDepositWithEntry(ctx, *deposit, intent)
	if err != nil {
		logger.Error("failed to cancel deposit", "error", err, "depositID", depositID)
		return nil, nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("deposit cancelled", "depositID", depositID, "actorID", actorID)
	return deposit, entry, nil
}

// ListDeposits retrieves a page of deposits, newest first.
func (s *DepositService) ListDeposits(ctx context.Context, limit int, nextToken *string) (*dto.ListDepositsResponse, error) {
	deposits, token, err := s.depositRepo.ListDeposits(ctx, limit, nextToken)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DepositResponse, len(deposits))
	for i := range deposits {
		responses[i] = dto.ToDepositResponse(&deposits[i])
	}
	return &dto.ListDepositsResponse{Deposits: responses, NextToken: token}, nil
}

func (s *DepositService) publishMovements(ctx context.Context, entries []domain.LedgerEntry) {
	if err := s.publisher.PublishMovements(ctx, entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to publish movement events", "error", err)
	}
}
