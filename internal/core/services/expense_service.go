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

// ExpenseService orchestrates expenses. Central-cash expenses propagate to
// two ledgers in one unit: a debit on the caja mayor and an inverted mirror
// row on the pharmacy sheet.
type ExpenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	publisher   events.MovementPublisher
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, publisher events.MovementPublisher) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
	}
}

var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

// CreateExpense validates and persists the expense. When it draws from
// central cash the caja mayor debit and the pharmacy mirror row commit in
// the same unit as the expense itself.
func (s *ExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := domain.ParseCurrency(req.CurrencyCode)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("expense amount must be positive")
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:            uuid.New().String(),
		Category:             req.Category,
		Concept:              req.Concept,
		Amount:               req.Amount,
		Currency:             currency,
		DrawsFromCentralCash: req.DrawsFromCentralCash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	var intent *domain.EntryIntent
	var mirror *domain.PharmacyEntry
	if expense.DrawsFromCentralCash {
		intent = &domain.EntryIntent{
			Kind:        domain.KindExpense,
			OperationID: expense.ExpenseID,
			Currency:    currency,
			Amount:      req.Amount,
			IsCredit:    false,
			Concept:     expense.Concept,
			CreatedBy:   actorID,
		}
		mirror = s.mirrorFor(expense, now, actorID)
	}

	entry, err := s.expenseRepo.SaveExpense(ctx, expense, intent, mirror)
	if err != nil {
		logger.Error("failed to save expense", "error", err, "expenseID", expense.ExpenseID)
		return nil, nil, err
	}

	if entry != nil {
		s.publishMovements(ctx, []domain.LedgerEntry{*entry})
	}

	logger.Info("expense created",
		"expenseID", expense.ExpenseID,
		"centralCash", expense.DrawsFromCentralCash, "actorID", actorID)
	return &expense, entry, nil
}

// UpdateExpense applies the changed fields. A central-cash expense is never
// corrected in place on the ledger: the original entry is reversed and a
// fresh entry for the corrected values is appended, so the correction
// itself stays visible in the movement history.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Concept != nil {
		expense.Concept = *req.Concept
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewValidationError("expense amount must be positive")
		}
		expense.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		currency, err := domain.ParseCurrency(*req.CurrencyCode)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		expense.Currency = currency
	}

	now := time.Now().UTC()
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actorID

	if !expense.DrawsFromCentralCash {
		if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
			logger.Error("failed to update expense", "error", err, "expenseID", expenseID)
			return nil, err
		}
		logger.Info("expense updated", "expenseID", expenseID, "actorID", actorID)
		return expense, nil
	}

	original, err := s.currentLedgerEntry(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	intents := []domain.EntryIntent{
		original.CompensatingIntent(domain.KindExpenseReversal, "Corrección gasto: "+expense.Concept, actorID),
		{
			Kind:        domain.KindExpense,
			OperationID: expenseID,
			Currency:    expense.Currency,
			Amount:      expense.Amount,
			IsCredit:    false,
			Concept:     expense.Concept,
			CreatedBy:   actorID,
		},
	}

	entries, err := s.expenseRepo.UpdateExpenseWithCorrection(ctx, *expense, intents, s.mirrorFor(*expense, now, actorID))
	if err != nil {
		logger.Error("failed to correct expense", "error", err, "expenseID", expenseID)
		return nil, err
	}

	s.publishMovements(ctx, entries)

	logger.Info("expense corrected", "expenseID", expenseID, "actorID", actorID)
	return expense, nil
}

// DeleteExpense removes the expense. For a central-cash expense the caja
// mayor gets a compensating credit and the pharmacy mirror rows are
// deleted; the compensating entry is the only trace that survives.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string, actorID string) (*dto.DeleteExpenseResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if !expense.DrawsFromCentralCash {
		if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
			return nil, err
		}
		logger.Info("expense deleted", "expenseID", expenseID, "actorID", actorID)
		return &dto.DeleteExpenseResponse{ExpenseID: expenseID, CentralCashPath: false}, nil
	}

	original, err := s.currentLedgerEntry(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	intent := original.CompensatingIntent(domain.KindExpenseReversal, "Anulación gasto: "+expense.Concept, actorID)
	entry, err := s.expenseRepo.DeleteExpenseWithReversal(ctx, expenseID, intent)
	if err != nil {
		logger.Error("failed to delete expense with reversal", "error", err, "expenseID", expenseID)
		return nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("expense deleted with reversal", "expenseID", expenseID, "actorID", actorID)
	entryResp := dto.ToLedgerEntryResponse(*entry)
	return &dto.DeleteExpenseResponse{
		ExpenseID:         expenseID,
		CentralCashPath:   true,
		CompensatingEntry: &entryResp,
	}, nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

// ListExpenses retrieves a page of expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	expenses, nextToken, err := s.expenseRepo.ListExpenses(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = dto.ToExpenseResponse(&expenses[i])
	}
	return &dto.ListExpensesResponse{Expenses: responses, NextToken: nextToken}, nil
}

// VerifyLedgerLink cross-checks the stored central-cash flag against the
// caja mayor. A disagreement is reported, never repaired.
func (s *ExpenseService) VerifyLedgerLink(ctx context.Context, expenseID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}

	hasEntry, err := s.expenseRepo.HasCentralLedgerEntry(ctx, expenseID)
	if err != nil {
		return err
	}

	if expense.DrawsFromCentralCash != hasEntry {
		return apperrors.NewAppError(500,
			"expense "+expenseID+" central-cash flag disagrees with the ledger", apperrors.ErrIntegrity)
	}
	return nil
}

// currentLedgerEntry returns the expense's live caja mayor entry: the last
// KindExpense entry carrying the bare expense ID, which after corrections
// is the most recent re-post.
func (s *ExpenseService) currentLedgerEntry(ctx context.Context, expenseID string) (*domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindEntriesByOperation(ctx, expenseID, domain.KindExpense)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewAppError(500,
			"expense "+expenseID+" draws from central cash but has no ledger entry", apperrors.ErrIntegrity)
	}
	return &entries[len(entries)-1], nil
}

// mirrorFor builds the pharmacy mirror row: same concept and currency, sign
// inverted so the expense reads as an outflow on the pharmacy sheet.
func (s *ExpenseService) mirrorFor(expense domain.Expense, at time.Time, actorID string) *domain.PharmacyEntry {
	expenseID := expense.ExpenseID
	return &domain.PharmacyEntry{
		Concept:   expense.Concept,
		Amount:    expense.Amount.Neg(),
		Currency:  expense.Currency,
		ExpenseID: &expenseID,
		CreatedAt: at,
		CreatedBy: actorID,
	}
}

func (s *ExpenseService) publishMovements(ctx context.Context, entries []domain.LedgerEntry) {
	if err := s.publisher.PublishMovements(ctx, entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to publish movement events", "error", err)
	}
}
