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

// ExchangeService orchestrates currency exchanges against the ledger.
type ExchangeService struct {
	exchangeRepo portsrepo.ExchangeRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	publisher    events.MovementPublisher
}

// NewExchangeService creates a new ExchangeService.
func NewExchangeService(exchangeRepo portsrepo.ExchangeRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, publisher events.MovementPublisher) *ExchangeService {
	return &ExchangeService{
		exchangeRepo: exchangeRepo,
		ledgerRepo:   ledgerRepo,
		publisher:    publisher,
	}
}

var _ portssvc.ExchangeSvcFacade = (*ExchangeService)(nil)

// CreateExchange validates the request and persists the exchange together
// with its two ledger entries: a debit on the source drawer and a credit on
// the destination drawer, in that order.
func (s *ExchangeService) CreateExchange(ctx context.Context, req dto.CreateExchangeRequest, actorID string) (*domain.CurrencyExchange, []domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := domain.ParseCurrency(req.SourceCurrency)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	dest, err := domain.ParseCurrency(req.DestCurrency)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	if source == dest {
		return nil, nil, apperrors.NewValidationError("source and destination currency must differ")
	}
	if !req.Amount.IsPositive() || !req.ResultAmount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("exchange amounts must be positive")
	}
	if !req.Rate.IsPositive() {
		return nil, nil, apperrors.NewValidationError("exchange rate must be positive")
	}

	now := time.Now().UTC()
	exchange := domain.CurrencyExchange{
		ExchangeID:     uuid.New().String(),
		SourceCurrency: source,
		DestCurrency:   dest,
		Amount:         req.Amount,
		Rate:           req.Rate,
		ResultAmount:   req.ResultAmount,
		Concept:        req.Concept,
		Status:         domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	intents := []domain.EntryIntent{
		{
			Kind:        domain.KindExchange,
			OperationID: exchange.ExchangeID,
			Currency:    source,
			Amount:      req.Amount,
			IsCredit:    false,
			Concept:     exchange.Concept,
			CreatedBy:   actorID,
		},
		{
			Kind:        domain.KindExchange,
			OperationID: exchange.ExchangeID,
			Currency:    dest,
			Amount:      req.ResultAmount,
			IsCredit:    true,
			Concept:     exchange.Concept,
			CreatedBy:   actorID,
		},
	}

	entries, err := s.exchangeRepo.SaveExchangeWithEntries(ctx, exchange, intents)
	if err != nil {
		logger.Error("failed to save exchange", "error", err, "exchangeID", exchange.ExchangeID)
		return nil, nil, err
	}

	s.publishMovements(ctx, entries)

	logger.Info("exchange created",
		"exchangeID", exchange.ExchangeID,
		"source", string(source), "dest", string(dest), "actorID", actorID)
	return &exchange, entries, nil
}

// CancelExchange appends the compensating pair for an active exchange and
// moves it to its terminal state. The original entries are never touched.
func (s *ExchangeService) CancelExchange(ctx context.Context, exchangeID string, reason string, actorID string) (*portssvc.ExchangeCancellation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exchange, err := s.exchangeRepo.FindExchangeByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange.IsCancelled() {
		return nil, apperrors.NewAppError(409, "exchange "+exchangeID+" is already cancelled", apperrors.ErrConflict)
	}

	originals, err := s.ledgerRepo.FindEntriesByOperation(ctx, exchangeID, domain.KindExchange)
	if err != nil {
		return nil, err
	}
	// An exchange writes exactly two entries. Anything else means the
	// stored data cannot be trusted for a reversal.
	if len(originals) != 2 {
		logger.Error("exchange has unexpected ledger entry count",
			"exchangeID", exchangeID, "count", len(originals))
		return nil, apperrors.NewAppError(500,
			"exchange "+exchangeID+" ledger entries are inconsistent", apperrors.ErrIntegrity)
	}

	cancelConcept := "Anulación cambio: " + reason
	intents := make([]domain.EntryIntent, 0, len(originals))
	for _, original := range originals {
		intents = append(intents, original.CompensatingIntent(domain.KindExchangeCancellation, cancelConcept, actorID))
	}

	now := time.Now().UTC()
	exchange.Status = domain.StatusCancelled
	exchange.Concept = exchange.Concept + domain.CancellationSuffix
	exchange.GroupID = nil
	exchange.LastUpdatedAt = now
	exchange.LastUpdatedBy = actorID

	compensating, err := s.exchangeRepo.CancelExchangeWithEntries(ctx, *exchange, intents)
	if err != nil {
		logger.Error("failed to cancel exchange", "error", err, "exchangeID", exchangeID)
		return nil, err
	}

	s.publishMovements(ctx, compensating)

	logger.Info("exchange cancelled", "exchangeID", exchangeID, "actorID", actorID)
	return &portssvc.ExchangeCancellation{
		Exchange:            exchange,
		OriginalEntries:     originals,
		CompensatingEntries: compensating,
	}, nil
}

// GetExchange retrieves an exchange by ID.
func (s *ExchangeService) GetExchange(ctx context.Context, exchangeID string) (*domain.CurrencyExchange, error) {
	return s.exchangeRepo.FindExchangeByID(ctx, exchangeID)
}

// ListExchanges retrieves a page of exchanges, newest first.
func (s *ExchangeService) ListExchanges(ctx context.Context, params dto.ListExchangesParams) (*dto.ListExchangesResponse, error) {
	exchanges, nextToken, err := s.exchangeRepo.ListExchanges(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ExchangeResponse, len(exchanges))
	for i := range exchanges {
		responses[i] = dto.ToExchangeResponse(&exchanges[i])
	}
	return &dto.ListExchangesResponse{Exchanges: responses, NextToken: nextToken}, nil
}

// publishMovements is best-effort: a publish failure is logged, never
// surfaced, because the entries are already committed.
func (s *ExchangeService) publishMovements(ctx context.Context, entries []domain.LedgerEntry) {
	if err := s.publisher.PublishMovements(ctx, entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to publish movement events", "error", err)
	}
}
