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

// ServicePaymentService orchestrates Aquipago and Wepa payouts against the
// ledger.
type ServicePaymentService struct {
	paymentRepo portsrepo.ServicePaymentRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	publisher   events.MovementPublisher
}

// NewServicePaymentService creates a new ServicePaymentService.
func NewServicePaymentService(paymentRepo portsrepo.ServicePaymentRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, publisher events.MovementPublisher) *ServicePaymentService {
	return &ServicePaymentService{
		paymentRepo: paymentRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
	}
}

var _ portssvc.ServicePaymentSvcFacade = (*ServicePaymentService)(nil)

// CreatePayment validates and persists the payout with its ledger debit.
func (s *ServicePaymentService) CreatePayment(ctx context.Context, req dto.CreateServicePaymentRequest, actorID string) (*domain.ServicePayment, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	provider := domain.ServiceProvider(req.Provider)
	if !provider.IsValid() {
		return nil, nil, apperrors.NewValidationError("unknown service provider " + req.Provider)
	}
	currency, err := domain.ParseCurrency(req.CurrencyCode)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("payment amount must be positive")
	}

	now := time.Now().UTC()
	payment := domain.ServicePayment{
		PaymentID:     uuid.New().String(),
		Provider:      provider,
		VoucherNumber: req.VoucherNumber,
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
		Kind:        domain.KindServicePayment,
		OperationID: payment.PaymentID,
		Currency:    currency,
		Amount:      req.Amount,
		IsCredit:    false,
		Concept:     "Pago " + string(provider) + " comprobante " + req.VoucherNumber,
		CreatedBy:   actorID,
	}

	entry, err := s.paymentRepo.SavePaymentWithEntry(ctx, payment, intent)
	if err != nil {
		logger.Error("failed to save service payment", "error", err, "paymentID", payment.PaymentID)
		return nil, nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("service payment created",
		"paymentID", payment.PaymentID, "provider", string(provider), "actorID", actorID)
	return &payment, entry, nil
}

// CancelPayment appends the compensating credit for an active payment and
// moves it to its terminal state.
func (s *ServicePaymentService) CancelPayment(ctx context.Context, paymentID string, reason string, actorID string) (*domain.ServicePayment, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	if payment.IsCancelled() {
		return nil, nil, apperrors.NewAppError(409, "service payment "+paymentID+" is already cancelled", apperrors.ErrConflict)
	}

	originals, err := s.ledgerRepo.FindEntriesByOperation(ctx, paymentID, domain.KindServicePayment)
	if err != nil {
		return nil, nil, err
	}
	if len(originals) != 1 {
		logger.Error("service payment has unexpected ledger entry count",
			"paymentID", paymentID, "count", len(originals))
		return nil, nil, apperrors.NewAppError(500,
			"service payment "+paymentID+" ledger entries are inconsistent", apperrors.ErrIntegrity)
	}

	intent := originals[0].CompensatingIntent(domain.KindServicePaymentCancellation, "Anulación pago servicio: "+reason, actorID)

	now := time.Now().UTC()
	payment.Status = domain.StatusCancelled
	payment.Concept = payment.Concept + domain.CancellationSuffix
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = actorID

	entry, err := s.paymentRepo.CancelPaymentWithEntry(ctx, *payment, intent)
	if err != nil {
		logger.Error("failed to cancel service payment", "error", err, "paymentID", paymentID)
		return nil, nil, err
	}

	s.publishMovements(ctx, []domain.LedgerEntry{*entry})

	logger.Info("service payment cancelled", "paymentID", paymentID, "actorID", actorID)
	return payment, entry, nil
}

// ListPayments retrieves a page of payments, optionally filtered by
// provider, newest first.
func (s *ServicePaymentService) ListPayments(ctx context.Context, provider *domain.ServiceProvider, limit int, nextToken *string) (*dto.ListServicePaymentsResponse, error) {
	payments, token, err := s.paymentRepo.ListPayments(ctx, provider, limit, nextToken)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ServicePaymentResponse, len(payments))
	for i := range payments {
		responses[i] = dto.ToServicePaymentResponse(&payments[i])
	}
	return &dto.ListServicePaymentsResponse{Payments: responses, NextToken: token}, nil
}

func (s *ServicePaymentService) publishMovements(ctx context.Context, entries []domain.LedgerEntry) {
	if err := s.publisher.PublishMovements(ctx, entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to publish movement events", "error", err)
	}
}
