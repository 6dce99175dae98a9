package services

import (
	"context"
	"errors"
	"time"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/cajacentral/caja_backend/internal/utils"
	"github.com/cajacentral/caja_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ReportingService aggregates multi-currency activity into guaraníes.
// Conversions are historical: each foreign entry converts at the rate that
// was in effect when the entry was written, not at today's rate, so a
// figure computed for a closed period never drifts as rates move.
type ReportingService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	pharmacyRepo portsrepo.PharmacyRepositoryFacade
	rateSvc      portssvc.RateSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(ledgerRepo portsrepo.LedgerRepositoryFacade, pharmacyRepo portsrepo.PharmacyRepositoryFacade, rateSvc portssvc.RateSvcFacade) *ReportingService {
	return &ReportingService{
		ledgerRepo:   ledgerRepo,
		pharmacyRepo: pharmacyRepo,
		rateSvc:      rateSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// TotalInGuaranies sums the matching entries, converting each foreign entry
// at the rate resolved for that entry's own timestamp.
func (s *ReportingService) TotalInGuaranies(ctx context.Context, filter domain.EntryFilter) (decimal.Decimal, error) {
	entries, err := s.ledgerRepo.FindEntriesForAggregation(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}

	memo := newRateMemo(s.rateSvc)
	total := decimal.Zero
	for _, entry := range entries {
		rates := domain.ExchangeRateSnapshot{}
		if entry.Currency != domain.ReportingCurrency {
			rates, err = memo.resolve(ctx, entry.CreatedAt)
			if err != nil {
				return decimal.Zero, err
			}
		}
		total = total.Add(accounting.ConvertToGuaranies(entry, rates))
	}
	return total, nil
}

// Balances reports each drawer's latest running balance plus the
// consolidated guaraní total at current rates.
func (s *ReportingService) Balances(ctx context.Context) (*dto.BalancesResponse, error) {
	current, err := s.rateSvc.Current(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]dto.CurrencyBalance, 0, len(domain.SupportedCurrencies()))
	total := decimal.Zero
	for _, currency := range domain.SupportedCurrencies() {
		balance := decimal.Zero

		tail, err := s.ledgerRepo.FindLastEntry(ctx, currency)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if tail != nil {
			balance = tail.BalanceAfter
		}

		balances = append(balances, dto.CurrencyBalance{
			CurrencyCode: currency.ISOCode(),
			Balance:      balance,
			Formatted:    utils.FormatWithCurrencyPrecision(balance, currency),
		})

		if currency == domain.ReportingCurrency {
			total = total.Add(balance)
		} else {
			total = total.Add(balance.Mul(current.RateFor(currency)))
		}
	}

	return &dto.BalancesResponse{Balances: balances, TotalGuaranies: total}, nil
}

// ListPharmacyMovements pages through the shadow ledger. The consolidated
// total covers the full sheet, not just the returned page, because the
// pharmacy balance is a present-state figure; it is computed on the first
// page only and omitted on continuation pages.
func (s *ReportingService) ListPharmacyMovements(ctx context.Context, limit int, nextToken *string) (*dto.ListPharmacyEntriesResponse, error) {
	page, token, err := s.pharmacyRepo.ListEntries(ctx, limit, nextToken)
	if err != nil {
		return nil, err
	}

	var total *decimal.Decimal
	if nextToken == nil || *nextToken == "" {
		all, err := s.pharmacyRepo.FindEntriesForAggregation(ctx, nil, nil)
		if err != nil {
			return nil, err
		}

		memo := newRateMemo(s.rateSvc)
		sheetTotal := decimal.Zero
		for _, entry := range all {
			rates := domain.ExchangeRateSnapshot{}
			if entry.Currency != domain.ReportingCurrency {
				rates, err = memo.resolve(ctx, entry.CreatedAt)
				if err != nil {
					return nil, err
				}
			}
			sheetTotal = sheetTotal.Add(accounting.ConvertPharmacyToGuaranies(entry, rates))
		}
		total = &sheetTotal
	}

	responses := make([]dto.PharmacyEntryResponse, len(page))
	for i, entry := range page {
		responses[i] = dto.ToPharmacyEntryResponse(entry)
	}

	return &dto.ListPharmacyEntriesResponse{
		Entries:        responses,
		TotalGuaranies: total,
		NextToken:      token,
	}, nil
}

// rateMemo caches resolver results per calendar day within one aggregation
// pass. The cascade only depends on the day an entry was written, so two
// entries from the same day always resolve to the same snapshot.
type rateMemo struct {
	rateSvc portssvc.RateSvcFacade
	byDay   map[string]domain.ExchangeRateSnapshot
}

func newRateMemo(rateSvc portssvc.RateSvcFacade) *rateMemo {
	return &rateMemo{rateSvc: rateSvc, byDay: make(map[string]domain.ExchangeRateSnapshot)}
}

func (m *rateMemo) resolve(ctx context.Context, at time.Time) (domain.ExchangeRateSnapshot, error) {
	day := at.Format("2006-01-02")
	if rates, ok := m.byDay[day]; ok {
		return rates, nil
	}
	rates, err := m.rateSvc.Resolve(ctx, at)
	if err != nil {
		return domain.ExchangeRateSnapshot{}, err
	}
	m.byDay[day] = rates
	return rates, nil
}
