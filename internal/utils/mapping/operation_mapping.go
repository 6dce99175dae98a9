package mapping

import (
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/internal/models"
)

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// ToModelExchange converts a domain exchange to its row shape.
func ToModelExchange(e domain.CurrencyExchange) models.CurrencyExchange {
	return models.CurrencyExchange{
		ExchangeID:     e.ExchangeID,
		SourceCurrency: string(e.SourceCurrency),
		DestCurrency:   string(e.DestCurrency),
		Amount:         e.Amount,
		Rate:           e.Rate,
		ResultAmount:   e.ResultAmount,
		Concept:        e.Concept,
		Status:         string(e.Status),
		GroupID:        e.GroupID,
		AuditFields:    toModelAudit(e.AuditFields),
	}
}

// ToDomainExchange converts an exchange row to its domain shape.
func ToDomainExchange(m models.CurrencyExchange) domain.CurrencyExchange {
	return domain.CurrencyExchange{
		ExchangeID:     m.ExchangeID,
		SourceCurrency: domain.Currency(m.SourceCurrency),
		DestCurrency:   domain.Currency(m.DestCurrency),
		Amount:         m.Amount,
		Rate:           m.Rate,
		ResultAmount:   m.ResultAmount,
		Concept:        m.Concept,
		Status:         domain.OperationStatus(m.Status),
		GroupID:        m.GroupID,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

// ToModelExpense converts a domain expense to its row shape.
func ToModelExpense(e domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:            e.ExpenseID,
		Category:             e.Category,
		Concept:              e.Concept,
		Amount:               e.Amount,
		Currency:             string(e.Currency),
		DrawsFromCentralCash: e.DrawsFromCentralCash,
		AuditFields:          toModelAudit(e.AuditFields),
	}
}

// ToDomainExpense converts an expense row to its domain shape.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:            m.ExpenseID,
		Category:             m.Category,
		Concept:              m.Concept,
		Amount:               m.Amount,
		Currency:             domain.Currency(m.Currency),
		DrawsFromCentralCash: m.DrawsFromCentralCash,
		AuditFields:          toDomainAudit(m.AuditFields),
	}
}

// ToModelDeposit converts a domain deposit to its row shape.
func ToModelDeposit(d domain.BankDeposit) models.BankDeposit {
	return models.BankDeposit{
		DepositID:     d.DepositID,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		ReceiptNumber: d.ReceiptNumber,
		Amount:        d.Amount,
		Currency:      string(d.Currency),
		Concept:       d.Concept,
		Status:        string(d.Status),
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainDeposit converts a deposit row to its domain shape.
func ToDomainDeposit(m models.BankDeposit) domain.BankDeposit {
	return domain.BankDeposit{
		DepositID:     m.DepositID,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		ReceiptNumber: m.ReceiptNumber,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		Concept:       m.Concept,
		Status:        domain.OperationStatus(m.Status),
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToModelAdvance converts a domain advance to its row shape.
func ToModelAdvance(a domain.CashAdvance) models.CashAdvance {
	return models.CashAdvance{
		AdvanceID:      a.AdvanceID,
		PersonName:     a.PersonName,
		Amount:         a.Amount,
		ReturnedAmount: a.ReturnedAmount,
		Currency:       string(a.Currency),
		Concept:        a.Concept,
		Status:         string(a.Status),
		AuditFields:    toModelAudit(a.AuditFields),
	}
}

// ToDomainAdvance converts an advance row to its domain shape.
func ToDomainAdvance(m models.CashAdvance) domain.CashAdvance {
	return domain.CashAdvance{
		AdvanceID:      m.AdvanceID,
		PersonName:     m.PersonName,
		Amount:         m.Amount,
		ReturnedAmount: m.ReturnedAmount,
		Currency:       domain.Currency(m.Currency),
		Concept:        m.Concept,
		Status:         domain.OperationStatus(m.Status),
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

// ToModelServicePayment converts a domain payment to its row shape.
func ToModelServicePayment(p domain.ServicePayment) models.ServicePayment {
	return models.ServicePayment{
		PaymentID:     p.PaymentID,
		Provider:      string(p.Provider),
		VoucherNumber: p.VoucherNumber,
		Amount:        p.Amount,
		Currency:      string(p.Currency),
		Concept:       p.Concept,
		Status:        string(p.Status),
		AuditFields:   toModelAudit(p.AuditFields),
	}
}

// ToDomainServicePayment converts a payment row to its domain shape.
func ToDomainServicePayment(m models.ServicePayment) domain.ServicePayment {
	return domain.ServicePayment{
		PaymentID:     m.PaymentID,
		Provider:      domain.ServiceProvider(m.Provider),
		VoucherNumber: m.VoucherNumber,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		Concept:       m.Concept,
		Status:        domain.OperationStatus(m.Status),
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToDomainRateSnapshot converts a cotización row to its domain shape.
func ToDomainRateSnapshot(m models.ExchangeRateSnapshot) domain.ExchangeRateSnapshot {
	return domain.ExchangeRateSnapshot{
		SnapshotID:  m.SnapshotID,
		EffectiveAt: m.EffectiveAt,
		RateDolar:   m.RateDolar,
		RateReal:    m.RateReal,
		IsCurrent:   m.IsCurrent,
		CreatedAt:   m.CreatedAt,
	}
}
