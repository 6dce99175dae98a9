package pgsql

import (
	"errors"
	"testing"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func lockedAdvance(amount, returned int64, status domain.OperationStatus) models.CashAdvance {
	return models.CashAdvance{
		AdvanceID:      "adv-1",
		PersonName:     "Juan Benítez",
		Amount:         decimal.NewFromInt(amount),
		ReturnedAmount: decimal.NewFromInt(returned),
		Currency:       string(domain.Guaranies),
		Status:         string(status),
	}
}

func TestCheckReturnAllowed_PartialReturnWithinOutstanding(t *testing.T) {
	locked := lockedAdvance(100000, 30000, domain.StatusActive)

	err := checkReturnAllowed(locked, decimal.NewFromInt(70000))

	assert.NoError(t, err)
}

func TestCheckReturnAllowed_ConcurrentReturnExceedsOutstanding(t *testing.T) {
	// The caller validated against a stale read; a racing return already
	// brought the row to 60000 returned of 100000.
	locked := lockedAdvance(100000, 60000, domain.StatusActive)

	err := checkReturnAllowed(locked, decimal.NewFromInt(60000))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestCheckReturnAllowed_CancelledRowRejectsReturn(t *testing.T) {
	locked := lockedAdvance(100000, 0, domain.StatusCancelled)

	err := checkReturnAllowed(locked, decimal.NewFromInt(10000))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestCheckCancelAllowed_ActiveUntouchedAdvance(t *testing.T) {
	locked := lockedAdvance(100000, 0, domain.StatusActive)

	assert.NoError(t, checkCancelAllowed(locked))
}

func TestCheckCancelAllowed_AlreadyCancelledRowConflicts(t *testing.T) {
	locked := lockedAdvance(100000, 0, domain.StatusCancelled)

	err := checkCancelAllowed(locked)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestCheckCancelAllowed_ConcurrentReturnBlocksCancel(t *testing.T) {
	// A return committed between the caller's read and the row lock.
	locked := lockedAdvance(100000, 25000, domain.StatusActive)

	err := checkCancelAllowed(locked)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}
