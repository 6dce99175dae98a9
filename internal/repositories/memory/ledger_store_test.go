package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func creditIntent(opID string, currency domain.Currency, amount int64) domain.EntryIntent {
	return domain.EntryIntent{
		Kind:        domain.KindAdjustment,
		OperationID: opID,
		Currency:    currency,
		Amount:      decimal.NewFromInt(amount),
		IsCredit:    true,
		Concept:     "ajuste " + opID,
		CreatedBy:   "tester",
	}
}

func TestAppendEntry_FirstEntryStartsFromZero(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	entry, err := store.AppendEntry(ctx, creditIntent("op-1", domain.Guaranies, 1000))
	require.NoError(t, err)

	assert.True(t, entry.BalanceBefore.IsZero())
	assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, int64(1), entry.EntryID)
}

func TestAppendEntry_BalancesChainPerCurrency(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	_, err := store.AppendEntry(ctx, creditIntent("op-1", domain.Guaranies, 1000))
	require.NoError(t, err)
	_, err = store.AppendEntry(ctx, creditIntent("op-2", domain.Dolares, 50))
	require.NoError(t, err)

	entry, err := store.AppendEntry(ctx, domain.EntryIntent{
		Kind:        domain.KindExpense,
		OperationID: "op-3",
		Currency:    domain.Guaranies,
		Amount:      decimal.NewFromInt(300),
		IsCredit:    false,
		Concept:     "gasto",
		CreatedBy:   "tester",
	})
	require.NoError(t, err)

	// The dollar entry must not leak into the guaraní chain.
	assert.True(t, entry.BalanceBefore.Equal(decimal.NewFromInt(1000)))
	assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(700)))
}

func TestAppendEntry_RejectsInvalidIntent(t *testing.T) {
	store := memory.NewLedgerStore()

	_, err := store.AppendEntry(context.Background(), domain.EntryIntent{
		Kind:        domain.KindAdjustment,
		OperationID: "op-bad",
		Currency:    domain.Guaranies,
		Amount:      decimal.NewFromInt(-5),
		Concept:     "negativo",
		CreatedBy:   "tester",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestAppendEntry_ConcurrentAppendsKeepChainGapFree(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				opID := fmt.Sprintf("op-%d-%d", w, i)
				_, err := store.AppendEntry(ctx, creditIntent(opID, domain.Guaranies, 10))
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	entries := store.EntriesByCurrency(domain.Guaranies)
	require.Len(t, entries, workers*perWorker)

	prev := decimal.Zero
	for i, e := range entries {
		require.True(t, e.BalanceBefore.Equal(prev),
			"entry %d: balanceBefore %s does not continue previous balanceAfter %s", i, e.BalanceBefore, prev)
		prev = e.BalanceAfter
	}
	assert.True(t, prev.Equal(decimal.NewFromInt(workers*perWorker*10)))
}

func TestFindEntriesByOperation_ExcludesCompensatingEntries(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	original, err := store.AppendEntry(ctx, domain.EntryIntent{
		Kind:        domain.KindExpense,
		OperationID: "exp-1",
		Currency:    domain.Guaranies,
		Amount:      decimal.NewFromInt(500),
		IsCredit:    false,
		Concept:     "gasto",
		CreatedBy:   "tester",
	})
	require.NoError(t, err)

	_, err = store.AppendEntry(ctx, original.CompensatingIntent(domain.KindExpenseReversal, "anulación gasto", "tester"))
	require.NoError(t, err)

	found, err := store.FindEntriesByOperation(ctx, "exp-1", domain.KindExpense)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, original.EntryID, found[0].EntryID)

	reversals, err := store.FindEntriesByOperation(ctx, domain.CancellationOperationID("exp-1"), domain.KindExpenseReversal)
	require.NoError(t, err)
	assert.Len(t, reversals, 1)
}

func TestListEntries_PaginatesNewestFirst(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.AppendEntry(ctx, creditIntent(fmt.Sprintf("op-%d", i), domain.Guaranies, 100))
		require.NoError(t, err)
	}

	page1, token, err := store.ListEntries(ctx, domain.EntryFilter{}, 2, nil)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, token)
	assert.Equal(t, int64(5), page1[0].EntryID)
	assert.Equal(t, int64(4), page1[1].EntryID)

	page2, token2, err := store.ListEntries(ctx, domain.EntryFilter{}, 2, token)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	require.NotNil(t, token2)
	assert.Equal(t, int64(3), page2[0].EntryID)

	page3, token3, err := store.ListEntries(ctx, domain.EntryFilter{}, 2, token2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Nil(t, token3)
}
