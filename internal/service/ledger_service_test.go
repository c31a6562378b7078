package service

import (
	"sync"
	"testing"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStock_PairsLogWithCounter(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 0)

	entry, err := env.ledger.AdjustStock(variant.ID, 5, model.StockChangeIncoming, "restock")
	require.NoError(t, err)

	assert.Equal(t, 0, entry.BeforeStock)
	assert.Equal(t, 5, entry.AfterStock)
	assert.Equal(t, 5, env.variantStock(t, variant.ID))

	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.StockChangeIncoming, logs[0].ChangeType)
	assert.Equal(t, 5, logs[0].Quantity)
	assert.Equal(t, "restock", logs[0].Memo)
}

func TestAdjustStock_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 3)

	_, err := env.ledger.AdjustStock(variant.ID, -5, model.StockChangeAdjustment, "shrinkage")
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing moved, nothing logged
	assert.Equal(t, 3, env.variantStock(t, variant.ID))
	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAdjustStock_UnknownVariant(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ledger.AdjustStock(uuid.New(), -1, model.StockChangeAdjustment, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustStock_ZeroDelta(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 3)

	_, err := env.ledger.AdjustStock(variant.ID, 0, model.StockChangeAdjustment, "")
	require.Error(t, err)
}

func TestHistory_ReplayReproducesStock(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 0)

	deltas := []struct {
		delta int
		kind  model.StockChangeType
	}{
		{10, model.StockChangeIncoming},
		{-4, model.StockChangeSale},
		{2, model.StockChangeReturn},
		{-1, model.StockChangeAdjustment},
		{3, model.StockChangeIncoming},
	}
	for _, d := range deltas {
		_, err := env.ledger.AdjustStock(variant.ID, d.delta, d.kind, "")
		require.NoError(t, err)
	}

	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	require.Len(t, logs, len(deltas))

	// Folding the entries in order reproduces the counter, and every entry
	// chains off the previous one's after-value.
	replayed := 0
	for _, entry := range logs {
		assert.Equal(t, replayed, entry.BeforeStock)
		replayed += entry.Quantity
		assert.Equal(t, replayed, entry.AfterStock)
	}

	current, err := env.ledger.CurrentStock(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, replayed, current)
	assert.Equal(t, 10, current)
}

func TestAdjustStock_ConcurrentLastUnit(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.ledger.AdjustStock(variant.ID, -1, model.StockChangeSale, "race")
		}(i)
	}
	wg.Wait()

	// Exactly one decrement wins the last unit
	var failed int
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, env.variantStock(t, variant.ID))

	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
