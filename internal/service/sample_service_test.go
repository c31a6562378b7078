package service

import (
	"testing"
	"time"

	"go-retail-pos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSample_WithoutDeduction(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 5)
	customer := seedCustomer(t, env.db)

	sample, err := env.samples.Create(&CreateSampleInput{
		CustomerID: customer.ID,
		VariantID:  variant.ID,
		Quantity:   2,
		ReturnDue:  time.Now().AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	assert.Equal(t, model.SampleOut, sample.Status)
	assert.Equal(t, "Wool Coat", sample.ProductName)
	assert.Equal(t, 5, env.variantStock(t, variant.ID))

	require.NoError(t, env.samples.Return(sample.ID))

	// The loan never touched the ledger either way
	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	var returned model.Sample
	require.NoError(t, env.db.First(&returned, "id = ?", sample.ID).Error)
	assert.Equal(t, model.SampleReturned, returned.Status)
	assert.NotNil(t, returned.ReturnedAt)
}

func TestCreateSample_WithDeduction(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 5)
	customer := seedCustomer(t, env.db)

	sample, err := env.samples.Create(&CreateSampleInput{
		CustomerID:  customer.ID,
		VariantID:   variant.ID,
		Quantity:    2,
		ReturnDue:   time.Now().AddDate(0, 0, 7),
		DeductStock: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, env.variantStock(t, variant.ID))

	require.NoError(t, env.samples.Return(sample.ID))
	assert.Equal(t, 5, env.variantStock(t, variant.ID))

	// Exactly one deduction and one compensating restoration, net zero
	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, -2, logs[0].Quantity)
	assert.Equal(t, model.StockChangeAdjustment, logs[0].ChangeType)
	assert.Equal(t, 2, logs[1].Quantity)
	assert.Equal(t, model.StockChangeAdjustment, logs[1].ChangeType)
}

func TestCreateSample_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 1)
	customer := seedCustomer(t, env.db)

	_, err := env.samples.Create(&CreateSampleInput{
		CustomerID:  customer.ID,
		VariantID:   variant.ID,
		Quantity:    3,
		ReturnDue:   time.Now().AddDate(0, 0, 7),
		DeductStock: true,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The whole create rolled back, no sample row exists
	var count int64
	require.NoError(t, env.db.Model(&model.Sample{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 1, env.variantStock(t, variant.ID))
}

func TestCancelSample_RestoresDeductedStock(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 5)
	customer := seedCustomer(t, env.db)

	sample, err := env.samples.Create(&CreateSampleInput{
		CustomerID:  customer.ID,
		VariantID:   variant.ID,
		Quantity:    2,
		ReturnDue:   time.Now().AddDate(0, 0, 7),
		DeductStock: true,
	})
	require.NoError(t, err)

	require.NoError(t, env.samples.Cancel(sample.ID))
	assert.Equal(t, 5, env.variantStock(t, variant.ID))

	var cancelled model.Sample
	require.NoError(t, env.db.First(&cancelled, "id = ?", sample.ID).Error)
	assert.Equal(t, model.SampleCancelled, cancelled.Status)
	assert.Nil(t, cancelled.ReturnedAt)
}

func TestResolveSample_Twice(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 5)
	customer := seedCustomer(t, env.db)

	sample, err := env.samples.Create(&CreateSampleInput{
		CustomerID:  customer.ID,
		VariantID:   variant.ID,
		Quantity:    2,
		ReturnDue:   time.Now().AddDate(0, 0, 7),
		DeductStock: true,
	})
	require.NoError(t, err)

	require.NoError(t, env.samples.Return(sample.ID))
	require.ErrorIs(t, env.samples.Return(sample.ID), ErrAlreadyProcessed)
	require.ErrorIs(t, env.samples.Cancel(sample.ID), ErrAlreadyProcessed)

	// Restored exactly once
	assert.Equal(t, 5, env.variantStock(t, variant.ID))
}
