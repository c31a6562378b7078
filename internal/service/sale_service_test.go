package service

import (
	"fmt"
	"testing"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleLine(variant *model.ProductVariant, qty int, price int64) SaleLineInput {
	return SaleLineInput{
		ProductID:   &variant.ProductID,
		VariantID:   &variant.ID,
		ProductName: "Wool Coat",
		Color:       variant.Color,
		Size:        variant.Size,
		Quantity:    qty,
		UnitPrice:   price,
	}
}

func TestCreateSale_FullyFulfilled(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 10)

	sale, err := env.sales.Create(&CreateSaleInput{
		Items:         []SaleLineInput{saleLine(variant, 2, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    2000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2000), sale.TotalAmount)
	assert.Equal(t, int64(2000), sale.FinalAmount)
	assert.Equal(t, int64(0), sale.CreditAmount)
	assert.Equal(t, model.SaleCompleted, sale.Status)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 2, sale.Items[0].Quantity)

	prefix := fmt.Sprintf("S%s-", time.Now().Format("20060102"))
	assert.Contains(t, sale.SaleNumber, prefix)

	assert.Equal(t, 8, env.variantStock(t, variant.ID))

	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.StockChangeSale, logs[0].ChangeType)
	assert.Equal(t, -2, logs[0].Quantity)
	require.NotNil(t, logs[0].ReferenceID)
	assert.Equal(t, sale.ID, *logs[0].ReferenceID)
}

func TestCreateSale_SplitsIntoBackorder(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 3)
	customer := seedCustomer(t, env.db)

	sale, err := env.sales.Create(&CreateSaleInput{
		CustomerID:    &customer.ID,
		Items:         []SaleLineInput{saleLine(variant, 5, 1000)},
		PaymentMethod: model.PayCredit,
		PaidAmount:    0,
	})
	require.NoError(t, err)

	// Billed on the full requested quantity, shipped only what was in stock
	assert.Equal(t, int64(5000), sale.TotalAmount)
	assert.Equal(t, int64(5000), sale.CreditAmount)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Quantity)
	assert.Equal(t, int64(3000), sale.Items[0].Amount)

	assert.Equal(t, 0, env.variantStock(t, variant.ID))
	assert.Equal(t, int64(5000), env.customerBalance(t, customer.ID))

	var backorders []model.Backorder
	require.NoError(t, env.db.Find(&backorders, "sale_id = ?", sale.ID).Error)
	require.Len(t, backorders, 1)
	assert.Equal(t, 2, backorders[0].Quantity)
	assert.Equal(t, model.BackorderPending, backorders[0].Status)
	require.NotNil(t, backorders[0].SaleItemID)
	assert.Equal(t, sale.Items[0].ID, *backorders[0].SaleItemID)
}

func TestCreateSale_WholeLineBackordered(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 0)
	customer := seedCustomer(t, env.db)

	sale, err := env.sales.Create(&CreateSaleInput{
		CustomerID:    &customer.ID,
		Items:         []SaleLineInput{saleLine(variant, 4, 500)},
		PaymentMethod: model.PayCash,
		PaidAmount:    2000,
	})
	require.NoError(t, err)

	// No fulfilled item exists for the line, only the backorder
	assert.Empty(t, sale.Items)
	assert.Equal(t, int64(2000), sale.TotalAmount)

	var backorders []model.Backorder
	require.NoError(t, env.db.Find(&backorders, "sale_id = ?", sale.ID).Error)
	require.Len(t, backorders, 1)
	assert.Equal(t, 4, backorders[0].Quantity)
	assert.Nil(t, backorders[0].SaleItemID)

	// Nothing was deducted for the pending backorder
	assert.Equal(t, 0, env.variantStock(t, variant.ID))
	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestCreateSale_CustomerRequired(t *testing.T) {
	env := newTestEnv(t)

	t.Run("credit without customer", func(t *testing.T) {
		variant := seedVariant(t, env.db, 10)
		_, err := env.sales.Create(&CreateSaleInput{
			Items:         []SaleLineInput{saleLine(variant, 2, 1000)},
			PaymentMethod: model.PayCredit,
			PaidAmount:    0,
		})
		require.ErrorIs(t, err, ErrCustomerRequired)
		// The whole workflow rolled back
		assert.Equal(t, 10, env.variantStock(t, variant.ID))
	})

	t.Run("backorder without customer", func(t *testing.T) {
		variant := seedVariant(t, env.db, 1)
		_, err := env.sales.Create(&CreateSaleInput{
			Items:         []SaleLineInput{saleLine(variant, 3, 1000)},
			PaymentMethod: model.PayCash,
			PaidAmount:    3000,
		})
		require.ErrorIs(t, err, ErrCustomerRequired)
		assert.Equal(t, 1, env.variantStock(t, variant.ID))
	})
}

func TestCreateSale_DiscountAndPartialPayment(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 10)
	customer := seedCustomer(t, env.db)

	sale, err := env.sales.Create(&CreateSaleInput{
		CustomerID:     &customer.ID,
		Items:          []SaleLineInput{saleLine(variant, 4, 1000)},
		DiscountAmount: 500,
		PaymentMethod:  model.PayMixed,
		PaidAmount:     2000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), sale.TotalAmount)
	assert.Equal(t, int64(3500), sale.FinalAmount)
	assert.Equal(t, int64(1500), sale.CreditAmount)
	assert.Equal(t, int64(1500), env.customerBalance(t, customer.ID))
}

func TestCreateSale_OverpaymentCarriesNoCredit(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 10)

	sale, err := env.sales.Create(&CreateSaleInput{
		Items:         []SaleLineInput{saleLine(variant, 1, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    1500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sale.CreditAmount)
}

func TestCreateSale_FreeFormLineSkipsLedger(t *testing.T) {
	env := newTestEnv(t)

	sale, err := env.sales.Create(&CreateSaleInput{
		Items: []SaleLineInput{{
			ProductName: "Alteration fee",
			Quantity:    1,
			UnitPrice:   3000,
		}},
		PaymentMethod: model.PayCash,
		PaidAmount:    3000,
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Nil(t, sale.Items[0].VariantID)

	var count int64
	require.NoError(t, env.db.Model(&model.StockLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateSale_NumbersAreSequentialPerDay(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 10)

	first, err := env.sales.Create(&CreateSaleInput{
		Items:         []SaleLineInput{saleLine(variant, 1, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    1000,
	})
	require.NoError(t, err)

	second, err := env.sales.Create(&CreateSaleInput{
		Items:         []SaleLineInput{saleLine(variant, 1, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    1000,
	})
	require.NoError(t, err)

	day := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("S%s-001", day), first.SaleNumber)
	assert.Equal(t, fmt.Sprintf("S%s-002", day), second.SaleNumber)
}

func TestCancelSale_RestoresStockAndCredit(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 10)
	customer := seedCustomer(t, env.db)

	sale, err := env.sales.Create(&CreateSaleInput{
		CustomerID:    &customer.ID,
		Items:         []SaleLineInput{saleLine(variant, 3, 1000)},
		PaymentMethod: model.PayCredit,
		PaidAmount:    0,
	})
	require.NoError(t, err)
	require.Equal(t, 7, env.variantStock(t, variant.ID))
	require.Equal(t, int64(3000), env.customerBalance(t, customer.ID))

	require.NoError(t, env.sales.Cancel(sale.ID))

	assert.Equal(t, 10, env.variantStock(t, variant.ID))
	assert.Equal(t, int64(0), env.customerBalance(t, customer.ID))

	cancelled, err := env.sales.GetByID(sale.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleCancelled, cancelled.Status)

	// Decrement and restoration are both on the ledger
	logs, err := env.ledger.History(variant.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.StockChangeSale, logs[0].ChangeType)
	assert.Equal(t, model.StockChangeCancel, logs[1].ChangeType)
	assert.Equal(t, 3, logs[1].Quantity)
}

func TestCancelSale_Twice(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 10)

	sale, err := env.sales.Create(&CreateSaleInput{
		Items:         []SaleLineInput{saleLine(variant, 2, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    2000,
	})
	require.NoError(t, err)

	require.NoError(t, env.sales.Cancel(sale.ID))
	require.ErrorIs(t, env.sales.Cancel(sale.ID), ErrAlreadyProcessed)

	// The second cancel changed nothing
	assert.Equal(t, 10, env.variantStock(t, variant.ID))
}

func TestCancelSale_LeavesPendingBackorders(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 1)
	customer := seedCustomer(t, env.db)

	sale, err := env.sales.Create(&CreateSaleInput{
		CustomerID:    &customer.ID,
		Items:         []SaleLineInput{saleLine(variant, 3, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    3000,
	})
	require.NoError(t, err)

	require.NoError(t, env.sales.Cancel(sale.ID))

	// Backorders are cancelled explicitly, not as a side effect
	var backorders []model.Backorder
	require.NoError(t, env.db.Find(&backorders, "sale_id = ?", sale.ID).Error)
	require.Len(t, backorders, 1)
	assert.Equal(t, model.BackorderPending, backorders[0].Status)
}

func TestListSales_FilterByCustomer(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 10)
	customer := seedCustomer(t, env.db)

	_, err := env.sales.Create(&CreateSaleInput{
		Items:         []SaleLineInput{saleLine(variant, 1, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    1000,
	})
	require.NoError(t, err)
	_, err = env.sales.Create(&CreateSaleInput{
		CustomerID:    &customer.ID,
		Items:         []SaleLineInput{saleLine(variant, 1, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    1000,
	})
	require.NoError(t, err)

	all, err := env.sales.List(repository.SaleListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := env.sales.List(repository.SaleListOptions{CustomerID: &customer.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestTodayStats_ExcludesCancelled(t *testing.T) {
	env := newTestEnv(t)
	variant := seedVariant(t, env.db, 10)
	customer := seedCustomer(t, env.db)

	_, err := env.sales.Create(&CreateSaleInput{
		CustomerID:    &customer.ID,
		Items:         []SaleLineInput{saleLine(variant, 2, 1000)},
		PaymentMethod: model.PayMixed,
		PaidAmount:    1500,
	})
	require.NoError(t, err)

	cancelled, err := env.sales.Create(&CreateSaleInput{
		Items:         []SaleLineInput{saleLine(variant, 1, 1000)},
		PaymentMethod: model.PayCash,
		PaidAmount:    1000,
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Cancel(cancelled.ID))

	stats, err := env.sales.TodayStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2000), stats.TotalSales)
	assert.Equal(t, int64(1500), stats.TotalPaid)
	assert.Equal(t, int64(500), stats.TotalCredit)
	assert.Equal(t, int64(1), stats.OrderCount)
}
