package service

import (
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single connection
// keeps the database alive for the test's lifetime and serializes access,
// which the concurrency tests rely on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Product{}, &model.ProductVariant{}, &model.Customer{},
		&model.Sale{}, &model.SaleItem{}, &model.StockLog{},
		&model.Backorder{}, &model.Return{}, &model.Sample{},
		&model.Payment{}, &model.SequenceCounter{},
	))
	return db
}

type testEnv struct {
	db *gorm.DB

	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	logRepo      repository.StockLogRepository

	ledger     LedgerService
	credit     CreditService
	sales      SaleService
	backorders BackorderService
	returns    ReturnService
	samples    SampleService
	payments   PaymentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	logRepo := repository.NewStockLogRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	backorderRepo := repository.NewBackorderRepo(db)
	returnRepo := repository.NewReturnRepo(db)
	sampleRepo := repository.NewSampleRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	seqRepo := repository.NewSequenceRepo(db)

	// nil hub: the engine runs without a realtime feed in tests
	ledger := NewLedgerService(productRepo, logRepo, db, nil)
	credit := NewCreditService(customerRepo, db, nil)

	return &testEnv{
		db:           db,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logRepo:      logRepo,
		ledger:       ledger,
		credit:       credit,
		sales:        NewSaleService(saleRepo, productRepo, seqRepo, ledger, credit, db),
		backorders:   NewBackorderService(backorderRepo, ledger, db),
		returns:      NewReturnService(returnRepo, seqRepo, ledger, credit, db),
		samples:      NewSampleService(sampleRepo, productRepo, ledger, db),
		payments:     NewPaymentService(paymentRepo, credit, db),
	}
}

// seedVariant creates a product with one variant at the given stock level.
// Each call gets its own product so the color/size combo never collides.
func seedVariant(t *testing.T, db *gorm.DB, stock int) *model.ProductVariant {
	t.Helper()

	product := &model.Product{Name: "Wool Coat", SalePrice: 1000, IsActive: true}
	require.NoError(t, db.Create(product).Error)

	variant := &model.ProductVariant{
		ProductID: product.ID,
		Color:     "black",
		Size:      "M",
		Stock:     stock,
	}
	require.NoError(t, db.Create(variant).Error)
	return variant
}

func seedCustomer(t *testing.T, db *gorm.DB) *model.Customer {
	t.Helper()

	customer := &model.Customer{Name: "Dongdaemun Trading", IsActive: true}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func (e *testEnv) variantStock(t *testing.T, id interface{}) int {
	t.Helper()

	var variant model.ProductVariant
	require.NoError(t, e.db.First(&variant, "id = ?", id).Error)
	return variant.Stock
}

func (e *testEnv) customerBalance(t *testing.T, id interface{}) int64 {
	t.Helper()

	var customer model.Customer
	require.NoError(t, e.db.First(&customer, "id = ?", id).Error)
	return customer.Balance
}
