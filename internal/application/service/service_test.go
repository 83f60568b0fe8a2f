package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sangkips/dinehub-api/internal/config"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/internal/infrastructure/database"
	"github.com/sangkips/dinehub-api/internal/infrastructure/repository"
	"github.com/sangkips/dinehub-api/internal/realtime"
	"github.com/sangkips/dinehub-api/pkg/email"
)

// testEnv wires the full service graph against an in-memory database
type testEnv struct {
	db *gorm.DB

	orderRepo    domainRepo.OrderRepository
	lineRepo     domainRepo.OrderLineRepository
	invoiceRepo  domainRepo.InvoiceRepository
	paymentRepo  domainRepo.PaymentRepository
	tableRepo    domainRepo.TableRepository
	materialRepo domainRepo.MaterialRepository
	movementRepo domainRepo.StockMovementRepository
	shiftRepo    domainRepo.ShiftRepository
	voidRepo     domainRepo.VoidRequestRepository
	customerRepo domainRepo.CustomerRepository
	settingsRepo domainRepo.SettingsRepository

	approval     *ApprovalService
	inventory    *InventoryService
	invoices     *InvoiceService
	orders       *OrderService
	payments     *PaymentService
	shifts       *ShiftService
	voids        *VoidService
	tables       *TableService
	reservations *ReservationService
	dishes       *DishService
	customers    *CustomerService
}

func testPOSConfig() config.POSConfig {
	return config.POSConfig{
		DefaultVATPercent: 11,
		PointValue:        1000,
		EarnRatePercent:   1,
		ReservationWindow: 90 * time.Minute,
		ShiftMatchWindow:  15 * time.Minute,
		ResyncInterval:    5 * time.Second,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	lineRepo := repository.NewOrderLineRepository(db)
	dishRepo := repository.NewDishRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	tableRepo := repository.NewTableRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	zReportRepo := repository.NewZReportRepository(db)
	voidRepo := repository.NewVoidRequestRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	historyRepo := repository.NewPointHistoryRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	pos := testPOSConfig()
	publisher := realtime.NopPublisher{}
	emailService := email.NewEmailService(email.EmailConfig{})

	approval := NewApprovalService(userRepo, auditRepo)
	inventory := NewInventoryService(materialRepo, recipeRepo, movementRepo, lineRepo, emailService)
	invoices := NewInvoiceService(txManager, invoiceRepo, paymentRepo, orderRepo, lineRepo, voidRepo, settingsRepo, approval, pos)
	orders := NewOrderService(txManager, orderRepo, lineRepo, dishRepo, tableRepo, reservationRepo, inventory, invoices, approval, publisher, pos)
	payments := NewPaymentService(txManager, invoiceRepo, paymentRepo, orderRepo, tableRepo, shiftRepo, customerRepo, historyRepo, inventory, publisher, pos)
	shifts := NewShiftService(txManager, shiftRepo, zReportRepo, paymentRepo, pos)
	voids := NewVoidService(txManager, voidRepo, orderRepo, lineRepo, invoices, approval, publisher)
	tables := NewTableService(tableRepo, orderRepo, publisher)
	reservations := NewReservationService(reservationRepo, tableRepo, pos)
	dishes := NewDishService(dishRepo, recipeRepo)
	customers := NewCustomerService(customerRepo, historyRepo)

	return &testEnv{
		db:           db,
		orderRepo:    orderRepo,
		lineRepo:     lineRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		tableRepo:    tableRepo,
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		shiftRepo:    shiftRepo,
		voidRepo:     voidRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		approval:     approval,
		inventory:    inventory,
		invoices:     invoices,
		orders:       orders,
		payments:     payments,
		shifts:       shifts,
		voids:        voids,
		tables:       tables,
		reservations: reservations,
		dishes:       dishes,
		customers:    customers,
	}
}

func (e *testEnv) setVATRate(t *testing.T, rate string) {
	t.Helper()
	require.NoError(t, e.settingsRepo.Set(context.Background(), entity.SettingVATRate, rate))
}

func (e *testEnv) seedTable(t *testing.T, number int) *entity.Table {
	t.Helper()
	table := &entity.Table{Number: number, Capacity: 4}
	require.NoError(t, e.tableRepo.Create(context.Background(), table))
	return table
}

func (e *testEnv) seedMaterial(t *testing.T, name string, onHand float64) *entity.Material {
	t.Helper()
	material := &entity.Material{Name: name, Unit: "g", OnHand: onHand}
	require.NoError(t, e.materialRepo.Create(context.Background(), material))
	return material
}

// seedDish creates an available dish with an optional one-material recipe
func (e *testEnv) seedDish(t *testing.T, name string, price int64, material *entity.Material, qtyPerUnit float64) *entity.Dish {
	t.Helper()
	dish := &entity.Dish{
		Name:      name,
		Slug:      name + "-" + uuid.NewString()[:8],
		Category:  "mains",
		BasePrice: price,
		Available: true,
	}
	if material != nil {
		dish.Recipe = []entity.RecipeLine{{MaterialID: material.ID, QtyPerUnit: qtyPerUnit}}
	}
	require.NoError(t, e.db.Create(dish).Error)
	return dish
}

// seedStaff creates an active user holding the named permissions via a
// dedicated role. The password doubles as the approval PIN.
func (e *testEnv) seedStaff(t *testing.T, firstName, password string, permissions ...string) *entity.User {
	t.Helper()

	perms := make([]entity.Permission, len(permissions))
	for i, name := range permissions {
		perm := entity.Permission{Name: name, GuardName: "web"}
		if err := e.db.Where("name = ?", name).First(&perm).Error; err != nil {
			require.NoError(t, e.db.Create(&perm).Error)
		}
		perms[i] = perm
	}

	role := entity.Role{Name: firstName + "-role-" + uuid.NewString()[:8], GuardName: "web", Permissions: perms}
	require.NoError(t, e.db.Create(&role).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  "Tester",
		Email:     firstName + "-" + uuid.NewString()[:8] + "@example.com",
		Password:  string(hash),
		Active:    true,
		Roles:     []entity.Role{role},
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// openTab creates an order for qty units of the dish and returns it
// together with its invoice
func (e *testEnv) openTab(t *testing.T, table *entity.Table, dish *entity.Dish, qty int, createdBy uuid.UUID) (*entity.Order, *entity.Invoice) {
	t.Helper()
	ctx := context.Background()

	order, err := e.orders.Create(ctx, CreateOrderInput{
		TableID: table.ID,
		Items: []OrderItemInput{
			{DishID: dish.ID, Quantity: qty},
		},
		CreatedBy: createdBy,
	})
	require.NoError(t, err)

	invoice, err := e.invoiceRepo.GetOpenByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, invoice)
	return order, invoice
}
