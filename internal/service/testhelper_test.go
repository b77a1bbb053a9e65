package service

import (
	"fmt"
	"testing"

	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Role{}, &model.User{},
		&model.Restaurant{}, &model.Table{}, &model.Reservation{},
		&model.Supplier{}, &model.InventoryItem{}, &model.StockTransaction{},
		&model.Menu{}, &model.MenuItem{},
		&model.Order{}, &model.OrderItem{},
		&model.Notification{},
	))
	return db
}

type testEnv struct {
	db *gorm.DB

	userRepo         repository.UserRepository
	roleRepo         repository.RoleRepository
	restaurantRepo   repository.RestaurantRepository
	tableRepo        repository.TableRepository
	reservationRepo  repository.ReservationRepository
	supplierRepo     repository.SupplierRepository
	inventoryRepo    repository.InventoryRepository
	stockTxRepo      repository.StockTransactionRepository
	menuRepo         repository.MenuRepository
	orderRepo        repository.OrderRepository
	notificationRepo repository.NotificationRepository

	reservations ReservationService
	tables       TableService
	inventory    InventoryService
	suppliers    SupplierService
	orders       OrderService
	menus        MenuService
	reports      ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		db:               db,
		userRepo:         repository.NewUserRepo(db),
		roleRepo:         repository.NewRoleRepo(db),
		restaurantRepo:   repository.NewRestaurantRepo(db),
		tableRepo:        repository.NewTableRepo(db),
		reservationRepo:  repository.NewReservationRepo(db),
		supplierRepo:     repository.NewSupplierRepo(db),
		inventoryRepo:    repository.NewInventoryRepo(db),
		stockTxRepo:      repository.NewStockTransactionRepo(db),
		menuRepo:         repository.NewMenuRepo(db),
		orderRepo:        repository.NewOrderRepo(db),
		notificationRepo: repository.NewNotificationRepo(db),
	}

	// Services run without a ws hub; Publish is nil-safe.
	env.reservations = NewReservationService(db, env.reservationRepo, env.tableRepo, env.restaurantRepo, env.notificationRepo, nil)
	env.tables = NewTableService(env.tableRepo, env.restaurantRepo, env.reservationRepo)
	env.inventory = NewInventoryService(db, env.inventoryRepo, env.stockTxRepo, env.supplierRepo, env.restaurantRepo, env.notificationRepo, nil)
	env.suppliers = NewSupplierService(env.supplierRepo)
	env.orders = NewOrderService(db, env.orderRepo, env.menuRepo, env.restaurantRepo, nil)
	env.menus = NewMenuService(env.menuRepo, env.restaurantRepo)
	env.reports = NewReportService(env.inventoryRepo, env.stockTxRepo, env.reservationRepo, env.restaurantRepo)
	return env
}

func adminActor() policy.Actor {
	return policy.Actor{ID: uuid.New(), Role: model.RoleAdmin}
}

func staffActor(restaurantID uuid.UUID) policy.Actor {
	return policy.Actor{ID: uuid.New(), Role: model.RoleRestaurantStaff, RestaurantID: &restaurantID}
}

func ownerActor(restaurantID uuid.UUID) policy.Actor {
	return policy.Actor{ID: uuid.New(), Role: model.RoleRestaurantOwner, RestaurantID: &restaurantID}
}

func customerActor() policy.Actor {
	return policy.Actor{ID: uuid.New(), Role: model.RoleCustomer}
}

func driverActor() policy.Actor {
	return policy.Actor{ID: uuid.New(), Role: model.RoleDriver}
}

func (e *testEnv) seedRestaurant(t *testing.T) *model.Restaurant {
	t.Helper()
	restaurant := &model.Restaurant{
		Name:        "Test Bistro",
		OwnerID:     uuid.New(),
		OpeningTime: "09:00",
		ClosingTime: "23:00",
		IsActive:    true,
	}
	require.NoError(t, e.db.Create(restaurant).Error)
	return restaurant
}

func (e *testEnv) seedTable(t *testing.T, restaurantID uuid.UUID, number string, capacity int) *model.Table {
	t.Helper()
	table := &model.Table{
		RestaurantID: restaurantID,
		TableNumber:  number,
		Capacity:     capacity,
		Status:       model.TableAvailable,
	}
	require.NoError(t, e.db.Create(table).Error)
	return table
}

func (e *testEnv) seedItem(t *testing.T, restaurantID uuid.UUID, name string, quantity, threshold int) *model.InventoryItem {
	t.Helper()
	item := &model.InventoryItem{
		RestaurantID: restaurantID,
		Name:         name,
		Quantity:     quantity,
		Threshold:    threshold,
		Unit:         "kg",
		UnitPrice:    100,
	}
	require.NoError(t, e.db.Create(item).Error)
	return item
}

func (e *testEnv) seedSupplier(t *testing.T, name, email, phone string) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
		IsActive:    true,
	}
	require.NoError(t, e.db.Create(supplier).Error)
	return supplier
}

func (e *testEnv) reloadItem(t *testing.T, id uuid.UUID) *model.InventoryItem {
	t.Helper()
	var item model.InventoryItem
	require.NoError(t, e.db.First(&item, "id = ?", id).Error)
	return &item
}

func (e *testEnv) reloadTable(t *testing.T, id uuid.UUID) *model.Table {
	t.Helper()
	var table model.Table
	require.NoError(t, e.db.First(&table, "id = ?", id).Error)
	return &table
}

func (e *testEnv) ledgerFor(t *testing.T, itemID uuid.UUID) []model.StockTransaction {
	t.Helper()
	rows, err := e.stockTxRepo.FindByItem(itemID)
	require.NoError(t, err)
	return rows
}
