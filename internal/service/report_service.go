package service

import (
	"time"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"

	"github.com/google/uuid"
)

// ExpiryWarningWindow is how far ahead the expiry report looks.
const ExpiryWarningWindow = 7 * 24 * time.Hour

type ReportService interface {
	Dashboard(restaurantID uuid.UUID, actor policy.Actor) (*DashboardReport, error)
	LowStock(restaurantID uuid.UUID, actor policy.Actor) ([]model.InventoryItem, error)
	ExpiringSoon(restaurantID uuid.UUID, actor policy.Actor) ([]model.InventoryItem, error)
	Valuation(restaurantID uuid.UUID, actor policy.Actor) (*ValuationReport, error)
	StockMovement(restaurantID uuid.UUID, startDate, endDate time.Time, actor policy.Actor) ([]repository.StockMovementData, error)
}

// DashboardReport is the summary view for a single restaurant.
type DashboardReport struct {
	RestaurantID      uuid.UUID                      `json:"restaurant_id"`
	TotalItems        int                            `json:"total_items"`
	TotalValue        int64                          `json:"total_value"`
	LowStockCount     int                            `json:"low_stock_count"`
	LowStockItems     []model.InventoryItem          `json:"low_stock_items"`
	ExpiringCount     int                            `json:"expiring_count"`
	ExpiringItems     []model.InventoryItem          `json:"expiring_items"`
	CategoryBreakdown []repository.CategoryCount     `json:"category_breakdown"`
	TodayReservations int                            `json:"today_reservations"`
	RecentActivity    []model.StockTransaction       `json:"recent_activity"`
	StockMovement     []repository.StockMovementData `json:"stock_movement"`
}

// ValuationReport prices the on-hand stock at recorded unit cost.
type ValuationReport struct {
	RestaurantID uuid.UUID                  `json:"restaurant_id"`
	TotalValue   int64                      `json:"total_value"`
	ItemCount    int                        `json:"item_count"`
	ByCategory   []repository.CategoryCount `json:"by_category"`
	GeneratedAt  time.Time                  `json:"generated_at"`
}

type reportService struct {
	inventoryRepo   repository.InventoryRepository
	transactionRepo repository.StockTransactionRepository
	reservationRepo repository.ReservationRepository
	restaurantRepo  repository.RestaurantRepository
}

func NewReportService(
	inventoryRepo repository.InventoryRepository,
	transactionRepo repository.StockTransactionRepository,
	reservationRepo repository.ReservationRepository,
	restaurantRepo repository.RestaurantRepository,
) ReportService {
	return &reportService{
		inventoryRepo:   inventoryRepo,
		transactionRepo: transactionRepo,
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
	}
}

func (s *reportService) authorize(restaurantID uuid.UUID, actor policy.Actor) error {
	if !policy.Allow(actor.Role, policy.ReportView) {
		return apperr.ErrForbidden
	}
	if !actor.IsAdmin() && !actor.WorksAt(restaurantID) {
		return apperr.ErrForbidden
	}
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		return apperr.NotFound("restaurant")
	}
	return nil
}

func (s *reportService) Dashboard(restaurantID uuid.UUID, actor policy.Actor) (*DashboardReport, error) {
	if err := s.authorize(restaurantID, actor); err != nil {
		return nil, err
	}

	items, err := s.inventoryRepo.FindByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	totalValue, err := s.inventoryRepo.TotalValue(restaurantID)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.inventoryRepo.FindLowStock(restaurantID)
	if err != nil {
		return nil, err
	}
	expiring, err := s.inventoryRepo.FindExpiringSoon(restaurantID, ExpiryWarningWindow)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.inventoryRepo.CategoryBreakdown(restaurantID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	reservations, err := s.reservationRepo.FindByRestaurantAndDate(restaurantID, today)
	if err != nil {
		return nil, err
	}

	recent, err := s.transactionRepo.FindByRestaurant(restaurantID, 10)
	if err != nil {
		return nil, err
	}

	// Last 7 days of ledger activity for the movement chart
	movement, err := s.transactionRepo.GetStockMovement(restaurantID, today.AddDate(0, 0, -7), time.Now())
	if err != nil {
		return nil, err
	}

	return &DashboardReport{
		RestaurantID:      restaurantID,
		TotalItems:        len(items),
		TotalValue:        totalValue,
		LowStockCount:     len(lowStock),
		LowStockItems:     lowStock,
		ExpiringCount:     len(expiring),
		ExpiringItems:     expiring,
		CategoryBreakdown: breakdown,
		TodayReservations: len(reservations),
		RecentActivity:    recent,
		StockMovement:     movement,
	}, nil
}

func (s *reportService) LowStock(restaurantID uuid.UUID, actor policy.Actor) ([]model.InventoryItem, error) {
	if err := s.authorize(restaurantID, actor); err != nil {
		return nil, err
	}
	return s.inventoryRepo.FindLowStock(restaurantID)
}

func (s *reportService) ExpiringSoon(restaurantID uuid.UUID, actor policy.Actor) ([]model.InventoryItem, error) {
	if err := s.authorize(restaurantID, actor); err != nil {
		return nil, err
	}
	return s.inventoryRepo.FindExpiringSoon(restaurantID, ExpiryWarningWindow)
}

func (s *reportService) Valuation(restaurantID uuid.UUID, actor policy.Actor) (*ValuationReport, error) {
	if err := s.authorize(restaurantID, actor); err != nil {
		return nil, err
	}

	items, err := s.inventoryRepo.FindByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	totalValue, err := s.inventoryRepo.TotalValue(restaurantID)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.inventoryRepo.CategoryBreakdown(restaurantID)
	if err != nil {
		return nil, err
	}

	return &ValuationReport{
		RestaurantID: restaurantID,
		TotalValue:   totalValue,
		ItemCount:    len(items),
		ByCategory:   breakdown,
		GeneratedAt:  time.Now(),
	}, nil
}

func (s *reportService) StockMovement(restaurantID uuid.UUID, startDate, endDate time.Time, actor policy.Actor) ([]repository.StockMovementData, error) {
	if err := s.authorize(restaurantID, actor); err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, apperr.ErrInvalidOperation
	}
	return s.transactionRepo.GetStockMovement(restaurantID, startDate, endDate)
}
