package service

import (
	"fmt"
	"log"

	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/repository"
	"go-restaurant-ws/internal/ws"

	"github.com/robfig/cron/v3"
)

// ReminderService runs the daily sweep that turns low-stock and expiry
// conditions into notifications for each restaurant's owner.
type ReminderService interface {
	Start() error
	Stop()
	RunSweep() // exported so the sweep can be triggered manually
}

type reminderService struct {
	restaurantRepo   repository.RestaurantRepository
	inventoryRepo    repository.InventoryRepository
	notificationRepo repository.NotificationRepository
	wsHub            *ws.Hub
	cron             *cron.Cron
	schedule         string
}

func NewReminderService(
	restaurantRepo repository.RestaurantRepository,
	inventoryRepo repository.InventoryRepository,
	notificationRepo repository.NotificationRepository,
	hub *ws.Hub,
	schedule string,
) ReminderService {
	if schedule == "" {
		schedule = "0 8 * * *" // daily at 08:00
	}
	return &reminderService{
		restaurantRepo:   restaurantRepo,
		inventoryRepo:    inventoryRepo,
		notificationRepo: notificationRepo,
		wsHub:            hub,
		cron:             cron.New(),
		schedule:         schedule,
	}
}

func (s *reminderService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunSweep); err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}
	s.cron.Start()
	log.Printf("Reminder sweep scheduled (%s)", s.schedule)
	return nil
}

func (s *reminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunSweep checks every active restaurant once. Failures are logged and
// skipped so one bad restaurant never blocks the rest.
func (s *reminderService) RunSweep() {
	restaurants, err := s.restaurantRepo.FindAll()
	if err != nil {
		log.Printf("Reminder sweep: failed to list restaurants: %v", err)
		return
	}

	for _, restaurant := range restaurants {
		if !restaurant.IsActive {
			continue
		}
		s.sweepRestaurant(&restaurant)
	}
}

func (s *reminderService) sweepRestaurant(restaurant *model.Restaurant) {
	lowStock, err := s.inventoryRepo.FindLowStock(restaurant.ID)
	if err != nil {
		log.Printf("Reminder sweep: low-stock query failed for %s: %v", restaurant.Name, err)
	} else if len(lowStock) > 0 {
		n := &model.Notification{
			UserID: restaurant.OwnerID,
			Type:   model.NotifLowStock,
			Title:  "Low stock summary",
			Message: fmt.Sprintf("%d items at or below their reorder threshold at %s",
				len(lowStock), restaurant.Name),
		}
		if err := s.notificationRepo.Create(n); err != nil {
			log.Printf("Reminder sweep: failed to write low-stock notification: %v", err)
		}
		s.wsHub.Publish("low_stock_summary", map[string]interface{}{
			"restaurant_id": restaurant.ID,
			"count":         len(lowStock),
		})
	}

	expiring, err := s.inventoryRepo.FindExpiringSoon(restaurant.ID, ExpiryWarningWindow)
	if err != nil {
		log.Printf("Reminder sweep: expiry query failed for %s: %v", restaurant.Name, err)
		return
	}
	if len(expiring) == 0 {
		return
	}
	n := &model.Notification{
		UserID: restaurant.OwnerID,
		Type:   model.NotifExpiry,
		Title:  "Items expiring soon",
		Message: fmt.Sprintf("%d items at %s expire within the next 7 days",
			len(expiring), restaurant.Name),
	}
	if err := s.notificationRepo.Create(n); err != nil {
		log.Printf("Reminder sweep: failed to write expiry notification: %v", err)
	}
	s.wsHub.Publish("expiry_summary", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"count":         len(expiring),
	})
}
