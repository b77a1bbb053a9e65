package service

import (
	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"

	"github.com/google/uuid"
)

type NotificationService interface {
	ListNotifications(actor policy.Actor, unreadOnly bool) ([]model.Notification, error)
	MarkRead(id uuid.UUID, actor policy.Actor) error
	MarkAllRead(actor policy.Actor) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(actor policy.Actor, unreadOnly bool) ([]model.Notification, error) {
	return s.notificationRepo.FindByUser(actor.ID, unreadOnly)
}

func (s *notificationService) MarkRead(id uuid.UUID, actor policy.Actor) error {
	notifications, err := s.notificationRepo.FindByUser(actor.ID, false)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if n.ID == id {
			return s.notificationRepo.MarkRead(id)
		}
	}
	return apperr.NotFound("notification")
}

func (s *notificationService) MarkAllRead(actor policy.Actor) error {
	return s.notificationRepo.MarkAllRead(actor.ID)
}
