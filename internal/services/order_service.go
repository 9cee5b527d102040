package services

import (
	"errors"
	"fmt"
	"time"

	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"

	"brandlink_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// payoutDelay is the grace window before released funds leave escrow.
const payoutDelay = 5 * time.Second

type OrderService struct {
	db               *gorm.DB
	orderRepo        repositories.OrderRepository
	notificationRepo repositories.NotificationRepository
	taskRepo         repositories.TaskRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	notificationRepo repositories.NotificationRepository,
	taskRepo repositories.TaskRepository,
) *OrderService {
	return &OrderService{
		db:               db,
		orderRepo:        orderRepo,
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
	}
}

// Approve moves a pending order into progress, recording an approval
// milestone and notifying the ordering user. A missing order fails before
// any side effect.
func (s *OrderService) Approve(orderID string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order", "order not found")
		}
		return nil, err
	}

	if !order.Status.CanTransition(models.OrderStatusInProgress) {
		return nil, apperrors.NewInvalidStatusError("order",
			fmt.Sprintf("cannot approve order in status %s", order.Status))
	}

	now := time.Now()
	order.Status = models.OrderStatusInProgress
	order.ApprovedAt = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		if err := repo.Update(order); err != nil {
			return err
		}
		if err := repo.CreateMilestone(&models.Milestone{
			OrderID: order.ID,
			Type:    models.MilestoneTypeOrderApproved,
			Status:  "completed",
		}); err != nil {
			return err
		}

		return s.notificationRepo.WithTx(tx).Create(&models.Notification{
			UserID:  order.UserID,
			Type:    repositories.NotificationTypeOrderApproved,
			Title:   "Order approved",
			Message: "Your order has been approved and is now in progress",
			Data: datatypes.JSONMap{
				"order_id": order.ID,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Complete finalizes an order and enqueues the durable payout task. The
// payout runs after a short delay and is retried by the worker; a later
// payout failure never unwinds the completion itself.
func (s *OrderService) Complete(orderID, completedBy, notes string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order", "order not found")
		}
		return nil, err
	}

	if !order.Status.CanTransition(models.OrderStatusCompleted) {
		return nil, apperrors.NewInvalidStatusError("order",
			fmt.Sprintf("cannot complete order in status %s", order.Status))
	}

	now := time.Now()
	order.Status = models.OrderStatusCompleted
	order.CompletedAt = &now
	order.CompletedBy = completedBy
	order.CompletionNotes = notes

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		if err := repo.Update(order); err != nil {
			return err
		}
		if err := repo.CreateMilestone(&models.Milestone{
			OrderID: order.ID,
			Type:    models.MilestoneTypeOrderCompleted,
			Status:  "completed",
			Notes:   notes,
		}); err != nil {
			return err
		}

		if err := s.taskRepo.WithTx(tx).EnqueuePayout(&models.PayoutTask{
			OrderID:         order.ID,
			PaymentIntentID: order.PaymentIntentID,
			Status:          models.TaskStatusPending,
			RunAt:           now.Add(payoutDelay),
		}); err != nil {
			return err
		}

		return s.notificationRepo.WithTx(tx).Create(&models.Notification{
			UserID:  order.CreatorID,
			Type:    repositories.NotificationTypeOrderCompleted,
			Title:   "Order completed",
			Message: "The order was marked completed, payout is on its way",
			Data: datatypes.JSONMap{
				"order_id": order.ID,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListMilestones returns the order's audit log in creation order.
func (s *OrderService) ListMilestones(orderID string) ([]models.Milestone, error) {
	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order", "order not found")
		}
		return nil, err
	}
	return s.orderRepo.FindMilestones(orderID)
}
