package repositories

import (
	"errors"

	"brandlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type OrderRepository interface {
	Create(order *models.Order) error
	FindByID(id string) (*models.Order, error)
	Update(order *models.Order) error

	CreateMilestone(milestone *models.Milestone) error
	FindMilestones(orderID string) ([]models.Milestone, error)
	WithTx(tx *gorm.DB) OrderRepository
}

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) WithTx(tx *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: tx}
}

func (r *OrderRepositoryImpl) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepositoryImpl) FindByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *OrderRepositoryImpl) CreateMilestone(milestone *models.Milestone) error {
	return r.db.Create(milestone).Error
}

func (r *OrderRepositoryImpl) FindMilestones(orderID string) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&milestones).Error
	return milestones, err
}
