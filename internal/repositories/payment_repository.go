package repositories

import (
	"errors"

	"brandlink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentRecordNotFound = errors.New("payment record not found")

type PaymentRepository interface {
	Create(record *models.PaymentRecord) error
	FindByIntentID(paymentIntentID string) (*models.PaymentRecord, error)
	UpdateStatus(paymentIntentID, status string) error
	Upsert(record *models.PaymentRecord) error
	WithTx(tx *gorm.DB) PaymentRepository
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) WithTx(tx *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: tx}
}

func (r *PaymentRepositoryImpl) Create(record *models.PaymentRecord) error {
	return r.db.Create(record).Error
}

func (r *PaymentRepositoryImpl) FindByIntentID(paymentIntentID string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	err := r.db.Where("payment_intent_id = ?", paymentIntentID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PaymentRepositoryImpl) UpdateStatus(paymentIntentID, status string) error {
	result := r.db.Model(&models.PaymentRecord{}).
		Where("payment_intent_id = ?", paymentIntentID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentRecordNotFound
	}
	return nil
}

// Upsert refreshes the mirror row for a payment intent, creating it when the
// provider reports an intent we have not seen yet.
func (r *PaymentRepositoryImpl) Upsert(record *models.PaymentRecord) error {
	existing, err := r.FindByIntentID(record.PaymentIntentID)
	if err != nil {
		if errors.Is(err, ErrPaymentRecordNotFound) {
			return r.db.Create(record).Error
		}
		return err
	}

	existing.Status = record.Status
	existing.Amount = record.Amount
	existing.Currency = record.Currency
	return r.db.Save(existing).Error
}
