package repositories

import (
	"errors"

	"brandlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this target")
)

type ApplicationRepository interface {
	Create(application *models.Application) error
	FindByUserAndTarget(userID, targetID string) (*models.Application, error)
	Delete(id string) error
	WithTx(tx *gorm.DB) ApplicationRepository
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *ApplicationRepositoryImpl) WithTx(tx *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: tx}
}

func (r *ApplicationRepositoryImpl) Create(application *models.Application) error {
	err := r.db.Create(application).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationRepositoryImpl) FindByUserAndTarget(userID, targetID string) (*models.Application, error) {
	var application models.Application
	err := r.db.Where("user_id = ? AND target_id = ?", userID, targetID).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
