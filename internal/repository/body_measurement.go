package repository

import (
	"context"
	"errors"

	"ironlog/internal/models"

	"gorm.io/gorm"
)

// BodyMeasurementRepository defines persistence operations for body measurements.
type BodyMeasurementRepository interface {
	Create(ctx context.Context, m *models.BodyMeasurement) error
	GetByID(ctx context.Context, id uint) (*models.BodyMeasurement, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.BodyMeasurement, error)
	Delete(ctx context.Context, id uint) error
}

type bodyMeasurementRepository struct {
	db *gorm.DB
}

// NewBodyMeasurementRepository returns a new BodyMeasurementRepository implementation.
func NewBodyMeasurementRepository(db *gorm.DB) BodyMeasurementRepository {
	return &bodyMeasurementRepository{db: db}
}

func (r *bodyMeasurementRepository) Create(ctx context.Context, m *models.BodyMeasurement) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bodyMeasurementRepository) GetByID(ctx context.Context, id uint) (*models.BodyMeasurement, error) {
	var m models.BodyMeasurement
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("BodyMeasurement", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &m, nil
}

func (r *bodyMeasurementRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.BodyMeasurement, error) {
	var ms []models.BodyMeasurement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_logged DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ms, nil
}

func (r *bodyMeasurementRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.BodyMeasurement{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
