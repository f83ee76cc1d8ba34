package repository

import (
	"context"
	"errors"

	"ironlog/internal/cache"
	"ironlog/internal/models"

	"gorm.io/gorm"
)

// LiftTypeRepository defines persistence operations for the lift catalog.
type LiftTypeRepository interface {
	List(ctx context.Context) ([]models.LiftType, error)
	GetByID(ctx context.Context, id uint) (*models.LiftType, error)
	GetByName(ctx context.Context, name string) (*models.LiftType, error)
	Create(ctx context.Context, lt *models.LiftType) error
}

type liftTypeRepository struct {
	db *gorm.DB
}

// NewLiftTypeRepository returns a new LiftTypeRepository implementation.
func NewLiftTypeRepository(db *gorm.DB) LiftTypeRepository {
	return &liftTypeRepository{db: db}
}

func (r *liftTypeRepository) List(ctx context.Context) ([]models.LiftType, error) {
	var types []models.LiftType
	err := cache.Aside(ctx, cache.LiftTypesKey, &types, cache.LiftTypesTTL, func() error {
		if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *liftTypeRepository) GetByID(ctx context.Context, id uint) (*models.LiftType, error) {
	var lt models.LiftType
	if err := r.db.WithContext(ctx).First(&lt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("LiftType", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &lt, nil
}

func (r *liftTypeRepository) GetByName(ctx context.Context, name string) (*models.LiftType, error) {
	var lt models.LiftType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&lt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &lt, nil
}

func (r *liftTypeRepository) Create(ctx context.Context, lt *models.LiftType) error {
	if err := r.db.WithContext(ctx).Create(lt).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Lift type already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateLiftTypes(ctx)
	return nil
}
