package service

import (
	"context"
	"math"
	"time"

	"ironlog/internal/models"
	"ironlog/internal/repository"
)

// MeasurementService handles body-weight tracking.
type MeasurementService struct {
	repo repository.BodyMeasurementRepository
}

// CreateMeasurementInput is the payload for logging a body-weight reading.
type CreateMeasurementInput struct {
	UserID     uint
	Weight     float64
	Unit       string
	Notes      string
	DateLogged time.Time
}

// NewMeasurementService creates a new MeasurementService.
func NewMeasurementService(repo repository.BodyMeasurementRepository) *MeasurementService {
	return &MeasurementService{repo: repo}
}

func (s *MeasurementService) Create(ctx context.Context, in CreateMeasurementInput) (*models.BodyMeasurement, error) {
	if math.IsNaN(in.Weight) || math.IsInf(in.Weight, 0) || in.Weight <= 0 {
		return nil, models.NewValidationError("weight must be greater than zero")
	}

	dateLogged := in.DateLogged
	if dateLogged.IsZero() {
		dateLogged = time.Now().UTC()
	}

	m := &models.BodyMeasurement{
		UserID:     in.UserID,
		Weight:     in.Weight,
		Unit:       normalizeUnit(in.Unit),
		Notes:      in.Notes,
		DateLogged: dateLogged,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MeasurementService) List(ctx context.Context, userID uint, limit, offset int) ([]models.BodyMeasurement, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *MeasurementService) Delete(ctx context.Context, userID, id uint) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return models.NewForbiddenError("You can only delete your own measurements")
	}
	return s.repo.Delete(ctx, id)
}
