// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"strings"
	"time"

	"ironlog/internal/cache"
	"ironlog/internal/models"
	"ironlog/internal/repository"
	"ironlog/internal/stats"
	"ironlog/internal/validation"
)

// LogService handles workout log CRUD plus the derived progress and
// activity views built from a user's history.
type LogService struct {
	logRepo      repository.LogRepository
	liftTypeRepo repository.LiftTypeRepository
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

// CreateLogInput is the payload for logging one set.
type CreateLogInput struct {
	UserID     uint
	LiftTypeID *uint
	LiftName   string
	Weight     float64
	Unit       string
	Reps       int
	RPE        *int
	BodyWeight *float64
	Notes      string
	DateLogged time.Time
}

// UpdateLogInput carries the mutable fields of an existing log.
type UpdateLogInput struct {
	UserID uint
	LogID  uint
	Weight *float64
	Reps   *int
	RPE    *int
	Notes  *string
}

// ListLogsInput filters and pages a user's log history.
type ListLogsInput struct {
	UserID        uint
	LiftTypeID    *uint
	Limit         int
	Offset        int
	CurrentUserID uint
}

// NewLogService creates a new LogService.
func NewLogService(
	logRepo repository.LogRepository,
	liftTypeRepo repository.LiftTypeRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *LogService {
	return &LogService{
		logRepo:      logRepo,
		liftTypeRepo: liftTypeRepo,
		isAdmin:      isAdmin,
	}
}

func (s *LogService) CreateLog(ctx context.Context, in CreateLogInput) (*models.Log, error) {
	if err := validation.ValidateLiftEntry(in.Weight, in.Reps, in.RPE); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUnit(in.Unit); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.LiftTypeID == nil && strings.TrimSpace(in.LiftName) == "" {
		return nil, models.NewValidationError("Either lift_type_id or lift_name is required")
	}
	if in.LiftTypeID != nil {
		if _, err := s.liftTypeRepo.GetByID(ctx, *in.LiftTypeID); err != nil {
			return nil, err
		}
	}

	dateLogged := in.DateLogged
	if dateLogged.IsZero() {
		dateLogged = time.Now().UTC()
	}

	log := &models.Log{
		UserID:     in.UserID,
		LiftTypeID: in.LiftTypeID,
		LiftName:   strings.TrimSpace(in.LiftName),
		Weight:     in.Weight,
		Unit:       normalizeUnit(in.Unit),
		Reps:       in.Reps,
		RPE:        in.RPE,
		BodyWeight: in.BodyWeight,
		Notes:      in.Notes,
		DateLogged: dateLogged,
	}

	if err := s.markPersonalRecord(ctx, log); err != nil {
		return nil, err
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return s.logRepo.GetByID(ctx, log.ID, in.UserID)
}

// markPersonalRecord flags the log when it beats the user's previous best
// weight for the same lift type.
func (s *LogService) markPersonalRecord(ctx context.Context, log *models.Log) error {
	if log.LiftTypeID == nil {
		return nil
	}
	history, err := s.logRepo.ListForProgress(ctx, log.UserID, *log.LiftTypeID)
	if err != nil {
		return err
	}
	best := 0.0
	for _, h := range history {
		if h.Weight > best {
			best = h.Weight
		}
	}
	log.IsPR = log.Weight > best
	return nil
}

func (s *LogService) GetLog(ctx context.Context, id, currentUserID uint) (*models.Log, error) {
	return s.logRepo.GetByID(ctx, id, currentUserID)
}

func (s *LogService) ListLogs(ctx context.Context, in ListLogsInput) ([]*models.Log, error) {
	return s.logRepo.ListByUser(ctx, in.UserID, in.LiftTypeID, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *LogService) UpdateLog(ctx context.Context, in UpdateLogInput) (*models.Log, error) {
	log, err := s.logRepo.GetByID(ctx, in.LogID, in.UserID)
	if err != nil {
		return nil, err
	}
	if log.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own logs")
	}

	if in.Weight != nil {
		log.Weight = *in.Weight
	}
	if in.Reps != nil {
		log.Reps = *in.Reps
	}
	if in.RPE != nil {
		log.RPE = in.RPE
	}
	if in.Notes != nil {
		log.Notes = *in.Notes
	}
	if err := validation.ValidateLiftEntry(log.Weight, log.Reps, log.RPE); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *LogService) DeleteLog(ctx context.Context, userID, logID uint) error {
	log, err := s.logRepo.GetByID(ctx, logID, userID)
	if err != nil {
		return err
	}
	if log.UserID != userID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own logs")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own logs")
		}
	}
	return s.logRepo.Delete(ctx, logID)
}

// Progress builds the best-per-day series for one user and lift. The series
// is cached per user, lift, and timezone; writes to the log invalidate it.
func (s *LogService) Progress(ctx context.Context, userID, liftTypeID uint, loc *time.Location) ([]stats.ProgressPoint, error) {
	if _, err := s.liftTypeRepo.GetByID(ctx, liftTypeID); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	var points []stats.ProgressPoint
	build := func() error {
		logs, err := s.logRepo.ListForProgress(ctx, userID, liftTypeID)
		if err != nil {
			return err
		}
		points = stats.BestPerDay(logs, loc)
		return nil
	}

	key := cache.ProgressKey(userID, liftTypeID, loc.String())
	if err := cache.Aside(ctx, key, &points, cache.ProgressTTL, build); err != nil {
		return nil, err
	}
	return points, nil
}

// MaxActivityWindow bounds the requestable heatmap span.
const MaxActivityWindow = 366

// Activity buckets the user's trailing window of logs for the heatmap.
// days <= 0 selects the default window.
func (s *LogService) Activity(ctx context.Context, userID uint, days int, loc *time.Location) ([]stats.ActivityBucket, error) {
	if loc == nil {
		loc = time.UTC
	}
	if days <= 0 {
		days = stats.DefaultActivityWindow
	}
	if days > MaxActivityWindow {
		days = MaxActivityWindow
	}
	now := time.Now().In(loc)
	since := now.AddDate(0, 0, -(days - 1))
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, loc)

	logs, err := s.logRepo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return stats.DailyCounts(logs, days, now, loc), nil
}

// ListLiftTypes returns the shared lift catalog.
func (s *LogService) ListLiftTypes(ctx context.Context) ([]models.LiftType, error) {
	return s.liftTypeRepo.List(ctx)
}

func normalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		return "lbs"
	}
	return u
}
