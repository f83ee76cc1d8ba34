package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ironlog/internal/cache"
	"ironlog/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withMiniredis points the cache package at a throwaway Redis for one test.
func withMiniredis(t *testing.T) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
}

// logRepoStub is a stub for repository.LogRepository.
type logRepoStub struct {
	createFn            func(context.Context, *models.Log) error
	getByIDFn           func(context.Context, uint, uint) (*models.Log, error)
	listByUserFn        func(context.Context, uint, *uint, int, int, uint) ([]*models.Log, error)
	listForProgressFn   func(context.Context, uint, uint) ([]models.Log, error)
	listSinceFn         func(context.Context, uint, time.Time) ([]models.Log, error)
	updateFn            func(context.Context, *models.Log) error
	deleteFn            func(context.Context, uint) error
	leaderboardLatestFn func(context.Context, int, uint) ([]*models.Log, error)
	leaderboardByLiftFn func(context.Context, uint, int, uint) ([]*models.Log, error)
}

func (s *logRepoStub) Create(ctx context.Context, log *models.Log) error {
	return s.createFn(ctx, log)
}
func (s *logRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Log, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *logRepoStub) ListByUser(ctx context.Context, userID uint, liftTypeID *uint, limit, offset int, currentUserID uint) ([]*models.Log, error) {
	return s.listByUserFn(ctx, userID, liftTypeID, limit, offset, currentUserID)
}
func (s *logRepoStub) ListForProgress(ctx context.Context, userID, liftTypeID uint) ([]models.Log, error) {
	return s.listForProgressFn(ctx, userID, liftTypeID)
}
func (s *logRepoStub) ListSince(ctx context.Context, userID uint, since time.Time) ([]models.Log, error) {
	return s.listSinceFn(ctx, userID, since)
}
func (s *logRepoStub) Update(ctx context.Context, log *models.Log) error {
	return s.updateFn(ctx, log)
}
func (s *logRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *logRepoStub) LeaderboardLatest(ctx context.Context, limit int, currentUserID uint) ([]*models.Log, error) {
	return s.leaderboardLatestFn(ctx, limit, currentUserID)
}
func (s *logRepoStub) LeaderboardByLift(ctx context.Context, liftTypeID uint, limit int, currentUserID uint) ([]*models.Log, error) {
	return s.leaderboardByLiftFn(ctx, liftTypeID, limit, currentUserID)
}

func noopLogRepo() *logRepoStub {
	return &logRepoStub{
		createFn:  func(_ context.Context, _ *models.Log) error { return nil },
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Log, error) { return &models.Log{}, nil },
		listByUserFn: func(_ context.Context, _ uint, _ *uint, _, _ int, _ uint) ([]*models.Log, error) {
			return nil, nil
		},
		listForProgressFn: func(_ context.Context, _, _ uint) ([]models.Log, error) { return nil, nil },
		listSinceFn:       func(_ context.Context, _ uint, _ time.Time) ([]models.Log, error) { return nil, nil },
		updateFn:          func(_ context.Context, _ *models.Log) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		leaderboardLatestFn: func(_ context.Context, _ int, _ uint) ([]*models.Log, error) {
			return nil, nil
		},
		leaderboardByLiftFn: func(_ context.Context, _ uint, _ int, _ uint) ([]*models.Log, error) {
			return nil, nil
		},
	}
}

// liftTypeRepoStub is a stub for repository.LiftTypeRepository.
type liftTypeRepoStub struct {
	listFn      func(context.Context) ([]models.LiftType, error)
	getByIDFn   func(context.Context, uint) (*models.LiftType, error)
	getByNameFn func(context.Context, string) (*models.LiftType, error)
	createFn    func(context.Context, *models.LiftType) error
}

func (s *liftTypeRepoStub) List(ctx context.Context) ([]models.LiftType, error) {
	return s.listFn(ctx)
}
func (s *liftTypeRepoStub) GetByID(ctx context.Context, id uint) (*models.LiftType, error) {
	return s.getByIDFn(ctx, id)
}
func (s *liftTypeRepoStub) GetByName(ctx context.Context, name string) (*models.LiftType, error) {
	return s.getByNameFn(ctx, name)
}
func (s *liftTypeRepoStub) Create(ctx context.Context, lt *models.LiftType) error {
	return s.createFn(ctx, lt)
}

func noopLiftTypeRepo() *liftTypeRepoStub {
	return &liftTypeRepoStub{
		listFn: func(_ context.Context) ([]models.LiftType, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.LiftType, error) {
			return &models.LiftType{ID: id, Name: "Back Squat"}, nil
		},
		getByNameFn: func(_ context.Context, _ string) (*models.LiftType, error) { return nil, nil },
		createFn:    func(_ context.Context, _ *models.LiftType) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	countFn          func(context.Context, uint) (int64, error)
	getLikedLogIDsFn func(context.Context, uint, []uint) ([]uint, error)
}

func (s *likeRepoStub) Like(ctx context.Context, userID, logID uint) error {
	return s.likeFn(ctx, userID, logID)
}
func (s *likeRepoStub) Unlike(ctx context.Context, userID, logID uint) error {
	return s.unlikeFn(ctx, userID, logID)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, userID, logID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, logID)
}
func (s *likeRepoStub) Count(ctx context.Context, logID uint) (int64, error) {
	return s.countFn(ctx, logID)
}
func (s *likeRepoStub) GetLikedLogIDs(ctx context.Context, userID uint, logIDs []uint) ([]uint, error) {
	return s.getLikedLogIDsFn(ctx, userID, logIDs)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		likeFn:           func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:         func(_ context.Context, _, _ uint) error { return nil },
		isLikedFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countFn:          func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		getLikedLogIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn           func(context.Context, *models.Comment) error
	getByIDFn          func(context.Context, uint) (*models.Comment, error)
	getByClientTokenFn func(context.Context, string) (*models.Comment, error)
	listByLogFn        func(context.Context, uint) ([]*models.Comment, error)
	deleteFn           func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByClientToken(ctx context.Context, token string) (*models.Comment, error) {
	return s.getByClientTokenFn(ctx, token)
}
func (s *commentRepoStub) ListByLog(ctx context.Context, logID uint) ([]*models.Comment, error) {
	return s.listByLogFn(ctx, logID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:           func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:          func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		getByClientTokenFn: func(_ context.Context, _ string) (*models.Comment, error) { return nil, nil },
		listByLogFn:        func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

// assertUnavailableError asserts that err is an AppError with code REMOTE_UNAVAILABLE.
func assertUnavailableError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "REMOTE_UNAVAILABLE", appErr.Code)
}
