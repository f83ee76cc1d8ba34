package social

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ironlog/internal/models"
	"ironlog/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remoteStub is an in-memory Remote with injectable failures and call gates.
type remoteStub struct {
	mu       sync.Mutex
	likes    map[uint]map[uint]bool // logID -> userID -> liked
	comments []*models.Comment
	nextID   uint

	toggleErr     error
	addErr        error
	deleteErr     error
	toggleGate    chan struct{} // when set, the next ToggleLike blocks until released
	toggleEntered chan struct{} // signalled when a gated call starts waiting
	addGate       chan struct{}
	addEntered    chan struct{}
}

func newRemoteStub() *remoteStub {
	return &remoteStub{likes: make(map[uint]map[uint]bool), nextID: 1}
}

func (r *remoteStub) ToggleLike(_ context.Context, userID, logID uint) (*models.LikeSummary, error) {
	r.mu.Lock()
	gate := r.toggleGate
	r.toggleGate = nil
	r.mu.Unlock()
	if gate != nil {
		if r.toggleEntered != nil {
			r.toggleEntered <- struct{}{}
		}
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.toggleErr != nil {
		return nil, r.toggleErr
	}
	if r.likes[logID] == nil {
		r.likes[logID] = make(map[uint]bool)
	}
	r.likes[logID][userID] = !r.likes[logID][userID]

	count := 0
	for _, liked := range r.likes[logID] {
		if liked {
			count++
		}
	}
	return &models.LikeSummary{TotalLikes: count, UserLiked: r.likes[logID][userID]}, nil
}

func (r *remoteStub) AddComment(_ context.Context, in service.AddCommentInput) (*models.Comment, error) {
	r.mu.Lock()
	gate := r.addGate
	r.addGate = nil
	r.mu.Unlock()
	if gate != nil {
		if r.addEntered != nil {
			r.addEntered <- struct{}{}
		}
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return nil, r.addErr
	}
	c := &models.Comment{ID: r.nextID, UserID: in.UserID, LogID: in.LogID, Content: in.Content}
	r.nextID++
	r.comments = append(r.comments, c)
	return c, nil
}

func (r *remoteStub) ListComments(_ context.Context, logID, _ uint) ([]*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Comment
	for _, c := range r.comments {
		if c.LogID == logID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *remoteStub) DeleteComment(_ context.Context, userID, commentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, c := range r.comments {
		if c.ID == commentID {
			if c.UserID != userID {
				return models.NewForbiddenError("You can only delete your own comments")
			}
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return models.NewNotFoundError("Comment", commentID)
}

func TestStore_ToggleLike_DoubleToggleReturnsToStart(t *testing.T) {
	remote := newRemoteStub()
	store := NewStore(remote, 1)
	store.Seed(9, 0, false)
	ctx := context.Background()

	view, err := store.ToggleLike(ctx, 9)
	require.NoError(t, err)
	assert.True(t, view.Liked)
	assert.Equal(t, 1, view.LikesCount)

	view, err = store.ToggleLike(ctx, 9)
	require.NoError(t, err)
	assert.False(t, view.Liked)
	assert.Equal(t, 0, view.LikesCount)
}

func TestStore_ToggleLike_RollbackOnFailure(t *testing.T) {
	remote := newRemoteStub()
	remote.toggleErr = errors.New("connection refused")
	store := NewStore(remote, 1)
	store.Seed(9, 3, false)

	view, err := store.ToggleLike(context.Background(), 9)
	assert.Error(t, err)
	assert.False(t, view.Liked)
	assert.Equal(t, 3, view.LikesCount)
}

func TestStore_ToggleLike_StaleResponseDiscarded(t *testing.T) {
	remote := newRemoteStub()
	gate := make(chan struct{})
	remote.toggleGate = gate
	remote.toggleEntered = make(chan struct{}, 1)

	store := NewStore(remote, 1)
	store.Seed(9, 0, false)
	ctx := context.Background()

	done := make(chan ThreadView, 1)
	go func() {
		view, _ := store.ToggleLike(ctx, 9)
		done <- view
	}()
	<-remote.toggleEntered

	// A second toggle reaches the server while the first call is still in
	// flight. The server confirms the second toggle's state.
	view, err := store.ToggleLike(ctx, 9)
	require.NoError(t, err)
	assert.True(t, view.Liked)
	assert.Equal(t, 1, view.LikesCount)

	// When the first call finally settles, its out-of-date response must
	// not clobber the state the newer toggle confirmed.
	close(gate)
	<-done
	final := store.View(9)
	assert.True(t, final.Liked)
	assert.Equal(t, 1, final.LikesCount)
}

func TestStore_PostComment(t *testing.T) {
	remote := newRemoteStub()
	store := NewStore(remote, 1)
	ctx := context.Background()

	view, err := store.PostComment(ctx, 9, "Huge pull!", "")
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.NotZero(t, view.Comments[0].ID)
	assert.False(t, view.Posting)
}

func TestStore_PostComment_RejectsConcurrentSubmission(t *testing.T) {
	remote := newRemoteStub()
	gate := make(chan struct{})
	remote.addGate = gate
	remote.addEntered = make(chan struct{}, 1)

	store := NewStore(remote, 1)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := store.PostComment(ctx, 9, "first", "")
		done <- err
	}()
	<-remote.addEntered

	// The first submission has not settled yet.
	view, err := store.PostComment(ctx, 9, "second", "")
	assert.ErrorIs(t, err, ErrPostInFlight)
	assert.True(t, view.Posting)

	close(gate)
	require.NoError(t, <-done)

	final := store.View(9)
	require.Len(t, final.Comments, 1)
	assert.Equal(t, "first", final.Comments[0].Content)
}

func TestStore_PostComment_RemovedOnFailure(t *testing.T) {
	remote := newRemoteStub()
	remote.addErr = errors.New("connection refused")
	store := NewStore(remote, 1)

	view, err := store.PostComment(context.Background(), 9, "Huge pull!", "")
	assert.Error(t, err)
	assert.Empty(t, view.Comments)
	assert.False(t, view.Posting)
}

func TestStore_DeleteComment_NonAuthorRestored(t *testing.T) {
	remote := newRemoteStub()
	other := &models.Comment{ID: 1, UserID: 42, LogID: 9, Content: "Nice"}
	remote.comments = append(remote.comments, other)
	remote.nextID = 2

	store := NewStore(remote, 1)
	_, err := store.Load(context.Background(), 9)
	require.NoError(t, err)

	view, err := store.DeleteComment(context.Background(), 9, 1)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// The thread is exactly as it was.
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "Nice", view.Comments[0].Content)
}

func TestStore_DeleteComment_Author(t *testing.T) {
	remote := newRemoteStub()
	store := NewStore(remote, 1)
	ctx := context.Background()

	view, err := store.PostComment(ctx, 9, "Huge pull!", "")
	require.NoError(t, err)
	commentID := view.Comments[0].ID

	view, err = store.DeleteComment(ctx, 9, commentID)
	require.NoError(t, err)
	assert.Empty(t, view.Comments)
}

func TestStore_DeleteComment_AlreadyGoneRemotelyIsSuccess(t *testing.T) {
	remote := newRemoteStub()
	store := NewStore(remote, 1)
	ctx := context.Background()

	view, err := store.PostComment(ctx, 9, "Huge pull!", "")
	require.NoError(t, err)
	commentID := view.Comments[0].ID

	// Deleted out-of-band (another device); the remote reports NotFound.
	remote.deleteErr = models.NewNotFoundError("Comment", commentID)

	view, err = store.DeleteComment(ctx, 9, commentID)
	require.NoError(t, err)
	assert.Empty(t, view.Comments)
}
