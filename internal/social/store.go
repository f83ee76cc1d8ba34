// Package social keeps an optimistic, per-user view of like and comment
// state. Mutations apply locally first, then reconcile with the backing
// service; failures roll the view back to what the server last confirmed.
package social

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ironlog/internal/models"
	"ironlog/internal/service"
)

// Remote is the authoritative social backend the store reconciles against.
// *service.SocialService satisfies it.
type Remote interface {
	ToggleLike(ctx context.Context, userID, logID uint) (*models.LikeSummary, error)
	AddComment(ctx context.Context, in service.AddCommentInput) (*models.Comment, error)
	ListComments(ctx context.Context, logID, currentUserID uint) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID uint) error
}

// ErrPostInFlight is returned when a comment submission is attempted while
// a previous one for the same log has not settled.
var ErrPostInFlight = models.NewValidationError("A comment is already being posted")

// ThreadView is a snapshot of one log's social state as the user sees it,
// optimistic changes included.
type ThreadView struct {
	LogID      uint             `json:"log_id"`
	LikesCount int              `json:"likes_count"`
	Liked      bool             `json:"liked"`
	Comments   []models.Comment `json:"comments"`
	Posting    bool             `json:"posting"`
}

type thread struct {
	likesCount int
	liked      bool
	comments   []models.Comment
	posting    bool
	// likeGen increments on every like toggle; a settling call whose
	// generation no longer matches arrived late and must not clobber
	// newer local state.
	likeGen uint64
}

// Store holds optimistic social state for a single user session.
type Store struct {
	mu      sync.Mutex
	remote  Remote
	userID  uint
	threads map[uint]*thread
}

// NewStore creates a store for one user backed by remote.
func NewStore(remote Remote, userID uint) *Store {
	return &Store{
		remote:  remote,
		userID:  userID,
		threads: make(map[uint]*thread),
	}
}

// Seed initializes a log's thread from already-fetched counts, e.g. a
// leaderboard row. An existing thread is left alone.
func (s *Store) Seed(logID uint, likesCount int, liked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[logID]; ok {
		return
	}
	s.threads[logID] = &thread{likesCount: likesCount, liked: liked}
}

// Load fetches the comment thread from the remote and replaces any local
// comment state for the log.
func (s *Store) Load(ctx context.Context, logID uint) (ThreadView, error) {
	comments, err := s.remote.ListComments(ctx, logID, s.userID)
	if err != nil {
		return ThreadView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	th := s.threadLocked(logID)
	th.comments = th.comments[:0]
	for _, c := range comments {
		th.comments = append(th.comments, *c)
	}
	return s.snapshotLocked(logID, th), nil
}

// ToggleLike flips the like locally, then settles with the remote. A failed
// call restores the previous state unless a newer toggle superseded it; a
// late success is discarded the same way.
func (s *Store) ToggleLike(ctx context.Context, logID uint) (ThreadView, error) {
	s.mu.Lock()
	th := s.threadLocked(logID)
	prevLiked, prevCount := th.liked, th.likesCount

	th.liked = !th.liked
	if th.liked {
		th.likesCount++
	} else if th.likesCount > 0 {
		th.likesCount--
	}
	th.likeGen++
	gen := th.likeGen
	s.mu.Unlock()

	summary, err := s.remote.ToggleLike(ctx, s.userID, logID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if th.likeGen != gen {
		// A newer toggle owns the thread now; this response is stale
		// either way.
		return s.snapshotLocked(logID, th), err
	}

	if err != nil {
		th.liked = prevLiked
		th.likesCount = prevCount
		return s.snapshotLocked(logID, th), err
	}

	th.liked = summary.UserLiked
	th.likesCount = summary.TotalLikes
	return s.snapshotLocked(logID, th), nil
}

// PostComment optimistically appends the comment and settles with the
// remote. Only one submission per log may be in flight; the pending entry
// is replaced by the server's comment on success and removed on failure.
func (s *Store) PostComment(ctx context.Context, logID uint, content, clientToken string) (ThreadView, error) {
	s.mu.Lock()
	th := s.threadLocked(logID)
	if th.posting {
		view := s.snapshotLocked(logID, th)
		s.mu.Unlock()
		return view, ErrPostInFlight
	}
	th.posting = true

	pending := models.Comment{
		UserID:    s.userID,
		LogID:     logID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	th.comments = append(th.comments, pending)
	s.mu.Unlock()

	created, err := s.remote.AddComment(ctx, service.AddCommentInput{
		UserID:      s.userID,
		LogID:       logID,
		Content:     content,
		ClientToken: clientToken,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	th.posting = false

	// Relocate the pending entry; positions may have shifted while the
	// call was in flight. Pending comments are the ones without an ID.
	idx := -1
	for i := len(th.comments) - 1; i >= 0; i-- {
		if th.comments[i].ID == 0 && th.comments[i].Content == content {
			idx = i
			break
		}
	}

	if err != nil {
		if idx >= 0 {
			th.comments = append(th.comments[:idx], th.comments[idx+1:]...)
		}
		return s.snapshotLocked(logID, th), err
	}

	if idx >= 0 {
		th.comments[idx] = *created
	} else {
		th.comments = append(th.comments, *created)
	}
	return s.snapshotLocked(logID, th), nil
}

// DeleteComment optimistically removes the comment and settles with the
// remote. A rejected delete, including another author's comment, restores
// the thread unchanged.
func (s *Store) DeleteComment(ctx context.Context, logID, commentID uint) (ThreadView, error) {
	s.mu.Lock()
	th := s.threadLocked(logID)

	idx := -1
	for i, c := range th.comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		view := s.snapshotLocked(logID, th)
		s.mu.Unlock()
		return view, models.NewNotFoundError("Comment", commentID)
	}
	removed := th.comments[idx]
	th.comments = append(th.comments[:idx], th.comments[idx+1:]...)
	s.mu.Unlock()

	err := s.remote.DeleteComment(ctx, s.userID, commentID)
	if err != nil {
		// Already gone remotely: the local removal stands.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			slog.Info("comment already deleted remotely", "comment_id", commentID)
			err = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Put it back where it was.
		if idx > len(th.comments) {
			idx = len(th.comments)
		}
		th.comments = append(th.comments, models.Comment{})
		copy(th.comments[idx+1:], th.comments[idx:])
		th.comments[idx] = removed
		return s.snapshotLocked(logID, th), err
	}
	return s.snapshotLocked(logID, th), nil
}

// View returns a snapshot of the log's current thread state.
func (s *Store) View(logID uint) ThreadView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(logID, s.threadLocked(logID))
}

func (s *Store) threadLocked(logID uint) *thread {
	th, ok := s.threads[logID]
	if !ok {
		th = &thread{}
		s.threads[logID] = th
	}
	return th
}

func (s *Store) snapshotLocked(logID uint, th *thread) ThreadView {
	comments := make([]models.Comment, len(th.comments))
	copy(comments, th.comments)
	return ThreadView{
		LogID:      logID,
		LikesCount: th.likesCount,
		Liked:      th.liked,
		Comments:   comments,
		Posting:    th.posting,
	}
}
