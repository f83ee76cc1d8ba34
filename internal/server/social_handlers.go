package server

import (
	"ironlog/internal/models"
	"ironlog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/logs/:id/like.
// A like flips: liking an already-liked log removes the like. The response
// carries the authoritative count so clients can settle optimistic state.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.socialService.ToggleLike(ctx, userID, logID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(summary)
}

// GetComments handles GET /api/logs/:id/comments (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	comments, err := s.socialService.ListComments(ctx, logID, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(comments)
}

// CreateComment handles POST /api/logs/:id/comments.
// client_token deduplicates retried submissions: replaying a token returns
// the already-created comment instead of inserting a duplicate.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content     string `json:"content"`
		ClientToken string `json:"client_token,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.socialService.AddComment(ctx, service.AddCommentInput{
		UserID:      userID,
		LogID:       logID,
		Content:     req.Content,
		ClientToken: req.ClientToken,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// DeleteComment handles DELETE /api/logs/:id/comments/:commentId (author only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.socialService.DeleteComment(ctx, userID, commentID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
