package server

import (
	"ironlog/internal/models"
	"ironlog/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard handles GET /api/leaderboard.
// Without lift_type_id it returns the latest-lifts board; with it, the
// heaviest-lift board for that lift type. The liked flag on each row is
// populated when the request carries a valid session.
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, _ := s.optionalUserID(c)

	limit := c.QueryInt("limit", repository.LeaderboardLimit)

	liftTypeID := c.QueryInt("lift_type_id", 0)
	if liftTypeID < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid lift type ID"))
	}

	var (
		rows []models.LeaderboardRow
		err  error
	)
	if liftTypeID > 0 {
		rows, err = s.leaderboard.ByLift(ctx, uint(liftTypeID), limit, userID)
	} else {
		rows, err = s.leaderboard.Latest(ctx, limit, userID)
	}
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(rows)
}

// GetFeatureFlags handles GET /api/admin/feature-flags (admin only)
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	return c.JSON(fiber.Map{
		"raw":      s.featureFlags.Raw(),
		"resolved": s.featureFlags.Snapshot(userID),
	})
}
