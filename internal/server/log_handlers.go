// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"strings"
	"time"

	"ironlog/internal/models"
	"ironlog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateLog handles POST /api/logs
func (s *Server) CreateLog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		LiftTypeID *uint      `json:"lift_type_id,omitempty"`
		LiftName   string     `json:"lift_name,omitempty"`
		Weight     float64    `json:"weight"`
		Unit       string     `json:"unit,omitempty"`
		Reps       int        `json:"reps"`
		RPE        *int       `json:"rpe,omitempty"`
		BodyWeight *float64   `json:"body_weight,omitempty"`
		Notes      string     `json:"notes,omitempty"`
		DateLogged *time.Time `json:"date_logged,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateLogInput{
		UserID:     userID,
		LiftTypeID: req.LiftTypeID,
		LiftName:   req.LiftName,
		Weight:     req.Weight,
		Unit:       req.Unit,
		Reps:       req.Reps,
		RPE:        req.RPE,
		BodyWeight: req.BodyWeight,
		Notes:      req.Notes,
	}
	if req.DateLogged != nil {
		in.DateLogged = *req.DateLogged
	}

	created, err := s.logService.CreateLog(ctx, in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetLogs handles GET /api/logs and lists the current user's history.
func (s *Server) GetLogs(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	var liftTypeID *uint
	if id := c.QueryInt("lift_type_id", 0); id > 0 {
		v := uint(id)
		liftTypeID = &v
	}

	logs, err := s.logService.ListLogs(ctx, service.ListLogsInput{
		UserID:        userID,
		LiftTypeID:    liftTypeID,
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(logs)
}

// GetLog handles GET /api/logs/:id (public, liked flag requires a session)
func (s *Server) GetLog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	logEntry, err := s.logService.GetLog(ctx, id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(logEntry)
}

// UpdateLog handles PUT /api/logs/:id
func (s *Server) UpdateLog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Weight *float64 `json:"weight,omitempty"`
		Reps   *int     `json:"reps,omitempty"`
		RPE    *int     `json:"rpe,omitempty"`
		Notes  *string  `json:"notes,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.logService.UpdateLog(ctx, service.UpdateLogInput{
		UserID: userID,
		LogID:  logID,
		Weight: req.Weight,
		Reps:   req.Reps,
		RPE:    req.RPE,
		Notes:  req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(updated)
}

// DeleteLog handles DELETE /api/logs/:id
func (s *Server) DeleteLog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.logService.DeleteLog(ctx, userID, logID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetProgress handles GET /api/logs/progress?lift_type_id=N&tz=America/New_York
func (s *Server) GetProgress(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	liftTypeID := c.QueryInt("lift_type_id", 0)
	if liftTypeID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lift_type_id query parameter is required"))
	}

	points, err := s.logService.Progress(ctx, userID, uint(liftTypeID), parseLocation(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(points)
}

// GetActivity handles GET /api/logs/activity?days=60&tz=America/New_York
func (s *Server) GetActivity(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	buckets, err := s.logService.Activity(ctx, userID, c.QueryInt("days", 0), parseLocation(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(buckets)
}

// GetLiftTypes handles GET /api/lift-types
func (s *Server) GetLiftTypes(c *fiber.Ctx) error {
	liftTypes, err := s.logService.ListLiftTypes(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(liftTypes)
}

// CreateLiftType handles POST /api/admin/lift-types (admin only).
// Admin check is enforced by AdminRequired middleware on the route.
func (s *Server) CreateLiftType(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Category    string `json:"category,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	lt := &models.LiftType{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
	}
	if err := s.liftTypeRepo.Create(ctx, lt); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(lt)
}
