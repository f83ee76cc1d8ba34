package server

import (
	"time"

	"ironlog/internal/models"
	"ironlog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMeasurement handles POST /api/measurements
func (s *Server) CreateMeasurement(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Weight     float64    `json:"weight"`
		Unit       string     `json:"unit,omitempty"`
		Notes      string     `json:"notes,omitempty"`
		DateLogged *time.Time `json:"date_logged,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateMeasurementInput{
		UserID: userID,
		Weight: req.Weight,
		Unit:   req.Unit,
		Notes:  req.Notes,
	}
	if req.DateLogged != nil {
		in.DateLogged = *req.DateLogged
	}

	created, err := s.measurementSvc.Create(ctx, in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetMeasurements handles GET /api/measurements
func (s *Server) GetMeasurements(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 50)

	measurements, err := s.measurementSvc.List(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(measurements)
}

// DeleteMeasurement handles DELETE /api/measurements/:id
func (s *Server) DeleteMeasurement(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.measurementSvc.Delete(ctx, userID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
