package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/app/repository"
	"github.com/chapterhub/chapterhub/internal/pkg/champions"
	"github.com/chapterhub/chapterhub/internal/pkg/scheduler"
)

type championsComputeRequest struct {
	PeriodType  string `json:"period_type"`
	WindowStart string `json:"window_start"` // RFC3339, optional
	WindowEnd   string `json:"window_end"`   // RFC3339, optional
}

// HandleChampionsCompute runs the champion computation for one period type.
// Without an explicit window the period's default window relative to now is
// used, the same one the scheduled runs use.
func HandleChampionsCompute(c *fiber.Ctx) error {
	var req championsComputeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	periodType := strings.ToUpper(strings.TrimSpace(req.PeriodType))
	if !models.ValidPeriodType(periodType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid period_type"})
	}

	var start, end time.Time
	if req.WindowStart != "" || req.WindowEnd != "" {
		var err error
		if start, err = time.Parse(time.RFC3339, req.WindowStart); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "window_start must be RFC3339"})
		}
		if end, err = time.Parse(time.RFC3339, req.WindowEnd); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "window_end must be RFC3339"})
		}
		if !start.Before(end) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "window_start must be before window_end"})
		}
	} else {
		var err error
		if start, end, err = scheduler.WindowFor(periodType, time.Now()); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	repos := repository.GetGlobalRepositories()
	engine := champions.NewEngine(repos.Activity, repos.Champion)
	written := engine.Compute(periodType, start, end)

	return c.JSON(fiber.Map{
		"period_type":  periodType,
		"window_start": start,
		"window_end":   end,
		"records":      written,
	})
}

// HandleListChampions returns the newest champion records for a period type.
func HandleListChampions(c *fiber.Ctx) error {
	periodType := strings.ToUpper(strings.TrimSpace(c.Query("period_type")))
	if !models.ValidPeriodType(periodType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid period_type"})
	}

	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	records, err := repository.GetGlobalRepositories().Champion.ListByPeriod(periodType, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "champion lookup failed"})
	}

	return c.JSON(fiber.Map{"champions": records})
}
