package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chapterhub/chapterhub/internal/pkg/statistics"
)

// HandleGetStatistics returns the cached chapter dashboard figures.
func HandleGetStatistics(c *fiber.Ctx) error {
	return c.JSON(statistics.GetStatistics())
}
