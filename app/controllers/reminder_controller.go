package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chapterhub/chapterhub/app/repository"
	"github.com/chapterhub/chapterhub/internal/pkg/database"
	"github.com/chapterhub/chapterhub/internal/pkg/reminder"
)

// HandleRemindersScan triggers the subscription reminder scan outside its
// scheduled daily run.
func HandleRemindersScan(c *fiber.Ctx) error {
	scanner := reminder.NewScanner(
		repository.GetGlobalRepositories().Member,
		reminder.NewMailNotifier(database.GetDB()),
	)

	emitted, err := scanner.Run()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "reminder scan failed"})
	}

	return c.JSON(fiber.Map{"reminders_emitted": emitted})
}
