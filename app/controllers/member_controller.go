package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/chapterhub/chapterhub/app/repository"
	"github.com/chapterhub/chapterhub/internal/pkg/scoring"
)

// HandleMemberScoreRecompute recomputes one member's performance score on
// demand, outside the regular recompute hooks.
func HandleMemberScoreRecompute(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil || memberID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid member id"})
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Member.GetByID(uint(memberID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "member lookup failed"})
	}

	engine := scoring.NewEngine(repos.Member, repos.ScoreHistory, repos.Activity)
	score, color := engine.Recompute(uint(memberID))

	return c.JSON(fiber.Map{
		"member_id": memberID,
		"score":     score,
		"color":     color,
	})
}

// HandleGetMember returns a member including the stored performance score
// and subscription state.
func HandleGetMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil || memberID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid member id"})
	}

	member, err := repository.GetGlobalRepositories().Member.GetByID(uint(memberID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "member lookup failed"})
	}

	return c.JSON(member)
}
