package controllers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chapterhub/chapterhub/internal/pkg/billing"
	"github.com/chapterhub/chapterhub/internal/pkg/database"
)

// HandlePaymentCallback processes the provider's server-to-server payment
// notification. The provider retries until it receives a plain "OK", so the
// handler only acknowledges states that must never be retried: verified
// callbacks (processed or deliberately ignored) and unknown orders. A bad
// signature or a failed write returns an error status and the provider
// redelivers.
func HandlePaymentCallback(c *fiber.Ctx) error {
	in := billing.CallbackInput{
		MerchantOrderID: strings.TrimSpace(c.FormValue("merchant_oid")),
		Status:          strings.TrimSpace(c.FormValue("status")),
		TotalAmount:     strings.TrimSpace(c.FormValue("total_amount")),
		Hash:            strings.TrimSpace(c.FormValue("hash")),
	}
	if in.MerchantOrderID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing merchant_oid")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := svc.Reconcile(ctx, in); err != nil {
		if errors.Is(err, billing.ErrInvalidSignature) {
			log.Printf("[Payment] callback for order %s rejected: invalid signature", in.MerchantOrderID)
			return c.Status(fiber.StatusBadRequest).SendString("invalid signature")
		}
		log.Printf("[Payment] callback for order %s failed: %v", in.MerchantOrderID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("reconcile failed")
	}

	return c.SendString("OK")
}

type createIntentRequest struct {
	MemberID uint   `json:"member_id"`
	PlanID   string `json:"plan_id"`
	Amount   int64  `json:"amount"`
}

// HandleCreatePaymentIntent opens a pending payment intent for a member and
// returns the order reference the provider checkout is started with.
func HandleCreatePaymentIntent(c *fiber.Ctx) error {
	var req createIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}
	if req.MemberID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "member_id required"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	intent, err := svc.CreateIntent(ctx, req.MemberID, req.PlanID, req.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"merchant_oid": intent.MerchantOrderID,
		"plan_id":      intent.PlanID,
		"amount":       intent.Amount,
		"status":       intent.Status,
	})
}
