package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/internal/pkg/env"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidSignature is returned when a callback's declared hash does not
// match the recomputed one. This is the one case that must not be
// acknowledged to the gateway.
var ErrInvalidSignature = errors.New("callback signature mismatch")

// Service reconciles gateway payment callbacks against recorded payment
// intents and extends member subscriptions.
type Service struct {
	repo   Repository
	secret string
	now    func() time.Time
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository, secret string) *Service {
	return &Service{repo: repo, secret: secret, now: time.Now}
}

// NewServiceFromDB creates a billing service from a GORM DB handle with the
// callback secret taken from the environment.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), env.GetEnv("PAYMENT_CALLBACK_SECRET", ""))
}

// CreateIntent records a pending payment attempt and returns it. The
// merchant order id is generated here and later matched by Reconcile.
func (s *Service) CreateIntent(ctx context.Context, memberID uint, planID string, amount int64) (*models.PaymentIntent, error) {
	_ = ctx
	if memberID == 0 {
		return nil, errors.New("member_id is required")
	}
	if _, err := PlanMonths(planID); err != nil {
		return nil, err
	}

	intent := &models.PaymentIntent{
		MerchantOrderID: uuid.NewString(),
		MemberID:        memberID,
		PlanID:          planID,
		Amount:          amount,
		Status:          models.PaymentStatusPending,
	}
	if err := s.repo.CreateIntent(intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// Reconcile verifies and applies one gateway callback.
//
// A nil return means the callback may be acknowledged, including the cases
// where nothing happened: unknown order ids and intents already in a
// terminal state are treated as duplicate or stray notifications, not
// errors. ErrInvalidSignature means the caller must answer non-success so
// the gateway's retry and alerting path fires. Any other error is a write
// failure the gateway should retry, because dropping a successful payment
// notification silently loses money.
func (s *Service) Reconcile(ctx context.Context, in CallbackInput) error {
	_ = ctx
	if !VerifyCallbackSignature(in.MerchantOrderID, s.secret, in.Status, in.TotalAmount, in.Hash) {
		return ErrInvalidSignature
	}

	intent, err := s.repo.GetIntentByOrderID(in.MerchantOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Billing] callback for unknown order %s acknowledged without action", in.MerchantOrderID)
			return nil
		}
		return fmt.Errorf("looking up payment intent: %w", err)
	}

	if intent.IsTerminal() {
		// Gateway retry for an already reconciled order; re-applying would
		// double-extend the subscription.
		log.Printf("[Billing] order %s already %s, callback ignored", intent.MerchantOrderID, intent.Status)
		return nil
	}

	if in.Status != CallbackStatusSuccess {
		if err := s.repo.UpdateIntentStatus(intent.ID, models.PaymentStatusFailed); err != nil {
			return fmt.Errorf("marking intent failed: %w", err)
		}
		log.Printf("[Billing] order %s reported %s, intent marked FAILED", intent.MerchantOrderID, in.Status)
		return nil
	}

	months, err := PlanMonths(intent.PlanID)
	if err != nil {
		return fmt.Errorf("intent %s: %w", intent.MerchantOrderID, err)
	}
	endDate, err := FixedTermEndDate(s.now(), months)
	if err != nil {
		return fmt.Errorf("intent %s: %w", intent.MerchantOrderID, err)
	}

	if err := s.repo.ApplySubscription(intent.MemberID, intent.PlanID, endDate); err != nil {
		return fmt.Errorf("extending subscription for member %d: %w", intent.MemberID, err)
	}
	if err := s.repo.UpdateIntentStatus(intent.ID, models.PaymentStatusSuccess); err != nil {
		return fmt.Errorf("marking intent successful: %w", err)
	}

	log.Printf("[Billing] order %s reconciled: member %d extended to %s on plan %s",
		intent.MerchantOrderID, intent.MemberID, endDate.Format(time.RFC3339), intent.PlanID)
	return nil
}
