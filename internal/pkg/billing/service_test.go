package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	intents map[string]*models.PaymentIntent

	appliedMemberID uint
	appliedPlanID   string
	appliedEndDate  time.Time
	applyCalls      int
	applyErr        error
	statusErr       error
}

func newFakeRepo(intents ...*models.PaymentIntent) *fakeRepo {
	r := &fakeRepo{intents: map[string]*models.PaymentIntent{}}
	for _, intent := range intents {
		r.intents[intent.MerchantOrderID] = intent
	}
	return r
}

func (f *fakeRepo) CreateIntent(intent *models.PaymentIntent) error {
	f.intents[intent.MerchantOrderID] = intent
	return nil
}

func (f *fakeRepo) GetIntentByOrderID(orderID string) (*models.PaymentIntent, error) {
	intent, ok := f.intents[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *intent
	return &copied, nil
}

func (f *fakeRepo) UpdateIntentStatus(id uint, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	for _, intent := range f.intents {
		if intent.ID == id {
			intent.Status = status
		}
	}
	return nil
}

func (f *fakeRepo) ApplySubscription(memberID uint, planID string, endDate time.Time) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applyCalls++
	f.appliedMemberID = memberID
	f.appliedPlanID = planID
	f.appliedEndDate = endDate
	return nil
}

const testSecret = "merchant-secret"

var reconcileNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	svc := NewService(repo, testSecret)
	svc.now = func() time.Time { return reconcileNow }
	return svc
}

func signedCallback(orderID, status, amount string) CallbackInput {
	return CallbackInput{
		MerchantOrderID: orderID,
		Status:          status,
		TotalAmount:     amount,
		Hash:            CallbackSignature(orderID, testSecret, status, amount),
	}
}

func TestReconcileSuccessExtendsSubscription(t *testing.T) {
	repo := newFakeRepo(&models.PaymentIntent{
		ID:              1,
		MerchantOrderID: "order-1",
		MemberID:        42,
		PlanID:          PlanEightMonths,
		Status:          models.PaymentStatusPending,
	})
	svc := newTestService(repo)

	err := svc.Reconcile(context.Background(), signedCallback("order-1", "success", "49900"))
	require.NoError(t, err)

	assert.Equal(t, uint(42), repo.appliedMemberID)
	assert.Equal(t, PlanEightMonths, repo.appliedPlanID)

	want, _ := FixedTermEndDate(reconcileNow, 8)
	assert.True(t, repo.appliedEndDate.Equal(want),
		"end date %s, want FixedTermEndDate(now, 8) = %s", repo.appliedEndDate, want)
	assert.Equal(t, models.PaymentStatusSuccess, repo.intents["order-1"].Status)
}

func TestReconcileRejectsTamperedAmount(t *testing.T) {
	repo := newFakeRepo(&models.PaymentIntent{
		ID:              1,
		MerchantOrderID: "order-1",
		MemberID:        42,
		PlanID:          PlanFourMonths,
		Status:          models.PaymentStatusPending,
	})
	svc := newTestService(repo)

	in := signedCallback("order-1", "success", "49900")
	in.TotalAmount = "1" // hash unchanged

	err := svc.Reconcile(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidSignature)
	assert.Zero(t, repo.applyCalls, "no state change on bad signature")
	assert.Equal(t, models.PaymentStatusPending, repo.intents["order-1"].Status)
}

func TestReconcileUnknownOrderIsAcknowledged(t *testing.T) {
	svc := newTestService(newFakeRepo())

	err := svc.Reconcile(context.Background(), signedCallback("no-such-order", "success", "100"))
	require.NoError(t, err, "unknown order ids are stray notifications, not errors")
}

func TestReconcileTerminalIntentIsNoOp(t *testing.T) {
	for _, status := range []string{models.PaymentStatusSuccess, models.PaymentStatusFailed} {
		repo := newFakeRepo(&models.PaymentIntent{
			ID:              1,
			MerchantOrderID: "order-1",
			MemberID:        42,
			PlanID:          PlanTwelveMonths,
			Status:          status,
		})
		svc := newTestService(repo)

		err := svc.Reconcile(context.Background(), signedCallback("order-1", "success", "100"))
		require.NoError(t, err)
		assert.Zero(t, repo.applyCalls, "retried callback for %s intent must not re-extend", status)
		assert.Equal(t, status, repo.intents["order-1"].Status)
	}
}

func TestReconcileFailureStatusMarksIntentFailed(t *testing.T) {
	repo := newFakeRepo(&models.PaymentIntent{
		ID:              1,
		MerchantOrderID: "order-1",
		MemberID:        42,
		PlanID:          PlanFourMonths,
		Status:          models.PaymentStatusPending,
	})
	svc := newTestService(repo)

	err := svc.Reconcile(context.Background(), signedCallback("order-1", "failed", "49900"))
	require.NoError(t, err)
	assert.Zero(t, repo.applyCalls)
	assert.Equal(t, models.PaymentStatusFailed, repo.intents["order-1"].Status)
}

func TestReconcileUnknownPlanIsSurfaced(t *testing.T) {
	repo := newFakeRepo(&models.PaymentIntent{
		ID:              1,
		MerchantOrderID: "order-1",
		MemberID:        42,
		PlanID:          "LIFETIME",
		Status:          models.PaymentStatusPending,
	})
	svc := newTestService(repo)

	err := svc.Reconcile(context.Background(), signedCallback("order-1", "success", "100"))
	require.Error(t, err, "unknown plan ids must not default to the most generous term")
	assert.Zero(t, repo.applyCalls)
	assert.Equal(t, models.PaymentStatusPending, repo.intents["order-1"].Status)
}

func TestReconcileWriteFailureIsRetryable(t *testing.T) {
	repo := newFakeRepo(&models.PaymentIntent{
		ID:              1,
		MerchantOrderID: "order-1",
		MemberID:        42,
		PlanID:          PlanFourMonths,
		Status:          models.PaymentStatusPending,
	})
	repo.applyErr = errors.New("db down")
	svc := newTestService(repo)

	err := svc.Reconcile(context.Background(), signedCallback("order-1", "success", "100"))
	require.Error(t, err, "dropping a successful payment notification loses money")
	require.NotErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, models.PaymentStatusPending, repo.intents["order-1"].Status)
}

func TestCreateIntent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	intent, err := svc.CreateIntent(context.Background(), 42, PlanFourMonths, 49900)
	require.NoError(t, err)
	assert.NotEmpty(t, intent.MerchantOrderID)
	assert.Equal(t, models.PaymentStatusPending, intent.Status)

	_, err = svc.CreateIntent(context.Background(), 42, "WEEKLY", 100)
	require.Error(t, err)

	_, err = svc.CreateIntent(context.Background(), 0, PlanFourMonths, 100)
	require.Error(t, err)
}
