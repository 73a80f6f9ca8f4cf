package champions

import (
	"errors"
	"testing"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/app/repository"
)

type fakeActivityRepo struct {
	referrer    *repository.MetricWinner
	referrerErr error
	inviter     *repository.MetricWinner
	inviterErr  error
	revenue     *repository.MetricWinner
	revenueErr  error
}

func (f *fakeActivityRepo) AttendanceCounts(uint, time.Time, time.Time) (*repository.AttendanceCounts, error) {
	return nil, nil
}
func (f *fakeActivityRepo) ReferralCounts(uint, time.Time, time.Time) (*repository.ReferralCounts, error) {
	return nil, nil
}
func (f *fakeActivityRepo) VisitorCount(uint, time.Time, time.Time) (int64, error)   { return 0, nil }
func (f *fakeActivityRepo) OneToOneCount(uint, time.Time, time.Time) (int64, error)  { return 0, nil }
func (f *fakeActivityRepo) EducationHours(uint, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (f *fakeActivityRepo) TopSuccessfulReferrer(time.Time, time.Time) (*repository.MetricWinner, error) {
	return f.referrer, f.referrerErr
}
func (f *fakeActivityRepo) TopVisitorInviter(time.Time, time.Time) (*repository.MetricWinner, error) {
	return f.inviter, f.inviterErr
}
func (f *fakeActivityRepo) TopReferralRevenue(time.Time, time.Time) (*repository.MetricWinner, error) {
	return f.revenue, f.revenueErr
}

type fakeChampionRepo struct {
	records   []models.ChampionRecord
	createErr error
}

func (f *fakeChampionRepo) Create(r *models.ChampionRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, *r)
	return nil
}
func (f *fakeChampionRepo) ListByPeriod(string, int) ([]models.ChampionRecord, error) {
	return nil, nil
}

var testNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestEngine(activity *fakeActivityRepo, champions *fakeChampionRepo) *Engine {
	return &Engine{
		Activity:  activity,
		Champions: champions,
		Now:       func() time.Time { return testNow },
	}
}

func TestComputeWritesOneRecordPerMetric(t *testing.T) {
	activity := &fakeActivityRepo{
		referrer: &repository.MetricWinner{MemberID: 7, Value: 12},
		inviter:  &repository.MetricWinner{MemberID: 3, Value: 5},
		revenue:  &repository.MetricWinner{MemberID: 7, Value: 84000},
	}
	champions := &fakeChampionRepo{}

	written := newTestEngine(activity, champions).Compute(models.PeriodMonth, testNow.AddDate(0, -1, 0), testNow)

	if written != 3 {
		t.Fatalf("expected 3 records, got %d", written)
	}
	byMetric := map[string]models.ChampionRecord{}
	for _, r := range champions.records {
		byMetric[r.MetricType] = r
	}
	if r := byMetric[models.MetricReferralCount]; r.MemberID != 7 || r.Value != 12 {
		t.Fatalf("referral champion %+v", r)
	}
	if r := byMetric[models.MetricVisitorCount]; r.MemberID != 3 || r.Value != 5 {
		t.Fatalf("visitor champion %+v", r)
	}
	if r := byMetric[models.MetricRevenue]; r.MemberID != 7 || r.Value != 84000 {
		t.Fatalf("revenue champion %+v", r)
	}
	for _, r := range champions.records {
		if r.PeriodType != models.PeriodMonth {
			t.Fatalf("period type %s", r.PeriodType)
		}
		if !r.PeriodDate.Equal(testNow.Truncate(24 * time.Hour)) {
			t.Fatalf("period date must be the invocation date, got %v", r.PeriodDate)
		}
	}
}

func TestComputeEmptyMetricIsSilent(t *testing.T) {
	// No successful referrals: no REFERRAL_COUNT and no REVENUE record, but a
	// VISITOR_COUNT record can still be written.
	activity := &fakeActivityRepo{
		inviter: &repository.MetricWinner{MemberID: 9, Value: 2},
	}
	champions := &fakeChampionRepo{}

	written := newTestEngine(activity, champions).Compute(models.PeriodWeek, testNow.AddDate(0, 0, -7), testNow)

	if written != 1 {
		t.Fatalf("expected 1 record, got %d", written)
	}
	if champions.records[0].MetricType != models.MetricVisitorCount {
		t.Fatalf("expected VISITOR_COUNT, got %s", champions.records[0].MetricType)
	}
}

func TestComputeMetricFailureIsIsolated(t *testing.T) {
	activity := &fakeActivityRepo{
		referrerErr: errors.New("query timeout"),
		inviter:     &repository.MetricWinner{MemberID: 2, Value: 4},
		revenue:     &repository.MetricWinner{MemberID: 5, Value: 1000},
	}
	champions := &fakeChampionRepo{}

	written := newTestEngine(activity, champions).Compute(models.PeriodYear, testNow.AddDate(-1, 0, 0), testNow)

	if written != 2 {
		t.Fatalf("one failing metric must not abort the others, wrote %d", written)
	}
}
