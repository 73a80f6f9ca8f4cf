package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/app/repository"
	"gorm.io/gorm"
)

type fakeMemberRepo struct {
	members     map[uint]*models.Member
	savedScore  int
	savedColor  string
	saveErr     error
	scoreWrites int
}

func (f *fakeMemberRepo) Create(m *models.Member) error { return nil }
func (f *fakeMemberRepo) GetByID(id uint) (*models.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}
func (f *fakeMemberRepo) GetByEmail(string) (*models.Member, error) { return nil, gorm.ErrRecordNotFound }
func (f *fakeMemberRepo) Update(*models.Member) error               { return nil }
func (f *fakeMemberRepo) SaveScore(id uint, score int, color string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedScore = score
	f.savedColor = color
	f.scoreWrites++
	if m, ok := f.members[id]; ok {
		m.PerformanceScore = score
		m.PerformanceColor = color
	}
	return nil
}
func (f *fakeMemberRepo) ListActiveWithSubscription() ([]models.Member, error) { return nil, nil }
func (f *fakeMemberRepo) SetReminderTrigger(uint, int) error                   { return nil }
func (f *fakeMemberRepo) List(int, int) ([]models.Member, error)               { return nil, nil }
func (f *fakeMemberRepo) Count() (int64, error)                                { return 0, nil }

type fakeHistoryRepo struct {
	samples []models.ScoreHistory
}

func (f *fakeHistoryRepo) Create(s *models.ScoreHistory) error {
	f.samples = append(f.samples, *s)
	return nil
}
func (f *fakeHistoryRepo) ListByMember(uint, int) ([]models.ScoreHistory, error) { return nil, nil }

type fakeActivityRepo struct {
	attendance repository.AttendanceCounts
	referrals  repository.ReferralCounts
	visitors   int64
	oneToOnes  int64
	eduHours   float64
	err        error
}

func (f *fakeActivityRepo) AttendanceCounts(uint, time.Time, time.Time) (*repository.AttendanceCounts, error) {
	if f.err != nil {
		return nil, f.err
	}
	a := f.attendance
	return &a, nil
}
func (f *fakeActivityRepo) ReferralCounts(uint, time.Time, time.Time) (*repository.ReferralCounts, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := f.referrals
	return &r, nil
}
func (f *fakeActivityRepo) VisitorCount(uint, time.Time, time.Time) (int64, error) {
	return f.visitors, f.err
}
func (f *fakeActivityRepo) OneToOneCount(uint, time.Time, time.Time) (int64, error) {
	return f.oneToOnes, f.err
}
func (f *fakeActivityRepo) EducationHours(uint, time.Time, time.Time) (float64, error) {
	return f.eduHours, f.err
}
func (f *fakeActivityRepo) TopSuccessfulReferrer(time.Time, time.Time) (*repository.MetricWinner, error) {
	return nil, nil
}
func (f *fakeActivityRepo) TopVisitorInviter(time.Time, time.Time) (*repository.MetricWinner, error) {
	return nil, nil
}
func (f *fakeActivityRepo) TopReferralRevenue(time.Time, time.Time) (*repository.MetricWinner, error) {
	return nil, nil
}

func newTestEngine(members *fakeMemberRepo, history *fakeHistoryRepo, activity *fakeActivityRepo) *Engine {
	return &Engine{
		Members:  members,
		History:  history,
		Activity: activity,
		Weights:  DefaultWeights(),
		Now:      func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestRecomputeWeightedSum(t *testing.T) {
	members := &fakeMemberRepo{members: map[uint]*models.Member{1: {ID: 1}}}
	history := &fakeHistoryRepo{}
	activity := &fakeActivityRepo{
		attendance: repository.AttendanceCounts{Present: 3, Absent: 1, Late: 1, Substitute: 1},
		referrals:  repository.ReferralCounts{Internal: 1, External: 2, Successful: 1},
		visitors:   1,
		oneToOnes:  1,
		eduHours:   40, // weight is zero, must not contribute
	}

	engine := newTestEngine(members, history, activity)
	score, color := engine.Recompute(1)

	// 3*10 - 10 + 5 + 10 + 10 + 2*5 + 5 + 10 + 10 = 80
	if score != 80 {
		t.Fatalf("expected score 80, got %d", score)
	}
	if color != models.ColorGreen {
		t.Fatalf("expected GREEN, got %s", color)
	}
	if members.savedScore != 80 || members.savedColor != models.ColorGreen {
		t.Fatalf("persisted %d/%s, want 80/GREEN", members.savedScore, members.savedColor)
	}
	if len(history.samples) != 1 {
		t.Fatalf("expected 1 history sample, got %d", len(history.samples))
	}
	if history.samples[0].Score != 80 || history.samples[0].Color != models.ColorGreen {
		t.Fatalf("history sample %d/%s, want 80/GREEN", history.samples[0].Score, history.samples[0].Color)
	}
}

func TestRecomputeClampsNegativeToZero(t *testing.T) {
	members := &fakeMemberRepo{members: map[uint]*models.Member{1: {ID: 1}}}
	activity := &fakeActivityRepo{
		attendance: repository.AttendanceCounts{Absent: 12},
	}

	engine := newTestEngine(members, &fakeHistoryRepo{}, activity)
	score, color := engine.Recompute(1)

	if score != 0 {
		t.Fatalf("expected floor at 0, got %d", score)
	}
	if color != models.ColorGrey {
		t.Fatalf("expected GREY, got %s", color)
	}
}

func TestRecomputeClampsAboveHundred(t *testing.T) {
	members := &fakeMemberRepo{members: map[uint]*models.Member{1: {ID: 1}}}
	activity := &fakeActivityRepo{
		attendance: repository.AttendanceCounts{Present: 26},
	}

	engine := newTestEngine(members, &fakeHistoryRepo{}, activity)
	score, color := engine.Recompute(1)

	if score != 100 {
		t.Fatalf("expected cap at 100, got %d", score)
	}
	if color != models.ColorGreen {
		t.Fatalf("expected GREEN, got %s", color)
	}
}

func TestRecomputeIsIdempotentAtSameInstant(t *testing.T) {
	members := &fakeMemberRepo{members: map[uint]*models.Member{1: {ID: 1}}}
	history := &fakeHistoryRepo{}
	activity := &fakeActivityRepo{
		attendance: repository.AttendanceCounts{Present: 4},
		visitors:   1,
	}

	engine := newTestEngine(members, history, activity)
	first, _ := engine.Recompute(1)
	second, _ := engine.Recompute(1)

	if first != second {
		t.Fatalf("same ledger, same instant: %d vs %d", first, second)
	}
	// Both runs append a sample: the audit trail is not deduplicated.
	if len(history.samples) != 2 {
		t.Fatalf("expected 2 history samples, got %d", len(history.samples))
	}
}

func TestRecomputeSwallowsQueryErrors(t *testing.T) {
	members := &fakeMemberRepo{members: map[uint]*models.Member{
		1: {ID: 1, PerformanceScore: 55, PerformanceColor: models.ColorYellow},
	}}
	history := &fakeHistoryRepo{}
	activity := &fakeActivityRepo{err: errors.New("ledger unavailable")}

	engine := newTestEngine(members, history, activity)
	score, color := engine.Recompute(1)

	if score != 55 || color != models.ColorYellow {
		t.Fatalf("expected stale 55/YELLOW back, got %d/%s", score, color)
	}
	if members.scoreWrites != 0 {
		t.Fatalf("score must not be persisted on failure")
	}
	if len(history.samples) != 0 {
		t.Fatalf("no history sample on failure, got %d", len(history.samples))
	}
}

func TestRecomputeSwallowsPersistErrors(t *testing.T) {
	members := &fakeMemberRepo{
		members: map[uint]*models.Member{1: {ID: 1, PerformanceScore: 10, PerformanceColor: models.ColorGrey}},
		saveErr: errors.New("write failed"),
	}
	engine := newTestEngine(members, &fakeHistoryRepo{}, &fakeActivityRepo{
		attendance: repository.AttendanceCounts{Present: 5},
	})

	score, color := engine.Recompute(1)
	if score != 10 || color != models.ColorGrey {
		t.Fatalf("expected stale values on persist failure, got %d/%s", score, color)
	}
}

func TestColorForScoreBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: 100, want: models.ColorGreen},
		{score: 70, want: models.ColorGreen},
		{score: 69, want: models.ColorYellow},
		{score: 50, want: models.ColorYellow},
		{score: 49, want: models.ColorRed},
		{score: 30, want: models.ColorRed},
		{score: 29, want: models.ColorGrey},
		{score: 0, want: models.ColorGrey},
	}

	for _, tt := range tests {
		if got := ColorForScore(tt.score); got != tt.want {
			t.Fatalf("ColorForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestColorNeverDivergesFromScore(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		color := ColorForScore(score)
		switch {
		case score >= 70 && color != models.ColorGreen,
			score >= 50 && score < 70 && color != models.ColorYellow,
			score >= 30 && score < 50 && color != models.ColorRed,
			score < 30 && color != models.ColorGrey:
			t.Fatalf("score %d banded as %s", score, color)
		}
	}
}
