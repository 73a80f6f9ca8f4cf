package repository

import (
	"time"

	"github.com/chapterhub/chapterhub/app/models"
)

// MemberRepository defines the interface for member-related database operations
type MemberRepository interface {
	Create(member *models.Member) error
	GetByID(id uint) (*models.Member, error)
	GetByEmail(email string) (*models.Member, error)
	Update(member *models.Member) error
	SaveScore(memberID uint, score int, color string) error
	ListActiveWithSubscription() ([]models.Member, error)
	SetReminderTrigger(memberID uint, daysLeft int) error
	List(offset, limit int) ([]models.Member, error)
	Count() (int64, error)
}

// ScoreHistoryRepository defines the interface for the score audit trail.
// Samples are append-only; there is deliberately no update or delete.
type ScoreHistoryRepository interface {
	Create(sample *models.ScoreHistory) error
	ListByMember(memberID uint, limit int) ([]models.ScoreHistory, error)
}

// ActivityRepository aggregates the read-only activity ledger. All window
// arguments are half-open on neither side: rows with a timestamp in
// [from, to] count.
type ActivityRepository interface {
	AttendanceCounts(memberID uint, from, to time.Time) (*AttendanceCounts, error)
	ReferralCounts(memberID uint, from, to time.Time) (*ReferralCounts, error)
	VisitorCount(memberID uint, from, to time.Time) (int64, error)
	OneToOneCount(memberID uint, from, to time.Time) (int64, error)
	EducationHours(memberID uint, from, to time.Time) (float64, error)

	TopSuccessfulReferrer(from, to time.Time) (*MetricWinner, error)
	TopVisitorInviter(from, to time.Time) (*MetricWinner, error)
	TopReferralRevenue(from, to time.Time) (*MetricWinner, error)
}

// ChampionRepository defines the interface for champion record operations
type ChampionRepository interface {
	Create(record *models.ChampionRecord) error
	ListByPeriod(periodType string, limit int) ([]models.ChampionRecord, error)
}

// AttendanceCounts holds per-status attendance counts for one member within
// a window, joined on event time rather than row creation time.
type AttendanceCounts struct {
	Present    int64
	Absent     int64
	Late       int64
	Substitute int64
}

// ReferralCounts holds referral aggregates for one member within a window.
// Successful counts referrals whose status is SUCCESSFUL regardless of type.
type ReferralCounts struct {
	Internal   int64
	External   int64
	Successful int64
}

// MetricWinner is one leaderboard winner row.
type MetricWinner struct {
	MemberID uint
	Value    float64
}
