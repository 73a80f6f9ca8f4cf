package scoring

import (
	"fmt"
	"log"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/app/repository"
	"github.com/chapterhub/chapterhub/internal/pkg/cache"
)

// ScoreWindow is the trailing window the score is derived from. It trails
// the wall clock, so recomputing at a later instant can yield a different
// score from the same ledger.
const ScoreWindow = 182 * 24 * time.Hour

const scoreCacheKey = "score:member:%d"
const scoreCacheExpiration = 30 * time.Minute

// ScoreCache receives freshly computed scores for read-side caching.
type ScoreCache interface {
	SetScore(memberID uint, score int) error
}

// Engine recomputes member performance scores from the activity ledger.
// Every recompute is a full re-derivation; nothing is incremented. Errors
// are logged and swallowed so the triggering write never fails on a stale
// score.
type Engine struct {
	Members  repository.MemberRepository
	History  repository.ScoreHistoryRepository
	Activity repository.ActivityRepository
	Weights  Weights
	Cache    ScoreCache
	Now      func() time.Time
}

// NewEngine creates a scoring engine with default weights and redis caching.
func NewEngine(members repository.MemberRepository, history repository.ScoreHistoryRepository, activity repository.ActivityRepository) *Engine {
	return &Engine{
		Members:  members,
		History:  history,
		Activity: activity,
		Weights:  DefaultWeights(),
		Cache:    redisScoreCache{},
		Now:      time.Now,
	}
}

// Recompute derives the member's score and color from the trailing activity
// window, persists both on the member and appends one audit sample. On any
// failure it logs, leaves the stored score stale and returns the member's
// previous values; callers can always proceed.
func (e *Engine) Recompute(memberID uint) (int, string) {
	member, err := e.Members.GetByID(memberID)
	if err != nil {
		log.Printf("[Scoring] member %d: load failed: %v", memberID, err)
		return 0, models.ColorGrey
	}

	score, color, err := e.compute(memberID)
	if err != nil {
		log.Printf("[Scoring] member %d: recompute failed, score stays stale: %v", memberID, err)
		return member.PerformanceScore, member.PerformanceColor
	}

	if err := e.Members.SaveScore(memberID, score, color); err != nil {
		log.Printf("[Scoring] member %d: persisting score failed: %v", memberID, err)
		return member.PerformanceScore, member.PerformanceColor
	}

	// Audit sample is written on every recompute, unchanged values included.
	sample := &models.ScoreHistory{MemberID: memberID, Score: score, Color: color}
	if err := e.History.Create(sample); err != nil {
		log.Printf("[Scoring] member %d: appending history failed: %v", memberID, err)
	}

	if e.Cache != nil {
		if err := e.Cache.SetScore(memberID, score); err != nil {
			log.Printf("[Scoring] member %d: caching score failed: %v", memberID, err)
		}
	}

	return score, color
}

func (e *Engine) compute(memberID uint) (int, string, error) {
	now := e.now()
	from := now.Add(-ScoreWindow)

	att, err := e.Activity.AttendanceCounts(memberID, from, now)
	if err != nil {
		return 0, "", fmt.Errorf("attendance counts: %w", err)
	}
	ref, err := e.Activity.ReferralCounts(memberID, from, now)
	if err != nil {
		return 0, "", fmt.Errorf("referral counts: %w", err)
	}
	visitors, err := e.Activity.VisitorCount(memberID, from, now)
	if err != nil {
		return 0, "", fmt.Errorf("visitor count: %w", err)
	}
	oneToOnes, err := e.Activity.OneToOneCount(memberID, from, now)
	if err != nil {
		return 0, "", fmt.Errorf("one-to-one count: %w", err)
	}
	eduHours, err := e.Activity.EducationHours(memberID, from, now)
	if err != nil {
		return 0, "", fmt.Errorf("education hours: %w", err)
	}

	w := e.Weights
	sum := int(att.Present)*w.Present +
		int(att.Absent)*w.Absent +
		int(att.Late)*w.Late +
		int(att.Substitute)*w.Substitute +
		int(ref.Internal)*w.ReferralInternal +
		int(ref.External)*w.ReferralExternal +
		int(ref.Successful)*w.SuccessfulBusiness +
		int(visitors)*w.Visitor +
		int(oneToOnes)*w.OneToOne +
		int(eduHours)*w.EducationUnit

	score := ClampScore(sum)
	return score, ColorForScore(score), nil
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

type redisScoreCache struct{}

func (redisScoreCache) SetScore(memberID uint, score int) error {
	return cache.Set(fmt.Sprintf(scoreCacheKey, memberID), score, scoreCacheExpiration)
}
