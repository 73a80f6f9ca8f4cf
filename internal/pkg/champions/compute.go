package champions

import (
	"log"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/app/repository"
)

// Engine computes per-metric leaderboard winners over a window and records
// one ChampionRecord per metric that has data. The three metrics are
// independent; one failing query never aborts the others.
type Engine struct {
	Activity  repository.ActivityRepository
	Champions repository.ChampionRepository
	Now       func() time.Time
}

// NewEngine creates a champion computation engine.
func NewEngine(activity repository.ActivityRepository, champions repository.ChampionRepository) *Engine {
	return &Engine{
		Activity:  activity,
		Champions: champions,
		Now:       time.Now,
	}
}

type metric struct {
	name  string
	query func(from, to time.Time) (*repository.MetricWinner, error)
}

// Compute records the top performer for each metric within [windowStart,
// windowEnd] and returns the number of records written. An empty window for
// a metric is a valid, silent outcome. PeriodDate is the invocation date,
// not the window end.
func (e *Engine) Compute(periodType string, windowStart, windowEnd time.Time) int {
	periodDate := e.now().Truncate(24 * time.Hour)
	written := 0

	metrics := []metric{
		{name: models.MetricReferralCount, query: e.Activity.TopSuccessfulReferrer},
		{name: models.MetricVisitorCount, query: e.Activity.TopVisitorInviter},
		{name: models.MetricRevenue, query: e.Activity.TopReferralRevenue},
	}

	for _, m := range metrics {
		winner, err := m.query(windowStart, windowEnd)
		if err != nil {
			log.Printf("[Champions] %s %s: query failed: %v", periodType, m.name, err)
			continue
		}
		if winner == nil {
			continue
		}

		record := &models.ChampionRecord{
			PeriodType: periodType,
			PeriodDate: periodDate,
			MetricType: m.name,
			MemberID:   winner.MemberID,
			Value:      winner.Value,
		}
		if err := e.Champions.Create(record); err != nil {
			log.Printf("[Champions] %s %s: writing record failed: %v", periodType, m.name, err)
			continue
		}
		written++
	}

	return written
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
