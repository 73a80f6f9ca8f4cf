package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/internal/pkg/champions"
	"github.com/chapterhub/chapterhub/internal/pkg/reminder"
	"github.com/robfig/cron/v3"
)

// Scheduler owns the periodic champion computations and the daily
// subscription reminder scan. Jobs run to completion; cron fires each entry
// once per period, so a job never overlaps itself. Different period jobs
// may overlap each other; they touch disjoint rows.
type Scheduler struct {
	cron      *cron.Cron
	champions *champions.Engine
	scanner   *reminder.Scanner

	mu      sync.Mutex
	running bool
}

// New creates a scheduler for the given engines.
func New(championEngine *champions.Engine, scanner *reminder.Scanner) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		champions: championEngine,
		scanner:   scanner,
	}
}

// Start registers all jobs and starts the cron loop. Safe to call once;
// subsequent calls are no-ops until Stop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	jobs := []struct {
		spec string
		run  func()
	}{
		{spec: "30 8 * * *", run: s.runReminderScan},
		{spec: "0 6 * * MON", run: func() { s.runChampions(models.PeriodWeek) }},
		{spec: "15 6 1 * *", run: s.runMonthChampions},
		{spec: "30 6 1 1,5,9 *", run: func() { s.runChampions(models.PeriodTerm) }},
		{spec: "45 6 1 1 *", run: s.runYearChampions},
	}
	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, job.run); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.running = true
	log.Println("[Scheduler] champion and reminder jobs started")
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	log.Println("[Scheduler] stopped")
}

func (s *Scheduler) runReminderScan() {
	emitted, err := s.scanner.Run()
	if err != nil {
		log.Printf("[Scheduler] reminder scan failed: %v", err)
		return
	}
	log.Printf("[Scheduler] reminder scan done, %d reminder(s) emitted", emitted)
}

func (s *Scheduler) runChampions(periodType string) {
	now := time.Now()
	start, end, err := WindowFor(periodType, now)
	if err != nil {
		log.Printf("[Scheduler] %s champions: %v", periodType, err)
		return
	}
	written := s.champions.Compute(periodType, start, end)
	log.Printf("[Scheduler] %s champions computed, %d record(s)", periodType, written)
}

// runMonthChampions fires on the 1st and scores the fully completed
// previous month.
func (s *Scheduler) runMonthChampions() {
	start, end := previousMonthWindow(time.Now())
	written := s.champions.Compute(models.PeriodMonth, start, end)
	log.Printf("[Scheduler] MONTH champions computed, %d record(s)", written)
}

// runYearChampions fires on January 1st and scores the completed year.
func (s *Scheduler) runYearChampions() {
	start, end := previousYearWindow(time.Now())
	written := s.champions.Compute(models.PeriodYear, start, end)
	log.Printf("[Scheduler] YEAR champions computed, %d record(s)", written)
}
