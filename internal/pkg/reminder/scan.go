package reminder

import (
	"log"
	"math"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/app/repository"
)

// Thresholds are the days-remaining values that trigger a subscription
// expiry reminder. Each threshold fires at most once per member, tracked by
// the member's last reminder trigger marker.
var Thresholds = []int{30, 15, 10, 5, 3, 1}

// Notifier delivers one expiry reminder to a member.
type Notifier interface {
	NotifyExpiry(member *models.Member, daysLeft int) error
}

// Scanner runs the daily subscription reminder scan.
type Scanner struct {
	Members  repository.MemberRepository
	Notifier Notifier
	Now      func() time.Time
}

// NewScanner creates a reminder scanner.
func NewScanner(members repository.MemberRepository, notifier Notifier) *Scanner {
	return &Scanner{
		Members:  members,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// Run scans all active members with a subscription end date and emits one
// reminder for each member whose days-remaining hit a threshold that has
// not fired yet. Returns the number of reminders emitted.
func (s *Scanner) Run() (int, error) {
	members, err := s.Members.ListActiveWithSubscription()
	if err != nil {
		return 0, err
	}

	now := s.now()
	emitted := 0
	for i := range members {
		member := &members[i]
		if member.SubscriptionEndDate == nil {
			continue
		}

		daysLeft := DaysLeft(*member.SubscriptionEndDate, now)
		if !isThreshold(daysLeft) {
			continue
		}
		if member.LastReminderTrigger != nil && *member.LastReminderTrigger == daysLeft {
			// This threshold already fired for this member.
			continue
		}

		if err := s.Notifier.NotifyExpiry(member, daysLeft); err != nil {
			log.Printf("[Reminder] member %d: notification failed: %v", member.ID, err)
			continue
		}
		if err := s.Members.SetReminderTrigger(member.ID, daysLeft); err != nil {
			log.Printf("[Reminder] member %d: saving trigger marker failed: %v", member.ID, err)
			continue
		}
		emitted++
	}

	return emitted, nil
}

// DaysLeft returns the number of whole or partial days between now and the
// subscription end date, rounded up.
func DaysLeft(endDate, now time.Time) int {
	return int(math.Ceil(endDate.Sub(now).Hours() / 24))
}

func isThreshold(daysLeft int) bool {
	for _, t := range Thresholds {
		if t == daysLeft {
			return true
		}
	}
	return false
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
