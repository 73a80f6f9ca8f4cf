package models

import "time"

const (
	PeriodWeek  = "WEEK"
	PeriodMonth = "MONTH"
	PeriodTerm  = "TERM"
	PeriodYear  = "YEAR"
)

const (
	MetricReferralCount = "REFERRAL_COUNT"
	MetricVisitorCount  = "VISITOR_COUNT"
	MetricRevenue       = "REVENUE"
)

// ChampionRecord stores the single top performer for one metric within one
// reporting period. Records are append-only; repeated runs for the same
// window add additional rows with a newer PeriodDate.
type ChampionRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PeriodType string    `gorm:"type:varchar(10);not null;index:idx_champion_records_period,priority:1" json:"period_type"`
	PeriodDate time.Time `gorm:"type:date;not null;index:idx_champion_records_period,priority:2" json:"period_date"`
	MetricType string    `gorm:"type:varchar(20);not null;index" json:"metric_type"`
	MemberID   uint      `gorm:"not null;index" json:"member_id"`
	Value      float64   `gorm:"not null" json:"value"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ValidPeriodType reports whether p is one of the supported reporting periods.
func ValidPeriodType(p string) bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodTerm, PeriodYear:
		return true
	default:
		return false
	}
}
