package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	AccountStatusActive  = "ACTIVE"
	AccountStatusPending = "PENDING"
	AccountStatusPassive = "PASSIVE"
)

const (
	ColorGreen  = "GREEN"
	ColorYellow = "YELLOW"
	ColorRed    = "RED"
	ColorGrey   = "GREY"
)

// Member is a chapter member. The score fields are owned by the scoring
// engine, the subscription fields by payment reconciliation; everything else
// belongs to the surrounding platform.
type Member struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Name                string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email               string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,max=200"`
	Company             string         `gorm:"type:varchar(200);default:null" json:"company" validate:"max=200"`
	PerformanceScore    int            `gorm:"not null;default:0" json:"performance_score"`
	PerformanceColor    string         `gorm:"type:varchar(10);not null;default:'GREY'" json:"performance_color" validate:"oneof=GREEN YELLOW RED GREY"`
	AccountStatus       string         `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"account_status" validate:"oneof=ACTIVE PENDING PASSIVE"`
	SubscriptionEndDate *time.Time     `gorm:"type:timestamp;default:null;index" json:"subscription_end_date,omitempty"`
	SubscriptionPlan    string         `gorm:"type:varchar(50);default:null" json:"subscription_plan"`
	LastReminderTrigger *int           `gorm:"default:null" json:"-"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Member) Validate() error {
	v := validator.New()

	return v.Struct(m)
}

// IsActive reports whether the member account status is active
func (m *Member) IsActive() bool {
	return m.AccountStatus == AccountStatusActive
}
