package models

import "time"

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

// PaymentIntent records a started payment attempt. It transitions exactly
// once from PENDING to SUCCESS or FAILED when the gateway callback is
// reconciled; callbacks for terminal intents are acknowledged without effect.
type PaymentIntent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MerchantOrderID string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"merchant_order_id"`
	MemberID        uint      `gorm:"not null;index" json:"member_id"`
	PlanID          string    `gorm:"type:varchar(50);not null" json:"plan_id"`
	Amount          int64     `gorm:"not null" json:"amount"` // minor currency units
	Status          string    `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsTerminal reports whether the intent already reached a final status.
func (p *PaymentIntent) IsTerminal() bool {
	return p.Status == PaymentStatusSuccess || p.Status == PaymentStatusFailed
}
