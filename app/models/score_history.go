package models

import "time"

// ScoreHistory is the append-only audit trail of score recomputations. Rows
// are never updated or deleted; every recompute writes one, even when the
// value did not change.
type ScoreHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	Score     int       `gorm:"not null" json:"score"`
	Color     string    `gorm:"type:varchar(10);not null" json:"color"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ScoreHistory) TableName() string {
	return "score_history"
}
