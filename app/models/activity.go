package models

import "time"

// Activity ledger tables. This core only reads them; the surrounding
// platform's CRUD handlers own all writes.

const (
	AttendancePresent    = "PRESENT"
	AttendanceAbsent     = "ABSENT"
	AttendanceLate       = "LATE"
	AttendanceSubstitute = "SUBSTITUTE"
)

const (
	ReferralTypeInternal = "INTERNAL"
	ReferralTypeExternal = "EXTERNAL"

	ReferralStatusOpen       = "OPEN"
	ReferralStatusContacted  = "CONTACTED"
	ReferralStatusSuccessful = "SUCCESSFUL"
	ReferralStatusClosed     = "CLOSED"
)

const (
	VisitorStatusInvited  = "INVITED"
	VisitorStatusAttended = "ATTENDED"
	VisitorStatusJoined   = "JOINED"
	VisitorStatusNoShow   = "NO_SHOW"
)

// Event is a chapter meeting that attendance records hang off.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(200)" json:"title"`
	StartsAt  time.Time `gorm:"not null;index" json:"starts_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	Event     Event     `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Status    string    `gorm:"type:varchar(12);not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// Referral is a business referral given by one member to another. Amount is
// the closed business volume in minor currency units, populated when the
// referral becomes SUCCESSFUL.
type Referral struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GiverID    uint      `gorm:"not null;index" json:"giver_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Type       string    `gorm:"type:varchar(10);not null" json:"type"`
	Status     string    `gorm:"type:varchar(12);not null;default:'OPEN';index" json:"status"`
	Amount     float64   `gorm:"not null;default:0" json:"amount"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

type VisitorInvite struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InviterID   uint      `gorm:"not null;index" json:"inviter_id"`
	VisitorName string    `gorm:"type:varchar(150)" json:"visitor_name"`
	Status      string    `gorm:"type:varchar(10);not null;default:'INVITED';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

type OneToOne struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"not null;index" json:"requester_id"`
	PartnerID   uint      `gorm:"not null;index" json:"partner_id"`
	MetAt       time.Time `gorm:"not null" json:"met_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (OneToOne) TableName() string {
	return "one_to_ones"
}

type EducationRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	Topic     string    `gorm:"type:varchar(200)" json:"topic"`
	Hours     float64   `gorm:"not null;default:0" json:"hours"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
