package repository

import (
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"gorm.io/gorm"
)

// activityRepository implements the ActivityRepository interface
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository instance
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// AttendanceCounts returns per-status attendance counts joined on event time.
func (r *activityRepository) AttendanceCounts(memberID uint, from, to time.Time) (*AttendanceCounts, error) {
	rows := []struct {
		Status string
		Total  int64
	}{}
	err := r.db.Model(&models.Attendance{}).
		Select("attendances.status AS status, COUNT(*) AS total").
		Joins("JOIN events ON events.id = attendances.event_id").
		Where("attendances.member_id = ? AND events.starts_at BETWEEN ? AND ?", memberID, from, to).
		Group("attendances.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &AttendanceCounts{}
	for _, row := range rows {
		switch row.Status {
		case models.AttendancePresent:
			counts.Present = row.Total
		case models.AttendanceAbsent:
			counts.Absent = row.Total
		case models.AttendanceLate:
			counts.Late = row.Total
		case models.AttendanceSubstitute:
			counts.Substitute = row.Total
		}
	}
	return counts, nil
}

// ReferralCounts returns referral aggregates for referrals given by the member.
func (r *activityRepository) ReferralCounts(memberID uint, from, to time.Time) (*ReferralCounts, error) {
	counts := &ReferralCounts{}

	window := r.db.Model(&models.Referral{}).
		Where("giver_id = ? AND created_at BETWEEN ? AND ?", memberID, from, to)

	if err := window.Session(&gorm.Session{}).
		Where("type = ?", models.ReferralTypeInternal).
		Count(&counts.Internal).Error; err != nil {
		return nil, err
	}
	if err := window.Session(&gorm.Session{}).
		Where("type = ?", models.ReferralTypeExternal).
		Count(&counts.External).Error; err != nil {
		return nil, err
	}
	if err := window.Session(&gorm.Session{}).
		Where("status = ?", models.ReferralStatusSuccessful).
		Count(&counts.Successful).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// VisitorCount counts invitations whose visitor actually showed up or joined.
func (r *activityRepository) VisitorCount(memberID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.VisitorInvite{}).
		Where("inviter_id = ? AND created_at BETWEEN ? AND ? AND status IN ?",
			memberID, from, to,
			[]string{models.VisitorStatusAttended, models.VisitorStatusJoined}).
		Count(&count).Error
	return count, err
}

// OneToOneCount counts meetings where the member is the requester.
func (r *activityRepository) OneToOneCount(memberID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.OneToOne{}).
		Where("requester_id = ? AND met_at BETWEEN ? AND ?", memberID, from, to).
		Count(&count).Error
	return count, err
}

// EducationHours sums completed education hours.
func (r *activityRepository) EducationHours(memberID uint, from, to time.Time) (float64, error) {
	var total struct {
		Hours float64
	}
	err := r.db.Model(&models.EducationRecord{}).
		Select("COALESCE(SUM(hours), 0) AS hours").
		Where("member_id = ? AND completed = ? AND created_at BETWEEN ? AND ?", memberID, true, from, to).
		Scan(&total).Error
	return total.Hours, err
}

// TopSuccessfulReferrer returns the member with the most SUCCESSFUL referrals
// given in the window, or nil when the window is empty. Ties break on the
// lowest member id.
func (r *activityRepository) TopSuccessfulReferrer(from, to time.Time) (*MetricWinner, error) {
	return r.topOne(r.db.Model(&models.Referral{}).
		Select("giver_id AS member_id, COUNT(*) AS value").
		Where("status = ? AND created_at BETWEEN ? AND ?", models.ReferralStatusSuccessful, from, to).
		Group("giver_id"))
}

// TopVisitorInviter returns the member with the most visitor invitations in
// the window, or nil when the window is empty.
func (r *activityRepository) TopVisitorInviter(from, to time.Time) (*MetricWinner, error) {
	return r.topOne(r.db.Model(&models.VisitorInvite{}).
		Select("inviter_id AS member_id, COUNT(*) AS value").
		Where("created_at BETWEEN ? AND ?", from, to).
		Group("inviter_id"))
}

// TopReferralRevenue returns the member with the highest closed referral
// volume (SUCCESSFUL only) in the window, or nil when the window is empty.
func (r *activityRepository) TopReferralRevenue(from, to time.Time) (*MetricWinner, error) {
	return r.topOne(r.db.Model(&models.Referral{}).
		Select("giver_id AS member_id, SUM(amount) AS value").
		Where("status = ? AND created_at BETWEEN ? AND ?", models.ReferralStatusSuccessful, from, to).
		Group("giver_id"))
}

func (r *activityRepository) topOne(query *gorm.DB) (*MetricWinner, error) {
	var winner MetricWinner
	err := query.Order("value DESC, member_id ASC").Limit(1).Scan(&winner).Error
	if err != nil {
		return nil, err
	}
	if winner.MemberID == 0 {
		// No rows in the window; not an error.
		return nil, nil
	}
	return &winner, nil
}
