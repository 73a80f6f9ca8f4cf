package repository

import (
	"github.com/chapterhub/chapterhub/app/models"
	"gorm.io/gorm"
)

// memberRepository implements the MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository instance
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member in the database
func (r *memberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// GetByID retrieves a member by their ID
func (r *memberRepository) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByEmail retrieves a member by their email address
func (r *memberRepository) GetByEmail(email string) (*models.Member, error) {
	var member models.Member
	err := r.db.Where("email = ?", email).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update saves all fields of the given member
func (r *memberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// SaveScore writes only the derived score fields, leaving everything else
// untouched so a concurrent subscription write cannot be clobbered.
func (r *memberRepository) SaveScore(memberID uint, score int, color string) error {
	return r.db.Model(&models.Member{}).Where("id = ?", memberID).Updates(map[string]interface{}{
		"performance_score": score,
		"performance_color": color,
	}).Error
}

// ListActiveWithSubscription returns all active members that have a
// subscription end date set, for the daily reminder scan.
func (r *memberRepository) ListActiveWithSubscription() ([]models.Member, error) {
	var members []models.Member
	err := r.db.
		Where("account_status = ? AND subscription_end_date IS NOT NULL", models.AccountStatusActive).
		Find(&members).Error
	return members, err
}

// SetReminderTrigger records the days-remaining value that last triggered a
// reminder for the member.
func (r *memberRepository) SetReminderTrigger(memberID uint, daysLeft int) error {
	return r.db.Model(&models.Member{}).Where("id = ?", memberID).
		Update("last_reminder_trigger", daysLeft).Error
}

// List retrieves members with pagination
func (r *memberRepository) List(offset, limit int) ([]models.Member, error) {
	var members []models.Member
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&members).Error
	return members, err
}

// Count returns the total number of members
func (r *memberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Member{}).Count(&count).Error
	return count, err
}
