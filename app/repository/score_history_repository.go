package repository

import (
	"github.com/chapterhub/chapterhub/app/models"
	"gorm.io/gorm"
)

// scoreHistoryRepository implements the ScoreHistoryRepository interface
type scoreHistoryRepository struct {
	db *gorm.DB
}

// NewScoreHistoryRepository creates a new score history repository instance
func NewScoreHistoryRepository(db *gorm.DB) ScoreHistoryRepository {
	return &scoreHistoryRepository{db: db}
}

// Create appends one audit sample
func (r *scoreHistoryRepository) Create(sample *models.ScoreHistory) error {
	return r.db.Create(sample).Error
}

// ListByMember returns the newest samples for a member
func (r *scoreHistoryRepository) ListByMember(memberID uint, limit int) ([]models.ScoreHistory, error) {
	var samples []models.ScoreHistory
	err := r.db.Where("member_id = ?", memberID).
		Order("created_at DESC").
		Limit(limit).
		Find(&samples).Error
	return samples, err
}
