package repository

import (
	"github.com/chapterhub/chapterhub/app/models"
	"gorm.io/gorm"
)

// championRepository implements the ChampionRepository interface
type championRepository struct {
	db *gorm.DB
}

// NewChampionRepository creates a new champion repository instance
func NewChampionRepository(db *gorm.DB) ChampionRepository {
	return &championRepository{db: db}
}

// Create appends one champion record
func (r *championRepository) Create(record *models.ChampionRecord) error {
	return r.db.Create(record).Error
}

// ListByPeriod returns the newest champion records for a period type
func (r *championRepository) ListByPeriod(periodType string, limit int) ([]models.ChampionRecord, error) {
	var records []models.ChampionRecord
	err := r.db.Where("period_type = ?", periodType).
		Order("period_date DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
