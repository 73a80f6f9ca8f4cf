package billing

import (
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"gorm.io/gorm"
)

// Repository provides the DB operations used by the billing service.
type Repository interface {
	CreateIntent(intent *models.PaymentIntent) error
	GetIntentByOrderID(merchantOrderID string) (*models.PaymentIntent, error)
	UpdateIntentStatus(id uint, status string) error
	ApplySubscription(memberID uint, planID string, endDate time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateIntent(intent *models.PaymentIntent) error {
	return r.db.Create(intent).Error
}

func (r *gormRepository) GetIntentByOrderID(merchantOrderID string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := r.db.Where("merchant_order_id = ?", merchantOrderID).First(&intent).Error
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (r *gormRepository) UpdateIntentStatus(id uint, status string) error {
	return r.db.Model(&models.PaymentIntent{}).Where("id = ?", id).
		Update("status", status).Error
}

// ApplySubscription writes the extended subscription onto the member: new
// end date and plan, account set active, reminder marker cleared so the
// next reminder cycle starts fresh.
func (r *gormRepository) ApplySubscription(memberID uint, planID string, endDate time.Time) error {
	return r.db.Model(&models.Member{}).Where("id = ?", memberID).Updates(map[string]interface{}{
		"subscription_end_date": endDate,
		"subscription_plan":     planID,
		"account_status":        models.AccountStatusActive,
		"last_reminder_trigger": nil,
	}).Error
}
