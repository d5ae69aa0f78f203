package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) GetByCompanyID(companyID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("company_id = ?", companyID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ConsumeAppointment counts one appointment against the cycle. With max >= 0
// the increment only happens while used < max, so concurrent requests cannot
// overshoot the quota; the result reports whether a unit was taken.
func (r *SubscriptionRepository) ConsumeAppointment(companyID int64, max int) (bool, error) {
	query := r.db.Model(&model.Subscription{}).Where("company_id = ?", companyID)
	if max >= 0 {
		query = query.Where("used_appointments < ?", max)
	}

	result := query.Update("used_appointments", gorm.Expr("used_appointments + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RefundAppointment gives one unit back, never going below zero.
func (r *SubscriptionRepository) RefundAppointment(companyID int64) error {
	return r.db.Model(&model.Subscription{}).Where("company_id = ?", companyID).
		Update("used_appointments", gorm.Expr("CASE WHEN used_appointments > 0 THEN used_appointments - 1 ELSE 0 END")).Error
}

func (r *SubscriptionRepository) UpdatePlan(companyID int64, plan string) error {
	return r.db.Model(&model.Subscription{}).Where("company_id = ?", companyID).
		Update("plan", plan).Error
}

// ResetCycle zeroes usage and starts a new cycle.
func (r *SubscriptionRepository) ResetCycle(id int64, cycleStart, nextReset time.Time) error {
	return r.db.Model(&model.Subscription{}).Where("id = ?", id).Updates(map[string]interface{}{
		"used_appointments": 0,
		"cycle_started_at":  cycleStart,
		"next_reset_at":     nextReset,
	}).Error
}

// ListExpired returns active subscriptions whose cycle ended at or before now.
func (r *SubscriptionRepository) ListExpired(now time.Time, limit int) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("status = ? AND next_reset_at <= ?", "active", now).
		Order("next_reset_at ASC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}
