package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/internal/model"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

// ListByRange returns entries in [from, to), newest first. An empty kind
// matches both income and expense.
func (r *TransactionRepository) ListByRange(companyID int64, from, to time.Time, kind string) ([]*model.Transaction, error) {
	var txs []*model.Transaction
	query := r.db.Where("company_id = ? AND occurred_at >= ? AND occurred_at < ?", companyID, from, to)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("occurred_at DESC, id DESC").Find(&txs).Error
	return txs, err
}

func (r *TransactionRepository) ExistsForAppointment(appointmentID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).Where("appointment_id = ?", appointmentID).Count(&count).Error
	return count > 0, err
}
