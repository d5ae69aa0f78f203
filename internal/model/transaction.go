package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

type Transaction struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	CompanyID     int64           `gorm:"not null;index:idx_company_occurred" json:"company_id"`
	AppointmentID *int64          `gorm:"index" json:"appointment_id,omitempty"`
	Kind          string          `gorm:"size:10;not null" json:"kind"` // income, expense
	Category      string          `gorm:"size:60" json:"category"`
	Description   string          `gorm:"size:255" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	OccurredAt    time.Time       `gorm:"not null;index:idx_company_occurred" json:"occurred_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
