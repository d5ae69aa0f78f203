package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/testutil"
)

func TestTransactionRepository_ListByRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewTransactionRepository(db)
	company := testutil.TestCompany(t, db)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	testutil.TestTransaction(t, db, company.ID, model.TransactionIncome, "120.00", base.Add(24*time.Hour))
	testutil.TestTransaction(t, db, company.ID, model.TransactionExpense, "30.00", base.Add(48*time.Hour))
	testutil.TestTransaction(t, db, company.ID, model.TransactionIncome, "80.00", base.AddDate(0, 1, 0))

	txs, err := repo.ListByRange(company.ID, base, base.AddDate(0, 1, 0), "")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, model.TransactionExpense, txs[0].Kind)

	incomes, err := repo.ListByRange(company.ID, base, base.AddDate(0, 1, 0), model.TransactionIncome)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.True(t, incomes[0].Amount.Equal(decimal.RequireFromString("120.00")))
}

func TestTransactionRepository_ExistsForAppointment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewTransactionRepository(db)
	company := testutil.TestCompany(t, db)
	apptID := int64(77)

	exists, err := repo.ExistsForAppointment(apptID)
	require.NoError(t, err)
	assert.False(t, exists)

	tx := &model.Transaction{
		CompanyID:     company.ID,
		AppointmentID: &apptID,
		Kind:          model.TransactionIncome,
		Amount:        testutil.TestService(t, db, company.ID).Price,
		OccurredAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(tx))

	exists, err = repo.ExistsForAppointment(apptID)
	require.NoError(t, err)
	assert.True(t, exists)
}
