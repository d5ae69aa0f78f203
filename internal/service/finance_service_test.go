package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
	"github.com/qs3c/salon_go_server/internal/testutil"
)

func TestFinanceService_LockedOnGratuito(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.finance.RecordTransaction(ctx, f.companyID(), &dto.CreateTransactionRequest{
		Kind:   model.TransactionIncome,
		Amount: decimal.RequireFromString("10"),
	})
	assert.ErrorIs(t, err, ErrFeatureLocked)

	_, err = f.finance.ListTransactions(ctx, f.companyID(), "", "", "")
	assert.ErrorIs(t, err, ErrFeatureLocked)

	_, err = f.finance.Summary(ctx, f.companyID(), "", "")
	assert.ErrorIs(t, err, ErrFeatureLocked)
}

func TestFinanceService_RecordTransaction(t *testing.T) {
	f := newFixture(t, testutil.WithPlan("Profissional"))
	ctx := context.Background()

	item, err := f.finance.RecordTransaction(ctx, f.companyID(), &dto.CreateTransactionRequest{
		Kind:        model.TransactionExpense,
		Category:    "produtos",
		Description: "Shampoo",
		Amount:      decimal.RequireFromString("30.499"),
	})
	require.NoError(t, err)

	assert.Equal(t, "30.50", item.Amount)
	assert.Equal(t, "expense", item.Kind)
	assert.Equal(t, "2026-05-04T12:00:00Z", item.OccurredAt)
	assert.Equal(t, []string{pubsub.EventFinanceChanged}, f.events.types())
}

func TestFinanceService_RecordTransaction_Invalid(t *testing.T) {
	f := newFixture(t, testutil.WithPlan("Profissional"))
	ctx := context.Background()
	missing := int64(9999)

	tests := []struct {
		name string
		req  dto.CreateTransactionRequest
		want error
	}{
		{"zero amount", dto.CreateTransactionRequest{Kind: "income", Amount: decimal.Zero}, ErrInvalidInput},
		{"negative amount", dto.CreateTransactionRequest{Kind: "expense", Amount: decimal.RequireFromString("-5")}, ErrInvalidInput},
		{"unknown kind", dto.CreateTransactionRequest{Kind: "transfer", Amount: decimal.RequireFromString("5")}, ErrInvalidInput},
		{"unknown appointment", dto.CreateTransactionRequest{Kind: "income", Amount: decimal.RequireFromString("5"), AppointmentID: &missing}, ErrAppointmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.finance.RecordTransaction(ctx, f.companyID(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFinanceService_ListAndSummary(t *testing.T) {
	f := newFixture(t, testutil.WithPlan("Profissional"))
	ctx := context.Background()
	may := func(day int) time.Time { return time.Date(2026, 5, day, 10, 0, 0, 0, time.UTC) }

	testutil.TestTransaction(t, f.db, f.companyID(), model.TransactionIncome, "120.00", may(2))
	testutil.TestTransaction(t, f.db, f.companyID(), model.TransactionIncome, "45.50", may(3))
	testutil.TestTransaction(t, f.db, f.companyID(), model.TransactionExpense, "96.00", may(4))
	testutil.TestTransaction(t, f.db, f.companyID(), model.TransactionIncome, "500.00", time.Date(2026, 4, 30, 10, 0, 0, 0, time.UTC))

	summary, err := f.finance.Summary(ctx, f.companyID(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01", summary.From)
	assert.Equal(t, "2026-05-31", summary.To)
	assert.Equal(t, "165.50", summary.Income)
	assert.Equal(t, "96.00", summary.Expense)
	assert.Equal(t, "69.50", summary.Net)
	assert.Equal(t, 3, summary.Count)

	all, err := f.finance.ListTransactions(ctx, f.companyID(), "", "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "expense", all[0].Kind)

	income, err := f.finance.ListTransactions(ctx, f.companyID(), "2026-05-01", "2026-05-03", model.TransactionIncome)
	require.NoError(t, err)
	require.Len(t, income, 2)
	assert.Equal(t, "45.50", income[0].Amount)

	_, err = f.finance.ListTransactions(ctx, f.companyID(), "", "", "refund")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.finance.Summary(ctx, f.companyID(), "2026-05-10", "2026-05-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFinanceService_RecordAppointmentIncome(t *testing.T) {
	f := newFixture(t, testutil.WithPlan("Profissional"))
	ctx := context.Background()
	appt := testutil.TestAppointment(t, f.db, f.companyID(), f.salon.Client.ID, f.salon.Professional.ID, f.salon.Service.ID,
		time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC), testutil.WithAppointmentStatus("completed"))
	appt.Service = f.salon.Service
	appt.Client = f.salon.Client

	require.NoError(t, f.finance.RecordAppointmentIncome(ctx, f.companyID(), appt))
	require.NoError(t, f.finance.RecordAppointmentIncome(ctx, f.companyID(), appt))

	items, err := f.finance.ListTransactions(ctx, f.companyID(), "", "", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "50.00", items[0].Amount)
	assert.Equal(t, "servicos", items[0].Category)
	assert.Equal(t, f.salon.Service.Name+" - "+f.salon.Client.Name, items[0].Description)
}
