package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
	"github.com/qs3c/salon_go_server/internal/plan"
)

const incomeCategoryServices = "servicos"

// FinanceService is the cash book. Everything except booking appointment
// income requires a plan with financial access.
type FinanceService struct {
	txs    TransactionStore
	appts  AppointmentStore
	subs   *SubscriptionService
	loc    locator
	events EventPublisher
	now    func() time.Time
}

func NewFinanceService(
	txs TransactionStore,
	appts AppointmentStore,
	companies CompanyStore,
	subs *SubscriptionService,
	events EventPublisher,
	defaultLoc *time.Location,
) *FinanceService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &FinanceService{
		txs:    txs,
		appts:  appts,
		subs:   subs,
		loc:    locator{companies: companies, fallback: defaultLoc},
		events: events,
		now:    time.Now,
	}
}

func (s *FinanceService) RecordTransaction(ctx context.Context, companyID int64, req *dto.CreateTransactionRequest) (*dto.TransactionItem, error) {
	if err := s.subs.RequireFeature(ctx, companyID, plan.FeatureFinancial); err != nil {
		return nil, err
	}
	if req.Kind != model.TransactionIncome && req.Kind != model.TransactionExpense {
		return nil, invalid("kind must be income or expense")
	}
	if !req.Amount.IsPositive() {
		return nil, invalid("amount must be positive")
	}
	_, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}

	if req.AppointmentID != nil {
		if _, err := s.appts.GetByID(companyID, *req.AppointmentID); err != nil {
			return nil, storeErr("get appointment", err, ErrAppointmentNotFound)
		}
	}

	occurredAt := s.now().UTC()
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
	}

	tx := &model.Transaction{
		CompanyID:     companyID,
		AppointmentID: req.AppointmentID,
		Kind:          req.Kind,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount.Round(2),
		OccurredAt:    occurredAt,
	}
	if err := s.txs.Create(tx); err != nil {
		return nil, storeErr("create transaction", err, nil)
	}

	publish(ctx, s.events, pubsub.EventFinanceChanged, companyID, tx.ID, "created")
	return transactionItem(tx, loc), nil
}

// ListTransactions returns the entries of a period, newest first. An empty
// kind lists both income and expense.
func (s *FinanceService) ListTransactions(ctx context.Context, companyID int64, from, to, kind string) ([]*dto.TransactionItem, error) {
	if err := s.subs.RequireFeature(ctx, companyID, plan.FeatureFinancial); err != nil {
		return nil, err
	}
	if kind != "" && kind != model.TransactionIncome && kind != model.TransactionExpense {
		return nil, invalid("kind must be income or expense")
	}
	_, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}
	period, err := parsePeriod(from, to, s.now(), loc)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.ListByRange(companyID, period.From.UTC(), period.To.UTC(), kind)
	if err != nil {
		return nil, storeErr("list transactions", err, nil)
	}

	items := make([]*dto.TransactionItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, transactionItem(tx, loc))
	}
	return items, nil
}

func (s *FinanceService) Summary(ctx context.Context, companyID int64, from, to string) (*dto.FinanceSummary, error) {
	if err := s.subs.RequireFeature(ctx, companyID, plan.FeatureFinancial); err != nil {
		return nil, err
	}
	_, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}
	period, err := parsePeriod(from, to, s.now(), loc)
	if err != nil {
		return nil, err
	}

	totals, err := s.totals(companyID, period)
	if err != nil {
		return nil, err
	}

	return &dto.FinanceSummary{
		From:    period.From.Format(dateLayout),
		To:      period.To.AddDate(0, 0, -1).Format(dateLayout),
		Income:  totals.income.StringFixed(2),
		Expense: totals.expense.StringFixed(2),
		Net:     totals.income.Sub(totals.expense).StringFixed(2),
		Count:   totals.count,
	}, nil
}

// RecordAppointmentIncome books a completed appointment's price as income.
// It does nothing on plans without financial access, for free appointments,
// or when the appointment was already booked.
func (s *FinanceService) RecordAppointmentIncome(ctx context.Context, companyID int64, appt *model.Appointment) error {
	details, err := s.subs.Details(ctx, companyID)
	if err != nil {
		return err
	}
	if !details.HasFinancialAccess || !appt.Price.IsPositive() {
		return nil
	}

	exists, err := s.txs.ExistsForAppointment(appt.ID)
	if err != nil {
		return storeErr("check appointment income", err, nil)
	}
	if exists {
		return nil
	}

	description := "Atendimento"
	if appt.Service != nil {
		description = appt.Service.Name
	}
	if appt.Client != nil {
		description += " - " + appt.Client.Name
	}

	apptID := appt.ID
	tx := &model.Transaction{
		CompanyID:     companyID,
		AppointmentID: &apptID,
		Kind:          model.TransactionIncome,
		Category:      incomeCategoryServices,
		Description:   description,
		Amount:        appt.Price,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.txs.Create(tx); err != nil {
		return storeErr("create appointment income", err, nil)
	}

	publish(ctx, s.events, pubsub.EventFinanceChanged, companyID, tx.ID, "created")
	return nil
}

type totals struct {
	income  decimal.Decimal
	expense decimal.Decimal
	count   int
}

func (s *FinanceService) totals(companyID int64, period Period) (totals, error) {
	txs, err := s.txs.ListByRange(companyID, period.From.UTC(), period.To.UTC(), "")
	if err != nil {
		return totals{}, storeErr("list transactions", err, nil)
	}

	t := totals{income: decimal.Zero, expense: decimal.Zero, count: len(txs)}
	for _, tx := range txs {
		switch tx.Kind {
		case model.TransactionIncome:
			t.income = t.income.Add(tx.Amount)
		case model.TransactionExpense:
			t.expense = t.expense.Add(tx.Amount)
		}
	}
	return t, nil
}

func transactionItem(tx *model.Transaction, loc *time.Location) *dto.TransactionItem {
	return &dto.TransactionItem{
		ID:            tx.ID,
		AppointmentID: tx.AppointmentID,
		Kind:          tx.Kind,
		Category:      tx.Category,
		Description:   tx.Description,
		Amount:        tx.Amount.StringFixed(2),
		OccurredAt:    tx.OccurredAt.In(loc).Format(timeLayout),
	}
}
