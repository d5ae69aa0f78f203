package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/plan"
	"github.com/qs3c/salon_go_server/internal/repository"
	"github.com/qs3c/salon_go_server/internal/schedule"
)

const reportLinkSeconds = 3600

// ReportService builds period reports. Every operation requires a plan with reports.
type ReportService struct {
	appts   AppointmentStore
	pros    ProfessionalStore
	finance *FinanceService
	subs    *SubscriptionService
	storage ReportStorage
	loc     locator
	now     func() time.Time
}

func NewReportService(
	appts AppointmentStore,
	pros ProfessionalStore,
	companies CompanyStore,
	finance *FinanceService,
	subs *SubscriptionService,
	storage ReportStorage,
	defaultLoc *time.Location,
) *ReportService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &ReportService{
		appts:   appts,
		pros:    pros,
		finance: finance,
		subs:    subs,
		storage: storage,
		loc:     locator{companies: companies, fallback: defaultLoc},
		now:     time.Now,
	}
}

func (s *ReportService) Summary(ctx context.Context, companyID int64, from, to string) (*dto.ReportSummary, error) {
	if err := s.subs.RequireFeature(ctx, companyID, plan.FeatureReports); err != nil {
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
	start, end := period.From.UTC(), period.To.UTC()

	summary := &dto.ReportSummary{
		From:                 period.From.Format(dateLayout),
		To:                   period.To.AddDate(0, 0, -1).Format(dateLayout),
		AppointmentsByStatus: make(map[string]int, len(schedule.Statuses)),
		ByProfessional:       []*dto.ProfessionalReport{},
	}
	for _, st := range schedule.Statuses {
		summary.AppointmentsByStatus[string(st)] = 0
	}

	byStatus, err := s.appts.CountByStatus(companyID, start, end)
	if err != nil {
		return nil, storeErr("count appointments by status", err, nil)
	}
	for _, c := range byStatus {
		summary.AppointmentsByStatus[c.Status] = int(c.Total)
		summary.TotalAppointments += int(c.Total)
	}

	completed := string(schedule.StatusCompleted)
	done, err := s.appts.ListByRange(companyID, repository.AppointmentQuery{From: start, To: end, Status: &completed})
	if err != nil {
		return nil, storeErr("list completed appointments", err, nil)
	}
	revenueByPro := make(map[int64]decimal.Decimal)
	for _, a := range done {
		revenueByPro[a.ProfessionalID] = revenueByPro[a.ProfessionalID].Add(a.Price)
	}

	names, err := s.professionalNames(companyID)
	if err != nil {
		return nil, err
	}
	byPro, err := s.appts.CountByProfessional(companyID, start, end)
	if err != nil {
		return nil, storeErr("count appointments by professional", err, nil)
	}
	for _, c := range byPro {
		name, ok := names[c.ProfessionalID]
		if !ok {
			name = fmt.Sprintf("Profissional #%d", c.ProfessionalID)
		}
		summary.ByProfessional = append(summary.ByProfessional, &dto.ProfessionalReport{
			ProfessionalID: c.ProfessionalID,
			Name:           name,
			Appointments:   int(c.Total),
			Completed:      int(c.Completed),
			Revenue:        revenueByPro[c.ProfessionalID].StringFixed(2),
		})
	}

	t, err := s.finance.totals(companyID, period)
	if err != nil {
		return nil, err
	}
	summary.Revenue = t.income.StringFixed(2)
	summary.Expenses = t.expense.StringFixed(2)
	summary.Net = t.income.Sub(t.expense).StringFixed(2)

	return summary, nil
}

// Export writes the period's appointments as CSV to object storage and
// returns a temporary download link.
func (s *ReportService) Export(ctx context.Context, companyID int64, from, to string) (*dto.ReportExportResponse, error) {
	if err := s.subs.RequireFeature(ctx, companyID, plan.FeatureReports); err != nil {
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

	records, err := s.appts.ListByRange(companyID, repository.AppointmentQuery{From: period.From.UTC(), To: period.To.UTC()})
	if err != nil {
		return nil, storeErr("list appointments", err, nil)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"id", "data", "hora", "cliente", "profissional", "servico", "duracao_min", "status", "valor"})
	for _, a := range records {
		item := appointmentItem(a, loc)
		local := a.StartsAt.In(loc)
		w.Write([]string{
			fmt.Sprint(a.ID),
			local.Format(dateLayout),
			local.Format("15:04"),
			item.ClientName,
			item.ProfessionalName,
			item.ServiceName,
			fmt.Sprint(a.DurationMinutes),
			a.Status,
			item.Price,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write report csv: %w", err)
	}

	fileName := fmt.Sprintf("relatorio_%s_%s.csv", period.From.Format(dateLayout), period.To.AddDate(0, 0, -1).Format(dateLayout))

	// without object storage the file travels in the response
	if s.storage == nil {
		return &dto.ReportExportResponse{FileName: fileName, CSV: buf.String()}, nil
	}

	key, err := s.storage.UploadReport(companyID, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("upload report: %w: %v", ErrBackendUnavailable, err)
	}
	url, err := s.storage.GetSignedURL(key, reportLinkSeconds)
	if err != nil {
		if delErr := s.storage.Delete(key); delErr != nil {
			log.Printf("Failed to remove unlinked report %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("sign report url: %w: %v", ErrBackendUnavailable, err)
	}

	return &dto.ReportExportResponse{FileName: fileName, ObjectKey: key, URL: url}, nil
}

func (s *ReportService) professionalNames(companyID int64) (map[int64]string, error) {
	pros, err := s.pros.ListByCompany(companyID, false)
	if err != nil {
		return nil, storeErr("list professionals", err, nil)
	}
	names := make(map[int64]string, len(pros))
	for _, p := range pros {
		names[p.ID] = p.Name
	}
	return names, nil
}
