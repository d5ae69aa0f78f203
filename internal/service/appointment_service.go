package service

import (
	"context"
	"log"
	"time"

	"github.com/qs3c/salon_go_server/config"
	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
	"github.com/qs3c/salon_go_server/internal/pkg/queue"
	"github.com/qs3c/salon_go_server/internal/repository"
	"github.com/qs3c/salon_go_server/internal/schedule"
)

const statusUpdateAttempts = 3

// IncomeRecorder books the price of a completed appointment.
type IncomeRecorder interface {
	RecordAppointmentIncome(ctx context.Context, companyID int64, appt *model.Appointment) error
}

// AppointmentQuery is what the list and calendar views accept.
type AppointmentQuery struct {
	Date           string // YYYY-MM-DD in the company's timezone, today when empty
	ProfessionalID *int64
	Status         string
}

type AppointmentService struct {
	appts    AppointmentStore
	clients  ClientStore
	pros     ProfessionalStore
	catalog  CatalogStore
	loc      locator
	subs     *SubscriptionService
	income   IncomeRecorder
	events   EventPublisher
	notifier NotificationQueue
	cfg      config.ScheduleConfig
	now      func() time.Time
}

func NewAppointmentService(
	appts AppointmentStore,
	clients ClientStore,
	pros ProfessionalStore,
	catalog CatalogStore,
	companies CompanyStore,
	subs *SubscriptionService,
	income IncomeRecorder,
	events EventPublisher,
	notifier NotificationQueue,
	cfg config.ScheduleConfig,
	defaultLoc *time.Location,
) *AppointmentService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &AppointmentService{
		appts:    appts,
		clients:  clients,
		pros:     pros,
		catalog:  catalog,
		loc:      locator{companies: companies, fallback: defaultLoc},
		subs:     subs,
		income:   income,
		events:   events,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Create books an appointment. One unit of the cycle quota is taken before
// the insert and given back if the insert fails.
func (s *AppointmentService) Create(ctx context.Context, companyID int64, req *dto.CreateAppointmentRequest) (*dto.AppointmentItem, error) {
	if req.StartsAt.IsZero() {
		return nil, invalid("starts_at is required")
	}
	company, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.GetByID(companyID, req.ClientID)
	if err != nil {
		return nil, storeErr("get client", err, ErrClientNotFound)
	}
	pro, err := s.pros.GetByID(companyID, req.ProfessionalID)
	if err != nil {
		return nil, storeErr("get professional", err, ErrProfessionalNotFound)
	}
	if !pro.Available {
		return nil, ErrProfessionalUnavailable
	}
	svc, err := s.catalog.GetByID(companyID, req.ServiceID)
	if err != nil {
		return nil, storeErr("get service", err, ErrServiceNotFound)
	}
	if !svc.Active {
		return nil, ErrServiceInactive
	}

	duration := svc.DurationMinutes
	if req.DurationMinutes > 0 {
		duration = req.DurationMinutes
	}

	if err := s.subs.UseAppointment(ctx, companyID); err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		CompanyID:       companyID,
		ClientID:        client.ID,
		ProfessionalID:  pro.ID,
		ServiceID:       svc.ID,
		StartsAt:        req.StartsAt.UTC(),
		DurationMinutes: duration,
		Status:          string(schedule.StatusPending),
		Price:           svc.Price,
		Notes:           req.Notes,
	}
	if err := s.appts.Create(appt); err != nil {
		if refundErr := s.subs.RefundAppointment(ctx, companyID); refundErr != nil {
			log.Printf("Failed to refund appointment quota for company %d: %v", companyID, refundErr)
		}
		return nil, storeErr("create appointment", err, nil)
	}
	appt.Client, appt.Professional, appt.Service = client, pro, svc

	publish(ctx, s.events, pubsub.EventAppointmentChanged, companyID, appt.ID, "created")
	s.notify(ctx, queue.KindAppointmentCreated, company, loc, appt)
	return s.item(appt, loc), nil
}

func (s *AppointmentService) Get(ctx context.Context, companyID, id int64) (*dto.AppointmentItem, error) {
	_, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}
	appt, err := s.appts.GetByID(companyID, id)
	if err != nil {
		return nil, storeErr("get appointment", err, ErrAppointmentNotFound)
	}
	return s.item(appt, loc), nil
}

// Update reschedules an active appointment.
func (s *AppointmentService) Update(ctx context.Context, companyID, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentItem, error) {
	_, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}
	appt, err := s.appts.GetByID(companyID, id)
	if err != nil {
		return nil, storeErr("get appointment", err, ErrAppointmentNotFound)
	}
	if !schedule.Status(appt.Status).IsActive() {
		return nil, ErrAppointmentClosed
	}

	if req.ProfessionalID != nil && *req.ProfessionalID != appt.ProfessionalID {
		pro, err := s.pros.GetByID(companyID, *req.ProfessionalID)
		if err != nil {
			return nil, storeErr("get professional", err, ErrProfessionalNotFound)
		}
		if !pro.Available {
			return nil, ErrProfessionalUnavailable
		}
		appt.ProfessionalID, appt.Professional = pro.ID, pro
	}
	if req.ServiceID != nil && *req.ServiceID != appt.ServiceID {
		svc, err := s.catalog.GetByID(companyID, *req.ServiceID)
		if err != nil {
			return nil, storeErr("get service", err, ErrServiceNotFound)
		}
		if !svc.Active {
			return nil, ErrServiceInactive
		}
		appt.ServiceID, appt.Service = svc.ID, svc
		appt.Price = svc.Price
		if req.DurationMinutes == nil {
			appt.DurationMinutes = svc.DurationMinutes
		}
	}
	if req.StartsAt != nil {
		if req.StartsAt.IsZero() {
			return nil, invalid("starts_at must not be empty")
		}
		appt.StartsAt = req.StartsAt.UTC()
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, invalid("duration_minutes must be positive")
		}
		appt.DurationMinutes = *req.DurationMinutes
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}

	if err := s.appts.Update(appt); err != nil {
		return nil, storeErr("update appointment", err, nil)
	}

	publish(ctx, s.events, pubsub.EventAppointmentChanged, companyID, appt.ID, "updated")
	return s.item(appt, loc), nil
}

// UpdateStatus moves the appointment through its lifecycle. With transition
// enforcement on, moves outside the transition table fail with
// ErrInvalidTransition. Completing books the price as income.
func (s *AppointmentService) UpdateStatus(ctx context.Context, companyID, id int64, raw string) (*dto.AppointmentItem, error) {
	to, err := schedule.ParseStatus(raw)
	if err != nil {
		return nil, invalid("%v", err)
	}
	company, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}
	var appt *model.Appointment
	for attempt := 0; ; attempt++ {
		appt, err = s.appts.GetByID(companyID, id)
		if err != nil {
			return nil, storeErr("get appointment", err, ErrAppointmentNotFound)
		}

		from := schedule.Status(appt.Status)
		if from == to {
			return s.item(appt, loc), nil
		}
		if s.cfg.EnforceTransitions && !schedule.CanTransition(from, to) {
			return nil, ErrInvalidTransition
		}

		moved, err := s.appts.UpdateStatus(companyID, id, string(from), string(to))
		if err != nil {
			return nil, storeErr("update appointment status", err, nil)
		}
		if moved {
			break
		}
		// another request changed the status first; judge the move again
		if attempt+1 >= statusUpdateAttempts {
			return nil, ErrStatusConflict
		}
	}
	appt.Status = string(to)

	if to == schedule.StatusCompleted && s.income != nil {
		if err := s.income.RecordAppointmentIncome(ctx, companyID, appt); err != nil {
			log.Printf("Failed to book income for appointment %d: %v", appt.ID, err)
		}
	}

	publish(ctx, s.events, pubsub.EventAppointmentChanged, companyID, appt.ID, "status")
	if to == schedule.StatusConfirmed || to == schedule.StatusCancelled {
		s.notify(ctx, queue.KindAppointmentStatus, company, loc, appt)
	}
	return s.item(appt, loc), nil
}

// Delete hides the appointment. The row is kept and the quota unit is not returned.
func (s *AppointmentService) Delete(ctx context.Context, companyID, id int64) error {
	if err := s.appts.Delete(companyID, id); err != nil {
		return storeErr("delete appointment", err, ErrAppointmentNotFound)
	}
	publish(ctx, s.events, pubsub.EventAppointmentChanged, companyID, id, "deleted")
	return nil
}

// List is the list view of one day: filtered, then ordered by start time.
func (s *AppointmentService) List(ctx context.Context, companyID int64, q AppointmentQuery) ([]*dto.AppointmentItem, error) {
	_, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}
	day, filter, err := s.parseQuery(q, loc)
	if err != nil {
		return nil, err
	}

	records, byID, err := s.dayAppointments(companyID, day, loc)
	if err != nil {
		return nil, err
	}

	view := schedule.ListView(schedule.FilterAppointments(records, filter))
	items := make([]*dto.AppointmentItem, 0, len(view))
	for _, a := range view {
		items = append(items, s.item(byID[a.ID], loc))
	}
	return items, nil
}

// Calendar projects one day onto the company's opening hours, one column per
// professional. Appointments the grid cannot place are returned as Unplaced.
func (s *AppointmentService) Calendar(ctx context.Context, companyID int64, q AppointmentQuery) (*dto.CalendarResponse, error) {
	company, loc, err := s.loc.company(companyID)
	if err != nil {
		return nil, err
	}
	day, filter, err := s.parseQuery(q, loc)
	if err != nil {
		return nil, err
	}

	hours := schedule.HourRange{Start: company.OpeningHour, End: company.ClosingHour}
	if hours.Validate() != nil {
		hours = schedule.HourRange{Start: s.cfg.DefaultStartHour, End: s.cfg.DefaultEndHour}
	}
	if err := hours.Validate(); err != nil {
		return nil, invalid("%v", err)
	}

	pros, err := s.pros.ListByCompany(companyID, false)
	if err != nil {
		return nil, storeErr("list professionals", err, nil)
	}
	roster := make([]schedule.Professional, 0, len(pros))
	columns := make([]*dto.ProfessionalItem, 0, len(pros))
	for _, p := range pros {
		if filter.ProfessionalID != nil && p.ID != *filter.ProfessionalID {
			continue
		}
		roster = append(roster, schedule.Professional{ID: p.ID, Name: p.Name, Specialty: p.Specialty, Available: p.Available})
		columns = append(columns, professionalItem(p))
	}

	records, byID, err := s.dayAppointments(companyID, day, loc)
	if err != nil {
		return nil, err
	}
	filtered := schedule.FilterAppointments(records, filter)
	grid := schedule.ProjectCalendar(filtered, roster, hours, loc)

	resp := &dto.CalendarResponse{
		Date:     day.Format(dateLayout),
		Timezone: loc.String(),
		Hours:    grid.Hours,
		Columns:  columns,
		Cells:    make([]*dto.CalendarCell, 0, len(grid.Hours)*len(roster)),
		Unplaced: []*dto.AppointmentItem{},
	}

	placed := make(map[int64]struct{}, len(filtered))
	for _, h := range grid.Hours {
		for _, p := range roster {
			cell := grid.Cell(h, p.ID)
			out := &dto.CalendarCell{Hour: h, ProfessionalID: p.ID, Appointments: make([]*dto.AppointmentItem, 0, len(cell))}
			for _, a := range cell {
				out.Appointments = append(out.Appointments, s.item(byID[a.ID], loc))
				placed[a.ID] = struct{}{}
			}
			resp.Cells = append(resp.Cells, out)
		}
	}
	for _, a := range schedule.ListView(filtered) {
		if _, ok := placed[a.ID]; !ok {
			resp.Unplaced = append(resp.Unplaced, s.item(byID[a.ID], loc))
		}
	}
	return resp, nil
}

func (s *AppointmentService) parseQuery(q AppointmentQuery, loc *time.Location) (time.Time, schedule.Filter, error) {
	day, err := parseDay(q.Date, s.now(), loc)
	if err != nil {
		return time.Time{}, schedule.Filter{}, err
	}

	var filter schedule.Filter
	if q.ProfessionalID != nil {
		id := *q.ProfessionalID
		filter.ProfessionalID = &id
	}
	if q.Status != "" {
		st, err := schedule.ParseStatus(q.Status)
		if err != nil {
			return time.Time{}, schedule.Filter{}, invalid("%v", err)
		}
		filter.Status = &st
	}
	return day, filter, nil
}

// dayAppointments loads the records of one local day and their core projection.
func (s *AppointmentService) dayAppointments(companyID int64, day time.Time, loc *time.Location) ([]schedule.Appointment, map[int64]*model.Appointment, error) {
	start, end := schedule.DayBounds(day, loc)
	records, err := s.appts.ListByRange(companyID, repository.AppointmentQuery{From: start.UTC(), To: end.UTC()})
	if err != nil {
		return nil, nil, storeErr("list appointments", err, nil)
	}

	out := make([]schedule.Appointment, 0, len(records))
	byID := make(map[int64]*model.Appointment, len(records))
	for _, r := range records {
		out = append(out, toSchedule(r))
		byID[r.ID] = r
	}
	return out, byID, nil
}

func (s *AppointmentService) notify(ctx context.Context, kind string, company *model.Company, loc *time.Location, appt *model.Appointment) {
	if s.notifier == nil || appt.Client == nil || appt.Client.Email == "" {
		return
	}

	msg := &queue.NotificationMessage{
		Kind:          kind,
		CompanyID:     company.ID,
		CompanyName:   company.Name,
		AppointmentID: appt.ID,
		ClientName:    appt.Client.Name,
		ClientEmail:   appt.Client.Email,
		StartsAt:      appt.StartsAt,
		Timezone:      loc.String(),
		Status:        appt.Status,
	}
	if appt.Professional != nil {
		msg.ProfessionalName = appt.Professional.Name
	}
	if appt.Service != nil {
		msg.ServiceName = appt.Service.Name
	}

	if err := s.notifier.Push(ctx, msg); err != nil {
		log.Printf("Failed to queue %s notification for appointment %d: %v", kind, appt.ID, err)
	}
}

func toSchedule(a *model.Appointment) schedule.Appointment {
	return schedule.Appointment{
		ID:              a.ID,
		StartsAt:        a.StartsAt,
		ClientID:        a.ClientID,
		ProfessionalID:  a.ProfessionalID,
		ServiceID:       a.ServiceID,
		DurationMinutes: a.DurationMinutes,
		Status:          schedule.Status(a.Status),
	}
}

// item is appointmentItem plus the statuses the dashboard may offer next.
func (s *AppointmentService) item(a *model.Appointment, loc *time.Location) *dto.AppointmentItem {
	out := appointmentItem(a, loc)
	current := schedule.Status(a.Status)

	next := schedule.AllowedTransitions(current)
	if !s.cfg.EnforceTransitions {
		next = next[:0]
		for _, st := range schedule.Statuses {
			if st != current {
				next = append(next, st)
			}
		}
	}
	out.AllowedStatuses = make([]string, 0, len(next))
	for _, st := range next {
		out.AllowedStatuses = append(out.AllowedStatuses, string(st))
	}
	return out
}

func appointmentItem(a *model.Appointment, loc *time.Location) *dto.AppointmentItem {
	core := toSchedule(a)
	item := &dto.AppointmentItem{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ProfessionalID:  a.ProfessionalID,
		ServiceID:       a.ServiceID,
		StartsAt:        a.StartsAt.In(loc).Format(timeLayout),
		EndsAt:          core.EndsAt().In(loc).Format(timeLayout),
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
		Price:           a.Price.StringFixed(2),
		Notes:           a.Notes,
	}
	if a.Client != nil {
		item.ClientName = a.Client.Name
	}
	if a.Professional != nil {
		item.ProfessionalName = a.Professional.Name
	}
	if a.Service != nil {
		item.ServiceName = a.Service.Name
	}
	return item
}
