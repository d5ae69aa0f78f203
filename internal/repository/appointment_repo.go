package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/internal/model"
)

// AppointmentQuery narrows a range listing. Nil fields match everything.
type AppointmentQuery struct {
	From           time.Time
	To             time.Time
	ProfessionalID *int64
	Status         *string
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// withRefs preloads client, professional and service, including soft-deleted
// ones so past appointments keep their labels.
func (r *AppointmentRepository) withRefs() *gorm.DB {
	unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
	return r.db.Preload("Client", unscoped).Preload("Professional", unscoped).Preload("Service", unscoped)
}

func (r *AppointmentRepository) Create(a *model.Appointment) error {
	return r.db.Create(a).Error
}

func (r *AppointmentRepository) GetByID(companyID, id int64) (*model.Appointment, error) {
	var a model.Appointment
	err := r.withRefs().
		Where("company_id = ? AND id = ?", companyID, id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByRange returns appointments starting in [From, To), oldest first.
func (r *AppointmentRepository) ListByRange(companyID int64, q AppointmentQuery) ([]*model.Appointment, error) {
	var appts []*model.Appointment

	query := r.withRefs().
		Where("company_id = ? AND starts_at >= ? AND starts_at < ?", companyID, q.From, q.To)
	if q.ProfessionalID != nil {
		query = query.Where("professional_id = ?", *q.ProfessionalID)
	}
	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}

	err := query.Order("starts_at ASC, id ASC").Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepository) Update(a *model.Appointment) error {
	return r.db.Omit("Client", "Professional", "Service").Save(a).Error
}

// UpdateStatus moves the appointment from one status to another. It reports
// false when the stored status is no longer from.
func (r *AppointmentRepository) UpdateStatus(companyID, id int64, from, to string) (bool, error) {
	result := r.db.Model(&model.Appointment{}).
		Where("company_id = ? AND id = ? AND status = ?", companyID, id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete soft-deletes the appointment.
func (r *AppointmentRepository) Delete(companyID, id int64) error {
	result := r.db.Where("company_id = ?", companyID).Delete(&model.Appointment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type StatusCount struct {
	Status string
	Total  int64
}

func (r *AppointmentRepository) CountByStatus(companyID int64, from, to time.Time) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.Model(&model.Appointment{}).
		Select("status, COUNT(*) AS total").
		Where("company_id = ? AND starts_at >= ? AND starts_at < ?", companyID, from, to).
		Group("status").
		Order("status ASC").
		Scan(&counts).Error
	return counts, err
}

type ProfessionalCount struct {
	ProfessionalID int64
	Total          int64
	Completed      int64
}

func (r *AppointmentRepository) CountByProfessional(companyID int64, from, to time.Time) ([]ProfessionalCount, error) {
	var counts []ProfessionalCount
	err := r.db.Model(&model.Appointment{}).
		Select("professional_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed", "completed").
		Where("company_id = ? AND starts_at >= ? AND starts_at < ?", companyID, from, to).
		Group("professional_id").
		Order("professional_id ASC").
		Scan(&counts).Error
	return counts, err
}
