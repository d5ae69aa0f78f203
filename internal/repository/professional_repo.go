package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/internal/model"
)

type ProfessionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

func (r *ProfessionalRepository) Create(p *model.Professional) error {
	return r.db.Create(p).Error
}

func (r *ProfessionalRepository) GetByID(companyID, id int64) (*model.Professional, error) {
	var p model.Professional
	err := r.db.Where("company_id = ? AND id = ?", companyID, id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByCompany returns the roster ordered by name.
func (r *ProfessionalRepository) ListByCompany(companyID int64, onlyAvailable bool) ([]*model.Professional, error) {
	var pros []*model.Professional
	query := r.db.Where("company_id = ?", companyID)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}
	err := query.Order("name ASC, id ASC").Find(&pros).Error
	return pros, err
}

func (r *ProfessionalRepository) CountByCompany(companyID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Professional{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

func (r *ProfessionalRepository) Update(p *model.Professional) error {
	return r.db.Save(p).Error
}

func (r *ProfessionalRepository) Delete(companyID, id int64) error {
	result := r.db.Where("company_id = ?", companyID).Delete(&model.Professional{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
