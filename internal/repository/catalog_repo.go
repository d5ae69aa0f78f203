package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/internal/model"
)

// CatalogRepository stores the salon's service catalog.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Create(s *model.Service) error {
	return r.db.Create(s).Error
}

func (r *CatalogRepository) GetByID(companyID, id int64) (*model.Service, error) {
	var s model.Service
	err := r.db.Where("company_id = ? AND id = ?", companyID, id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) ListByCompany(companyID int64, activeOnly bool) ([]*model.Service, error) {
	var services []*model.Service
	query := r.db.Where("company_id = ?", companyID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("name ASC, id ASC").Find(&services).Error
	return services, err
}

func (r *CatalogRepository) Update(s *model.Service) error {
	return r.db.Save(s).Error
}

func (r *CatalogRepository) Delete(companyID, id int64) error {
	result := r.db.Where("company_id = ?", companyID).Delete(&model.Service{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
