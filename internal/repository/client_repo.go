package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(c *model.Client) error {
	return r.db.Create(c).Error
}

func (r *ClientRepository) GetByID(companyID, id int64) (*model.Client, error) {
	var c model.Client
	err := r.db.Where("company_id = ? AND id = ?", companyID, id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByCompany pages through clients, optionally matching search against
// name, email or phone.
func (r *ClientRepository) ListByCompany(companyID int64, page, pageSize int, search string) ([]*model.Client, int64, error) {
	var clients []*model.Client
	var total int64

	query := r.db.Model(&model.Client{}).Where("company_id = ?", companyID)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC, id ASC").Offset(offset).Limit(pageSize).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *ClientRepository) Update(c *model.Client) error {
	return r.db.Save(c).Error
}

func (r *ClientRepository) Delete(companyID, id int64) error {
	result := r.db.Where("company_id = ?", companyID).Delete(&model.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
