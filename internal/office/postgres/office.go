package postgres

import (
	officeDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/office"
	"github.com/mahfuzhasan/officer-registry/internal/office"
	"gorm.io/gorm"
)

type OfficeRepository struct {
	db *gorm.DB
}

func NewOfficeRepository(db *gorm.DB) office.RepositoryAPI {
	return &OfficeRepository{db: db}
}

func (r *OfficeRepository) GetAll() ([]*officeDatamodel.Office, error) {
	var offices []*officeDatamodel.Office
	err := r.db.Order("name ASC").Find(&offices).Error
	return offices, err
}

func (r *OfficeRepository) GetByName(name string) (*officeDatamodel.Office, error) {
	var o officeDatamodel.Office
	err := r.db.Where("name = ?", name).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfficeRepository) GetByID(id int64) (*officeDatamodel.Office, error) {
	var o officeDatamodel.Office
	err := r.db.Where("id = ?", id).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfficeRepository) Create(o *officeDatamodel.Office) error {
	return r.db.Create(o).Error
}

func (r *OfficeRepository) Update(o *officeDatamodel.Office) error {
	return r.db.Save(o).Error
}

func (r *OfficeRepository) Delete(id int64) error {
	return r.db.Model(&officeDatamodel.Office{}).Where("id = ?", id).Update("is_active", false).Error
}
