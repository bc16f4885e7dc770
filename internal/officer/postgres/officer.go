package postgres

import (
	"time"

	officerDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/officer"
	"github.com/mahfuzhasan/officer-registry/internal/officer"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
	"gorm.io/gorm"
)

// OfficerRepository implements officer.RepositoryAPI using GORM.
type OfficerRepository struct {
	db *gorm.DB
}

func NewOfficerRepository(db *gorm.DB) officer.RepositoryAPI {
	return &OfficerRepository{db: db}
}

func (r *OfficerRepository) Create(o *officerDatamodel.Officer) error {
	return r.db.Create(o).Error
}

func (r *OfficerRepository) GetByID(id int64) (*officerDatamodel.Officer, error) {
	var o officerDatamodel.Officer
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfficerRepository) GetAll(limit, offset int) ([]*officerDatamodel.Officer, error) {
	var officers []*officerDatamodel.Officer
	err := r.db.Where("is_active = ?", true).
		Order("full_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&officers).Error
	return officers, err
}

// visibilityColumns maps protected field names to their override columns.
var visibilityColumns = map[string]string{
	privacy.FieldMobile:      "mobile_visibility",
	privacy.FieldEmail:       "email_visibility",
	privacy.FieldNationalID:  "nid_visibility",
	privacy.FieldSalary:      "salary_visibility",
	privacy.FieldDateOfBirth: "dob_visibility",
}

func (r *OfficerRepository) UpdateVisibility(id int64, overrides map[string]string) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	for field, level := range overrides {
		column, ok := visibilityColumns[field]
		if !ok {
			continue
		}
		updates[column] = level
	}

	return r.db.Model(&officerDatamodel.Officer{}).
		Where("id = ?", id).
		Updates(updates).Error
}
