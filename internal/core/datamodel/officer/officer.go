package officer

import (
	"time"

	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

// Officer is the persisted personnel record. Business fields are owned by
// the directory; the per-field visibility columns are read by the privacy
// layer to resolve effective levels.
type Officer struct {
	ID             int64      `gorm:"primaryKey"`
	FullName       string     `gorm:"column:full_name;not null"`
	Designation    string     `gorm:"column:designation"`
	Office         string     `gorm:"column:office"`
	PersonalMobile string     `gorm:"column:personal_mobile"`
	PersonalEmail  string     `gorm:"column:personal_email"`
	NationalID     string     `gorm:"column:national_id"`
	Salary         int64      `gorm:"column:salary"`
	DateOfBirth    *time.Time `gorm:"column:date_of_birth;type:date"`

	// Per-record visibility overrides; empty means the baseline applies.
	MobileVisibility string `gorm:"column:mobile_visibility"`
	EmailVisibility  string `gorm:"column:email_visibility"`
	NIDVisibility    string `gorm:"column:nid_visibility"`
	SalaryVisibility string `gorm:"column:salary_visibility"`
	DOBVisibility    string `gorm:"column:dob_visibility"`

	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Officer) TableName() string {
	return "officers"
}

// SubjectID implements privacy.Subject.
func (o *Officer) SubjectID() int64 {
	return o.ID
}

// VisibilityOverride implements privacy.Subject. An empty string means
// the field's baseline classification applies; invalid stored values are
// degraded by the policy layer, not here.
func (o *Officer) VisibilityOverride(field string) string {
	switch field {
	case privacy.FieldMobile:
		return o.MobileVisibility
	case privacy.FieldEmail:
		return o.EmailVisibility
	case privacy.FieldNationalID:
		return o.NIDVisibility
	case privacy.FieldSalary:
		return o.SalaryVisibility
	case privacy.FieldDateOfBirth:
		return o.DOBVisibility
	default:
		return ""
	}
}
