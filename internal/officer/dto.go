package officer

import (
	"strings"
	"time"

	apperrors "github.com/mahfuzhasan/officer-registry/internal"
	"github.com/mahfuzhasan/officer-registry/internal/core/common/validation"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

// CreateOfficerDTO is the admin payload for adding a directory record.
type CreateOfficerDTO struct {
	FullName       string     `json:"full_name"`
	Designation    string     `json:"designation"`
	Office         string     `json:"office"`
	PersonalMobile string     `json:"personal_mobile"`
	PersonalEmail  string     `json:"personal_email"`
	NationalID     string     `json:"national_id"`
	Salary         int64      `json:"salary"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
}

func (dto CreateOfficerDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("full_name", strings.TrimSpace(dto.FullName)).
		Required().
		MaxLength(200)
	v.Field("salary", dto.Salary).
		MinInt(0, apperrors.ErrCodeInvalidOfficer)
	v.Field("date_of_birth", dto.DateOfBirth).
		NotFuture()
	v.Field("personal_email", dto.PersonalEmail).
		Custom(func(value interface{}) *apperrors.AppError {
			if s, ok := value.(string); ok && s != "" && !strings.Contains(s, "@") {
				return apperrors.NewValidationFieldError("personal_email", "personal_email must be a valid address", apperrors.ErrCodeInvalidOfficer)
			}
			return nil
		})

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateVisibilityDTO carries per-field visibility overrides. Only the
// overridable (non-public-baseline) fields are accepted; values must be
// one of the three levels or empty to fall back to the baseline.
type UpdateVisibilityDTO struct {
	Overrides map[string]string `json:"overrides"`
}

// overridableFields are the protected fields that carry a per-record
// visibility column.
var overridableFields = map[string]struct{}{
	privacy.FieldMobile:      {},
	privacy.FieldEmail:       {},
	privacy.FieldNationalID:  {},
	privacy.FieldSalary:      {},
	privacy.FieldDateOfBirth: {},
}

func (dto UpdateVisibilityDTO) Validate() error {
	if len(dto.Overrides) == 0 {
		return apperrors.NewValidationFieldError("overrides", "at least one override is required", apperrors.ErrCodeInvalidVisibility)
	}
	for field, level := range dto.Overrides {
		if _, ok := overridableFields[field]; !ok {
			return apperrors.NewValidationFieldError("overrides", "field cannot carry a visibility override: "+field, apperrors.ErrCodeInvalidVisibility)
		}
		if level != "" && !privacy.ValidLevel(level) {
			return apperrors.NewValidationFieldError("overrides", "invalid visibility level: "+level, apperrors.ErrCodeInvalidVisibility)
		}
	}
	return nil
}
