package officer

import (
	"strconv"
	"time"

	officerDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/officer"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

// Officer is the directory's domain view of a personnel record.
type Officer struct {
	ID             int64      `json:"id"`
	FullName       string     `json:"full_name"`
	Designation    string     `json:"designation"`
	Office         string     `json:"office"`
	PersonalMobile string     `json:"personal_mobile,omitempty"`
	PersonalEmail  string     `json:"personal_email,omitempty"`
	NationalID     string     `json:"national_id,omitempty"`
	Salary         int64      `json:"salary,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Summary is the public list-view shape: only public-level fields, so
// list endpoints never touch the evaluator or the audit log.
type Summary struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Designation string `json:"designation"`
	Office      string `json:"office"`
}

// RenderedRecord is a policy-filtered record safe to serialize. Redacted
// fields are absent from the map, which is how callers tell "hidden"
// apart from "empty".
type RenderedRecord map[string]interface{}

// rawValue returns the serialization-ready raw string for one protected
// field. The masker and renderer both work on these strings.
func rawValue(o *officerDatamodel.Officer, field string) string {
	switch field {
	case privacy.FieldFullName:
		return o.FullName
	case privacy.FieldDesignation:
		return o.Designation
	case privacy.FieldOffice:
		return o.Office
	case privacy.FieldMobile:
		return o.PersonalMobile
	case privacy.FieldEmail:
		return o.PersonalEmail
	case privacy.FieldNationalID:
		return o.NationalID
	case privacy.FieldSalary:
		return strconv.FormatInt(o.Salary, 10)
	case privacy.FieldDateOfBirth:
		if o.DateOfBirth == nil {
			return ""
		}
		return o.DateOfBirth.Format("2006-01-02")
	default:
		return ""
	}
}

func ToSummary(o *officerDatamodel.Officer) Summary {
	return Summary{
		ID:          o.ID,
		FullName:    o.FullName,
		Designation: o.Designation,
		Office:      o.Office,
	}
}

func ToSummarySlice(officers []*officerDatamodel.Officer) []Summary {
	result := make([]Summary, len(officers))
	for i, o := range officers {
		result[i] = ToSummary(o)
	}
	return result
}

func FromDataModel(o *officerDatamodel.Officer) *Officer {
	return &Officer{
		ID:             o.ID,
		FullName:       o.FullName,
		Designation:    o.Designation,
		Office:         o.Office,
		PersonalMobile: o.PersonalMobile,
		PersonalEmail:  o.PersonalEmail,
		NationalID:     o.NationalID,
		Salary:         o.Salary,
		DateOfBirth:    o.DateOfBirth,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
