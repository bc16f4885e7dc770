package office

import (
	"time"

	officeDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/office"
)

type Office struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	District  string    `json:"district"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Office) IsActiveOffice() bool {
	return o.IsActive
}

func (o *Office) ToResponse() OfficeResponse {
	return OfficeResponse{
		Name:     o.Name,
		District: o.District,
	}
}

func (o *Office) Activate() {
	o.IsActive = true
	o.UpdatedAt = time.Now()
}

func (o *Office) Deactivate() {
	o.IsActive = false
	o.UpdatedAt = time.Now()
}

func NewOffice(name, district string) *Office {
	now := time.Now()
	return &Office{
		Name:      name,
		District:  district,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(o *Office) *officeDatamodel.Office {
	return &officeDatamodel.Office{
		ID:        o.ID,
		Name:      o.Name,
		District:  o.District,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func FromDataModel(o *officeDatamodel.Office) *Office {
	return &Office{
		ID:        o.ID,
		Name:      o.Name,
		District:  o.District,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
