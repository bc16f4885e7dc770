package office

type OfficeResponse struct {
	Name     string `json:"name"`
	District string `json:"district"`
}

type OfficesResponse struct {
	Offices []OfficeResponse `json:"offices"`
}
