package office

import (
	"log/slog"

	officeDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/office"
)

type RepositoryAPI interface {
	GetAll() ([]*officeDatamodel.Office, error)
	GetByID(id int64) (*officeDatamodel.Office, error)
	GetByName(name string) (*officeDatamodel.Office, error)
	Create(office *officeDatamodel.Office) error
	Update(office *officeDatamodel.Office) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllOffices() ([]OfficeResponse, error) {
	dataOffices, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get offices from repository", "error", err)
		return nil, err
	}

	var responses []OfficeResponse
	for _, dataOffice := range dataOffices {
		domainOffice := FromDataModel(dataOffice)
		if domainOffice.IsActiveOffice() {
			responses = append(responses, domainOffice.ToResponse())
		}
	}

	s.logger.Info("retrieved offices", "count", len(responses))
	return responses, nil
}

func (s *Service) GetOfficeByName(name string) (*OfficeResponse, error) {
	dataOffice, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Error("failed to get office from repository", "name", name, "error", err)
		return nil, err
	}
	if dataOffice == nil {
		return nil, nil
	}

	domainOffice := FromDataModel(dataOffice)
	if !domainOffice.IsActiveOffice() {
		return nil, nil
	}

	response := domainOffice.ToResponse()
	return &response, nil
}

// IsValidOffice reports whether the name refers to an active posting
// location. Lookup errors count as invalid so a flaky database never
// lets an unknown office through.
func (s *Service) IsValidOffice(name string) bool {
	office, err := s.GetOfficeByName(name)
	if err != nil {
		s.logger.Warn("error checking office validity", "name", name, "error", err)
		return false
	}
	return office != nil
}
