package officer

import (
	officerDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/officer"
)

// SubjectSource adapts the directory store for consumers that only need
// to resolve a subject record by id, such as the unmask workflow.
type SubjectSource struct {
	repo RepositoryAPI
}

func NewSubjectSource(repo RepositoryAPI) *SubjectSource {
	return &SubjectSource{repo: repo}
}

func (s *SubjectSource) GetOfficer(id int64) (*officerDatamodel.Officer, error) {
	return s.repo.GetByID(id)
}
