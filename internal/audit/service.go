package audit

import (
	"log/slog"
	"time"

	accesslogDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/accesslog"
	"github.com/mahfuzhasan/officer-registry/internal/metrics"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

// RepositoryAPI is the append-only access-log store. There is no update
// or delete on purpose.
type RepositoryAPI interface {
	Append(entry *accesslogDatamodel.FieldAccessLog) error
	ListBySubject(subjectID int64, limit int) ([]*accesslogDatamodel.FieldAccessLog, error)
}

type Service struct {
	repo       RepositoryAPI
	trailLimit int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, trailLimit int, logger *slog.Logger) *Service {
	if trailLimit <= 0 {
		trailLimit = 200
	}
	return &Service{
		repo:       repo,
		trailLimit: trailLimit,
		logger:     logger,
	}
}

// Record persists one access entry and returns its id. A storage failure
// surfaces as ErrUnavailable so the triggering read fails closed instead
// of being served unaudited.
func (s *Service) Record(accessorID, subjectID int64, field, outcome string, meta RequestMeta) (int64, error) {
	model := &accesslogDatamodel.FieldAccessLog{
		AccessorID: accessorID,
		SubjectID:  subjectID,
		FieldName:  field,
		Outcome:    outcome,
		RequestID:  meta.RequestID,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Append(model); err != nil {
		metrics.AuditWriteFailed()
		s.logger.Error("audit append failed",
			"error", err,
			"accessor_id", accessorID,
			"subject_id", subjectID,
			"field", field,
			"outcome", outcome,
			"request_id", meta.RequestID)
		return 0, ErrUnavailable
	}

	metrics.AuditWriteOK()
	return model.ID, nil
}

// Trail returns the newest entries for one subject. Only admin and hr may
// read the trail; everyone else gets a permission error, not an empty list.
func (s *Service) Trail(actor privacy.Actor, subjectID int64, limit int) ([]*Entry, error) {
	if !actor.HasStandingAccess() {
		s.logger.Warn("audit trail denied",
			"accessor_id", actor.ID,
			"role", actor.Role,
			"subject_id", subjectID)
		return nil, ErrTrailForbidden
	}

	if limit <= 0 || limit > s.trailLimit {
		limit = s.trailLimit
	}

	models, err := s.repo.ListBySubject(subjectID, limit)
	if err != nil {
		s.logger.Error("audit trail query failed", "error", err, "subject_id", subjectID)
		return nil, err
	}

	return FromDataModelSlice(models), nil
}
