package officer

import (
	"log/slog"
	"time"

	apperrors "github.com/mahfuzhasan/officer-registry/internal"
	"github.com/mahfuzhasan/officer-registry/internal/audit"
	officerDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/officer"
	"github.com/mahfuzhasan/officer-registry/internal/metrics"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

// RepositoryAPI is the officer directory store.
type RepositoryAPI interface {
	Create(officer *officerDatamodel.Officer) error
	GetByID(id int64) (*officerDatamodel.Officer, error)
	GetAll(limit, offset int) ([]*officerDatamodel.Officer, error)
	UpdateVisibility(id int64, overrides map[string]string) error
}

// AuditAPI records sensitive accesses and serves the gated trail.
type AuditAPI interface {
	Record(accessorID, subjectID int64, field, outcome string, meta audit.RequestMeta) (int64, error)
	Trail(actor privacy.Actor, subjectID int64, limit int) ([]*audit.Entry, error)
}

// GrantSource resolves the caller's active unmask grants for a subject.
type GrantSource interface {
	ActiveGrant(requesterID, subjectID int64) (privacy.GrantSet, error)
}

type Service struct {
	repo   RepositoryAPI
	audit  AuditAPI
	grants GrantSource
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, auditSvc AuditAPI, grants GrantSource, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		audit:  auditSvc,
		grants: grants,
		logger: logger,
	}
}

// Render evaluates every protected field of one officer for the calling
// actor and returns a record safe to serialize. Every restricted-level
// field that is rendered (shown or masked) is audited synchronously; if
// an audit write fails the whole read is aborted, never served unrecorded.
func (s *Service) Render(actor privacy.Actor, o *officerDatamodel.Officer, meta audit.RequestMeta) (RenderedRecord, error) {
	start := time.Now()

	// Admin and hr have standing access; looking up grants for them would
	// only add a query that cannot change any outcome.
	var grants privacy.GrantSet
	if !actor.HasStandingAccess() {
		var err error
		grants, err = s.grants.ActiveGrant(actor.ID, o.ID)
		if err != nil {
			s.logger.Error("grant lookup failed, failing closed",
				"error", err,
				"accessor_id", actor.ID,
				"subject_id", o.ID)
			return nil, err
		}
	}

	record := RenderedRecord{"id": o.ID}
	for _, field := range privacy.Fields() {
		level := privacy.LevelFor(o, field)
		outcome := privacy.Decide(actor.Role, field, level, grants)
		metrics.ObserveDecision(field, string(outcome))

		if level == privacy.LevelRestricted && outcome != privacy.OutcomeRedact {
			if _, err := s.audit.Record(actor.ID, o.ID, field, string(outcome), meta); err != nil {
				return nil, err
			}
		}

		switch outcome {
		case privacy.OutcomeShow:
			record[field] = rawValue(o, field)
		case privacy.OutcomeMask:
			record[field] = privacy.Mask(field, rawValue(o, field))
		case privacy.OutcomeRedact:
			// key omitted entirely
		}
	}

	metrics.ObserveRenderSeconds(time.Since(start).Seconds())
	return record, nil
}

// GetOfficer is the detailed read: fetch plus policy-filtered render.
func (s *Service) GetOfficer(actor privacy.Actor, id int64, meta audit.RequestMeta) (RenderedRecord, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperrors.ErrOfficerNotFound
	}
	return s.Render(actor, o, meta)
}

// ListOfficers returns public summaries only. Nothing here goes through
// the evaluator, so list views never write audit entries.
func (s *Service) ListOfficers(limit, offset int) ([]Summary, error) {
	officers, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list officers", "error", err)
		return nil, err
	}
	return ToSummarySlice(officers), nil
}

// CreateOfficer adds a directory record. Admin only.
func (s *Service) CreateOfficer(actor privacy.Actor, dto CreateOfficerDTO) (*Officer, error) {
	if actor.Role != privacy.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	model := &officerDatamodel.Officer{
		FullName:       dto.FullName,
		Designation:    dto.Designation,
		Office:         dto.Office,
		PersonalMobile: dto.PersonalMobile,
		PersonalEmail:  dto.PersonalEmail,
		NationalID:     dto.NationalID,
		Salary:         dto.Salary,
		DateOfBirth:    dto.DateOfBirth,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create officer", "error", err)
		return nil, err
	}

	s.logger.Info("officer created", "officer_id", model.ID, "created_by", actor.ID)
	return FromDataModel(model), nil
}

// UpdateVisibility sets per-record visibility overrides. Values are
// validated on write; whatever still ends up invalid in storage degrades
// to restricted at read time.
func (s *Service) UpdateVisibility(actor privacy.Actor, id int64, dto UpdateVisibilityDTO) error {
	if !actor.HasStandingAccess() {
		return apperrors.ErrPermissionDenied
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return apperrors.ErrOfficerNotFound
	}

	if err := s.repo.UpdateVisibility(id, dto.Overrides); err != nil {
		s.logger.Error("failed to update visibility overrides",
			"error", err,
			"officer_id", id)
		return err
	}

	s.logger.Info("visibility overrides updated",
		"officer_id", id,
		"updated_by", actor.ID,
		"overrides", dto.Overrides)
	return nil
}

// AuditTrail returns the access log for one officer, gated inside the
// audit service to admin and hr.
func (s *Service) AuditTrail(actor privacy.Actor, subjectID int64, limit int) ([]*audit.Entry, error) {
	if _, err := s.repo.GetByID(subjectID); err != nil {
		return nil, apperrors.ErrOfficerNotFound
	}
	return s.audit.Trail(actor, subjectID, limit)
}
