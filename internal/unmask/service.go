package unmask

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/mahfuzhasan/officer-registry/internal"
	officerDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/officer"
	unmaskDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/unmaskrequest"
	"github.com/mahfuzhasan/officer-registry/internal/core/events"
	"github.com/mahfuzhasan/officer-registry/internal/metrics"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

// RepositoryAPI is the unmask request store. MarkDecided must be a
// conditional update guarded by the expected current status and report
// how many rows it touched, so two racing approvers cannot both win.
type RepositoryAPI interface {
	Create(request *unmaskDatamodel.UnmaskRequest) error
	GetByID(id int64) (*unmaskDatamodel.UnmaskRequest, error)
	MarkDecided(id int64, fromStatus, toStatus string, decidedBy int64, decidedAt time.Time, expiresAt *time.Time, reason string) (int64, error)
	ListActiveApproved(requesterID, subjectID int64, now time.Time) ([]*unmaskDatamodel.UnmaskRequest, error)
	ListPending(limit, offset int) ([]*unmaskDatamodel.UnmaskRequest, error)
	ListByRequester(requesterID int64, limit, offset int) ([]*unmaskDatamodel.UnmaskRequest, error)
	ExpireDue(now time.Time) ([]*unmaskDatamodel.UnmaskRequest, error)
}

// SubjectSource resolves the subject an unmask request points at, so
// field levels can be checked against that record's own overrides.
type SubjectSource interface {
	GetOfficer(id int64) (*officerDatamodel.Officer, error)
}

type Service struct {
	repo       RepositoryAPI
	subjects   SubjectSource
	bus        *events.EventBus
	defaultTTL time.Duration
	maxTTL     time.Duration
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, subjects SubjectSource, bus *events.EventBus, defaultTTL, maxTTL time.Duration, logger *slog.Logger) *Service {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	if maxTTL < defaultTTL {
		maxTTL = defaultTTL
	}
	return &Service{
		repo:       repo,
		subjects:   subjects,
		bus:        bus,
		defaultTTL: defaultTTL,
		maxTTL:     maxTTL,
		logger:     logger,
	}
}

// Create opens a pending request. The field set must name at least one
// field that resolves to restricted on this subject; a request covering
// only public or internal fields has nothing to unmask.
func (s *Service) Create(requester privacy.Actor, dto CreateRequestDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	subject, err := s.subjects.GetOfficer(dto.SubjectID)
	if err != nil {
		return nil, apperrors.ErrOfficerNotFound
	}

	hasRestricted := false
	for _, f := range dto.Fields {
		if privacy.LevelFor(subject, f) == privacy.LevelRestricted {
			hasRestricted = true
			break
		}
	}
	if !hasRestricted {
		return nil, apperrors.NewValidationFieldError("fields",
			"request must cover at least one restricted field", apperrors.ErrCodeInvalidFieldList)
	}

	now := time.Now()
	request := &Request{
		RequesterID:   requester.ID,
		SubjectID:     dto.SubjectID,
		Fields:        dto.Fields,
		Justification: dto.Justification,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	model := ToDataModel(request)
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create unmask request",
			"error", err,
			"requester_id", requester.ID,
			"subject_id", dto.SubjectID)
		return nil, err
	}
	request.ID = model.ID

	metrics.ObserveUnmaskTransition(StatusPending)
	s.publish(events.NewUnmaskRequestedEvent(request.ID, request.RequesterID, request.SubjectID, request.Fields))

	s.logger.Info("unmask request created",
		"request_id", request.ID,
		"requester_id", requester.ID,
		"subject_id", dto.SubjectID,
		"fields", dto.Fields)

	return request, nil
}

// Approve grants the request for ttlMinutes (config default when nil,
// clamped to the config maximum). Only admin or hr may approve and never
// their own request. The status flip is conditional on pending; the loser
// of a double-decide race gets ErrInvalidRequestState.
func (s *Service) Approve(approver privacy.Actor, requestID int64, ttlMinutes *int) (*Request, error) {
	if !approver.HasStandingAccess() {
		return nil, apperrors.ErrPermissionDenied
	}

	model, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, apperrors.ErrRequestNotFound
	}
	request := FromDataModel(model)

	if request.RequesterID == approver.ID {
		s.logger.Warn("self-approval rejected",
			"request_id", requestID,
			"approver_id", approver.ID)
		return nil, apperrors.ErrSelfApproval
	}
	if !request.CanBeDecided() {
		return nil, apperrors.ErrInvalidRequestState
	}

	ttl := s.defaultTTL
	if ttlMinutes != nil {
		if *ttlMinutes < 0 {
			return nil, apperrors.NewValidationFieldError("ttl_minutes",
				"ttl_minutes cannot be negative", apperrors.ErrCodeInvalidTTL)
		}
		ttl = time.Duration(*ttlMinutes) * time.Minute
	}
	if ttl > s.maxTTL {
		s.logger.Warn("unmask ttl clamped to maximum",
			"request_id", requestID,
			"requested_ttl", ttl,
			"max_ttl", s.maxTTL)
		ttl = s.maxTTL
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	affected, err := s.repo.MarkDecided(requestID, StatusPending, StatusApproved, approver.ID, now, &expiresAt, "")
	if err != nil {
		s.logger.Error("failed to approve unmask request", "error", err, "request_id", requestID)
		return nil, err
	}
	if affected == 0 {
		// Another decision landed first.
		return nil, apperrors.ErrInvalidRequestState
	}

	request.Status = StatusApproved
	request.DecidedBy = &approver.ID
	request.DecidedAt = &now
	request.ExpiresAt = &expiresAt
	request.UpdatedAt = now

	metrics.ObserveUnmaskTransition(StatusApproved)
	s.publish(events.NewUnmaskApprovedEvent(request.ID, request.RequesterID, request.SubjectID, approver.ID, expiresAt))

	s.logger.Info("unmask request approved",
		"request_id", requestID,
		"approver_id", approver.ID,
		"expires_at", expiresAt)

	return request, nil
}

// Deny is terminal; denied requests carry no expiry and can never grant.
func (s *Service) Deny(approver privacy.Actor, requestID int64, reason string) (*Request, error) {
	if !approver.HasStandingAccess() {
		return nil, apperrors.ErrPermissionDenied
	}

	model, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, apperrors.ErrRequestNotFound
	}
	request := FromDataModel(model)

	if request.RequesterID == approver.ID {
		return nil, apperrors.ErrSelfApproval
	}
	if !request.CanBeDecided() {
		return nil, apperrors.ErrInvalidRequestState
	}

	now := time.Now()
	affected, err := s.repo.MarkDecided(requestID, StatusPending, StatusDenied, approver.ID, now, nil, reason)
	if err != nil {
		s.logger.Error("failed to deny unmask request", "error", err, "request_id", requestID)
		return nil, err
	}
	if affected == 0 {
		return nil, apperrors.ErrInvalidRequestState
	}

	request.Status = StatusDenied
	request.DecidedBy = &approver.ID
	request.DecidedAt = &now
	request.DecisionReason = reason
	request.UpdatedAt = now

	metrics.ObserveUnmaskTransition(StatusDenied)
	s.publish(events.NewUnmaskDeniedEvent(request.ID, request.RequesterID, request.SubjectID, approver.ID, reason))

	s.logger.Info("unmask request denied",
		"request_id", requestID,
		"approver_id", approver.ID,
		"reason", reason)

	return request, nil
}

// ActiveGrant returns the union of fields the requester currently holds
// approved, unexpired grants for on one subject. Rows whose deadline has
// passed contribute nothing even if a sweep has not flipped them yet.
func (s *Service) ActiveGrant(requesterID, subjectID int64) (privacy.GrantSet, error) {
	now := time.Now()
	models, err := s.repo.ListActiveApproved(requesterID, subjectID, now)
	if err != nil {
		s.logger.Error("failed to load active grants",
			"error", err,
			"requester_id", requesterID,
			"subject_id", subjectID)
		return nil, err
	}

	grant := privacy.GrantSet{}
	for _, m := range models {
		request := FromDataModel(m)
		if !request.ActiveAt(now) {
			continue
		}
		for _, f := range request.Fields {
			grant[f] = struct{}{}
		}
	}
	return grant, nil
}

// SweepExpired flips approved rows whose deadline has passed to expired.
// Readers never depend on this; it keeps the stored state honest for
// listings and dashboards.
func (s *Service) SweepExpired() (int, error) {
	expired, err := s.repo.ExpireDue(time.Now())
	if err != nil {
		s.logger.Error("expiry sweep failed", "error", err)
		return 0, err
	}

	for _, m := range expired {
		request := FromDataModel(m)
		metrics.ObserveUnmaskTransition(StatusExpired)
		s.publish(events.NewUnmaskExpiredEvent(request.ID, request.RequesterID, request.SubjectID))
	}

	if len(expired) > 0 {
		s.logger.Info("expired unmask grants swept", "count", len(expired))
	}
	return len(expired), nil
}

// Get returns one request. Requesters see their own; admin and hr see all.
func (s *Service) Get(actor privacy.Actor, requestID int64) (*Request, error) {
	model, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, apperrors.ErrRequestNotFound
	}
	request := FromDataModel(model)

	if request.RequesterID != actor.ID && !actor.HasStandingAccess() {
		return nil, apperrors.ErrPermissionDenied
	}
	return request, nil
}

// ListPending is the approver inbox, gated to admin and hr.
func (s *Service) ListPending(actor privacy.Actor, limit, offset int) ([]*Request, error) {
	if !actor.HasStandingAccess() {
		return nil, apperrors.ErrPermissionDenied
	}
	models, err := s.repo.ListPending(limit, offset)
	if err != nil {
		s.logger.Error("failed to list pending unmask requests", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

// ListByRequester returns the caller's own requests, newest first.
func (s *Service) ListByRequester(actor privacy.Actor, limit, offset int) ([]*Request, error) {
	models, err := s.repo.ListByRequester(actor.ID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list unmask requests",
			"error", err,
			"requester_id", actor.ID)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) publish(event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish unmask event",
			"error", err,
			"event_type", event.EventType())
	}
}
