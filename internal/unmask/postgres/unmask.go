package postgres

import (
	"time"

	unmaskDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/unmaskrequest"
	"github.com/mahfuzhasan/officer-registry/internal/unmask"
	"gorm.io/gorm"
)

// UnmaskRepository implements unmask.RepositoryAPI using GORM.
type UnmaskRepository struct {
	db *gorm.DB
}

func NewUnmaskRepository(db *gorm.DB) unmask.RepositoryAPI {
	return &UnmaskRepository{db: db}
}

func (r *UnmaskRepository) Create(request *unmaskDatamodel.UnmaskRequest) error {
	return r.db.Create(request).Error
}

func (r *UnmaskRepository) GetByID(id int64) (*unmaskDatamodel.UnmaskRequest, error) {
	var request unmaskDatamodel.UnmaskRequest
	err := r.db.Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// MarkDecided flips status only when the row still holds fromStatus. The
// returned count is zero when another decision got there first; callers
// treat that as an invalid-state failure, not a retryable one.
func (r *UnmaskRepository) MarkDecided(id int64, fromStatus, toStatus string, decidedBy int64, decidedAt time.Time, expiresAt *time.Time, reason string) (int64, error) {
	updates := map[string]interface{}{
		"status":          toStatus,
		"decided_by":      decidedBy,
		"decided_at":      decidedAt,
		"decision_reason": reason,
		"updated_at":      time.Now(),
	}
	if expiresAt != nil {
		updates["expires_at"] = *expiresAt
	}

	result := r.db.Model(&unmaskDatamodel.UnmaskRequest{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *UnmaskRepository) ListActiveApproved(requesterID, subjectID int64, now time.Time) ([]*unmaskDatamodel.UnmaskRequest, error) {
	var requests []*unmaskDatamodel.UnmaskRequest
	err := r.db.Where("requester_id = ? AND subject_id = ? AND status = ? AND expires_at > ?",
		requesterID, subjectID, unmask.StatusApproved, now).
		Find(&requests).Error
	return requests, err
}

func (r *UnmaskRepository) ListPending(limit, offset int) ([]*unmaskDatamodel.UnmaskRequest, error) {
	var requests []*unmaskDatamodel.UnmaskRequest
	err := r.db.Where("status = ?", unmask.StatusPending).
		Order("created_at ASC"). // FIFO for approvers
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

func (r *UnmaskRepository) ListByRequester(requesterID int64, limit, offset int) ([]*unmaskDatamodel.UnmaskRequest, error) {
	var requests []*unmaskDatamodel.UnmaskRequest
	err := r.db.Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

// ExpireDue returns the approved rows whose deadline has passed and flips
// them to expired in one pass.
func (r *UnmaskRepository) ExpireDue(now time.Time) ([]*unmaskDatamodel.UnmaskRequest, error) {
	var due []*unmaskDatamodel.UnmaskRequest
	err := r.db.Where("status = ? AND expires_at <= ?", unmask.StatusApproved, now).
		Find(&due).Error
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(due))
	for i, m := range due {
		ids[i] = m.ID
	}

	err = r.db.Model(&unmaskDatamodel.UnmaskRequest{}).
		Where("id IN ? AND status = ?", ids, unmask.StatusApproved).
		Updates(map[string]interface{}{
			"status":     unmask.StatusExpired,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return due, nil
}
