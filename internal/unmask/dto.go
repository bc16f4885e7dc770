package unmask

import (
	"strings"

	apperrors "github.com/mahfuzhasan/officer-registry/internal"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

// CreateRequestDTO is the payload for opening an unmask request.
type CreateRequestDTO struct {
	SubjectID     int64    `json:"subject_id"`
	Fields        []string `json:"fields"`
	Justification string   `json:"justification"`
}

func (dto CreateRequestDTO) Validate() error {
	if dto.SubjectID <= 0 {
		return apperrors.NewValidationFieldError("subject_id", "subject_id is required", apperrors.ErrCodeInvalidOfficer)
	}
	if len(dto.Fields) == 0 {
		return apperrors.NewValidationFieldError("fields", "at least one field is required", apperrors.ErrCodeInvalidFieldList)
	}
	for _, f := range dto.Fields {
		if !privacy.IsProtected(f) {
			return apperrors.NewValidationFieldError("fields", "unknown field: "+f, apperrors.ErrCodeInvalidFieldList)
		}
	}
	if strings.TrimSpace(dto.Justification) == "" {
		return apperrors.NewValidationFieldError("justification", "justification is required", apperrors.ErrCodeInvalidReason)
	}
	return nil
}

// DecideRequestDTO is the payload for approving or denying a request.
// TTLMinutes applies to approvals only; nil means the configured default.
type DecideRequestDTO struct {
	TTLMinutes *int   `json:"ttl_minutes,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (dto DecideRequestDTO) ValidateApprove() error {
	if dto.TTLMinutes != nil && *dto.TTLMinutes < 0 {
		return apperrors.NewValidationFieldError("ttl_minutes", "ttl_minutes cannot be negative", apperrors.ErrCodeInvalidTTL)
	}
	return nil
}

func (dto DecideRequestDTO) ValidateDeny() error {
	if strings.TrimSpace(dto.Reason) == "" {
		return apperrors.NewValidationFieldError("reason", "reason is required when denying a request", apperrors.ErrCodeInvalidReason)
	}
	return nil
}
