package unmaskrequest

import "time"

// UnmaskRequest is the persisted unmask workflow record. Fields holds the
// requested field names as a JSON array; requests are never deleted, the
// row is the audit trail of the decision.
type UnmaskRequest struct {
	ID             int64      `gorm:"primaryKey"`
	RequesterID    int64      `gorm:"column:requester_id;not null"`
	SubjectID      int64      `gorm:"column:subject_id;not null"`
	Fields         string     `gorm:"column:fields;not null"`
	Justification  string     `gorm:"column:justification;not null"`
	Status         string     `gorm:"column:status;default:pending"`
	DecidedBy      *int64     `gorm:"column:decided_by"`
	DecidedAt      *time.Time `gorm:"column:decided_at"`
	DecisionReason string     `gorm:"column:decision_reason"`
	ExpiresAt      *time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;default:now()"`
}

func (UnmaskRequest) TableName() string {
	return "unmask_requests"
}
