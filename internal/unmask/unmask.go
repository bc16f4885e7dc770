package unmask

import (
	"encoding/json"
	"time"

	unmaskDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/unmaskrequest"
)

// Request statuses. pending moves to approved or denied by an approver;
// approved moves to expired once its deadline passes. denied is terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
	StatusExpired  = "expired"
)

type Request struct {
	ID             int64      `json:"id"`
	RequesterID    int64      `json:"requester_id"`
	SubjectID      int64      `json:"subject_id"`
	Fields         []string   `json:"fields"`
	Justification  string     `json:"justification"`
	Status         string     `json:"status"`
	DecidedBy      *int64     `json:"decided_by,omitempty"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	DecisionReason string     `json:"decision_reason,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (r *Request) CanBeDecided() bool {
	return r.Status == StatusPending
}

// ActiveAt reports whether the grant this request carries covers reads at
// the given instant. Expiry is derived from time, not from the stored
// status: a stale approved row with a past deadline grants nothing, and
// expires_at == now already counts as expired.
func (r *Request) ActiveAt(now time.Time) bool {
	if r.Status != StatusApproved || r.ExpiresAt == nil {
		return false
	}
	return now.Before(*r.ExpiresAt)
}

func ToDataModel(r *Request) *unmaskDatamodel.UnmaskRequest {
	fields, _ := json.Marshal(r.Fields)
	return &unmaskDatamodel.UnmaskRequest{
		ID:             r.ID,
		RequesterID:    r.RequesterID,
		SubjectID:      r.SubjectID,
		Fields:         string(fields),
		Justification:  r.Justification,
		Status:         r.Status,
		DecidedBy:      r.DecidedBy,
		DecidedAt:      r.DecidedAt,
		DecisionReason: r.DecisionReason,
		ExpiresAt:      r.ExpiresAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func FromDataModel(m *unmaskDatamodel.UnmaskRequest) *Request {
	var fields []string
	// A row with an unreadable field list grants nothing rather than failing
	// the whole listing.
	_ = json.Unmarshal([]byte(m.Fields), &fields)
	return &Request{
		ID:             m.ID,
		RequesterID:    m.RequesterID,
		SubjectID:      m.SubjectID,
		Fields:         fields,
		Justification:  m.Justification,
		Status:         m.Status,
		DecidedBy:      m.DecidedBy,
		DecidedAt:      m.DecidedAt,
		DecisionReason: m.DecisionReason,
		ExpiresAt:      m.ExpiresAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*unmaskDatamodel.UnmaskRequest) []*Request {
	result := make([]*Request, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
