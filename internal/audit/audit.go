package audit

import (
	"errors"
	"time"

	accesslogDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/accesslog"
)

// Entry is one recorded sensitive-field access. Entries are write-once:
// nothing in this package updates or deletes them.
type Entry struct {
	ID         int64     `json:"id"`
	AccessorID int64     `json:"accessor_id"`
	SubjectID  int64     `json:"subject_id"`
	FieldName  string    `json:"field_name"`
	Outcome    string    `json:"outcome"`
	RequestID  string    `json:"request_id,omitempty"`
	IP         string    `json:"ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RequestMeta carries the per-request attributes stamped onto every
// entry written during that request.
type RequestMeta struct {
	RequestID string
	IP        string
	UserAgent string
}

var (
	// ErrUnavailable means the audit store rejected the write. Callers must
	// abort the read they were about to serve; an unrecorded restricted-field
	// access is a security fault, not a logging gap.
	ErrUnavailable = errors.New("audit store unavailable")

	// ErrTrailForbidden means the caller's role may not read access trails.
	ErrTrailForbidden = errors.New("audit trail access forbidden")
)

func ToDataModel(e *Entry) *accesslogDatamodel.FieldAccessLog {
	return &accesslogDatamodel.FieldAccessLog{
		ID:         e.ID,
		AccessorID: e.AccessorID,
		SubjectID:  e.SubjectID,
		FieldName:  e.FieldName,
		Outcome:    e.Outcome,
		RequestID:  e.RequestID,
		IP:         e.IP,
		UserAgent:  e.UserAgent,
		CreatedAt:  e.CreatedAt,
	}
}

func FromDataModel(m *accesslogDatamodel.FieldAccessLog) *Entry {
	return &Entry{
		ID:         m.ID,
		AccessorID: m.AccessorID,
		SubjectID:  m.SubjectID,
		FieldName:  m.FieldName,
		Outcome:    m.Outcome,
		RequestID:  m.RequestID,
		IP:         m.IP,
		UserAgent:  m.UserAgent,
		CreatedAt:  m.CreatedAt,
	}
}

func FromDataModelSlice(models []*accesslogDatamodel.FieldAccessLog) []*Entry {
	result := make([]*Entry, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
