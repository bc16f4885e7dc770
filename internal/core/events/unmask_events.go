package events

import "time"

const (
	EventTypeUnmaskRequested = "unmask.requested"
	EventTypeUnmaskApproved  = "unmask.approved"
	EventTypeUnmaskDenied    = "unmask.denied"
	EventTypeUnmaskExpired   = "unmask.expired"
)

// Unmask events carry identifiers only. Field values never travel through
// the bus; subscribers that need the record go back to storage with their
// own credentials.

type UnmaskRequestedEvent struct {
	BaseEvent
	RequestID   int64    `json:"request_id"`
	RequesterID int64    `json:"requester_id"`
	SubjectID   int64    `json:"subject_id"`
	Fields      []string `json:"fields"`
}

func NewUnmaskRequestedEvent(requestID, requesterID, subjectID int64, fields []string) *UnmaskRequestedEvent {
	return &UnmaskRequestedEvent{
		BaseEvent: newBaseEvent(EventTypeUnmaskRequested, map[string]interface{}{
			"request_id":   requestID,
			"requester_id": requesterID,
			"subject_id":   subjectID,
			"fields":       fields,
		}),
		RequestID:   requestID,
		RequesterID: requesterID,
		SubjectID:   subjectID,
		Fields:      fields,
	}
}

type UnmaskApprovedEvent struct {
	BaseEvent
	RequestID   int64     `json:"request_id"`
	RequesterID int64     `json:"requester_id"`
	SubjectID   int64     `json:"subject_id"`
	ApproverID  int64     `json:"approver_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func NewUnmaskApprovedEvent(requestID, requesterID, subjectID, approverID int64, expiresAt time.Time) *UnmaskApprovedEvent {
	return &UnmaskApprovedEvent{
		BaseEvent: newBaseEvent(EventTypeUnmaskApproved, map[string]interface{}{
			"request_id":   requestID,
			"requester_id": requesterID,
			"subject_id":   subjectID,
			"approver_id":  approverID,
			"expires_at":   expiresAt,
		}),
		RequestID:   requestID,
		RequesterID: requesterID,
		SubjectID:   subjectID,
		ApproverID:  approverID,
		ExpiresAt:   expiresAt,
	}
}

type UnmaskDeniedEvent struct {
	BaseEvent
	RequestID   int64  `json:"request_id"`
	RequesterID int64  `json:"requester_id"`
	SubjectID   int64  `json:"subject_id"`
	ApproverID  int64  `json:"approver_id"`
	Reason      string `json:"reason"`
}

func NewUnmaskDeniedEvent(requestID, requesterID, subjectID, approverID int64, reason string) *UnmaskDeniedEvent {
	return &UnmaskDeniedEvent{
		BaseEvent: newBaseEvent(EventTypeUnmaskDenied, map[string]interface{}{
			"request_id":   requestID,
			"requester_id": requesterID,
			"subject_id":   subjectID,
			"approver_id":  approverID,
			"reason":       reason,
		}),
		RequestID:   requestID,
		RequesterID: requesterID,
		SubjectID:   subjectID,
		ApproverID:  approverID,
		Reason:      reason,
	}
}

type UnmaskExpiredEvent struct {
	BaseEvent
	RequestID   int64 `json:"request_id"`
	RequesterID int64 `json:"requester_id"`
	SubjectID   int64 `json:"subject_id"`
}

func NewUnmaskExpiredEvent(requestID, requesterID, subjectID int64) *UnmaskExpiredEvent {
	return &UnmaskExpiredEvent{
		BaseEvent: newBaseEvent(EventTypeUnmaskExpired, map[string]interface{}{
			"request_id":   requestID,
			"requester_id": requesterID,
			"subject_id":   subjectID,
		}),
		RequestID:   requestID,
		RequesterID: requesterID,
		SubjectID:   subjectID,
	}
}
