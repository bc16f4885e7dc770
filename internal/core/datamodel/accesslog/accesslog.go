package accesslog

import "time"

// FieldAccessLog is one append-only record of a sensitive-field access.
// Rows are written once at read time and never updated or deleted here;
// retention is handled outside the application.
type FieldAccessLog struct {
	ID         int64     `gorm:"primaryKey"`
	AccessorID int64     `gorm:"column:accessor_id;not null"`
	SubjectID  int64     `gorm:"column:subject_id;not null"`
	FieldName  string    `gorm:"column:field_name;not null"`
	Outcome    string    `gorm:"column:outcome;not null"`
	RequestID  string    `gorm:"column:request_id"`
	IP         string    `gorm:"column:ip"`
	UserAgent  string    `gorm:"column:user_agent"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}

func (FieldAccessLog) TableName() string {
	return "field_access_logs"
}
