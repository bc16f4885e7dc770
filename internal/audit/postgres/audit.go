package postgres

import (
	accesslogDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/accesslog"
	"github.com/mahfuzhasan/officer-registry/internal/audit"
	"gorm.io/gorm"
)

// AuditRepository implements audit.RepositoryAPI using GORM. It only ever
// inserts and selects; the table is append-only.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(entry *accesslogDatamodel.FieldAccessLog) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepository) ListBySubject(subjectID int64, limit int) ([]*accesslogDatamodel.FieldAccessLog, error) {
	var entries []*accesslogDatamodel.FieldAccessLog
	err := r.db.Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
