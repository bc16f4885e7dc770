package postgres_test

import (
	"testing"
	"time"

	"github.com/mahfuzhasan/officer-registry/internal/audit"
	auditPostgres "github.com/mahfuzhasan/officer-registry/internal/audit/postgres"
	accesslogDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/accesslog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuditPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Postgres Suite")
}

// SQLiteFieldAccessLog is a SQLite-compatible model for testing
type SQLiteFieldAccessLog struct {
	ID         int64     `gorm:"primaryKey"`
	AccessorID int64     `gorm:"column:accessor_id;not null"`
	SubjectID  int64     `gorm:"column:subject_id;not null"`
	FieldName  string    `gorm:"column:field_name;not null"`
	Outcome    string    `gorm:"column:outcome;not null"`
	RequestID  string    `gorm:"column:request_id"`
	IP         string    `gorm:"column:ip"`
	UserAgent  string    `gorm:"column:user_agent"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (SQLiteFieldAccessLog) TableName() string {
	return "field_access_logs"
}

var _ = Describe("Audit PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo audit.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteFieldAccessLog{})
		Expect(err).NotTo(HaveOccurred())

		repo = auditPostgres.NewAuditRepository(db)
	})

	Describe("Append", func() {
		It("should insert an entry and assign an id", func() {
			entry := &accesslogDatamodel.FieldAccessLog{
				AccessorID: 3,
				SubjectID:  7,
				FieldName:  "national_id",
				Outcome:    "SHOW",
				RequestID:  "req-42",
				IP:         "192.168.1.10",
				UserAgent:  "registry-web",
				CreatedAt:  time.Now(),
			}

			err := repo.Append(entry)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.ID).To(BeNumerically(">", 0))
		})

		It("should keep every append as a separate row", func() {
			for i := 0; i < 3; i++ {
				entry := &accesslogDatamodel.FieldAccessLog{
					AccessorID: 3,
					SubjectID:  7,
					FieldName:  "salary",
					Outcome:    "MASK",
					CreatedAt:  time.Now(),
				}
				Expect(repo.Append(entry)).To(Succeed())
			}

			var count int64
			Expect(db.Model(&SQLiteFieldAccessLog{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(3)))
		})
	})

	Describe("ListBySubject", func() {
		BeforeEach(func() {
			base := time.Now().Add(-time.Hour)
			seed := []*accesslogDatamodel.FieldAccessLog{
				{AccessorID: 3, SubjectID: 7, FieldName: "salary", Outcome: "SHOW", CreatedAt: base},
				{AccessorID: 3, SubjectID: 7, FieldName: "national_id", Outcome: "MASK", CreatedAt: base.Add(10 * time.Minute)},
				{AccessorID: 4, SubjectID: 7, FieldName: "date_of_birth", Outcome: "SHOW", CreatedAt: base.Add(20 * time.Minute)},
				{AccessorID: 3, SubjectID: 99, FieldName: "salary", Outcome: "SHOW", CreatedAt: base.Add(30 * time.Minute)},
			}
			for _, e := range seed {
				Expect(repo.Append(e)).To(Succeed())
			}
		})

		It("should return only the requested subject's entries, newest first", func() {
			entries, err := repo.ListBySubject(7, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))

			Expect(entries[0].FieldName).To(Equal("date_of_birth"))
			Expect(entries[1].FieldName).To(Equal("national_id"))
			Expect(entries[2].FieldName).To(Equal("salary"))
			for _, e := range entries {
				Expect(e.SubjectID).To(Equal(int64(7)))
			}
		})

		It("should respect the limit", func() {
			entries, err := repo.ListBySubject(7, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].FieldName).To(Equal("date_of_birth"))
		})

		It("should return an empty slice for a subject with no entries", func() {
			entries, err := repo.ListBySubject(12345, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})
})
