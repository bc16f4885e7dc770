package postgres_test

import (
	"testing"
	"time"

	officerDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/officer"
	"github.com/mahfuzhasan/officer-registry/internal/officer"
	officerPostgres "github.com/mahfuzhasan/officer-registry/internal/officer/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOfficerPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Officer Postgres Suite")
}

// SQLiteOfficer is a SQLite-compatible model for testing
type SQLiteOfficer struct {
	ID               int64      `gorm:"primaryKey"`
	FullName         string     `gorm:"column:full_name;not null"`
	Designation      string     `gorm:"column:designation"`
	Office           string     `gorm:"column:office"`
	PersonalMobile   string     `gorm:"column:personal_mobile"`
	PersonalEmail    string     `gorm:"column:personal_email"`
	NationalID       string     `gorm:"column:national_id"`
	Salary           int64      `gorm:"column:salary"`
	DateOfBirth      *time.Time `gorm:"column:date_of_birth"`
	MobileVisibility string     `gorm:"column:mobile_visibility"`
	EmailVisibility  string     `gorm:"column:email_visibility"`
	NIDVisibility    string     `gorm:"column:nid_visibility"`
	SalaryVisibility string     `gorm:"column:salary_visibility"`
	DOBVisibility    string     `gorm:"column:dob_visibility"`
	IsActive         bool       `gorm:"column:is_active;default:true"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (SQLiteOfficer) TableName() string {
	return "officers"
}

var _ = Describe("Officer PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo officer.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteOfficer{})
		Expect(err).NotTo(HaveOccurred())

		repo = officerPostgres.NewOfficerRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("should persist an officer with all PII columns", func() {
			dob := time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC)
			o := &officerDatamodel.Officer{
				FullName:       "Abdul Karim",
				Designation:    "Deputy Secretary",
				Office:         "Dhaka HQ",
				PersonalMobile: "01712345678",
				PersonalEmail:  "karim@mof.gov.bd",
				NationalID:     "1992837465",
				Salary:         95000,
				DateOfBirth:    &dob,
				IsActive:       true,
			}

			err := repo.Create(o)
			Expect(err).NotTo(HaveOccurred())
			Expect(o.ID).To(BeNumerically(">", 0))

			stored, err := repo.GetByID(o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.NationalID).To(Equal("1992837465"))
			Expect(stored.Salary).To(Equal(int64(95000)))
			Expect(stored.DateOfBirth).NotTo(BeNil())
		})

		It("should not return inactive officers", func() {
			o := &officerDatamodel.Officer{FullName: "Abdul Karim", IsActive: true}
			Expect(repo.Create(o)).To(Succeed())

			Expect(db.Model(&SQLiteOfficer{}).Where("id = ?", o.ID).
				Update("is_active", false).Error).To(Succeed())

			_, err := repo.GetByID(o.ID)
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
		})

		It("should return an error for a missing id", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
		})
	})

	Describe("GetAll", func() {
		BeforeEach(func() {
			names := []string{"Rafiqul Islam", "Abdul Karim", "Nasrin Sultana"}
			for _, name := range names {
				Expect(repo.Create(&officerDatamodel.Officer{FullName: name, IsActive: true})).To(Succeed())
			}
			inactive := &officerDatamodel.Officer{FullName: "Former Officer", IsActive: true}
			Expect(repo.Create(inactive)).To(Succeed())
			Expect(db.Model(&SQLiteOfficer{}).Where("id = ?", inactive.ID).
				Update("is_active", false).Error).To(Succeed())
		})

		It("should return active officers ordered by name", func() {
			officers, err := repo.GetAll(20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(officers).To(HaveLen(3))
			Expect(officers[0].FullName).To(Equal("Abdul Karim"))
			Expect(officers[1].FullName).To(Equal("Nasrin Sultana"))
			Expect(officers[2].FullName).To(Equal("Rafiqul Islam"))
		})

		It("should paginate", func() {
			officers, err := repo.GetAll(2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(officers).To(HaveLen(1))
			Expect(officers[0].FullName).To(Equal("Rafiqul Islam"))
		})
	})

	Describe("UpdateVisibility", func() {
		var seeded *officerDatamodel.Officer

		BeforeEach(func() {
			seeded = &officerDatamodel.Officer{
				FullName:       "Abdul Karim",
				PersonalMobile: "01712345678",
				IsActive:       true,
			}
			Expect(repo.Create(seeded)).To(Succeed())
		})

		It("should write the mapped override columns", func() {
			err := repo.UpdateVisibility(seeded.ID, map[string]string{
				privacy.FieldMobile: "restricted",
				privacy.FieldSalary: "internal",
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.GetByID(seeded.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.MobileVisibility).To(Equal("restricted"))
			Expect(stored.SalaryVisibility).To(Equal("internal"))
			Expect(stored.EmailVisibility).To(BeEmpty())
		})

		It("should clear an override back to the baseline with an empty level", func() {
			Expect(repo.UpdateVisibility(seeded.ID, map[string]string{
				privacy.FieldMobile: "restricted",
			})).To(Succeed())

			Expect(repo.UpdateVisibility(seeded.ID, map[string]string{
				privacy.FieldMobile: "",
			})).To(Succeed())

			stored, err := repo.GetByID(seeded.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.MobileVisibility).To(BeEmpty())
		})

		It("should skip field names without an override column", func() {
			err := repo.UpdateVisibility(seeded.ID, map[string]string{
				"full_name":         "restricted",
				privacy.FieldMobile: "internal",
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.GetByID(seeded.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.MobileVisibility).To(Equal("internal"))
		})

		It("should touch updated_at", func() {
			before, err := repo.GetByID(seeded.ID)
			Expect(err).NotTo(HaveOccurred())

			time.Sleep(10 * time.Millisecond)
			Expect(repo.UpdateVisibility(seeded.ID, map[string]string{
				privacy.FieldMobile: "restricted",
			})).To(Succeed())

			after, err := repo.GetByID(seeded.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.UpdatedAt).To(BeTemporally(">", before.UpdatedAt))
		})
	})
})
