package postgres_test

import (
	"testing"
	"time"

	officeDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/office"
	"github.com/mahfuzhasan/officer-registry/internal/office"
	officePostgres "github.com/mahfuzhasan/officer-registry/internal/office/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOfficePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Office Postgres Suite")
}

// SQLiteOffice is a SQLite-compatible model for testing
type SQLiteOffice struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	District  string    `gorm:"column:district"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteOffice) TableName() string {
	return "offices"
}

var _ = Describe("Office PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo office.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteOffice{})
		Expect(err).NotTo(HaveOccurred())

		repo = officePostgres.NewOfficeRepository(db)
	})

	Describe("Create", func() {
		It("should create a new office successfully", func() {
			o := &officeDatamodel.Office{
				Name:     "Dhaka HQ",
				District: "Dhaka",
				IsActive: true,
			}

			err := repo.Create(o)
			Expect(err).NotTo(HaveOccurred())
			Expect(o.ID).To(BeNumerically(">", 0))
			Expect(o.CreatedAt).NotTo(BeZero())
		})

		It("should fail to create duplicate office", func() {
			o1 := &officeDatamodel.Office{Name: "Dhaka HQ", District: "Dhaka", IsActive: true}
			err := repo.Create(o1)
			Expect(err).NotTo(HaveOccurred())

			o2 := &officeDatamodel.Office{Name: "Dhaka HQ", District: "Gazipur", IsActive: true}
			err = repo.Create(o2)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetAll", func() {
		BeforeEach(func() {
			active := []*officeDatamodel.Office{
				{Name: "Dhaka HQ", District: "Dhaka", IsActive: true},
				{Name: "Sylhet Regional", District: "Sylhet", IsActive: true},
			}
			for _, o := range active {
				Expect(repo.Create(o)).To(Succeed())
			}

			closed := &officeDatamodel.Office{Name: "Barisal Field Station", District: "Barisal", IsActive: true}
			Expect(repo.Create(closed)).To(Succeed())
			closed.IsActive = false
			Expect(repo.Update(closed)).To(Succeed())
		})

		It("should retrieve all offices ordered by name", func() {
			offices, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(offices).To(HaveLen(3))

			Expect(offices[0].Name).To(Equal("Barisal Field Station"))
			Expect(offices[1].Name).To(Equal("Dhaka HQ"))
			Expect(offices[2].Name).To(Equal("Sylhet Regional"))
		})

		It("should include both active and inactive offices", func() {
			offices, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())

			activeCount := 0
			for _, o := range offices {
				if o.IsActive {
					activeCount++
				}
			}
			Expect(activeCount).To(Equal(2))
		})
	})

	Describe("GetByName", func() {
		BeforeEach(func() {
			o := &officeDatamodel.Office{Name: "Dhaka HQ", District: "Dhaka", IsActive: true}
			Expect(repo.Create(o)).To(Succeed())
		})

		It("should retrieve office by name successfully", func() {
			result, err := repo.GetByName("Dhaka HQ")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.District).To(Equal("Dhaka"))
			Expect(result.IsActive).To(BeTrue())
		})

		It("should return nil for non-existent office", func() {
			result, err := repo.GetByName("nonexistent")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("Delete", func() {
		var seeded *officeDatamodel.Office

		BeforeEach(func() {
			seeded = &officeDatamodel.Office{Name: "Dhaka HQ", District: "Dhaka", IsActive: true}
			Expect(repo.Create(seeded)).To(Succeed())
		})

		It("should soft delete office by setting is_active to false", func() {
			err := repo.Delete(seeded.ID)
			Expect(err).NotTo(HaveOccurred())

			result, err := repo.GetByName("Dhaka HQ")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.IsActive).To(BeFalse())
		})

		It("should handle non-existent ID gracefully", func() {
			err := repo.Delete(999)
			Expect(err).NotTo(HaveOccurred())

			result, err := repo.GetByName("Dhaka HQ")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsActive).To(BeTrue())
		})
	})
})
