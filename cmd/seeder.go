package cmd

import (
	"fmt"
	"log"
	"time"

	officeDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/office"
	officerDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/officer"
	userDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"unmask_requests", "field_access_logs", "officers", "offices", "users"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		users := []userDatamodel.User{
			{Email: "nasrin.admin@registry.gov.bd", Name: "Nasrin Akter", Role: "admin", Department: "ICT Wing"},
			{Email: "kamal.hr@registry.gov.bd", Name: "Kamal Hossain", Role: "hr", Department: "Human Resources"},
			{Email: "shirin.manager@registry.gov.bd", Name: "Shirin Sultana", Role: "manager", Department: "Administration"},
			{Email: "rafiq.user@registry.gov.bd", Name: "Rafiqul Islam", Role: "user", Department: "Accounts"},
			{Email: "guest.viewer@registry.gov.bd", Name: "Guest Viewer", Role: "viewer", Department: ""},
		}
		for _, u := range users {
			u.PasswordHash = string(hash)
			u.IsActive = true
			if err := upsertUser(gormDB, u); err != nil {
				log.Fatalf("failed to seed user %s: %v", u.Email, err)
			}
		}
		fmt.Println("Seeded role accounts (password: password)")

		offices := []officeDatamodel.Office{
			{Name: "Dhaka HQ", District: "Dhaka", IsActive: true},
			{Name: "Chattogram Regional", District: "Chattogram", IsActive: true},
			{Name: "Sylhet Regional", District: "Sylhet", IsActive: true},
			{Name: "Khulna Field Station", District: "Khulna", IsActive: true},
		}
		for _, o := range offices {
			var exists int
			if err := gormDB.Raw("SELECT 1 FROM offices WHERE name = ?", o.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := gormDB.Create(&o).Error; err != nil {
				log.Fatalf("failed to seed office %s: %v", o.Name, err)
			}
			fmt.Printf("Seeded office: %s\n", o.Name)
		}

		dob := func(year, month, day int) *time.Time {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return &t
		}

		officers := []officerDatamodel.Officer{
			{
				FullName:       "Md. Abdul Karim",
				Designation:    "Deputy Secretary",
				Office:         "Dhaka HQ",
				PersonalMobile: "01712345678",
				PersonalEmail:  "abdul.karim@example.com",
				NationalID:     "19751234567890123",
				Salary:         85000,
				DateOfBirth:    dob(1975, 3, 12),
			},
			{
				FullName:       "Fatema Begum",
				Designation:    "Assistant Director",
				Office:         "Chattogram Regional",
				PersonalMobile: "01898765432",
				PersonalEmail:  "fatema.begum@example.com",
				NationalID:     "19821234567890456",
				Salary:         62000,
				DateOfBirth:    dob(1982, 11, 2),
				// mobile relaxed to internal for colleagues
				MobileVisibility: "internal",
			},
			{
				FullName:       "Shafiqur Rahman",
				Designation:    "Section Officer",
				Office:         "Sylhet Regional",
				PersonalMobile: "01911223344",
				PersonalEmail:  "shafiq.rahman@example.com",
				NationalID:     "19901234567890789",
				Salary:         43000,
				DateOfBirth:    dob(1990, 7, 25),
				// email tightened to restricted at the officer's request
				EmailVisibility: "restricted",
			},
		}
		for _, o := range officers {
			var exists int
			if err := gormDB.Raw("SELECT 1 FROM officers WHERE national_id = ?", o.NationalID).Row().Scan(&exists); err == nil {
				continue
			}
			o.IsActive = true
			if err := gormDB.Create(&o).Error; err != nil {
				log.Fatalf("failed to seed officer %s: %v", o.FullName, err)
			}
			fmt.Printf("Seeded officer: %s\n", o.FullName)
		}

		fmt.Println("Seeding complete")
	},
}

func upsertUser(db *gorm.DB, u userDatamodel.User) error {
	var exists int
	if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
		return db.Exec("UPDATE users SET role = ?, is_active = true, updated_at = now() WHERE email = ?", u.Role, u.Email).Error
	}
	return db.Create(&u).Error
}
