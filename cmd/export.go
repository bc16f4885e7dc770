package cmd

import (
	"log"
	"os"

	"github.com/mahfuzhasan/officer-registry/internal/audit"
	auditPostgres "github.com/mahfuzhasan/officer-registry/internal/audit/postgres"
	authPostgres "github.com/mahfuzhasan/officer-registry/internal/auth/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/officer"
	officerPostgres "github.com/mahfuzhasan/officer-registry/internal/officer/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
	"github.com/mahfuzhasan/officer-registry/internal/unmask"
	unmaskPostgres "github.com/mahfuzhasan/officer-registry/internal/unmask/postgres"
	"github.com/mahfuzhasan/officer-registry/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	exportUserID int64
	exportOut    string
)

// The CSV goes through the same per-field policy as the API: what the
// acting account may not see is masked or left empty, and restricted
// fields are audited per row.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the officer directory as CSV",
	Long:  `Export the officer directory as CSV, rendered with the field visibility of the acting account.`,
	Run: func(cmd *cobra.Command, args []string) {
		runExport()
	},
}

func runExport() {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}
	defer db.Close()

	gormDB, err := initGorm(db)
	if err != nil {
		log.Fatalf("failed to init orm: %v", err)
	}

	authRepo := authPostgres.NewRepository(gormDB)
	account, err := authRepo.GetByID(exportUserID)
	if err != nil {
		log.Fatalf("failed to load acting account %d: %v", exportUserID, err)
	}
	actor := privacy.Actor{ID: account.ID, Role: privacy.ParseRole(account.Role)}

	officerRepo := officerPostgres.NewOfficerRepository(gormDB)
	auditService := audit.NewService(auditPostgres.NewAuditRepository(gormDB), cfg.Privacy.AuditTrailLimit, lg)
	unmaskService := unmask.NewService(
		unmaskPostgres.NewUnmaskRepository(gormDB),
		officer.NewSubjectSource(officerRepo),
		nil,
		cfg.Privacy.DefaultUnmaskTTL(),
		cfg.Privacy.MaxUnmaskTTL(),
		lg,
	)
	officerService := officer.NewService(officerRepo, auditService, unmaskService, lg)

	out, err := os.Create(exportOut)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer out.Close()

	meta := audit.RequestMeta{RequestID: "cli-export"}
	if err := officerService.ExportCSV(actor, out, meta); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	lg.Info("export written", "path", exportOut, "acting_user", exportUserID)
}

func init() {
	exportCmd.Flags().Int64Var(&exportUserID, "user-id", 0, "Account id the export is rendered for")
	exportCmd.Flags().StringVar(&exportOut, "out", "officers.csv", "Output file path")
	_ = exportCmd.MarkFlagRequired("user-id")

	rootCmd.AddCommand(exportCmd)
}
