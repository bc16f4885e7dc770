package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mahfuzhasan/officer-registry/internal/core/events"
	"github.com/mahfuzhasan/officer-registry/internal/officer"
	officerPostgres "github.com/mahfuzhasan/officer-registry/internal/officer/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/unmask"
	unmaskPostgres "github.com/mahfuzhasan/officer-registry/internal/unmask/postgres"
	"github.com/mahfuzhasan/officer-registry/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like the unmask grant expiry sweeper.`,
}

var sweepWorkerCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Start the unmask grant expiry sweeper",
	Long:  `Periodically flips approved unmask requests whose deadline has passed to expired.`,
	Run: func(cmd *cobra.Command, args []string) {
		startSweepWorker()
	},
}

// Event Bus worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus and log unmask lifecycle events as they arrive`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var sweepInterval time.Duration

func startSweepWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := initGorm(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize orm: %v\n", err)
		os.Exit(1)
	}

	eventBus := events.NewEventBus(lg)
	subscribeUnmaskNotifier(eventBus, lg)

	officerRepo := officerPostgres.NewOfficerRepository(gormDB)
	unmaskRepo := unmaskPostgres.NewUnmaskRepository(gormDB)
	unmaskService := unmask.NewService(
		unmaskRepo,
		officer.NewSubjectSource(officerRepo),
		eventBus,
		config.Privacy.DefaultUnmaskTTL(),
		config.Privacy.MaxUnmaskTTL(),
		lg,
	)

	interval := config.Privacy.SweepInterval
	if sweepInterval > 0 {
		interval = sweepInterval
	}
	if interval <= 0 {
		interval = time.Minute
	}

	lg.Info("sweep worker started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			if _, err := unmaskService.SweepExpired(); err != nil {
				lg.Error("sweep iteration failed", "error", err)
			}
		case sig := <-sigChan:
			lg.Info("received signal, shutting down sweep worker", "signal", sig)
			return
		}
	}
}

func startEventWorker() {
	_, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	lg := logger.L()

	eventBus := events.NewEventBus(lg)
	subscribeUnmaskNotifier(eventBus, lg)

	lg.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("event bus is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	lg.Info("received signal, shutting down event bus", "signal", sig)
	lg.Info("event bus shutdown complete")
}

func init() {
	sweepWorkerCmd.Flags().DurationVar(&sweepInterval, "interval", 0, "Sweep interval (overrides config)")

	workerCmd.AddCommand(sweepWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
