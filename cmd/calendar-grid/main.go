package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-calendar-go/internal/config"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-calendar-go/internal/repository/postgresql"
	calendarService "github.com/cmlabs-hris/hris-calendar-go/internal/service/calendar"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "calendar-grid",
		Short: "Render the HR calendar grid in a terminal",
		Long: `calendar-grid prints the users × days grid of the HR calendar with the
same abbreviations, colors and overflow rules as the web calendar.`,
		PersistentPreRunE: loadConfig,
		SilenceUsage:      true,
		Version:           version,
	}
)

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(gridCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(tokenCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded
	return nil
}

// openCalendar connects to the database and builds the calendar service the
// API uses. The returned func closes the pool.
func openCalendar(ctx context.Context) (*calendarService.CalendarService, func(), error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: 2, MinConns: 1})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := calendarService.NewCalendarService(
		postgresql.NewLeaveRequestRepository(db),
		postgresql.NewTimeRecordRepository(db),
		postgresql.NewReminderRepository(db),
		postgresql.NewUserRepository(db),
		postgresql.NewTeamRepository(db),
		i18n.NewTranslator(cfg.Calendar.Locale),
		calendarService.Options{
			DefaultVacationDays: cfg.Calendar.DefaultVacationDays,
			ClipVacationToYear:  cfg.Calendar.ClipVacationToYear,
			MaxCellEntries:      cfg.Calendar.MaxCellEntries,
			Colors:              cfg.Calendar.Colors,
			Location:            cfg.Location(),
		},
	)
	return svc, db.Close, nil
}
