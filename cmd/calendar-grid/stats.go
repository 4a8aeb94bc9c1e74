package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var (
		userID string
		year   int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the vacation balance of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, closeDB, err := openCalendar(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			if year == 0 {
				year = time.Now().In(cfg.Location()).Year()
			}
			stats, err := svc.VacationStats(ctx, calendar.VacationStatsRequest{
				RequesterID: userID,
				UserID:      userID,
				Year:        year,
			})
			if err != nil {
				return fmt.Errorf("failed to get vacation stats: %w", err)
			}

			renderStats(os.Stdout, year, stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID (required)")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default: current year)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func renderStats(w io.Writer, year int, stats calendar.VacationStats) {
	label := lipgloss.NewStyle().Width(12)
	remaining := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9df09d"))
	if stats.RemainingDays == 0 {
		remaining = remaining.Foreground(lipgloss.Color("#f55959"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86")).
		Padding(0, 1)

	body := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("Vacation %d", year)),
		label.Render("Total")+fmt.Sprintf("%d", stats.TotalDays),
		label.Render("Used")+fmt.Sprintf("%d", stats.UsedDays),
		label.Render("Pending")+fmt.Sprintf("%d", stats.PendingDays),
		label.Render("Remaining")+remaining.Render(fmt.Sprintf("%d", stats.RemainingDays)),
	)
	fmt.Fprintln(w, box.Render(body))
}
