package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/spf13/cobra"
)

const (
	cellWidth    = 3
	maxNameWidth = 20
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	weekendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func gridCmd() *cobra.Command {
	var (
		userID    string
		view      string
		month     string
		filter    string
		teamID    string
		rangeView string
		lang      string
		pending   bool
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the calendar grid",
		Long: `Print one row per visible user and one column per day. Cells show the
abbreviation of the first entry; "+" marks cells with hidden entries.
With --pending, requested leaves are shown faint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, closeDB, err := openCalendar(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			if month == "" {
				month = time.Now().In(cfg.Location()).Format("2006-01")
			}
			req := calendar.GridRequest{
				EntriesRequest: calendar.EntriesRequest{
					CurrentUserID:  userID,
					ViewMode:       view,
					Month:          month,
					Filter:         filter,
					IncludePending: pending,
				},
				Range: rangeView,
			}
			if teamID != "" {
				req.TeamID = &teamID
			}
			if lang != "" {
				req.Languages = []string{lang}
			}

			grid, err := svc.Grid(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to build grid: %w", err)
			}

			renderGrid(os.Stdout, fmt.Sprintf("%s %s (%s)", month, view, rangeView), grid)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "acting user ID (required)")
	cmd.Flags().StringVar(&view, "view", string(calendar.ViewModeTeam), "view mode (personal, team)")
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&filter, "filter", string(calendar.FilterAll), "entry filter (all, leaves, work)")
	cmd.Flags().StringVar(&teamID, "team", "", "restrict the team view to one team")
	cmd.Flags().StringVar(&rangeView, "range", string(calendar.RangeMonth), "date range (month, year)")
	cmd.Flags().StringVar(&lang, "lang", "", "label language (de, en)")
	cmd.Flags().BoolVar(&pending, "pending", false, "also show leave requests awaiting approval")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// renderGrid writes the grid, its legend and the overflow notes to w.
func renderGrid(w io.Writer, title string, grid calendar.GridResponse) {
	fmt.Fprintln(w, titleStyle.Render(title))

	if len(grid.Rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No users to show."))
		return
	}

	nameWidth := 0
	for _, row := range grid.Rows {
		nameWidth = max(nameWidth, lipgloss.Width(truncate(row.UserName, maxNameWidth)))
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth + 1)

	var header strings.Builder
	header.WriteString(nameCol.Render(""))
	for _, date := range grid.Dates {
		header.WriteString(lipgloss.NewStyle().Width(cellWidth).Render(date[8:10]))
	}
	fmt.Fprintln(w, headerStyle.Render(header.String()))

	var notes []string
	for _, row := range grid.Rows {
		var line strings.Builder
		line.WriteString(nameCol.Render(truncate(row.UserName, maxNameWidth)))
		for _, cell := range row.Cells {
			line.WriteString(renderCell(cell))
			if cell.Overflow > 0 {
				notes = append(notes, fmt.Sprintf("%s %s: %s", row.UserName, cell.Date, cell.OverflowLabel))
			}
		}
		fmt.Fprintln(w, line.String())
	}

	fmt.Fprintln(w)
	var legend []string
	for _, item := range grid.Legend {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(item.Color)).Render("  ")
		legend = append(legend, swatch+" "+item.Label)
	}
	fmt.Fprintln(w, strings.Join(legend, "   "))

	for _, note := range notes {
		fmt.Fprintln(w, mutedStyle.Render(note))
	}
}

func renderCell(cell calendar.GridCell) string {
	style := lipgloss.NewStyle().Width(cellWidth)
	if cell.Abbreviation == "" {
		if cell.IsWeekend {
			return weekendStyle.Width(cellWidth).Render("·")
		}
		return style.Render("")
	}

	text := cell.Abbreviation
	if cell.Overflow > 0 {
		text += "+"
	}
	style = style.Background(lipgloss.Color(cell.Color))
	if cell.TextColor != "" {
		style = style.Foreground(lipgloss.Color(cell.TextColor))
	} else {
		style = style.Foreground(lipgloss.Color("#000000"))
	}
	if cell.Dimmed {
		style = style.Faint(true)
	}
	return style.Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
