package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskplanner/core/internal/adapters/taskapi"
	"github.com/taskplanner/core/internal/application/calendar"
	"github.com/taskplanner/core/internal/infrastructure/config"
)

// NewCalendarCommand creates the calendar command: a terminal rendering of
// the month calendar view over the task API.
func NewCalendarCommand() *cobra.Command {
	var (
		month  string
		apiURL string
		months int
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Render the month calendar for tasks from the API",
		Long: `Fetch all tasks from the task API once and render one or more month
grids with tasks bound to their due dates. Additional months are rendered by
navigating the already-fetched snapshot; no further requests are made.`,
		Run: func(cmd *cobra.Command, args []string) {
			runCalendar(month, apiURL, months)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to display as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Task API base URL (default: from configuration)")
	cmd.Flags().IntVar(&months, "months", 1, "Number of consecutive months to render")

	return cmd
}

func runCalendar(month, apiURL string, months int) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	clientCfg := cfg.Client
	if apiURL != "" {
		clientCfg.BaseURL = apiURL
	}

	client, err := taskapi.New(clientCfg)
	if err != nil {
		log.Fatalf("Failed to create task API client: %v", err)
	}

	ref := time.Now()
	if month != "" {
		ref, err = time.Parse("2006-01", month)
		if err != nil {
			log.Fatalf("Invalid month %q, expected YYYY-MM", month)
		}
	}

	view := calendar.NewView(client, ref)

	ctx, cancel := context.WithTimeout(context.Background(), clientCfg.Timeout)
	defer cancel()
	view.Load(ctx)

	if months < 1 {
		months = 1
	}
	for i := 0; i < months; i++ {
		if i > 0 {
			view.NextMonth()
		}
		printMonth(view)
	}
}

func printMonth(view *calendar.View) {
	fmt.Printf("\n%s\n", view.MonthLabel())
	if msg := view.ErrorMessage(); msg != "" {
		fmt.Printf("  %s\n", msg)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, day := range view.Days() {
		if len(day.Tasks) == 0 {
			continue
		}
		for _, task := range day.Tasks {
			fmt.Fprintf(w, "  %s\t%s\t[%s]\n", day.DateLabel, task.Title, task.Status)
		}
	}
	w.Flush()
}
