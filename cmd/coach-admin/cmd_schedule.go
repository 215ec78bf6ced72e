package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ruminaider/coach-admin/cmd/coach-admin/tui"
	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/query"
	"github.com/ruminaider/coach-admin/internal/schedule"
)

// programsPageSize is the page size used to read every program.
const programsPageSize = 50

var (
	scheduleMulti bool
	scheduleCoach string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show program sessions grouped by coach",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		programs, err := loadPrograms(cmd.Context(), rt, scheduleCoach)
		if err != nil {
			return err
		}

		if !interactive() {
			renderSchedule(os.Stdout, schedule.GroupByCoach(programs), time.Now())
			return nil
		}
		view := tui.NewScheduleView(programs, scheduleMulti, time.Now())
		_, err = tea.NewProgram(view, tea.WithAltScreen()).Run()
		return err
	},
}

// loadPrograms reads every page of programs matching q.
func loadPrograms(ctx context.Context, rt *runtime, q string) ([]api.Program, error) {
	loader := query.NewLoader(rt.cache, query.ListFetcher[api.Program](rt.client), query.LoaderConfig{
		FetchOnEmptyQuery: true,
		Logger:            rt.log,
	})
	var out []api.Program
	key := query.NewKey(api.ResourcePrograms, 1, programsPageSize, q)
	for {
		res, err := loader.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Page.Results...)
		if key.Page >= res.Page.TotalPages {
			return out, nil
		}
		key = key.WithPage(key.Page + 1)
	}
}

func renderSchedule(w io.Writer, groups []schedule.CoachGroup, now time.Time) {
	if len(groups) == 0 {
		fmt.Fprintln(w, tui.DimStyle.Render("Nothing found"))
		return
	}
	for _, g := range groups {
		fmt.Fprintln(w, tui.LabelStyle.Render(fmt.Sprintf("%s (%d sessions)", g.CoachName, g.Sessions())))
		for _, p := range g.Programs {
			fmt.Fprintf(w, "  %s\n", p.Title)
			for _, s := range p.Sessions {
				mark := " "
				if s.StartsAt.Before(now) {
					mark = "✓"
				}
				fmt.Fprintf(w, "    %s %s - %s\n", mark, s.StartsAt.Format("Mon 02 Jan 2006 15:04"), s.EndsAt.Format("15:04"))
			}
		}
	}
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleMulti, "multi", false, "Allow several coaches to be expanded at once")
	scheduleCmd.Flags().StringVarP(&scheduleCoach, "query", "q", "", "Filter programs by title or coach name")
}
