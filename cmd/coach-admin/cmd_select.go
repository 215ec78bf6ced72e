package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ruminaider/coach-admin/cmd/coach-admin/tui"
	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/query"
	"github.com/ruminaider/coach-admin/internal/selection"
)

var (
	selectExcept   bool
	selectSelected []string
)

var selectCmd = &cobra.Command{
	Use:       "select <coaches|products|users>",
	Short:     "Pick entities with the searchable selector and print their ids",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{api.ResourceCoaches, api.ResourceProducts, api.ResourceUsers},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTerminal("select"); err != nil {
			return err
		}
		rt, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		ids, aborted, err := runSelector(rt, args[0], selectSelected, selectExcept)
		if err != nil {
			return err
		}
		if aborted {
			return errReported
		}
		mode := selection.Include
		if selectExcept {
			mode = selection.Except
		}
		printSelection(os.Stdout, ids, mode)
		return nil
	},
}

// selectorConfig applies the runtime settings to a resource preset.
func selectorConfig[E any](rt *runtime, cfg tui.SelectorConfig[E], except bool) tui.SelectorConfig[E] {
	cfg.ExceptMode = except
	cfg.PageSize = rt.cfg.Selector.PageSize
	cfg.Delay = rt.cfg.Selector.Debounce
	cfg.Logger = rt.log
	return cfg
}

// runSelector runs the full-screen selector for resource.
func runSelector(rt *runtime, resource string, initial []string, except bool) ([]string, bool, error) {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	switch resource {
	case api.ResourceCoaches:
		cfg := tui.CoachSelector(rt.cache, query.ListFetcher[api.Coach](rt.client))
		return tui.RunSelect(selectorConfig(rt, cfg, except), initial, opts...)
	case api.ResourceProducts:
		cfg := tui.ProductSelector(rt.cache, query.ListFetcher[api.Product](rt.client))
		return tui.RunSelect(selectorConfig(rt, cfg, except), initial, opts...)
	case api.ResourceUsers:
		cfg := tui.UserSelector(rt.cache, query.ListFetcher[api.User](rt.client))
		return tui.RunSelect(selectorConfig(rt, cfg, except), initial, opts...)
	}
	return nil, false, fmt.Errorf("%q has no selector (want coaches, products or users)", resource)
}

func printSelection(w io.Writer, ids []string, mode selection.Mode) {
	fmt.Fprintln(w, selection.New(ids...).Describe(mode))
	if len(ids) > 0 {
		fmt.Fprintln(w, strings.Join(ids, "\n"))
	}
}

func init() {
	selectCmd.Flags().BoolVar(&selectExcept, "except", false, "Select everything except the picked entities")
	selectCmd.Flags().StringSliceVar(&selectSelected, "selected", nil, "Ids selected when the selector opens")
}
