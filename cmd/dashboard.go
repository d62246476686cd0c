package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/hris/internal/app"
	"github.com/oakwood-commons/hris/internal/ui"
	"github.com/oakwood-commons/hris/pkg/logger"
)

// snapshotFlags are shared by the interactive commands.
type snapshotFlags struct {
	enabled bool
	keys    []string
	width   int
	height  int
}

func (f *snapshotFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.enabled, "snapshot", false, "render a single frame and exit instead of starting the TUI; honors --width/--height")
	cmd.Flags().StringArrayVar(&f.keys, "keys", nil, "keys to apply before a snapshot: <Down>, <CR>, <Esc>, <Tab>, <S-Tab>, <C-s> or literal text")
	cmd.Flags().IntVar(&f.width, "width", 0, "snapshot width in columns (default: terminal width or 80)")
	cmd.Flags().IntVar(&f.height, "height", 0, "snapshot height in rows (default: terminal height or 24)")
}

func (f *snapshotFlags) config(noColor bool) ui.SnapshotConfig {
	size := resolveSnapshotSize(f.width, f.height)
	return ui.SnapshotConfig{Width: size.Width, Height: size.Height, Keys: f.keys, NoColor: noColor}
}

func newDashboardCmd(st *cliState) *cobra.Command {
	var snap snapshotFlags
	cmd := &cobra.Command{
		Use:   "dashboard [page-data]",
		Short: "Open the role dashboard",
		Long: `Open the role dashboard for the page data in the given file, or on stdin.
Tabs follow the viewer's role; n opens the page's form, ctrl+s submits it.`,
		Example: "  hris dashboard page.json\n  curl -s $HRIS/dashboard.json | hris dashboard -\n  hris dashboard page.yaml --snapshot --keys 2 --keys n",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDashboard(cmd, st, argOrEmpty(args, 0), &snap)
			return helpOnMissingInput(cmd, err)
		},
	}
	snap.register(cmd)
	return cmd
}

func runDashboard(cmd *cobra.Command, st *cliState, path string, snap *snapshotFlags) (err error) {
	page, err := st.readPageData(cmd, path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if !snap.enabled && st.run.LogFile == "" {
		// stderr is drawn over by the renderer.
		ctx = logger.WithLogger(ctx, logger.GetNoopLogger())
	}

	appCtx, err := app.New(st.cfg, st.run, *logger.FromContext(ctx))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := appCtx.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	theme := ui.ThemeFromConfig(st.cfg.Theme(), st.run.NoColor)
	dash := ui.NewDashboard(ui.DashboardConfig{
		Title:     st.cfg.App.Name,
		Page:      page,
		Context:   ctx,
		Submitter: appCtx.Submitter,
		Theme:     theme,
		Selector:  st.cfg.UI.Selector,
	})

	if snap.enabled {
		view, _ := ui.RenderSnapshot(ui.NewApp(dash, nil), snap.config(st.run.NoColor))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), view)
		return err
	}

	var splash *ui.Splash
	if sc := st.cfg.UI.Splash; sc.Enabled {
		splash = ui.NewSplash(sc.Frames, sc.IntervalDuration(), theme.Styles().Splash)
	}

	opts, cleanup := getProgramOptions()
	defer cleanup()
	if _, err := tea.NewProgram(ui.NewApp(dash, splash), opts...).Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
