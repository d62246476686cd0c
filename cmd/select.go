package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/hris/internal/ui"
	"github.com/oakwood-commons/hris/pkg/selector"
)

// errAborted reports that the user left the picker without choosing.
var errAborted = errors.New("selection aborted")

type selectOptions struct {
	value       string
	placeholder string
	emptyText   string
	title       string
	maxRows     int
	snap        snapshotFlags
}

func newSelectCmd(st *cliState) *cobra.Command {
	var opts selectOptions
	cmd := &cobra.Command{
		Use:   "select [options-file]",
		Short: "Pick one value from a filterable list",
		Long: `Read options from the file or stdin, one per line as "value<TAB>label" or a
bare value, and let the user filter and pick one. The chosen value is
printed on stdout; aborting with ctrl+c exits with status 1.`,
		Example: "  printf 'eng\\tEngineering\\nfin\\tFinance\\n' | hris select --title Division\n  hris select divisions.tsv --value fin",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpOnMissingInput(cmd, runSelect(cmd, st, argOrEmpty(args, 0), &opts))
		},
	}
	cmd.Flags().StringVar(&opts.value, "value", "", "preselected value")
	cmd.Flags().StringVar(&opts.placeholder, "placeholder", "", "input placeholder (default from config)")
	cmd.Flags().StringVar(&opts.emptyText, "empty-text", "", "text shown when nothing matches (default from config)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title line above the input")
	cmd.Flags().IntVar(&opts.maxRows, "max-rows", 0, "visible rows in the list (default from config)")
	opts.snap.register(cmd)
	return cmd
}

func runSelect(cmd *cobra.Command, st *cliState, path string, opts *selectOptions) error {
	options, err := readOptions(cmd, path)
	if err != nil {
		return err
	}

	sc := st.cfg.UI.Selector
	picker := ui.NewPicker(ui.PickerConfig{
		Title:       opts.title,
		Options:     options,
		Value:       opts.value,
		Placeholder: firstNonEmpty(opts.placeholder, sc.Placeholder),
		EmptyText:   firstNonEmpty(opts.emptyText, sc.EmptyText),
		MaxRows:     firstPositive(opts.maxRows, sc.MaxRows),
		Width:       40,
		Theme:       ui.ThemeFromConfig(st.cfg.Theme(), st.run.NoColor),
	})

	if opts.snap.enabled {
		view, _ := ui.RenderSnapshot(picker, opts.snap.config(st.run.NoColor))
		_, err := fmt.Fprintln(cmd.OutOrStdout(), view)
		return err
	}

	progOpts, cleanup := getProgramOptions()
	defer cleanup()
	if progOpts == nil {
		// Keep stdout for the chosen value.
		progOpts = []tea.ProgramOption{tea.WithOutput(os.Stderr)}
	}
	final, err := tea.NewProgram(picker, progOpts...).Run()
	if err != nil {
		return fmt.Errorf("run selector: %w", err)
	}
	result, ok := final.(*ui.Picker)
	if !ok || result.Aborted() || !result.Committed() {
		return errAborted
	}
	st.log.V(1).Info("value selected", "value", result.Value())
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Value())
	return err
}

// readOptions reads the option list from path or stdin.
func readOptions(cmd *cobra.Command, path string) ([]selector.Option, error) {
	var r io.Reader
	switch path {
	case "", "-":
		if path == "" && !stdinIsPiped() {
			return nil, errShowHelp
		}
		r = cmd.InOrStdin()
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open options: %w", err)
		}
		defer f.Close()
		r = f
	}
	options, err := parseOptions(r)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no options in %s", firstNonEmpty(path, "stdin"))
	}
	return options, nil
}

// parseOptions reads "value<TAB>label" lines. A line without a tab uses the
// value as its label; blank lines are skipped.
func parseOptions(r io.Reader) ([]selector.Option, error) {
	var out []selector.Option
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		value, label, found := strings.Cut(line, "\t")
		value = strings.TrimSpace(value)
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = value
		}
		out = append(out, selector.Option{Value: value, Label: label})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
