package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/hris/internal/cel"
	"github.com/oakwood-commons/hris/internal/formatter"
	"github.com/oakwood-commons/hris/internal/hris"
	"github.com/oakwood-commons/hris/internal/limiter"
)

type listOptions struct {
	where      string
	output     string
	allColumns bool
	functions  bool
	limits     limiter.Config
}

func newListCmd(st *cliState) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list <collection> [page-data]",
		Short: "Print a collection from the page data",
		Long: fmt.Sprintf(`Print one collection of the page data, scoped to the viewer's role.
Collections: %s.

--where takes a CEL predicate over each record, bound to %q, for example
'x.status == "interview"' or 'x.name.contains("Ada")'.`, strings.Join(hris.Collections, ", "), cel.RecordVar),
		Example: "  hris list staff page.json\n  hris list applications page.json --where 'x.status == \"interview\"' -o yaml\n  hris list letters page.json --tail 5",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.functions {
				return printFunctions(cmd.OutOrStdout())
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return helpOnMissingInput(cmd, runList(cmd, st, args[0], argOrEmpty(args, 1), &opts))
		},
	}
	cmd.Flags().StringVar(&opts.where, "where", "", "CEL predicate a record must satisfy")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(formatter.OutputTable), "output format: table|yaml|json")
	cmd.Flags().BoolVar(&opts.allColumns, "all-columns", false, "show every field, not just the collection's usual columns")
	cmd.Flags().BoolVar(&opts.functions, "functions", false, "list the functions available to --where and exit")
	cmd.Flags().IntVar(&opts.limits.Limit, "limit", 0, "show at most N records")
	cmd.Flags().IntVar(&opts.limits.Offset, "offset", 0, "skip the first N records")
	cmd.Flags().IntVar(&opts.limits.Tail, "tail", 0, "show the last N records (mutually exclusive with --limit; ignores --offset)")
	return cmd
}

func runList(cmd *cobra.Command, st *cliState, collection, path string, opts *listOptions) error {
	if err := opts.limits.Validate(); err != nil {
		return err
	}
	output, err := formatter.ParseOutput(opts.output)
	if err != nil {
		return err
	}
	if hris.Columns(collection) == nil {
		return fmt.Errorf("unknown collection %q (want one of %s)", collection, strings.Join(hris.Collections, ", "))
	}

	page, err := st.readPageData(cmd, path)
	if err != nil {
		return err
	}
	records, err := page.Records(collection)
	if err != nil {
		return err
	}

	if opts.where != "" {
		ev, err := cel.NewEvaluator()
		if err != nil {
			return err
		}
		pred, err := ev.Compile(opts.where)
		if err != nil {
			return fmt.Errorf("--where: %w", err)
		}
		if records, err = pred.Filter(records); err != nil {
			return fmt.Errorf("--where: %w", err)
		}
	}

	total := len(records)
	records = limiter.Apply(opts.limits, records)
	st.log.V(1).Info("listing records", "collection", collection, "matched", total, "shown", len(records))

	w := cmd.OutOrStdout()
	switch output {
	case formatter.OutputYAML:
		out, err := formatter.FormatYAML(records)
		if err != nil {
			return fmt.Errorf("format yaml: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	case formatter.OutputJSON:
		out, err := formatter.FormatJSON(records)
		if err != nil {
			return fmt.Errorf("format json: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No records.")
		return err
	}
	table := formatter.RenderColumnar(records, hris.RecordKeys(records), formatter.ColumnarOptions{
		NoColor:     st.run.NoColor || !stdoutIsTerminal(w),
		TotalWidth:  formatter.TerminalWidth(120),
		ColumnOrder: hris.Columns(collection),
		OnlyOrdered: !opts.allColumns,
	})
	if summary := opts.limits.Summary(total); summary != "" {
		table += "(" + summary + ")\n"
	}
	_, err = io.WriteString(w, table)
	return err
}

func printFunctions(w io.Writer) error {
	ev, err := cel.NewEvaluator()
	if err != nil {
		return err
	}
	for _, fn := range ev.Functions() {
		if _, err := fmt.Fprintln(w, fn); err != nil {
			return err
		}
	}
	return nil
}
