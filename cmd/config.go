package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

func newConfigCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the embedded defaults merged with the config file given by --config,
$HRIS_CONFIG or ~/.config/hris/config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := st.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List the configured themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printThemes(cmd.OutOrStdout(), st)
		},
	})
	return cmd
}

func printThemes(w io.Writer, st *cliState) error {
	names := make([]string, 0, len(st.cfg.UI.Themes))
	for name := range st.cfg.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		marker := " "
		if name == st.cfg.UI.Theme {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", marker, name); err != nil {
			return err
		}
	}
	return nil
}
