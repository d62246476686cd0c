package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/hris/internal/formatter"
	"github.com/oakwood-commons/hris/internal/hris"
)

func newLetterCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "letter",
		Short: "Work with letters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newLetterExportCmd(st))
	return cmd
}

func newLetterExportCmd(st *cliState) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "export <id> [page-data]",
		Short:   "Export a letter as markdown or HTML",
		Example: "  hris letter export l1 page.json\n  hris letter export l1 page.json --format html > letter.html",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpOnMissingInput(cmd, runLetterExport(cmd, st, args[0], argOrEmpty(args, 1), format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown|html")
	return cmd
}

func runLetterExport(cmd *cobra.Command, st *cliState, id, path, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "markdown", "md", "html":
	default:
		return fmt.Errorf("unknown letter format %q (want markdown or html)", format)
	}

	page, err := st.readPageData(cmd, path)
	if err != nil {
		return err
	}
	// Only letters the viewer may see can be exported.
	letter, ok := page.Scoped().Letter(id)
	if !ok {
		return fmt.Errorf("letter %q not found", id)
	}
	doc := letterDoc(page, letter)

	out := doc.Markdown()
	if format == "html" {
		out = doc.HTML()
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func letterDoc(p *hris.PageData, l hris.Letter) formatter.LetterDoc {
	return formatter.LetterDoc{
		Subject:  l.Subject,
		From:     p.StaffName(l.SenderID),
		To:       p.StaffName(l.RecipientID),
		SentOn:   l.SentOn,
		Body:     l.Body,
		Archived: l.Archived,
	}
}
