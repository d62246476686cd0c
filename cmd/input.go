package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/hris/internal/hris"
	"github.com/oakwood-commons/hris/pkg/logger"
)

// readPageData loads page data from path, or from stdin when path is empty
// or "-". The --role override replaces the role the server sent.
func (st *cliState) readPageData(cmd *cobra.Command, path string) (*hris.PageData, error) {
	var (
		page *hris.PageData
		err  error
	)
	switch path {
	case "", "-":
		if path == "" && !stdinIsPiped() {
			return nil, errShowHelp
		}
		page, err = hris.ReadPage(cmd.InOrStdin())
	default:
		page, err = hris.LoadPage(path)
	}
	if err != nil {
		return nil, err
	}
	if st.run.Role != "" {
		role, err := hris.ParseRole(st.run.Role)
		if err != nil {
			return nil, fmt.Errorf("--role: %w", err)
		}
		page.Role = role
	}
	st.log.V(1).Info("page data loaded", logger.RoleKey, string(page.Role), "user", page.User.ID)
	return page, nil
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// helpOnMissingInput turns errShowHelp into the command's help text.
func helpOnMissingInput(cmd *cobra.Command, err error) error {
	if errors.Is(err, errShowHelp) {
		return cmd.Help()
	}
	return err
}
