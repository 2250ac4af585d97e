package cli

import (
	"fmt"
	"strconv"

	"github.com/linskybing/formflow/internal/application"
	"github.com/spf13/cobra"
)

func NewClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <formID>",
		Short: "Delete every submission of a form",
		Long:  "Delete every submission and answer of a form and print the values its components reset to.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || formID == 0 {
				return fmt.Errorf("invalid form ID %q", args[0])
			}

			repos, closeDB, err := openRepos()
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := application.NewSubmissionService(repos).Clear(cmd.Context(), uint(formID))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	return cmd
}
