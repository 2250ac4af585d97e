package cli

import (
	"fmt"
	"os"

	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/pkg/utils"
	"github.com/spf13/cobra"
)

func NewSeedCommand() *cobra.Command {
	var formPath, owner string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a form from a YAML definition",
		Long:  "Create a form and its components from a YAML or JSON definition and print the stored form.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(formPath)
			if err != nil {
				return fmt.Errorf("read form: %w", err)
			}
			var input form.CreateFormDTO
			if err := utils.DecodeDocument(string(raw), &input); err != nil {
				return fmt.Errorf("form %s: %w", formPath, err)
			}
			if owner != "" {
				input.UserID = owner
			}

			repos, closeDB, err := openRepos()
			if err != nil {
				return err
			}
			defer closeDB()

			view, err := application.NewFormService(repos).CreateForm(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVarP(&formPath, "form", "f", "", "form definition file (YAML or JSON)")
	cmd.Flags().StringVar(&owner, "owner", "", "owning user id")
	_ = cmd.MarkFlagRequired("form")

	return cmd
}
