package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/linskybing/formflow/pkg/schema"
	"github.com/linskybing/formflow/pkg/utils"
	"github.com/linskybing/formflow/pkg/validation"
	"github.com/spf13/cobra"
)

// formFile is a form definition on disk. Components without an id are
// numbered from 1 in file order.
type formFile struct {
	Title      string           `json:"title"`
	Components []map[string]any `json:"components"`
}

type answerSet struct {
	Answers []validation.Answer `json:"answers"`
}

func NewValidateCommand() *cobra.Command {
	var formPath, answersPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate answer files against a form definition",
		Long:  "Check every answer set in a YAML or JSON file against a form definition without touching a database. Multiple answer sets are separated by '---'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateFiles(cmd.OutOrStdout(), formPath, answersPath)
		},
	}

	cmd.Flags().StringVarP(&formPath, "form", "f", "", "form definition file (YAML or JSON)")
	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "answer file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("form")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}

func validateFiles(out io.Writer, formPath, answersPath string) error {
	fields, err := loadFormFields(formPath)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(answersPath)
	if err != nil {
		return fmt.Errorf("read answers: %w", err)
	}
	docs := utils.SplitYAMLDocuments(string(raw))
	if len(docs) == 0 {
		return errors.New("answer file contains no answer sets")
	}

	rejected := 0
	for i, doc := range docs {
		var set answerSet
		if err := utils.DecodeDocument(doc, &set); err != nil {
			return fmt.Errorf("answer set %d: %w", i+1, err)
		}

		accepted, err := validation.Check(fields, set.Answers)
		if err != nil {
			rejected++
			var verr *validation.Error
			if errors.As(err, &verr) {
				fmt.Fprintf(out, "set %d: rejected: component %d: %s\n", i+1, verr.ComponentID, verr.Reason)
			} else {
				fmt.Fprintf(out, "set %d: rejected: %s\n", i+1, err)
			}
			continue
		}
		fmt.Fprintf(out, "set %d: accepted (%d answers)\n", i+1, len(accepted))
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d answer sets rejected", rejected, len(docs))
	}
	return nil
}

func loadFormFields(path string) ([]schema.Field, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	var def formFile
	if err := utils.DecodeDocument(string(raw), &def); err != nil {
		return nil, fmt.Errorf("form %s: %w", path, err)
	}
	if len(def.Components) == 0 {
		return nil, fmt.Errorf("form %s has no components", path)
	}

	for i, c := range def.Components {
		if _, ok := c["id"]; !ok {
			c["id"] = i + 1
		}
		typeName, _ := c["type"].(string)
		t, ok := schema.ParseType(typeName)
		if !ok {
			continue
		}
		props, _ := c["properties"].(map[string]any)
		if err := schema.ValidateProperties(t, props); err != nil {
			return nil, fmt.Errorf("form %s component %d: %w", path, i+1, err)
		}
	}
	return schema.CompileAll(schema.NormalizeAll(def.Components)), nil
}
