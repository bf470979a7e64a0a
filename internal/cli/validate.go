package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skaffio/skaff/internal/app"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a template directory",
	Long: `Validate a template directory: checks the skaff.toml manifest and,
with --templates, the syntax of every renderable file. All findings are
reported in one run.

Examples:
  skaff validate
  skaff validate ./my-template --templates`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateTemplates bool

func init() {
	validateCmd.Flags().BoolVar(&validateTemplates, "templates", false, "Also syntax-check template files")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	result, err := app.NewValidateService().Validate(cmd.Context(), app.ValidateOptions{
		Dir:            dir,
		CheckTemplates: validateTemplates,
	})
	if err != nil {
		return err
	}

	for _, finding := range result.Findings {
		printErrorMsg(finding.Error())
	}
	for _, issue := range result.TemplateIssues {
		printErrorMsg(issue.Error())
	}

	if !result.Valid() {
		total := len(result.Findings) + len(result.TemplateIssues)
		return fmt.Errorf("validation failed with %d finding(s)", total)
	}

	msg := fmt.Sprintf("Template %s is valid", boldFmt(result.Manifest.Template.Name))
	if validateTemplates {
		msg += fmt.Sprintf(" (%d file(s) checked)", result.FileCount)
	}
	printSuccess(msg)
	return nil
}
