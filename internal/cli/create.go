package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skaffio/skaff/internal/app"
)

var createCmd = &cobra.Command{
	Use:   "create <template> <project-name>",
	Short: "Create a project from a template",
	Long: `Create a new project from a template.

The template can be a GitHub repository (owner/repo, a full GitHub URL, or
git@github.com:owner/repo.git) or a local directory (./path or an absolute
path). Template parameters are prompted for interactively unless provided
with --param or --yes.

Examples:
  skaff create skaffio/api-template my-api
  skaff create skaffio/api-template my-api --param license=MIT --yes
  skaff create ./my-template demo --output /tmp/demo --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

// Create command flags.
var (
	createOutput     string
	createRef        string
	createAuthor     string
	createParams     []string
	createYes        bool
	createOverwrite  bool
	createDryRun     bool
	createFailFast   bool
	createStrictVars bool
)

func init() {
	createCmd.Flags().StringVarP(&createOutput, "output", "o", "", "Output directory (default: ./<project-name>)")
	createCmd.Flags().StringVar(&createRef, "ref", "", "Git branch, tag, or commit for GitHub templates")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Author name exposed to the template")
	createCmd.Flags().StringArrayVarP(&createParams, "param", "p", nil, "Template parameter as key=value (repeatable)")
	createCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "Skip prompts, use defaults for unset parameters")
	createCmd.Flags().BoolVar(&createOverwrite, "overwrite", false, "Overwrite existing files")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Render without writing files")
	createCmd.Flags().BoolVar(&createFailFast, "fail-fast", false, "Stop at the first file that fails to render")
	createCmd.Flags().BoolVar(&createStrictVars, "strict-vars", false, "Treat undefined template variables as errors")
}

func runCreate(cmd *cobra.Command, args []string) error {
	source, projectName := args[0], args[1]
	if err := validProjectName(projectName); err != nil {
		return err
	}

	userParams, err := parseParamFlags(createParams)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if createStrictVars {
		cfg.Render.StrictVars = true
	}

	opts := app.CreateOptions{
		Source:      source,
		ProjectName: projectName,
		OutputDir:   createOutput,
		Ref:         createRef,
		Author:      createAuthor,
		Params:      userParams,
		Overwrite:   createOverwrite,
		DryRun:      createDryRun,
		FailFast:    createFailFast,
	}
	if !createYes {
		opts.Prompt = promptForParams
	}

	printProgress(fmt.Sprintf("Fetching template %s", source))
	result, err := app.NewCreateService(cfg).Create(cmd.Context(), opts)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		printWarning(w.String())
	}

	if createDryRun {
		printInfo(fmt.Sprintf("Dry run: %d file(s) would be written to %s", len(result.Files), result.OutputDir))
		for _, f := range result.Files {
			printInfo("  " + f.Path)
		}
		return nil
	}

	printSuccess(fmt.Sprintf("Created project %s in %s", boldFmt(result.ProjectName), result.OutputDir))
	if s := result.Summary; s != nil {
		msg := fmt.Sprintf("%d file(s) written", s.Created)
		if s.Overwritten > 0 {
			msg += fmt.Sprintf(", %d overwritten", s.Overwritten)
		}
		if s.Skipped > 0 {
			msg += fmt.Sprintf(", %d skipped (use --overwrite to replace)", s.Skipped)
		}
		printInfo(msg)
	}
	return nil
}
