package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skaffio/skaff/internal/app"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published templates",
	Long: `List templates published on GitHub with the skaff-template topic,
most starred first. Results are cached locally for a short time.

Examples:
  skaff list
  skaff list --tags rust,cli
  skaff list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// List command flags.
var (
	listTags    []string
	listJSON    bool
	listNoCache bool
)

func init() {
	listCmd.Flags().StringSliceVar(&listTags, "tags", nil, "Filter by GitHub topics (comma-separated)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listNoCache, "no-cache", false, "Bypass the discovery cache")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	templates, err := app.NewListService(cfg).List(cmd.Context(), app.ListOptions{
		Tags:    listTags,
		NoCache: listNoCache,
	})
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(templates)
	}

	if len(templates) == 0 {
		printInfo("No templates found.")
		return nil
	}

	for _, t := range templates {
		header := boldFmt(t.Shorthand())
		if t.Stars > 0 {
			header += dimFmt(fmt.Sprintf(" (★ %d)", t.Stars))
		}
		printInfo(header)
		if t.Description != "" {
			printInfo("  " + t.Description)
		}
		if t.Language != "" {
			printInfo(dimFmt("  " + t.Language))
		}
	}
	printInfo(fmt.Sprintf("\n%d template(s)", len(templates)))
	return nil
}
