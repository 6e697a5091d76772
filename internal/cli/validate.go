package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kiln-labs/kiln/internal/blueprint"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a blueprint",
	Long: `Validate a blueprint against the schema and its semantic rules: variable
types, default declarations, file conditions, and default dependency order.
The path may be a blueprint file or a directory containing one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, blueprint.BlueprintFileName)
		}

		p := printer()

		result, err := blueprint.ValidateFile(path)
		if err != nil {
			return err
		}
		if !result.Valid {
			for _, issue := range result.Issues {
				p.Printf("  %s: %s\n", issue.Path, issue.Message)
			}
			return fmt.Errorf("%s does not match the blueprint schema", path)
		}

		bp, err := blueprint.ParseFile(path)
		if err != nil {
			return err
		}
		if err := bp.Check(); err != nil {
			return err
		}

		p.Successf("%s is valid (%d variables, %d files)", path, len(bp.Variables), len(bp.Files))
		return nil
	},
}
