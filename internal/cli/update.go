package cli

import (
	"github.com/spf13/cobra"

	"github.com/kiln-labs/kiln/internal/scaffold"
)

var updateBlueprintDir string

func init() {
	updateCmd.Flags().StringVar(&updateBlueprintDir, "blueprint", "", "Directory containing a custom template corpus")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [dir]",
	Short: "Regenerate a project from its recorded answers",
	Long: `Regenerate a previously scaffolded project using the answers recorded in
.kiln/answers.yaml. With an unchanged template corpus the rewrite is
byte-identical; with a newer corpus it applies the template changes while
keeping the original answers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		corpus, err := corpusFS(updateBlueprintDir)
		if err != nil {
			return err
		}

		result, err := scaffold.Regenerate(corpus, dir, scaffold.Options{Version: buildVersion})
		if err != nil {
			return err
		}

		p := printer()
		p.Successf("Regenerated project at %s/", result.OutputDir)
		for _, f := range result.Files {
			p.Printf("  %s\n", f)
		}
		for _, w := range result.Warnings {
			p.Warnf("%s", w)
		}
		return nil
	},
}
