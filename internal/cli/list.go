package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kiln-labs/kiln/internal/blueprint"
	"github.com/kiln-labs/kiln/internal/config"
	"github.com/kiln-labs/kiln/internal/scaffold"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents an available blueprint for display.
type listEntry struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available blueprints",
	Long:  `List the built-in blueprint and any user blueprints under ~/.kiln/blueprints/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []listEntry

		if bp, err := blueprint.Load(scaffold.Builtin()); err == nil {
			entries = append(entries, listEntry{
				Name:        bp.Name,
				Source:      "built-in",
				Description: bp.Description,
			})
		}

		userEntries, err := discoverUserBlueprints(config.BlueprintsDir())
		if err != nil {
			return err
		}
		entries = append(entries, userEntries...)

		if listJSON {
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling blueprint list: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{e.Name, e.Source, e.Description}
		}
		printer().Table([]string{"NAME", "SOURCE", "DESCRIPTION"}, rows)
		return nil
	},
}

// discoverUserBlueprints scans dir for subdirectories containing a
// blueprint file. A missing dir is not an error; an unloadable blueprint is
// listed with its defect so the user can fix it.
func discoverUserBlueprints(dir string) ([]listEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading blueprints directory %s: %w", dir, err)
	}

	var entries []listEntry
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		sub := filepath.Join(dir, de.Name())
		if _, err := os.Stat(filepath.Join(sub, blueprint.BlueprintFileName)); err != nil {
			continue
		}

		bp, err := blueprint.Load(os.DirFS(sub))
		if err != nil {
			entries = append(entries, listEntry{
				Name:        de.Name(),
				Source:      sub,
				Description: fmt.Sprintf("invalid: %v", err),
			})
			continue
		}
		entries = append(entries, listEntry{
			Name:        bp.Name,
			Source:      sub,
			Description: bp.Description,
		})
	}
	return entries, nil
}
