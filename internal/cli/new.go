package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kiln-labs/kiln/internal/blueprint"
	"github.com/kiln-labs/kiln/internal/config"
	"github.com/kiln-labs/kiln/internal/prompt"
	"github.com/kiln-labs/kiln/internal/scaffold"
	"github.com/kiln-labs/kiln/internal/vcs"
)

var (
	newOutputDir    string
	newBlueprintDir string
	newAnswersFile  string
	newData         []string
	newNoInput      bool
	newSeed         int64
)

func init() {
	newCmd.Flags().StringVar(&newOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	newCmd.Flags().StringVar(&newBlueprintDir, "blueprint", "", "Directory containing a custom template corpus")
	newCmd.Flags().StringVar(&newAnswersFile, "answers-file", "", "YAML file with pre-filled answers")
	newCmd.Flags().StringArrayVar(&newData, "data", nil, "Answer as name=value (repeatable)")
	newCmd.Flags().BoolVar(&newNoInput, "no-input", false, "Never prompt; fail if a required answer is missing")
	newCmd.Flags().Int64Var(&newSeed, "seed", 0, "Seed for generated defaults (0 = time-based)")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new project",
	Long: `Scaffold a new project from a blueprint. Answers come from, in order of
precedence: --data flags, an --answers-file, saved config defaults, and
interactive prompts for whatever remains.

Examples:
  kiln new my-service --data project_type=Python --data use_git=true
  kiln new my-app --answers-file answers.yaml --no-input`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]

	corpus, err := corpusFS(newBlueprintDir)
	if err != nil {
		return err
	}
	bp, err := blueprint.Load(corpus)
	if err != nil {
		return err
	}

	// Config defaults only apply to variables the blueprint declares.
	answers := make(map[string]any)
	for k, v := range config.AnswerDefaults() {
		if _, ok := bp.Variable(k); ok {
			answers[k] = v
		}
	}
	answers["project_name"] = name

	if newAnswersFile != "" {
		fileAnswers, err := loadAnswersFile(newAnswersFile)
		if err != nil {
			return err
		}
		for k, v := range fileAnswers {
			answers[k] = v
		}
	}

	dataAnswers, err := parseData(newData)
	if err != nil {
		return err
	}
	for k, v := range dataAnswers {
		answers[k] = v
	}

	if !newNoInput && prompt.IsTerminal(os.Stdin) {
		answers, err = prompt.Collect(bp, answers, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}

	outDir := newOutputDir
	if outDir == "" {
		outDir = filepath.Join(".", name)
	}

	result, err := scaffold.Generate(corpus, answers, outDir, scaffold.Options{
		Seed:    newSeed,
		Version: buildVersion,
	})
	if err != nil {
		return err
	}

	p := printer()
	printResult(p, result)

	// Initialize git when the resolved answers asked for it.
	if rec, err := scaffold.LoadRecord(outDir); err == nil {
		if use, ok := rec.Answers["use_git"].(bool); ok && use && !vcs.IsRepo(outDir) {
			if err := vcs.Init(outDir); err != nil {
				p.Warnf("git init failed: %v", err)
			} else {
				p.Mutedf("Initialized git repository")
			}
		}
	}

	return nil
}
