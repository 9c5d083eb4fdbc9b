package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/surveyops/triage/internal/completeness"
	"github.com/surveyops/triage/internal/ingest"
	"github.com/surveyops/triage/internal/normalize"
	"github.com/surveyops/triage/internal/report"
)

var (
	runFile        string
	runRules       []string
	emptyAsMissing bool
	foldCase       bool
	trimSpace      bool
	outputFile     string
	dbFile         string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Triage a single survey file",
	Long: `Load a delimited survey file, normalize missing-value encodings
and report the distribution of complete records.

Examples:
  triage run --file survey.csv
  triage run --file survey.csv --rules NA,N/A,none --empty-as-missing
  triage run --file survey.csv --output report.txt --db runs.db`,
	Run: func(cmd *cobra.Command, args []string) {
		rep, err := triageFile(runFile, buildRules())
		if err != nil {
			logger.Fatalf("Triage failed: %v", err)
		}

		if err := emitReport(rep); err != nil {
			logger.Fatalf("Failed to write report: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runFile, "file", "f", "",
		"Survey file to triage (required)")
	addRuleFlags(runCmd)
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Output file for the report (default: stdout)")
	runCmd.Flags().StringVar(&dbFile, "db", "",
		"SQLite database to record the run in (optional)")

	runCmd.MarkFlagRequired("file")
}

// addRuleFlags registers the missing-value rule flags shared by run and scan.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&runRules, "rules", nil,
		"Raw tokens to treat as missing (default: NA,N/A; env TRIAGE_RULES)")
	cmd.Flags().BoolVar(&emptyAsMissing, "empty-as-missing", false,
		"Also treat empty cells as missing")
	cmd.Flags().BoolVar(&foldCase, "fold-case", false,
		"Match missing-value tokens case-insensitively")
	cmd.Flags().BoolVar(&trimSpace, "trim-space", false,
		"Trim surrounding whitespace before matching tokens")
}

func buildRules() normalize.RuleSet {
	rules := normalize.DefaultRules()
	if len(runRules) > 0 {
		rules.Patterns = append([]string(nil), runRules...)
	} else if env := os.Getenv("TRIAGE_RULES"); env != "" {
		rules.Patterns = strings.Split(env, ",")
	}
	if emptyAsMissing {
		rules = rules.WithEmpty()
	}
	rules.FoldCase = foldCase
	rules.TrimSpace = trimSpace
	return rules
}

// triageFile runs the full pipeline over one file.
func triageFile(path string, rules normalize.RuleSet) (report.Report, error) {
	t, err := ingest.Load(path)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger.Debugf("Loaded %s: %d records, %d columns", path, t.NumRecords(), t.NumColumns())

	res, err := normalize.Normalize(t, rules)
	if err != nil {
		return report.Report{}, fmt.Errorf("normalization failed for %s: %w", path, err)
	}
	if res.Unchanged() && t.NumRecords() > 0 {
		logger.Warnf("No cells in %s matched the rule set %v; check the data's missing-value encoding",
			path, rules.Strings())
	}

	vec, sum := completeness.Analyze(res.Table)
	return report.Assemble(path, rules, res, vec, sum), nil
}

func emitReport(rep report.Report) error {
	if dbFile != "" {
		sink, err := report.OpenSQLiteSink(dbFile)
		if err != nil {
			return err
		}
		defer sink.Close()

		runID, err := sink.Save(rep)
		if err != nil {
			return err
		}
		logger.Infof("Recorded run %d in %s", runID, dbFile)
	}

	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outputFile, err)
		}
		defer f.Close()
		if err := rep.Render(f); err != nil {
			return err
		}
		fmt.Printf("Report saved to %s\n", outputFile)
		return nil
	}

	return rep.Render(os.Stdout)
}
