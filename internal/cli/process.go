package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"premalloc/internal/export"
	"premalloc/internal/ingest"
	"premalloc/internal/model"
	"premalloc/internal/pipeline"
)

var (
	outJSON    string
	outCSVDir  string
	outXLSX    string
	maxRecords int
	callDelay  time.Duration
	runTimeout time.Duration
	noCache    bool
	cacheDir   string
	strategy   string
	tablePath  string
	categories string
	llmEnabled bool
	llmModel   string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file.csv>",
	Short: "Run one allocation job over a premium CSV file",
	Long: `Process geocodes every record of a premium CSV file, assigns tax
jurisdictions and writes the allocation reports.

Example:
  premalloc process premiums.csv
  premalloc process premiums.csv --json run.json --csv-dir ./reports
  premalloc process premiums.csv --xlsx reports.xlsx --strategy coordinate
  premalloc process premiums.csv --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "write the full run result as JSON")
	processCmd.Flags().StringVar(&outCSVDir, "csv-dir", "", "write each report as a CSV file into this directory")
	processCmd.Flags().StringVar(&outXLSX, "xlsx", "", "write all reports as one XLSX workbook")

	// Run flags
	processCmd.Flags().IntVar(&maxRecords, "max-records", 0, "record ceiling per run (0 uses the configured default)")
	processCmd.Flags().DurationVar(&callDelay, "delay", 200*time.Millisecond, "pause between geocoder calls")
	processCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall run timeout")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the geocode response cache")
	processCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist geocode responses to this directory")

	// Strategy flags
	processCmd.Flags().StringVar(&strategy, "strategy", "table", "jurisdiction strategy (table, coordinate)")
	processCmd.Flags().StringVar(&tablePath, "table", "", "YAML municipality table (table strategy only)")
	processCmd.Flags().StringVar(&categories, "categories", "life", "category attribution strategy (life, split)")

	// LLM flags
	processCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an exception narrative")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	records, err := ingest.ParseFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Parsed %d records from %s\n", len(records), path)
	}

	pipe, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := pipe.Run(ctx, records)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if err := writeOutputs(result); err != nil {
		return err
	}

	printRunSummary(result)
	return nil
}

// buildConfig assembles the run configuration from defaults and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Limits.CallDelay = callDelay
	if maxRecords > 0 {
		cfg.Limits.MaxRecords = maxRecords
	}
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Jurisdiction.Strategy = strategy
	cfg.Jurisdiction.TablePath = tablePath
	cfg.Report.CategoryStrategy = categories

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}

func writeOutputs(result *model.RunResult) error {
	if outJSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", outJSON, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if outCSVDir != "" {
		if err := os.MkdirAll(outCSVDir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", outCSVDir, err)
		}
		for _, name := range result.Reports.Names() {
			table, _ := result.Reports.Get(name)
			path := filepath.Join(outCSVDir, slugify(name)+".csv")
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := export.WriteCSV(f, table); err != nil {
				_ = f.Close()
				return fmt.Errorf("write %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", path, err)
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ Wrote CSV: %s\n", path)
			}
		}
	}

	if outXLSX != "" {
		if err := export.WriteWorkbook(outXLSX, result.Reports); err != nil {
			return fmt.Errorf("write %s: %w", outXLSX, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote XLSX: %s\n", outXLSX)
		}
	}
	return nil
}

func printRunSummary(result *model.RunResult) {
	fmt.Printf("Records processed: %d\n", result.TotalRecords)
	fmt.Printf("Match percentage:  %s%%\n", result.MatchPercentage)
	for _, name := range result.Reports.Names() {
		table, _ := result.Reports.Get(name)
		fmt.Printf("  %-20s %d rows\n", name, len(table.Rows))
	}
	if result.Message != "" {
		fmt.Println(result.Message)
	}
	if result.Narrative != "" {
		fmt.Printf("\nException narrative:\n%s\n", result.Narrative)
	}
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
