package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tablediff "github.com/ovidyou/database-table-diff"
	"github.com/ovidyou/database-table-diff/internal/config"
)

var (
	configPath string
	format     string
	outputFile string
	baseline   string
)

var rootCmd = &cobra.Command{
	Use:   "tablediff",
	Short: "Compare table and column sets across databases",
	Long: `Tablediff connects to every database in the config file, lists each one's
tables and per-table columns, and reports which tables and columns exist
only in the baseline or only in a compared database.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "tablediff.yaml", "Path to the YAML config file")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or html")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&baseline, "baseline", "b", "", "Baseline database label (overrides config)")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var outFormat tablediff.Format
	switch format {
	case "text":
		outFormat = tablediff.FormatText
	case "html":
		outFormat = tablediff.FormatHTML
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'html')", format)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseline != "" {
		cfg.Baseline = baseline
	}

	rep, err := tablediff.Compare(ctx, cfg)
	if err != nil {
		return err
	}

	writer := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	if err := tablediff.Render(rep, writer, outFormat); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
