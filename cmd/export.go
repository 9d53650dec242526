// =============================================================================
// Deposition Species Injector - Export Command
// =============================================================================
//
// This file defines the 'export' command, which classifies a species
// database and writes the result to an XLSX workbook without touching any
// XML file.
//
// COMMAND USAGE:
//   depspec export [species_database.yml] [flags]
//
// FLAGS:
//   --output, -o  : Path of the workbook to write (default deposition.xlsx)
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/depspec/internal/converter"
	"github.com/ginjaninja78/depspec/internal/xlsxreport"
)

// exportOutput is the workbook path.
var exportOutput string

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export [species_database.yml]",
	Short: "Write the deposition classification to an XLSX workbook",
	Long: `The export command classifies a species database exactly like the root
command and writes the four lists, plus the deposition flags of every
species, to an XLSX workbook for review. No XML file is modified.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(
		&exportOutput,
		"output",
		"o",
		"deposition.xlsx",
		"Path of the workbook to write",
	)
}

// runExport loads, classifies and writes the workbook.
func runExport(cmd *cobra.Command, args []string) error {
	dbPath := cfg.SpeciesDatabase
	if len(args) == 1 {
		dbPath = args[0]
	}

	classification, err := converter.LoadAndClassify(dbPath, cfg, logger)
	if err != nil {
		return err
	}

	if err := xlsxreport.Write(exportOutput, classification.Database, classification.Lists); err != nil {
		return fmt.Errorf("failed to export %s: %w", exportOutput, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d species listed)\n", exportOutput, classification.Lists.Total())
	return nil
}
