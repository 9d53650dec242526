// =============================================================================
// Deposition Species Injector - Process Command
// =============================================================================
//
// This file holds the root command's run function, which rewrites the
// deposition lists of one geoschem.xml.
//
// COMMAND USAGE:
//   depspec                                         print help, exit 0
//   depspec <geoschem.xml>                          database from configuration
//   depspec <geoschem.xml> <species_database.yml>
//   depspec a b c                                   print help, exit 1
//
// FLAGS:
//   --dry-run     : Print the generated lists without writing geoschem.xml
//
// PROCESSING PIPELINE:
//   See internal/converter. The species database is read before the XML file
//   is opened, and the XML file is replaced atomically, so any failure leaves
//   geoschem.xml unmodified.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/depspec/internal/converter"
	"github.com/ginjaninja78/depspec/internal/types"
	"github.com/ginjaninja78/depspec/internal/validation"
	"github.com/ginjaninja78/depspec/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun prints the generated lists without writing the XML file.
var dryRun bool

// ErrTooManyArgs is returned when more than two paths are given.
var ErrTooManyArgs = errors.New("too many arguments")

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the root command's local flags.
func init() {
	// --dry-run flag: print the lists without writing geoschem.xml.
	rootCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Print the generated lists without writing the XML file",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess validates the positional arguments and runs the converter.
func runProcess(cmd *cobra.Command, args []string) error {
	var xmlPath, dbPath string

	switch len(args) {
	case 0:
		return cmd.Help()
	case 1:
		xmlPath = args[0]
		dbPath = cfg.SpeciesDatabase
		if !utils.FileExists(dbPath) {
			return fmt.Errorf("species database %s not found: pass it as the second argument or set species_database in %s: %w",
				dbPath, cfgFile, os.ErrNotExist)
		}
	case 2:
		xmlPath = args[0]
		dbPath = args[1]
	default:
		_ = cmd.Help()
		return fmt.Errorf("%w: got %d, want at most 2", ErrTooManyArgs, len(args))
	}

	conv := converter.New(xmlPath, dbPath, cfg, logger)
	conv.DryRun = dryRun
	conv.Out = cmd.OutOrStdout()

	result := conv.Run()
	if len(result.Findings) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), validation.FormatErrors(result.Findings))
	}
	if !result.Success {
		return result.Error
	}

	if result.Written {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%d element(s)) from %s\n",
			result.XMLPath, result.Stats.ElementsUpdated, result.DatabasePath)
		for _, category := range types.Categories {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %d\n", category, len(result.Lists.Get(category)))
		}
	}

	return nil
}
