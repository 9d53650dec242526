// =============================================================================
// Deposition Species Injector - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// itself runs the injection (see process.go); subcommands cover the extras.
//
// COBRA CLI STRUCTURE:
//   rootCmd (depspec <geoschem.xml> [species_database.yml])
//   ├── exportCmd (depspec export)
//   └── versionCmd (depspec version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the configuration file and applying flag overrides
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/depspec/internal/config"
	"github.com/ginjaninja78/depspec/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// aerosolPreset overrides the aerosol_preset configuration option.
var aerosolPreset bool

// aerosolCatalogue overrides the aerosol_catalogue configuration option.
var aerosolCatalogue string

// aerosolCatalogueSheet overrides the aerosol_catalogue_sheet configuration option.
var aerosolCatalogueSheet string

// strictDatabase overrides the strict_database configuration option.
var strictDatabase bool

// cfg is the loaded configuration, available to every command's RunE.
var cfg *config.Config

// logger is built in PersistentPreRunE.
var logger = zap.NewNop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command. Given file arguments it rewrites the
// deposition lists of geoschem.xml; without arguments it prints help.
var rootCmd = &cobra.Command{
	Use:   "depspec <geoschem.xml> [species_database.yml]",
	Short: "Inject GEOS-Chem deposition species lists into geoschem.xml",
	Long: `depspec reads a GEOS-Chem species database (species_database.yml),
classifies every species as gas or aerosol with dry and/or wet deposition,
and rewrites the four deposition list elements of geoschem.xml in place:

  <drydep_list>       gas species with Is_DryDep
  <gas_wetdep_list>   gas species with Is_WetDep
  <aer_drydep_list>   aerosol species with Is_DryDep
  <aer_wetdep_list>   aerosol species with Is_WetDep

Comments and every other element of geoschem.xml are preserved. The file is
overwritten without a backup.

Arguments:
  1) Path to geoschem.xml (usually in components/cam/bld/namelist_files/use_cases)
  2) Path to species_database.yml (optional, defaults to species_database in
     the configuration file)

Example Usage:
  depspec geoschem.xml                          # database from depspec.yaml
  depspec geoschem.xml species_database.yml     # explicit database
  depspec geoschem.xml db.yml --dry-run         # print lists, do not write
  depspec export db.yml -o deposition.xlsx      # review lists in a workbook`,

	Args: cobra.ArbitraryArgs,

	// Errors are printed once by Execute.
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("aerosol-preset") {
			loaded.AerosolPreset = aerosolPreset
		}
		if cmd.Flags().Changed("aerosol-catalogue") {
			loaded.AerosolCatalogue = aerosolCatalogue
		}
		if cmd.Flags().Changed("aerosol-catalogue-sheet") {
			loaded.AerosolCatalogueSheet = aerosolCatalogueSheet
		}
		if cmd.Flags().Changed("strict") {
			loaded.StrictDatabase = strictDatabase
		}
		cfg = loaded

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	RunE: runProcess,
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: the configuration file. The default file is optional.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// --aerosol-preset flag: seed aerosol lists from the MAM4 catalogue.
	rootCmd.PersistentFlags().BoolVar(
		&aerosolPreset,
		"aerosol-preset",
		false,
		"Use the built-in MAM4 aerosol catalogue instead of database aerosols",
	)

	// --aerosol-catalogue flag: aerosol species used by the preset.
	rootCmd.PersistentFlags().StringVar(
		&aerosolCatalogue,
		"aerosol-catalogue",
		"",
		"CSV, TSV or XLSX file of aerosol species used by --aerosol-preset instead of MAM4",
	)

	// --aerosol-catalogue-sheet flag: sheet of an XLSX catalogue.
	rootCmd.PersistentFlags().StringVar(
		&aerosolCatalogueSheet,
		"aerosol-catalogue-sheet",
		"",
		"Sheet of an XLSX --aerosol-catalogue to read (default: first sheet)",
	)

	// --strict flag: abort when the species database cannot be parsed.
	rootCmd.PersistentFlags().BoolVar(
		&strictDatabase,
		"strict",
		false,
		"Abort instead of writing empty lists when the species database is malformed",
	)
}
