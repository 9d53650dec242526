// =============================================================================
// Deposition Species Injector - Converter Module
// =============================================================================
//
// This module contains the run pipeline. It takes one geoschem.xml and one
// species database and produces the rewritten geoschem.xml.
//
// CONVERSION PIPELINE:
//   1. Load the species database
//   2. Classify species into the four deposition lists
//   3. Validate the lists
//   4. Parse geoschem.xml (comments retained)
//   5. Inject the lists into the target elements
//   6. Atomically write geoschem.xml back to its own path
//
// FAILURE MODEL:
//   - Missing or unreadable input files stop the run before anything is
//     written.
//   - A malformed species database is logged and the run continues with
//     empty lists, unless the configuration asks for strict handling.
//   - A malformed XML document stops the run.
//   - Validation findings are warnings only.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/depspec/internal/classifier"
	"github.com/ginjaninja78/depspec/internal/config"
	"github.com/ginjaninja78/depspec/internal/csvparser"
	"github.com/ginjaninja78/depspec/internal/speciesdb"
	"github.com/ginjaninja78/depspec/internal/types"
	"github.com/ginjaninja78/depspec/internal/validation"
	"github.com/ginjaninja78/depspec/internal/xlsxparser"
	"github.com/ginjaninja78/depspec/internal/xmlwriter"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// XMLPath is the geoschem.xml that was processed.
	XMLPath string

	// DatabasePath is the species database that was read.
	DatabasePath string

	// Lists is the classification that was (or, on dry runs, would be) written.
	Lists types.DepositionLists

	// Written is true when the XML file was replaced.
	Written bool

	// Success indicates whether the run completed.
	Success bool

	// Error contains the fatal error if the run failed.
	Error error

	// Warnings contains non-fatal findings, including a database parse error.
	Warnings []error

	// Findings holds the validation findings, which are also in Warnings.
	Findings []*validation.ValidationError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// EntriesRead is the number of database entries, metadata included.
	EntriesRead int

	// EntriesSkipped is the number of entries whose value was not a mapping.
	EntriesSkipped int

	// ElementsUpdated is the number of XML elements whose text was replaced.
	ElementsUpdated int

	// ElementsSkipped is the number of target elements that could not take text.
	ElementsSkipped int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the pipeline for one XML file.
type Converter struct {
	// xmlPath is the geoschem.xml to rewrite.
	xmlPath string

	// dbPath is the species database to read.
	dbPath string

	// cfg is the tool configuration.
	cfg *config.Config

	// logger receives progress and warnings.
	logger *zap.Logger

	// DryRun prints the generated list bodies to Out instead of writing.
	DryRun bool

	// Out receives dry-run output.
	Out io.Writer
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - xmlPath: The geoschem.xml to rewrite.
//   - dbPath: The species database to read.
//   - cfg: The tool configuration. Nil selects the defaults.
//   - logger: The logger. Nil disables logging.
func New(xmlPath, dbPath string, cfg *config.Config, logger *zap.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		xmlPath: xmlPath,
		dbPath:  dbPath,
		cfg:     cfg,
		logger:  logger,
		Out:     io.Discard,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline.
//
// RETURNS:
//   - A Result struct containing the outcome of the run.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		XMLPath:      c.xmlPath,
		DatabasePath: c.dbPath,
	}

	// =========================================================================
	// STEPS 1-2: LOAD AND CLASSIFY
	// =========================================================================

	classification, err := LoadAndClassify(c.dbPath, c.cfg, c.logger)
	if err != nil {
		result.Error = err
		return result
	}
	if classification.ParseError != nil {
		result.Warnings = append(result.Warnings, classification.ParseError)
	}
	lists := classification.Lists
	result.Lists = lists
	result.Stats.EntriesRead = classification.Database.Len()
	result.Stats.EntriesSkipped = len(classification.Database.Skipped)

	// =========================================================================
	// STEP 3: VALIDATE LISTS
	// =========================================================================

	for _, finding := range validation.ValidateLists(lists) {
		c.logger.Warn("species list finding", zap.String("finding", finding.Error()))
		result.Warnings = append(result.Warnings, finding)
		result.Findings = append(result.Findings, finding)
	}

	// =========================================================================
	// STEP 4: PARSE XML
	// =========================================================================

	doc, err := xmlwriter.Open(c.xmlPath)
	if err != nil {
		result.Error = err
		return result
	}

	for _, finding := range validation.ValidateTargets(doc, lists) {
		c.logger.Warn("target element finding", zap.String("finding", finding.Error()))
		result.Warnings = append(result.Warnings, finding)
		result.Findings = append(result.Findings, finding)
	}

	// =========================================================================
	// STEP 5: INJECT
	// =========================================================================

	report := doc.Inject(lists)
	result.Stats.ElementsUpdated = report.UpdatedTotal()
	result.Stats.ElementsSkipped = len(report.Skipped)

	for _, tag := range report.Skipped {
		category, _ := types.CategoryForTag(tag)
		c.logger.Warn("element holds child elements, list not written",
			zap.Stringer("category", category), zap.String("tag", tag))
	}
	for _, category := range report.Missing {
		c.logger.Debug("no element for category", zap.Stringer("category", category), zap.String("tag", category.Tag()))
	}

	// =========================================================================
	// STEP 6: WRITE
	// =========================================================================

	if c.DryRun {
		writeDryRun(c.Out, lists)
	} else {
		if err := doc.Save(); err != nil {
			result.Error = err
			return result
		}
		result.Written = true
		c.logger.Info("updated XML file",
			zap.String("path", c.xmlPath),
			zap.Int("elements", report.UpdatedTotal()))
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Classification is the outcome of loading and classifying a database.
type Classification struct {
	// Database is the loaded database, empty after a parse failure.
	Database *speciesdb.Database

	// Lists holds the four deposition lists.
	Lists types.DepositionLists

	// ParseError is the non-fatal database parse error, if any.
	ParseError error
}

// LoadAndClassify loads the species database and classifies it.
//
// With the aerosol preset on, cfg.AerosolCatalogue (when set) names a CSV,
// TSV or XLSX catalogue that replaces the built-in MAM4 tracer list.
//
// RETURNS:
//   - The classification.
//   - A fatal error: the database or catalogue could not be read, or the
//     database could not be parsed and cfg.StrictDatabase is set.
func LoadAndClassify(dbPath string, cfg *config.Config, logger *zap.Logger) (*Classification, error) {
	db, err := speciesdb.Load(dbPath)

	out := &Classification{Database: db}
	if err != nil {
		var parseErr *speciesdb.ParseError
		if !errors.As(err, &parseErr) {
			return nil, err
		}
		if cfg.StrictDatabase {
			return nil, fmt.Errorf("aborting before XML is modified: %w", err)
		}
		logger.Error("species database could not be parsed, continuing with empty lists", zap.Error(err))
		out.ParseError = err
	}

	for _, name := range db.Skipped {
		logger.Debug("skipping entry that is not a mapping", zap.String("species", name))
	}
	for _, record := range db.Records() {
		if record.IsMetadata() {
			continue
		}
		if props := record.NonBoolFlags(); len(props) > 0 {
			logger.Warn("deposition flag is not a boolean, treated as false",
				zap.String("species", record.Name), zap.Strings("properties", props))
		}
	}

	opts := cfg.ClassifierOptions()
	if cfg.AerosolPreset && cfg.AerosolCatalogue != "" {
		catalogue, err := loadCatalogue(cfg)
		if err != nil {
			return nil, err
		}
		for _, name := range catalogue.Duplicates {
			logger.Debug("skipping duplicate catalogue entry", zap.String("species", name))
		}
		opts.Catalogue = catalogue.Names
		logger.Debug("loaded aerosol catalogue",
			zap.String("path", cfg.AerosolCatalogue),
			zap.Int("species", len(catalogue.Names)))
	}
	out.Lists = classifier.Classify(db, opts)

	logger.Info("classified species database",
		zap.String("path", dbPath),
		zap.Int("entries", db.Len()),
		zap.Bool("aerosol_preset", cfg.AerosolPreset),
		zap.Int("gas_dry", len(out.Lists.GasDry)),
		zap.Int("gas_wet", len(out.Lists.GasWet)),
		zap.Int("aer_dry", len(out.Lists.AerDry)),
		zap.Int("aer_wet", len(out.Lists.AerWet)))

	return out, nil
}

// loadCatalogue reads cfg.AerosolCatalogue, choosing the reader by extension.
func loadCatalogue(cfg *config.Config) (*csvparser.Catalogue, error) {
	if strings.EqualFold(filepath.Ext(cfg.AerosolCatalogue), ".xlsx") {
		return xlsxparser.ReadCatalogue(cfg.AerosolCatalogue, cfg.AerosolCatalogueSheet)
	}
	return csvparser.ReadCatalogue(cfg.AerosolCatalogue)
}

// writeDryRun prints each target element with the text it would receive.
func writeDryRun(w io.Writer, lists types.DepositionLists) {
	for _, category := range types.Categories {
		fmt.Fprintf(w, "<%s>%s</%s>\n", category.Tag(), xmlwriter.FormatList(lists.Get(category)), category.Tag())
	}
}
