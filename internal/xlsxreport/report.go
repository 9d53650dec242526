// =============================================================================
// Deposition Species Injector - XLSX Report Module
// =============================================================================
//
// This module exports a classification to an XLSX workbook so the lists can
// be reviewed before they are injected into geoschem.xml.
//
// WORKBOOK LAYOUT:
//   Summary     Category | XML Element | Species
//   GasDryDep   # | Species          (one sheet per category, output casing)
//   GasWetDep
//   AerDryDep
//   AerWetDep
//   Species     Name | Is_Gas | Is_DryDep | Is_WetDep | Excluded
//
// =============================================================================

package xlsxreport

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/depspec/internal/classifier"
	"github.com/ginjaninja78/depspec/internal/speciesdb"
	"github.com/ginjaninja78/depspec/internal/types"
	"github.com/ginjaninja78/depspec/pkg/utils"
)

// =============================================================================
// SHEET NAMES
// =============================================================================

const (
	// SummarySheet holds one row per category.
	SummarySheet = "Summary"

	// SpeciesSheet holds the flags of every database entry.
	SpeciesSheet = "Species"
)

// summaryHeader is the header row of the summary sheet.
var summaryHeader = []interface{}{"Category", "XML Element", "Species"}

// speciesHeader is the header row of the species sheet.
var speciesHeader = []interface{}{"Name", "Is_Gas", "Is_DryDep", "Is_WetDep", "Excluded"}

// =============================================================================
// EXPORT
// =============================================================================

// Write creates the workbook at path.
//
// PARAMETERS:
//   - path: The output .xlsx file. Parent directories are created.
//   - db: The species database (may be nil; the Species sheet is then empty).
//   - lists: The classification to export.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func Write(path string, db *speciesdb.Database, lists types.DepositionLists) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// The default workbook starts with "Sheet1"; reuse it for the summary.
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := writeSummary(f, lists, headerStyle); err != nil {
		return err
	}

	for _, category := range types.Categories {
		if err := writeCategory(f, category, lists.Get(category), headerStyle); err != nil {
			return err
		}
	}

	if err := writeSpecies(f, db, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// writeSummary fills the summary sheet.
func writeSummary(f *excelize.File, lists types.DepositionLists, style int) error {
	if err := writeHeader(f, SummarySheet, summaryHeader, style); err != nil {
		return err
	}

	for i, category := range types.Categories {
		row := []interface{}{category.String(), category.Tag(), len(lists.Get(category))}
		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeCategory adds one sheet listing a category's species in output form.
func writeCategory(f *excelize.File, category types.Category, names []string, style int) error {
	sheet := category.String()
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := writeHeader(f, sheet, []interface{}{"#", "Species"}, style); err != nil {
		return err
	}

	for i, name := range names {
		if err := setRow(f, sheet, i+2, []interface{}{i + 1, strings.ToUpper(name)}); err != nil {
			return err
		}
	}
	return nil
}

// writeSpecies adds the per-species flag sheet.
func writeSpecies(f *excelize.File, db *speciesdb.Database, style int) error {
	if _, err := f.NewSheet(SpeciesSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SpeciesSheet, err)
	}
	if err := writeHeader(f, SpeciesSheet, speciesHeader, style); err != nil {
		return err
	}
	if db == nil {
		return nil
	}

	for i, record := range db.Records() {
		flags := classifier.FlagsOf(record)
		row := []interface{}{record.Name, flags.Gas, flags.DryDep, flags.WetDep, record.IsMetadata()}
		if err := setRow(f, SpeciesSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeHeader writes a bold header into row 1.
func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	return nil
}

// setRow writes values starting at column A of the given 1-based row.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
	}
	return nil
}
