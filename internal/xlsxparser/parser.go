// =============================================================================
// Deposition Species Injector - XLSX Catalogue Parser
// =============================================================================
//
// This module reads an aerosol catalogue from an XLSX workbook. It accepts
// hand-made sheets as well as the category sheets written by the export
// command, so a reviewed AerDryDep sheet can be fed back as the catalogue.
//
// SHEET STRUCTURE:
//   The species column is located by its header ("Species" or "Name",
//   case-insensitive) in the first row. Without such a header the first
//   column holds the names.
//
//   | Column A | Column B  |          | Column A | Column B     |
//   |----------|-----------|    or    |----------|--------------|
//   | #        | Species   |          | so4_a1   | accumulation |
//   | 1        | SO4_A1    |          | so4_a3   | coarse       |
//
// SHEET SELECTION:
//   The named sheet when one is given, otherwise the first sheet.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/depspec/internal/csvparser"
)

// ReadCatalogue reads the species names of one sheet.
//
// PARAMETERS:
//   - workbookPath: The path to the XLSX file.
//   - sheetName: The sheet to read; "" selects the first sheet.
//
// RETURNS:
//   - The parsed catalogue (see csvparser.FromRows for the row rules).
//   - An error if the workbook or sheet cannot be read, or holds no names.
func ReadCatalogue(workbookPath, sheetName string) (*csvparser.Catalogue, error) {
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("%s: workbook has no sheets", workbookPath)
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet '%s': %w", workbookPath, sheetName, err)
	}

	catalogue, err := csvparser.FromRows(speciesColumn(rows))
	if err != nil {
		return nil, fmt.Errorf("%s: sheet '%s': %w", workbookPath, sheetName, err)
	}
	catalogue.SourceFile = workbookPath
	return catalogue, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// speciesColumn projects rows onto the species column, one cell per row.
func speciesColumn(rows [][]string) [][]string {
	column := 0
	if len(rows) > 0 {
		for i, cell := range rows[0] {
			if csvparser.IsHeader(cell) {
				column = i
				break
			}
		}
	}

	projected := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := ""
		if column < len(row) {
			cell = strings.TrimSpace(row[column])
		}
		projected = append(projected, []string{cell})
	}
	return projected
}
