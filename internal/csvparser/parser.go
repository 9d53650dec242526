// =============================================================================
// Deposition Species Injector - Catalogue Parser Module
// =============================================================================
//
// This module reads a custom aerosol catalogue from a CSV (or TSV) file. A
// catalogue replaces the built-in MAM4 tracer list when aerosol_preset is on,
// so models with another aerosol scheme can seed their aerosol lists.
//
// FILE FORMAT:
//   - One species per row, name in the first column
//   - Further columns (mode, description, ...) are ignored
//   - An optional header row whose first cell is "species" or "name"
//   - Lines starting with '#' and empty rows are skipped
//   - Files ending in .tsv are tab separated, everything else comma separated
//
// EXAMPLE:
//   species,mode
//   so4_a1,accumulation
//   # coarse mode
//   so4_a3,coarse
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyCatalogue is returned when a catalogue holds no species names.
var ErrEmptyCatalogue = errors.New("catalogue has no species")

// headerNames are first-row cells treated as a header rather than a species.
var headerNames = map[string]bool{
	"species": true,
	"name":    true,
}

// =============================================================================
// CATALOGUE DATA STRUCTURE
// =============================================================================

// Catalogue represents a parsed catalogue file.
type Catalogue struct {
	// Names holds the species names in file order, duplicates removed.
	Names []string

	// SourceFile is the path to the catalogue file.
	SourceFile string

	// Duplicates lists names that appeared more than once (compared
	// case-insensitively). Only the first occurrence is kept in Names.
	Duplicates []string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ReadCatalogue reads a catalogue file.
//
// RETURNS:
//   - The parsed catalogue.
//   - An error if the file cannot be read, is not valid CSV, or names no
//     species (ErrEmptyCatalogue).
func ReadCatalogue(filePath string) (*Catalogue, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer file.Close()

	catalogue, err := Parse(bufio.NewReader(file), delimiterFor(filePath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	catalogue.SourceFile = filePath
	return catalogue, nil
}

// Parse reads catalogue rows from r using the given field delimiter.
func Parse(r io.Reader, delimiter rune) (*Catalogue, error) {
	reader := csv.NewReader(r)
	configureReader(reader, delimiter)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return FromRows(allRows)
}

// FromRows builds a catalogue from already split rows, taking the species
// name from the first cell of each row. Spreadsheet readers share it.
func FromRows(allRows [][]string) (*Catalogue, error) {
	catalogue := &Catalogue{Names: make([]string, 0, len(allRows))}
	seen := make(map[string]bool, len(allRows))

	for rowIndex, row := range allRows {
		if isRowEmpty(row) {
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if rowIndex == 0 && IsHeader(name) {
			continue
		}

		key := strings.ToUpper(name)
		if seen[key] {
			catalogue.Duplicates = append(catalogue.Duplicates, name)
			continue
		}
		seen[key] = true
		catalogue.Names = append(catalogue.Names, name)
	}

	if len(catalogue.Names) == 0 {
		return nil, ErrEmptyCatalogue
	}
	return catalogue, nil
}

// IsHeader reports whether a cell names the species column.
func IsHeader(cell string) bool {
	return headerNames[strings.ToLower(strings.TrimSpace(cell))]
}

// configureReader configures the CSV reader for catalogue files.
func configureReader(reader *csv.Reader, delimiter rune) {
	reader.Comma = delimiter
	reader.Comment = '#'

	// Rows may carry any number of trailing columns.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Leading-space trimming would swallow empty tab-separated fields.
	reader.TrimLeadingSpace = delimiter != '\t'
}

// delimiterFor picks the field delimiter from the file extension.
func delimiterFor(filePath string) rune {
	if strings.EqualFold(filepath.Ext(filePath), ".tsv") {
		return '\t'
	}
	return ','
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
