// =============================================================================
// Deposition Species Injector - Main Entry Point
// =============================================================================
//
// This is the main entry point for the depspec CLI application. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   depspec <geoschem.xml> [species_database.yml]  - Rewrite deposition lists
//   depspec export [species_database.yml]          - Export lists to XLSX
//   depspec version                                - Display the version
//
// ARCHITECTURE:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/depspec/cmd"
)

func main() {
	cmd.Execute()
}
