// =============================================================================
// SAF-T (PT) Toolkit - Main Entry Point
// =============================================================================
//
// This is the main entry point for the saftpt CLI application. It delegates
// command execution to the cmd package.
//
// USAGE:
//   saftpt validate FILE...  - Validate SAF-T (PT) files
//   saftpt process           - Process all files in the input directory
//   saftpt normalize IN      - Write a file back out in canonical form
//   saftpt version           - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Pipeline, validation, signature, reports, config
//   - pkg/saft/      : The SAF-T (PT) 1.04_01 data binding
//   - pkg/utils/     : File discovery, naming and archival
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/saft-pt/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
