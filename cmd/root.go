// =============================================================================
// SAF-T (PT) Toolkit - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (saftpt)
//   ├── validateCmd  (saftpt validate FILE...)
//   ├── processCmd   (saftpt process)
//   ├── normalizeCmd (saftpt normalize IN -o OUT)
//   └── versionCmd   (saftpt version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Setting up logging before any subcommand runs
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/saft-pt/internal/config"
	"github.com/ginjaninja78/saft-pt/internal/logging"
	"github.com/ginjaninja78/saft-pt/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logger is built in PersistentPreRunE and shared by all subcommands.
var logger = logging.Nop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "saftpt",
	Short: "SAF-T (PT) Toolkit - Read, validate and write Portuguese tax audit files",
	Long: `SAF-T (PT) Toolkit reads SAF-T (PT) 1.04_01 audit files, checks them
against the schema rules and the cross document rules of the tax authority,
and writes them back out.

Key Features:
  - Field level validation with one error code per invalid value
  - Control totals, document totals and numbering checks
  - Document signature chain verification and re-signing
  - XLSX validation reports
  - Concurrent processing of a directory of files

Example Usage:
  saftpt validate SAFT_2024.xml                      # Validate one file
  saftpt validate *.xml --report report.xlsx         # Validate and write a report
  saftpt process --config ./config.yaml              # Process the input directory
  saftpt normalize in.xml -o out.xml --export-type S # Write a simplified file`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		l, err := logging.New(logging.Config{Level: level, Development: true, OutputPaths: []string{"stderr"}})
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig loads the main configuration. When required is false and the
// file does not exist, the defaults are returned instead.
func loadConfig(required bool) (*config.MainConfig, error) {
	if !required && !utils.FileExists(cfgFile) {
		cfg := &config.MainConfig{}
		config.ApplyMainConfigDefaults(cfg)
		logger.Debugw("no configuration file, using defaults", "config", cfgFile)
		return cfg, nil
	}
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	return cfg, nil
}

// loadProfiles loads the company profiles, or none when the directory does
// not exist.
func loadProfiles(cfg *config.MainConfig) (map[string]*config.CompanyProfile, error) {
	if !utils.FileExists(cfg.ProfilesDir) {
		return map[string]*config.CompanyProfile{}, nil
	}
	profiles, err := config.LoadCompanyProfiles(cfg.ProfilesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load company profiles: %w", err)
	}
	return profiles, nil
}
