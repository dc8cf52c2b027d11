// =============================================================================
// SAF-T (PT) Toolkit - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which reads one or more audit
// files and reports every problem found, without changing anything.
//
// COMMAND USAGE:
//   saftpt validate FILE... [flags]
//
// FLAGS:
//   --public-key  : PEM public key or certificate to verify document hashes
//   --report      : Write an XLSX report of all files to this path
//   --skip        : Validation check to skip (repeatable)
//
// EXIT STATUS:
//   Non zero when any file cannot be read or fails validation.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/saft-pt/internal/config"
	"github.com/ginjaninja78/saft-pt/internal/converter"
	"github.com/ginjaninja78/saft-pt/internal/signature"
	"github.com/ginjaninja78/saft-pt/internal/validation"
	"github.com/ginjaninja78/saft-pt/internal/xlsxreport"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	publicKeyPath string
	reportPath    string
	skipChecks    []string
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate SAF-T (PT) files",
	Long: `The validate command reads each file, registers every field that breaks
a schema rule, and runs the cross document checks:

  header          NIF check digit, period bounds, expected company
  control_totals  NumberOfEntries, TotalDebit, TotalCredit of each container
  totals          DocumentTotals against the totals computed from the lines
  numbering       line numbers and document numbers without gaps
  references      customers, suppliers and products present in MasterFiles
  period          document dates inside the fiscal period
  signature       hash chain of each series (needs --public-key)

The configuration file is optional. When present its tolerance, public key
and company profiles are used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), args)
	},
}

// init registers the validate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&publicKeyPath,
		"public-key",
		"",
		"PEM public key or certificate used to verify document hashes",
	)

	validateCmd.Flags().StringVar(
		&reportPath,
		"report",
		"",
		"Write an XLSX report to this path",
	)

	validateCmd.Flags().StringSliceVar(
		&skipChecks,
		"skip",
		nil,
		"Validation check to skip (repeatable)",
	)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

func runValidate(ctx context.Context, files []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	profiles, err := loadProfiles(cfg)
	if err != nil {
		return err
	}

	var converters []*converter.Converter
	for _, file := range files {
		profile := config.FindProfile(profiles, file)
		if len(skipChecks) > 0 {
			profile = withSkippedChecks(profile, skipChecks)
		}
		conv := converter.New(file, profile, cfg).WithLogger(logger)
		converters = append(converters, conv)
	}

	if publicKeyPath != "" {
		key, err := signature.LoadPublicKey(publicKeyPath)
		if err != nil {
			return err
		}
		for _, conv := range converters {
			conv.WithPublicKey(key)
		}
	}

	var entries []xlsxreport.Entry
	failed := 0

	for _, conv := range converters {
		result := conv.Run(ctx)
		entries = append(entries, xlsxreport.Entry{
			Source: result.FilePath,
			File:   result.File,
			Result: result.Validation,
			Err:    result.Error,
		})

		name := filepath.Base(result.FilePath)
		switch {
		case result.Error != nil:
			failed++
			fmt.Printf("✗ %s: %v\n", name, result.Error)
		case !result.Success:
			failed++
			fmt.Printf("✗ %s: %d error(s), %d warning(s), %d invalid value(s)\n",
				name, result.Stats.ValidationErrors, result.Stats.ValidationWarnings, result.Stats.SetValueErrors)
			for _, code := range result.File.ErrorRegister().OnSetValue() {
				fmt.Printf("    %s\n", code)
			}
			if len(result.Validation.Errors) > 0 {
				fmt.Println(validation.FormatErrors(result.Validation.Errors))
			}
		default:
			fmt.Printf("✓ %s: %d document(s), %d line(s)\n", name, result.Stats.Documents, result.Stats.Lines)
		}
	}

	if reportPath != "" {
		if err := xlsxreport.Write(reportPath, entries...); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", reportPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(files))
	}
	return nil
}

// withSkippedChecks returns a copy of profile with extra checks skipped.
func withSkippedChecks(profile *config.CompanyProfile, checks []string) *config.CompanyProfile {
	p := config.CompanyProfile{}
	if profile != nil {
		p = *profile
	}
	p.SkipChecks = append(append([]string(nil), p.SkipChecks...), checks...)
	return &p
}
