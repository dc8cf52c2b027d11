// =============================================================================
// SAF-T (PT) Toolkit - Normalize Command
// =============================================================================
//
// This file defines the 'normalize' command, which reads an audit file and
// writes it back out through the data binding: elements in schema order,
// decimals and dates in canonical form, optional elements that were empty
// dropped.
//
// COMMAND USAGE:
//   saftpt normalize IN -o OUT [flags]
//
// FLAGS:
//   --output, -o      : Output path (required)
//   --export-type     : C (complete) or S (simplified, sales invoices only)
//   --recalculate     : Recompute document and control totals
//   --private-key     : PEM private key; signs every series again
//   --key-version     : HashControl written with the new signatures
//   --encoding        : Output encoding (default UTF-8)
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/saft-pt/internal/converter"
	"github.com/ginjaninja78/saft-pt/internal/signature"
	"github.com/ginjaninja78/saft-pt/internal/xmlwriter"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	normalizeOutput     string
	normalizeExportType string
	normalizeRecalc     bool
	privateKeyPath      string
	keyVersion          string
	outputEncoding      string
)

// =============================================================================
// NORMALIZE COMMAND DEFINITION
// =============================================================================

var normalizeCmd = &cobra.Command{
	Use:   "normalize IN",
	Short: "Write a SAF-T (PT) file back out in canonical form",
	Long: `The normalize command reads a file and writes it again. Values that break
a schema rule are written as they were read and listed on stderr.

With --private-key every sales, movement and working document series is
signed again, in number order. Use --recalculate as well when totals were
changed, since GrossTotal is part of the signed message.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNormalize(args[0])
	},
}

// init registers the normalize command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Output file path")
	normalizeCmd.Flags().StringVar(&normalizeExportType, "export-type", "", "Export type: C (complete) or S (simplified)")
	normalizeCmd.Flags().BoolVar(&normalizeRecalc, "recalculate", false, "Recompute document and control totals")
	normalizeCmd.Flags().StringVar(&privateKeyPath, "private-key", "", "PEM private key used to sign the documents again")
	normalizeCmd.Flags().StringVar(&keyVersion, "key-version", "", "HashControl written with the new signatures")
	normalizeCmd.Flags().StringVar(&outputEncoding, "encoding", "UTF-8", "Output encoding")
	_ = normalizeCmd.MarkFlagRequired("output")
}

// =============================================================================
// MAIN NORMALIZE FUNCTION
// =============================================================================

func runNormalize(input string) error {
	chain, err := normalizeChain()
	if err != nil {
		return err
	}

	file, err := auditfile.ParseFile(input, nil)
	if err != nil {
		return err
	}
	reg := file.ErrorRegister().WithLogger(logger.Zap())

	if err := chain.Transform(file); err != nil {
		return fmt.Errorf("failed to normalize: %w", err)
	}

	options := xmlwriter.DefaultWriteOptions()
	options.Encoding = outputEncoding
	if err := xmlwriter.WriteFile(file, normalizeOutput, options); err != nil {
		return err
	}

	for _, code := range reg.OnSetValue() {
		logger.Warnw("invalid value kept", "code", code)
	}
	for _, code := range reg.OnCreateXMLNode() {
		logger.Warnw("incomplete element written", "code", code)
	}
	logger.Infow("normalized file written", "input", input, "output", normalizeOutput, "export_type", file.ExportType())
	return nil
}

// normalizeChain builds the transformation steps from the flags.
func normalizeChain() (*converter.TransformationChain, error) {
	chain := converter.NewTransformationChain()

	if normalizeExportType != "" {
		exportType, err := enum.NewExportType(normalizeExportType)
		if err != nil {
			return nil, err
		}
		chain.Add(converter.SetExportType(exportType))
	}

	if normalizeRecalc {
		chain.Add(converter.RecalculateDocumentTotals())
		chain.Add(converter.RecalculateControlTotals())
	}

	if privateKeyPath != "" {
		key, err := signature.LoadPrivateKey(privateKeyPath)
		if err != nil {
			return nil, err
		}
		chain.Add(converter.Resign(signature.NewSigner(key), keyVersion))
	}

	return chain, nil
}
