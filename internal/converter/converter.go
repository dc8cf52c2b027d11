// =============================================================================
// SAF-T (PT) Toolkit - Converter Module
// =============================================================================
//
// This module contains the per file pipeline. It takes one SAF-T (PT) file
// from disk to a validation result, and optionally to a normalized copy.
//
// CONVERSION PIPELINE:
//   1. Parse the audit file into the data binding
//   2. Resolve the validation options (profile, public key, tolerance)
//   3. Validate the cross document rules
//   4. Apply the normalization chain, if any
//   5. Write the normalized file
//
// Writing the report and archiving the input are left to the caller, which
// sees the results of every file of a run.
//
// CONCURRENCY:
//   A Converter handles one file and owns the ErrorRegister of that file.
//   Several converters can run at the same time.
//
// =============================================================================

package converter

import (
	"context"
	"crypto/rsa"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ginjaninja78/saft-pt/internal/config"
	"github.com/ginjaninja78/saft-pt/internal/logging"
	"github.com/ginjaninja78/saft-pt/internal/signature"
	"github.com/ginjaninja78/saft-pt/internal/validation"
	"github.com/ginjaninja78/saft-pt/internal/xmlwriter"
	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
	"github.com/ginjaninja78/saft-pt/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the normalized file.
	// This is empty when no output was written.
	OutputFile string

	// File is the parsed audit file. Nil when parsing failed.
	File *auditfile.AuditFile

	// Validation is the validation result. Nil when parsing failed.
	Validation *validation.ValidationResult

	// Success indicates whether the file was read and passed validation.
	Success bool

	// Error contains the error that stopped the file, if any.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Documents is the number of source documents in the file.
	Documents int

	// Lines is the number of document lines in the file.
	Lines int

	// ValidationErrors is the number of validation errors.
	ValidationErrors int

	// ValidationWarnings is the number of validation warnings.
	ValidationWarnings int

	// SetValueErrors is the number of codes registered while reading.
	SetValueErrors int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the pipeline for a single audit file.
type Converter struct {
	// path is the path to the input file.
	path string

	// profile is the company profile matched to the file. May be nil.
	profile *config.CompanyProfile

	// mainConfig is the main application configuration.
	mainConfig *config.MainConfig

	// publicKey overrides the key named by the configuration.
	publicKey *rsa.PublicKey

	// chain is applied before the normalized file is written.
	chain *TransformationChain

	// writeOutput enables the normalized copy in OutputDir.
	writeOutput bool

	logger *logging.Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - path: The path to the input SAF-T file.
//   - profile: The company profile matched to the file, or nil.
//   - mainConfig: The main application configuration.
//
// RETURNS:
//   - A new Converter instance that only validates. Use WithOutput to
//     write a normalized copy.
func New(path string, profile *config.CompanyProfile, mainConfig *config.MainConfig) *Converter {
	return &Converter{
		path:       path,
		profile:    profile,
		mainConfig: mainConfig,
		chain:      NewTransformationChain(),
		logger:     logging.Nop(),
	}
}

// WithLogger sets the logger.
func (c *Converter) WithLogger(logger *logging.Logger) *Converter {
	c.logger = logger.WithFile(c.path)
	return c
}

// WithPublicKey sets the key used to verify document hashes, ahead of the
// key files named by the profile and the main configuration.
func (c *Converter) WithPublicKey(key *rsa.PublicKey) *Converter {
	c.publicKey = key
	return c
}

// WithOutput enables the normalized copy and sets the steps applied to it.
func (c *Converter) WithOutput(chain *TransformationChain) *Converter {
	c.writeOutput = true
	if chain != nil {
		c.chain = chain
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing. A file that
//     fails validation is a Result with Success false and a nil Error.
func (c *Converter) Run(ctx context.Context) Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.path,
		Success:  false,
	}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	c.logger.Infow("processing file")

	// =========================================================================
	// STEP 1: PARSE AUDIT FILE
	// =========================================================================
	// Invalid values are kept and registered; only a broken structure
	// stops the file here.

	reg := saft.NewErrorRegister().WithLogger(c.logger.Zap())
	file, err := auditfile.ParseFile(c.path, reg)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse audit file: %w", err)
		return result
	}
	result.File = file
	result.Stats.SetValueErrors = len(reg.OnSetValue())

	c.logger.Debugw("parsed audit file",
		"nif", file.Header().TaxRegistrationNumber(),
		"fiscal_year", file.Header().FiscalYear(),
		"set_value_errors", result.Stats.SetValueErrors,
	)

	// =========================================================================
	// STEP 2: RESOLVE VALIDATION OPTIONS
	// =========================================================================

	options, err := c.validationOptions()
	if err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	vr := validation.NewValidatorWithOptions(file, options).ValidateAll()
	result.Validation = vr
	result.Stats.Documents = vr.DocumentsValidated
	result.Stats.Lines = vr.LinesValidated
	result.Stats.ValidationErrors = vr.ErrorCount
	result.Stats.ValidationWarnings = vr.WarningCount

	for _, ve := range vr.Errors {
		c.logger.Debugw("validation error", "code", ve.Code, "document", ve.Document, "message", ve.Message)
	}

	// =========================================================================
	// STEP 4: NORMALIZE AND WRITE
	// =========================================================================

	if c.writeOutput {
		if err := ctx.Err(); err != nil {
			result.Error = err
			return result
		}
		outputPath, err := c.normalize(file)
		if err != nil {
			result.Error = err
			return result
		}
		result.OutputFile = outputPath
		c.logger.Infow("wrote normalized file", "output", outputPath)
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = vr.IsValid && len(reg.OnSetValue()) == 0
	c.logger.Infow("file done",
		"valid", result.Success,
		"documents", result.Stats.Documents,
		"errors", result.Stats.ValidationErrors,
		"warnings", result.Stats.ValidationWarnings,
	)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// validationOptions builds the options for the file from the main
// configuration and the profile. The profile wins where both set a value.
func (c *Converter) validationOptions() (validation.ValidationOptions, error) {
	options := validation.DefaultValidationOptions()
	options.Logger = c.logger.WithComponent("validation")
	options.Tolerance = c.mainConfig.Tolerance()

	keyPath := c.mainConfig.PublicKeyPath
	if c.profile != nil {
		options.ExpectedNIF = c.profile.TaxRegistrationNumber
		options.SkipChecks = c.profile.SkipChecks
		if c.profile.PublicKeyPath != "" {
			keyPath = c.profile.PublicKeyPath
		}
	}

	switch {
	case c.publicKey != nil:
		options.PublicKey = c.publicKey
	case keyPath != "":
		key, err := signature.LoadPublicKey(keyPath)
		if err != nil {
			return options, fmt.Errorf("failed to load public key: %w", err)
		}
		options.PublicKey = key
	}

	return options, nil
}

// normalize applies the transformation chain and writes the file to the
// output directory.
//
// FILE NAMING:
//   The normalized file keeps the name of the input file. A file with the
//   same name already in the output directory gets a {uuid} suffix.
func (c *Converter) normalize(file *auditfile.AuditFile) (string, error) {
	if err := c.chain.Transform(file); err != nil {
		return "", fmt.Errorf("failed to normalize: %w", err)
	}

	name := filepath.Base(c.path)
	outputPath := filepath.Join(c.mainConfig.OutputDir, name)
	if utils.FileExists(outputPath) {
		ext := filepath.Ext(name)
		outputPath = filepath.Join(c.mainConfig.OutputDir, utils.GenerateFileName(
			"{original}_{uuid}", ext, map[string]string{"original": name[:len(name)-len(ext)]},
		))
	}

	if err := xmlwriter.WriteFile(file, outputPath, xmlwriter.DefaultWriteOptions()); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	return outputPath, nil
}

// ReportName returns the report file name for a file, from the
// ReportNameFormat of the configuration.
func ReportName(format string, file *auditfile.AuditFile) string {
	params := map[string]string{}
	if file != nil {
		params["nif"] = strconv.Itoa(file.Header().TaxRegistrationNumber())
		params["year"] = strconv.Itoa(file.Header().FiscalYear())
	}
	return utils.GenerateFileName(format, ".xlsx", params)
}
