// =============================================================================
// SAF-T (PT) Toolkit - Process Command
// =============================================================================
//
// This file defines the 'process' command, which works through the input
// directory named by the configuration.
//
// COMMAND USAGE:
//   saftpt process [flags]
//
// FLAGS:
//   --dry-run : Validate and log only; write no output, report or archive
//   --pattern : Glob pattern of the files to pick up (default *.xml)
//   --recursive : Pick up *.xml files in subdirectories too
//   --archive-max-age : Remove archived files older than this, e.g. 2160h
//
// PROCESSING PIPELINE:
//   1. Load the configuration and the company profiles
//   2. Discover SAF-T files in the input directory
//   3. Match each file to a company profile
//   4. For each file (concurrently, up to max_concurrency):
//      a. Parse the audit file
//      b. Validate it
//      c. Write the normalized copy to the output directory
//      d. Write the XLSX report to the report directory
//   5. Archive the files that could be read
//   6. Write the run summary
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/saft-pt/internal/config"
	"github.com/ginjaninja78/saft-pt/internal/converter"
	"github.com/ginjaninja78/saft-pt/internal/logging"
	"github.com/ginjaninja78/saft-pt/internal/xlsxreport"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
	"github.com/ginjaninja78/saft-pt/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun validates without writing any file.
var dryRun bool

// inputPattern selects the input files.
var inputPattern string

// recursive walks the input directory instead of globbing it.
var recursive bool

// archiveMaxAge removes old archived files before the run. Zero keeps them.
var archiveMaxAge time.Duration

// archiveByDate files archived inputs under year/month/day.
var archiveByDate bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Validate and normalize every SAF-T file in the input directory",
	Long: `The process command scans the input directory for SAF-T files, matches
them to a company profile, validates them and writes a normalized copy and
an XLSX report for each.

Files are processed concurrently. Each file has its own error register, and
a file that cannot be read does not affect the others unless
continue_on_error is false.

On success:
  - The normalized file is placed in the output directory
  - The report is placed in the report directory
  - The input file is moved to the input archive

On error:
  - The input file remains in the input directory
  - The error is listed in the run summary`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context())
	},
}

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Validate only, without writing output, reports or archives",
	)

	processCmd.Flags().StringVar(
		&inputPattern,
		"pattern",
		"*.xml",
		"Glob pattern of the input files",
	)

	processCmd.Flags().BoolVar(
		&recursive,
		"recursive",
		false,
		"Also pick up .xml files in subdirectories of the input directory",
	)

	processCmd.Flags().DurationVar(
		&archiveMaxAge,
		"archive-max-age",
		0,
		"Remove archived files older than this before the run (0 keeps them)",
	)

	processCmd.Flags().BoolVar(
		&archiveByDate,
		"archive-by-date",
		false,
		"Archive input files under year/month/day subdirectories",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess is the main function that orchestrates the run.
func runProcess(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	summary := utils.ProcessingSummary{StartTime: time.Now()}

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, err := loadConfig(true)
	if err != nil {
		return err
	}

	runLogger, err := fileLogger(mainConfig)
	if err != nil {
		return err
	}
	log := runLogger.WithComponent("process")

	profiles, err := loadProfiles(mainConfig)
	if err != nil {
		return err
	}
	log.Infow("configuration loaded", "profiles", len(profiles), "dry_run", dryRun)

	fm := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, mainConfig.InputArchiveDir, mainConfig.ReportDir)
	fm.ArchiveOnSuccess = !dryRun
	fm.UseTimestampSubdirs = archiveByDate
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	if archiveMaxAge > 0 && !dryRun {
		removed, err := utils.CleanOldArchives(mainConfig.InputArchiveDir, archiveMaxAge)
		if err != nil {
			log.Warnw("failed to clean archives", "error", err)
		} else if removed > 0 {
			log.Infow("old archives removed", "count", removed)
		}
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if recursive {
		inputFiles, err = fm.DiscoverInputFilesRecursive(".xml")
	} else {
		inputFiles, err = fm.DiscoverInputFiles(inputPattern)
	}
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}
	summary.TotalFiles = len(inputFiles)

	if len(inputFiles) == 0 {
		fmt.Println("No SAF-T files found in the input directory.")
		return nil
	}
	log.Infow("input files found", "count", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// A buffered channel bounds the number of files in flight. When
	// continue_on_error is false the first failure cancels the files that
	// have not started.

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limit := mainConfig.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	results := make(chan processed, len(inputFiles))

	for _, file := range inputFiles {
		wg.Add(1)

		go func(filePath string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results <- processed{Result: converter.Result{FilePath: filePath, Error: ctx.Err()}}
				return
			}
			defer func() { <-sem }()

			p := processFile(ctx, filePath, profiles, mainConfig, fm, runLogger)
			if p.Error != nil && !mainConfig.Continue() {
				cancel()
			}
			results <- p
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS AND GENERATE SUMMARY
	// =========================================================================

	for p := range results {
		name := filepath.Base(p.FilePath)
		if p.Error != nil {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    p.FilePath,
				ErrorMessage: p.Error.Error(),
			})
			fmt.Printf("  ✗ %s: %v\n", name, p.Error)
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalDocuments += p.Stats.Documents
		summary.TotalLines += p.Stats.Lines
		summary.ValidationErrors += p.Stats.ValidationErrors
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   p.FilePath,
			OutputFile:  p.OutputFile,
			ReportFile:  p.reportFile,
			ArchivePath: p.archivePath,
			Valid:       p.Success,
			Documents:   p.Stats.Documents,
			Lines:       p.Stats.Lines,
			Errors:      p.Stats.ValidationErrors,
			ProcessTime: p.Stats.ProcessingTime,
		})

		mark := "✓"
		if !p.Success {
			mark = "!"
		}
		fmt.Printf("  %s %s: %d document(s), %d error(s)\n", mark, name, p.Stats.Documents, p.Stats.ValidationErrors)
	}

	// =========================================================================
	// STEP 5: PRINT AND WRITE SUMMARY
	// =========================================================================

	summary.EndTime = time.Now()
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:       %d\n", summary.TotalFiles)
	fmt.Printf("Successful:        %d\n", summary.SuccessfulFiles)
	fmt.Printf("Failed:            %d\n", summary.FailedFiles)
	fmt.Printf("Validation errors: %d\n", summary.ValidationErrors)
	fmt.Printf("Time elapsed:      %s\n", summary.EndTime.Sub(summary.StartTime))

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, mainConfig.ReportDir)
		if err != nil {
			log.Warnw("failed to write summary", "error", err)
		} else {
			fmt.Printf("Summary written to %s\n", summaryPath)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) could not be processed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// processed is the outcome of one file of the run.
type processed struct {
	converter.Result
	reportFile  string
	archivePath string
}

// processFile runs the pipeline for one file, then writes its report and
// archives it.
func processFile(ctx context.Context, filePath string, profiles map[string]*config.CompanyProfile, mainConfig *config.MainConfig, fm *utils.FileManager, runLogger *logging.Logger) processed {
	log := runLogger.WithFile(filePath)

	profile := config.FindProfile(profiles, filePath)
	if profile == nil {
		log.Warnw("no company profile matches the file")
	}

	conv := converter.New(filePath, profile, mainConfig).WithLogger(runLogger)
	if !dryRun {
		exportType := mainConfig.Export()
		if profile != nil && profile.ExportType != "" {
			exportType = enum.ExportType(profile.ExportType)
		}
		conv.WithOutput(converter.NewTransformationChain().Add(converter.SetExportType(exportType)))
	}

	p := processed{Result: conv.Run(ctx)}
	if p.Error != nil || dryRun {
		return p
	}

	reportFile := filepath.Join(mainConfig.ReportDir, converter.ReportName(mainConfig.ReportNameFormat, p.File))
	entry := xlsxreport.Entry{Source: filePath, File: p.File, Result: p.Validation}
	if err := xlsxreport.Write(reportFile, entry); err != nil {
		log.Warnw("failed to write report", "error", err)
	} else {
		p.reportFile = reportFile
	}

	archivePath, err := fm.ArchiveInputFile(filePath)
	if err != nil {
		log.Warnw("failed to archive input file", "error", err)
	} else {
		p.archivePath = archivePath
	}

	return p
}

// fileLogger adds the configured log file to the console logger.
func fileLogger(mainConfig *config.MainConfig) (*logging.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(mainConfig.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	level := mainConfig.LogLevel
	if verbose {
		level = "debug"
	}
	l, err := logging.New(logging.Config{
		Level:       level,
		OutputPaths: []string{"stderr", mainConfig.LogFile},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	return l, nil
}
