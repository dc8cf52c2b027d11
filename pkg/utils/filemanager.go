// =============================================================================
// SAF-T (PT) Toolkit - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a processing run:
//   - Discovery of the audit files waiting in the input directory
//   - Archival of the files once they were processed
//   - Naming of the normalized files and of the reports
//   - The plain text summary of a run
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to input_archive after a successful run
//   - Files that failed to parse stay where they are, so they are picked up
//     again on the next run
//   - Archives can be split into year/month/day subdirectories
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for a processing run.
type FileManager struct {
	// InputDir is the directory where audit files are placed.
	InputDir string

	// OutputDir is the directory where normalized audit files are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived audit files.
	InputArchiveDir string

	// ReportDir is the directory for validation reports and run summaries.
	ReportDir string

	// UseTimestampSubdirs creates date-based subdirectories in archives.
	// Example: input_archive/2024/01/15/saft.xml
	UseTimestampSubdirs bool

	// ArchiveOnSuccess determines whether to archive files after a
	// successful run.
	ArchiveOnSuccess bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir, reportDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		ReportDir:        reportDir,
		ArchiveOnSuccess: true,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.InputArchiveDir,
		fm.ReportDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for files matching the
// pattern.
//
// PARAMETERS:
//   - pattern: A glob pattern to match files (e.g., "SAFT_*.xml").
//              If empty, defaults to "*.xml".
//
// RETURNS:
//   - The matching regular files, sorted by name.
//   - An error if the pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.xml"
	}

	files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	// Filter out directories.
	var result []string
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// DiscoverInputFilesRecursive scans the input directory recursively for
// files with the given extension, case insensitive.
func (fm *FileManager) DiscoverInputFilesRecursive(extension string) ([]string, error) {
	var files []string

	err := filepath.Walk(fm.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if extension == "" || strings.HasSuffix(strings.ToLower(path), strings.ToLower(extension)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk input directory: %w", err)
	}

	return files, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an audit file to the archive directory and
// returns its new path. With ArchiveOnSuccess off the file stays put.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.archivePath(filePath, time.Now())

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

func (fm *FileManager) archivePath(filePath string, now time.Time) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		return filepath.Join(
			fm.InputArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(fm.InputArchiveDir, fileName)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateFileName builds a file name from a format.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//             plus one placeholder per key of params, e.g. {nif}, {year},
//             {original}.
//   - extension: The extension the name must end with, e.g. ".xlsx".
//   - params: A map of placeholder values.
//
// EXAMPLE:
//   format: "{nif}_{year}_{uuid}"
//   params: {"nif": "500000000", "year": "2024"}
//   output: "500000000_2024_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func GenerateFileName(format, extension string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if extension != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(extension)) {
		result += extension
	}

	return result
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	StartTime        time.Time
	EndTime          time.Time
	TotalFiles       int
	SuccessfulFiles  int
	FailedFiles      int
	TotalDocuments   int
	TotalLines       int
	ValidationErrors int
	ProcessedFiles   []ProcessedFileInfo
	FailedFilesList  []FailedFileInfo
}

// ProcessedFileInfo contains information about a processed audit file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	ReportFile  string
	ArchivePath string
	Valid       bool
	Documents   int
	Lines       int
	Errors      int
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a file that could not be read.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a processing summary to a text file in dir and
// returns its path.
func WriteSummaryLog(summary ProcessingSummary, dir string) (string, error) {
	summaryPath := filepath.Join(dir, fmt.Sprintf("processing_summary_%s.txt", summary.StartTime.Format("20060102_150405")))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if err := writeSummary(file, summary); err != nil {
		return "", err
	}
	return summaryPath, nil
}

func writeSummary(out io.Writer, summary ProcessingSummary) error {
	writer := bufio.NewWriter(out)
	rule := strings.Repeat("=", 80) + "\n"

	fmt.Fprintf(writer, "SAF-T (PT) Toolkit - Processing Summary\n%s\n", rule)
	fmt.Fprintf(writer, "Run Information:\n")
	fmt.Fprintf(writer, "  Start Time:        %s\n", summary.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "  End Time:          %s\n", summary.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "  Duration:          %s\n\n", summary.EndTime.Sub(summary.StartTime))
	fmt.Fprintf(writer, "Statistics:\n")
	fmt.Fprintf(writer, "  Total Files:       %d\n", summary.TotalFiles)
	fmt.Fprintf(writer, "  Successful:        %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(writer, "  Failed:            %d\n", summary.FailedFiles)
	fmt.Fprintf(writer, "  Documents:         %d\n", summary.TotalDocuments)
	fmt.Fprintf(writer, "  Lines:             %d\n", summary.TotalLines)
	fmt.Fprintf(writer, "  Validation Errors: %d\n\n", summary.ValidationErrors)

	if len(summary.ProcessedFiles) > 0 {
		fmt.Fprintf(writer, "Processed Files:\n%s", strings.Repeat("-", 80)+"\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			if pf.OutputFile != "" {
				fmt.Fprintf(writer, "  Output:       %s\n", pf.OutputFile)
			}
			if pf.ReportFile != "" {
				fmt.Fprintf(writer, "  Report:       %s\n", pf.ReportFile)
			}
			fmt.Fprintf(writer, "  Valid:        %t\n", pf.Valid)
			fmt.Fprintf(writer, "  Documents:    %d\n", pf.Documents)
			fmt.Fprintf(writer, "  Errors:       %d\n", pf.Errors)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime)
		}
	}

	if len(summary.FailedFilesList) > 0 {
		fmt.Fprintf(writer, "Failed Files:\n%s", strings.Repeat("-", 80)+"\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	fmt.Fprintf(writer, "%sEnd of Summary\n", rule)

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush summary file: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CleanOldArchives removes archived files older than maxAge and returns how
// many were removed.
func CleanOldArchives(archiveDir string, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := filepath.Walk(archiveDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to clean archives: %w", err)
	}

	return removed, nil
}
