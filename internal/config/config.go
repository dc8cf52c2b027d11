// =============================================================================
// SAF-T (PT) Toolkit - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
// It handles both the main application configuration and the per company
// profiles.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Company Profiles (profiles/*.yaml): Per taxpayer rules
//
// ARCHITECTURE:
//   A SAF-T file is matched to a company profile by its file name. The
//   profile carries what cannot be read from the file itself: the NIF the
//   file is expected to belong to and the public key of the invoicing
//   software that signed it.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory where incoming SAF-T files are placed.
	// The application will scan this directory for *.xml files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where normalized SAF-T files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed files are moved.
	// Files are only moved here after a successful run.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ReportDir is the directory where the validation workbooks are written.
	// Default: "./reports"
	ReportDir string `yaml:"report_dir"`

	// ProfilesDir is the directory containing the company profiles.
	// Default: "./profiles"
	ProfilesDir string `yaml:"profiles_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file.
	// Default: "./logs/saftpt.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ReportNameFormat defines the name of the validation workbooks.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {nif}       - Company tax registration number
	//   {year}      - Fiscal year of the file
	//
	// Example: "{nif}_{year}_{timestamp}.xlsx"
	// Default: "{uuid}.xlsx"
	ReportNameFormat string `yaml:"report_name_format"`

	// ExportType is the export type used when normalizing files.
	// Valid values: "C" (complete), "S" (simplified)
	// Default: "C"
	ExportType string `yaml:"export_type"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files to process concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError determines whether to continue processing other files
	// if one file fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	// =========================================================================
	// VALIDATION SETTINGS
	// =========================================================================

	// PublicKeyPath is the PEM public key used to verify document hashes
	// when the matching profile does not name one. Empty disables the
	// signature check.
	PublicKeyPath string `yaml:"public_key_path"`

	// TotalsTolerance is the largest difference accepted between stored
	// and recomputed totals.
	// Default: "0.01"
	TotalsTolerance string `yaml:"totals_tolerance"`
}

// Tolerance returns TotalsTolerance as a decimal. The value is checked on
// load, so a parse error here means the struct was built by hand.
func (c *MainConfig) Tolerance() decimal.Decimal {
	d, err := decimal.NewFromString(c.TotalsTolerance)
	if err != nil {
		return decimal.New(1, -2)
	}
	return d
}

// Export returns ExportType as an enumeration value.
func (c *MainConfig) Export() enum.ExportType {
	return enum.ExportType(c.ExportType)
}

// Continue reports whether a failed file stops the run.
func (c *MainConfig) Continue() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// =============================================================================
// COMPANY PROFILE STRUCTURE
// =============================================================================

// CompanyProfile holds the rules for the files of one taxpayer.
type CompanyProfile struct {
	// =========================================================================
	// COMPANY IDENTIFICATION
	// =========================================================================

	// CompanyName is the human-readable name of the company.
	// This is used in logs and report sheets.
	CompanyName string `yaml:"company_name"`

	// TaxRegistrationNumber is the NIF the files are expected to carry in
	// Header/TaxRegistrationNumber. Zero skips the check.
	TaxRegistrationNumber int `yaml:"tax_registration_number"`

	// =========================================================================
	// FILE MATCHING RULES
	// =========================================================================

	// FileMatchingPatterns is a list of glob patterns to match input files.
	// If a file name matches any of these patterns, this profile is used.
	//
	// Examples:
	//   - "SAFT_500000000_*.xml"
	//   - "*_acme_*.xml"
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`

	// =========================================================================
	// VALIDATION OVERRIDES
	// =========================================================================

	// PublicKeyPath overrides the main public key for this company.
	PublicKeyPath string `yaml:"public_key_path,omitempty"`

	// ExportType overrides the main export type for this company.
	ExportType string `yaml:"export_type,omitempty"`

	// SkipChecks lists validation checks that are not run for this
	// company, by name: "totals", "numbering", "references", "period",
	// "signature".
	SkipChecks []string `yaml:"skip_checks,omitempty"`
}

// Matches reports whether fileName matches one of the profile patterns.
func (p *CompanyProfile) Matches(fileName string) bool {
	base := filepath.Base(fileName)
	for _, pattern := range p.FileMatchingPatterns {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// Skips reports whether the named check is disabled for this company.
func (p *CompanyProfile) Skips(check string) bool {
	for _, s := range p.SkipChecks {
		if strings.EqualFold(s, check) {
			return true
		}
	}
	return false
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	ApplyMainConfigDefaults(&config)

	// Validate the configuration.
	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// ApplyMainConfigDefaults sets default values for any unset configuration
// options.
func ApplyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.ReportDir == "" {
		config.ReportDir = "./reports"
	}
	if config.ProfilesDir == "" {
		config.ProfilesDir = "./profiles"
	}
	if config.LogFile == "" {
		config.LogFile = "./logs/saftpt.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.ReportNameFormat == "" {
		config.ReportNameFormat = "{uuid}.xlsx"
	}
	if config.ExportType == "" {
		config.ExportType = string(enum.ExportTypeC)
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.TotalsTolerance == "" {
		config.TotalsTolerance = "0.01"
	}
}

// validateMainConfig validates the main configuration and creates the
// working directories.
func validateMainConfig(config *MainConfig) error {
	if _, err := enum.NewExportType(config.ExportType); err != nil {
		return fmt.Errorf("export_type: %w", err)
	}
	if config.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must not be negative, got %d", config.MaxConcurrency)
	}
	tolerance, err := decimal.NewFromString(config.TotalsTolerance)
	if err != nil {
		return fmt.Errorf("totals_tolerance: %w", err)
	}
	if tolerance.IsNegative() {
		return fmt.Errorf("totals_tolerance must not be negative, got %s", config.TotalsTolerance)
	}

	// Validate that required directories exist.
	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.ReportDir,
		config.ProfilesDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			// Create the directory if it doesn't exist.
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}

// LoadCompanyProfiles loads all company profiles from a directory.
//
// PARAMETERS:
//   - profilesDir: The path to the directory containing profile files.
//
// RETURNS:
//   - A map of profiles, keyed by NIF, or by file name when the profile
//     has no NIF.
//   - An error if the directory cannot be read or any file cannot be parsed.
func LoadCompanyProfiles(profilesDir string) (map[string]*CompanyProfile, error) {
	profiles := make(map[string]*CompanyProfile)

	// Find all YAML files in the profiles directory.
	files, err := filepath.Glob(filepath.Join(profilesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profile files: %w", err)
	}

	// Also check for .yml extension.
	ymlFiles, err := filepath.Glob(filepath.Join(profilesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profile files: %w", err)
	}
	files = append(files, ymlFiles...)

	// Load each profile file.
	for _, file := range files {
		profile, err := loadCompanyProfile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		key := filepath.Base(file)
		if profile.TaxRegistrationNumber != 0 {
			key = fmt.Sprintf("%d", profile.TaxRegistrationNumber)
		}

		profiles[key] = profile
	}

	return profiles, nil
}

// loadCompanyProfile loads a single profile file.
func loadCompanyProfile(filePath string) (*CompanyProfile, error) {
	// Read the profile file.
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Parse the YAML.
	var profile CompanyProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	if profile.ExportType != "" {
		if _, err := enum.NewExportType(profile.ExportType); err != nil {
			return nil, fmt.Errorf("export_type: %w", err)
		}
	}

	return &profile, nil
}

// FindProfile returns the first profile matching fileName, or nil. Keys
// are visited in sorted order so the match does not depend on map order.
func FindProfile(profiles map[string]*CompanyProfile, fileName string) *CompanyProfile {
	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if profiles[k].Matches(fileName) {
			return profiles[k]
		}
	}
	return nil
}
