package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadMainConfig(t *testing.T) {
	t.Run("Given a minimal file When it is loaded Then defaults are applied and directories created", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "config.yaml")
		writeFile(t, path, "input_dir: "+filepath.Join(root, "in")+"\n"+
			"output_dir: "+filepath.Join(root, "out")+"\n"+
			"report_dir: "+filepath.Join(root, "reports")+"\n"+
			"profiles_dir: "+filepath.Join(root, "profiles")+"\n")

		cfg, err := LoadMainConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "{uuid}.xlsx", cfg.ReportNameFormat)
		assert.Equal(t, 4, cfg.MaxConcurrency)
		assert.Equal(t, enum.ExportTypeC, cfg.Export())
		assert.True(t, cfg.Continue())
		assert.True(t, cfg.Tolerance().Equal(decimal.New(1, -2)))
		assert.DirExists(t, filepath.Join(root, "reports"))
	})

	t.Run("Given continue_on_error false When it is loaded Then the run stops on errors", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "config.yaml")
		writeFile(t, path, "input_dir: "+filepath.Join(root, "in")+"\n"+
			"output_dir: "+filepath.Join(root, "out")+"\n"+
			"report_dir: "+filepath.Join(root, "reports")+"\n"+
			"profiles_dir: "+filepath.Join(root, "profiles")+"\n"+
			"continue_on_error: false\n"+
			"export_type: S\n"+
			"totals_tolerance: \"0.05\"\n")

		cfg, err := LoadMainConfig(path)

		require.NoError(t, err)
		assert.False(t, cfg.Continue())
		assert.Equal(t, enum.ExportTypeS, cfg.Export())
		assert.True(t, cfg.Tolerance().Equal(decimal.RequireFromString("0.05")))
	})

	t.Run("Given an unknown export type When it is loaded Then it is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "export_type: X\n")

		_, err := LoadMainConfig(path)

		assert.ErrorContains(t, err, "export_type")
	})

	t.Run("Given a negative tolerance When it is loaded Then it is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "totals_tolerance: \"-1\"\n")

		_, err := LoadMainConfig(path)

		assert.ErrorContains(t, err, "totals_tolerance")
	})

	t.Run("Given no file When it is loaded Then an error is returned", func(t *testing.T) {
		_, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})
}

func TestCompanyProfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "acme.yaml"), `
company_name: ACME Lda
tax_registration_number: 500000000
file_matching_patterns:
  - "SAFT_500000000_*.xml"
skip_checks:
  - Signature
`)
	writeFile(t, filepath.Join(dir, "other.yml"), `
company_name: Other
file_matching_patterns:
  - "*_other_*.xml"
export_type: S
`)

	profiles, err := LoadCompanyProfiles(dir)
	require.NoError(t, err)

	t.Run("Given profiles When they are loaded Then they are keyed by NIF or file name", func(t *testing.T) {
		assert.Len(t, profiles, 2)
		assert.Equal(t, "ACME Lda", profiles["500000000"].CompanyName)
		assert.Equal(t, "S", profiles["other.yml"].ExportType)
	})

	t.Run("Given a file name When a profile is looked up Then the matching one is returned", func(t *testing.T) {
		assert.Same(t, profiles["500000000"], FindProfile(profiles, "/in/SAFT_500000000_2024.xml"))
		assert.Same(t, profiles["other.yml"], FindProfile(profiles, "2024_other_01.xml"))
		assert.Nil(t, FindProfile(profiles, "unknown.xml"))
	})

	t.Run("Given skip checks When a check is asked Then names are case insensitive", func(t *testing.T) {
		assert.True(t, profiles["500000000"].Skips("signature"))
		assert.False(t, profiles["500000000"].Skips("totals"))
	})

	t.Run("Given a profile with a bad export type When profiles are loaded Then it is rejected", func(t *testing.T) {
		bad := t.TempDir()
		writeFile(t, filepath.Join(bad, "bad.yaml"), "export_type: Z\n")

		_, err := LoadCompanyProfiles(bad)

		assert.Error(t, err)
	})
}
