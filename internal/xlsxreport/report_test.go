package xlsxreport_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/saft-pt/internal/validation"
	"github.com/ginjaninja78/saft-pt/internal/xlsxreport"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
)

func TestWrite(t *testing.T) {
	file := auditfile.New(nil)
	file.Header().SetCompanyName("ACME Lda")
	file.Header().SetTaxRegistrationNumber(500000000)
	file.Header().SetFiscalYear(2024)
	file.ErrorRegister().AddOnSetValue("Email_not_valid")

	result := &validation.ValidationResult{
		ErrorCount:         1,
		DocumentsValidated: 3,
		LinesValidated:     7,
		Errors: []*validation.ValidationError{{
			Severity:  validation.SeverityError,
			Check:     validation.CheckNumbering,
			Code:      "SalesInvoices_InvoiceNo_gap",
			Container: "SalesInvoices",
			Document:  "FT A/3",
			Line:      2,
			Value:     "3",
			Expected:  "2",
			Message:   "numbering of series 'FT A' is not continuous",
		}},
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")

	err := xlsxreport.Write(path,
		xlsxreport.Entry{Source: "a.xml", File: file, Result: result},
		xlsxreport.Entry{Source: "b.xml", Err: errors.New("missing element MasterFiles")},
	)
	require.NoError(t, err)

	t.Run("Given a written report When the validation sheet is read Then every error is a row", func(t *testing.T) {
		rows, err := xlsxreport.ReadValidation(path)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, xlsxreport.Row{
			File:      "a.xml",
			Severity:  "error",
			Check:     "numbering",
			Code:      "SalesInvoices_InvoiceNo_gap",
			Container: "SalesInvoices",
			Document:  "FT A/3",
			Line:      2,
			Value:     "3",
			Expected:  "2",
			Message:   "numbering of series 'FT A' is not continuous",
		}, rows[0])
		assert.Equal(t, "b.xml", rows[1].File)
		assert.Equal(t, "parse", rows[1].Check)
		assert.Equal(t, "missing element MasterFiles", rows[1].Message)
	})

	t.Run("Given a written report When the other sheets are read Then summary and register are filled", func(t *testing.T) {
		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		summary, err := f.GetRows(xlsxreport.SheetSummary)
		require.NoError(t, err)
		require.Len(t, summary, 3)
		assert.Equal(t, []string{"a.xml", "ACME Lda", "500000000", "2024", "FALSE", "1", "0", "3", "7"}, summary[1])

		register, err := f.GetRows(xlsxreport.SheetRegister)
		require.NoError(t, err)
		require.Len(t, register, 2)
		assert.Equal(t, []string{"a.xml", xlsxreport.ChannelSetValue, "Email_not_valid"}, register[1])
	})
}

func TestReadValidation_MissingFile(t *testing.T) {
	_, err := xlsxreport.ReadValidation(filepath.Join(t.TempDir(), "none.xlsx"))

	assert.Error(t, err)
}
