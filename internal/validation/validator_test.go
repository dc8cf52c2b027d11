package validation_test

import (
	"crypto/rand"
	"crypto/rsa"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/internal/signature"
	"github.com/ginjaninja78/saft-pt/internal/validation"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
	"github.com/ginjaninja78/saft-pt/pkg/saft/sourcedocuments"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// newFile returns a consistent audit file for 2024 with customer C1,
// product P1 and an empty SalesInvoices container.
func newFile() (*auditfile.AuditFile, *sourcedocuments.SalesInvoices) {
	a := auditfile.New(nil)
	h := a.Header()
	h.SetCompanyID("500000000")
	h.SetTaxRegistrationNumber(500000000)
	h.SetTaxAccountingBasis(enum.TaxAccountingBasisF)
	h.SetCompanyName("ACME Lda")
	h.SetFiscalYear(2024)
	h.SetStartDate(day(2024, 1, 1))
	h.SetEndDate(day(2024, 12, 31))

	a.MasterFiles().AddCustomer().SetCustomerID("C1")
	a.MasterFiles().AddProduct().SetProductCode("P1")

	sales := a.NewSourceDocuments().NewSalesInvoices()
	return a, sales
}

func addInvoice(sales *sourcedocuments.SalesInvoices, number string, date time.Time, amounts ...string) *sourcedocuments.Invoice {
	inv := sales.AddInvoice()
	inv.SetInvoiceNo(number)
	inv.SetInvoiceDate(date)
	inv.SetSystemEntryDate(date.Add(9 * time.Hour))
	inv.SetInvoiceType(enum.InvoiceTypeFT)
	inv.SetCustomerID("C1")
	inv.SetHash("0")
	inv.NewDocumentStatus().SetStatus(enum.InvoiceStatusN)
	for i, amount := range amounts {
		l := inv.AddLine()
		l.SetLineNumber(i + 1)
		l.SetProductCode("P1")
		l.SetCreditAmount(decPtr(amount))
		tax := l.NewTax()
		tax.SetTaxType(enum.TaxTypeIVA)
		tax.SetTaxCountryRegion(enum.TaxCountryRegionPT)
		tax.SetTaxCode("NOR")
		tax.SetTaxPercentage(decPtr("23"))
	}
	inv.NewDocumentTotals().SetFromCalc(inv.CalcTotals())
	return inv
}

func codes(errs []*validation.ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateAll(t *testing.T) {
	t.Run("Given a consistent file When it is validated Then it is valid", func(t *testing.T) {
		a, sales := newFile()
		addInvoice(sales, "FT A/1", day(2024, 3, 1), "100", "50")
		addInvoice(sales, "FT A/2", day(2024, 3, 2), "10")
		sales.SetFromTally(sales.Tally())

		result := validation.NewValidator(a).ValidateAll()

		assert.True(t, result.IsValid, validation.FormatErrors(result.Errors))
		assert.Equal(t, 2, result.DocumentsValidated)
		assert.Equal(t, 3, result.LinesValidated)
		assert.Empty(t, a.ErrorRegister().Validation())
	})

	t.Run("Given a file without source documents When it is validated Then it is valid", func(t *testing.T) {
		a := auditfile.New(nil)
		a.Header().SetTaxRegistrationNumber(500000000)

		assert.Empty(t, validation.Validate(a))
	})

	t.Run("Given wrong control totals When they are checked Then each counter is reported", func(t *testing.T) {
		a, sales := newFile()
		addInvoice(sales, "FT A/1", day(2024, 3, 1), "100")
		sales.SetNumberOfEntries(2)
		sales.SetTotalDebit(decimal.Zero)
		sales.SetTotalCredit(dec("99"))

		errs := validation.Validate(a)

		assert.ElementsMatch(t, []string{
			"SalesInvoices_NumberOfEntries_not_valid",
			"SalesInvoices_TotalCredit_not_valid",
		}, codes(errs))
		assert.Contains(t, a.ErrorRegister().Validation(), "SalesInvoices_TotalCredit_not_valid")
	})

	t.Run("Given a credit total off by the tolerance When it is checked Then it passes", func(t *testing.T) {
		a, sales := newFile()
		addInvoice(sales, "FT A/1", day(2024, 3, 1), "100")
		sales.SetFromTally(sales.Tally())
		sales.SetTotalCredit(dec("100.01"))

		assert.Empty(t, validation.Validate(a))
	})

	t.Run("Given a stored GrossTotal that differs When totals are checked Then it is reported", func(t *testing.T) {
		a, sales := newFile()
		inv := addInvoice(sales, "FT A/1", day(2024, 3, 1), "100")
		inv.DocumentTotals().SetGrossTotal(dec("120"))
		sales.SetFromTally(sales.Tally())

		errs := validation.Validate(a)

		require.Len(t, errs, 1)
		assert.Equal(t, "SalesInvoices_GrossTotal_not_valid", errs[0].Code)
		assert.Equal(t, "FT A/1", errs[0].Document)
		assert.Equal(t, "123", errs[0].Expected)
	})

	t.Run("Given a gap in a series When numbering is checked Then the next document is reported", func(t *testing.T) {
		a, sales := newFile()
		addInvoice(sales, "FT A/1", day(2024, 3, 1), "100")
		addInvoice(sales, "FT A/3", day(2024, 3, 2), "100")
		addInvoice(sales, "FT B/7", day(2024, 3, 2), "100")
		sales.SetFromTally(sales.Tally())

		errs := validation.Validate(a)

		require.Len(t, errs, 1)
		assert.Equal(t, "SalesInvoices_InvoiceNo_gap", errs[0].Code)
		assert.Equal(t, "FT A/3", errs[0].Document)
		assert.Equal(t, "2", errs[0].Expected)
	})

	t.Run("Given repeated line numbers When numbering is checked Then the line is reported", func(t *testing.T) {
		a, sales := newFile()
		inv := addInvoice(sales, "FT A/1", day(2024, 3, 1), "100", "50")
		inv.Lines()[1].SetLineNumber(1)
		sales.SetFromTally(sales.Tally())

		errs := validation.Validate(a)

		require.Len(t, errs, 1)
		assert.Equal(t, "SalesInvoices_LineNumber_not_valid", errs[0].Code)
		assert.Equal(t, 1, errs[0].Line)
	})

	t.Run("Given unknown customer and product When references are checked Then both are reported", func(t *testing.T) {
		a, sales := newFile()
		inv := addInvoice(sales, "FT A/1", day(2024, 3, 1), "100")
		inv.SetCustomerID("C9")
		inv.Lines()[0].SetProductCode("P9")
		sales.SetFromTally(sales.Tally())

		errs := validation.Validate(a)

		assert.ElementsMatch(t, []string{
			"SalesInvoices_CustomerID_not_found",
			"SalesInvoices_ProductCode_not_found",
		}, codes(errs))
	})

	t.Run("Given a document dated after EndDate When the period is checked Then it is reported", func(t *testing.T) {
		a, sales := newFile()
		addInvoice(sales, "FT A/1", day(2025, 1, 1), "100")
		sales.SetFromTally(sales.Tally())

		errs := validation.Validate(a)

		require.Len(t, errs, 1)
		assert.Equal(t, "SalesInvoices_InvoiceDate_out_of_period", errs[0].Code)
	})

	t.Run("Given an expected NIF When the header carries another Then it is reported", func(t *testing.T) {
		a, _ := newFile()
		options := validation.DefaultValidationOptions()
		options.ExpectedNIF = 999999990

		result := validation.NewValidatorWithOptions(a, options).ValidateAll()

		assert.False(t, result.IsValid)
		assert.Equal(t, []string{"TaxRegistrationNumber_mismatch"}, codes(result.Errors))
	})

	t.Run("Given skipped checks When the file is validated Then those checks do not run", func(t *testing.T) {
		a, sales := newFile()
		addInvoice(sales, "FT A/1", day(2025, 1, 1), "100")
		options := validation.DefaultValidationOptions()
		options.SkipChecks = []string{"Period", validation.CheckControlTotals}

		result := validation.NewValidatorWithOptions(a, options).ValidateAll()

		assert.True(t, result.IsValid)
	})

	t.Run("Given several failing checks When StopOnFirstError is set Then only the first check reports", func(t *testing.T) {
		a, sales := newFile()
		addInvoice(sales, "FT A/1", day(2025, 1, 1), "100")
		options := validation.DefaultValidationOptions()
		options.StopOnFirstError = true

		result := validation.NewValidatorWithOptions(a, options).ValidateAll()

		assert.Equal(t, []string{"SalesInvoices_NumberOfEntries_not_valid", "SalesInvoices_TotalCredit_not_valid"}, codes(result.Errors))
	})
}

func TestValidateAll_Signature(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	signed := func() (*auditfile.AuditFile, []*sourcedocuments.Invoice) {
		a, sales := newFile()
		invs := []*sourcedocuments.Invoice{
			addInvoice(sales, "FT A/1", day(2024, 3, 1), "100"),
			addInvoice(sales, "FT A/2", day(2024, 3, 2), "10"),
		}
		sales.SetFromTally(sales.Tally())

		docs := make([]signature.Document, len(invs))
		for i, inv := range invs {
			docs[i] = signature.Document{
				Date:            inv.InvoiceDate(),
				SystemEntryDate: inv.SystemEntryDate(),
				DocNo:           inv.InvoiceNo(),
				GrossTotal:      inv.DocumentTotals().GrossTotal(),
			}
		}
		hashes, err := signature.NewSigner(key).SignChain(docs, "")
		require.NoError(t, err)
		for i, inv := range invs {
			inv.SetHash(hashes[i])
		}
		return a, invs
	}

	options := validation.DefaultValidationOptions()
	options.PublicKey = &key.PublicKey

	t.Run("Given a signed series When the signature is checked Then it is valid", func(t *testing.T) {
		a, _ := signed()

		result := validation.NewValidatorWithOptions(a, options).ValidateAll()

		assert.True(t, result.IsValid, validation.FormatErrors(result.Errors))
	})

	t.Run("Given a changed total When the signature is checked Then the document is reported", func(t *testing.T) {
		a, invs := signed()
		invs[1].DocumentTotals().SetGrossTotal(dec("12.31"))

		result := validation.NewValidatorWithOptions(a, options).ValidateAll()

		var found bool
		for _, e := range result.Errors {
			if e.Code == "SalesInvoices_Hash_not_valid" {
				found = true
				assert.Equal(t, "FT A/2", e.Document)
			}
		}
		assert.True(t, found, validation.FormatErrors(result.Errors))
	})

	t.Run("Given unsigned documents When no key is set Then the signature is not checked", func(t *testing.T) {
		a, _ := signed()

		assert.Empty(t, validation.Validate(a))
	})
}

func TestSplitDocNo(t *testing.T) {
	series, n, ok := validation.SplitDocNo("FT A2024/12")
	assert.True(t, ok)
	assert.Equal(t, "FT A2024", series)
	assert.Equal(t, 12, n)

	_, _, ok = validation.SplitDocNo("FT12")
	assert.False(t, ok)
}

func TestWriteErrorLog(t *testing.T) {
	errs := []*validation.ValidationError{{
		Severity:  validation.SeverityError,
		Container: "SalesInvoices",
		Document:  "FT A/3",
		Message:   "numbering is not continuous",
		Value:     "3",
		Expected:  "2",
	}}
	path := filepath.Join(t.TempDir(), "errors.log")

	require.NoError(t, validation.WriteErrorLog(errs, "saft.xml", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "saft.xml")
	assert.Contains(t, string(data), "1. [ERROR] SalesInvoices, FT A/3: numbering is not continuous (value: '3', expected: '2')")
	assert.Equal(t, "No validation errors.", validation.FormatErrors(nil))
}
