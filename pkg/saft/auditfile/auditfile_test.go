package auditfile_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fillHeader(h *auditfile.Header) {
	h.SetCompanyID("Lisboa 12345")
	h.SetTaxRegistrationNumber(500000000)
	h.SetTaxAccountingBasis(enum.TaxAccountingBasisF)
	h.SetCompanyName("ACME Lda")
	addr := h.NewCompanyAddress()
	addr.SetAddressDetail("Rua Augusta 1")
	addr.SetCity("Lisboa")
	addr.SetPostalCode("1100-048")
	h.SetFiscalYear(2024)
	h.SetStartDate(day(2024, 1, 1))
	h.SetEndDate(day(2024, 12, 31))
	h.SetDateCreated(day(2025, 1, 10))
	h.SetTaxEntity(auditfile.TaxEntityGlobal)
	h.SetProductCompanyTaxID("500000000")
	h.SetSoftwareCertificateNumber(0)
	h.SetProductID("Invoicer/ACME Lda")
	h.SetProductVersion("1.0")
}

// headerXML is a complete Header with CompanyName left to the caller.
func headerXML(companyName string) string {
	return `<Header>
<AuditFileVersion>1.04_01</AuditFileVersion>
<CompanyID>500000000</CompanyID>
<TaxRegistrationNumber>500000000</TaxRegistrationNumber>
<TaxAccountingBasis>F</TaxAccountingBasis>
<CompanyName>` + companyName + `</CompanyName>
<CompanyAddress><AddressDetail>Rua Augusta 1</AddressDetail><City>Lisboa</City><PostalCode>1100-048</PostalCode><Country>PT</Country></CompanyAddress>
<FiscalYear>2024</FiscalYear>
<StartDate>2024-01-01</StartDate>
<EndDate>2024-12-31</EndDate>
<CurrencyCode>EUR</CurrencyCode>
<DateCreated>2025-01-10</DateCreated>
<TaxEntity>Global</TaxEntity>
<ProductCompanyTaxID>500000000</ProductCompanyTaxID>
<SoftwareCertificateNumber>0</SoftwareCertificateNumber>
<ProductID>Invoicer/ACME Lda</ProductID>
<ProductVersion>1.0</ProductVersion>
</Header>`
}

func TestNew(t *testing.T) {
	a := auditfile.New(nil)

	assert.NotNil(t, a.ErrorRegister())
	assert.Equal(t, enum.ExportTypeC, a.ExportType())
	assert.Equal(t, saft.AuditFileVersion, a.Header().AuditFileVersion())
	assert.Equal(t, enum.CurrencyCodeEUR, a.Header().CurrencyCode())
	assert.NotNil(t, a.MasterFiles())
	assert.Nil(t, a.SourceDocuments())
}

func TestAuditFile_SetExportType(t *testing.T) {
	a := auditfile.New(nil)

	assert.True(t, a.SetExportType(enum.ExportTypeS))
	assert.False(t, a.SetExportType(enum.ExportType("X")))
	assert.Equal(t, enum.ExportTypeS, a.ExportType())
	assert.Equal(t, []string{"ExportType_not_valid"}, a.ErrorRegister().OnSetValue())
}

func TestAuditFile_RoundTrip(t *testing.T) {
	t.Run("Given a file built in code When it is serialized and parsed Then the content survives", func(t *testing.T) {
		a := auditfile.New(nil)
		fillHeader(a.Header())
		p := a.MasterFiles().AddProduct()
		p.SetProductType(enum.ProductTypeS)
		p.SetProductCode("SRV1")
		p.SetProductDescription("Consultoria")
		p.SetProductNumberCode("SRV1")
		sales := a.NewSourceDocuments().NewSalesInvoices()
		sales.SetNumberOfEntries(0)
		sales.SetTotalDebit(decimal.Zero)
		sales.SetTotalCredit(decimal.Zero)

		data, err := a.ToXML(2)
		require.NoError(t, err)
		require.False(t, a.ErrorRegister().HasErrors(), "%v", a.ErrorRegister().OnCreateXMLNode())
		assert.True(t, bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)))
		assert.Contains(t, string(data), `xmlns="`+saft.Namespace+`"`)

		back, err := auditfile.Parse(bytes.NewReader(data), nil)
		require.NoError(t, err)

		h := back.Header()
		assert.Equal(t, "Lisboa 12345", h.CompanyID())
		assert.Equal(t, 500000000, h.TaxRegistrationNumber())
		assert.Equal(t, "500000000", h.NIF())
		assert.Equal(t, day(2024, 12, 31), h.EndDate())
		assert.Equal(t, enum.CountryPT, h.CompanyAddress().Country())
		require.Len(t, back.MasterFiles().Product(), 1)
		assert.Equal(t, "SRV1", back.MasterFiles().Product()[0].ProductCode())
		require.NotNil(t, back.SourceDocuments())
		assert.NotNil(t, back.SourceDocuments().SalesInvoices())
		assert.Nil(t, back.SourceDocuments().Payments())
		assert.False(t, back.ErrorRegister().HasErrors())
	})

	t.Run("Given a file on disk When it is written and read Then ParseFile returns it", func(t *testing.T) {
		a := auditfile.New(nil)
		fillHeader(a.Header())
		path := filepath.Join(t.TempDir(), "saft.xml")

		require.NoError(t, a.WriteFile(path))
		back, err := auditfile.ParseFile(path, saft.NewErrorRegister())

		require.NoError(t, err)
		assert.Equal(t, "ACME Lda", back.Header().CompanyName())
	})

	t.Run("Given a missing file When it is parsed Then an error is returned", func(t *testing.T) {
		_, err := auditfile.ParseFile(filepath.Join(t.TempDir(), "missing.xml"), nil)

		assert.Error(t, err)
	})
}

func TestAuditFile_ExportType(t *testing.T) {
	newFile := func(exportType enum.ExportType) *auditfile.AuditFile {
		a := auditfile.New(nil)
		fillHeader(a.Header())
		sd := a.NewSourceDocuments()
		sd.NewSalesInvoices()
		sd.NewMovementOfGoods()
		sd.NewPayments()
		a.SetExportType(exportType)
		return a
	}

	t.Run("Given a complete export When it is written Then every container is present", func(t *testing.T) {
		doc, err := newFile(enum.ExportTypeC).CreateXMLNode()

		require.NoError(t, err)
		assert.NotNil(t, doc.FindElement("/AuditFile/SourceDocuments/MovementOfGoods"))
		assert.NotNil(t, doc.FindElement("/AuditFile/SourceDocuments/Payments"))
	})

	t.Run("Given a simplified export When it is written Then only SalesInvoices is present", func(t *testing.T) {
		doc, err := newFile(enum.ExportTypeS).CreateXMLNode()

		require.NoError(t, err)
		assert.NotNil(t, doc.FindElement("/AuditFile/SourceDocuments/SalesInvoices"))
		assert.Nil(t, doc.FindElement("/AuditFile/SourceDocuments/MovementOfGoods"))
		assert.Nil(t, doc.FindElement("/AuditFile/SourceDocuments/Payments"))
	})
}

func TestParse(t *testing.T) {
	t.Run("Given another schema version namespace When it is parsed Then a value error is returned", func(t *testing.T) {
		xml := `<AuditFile xmlns="urn:OECD:StandardAuditFile-Tax:PT_1.03_01">` + headerXML("ACME Lda") + `<MasterFiles/></AuditFile>`

		_, err := auditfile.Parse(strings.NewReader(xml), nil)

		var valueErr *saft.ValueError
		require.ErrorAs(t, err, &valueErr)
		assert.Equal(t, "AuditFile/@xmlns", valueErr.Element)
		assert.ErrorIs(t, err, saft.ErrFileFormat)
	})

	t.Run("Given text that is not a SAF-T file When it is parsed Then a format error is returned", func(t *testing.T) {
		_, err := auditfile.Parse(strings.NewReader("<Invoice/>"), nil)

		assert.ErrorIs(t, err, saft.ErrFileFormat)
	})

	t.Run("Given a file without MasterFiles When it is parsed Then the element is reported missing", func(t *testing.T) {
		xml := `<AuditFile xmlns="` + saft.Namespace + `">` + headerXML("ACME Lda") + `</AuditFile>`

		_, err := auditfile.Parse(strings.NewReader(xml), nil)

		var missing *saft.MissingElementError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "MasterFiles", missing.Element)
	})

	t.Run("Given a Windows-1252 file When it is parsed Then text is decoded", func(t *testing.T) {
		xml := `<?xml version="1.0" encoding="windows-1252"?>` +
			`<AuditFile xmlns="` + saft.Namespace + `">` + headerXML("Constru\xe7\xf5es Lda") + `<MasterFiles/></AuditFile>`

		a, err := auditfile.Parse(strings.NewReader(xml), nil)

		require.NoError(t, err)
		assert.Equal(t, "Construções Lda", a.Header().CompanyName())
	})

	t.Run("Given an older AuditFileVersion When it is parsed Then the value is kept and registered", func(t *testing.T) {
		xml := `<AuditFile xmlns="` + saft.Namespace + `">` +
			strings.Replace(headerXML("ACME Lda"), "1.04_01", "1.03_01", 1) + `<MasterFiles/></AuditFile>`

		a, err := auditfile.Parse(strings.NewReader(xml), nil)

		require.NoError(t, err)
		assert.Equal(t, "1.03_01", a.Header().AuditFileVersion())
		assert.True(t, a.ErrorRegister().Contains("AuditFileVersion_not_valid"))
	})
}

func TestHeader(t *testing.T) {
	t.Run("Given a NIF with a wrong check digit When it is set Then it is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		h := auditfile.NewHeader(reg)

		assert.False(t, h.SetTaxRegistrationNumber(123456780))
		assert.Equal(t, 123456780, h.TaxRegistrationNumber())
		assert.Equal(t, []string{"TaxRegistrationNumber_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a start date When an earlier end date is set Then it is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		h := auditfile.NewHeader(reg)
		h.SetStartDate(day(2024, 1, 1))

		assert.False(t, h.SetEndDate(day(2023, 12, 31)))
		assert.True(t, reg.Contains("EndDate_not_valid"))
	})

	t.Run("Given a period When dates are checked Then both bounds are included", func(t *testing.T) {
		h := auditfile.NewHeader(saft.NewErrorRegister())
		h.SetStartDate(day(2024, 1, 1))
		h.SetEndDate(day(2024, 1, 31))

		assert.True(t, h.InPeriod(day(2024, 1, 1)))
		assert.True(t, h.InPeriod(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
		assert.False(t, h.InPeriod(day(2024, 2, 1)))
		assert.False(t, h.InPeriod(day(2023, 12, 31)))
	})

	t.Run("Given an empty header When it is written Then mandatory elements are registered", func(t *testing.T) {
		a := auditfile.New(nil)

		_, err := a.CreateXMLNode()

		require.NoError(t, err)
		codes := a.ErrorRegister().OnCreateXMLNode()
		assert.Contains(t, codes, "CompanyID_not_valid")
		assert.Contains(t, codes, "CompanyAddress_not_valid")
		assert.NotContains(t, codes, "AuditFileVersion_not_valid")
		assert.NotContains(t, codes, "CurrencyCode_not_valid")
	})
}
