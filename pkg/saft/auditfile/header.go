package auditfile

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// TaxEntityGlobal is the TaxEntity of a file covering the whole company.
const TaxEntityGlobal = "Global"

var (
	companyIDRule = saft.Text{Min: 1, Max: 50, Pattern: saft.CompanyIDPattern}
	productIDRule = saft.Text{Min: 1, Max: 255, Pattern: saft.ProductIDPattern}
	emailRule     = saft.Text{Min: 1, Max: 254, Pattern: saft.EmailPattern}
)

// Header identifies the company, the period and the software that
// produced the file.
type Header struct {
	reg *saft.ErrorRegister

	auditFileVersion          saft.Field[string]
	companyID                 saft.Field[string]
	taxRegistrationNumber     saft.Field[int]
	taxAccountingBasis        saft.Field[enum.TaxAccountingBasis]
	companyName               saft.Field[string]
	businessName              *string
	companyAddress            *saft.Address
	fiscalYear                saft.Field[int]
	startDate                 saft.Field[time.Time]
	endDate                   saft.Field[time.Time]
	currencyCode              saft.Field[enum.CurrencyCode]
	dateCreated               saft.Field[time.Time]
	taxEntity                 saft.Field[string]
	productCompanyTaxID       saft.Field[string]
	softwareCertificateNumber saft.Field[int]
	productID                 saft.Field[string]
	productVersion            saft.Field[string]
	headerComment             *string
	telephone                 *string
	fax                       *string
	email                     *string
	website                   *string
}

// NewHeader creates a header with the audit file version and the currency
// already set, the only values the schema allows for them.
func NewHeader(reg *saft.ErrorRegister) *Header {
	h := &Header{reg: reg}
	h.auditFileVersion.Set(saft.AuditFileVersion)
	h.currencyCode.Set(enum.CurrencyCodeEUR)
	return h
}

// AuditFileVersion returns the audit file version.
func (h *Header) AuditFileVersion() string { return h.auditFileVersion.Get() }

func (h *Header) setAuditFileVersion(v string) bool {
	h.auditFileVersion.Set(v)
	if v != saft.AuditFileVersion {
		h.reg.AddOnSetValue(saft.NotValid("AuditFileVersion"))
		return false
	}
	return true
}

// CompanyID returns the company ID.
func (h *Header) CompanyID() string { return h.companyID.Get() }
// IsSetCompanyID reports whether CompanyID holds a value.
func (h *Header) IsSetCompanyID() bool { return h.companyID.IsSet() }

// SetCompanyID sets the commercial registry number, "<office> <number>",
// or the tax number when there is no registry.
func (h *Header) SetCompanyID(v string) bool {
	return saft.SetText(h.reg, &h.companyID, companyIDRule, "CompanyID", v)
}

// TaxRegistrationNumber returns the tax registration number.
func (h *Header) TaxRegistrationNumber() int { return h.taxRegistrationNumber.Get() }
// IsSetTaxRegistrationNumber reports whether TaxRegistrationNumber holds a value.
func (h *Header) IsSetTaxRegistrationNumber() bool { return h.taxRegistrationNumber.IsSet() }

// SetTaxRegistrationNumber sets the company NIF. The check digit is
// verified.
func (h *Header) SetTaxRegistrationNumber(v int) bool {
	h.taxRegistrationNumber.Set(v)
	if !saft.ValidNIF(v) {
		h.reg.AddOnSetValue(saft.NotValid("TaxRegistrationNumber"))
		return false
	}
	return true
}

// TaxAccountingBasis returns the tax accounting basis.
func (h *Header) TaxAccountingBasis() enum.TaxAccountingBasis { return h.taxAccountingBasis.Get() }
// IsSetTaxAccountingBasis reports whether TaxAccountingBasis is set.
func (h *Header) IsSetTaxAccountingBasis() bool { return h.taxAccountingBasis.IsSet() }

// SetTaxAccountingBasis stores the tax accounting basis.
func (h *Header) SetTaxAccountingBasis(v enum.TaxAccountingBasis) bool {
	return saft.SetCode(h.reg, &h.taxAccountingBasis, "TaxAccountingBasis", v)
}

// CompanyName returns the company name.
func (h *Header) CompanyName() string { return h.companyName.Get() }
// IsSetCompanyName reports whether CompanyName is set.
func (h *Header) IsSetCompanyName() bool { return h.companyName.IsSet() }

// SetCompanyName stores the company name.
func (h *Header) SetCompanyName(v string) bool {
	return saft.SetText(h.reg, &h.companyName, saft.TextMax100, "CompanyName", v)
}

// BusinessName returns the business name, nil when absent.
func (h *Header) BusinessName() *string { return h.businessName }

// SetBusinessName sets the business name, or clears it when v is nil.
func (h *Header) SetBusinessName(v *string) bool {
	return saft.SetOptText(h.reg, &h.businessName, saft.TextMax60, "BusinessName", v)
}

// CompanyAddress returns the company address, nil when absent.
func (h *Header) CompanyAddress() *saft.Address { return h.companyAddress }

// NewCompanyAddress creates the company address, replacing any previous
// one. The company is always located in Portugal.
func (h *Header) NewCompanyAddress() *saft.Address {
	h.companyAddress = saft.NewAddressPT(h.reg, "CompanyAddress")
	return h.companyAddress
}

// FiscalYear returns the fiscal year, zero when unset.
func (h *Header) FiscalYear() int { return h.fiscalYear.Get() }
// IsSetFiscalYear reports whether FiscalYear is set.
func (h *Header) IsSetFiscalYear() bool { return h.fiscalYear.IsSet() }

// SetFiscalYear stores the fiscal year.
func (h *Header) SetFiscalYear(v int) bool {
	return saft.SetInt(h.reg, &h.fiscalYear, "FiscalYear", v, 2000, 9999)
}

// StartDate returns the start date.
func (h *Header) StartDate() time.Time { return h.startDate.Get() }
// IsSetStartDate reports whether StartDate holds a value.
func (h *Header) IsSetStartDate() bool { return h.startDate.IsSet() }

// SetStartDate sets the start date.
func (h *Header) SetStartDate(v time.Time) {
	h.startDate.Set(v)
}

// EndDate returns the end date, zero when unset.
func (h *Header) EndDate() time.Time { return h.endDate.Get() }
// IsSetEndDate reports whether EndDate is set.
func (h *Header) IsSetEndDate() bool { return h.endDate.IsSet() }

// SetEndDate sets the last day covered. It must not precede the start
// date when that is set.
func (h *Header) SetEndDate(v time.Time) bool {
	h.endDate.Set(v)
	if h.startDate.IsSet() && v.Before(h.startDate.Get()) {
		h.reg.AddOnSetValue(saft.NotValid("EndDate"))
		return false
	}
	return true
}

// CurrencyCode returns the currency code.
func (h *Header) CurrencyCode() enum.CurrencyCode { return h.currencyCode.Get() }

func (h *Header) setCurrencyCode(v enum.CurrencyCode) bool {
	h.currencyCode.Set(v)
	if v != enum.CurrencyCodeEUR {
		h.reg.AddOnSetValue(saft.NotValid("CurrencyCode"))
		return false
	}
	return true
}

// DateCreated returns the date created, zero when unset.
func (h *Header) DateCreated() time.Time { return h.dateCreated.Get() }
// IsSetDateCreated reports whether DateCreated is set.
func (h *Header) IsSetDateCreated() bool { return h.dateCreated.IsSet() }

// SetDateCreated stores the date created.
func (h *Header) SetDateCreated(v time.Time) {
	h.dateCreated.Set(v)
}

// TaxEntity returns the tax entity.
func (h *Header) TaxEntity() string { return h.taxEntity.Get() }
// IsSetTaxEntity reports whether TaxEntity is set.
func (h *Header) IsSetTaxEntity() bool { return h.taxEntity.IsSet() }

// SetTaxEntity sets TaxEntityGlobal, "Sede" or the establishment the
// file covers. 1 to 20 characters.
func (h *Header) SetTaxEntity(v string) bool {
	return saft.SetText(h.reg, &h.taxEntity, saft.TextMax20, "TaxEntity", v)
}

// ProductCompanyTaxID returns the product company tax ID.
func (h *Header) ProductCompanyTaxID() string { return h.productCompanyTaxID.Get() }
// IsSetProductCompanyTaxID reports whether ProductCompanyTaxID holds a value.
func (h *Header) IsSetProductCompanyTaxID() bool { return h.productCompanyTaxID.IsSet() }

// SetProductCompanyTaxID sets the NIF of the software producer.
func (h *Header) SetProductCompanyTaxID(v string) bool {
	return saft.SetText(h.reg, &h.productCompanyTaxID, saft.TextMax30, "ProductCompanyTaxID", v)
}

// SoftwareCertificateNumber returns the software certificate number.
func (h *Header) SoftwareCertificateNumber() int { return h.softwareCertificateNumber.Get() }
// IsSetSoftwareCertificateNumber reports whether SoftwareCertificateNumber holds a value.
func (h *Header) IsSetSoftwareCertificateNumber() bool { return h.softwareCertificateNumber.IsSet() }

// SetSoftwareCertificateNumber sets the certificate number, 0 when the
// software is not certified.
func (h *Header) SetSoftwareCertificateNumber(v int) bool {
	return saft.SetInt(h.reg, &h.softwareCertificateNumber, "SoftwareCertificateNumber", v, 0, 1<<31-1)
}

// ProductID returns the product ID.
func (h *Header) ProductID() string { return h.productID.Get() }
// IsSetProductID reports whether ProductID is set.
func (h *Header) IsSetProductID() bool { return h.productID.IsSet() }

// SetProductID sets "<product name>/<producer name>".
func (h *Header) SetProductID(v string) bool {
	return saft.SetText(h.reg, &h.productID, productIDRule, "ProductID", v)
}

// ProductVersion returns the product version.
func (h *Header) ProductVersion() string { return h.productVersion.Get() }
// IsSetProductVersion reports whether ProductVersion holds a value.
func (h *Header) IsSetProductVersion() bool { return h.productVersion.IsSet() }

// SetProductVersion sets the product version.
func (h *Header) SetProductVersion(v string) bool {
	return saft.SetText(h.reg, &h.productVersion, saft.TextMax30, "ProductVersion", v)
}

// HeaderComment returns the header comment or nil.
func (h *Header) HeaderComment() *string { return h.headerComment }

// SetHeaderComment sets the header comment; nil clears it.
func (h *Header) SetHeaderComment(v *string) bool {
	return saft.SetOptText(h.reg, &h.headerComment, saft.TextMax255, "HeaderComment", v)
}

// Telephone returns the telephone or nil.
func (h *Header) Telephone() *string { return h.telephone }

// SetTelephone sets the telephone; nil clears it.
func (h *Header) SetTelephone(v *string) bool {
	return saft.SetOptText(h.reg, &h.telephone, saft.TextMax20, "Telephone", v)
}

// Fax returns the fax or nil.
func (h *Header) Fax() *string { return h.fax }

// SetFax sets the fax; nil clears it.
func (h *Header) SetFax(v *string) bool {
	return saft.SetOptText(h.reg, &h.fax, saft.TextMax20, "Fax", v)
}

// Email returns the email or nil.
func (h *Header) Email() *string { return h.email }

// SetEmail sets the email; nil clears it.
func (h *Header) SetEmail(v *string) bool {
	return saft.SetOptText(h.reg, &h.email, emailRule, "Email", v)
}

// Website returns the website or nil.
func (h *Header) Website() *string { return h.website }

// SetWebsite sets the website; nil clears it.
func (h *Header) SetWebsite(v *string) bool {
	return saft.SetOptText(h.reg, &h.website, saft.TextMax60, "Website", v)
}

// InPeriod reports whether t falls within StartDate..EndDate, both days
// included. It is true when either bound is unset.
func (h *Header) InPeriod(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	if h.startDate.IsSet() && day.Before(h.startDate.Get()) {
		return false
	}
	if h.endDate.IsSet() && day.After(h.endDate.Get()) {
		return false
	}
	return true
}

// CreateXMLNode writes the Header element under parent and returns it.
func (h *Header) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "AuditFile"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Header")
	saft.WriteText(h.reg, node, "AuditFileVersion", h.auditFileVersion)
	saft.WriteText(h.reg, node, "CompanyID", h.companyID)
	saft.WriteInt(h.reg, node, "TaxRegistrationNumber", h.taxRegistrationNumber)
	saft.WriteCode(h.reg, node, "TaxAccountingBasis", h.taxAccountingBasis)
	saft.WriteText(h.reg, node, "CompanyName", h.companyName)
	saft.WriteOptText(node, "BusinessName", h.businessName)
	if h.companyAddress == nil {
		saft.AddEmpty(node, "CompanyAddress")
		h.reg.AddOnCreateXMLNode(saft.NotValid("CompanyAddress"))
	} else if _, err := h.companyAddress.CreateXMLNode(node); err != nil {
		return nil, err
	}
	saft.WriteInt(h.reg, node, "FiscalYear", h.fiscalYear)
	saft.WriteDate(h.reg, node, "StartDate", h.startDate)
	saft.WriteDate(h.reg, node, "EndDate", h.endDate)
	saft.WriteCode(h.reg, node, "CurrencyCode", h.currencyCode)
	saft.WriteDate(h.reg, node, "DateCreated", h.dateCreated)
	saft.WriteText(h.reg, node, "TaxEntity", h.taxEntity)
	saft.WriteText(h.reg, node, "ProductCompanyTaxID", h.productCompanyTaxID)
	saft.WriteInt(h.reg, node, "SoftwareCertificateNumber", h.softwareCertificateNumber)
	saft.WriteText(h.reg, node, "ProductID", h.productID)
	saft.WriteText(h.reg, node, "ProductVersion", h.productVersion)
	saft.WriteOptText(node, "HeaderComment", h.headerComment)
	saft.WriteOptText(node, "Telephone", h.telephone)
	saft.WriteOptText(node, "Fax", h.fax)
	saft.WriteOptText(node, "Email", h.email)
	saft.WriteOptText(node, "Website", h.website)
	return node, nil
}

// ParseXMLNode reads a Header element.
func (h *Header) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Header"); err != nil {
		return err
	}
	version, err := saft.RequiredText(node, "AuditFileVersion")
	if err != nil {
		return err
	}
	h.setAuditFileVersion(version)
	companyID, err := saft.RequiredText(node, "CompanyID")
	if err != nil {
		return err
	}
	h.SetCompanyID(companyID)
	nif, err := saft.RequiredInt(node, "TaxRegistrationNumber")
	if err != nil {
		return err
	}
	h.SetTaxRegistrationNumber(nif)
	basis, err := saft.RequiredCode(node, "TaxAccountingBasis", enum.NewTaxAccountingBasis)
	if err != nil {
		return err
	}
	h.SetTaxAccountingBasis(basis)
	name, err := saft.RequiredText(node, "CompanyName")
	if err != nil {
		return err
	}
	h.SetCompanyName(name)
	h.SetBusinessName(saft.OptionalText(node, "BusinessName"))
	address, err := saft.RequiredChild(node, "CompanyAddress")
	if err != nil {
		return err
	}
	if err := h.NewCompanyAddress().ParseXMLNode(address); err != nil {
		return err
	}
	year, err := saft.RequiredInt(node, "FiscalYear")
	if err != nil {
		return err
	}
	h.SetFiscalYear(year)
	start, err := saft.RequiredDate(node, "StartDate")
	if err != nil {
		return err
	}
	h.SetStartDate(start)
	end, err := saft.RequiredDate(node, "EndDate")
	if err != nil {
		return err
	}
	h.SetEndDate(end)
	currency, err := saft.RequiredCode(node, "CurrencyCode", enum.NewCurrencyCode)
	if err != nil {
		return err
	}
	h.setCurrencyCode(currency)
	created, err := saft.RequiredDate(node, "DateCreated")
	if err != nil {
		return err
	}
	h.SetDateCreated(created)
	entity, err := saft.RequiredText(node, "TaxEntity")
	if err != nil {
		return err
	}
	h.SetTaxEntity(entity)
	producerNIF, err := saft.RequiredText(node, "ProductCompanyTaxID")
	if err != nil {
		return err
	}
	h.SetProductCompanyTaxID(producerNIF)
	certificate, err := saft.RequiredInt(node, "SoftwareCertificateNumber")
	if err != nil {
		return err
	}
	h.SetSoftwareCertificateNumber(certificate)
	productID, err := saft.RequiredText(node, "ProductID")
	if err != nil {
		return err
	}
	h.SetProductID(productID)
	productVersion, err := saft.RequiredText(node, "ProductVersion")
	if err != nil {
		return err
	}
	h.SetProductVersion(productVersion)
	h.SetHeaderComment(saft.OptionalText(node, "HeaderComment"))
	h.SetTelephone(saft.OptionalText(node, "Telephone"))
	h.SetFax(saft.OptionalText(node, "Fax"))
	h.SetEmail(saft.OptionalText(node, "Email"))
	h.SetWebsite(saft.OptionalText(node, "Website"))
	return nil
}

// NIF returns the tax registration number as the nine digit string used
// in document references.
func (h *Header) NIF() string {
	return strconv.Itoa(h.taxRegistrationNumber.Get())
}
