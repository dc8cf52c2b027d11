// =============================================================================
// Source Documents - Value Structures
// =============================================================================
//
// Small structures that hold a handful of scalars and no nested structure:
// Currency, CustomsInformation, OrderReferences, References,
// ProductSerialNumber, SpecialRegimes and SourceDocumentID.
//
// Each one is created with the ErrorRegister of the file it belongs to and
// follows the same shape:
//   - SetX validates, stores and registers (see saft.SetText and friends)
//   - CreateXMLNode(parent) checks the parent name and appends itself
//   - ParseXMLNode(node) checks its own name and reads its children
//
// =============================================================================

package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// =============================================================================
// CURRENCY
// =============================================================================

// Currency holds the amount of a document in a foreign currency.
type Currency struct {
	reg *saft.ErrorRegister

	currencyCode   saft.Field[enum.CurrencyCode]
	currencyAmount saft.Field[decimal.Decimal]
	exchangeRate   saft.Field[decimal.Decimal]
}

// NewCurrency returns an empty Currency that reports to reg.
func NewCurrency(reg *saft.ErrorRegister) *Currency {
	return &Currency{reg: reg}
}

// CurrencyCode returns the currency code.
func (c *Currency) CurrencyCode() enum.CurrencyCode { return c.currencyCode.Get() }
// IsSetCurrencyCode reports whether CurrencyCode holds a value.
func (c *Currency) IsSetCurrencyCode() bool { return c.currencyCode.IsSet() }

// SetCurrencyCode sets the ISO 4217 code. EUR is not allowed here since
// the element only exists for documents in a foreign currency.
func (c *Currency) SetCurrencyCode(v enum.CurrencyCode) bool {
	if v == enum.CurrencyCodeEUR {
		c.currencyCode.Set(v)
		c.reg.AddOnSetValue(saft.NotValid("CurrencyCode"))
		return false
	}
	return saft.SetCode(c.reg, &c.currencyCode, "CurrencyCode", v)
}

// CurrencyAmount returns the currency amount.
func (c *Currency) CurrencyAmount() decimal.Decimal { return c.currencyAmount.Get() }
// IsSetCurrencyAmount reports whether CurrencyAmount holds a value.
func (c *Currency) IsSetCurrencyAmount() bool { return c.currencyAmount.IsSet() }

// SetCurrencyAmount sets the currency amount.
func (c *Currency) SetCurrencyAmount(v decimal.Decimal) bool {
	return saft.SetDecimal(c.reg, &c.currencyAmount, "CurrencyAmount", v, saft.NonNegative)
}

// ExchangeRate returns the exchange rate, zero when unset.
func (c *Currency) ExchangeRate() decimal.Decimal { return c.exchangeRate.Get() }
// IsSetExchangeRate reports whether ExchangeRate is set.
func (c *Currency) IsSetExchangeRate() bool { return c.exchangeRate.IsSet() }

// SetExchangeRate stores the exchange rate.
func (c *Currency) SetExchangeRate(v decimal.Decimal) bool {
	return saft.SetDecimal(c.reg, &c.exchangeRate, "ExchangeRate", v, saft.NonNegative)
}

// CreateXMLNode appends the Currency element to parent.
func (c *Currency) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "DocumentTotals"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Currency")
	saft.WriteCode(c.reg, node, "CurrencyCode", c.currencyCode)
	saft.WriteDecimal(c.reg, node, "CurrencyAmount", c.currencyAmount)
	saft.WriteDecimal(c.reg, node, "ExchangeRate", c.exchangeRate)
	return node, nil
}

// ParseXMLNode fills the value from a Currency element.
func (c *Currency) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Currency"); err != nil {
		return err
	}
	code, err := saft.RequiredCode(node, "CurrencyCode", enum.NewCurrencyCode)
	if err != nil {
		return err
	}
	c.SetCurrencyCode(code)
	amount, err := saft.RequiredDecimal(node, "CurrencyAmount")
	if err != nil {
		return err
	}
	c.SetCurrencyAmount(amount)
	rate, err := saft.RequiredDecimal(node, "ExchangeRate")
	if err != nil {
		return err
	}
	c.SetExchangeRate(rate)
	return nil
}

// =============================================================================
// CUSTOMS INFORMATION
// =============================================================================

// CustomsInformation holds the excise references of a line.
type CustomsInformation struct {
	reg *saft.ErrorRegister

	arcNo     []string
	iecAmount *decimal.Decimal
}

// NewCustomsInformation returns an empty CustomsInformation that reports to reg.
func NewCustomsInformation(reg *saft.ErrorRegister) *CustomsInformation {
	return &CustomsInformation{reg: reg}
}

// AddARCNo appends an administrative reference code, 1 to 21 characters.
// The value is appended even when it fails validation.
func (c *CustomsInformation) AddARCNo(v string) bool {
	var f saft.Field[string]
	ok := saft.SetText(c.reg, &f, saft.TextMax21, "ARCNo", v)
	c.arcNo = append(c.arcNo, f.Get())
	return ok
}

// ARCNo returns every ARC number in insertion order.
func (c *CustomsInformation) ARCNo() []string { return c.arcNo }

// IECAmount returns the IEC amount or nil.
func (c *CustomsInformation) IECAmount() *decimal.Decimal { return c.iecAmount }

// SetIECAmount sets the IEC amount; nil clears it.
func (c *CustomsInformation) SetIECAmount(v *decimal.Decimal) bool {
	return saft.SetOptDecimal(c.reg, &c.iecAmount, "IECAmount", v, saft.NonNegative)
}

// CreateXMLNode writes the CustomsInformation element under parent and returns it.
func (c *CustomsInformation) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Line"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("CustomsInformation")
	for _, arc := range c.arcNo {
		saft.AddText(node, "ARCNo", arc)
	}
	saft.WriteOptDecimal(node, "IECAmount", c.iecAmount)
	return node, nil
}

// ParseXMLNode reads a CustomsInformation element.
func (c *CustomsInformation) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "CustomsInformation"); err != nil {
		return err
	}
	for _, arc := range saft.Children(node, "ARCNo") {
		c.AddARCNo(arc.Text())
	}
	iec, err := saft.OptionalDecimal(node, "IECAmount")
	if err != nil {
		return err
	}
	c.SetIECAmount(iec)
	return nil
}

// =============================================================================
// ORDER REFERENCES
// =============================================================================

// OrderReferences points a line to the customer order it fulfils.
type OrderReferences struct {
	reg *saft.ErrorRegister

	originatingON *string
	orderDate     *time.Time
}

// NewOrderReferences creates an OrderReferences bound to reg.
func NewOrderReferences(reg *saft.ErrorRegister) *OrderReferences {
	return &OrderReferences{reg: reg}
}

// OriginatingON returns the originating ON, nil when absent.
func (o *OrderReferences) OriginatingON() *string { return o.originatingON }

// SetOriginatingON sets the origin document number, 1 to 60 characters.
func (o *OrderReferences) SetOriginatingON(v *string) bool {
	return saft.SetOptText(o.reg, &o.originatingON, saft.TextMax60, "OriginatingON", v)
}

// OrderDate returns the order date or nil.
func (o *OrderReferences) OrderDate() *time.Time { return o.orderDate }

// SetOrderDate sets the order date; nil clears it.
func (o *OrderReferences) SetOrderDate(v *time.Time) {
	o.orderDate = v
}

// CreateXMLNode writes the OrderReferences element under parent and returns it.
func (o *OrderReferences) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Line"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("OrderReferences")
	saft.WriteOptText(node, "OriginatingON", o.originatingON)
	saft.WriteOptDate(node, "OrderDate", o.orderDate)
	return node, nil
}

// ParseXMLNode reads an OrderReferences element.
func (o *OrderReferences) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "OrderReferences"); err != nil {
		return err
	}
	o.SetOriginatingON(saft.OptionalText(node, "OriginatingON"))
	date, err := saft.OptionalDate(node, "OrderDate")
	if err != nil {
		return err
	}
	o.SetOrderDate(date)
	return nil
}

// =============================================================================
// REFERENCES
// =============================================================================

// References points a credit or debit note line to the document it
// corrects.
type References struct {
	reg *saft.ErrorRegister

	reference *string
	reason    *string
}

// NewReferences creates a References bound to reg.
func NewReferences(reg *saft.ErrorRegister) *References {
	return &References{reg: reg}
}

// Reference returns the reference, nil when absent.
func (r *References) Reference() *string { return r.reference }

// SetReference sets the corrected document number, 1 to 60 characters.
func (r *References) SetReference(v *string) bool {
	return saft.SetOptText(r.reg, &r.reference, saft.TextMax60, "Reference", v)
}

// Reason returns the reason or nil.
func (r *References) Reason() *string { return r.reason }

// SetReason sets the reason of the correction, 1 to 50 characters.
// A failure is registered as ProductCode_not_valid, like
// SetProductDescription on a line.
func (r *References) SetReason(v *string) bool {
	return saft.SetOptText(r.reg, &r.reason, saft.TextMax50, "ProductCode", v)
}

// CreateXMLNode appends the References element to parent.
func (r *References) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Line"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("References")
	saft.WriteOptText(node, "Reference", r.reference)
	saft.WriteOptText(node, "Reason", r.reason)
	return node, nil
}

// ParseXMLNode fills the value from a References element.
func (r *References) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "References"); err != nil {
		return err
	}
	r.SetReference(saft.OptionalText(node, "Reference"))
	r.SetReason(saft.OptionalText(node, "Reason"))
	return nil
}

// =============================================================================
// PRODUCT SERIAL NUMBER
// =============================================================================

// ProductSerialNumber lists the serial numbers of the units on a line.
type ProductSerialNumber struct {
	reg *saft.ErrorRegister

	serialNumber []string
}

// NewProductSerialNumber returns an empty ProductSerialNumber that reports to reg.
func NewProductSerialNumber(reg *saft.ErrorRegister) *ProductSerialNumber {
	return &ProductSerialNumber{reg: reg}
}

// AddSerialNumber appends a serial number, 1 to 100 characters. The value
// is appended even when it fails validation.
func (p *ProductSerialNumber) AddSerialNumber(v string) bool {
	var f saft.Field[string]
	ok := saft.SetText(p.reg, &f, saft.TextMax100, "SerialNumber", v)
	p.serialNumber = append(p.serialNumber, f.Get())
	return ok
}

// SerialNumber returns every serial number in insertion order.
func (p *ProductSerialNumber) SerialNumber() []string { return p.serialNumber }

// CreateXMLNode writes the ProductSerialNumber element under parent and returns it.
func (p *ProductSerialNumber) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Line"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("ProductSerialNumber")
	if len(p.serialNumber) == 0 {
		saft.AddEmpty(node, "SerialNumber")
		p.reg.AddOnCreateXMLNode(saft.NotValid("SerialNumber"))
	}
	for _, sn := range p.serialNumber {
		saft.AddText(node, "SerialNumber", sn)
	}
	return node, nil
}

// ParseXMLNode reads a ProductSerialNumber element.
func (p *ProductSerialNumber) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "ProductSerialNumber"); err != nil {
		return err
	}
	serials := saft.Children(node, "SerialNumber")
	if len(serials) == 0 {
		return &saft.MissingElementError{Parent: node.Tag, Element: "SerialNumber"}
	}
	for _, sn := range serials {
		p.AddSerialNumber(sn.Text())
	}
	return nil
}

// =============================================================================
// SPECIAL REGIMES
// =============================================================================

// SpecialRegimes flags self billing, cash VAT and third party billing of an
// invoice. Each indicator is 0 or 1.
type SpecialRegimes struct {
	reg *saft.ErrorRegister

	selfBillingIndicator         saft.Field[int]
	cashVATSchemeIndicator       saft.Field[int]
	thirdPartiesBillingIndicator saft.Field[int]
}

// NewSpecialRegimes creates a SpecialRegimes bound to reg.
func NewSpecialRegimes(reg *saft.ErrorRegister) *SpecialRegimes {
	return &SpecialRegimes{reg: reg}
}

// SelfBillingIndicator returns the self billing indicator.
func (s *SpecialRegimes) SelfBillingIndicator() int { return s.selfBillingIndicator.Get() }
// IsSetSelfBillingIndicator reports whether SelfBillingIndicator holds a value.
func (s *SpecialRegimes) IsSetSelfBillingIndicator() bool {
	return s.selfBillingIndicator.IsSet()
}

// SetSelfBillingIndicator sets the self billing indicator.
func (s *SpecialRegimes) SetSelfBillingIndicator(v int) bool {
	return saft.SetInt(s.reg, &s.selfBillingIndicator, "SelfBillingIndicator", v, 0, 1)
}

// CashVATSchemeIndicator returns the cash VAT scheme indicator, zero when unset.
func (s *SpecialRegimes) CashVATSchemeIndicator() int { return s.cashVATSchemeIndicator.Get() }
// IsSetCashVATSchemeIndicator reports whether CashVATSchemeIndicator is set.
func (s *SpecialRegimes) IsSetCashVATSchemeIndicator() bool {
	return s.cashVATSchemeIndicator.IsSet()
}

// SetCashVATSchemeIndicator stores the cash VAT scheme indicator.
func (s *SpecialRegimes) SetCashVATSchemeIndicator(v int) bool {
	return saft.SetInt(s.reg, &s.cashVATSchemeIndicator, "CashVATSchemeIndicator", v, 0, 1)
}

// ThirdPartiesBillingIndicator returns the third parties billing indicator.
func (s *SpecialRegimes) ThirdPartiesBillingIndicator() int {
	return s.thirdPartiesBillingIndicator.Get()
}
// IsSetThirdPartiesBillingIndicator reports whether ThirdPartiesBillingIndicator holds a value.
func (s *SpecialRegimes) IsSetThirdPartiesBillingIndicator() bool {
	return s.thirdPartiesBillingIndicator.IsSet()
}

// SetThirdPartiesBillingIndicator sets the third parties billing indicator.
func (s *SpecialRegimes) SetThirdPartiesBillingIndicator(v int) bool {
	return saft.SetInt(s.reg, &s.thirdPartiesBillingIndicator, "ThirdPartiesBillingIndicator", v, 0, 1)
}

// CreateXMLNode writes the SpecialRegimes element under parent and returns it.
func (s *SpecialRegimes) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Invoice"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("SpecialRegimes")
	saft.WriteInt(s.reg, node, "SelfBillingIndicator", s.selfBillingIndicator)
	saft.WriteInt(s.reg, node, "CashVATSchemeIndicator", s.cashVATSchemeIndicator)
	saft.WriteInt(s.reg, node, "ThirdPartiesBillingIndicator", s.thirdPartiesBillingIndicator)
	return node, nil
}

// ParseXMLNode reads a SpecialRegimes element.
func (s *SpecialRegimes) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "SpecialRegimes"); err != nil {
		return err
	}
	self, err := saft.RequiredInt(node, "SelfBillingIndicator")
	if err != nil {
		return err
	}
	s.SetSelfBillingIndicator(self)
	cash, err := saft.RequiredInt(node, "CashVATSchemeIndicator")
	if err != nil {
		return err
	}
	s.SetCashVATSchemeIndicator(cash)
	third, err := saft.RequiredInt(node, "ThirdPartiesBillingIndicator")
	if err != nil {
		return err
	}
	s.SetThirdPartiesBillingIndicator(third)
	return nil
}

// =============================================================================
// SOURCE DOCUMENT ID
// =============================================================================

// SourceDocumentID identifies the invoice settled by a payment line.
type SourceDocumentID struct {
	reg *saft.ErrorRegister

	originatingON saft.Field[string]
	invoiceDate   saft.Field[time.Time]
	description   *string
}

// NewSourceDocumentID creates a SourceDocumentID bound to reg.
func NewSourceDocumentID(reg *saft.ErrorRegister) *SourceDocumentID {
	return &SourceDocumentID{reg: reg}
}

// OriginatingON returns the originating ON.
func (s *SourceDocumentID) OriginatingON() string { return s.originatingON.Get() }
// IsSetOriginatingON reports whether OriginatingON is set.
func (s *SourceDocumentID) IsSetOriginatingON() bool { return s.originatingON.IsSet() }

// SetOriginatingON sets the settled document number, 1 to 60 characters.
func (s *SourceDocumentID) SetOriginatingON(v string) bool {
	return saft.SetText(s.reg, &s.originatingON, saft.TextMax60, "OriginatingON", v)
}

// InvoiceDate returns the invoice date, zero when unset.
func (s *SourceDocumentID) InvoiceDate() time.Time { return s.invoiceDate.Get() }
// IsSetInvoiceDate reports whether InvoiceDate is set.
func (s *SourceDocumentID) IsSetInvoiceDate() bool { return s.invoiceDate.IsSet() }

// SetInvoiceDate stores the invoice date.
func (s *SourceDocumentID) SetInvoiceDate(v time.Time) {
	s.invoiceDate.Set(v)
}

// Description returns the description, nil when absent.
func (s *SourceDocumentID) Description() *string { return s.description }

// SetDescription sets the optional description, 1 to 200 characters.
func (s *SourceDocumentID) SetDescription(v *string) bool {
	return saft.SetOptText(s.reg, &s.description, saft.TextMax200, "Description", v)
}

// CreateXMLNode writes the SourceDocumentID element under parent and returns it.
func (s *SourceDocumentID) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Line"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("SourceDocumentID")
	saft.WriteText(s.reg, node, "OriginatingON", s.originatingON)
	saft.WriteDate(s.reg, node, "InvoiceDate", s.invoiceDate)
	saft.WriteOptText(node, "Description", s.description)
	return node, nil
}

// ParseXMLNode reads a SourceDocumentID element.
func (s *SourceDocumentID) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "SourceDocumentID"); err != nil {
		return err
	}
	on, err := saft.RequiredText(node, "OriginatingON")
	if err != nil {
		return err
	}
	s.SetOriginatingON(on)
	date, err := saft.RequiredDate(node, "InvoiceDate")
	if err != nil {
		return err
	}
	s.SetInvoiceDate(date)
	s.SetDescription(saft.OptionalText(node, "Description"))
	return nil
}
