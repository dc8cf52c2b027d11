package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// Invoice is a SalesInvoices/Invoice document.
type Invoice struct {
	documentBase
	shippingPart

	reg            *saft.ErrorRegister
	documentStatus *InvoiceDocumentStatus
	invoiceType    saft.Field[enum.InvoiceType]
	specialRegimes *SpecialRegimes
	lines          []*InvoiceLine
	documentTotals *InvoiceTotals
	withholdingTax []*WithholdingTax
}

// NewInvoice returns an empty Invoice that reports to reg.
func NewInvoice(reg *saft.ErrorRegister) *Invoice {
	return &Invoice{
		documentBase: documentBase{reg: reg, numberTag: "InvoiceNo", dateTag: "InvoiceDate"},
		shippingPart: shippingPart{reg: reg},
		reg:          reg,
	}
}

// InvoiceNo returns the invoice number.
func (i *Invoice) InvoiceNo() string { return i.number.Get() }
// IsSetInvoiceNo reports whether InvoiceNo holds a value.
func (i *Invoice) IsSetInvoiceNo() bool { return i.number.IsSet() }

// SetInvoiceNo sets "<type> <series>/<number>", up to 60 characters.
func (i *Invoice) SetInvoiceNo(v string) bool {
	return i.setNumber(v)
}

// InvoiceDate returns the invoice date.
func (i *Invoice) InvoiceDate() time.Time { return i.date.Get() }
// IsSetInvoiceDate reports whether InvoiceDate holds a value.
func (i *Invoice) IsSetInvoiceDate() bool { return i.date.IsSet() }

// SetInvoiceDate sets the invoice date.
func (i *Invoice) SetInvoiceDate(v time.Time) {
	i.date.Set(v)
}

// DocumentStatus returns the document status or nil.
func (i *Invoice) DocumentStatus() *InvoiceDocumentStatus { return i.documentStatus }

// NewDocumentStatus creates the DocumentStatus, replacing any previous one.
func (i *Invoice) NewDocumentStatus() *InvoiceDocumentStatus {
	i.documentStatus = NewInvoiceDocumentStatus(i.reg)
	return i.documentStatus
}

// InvoiceType returns the invoice type.
func (i *Invoice) InvoiceType() enum.InvoiceType { return i.invoiceType.Get() }
// IsSetInvoiceType reports whether InvoiceType is set.
func (i *Invoice) IsSetInvoiceType() bool { return i.invoiceType.IsSet() }

// SetInvoiceType stores the invoice type.
func (i *Invoice) SetInvoiceType(v enum.InvoiceType) bool {
	return saft.SetCode(i.reg, &i.invoiceType, "InvoiceType", v)
}

// SpecialRegimes returns the special regimes, nil when absent.
func (i *Invoice) SpecialRegimes() *SpecialRegimes { return i.specialRegimes }

// NewSpecialRegimes creates the SpecialRegimes, replacing any previous one.
func (i *Invoice) NewSpecialRegimes() *SpecialRegimes {
	i.specialRegimes = NewSpecialRegimes(i.reg)
	return i.specialRegimes
}

// AddLine appends a new line and returns it.
func (i *Invoice) AddLine() *InvoiceLine {
	l := NewInvoiceLine(i.reg)
	i.lines = append(i.lines, l)
	return l
}

// Lines returns the document lines in order.
func (i *Invoice) Lines() []*InvoiceLine { return i.lines }

// DocumentTotals returns the document totals, nil when absent.
func (i *Invoice) DocumentTotals() *InvoiceTotals { return i.documentTotals }

// NewDocumentTotals creates the DocumentTotals, replacing any previous one.
func (i *Invoice) NewDocumentTotals() *InvoiceTotals {
	i.documentTotals = NewInvoiceTotals(i.reg)
	return i.documentTotals
}

// AddWithholdingTax appends a new WithholdingTax and returns it.
func (i *Invoice) AddWithholdingTax() *WithholdingTax {
	w := NewWithholdingTax(i.reg)
	i.withholdingTax = append(i.withholdingTax, w)
	return w
}

// WithholdingTax returns the withholding tax list.
func (i *Invoice) WithholdingTax() []*WithholdingTax { return i.withholdingTax }

// CalcTotals computes the totals of the invoice lines.
func (i *Invoice) CalcTotals() *DocTotalCalc {
	return CalcTotals(calcLines(i.lines))
}

// CreateXMLNode appends the Invoice element to parent.
func (i *Invoice) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "SalesInvoices"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Invoice")
	i.writeNumber(node)
	i.writeATCUD(node)
	if err := writeRequired(i.reg, node, "DocumentStatus", i.documentStatus, i.documentStatus != nil); err != nil {
		return nil, err
	}
	i.writeHash(node)
	i.writePeriod(node)
	i.writeDate(node)
	saft.WriteCode(i.reg, node, "InvoiceType", i.invoiceType)
	if err := writeRequired(i.reg, node, "SpecialRegimes", i.specialRegimes, i.specialRegimes != nil); err != nil {
		return nil, err
	}
	i.writeSource(node)
	i.writeEACCode(node)
	i.writeSystemEntryDate(node)
	i.writeTransactionID(node)
	i.writeCustomerID(node)
	if err := i.writeShipping(node); err != nil {
		return nil, err
	}
	saft.WriteOptDateTime(node, "MovementStartTime", i.movementStartTime)
	if len(i.lines) == 0 {
		saft.AddEmpty(node, "Line")
		i.reg.AddOnCreateXMLNode(saft.NotValid("Line"))
	}
	for _, l := range i.lines {
		if _, err := l.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if err := writeRequired(i.reg, node, "DocumentTotals", i.documentTotals, i.documentTotals != nil); err != nil {
		return nil, err
	}
	for _, w := range i.withholdingTax {
		if _, err := w.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode fills the value from an Invoice element.
func (i *Invoice) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Invoice"); err != nil {
		return err
	}
	if err := i.documentBase.parse(node); err != nil {
		return err
	}
	if err := i.parseHash(node); err != nil {
		return err
	}
	if err := i.parseCustomerID(node); err != nil {
		return err
	}
	status, err := saft.RequiredChild(node, "DocumentStatus")
	if err != nil {
		return err
	}
	if err := i.NewDocumentStatus().ParseXMLNode(status); err != nil {
		return err
	}
	invoiceType, err := saft.RequiredCode(node, "InvoiceType", enum.NewInvoiceType)
	if err != nil {
		return err
	}
	i.SetInvoiceType(invoiceType)
	regimes, err := saft.RequiredChild(node, "SpecialRegimes")
	if err != nil {
		return err
	}
	if err := i.NewSpecialRegimes().ParseXMLNode(regimes); err != nil {
		return err
	}
	if err := i.shippingPart.parse(node); err != nil {
		return err
	}
	lines := saft.Children(node, "Line")
	if len(lines) == 0 {
		return &saft.MissingElementError{Parent: node.Tag, Element: "Line"}
	}
	for _, child := range lines {
		if err := i.AddLine().ParseXMLNode(child); err != nil {
			return err
		}
	}
	totals, err := saft.RequiredChild(node, "DocumentTotals")
	if err != nil {
		return err
	}
	if err := i.NewDocumentTotals().ParseXMLNode(totals); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "WithholdingTax") {
		if err := i.AddWithholdingTax().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}

// xmlNode is implemented by every element that appends itself to a parent.
type xmlNode interface {
	CreateXMLNode(parent *etree.Element) (*etree.Element, error)
}

// writeRequired writes a mandatory child element, or an empty one plus a
// create error when it is absent.
func writeRequired(reg *saft.ErrorRegister, node *etree.Element, tag string, child xmlNode, present bool) error {
	if !present {
		saft.AddEmpty(node, tag)
		reg.AddOnCreateXMLNode(saft.NotValid(tag))
		return nil
	}
	_, err := child.CreateXMLNode(node)
	return err
}
