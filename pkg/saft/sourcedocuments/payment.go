package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// Payment is a Payments/Payment receipt. Receipts carry no Hash.
type Payment struct {
	documentBase

	reg            *saft.ErrorRegister
	paymentType    saft.Field[enum.PaymentType]
	description    *string
	systemID       *string
	documentStatus *PaymentDocumentStatus
	paymentMethod  []*PaymentMethod
	lines          []*PaymentLine
	documentTotals *PaymentTotals
	withholdingTax []*WithholdingTax
}

// NewPayment returns an empty Payment that reports to reg.
func NewPayment(reg *saft.ErrorRegister) *Payment {
	return &Payment{
		documentBase: documentBase{reg: reg, numberTag: "PaymentRefNo", dateTag: "TransactionDate"},
		reg:          reg,
	}
}

// PaymentRefNo returns the payment ref number.
func (p *Payment) PaymentRefNo() string { return p.number.Get() }
// IsSetPaymentRefNo reports whether PaymentRefNo holds a value.
func (p *Payment) IsSetPaymentRefNo() bool { return p.number.IsSet() }

// SetPaymentRefNo sets "<type> <series>/<number>", up to 60 characters.
func (p *Payment) SetPaymentRefNo(v string) bool {
	return p.setNumber(v)
}

// TransactionDate returns the transaction date.
func (p *Payment) TransactionDate() time.Time { return p.date.Get() }
// IsSetTransactionDate reports whether TransactionDate holds a value.
func (p *Payment) IsSetTransactionDate() bool { return p.date.IsSet() }

// SetTransactionDate sets the transaction date.
func (p *Payment) SetTransactionDate(v time.Time) {
	p.date.Set(v)
}

// PaymentType returns the payment type.
func (p *Payment) PaymentType() enum.PaymentType { return p.paymentType.Get() }
// IsSetPaymentType reports whether PaymentType holds a value.
func (p *Payment) IsSetPaymentType() bool { return p.paymentType.IsSet() }

// SetPaymentType sets the payment type.
func (p *Payment) SetPaymentType(v enum.PaymentType) bool {
	return saft.SetCode(p.reg, &p.paymentType, "PaymentType", v)
}

// Description returns the description or nil.
func (p *Payment) Description() *string { return p.description }

// SetDescription sets the receipt description, 1 to 200 characters.
func (p *Payment) SetDescription(v *string) bool {
	return saft.SetOptText(p.reg, &p.description, saft.TextMax200, "Description", v)
}

// SystemID returns the system ID, nil when absent.
func (p *Payment) SystemID() *string { return p.systemID }

// SetSystemID sets the number given by the issuing system when it differs
// from PaymentRefNo, 1 to 60 characters.
func (p *Payment) SetSystemID(v *string) bool {
	return saft.SetOptText(p.reg, &p.systemID, saft.TextMax60, "SystemID", v)
}

// DocumentStatus returns the document status or nil.
func (p *Payment) DocumentStatus() *PaymentDocumentStatus { return p.documentStatus }

// NewDocumentStatus creates the DocumentStatus, replacing any previous one.
func (p *Payment) NewDocumentStatus() *PaymentDocumentStatus {
	p.documentStatus = NewPaymentDocumentStatus(p.reg)
	return p.documentStatus
}

// AddPaymentMethod appends a new PaymentMethod and returns it.
func (p *Payment) AddPaymentMethod() *PaymentMethod {
	m := NewPaymentMethod(p.reg)
	p.paymentMethod = append(p.paymentMethod, m)
	return m
}

// PaymentMethod returns the payment method entries in document order.
func (p *Payment) PaymentMethod() []*PaymentMethod { return p.paymentMethod }

// AddLine appends a new line and returns it.
func (p *Payment) AddLine() *PaymentLine {
	l := NewPaymentLine(p.reg)
	p.lines = append(p.lines, l)
	return l
}

// Lines returns the document lines in order.
func (p *Payment) Lines() []*PaymentLine { return p.lines }

// DocumentTotals returns the document totals, nil when absent.
func (p *Payment) DocumentTotals() *PaymentTotals { return p.documentTotals }

// NewDocumentTotals creates the DocumentTotals, replacing any previous one.
func (p *Payment) NewDocumentTotals() *PaymentTotals {
	p.documentTotals = NewPaymentTotals(p.reg)
	return p.documentTotals
}

// AddWithholdingTax appends a new WithholdingTax and returns it.
func (p *Payment) AddWithholdingTax() *WithholdingTax {
	w := NewWithholdingTax(p.reg)
	p.withholdingTax = append(p.withholdingTax, w)
	return w
}

// WithholdingTax returns the withholding tax list.
func (p *Payment) WithholdingTax() []*WithholdingTax { return p.withholdingTax }

// CalcTotals computes the totals of the receipt lines.
func (p *Payment) CalcTotals() *DocTotalCalc {
	return CalcTotals(calcLines(p.lines))
}

// CreateXMLNode appends the Payment element to parent.
func (p *Payment) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Payments"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Payment")
	p.writeNumber(node)
	p.writeATCUD(node)
	p.writePeriod(node)
	p.writeTransactionID(node)
	p.writeDate(node)
	saft.WriteCode(p.reg, node, "PaymentType", p.paymentType)
	saft.WriteOptText(node, "Description", p.description)
	saft.WriteOptText(node, "SystemID", p.systemID)
	if err := writeRequired(p.reg, node, "DocumentStatus", p.documentStatus, p.documentStatus != nil); err != nil {
		return nil, err
	}
	for _, m := range p.paymentMethod {
		if _, err := m.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	p.writeSource(node)
	p.writeSystemEntryDate(node)
	p.writeCustomerID(node)
	if len(p.lines) == 0 {
		saft.AddEmpty(node, "Line")
		p.reg.AddOnCreateXMLNode(saft.NotValid("Line"))
	}
	for _, l := range p.lines {
		if _, err := l.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if err := writeRequired(p.reg, node, "DocumentTotals", p.documentTotals, p.documentTotals != nil); err != nil {
		return nil, err
	}
	for _, w := range p.withholdingTax {
		if _, err := w.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode fills the value from a Payment element.
func (p *Payment) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Payment"); err != nil {
		return err
	}
	if err := p.documentBase.parse(node); err != nil {
		return err
	}
	if err := p.parseCustomerID(node); err != nil {
		return err
	}
	paymentType, err := saft.RequiredCode(node, "PaymentType", enum.NewPaymentType)
	if err != nil {
		return err
	}
	p.SetPaymentType(paymentType)
	p.SetDescription(saft.OptionalText(node, "Description"))
	p.SetSystemID(saft.OptionalText(node, "SystemID"))
	status, err := saft.RequiredChild(node, "DocumentStatus")
	if err != nil {
		return err
	}
	if err := p.NewDocumentStatus().ParseXMLNode(status); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "PaymentMethod") {
		if err := p.AddPaymentMethod().ParseXMLNode(child); err != nil {
			return err
		}
	}
	lines := saft.Children(node, "Line")
	if len(lines) == 0 {
		return &saft.MissingElementError{Parent: node.Tag, Element: "Line"}
	}
	for _, child := range lines {
		if err := p.AddLine().ParseXMLNode(child); err != nil {
			return err
		}
	}
	totals, err := saft.RequiredChild(node, "DocumentTotals")
	if err != nil {
		return err
	}
	if err := p.NewDocumentTotals().ParseXMLNode(totals); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "WithholdingTax") {
		if err := p.AddWithholdingTax().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}
