package sourcedocuments

import (
	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
)

// =============================================================================
// INVOICE LINE
// =============================================================================

// InvoiceLine is a Line of a SalesInvoices/Invoice.
type InvoiceLine struct {
	lineBase
	productLine
	invoiceWorkLine

	reg *saft.ErrorRegister
	tax *Tax
}

// NewInvoiceLine creates an InvoiceLine bound to reg.
func NewInvoiceLine(reg *saft.ErrorRegister) *InvoiceLine {
	return &InvoiceLine{
		lineBase:        lineBase{reg: reg},
		productLine:     productLine{reg: reg},
		invoiceWorkLine: invoiceWorkLine{reg: reg},
		reg:             reg,
	}
}

// Tax returns the tax, nil when absent.
func (l *InvoiceLine) Tax() *Tax { return l.tax }

// NewTax creates the Tax of the line, replacing any previous one.
func (l *InvoiceLine) NewTax() *Tax {
	l.tax = NewTax(l.reg)
	return l.tax
}

// CreateXMLNode writes the Line element under parent and returns it.
func (l *InvoiceLine) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Invoice"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Line")
	l.writeLineNumber(node)
	if err := l.writeProduct(node); err != nil {
		return nil, err
	}
	if err := l.invoiceWorkLine.write(node); err != nil {
		return nil, err
	}
	if err := l.writeDescription(node); err != nil {
		return nil, err
	}
	l.writeAmount(node)
	if err := writeLineTax(l.reg, node, l.tax); err != nil {
		return nil, err
	}
	l.writeExemption(node)
	l.writeSettlementAmount(node)
	if err := l.writeCustoms(node); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseXMLNode reads a Line element.
func (l *InvoiceLine) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Line"); err != nil {
		return err
	}
	if err := l.lineBase.parse(node); err != nil {
		return err
	}
	if err := l.productLine.parse(node); err != nil {
		return err
	}
	if err := l.invoiceWorkLine.parse(node); err != nil {
		return err
	}
	child, err := saft.RequiredChild(node, "Tax")
	if err != nil {
		return err
	}
	return l.NewTax().ParseXMLNode(child)
}

// CalcLine returns the figures used by the totals calculation.
func (l *InvoiceLine) CalcLine() CalcLine {
	return calcLineWithTax(&l.lineBase, l.invoiceWorkLine.taxBase, l.tax)
}

// =============================================================================
// WORK DOCUMENT LINE
// =============================================================================

// WorkDocumentLine is a Line of a WorkingDocuments/WorkDocument.
type WorkDocumentLine struct {
	lineBase
	productLine
	invoiceWorkLine

	reg *saft.ErrorRegister
	tax *Tax
}

// NewWorkDocumentLine creates a WorkDocumentLine bound to reg.
func NewWorkDocumentLine(reg *saft.ErrorRegister) *WorkDocumentLine {
	return &WorkDocumentLine{
		lineBase:        lineBase{reg: reg},
		productLine:     productLine{reg: reg},
		invoiceWorkLine: invoiceWorkLine{reg: reg},
		reg:             reg,
	}
}

// Tax returns the tax, nil when absent.
func (l *WorkDocumentLine) Tax() *Tax { return l.tax }

// NewTax creates the Tax of the line, replacing any previous one.
func (l *WorkDocumentLine) NewTax() *Tax {
	l.tax = NewTax(l.reg)
	return l.tax
}

// CreateXMLNode writes the Line element under parent and returns it.
func (l *WorkDocumentLine) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "WorkDocument"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Line")
	l.writeLineNumber(node)
	if err := l.writeProduct(node); err != nil {
		return nil, err
	}
	if err := l.invoiceWorkLine.write(node); err != nil {
		return nil, err
	}
	if err := l.writeDescription(node); err != nil {
		return nil, err
	}
	l.writeAmount(node)
	if err := writeLineTax(l.reg, node, l.tax); err != nil {
		return nil, err
	}
	l.writeExemption(node)
	l.writeSettlementAmount(node)
	if err := l.writeCustoms(node); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseXMLNode reads a Line element.
func (l *WorkDocumentLine) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Line"); err != nil {
		return err
	}
	if err := l.lineBase.parse(node); err != nil {
		return err
	}
	if err := l.productLine.parse(node); err != nil {
		return err
	}
	if err := l.invoiceWorkLine.parse(node); err != nil {
		return err
	}
	child, err := saft.RequiredChild(node, "Tax")
	if err != nil {
		return err
	}
	return l.NewTax().ParseXMLNode(child)
}

// CalcLine returns the figures used by the totals calculation.
func (l *WorkDocumentLine) CalcLine() CalcLine {
	return calcLineWithTax(&l.lineBase, l.invoiceWorkLine.taxBase, l.tax)
}

// =============================================================================
// STOCK MOVEMENT LINE
// =============================================================================

// StockMovementLine is a Line of a MovementOfGoods/StockMovement. Its tax
// is optional.
type StockMovementLine struct {
	lineBase
	productLine

	reg *saft.ErrorRegister
	tax *MovementTax
}

// NewStockMovementLine creates a StockMovementLine bound to reg.
func NewStockMovementLine(reg *saft.ErrorRegister) *StockMovementLine {
	return &StockMovementLine{
		lineBase:    lineBase{reg: reg},
		productLine: productLine{reg: reg},
		reg:         reg,
	}
}

// Tax returns the tax, nil when absent.
func (l *StockMovementLine) Tax() *MovementTax { return l.tax }

// NewTax creates the Tax of the line, replacing any previous one.
func (l *StockMovementLine) NewTax() *MovementTax {
	l.tax = NewMovementTax(l.reg)
	return l.tax
}

// RemoveTax drops the optional Tax.
func (l *StockMovementLine) RemoveTax() {
	l.tax = nil
}

// CreateXMLNode writes the Line element under parent and returns it.
func (l *StockMovementLine) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "StockMovement"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Line")
	l.writeLineNumber(node)
	if err := l.writeProduct(node); err != nil {
		return nil, err
	}
	if err := l.writeDescription(node); err != nil {
		return nil, err
	}
	l.writeAmount(node)
	if l.tax != nil {
		if _, err := l.tax.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	l.writeExemption(node)
	l.writeSettlementAmount(node)
	if err := l.writeCustoms(node); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseXMLNode reads a Line element.
func (l *StockMovementLine) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Line"); err != nil {
		return err
	}
	if err := l.lineBase.parse(node); err != nil {
		return err
	}
	if err := l.productLine.parse(node); err != nil {
		return err
	}
	if child := saft.Child(node, "Tax"); child != nil {
		return l.NewTax().ParseXMLNode(child)
	}
	return nil
}

// CalcLine returns the figures used by the totals calculation.
func (l *StockMovementLine) CalcLine() CalcLine {
	c := CalcLine{Amount: l.Amount(), Credit: l.creditAmount != nil}
	if l.tax != nil {
		pct := l.tax.TaxPercentage()
		c.Tax = &CalcTax{
			TaxType:          string(l.tax.TaxType()),
			TaxCountryRegion: string(l.tax.TaxCountryRegion()),
			TaxCode:          l.tax.TaxCode(),
			TaxPercentage:    &pct,
		}
	}
	return c
}

// =============================================================================
// PAYMENT LINE
// =============================================================================

// PaymentLine is a Line of a Payments/Payment. It settles one or more
// source documents and has no product part.
type PaymentLine struct {
	lineBase

	reg              *saft.ErrorRegister
	sourceDocumentID []*SourceDocumentID
	tax              *Tax
}

// NewPaymentLine creates a PaymentLine bound to reg.
func NewPaymentLine(reg *saft.ErrorRegister) *PaymentLine {
	return &PaymentLine{lineBase: lineBase{reg: reg}, reg: reg}
}

// AddSourceDocumentID appends a new SourceDocumentID and returns it.
func (l *PaymentLine) AddSourceDocumentID() *SourceDocumentID {
	s := NewSourceDocumentID(l.reg)
	l.sourceDocumentID = append(l.sourceDocumentID, s)
	return s
}

// SourceDocumentID returns the source document ID entries in document order.
func (l *PaymentLine) SourceDocumentID() []*SourceDocumentID { return l.sourceDocumentID }

// Tax returns the tax or nil.
func (l *PaymentLine) Tax() *Tax { return l.tax }

// NewTax creates the Tax of the line, replacing any previous one.
func (l *PaymentLine) NewTax() *Tax {
	l.tax = NewTax(l.reg)
	return l.tax
}

// RemoveTax drops the optional Tax.
func (l *PaymentLine) RemoveTax() {
	l.tax = nil
}

// CreateXMLNode appends the Line element to parent.
func (l *PaymentLine) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Payment"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Line")
	l.writeLineNumber(node)
	if len(l.sourceDocumentID) == 0 {
		saft.AddEmpty(node, "SourceDocumentID")
		l.reg.AddOnCreateXMLNode(saft.NotValid("SourceDocumentID"))
	}
	for _, s := range l.sourceDocumentID {
		if _, err := s.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	l.writeSettlementAmount(node)
	l.writeAmount(node)
	if l.tax != nil {
		if _, err := l.tax.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	l.writeExemption(node)
	return node, nil
}

// ParseXMLNode fills the value from a Line element.
func (l *PaymentLine) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Line"); err != nil {
		return err
	}
	if err := l.lineBase.parse(node); err != nil {
		return err
	}
	sources := saft.Children(node, "SourceDocumentID")
	if len(sources) == 0 {
		return &saft.MissingElementError{Parent: node.Tag, Element: "SourceDocumentID"}
	}
	for _, child := range sources {
		if err := l.AddSourceDocumentID().ParseXMLNode(child); err != nil {
			return err
		}
	}
	if child := saft.Child(node, "Tax"); child != nil {
		return l.NewTax().ParseXMLNode(child)
	}
	return nil
}

// CalcLine returns the figures used by the totals calculation.
func (l *PaymentLine) CalcLine() CalcLine {
	return calcLineWithTax(&l.lineBase, nil, l.tax)
}

// writeLineTax writes the mandatory Tax of invoice and work lines.
func writeLineTax(reg *saft.ErrorRegister, node *etree.Element, tax *Tax) error {
	if tax == nil {
		saft.AddEmpty(node, "Tax")
		reg.AddOnCreateXMLNode(saft.NotValid("Tax"))
		return nil
	}
	_, err := tax.CreateXMLNode(node)
	return err
}
