package sourcedocuments

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
)

// =============================================================================
// TOTALS BASE
// =============================================================================

type totalsBase struct {
	reg *saft.ErrorRegister

	taxPayable saft.Field[decimal.Decimal]
	netTotal   saft.Field[decimal.Decimal]
	grossTotal saft.Field[decimal.Decimal]
	currency   *Currency
}

// TaxPayable returns the tax payable, zero when unset.
func (t *totalsBase) TaxPayable() decimal.Decimal { return t.taxPayable.Get() }
// IsSetTaxPayable reports whether TaxPayable is set.
func (t *totalsBase) IsSetTaxPayable() bool { return t.taxPayable.IsSet() }

// SetTaxPayable stores the tax payable.
func (t *totalsBase) SetTaxPayable(v decimal.Decimal) bool {
	return saft.SetDecimal(t.reg, &t.taxPayable, "TaxPayable", v, saft.NonNegative)
}

// NetTotal returns the net total.
func (t *totalsBase) NetTotal() decimal.Decimal { return t.netTotal.Get() }
// IsSetNetTotal reports whether NetTotal holds a value.
func (t *totalsBase) IsSetNetTotal() bool { return t.netTotal.IsSet() }

// SetNetTotal sets the net total.
func (t *totalsBase) SetNetTotal(v decimal.Decimal) bool {
	return saft.SetDecimal(t.reg, &t.netTotal, "NetTotal", v, saft.NonNegative)
}

// GrossTotal returns the gross total, zero when unset.
func (t *totalsBase) GrossTotal() decimal.Decimal { return t.grossTotal.Get() }
// IsSetGrossTotal reports whether GrossTotal is set.
func (t *totalsBase) IsSetGrossTotal() bool { return t.grossTotal.IsSet() }

// SetGrossTotal stores the gross total.
func (t *totalsBase) SetGrossTotal(v decimal.Decimal) bool {
	return saft.SetDecimal(t.reg, &t.grossTotal, "GrossTotal", v, saft.NonNegative)
}

// Currency returns the foreign currency block, nil for documents in EUR.
func (t *totalsBase) Currency() *Currency { return t.currency }

// NewCurrency creates the foreign currency block, replacing any previous
// one.
func (t *totalsBase) NewCurrency() *Currency {
	t.currency = NewCurrency(t.reg)
	return t.currency
}

// RemoveCurrency drops the foreign currency block.
func (t *totalsBase) RemoveCurrency() {
	t.currency = nil
}

// SetFromCalc copies calculated totals into the element.
func (t *totalsBase) SetFromCalc(calc *DocTotalCalc) {
	t.SetTaxPayable(calc.TaxPayable)
	t.SetNetTotal(calc.NetTotal)
	t.SetGrossTotal(calc.GrossTotal)
}

func (t *totalsBase) writeTotals(node *etree.Element) {
	saft.WriteDecimal(t.reg, node, "TaxPayable", t.taxPayable)
	saft.WriteDecimal(t.reg, node, "NetTotal", t.netTotal)
	saft.WriteDecimal(t.reg, node, "GrossTotal", t.grossTotal)
}

func (t *totalsBase) writeCurrency(node *etree.Element) error {
	if t.currency == nil {
		return nil
	}
	_, err := t.currency.CreateXMLNode(node)
	return err
}

func (t *totalsBase) parse(node *etree.Element) error {
	tax, err := saft.RequiredDecimal(node, "TaxPayable")
	if err != nil {
		return err
	}
	t.SetTaxPayable(tax)
	net, err := saft.RequiredDecimal(node, "NetTotal")
	if err != nil {
		return err
	}
	t.SetNetTotal(net)
	gross, err := saft.RequiredDecimal(node, "GrossTotal")
	if err != nil {
		return err
	}
	t.SetGrossTotal(gross)
	if child := saft.Child(node, "Currency"); child != nil {
		return t.NewCurrency().ParseXMLNode(child)
	}
	return nil
}

// =============================================================================
// DOCUMENT TOTALS (stock movements and working documents)
// =============================================================================

// DocumentTotals is the totals block of a StockMovement or WorkDocument.
type DocumentTotals struct {
	totalsBase
}

// NewDocumentTotals returns an empty DocumentTotals that reports to reg.
func NewDocumentTotals(reg *saft.ErrorRegister) *DocumentTotals {
	return &DocumentTotals{totalsBase{reg: reg}}
}

// CreateXMLNode writes the DocumentTotals element under parent and returns it.
func (t *DocumentTotals) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "StockMovement", "WorkDocument"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("DocumentTotals")
	t.writeTotals(node)
	if err := t.writeCurrency(node); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseXMLNode reads a DocumentTotals element.
func (t *DocumentTotals) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "DocumentTotals"); err != nil {
		return err
	}
	return t.parse(node)
}

// =============================================================================
// INVOICE TOTALS
// =============================================================================

// InvoiceTotals is the totals block of an Invoice. It adds the agreed
// settlements and the means of payment of cash sales.
type InvoiceTotals struct {
	totalsBase

	settlement []*Settlement
	payment    []*PaymentMethod
}

// NewInvoiceTotals creates an InvoiceTotals bound to reg.
func NewInvoiceTotals(reg *saft.ErrorRegister) *InvoiceTotals {
	return &InvoiceTotals{totalsBase: totalsBase{reg: reg}}
}

// AddSettlement appends a new Settlement and returns it.
func (t *InvoiceTotals) AddSettlement() *Settlement {
	s := NewSettlement(t.reg)
	t.settlement = append(t.settlement, s)
	return s
}

// Settlement returns the settlement entries in document order.
func (t *InvoiceTotals) Settlement() []*Settlement { return t.settlement }

// AddPayment appends a new Payment and returns it.
func (t *InvoiceTotals) AddPayment() *PaymentMethod {
	p := NewInvoicePayment(t.reg)
	t.payment = append(t.payment, p)
	return p
}

// Payment returns the payment list.
func (t *InvoiceTotals) Payment() []*PaymentMethod { return t.payment }

// CreateXMLNode appends the DocumentTotals element to parent.
func (t *InvoiceTotals) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Invoice"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("DocumentTotals")
	t.writeTotals(node)
	if err := t.writeCurrency(node); err != nil {
		return nil, err
	}
	for _, s := range t.settlement {
		if _, err := s.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	for _, p := range t.payment {
		if _, err := p.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode fills the value from a DocumentTotals element.
func (t *InvoiceTotals) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "DocumentTotals"); err != nil {
		return err
	}
	if err := t.parse(node); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "Settlement") {
		if err := t.AddSettlement().ParseXMLNode(child); err != nil {
			return err
		}
	}
	for _, child := range saft.Children(node, "Payment") {
		if err := t.AddPayment().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// PAYMENT TOTALS
// =============================================================================

// PaymentTotals is the totals block of a Payment. Its optional Settlement
// comes before Currency.
type PaymentTotals struct {
	totalsBase

	settlement *Settlement
}

// NewPaymentTotals returns an empty PaymentTotals that reports to reg.
func NewPaymentTotals(reg *saft.ErrorRegister) *PaymentTotals {
	return &PaymentTotals{totalsBase: totalsBase{reg: reg}}
}

// Settlement returns the settlement or nil.
func (t *PaymentTotals) Settlement() *Settlement { return t.settlement }

// NewSettlement creates the Settlement, replacing any previous one.
func (t *PaymentTotals) NewSettlement() *Settlement {
	t.settlement = NewSettlement(t.reg)
	return t.settlement
}

// CreateXMLNode appends the DocumentTotals element to parent.
func (t *PaymentTotals) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Payment"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("DocumentTotals")
	t.writeTotals(node)
	if t.settlement != nil {
		if _, err := t.settlement.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if err := t.writeCurrency(node); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseXMLNode fills the value from a DocumentTotals element.
func (t *PaymentTotals) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "DocumentTotals"); err != nil {
		return err
	}
	if err := t.parse(node); err != nil {
		return err
	}
	if child := saft.Child(node, "Settlement"); child != nil {
		return t.NewSettlement().ParseXMLNode(child)
	}
	return nil
}
