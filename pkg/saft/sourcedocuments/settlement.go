package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// =============================================================================
// SETTLEMENT
// =============================================================================

// Settlement is a discount agreed for a document. Payments only use the
// SettlementAmount part.
type Settlement struct {
	reg *saft.ErrorRegister

	settlementDiscount *string
	settlementAmount   *decimal.Decimal
	settlementDate     *time.Time
	paymentTerms       *string
}

// NewSettlement returns an empty Settlement that reports to reg.
func NewSettlement(reg *saft.ErrorRegister) *Settlement {
	return &Settlement{reg: reg}
}

// SettlementDiscount returns the settlement discount or nil.
func (s *Settlement) SettlementDiscount() *string { return s.settlementDiscount }

// SetSettlementDiscount sets the discount agreement, 1 to 30 characters.
func (s *Settlement) SetSettlementDiscount(v *string) bool {
	return saft.SetOptText(s.reg, &s.settlementDiscount, saft.TextMax30, "SettlementDiscount", v)
}

// SettlementAmount returns the settlement amount, nil when absent.
func (s *Settlement) SettlementAmount() *decimal.Decimal { return s.settlementAmount }

// SetSettlementAmount sets the settlement amount, or clears it when v is nil.
func (s *Settlement) SetSettlementAmount(v *decimal.Decimal) bool {
	return saft.SetOptDecimal(s.reg, &s.settlementAmount, "SettlementAmount", v, saft.NonNegative)
}

// SettlementDate returns the settlement date, nil when absent.
func (s *Settlement) SettlementDate() *time.Time { return s.settlementDate }

// SetSettlementDate sets the settlement date, or clears it when v is nil.
func (s *Settlement) SetSettlementDate(v *time.Time) {
	s.settlementDate = v
}

// PaymentTerms returns the payment terms, nil when absent.
func (s *Settlement) PaymentTerms() *string { return s.paymentTerms }

// SetPaymentTerms sets the agreed terms, 1 to 100 characters.
func (s *Settlement) SetPaymentTerms(v *string) bool {
	return saft.SetOptText(s.reg, &s.paymentTerms, saft.TextMax100, "PaymentTerms", v)
}

// CreateXMLNode writes the Settlement element under parent and returns it.
func (s *Settlement) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "DocumentTotals"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Settlement")
	saft.WriteOptText(node, "SettlementDiscount", s.settlementDiscount)
	saft.WriteOptDecimal(node, "SettlementAmount", s.settlementAmount)
	saft.WriteOptDate(node, "SettlementDate", s.settlementDate)
	saft.WriteOptText(node, "PaymentTerms", s.paymentTerms)
	return node, nil
}

// ParseXMLNode reads a Settlement element.
func (s *Settlement) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Settlement"); err != nil {
		return err
	}
	s.SetSettlementDiscount(saft.OptionalText(node, "SettlementDiscount"))
	amount, err := saft.OptionalDecimal(node, "SettlementAmount")
	if err != nil {
		return err
	}
	s.SetSettlementAmount(amount)
	date, err := saft.OptionalDate(node, "SettlementDate")
	if err != nil {
		return err
	}
	s.SetSettlementDate(date)
	s.SetPaymentTerms(saft.OptionalText(node, "PaymentTerms"))
	return nil
}

// =============================================================================
// PAYMENT METHOD
// =============================================================================

// PaymentMethod is one means of payment. Inside invoice totals the element
// is named Payment, inside a receipt it is named PaymentMethod.
type PaymentMethod struct {
	reg *saft.ErrorRegister
	tag string

	paymentMechanism *enum.PaymentMechanism
	paymentAmount    saft.Field[decimal.Decimal]
	paymentDate      saft.Field[time.Time]
}

// NewPaymentMethod creates the PaymentMethod element of a receipt.
func NewPaymentMethod(reg *saft.ErrorRegister) *PaymentMethod {
	return &PaymentMethod{reg: reg, tag: "PaymentMethod"}
}

// NewInvoicePayment creates the Payment element of invoice totals.
func NewInvoicePayment(reg *saft.ErrorRegister) *PaymentMethod {
	return &PaymentMethod{reg: reg, tag: "Payment"}
}

// PaymentMechanism returns the payment mechanism or nil.
func (p *PaymentMethod) PaymentMechanism() *enum.PaymentMechanism { return p.paymentMechanism }

// SetPaymentMechanism sets the payment mechanism; nil clears it.
func (p *PaymentMethod) SetPaymentMechanism(v *enum.PaymentMechanism) bool {
	return saft.SetOptCode(p.reg, &p.paymentMechanism, "PaymentMechanism", v)
}

// PaymentAmount returns the payment amount, zero when unset.
func (p *PaymentMethod) PaymentAmount() decimal.Decimal { return p.paymentAmount.Get() }
// IsSetPaymentAmount reports whether PaymentAmount is set.
func (p *PaymentMethod) IsSetPaymentAmount() bool { return p.paymentAmount.IsSet() }

// SetPaymentAmount stores the payment amount.
func (p *PaymentMethod) SetPaymentAmount(v decimal.Decimal) bool {
	return saft.SetDecimal(p.reg, &p.paymentAmount, "PaymentAmount", v, saft.NonNegative)
}

// PaymentDate returns the payment date.
func (p *PaymentMethod) PaymentDate() time.Time { return p.paymentDate.Get() }
// IsSetPaymentDate reports whether PaymentDate holds a value.
func (p *PaymentMethod) IsSetPaymentDate() bool { return p.paymentDate.IsSet() }

// SetPaymentDate sets the payment date.
func (p *PaymentMethod) SetPaymentDate(v time.Time) {
	p.paymentDate.Set(v)
}

// CreateXMLNode appends the Payment or PaymentMethod element to parent.
func (p *PaymentMethod) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "DocumentTotals", "Payment"); err != nil {
		return nil, err
	}
	node := parent.CreateElement(p.tag)
	saft.WriteOptCode(node, "PaymentMechanism", p.paymentMechanism)
	saft.WriteDecimal(p.reg, node, "PaymentAmount", p.paymentAmount)
	saft.WriteDate(p.reg, node, "PaymentDate", p.paymentDate)
	return node, nil
}

// ParseXMLNode reads a Payment or PaymentMethod element, as named at creation.
func (p *PaymentMethod) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, p.tag); err != nil {
		return err
	}
	mechanism, err := saft.OptionalCode(node, "PaymentMechanism", enum.NewPaymentMechanism)
	if err != nil {
		return err
	}
	p.SetPaymentMechanism(mechanism)
	amount, err := saft.RequiredDecimal(node, "PaymentAmount")
	if err != nil {
		return err
	}
	p.SetPaymentAmount(amount)
	date, err := saft.RequiredDate(node, "PaymentDate")
	if err != nil {
		return err
	}
	p.SetPaymentDate(date)
	return nil
}
