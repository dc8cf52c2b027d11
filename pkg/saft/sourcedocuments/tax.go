package sourcedocuments

import (
	"regexp"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

var (
	taxCodeRule         = saft.Text{Min: 1, Max: 10, Pattern: saft.TaxCodePattern}
	movementTaxCodeRule = saft.Text{Min: 2, Max: 3, Pattern: regexp.MustCompile(`^(RED|INT|NOR|ISE|OUT|NS)$`)}
)

// =============================================================================
// TAX
// =============================================================================

// Tax is the tax applied to an invoice, working document or payment line.
// It carries either a percentage or a fixed amount, never both.
type Tax struct {
	reg *saft.ErrorRegister

	taxType          saft.Field[enum.TaxType]
	taxCountryRegion saft.Field[enum.TaxCountryRegion]
	taxCode          saft.Field[string]
	taxPercentage    *decimal.Decimal
	taxAmount        *decimal.Decimal
}

// NewTax creates a Tax bound to reg.
func NewTax(reg *saft.ErrorRegister) *Tax {
	return &Tax{reg: reg}
}

// TaxType returns the tax type.
func (t *Tax) TaxType() enum.TaxType { return t.taxType.Get() }
// IsSetTaxType reports whether TaxType is set.
func (t *Tax) IsSetTaxType() bool { return t.taxType.IsSet() }

// SetTaxType stores the tax type.
func (t *Tax) SetTaxType(v enum.TaxType) bool {
	return saft.SetCode(t.reg, &t.taxType, "TaxType", v)
}

// TaxCountryRegion returns the tax country region.
func (t *Tax) TaxCountryRegion() enum.TaxCountryRegion { return t.taxCountryRegion.Get() }
// IsSetTaxCountryRegion reports whether TaxCountryRegion is set.
func (t *Tax) IsSetTaxCountryRegion() bool { return t.taxCountryRegion.IsSet() }

// SetTaxCountryRegion stores the tax country region.
func (t *Tax) SetTaxCountryRegion(v enum.TaxCountryRegion) bool {
	return saft.SetCode(t.reg, &t.taxCountryRegion, "TaxCountryRegion", v)
}

// TaxCode returns the tax code.
func (t *Tax) TaxCode() string { return t.taxCode.Get() }
// IsSetTaxCode reports whether TaxCode is set.
func (t *Tax) IsSetTaxCode() bool { return t.taxCode.IsSet() }

// SetTaxCode sets the rate code (RED, INT, NOR, ISE, OUT, NS, NA or a
// stamp duty code).
func (t *Tax) SetTaxCode(v string) bool {
	return saft.SetText(t.reg, &t.taxCode, taxCodeRule, "TaxCode", v)
}

// TaxPercentage returns the tax percentage or nil.
func (t *Tax) TaxPercentage() *decimal.Decimal { return t.taxPercentage }

// SetTaxPercentage sets the rate, 0 to 100. It fails without storing when a
// tax amount is already set.
func (t *Tax) SetTaxPercentage(v *decimal.Decimal) bool {
	if v != nil && t.taxAmount != nil {
		t.reg.AddOnSetValue(saft.NotValid("TaxPercentage"))
		return false
	}
	return saft.SetOptDecimal(t.reg, &t.taxPercentage, "TaxPercentage", v, saft.Percentage)
}

// TaxAmount returns the tax amount, nil when absent.
func (t *Tax) TaxAmount() *decimal.Decimal { return t.taxAmount }

// SetTaxAmount sets a fixed tax amount. It fails without storing when a
// percentage is already set.
func (t *Tax) SetTaxAmount(v *decimal.Decimal) bool {
	if v != nil && t.taxPercentage != nil {
		t.reg.AddOnSetValue(saft.NotValid("TaxAmount"))
		return false
	}
	return saft.SetOptDecimal(t.reg, &t.taxAmount, "TaxAmount", v, saft.NonNegative)
}

// CreateXMLNode writes the Tax element under parent and returns it.
func (t *Tax) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Line"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Tax")
	saft.WriteCode(t.reg, node, "TaxType", t.taxType)
	saft.WriteCode(t.reg, node, "TaxCountryRegion", t.taxCountryRegion)
	saft.WriteText(t.reg, node, "TaxCode", t.taxCode)
	switch {
	case t.taxPercentage != nil:
		saft.AddDecimal(node, "TaxPercentage", *t.taxPercentage)
	case t.taxAmount != nil:
		saft.AddDecimal(node, "TaxAmount", *t.taxAmount)
	default:
		saft.AddEmpty(node, "TaxPercentage")
		t.reg.AddOnCreateXMLNode(saft.NotValid("TaxPercentage"))
	}
	return node, nil
}

// ParseXMLNode reads a Tax element.
func (t *Tax) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Tax"); err != nil {
		return err
	}
	taxType, err := saft.RequiredCode(node, "TaxType", enum.NewTaxType)
	if err != nil {
		return err
	}
	t.SetTaxType(taxType)
	region, err := saft.RequiredCode(node, "TaxCountryRegion", enum.NewTaxCountryRegion)
	if err != nil {
		return err
	}
	t.SetTaxCountryRegion(region)
	code, err := saft.RequiredText(node, "TaxCode")
	if err != nil {
		return err
	}
	t.SetTaxCode(code)
	pct, err := saft.OptionalDecimal(node, "TaxPercentage")
	if err != nil {
		return err
	}
	amount, err := saft.OptionalDecimal(node, "TaxAmount")
	if err != nil {
		return err
	}
	if pct == nil && amount == nil {
		return &saft.MissingElementError{Parent: node.Tag, Element: "TaxPercentage"}
	}
	t.SetTaxPercentage(pct)
	t.SetTaxAmount(amount)
	return nil
}

// =============================================================================
// MOVEMENT TAX
// =============================================================================

// MovementTax is the tax of a stock movement line. Only IVA and NS are
// allowed and the rate is always a percentage.
type MovementTax struct {
	reg *saft.ErrorRegister

	taxType          saft.Field[enum.MovementTaxType]
	taxCountryRegion saft.Field[enum.TaxCountryRegion]
	taxCode          saft.Field[string]
	taxPercentage    saft.Field[decimal.Decimal]
}

// NewMovementTax creates a MovementTax bound to reg.
func NewMovementTax(reg *saft.ErrorRegister) *MovementTax {
	return &MovementTax{reg: reg}
}

// TaxType returns the tax type.
func (t *MovementTax) TaxType() enum.MovementTaxType { return t.taxType.Get() }
// IsSetTaxType reports whether TaxType is set.
func (t *MovementTax) IsSetTaxType() bool { return t.taxType.IsSet() }

// SetTaxType stores the tax type.
func (t *MovementTax) SetTaxType(v enum.MovementTaxType) bool {
	return saft.SetCode(t.reg, &t.taxType, "TaxType", v)
}

// TaxCountryRegion returns the tax country region.
func (t *MovementTax) TaxCountryRegion() enum.TaxCountryRegion { return t.taxCountryRegion.Get() }
// IsSetTaxCountryRegion reports whether TaxCountryRegion is set.
func (t *MovementTax) IsSetTaxCountryRegion() bool { return t.taxCountryRegion.IsSet() }

// SetTaxCountryRegion stores the tax country region.
func (t *MovementTax) SetTaxCountryRegion(v enum.TaxCountryRegion) bool {
	return saft.SetCode(t.reg, &t.taxCountryRegion, "TaxCountryRegion", v)
}

// TaxCode returns the tax code.
func (t *MovementTax) TaxCode() string { return t.taxCode.Get() }
// IsSetTaxCode reports whether TaxCode is set.
func (t *MovementTax) IsSetTaxCode() bool { return t.taxCode.IsSet() }

// SetTaxCode sets one of RED, INT, NOR, ISE, OUT or NS.
func (t *MovementTax) SetTaxCode(v string) bool {
	return saft.SetText(t.reg, &t.taxCode, movementTaxCodeRule, "TaxCode", v)
}

// TaxPercentage returns the tax percentage, zero when unset.
func (t *MovementTax) TaxPercentage() decimal.Decimal { return t.taxPercentage.Get() }
// IsSetTaxPercentage reports whether TaxPercentage is set.
func (t *MovementTax) IsSetTaxPercentage() bool { return t.taxPercentage.IsSet() }

// SetTaxPercentage stores the tax percentage.
func (t *MovementTax) SetTaxPercentage(v decimal.Decimal) bool {
	return saft.SetDecimal(t.reg, &t.taxPercentage, "TaxPercentage", v, saft.Percentage)
}

// CreateXMLNode appends the Tax element to parent.
func (t *MovementTax) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Line"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Tax")
	saft.WriteCode(t.reg, node, "TaxType", t.taxType)
	saft.WriteCode(t.reg, node, "TaxCountryRegion", t.taxCountryRegion)
	saft.WriteText(t.reg, node, "TaxCode", t.taxCode)
	saft.WriteDecimal(t.reg, node, "TaxPercentage", t.taxPercentage)
	return node, nil
}

// ParseXMLNode fills the value from a Tax element.
func (t *MovementTax) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Tax"); err != nil {
		return err
	}
	taxType, err := saft.RequiredCode(node, "TaxType", enum.NewMovementTaxType)
	if err != nil {
		return err
	}
	t.SetTaxType(taxType)
	region, err := saft.RequiredCode(node, "TaxCountryRegion", enum.NewTaxCountryRegion)
	if err != nil {
		return err
	}
	t.SetTaxCountryRegion(region)
	code, err := saft.RequiredText(node, "TaxCode")
	if err != nil {
		return err
	}
	t.SetTaxCode(code)
	pct, err := saft.RequiredDecimal(node, "TaxPercentage")
	if err != nil {
		return err
	}
	t.SetTaxPercentage(pct)
	return nil
}

// =============================================================================
// WITHHOLDING TAX
// =============================================================================

// WithholdingTax is an amount withheld at source on an invoice or payment.
type WithholdingTax struct {
	reg *saft.ErrorRegister

	withholdingTaxType        *enum.WithholdingTaxType
	withholdingTaxDescription *string
	withholdingTaxAmount      saft.Field[decimal.Decimal]
}

// NewWithholdingTax returns an empty WithholdingTax that reports to reg.
func NewWithholdingTax(reg *saft.ErrorRegister) *WithholdingTax {
	return &WithholdingTax{reg: reg}
}

// WithholdingTaxType returns the withholding tax type or nil.
func (w *WithholdingTax) WithholdingTaxType() *enum.WithholdingTaxType {
	return w.withholdingTaxType
}

// SetWithholdingTaxType sets the withholding tax type; nil clears it.
func (w *WithholdingTax) SetWithholdingTaxType(v *enum.WithholdingTaxType) bool {
	return saft.SetOptCode(w.reg, &w.withholdingTaxType, "WithholdingTaxType", v)
}

// WithholdingTaxDescription returns the withholding tax description or nil.
func (w *WithholdingTax) WithholdingTaxDescription() *string {
	return w.withholdingTaxDescription
}

// SetWithholdingTaxDescription sets the legal basis, 1 to 60 characters.
func (w *WithholdingTax) SetWithholdingTaxDescription(v *string) bool {
	return saft.SetOptText(w.reg, &w.withholdingTaxDescription, saft.TextMax60, "WithholdingTaxDescription", v)
}

// WithholdingTaxAmount returns the withholding tax amount.
func (w *WithholdingTax) WithholdingTaxAmount() decimal.Decimal {
	return w.withholdingTaxAmount.Get()
}

// IsSetWithholdingTaxAmount reports whether WithholdingTaxAmount holds a value.
func (w *WithholdingTax) IsSetWithholdingTaxAmount() bool {
	return w.withholdingTaxAmount.IsSet()
}

// SetWithholdingTaxAmount sets the withholding tax amount.
func (w *WithholdingTax) SetWithholdingTaxAmount(v decimal.Decimal) bool {
	return saft.SetDecimal(w.reg, &w.withholdingTaxAmount, "WithholdingTaxAmount", v, saft.NonNegative)
}

// CreateXMLNode writes the WithholdingTax element under parent and returns it.
func (w *WithholdingTax) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Invoice", "Payment"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("WithholdingTax")
	saft.WriteOptCode(node, "WithholdingTaxType", w.withholdingTaxType)
	saft.WriteOptText(node, "WithholdingTaxDescription", w.withholdingTaxDescription)
	saft.WriteDecimal(w.reg, node, "WithholdingTaxAmount", w.withholdingTaxAmount)
	return node, nil
}

// ParseXMLNode reads a WithholdingTax element.
func (w *WithholdingTax) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "WithholdingTax"); err != nil {
		return err
	}
	wtType, err := saft.OptionalCode(node, "WithholdingTaxType", enum.NewWithholdingTaxType)
	if err != nil {
		return err
	}
	w.SetWithholdingTaxType(wtType)
	w.SetWithholdingTaxDescription(saft.OptionalText(node, "WithholdingTaxDescription"))
	amount, err := saft.RequiredDecimal(node, "WithholdingTaxAmount")
	if err != nil {
		return err
	}
	w.SetWithholdingTaxAmount(amount)
	return nil
}
