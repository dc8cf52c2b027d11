package masterfiles

import (
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

var taxTableCodeRule = saft.Text{Min: 1, Max: 10, Pattern: saft.TaxCodePattern}

// =============================================================================
// TAX TABLE ENTRY
// =============================================================================

// TaxTableEntry is one rate of the tax table. Like a line Tax it carries a
// percentage or a fixed amount, never both.
type TaxTableEntry struct {
	reg *saft.ErrorRegister

	taxType           saft.Field[enum.TaxType]
	taxCountryRegion  saft.Field[enum.TaxCountryRegion]
	taxCode           saft.Field[string]
	description       saft.Field[string]
	taxExpirationDate *time.Time
	taxPercentage     *decimal.Decimal
	taxAmount         *decimal.Decimal
}

// NewTaxTableEntry creates a TaxTableEntry bound to reg.
func NewTaxTableEntry(reg *saft.ErrorRegister) *TaxTableEntry {
	return &TaxTableEntry{reg: reg}
}

// TaxType returns the tax type.
func (t *TaxTableEntry) TaxType() enum.TaxType { return t.taxType.Get() }
// IsSetTaxType reports whether TaxType is set.
func (t *TaxTableEntry) IsSetTaxType() bool { return t.taxType.IsSet() }

// SetTaxType stores the tax type.
func (t *TaxTableEntry) SetTaxType(v enum.TaxType) bool {
	return saft.SetCode(t.reg, &t.taxType, "TaxType", v)
}

// TaxCountryRegion returns the tax country region.
func (t *TaxTableEntry) TaxCountryRegion() enum.TaxCountryRegion { return t.taxCountryRegion.Get() }
// IsSetTaxCountryRegion reports whether TaxCountryRegion is set.
func (t *TaxTableEntry) IsSetTaxCountryRegion() bool { return t.taxCountryRegion.IsSet() }

// SetTaxCountryRegion stores the tax country region.
func (t *TaxTableEntry) SetTaxCountryRegion(v enum.TaxCountryRegion) bool {
	return saft.SetCode(t.reg, &t.taxCountryRegion, "TaxCountryRegion", v)
}

// TaxCode returns the tax code.
func (t *TaxTableEntry) TaxCode() string { return t.taxCode.Get() }
// IsSetTaxCode reports whether TaxCode is set.
func (t *TaxTableEntry) IsSetTaxCode() bool { return t.taxCode.IsSet() }

// SetTaxCode stores the tax code.
func (t *TaxTableEntry) SetTaxCode(v string) bool {
	return saft.SetText(t.reg, &t.taxCode, taxTableCodeRule, "TaxCode", v)
}

// Description returns the description.
func (t *TaxTableEntry) Description() string { return t.description.Get() }
// IsSetDescription reports whether Description is set.
func (t *TaxTableEntry) IsSetDescription() bool { return t.description.IsSet() }

// SetDescription sets the rate description, 1 to 255 characters.
func (t *TaxTableEntry) SetDescription(v string) bool {
	return saft.SetText(t.reg, &t.description, saft.TextMax255, "Description", v)
}

// TaxExpirationDate returns the tax expiration date or nil.
func (t *TaxTableEntry) TaxExpirationDate() *time.Time { return t.taxExpirationDate }

// SetTaxExpirationDate sets the last day the rate was in force.
func (t *TaxTableEntry) SetTaxExpirationDate(v *time.Time) {
	t.taxExpirationDate = v
}

// TaxPercentage returns the tax percentage, nil when absent.
func (t *TaxTableEntry) TaxPercentage() *decimal.Decimal { return t.taxPercentage }

// SetTaxPercentage sets the rate, 0 to 100. It fails without storing when a
// tax amount is already set.
func (t *TaxTableEntry) SetTaxPercentage(v *decimal.Decimal) bool {
	if v != nil && t.taxAmount != nil {
		t.reg.AddOnSetValue(saft.NotValid("TaxPercentage"))
		return false
	}
	return saft.SetOptDecimal(t.reg, &t.taxPercentage, "TaxPercentage", v, saft.Percentage)
}

// TaxAmount returns the tax amount or nil.
func (t *TaxTableEntry) TaxAmount() *decimal.Decimal { return t.taxAmount }

// SetTaxAmount sets a fixed amount. It fails without storing when a
// percentage is already set.
func (t *TaxTableEntry) SetTaxAmount(v *decimal.Decimal) bool {
	if v != nil && t.taxPercentage != nil {
		t.reg.AddOnSetValue(saft.NotValid("TaxAmount"))
		return false
	}
	return saft.SetOptDecimal(t.reg, &t.taxAmount, "TaxAmount", v, saft.NonNegative)
}

// CreateXMLNode appends the TaxTableEntry element to parent.
func (t *TaxTableEntry) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "TaxTable"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("TaxTableEntry")
	saft.WriteCode(t.reg, node, "TaxType", t.taxType)
	saft.WriteCode(t.reg, node, "TaxCountryRegion", t.taxCountryRegion)
	saft.WriteText(t.reg, node, "TaxCode", t.taxCode)
	saft.WriteText(t.reg, node, "Description", t.description)
	saft.WriteOptDate(node, "TaxExpirationDate", t.taxExpirationDate)
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

// ParseXMLNode fills the value from a TaxTableEntry element.
func (t *TaxTableEntry) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "TaxTableEntry"); err != nil {
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
	desc, err := saft.RequiredText(node, "Description")
	if err != nil {
		return err
	}
	t.SetDescription(desc)
	expiration, err := saft.OptionalDate(node, "TaxExpirationDate")
	if err != nil {
		return err
	}
	t.SetTaxExpirationDate(expiration)
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
// TAX TABLE
// =============================================================================

// TaxTable lists the tax rates used by the documents of the file.
type TaxTable struct {
	reg *saft.ErrorRegister

	entries []*TaxTableEntry
}

// NewTaxTable returns an empty TaxTable that reports to reg.
func NewTaxTable(reg *saft.ErrorRegister) *TaxTable {
	return &TaxTable{reg: reg}
}

// AddTaxTableEntry appends a new entry and returns it.
func (t *TaxTable) AddTaxTableEntry() *TaxTableEntry {
	e := NewTaxTableEntry(t.reg)
	t.entries = append(t.entries, e)
	return e
}

// TaxTableEntry returns the tax table entry list.
func (t *TaxTable) TaxTableEntry() []*TaxTableEntry { return t.entries }

// Find returns the entry matching type, region and code, or nil.
func (t *TaxTable) Find(taxType enum.TaxType, region enum.TaxCountryRegion, code string) *TaxTableEntry {
	for _, e := range t.entries {
		if e.TaxType() == taxType && e.TaxCountryRegion() == region && e.TaxCode() == code {
			return e
		}
	}
	return nil
}

// CreateXMLNode appends the TaxTable element to parent.
func (t *TaxTable) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "MasterFiles"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("TaxTable")
	if len(t.entries) == 0 {
		saft.AddEmpty(node, "TaxTableEntry")
		t.reg.AddOnCreateXMLNode(saft.NotValid("TaxTableEntry"))
	}
	for _, e := range t.entries {
		if _, err := e.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode fills the value from a TaxTable element.
func (t *TaxTable) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "TaxTable"); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "TaxTableEntry") {
		if err := t.AddTaxTableEntry().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}
