// =============================================================================
// Source Documents - Line Field Groups
// =============================================================================
//
// Every document line of the schema is built from the same field groups:
//
//   lineBase         LineNumber, DebitAmount|CreditAmount, TaxExemptionReason,
//                    TaxExemptionCode, SettlementAmount
//   productLine      OrderReferences*, ProductCode, ProductDescription,
//                    Quantity, UnitOfMeasure, UnitPrice, Description,
//                    ProductSerialNumber?, CustomsInformation?
//   invoiceWorkLine  TaxBase?, TaxPointDate, References*
//
// The concrete lines (lines.go) embed the groups they have and interleave
// the group writers in schema order. The groups never build a Line element
// themselves.
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

var taxExemptionReasonRule = saft.Text{Min: 6, Max: 60}

// =============================================================================
// LINE BASE
// =============================================================================

type lineBase struct {
	reg *saft.ErrorRegister

	lineNumber         saft.Field[int]
	debitAmount        *decimal.Decimal
	creditAmount       *decimal.Decimal
	taxExemptionReason *string
	taxExemptionCode   *enum.TaxExemptionCode
	settlementAmount   *decimal.Decimal
}

// LineNumber returns the line number.
func (l *lineBase) LineNumber() int { return l.lineNumber.Get() }
// IsSetLineNumber reports whether LineNumber holds a value.
func (l *lineBase) IsSetLineNumber() bool { return l.lineNumber.IsSet() }

// SetLineNumber sets the position of the line in the document, from 1.
func (l *lineBase) SetLineNumber(v int) bool {
	l.lineNumber.Set(v)
	if v < 1 {
		l.reg.AddOnSetValue(saft.NotValid("LineNumber"))
		return false
	}
	return true
}

// DebitAmount returns the debit amount, nil when absent.
func (l *lineBase) DebitAmount() *decimal.Decimal { return l.debitAmount }

// SetDebitAmount sets the debit amount of the line, without tax. It fails
// without storing when a credit amount is already set. Nil clears it.
func (l *lineBase) SetDebitAmount(v *decimal.Decimal) bool {
	if v != nil && l.creditAmount != nil {
		l.reg.AddOnSetValue(saft.NotValid("DebitAmount"))
		return false
	}
	return saft.SetOptDecimal(l.reg, &l.debitAmount, "DebitAmount", v, saft.NonNegative)
}

// CreditAmount returns the credit amount or nil.
func (l *lineBase) CreditAmount() *decimal.Decimal { return l.creditAmount }

// SetCreditAmount sets the credit amount of the line, without tax. It fails
// without storing when a debit amount is already set. Nil clears it.
func (l *lineBase) SetCreditAmount(v *decimal.Decimal) bool {
	if v != nil && l.debitAmount != nil {
		l.reg.AddOnSetValue(saft.NotValid("CreditAmount"))
		return false
	}
	return saft.SetOptDecimal(l.reg, &l.creditAmount, "CreditAmount", v, saft.NonNegative)
}

// Amount returns the debit or credit amount, whichever is set.
func (l *lineBase) Amount() decimal.Decimal {
	switch {
	case l.creditAmount != nil:
		return *l.creditAmount
	case l.debitAmount != nil:
		return *l.debitAmount
	}
	return decimal.Zero
}

// TaxExemptionReason returns the tax exemption reason, nil when absent.
func (l *lineBase) TaxExemptionReason() *string { return l.taxExemptionReason }

// SetTaxExemptionReason sets the legal reason of the exemption, 6 to 60
// characters.
func (l *lineBase) SetTaxExemptionReason(v *string) bool {
	return saft.SetOptText(l.reg, &l.taxExemptionReason, taxExemptionReasonRule, "TaxExemptionReason", v)
}

// TaxExemptionCode returns the tax exemption code or nil.
func (l *lineBase) TaxExemptionCode() *enum.TaxExemptionCode { return l.taxExemptionCode }

// SetTaxExemptionCode sets the tax exemption code; nil clears it.
func (l *lineBase) SetTaxExemptionCode(v *enum.TaxExemptionCode) bool {
	return saft.SetOptCode(l.reg, &l.taxExemptionCode, "TaxExemptionCode", v)
}

// SettlementAmount returns the settlement amount or nil.
func (l *lineBase) SettlementAmount() *decimal.Decimal { return l.settlementAmount }

// SetSettlementAmount sets the settlement amount; nil clears it.
func (l *lineBase) SetSettlementAmount(v *decimal.Decimal) bool {
	return saft.SetOptDecimal(l.reg, &l.settlementAmount, "SettlementAmount", v, saft.NonNegative)
}

func (l *lineBase) writeLineNumber(node *etree.Element) {
	saft.WriteInt(l.reg, node, "LineNumber", l.lineNumber)
}

func (l *lineBase) writeAmount(node *etree.Element) {
	switch {
	case l.debitAmount != nil:
		saft.AddDecimal(node, "DebitAmount", *l.debitAmount)
	case l.creditAmount != nil:
		saft.AddDecimal(node, "CreditAmount", *l.creditAmount)
	default:
		saft.AddEmpty(node, "DebitAmount")
		l.reg.AddOnCreateXMLNode(saft.NotValid("DebitAmount"))
	}
}

func (l *lineBase) writeExemption(node *etree.Element) {
	saft.WriteOptText(node, "TaxExemptionReason", l.taxExemptionReason)
	saft.WriteOptCode(node, "TaxExemptionCode", l.taxExemptionCode)
}

func (l *lineBase) writeSettlementAmount(node *etree.Element) {
	saft.WriteOptDecimal(node, "SettlementAmount", l.settlementAmount)
}

func (l *lineBase) parse(node *etree.Element) error {
	number, err := saft.RequiredInt(node, "LineNumber")
	if err != nil {
		return err
	}
	l.SetLineNumber(number)

	debit, err := saft.OptionalDecimal(node, "DebitAmount")
	if err != nil {
		return err
	}
	credit, err := saft.OptionalDecimal(node, "CreditAmount")
	if err != nil {
		return err
	}
	switch {
	case debit == nil && credit == nil:
		return &saft.MissingElementError{Parent: node.Tag, Element: "DebitAmount"}
	case debit != nil:
		l.SetDebitAmount(debit)
		if credit != nil {
			l.SetCreditAmount(credit)
		}
	default:
		l.SetCreditAmount(credit)
	}

	l.SetTaxExemptionReason(saft.OptionalText(node, "TaxExemptionReason"))
	code, err := saft.OptionalCode(node, "TaxExemptionCode", enum.NewTaxExemptionCode)
	if err != nil {
		return err
	}
	l.SetTaxExemptionCode(code)

	settlement, err := saft.OptionalDecimal(node, "SettlementAmount")
	if err != nil {
		return err
	}
	l.SetSettlementAmount(settlement)
	return nil
}

// =============================================================================
// PRODUCT LINE
// =============================================================================

type productLine struct {
	reg *saft.ErrorRegister

	orderReferences     []*OrderReferences
	productCode         saft.Field[string]
	productDescription  saft.Field[string]
	quantity            saft.Field[decimal.Decimal]
	unitOfMeasure       saft.Field[string]
	unitPrice           saft.Field[decimal.Decimal]
	description         saft.Field[string]
	productSerialNumber *ProductSerialNumber
	customsInformation  *CustomsInformation
}

// AddOrderReferences appends a new OrderReferences and returns it.
func (l *productLine) AddOrderReferences() *OrderReferences {
	o := NewOrderReferences(l.reg)
	l.orderReferences = append(l.orderReferences, o)
	return o
}

// OrderReferences returns the order references list.
func (l *productLine) OrderReferences() []*OrderReferences { return l.orderReferences }

// ProductCode returns the product code.
func (l *productLine) ProductCode() string { return l.productCode.Get() }
// IsSetProductCode reports whether ProductCode is set.
func (l *productLine) IsSetProductCode() bool { return l.productCode.IsSet() }

// SetProductCode sets the product code as in MasterFiles, 1 to 60
// characters.
func (l *productLine) SetProductCode(v string) bool {
	return saft.SetText(l.reg, &l.productCode, saft.TextMax60, "ProductCode", v)
}

// ProductDescription returns the product description.
func (l *productLine) ProductDescription() string { return l.productDescription.Get() }
// IsSetProductDescription reports whether ProductDescription holds a value.
func (l *productLine) IsSetProductDescription() bool { return l.productDescription.IsSet() }

// SetProductDescription sets the product description, 2 to 200 characters.
// A failure is registered as ProductCode_not_valid.
func (l *productLine) SetProductDescription(v string) bool {
	return saft.SetText(l.reg, &l.productDescription, saft.TextMin2, "ProductCode", v)
}

// Quantity returns the quantity.
func (l *productLine) Quantity() decimal.Decimal { return l.quantity.Get() }
// IsSetQuantity reports whether Quantity holds a value.
func (l *productLine) IsSetQuantity() bool { return l.quantity.IsSet() }

// SetQuantity sets the quantity.
func (l *productLine) SetQuantity(v decimal.Decimal) bool {
	return saft.SetDecimal(l.reg, &l.quantity, "Quantity", v, saft.NonNegative)
}

// UnitOfMeasure returns the unit of measure.
func (l *productLine) UnitOfMeasure() string { return l.unitOfMeasure.Get() }
// IsSetUnitOfMeasure reports whether UnitOfMeasure holds a value.
func (l *productLine) IsSetUnitOfMeasure() bool { return l.unitOfMeasure.IsSet() }

// SetUnitOfMeasure sets the unit, 1 to 20 characters.
func (l *productLine) SetUnitOfMeasure(v string) bool {
	return saft.SetText(l.reg, &l.unitOfMeasure, saft.TextMax20, "UnitOfMeasure", v)
}

// UnitPrice returns the unit price.
func (l *productLine) UnitPrice() decimal.Decimal { return l.unitPrice.Get() }
// IsSetUnitPrice reports whether UnitPrice holds a value.
func (l *productLine) IsSetUnitPrice() bool { return l.unitPrice.IsSet() }

// SetUnitPrice sets the unit price without tax and after line discounts.
func (l *productLine) SetUnitPrice(v decimal.Decimal) bool {
	return saft.SetDecimal(l.reg, &l.unitPrice, "UnitPrice", v, saft.NonNegative)
}

// Description returns the description.
func (l *productLine) Description() string { return l.description.Get() }
// IsSetDescription reports whether Description is set.
func (l *productLine) IsSetDescription() bool { return l.description.IsSet() }

// SetDescription sets the line description, 1 to 200 characters.
func (l *productLine) SetDescription(v string) bool {
	return saft.SetText(l.reg, &l.description, saft.TextMax200, "Description", v)
}

// ProductSerialNumber returns the product serial number or nil.
func (l *productLine) ProductSerialNumber() *ProductSerialNumber { return l.productSerialNumber }

// NewProductSerialNumber creates the serial number list of the line,
// replacing any previous one.
func (l *productLine) NewProductSerialNumber() *ProductSerialNumber {
	l.productSerialNumber = NewProductSerialNumber(l.reg)
	return l.productSerialNumber
}

// CustomsInformation returns the customs information, nil when absent.
func (l *productLine) CustomsInformation() *CustomsInformation { return l.customsInformation }

// NewCustomsInformation creates the customs block of the line, replacing
// any previous one.
func (l *productLine) NewCustomsInformation() *CustomsInformation {
	l.customsInformation = NewCustomsInformation(l.reg)
	return l.customsInformation
}

// writeProduct writes OrderReferences through UnitPrice.
func (l *productLine) writeProduct(node *etree.Element) error {
	for _, o := range l.orderReferences {
		if _, err := o.CreateXMLNode(node); err != nil {
			return err
		}
	}
	saft.WriteText(l.reg, node, "ProductCode", l.productCode)
	saft.WriteText(l.reg, node, "ProductDescription", l.productDescription)
	saft.WriteDecimal(l.reg, node, "Quantity", l.quantity)
	saft.WriteText(l.reg, node, "UnitOfMeasure", l.unitOfMeasure)
	saft.WriteDecimal(l.reg, node, "UnitPrice", l.unitPrice)
	return nil
}

// writeDescription writes Description and ProductSerialNumber.
func (l *productLine) writeDescription(node *etree.Element) error {
	saft.WriteText(l.reg, node, "Description", l.description)
	if l.productSerialNumber != nil {
		if _, err := l.productSerialNumber.CreateXMLNode(node); err != nil {
			return err
		}
	}
	return nil
}

func (l *productLine) writeCustoms(node *etree.Element) error {
	if l.customsInformation == nil {
		return nil
	}
	_, err := l.customsInformation.CreateXMLNode(node)
	return err
}

func (l *productLine) parse(node *etree.Element) error {
	for _, child := range saft.Children(node, "OrderReferences") {
		if err := l.AddOrderReferences().ParseXMLNode(child); err != nil {
			return err
		}
	}
	code, err := saft.RequiredText(node, "ProductCode")
	if err != nil {
		return err
	}
	l.SetProductCode(code)
	desc, err := saft.RequiredText(node, "ProductDescription")
	if err != nil {
		return err
	}
	l.SetProductDescription(desc)
	qty, err := saft.RequiredDecimal(node, "Quantity")
	if err != nil {
		return err
	}
	l.SetQuantity(qty)
	unit, err := saft.RequiredText(node, "UnitOfMeasure")
	if err != nil {
		return err
	}
	l.SetUnitOfMeasure(unit)
	price, err := saft.RequiredDecimal(node, "UnitPrice")
	if err != nil {
		return err
	}
	l.SetUnitPrice(price)
	description, err := saft.RequiredText(node, "Description")
	if err != nil {
		return err
	}
	l.SetDescription(description)
	if child := saft.Child(node, "ProductSerialNumber"); child != nil {
		if err := l.NewProductSerialNumber().ParseXMLNode(child); err != nil {
			return err
		}
	}
	if child := saft.Child(node, "CustomsInformation"); child != nil {
		if err := l.NewCustomsInformation().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// INVOICE AND WORKING DOCUMENT LINE
// =============================================================================

type invoiceWorkLine struct {
	reg *saft.ErrorRegister

	taxBase      *decimal.Decimal
	taxPointDate saft.Field[time.Time]
	references   []*References
}

// TaxBase returns the tax base or nil.
func (l *invoiceWorkLine) TaxBase() *decimal.Decimal { return l.taxBase }

// SetTaxBase sets the taxable base of lines whose amount is not the base,
// such as stamp duty lines.
func (l *invoiceWorkLine) SetTaxBase(v *decimal.Decimal) bool {
	return saft.SetOptDecimal(l.reg, &l.taxBase, "TaxBase", v, saft.NonNegative)
}

// TaxPointDate returns the tax point date.
func (l *invoiceWorkLine) TaxPointDate() time.Time { return l.taxPointDate.Get() }
// IsSetTaxPointDate reports whether TaxPointDate holds a value.
func (l *invoiceWorkLine) IsSetTaxPointDate() bool { return l.taxPointDate.IsSet() }

// SetTaxPointDate sets the date of shipment or of service provision.
func (l *invoiceWorkLine) SetTaxPointDate(v time.Time) {
	l.taxPointDate.Set(v)
}

// AddReferences appends a new References and returns it.
func (l *invoiceWorkLine) AddReferences() *References {
	r := NewReferences(l.reg)
	l.references = append(l.references, r)
	return r
}

// References returns the references in document order.
func (l *invoiceWorkLine) References() []*References { return l.references }

func (l *invoiceWorkLine) write(node *etree.Element) error {
	saft.WriteOptDecimal(node, "TaxBase", l.taxBase)
	saft.WriteDate(l.reg, node, "TaxPointDate", l.taxPointDate)
	for _, r := range l.references {
		if _, err := r.CreateXMLNode(node); err != nil {
			return err
		}
	}
	return nil
}

func (l *invoiceWorkLine) parse(node *etree.Element) error {
	base, err := saft.OptionalDecimal(node, "TaxBase")
	if err != nil {
		return err
	}
	l.SetTaxBase(base)
	date, err := saft.RequiredDate(node, "TaxPointDate")
	if err != nil {
		return err
	}
	l.SetTaxPointDate(date)
	for _, child := range saft.Children(node, "References") {
		if err := l.AddReferences().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}
