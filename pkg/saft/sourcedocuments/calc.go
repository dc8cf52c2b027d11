// =============================================================================
// Source Documents - Totals Calculation
// =============================================================================
//
// DocTotalCalc recomputes the DocumentTotals of a document from its lines.
// Tax is grouped per (TaxType, TaxCountryRegion, TaxCode, TaxPercentage) in
// a DocTableTotalCalc row, rounded per row, then summed.
//
// SIGN:
//   Credit lines count positive and debit lines negative. The document
//   figures are returned as absolute values, the way DocumentTotals holds
//   them for invoices and credit notes alike.
//
// =============================================================================

package sourcedocuments

import (
	"github.com/shopspring/decimal"
)

// TotalsPrecision is the number of decimal places of calculated totals.
const TotalsPrecision = 2

var hundred = decimal.NewFromInt(100)

// CalcTax is the tax part of a CalcLine.
type CalcTax struct {
	TaxType          string
	TaxCountryRegion string
	TaxCode          string

	// Exactly one of TaxPercentage and TaxAmount is set.
	TaxPercentage *decimal.Decimal
	TaxAmount     *decimal.Decimal
}

// CalcLine is the view of a document line used by the calculation.
type CalcLine struct {
	Amount decimal.Decimal
	Credit bool

	// TaxBase replaces Amount as the taxable base when set.
	TaxBase *decimal.Decimal

	// Tax is nil for lines without tax.
	Tax *CalcTax
}

// Calculable is implemented by every concrete line type.
type Calculable interface {
	CalcLine() CalcLine
}

// DocTableTotalCalc is one row of the tax table of a document.
type DocTableTotalCalc struct {
	TaxType          string
	TaxCountryRegion string
	TaxCode          string
	TaxPercentage    decimal.Decimal
	FixedAmount      bool

	Base decimal.Decimal
	Tax  decimal.Decimal
}

// DocTotalCalc holds the calculated totals of one document.
type DocTotalCalc struct {
	NetTotal   decimal.Decimal
	TaxPayable decimal.Decimal
	GrossTotal decimal.Decimal

	// Table holds one row per tax group, in order of first appearance.
	Table []*DocTableTotalCalc

	Lines int
}

type taxKey struct {
	taxType string
	region  string
	code    string
	pct     string
	fixed   bool
}

// CalcTotals computes the totals of lines.
func CalcTotals(lines []Calculable) *DocTotalCalc {
	calc := &DocTotalCalc{}
	rows := make(map[taxKey]*DocTableTotalCalc)
	net := decimal.Zero

	for _, line := range lines {
		cl := line.CalcLine()
		calc.Lines++

		amount := cl.Amount
		if !cl.Credit {
			amount = amount.Neg()
		}
		net = net.Add(amount)

		if cl.Tax == nil {
			continue
		}
		base := amount
		if cl.TaxBase != nil {
			base = *cl.TaxBase
			if !cl.Credit {
				base = base.Neg()
			}
		}

		key := taxKey{taxType: cl.Tax.TaxType, region: cl.Tax.TaxCountryRegion, code: cl.Tax.TaxCode}
		var pct decimal.Decimal
		if cl.Tax.TaxPercentage != nil {
			pct = *cl.Tax.TaxPercentage
			key.pct = pct.String()
		} else {
			key.fixed = true
		}

		row, ok := rows[key]
		if !ok {
			row = &DocTableTotalCalc{
				TaxType:          cl.Tax.TaxType,
				TaxCountryRegion: cl.Tax.TaxCountryRegion,
				TaxCode:          cl.Tax.TaxCode,
				TaxPercentage:    pct,
				FixedAmount:      key.fixed,
			}
			rows[key] = row
			calc.Table = append(calc.Table, row)
		}
		row.Base = row.Base.Add(base)
		if key.fixed && cl.Tax.TaxAmount != nil {
			fixed := *cl.Tax.TaxAmount
			if !cl.Credit {
				fixed = fixed.Neg()
			}
			row.Tax = row.Tax.Add(fixed)
		}
	}

	tax := decimal.Zero
	for _, row := range calc.Table {
		if !row.FixedAmount {
			row.Tax = row.Base.Mul(row.TaxPercentage).Div(hundred)
		}
		row.Tax = row.Tax.Round(TotalsPrecision)
		tax = tax.Add(row.Tax)
	}

	calc.NetTotal = net.Abs().Round(TotalsPrecision)
	calc.TaxPayable = tax.Abs().Round(TotalsPrecision)
	calc.GrossTotal = calc.NetTotal.Add(calc.TaxPayable)
	return calc
}

// calcLineWithTax builds the CalcLine of lines carrying a Tax element.
func calcLineWithTax(l *lineBase, taxBase *decimal.Decimal, tax *Tax) CalcLine {
	c := CalcLine{Amount: l.Amount(), Credit: l.creditAmount != nil, TaxBase: taxBase}
	if tax != nil {
		c.Tax = &CalcTax{
			TaxType:          string(tax.TaxType()),
			TaxCountryRegion: string(tax.TaxCountryRegion()),
			TaxCode:          tax.TaxCode(),
			TaxPercentage:    tax.TaxPercentage(),
			TaxAmount:        tax.TaxAmount(),
		}
	}
	return c
}
