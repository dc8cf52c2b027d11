package sourcedocuments_test

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
	"github.com/ginjaninja78/saft-pt/pkg/saft/sourcedocuments"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestLine_Setters(t *testing.T) {
	t.Run("Given a one character product description When it is set Then ProductCode_not_valid is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewInvoiceLine(reg)

		ok := line.SetProductDescription("A")

		assert.False(t, ok)
		assert.Equal(t, "A", line.ProductDescription())
		assert.Equal(t, []string{"ProductCode_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given an empty correction reason When it is set Then ProductCode_not_valid is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		refs := sourcedocuments.NewReferences(reg)

		ok := refs.SetReason(ptr(""))

		assert.False(t, ok)
		assert.Equal(t, "", *refs.Reason())
		assert.Equal(t, []string{"ProductCode_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a long correction reason When it is set Then it is truncated to 50 characters", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		refs := sourcedocuments.NewReferences(reg)

		ok := refs.SetReason(ptr(strings.Repeat("r", 60)))

		assert.True(t, ok)
		assert.Len(t, *refs.Reason(), 50)
		assert.Empty(t, reg.OnSetValue())
	})

	t.Run("Given a long description When it is set Then it is truncated to 200 characters", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewInvoiceLine(reg)
		long := make([]byte, 250)
		for i := range long {
			long[i] = 'x'
		}

		ok := line.SetDescription(string(long))

		assert.True(t, ok)
		assert.Len(t, line.Description(), 200)
		assert.False(t, reg.HasErrors())
	})

	t.Run("Given a debit amount When a credit amount is set Then it is refused", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewInvoiceLine(reg)

		require.True(t, line.SetDebitAmount(decPtr("10")))
		ok := line.SetCreditAmount(decPtr("5"))

		assert.False(t, ok)
		assert.Nil(t, line.CreditAmount())
		assert.True(t, line.DebitAmount().Equal(dec("10")))
		assert.Equal(t, []string{"CreditAmount_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a debit amount When it is cleared Then a credit amount can be set", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewInvoiceLine(reg)
		require.True(t, line.SetDebitAmount(decPtr("10")))

		assert.True(t, line.SetDebitAmount(nil))
		assert.True(t, line.SetCreditAmount(decPtr("5")))

		assert.Nil(t, line.DebitAmount())
		assert.True(t, line.CreditAmount().Equal(dec("5")))
		assert.True(t, line.Amount().Equal(dec("5")))
		assert.Empty(t, reg.OnSetValue())
	})

	t.Run("Given a negative quantity When it is set Then the value is kept and registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewStockMovementLine(reg)

		ok := line.SetQuantity(dec("-1"))

		assert.False(t, ok)
		assert.True(t, line.Quantity().Equal(dec("-1")))
		assert.True(t, reg.Contains("Quantity_not_valid"))
	})

	t.Run("Given a line number of zero When it is set Then it is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewPaymentLine(reg)

		assert.False(t, line.SetLineNumber(0))
		assert.True(t, reg.Contains("LineNumber_not_valid"))
	})
}

func TestTax(t *testing.T) {
	t.Run("Given a percentage When an amount is set Then the amount is refused", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		tax := sourcedocuments.NewTax(reg)

		require.True(t, tax.SetTaxPercentage(decPtr("23")))
		ok := tax.SetTaxAmount(decPtr("1.50"))

		assert.False(t, ok)
		assert.Nil(t, tax.TaxAmount())
		assert.Equal(t, []string{"TaxAmount_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a percentage When it is cleared Then an amount can be set", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		tax := sourcedocuments.NewTax(reg)
		tax.SetTaxPercentage(decPtr("23"))

		tax.SetTaxPercentage(nil)
		ok := tax.SetTaxAmount(decPtr("1.50"))

		assert.True(t, ok)
		assert.Nil(t, tax.TaxPercentage())
		assert.False(t, reg.HasErrors())
	})

	t.Run("Given a rate above 100 When it is set Then it is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		tax := sourcedocuments.NewTax(reg)

		assert.False(t, tax.SetTaxPercentage(decPtr("123")))
		assert.True(t, reg.Contains("TaxPercentage_not_valid"))
	})

	t.Run("Given a movement tax When an invoice only code is set Then it is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		tax := sourcedocuments.NewMovementTax(reg)

		assert.True(t, tax.SetTaxCode("NOR"))
		assert.False(t, tax.SetTaxCode("NA"))
		assert.Equal(t, []string{"TaxCode_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a tax element without rate nor amount When it is parsed Then it is a format error", func(t *testing.T) {
		node := etree.NewElement("Tax")
		saft.AddText(node, "TaxType", "IVA")
		saft.AddText(node, "TaxCountryRegion", "PT")
		saft.AddText(node, "TaxCode", "NOR")

		err := sourcedocuments.NewTax(saft.NewErrorRegister()).ParseXMLNode(node)

		var missing *saft.MissingElementError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "TaxPercentage", missing.Element)
	})
}

func TestInvoiceLine_CreateXMLNode(t *testing.T) {
	t.Run("Given an empty line When it is written Then mandatory elements are registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewInvoiceLine(reg)

		node, err := line.CreateXMLNode(etree.NewElement("Invoice"))

		require.NoError(t, err)
		assert.NotNil(t, node.SelectElement("Tax"))
		assert.NotNil(t, node.SelectElement("DebitAmount"))
		codes := reg.OnCreateXMLNode()
		assert.Contains(t, codes, "LineNumber_not_valid")
		assert.Contains(t, codes, "ProductCode_not_valid")
		assert.Contains(t, codes, "DebitAmount_not_valid")
		assert.Contains(t, codes, "Tax_not_valid")
	})

	t.Run("Given a filled line When it is written and read back Then the values match", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewInvoiceLine(reg)
		fillInvoiceLine(line, 1, "100.00")
		exemption := enum.TaxExemptionCodeM07
		line.Tax().SetTaxPercentage(decPtr("0"))
		line.Tax().SetTaxCode("ISE")
		line.SetTaxExemptionReason(ptr("Artigo 9.º do CIVA"))
		line.SetTaxExemptionCode(&exemption)

		node, err := line.CreateXMLNode(etree.NewElement("Invoice"))
		require.NoError(t, err)

		back := sourcedocuments.NewInvoiceLine(reg)
		require.NoError(t, back.ParseXMLNode(node))

		assert.Equal(t, 1, back.LineNumber())
		assert.Equal(t, "P1", back.ProductCode())
		assert.True(t, back.CreditAmount().Equal(dec("100")))
		assert.Nil(t, back.DebitAmount())
		assert.Equal(t, "ISE", back.Tax().TaxCode())
		require.NotNil(t, back.TaxExemptionCode())
		assert.Equal(t, enum.TaxExemptionCodeM07, *back.TaxExemptionCode())
		assert.False(t, reg.HasErrors())
	})

	t.Run("Given a payment parent When an invoice line is written Then a node name error is returned", func(t *testing.T) {
		line := sourcedocuments.NewInvoiceLine(saft.NewErrorRegister())

		_, err := line.CreateXMLNode(etree.NewElement("Payment"))

		assert.ErrorIs(t, err, saft.ErrFileFormat)
	})

	t.Run("Given a line without amounts When it is parsed Then DebitAmount is reported missing", func(t *testing.T) {
		node := etree.NewElement("Line")
		saft.AddText(node, "LineNumber", "1")

		err := sourcedocuments.NewPaymentLine(saft.NewErrorRegister()).ParseXMLNode(node)

		var missing *saft.MissingElementError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "DebitAmount", missing.Element)
	})
}

func TestStockMovementLine_OptionalTax(t *testing.T) {
	reg := saft.NewErrorRegister()
	line := sourcedocuments.NewStockMovementLine(reg)
	line.SetLineNumber(1)
	line.SetProductCode("P1")
	line.SetProductDescription("Parafuso")
	line.SetQuantity(dec("10"))
	line.SetUnitOfMeasure("UN")
	line.SetUnitPrice(dec("0.5"))
	line.SetDescription("Parafuso")
	line.SetCreditAmount(decPtr("5"))

	node, err := line.CreateXMLNode(etree.NewElement("StockMovement"))

	require.NoError(t, err)
	assert.Nil(t, node.SelectElement("Tax"))
	assert.False(t, reg.HasErrors())
	assert.Nil(t, line.CalcLine().Tax)
}
