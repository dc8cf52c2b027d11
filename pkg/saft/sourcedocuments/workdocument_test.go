package sourcedocuments_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
	"github.com/ginjaninja78/saft-pt/pkg/saft/sourcedocuments"
)

func fillWorkLine(line *sourcedocuments.WorkDocumentLine, number int, amount, pct string) {
	line.SetLineNumber(number)
	line.SetProductCode("S1")
	line.SetProductDescription("Servico")
	line.SetQuantity(dec("1"))
	line.SetUnitOfMeasure("UN")
	line.SetUnitPrice(dec(amount))
	line.SetTaxPointDate(invoiceDate)
	line.SetDescription("Servico de montagem")
	line.SetCreditAmount(decPtr(amount))
	tax := line.NewTax()
	tax.SetTaxType(enum.TaxTypeIVA)
	tax.SetTaxCountryRegion(enum.TaxCountryRegionPT)
	tax.SetTaxCode("NOR")
	tax.SetTaxPercentage(decPtr(pct))
}

func TestWorkDocument_RoundTrip(t *testing.T) {
	reg := saft.NewErrorRegister()
	w := sourcedocuments.NewWorkDocument(reg)
	w.SetDocumentNumber("OR A/7")
	w.SetATCUD("0")
	st := w.NewDocumentStatus()
	st.SetStatus(enum.WorkStatusN)
	st.SetStatusDate(invoiceDate.Add(8 * time.Hour))
	st.SetSourceID("admin")
	st.SetSource(enum.SourceBillingP)
	w.SetHash("0")
	w.SetHashControl("1")
	w.SetPeriod(ptr(3))
	w.SetWorkDate(invoiceDate)
	w.SetWorkType(enum.WorkTypeOR)
	w.SetSourceID("admin")
	w.SetEACCode(ptr("46900"))
	w.SetSystemEntryDate(invoiceDate.Add(8 * time.Hour))
	w.SetTransactionID(ptr("2024-03-15 VND 7"))
	w.SetCustomerID("C1")

	first := w.AddLine()
	fillWorkLine(first, 1, "10", "23")
	ref := first.AddReferences()
	ref.SetReference(ptr("OR A/5"))
	ref.SetReason(ptr("Revisao de precos"))
	first.AddReferences().SetReference(ptr("OR A/6"))
	order := first.AddOrderReferences()
	order.SetOriginatingON(ptr("NE B/3"))
	first.AddOrderReferences().SetOriginatingON(ptr("NE B/4"))

	exempt := w.AddLine()
	fillWorkLine(exempt, 2, "5", "0")
	exempt.Tax().SetTaxCode("ISE")
	exempt.SetTaxExemptionReason(ptr("Artigo 14.o do RITI"))
	exempt.SetTaxExemptionCode(ptr(enum.TaxExemptionCodeM07))
	exempt.SetTaxBase(decPtr("5"))

	w.NewDocumentTotals().SetFromCalc(w.CalcTotals())
	require.Empty(t, reg.OnSetValue())

	node, err := w.CreateXMLNode(etree.NewElement("WorkingDocuments"))
	require.NoError(t, err)
	require.Empty(t, reg.OnCreateXMLNode())

	readReg := saft.NewErrorRegister()
	back := sourcedocuments.NewWorkDocument(readReg)
	require.NoError(t, back.ParseXMLNode(node))
	assert.False(t, readReg.HasErrors())

	t.Run("Given the parsed document When the header is read Then it matches", func(t *testing.T) {
		assert.Equal(t, "OR A/7", back.DocumentNumber())
		assert.Equal(t, invoiceDate, back.WorkDate())
		assert.Equal(t, enum.WorkTypeOR, back.WorkType())
		assert.Equal(t, enum.WorkStatusN, back.DocumentStatus().Status())
		assert.Equal(t, 3, *back.Period())
		assert.Equal(t, "46900", *back.EACCode())
		assert.Equal(t, "2024-03-15 VND 7", *back.TransactionID())
		assert.Equal(t, "C1", back.CustomerID())
	})

	t.Run("Given the first line When its references are read Then they keep their order", func(t *testing.T) {
		require.Len(t, back.Lines(), 2)
		refs := back.Lines()[0].References()
		require.Len(t, refs, 2)
		assert.Equal(t, "OR A/5", *refs[0].Reference())
		assert.Equal(t, "Revisao de precos", *refs[0].Reason())
		assert.Equal(t, "OR A/6", *refs[1].Reference())
		assert.Nil(t, refs[1].Reason())
		orders := back.Lines()[0].OrderReferences()
		require.Len(t, orders, 2)
		assert.Equal(t, "NE B/3", *orders[0].OriginatingON())
		assert.Equal(t, "NE B/4", *orders[1].OriginatingON())
	})

	t.Run("Given the exempt line When it is read Then the exemption and tax base survive", func(t *testing.T) {
		l := back.Lines()[1]
		assert.Equal(t, "ISE", l.Tax().TaxCode())
		assert.True(t, dec("0").Equal(*l.Tax().TaxPercentage()))
		assert.Equal(t, enum.TaxExemptionCodeM07, *l.TaxExemptionCode())
		assert.Equal(t, "Artigo 14.o do RITI", *l.TaxExemptionReason())
		assert.True(t, dec("5").Equal(*l.TaxBase()))
		assert.Equal(t, invoiceDate, l.TaxPointDate())
		assert.Empty(t, l.References())
	})

	t.Run("Given the parsed totals When they are read Then they match the lines", func(t *testing.T) {
		totals := back.DocumentTotals()
		assert.True(t, dec("2.3").Equal(totals.TaxPayable()), totals.TaxPayable().String())
		assert.True(t, dec("15").Equal(totals.NetTotal()), totals.NetTotal().String())
		assert.True(t, dec("17.3").Equal(totals.GrossTotal()), totals.GrossTotal().String())
		assert.Nil(t, totals.Currency())
	})
}

func TestWorkDocumentLine_MissingTax(t *testing.T) {
	t.Run("Given a line without tax When it is written Then Tax_not_valid is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewWorkDocumentLine(reg)
		line.SetLineNumber(1)
		line.SetCreditAmount(decPtr("10"))

		_, err := line.CreateXMLNode(etree.NewElement("WorkDocument"))

		require.NoError(t, err)
		assert.Contains(t, reg.OnCreateXMLNode(), "Tax_not_valid")
	})
}
