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

func buildPayment(reg *saft.ErrorRegister) *sourcedocuments.Payment {
	p := sourcedocuments.NewPayment(reg)
	p.SetPaymentRefNo("RG A/1")
	p.SetATCUD("0")
	p.SetPeriod(ptr(3))
	p.SetTransactionID(ptr("2024-03-15 REC 1"))
	p.SetTransactionDate(invoiceDate)
	p.SetPaymentType(enum.PaymentTypeRG)
	p.SetDescription(ptr("Liquidacao de marco"))
	p.SetSystemID(ptr("REC-2024-0001"))
	st := p.NewDocumentStatus()
	st.SetStatus(enum.PaymentStatusN)
	st.SetStatusDate(invoiceDate.Add(15 * time.Hour))
	st.SetSourceID("admin")
	st.SetSource(enum.SourcePaymentP)

	transfer := p.AddPaymentMethod()
	transfer.SetPaymentMechanism(ptr(enum.PaymentMechanismTB))
	transfer.SetPaymentAmount(dec("100"))
	transfer.SetPaymentDate(invoiceDate)
	cash := p.AddPaymentMethod()
	cash.SetPaymentMechanism(ptr(enum.PaymentMechanismNU))
	cash.SetPaymentAmount(dec("46"))
	cash.SetPaymentDate(invoiceDate.AddDate(0, 0, 1))

	p.SetSourceID("admin")
	p.SetSystemEntryDate(invoiceDate.Add(15 * time.Hour))
	p.SetCustomerID("C1")

	first := p.AddLine()
	first.SetLineNumber(1)
	src := first.AddSourceDocumentID()
	src.SetOriginatingON("FT A/1")
	src.SetInvoiceDate(invoiceDate.AddDate(0, -1, 0))
	src.SetDescription(ptr("Fatura de fevereiro"))
	second := first.AddSourceDocumentID()
	second.SetOriginatingON("FT A/2")
	second.SetInvoiceDate(invoiceDate.AddDate(0, 0, -3))
	first.SetSettlementAmount(decPtr("2.46"))
	first.SetCreditAmount(decPtr("100"))
	tax := first.NewTax()
	tax.SetTaxType(enum.TaxTypeIVA)
	tax.SetTaxCountryRegion(enum.TaxCountryRegionPT)
	tax.SetTaxCode("NOR")
	tax.SetTaxPercentage(decPtr("23"))

	last := p.AddLine()
	last.SetLineNumber(2)
	third := last.AddSourceDocumentID()
	third.SetOriginatingON("FT A/3")
	third.SetInvoiceDate(invoiceDate)
	last.SetCreditAmount(decPtr("23"))

	totals := p.NewDocumentTotals()
	totals.SetFromCalc(p.CalcTotals())
	settlement := totals.NewSettlement()
	settlement.SetSettlementDiscount(ptr("2% pronto pagamento"))
	settlement.SetSettlementAmount(decPtr("2.46"))
	settlement.SetSettlementDate(ptr(invoiceDate))
	settlement.SetPaymentTerms(ptr("30 dias"))
	currency := totals.NewCurrency()
	currency.SetCurrencyCode(enum.CurrencyCodeUSD)
	currency.SetCurrencyAmount(dec("158.70"))
	currency.SetExchangeRate(dec("0.92"))

	irs := p.AddWithholdingTax()
	irs.SetWithholdingTaxType(ptr(enum.WithholdingTaxTypeIRS))
	irs.SetWithholdingTaxDescription(ptr("Artigo 101.o do CIRS"))
	irs.SetWithholdingTaxAmount(dec("11.5"))
	stamp := p.AddWithholdingTax()
	stamp.SetWithholdingTaxType(ptr(enum.WithholdingTaxTypeIS))
	stamp.SetWithholdingTaxAmount(dec("0.4"))
	return p
}

func TestPayment_RoundTrip(t *testing.T) {
	reg := saft.NewErrorRegister()
	p := buildPayment(reg)
	require.Empty(t, reg.OnSetValue())

	node, err := p.CreateXMLNode(etree.NewElement("Payments"))
	require.NoError(t, err)
	require.Empty(t, reg.OnCreateXMLNode())

	readReg := saft.NewErrorRegister()
	back := sourcedocuments.NewPayment(readReg)
	require.NoError(t, back.ParseXMLNode(node))
	assert.False(t, readReg.HasErrors())

	t.Run("Given the parsed receipt When the header is read Then it matches", func(t *testing.T) {
		assert.Equal(t, "RG A/1", back.PaymentRefNo())
		assert.Equal(t, invoiceDate, back.TransactionDate())
		assert.Equal(t, enum.PaymentTypeRG, back.PaymentType())
		assert.Equal(t, "Liquidacao de marco", *back.Description())
		assert.Equal(t, "REC-2024-0001", *back.SystemID())
		assert.Equal(t, "2024-03-15 REC 1", *back.TransactionID())
		assert.Equal(t, enum.SourcePaymentP, back.DocumentStatus().Source())
		assert.Equal(t, "C1", back.CustomerID())
	})

	t.Run("Given the parsed receipt When the payment methods are read Then they keep their order", func(t *testing.T) {
		methods := back.PaymentMethod()
		require.Len(t, methods, 2)
		assert.Equal(t, enum.PaymentMechanismTB, *methods[0].PaymentMechanism())
		assert.True(t, dec("100").Equal(methods[0].PaymentAmount()))
		assert.Equal(t, enum.PaymentMechanismNU, *methods[1].PaymentMechanism())
		assert.Equal(t, invoiceDate.AddDate(0, 0, 1), methods[1].PaymentDate())
	})

	t.Run("Given the first line When the settled documents are read Then they keep their order", func(t *testing.T) {
		require.Len(t, back.Lines(), 2)
		l := back.Lines()[0]
		sources := l.SourceDocumentID()
		require.Len(t, sources, 2)
		assert.Equal(t, "FT A/1", sources[0].OriginatingON())
		assert.Equal(t, invoiceDate.AddDate(0, -1, 0), sources[0].InvoiceDate())
		assert.Equal(t, "Fatura de fevereiro", *sources[0].Description())
		assert.Equal(t, "FT A/2", sources[1].OriginatingON())
		assert.Nil(t, sources[1].Description())
		assert.True(t, dec("2.46").Equal(*l.SettlementAmount()))
		require.NotNil(t, l.Tax())
		assert.Nil(t, back.Lines()[1].Tax())
		assert.Equal(t, "FT A/3", back.Lines()[1].SourceDocumentID()[0].OriginatingON())
	})

	t.Run("Given the parsed totals When they are read Then settlement and currency survive", func(t *testing.T) {
		totals := back.DocumentTotals()
		assert.True(t, dec("23").Equal(totals.TaxPayable()), totals.TaxPayable().String())
		assert.True(t, dec("123").Equal(totals.NetTotal()), totals.NetTotal().String())
		assert.True(t, dec("146").Equal(totals.GrossTotal()), totals.GrossTotal().String())
		require.NotNil(t, totals.Settlement())
		assert.Equal(t, "2% pronto pagamento", *totals.Settlement().SettlementDiscount())
		assert.True(t, dec("2.46").Equal(*totals.Settlement().SettlementAmount()))
		assert.Equal(t, invoiceDate, *totals.Settlement().SettlementDate())
		assert.Equal(t, "30 dias", *totals.Settlement().PaymentTerms())
		require.NotNil(t, totals.Currency())
		assert.Equal(t, enum.CurrencyCodeUSD, totals.Currency().CurrencyCode())
		assert.True(t, dec("158.70").Equal(totals.Currency().CurrencyAmount()))
	})

	t.Run("Given the parsed receipt When the withholding taxes are read Then they keep their order", func(t *testing.T) {
		wt := back.WithholdingTax()
		require.Len(t, wt, 2)
		assert.Equal(t, enum.WithholdingTaxTypeIRS, *wt[0].WithholdingTaxType())
		assert.Equal(t, "Artigo 101.o do CIRS", *wt[0].WithholdingTaxDescription())
		assert.True(t, dec("11.5").Equal(wt[0].WithholdingTaxAmount()))
		assert.Equal(t, enum.WithholdingTaxTypeIS, *wt[1].WithholdingTaxType())
		assert.Nil(t, wt[1].WithholdingTaxDescription())
	})
}

func TestPaymentLine_SourceDocumentRequired(t *testing.T) {
	t.Run("Given a line without source documents When it is written Then SourceDocumentID_not_valid is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		line := sourcedocuments.NewPaymentLine(reg)
		line.SetLineNumber(1)
		line.SetCreditAmount(decPtr("10"))

		_, err := line.CreateXMLNode(etree.NewElement("Payment"))

		require.NoError(t, err)
		assert.Equal(t, []string{"SourceDocumentID_not_valid"}, reg.OnCreateXMLNode())
	})
}
