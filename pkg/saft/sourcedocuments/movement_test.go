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

func TestStockMovement_CustomerOrSupplier(t *testing.T) {
	t.Run("Given a customer When a supplier is set Then it is refused", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		s := sourcedocuments.NewStockMovement(reg)

		assert.True(t, s.SetCustomerID("C1"))
		assert.False(t, s.SetSupplierID(ptr("S1")))

		assert.Nil(t, s.SupplierID())
		assert.Equal(t, "C1", s.CustomerID())
		assert.Equal(t, []string{"SupplierID_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a supplier When a customer is set Then it is refused", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		s := sourcedocuments.NewStockMovement(reg)

		assert.True(t, s.SetSupplierID(ptr("S1")))
		assert.False(t, s.SetCustomerID("C1"))

		assert.False(t, s.IsSetCustomerID())
		assert.Equal(t, []string{"CustomerID_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a customer When the supplier is cleared Then nothing is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		s := sourcedocuments.NewStockMovement(reg)
		s.SetCustomerID("C1")

		assert.True(t, s.SetSupplierID(nil))
		assert.Empty(t, reg.OnSetValue())
	})
}

func TestMovementOfGoods_Tally(t *testing.T) {
	reg := saft.NewErrorRegister()
	m := sourcedocuments.NewMovementOfGoods(reg)
	add := func(number string, status enum.MovementStatus, quantities ...string) {
		s := m.AddStockMovement()
		s.SetDocumentNumber(number)
		s.SetMovementDate(invoiceDate)
		s.SetMovementType(enum.MovementTypeGT)
		s.NewDocumentStatus().SetStatus(status)
		for i, q := range quantities {
			line := s.AddLine()
			line.SetLineNumber(i + 1)
			line.SetQuantity(dec(q))
		}
	}
	add("GT A/1", enum.MovementStatusN, "10", "2.5")
	add("GT A/2", enum.MovementStatusA, "100")
	add("GT A/3", enum.MovementStatusF, "7")
	add("GT A/4", enum.MovementStatusT, "1")

	lines, quantity := m.Tally()

	assert.Equal(t, 3, lines)
	assert.True(t, dec("13.5").Equal(quantity), quantity.String())
	assert.True(t, dec("12.5").Equal(m.StockMovement()[0].QuantityIssued()))

	m.SetFromTally()

	assert.Equal(t, 3, m.NumberOfMovementLines())
	assert.True(t, dec("13.5").Equal(m.TotalQuantityIssued()))
	assert.Empty(t, reg.OnSetValue())
}

func fillMovementLine(line *sourcedocuments.StockMovementLine, number int, quantity, amount string) {
	line.SetLineNumber(number)
	line.SetProductCode("P1")
	line.SetProductDescription("Parafuso")
	line.SetQuantity(dec(quantity))
	line.SetUnitOfMeasure("UN")
	line.SetUnitPrice(dec("0.5"))
	line.SetDescription("Parafuso M6")
	line.SetCreditAmount(decPtr(amount))
}

// warehousePairs renders the WarehouseID/LocationID pairs, "-" for absent.
func warehousePairs(ws []*sourcedocuments.Warehouse) [][2]string {
	val := func(v *string) string {
		if v == nil {
			return "-"
		}
		return *v
	}
	out := make([][2]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, [2]string{val(w.WarehouseID()), val(w.LocationID())})
	}
	return out
}

func TestStockMovement_RoundTrip(t *testing.T) {
	reg := saft.NewErrorRegister()
	s := sourcedocuments.NewStockMovement(reg)
	s.SetDocumentNumber("GR A/1")
	s.SetATCUD("0")
	st := s.NewDocumentStatus()
	st.SetStatus(enum.MovementStatusN)
	st.SetStatusDate(invoiceDate.Add(9 * time.Hour))
	st.SetSourceID("admin")
	st.SetSource(enum.SourceBillingP)
	s.SetHash("0")
	s.SetHashControl("1")
	s.SetMovementDate(invoiceDate)
	s.SetMovementType(enum.MovementTypeGR)
	s.SetSystemEntryDate(invoiceDate.Add(9 * time.Hour))
	s.SetCustomerID("C1")
	s.SetSourceID("admin")
	s.SetMovementComments(ptr("Entrega parcial"))

	shipTo := s.NewShipTo()
	shipTo.AddDeliveryID("D-1")
	shipTo.AddDeliveryID("D-2")
	shipTo.SetDeliveryDate(ptr(invoiceDate))
	first := shipTo.AddWarehouse()
	first.SetWarehouseID(ptr("ARM1"))
	first.SetLocationID(ptr("A-01"))
	second := shipTo.AddWarehouse()
	second.SetWarehouseID(ptr("ARM2"))
	second.SetLocationID(ptr("B-07"))
	addr := shipTo.NewAddress()
	addr.SetAddressDetail("Rua do Ouro 10")
	addr.SetCity("Porto")
	addr.SetPostalCode("4000-001")
	addr.SetCountry(enum.CountryPT)
	s.NewShipFrom().AddDeliveryID("ORIG-9")
	start := invoiceDate.Add(11 * time.Hour)
	s.SetMovementStartTime(&start)
	s.SetATDocCodeID(ptr("AT123456"))

	line := s.AddLine()
	fillMovementLine(line, 1, "10", "5")
	order := line.AddOrderReferences()
	order.SetOriginatingON(ptr("NE A/1"))
	order.SetOrderDate(ptr(invoiceDate))
	line.AddOrderReferences().SetOriginatingON(ptr("NE A/2"))
	serials := line.NewProductSerialNumber()
	serials.AddSerialNumber("SN-001")
	serials.AddSerialNumber("SN-002")
	tax := line.NewTax()
	tax.SetTaxType(enum.MovementTaxTypeIVA)
	tax.SetTaxCountryRegion(enum.TaxCountryRegionPT)
	tax.SetTaxCode("NOR")
	tax.SetTaxPercentage(dec("23"))
	customs := line.NewCustomsInformation()
	customs.AddARCNo("PT00000000000000001")
	customs.AddARCNo("PT00000000000000002")
	customs.SetIECAmount(decPtr("1.5"))
	fillMovementLine(s.AddLine(), 2, "4", "2")

	totals := s.NewDocumentTotals()
	totals.SetFromCalc(s.CalcTotals())
	currency := totals.NewCurrency()
	currency.SetCurrencyCode(enum.CurrencyCodeUSD)
	currency.SetCurrencyAmount(dec("8.86"))
	currency.SetExchangeRate(dec("0.92"))
	require.Empty(t, reg.OnSetValue())

	node, err := s.CreateXMLNode(etree.NewElement("MovementOfGoods"))
	require.NoError(t, err)
	require.Empty(t, reg.OnCreateXMLNode())

	readReg := saft.NewErrorRegister()
	back := sourcedocuments.NewStockMovement(readReg)
	require.NoError(t, back.ParseXMLNode(node))
	assert.False(t, readReg.HasErrors())

	t.Run("Given the parsed movement When the header is read Then it matches", func(t *testing.T) {
		assert.Equal(t, "GR A/1", back.DocumentNumber())
		assert.Equal(t, invoiceDate, back.MovementDate())
		assert.Equal(t, enum.MovementTypeGR, back.MovementType())
		assert.Equal(t, enum.MovementStatusN, back.DocumentStatus().Status())
		assert.Equal(t, "C1", back.CustomerID())
		assert.Nil(t, back.SupplierID())
		assert.Equal(t, "Entrega parcial", *back.MovementComments())
		assert.Equal(t, "AT123456", *back.ATDocCodeID())
		require.NotNil(t, back.MovementStartTime())
		assert.Equal(t, start, *back.MovementStartTime())
		assert.Nil(t, back.MovementEndTime())
	})

	t.Run("Given the parsed movement When the shipping blocks are read Then entries keep their order", func(t *testing.T) {
		require.NotNil(t, back.ShipTo())
		assert.Equal(t, []string{"D-1", "D-2"}, back.ShipTo().DeliveryID())
		assert.Equal(t, invoiceDate, *back.ShipTo().DeliveryDate())
		assert.Equal(t, [][2]string{{"ARM1", "A-01"}, {"ARM2", "B-07"}}, warehousePairs(back.ShipTo().Warehouse()))
		require.NotNil(t, back.ShipTo().Address())
		assert.Equal(t, "Porto", back.ShipTo().Address().City())
		require.NotNil(t, back.ShipFrom())
		assert.Equal(t, []string{"ORIG-9"}, back.ShipFrom().DeliveryID())
		assert.Nil(t, back.ShipFrom().Address())
	})

	t.Run("Given the first line When its collections are read Then they keep their order", func(t *testing.T) {
		require.Len(t, back.Lines(), 2)
		l := back.Lines()[0]
		require.Len(t, l.OrderReferences(), 2)
		assert.Equal(t, "NE A/1", *l.OrderReferences()[0].OriginatingON())
		assert.Equal(t, invoiceDate, *l.OrderReferences()[0].OrderDate())
		assert.Equal(t, "NE A/2", *l.OrderReferences()[1].OriginatingON())
		assert.Nil(t, l.OrderReferences()[1].OrderDate())
		assert.Equal(t, []string{"SN-001", "SN-002"}, l.ProductSerialNumber().SerialNumber())
		assert.Equal(t, []string{"PT00000000000000001", "PT00000000000000002"}, l.CustomsInformation().ARCNo())
		assert.True(t, dec("1.5").Equal(*l.CustomsInformation().IECAmount()))
		require.NotNil(t, l.Tax())
		assert.True(t, dec("23").Equal(l.Tax().TaxPercentage()))
		assert.Nil(t, back.Lines()[1].Tax())
		assert.Nil(t, back.Lines()[1].ProductSerialNumber())
	})

	t.Run("Given the parsed totals When they are read Then the currency survives", func(t *testing.T) {
		assert.True(t, dec("8.15").Equal(back.DocumentTotals().GrossTotal()), back.DocumentTotals().GrossTotal().String())
		assert.True(t, dec("14").Equal(back.QuantityIssued()))
		require.NotNil(t, back.DocumentTotals().Currency())
		assert.Equal(t, enum.CurrencyCodeUSD, back.DocumentTotals().Currency().CurrencyCode())
		assert.True(t, dec("0.92").Equal(back.DocumentTotals().Currency().ExchangeRate()))
	})
}

func TestShipping_WarehousePairs(t *testing.T) {
	tests := []struct {
		name  string
		pairs [][2]string
	}{
		{name: "two complete pairs", pairs: [][2]string{{"ARM1", "A-01"}, {"ARM2", "B-07"}}},
		{name: "location only then a pair", pairs: [][2]string{{"-", "A-01"}, {"ARM2", "B-07"}}},
		{name: "warehouse only then a pair", pairs: [][2]string{{"ARM1", "-"}, {"ARM2", "B-07"}}},
		{name: "single warehouse", pairs: [][2]string{{"ARM1", "-"}}},
	}
	opt := func(v string) *string {
		if v == "-" {
			return nil
		}
		return &v
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := sourcedocuments.NewShipFrom(saft.NewErrorRegister())
			for _, p := range tt.pairs {
				w := ship.AddWarehouse()
				w.SetWarehouseID(opt(p[0]))
				w.SetLocationID(opt(p[1]))
			}

			node, err := ship.CreateXMLNode(etree.NewElement("StockMovement"))
			require.NoError(t, err)
			back := sourcedocuments.NewShipFrom(saft.NewErrorRegister())
			require.NoError(t, back.ParseXMLNode(node))

			assert.Equal(t, tt.pairs, warehousePairs(back.Warehouse()))
		})
	}
}
