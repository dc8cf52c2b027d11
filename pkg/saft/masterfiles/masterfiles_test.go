package masterfiles_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
	"github.com/ginjaninja78/saft-pt/pkg/saft/masterfiles"
)

func ptr[T any](v T) *T { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCustomer(t *testing.T) {
	t.Run("Given a complete customer When it is written and read back Then the values match", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		c := masterfiles.NewCustomer(reg)
		c.SetCustomerID("C1")
		c.SetAccountID(masterfiles.AccountIDUnknown)
		c.SetCustomerTaxID("999999990")
		c.SetCompanyName("Consumidor final")
		addr := c.NewBillingAddress()
		addr.SetAddressDetail("Desconhecido")
		addr.SetCity("Desconhecido")
		addr.SetPostalCode("Desconhecido")
		addr.SetCountry(enum.CountryUnknown)
		ship := c.AddShipToAddress()
		ship.SetAddressDetail("Rua do Ouro 1")
		ship.SetCity("Lisboa")
		ship.SetPostalCode("1100-060")
		ship.SetCountry(enum.CountryPT)
		c.SetEmail(ptr("geral@example.pt"))
		c.SetSelfBillingIndicator(0)

		node, err := c.CreateXMLNode(etree.NewElement("MasterFiles"))
		require.NoError(t, err)
		require.Empty(t, reg.OnCreateXMLNode())

		back := masterfiles.NewCustomer(reg)
		require.NoError(t, back.ParseXMLNode(node))

		assert.Equal(t, "C1", back.CustomerID())
		assert.Equal(t, "999999990", back.CustomerTaxID())
		assert.Equal(t, enum.CountryUnknown, back.BillingAddress().Country())
		require.Len(t, back.ShipToAddress(), 1)
		assert.Equal(t, "Lisboa", back.ShipToAddress()[0].City())
		assert.Equal(t, "geral@example.pt", *back.Email())
		assert.False(t, reg.HasErrors())
	})

	t.Run("Given a malformed email When it is set Then it is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		c := masterfiles.NewCustomer(reg)

		assert.False(t, c.SetEmail(ptr("geral.example.pt")))
		assert.Equal(t, []string{"Email_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a customer without billing address When it is written Then BillingAddress is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		c := masterfiles.NewCustomer(reg)

		node, err := c.CreateXMLNode(etree.NewElement("MasterFiles"))

		require.NoError(t, err)
		assert.NotNil(t, node.SelectElement("BillingAddress"))
		assert.Contains(t, reg.OnCreateXMLNode(), "BillingAddress_not_valid")
		assert.Contains(t, reg.OnCreateXMLNode(), "CustomerID_not_valid")
	})

	t.Run("Given a supplier node When it is parsed as a customer Then a node name error is returned", func(t *testing.T) {
		err := masterfiles.NewCustomer(saft.NewErrorRegister()).ParseXMLNode(etree.NewElement("Supplier"))

		assert.ErrorIs(t, err, saft.ErrFileFormat)
	})
}

func TestSupplier_Tags(t *testing.T) {
	reg := saft.NewErrorRegister()
	s := masterfiles.NewSupplier(reg)
	s.SetSupplierID("F1")
	s.AddShipFromAddress()

	node, err := s.CreateXMLNode(etree.NewElement("MasterFiles"))

	require.NoError(t, err)
	assert.Equal(t, "Supplier", node.Tag)
	assert.Equal(t, "F1", node.SelectElement("SupplierID").Text())
	assert.NotNil(t, node.SelectElement("SupplierTaxID"))
	assert.NotNil(t, node.SelectElement("ShipFromAddress"))
}

func TestProduct(t *testing.T) {
	t.Run("Given a product When it is written and read back Then the values match", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		p := masterfiles.NewProduct(reg)
		p.SetProductType(enum.ProductTypeP)
		p.SetProductCode("P1")
		p.SetProductGroup(ptr("Ferragens"))
		p.SetProductDescription("Parafuso M6")
		p.SetProductNumberCode("5601234567890")

		node, err := p.CreateXMLNode(etree.NewElement("MasterFiles"))
		require.NoError(t, err)

		back := masterfiles.NewProduct(reg)
		require.NoError(t, back.ParseXMLNode(node))

		assert.Equal(t, enum.ProductTypeP, back.ProductType())
		assert.Equal(t, "P1", back.ProductCode())
		assert.Equal(t, "Ferragens", *back.ProductGroup())
		assert.Nil(t, back.CustomsDetails())
		assert.False(t, reg.HasErrors())
	})

	t.Run("Given an unknown product type in the file When it is parsed Then the cause is an invalid code", func(t *testing.T) {
		node := etree.NewElement("Product")
		saft.AddText(node, "ProductType", "X")

		err := masterfiles.NewProduct(saft.NewErrorRegister()).ParseXMLNode(node)

		var valueErr *saft.ValueError
		require.ErrorAs(t, err, &valueErr)
		assert.Equal(t, "ProductType", valueErr.Element)
		assert.ErrorIs(t, valueErr.Cause, enum.ErrInvalidCode)
		assert.ErrorIs(t, err, saft.ErrFileFormat)
	})
}

func TestTaxTable(t *testing.T) {
	newEntry := func(table *masterfiles.TaxTable, code, pct string) *masterfiles.TaxTableEntry {
		e := table.AddTaxTableEntry()
		e.SetTaxType(enum.TaxTypeIVA)
		e.SetTaxCountryRegion(enum.TaxCountryRegionPT)
		e.SetTaxCode(code)
		e.SetDescription("Taxa " + code)
		e.SetTaxPercentage(decPtr(pct))
		return e
	}

	t.Run("Given a table When an entry is looked up Then type, region and code must match", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		table := masterfiles.NewTaxTable(reg)
		newEntry(table, "NOR", "23")
		red := newEntry(table, "RED", "6")

		assert.Same(t, red, table.Find(enum.TaxTypeIVA, enum.TaxCountryRegionPT, "RED"))
		assert.Nil(t, table.Find(enum.TaxTypeIVA, enum.TaxCountryRegionPTAC, "RED"))
		assert.Nil(t, table.Find(enum.TaxTypeIS, enum.TaxCountryRegionPT, "RED"))
	})

	t.Run("Given an entry with a rate When a fixed amount is set Then it is refused", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		e := newEntry(masterfiles.NewTaxTable(reg), "NOR", "23")

		assert.False(t, e.SetTaxAmount(decPtr("1")))
		assert.Nil(t, e.TaxAmount())
		assert.Equal(t, []string{"TaxAmount_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given an entry without rate When it is written Then TaxPercentage is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		e := masterfiles.NewTaxTableEntry(reg)

		node, err := e.CreateXMLNode(etree.NewElement("TaxTable"))

		require.NoError(t, err)
		assert.NotNil(t, node.SelectElement("TaxPercentage"))
		assert.Contains(t, reg.OnCreateXMLNode(), "TaxPercentage_not_valid")
	})
}

func TestMasterFiles_Keys(t *testing.T) {
	reg := saft.NewErrorRegister()
	m := masterfiles.NewMasterFiles(reg)
	m.AddCustomer().SetCustomerID("C1")
	m.AddCustomer().SetCustomerID("C2")
	m.AddSupplier().SetSupplierID("F1")
	m.AddProduct().SetProductCode("P1")

	assert.Len(t, m.CustomerIDs(), 2)
	assert.Contains(t, m.CustomerIDs(), "C2")
	assert.Contains(t, m.SupplierIDs(), "F1")
	assert.Contains(t, m.ProductCodes(), "P1")
}
