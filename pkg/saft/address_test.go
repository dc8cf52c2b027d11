package saft_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

func TestAddress(t *testing.T) {
	t.Run("Given a PT address When the postal code is not NNNN-NNN Then it is registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		a := saft.NewAddressPT(reg, "CompanyAddress")

		ok := a.SetPostalCode("1000")

		assert.False(t, ok)
		assert.Equal(t, "1000", a.PostalCode())
		assert.Equal(t, []string{"PostalCode_not_valid"}, reg.OnSetValue())
	})

	t.Run("Given a PT address When another country is set Then it is rejected", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		a := saft.NewAddressPT(reg, "CompanyAddress")

		assert.Equal(t, enum.CountryPT, a.Country())
		assert.False(t, a.SetCountry(enum.Country("ES")))
		assert.True(t, reg.Contains("Country_not_valid"))
	})

	t.Run("Given a foreign address When any postal code is set Then it is accepted", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		a := saft.NewAddress(reg, "BillingAddress")

		assert.True(t, a.SetPostalCode("28001"))
		assert.True(t, a.SetCountry(enum.Country("ES")))
		assert.False(t, reg.HasErrors())
	})

	t.Run("Given a filled address When it is written and read back Then the values match", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		a := saft.NewAddress(reg, "BillingAddress")
		a.SetBuildingNumber(ptr("12"))
		a.SetStreetName(ptr("Rua Augusta"))
		a.SetAddressDetail("Rua Augusta 12, 2 Esq")
		a.SetCity("Lisboa")
		a.SetPostalCode("1100-048")
		a.SetCountry(enum.CountryPT)

		parent := etree.NewElement("Customer")
		node, err := a.CreateXMLNode(parent)
		require.NoError(t, err)
		assert.Equal(t, "BillingAddress", node.Tag)

		b := saft.NewAddress(reg, "BillingAddress")
		require.NoError(t, b.ParseXMLNode(node))

		require.NotNil(t, b.BuildingNumber())
		assert.Equal(t, "12", *b.BuildingNumber())
		assert.Equal(t, "Rua Augusta", *b.StreetName())
		assert.Equal(t, "Rua Augusta 12, 2 Esq", b.AddressDetail())
		assert.Equal(t, "Lisboa", b.City())
		assert.Equal(t, "1100-048", b.PostalCode())
		assert.Nil(t, b.Region())
		assert.Equal(t, enum.CountryPT, b.Country())
		assert.False(t, reg.HasErrors())
	})

	t.Run("Given an empty address When it is written Then mandatory elements are registered", func(t *testing.T) {
		reg := saft.NewErrorRegister()
		a := saft.NewAddress(reg, "ShipToAddress")

		_, err := a.CreateXMLNode(etree.NewElement("ShipTo"))

		require.NoError(t, err)
		assert.Equal(t, []string{
			"AddressDetail_not_valid",
			"City_not_valid",
			"PostalCode_not_valid",
			"Country_not_valid",
		}, reg.OnCreateXMLNode())
	})

	t.Run("Given a node with another name When it is parsed Then a node name error is returned", func(t *testing.T) {
		a := saft.NewAddress(saft.NewErrorRegister(), "BillingAddress")

		err := a.ParseXMLNode(etree.NewElement("ShipToAddress"))

		assert.ErrorIs(t, err, saft.ErrFileFormat)
	})
}
