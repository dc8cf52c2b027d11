package enum_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

func TestNewCode(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		v, err := enum.NewInvoiceType("FR")

		require.NoError(t, err)
		assert.Equal(t, enum.InvoiceTypeFR, v)
	})

	t.Run("unknown code", func(t *testing.T) {
		v, err := enum.NewInvoiceType("XX")

		var codeErr *enum.InvalidCodeError
		require.ErrorAs(t, err, &codeErr)
		assert.Equal(t, "InvoiceType", codeErr.Enum)
		assert.Equal(t, "XX", codeErr.Code)
		assert.ErrorIs(t, err, enum.ErrInvalidCode)
		assert.Equal(t, enum.InvoiceType("XX"), v)
	})

	t.Run("codes are case sensitive", func(t *testing.T) {
		_, err := enum.NewExportType("c")

		assert.Error(t, err)
	})
}

func TestValid(t *testing.T) {
	assert.True(t, enum.ExportTypeC.Valid())
	assert.False(t, enum.ExportType("").Valid())
	assert.True(t, enum.CountryUnknown.Valid())
	assert.True(t, enum.Country("ES").Valid())
	assert.False(t, enum.Country("PT-AC").Valid())
	assert.True(t, enum.TaxCountryRegionPTAC.Valid())
	assert.True(t, enum.TaxCountryRegion("FR").Valid())
	assert.False(t, enum.InvoiceStatus("X").Valid())
}

func TestValues(t *testing.T) {
	t.Run("values are sorted", func(t *testing.T) {
		values := enum.InvoiceStatusValues()

		assert.Len(t, values, 5)
		assert.True(t, sort.SliceIsSorted(values, func(i, j int) bool { return values[i] < values[j] }))
	})

	t.Run("export types", func(t *testing.T) {
		assert.Equal(t, []enum.ExportType{enum.ExportTypeC, enum.ExportTypeS}, enum.ExportTypeValues())
	})

	t.Run("every value is valid", func(t *testing.T) {
		for _, v := range enum.CountryValues() {
			assert.True(t, v.Valid(), "country %s", v)
		}
	})
}
