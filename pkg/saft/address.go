// =============================================================================
// SAF-T (PT) - Address Structures
// =============================================================================
//
// AddressStructure is used for customers, suppliers and the ShipTo/ShipFrom
// blocks. AddressStructurePT is used for the company address in the header
// and differs only in the postal code format and the fixed country.
//
// The same structure appears under several element names (BillingAddress,
// ShipToAddress, CompanyAddress, Address...), so the element name is given
// when the address is created.
//
// =============================================================================

package saft

import (
	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// Address is an AddressStructure or AddressStructurePT element.
type Address struct {
	reg *ErrorRegister
	tag string
	pt  bool

	buildingNumber *string
	streetName     *string
	addressDetail  Field[string]
	city           Field[string]
	postalCode     Field[string]
	region         *string
	country        Field[enum.Country]
}

// NewAddress creates an AddressStructure named tag.
func NewAddress(reg *ErrorRegister, tag string) *Address {
	return &Address{reg: reg, tag: tag}
}

// NewAddressPT creates an AddressStructurePT named tag. Its country is
// always PT.
func NewAddressPT(reg *ErrorRegister, tag string) *Address {
	a := &Address{reg: reg, tag: tag, pt: true}
	a.country.Set(enum.CountryPT)
	return a
}

// Tag returns the element name of the address.
func (a *Address) Tag() string { return a.tag }

// IsPT reports whether a is an AddressStructurePT.
func (a *Address) IsPT() bool { return a.pt }

// BuildingNumber returns the building number or nil.
func (a *Address) BuildingNumber() *string { return a.buildingNumber }

// SetBuildingNumber sets the optional building number, 1 to 10 characters.
func (a *Address) SetBuildingNumber(v *string) bool {
	return SetOptText(a.reg, &a.buildingNumber, TextMax10, "BuildingNumber", v)
}

// StreetName returns the street name, nil when absent.
func (a *Address) StreetName() *string { return a.streetName }

// SetStreetName sets the optional street name, 1 to 200 characters.
func (a *Address) SetStreetName(v *string) bool {
	return SetOptText(a.reg, &a.streetName, TextMax200, "StreetName", v)
}

// AddressDetail appends a new ress detail and returns it.
func (a *Address) AddressDetail() string { return a.addressDetail.Get() }
// IsSetAddressDetail reports whether AddressDetail holds a value.
func (a *Address) IsSetAddressDetail() bool { return a.addressDetail.IsSet() }

// SetAddressDetail sets the full address line, 1 to 210 characters.
func (a *Address) SetAddressDetail(v string) bool {
	return SetText(a.reg, &a.addressDetail, TextMax210, "AddressDetail", v)
}

// City returns the city.
func (a *Address) City() string { return a.city.Get() }
// IsSetCity reports whether City is set.
func (a *Address) IsSetCity() bool { return a.city.IsSet() }

// SetCity sets the city, 1 to 50 characters.
func (a *Address) SetCity(v string) bool {
	return SetText(a.reg, &a.city, TextMax50, "City", v)
}

// PostalCode returns the postal code.
func (a *Address) PostalCode() string { return a.postalCode.Get() }
// IsSetPostalCode reports whether PostalCode holds a value.
func (a *Address) IsSetPostalCode() bool { return a.postalCode.IsSet() }

// SetPostalCode sets the postal code. For AddressStructurePT it must match
// NNNN-NNN.
func (a *Address) SetPostalCode(v string) bool {
	rule := TextMax20
	if a.pt {
		rule = Text{Min: 8, Max: 8, Pattern: PostalCodePTPattern}
	}
	return SetText(a.reg, &a.postalCode, rule, "PostalCode", v)
}

// Region returns the region, nil when absent.
func (a *Address) Region() *string { return a.region }

// SetRegion sets the optional region, 1 to 50 characters.
func (a *Address) SetRegion(v *string) bool {
	return SetOptText(a.reg, &a.region, TextMax50, "Region", v)
}

// Country returns the country.
func (a *Address) Country() enum.Country { return a.country.Get() }
// IsSetCountry reports whether Country holds a value.
func (a *Address) IsSetCountry() bool { return a.country.IsSet() }

// SetCountry sets the country code. AddressStructurePT only accepts PT.
func (a *Address) SetCountry(v enum.Country) bool {
	if a.pt && v != enum.CountryPT {
		a.country.Set(v)
		a.reg.AddOnSetValue(NotValid("Country"))
		return false
	}
	return SetCode(a.reg, &a.country, "Country", v)
}

// CreateXMLNode appends the address under parent.
func (a *Address) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if parent == nil {
		return nil, &NodeNameError{Expected: "parent of " + a.tag}
	}
	node := parent.CreateElement(a.tag)
	WriteOptText(node, "BuildingNumber", a.buildingNumber)
	WriteOptText(node, "StreetName", a.streetName)
	WriteText(a.reg, node, "AddressDetail", a.addressDetail)
	WriteText(a.reg, node, "City", a.city)
	WriteText(a.reg, node, "PostalCode", a.postalCode)
	WriteOptText(node, "Region", a.region)
	WriteCode(a.reg, node, "Country", a.country)
	return node, nil
}

// ParseXMLNode reads the address from node.
func (a *Address) ParseXMLNode(node *etree.Element) error {
	if err := CheckNode(node, a.tag); err != nil {
		return err
	}
	a.SetBuildingNumber(OptionalText(node, "BuildingNumber"))
	a.SetStreetName(OptionalText(node, "StreetName"))
	detail, err := RequiredText(node, "AddressDetail")
	if err != nil {
		return err
	}
	a.SetAddressDetail(detail)
	city, err := RequiredText(node, "City")
	if err != nil {
		return err
	}
	a.SetCity(city)
	postal, err := RequiredText(node, "PostalCode")
	if err != nil {
		return err
	}
	a.SetPostalCode(postal)
	a.SetRegion(OptionalText(node, "Region"))
	country, err := RequiredCode(node, "Country", enum.NewCountry)
	if err != nil {
		return err
	}
	a.SetCountry(country)
	return nil
}
