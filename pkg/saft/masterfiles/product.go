package masterfiles

import (
	"regexp"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

var (
	cnCodeRule   = saft.Text{Min: 8, Max: 8, Pattern: regexp.MustCompile(`^[0-9]{8}$`)}
	unNumberRule = saft.Text{Min: 4, Max: 4, Pattern: regexp.MustCompile(`^[0-9]{4}$`)}
)

// =============================================================================
// CUSTOMS DETAILS
// =============================================================================

// CustomsDetails lists the combined nomenclature codes and UN numbers of a
// product.
type CustomsDetails struct {
	reg *saft.ErrorRegister

	cnCode   []string
	unNumber []string
}

// NewCustomsDetails returns an empty CustomsDetails that reports to reg.
func NewCustomsDetails(reg *saft.ErrorRegister) *CustomsDetails {
	return &CustomsDetails{reg: reg}
}

// AddCNCode appends an eight digit combined nomenclature code. The value is
// appended even when it fails validation.
func (c *CustomsDetails) AddCNCode(v string) bool {
	var f saft.Field[string]
	ok := saft.SetText(c.reg, &f, cnCodeRule, "CNCode", v)
	c.cnCode = append(c.cnCode, f.Get())
	return ok
}

// CNCode returns the CN code list.
func (c *CustomsDetails) CNCode() []string { return c.cnCode }

// AddUNNumber appends a four digit UN dangerous goods number. The value is
// appended even when it fails validation.
func (c *CustomsDetails) AddUNNumber(v string) bool {
	var f saft.Field[string]
	ok := saft.SetText(c.reg, &f, unNumberRule, "UNNumber", v)
	c.unNumber = append(c.unNumber, f.Get())
	return ok
}

// UNNumber returns the UN number entries in document order.
func (c *CustomsDetails) UNNumber() []string { return c.unNumber }

// CreateXMLNode writes the CustomsDetails element under parent and returns it.
func (c *CustomsDetails) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Product"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("CustomsDetails")
	for _, v := range c.cnCode {
		saft.AddText(node, "CNCode", v)
	}
	for _, v := range c.unNumber {
		saft.AddText(node, "UNNumber", v)
	}
	return node, nil
}

// ParseXMLNode reads a CustomsDetails element.
func (c *CustomsDetails) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "CustomsDetails"); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "CNCode") {
		c.AddCNCode(child.Text())
	}
	for _, child := range saft.Children(node, "UNNumber") {
		c.AddUNNumber(child.Text())
	}
	return nil
}

// =============================================================================
// PRODUCT
// =============================================================================

// Product is a MasterFiles/Product.
type Product struct {
	reg *saft.ErrorRegister

	productType        saft.Field[enum.ProductType]
	productCode        saft.Field[string]
	productGroup       *string
	productDescription saft.Field[string]
	productNumberCode  saft.Field[string]
	customsDetails     *CustomsDetails
}

// NewProduct creates a Product bound to reg.
func NewProduct(reg *saft.ErrorRegister) *Product {
	return &Product{reg: reg}
}

// ProductType returns the product type.
func (p *Product) ProductType() enum.ProductType { return p.productType.Get() }
// IsSetProductType reports whether ProductType is set.
func (p *Product) IsSetProductType() bool { return p.productType.IsSet() }

// SetProductType stores the product type.
func (p *Product) SetProductType(v enum.ProductType) bool {
	return saft.SetCode(p.reg, &p.productType, "ProductType", v)
}

// ProductCode returns the product code.
func (p *Product) ProductCode() string { return p.productCode.Get() }
// IsSetProductCode reports whether ProductCode is set.
func (p *Product) IsSetProductCode() bool { return p.productCode.IsSet() }

// SetProductCode sets the unique product key, 1 to 60 characters.
func (p *Product) SetProductCode(v string) bool {
	return saft.SetText(p.reg, &p.productCode, saft.TextMax60, "ProductCode", v)
}

// ProductGroup returns the product group or nil.
func (p *Product) ProductGroup() *string { return p.productGroup }

// SetProductGroup sets the product family, 1 to 50 characters.
func (p *Product) SetProductGroup(v *string) bool {
	return saft.SetOptText(p.reg, &p.productGroup, saft.TextMax50, "ProductGroup", v)
}

// ProductDescription returns the product description.
func (p *Product) ProductDescription() string { return p.productDescription.Get() }
// IsSetProductDescription reports whether ProductDescription is set.
func (p *Product) IsSetProductDescription() bool { return p.productDescription.IsSet() }

// SetProductDescription sets the description, 2 to 200 characters.
func (p *Product) SetProductDescription(v string) bool {
	return saft.SetText(p.reg, &p.productDescription, saft.TextMin2, "ProductDescription", v)
}

// ProductNumberCode returns the product number code.
func (p *Product) ProductNumberCode() string { return p.productNumberCode.Get() }
// IsSetProductNumberCode reports whether ProductNumberCode holds a value.
func (p *Product) IsSetProductNumberCode() bool { return p.productNumberCode.IsSet() }

// SetProductNumberCode sets the EAN or, when there is none, the product
// code again. 1 to 60 characters.
func (p *Product) SetProductNumberCode(v string) bool {
	return saft.SetText(p.reg, &p.productNumberCode, saft.TextMax60, "ProductNumberCode", v)
}

// CustomsDetails returns the customs details, nil when absent.
func (p *Product) CustomsDetails() *CustomsDetails { return p.customsDetails }

// NewCustomsDetails creates the customs details, replacing any previous
// ones.
func (p *Product) NewCustomsDetails() *CustomsDetails {
	p.customsDetails = NewCustomsDetails(p.reg)
	return p.customsDetails
}

// CreateXMLNode writes the Product element under parent and returns it.
func (p *Product) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "MasterFiles"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Product")
	saft.WriteCode(p.reg, node, "ProductType", p.productType)
	saft.WriteText(p.reg, node, "ProductCode", p.productCode)
	saft.WriteOptText(node, "ProductGroup", p.productGroup)
	saft.WriteText(p.reg, node, "ProductDescription", p.productDescription)
	saft.WriteText(p.reg, node, "ProductNumberCode", p.productNumberCode)
	if p.customsDetails != nil {
		if _, err := p.customsDetails.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode reads a Product element.
func (p *Product) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Product"); err != nil {
		return err
	}
	productType, err := saft.RequiredCode(node, "ProductType", enum.NewProductType)
	if err != nil {
		return err
	}
	p.SetProductType(productType)
	code, err := saft.RequiredText(node, "ProductCode")
	if err != nil {
		return err
	}
	p.SetProductCode(code)
	p.SetProductGroup(saft.OptionalText(node, "ProductGroup"))
	desc, err := saft.RequiredText(node, "ProductDescription")
	if err != nil {
		return err
	}
	p.SetProductDescription(desc)
	number, err := saft.RequiredText(node, "ProductNumberCode")
	if err != nil {
		return err
	}
	p.SetProductNumberCode(number)
	if child := saft.Child(node, "CustomsDetails"); child != nil {
		return p.NewCustomsDetails().ParseXMLNode(child)
	}
	return nil
}
