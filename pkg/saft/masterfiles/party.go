// =============================================================================
// Master Files - Customers and Suppliers
// =============================================================================
//
// Customer and Supplier share one layout; only the element names of the
// identifier, the tax number and the delivery addresses differ:
//
//   Customer  CustomerID  CustomerTaxID  BillingAddress  ShipToAddress*
//   Supplier  SupplierID  SupplierTaxID  BillingAddress  ShipFromAddress*
//
// =============================================================================

package masterfiles

import (
	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
)

// AccountIDUnknown is the AccountID used when no general ledger account
// is kept for a customer or supplier.
const AccountIDUnknown = "Desconhecido"

var (
	websiteRule = saft.TextMax60
	emailRule   = saft.Text{Min: 1, Max: 254, Pattern: saft.EmailPattern}
)

type party struct {
	reg *saft.ErrorRegister

	tag         string
	idTag       string
	taxIDTag    string
	shipAddrTag string

	id                   saft.Field[string]
	accountID            saft.Field[string]
	taxID                saft.Field[string]
	companyName          saft.Field[string]
	contact              *string
	billingAddress       *saft.Address
	shipAddress          []*saft.Address
	telephone            *string
	fax                  *string
	email                *string
	website              *string
	selfBillingIndicator saft.Field[int]
}

// AccountID returns the account ID.
func (p *party) AccountID() string { return p.accountID.Get() }
// IsSetAccountID reports whether AccountID is set.
func (p *party) IsSetAccountID() bool { return p.accountID.IsSet() }

// SetAccountID sets the general ledger account, 1 to 30 characters, or
// AccountIDUnknown.
func (p *party) SetAccountID(v string) bool {
	return saft.SetText(p.reg, &p.accountID, saft.TextMax30, "AccountID", v)
}

// CompanyName returns the company name.
func (p *party) CompanyName() string { return p.companyName.Get() }
// IsSetCompanyName reports whether CompanyName holds a value.
func (p *party) IsSetCompanyName() bool { return p.companyName.IsSet() }

// SetCompanyName sets the name, 1 to 100 characters.
func (p *party) SetCompanyName(v string) bool {
	return saft.SetText(p.reg, &p.companyName, saft.TextMax100, "CompanyName", v)
}

// Contact returns the contact, nil when absent.
func (p *party) Contact() *string { return p.contact }

// SetContact sets the contact person, 1 to 50 characters.
func (p *party) SetContact(v *string) bool {
	return saft.SetOptText(p.reg, &p.contact, saft.TextMax50, "Contact", v)
}

// BillingAddress returns the billing address or nil.
func (p *party) BillingAddress() *saft.Address { return p.billingAddress }

// NewBillingAddress creates the billing address, replacing any previous
// one.
func (p *party) NewBillingAddress() *saft.Address {
	p.billingAddress = saft.NewAddress(p.reg, "BillingAddress")
	return p.billingAddress
}

// Telephone returns the telephone, nil when absent.
func (p *party) Telephone() *string { return p.telephone }

// SetTelephone sets the telephone, or clears it when v is nil.
func (p *party) SetTelephone(v *string) bool {
	return saft.SetOptText(p.reg, &p.telephone, saft.TextMax20, "Telephone", v)
}

// Fax returns the fax, nil when absent.
func (p *party) Fax() *string { return p.fax }

// SetFax sets the fax, or clears it when v is nil.
func (p *party) SetFax(v *string) bool {
	return saft.SetOptText(p.reg, &p.fax, saft.TextMax20, "Fax", v)
}

// Email returns the email, nil when absent.
func (p *party) Email() *string { return p.email }

// SetEmail sets the email, or clears it when v is nil.
func (p *party) SetEmail(v *string) bool {
	return saft.SetOptText(p.reg, &p.email, emailRule, "Email", v)
}

// Website returns the website, nil when absent.
func (p *party) Website() *string { return p.website }

// SetWebsite sets the website, or clears it when v is nil.
func (p *party) SetWebsite(v *string) bool {
	return saft.SetOptText(p.reg, &p.website, websiteRule, "Website", v)
}

// SelfBillingIndicator returns the self billing indicator.
func (p *party) SelfBillingIndicator() int { return p.selfBillingIndicator.Get() }
// IsSetSelfBillingIndicator reports whether SelfBillingIndicator holds a value.
func (p *party) IsSetSelfBillingIndicator() bool { return p.selfBillingIndicator.IsSet() }

// SetSelfBillingIndicator sets 1 when a self billing agreement exists, 0
// otherwise.
func (p *party) SetSelfBillingIndicator(v int) bool {
	return saft.SetInt(p.reg, &p.selfBillingIndicator, "SelfBillingIndicator", v, 0, 1)
}

func (p *party) setID(v string) bool {
	return saft.SetText(p.reg, &p.id, saft.TextMax30, p.idTag, v)
}

func (p *party) setTaxID(v string) bool {
	return saft.SetText(p.reg, &p.taxID, saft.TextMax30, p.taxIDTag, v)
}

func (p *party) addShipAddress() *saft.Address {
	a := saft.NewAddress(p.reg, p.shipAddrTag)
	p.shipAddress = append(p.shipAddress, a)
	return a
}

// CreateXMLNode appends the Customer or Supplier element to parent.
func (p *party) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "MasterFiles"); err != nil {
		return nil, err
	}
	node := parent.CreateElement(p.tag)
	saft.WriteText(p.reg, node, p.idTag, p.id)
	saft.WriteText(p.reg, node, "AccountID", p.accountID)
	saft.WriteText(p.reg, node, p.taxIDTag, p.taxID)
	saft.WriteText(p.reg, node, "CompanyName", p.companyName)
	saft.WriteOptText(node, "Contact", p.contact)
	if p.billingAddress == nil {
		saft.AddEmpty(node, "BillingAddress")
		p.reg.AddOnCreateXMLNode(saft.NotValid("BillingAddress"))
	} else if _, err := p.billingAddress.CreateXMLNode(node); err != nil {
		return nil, err
	}
	for _, a := range p.shipAddress {
		if _, err := a.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	saft.WriteOptText(node, "Telephone", p.telephone)
	saft.WriteOptText(node, "Fax", p.fax)
	saft.WriteOptText(node, "Email", p.email)
	saft.WriteOptText(node, "Website", p.website)
	saft.WriteInt(p.reg, node, "SelfBillingIndicator", p.selfBillingIndicator)
	return node, nil
}

// ParseXMLNode reads a Customer or Supplier element.
func (p *party) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, p.tag); err != nil {
		return err
	}
	id, err := saft.RequiredText(node, p.idTag)
	if err != nil {
		return err
	}
	p.setID(id)
	account, err := saft.RequiredText(node, "AccountID")
	if err != nil {
		return err
	}
	p.SetAccountID(account)
	taxID, err := saft.RequiredText(node, p.taxIDTag)
	if err != nil {
		return err
	}
	p.setTaxID(taxID)
	name, err := saft.RequiredText(node, "CompanyName")
	if err != nil {
		return err
	}
	p.SetCompanyName(name)
	p.SetContact(saft.OptionalText(node, "Contact"))
	billing, err := saft.RequiredChild(node, "BillingAddress")
	if err != nil {
		return err
	}
	if err := p.NewBillingAddress().ParseXMLNode(billing); err != nil {
		return err
	}
	for _, child := range saft.Children(node, p.shipAddrTag) {
		if err := p.addShipAddress().ParseXMLNode(child); err != nil {
			return err
		}
	}
	p.SetTelephone(saft.OptionalText(node, "Telephone"))
	p.SetFax(saft.OptionalText(node, "Fax"))
	p.SetEmail(saft.OptionalText(node, "Email"))
	p.SetWebsite(saft.OptionalText(node, "Website"))
	self, err := saft.RequiredInt(node, "SelfBillingIndicator")
	if err != nil {
		return err
	}
	p.SetSelfBillingIndicator(self)
	return nil
}

// =============================================================================
// CUSTOMER
// =============================================================================

// Customer is a MasterFiles/Customer.
type Customer struct {
	party
}

// NewCustomer returns an empty Customer that reports to reg.
func NewCustomer(reg *saft.ErrorRegister) *Customer {
	return &Customer{party{
		reg:         reg,
		tag:         "Customer",
		idTag:       "CustomerID",
		taxIDTag:    "CustomerTaxID",
		shipAddrTag: "ShipToAddress",
	}}
}

// CustomerID returns the customer ID.
func (c *Customer) CustomerID() string { return c.id.Get() }
// IsSetCustomerID reports whether CustomerID holds a value.
func (c *Customer) IsSetCustomerID() bool { return c.id.IsSet() }

// SetCustomerID sets the unique customer key, 1 to 30 characters.
func (c *Customer) SetCustomerID(v string) bool { return c.setID(v) }

// CustomerTaxID returns the customer tax ID.
func (c *Customer) CustomerTaxID() string { return c.taxID.Get() }
// IsSetCustomerTaxID reports whether CustomerTaxID is set.
func (c *Customer) IsSetCustomerTaxID() bool { return c.taxID.IsSet() }

// SetCustomerTaxID sets the tax number, 1 to 30 characters. Final
// consumers use 999999990.
func (c *Customer) SetCustomerTaxID(v string) bool { return c.setTaxID(v) }

// AddShipToAddress appends a delivery address and returns it.
func (c *Customer) AddShipToAddress() *saft.Address { return c.addShipAddress() }

// ShipToAddress returns the ship to address list.
func (c *Customer) ShipToAddress() []*saft.Address { return c.shipAddress }

// =============================================================================
// SUPPLIER
// =============================================================================

// Supplier is a MasterFiles/Supplier.
type Supplier struct {
	party
}

// NewSupplier returns an empty Supplier that reports to reg.
func NewSupplier(reg *saft.ErrorRegister) *Supplier {
	return &Supplier{party{
		reg:         reg,
		tag:         "Supplier",
		idTag:       "SupplierID",
		taxIDTag:    "SupplierTaxID",
		shipAddrTag: "ShipFromAddress",
	}}
}

// SupplierID returns the supplier ID.
func (s *Supplier) SupplierID() string { return s.id.Get() }
// IsSetSupplierID reports whether SupplierID holds a value.
func (s *Supplier) IsSetSupplierID() bool { return s.id.IsSet() }

// SetSupplierID sets the unique supplier key, 1 to 30 characters.
func (s *Supplier) SetSupplierID(v string) bool { return s.setID(v) }

// SupplierTaxID returns the supplier tax ID.
func (s *Supplier) SupplierTaxID() string { return s.taxID.Get() }
// IsSetSupplierTaxID reports whether SupplierTaxID is set.
func (s *Supplier) IsSetSupplierTaxID() bool { return s.taxID.IsSet() }

// SetSupplierTaxID sets the tax number, 1 to 30 characters.
func (s *Supplier) SetSupplierTaxID(v string) bool { return s.setTaxID(v) }

// AddShipFromAddress appends a pickup address and returns it.
func (s *Supplier) AddShipFromAddress() *saft.Address { return s.addShipAddress() }

// ShipFromAddress returns the ship from address list.
func (s *Supplier) ShipFromAddress() []*saft.Address { return s.shipAddress }
