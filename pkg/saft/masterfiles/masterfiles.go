// Package masterfiles binds the MasterFiles part of a SAF-T (PT) file:
// customers, suppliers, products and the tax table.
package masterfiles

import (
	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
)

// MasterFiles holds the reference data the source documents point to.
type MasterFiles struct {
	reg *saft.ErrorRegister

	customer []*Customer
	supplier []*Supplier
	product  []*Product
	taxTable *TaxTable
}

// NewMasterFiles creates a MasterFiles bound to reg.
func NewMasterFiles(reg *saft.ErrorRegister) *MasterFiles {
	return &MasterFiles{reg: reg}
}

// AddCustomer appends a new customer and returns it.
func (m *MasterFiles) AddCustomer() *Customer {
	c := NewCustomer(m.reg)
	m.customer = append(m.customer, c)
	return c
}

// Customer returns the customer entries in document order.
func (m *MasterFiles) Customer() []*Customer { return m.customer }

// AddSupplier appends a new supplier and returns it.
func (m *MasterFiles) AddSupplier() *Supplier {
	s := NewSupplier(m.reg)
	m.supplier = append(m.supplier, s)
	return s
}

// Supplier returns the supplier list.
func (m *MasterFiles) Supplier() []*Supplier { return m.supplier }

// AddProduct appends a new product and returns it.
func (m *MasterFiles) AddProduct() *Product {
	p := NewProduct(m.reg)
	m.product = append(m.product, p)
	return p
}

// Product returns the product entries in document order.
func (m *MasterFiles) Product() []*Product { return m.product }

// TaxTable returns the tax table or nil.
func (m *MasterFiles) TaxTable() *TaxTable { return m.taxTable }

// NewTaxTable creates the tax table, replacing any previous one.
func (m *MasterFiles) NewTaxTable() *TaxTable {
	m.taxTable = NewTaxTable(m.reg)
	return m.taxTable
}

// CustomerIDs returns the set of customer keys.
func (m *MasterFiles) CustomerIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(m.customer))
	for _, c := range m.customer {
		ids[c.CustomerID()] = struct{}{}
	}
	return ids
}

// SupplierIDs returns the set of supplier keys.
func (m *MasterFiles) SupplierIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(m.supplier))
	for _, s := range m.supplier {
		ids[s.SupplierID()] = struct{}{}
	}
	return ids
}

// ProductCodes returns the set of product keys.
func (m *MasterFiles) ProductCodes() map[string]struct{} {
	codes := make(map[string]struct{}, len(m.product))
	for _, p := range m.product {
		codes[p.ProductCode()] = struct{}{}
	}
	return codes
}

// CreateXMLNode appends the MasterFiles element to parent.
func (m *MasterFiles) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "AuditFile"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("MasterFiles")
	for _, c := range m.customer {
		if _, err := c.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	for _, s := range m.supplier {
		if _, err := s.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	for _, p := range m.product {
		if _, err := p.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if m.taxTable != nil {
		if _, err := m.taxTable.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode fills the value from a MasterFiles element.
func (m *MasterFiles) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "MasterFiles"); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "Customer") {
		if err := m.AddCustomer().ParseXMLNode(child); err != nil {
			return err
		}
	}
	for _, child := range saft.Children(node, "Supplier") {
		if err := m.AddSupplier().ParseXMLNode(child); err != nil {
			return err
		}
	}
	for _, child := range saft.Children(node, "Product") {
		if err := m.AddProduct().ParseXMLNode(child); err != nil {
			return err
		}
	}
	if child := saft.Child(node, "TaxTable"); child != nil {
		return m.NewTaxTable().ParseXMLNode(child)
	}
	return nil
}
