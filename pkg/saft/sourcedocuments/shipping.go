package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
)

// =============================================================================
// WAREHOUSE
// =============================================================================

// Warehouse is one WarehouseID/LocationID pair of a ShipTo or ShipFrom
// block. Either part may be absent.
type Warehouse struct {
	reg *saft.ErrorRegister

	warehouseID *string
	locationID  *string
}

// NewWarehouse creates a Warehouse bound to reg.
func NewWarehouse(reg *saft.ErrorRegister) *Warehouse {
	return &Warehouse{reg: reg}
}

// WarehouseID returns the warehouse ID, nil when absent.
func (w *Warehouse) WarehouseID() *string { return w.warehouseID }

// SetWarehouseID sets the warehouse, 1 to 50 characters.
func (w *Warehouse) SetWarehouseID(v *string) bool {
	return saft.SetOptText(w.reg, &w.warehouseID, saft.TextMax50, "WarehouseID", v)
}

// LocationID returns the location ID or nil.
func (w *Warehouse) LocationID() *string { return w.locationID }

// SetLocationID sets the location inside the warehouse, 1 to 30 characters.
func (w *Warehouse) SetLocationID(v *string) bool {
	return saft.SetOptText(w.reg, &w.locationID, saft.TextMax30, "LocationID", v)
}

// CreateXMLNode appends the pair directly under parent; the schema has no
// wrapping element for it.
func (w *Warehouse) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "ShipTo", "ShipFrom"); err != nil {
		return nil, err
	}
	saft.WriteOptText(parent, "WarehouseID", w.warehouseID)
	saft.WriteOptText(parent, "LocationID", w.locationID)
	return parent, nil
}

// =============================================================================
// SHIP TO / SHIP FROM
// =============================================================================

// Shipping is the ShipTo or ShipFrom block of a document.
type Shipping struct {
	reg *saft.ErrorRegister
	tag string

	deliveryID   []string
	deliveryDate *time.Time
	warehouse    []*Warehouse
	address      *saft.Address
}

// NewShipTo creates a ShipTo block.
func NewShipTo(reg *saft.ErrorRegister) *Shipping {
	return &Shipping{reg: reg, tag: "ShipTo"}
}

// NewShipFrom creates a ShipFrom block.
func NewShipFrom(reg *saft.ErrorRegister) *Shipping {
	return &Shipping{reg: reg, tag: "ShipFrom"}
}

// Tag returns the element name, ShipTo or ShipFrom.
func (s *Shipping) Tag() string { return s.tag }

// AddDeliveryID appends a delivery reference, 1 to 255 characters.
func (s *Shipping) AddDeliveryID(v string) bool {
	var f saft.Field[string]
	ok := saft.SetText(s.reg, &f, saft.TextMax255, "DeliveryID", v)
	s.deliveryID = append(s.deliveryID, f.Get())
	return ok
}

// DeliveryID returns the delivery ID entries in document order.
func (s *Shipping) DeliveryID() []string { return s.deliveryID }

// DeliveryDate returns the delivery date or nil.
func (s *Shipping) DeliveryDate() *time.Time { return s.deliveryDate }

// SetDeliveryDate sets the delivery date; nil clears it.
func (s *Shipping) SetDeliveryDate(v *time.Time) {
	s.deliveryDate = v
}

// AddWarehouse appends a new empty warehouse and returns it.
func (s *Shipping) AddWarehouse() *Warehouse {
	w := NewWarehouse(s.reg)
	s.warehouse = append(s.warehouse, w)
	return w
}

// Warehouse returns the warehouse list.
func (s *Shipping) Warehouse() []*Warehouse { return s.warehouse }

// Address appends a new ress and returns it.
func (s *Shipping) Address() *saft.Address { return s.address }

// SetAddress sets the address. A nil address removes it.
func (s *Shipping) SetAddress(a *saft.Address) {
	s.address = a
}

// NewAddress creates an Address element and sets it as the block address.
func (s *Shipping) NewAddress() *saft.Address {
	s.address = saft.NewAddress(s.reg, "Address")
	return s.address
}

// CreateXMLNode appends the ShipTo or ShipFrom element to parent.
func (s *Shipping) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Invoice", "StockMovement"); err != nil {
		return nil, err
	}
	node := parent.CreateElement(s.tag)
	for _, id := range s.deliveryID {
		saft.AddText(node, "DeliveryID", id)
	}
	saft.WriteOptDate(node, "DeliveryDate", s.deliveryDate)
	for _, w := range s.warehouse {
		if _, err := w.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if s.address != nil {
		if _, err := s.address.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode reads a ShipTo or ShipFrom element, pairing each LocationID
// with the WarehouseID before it.
func (s *Shipping) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, s.tag); err != nil {
		return err
	}
	var current *Warehouse
	for _, child := range node.ChildElements() {
		switch child.Tag {
		case "DeliveryID":
			s.AddDeliveryID(child.Text())
		case "DeliveryDate":
			date, err := saft.ParseTime(child.Tag, saft.DateFormat, child.Text())
			if err != nil {
				return err
			}
			s.SetDeliveryDate(&date)
		case "WarehouseID":
			current = s.AddWarehouse()
			v := child.Text()
			current.SetWarehouseID(&v)
		case "LocationID":
			if current == nil || current.locationID != nil {
				current = s.AddWarehouse()
			}
			v := child.Text()
			current.SetLocationID(&v)
		case "Address":
			if err := s.NewAddress().ParseXMLNode(child); err != nil {
				return err
			}
		}
	}
	return nil
}
