package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// StockMovement is a MovementOfGoods/StockMovement document. It names
// either a customer or a supplier, never both.
type StockMovement struct {
	documentBase
	shippingPart

	reg              *saft.ErrorRegister
	documentStatus   *MovementDocumentStatus
	movementType     saft.Field[enum.MovementType]
	supplierID       *string
	movementComments *string
	atDocCodeID      *string
	lines            []*StockMovementLine
	documentTotals   *DocumentTotals
}

// NewStockMovement returns an empty StockMovement that reports to reg.
func NewStockMovement(reg *saft.ErrorRegister) *StockMovement {
	return &StockMovement{
		documentBase: documentBase{reg: reg, numberTag: "DocumentNumber", dateTag: "MovementDate"},
		shippingPart: shippingPart{reg: reg},
		reg:          reg,
	}
}

// DocumentNumber returns the document number.
func (s *StockMovement) DocumentNumber() string { return s.number.Get() }
// IsSetDocumentNumber reports whether DocumentNumber holds a value.
func (s *StockMovement) IsSetDocumentNumber() bool { return s.number.IsSet() }

// SetDocumentNumber sets "<type> <series>/<number>", up to 60 characters.
func (s *StockMovement) SetDocumentNumber(v string) bool {
	return s.setNumber(v)
}

// MovementDate returns the movement date.
func (s *StockMovement) MovementDate() time.Time { return s.date.Get() }
// IsSetMovementDate reports whether MovementDate holds a value.
func (s *StockMovement) IsSetMovementDate() bool { return s.date.IsSet() }

// SetMovementDate sets the movement date.
func (s *StockMovement) SetMovementDate(v time.Time) {
	s.date.Set(v)
}

// DocumentStatus returns the document status or nil.
func (s *StockMovement) DocumentStatus() *MovementDocumentStatus { return s.documentStatus }

// NewDocumentStatus creates the DocumentStatus, replacing any previous one.
func (s *StockMovement) NewDocumentStatus() *MovementDocumentStatus {
	s.documentStatus = NewMovementDocumentStatus(s.reg)
	return s.documentStatus
}

// MovementType returns the movement type.
func (s *StockMovement) MovementType() enum.MovementType { return s.movementType.Get() }
// IsSetMovementType reports whether MovementType is set.
func (s *StockMovement) IsSetMovementType() bool { return s.movementType.IsSet() }

// SetMovementType stores the movement type.
func (s *StockMovement) SetMovementType(v enum.MovementType) bool {
	return saft.SetCode(s.reg, &s.movementType, "MovementType", v)
}

// SetCustomerID sets the customer. It fails without storing when a
// supplier is already set.
func (s *StockMovement) SetCustomerID(v string) bool {
	if s.supplierID != nil {
		s.reg.AddOnSetValue(saft.NotValid("CustomerID"))
		return false
	}
	return s.documentBase.SetCustomerID(v)
}

// SupplierID returns the supplier ID, nil when absent.
func (s *StockMovement) SupplierID() *string { return s.supplierID }

// SetSupplierID sets the supplier, 1 to 30 characters. It fails without
// storing when a customer is already set.
func (s *StockMovement) SetSupplierID(v *string) bool {
	if v != nil && s.customerID.IsSet() {
		s.reg.AddOnSetValue(saft.NotValid("SupplierID"))
		return false
	}
	return saft.SetOptText(s.reg, &s.supplierID, saft.TextMax30, "SupplierID", v)
}

// MovementComments returns the movement comments or nil.
func (s *StockMovement) MovementComments() *string { return s.movementComments }

// SetMovementComments sets the comments, 1 to 60 characters.
func (s *StockMovement) SetMovementComments(v *string) bool {
	return saft.SetOptText(s.reg, &s.movementComments, saft.TextMax60, "MovementComments", v)
}

// ATDocCodeID returns the AT doc code ID, nil when absent.
func (s *StockMovement) ATDocCodeID() *string { return s.atDocCodeID }

// SetATDocCodeID sets the code assigned by the tax authority to the
// transport document, 1 to 200 characters.
func (s *StockMovement) SetATDocCodeID(v *string) bool {
	return saft.SetOptText(s.reg, &s.atDocCodeID, saft.TextMax200, "ATDocCodeID", v)
}

// AddLine appends a new line and returns it.
func (s *StockMovement) AddLine() *StockMovementLine {
	l := NewStockMovementLine(s.reg)
	s.lines = append(s.lines, l)
	return l
}

// Lines returns the document lines in order.
func (s *StockMovement) Lines() []*StockMovementLine { return s.lines }

// DocumentTotals returns the document totals, nil when absent.
func (s *StockMovement) DocumentTotals() *DocumentTotals { return s.documentTotals }

// NewDocumentTotals creates the DocumentTotals, replacing any previous one.
func (s *StockMovement) NewDocumentTotals() *DocumentTotals {
	s.documentTotals = NewDocumentTotals(s.reg)
	return s.documentTotals
}

// CalcTotals computes the totals of the movement lines.
func (s *StockMovement) CalcTotals() *DocTotalCalc {
	return CalcTotals(calcLines(s.lines))
}

// QuantityIssued returns the sum of the line quantities.
func (s *StockMovement) QuantityIssued() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Quantity())
	}
	return total
}

// CreateXMLNode writes the StockMovement element under parent and returns it.
func (s *StockMovement) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "MovementOfGoods"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("StockMovement")
	s.writeNumber(node)
	s.writeATCUD(node)
	if err := writeRequired(s.reg, node, "DocumentStatus", s.documentStatus, s.documentStatus != nil); err != nil {
		return nil, err
	}
	s.writeHash(node)
	s.writePeriod(node)
	s.writeDate(node)
	saft.WriteCode(s.reg, node, "MovementType", s.movementType)
	s.writeSystemEntryDate(node)
	s.writeTransactionID(node)
	switch {
	case s.customerID.IsSet():
		s.writeCustomerID(node)
	case s.supplierID != nil:
		saft.AddText(node, "SupplierID", *s.supplierID)
	default:
		saft.AddEmpty(node, "CustomerID")
		s.reg.AddOnCreateXMLNode(saft.NotValid("CustomerID"))
	}
	s.writeSource(node)
	s.writeEACCode(node)
	saft.WriteOptText(node, "MovementComments", s.movementComments)
	if err := s.writeShipping(node); err != nil {
		return nil, err
	}
	if s.movementStartTime == nil {
		saft.AddEmpty(node, "MovementStartTime")
		s.reg.AddOnCreateXMLNode(saft.NotValid("MovementStartTime"))
	} else {
		saft.AddDateTime(node, "MovementStartTime", *s.movementStartTime)
	}
	saft.WriteOptText(node, "ATDocCodeID", s.atDocCodeID)
	if len(s.lines) == 0 {
		saft.AddEmpty(node, "Line")
		s.reg.AddOnCreateXMLNode(saft.NotValid("Line"))
	}
	for _, l := range s.lines {
		if _, err := l.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if err := writeRequired(s.reg, node, "DocumentTotals", s.documentTotals, s.documentTotals != nil); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseXMLNode reads a StockMovement element.
func (s *StockMovement) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "StockMovement"); err != nil {
		return err
	}
	if err := s.documentBase.parse(node); err != nil {
		return err
	}
	if err := s.parseHash(node); err != nil {
		return err
	}
	status, err := saft.RequiredChild(node, "DocumentStatus")
	if err != nil {
		return err
	}
	if err := s.NewDocumentStatus().ParseXMLNode(status); err != nil {
		return err
	}
	movementType, err := saft.RequiredCode(node, "MovementType", enum.NewMovementType)
	if err != nil {
		return err
	}
	s.SetMovementType(movementType)

	customer := saft.OptionalText(node, "CustomerID")
	supplier := saft.OptionalText(node, "SupplierID")
	switch {
	case customer == nil && supplier == nil:
		return &saft.MissingElementError{Parent: node.Tag, Element: "CustomerID"}
	case customer != nil:
		s.SetCustomerID(*customer)
		s.SetSupplierID(supplier)
	default:
		s.SetSupplierID(supplier)
	}

	s.SetMovementComments(saft.OptionalText(node, "MovementComments"))
	if err := s.shippingPart.parse(node); err != nil {
		return err
	}
	if s.movementStartTime == nil {
		return &saft.MissingElementError{Parent: node.Tag, Element: "MovementStartTime"}
	}
	s.SetATDocCodeID(saft.OptionalText(node, "ATDocCodeID"))

	lines := saft.Children(node, "Line")
	if len(lines) == 0 {
		return &saft.MissingElementError{Parent: node.Tag, Element: "Line"}
	}
	for _, child := range lines {
		if err := s.AddLine().ParseXMLNode(child); err != nil {
			return err
		}
	}
	totals, err := saft.RequiredChild(node, "DocumentTotals")
	if err != nil {
		return err
	}
	return s.NewDocumentTotals().ParseXMLNode(totals)
}
