// =============================================================================
// Source Documents - Document Field Groups
// =============================================================================
//
// documentBase holds the fields shared by the four document kinds: number,
// date, ATCUD, hash, period, source, activity code, entry date, transaction
// and customer. The element names of number and date differ per kind:
//
//   Invoice        InvoiceNo       InvoiceDate
//   StockMovement  DocumentNumber  MovementDate
//   WorkDocument   DocumentNumber  WorkDate
//   Payment        PaymentRefNo    TransactionDate
//
// shippingPart adds ShipTo, ShipFrom and the movement times of invoices and
// stock movements.
//
// =============================================================================

package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
)

var (
	documentNumberRule = saft.Text{Min: 1, Max: 60, Pattern: saft.DocumentNumberPattern}
	atcudRule          = saft.Text{Min: 1, Max: 100, Pattern: saft.ATCUDPattern}
	hashRule           = saft.TextMax172
	hashControlRule    = saft.Text{Min: 1, Max: 70, Pattern: saft.HashControlPattern}
	eacCodeRule        = saft.Text{Min: 5, Max: 5, Pattern: saft.EACCodePattern}
	transactionIDRule  = saft.Text{Min: 1, Max: 70, Pattern: saft.TransactionIDPattern}
	customerIDRule     = saft.TextMax30
)

// =============================================================================
// DOCUMENT BASE
// =============================================================================

type documentBase struct {
	reg *saft.ErrorRegister

	numberTag string
	dateTag   string

	number          saft.Field[string]
	date            saft.Field[time.Time]
	atcud           saft.Field[string]
	hash            saft.Field[string]
	hashControl     saft.Field[string]
	period          *int
	sourceID        saft.Field[string]
	eacCode         *string
	systemEntryDate saft.Field[time.Time]
	transactionID   *string
	customerID      saft.Field[string]
}

// DocNo returns the document number, whatever its element name.
func (d *documentBase) DocNo() string { return d.number.Get() }

// DocDate returns the document date, whatever its element name.
func (d *documentBase) DocDate() time.Time { return d.date.Get() }

func (d *documentBase) setNumber(v string) bool {
	return saft.SetText(d.reg, &d.number, documentNumberRule, d.numberTag, v)
}

// ATCUD returns the ATCUD.
func (d *documentBase) ATCUD() string { return d.atcud.Get() }
// IsSetATCUD reports whether ATCUD holds a value.
func (d *documentBase) IsSetATCUD() bool { return d.atcud.IsSet() }

// SetATCUD sets the unique document code, "0" or "<code>-<sequence>".
func (d *documentBase) SetATCUD(v string) bool {
	return saft.SetText(d.reg, &d.atcud, atcudRule, "ATCUD", v)
}

// Hash returns the hash.
func (d *documentBase) Hash() string { return d.hash.Get() }
// IsSetHash reports whether Hash is set.
func (d *documentBase) IsSetHash() bool { return d.hash.IsSet() }

// SetHash sets the document signature, base64, up to 172 characters. "0"
// marks documents that are not signed.
func (d *documentBase) SetHash(v string) bool {
	return saft.SetText(d.reg, &d.hash, hashRule, "Hash", v)
}

// HashControl returns the hash control.
func (d *documentBase) HashControl() string { return d.hashControl.Get() }
// IsSetHashControl reports whether HashControl holds a value.
func (d *documentBase) IsSetHashControl() bool { return d.hashControl.IsSet() }

// SetHashControl sets the private key version, optionally followed by the
// reference of the manual document it copies.
func (d *documentBase) SetHashControl(v string) bool {
	return saft.SetText(d.reg, &d.hashControl, hashControlRule, "HashControl", v)
}

// Period returns the period, nil when absent.
func (d *documentBase) Period() *int { return d.period }

// SetPeriod sets the accounting period, 1 to 12.
func (d *documentBase) SetPeriod(v *int) bool {
	d.period = v
	if v != nil && (*v < 1 || *v > 12) {
		d.reg.AddOnSetValue(saft.NotValid("Period"))
		return false
	}
	return true
}

// SourceID returns the source ID.
func (d *documentBase) SourceID() string { return d.sourceID.Get() }
// IsSetSourceID reports whether SourceID holds a value.
func (d *documentBase) IsSetSourceID() bool { return d.sourceID.IsSet() }

// SetSourceID sets the user who created the document, 1 to 30 characters.
func (d *documentBase) SetSourceID(v string) bool {
	return saft.SetText(d.reg, &d.sourceID, saft.TextMax30, "SourceID", v)
}

// EACCode returns the EAC code, nil when absent.
func (d *documentBase) EACCode() *string { return d.eacCode }

// SetEACCode sets the EAC code, or clears it when v is nil.
func (d *documentBase) SetEACCode(v *string) bool {
	return saft.SetOptText(d.reg, &d.eacCode, eacCodeRule, "EACCode", v)
}

// SystemEntryDate returns the system entry date.
func (d *documentBase) SystemEntryDate() time.Time { return d.systemEntryDate.Get() }
// IsSetSystemEntryDate reports whether SystemEntryDate holds a value.
func (d *documentBase) IsSetSystemEntryDate() bool { return d.systemEntryDate.IsSet() }

// SetSystemEntryDate sets the moment the document was recorded.
func (d *documentBase) SetSystemEntryDate(v time.Time) {
	d.systemEntryDate.Set(v)
}

// TransactionID returns the transaction ID, nil when absent.
func (d *documentBase) TransactionID() *string { return d.transactionID }

// SetTransactionID links the document to its accounting entry,
// "<date> <journal> <document>".
func (d *documentBase) SetTransactionID(v *string) bool {
	return saft.SetOptText(d.reg, &d.transactionID, transactionIDRule, "TransactionID", v)
}

// CustomerID returns the customer ID.
func (d *documentBase) CustomerID() string { return d.customerID.Get() }
// IsSetCustomerID reports whether CustomerID holds a value.
func (d *documentBase) IsSetCustomerID() bool { return d.customerID.IsSet() }

// SetCustomerID sets the customer as in MasterFiles, 1 to 30 characters.
func (d *documentBase) SetCustomerID(v string) bool {
	return saft.SetText(d.reg, &d.customerID, customerIDRule, "CustomerID", v)
}

func (d *documentBase) writeNumber(node *etree.Element) {
	saft.WriteText(d.reg, node, d.numberTag, d.number)
}

func (d *documentBase) writeATCUD(node *etree.Element) {
	saft.WriteText(d.reg, node, "ATCUD", d.atcud)
}

func (d *documentBase) writeHash(node *etree.Element) {
	saft.WriteText(d.reg, node, "Hash", d.hash)
	saft.WriteText(d.reg, node, "HashControl", d.hashControl)
}

func (d *documentBase) writePeriod(node *etree.Element) {
	saft.WriteOptInt(node, "Period", d.period)
}

func (d *documentBase) writeDate(node *etree.Element) {
	saft.WriteDate(d.reg, node, d.dateTag, d.date)
}

func (d *documentBase) writeSource(node *etree.Element) {
	saft.WriteText(d.reg, node, "SourceID", d.sourceID)
}

func (d *documentBase) writeEACCode(node *etree.Element) {
	saft.WriteOptText(node, "EACCode", d.eacCode)
}

func (d *documentBase) writeSystemEntryDate(node *etree.Element) {
	saft.WriteDateTime(d.reg, node, "SystemEntryDate", d.systemEntryDate)
}

func (d *documentBase) writeTransactionID(node *etree.Element) {
	saft.WriteOptText(node, "TransactionID", d.transactionID)
}

func (d *documentBase) writeCustomerID(node *etree.Element) {
	saft.WriteText(d.reg, node, "CustomerID", d.customerID)
}

// parse reads every shared field except Hash, HashControl and CustomerID,
// whose presence depends on the document kind.
func (d *documentBase) parse(node *etree.Element) error {
	number, err := saft.RequiredText(node, d.numberTag)
	if err != nil {
		return err
	}
	d.setNumber(number)
	date, err := saft.RequiredDate(node, d.dateTag)
	if err != nil {
		return err
	}
	d.date.Set(date)
	atcud, err := saft.RequiredText(node, "ATCUD")
	if err != nil {
		return err
	}
	d.SetATCUD(atcud)
	period, err := saft.OptionalInt(node, "Period")
	if err != nil {
		return err
	}
	d.SetPeriod(period)
	source, err := saft.RequiredText(node, "SourceID")
	if err != nil {
		return err
	}
	d.SetSourceID(source)
	d.SetEACCode(saft.OptionalText(node, "EACCode"))
	entry, err := saft.RequiredDateTime(node, "SystemEntryDate")
	if err != nil {
		return err
	}
	d.SetSystemEntryDate(entry)
	d.SetTransactionID(saft.OptionalText(node, "TransactionID"))
	return nil
}

func (d *documentBase) parseHash(node *etree.Element) error {
	hash, err := saft.RequiredText(node, "Hash")
	if err != nil {
		return err
	}
	d.SetHash(hash)
	control, err := saft.RequiredText(node, "HashControl")
	if err != nil {
		return err
	}
	d.SetHashControl(control)
	return nil
}

func (d *documentBase) parseCustomerID(node *etree.Element) error {
	id, err := saft.RequiredText(node, "CustomerID")
	if err != nil {
		return err
	}
	d.SetCustomerID(id)
	return nil
}

// =============================================================================
// SHIPPING PART
// =============================================================================

type shippingPart struct {
	reg *saft.ErrorRegister

	shipTo            *Shipping
	shipFrom          *Shipping
	movementEndTime   *time.Time
	movementStartTime *time.Time
}

// ShipTo returns the ShipTo block, nil when absent.
func (s *shippingPart) ShipTo() *Shipping { return s.shipTo }

// NewShipTo creates the ShipTo block, replacing any previous one.
func (s *shippingPart) NewShipTo() *Shipping {
	s.shipTo = NewShipTo(s.reg)
	return s.shipTo
}

// ShipFrom returns the ShipFrom block or nil.
func (s *shippingPart) ShipFrom() *Shipping { return s.shipFrom }

// NewShipFrom creates the ShipFrom block, replacing any previous one.
func (s *shippingPart) NewShipFrom() *Shipping {
	s.shipFrom = NewShipFrom(s.reg)
	return s.shipFrom
}

// MovementEndTime returns the movement end time, nil when absent.
func (s *shippingPart) MovementEndTime() *time.Time { return s.movementEndTime }

// SetMovementEndTime sets the movement end time, or clears it when v is nil.
func (s *shippingPart) SetMovementEndTime(v *time.Time) {
	s.movementEndTime = v
}

// MovementStartTime returns the movement start time, nil when absent.
func (s *shippingPart) MovementStartTime() *time.Time { return s.movementStartTime }

// SetMovementStartTime sets the movement start time, or clears it when v is nil.
func (s *shippingPart) SetMovementStartTime(v *time.Time) {
	s.movementStartTime = v
}

// writeShipping writes ShipTo, ShipFrom and MovementEndTime.
func (s *shippingPart) writeShipping(node *etree.Element) error {
	if s.shipTo != nil {
		if _, err := s.shipTo.CreateXMLNode(node); err != nil {
			return err
		}
	}
	if s.shipFrom != nil {
		if _, err := s.shipFrom.CreateXMLNode(node); err != nil {
			return err
		}
	}
	saft.WriteOptDateTime(node, "MovementEndTime", s.movementEndTime)
	return nil
}

func (s *shippingPart) parse(node *etree.Element) error {
	if child := saft.Child(node, "ShipTo"); child != nil {
		if err := s.NewShipTo().ParseXMLNode(child); err != nil {
			return err
		}
	}
	if child := saft.Child(node, "ShipFrom"); child != nil {
		if err := s.NewShipFrom().ParseXMLNode(child); err != nil {
			return err
		}
	}
	end, err := saft.OptionalDateTime(node, "MovementEndTime")
	if err != nil {
		return err
	}
	s.SetMovementEndTime(end)
	start, err := saft.OptionalDateTime(node, "MovementStartTime")
	if err != nil {
		return err
	}
	s.SetMovementStartTime(start)
	return nil
}

// calcLines adapts a typed line slice to CalcTotals.
func calcLines[L Calculable](lines []L) []Calculable {
	out := make([]Calculable, len(lines))
	for i, l := range lines {
		out[i] = l
	}
	return out
}
