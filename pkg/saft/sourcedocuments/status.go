package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

type statusCode interface {
	~string
	Valid() bool
}

// DocumentStatus is the DocumentStatus block of a document. The four
// document kinds name their status elements with their own prefix
// (InvoiceStatus, MovementStatus, WorkStatus, PaymentStatus) and use
// SourceBilling or SourcePayment for the origin.
type DocumentStatus[S statusCode, B statusCode] struct {
	reg *saft.ErrorRegister

	statusTag     string
	statusDateTag string
	sourceTag     string
	parseStatus   func(string) (S, error)
	parseSource   func(string) (B, error)

	status     saft.Field[S]
	statusDate saft.Field[time.Time]
	reason     *string
	sourceID   saft.Field[string]
	source     saft.Field[B]
}

type (
	InvoiceDocumentStatus  = DocumentStatus[enum.InvoiceStatus, enum.SourceBilling]
	MovementDocumentStatus = DocumentStatus[enum.MovementStatus, enum.SourceBilling]
	WorkDocumentStatus     = DocumentStatus[enum.WorkStatus, enum.SourceBilling]
	PaymentDocumentStatus  = DocumentStatus[enum.PaymentStatus, enum.SourcePayment]
)

// NewInvoiceDocumentStatus returns an empty InvoiceDocumentStatus that reports to reg.
func NewInvoiceDocumentStatus(reg *saft.ErrorRegister) *InvoiceDocumentStatus {
	return &InvoiceDocumentStatus{
		reg:           reg,
		statusTag:     "InvoiceStatus",
		statusDateTag: "InvoiceStatusDate",
		sourceTag:     "SourceBilling",
		parseStatus:   enum.NewInvoiceStatus,
		parseSource:   enum.NewSourceBilling,
	}
}

// NewMovementDocumentStatus creates a MovementDocumentStatus bound to reg.
func NewMovementDocumentStatus(reg *saft.ErrorRegister) *MovementDocumentStatus {
	return &MovementDocumentStatus{
		reg:           reg,
		statusTag:     "MovementStatus",
		statusDateTag: "MovementStatusDate",
		sourceTag:     "SourceBilling",
		parseStatus:   enum.NewMovementStatus,
		parseSource:   enum.NewSourceBilling,
	}
}

// NewWorkDocumentStatus returns an empty WorkDocumentStatus that reports to reg.
func NewWorkDocumentStatus(reg *saft.ErrorRegister) *WorkDocumentStatus {
	return &WorkDocumentStatus{
		reg:           reg,
		statusTag:     "WorkStatus",
		statusDateTag: "WorkStatusDate",
		sourceTag:     "SourceBilling",
		parseStatus:   enum.NewWorkStatus,
		parseSource:   enum.NewSourceBilling,
	}
}

// NewPaymentDocumentStatus creates a PaymentDocumentStatus bound to reg.
func NewPaymentDocumentStatus(reg *saft.ErrorRegister) *PaymentDocumentStatus {
	return &PaymentDocumentStatus{
		reg:           reg,
		statusTag:     "PaymentStatus",
		statusDateTag: "PaymentStatusDate",
		sourceTag:     "SourcePayment",
		parseStatus:   enum.NewPaymentStatus,
		parseSource:   enum.NewSourcePayment,
	}
}

// Status returns the status.
func (d *DocumentStatus[S, B]) Status() S { return d.status.Get() }
// IsSetStatus reports whether Status is set.
func (d *DocumentStatus[S, B]) IsSetStatus() bool { return d.status.IsSet() }

// SetStatus sets InvoiceStatus, MovementStatus, WorkStatus or PaymentStatus.
func (d *DocumentStatus[S, B]) SetStatus(v S) bool {
	return saft.SetCode(d.reg, &d.status, d.statusTag, v)
}

// StatusDate returns the status date, zero when unset.
func (d *DocumentStatus[S, B]) StatusDate() time.Time { return d.statusDate.Get() }
// IsSetStatusDate reports whether StatusDate is set.
func (d *DocumentStatus[S, B]) IsSetStatusDate() bool { return d.statusDate.IsSet() }

// SetStatusDate sets the date and time of the last status change.
func (d *DocumentStatus[S, B]) SetStatusDate(v time.Time) {
	d.statusDate.Set(v)
}

// Reason returns the reason or nil.
func (d *DocumentStatus[S, B]) Reason() *string { return d.reason }

// SetReason sets the reason of the status change, 1 to 50 characters.
func (d *DocumentStatus[S, B]) SetReason(v *string) bool {
	return saft.SetOptText(d.reg, &d.reason, saft.TextMax50, "Reason", v)
}

// SourceID returns the source ID.
func (d *DocumentStatus[S, B]) SourceID() string { return d.sourceID.Get() }
// IsSetSourceID reports whether SourceID is set.
func (d *DocumentStatus[S, B]) IsSetSourceID() bool { return d.sourceID.IsSet() }

// SetSourceID sets the user who changed the status, 1 to 30 characters.
func (d *DocumentStatus[S, B]) SetSourceID(v string) bool {
	return saft.SetText(d.reg, &d.sourceID, saft.TextMax30, "SourceID", v)
}

// Source returns the source.
func (d *DocumentStatus[S, B]) Source() B { return d.source.Get() }
// IsSetSource reports whether Source holds a value.
func (d *DocumentStatus[S, B]) IsSetSource() bool { return d.source.IsSet() }

// SetSource sets SourceBilling or SourcePayment.
func (d *DocumentStatus[S, B]) SetSource(v B) bool {
	return saft.SetCode(d.reg, &d.source, d.sourceTag, v)
}

// CreateXMLNode appends the DocumentStatus element to parent.
func (d *DocumentStatus[S, B]) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "Invoice", "StockMovement", "WorkDocument", "Payment"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("DocumentStatus")
	saft.WriteCode(d.reg, node, d.statusTag, d.status)
	saft.WriteDateTime(d.reg, node, d.statusDateTag, d.statusDate)
	saft.WriteOptText(node, "Reason", d.reason)
	saft.WriteText(d.reg, node, "SourceID", d.sourceID)
	saft.WriteCode(d.reg, node, d.sourceTag, d.source)
	return node, nil
}

// ParseXMLNode fills the value from a DocumentStatus element.
func (d *DocumentStatus[S, B]) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "DocumentStatus"); err != nil {
		return err
	}
	status, err := saft.RequiredCode(node, d.statusTag, d.parseStatus)
	if err != nil {
		return err
	}
	d.SetStatus(status)
	date, err := saft.RequiredDateTime(node, d.statusDateTag)
	if err != nil {
		return err
	}
	d.SetStatusDate(date)
	d.SetReason(saft.OptionalText(node, "Reason"))
	sourceID, err := saft.RequiredText(node, "SourceID")
	if err != nil {
		return err
	}
	d.SetSourceID(sourceID)
	source, err := saft.RequiredCode(node, d.sourceTag, d.parseSource)
	if err != nil {
		return err
	}
	d.SetSource(source)
	return nil
}
