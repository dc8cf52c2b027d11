package sourcedocuments

import (
	"time"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// WorkDocument is a WorkingDocuments/WorkDocument: quotes, orders, pro
// forma invoices and the other documents issued before an invoice.
type WorkDocument struct {
	documentBase

	reg            *saft.ErrorRegister
	documentStatus *WorkDocumentStatus
	workType       saft.Field[enum.WorkType]
	lines          []*WorkDocumentLine
	documentTotals *DocumentTotals
}

// NewWorkDocument creates a WorkDocument bound to reg.
func NewWorkDocument(reg *saft.ErrorRegister) *WorkDocument {
	return &WorkDocument{
		documentBase: documentBase{reg: reg, numberTag: "DocumentNumber", dateTag: "WorkDate"},
		reg:          reg,
	}
}

// DocumentNumber returns the document number.
func (w *WorkDocument) DocumentNumber() string { return w.number.Get() }
// IsSetDocumentNumber reports whether DocumentNumber is set.
func (w *WorkDocument) IsSetDocumentNumber() bool { return w.number.IsSet() }

// SetDocumentNumber sets "<type> <series>/<number>", up to 60 characters.
func (w *WorkDocument) SetDocumentNumber(v string) bool {
	return w.setNumber(v)
}

// WorkDate returns the work date, zero when unset.
func (w *WorkDocument) WorkDate() time.Time { return w.date.Get() }
// IsSetWorkDate reports whether WorkDate is set.
func (w *WorkDocument) IsSetWorkDate() bool { return w.date.IsSet() }

// SetWorkDate stores the work date.
func (w *WorkDocument) SetWorkDate(v time.Time) {
	w.date.Set(v)
}

// DocumentStatus returns the document status, nil when absent.
func (w *WorkDocument) DocumentStatus() *WorkDocumentStatus { return w.documentStatus }

// NewDocumentStatus creates the DocumentStatus, replacing any previous one.
func (w *WorkDocument) NewDocumentStatus() *WorkDocumentStatus {
	w.documentStatus = NewWorkDocumentStatus(w.reg)
	return w.documentStatus
}

// WorkType returns the work type.
func (w *WorkDocument) WorkType() enum.WorkType { return w.workType.Get() }
// IsSetWorkType reports whether WorkType holds a value.
func (w *WorkDocument) IsSetWorkType() bool { return w.workType.IsSet() }

// SetWorkType sets the work type.
func (w *WorkDocument) SetWorkType(v enum.WorkType) bool {
	return saft.SetCode(w.reg, &w.workType, "WorkType", v)
}

// AddLine appends a new line and returns it.
func (w *WorkDocument) AddLine() *WorkDocumentLine {
	l := NewWorkDocumentLine(w.reg)
	w.lines = append(w.lines, l)
	return l
}

// Lines returns the document lines in order.
func (w *WorkDocument) Lines() []*WorkDocumentLine { return w.lines }

// DocumentTotals returns the document totals, nil when absent.
func (w *WorkDocument) DocumentTotals() *DocumentTotals { return w.documentTotals }

// NewDocumentTotals creates the DocumentTotals, replacing any previous one.
func (w *WorkDocument) NewDocumentTotals() *DocumentTotals {
	w.documentTotals = NewDocumentTotals(w.reg)
	return w.documentTotals
}

// CalcTotals computes the totals of the document lines.
func (w *WorkDocument) CalcTotals() *DocTotalCalc {
	return CalcTotals(calcLines(w.lines))
}

// CreateXMLNode writes the WorkDocument element under parent and returns it.
func (w *WorkDocument) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "WorkingDocuments"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("WorkDocument")
	w.writeNumber(node)
	w.writeATCUD(node)
	if err := writeRequired(w.reg, node, "DocumentStatus", w.documentStatus, w.documentStatus != nil); err != nil {
		return nil, err
	}
	w.writeHash(node)
	w.writePeriod(node)
	w.writeDate(node)
	saft.WriteCode(w.reg, node, "WorkType", w.workType)
	w.writeSource(node)
	w.writeEACCode(node)
	w.writeSystemEntryDate(node)
	w.writeTransactionID(node)
	w.writeCustomerID(node)
	if len(w.lines) == 0 {
		saft.AddEmpty(node, "Line")
		w.reg.AddOnCreateXMLNode(saft.NotValid("Line"))
	}
	for _, l := range w.lines {
		if _, err := l.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if err := writeRequired(w.reg, node, "DocumentTotals", w.documentTotals, w.documentTotals != nil); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseXMLNode reads a WorkDocument element.
func (w *WorkDocument) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "WorkDocument"); err != nil {
		return err
	}
	if err := w.documentBase.parse(node); err != nil {
		return err
	}
	if err := w.parseHash(node); err != nil {
		return err
	}
	if err := w.parseCustomerID(node); err != nil {
		return err
	}
	status, err := saft.RequiredChild(node, "DocumentStatus")
	if err != nil {
		return err
	}
	if err := w.NewDocumentStatus().ParseXMLNode(status); err != nil {
		return err
	}
	workType, err := saft.RequiredCode(node, "WorkType", enum.NewWorkType)
	if err != nil {
		return err
	}
	w.SetWorkType(workType)
	lines := saft.Children(node, "Line")
	if len(lines) == 0 {
		return &saft.MissingElementError{Parent: node.Tag, Element: "Line"}
	}
	for _, child := range lines {
		if err := w.AddLine().ParseXMLNode(child); err != nil {
			return err
		}
	}
	totals, err := saft.RequiredChild(node, "DocumentTotals")
	if err != nil {
		return err
	}
	return w.NewDocumentTotals().ParseXMLNode(totals)
}
