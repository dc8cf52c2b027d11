// =============================================================================
// Source Documents - Containers
// =============================================================================
//
// SalesInvoices, MovementOfGoods, WorkingDocuments and Payments hold the
// documents of one kind plus control totals. SourceDocuments holds the four
// containers and decides which of them are written for an export type.
//
// CONTROL TOTALS:
//   NumberOfEntries counts every document. TotalDebit/TotalCredit and the
//   MovementOfGoods line and quantity totals leave out cancelled (A) and
//   billed (F) documents. Tally computes them from the documents held.
//
// =============================================================================

package sourcedocuments

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
)

// Tally is a set of control totals computed from the documents.
type Tally struct {
	NumberOfEntries int
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
}

func (t *Tally) addLine(debit, credit *decimal.Decimal) {
	if debit != nil {
		t.TotalDebit = t.TotalDebit.Add(*debit)
	}
	if credit != nil {
		t.TotalCredit = t.TotalCredit.Add(*credit)
	}
}

// =============================================================================
// ENTRIES CONTAINER BASE
// =============================================================================

type entriesBase struct {
	reg *saft.ErrorRegister

	numberOfEntries saft.Field[int]
	totalDebit      saft.Field[decimal.Decimal]
	totalCredit     saft.Field[decimal.Decimal]
}

// NumberOfEntries returns the number of entries.
func (c *entriesBase) NumberOfEntries() int { return c.numberOfEntries.Get() }
// IsSetNumberOfEntries reports whether NumberOfEntries holds a value.
func (c *entriesBase) IsSetNumberOfEntries() bool { return c.numberOfEntries.IsSet() }

// SetNumberOfEntries sets the number of entries.
func (c *entriesBase) SetNumberOfEntries(v int) bool {
	c.numberOfEntries.Set(v)
	if v < 0 {
		c.reg.AddOnSetValue(saft.NotValid("NumberOfEntries"))
		return false
	}
	return true
}

// TotalDebit returns the total debit, zero when unset.
func (c *entriesBase) TotalDebit() decimal.Decimal { return c.totalDebit.Get() }
// IsSetTotalDebit reports whether TotalDebit is set.
func (c *entriesBase) IsSetTotalDebit() bool { return c.totalDebit.IsSet() }

// SetTotalDebit stores the total debit.
func (c *entriesBase) SetTotalDebit(v decimal.Decimal) bool {
	return saft.SetDecimal(c.reg, &c.totalDebit, "TotalDebit", v, saft.NonNegative)
}

// TotalCredit returns the total credit.
func (c *entriesBase) TotalCredit() decimal.Decimal { return c.totalCredit.Get() }
// IsSetTotalCredit reports whether TotalCredit holds a value.
func (c *entriesBase) IsSetTotalCredit() bool { return c.totalCredit.IsSet() }

// SetTotalCredit sets the total credit.
func (c *entriesBase) SetTotalCredit(v decimal.Decimal) bool {
	return saft.SetDecimal(c.reg, &c.totalCredit, "TotalCredit", v, saft.NonNegative)
}

// SetFromTally copies computed control totals into the container.
func (c *entriesBase) SetFromTally(t Tally) {
	c.SetNumberOfEntries(t.NumberOfEntries)
	c.SetTotalDebit(t.TotalDebit)
	c.SetTotalCredit(t.TotalCredit)
}

func (c *entriesBase) write(node *etree.Element) {
	saft.WriteInt(c.reg, node, "NumberOfEntries", c.numberOfEntries)
	saft.WriteDecimal(c.reg, node, "TotalDebit", c.totalDebit)
	saft.WriteDecimal(c.reg, node, "TotalCredit", c.totalCredit)
}

func (c *entriesBase) parse(node *etree.Element) error {
	entries, err := saft.RequiredInt(node, "NumberOfEntries")
	if err != nil {
		return err
	}
	c.SetNumberOfEntries(entries)
	debit, err := saft.RequiredDecimal(node, "TotalDebit")
	if err != nil {
		return err
	}
	c.SetTotalDebit(debit)
	credit, err := saft.RequiredDecimal(node, "TotalCredit")
	if err != nil {
		return err
	}
	c.SetTotalCredit(credit)
	return nil
}

// =============================================================================
// SALES INVOICES
// =============================================================================

// SalesInvoices holds the invoices of the period.
type SalesInvoices struct {
	entriesBase

	invoice []*Invoice
}

// NewSalesInvoices creates a SalesInvoices bound to reg.
func NewSalesInvoices(reg *saft.ErrorRegister) *SalesInvoices {
	return &SalesInvoices{entriesBase: entriesBase{reg: reg}}
}

// AddInvoice appends a new invoice and returns it.
func (s *SalesInvoices) AddInvoice() *Invoice {
	i := NewInvoice(s.reg)
	s.invoice = append(s.invoice, i)
	return i
}

// Invoice returns the invoice entries in document order.
func (s *SalesInvoices) Invoice() []*Invoice { return s.invoice }

// Tally computes the control totals of the invoices.
func (s *SalesInvoices) Tally() Tally {
	t := Tally{NumberOfEntries: len(s.invoice)}
	for _, inv := range s.invoice {
		if st := inv.DocumentStatus(); st != nil && (st.Status() == enum.InvoiceStatusA || st.Status() == enum.InvoiceStatusF) {
			continue
		}
		for _, l := range inv.lines {
			t.addLine(l.debitAmount, l.creditAmount)
		}
	}
	return t
}

// CreateXMLNode writes the SalesInvoices element under parent and returns it.
func (s *SalesInvoices) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "SourceDocuments"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("SalesInvoices")
	s.write(node)
	for _, inv := range s.invoice {
		if _, err := inv.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode reads a SalesInvoices element.
func (s *SalesInvoices) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "SalesInvoices"); err != nil {
		return err
	}
	if err := s.parse(node); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "Invoice") {
		if err := s.AddInvoice().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// MOVEMENT OF GOODS
// =============================================================================

// MovementOfGoods holds the transport and delivery documents of the period.
type MovementOfGoods struct {
	reg *saft.ErrorRegister

	numberOfMovementLines saft.Field[int]
	totalQuantityIssued   saft.Field[decimal.Decimal]
	stockMovement         []*StockMovement
}

// NewMovementOfGoods creates a MovementOfGoods bound to reg.
func NewMovementOfGoods(reg *saft.ErrorRegister) *MovementOfGoods {
	return &MovementOfGoods{reg: reg}
}

// NumberOfMovementLines returns the number of movement lines.
func (m *MovementOfGoods) NumberOfMovementLines() int { return m.numberOfMovementLines.Get() }
// IsSetNumberOfMovementLines reports whether NumberOfMovementLines holds a value.
func (m *MovementOfGoods) IsSetNumberOfMovementLines() bool {
	return m.numberOfMovementLines.IsSet()
}

// SetNumberOfMovementLines sets the number of movement lines.
func (m *MovementOfGoods) SetNumberOfMovementLines(v int) bool {
	m.numberOfMovementLines.Set(v)
	if v < 0 {
		m.reg.AddOnSetValue(saft.NotValid("NumberOfMovementLines"))
		return false
	}
	return true
}

// TotalQuantityIssued returns the total quantity issued, zero when unset.
func (m *MovementOfGoods) TotalQuantityIssued() decimal.Decimal {
	return m.totalQuantityIssued.Get()
}

// IsSetTotalQuantityIssued reports whether TotalQuantityIssued is set.
func (m *MovementOfGoods) IsSetTotalQuantityIssued() bool {
	return m.totalQuantityIssued.IsSet()
}

// SetTotalQuantityIssued stores the total quantity issued.
func (m *MovementOfGoods) SetTotalQuantityIssued(v decimal.Decimal) bool {
	return saft.SetDecimal(m.reg, &m.totalQuantityIssued, "TotalQuantityIssued", v, saft.NonNegative)
}

// AddStockMovement appends a new stock movement and returns it.
func (m *MovementOfGoods) AddStockMovement() *StockMovement {
	s := NewStockMovement(m.reg)
	m.stockMovement = append(m.stockMovement, s)
	return s
}

// StockMovement returns the stock movement entries in document order.
func (m *MovementOfGoods) StockMovement() []*StockMovement { return m.stockMovement }

// Tally returns the number of lines and the quantity issued by the
// movements that are neither cancelled nor billed.
func (m *MovementOfGoods) Tally() (lines int, quantity decimal.Decimal) {
	quantity = decimal.Zero
	for _, s := range m.stockMovement {
		if st := s.DocumentStatus(); st != nil && (st.Status() == enum.MovementStatusA || st.Status() == enum.MovementStatusF) {
			continue
		}
		lines += len(s.lines)
		quantity = quantity.Add(s.QuantityIssued())
	}
	return lines, quantity
}

// SetFromTally copies the computed control totals into the container.
func (m *MovementOfGoods) SetFromTally() {
	lines, quantity := m.Tally()
	m.SetNumberOfMovementLines(lines)
	m.SetTotalQuantityIssued(quantity)
}

// CreateXMLNode writes the MovementOfGoods element under parent and returns it.
func (m *MovementOfGoods) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "SourceDocuments"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("MovementOfGoods")
	saft.WriteInt(m.reg, node, "NumberOfMovementLines", m.numberOfMovementLines)
	saft.WriteDecimal(m.reg, node, "TotalQuantityIssued", m.totalQuantityIssued)
	for _, s := range m.stockMovement {
		if _, err := s.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode reads a MovementOfGoods element.
func (m *MovementOfGoods) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "MovementOfGoods"); err != nil {
		return err
	}
	lines, err := saft.RequiredInt(node, "NumberOfMovementLines")
	if err != nil {
		return err
	}
	m.SetNumberOfMovementLines(lines)
	qty, err := saft.RequiredDecimal(node, "TotalQuantityIssued")
	if err != nil {
		return err
	}
	m.SetTotalQuantityIssued(qty)
	for _, child := range saft.Children(node, "StockMovement") {
		if err := m.AddStockMovement().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// WORKING DOCUMENTS
// =============================================================================

// WorkingDocuments holds the working documents of the period.
type WorkingDocuments struct {
	entriesBase

	workDocument []*WorkDocument
}

// NewWorkingDocuments creates a WorkingDocuments bound to reg.
func NewWorkingDocuments(reg *saft.ErrorRegister) *WorkingDocuments {
	return &WorkingDocuments{entriesBase: entriesBase{reg: reg}}
}

// AddWorkDocument appends a new working document and returns it.
func (w *WorkingDocuments) AddWorkDocument() *WorkDocument {
	d := NewWorkDocument(w.reg)
	w.workDocument = append(w.workDocument, d)
	return d
}

// WorkDocument returns the work document entries in document order.
func (w *WorkingDocuments) WorkDocument() []*WorkDocument { return w.workDocument }

// Tally computes the control totals of the working documents.
func (w *WorkingDocuments) Tally() Tally {
	t := Tally{NumberOfEntries: len(w.workDocument)}
	for _, d := range w.workDocument {
		if st := d.DocumentStatus(); st != nil && (st.Status() == enum.WorkStatusA || st.Status() == enum.WorkStatusF) {
			continue
		}
		for _, l := range d.lines {
			t.addLine(l.debitAmount, l.creditAmount)
		}
	}
	return t
}

// CreateXMLNode writes the WorkingDocuments element under parent and returns it.
func (w *WorkingDocuments) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "SourceDocuments"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("WorkingDocuments")
	w.write(node)
	for _, d := range w.workDocument {
		if _, err := d.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode reads a WorkingDocuments element.
func (w *WorkingDocuments) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "WorkingDocuments"); err != nil {
		return err
	}
	if err := w.parse(node); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "WorkDocument") {
		if err := w.AddWorkDocument().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// PAYMENTS
// =============================================================================

// Payments holds the receipts of the period.
type Payments struct {
	entriesBase

	payment []*Payment
}

// NewPayments creates a Payments bound to reg.
func NewPayments(reg *saft.ErrorRegister) *Payments {
	return &Payments{entriesBase: entriesBase{reg: reg}}
}

// AddPayment appends a new receipt and returns it.
func (p *Payments) AddPayment() *Payment {
	d := NewPayment(p.reg)
	p.payment = append(p.payment, d)
	return d
}

// Payment returns the payment entries in document order.
func (p *Payments) Payment() []*Payment { return p.payment }

// Tally computes the control totals of the receipts. Cancelled receipts
// are left out of the totals.
func (p *Payments) Tally() Tally {
	t := Tally{NumberOfEntries: len(p.payment)}
	for _, d := range p.payment {
		if st := d.DocumentStatus(); st != nil && st.Status() == enum.PaymentStatusA {
			continue
		}
		for _, l := range d.lines {
			t.addLine(l.debitAmount, l.creditAmount)
		}
	}
	return t
}

// CreateXMLNode writes the Payments element under parent and returns it.
func (p *Payments) CreateXMLNode(parent *etree.Element) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "SourceDocuments"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("Payments")
	p.write(node)
	for _, d := range p.payment {
		if _, err := d.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode reads a Payments element.
func (p *Payments) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "Payments"); err != nil {
		return err
	}
	if err := p.parse(node); err != nil {
		return err
	}
	for _, child := range saft.Children(node, "Payment") {
		if err := p.AddPayment().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SOURCE DOCUMENTS
// =============================================================================

// SourceDocuments holds the four document containers.
type SourceDocuments struct {
	reg *saft.ErrorRegister

	salesInvoices    *SalesInvoices
	movementOfGoods  *MovementOfGoods
	workingDocuments *WorkingDocuments
	payments         *Payments
}

// NewSourceDocuments creates a SourceDocuments bound to reg.
func NewSourceDocuments(reg *saft.ErrorRegister) *SourceDocuments {
	return &SourceDocuments{reg: reg}
}

// SalesInvoices returns the sales invoices, nil when absent.
func (s *SourceDocuments) SalesInvoices() *SalesInvoices { return s.salesInvoices }

// NewSalesInvoices creates the SalesInvoices container, replacing any
// previous one.
func (s *SourceDocuments) NewSalesInvoices() *SalesInvoices {
	s.salesInvoices = NewSalesInvoices(s.reg)
	return s.salesInvoices
}

// MovementOfGoods returns the movement of goods or nil.
func (s *SourceDocuments) MovementOfGoods() *MovementOfGoods { return s.movementOfGoods }

// NewMovementOfGoods creates the MovementOfGoods container, replacing any
// previous one.
func (s *SourceDocuments) NewMovementOfGoods() *MovementOfGoods {
	s.movementOfGoods = NewMovementOfGoods(s.reg)
	return s.movementOfGoods
}

// WorkingDocuments returns the working documents, nil when absent.
func (s *SourceDocuments) WorkingDocuments() *WorkingDocuments { return s.workingDocuments }

// NewWorkingDocuments creates the WorkingDocuments container, replacing
// any previous one.
func (s *SourceDocuments) NewWorkingDocuments() *WorkingDocuments {
	s.workingDocuments = NewWorkingDocuments(s.reg)
	return s.workingDocuments
}

// Payments returns the payments or nil.
func (s *SourceDocuments) Payments() *Payments { return s.payments }

// NewPayments creates the Payments container, replacing any previous one.
func (s *SourceDocuments) NewPayments() *Payments {
	s.payments = NewPayments(s.reg)
	return s.payments
}

// CreateXMLNode writes the containers allowed by exportType. The
// simplified export (S) only carries SalesInvoices.
func (s *SourceDocuments) CreateXMLNode(parent *etree.Element, exportType enum.ExportType) (*etree.Element, error) {
	if err := saft.CheckParent(parent, "AuditFile"); err != nil {
		return nil, err
	}
	node := parent.CreateElement("SourceDocuments")
	if s.salesInvoices != nil {
		if _, err := s.salesInvoices.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if exportType == enum.ExportTypeS {
		return node, nil
	}
	if s.movementOfGoods != nil {
		if _, err := s.movementOfGoods.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if s.workingDocuments != nil {
		if _, err := s.workingDocuments.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	if s.payments != nil {
		if _, err := s.payments.CreateXMLNode(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseXMLNode reads a SourceDocuments element.
func (s *SourceDocuments) ParseXMLNode(node *etree.Element) error {
	if err := saft.CheckNode(node, "SourceDocuments"); err != nil {
		return err
	}
	if child := saft.Child(node, "SalesInvoices"); child != nil {
		if err := s.NewSalesInvoices().ParseXMLNode(child); err != nil {
			return err
		}
	}
	if child := saft.Child(node, "MovementOfGoods"); child != nil {
		if err := s.NewMovementOfGoods().ParseXMLNode(child); err != nil {
			return err
		}
	}
	if child := saft.Child(node, "WorkingDocuments"); child != nil {
		if err := s.NewWorkingDocuments().ParseXMLNode(child); err != nil {
			return err
		}
	}
	if child := saft.Child(node, "Payments"); child != nil {
		if err := s.NewPayments().ParseXMLNode(child); err != nil {
			return err
		}
	}
	return nil
}
