package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/pkg/saft/sourcedocuments"
)

// document is the flat view of a source document the checks work on.
type document struct {
	container string
	numberTag string
	dateTag   string

	docNo           string
	number          int
	date            time.Time
	systemEntryDate time.Time
	status          string
	hash            string
	signed          bool
	customerID      string
	supplierID      string
	lines           []line

	calc       *sourcedocuments.DocTotalCalc
	hasTotals  bool
	netTotal   decimal.Decimal
	taxPayable decimal.Decimal
	grossTotal decimal.Decimal
}

type line struct {
	number      int
	productCode string
}

type totals interface {
	NetTotal() decimal.Decimal
	TaxPayable() decimal.Decimal
	GrossTotal() decimal.Decimal
}

func (d *document) setTotals(t totals) {
	d.hasTotals = true
	d.netTotal = t.NetTotal()
	d.taxPayable = t.TaxPayable()
	d.grossTotal = t.GrossTotal()
}

// collectDocuments flattens every container in file order.
func collectDocuments(sd *sourcedocuments.SourceDocuments) []*document {
	if sd == nil {
		return nil
	}
	var docs []*document

	if s := sd.SalesInvoices(); s != nil {
		for _, inv := range s.Invoice() {
			d := &document{
				container:       "SalesInvoices",
				numberTag:       "InvoiceNo",
				dateTag:         "InvoiceDate",
				docNo:           inv.InvoiceNo(),
				date:            inv.InvoiceDate(),
				systemEntryDate: inv.SystemEntryDate(),
				hash:            inv.Hash(),
				signed:          true,
				customerID:      inv.CustomerID(),
				calc:            inv.CalcTotals(),
			}
			if st := inv.DocumentStatus(); st != nil {
				d.status = string(st.Status())
			}
			if t := inv.DocumentTotals(); t != nil {
				d.setTotals(t)
			}
			for _, l := range inv.Lines() {
				d.lines = append(d.lines, line{number: l.LineNumber(), productCode: l.ProductCode()})
			}
			docs = append(docs, d)
		}
	}

	if m := sd.MovementOfGoods(); m != nil {
		for _, sm := range m.StockMovement() {
			d := &document{
				container:       "MovementOfGoods",
				numberTag:       "DocumentNumber",
				dateTag:         "MovementDate",
				docNo:           sm.DocumentNumber(),
				date:            sm.MovementDate(),
				systemEntryDate: sm.SystemEntryDate(),
				hash:            sm.Hash(),
				signed:          true,
				customerID:      sm.CustomerID(),
				calc:            sm.CalcTotals(),
			}
			if id := sm.SupplierID(); id != nil {
				d.supplierID = *id
			}
			if st := sm.DocumentStatus(); st != nil {
				d.status = string(st.Status())
			}
			if t := sm.DocumentTotals(); t != nil {
				d.setTotals(t)
			}
			for _, l := range sm.Lines() {
				d.lines = append(d.lines, line{number: l.LineNumber(), productCode: l.ProductCode()})
			}
			docs = append(docs, d)
		}
	}

	if w := sd.WorkingDocuments(); w != nil {
		for _, wd := range w.WorkDocument() {
			d := &document{
				container:       "WorkingDocuments",
				numberTag:       "DocumentNumber",
				dateTag:         "WorkDate",
				docNo:           wd.DocumentNumber(),
				date:            wd.WorkDate(),
				systemEntryDate: wd.SystemEntryDate(),
				hash:            wd.Hash(),
				signed:          true,
				customerID:      wd.CustomerID(),
				calc:            wd.CalcTotals(),
			}
			if st := wd.DocumentStatus(); st != nil {
				d.status = string(st.Status())
			}
			if t := wd.DocumentTotals(); t != nil {
				d.setTotals(t)
			}
			for _, l := range wd.Lines() {
				d.lines = append(d.lines, line{number: l.LineNumber(), productCode: l.ProductCode()})
			}
			docs = append(docs, d)
		}
	}

	if p := sd.Payments(); p != nil {
		for _, pay := range p.Payment() {
			d := &document{
				container:       "Payments",
				numberTag:       "PaymentRefNo",
				dateTag:         "TransactionDate",
				docNo:           pay.PaymentRefNo(),
				date:            pay.TransactionDate(),
				systemEntryDate: pay.SystemEntryDate(),
				customerID:      pay.CustomerID(),
				calc:            pay.CalcTotals(),
			}
			if st := pay.DocumentStatus(); st != nil {
				d.status = string(st.Status())
			}
			if t := pay.DocumentTotals(); t != nil {
				d.setTotals(t)
			}
			for _, l := range pay.Lines() {
				d.lines = append(d.lines, line{number: l.LineNumber()})
			}
			docs = append(docs, d)
		}
	}

	for _, d := range docs {
		if !d.hasTotals {
			d.grossTotal = d.calc.GrossTotal
		}
	}
	return docs
}
