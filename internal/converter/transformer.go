// =============================================================================
// SAF-T (PT) Toolkit - Transformer Module
// =============================================================================
//
// This module rewrites a parsed audit file before it is written back out.
// Each transformation is a named step; steps are combined into a chain and
// applied in order.
//
// SUPPORTED TRANSFORMATIONS:
//   - export_type:     switch between the complete (C) and simplified (S) file
//   - document_totals: recompute DocumentTotals from the lines
//   - control_totals:  recompute the container counters and totals
//   - resign:          sign every series again with a private key
//
// Totals are recomputed before signing: GrossTotal is part of the signed
// message.
//
// =============================================================================

package converter

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/internal/signature"
	"github.com/ginjaninja78/saft-pt/internal/validation"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
	"github.com/ginjaninja78/saft-pt/pkg/saft/sourcedocuments"
)

// =============================================================================
// TRANSFORMER STRUCTURE
// =============================================================================

// Transformer rewrites part of an audit file in place.
type Transformer struct {
	// Name identifies the step in errors and logs.
	Name string

	apply func(file *auditfile.AuditFile) error
}

// Transform applies the step to file.
func (t *Transformer) Transform(file *auditfile.AuditFile) error {
	if err := t.apply(file); err != nil {
		return fmt.Errorf("%s: %w", t.Name, err)
	}
	return nil
}

// =============================================================================
// TRANSFORMATIONS
// =============================================================================

// SetExportType switches the export type of the file.
func SetExportType(exportType enum.ExportType) *Transformer {
	return &Transformer{
		Name: "export_type",
		apply: func(file *auditfile.AuditFile) error {
			if !file.SetExportType(exportType) {
				return fmt.Errorf("invalid export type '%s'", exportType)
			}
			return nil
		},
	}
}

// RecalculateDocumentTotals replaces NetTotal, TaxPayable and GrossTotal of
// every document that has DocumentTotals with the values computed from its
// lines.
func RecalculateDocumentTotals() *Transformer {
	return &Transformer{
		Name: "document_totals",
		apply: func(file *auditfile.AuditFile) error {
			sd := file.SourceDocuments()
			if sd == nil {
				return nil
			}
			if s := sd.SalesInvoices(); s != nil {
				for _, d := range s.Invoice() {
					if t := d.DocumentTotals(); t != nil {
						t.SetFromCalc(d.CalcTotals())
					}
				}
			}
			if m := sd.MovementOfGoods(); m != nil {
				for _, d := range m.StockMovement() {
					if t := d.DocumentTotals(); t != nil {
						t.SetFromCalc(d.CalcTotals())
					}
				}
			}
			if w := sd.WorkingDocuments(); w != nil {
				for _, d := range w.WorkDocument() {
					if t := d.DocumentTotals(); t != nil {
						t.SetFromCalc(d.CalcTotals())
					}
				}
			}
			if p := sd.Payments(); p != nil {
				for _, d := range p.Payment() {
					if t := d.DocumentTotals(); t != nil {
						t.SetFromCalc(d.CalcTotals())
					}
				}
			}
			return nil
		},
	}
}

// RecalculateControlTotals replaces the counters and totals of every
// container with the values computed from its documents.
func RecalculateControlTotals() *Transformer {
	return &Transformer{
		Name: "control_totals",
		apply: func(file *auditfile.AuditFile) error {
			sd := file.SourceDocuments()
			if sd == nil {
				return nil
			}
			if s := sd.SalesInvoices(); s != nil {
				s.SetFromTally(s.Tally())
			}
			if m := sd.MovementOfGoods(); m != nil {
				m.SetFromTally()
			}
			if w := sd.WorkingDocuments(); w != nil {
				w.SetFromTally(w.Tally())
			}
			if p := sd.Payments(); p != nil {
				p.SetFromTally(p.Tally())
			}
			return nil
		},
	}
}

// Resign signs every series of sales, movement and working documents
// again. keyVersion goes to HashControl; empty leaves HashControl alone.
// Documents are signed in number order, the first of each series with an
// empty previous hash.
func Resign(signer *signature.Signer, keyVersion string) *Transformer {
	return &Transformer{
		Name: "resign",
		apply: func(file *auditfile.AuditFile) error {
			series, err := signableSeries(file.SourceDocuments())
			if err != nil {
				return err
			}
			for _, docs := range series {
				chain := make([]signature.Document, len(docs))
				for i, d := range docs {
					chain[i] = d.doc
				}
				hashes, err := signer.SignChain(chain, "")
				if err != nil {
					return err
				}
				for i, d := range docs {
					d.target.SetHash(hashes[i])
					if keyVersion != "" {
						d.target.SetHashControl(keyVersion)
					}
				}
			}
			return nil
		},
	}
}

// hashable is the part of a document the resign step writes to.
type hashable interface {
	SetHash(v string) bool
	SetHashControl(v string) bool
}

type grossTotal interface {
	GrossTotal() decimal.Decimal
}

type signable struct {
	number int
	doc    signature.Document
	target hashable
}

// signableSeries groups the signed documents by series, each series
// sorted by number.
func signableSeries(sd *sourcedocuments.SourceDocuments) ([][]*signable, error) {
	if sd == nil {
		return nil, nil
	}
	bySeries := make(map[string][]*signable)
	var order []string

	add := func(container, docNo string, date, entry time.Time, totals grossTotal, calc *sourcedocuments.DocTotalCalc, target hashable) error {
		prefix, n, ok := validation.SplitDocNo(docNo)
		if !ok {
			return fmt.Errorf("%s: document number '%s' has no series", container, docNo)
		}
		gross := calc.GrossTotal
		if totals != nil {
			gross = totals.GrossTotal()
		}
		key := container + "\x00" + prefix
		if _, seen := bySeries[key]; !seen {
			order = append(order, key)
		}
		bySeries[key] = append(bySeries[key], &signable{
			number: n,
			doc: signature.Document{
				Date:            date,
				SystemEntryDate: entry,
				DocNo:           docNo,
				GrossTotal:      gross,
			},
			target: target,
		})
		return nil
	}

	if s := sd.SalesInvoices(); s != nil {
		for _, d := range s.Invoice() {
			var t grossTotal
			if dt := d.DocumentTotals(); dt != nil {
				t = dt
			}
			if err := add("SalesInvoices", d.InvoiceNo(), d.InvoiceDate(), d.SystemEntryDate(), t, d.CalcTotals(), d); err != nil {
				return nil, err
			}
		}
	}
	if m := sd.MovementOfGoods(); m != nil {
		for _, d := range m.StockMovement() {
			var t grossTotal
			if dt := d.DocumentTotals(); dt != nil {
				t = dt
			}
			if err := add("MovementOfGoods", d.DocumentNumber(), d.MovementDate(), d.SystemEntryDate(), t, d.CalcTotals(), d); err != nil {
				return nil, err
			}
		}
	}
	if w := sd.WorkingDocuments(); w != nil {
		for _, d := range w.WorkDocument() {
			var t grossTotal
			if dt := d.DocumentTotals(); dt != nil {
				t = dt
			}
			if err := add("WorkingDocuments", d.DocumentNumber(), d.WorkDate(), d.SystemEntryDate(), t, d.CalcTotals(), d); err != nil {
				return nil, err
			}
		}
	}

	out := make([][]*signable, 0, len(order))
	for _, key := range order {
		docs := bySeries[key]
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].number < docs[j].number })
		out = append(out, docs)
	}
	return out, nil
}

// =============================================================================
// TRANSFORMATION CHAIN
// =============================================================================

// TransformationChain applies several transformers in sequence.
type TransformationChain struct {
	transformers []*Transformer
}

// NewTransformationChain creates a new empty chain.
func NewTransformationChain() *TransformationChain {
	return &TransformationChain{}
}

// Add appends a transformer to the chain.
func (c *TransformationChain) Add(t *Transformer) *TransformationChain {
	c.transformers = append(c.transformers, t)
	return c
}

// Len returns the number of steps in the chain.
func (c *TransformationChain) Len() int {
	return len(c.transformers)
}

// Transform applies every step to file and stops at the first error.
func (c *TransformationChain) Transform(file *auditfile.AuditFile) error {
	for _, t := range c.transformers {
		if err := t.Transform(file); err != nil {
			return err
		}
	}
	return nil
}
