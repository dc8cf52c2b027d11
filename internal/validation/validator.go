// =============================================================================
// SAF-T (PT) Toolkit - Validation Engine
// =============================================================================
//
// This module validates a parsed audit file across documents. Field level
// rules (lengths, patterns, enumerations) are already enforced by the
// setters of pkg/saft while the file is read; what is left are the rules
// that need more than one element:
//   - Header: NIF check digit, expected NIF, StartDate before EndDate
//   - Control totals: NumberOfEntries, TotalDebit, TotalCredit and the
//     MovementOfGoods line and quantity counters
//   - Document totals: NetTotal, TaxPayable and GrossTotal recomputed from
//     the lines
//   - Numbering: line numbers increasing, document numbers continuous per
//     series
//   - References: customers, suppliers and products exist in MasterFiles
//   - Period: document dates inside Header StartDate..EndDate
//   - Signature: the hash chain of every series, when a public key is given
//
// ERROR HANDLING:
//   - Errors are collected, not returned one by one
//   - Each error names the container, the document and the rule
//   - Every error code is also added to ErrorRegister.Validation()
//
// =============================================================================

package validation

import (
	"crypto/rsa"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/saft-pt/internal/logging"
	"github.com/ginjaninja78/saft-pt/internal/signature"
	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Check names, as used in ValidationOptions.SkipChecks.
const (
	CheckHeader        = "header"
	CheckControlTotals = "control_totals"
	CheckTotals        = "totals"
	CheckNumbering     = "numbering"
	CheckReferences    = "references"
	CheckPeriod        = "period"
	CheckSignature     = "signature"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation error.
type ValidationError struct {
	// Severity indicates the severity of the error.
	// "error" = the file is not valid
	// "warning" = suspicious but allowed
	Severity string

	// Check is the name of the check that failed.
	Check string

	// Code is the error code added to the register.
	Code string

	// Container is the SourceDocuments container, empty for the Header.
	Container string

	// Document is the number of the document, empty for container and
	// header errors.
	Document string

	// Line is the line number, zero when the error is not about a line.
	Line int

	// Value is the value found in the file.
	Value string

	// Expected is the value the check computed.
	Expected string

	// Message is a human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var where []string
	if e.Container != "" {
		where = append(where, e.Container)
	}
	if e.Document != "" {
		where = append(where, e.Document)
	}
	if e.Line > 0 {
		where = append(where, fmt.Sprintf("line %d", e.Line))
	}
	if len(where) == 0 {
		where = append(where, "Header")
	}
	msg := fmt.Sprintf("[%s] %s: %s", strings.ToUpper(e.Severity), strings.Join(where, ", "), e.Message)
	if e.Value != "" || e.Expected != "" {
		msg += fmt.Sprintf(" (value: '%s', expected: '%s')", e.Value, e.Expected)
	}
	return msg
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors.
	IsValid bool

	// Errors contains all validation errors (including warnings).
	Errors []*ValidationError

	// ErrorCount is the number of errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// DocumentsValidated is the total number of documents validated.
	DocumentsValidated int

	// LinesValidated is the total number of document lines validated.
	LinesValidated int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator performs validation on an audit file.
type Validator struct {
	file    *auditfile.AuditFile
	options ValidationOptions
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// StopOnFirstError stops validation after the check that produced the
	// first error.
	// Default: false
	StopOnFirstError bool

	// TreatWarningsAsErrors makes any warning fail the file.
	// Default: false
	TreatWarningsAsErrors bool

	// Tolerance is the largest accepted difference between stored and
	// recomputed totals.
	// Default: 0.01
	Tolerance decimal.Decimal

	// PublicKey verifies the document hashes. Nil skips the signature check.
	PublicKey *rsa.PublicKey

	// ExpectedNIF is compared with Header/TaxRegistrationNumber. Zero
	// skips the comparison.
	ExpectedNIF int

	// SkipChecks lists checks that are not run, by name.
	SkipChecks []string

	// Logger receives one debug entry per check.
	Logger *logging.Logger
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		Tolerance: decimal.New(1, -2),
		Logger:    logging.Nop(),
	}
}

// NewValidator creates a new Validator instance.
func NewValidator(file *auditfile.AuditFile) *Validator {
	return NewValidatorWithOptions(file, DefaultValidationOptions())
}

// NewValidatorWithOptions creates a new Validator with custom options.
func NewValidatorWithOptions(file *auditfile.AuditFile, options ValidationOptions) *Validator {
	if options.Logger == nil {
		options.Logger = logging.Nop()
	}
	return &Validator{
		file:    file,
		options: options,
	}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate validates file with the default options and returns the list of
// errors.
func Validate(file *auditfile.AuditFile) []*ValidationError {
	return NewValidator(file).ValidateAll().Errors
}

// ValidateAll runs every check that is not skipped and returns a detailed
// result.
func (v *Validator) ValidateAll() *ValidationResult {
	result := &ValidationResult{
		IsValid: true,
		Errors:  make([]*ValidationError, 0),
	}

	docs := collectDocuments(v.file.SourceDocuments())
	result.DocumentsValidated = len(docs)
	for _, d := range docs {
		result.LinesValidated += len(d.lines)
	}

	checks := []struct {
		name string
		run  func(*ValidationResult, []*document)
	}{
		{CheckHeader, v.checkHeader},
		{CheckControlTotals, v.checkControlTotals},
		{CheckTotals, v.checkTotals},
		{CheckNumbering, v.checkNumbering},
		{CheckReferences, v.checkReferences},
		{CheckPeriod, v.checkPeriod},
		{CheckSignature, v.checkSignature},
	}

	for _, c := range checks {
		if v.skips(c.name) {
			continue
		}
		before := len(result.Errors)
		c.run(result, docs)
		v.options.Logger.Debugw("check done", "check", c.name, "errors", len(result.Errors)-before)

		if v.options.StopOnFirstError && result.ErrorCount > 0 {
			break
		}
	}

	return result
}

func (v *Validator) skips(check string) bool {
	for _, s := range v.options.SkipChecks {
		if strings.EqualFold(s, check) {
			return true
		}
	}
	return false
}

// add records err in result and in the file's register.
func (v *Validator) add(result *ValidationResult, err *ValidationError) {
	result.Errors = append(result.Errors, err)
	v.file.ErrorRegister().AddValidationError(err.Code)

	if err.Severity == SeverityError {
		result.ErrorCount++
		result.IsValid = false
		return
	}
	result.WarningCount++
	if v.options.TreatWarningsAsErrors {
		result.IsValid = false
	}
}

// =============================================================================
// HEADER
// =============================================================================

func (v *Validator) checkHeader(result *ValidationResult, _ []*document) {
	h := v.file.Header()
	nif := h.TaxRegistrationNumber()

	if !saft.ValidNIF(nif) {
		v.add(result, &ValidationError{
			Severity: SeverityError,
			Check:    CheckHeader,
			Code:     saft.NotValid("TaxRegistrationNumber"),
			Value:    strconv.Itoa(nif),
			Message:  "TaxRegistrationNumber is not a valid NIF",
		})
	}

	if v.options.ExpectedNIF != 0 && nif != v.options.ExpectedNIF {
		v.add(result, &ValidationError{
			Severity: SeverityError,
			Check:    CheckHeader,
			Code:     "TaxRegistrationNumber_mismatch",
			Value:    strconv.Itoa(nif),
			Expected: strconv.Itoa(v.options.ExpectedNIF),
			Message:  "file belongs to another company",
		})
	}

	if h.IsSetStartDate() && h.IsSetEndDate() && h.EndDate().Before(h.StartDate()) {
		v.add(result, &ValidationError{
			Severity: SeverityError,
			Check:    CheckHeader,
			Code:     saft.NotValid("EndDate"),
			Value:    h.EndDate().Format(saft.DateFormat),
			Expected: ">= " + h.StartDate().Format(saft.DateFormat),
			Message:  "EndDate precedes StartDate",
		})
	}
}

// =============================================================================
// CONTROL TOTALS
// =============================================================================

func (v *Validator) checkControlTotals(result *ValidationResult, _ []*document) {
	sd := v.file.SourceDocuments()
	if sd == nil {
		return
	}

	if s := sd.SalesInvoices(); s != nil {
		t := s.Tally()
		v.compareTally(result, "SalesInvoices", s.NumberOfEntries(), s.TotalDebit(), s.TotalCredit(), t.NumberOfEntries, t.TotalDebit, t.TotalCredit)
	}

	if m := sd.MovementOfGoods(); m != nil {
		lines, quantity := m.Tally()
		if m.NumberOfMovementLines() != lines {
			v.add(result, &ValidationError{
				Severity:  SeverityError,
				Check:     CheckControlTotals,
				Code:      saft.NotValid("MovementOfGoods_NumberOfMovementLines"),
				Container: "MovementOfGoods",
				Value:     strconv.Itoa(m.NumberOfMovementLines()),
				Expected:  strconv.Itoa(lines),
				Message:   "NumberOfMovementLines does not match the lines",
			})
		}
		if !v.within(m.TotalQuantityIssued(), quantity) {
			v.add(result, &ValidationError{
				Severity:  SeverityError,
				Check:     CheckControlTotals,
				Code:      saft.NotValid("MovementOfGoods_TotalQuantityIssued"),
				Container: "MovementOfGoods",
				Value:     m.TotalQuantityIssued().String(),
				Expected:  quantity.String(),
				Message:   "TotalQuantityIssued does not match the lines",
			})
		}
	}

	if w := sd.WorkingDocuments(); w != nil {
		t := w.Tally()
		v.compareTally(result, "WorkingDocuments", w.NumberOfEntries(), w.TotalDebit(), w.TotalCredit(), t.NumberOfEntries, t.TotalDebit, t.TotalCredit)
	}

	if p := sd.Payments(); p != nil {
		t := p.Tally()
		v.compareTally(result, "Payments", p.NumberOfEntries(), p.TotalDebit(), p.TotalCredit(), t.NumberOfEntries, t.TotalDebit, t.TotalCredit)
	}
}

func (v *Validator) compareTally(result *ValidationResult, container string, entries int, debit, credit decimal.Decimal, wantEntries int, wantDebit, wantCredit decimal.Decimal) {
	if entries != wantEntries {
		v.add(result, &ValidationError{
			Severity:  SeverityError,
			Check:     CheckControlTotals,
			Code:      saft.NotValid(container + "_NumberOfEntries"),
			Container: container,
			Value:     strconv.Itoa(entries),
			Expected:  strconv.Itoa(wantEntries),
			Message:   "NumberOfEntries does not match the documents",
		})
	}
	if !v.within(debit, wantDebit) {
		v.add(result, &ValidationError{
			Severity:  SeverityError,
			Check:     CheckControlTotals,
			Code:      saft.NotValid(container + "_TotalDebit"),
			Container: container,
			Value:     debit.String(),
			Expected:  wantDebit.String(),
			Message:   "TotalDebit does not match the lines",
		})
	}
	if !v.within(credit, wantCredit) {
		v.add(result, &ValidationError{
			Severity:  SeverityError,
			Check:     CheckControlTotals,
			Code:      saft.NotValid(container + "_TotalCredit"),
			Container: container,
			Value:     credit.String(),
			Expected:  wantCredit.String(),
			Message:   "TotalCredit does not match the lines",
		})
	}
}

func (v *Validator) within(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(v.options.Tolerance)
}

// =============================================================================
// DOCUMENT TOTALS
// =============================================================================

func (v *Validator) checkTotals(result *ValidationResult, docs []*document) {
	for _, d := range docs {
		if !d.hasTotals {
			v.add(result, &ValidationError{
				Severity:  SeverityError,
				Check:     CheckTotals,
				Code:      d.container + "_DocumentTotals_missing",
				Container: d.container,
				Document:  d.docNo,
				Message:   "document has no DocumentTotals",
			})
			continue
		}
		pairs := []struct {
			tag    string
			stored decimal.Decimal
			calc   decimal.Decimal
		}{
			{"NetTotal", d.netTotal, d.calc.NetTotal},
			{"TaxPayable", d.taxPayable, d.calc.TaxPayable},
			{"GrossTotal", d.grossTotal, d.calc.GrossTotal},
		}
		for _, p := range pairs {
			if v.within(p.stored, p.calc) {
				continue
			}
			v.add(result, &ValidationError{
				Severity:  SeverityError,
				Check:     CheckTotals,
				Code:      saft.NotValid(d.container + "_" + p.tag),
				Container: d.container,
				Document:  d.docNo,
				Value:     p.stored.String(),
				Expected:  p.calc.String(),
				Message:   p.tag + " does not match the lines",
			})
		}
	}
}

// =============================================================================
// NUMBERING
// =============================================================================

var docNoPattern = regexp.MustCompile(`^([^ ]+ [^/^ ]+)/([0-9]+)$`)

// SplitDocNo splits "FT A/12" into the series "FT A" and the number 12.
func SplitDocNo(docNo string) (string, int, bool) {
	m := docNoPattern.FindStringSubmatch(docNo)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

func (v *Validator) checkNumbering(result *ValidationResult, docs []*document) {
	for _, d := range docs {
		previous := 0
		for _, l := range d.lines {
			if l.number <= previous {
				v.add(result, &ValidationError{
					Severity:  SeverityError,
					Check:     CheckNumbering,
					Code:      saft.NotValid(d.container + "_LineNumber"),
					Container: d.container,
					Document:  d.docNo,
					Line:      l.number,
					Value:     strconv.Itoa(l.number),
					Expected:  "> " + strconv.Itoa(previous),
					Message:   "line numbers must be strictly increasing",
				})
			}
			previous = l.number
		}
	}

	for _, s := range groupSeries(docs) {
		if s.unparsable != nil {
			for _, d := range s.unparsable {
				v.add(result, &ValidationError{
					Severity:  SeverityError,
					Check:     CheckNumbering,
					Code:      saft.NotValid(d.container + "_" + d.numberTag),
					Container: d.container,
					Document:  d.docNo,
					Value:     d.docNo,
					Message:   "document number is not '<type> <series>/<number>'",
				})
			}
			continue
		}
		for i := 1; i < len(s.docs); i++ {
			prev, cur := s.docs[i-1], s.docs[i]
			switch {
			case cur.number == prev.number:
				v.add(result, &ValidationError{
					Severity:  SeverityError,
					Check:     CheckNumbering,
					Code:      s.container + "_" + cur.numberTag + "_duplicated",
					Container: s.container,
					Document:  cur.docNo,
					Message:   "document number is used twice",
				})
			case cur.number != prev.number+1:
				v.add(result, &ValidationError{
					Severity:  SeverityError,
					Check:     CheckNumbering,
					Code:      s.container + "_" + cur.numberTag + "_gap",
					Container: s.container,
					Document:  cur.docNo,
					Value:     strconv.Itoa(cur.number),
					Expected:  strconv.Itoa(prev.number + 1),
					Message:   fmt.Sprintf("numbering of series '%s' is not continuous", s.name),
				})
			}
		}
	}
}

// series is the documents of one container sharing "<type> <series>",
// sorted by number.
type series struct {
	container  string
	name       string
	docs       []*document
	unparsable []*document
}

func groupSeries(docs []*document) []*series {
	index := make(map[string]*series)
	var order []string
	bad := make(map[string]*series)

	for _, d := range docs {
		name, number, ok := SplitDocNo(d.docNo)
		if !ok {
			s, exists := bad[d.container]
			if !exists {
				s = &series{container: d.container}
				bad[d.container] = s
			}
			s.unparsable = append(s.unparsable, d)
			continue
		}
		d.number = number
		key := d.container + "\x00" + name
		s, exists := index[key]
		if !exists {
			s = &series{container: d.container, name: name}
			index[key] = s
			order = append(order, key)
		}
		s.docs = append(s.docs, d)
	}

	out := make([]*series, 0, len(order)+len(bad))
	for _, key := range order {
		s := index[key]
		sort.SliceStable(s.docs, func(i, j int) bool { return s.docs[i].number < s.docs[j].number })
		out = append(out, s)
	}
	containers := make([]string, 0, len(bad))
	for c := range bad {
		containers = append(containers, c)
	}
	sort.Strings(containers)
	for _, c := range containers {
		out = append(out, bad[c])
	}
	return out
}

// =============================================================================
// REFERENCES
// =============================================================================

func (v *Validator) checkReferences(result *ValidationResult, docs []*document) {
	mf := v.file.MasterFiles()
	customers := mf.CustomerIDs()
	suppliers := mf.SupplierIDs()
	products := mf.ProductCodes()

	for _, d := range docs {
		if d.customerID != "" {
			if _, ok := customers[d.customerID]; !ok {
				v.add(result, &ValidationError{
					Severity:  SeverityError,
					Check:     CheckReferences,
					Code:      d.container + "_CustomerID_not_found",
					Container: d.container,
					Document:  d.docNo,
					Value:     d.customerID,
					Message:   "customer is not in MasterFiles",
				})
			}
		}
		if d.supplierID != "" {
			if _, ok := suppliers[d.supplierID]; !ok {
				v.add(result, &ValidationError{
					Severity:  SeverityError,
					Check:     CheckReferences,
					Code:      d.container + "_SupplierID_not_found",
					Container: d.container,
					Document:  d.docNo,
					Value:     d.supplierID,
					Message:   "supplier is not in MasterFiles",
				})
			}
		}
		for _, l := range d.lines {
			if l.productCode == "" {
				continue
			}
			if _, ok := products[l.productCode]; !ok {
				v.add(result, &ValidationError{
					Severity:  SeverityError,
					Check:     CheckReferences,
					Code:      d.container + "_ProductCode_not_found",
					Container: d.container,
					Document:  d.docNo,
					Line:      l.number,
					Value:     l.productCode,
					Message:   "product is not in MasterFiles",
				})
			}
		}
	}
}

// =============================================================================
// PERIOD
// =============================================================================

func (v *Validator) checkPeriod(result *ValidationResult, docs []*document) {
	h := v.file.Header()
	if !h.IsSetStartDate() || !h.IsSetEndDate() {
		return
	}
	for _, d := range docs {
		if h.InPeriod(d.date) {
			continue
		}
		v.add(result, &ValidationError{
			Severity:  SeverityError,
			Check:     CheckPeriod,
			Code:      d.container + "_" + d.dateTag + "_out_of_period",
			Container: d.container,
			Document:  d.docNo,
			Value:     d.date.Format(saft.DateFormat),
			Expected:  h.StartDate().Format(saft.DateFormat) + ".." + h.EndDate().Format(saft.DateFormat),
			Message:   d.dateTag + " is outside the period of the file",
		})
	}
}

// =============================================================================
// SIGNATURE
// =============================================================================

// checkSignature verifies the hash chain of each series. A series whose
// first document in the file is not number 1 is chained to a document of
// an earlier file, so its first hash can only serve as the start of the
// chain. Documents with hash "0" are not signed and break the chain.
func (v *Validator) checkSignature(result *ValidationResult, docs []*document) {
	if v.options.PublicKey == nil {
		return
	}
	verifier := signature.NewVerifier(v.options.PublicKey)

	for _, s := range groupSeries(docs) {
		if len(s.docs) == 0 || !s.docs[0].signed {
			continue
		}
		var chain []signature.Document
		previous := ""
		flush := func() {
			for _, e := range verifier.VerifyChain(chain, previous) {
				v.add(result, &ValidationError{
					Severity:  SeverityError,
					Check:     CheckSignature,
					Code:      saft.NotValid(s.container + "_Hash"),
					Container: s.container,
					Document:  e.DocNo,
					Message:   e.Err.Error(),
				})
			}
			chain = nil
		}

		start := 0
		if s.docs[0].number != 1 {
			start = 1
			if h := s.docs[0].hash; h != "0" {
				previous = h
			}
		}
		for _, d := range s.docs[start:] {
			if d.hash == "0" || d.hash == "" {
				flush()
				previous = ""
				continue
			}
			chain = append(chain, signature.Document{
				Date:            d.date,
				SystemEntryDate: d.systemEntryDate,
				DocNo:           d.docNo,
				GrossTotal:      d.grossTotal,
				Hash:            d.hash,
			})
		}
		flush()
	}
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes validation errors to a text file, with a header
// line holding the time and the source file.
func WriteErrorLog(errors []*ValidationError, source, filePath string) error {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# %s %s\n", time.Now().Format(time.RFC3339), source))
	builder.WriteString(FormatErrors(errors))

	if err := os.WriteFile(filePath, []byte(builder.String()), 0644); err != nil {
		return fmt.Errorf("failed to write error log: %w", err)
	}
	return nil
}
