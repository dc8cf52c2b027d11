// =============================================================================
// SAF-T (PT) Toolkit - XLSX Validation Report
// =============================================================================
//
// This module writes the outcome of a validation run to an XLSX workbook so
// that it can be handed to an accountant as is. One workbook may hold the
// results of many audit files.
//
// WORKBOOK STRUCTURE:
//
//   Summary     one row per audit file
//   | File | Company | NIF | FiscalYear | Valid | Errors | Warnings | Documents | Lines |
//
//   Validation  one row per validation error
//   | File | Severity | Check | Code | Container | Document | Line | Value | Expected | Message |
//
//   Register    one row per code registered while reading the file
//   | File | Channel | Code |
//
// =============================================================================

package xlsxreport

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/saft-pt/internal/validation"
	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
)

// Sheet names.
const (
	SheetSummary    = "Summary"
	SheetValidation = "Validation"
	SheetRegister   = "Register"
)

// Register channels as written in the Register sheet.
const (
	ChannelSetValue      = "set_value"
	ChannelCreateXMLNode = "create_xml_node"
	ChannelValidation    = "validation"
)

var (
	summaryHeader    = []interface{}{"File", "Company", "NIF", "FiscalYear", "Valid", "Errors", "Warnings", "Documents", "Lines"}
	validationHeader = []interface{}{"File", "Severity", "Check", "Code", "Container", "Document", "Line", "Value", "Expected", "Message"}
	registerHeader   = []interface{}{"File", "Channel", "Code"}
)

// =============================================================================
// REPORT STRUCTURE
// =============================================================================

// Entry is the outcome for one audit file.
type Entry struct {
	// Source is the path of the audit file.
	Source string

	// File is the parsed audit file. Nil when parsing failed.
	File *auditfile.AuditFile

	// Result is the validation result. Nil when parsing failed.
	Result *validation.ValidationResult

	// Err is the error that stopped the file, if any.
	Err error
}

// =============================================================================
// WRITING
// =============================================================================

// Write creates the workbook at path with one Summary row per entry.
//
// PARAMETERS:
//   - path: The output file path.
//   - entries: The audit file outcomes, in the order they should appear.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func Write(path string, entries ...Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetValidation, SheetRegister} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	w := &sheetWriter{f: f, bold: bold, rows: make(map[string]int)}
	w.header(SheetSummary, summaryHeader)
	w.header(SheetValidation, validationHeader)
	w.header(SheetRegister, registerHeader)

	for _, e := range entries {
		w.entry(e)
	}
	if w.err != nil {
		return w.err
	}

	for sheet, cols := range map[string]int{
		SheetSummary:    len(summaryHeader),
		SheetValidation: len(validationHeader),
		SheetRegister:   len(registerHeader),
	} {
		last, err := excelize.ColumnNumberToName(cols)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return fmt.Errorf("failed to size columns: %w", err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

// sheetWriter appends rows and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	bold int
	rows map[string]int
	err  error
}

func (w *sheetWriter) header(sheet string, values []interface{}) {
	w.row(sheet, values)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), 1)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellStyle(sheet, "A1", last, w.bold); err != nil {
		w.err = fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
}

func (w *sheetWriter) row(sheet string, values []interface{}) {
	if w.err != nil {
		return
	}
	w.rows[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, w.rows[sheet])
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write row %d of %s: %w", w.rows[sheet], sheet, err)
	}
}

func (w *sheetWriter) entry(e Entry) {
	summary := []interface{}{e.Source, "", "", "", false, 0, 0, 0, 0}
	if e.File != nil {
		h := e.File.Header()
		summary[1] = h.CompanyName()
		summary[2] = h.TaxRegistrationNumber()
		summary[3] = h.FiscalYear()
	}
	if e.Result != nil {
		summary[4] = e.Result.IsValid && e.Err == nil
		summary[5] = e.Result.ErrorCount
		summary[6] = e.Result.WarningCount
		summary[7] = e.Result.DocumentsValidated
		summary[8] = e.Result.LinesValidated
	}
	w.row(SheetSummary, summary)

	if e.Err != nil {
		w.row(SheetValidation, []interface{}{e.Source, validation.SeverityError, "parse", "", "", "", "", "", "", e.Err.Error()})
	}
	if e.Result != nil {
		for _, v := range e.Result.Errors {
			line := ""
			if v.Line > 0 {
				line = strconv.Itoa(v.Line)
			}
			w.row(SheetValidation, []interface{}{
				e.Source, v.Severity, v.Check, v.Code, v.Container, v.Document, line, v.Value, v.Expected, v.Message,
			})
		}
	}

	if e.File != nil {
		reg := e.File.ErrorRegister()
		for _, code := range reg.OnSetValue() {
			w.row(SheetRegister, []interface{}{e.Source, ChannelSetValue, code})
		}
		for _, code := range reg.OnCreateXMLNode() {
			w.row(SheetRegister, []interface{}{e.Source, ChannelCreateXMLNode, code})
		}
		for _, code := range reg.Validation() {
			w.row(SheetRegister, []interface{}{e.Source, ChannelValidation, code})
		}
	}
}

// =============================================================================
// READING
// =============================================================================

// Row is one row of the Validation sheet.
type Row struct {
	File      string
	Severity  string
	Check     string
	Code      string
	Container string
	Document  string
	Line      int
	Value     string
	Expected  string
	Message   string
}

// ReadValidation reads back the Validation sheet of a report. Used to
// compare runs and by the tests.
func ReadValidation(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetValidation)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", SheetValidation, err)
	}

	var out []Row
	for i, row := range rows {
		// Skip the header row.
		if i == 0 {
			continue
		}
		cell := func(col int) string {
			if col < len(row) {
				return row[col]
			}
			return ""
		}
		r := Row{
			File:      cell(0),
			Severity:  cell(1),
			Check:     cell(2),
			Code:      cell(3),
			Container: cell(4),
			Document:  cell(5),
			Value:     cell(7),
			Expected:  cell(8),
			Message:   cell(9),
		}
		if s := cell(6); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid line number '%s'", i+1, s)
			}
			r.Line = n
		}
		out = append(out, r)
	}
	return out, nil
}
