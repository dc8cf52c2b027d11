// =============================================================================
// SAF-T (PT) - Audit File
// =============================================================================
//
// AuditFile is the root of a SAF-T (PT) 1.04_01 file:
//
//   <AuditFile xmlns="urn:OECD:StandardAuditFile-Tax:PT_1.04_01">
//     <Header>...</Header>
//     <MasterFiles>...</MasterFiles>
//     <SourceDocuments>...</SourceDocuments>   <!-- optional -->
//   </AuditFile>
//
// Reading goes file -> etree.Document -> ParseXMLNode; writing goes
// CreateXMLNode -> etree.Document -> bytes. Every element of one file
// reports into the ErrorRegister the AuditFile was created with.
//
// =============================================================================

package auditfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
	"github.com/ginjaninja78/saft-pt/pkg/saft/enum"
	"github.com/ginjaninja78/saft-pt/pkg/saft/masterfiles"
	"github.com/ginjaninja78/saft-pt/pkg/saft/sourcedocuments"
)

// AuditFile is a whole SAF-T (PT) file.
type AuditFile struct {
	reg        *saft.ErrorRegister
	exportType enum.ExportType

	header          *Header
	masterFiles     *masterfiles.MasterFiles
	sourceDocuments *sourcedocuments.SourceDocuments
}

// New creates an empty complete (C) export with a Header and MasterFiles.
// A nil register gets a fresh one.
func New(reg *saft.ErrorRegister) *AuditFile {
	if reg == nil {
		reg = saft.NewErrorRegister()
	}
	return &AuditFile{
		reg:         reg,
		exportType:  enum.ExportTypeC,
		header:      NewHeader(reg),
		masterFiles: masterfiles.NewMasterFiles(reg),
	}
}

// ErrorRegister returns the register every element of the file reports to.
func (a *AuditFile) ErrorRegister() *saft.ErrorRegister { return a.reg }

// ExportType returns the export type.
func (a *AuditFile) ExportType() enum.ExportType { return a.exportType }

// SetExportType selects the containers written by CreateXMLNode.
func (a *AuditFile) SetExportType(v enum.ExportType) bool {
	if !v.Valid() {
		a.reg.AddOnSetValue(saft.NotValid("ExportType"))
		return false
	}
	a.exportType = v
	return true
}

// Header returns the header, nil when absent.
func (a *AuditFile) Header() *Header { return a.header }

// MasterFiles returns the master files or nil.
func (a *AuditFile) MasterFiles() *masterfiles.MasterFiles { return a.masterFiles }

// SourceDocuments returns the source documents, nil when absent.
func (a *AuditFile) SourceDocuments() *sourcedocuments.SourceDocuments { return a.sourceDocuments }

// NewSourceDocuments creates the SourceDocuments section, replacing any
// previous one.
func (a *AuditFile) NewSourceDocuments() *sourcedocuments.SourceDocuments {
	a.sourceDocuments = sourcedocuments.NewSourceDocuments(a.reg)
	return a.sourceDocuments
}

// =============================================================================
// XML TREE
// =============================================================================

// CreateXMLNode builds the whole tree in a new document.
func (a *AuditFile) CreateXMLNode() (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("AuditFile")
	root.CreateAttr("xmlns", saft.Namespace)

	if _, err := a.header.CreateXMLNode(root); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if _, err := a.masterFiles.CreateXMLNode(root); err != nil {
		return nil, fmt.Errorf("master files: %w", err)
	}
	if a.sourceDocuments != nil {
		if _, err := a.sourceDocuments.CreateXMLNode(root, a.exportType); err != nil {
			return nil, fmt.Errorf("source documents: %w", err)
		}
	}
	return doc, nil
}

// ParseXMLNode reads the AuditFile root element. A namespace other than
// the 1.04_01 one is a ValueError.
func (a *AuditFile) ParseXMLNode(root *etree.Element) error {
	if err := saft.CheckNode(root, "AuditFile"); err != nil {
		return err
	}
	if ns := root.SelectAttrValue("xmlns", saft.Namespace); ns != saft.Namespace {
		return &saft.ValueError{Element: "AuditFile/@xmlns", Value: ns}
	}

	header, err := saft.RequiredChild(root, "Header")
	if err != nil {
		return err
	}
	if err := a.header.ParseXMLNode(header); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	master, err := saft.RequiredChild(root, "MasterFiles")
	if err != nil {
		return err
	}
	if err := a.masterFiles.ParseXMLNode(master); err != nil {
		return fmt.Errorf("master files: %w", err)
	}

	if source := saft.Child(root, "SourceDocuments"); source != nil {
		if err := a.NewSourceDocuments().ParseXMLNode(source); err != nil {
			return fmt.Errorf("source documents: %w", err)
		}
	}
	return nil
}

// =============================================================================
// READ / WRITE
// =============================================================================

// ToXML serializes the file, indented by indent spaces. Zero means no
// indentation.
func (a *AuditFile) ToXML(indent int) ([]byte, error) {
	doc, err := a.CreateXMLNode()
	if err != nil {
		return nil, err
	}
	if indent > 0 {
		doc.Indent(indent)
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize audit file: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile serializes the file to path with two space indentation.
func (a *AuditFile) WriteFile(path string) error {
	data, err := a.ToXML(2)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write audit file %s: %w", path, err)
	}
	return nil
}

// Parse reads a whole file from r. A nil register gets a fresh one. Files
// declared in an encoding other than UTF-8, such as Windows-1252, are
// decoded first.
func Parse(r io.Reader, reg *saft.ErrorRegister) (*AuditFile, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", saft.ErrFileFormat, err)
	}
	a := New(reg)
	if err := a.ParseXMLNode(doc.Root()); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseFile reads the file at path.
func ParseFile(path string, reg *saft.ErrorRegister) (*AuditFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, reg)
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding '%s': %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
