// =============================================================================
// SAF-T (PT) Toolkit - XML Writer Module
// =============================================================================
//
// This module serializes an audit file. The tree itself is built by the data
// binding (AuditFile.CreateXMLNode); the writer only controls how the tree is
// laid out and encoded.
//
// OUTPUT:
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <AuditFile xmlns="urn:OECD:StandardAuditFile-Tax:PT_1.04_01">
//     <Header>
//       <AuditFileVersion>1.04_01</AuditFileVersion>
//       ...
//     </Header>
//     <MasterFiles>...</MasterFiles>
//     <SourceDocuments>...</SourceDocuments>
//   </AuditFile>
//
// ENCODING:
//   Files go out as UTF-8 unless another encoding is named. Windows-1252 is
//   still common among invoicing programs and is accepted by the tax
//   authority.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ginjaninja78/saft-pt/pkg/saft/auditfile"
)

// =============================================================================
// XML WRITE OPTIONS
// =============================================================================

// WriteOptions contains options for XML serialization.
type WriteOptions struct {
	// Indent is the number of spaces per nesting level. Zero writes the
	// whole file on one line.
	// Default: 2
	Indent int

	// UseTabs indents with one tab per level instead of spaces.
	// Default: false
	UseTabs bool

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// Encoding is the encoding of the output and of the XML declaration.
	// Any WHATWG encoding label is accepted, e.g. "UTF-8", "Windows-1252".
	// Default: "UTF-8"
	Encoding string

	// RootAttributes are additional attributes for the AuditFile element.
	// Example: {"xmlns:xsi": "http://www.w3.org/2001/XMLSchema-instance"}
	RootAttributes map[string]string

	// CanonicalEndTags writes empty elements as <Tag></Tag> instead of <Tag/>.
	// Default: false
	CanonicalEndTags bool
}

// DefaultWriteOptions returns the default write options.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Indent:                2,
		IncludeXMLDeclaration: true,
		Encoding:              "UTF-8",
		RootAttributes:        make(map[string]string),
	}
}

// =============================================================================
// XML WRITE FUNCTIONS
// =============================================================================

// Write serializes file with the default options.
func Write(file *auditfile.AuditFile) ([]byte, error) {
	return WriteWithOptions(file, DefaultWriteOptions())
}

// WriteWithOptions serializes file with custom options.
//
// PARAMETERS:
//   - file: The audit file to serialize.
//   - options: The layout and encoding options.
//
// RETURNS:
//   - The serialized file, in the requested encoding.
//   - An error if the tree cannot be built or a character cannot be
//     represented in the encoding.
func WriteWithOptions(file *auditfile.AuditFile, options WriteOptions) ([]byte, error) {
	doc, err := file.CreateXMLNode()
	if err != nil {
		return nil, fmt.Errorf("failed to build XML tree: %w", err)
	}

	encoding := options.Encoding
	if encoding == "" {
		encoding = "UTF-8"
	}
	setDeclaration(doc, options.IncludeXMLDeclaration, encoding)

	// Attributes are added in key order so the output does not depend on
	// map order.
	if root := doc.Root(); root != nil && len(options.RootAttributes) > 0 {
		keys := make([]string, 0, len(options.RootAttributes))
		for k := range options.RootAttributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			root.CreateAttr(k, options.RootAttributes[k])
		}
	}

	switch {
	case options.UseTabs:
		doc.IndentTabs()
	case options.Indent > 0:
		doc.Indent(options.Indent)
	}
	doc.WriteSettings.CanonicalEndTags = options.CanonicalEndTags

	var buffer bytes.Buffer
	if _, err := doc.WriteTo(&buffer); err != nil {
		return nil, fmt.Errorf("failed to serialize XML: %w", err)
	}

	if strings.EqualFold(encoding, "UTF-8") {
		return buffer.Bytes(), nil
	}
	return encode(buffer.Bytes(), encoding)
}

// WriteFile serializes file to path.
func WriteFile(file *auditfile.AuditFile, path string, options WriteOptions) error {
	data, err := WriteWithOptions(file, options)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// setDeclaration rewrites or removes the xml processing instruction.
func setDeclaration(doc *etree.Document, include bool, encoding string) {
	for _, token := range doc.Child {
		p, ok := token.(*etree.ProcInst)
		if !ok || p.Target != "xml" {
			continue
		}
		if include {
			p.Inst = fmt.Sprintf(`version="1.0" encoding="%s"`, encoding)
		} else {
			doc.RemoveChild(p)
		}
		return
	}
}

// encode converts UTF-8 data to the named encoding.
func encode(data []byte, label string) ([]byte, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding '%s': %w", label, err)
	}
	out, err := enc.NewEncoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output as %s: %w", label, err)
	}
	return out, nil
}
