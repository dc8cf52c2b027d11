// =============================================================================
// SAF-T (PT) - Structural Errors
// =============================================================================
//
// Two error channels exist in this library:
//   1. Value errors found while setting a field. These never abort; they are
//      collected in an ErrorRegister (see register.go).
//   2. Structural errors found while walking an XML tree (wrong node name,
//      missing mandatory element, unreadable number/date/code). These abort
//      the current CreateXMLNode/ParseXMLNode call and are returned as errors
//      that wrap ErrFileFormat.
//
// =============================================================================

package saft

import (
	"errors"
	"fmt"
)

// ErrFileFormat is the sentinel wrapped by every structural error.
var ErrFileFormat = errors.New("saft: file format error")

// NodeNameError is returned when a node passed to CreateXMLNode or
// ParseXMLNode does not have the expected tag.
type NodeNameError struct {
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *NodeNameError) Error() string {
	return fmt.Sprintf("%s: node name should be '%s' but is '%s'", ErrFileFormat, e.Expected, e.Actual)
}

// Unwrap returns ErrFileFormat.
func (e *NodeNameError) Unwrap() error {
	return ErrFileFormat
}

// MissingElementError is returned when a mandatory child element is absent.
type MissingElementError struct {
	Parent  string
	Element string
}

// Error implements the error interface.
func (e *MissingElementError) Error() string {
	return fmt.Sprintf("%s: element '%s' is missing in '%s'", ErrFileFormat, e.Element, e.Parent)
}

// Unwrap returns ErrFileFormat.
func (e *MissingElementError) Unwrap() error {
	return ErrFileFormat
}

// ValueError is returned when the text of an element cannot be read as the
// type the schema declares (decimal, integer, date, enumeration code).
type ValueError struct {
	Element string
	Value   string
	Cause   error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: value '%s' of '%s' is not valid (cause: %v)", ErrFileFormat, e.Value, e.Element, e.Cause)
	}
	return fmt.Sprintf("%s: value '%s' of '%s' is not valid", ErrFileFormat, e.Value, e.Element)
}

// Unwrap returns ErrFileFormat.
func (e *ValueError) Unwrap() error {
	return ErrFileFormat
}
