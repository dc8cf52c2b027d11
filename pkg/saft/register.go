// =============================================================================
// SAF-T (PT) - Error Register
// =============================================================================
//
// The ErrorRegister collects the non-fatal problems found while an audit file
// is populated, serialized or validated. One register is created per build or
// parse pass and handed to every element constructor, so all elements of the
// same file report into the same place.
//
// CODES:
//   Codes are fixed strings, most of them "<Tag>_not_valid" (see NotValid).
//   The same code may be registered many times; order is preserved.
//
// =============================================================================

package saft

import (
	"go.uber.org/zap"
)

// ErrorRegister collects error codes per channel. It is not safe for
// concurrent use; create one per file.
type ErrorRegister struct {
	onSetValue      []string
	onCreateXMLNode []string
	validation      []string
	log             *zap.Logger
}

// NewErrorRegister creates an empty register.
func NewErrorRegister() *ErrorRegister {
	return &ErrorRegister{log: zap.NewNop()}
}

// WithLogger makes the register log every code at debug level.
func (r *ErrorRegister) WithLogger(log *zap.Logger) *ErrorRegister {
	if log == nil {
		log = zap.NewNop()
	}
	r.log = log
	return r
}

// AddOnSetValue records a failure found by a setter.
func (r *ErrorRegister) AddOnSetValue(code string) {
	r.onSetValue = append(r.onSetValue, code)
	r.log.Debug("value not valid", zap.String("code", code))
}

// AddOnCreateXMLNode records a failure found while building the XML tree.
func (r *ErrorRegister) AddOnCreateXMLNode(code string) {
	r.onCreateXMLNode = append(r.onCreateXMLNode, code)
	r.log.Debug("node not valid", zap.String("code", code))
}

// AddValidationError records a failure found by the cross document validation.
func (r *ErrorRegister) AddValidationError(code string) {
	r.validation = append(r.validation, code)
	r.log.Debug("validation failed", zap.String("code", code))
}

// OnSetValue returns the codes registered by setters.
func (r *ErrorRegister) OnSetValue() []string {
	return r.onSetValue
}

// OnCreateXMLNode returns the codes registered while building XML.
func (r *ErrorRegister) OnCreateXMLNode() []string {
	return r.onCreateXMLNode
}

// Validation returns the codes registered by validation.
func (r *ErrorRegister) Validation() []string {
	return r.validation
}

// HasErrors reports whether any channel holds a code.
func (r *ErrorRegister) HasErrors() bool {
	return len(r.onSetValue) > 0 || len(r.onCreateXMLNode) > 0 || len(r.validation) > 0
}

// Contains reports whether code was registered on any channel.
func (r *ErrorRegister) Contains(code string) bool {
	for _, list := range [][]string{r.onSetValue, r.onCreateXMLNode, r.validation} {
		for _, c := range list {
			if c == code {
				return true
			}
		}
	}
	return false
}

// Reset drops every registered code.
func (r *ErrorRegister) Reset() {
	r.onSetValue = nil
	r.onCreateXMLNode = nil
	r.validation = nil
}

// NotValid returns the code used for an invalid value of the element tag.
func NotValid(tag string) string {
	return tag + "_not_valid"
}
