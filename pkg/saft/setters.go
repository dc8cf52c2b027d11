// =============================================================================
// SAF-T (PT) - Setter and Writer Helpers
// =============================================================================
//
// Element types keep their fields private and expose SetX/X pairs. The
// helpers in this file carry the shared policy so each setter is one line:
//
//   SETTERS:  validate, store (even when invalid), register on failure,
//             return the validation result.
//   WRITERS:  append the element when set; for mandatory fields that were
//             never set, append an empty element and register on the
//             create channel.
//
// =============================================================================

package saft

import (
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// =============================================================================
// SETTERS
// =============================================================================

// SetText validates value with rule and stores it in dst.
func SetText(reg *ErrorRegister, dst *Field[string], rule Text, tag, value string) bool {
	v, ok := rule.Check(value)
	dst.Set(v)
	if !ok {
		reg.AddOnSetValue(NotValid(tag))
	}
	return ok
}

// SetOptText is SetText for an optional element. A nil value clears dst.
func SetOptText(reg *ErrorRegister, dst **string, rule Text, tag string, value *string) bool {
	if value == nil {
		*dst = nil
		return true
	}
	v, ok := rule.Check(*value)
	*dst = &v
	if !ok {
		reg.AddOnSetValue(NotValid(tag))
	}
	return ok
}

// SetDecimal stores value in dst and checks it with valid when given.
func SetDecimal(reg *ErrorRegister, dst *Field[decimal.Decimal], tag string, value decimal.Decimal, valid func(decimal.Decimal) bool) bool {
	dst.Set(value)
	if valid != nil && !valid(value) {
		reg.AddOnSetValue(NotValid(tag))
		return false
	}
	return true
}

// SetOptDecimal is SetDecimal for an optional element. A nil value clears dst.
func SetOptDecimal(reg *ErrorRegister, dst **decimal.Decimal, tag string, value *decimal.Decimal, valid func(decimal.Decimal) bool) bool {
	if value == nil {
		*dst = nil
		return true
	}
	v := *value
	*dst = &v
	if valid != nil && !valid(v) {
		reg.AddOnSetValue(NotValid(tag))
		return false
	}
	return true
}

// SetInt stores value in dst and checks it lies within [min, max].
func SetInt(reg *ErrorRegister, dst *Field[int], tag string, value, min, max int) bool {
	dst.Set(value)
	if value < min || value > max {
		reg.AddOnSetValue(NotValid(tag))
		return false
	}
	return true
}

// SetCode stores an enumeration value, registering unknown codes.
func SetCode[T interface {
	~string
	Valid() bool
}](reg *ErrorRegister, dst *Field[T], tag string, value T) bool {
	dst.Set(value)
	if !value.Valid() {
		reg.AddOnSetValue(NotValid(tag))
		return false
	}
	return true
}

// SetOptCode is SetCode for an optional element. A nil value clears dst.
func SetOptCode[T interface {
	~string
	Valid() bool
}](reg *ErrorRegister, dst **T, tag string, value *T) bool {
	if value == nil {
		*dst = nil
		return true
	}
	v := *value
	*dst = &v
	if !v.Valid() {
		reg.AddOnSetValue(NotValid(tag))
		return false
	}
	return true
}

// =============================================================================
// WRITERS
// =============================================================================

// WriteText appends the mandatory text element tag.
func WriteText(reg *ErrorRegister, parent *etree.Element, tag string, f Field[string]) {
	if !f.IsSet() {
		AddEmpty(parent, tag)
		reg.AddOnCreateXMLNode(NotValid(tag))
		return
	}
	AddText(parent, tag, f.Get())
}

// WriteOptText appends the optional text element tag when v is not nil.
func WriteOptText(parent *etree.Element, tag string, v *string) {
	if v != nil {
		AddText(parent, tag, *v)
	}
}

// WriteDecimal appends the mandatory decimal element tag.
func WriteDecimal(reg *ErrorRegister, parent *etree.Element, tag string, f Field[decimal.Decimal]) {
	if !f.IsSet() {
		AddEmpty(parent, tag)
		reg.AddOnCreateXMLNode(NotValid(tag))
		return
	}
	AddDecimal(parent, tag, f.Get())
}

// WriteOptDecimal appends the optional decimal element tag when v is not nil.
func WriteOptDecimal(parent *etree.Element, tag string, v *decimal.Decimal) {
	if v != nil {
		AddDecimal(parent, tag, *v)
	}
}

// WriteInt appends the mandatory integer element tag.
func WriteInt(reg *ErrorRegister, parent *etree.Element, tag string, f Field[int]) {
	if !f.IsSet() {
		AddEmpty(parent, tag)
		reg.AddOnCreateXMLNode(NotValid(tag))
		return
	}
	AddInt(parent, tag, f.Get())
}

// WriteOptInt appends the optional integer element tag when v is not nil.
func WriteOptInt(parent *etree.Element, tag string, v *int) {
	if v != nil {
		AddInt(parent, tag, *v)
	}
}

// WriteDate appends the mandatory xs:date element tag.
func WriteDate(reg *ErrorRegister, parent *etree.Element, tag string, f Field[time.Time]) {
	if !f.IsSet() {
		AddEmpty(parent, tag)
		reg.AddOnCreateXMLNode(NotValid(tag))
		return
	}
	AddDate(parent, tag, f.Get())
}

// WriteOptDate appends the optional xs:date element tag when v is not nil.
func WriteOptDate(parent *etree.Element, tag string, v *time.Time) {
	if v != nil {
		AddDate(parent, tag, *v)
	}
}

// WriteDateTime appends the mandatory xs:dateTime element tag.
func WriteDateTime(reg *ErrorRegister, parent *etree.Element, tag string, f Field[time.Time]) {
	if !f.IsSet() {
		AddEmpty(parent, tag)
		reg.AddOnCreateXMLNode(NotValid(tag))
		return
	}
	AddDateTime(parent, tag, f.Get())
}

// WriteOptDateTime appends the optional xs:dateTime element tag when v is not nil.
func WriteOptDateTime(parent *etree.Element, tag string, v *time.Time) {
	if v != nil {
		AddDateTime(parent, tag, *v)
	}
}

// WriteCode appends the mandatory enumeration element tag.
func WriteCode[T ~string](reg *ErrorRegister, parent *etree.Element, tag string, f Field[T]) {
	if !f.IsSet() {
		AddEmpty(parent, tag)
		reg.AddOnCreateXMLNode(NotValid(tag))
		return
	}
	AddText(parent, tag, string(f.Get()))
}

// WriteOptCode appends the optional enumeration element tag when v is not nil.
func WriteOptCode[T ~string](parent *etree.Element, tag string, v *T) {
	if v != nil {
		AddText(parent, tag, string(*v))
	}
}

// =============================================================================
// ENUMERATION READERS
// =============================================================================

// RequiredCode reads the mandatory child tag and converts it with parse.
func RequiredCode[T any](node *etree.Element, tag string, parse func(string) (T, error)) (T, error) {
	s, err := RequiredText(node, tag)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := parse(s)
	if err != nil {
		return v, &ValueError{Element: tag, Value: s, Cause: err}
	}
	return v, nil
}

// OptionalCode reads the child tag when present and converts it with parse.
func OptionalCode[T any](node *etree.Element, tag string, parse func(string) (T, error)) (*T, error) {
	s := OptionalText(node, tag)
	if s == nil {
		return nil, nil
	}
	v, err := parse(*s)
	if err != nil {
		return nil, &ValueError{Element: tag, Value: *s, Cause: err}
	}
	return &v, nil
}
