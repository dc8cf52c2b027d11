// =============================================================================
// SAF-T (PT) - XML Node Helpers
// =============================================================================
//
// Every schema element builds and reads its own subtree with the helpers
// below. The tree itself is a github.com/beevik/etree document.
//
// WRITING:
//   AddText/AddDecimal/AddInt/AddDate/AddDateTime append one child with a
//   formatted value. Children are appended in call order, so callers must
//   call them in XSD sequence order.
//
// READING:
//   RequiredX returns a MissingElementError when the child is absent and a
//   ValueError when its text cannot be converted. OptionalX returns nil for
//   an absent child.
//
// =============================================================================

package saft

import (
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

const (
	// Namespace is the default namespace of a SAF-T (PT) 1.04_01 file.
	Namespace = "urn:OECD:StandardAuditFile-Tax:PT_1.04_01"

	// AuditFileVersion is the only version this library writes.
	AuditFileVersion = "1.04_01"

	// DateFormat is the layout of xs:date values.
	DateFormat = "2006-01-02"

	// DateTimeFormat is the layout of xs:dateTime values.
	DateTimeFormat = "2006-01-02T15:04:05"
)

// =============================================================================
// NODE NAME CHECK
// =============================================================================

// CheckNode returns a NodeNameError when node is not named tag.
func CheckNode(node *etree.Element, tag string) error {
	if node == nil {
		return &NodeNameError{Expected: tag}
	}
	if node.Tag != tag {
		return &NodeNameError{Expected: tag, Actual: node.Tag}
	}
	return nil
}

// CheckParent returns a NodeNameError when parent is not named one of tags.
func CheckParent(parent *etree.Element, tags ...string) error {
	expected := strings.Join(tags, "|")
	if parent == nil {
		return &NodeNameError{Expected: expected}
	}
	for _, tag := range tags {
		if parent.Tag == tag {
			return nil
		}
	}
	return &NodeNameError{Expected: expected, Actual: parent.Tag}
}

// =============================================================================
// WRITING
// =============================================================================

// AddText appends <tag>value</tag> to parent.
func AddText(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	if value != "" {
		el.SetText(value)
	}
	return el
}

// AddDecimal appends a decimal value.
func AddDecimal(parent *etree.Element, tag string, d decimal.Decimal) *etree.Element {
	return AddText(parent, tag, d.String())
}

// AddInt appends an integer value.
func AddInt(parent *etree.Element, tag string, v int) *etree.Element {
	return AddText(parent, tag, strconv.Itoa(v))
}

// AddDate appends an xs:date value.
func AddDate(parent *etree.Element, tag string, t time.Time) *etree.Element {
	return AddText(parent, tag, t.Format(DateFormat))
}

// AddDateTime appends an xs:dateTime value.
func AddDateTime(parent *etree.Element, tag string, t time.Time) *etree.Element {
	return AddText(parent, tag, t.Format(DateTimeFormat))
}

// AddEmpty appends an element without content. Used for mandatory elements
// that were never set.
func AddEmpty(parent *etree.Element, tag string) *etree.Element {
	return parent.CreateElement(tag)
}

// =============================================================================
// READING
// =============================================================================

// Child returns the first child named tag, or nil.
func Child(node *etree.Element, tag string) *etree.Element {
	return node.SelectElement(tag)
}

// Children returns every child named tag in document order.
func Children(node *etree.Element, tag string) []*etree.Element {
	return node.SelectElements(tag)
}

// RequiredChild returns the first child named tag.
func RequiredChild(node *etree.Element, tag string) (*etree.Element, error) {
	child := node.SelectElement(tag)
	if child == nil {
		return nil, &MissingElementError{Parent: node.Tag, Element: tag}
	}
	return child, nil
}

// RequiredText returns the text of the mandatory child tag.
func RequiredText(node *etree.Element, tag string) (string, error) {
	child, err := RequiredChild(node, tag)
	if err != nil {
		return "", err
	}
	return child.Text(), nil
}

// OptionalText returns the text of child tag, or nil when absent.
func OptionalText(node *etree.Element, tag string) *string {
	child := node.SelectElement(tag)
	if child == nil {
		return nil
	}
	s := child.Text()
	return &s
}

// RequiredDecimal reads the mandatory decimal child tag.
func RequiredDecimal(node *etree.Element, tag string) (decimal.Decimal, error) {
	s, err := RequiredText(node, tag)
	if err != nil {
		return decimal.Zero, err
	}
	return ParseDecimal(tag, s)
}

// OptionalDecimal reads the decimal child tag, nil when absent.
func OptionalDecimal(node *etree.Element, tag string) (*decimal.Decimal, error) {
	s := OptionalText(node, tag)
	if s == nil {
		return nil, nil
	}
	d, err := ParseDecimal(tag, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// RequiredInt reads the mandatory integer child tag.
func RequiredInt(node *etree.Element, tag string) (int, error) {
	s, err := RequiredText(node, tag)
	if err != nil {
		return 0, err
	}
	return ParseInt(tag, s)
}

// OptionalInt reads the integer child tag, nil when absent.
func OptionalInt(node *etree.Element, tag string) (*int, error) {
	s := OptionalText(node, tag)
	if s == nil {
		return nil, nil
	}
	v, err := ParseInt(tag, *s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// RequiredDate reads the mandatory xs:date child tag.
func RequiredDate(node *etree.Element, tag string) (time.Time, error) {
	s, err := RequiredText(node, tag)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(tag, DateFormat, s)
}

// OptionalDate reads the xs:date child tag, nil when absent.
func OptionalDate(node *etree.Element, tag string) (*time.Time, error) {
	s := OptionalText(node, tag)
	if s == nil {
		return nil, nil
	}
	t, err := ParseTime(tag, DateFormat, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RequiredDateTime reads the mandatory xs:dateTime child tag.
func RequiredDateTime(node *etree.Element, tag string) (time.Time, error) {
	s, err := RequiredText(node, tag)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(tag, DateTimeFormat, s)
}

// OptionalDateTime reads the xs:dateTime child tag, nil when absent.
func OptionalDateTime(node *etree.Element, tag string) (*time.Time, error) {
	s := OptionalText(node, tag)
	if s == nil {
		return nil, nil
	}
	t, err := ParseTime(tag, DateTimeFormat, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDecimal converts the text of element tag.
func ParseDecimal(tag, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValueError{Element: tag, Value: s, Cause: err}
	}
	return d, nil
}

// ParseInt converts the text of element tag.
func ParseInt(tag, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValueError{Element: tag, Value: s, Cause: err}
	}
	return v, nil
}

// ParseTime converts the text of element tag with layout.
func ParseTime(tag, layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValueError{Element: tag, Value: s, Cause: err}
	}
	return t, nil
}
