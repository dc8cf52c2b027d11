// =============================================================================
// SAF-T (PT) - Enumerations
// =============================================================================
//
// Every xs:enumeration of the schema is a string based Go type with:
//   - one constant per code (except the ISO lists, see currency.go and
//     country.go, which only name the codes used in code)
//   - NewX(string) that rejects codes outside the closed set
//   - Valid() for values built by conversion
//
// =============================================================================

package enum

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidCode is wrapped by every InvalidCodeError.
var ErrInvalidCode = errors.New("enum: invalid code")

// InvalidCodeError is returned by the NewX constructors.
type InvalidCodeError struct {
	Enum string
	Code string
}

// Error implements the error interface.
func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("%s: '%s' is not a valid %s", ErrInvalidCode, e.Code, e.Enum)
}

// Unwrap returns ErrInvalidCode.
func (e *InvalidCodeError) Unwrap() error {
	return ErrInvalidCode
}

// codeSet is the closed set of codes of one enumeration.
type codeSet[T ~string] struct {
	name  string
	codes map[T]struct{}
}

func newCodeSet[T ~string](name string, values ...T) codeSet[T] {
	set := codeSet[T]{name: name, codes: make(map[T]struct{}, len(values))}
	for _, v := range values {
		set.codes[v] = struct{}{}
	}
	return set
}

func (s codeSet[T]) has(v T) bool {
	_, ok := s.codes[v]
	return ok
}

func (s codeSet[T]) parse(code string) (T, error) {
	v := T(code)
	if !s.has(v) {
		return v, &InvalidCodeError{Enum: s.name, Code: code}
	}
	return v, nil
}

func (s codeSet[T]) values() []T {
	out := make([]T, 0, len(s.codes))
	for v := range s.codes {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
