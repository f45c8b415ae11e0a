package equalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind enumerates the value types a tunable parameter can carry.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
)

// Value is a tagged union over the types a tunable parameter can hold:
// absent, boolean, integer or floating-point.
type Value struct {
	kind Kind
	b    bool
	i    int
	f    float64
}

// None returns the absent value.
func None() Value { return Value{kind: KindNone} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Kind reports the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether the value is absent.
func (v Value) IsNone() bool { return v.kind == KindNone }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. Valid only for KindInt.
func (v Value) Int() int { return v.i }

// Float returns the numeric payload as float64. Integers are converted,
// booleans map to 1 and 0.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	default:
		return v.f
	}
}

// IsNumeric reports whether the value is an integer or a float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	default:
		return true
	}
}

// String renders the value in the match-file grammar:
// None, True, False, a bare integer, or a float with a decimal point.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.Itoa(v.i)
	default:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
}

var intText = regexp.MustCompile(`^[0-9]+$`)
var floatText = regexp.MustCompile(`^[0-9.]+$`)

// parseValue decodes one field of an encoded parameter.
func parseValue(s string) (Value, error) {
	switch {
	case s == "None":
		return None(), nil
	case s == "True":
		return Bool(true), nil
	case s == "False":
		return Bool(false), nil
	case intText.MatchString(s):
		i, err := strconv.Atoi(s)
		if err != nil {
			return None(), fmt.Errorf("%w: %q", ErrMalformedParameter, s)
		}
		return Int(i), nil
	case floatText.MatchString(s):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return None(), fmt.Errorf("%w: %q", ErrMalformedParameter, s)
		}
		return Float(f), nil
	default:
		return None(), fmt.Errorf("%w: %q", ErrMalformedParameter, s)
	}
}

// Parameter is a single tunable value with optional bounds, a calibration
// step (Delta), an acceptable deviation before re-calibration (Tolerance)
// and a lock flag. Bounds, Delta and Tolerance are immutable after
// construction; Value and Fixed are mutated by calibration and sync.
type Parameter struct {
	Value     Value
	Min       Value
	Max       Value
	Delta     Value
	Tolerance Value
	Fixed     bool
}

// NewParameter builds a parameter and enforces its construction invariants.
// Boolean values force delta 0 and tolerance 1, integer values force
// delta 1 and tolerance 0.9; floats keep the supplied step and tolerance.
// A value outside [min, max] is rejected.
func NewParameter(value, min, max Value, delta, tolerance float64) (*Parameter, error) {
	p := &Parameter{
		Value:     value,
		Min:       min,
		Max:       max,
		Delta:     Float(delta),
		Tolerance: Float(tolerance),
		Fixed:     true,
	}

	// booleans are not continuously calibrated; integers step by one
	switch value.Kind() {
	case KindBool:
		p.Delta = Float(0.0)
		p.Tolerance = Float(1.0)
	case KindInt:
		p.Delta = Int(1)
		p.Tolerance = Float(0.9)
	}

	if !min.IsNone() {
		if value.IsNone() {
			return nil, fmt.Errorf("parameter with lower bound %s has no value", min)
		}
		if value.Float() < min.Float() {
			return nil, fmt.Errorf("parameter value %s below minimum %s", value, min)
		}
	}
	if !max.IsNone() {
		if value.IsNone() {
			return nil, fmt.Errorf("parameter with upper bound %s has no value", max)
		}
		if value.Float() > max.Float() {
			return nil, fmt.Errorf("parameter value %s above maximum %s", value, max)
		}
	}
	return p, nil
}

// mustNew is NewParameter for the static default tables, where the
// arguments are known valid.
func mustNew(value, min, max Value, delta, tolerance float64) *Parameter {
	p, err := NewParameter(value, min, max, delta, tolerance)
	if err != nil {
		panic(err)
	}
	return p
}

// Encode renders the canonical textual form of the parameter, e.g.
// <value='0.9' min='0.0' max='1.0' delta='0.1' tolerance='0.1' fixed='True'>.
func (p *Parameter) Encode() string {
	return fmt.Sprintf("<value='%s' min='%s' max='%s' delta='%s' tolerance='%s' fixed='%s'>",
		p.Value, p.Min, p.Max, p.Delta, p.Tolerance, Bool(p.Fixed))
}

// String implements fmt.Stringer with the encoded form.
func (p *Parameter) String() string { return p.Encode() }

// Equal reports whether two parameters match on value, bounds, delta,
// tolerance and lock flag.
func (p *Parameter) Equal(o *Parameter) bool {
	return p.Value.Equal(o.Value) &&
		p.Min.Equal(o.Min) && p.Max.Equal(o.Max) &&
		p.Delta.Equal(o.Delta) && p.Tolerance.Equal(o.Tolerance) &&
		p.Fixed == o.Fixed
}

var encodedParam = regexp.MustCompile(
	`^<value='(.+)' min='([\d.None]+)' max='([\d.None]+)'` +
		` delta='([\d.]+)' tolerance='([\d.]+)' fixed='(\w+)'>$`)

// Decode parses the textual form produced by Encode and reconstructs the
// parameter through NewParameter, so constructor-time forcing is re-derived
// rather than echoed from the stored text.
func Decode(raw string) (*Parameter, error) {
	m := encodedParam.FindStringSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedParameter, raw)
	}

	fields := make([]Value, 5)
	for i, s := range m[1:6] {
		v, err := parseValue(s)
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	fixed, err := parseValue(m[6])
	if err != nil {
		return nil, err
	}
	if fixed.Kind() != KindBool {
		return nil, fmt.Errorf("%w: fixed flag %q", ErrMalformedParameter, m[6])
	}

	p, err := NewParameter(fields[0], fields[1], fields[2], fields[3].Float(), fields[4].Float())
	if err != nil {
		return nil, err
	}
	p.Fixed = fixed.Bool()
	return p, nil
}
