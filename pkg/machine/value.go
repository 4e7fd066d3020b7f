package machine

import (
	"fmt"
	"strconv"
)

// Kind identifies which member of the Value union is populated.
// Values have a strong type system with no automatic coercion on
// equality.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindNull   Kind = "null"
)

// Value is a closed tagged union over the types a state variable can
// hold. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// StringValue returns a string-kinded value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntValue returns an int-kinded value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// FloatValue returns a float-kinded value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// BoolValue returns a bool-kinded value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the populated member of the union.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if the value is null.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// AsString returns the string member. It is only meaningful when
// Kind() == KindString.
func (v Value) AsString() string { return v.str }

// AsInt returns the int member. It is only meaningful when
// Kind() == KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the float member. It is only meaningful when
// Kind() == KindFloat.
func (v Value) AsFloat() float64 { return v.f }

// AsBool returns the bool member. It is only meaningful when
// Kind() == KindBool.
func (v Value) AsBool() bool { return v.b }

// Equal reports type-and-value equality. Values of different kinds are
// never equal; IntValue(5) and FloatValue(5) are distinct.
func (v Value) Equal(o Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindNull:
		return true
	}
	return false
}

// Compare orders two values, returning -1, 0, or 1. Numeric kinds
// compare numerically (an int is promoted to float when compared
// against a float); strings compare lexicographically. Null, bool, and
// cross-kind string/number comparisons have no defined order and
// return an error.
func (v Value) Compare(o Value) (int, error) {
	if v.isNumeric() && o.isNumeric() {
		a, b := v.asFloatLossy(), o.asFloatLossy()
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if v.Kind() == KindString && o.Kind() == KindString {
		switch {
		case v.str < o.str:
			return -1, nil
		case v.str > o.str:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, fmt.Errorf("cannot order %s against %s", v.Kind(), o.Kind())
}

// Add returns v + o. Two ints produce an int; any float operand
// produces a float; two strings concatenate. Anything else is a type
// error.
func (v Value) Add(o Value) (Value, error) {
	if v.Kind() == KindString && o.Kind() == KindString {
		return StringValue(v.str + o.str), nil
	}
	return v.arith(o, "+")
}

// Sub returns v - o under the numeric promotion rules of Add.
func (v Value) Sub(o Value) (Value, error) {
	return v.arith(o, "-")
}

// Mul returns v * o under the numeric promotion rules of Add.
func (v Value) Mul(o Value) (Value, error) {
	return v.arith(o, "*")
}

// Div returns v / o. Integer division truncates. A zero divisor is an
// error for both int and float operands.
func (v Value) Div(o Value) (Value, error) {
	if o.isNumeric() && o.asFloatLossy() == 0 {
		return Null(), fmt.Errorf("division by zero")
	}
	return v.arith(o, "/")
}

// Neg returns the arithmetic negation of a numeric value.
func (v Value) Neg() (Value, error) {
	switch v.Kind() {
	case KindInt:
		return IntValue(-v.i), nil
	case KindFloat:
		return FloatValue(-v.f), nil
	}
	return Null(), fmt.Errorf("cannot negate %s", v.Kind())
}

func (v Value) arith(o Value, op string) (Value, error) {
	if !v.isNumeric() || !o.isNumeric() {
		return Null(), fmt.Errorf("cannot apply %q to %s and %s", op, v.Kind(), o.Kind())
	}
	if v.Kind() == KindInt && o.Kind() == KindInt {
		switch op {
		case "+":
			return IntValue(v.i + o.i), nil
		case "-":
			return IntValue(v.i - o.i), nil
		case "*":
			return IntValue(v.i * o.i), nil
		case "/":
			return IntValue(v.i / o.i), nil
		}
	}
	a, b := v.asFloatLossy(), o.asFloatLossy()
	switch op {
	case "+":
		return FloatValue(a + b), nil
	case "-":
		return FloatValue(a - b), nil
	case "*":
		return FloatValue(a * b), nil
	case "/":
		return FloatValue(a / b), nil
	}
	return Null(), fmt.Errorf("unknown operator %q", op)
}

func (v Value) isNumeric() bool {
	return v.Kind() == KindInt || v.Kind() == KindFloat
}

// asFloatLossy widens for ordering and mixed arithmetic only; equality
// never goes through here.
func (v Value) asFloatLossy() float64 {
	if v.Kind() == KindInt {
		return float64(v.i)
	}
	return v.f
}

// String renders the value for logs, exporters, and error messages.
func (v Value) String() string {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return "null"
}

// canonical renders the value with a kind tag so that fingerprints
// distinguish IntValue(5) from FloatValue(5) from StringValue("5").
func (v Value) canonical() string {
	switch v.Kind() {
	case KindString:
		return "s:" + strconv.Quote(v.str)
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	}
	return "n:null"
}

// Interface returns the value as a native Go type for JSON and YAML
// encoding: string, int64, float64, bool, or nil.
func (v Value) Interface() any {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	}
	return nil
}

// ValueFromAny converts a decoded YAML or JSON scalar into a Value.
// It accepts the types yaml.v3 and encoding/json produce for scalars.
func ValueFromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint64:
		return IntValue(int64(x)), nil
	case float64:
		return FloatValue(x), nil
	case float32:
		return FloatValue(float64(x)), nil
	}
	return Null(), fmt.Errorf("unsupported variable type %T", raw)
}

// MarshalJSON encodes the value as its native JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindString:
		return []byte(strconv.Quote(v.str)), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return []byte(strconv.FormatFloat(v.f, 'g', -1, 64)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	}
	return []byte("null"), nil
}

// MarshalYAML encodes the value as its native YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}
