package machine

import (
	"strings"
	"testing"
)

// TestValueEqual_KindExactness tests that equality is type-and-value
// exact with no numeric coercion.
func TestValueEqual_KindExactness(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{name: "same int", a: IntValue(5), b: IntValue(5), want: true},
		{name: "different int", a: IntValue(5), b: IntValue(6), want: false},
		{name: "int vs float same magnitude", a: IntValue(5), b: FloatValue(5), want: false},
		{name: "same float", a: FloatValue(1.5), b: FloatValue(1.5), want: true},
		{name: "same string", a: StringValue("go"), b: StringValue("go"), want: true},
		{name: "string vs numeric string", a: StringValue("5"), b: IntValue(5), want: false},
		{name: "same bool", a: BoolValue(true), b: BoolValue(true), want: true},
		{name: "bool vs int", a: BoolValue(true), b: IntValue(1), want: false},
		{name: "null vs null", a: Null(), b: Null(), want: true},
		{name: "null vs string", a: Null(), b: StringValue(""), want: false},
		{name: "zero value is null", a: Value{}, b: Null(), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestValueCompare(t *testing.T) {
	tests := []struct {
		name    string
		a       Value
		b       Value
		want    int
		wantErr bool
	}{
		{name: "int less", a: IntValue(1), b: IntValue(2), want: -1},
		{name: "int greater", a: IntValue(3), b: IntValue(2), want: 1},
		{name: "int vs float promoted", a: IntValue(2), b: FloatValue(2.5), want: -1},
		{name: "float equal order", a: FloatValue(2), b: IntValue(2), want: 0},
		{name: "string lexicographic", a: StringValue("a"), b: StringValue("b"), want: -1},
		{name: "string equal", a: StringValue("x"), b: StringValue("x"), want: 0},
		{name: "null not ordered", a: Null(), b: IntValue(0), wantErr: true},
		{name: "bool not ordered", a: BoolValue(true), b: BoolValue(false), wantErr: true},
		{name: "string vs number not ordered", a: StringValue("1"), b: IntValue(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Compare(tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Compare(%v, %v) expected error, got %d", tt.a, tt.b, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compare(%v, %v) unexpected error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValueArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		op      func(Value, Value) (Value, error)
		a       Value
		b       Value
		want    Value
		wantErr string
	}{
		{name: "int add", op: Value.Add, a: IntValue(2), b: IntValue(3), want: IntValue(5)},
		{name: "mixed add promotes", op: Value.Add, a: IntValue(2), b: FloatValue(0.5), want: FloatValue(2.5)},
		{name: "string concat", op: Value.Add, a: StringValue("ab"), b: StringValue("cd"), want: StringValue("abcd")},
		{name: "int sub", op: Value.Sub, a: IntValue(2), b: IntValue(5), want: IntValue(-3)},
		{name: "int mul", op: Value.Mul, a: IntValue(4), b: IntValue(3), want: IntValue(12)},
		{name: "int div truncates", op: Value.Div, a: IntValue(7), b: IntValue(2), want: IntValue(3)},
		{name: "float div", op: Value.Div, a: FloatValue(1), b: FloatValue(4), want: FloatValue(0.25)},
		{name: "int div by zero", op: Value.Div, a: IntValue(1), b: IntValue(0), wantErr: "division by zero"},
		{name: "float div by zero", op: Value.Div, a: FloatValue(1), b: FloatValue(0), wantErr: "division by zero"},
		{name: "string sub is type error", op: Value.Sub, a: StringValue("a"), b: StringValue("b"), wantErr: "cannot apply"},
		{name: "bool add is type error", op: Value.Add, a: BoolValue(true), b: IntValue(1), wantErr: "cannot apply"},
		{name: "null add is type error", op: Value.Add, a: Null(), b: IntValue(1), wantErr: "cannot apply"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.a, tt.b)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, got)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v (%s), want %v (%s)", got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestValueNeg(t *testing.T) {
	v, err := IntValue(5).Neg()
	if err != nil || !v.Equal(IntValue(-5)) {
		t.Fatalf("Neg(5) = %v, %v", v, err)
	}
	v, err = FloatValue(2.5).Neg()
	if err != nil || !v.Equal(FloatValue(-2.5)) {
		t.Fatalf("Neg(2.5) = %v, %v", v, err)
	}
	if _, err = StringValue("x").Neg(); err == nil {
		t.Fatal("negating a string should fail")
	}
	if _, err = Null().Neg(); err == nil {
		t.Fatal("negating null should fail")
	}
}

func TestValueFromAny(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    Value
		wantErr bool
	}{
		{name: "nil", raw: nil, want: Null()},
		{name: "string", raw: "hi", want: StringValue("hi")},
		{name: "bool", raw: true, want: BoolValue(true)},
		{name: "int from yaml", raw: int(7), want: IntValue(7)},
		{name: "int64", raw: int64(7), want: IntValue(7)},
		{name: "float64", raw: float64(1.5), want: FloatValue(1.5)},
		{name: "slice rejected", raw: []any{1}, wantErr: true},
		{name: "map rejected", raw: map[string]any{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueFromAny(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{IntValue(5), "5"},
		{FloatValue(2.5), "2.5"},
		{StringValue("a\"b"), `"a\"b"`},
		{BoolValue(false), "false"},
		{Null(), "null"},
	}
	for _, tt := range tests {
		got, err := tt.v.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%v): %v", tt.v, err)
		}
		if string(got) != tt.want {
			t.Errorf("MarshalJSON(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}
