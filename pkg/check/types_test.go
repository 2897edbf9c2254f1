package check

import (
	"fmt"
	"testing"
)

func TestStringType(t *testing.T) {
	typ := String()

	if typ.Name() != "string" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "string")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"hello", false},
		{"", false},
		{42, true},
		{3.14, true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntType(t *testing.T) {
	typ := Int()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int8(42), false},
		{int64(42), false},
		{uint32(42), false},
		{float64(42), false},  // whole number
		{float64(42.5), true}, // not whole
		{"42", true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestNumberType(t *testing.T) {
	typ := Number()

	if typ.Name() != "number" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "number")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{3.14, false},
		{float32(1.5), false},
		{uint8(9), false},
		{"42", true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestFloatType(t *testing.T) {
	typ := Float()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{3.14, false},
		{float32(3.14), false},
		{42, true},
		{"3.14", true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestBoolType(t *testing.T) {
	typ := Bool()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{true, false},
		{false, false},
		{1, true},
		{"true", true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestMapType(t *testing.T) {
	typ := Map()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{map[string]any{"a": 1}, false},
		{map[string]int{}, false},
		{map[int]string{1: "a"}, false},
		{[]int{1}, true},
		{"map", true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestAnyType(t *testing.T) {
	typ := Any()

	for _, value := range []any{nil, 1, "x", true, map[string]any{}, []int{1}} {
		if err := typ.Validate(value); err != nil {
			t.Errorf("Validate(%v) error = %v, want nil", value, err)
		}
	}
}

func TestSliceType(t *testing.T) {
	stringSlice := Slice(String())
	numberSlice := Slice(Number())

	tests := []struct {
		typ     Type
		value   any
		wantErr bool
		desc    string
	}{
		{stringSlice, []string{"a", "b"}, false, "string slice"},
		{stringSlice, []string{}, false, "empty string slice"},
		{stringSlice, []interface{}{"a", "b"}, false, "any slice with strings"},
		{stringSlice, []int{1, 2}, true, "ints where strings expected"},
		{stringSlice, "not a slice", true, "string instead of slice"},
		{numberSlice, []interface{}{1, 2.5}, false, "mixed numeric slice"},
		{numberSlice, []interface{}{1, "2"}, true, "mixed slice"},
	}

	for _, tt := range tests {
		err := tt.typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate(%v) error = %v, wantErr %v", tt.desc, tt.value, err, tt.wantErr)
		}
	}
}

func TestCustomType(t *testing.T) {
	evenNumber := Custom("even", func(v any) error {
		i, ok := v.(int)
		if !ok {
			return fmt.Errorf("not an int")
		}
		if i%2 != 0 {
			return fmt.Errorf("not even")
		}
		return nil
	})

	if evenNumber.Name() != "even" {
		t.Errorf("Name() = %q, want %q", evenNumber.Name(), "even")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{2, false},
		{4, false},
		{1, true},
		{"2", true},
	}

	for _, tt := range tests {
		err := evenNumber.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		wantErr  bool
		wantName string
	}{
		{"string", false, "string"},
		{"int", false, "int"},
		{"float", false, "float"},
		{"number", false, "number"},
		{"bool", false, "bool"},
		{"map", false, "map"},
		{"any", false, "any"},
		{"[string]", false, "[string]"},
		{"[number]", false, "[number]"},
		{"[[string]]", false, "[[string]]"},
		{"invalid", true, ""},
		{"[invalid]", true, ""},
	}

	for _, tt := range tests {
		typ, err := ParseType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && typ.Name() != tt.wantName {
			t.Errorf("ParseType(%q) Name() = %q, want %q", tt.input, typ.Name(), tt.wantName)
		}
	}
}
