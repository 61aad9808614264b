package ir

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{NullType, "Null"},
		{FalseType, "False"},
		{TrueType, "True"},
		{NumberType, "Number"},
		{StringType, "String"},
		{ListType, "List"},
		{ObjectType, "Object"},
		{Type(999), "Unknown"},
		{Type(-1), "Unknown"},
	}
	for _, tt := range tests {
		if got := TypeString(tt.t); got != tt.want {
			t.Errorf("TypeString(%d) = %q, want %q", int(tt.t), got, tt.want)
		}
		if got := tt.t.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.t), got, tt.want)
		}
	}
}

func TestTypeText(t *testing.T) {
	for _, typ := range Types() {
		d, err := typ.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != typ {
			t.Errorf("got %s want %s", back, typ)
		}
	}
	if _, err := Type(42).MarshalText(); err == nil {
		t.Error("expected error for unknown type")
	}
	var typ Type
	if err := typ.UnmarshalText([]byte("Bool")); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestNumTypeString(t *testing.T) {
	if got := UnsignedInteger.String(); got != "Unsigned_integer" {
		t.Error(got)
	}
	if got := SignedInteger.String(); got != "Signed_integer" {
		t.Error(got)
	}
	if got := FloatingPoint.String(); got != "Floating_point" {
		t.Error(got)
	}
	if got := NumType(7).String(); got != "Unknown" {
		t.Error(got)
	}
}
