package ir

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want int
	}{
		{"Null < False", Null(), FromBool(false), -1},
		{"False < True", FromBool(false), FromBool(true), -1},
		{"True < Number", FromBool(true), FromInt(0), -1},
		{"Number < String", FromInt(9), FromString(""), -1},
		{"String < List", FromString("z"), FromSlice(nil), -1},
		{"List < Object", FromSlice(nil), FromMap(nil), -1},
		{"signed < unsigned", FromInt(-1), FromInt(0), -1},
		{"unsigned order", FromUint(3), FromUint(2), 1},
		{"big unsigned > signed", FromUint(1 << 63), FromInt(-5), 1},
		{"float vs int equal", FromFloat(2), FromInt(2), 0},
		{"float vs int", FromFloat(1.5), FromInt(2), -1},
		{"strings", FromString("a"), FromString("b"), -1},
		{"list prefix", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"list elements", FromSlice([]*Node{FromInt(2)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), 1},
		{
			"object keys",
			FromKeyVals([]KeyVal{{"a", FromInt(1)}}),
			FromKeyVals([]KeyVal{{"b", FromInt(1)}}),
			-1,
		},
		{
			"object equal",
			FromKeyVals([]KeyVal{{"a", FromInt(1)}, {"a", FromInt(2)}}),
			FromKeyVals([]KeyVal{{"a", FromInt(1)}, {"a", FromInt(2)}}),
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("reverse Compare = %d, want %d", got, -tt.want)
			}
		})
	}
}
