package data

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// tenth is a variable so that tenth+2*tenth is computed in float64
// arithmetic and not folded to 0.3 at compile time.
var tenth = 0.1

var keyTests = []struct {
	a, b Value
	same bool
}{
	{Int(1), Float(1), true},
	{Dec(decimal.RequireFromString("1.00")), Int(1), true},
	{Float(tenth + 2*tenth), Float(0.3), false},
	{Float(0.775), Dec(decimal.RequireFromString("0.775")), true},
	{Str("1"), Int(1), false},
	{Bool(true), Str("true"), false},
	{NullValue(), Float(math.NaN()), true},
	{Time(time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)),
		Time(time.Date(2020, 1, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600))), true},
}

func TestKey(t *testing.T) {
	for i, tc := range keyTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := tc.a.Key() == tc.b.Key(); got != tc.same {
				t.Errorf("%#v.Key() == %#v.Key() is %t, want %t", tc.a, tc.b, got, tc.same)
			}
		})
	}
}

var compareTests = []struct {
	a, b Value
	want int
}{
	{NullValue(), Bool(false), -1},
	{Bool(false), Bool(true), -1},
	{Bool(true), Int(0), -1},
	{Int(2), Float(1.5), 1},
	{Float(2), Int(2), 0},
	{Int(100), Str("a"), -1},
	{Str("b"), Str("a"), 1},
}

func TestCompare(t *testing.T) {
	for i, tc := range compareTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := Compare(tc.a, tc.b); got != tc.want {
				t.Errorf("Compare(%#v, %#v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

var parseTests = []struct {
	in   string
	kind Kind
	str  string
}{
	{"", Null, "NA"},
	{"NA", Null, "NA"},
	{"42", Integer, "42"},
	{"-3.25", Decimal, "-3.25"},
	{"TRUE", Boolean, "true"},
	{"2021-03-04", Temporal, "2021-03-04T00:00:00Z"},
	{"setosa", Text, "setosa"},
	{"t", Text, "t"},
}

func TestParse(t *testing.T) {
	for i, tc := range parseTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got := Parse(tc.in)
			if got.Kind() != tc.kind || got.String() != tc.str {
				t.Errorf("Parse(%q) = %s %q, want %s %q",
					tc.in, got.Kind(), got.String(), tc.kind, tc.str)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	if f, ok := Int(3).Float(); !ok || f != 3 {
		t.Errorf("Int(3).Float() = %g, %t", f, ok)
	}
	if _, ok := Str("3").Float(); ok {
		t.Errorf("text must not be numeric")
	}
	if _, ok := Bool(true).Float(); ok {
		t.Errorf("boolean must not be numeric")
	}
	tm := time.Unix(1500, 0)
	if f, ok := Time(tm).Float(); !ok || f != 1500 {
		t.Errorf("Time.Float() = %g, %t", f, ok)
	}
	if !Float(math.Inf(1)).IsNull() {
		t.Errorf("Float(+Inf) must be null")
	}
}
