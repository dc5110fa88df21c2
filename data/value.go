package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the type of a single cell.
type Kind int

const (
	Null Kind = iota
	Boolean
	Integer
	Decimal
	Temporal
	Text
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case Temporal:
		return "temporal"
	case Text:
		return "text"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Numeric reports whether values of kind k can be placed on a continuous
// scale.
func (k Kind) Numeric() bool {
	return k == Integer || k == Decimal || k == Temporal
}

// Discrete reports whether values of kind k form levels.
func (k Kind) Discrete() bool {
	return k == Text || k == Boolean
}

// ----------------------------------------------------------------------------
// Value

// A Value is one typed cell of a column. The zero Value is null.
type Value struct {
	kind Kind
	d    decimal.Decimal
	i    int64
	s    string
	b    bool
	t    time.Time
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// Dec wraps an exact decimal.
func Dec(d decimal.Decimal) Value { return Value{kind: Decimal, d: d} }

// Float converts f to an exact decimal value. NaN and infinite values have
// no decimal representation and yield null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: Decimal, d: decimal.NewFromFloat(f)}
}

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: Integer, i: i} }

// Str wraps a text value.
func Str(s string) Value { return Value{kind: Text, s: s} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: Boolean, b: b} }

// Time wraps a point in time.
func Time(t time.Time) Value { return Value{kind: Temporal, t: t} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == Null }

// Float returns the numeric value of v. Temporal values are returned as
// seconds since the Unix epoch. The second result is false for null,
// text and boolean values.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Decimal:
		return v.d.InexactFloat64(), true
	case Integer:
		return float64(v.i), true
	case Temporal:
		return float64(v.t.UnixNano()) / 1e9, true
	}
	return math.NaN(), false
}

// Decimal returns v as an exact decimal. Temporal values are converted to
// Unix seconds.
func (v Value) Decimal() (decimal.Decimal, bool) {
	switch v.kind {
	case Decimal:
		return v.d, true
	case Integer:
		return decimal.NewFromInt(v.i), true
	case Temporal:
		return decimal.New(v.t.UnixNano(), -9), true
	}
	return decimal.Zero, false
}

// Text returns the text of a text value.
func (v Value) Text() (string, bool) { return v.s, v.kind == Text }

// Bool returns the truth value of a boolean value.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Boolean }

// Time returns the instant of a temporal value.
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == Temporal }

// String formats v for use as a label. Null formats as "NA".
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "NA"
	case Boolean:
		return strconv.FormatBool(v.b)
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Decimal:
		return v.d.String()
	case Temporal:
		return v.t.Format(time.RFC3339)
	case Text:
		return v.s
	}
	return fmt.Sprintf("<%s>", v.kind)
}

// GoString is used by %#v.
func (v Value) GoString() string {
	if v.kind == Text {
		return strconv.Quote(v.s)
	}
	return v.kind.String() + "(" + v.String() + ")"
}

// ----------------------------------------------------------------------------
// Keys and ordering

// A Key is a comparable representation of a Value suitable as a map key.
// Integer and decimal values with the same exact numerical value share a
// key, e.g. 1, 1.0 and 1.00. No rounding is involved: 0.1+0.2 computed in
// floating point and 0.3 are different keys.
type Key struct {
	kind Kind
	repr string
}

// Key returns the grouping key of v.
func (v Value) Key() Key {
	switch v.kind {
	case Null:
		return Key{}
	case Boolean:
		return Key{Boolean, strconv.FormatBool(v.b)}
	case Integer:
		return Key{Decimal, strconv.FormatInt(v.i, 10)}
	case Decimal:
		return Key{Decimal, v.d.String()}
	case Temporal:
		return Key{Temporal, v.t.UTC().Format(time.RFC3339Nano)}
	}
	return Key{Text, v.s}
}

func (k Key) String() string {
	if k.kind == Null {
		return "NA"
	}
	return k.repr
}

// Equal reports whether v and w are the same value. Numeric values are
// compared exactly.
func (v Value) Equal(w Value) bool {
	return v.Key() == w.Key()
}

// rank orders kinds for Compare.
func rank(k Kind) int {
	switch k {
	case Null:
		return 0
	case Boolean:
		return 1
	case Integer, Decimal, Temporal:
		return 2
	}
	return 3
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal
// to or after w. Null sorts first, then booleans (false before true),
// numbers and finally text.
func Compare(v, w Value) int {
	rv, rw := rank(v.kind), rank(w.kind)
	if rv != rw {
		if rv < rw {
			return -1
		}
		return 1
	}
	switch rv {
	case 0:
		return 0
	case 1:
		switch {
		case v.b == w.b:
			return 0
		case !v.b:
			return -1
		}
		return 1
	case 2:
		dv, _ := v.Decimal()
		dw, _ := w.Decimal()
		return dv.Cmp(dw)
	}
	return strings.Compare(v.s, w.s)
}

// Parse converts the text s into the most specific kind: empty text and
// "NA" are null, then integer, decimal, boolean and RFC 3339 time or date
// are tried before falling back to text.
func Parse(s string) Value {
	t := strings.TrimSpace(s)
	if t == "" || t == "NA" {
		return Value{}
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return Int(i)
	}
	if d, err := decimal.NewFromString(t); err == nil {
		return Dec(d)
	}
	switch {
	case strings.EqualFold(t, "true"):
		return Bool(true)
	case strings.EqualFold(t, "false"):
		return Bool(false)
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if tm, err := time.Parse(layout, t); err == nil {
			return Time(tm)
		}
	}
	return Str(s)
}
