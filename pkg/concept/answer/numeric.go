package answer

import (
	"math"
	"strconv"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

type numericKind int

const (
	numericNaN numericKind = iota
	numericLong
	numericDouble
)

// Numeric is the result of an aggregate: a long, a double, or NaN when the
// aggregate is undefined, such as the mean of no values.
type Numeric struct {
	kind   numericKind
	long   int64
	double float64
}

// NumericOf decodes an aggregate result.
func NumericOf(p *protocol.Numeric) (Numeric, error) {
	switch {
	case p == nil:
		return Numeric{}, graknerrors.MissingResponse.New("number")
	case p.LongValue != nil:
		return Numeric{kind: numericLong, long: *p.LongValue}, nil
	case p.DoubleValue != nil:
		return Numeric{kind: numericDouble, double: *p.DoubleValue}, nil
	case p.NaN:
		return Numeric{kind: numericNaN}, nil
	default:
		return Numeric{}, graknerrors.BadNumeric.New()
	}
}

func (n Numeric) IsLong() bool   { return n.kind == numericLong }
func (n Numeric) IsDouble() bool { return n.kind == numericDouble }
func (n Numeric) IsNaN() bool    { return n.kind == numericNaN }

// AsLong returns the long value; it is zero unless IsLong.
func (n Numeric) AsLong() int64 { return n.long }

// AsDouble returns the double value; it is zero unless IsDouble.
func (n Numeric) AsDouble() float64 { return n.double }

// Float64 returns the number as a float64, converting longs and returning NaN
// for NaN.
func (n Numeric) Float64() float64 {
	switch n.kind {
	case numericLong:
		return float64(n.long)
	case numericDouble:
		return n.double
	default:
		return math.NaN()
	}
}

func (n Numeric) String() string {
	switch n.kind {
	case numericLong:
		return strconv.FormatInt(n.long, 10)
	case numericDouble:
		return strconv.FormatFloat(n.double, 'g', -1, 64)
	default:
		return "NaN"
	}
}
