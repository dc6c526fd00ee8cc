package concept

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// Value is the value of an attribute. The zero Value has value type OBJECT and
// is not a valid attribute value.
type Value struct {
	valueType protocol.ValueType
	boolean   bool
	long      int64
	double    float64
	str       string
	dateTime  time.Time
}

func BooleanValue(v bool) Value {
	return Value{valueType: protocol.ValueTypeBoolean, boolean: v}
}

func LongValue(v int64) Value {
	return Value{valueType: protocol.ValueTypeLong, long: v}
}

func DoubleValue(v float64) Value {
	return Value{valueType: protocol.ValueTypeDouble, double: v}
}

func StringValue(v string) Value {
	return Value{valueType: protocol.ValueTypeString, str: v}
}

// DateTimeValue returns a datetime value. Datetimes travel with millisecond
// precision in UTC.
func DateTimeValue(v time.Time) Value {
	return Value{valueType: protocol.ValueTypeDateTime, dateTime: v.UTC().Truncate(time.Millisecond)}
}

func (v Value) ValueType() protocol.ValueType { return v.valueType }
func (v Value) Boolean() bool                 { return v.boolean }
func (v Value) Long() int64                   { return v.long }
func (v Value) Double() float64               { return v.double }
func (v Value) AsString() string              { return v.str }
func (v Value) DateTime() time.Time           { return v.dateTime }

// Interface returns the value as its natural Go type.
func (v Value) Interface() any {
	switch v.valueType {
	case protocol.ValueTypeBoolean:
		return v.boolean
	case protocol.ValueTypeLong:
		return v.long
	case protocol.ValueTypeDouble:
		return v.double
	case protocol.ValueTypeString:
		return v.str
	case protocol.ValueTypeDateTime:
		return v.dateTime
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.valueType {
	case protocol.ValueTypeBoolean:
		return strconv.FormatBool(v.boolean)
	case protocol.ValueTypeLong:
		return strconv.FormatInt(v.long, 10)
	case protocol.ValueTypeDouble:
		return strconv.FormatFloat(v.double, 'g', -1, 64)
	case protocol.ValueTypeString:
		return v.str
	case protocol.ValueTypeDateTime:
		return v.dateTime.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("<%s>", v.valueType)
	}
}

// validate rejects values the server cannot store. The zero Value and
// non-finite doubles are not attribute values.
func (v Value) validate() error {
	switch v.valueType {
	case protocol.ValueTypeBoolean, protocol.ValueTypeLong, protocol.ValueTypeString, protocol.ValueTypeDateTime:
		return nil
	case protocol.ValueTypeDouble:
		if math.IsNaN(v.double) || math.IsInf(v.double, 0) {
			return graknerrors.NonFiniteDouble.New(v.double)
		}
		return nil
	default:
		return graknerrors.InvalidValue.New(v.valueType)
	}
}

func (v Value) proto() (*protocol.AttributeValue, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}

	p := &protocol.AttributeValue{ValueType: v.valueType}
	switch v.valueType {
	case protocol.ValueTypeBoolean:
		p.Boolean = v.boolean
	case protocol.ValueTypeLong:
		p.Long = v.long
	case protocol.ValueTypeDouble:
		p.Double = v.double
	case protocol.ValueTypeString:
		p.String = v.str
	case protocol.ValueTypeDateTime:
		p.DateTime = v.dateTime.UnixMilli()
	default:
		return nil, graknerrors.MustBugf("validated value has unknown value type %v", v.valueType)
	}
	return p, nil
}

// valueOf decodes an attribute value, which must be of the value type
// expected by its attribute type.
func valueOf(p *protocol.AttributeValue, expected protocol.ValueType) (Value, error) {
	if p == nil {
		return Value{}, graknerrors.MissingResponse.New("value")
	}
	if p.ValueType != expected {
		return Value{}, graknerrors.BadValueType.New(p.ValueType)
	}

	switch p.ValueType {
	case protocol.ValueTypeBoolean:
		return BooleanValue(p.Boolean), nil
	case protocol.ValueTypeLong:
		return LongValue(p.Long), nil
	case protocol.ValueTypeDouble:
		v := DoubleValue(p.Double)
		if err := v.validate(); err != nil {
			return Value{}, err
		}
		return v, nil
	case protocol.ValueTypeString:
		return StringValue(p.String), nil
	case protocol.ValueTypeDateTime:
		return DateTimeValue(time.UnixMilli(p.DateTime)), nil
	default:
		return Value{}, graknerrors.BadValueType.New(p.ValueType)
	}
}
