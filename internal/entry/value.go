package entry

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDecimal
	KindString
	KindTime
	KindDuration
	KindGUID
	KindOther
)

var kindNames = []string{"Null", "Bool", "Int", "Uint", "Float", "Decimal", "String", "Time", "Duration", "GUID", "Other"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<unknown entry.Kind>"
}

// Value is a parameter value with its kind decided at the boundary, so
// renderers switch over a closed set of kinds instead of inspecting
// arbitrary Go types. The zero Value is Null.
type Value struct {
	kind Kind
	num  uint64
	str  string
	any  any
}

func NullValue() Value { return Value{} }

func BoolValue(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

func IntValue(i int64) Value { return Value{kind: KindInt, num: uint64(i)} }

func UintValue(u uint64) Value { return Value{kind: KindUint, num: u} }

func FloatValue(f float64) Value { return Value{kind: KindFloat, num: math.Float64bits(f)} }

func DecimalValue(d decimal.Decimal) Value { return Value{kind: KindDecimal, any: d} }

func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func TimeValue(t time.Time) Value { return Value{kind: KindTime, any: t} }

func DurationValue(d time.Duration) Value { return Value{kind: KindDuration, num: uint64(d)} }

func GUIDValue(id uuid.UUID) Value { return Value{kind: KindGUID, any: id} }

// OtherValue holds a value of no known kind. It renders with its default
// textual form.
func OtherValue(v any) Value { return Value{kind: KindOther, any: v} }

// AnyValue converts a Go value into a Value. This is the only place that
// inspects dynamic types.
func AnyValue(v any) Value {
	switch v := v.(type) {
	case nil:
		return NullValue()
	case Value:
		return v
	case bool:
		return BoolValue(v)
	case string:
		return StringValue(v)
	case []byte:
		return StringValue(string(v))
	case int:
		return IntValue(int64(v))
	case int8:
		return IntValue(int64(v))
	case int16:
		return IntValue(int64(v))
	case int32:
		return IntValue(int64(v))
	case int64:
		return IntValue(v)
	case uint:
		return UintValue(uint64(v))
	case uint8:
		return UintValue(uint64(v))
	case uint16:
		return UintValue(uint64(v))
	case uint32:
		return UintValue(uint64(v))
	case uint64:
		return UintValue(v)
	case uintptr:
		return UintValue(uint64(v))
	case float32:
		return FloatValue(float64(v))
	case float64:
		return FloatValue(v)
	case decimal.Decimal:
		return DecimalValue(v)
	case *decimal.Decimal:
		if v == nil {
			return NullValue()
		}
		return DecimalValue(*v)
	case decimal.NullDecimal:
		if !v.Valid {
			return NullValue()
		}
		return DecimalValue(v.Decimal)
	case time.Time:
		return TimeValue(v)
	case *time.Time:
		if v == nil {
			return NullValue()
		}
		return TimeValue(*v)
	case time.Duration:
		return DurationValue(v)
	case uuid.UUID:
		return GUIDValue(v)
	case uuid.NullUUID:
		if !v.Valid {
			return NullValue()
		}
		return GUIDValue(v.UUID)
	default:
		return OtherValue(v)
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) Bool() bool {
	v.must(KindBool)
	return v.num == 1
}

func (v Value) Int64() int64 {
	v.must(KindInt)
	return int64(v.num)
}

func (v Value) Uint64() uint64 {
	v.must(KindUint)
	return v.num
}

func (v Value) Float64() float64 {
	v.must(KindFloat)
	return math.Float64frombits(v.num)
}

func (v Value) Decimal() decimal.Decimal {
	v.must(KindDecimal)
	return v.any.(decimal.Decimal)
}

// Str returns the string held by a String value. Use String for the textual
// form of any kind.
func (v Value) Str() string {
	v.must(KindString)
	return v.str
}

func (v Value) Time() time.Time {
	v.must(KindTime)
	return v.any.(time.Time)
}

func (v Value) Duration() time.Duration {
	v.must(KindDuration)
	return time.Duration(v.num)
}

func (v Value) GUID() uuid.UUID {
	v.must(KindGUID)
	return v.any.(uuid.UUID)
}

// Any returns v as a Go value of its natural type.
func (v Value) Any() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.Int64()
	case KindUint:
		return v.num
	case KindFloat:
		return v.Float64()
	case KindString:
		return v.str
	case KindDuration:
		return v.Duration()
	default:
		return v.any
	}
}

// String returns the plain textual form of v, without quoting.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindInt:
		return strconv.FormatInt(v.Int64(), 10)
	case KindUint:
		return strconv.FormatUint(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case KindDecimal:
		return v.Decimal().String()
	case KindString:
		return v.str
	case KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case KindDuration:
		return v.Duration().String()
	case KindGUID:
		return v.GUID().String()
	case KindOther:
		return textOf(v.any)
	}
	return ""
}

// textOf is the default textual form of an arbitrary value. Values with no
// textual form (nil interfaces, nil pointers, maps, slices, funcs) yield "".
func textOf(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return ""
		}
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v)
}

func (v Value) must(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("entry: Value kind is %s, not %s", v.kind, k))
	}
}
