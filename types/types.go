package types

import (
	"fmt"
	"strings"
)

type TypeID int

const (
	TypeIDBoolean TypeID = iota
	TypeIDTinyint
	TypeIDSmallint
	TypeIDInteger
	TypeIDBigint
	TypeIDHugeint
	TypeIDReal
	TypeIDDouble
	TypeIDVarchar
	TypeIDVarbinary
	TypeIDTimestamp
	TypeIDDate
	TypeIDIntervalYearMonth
	TypeIDIntervalDayTime
	TypeIDUnknown
	TypeIDDecimal
	TypeIDArray
	TypeIDMap
	TypeIDRow
	TypeIDFunction
	TypeIDCustom
)

// Type is a tagged variant. Only the payload field matching the TypeID is
// meaningful, all other fields are zero.
type Type struct {
	TypeID  TypeID
	Decimal struct {
		Precision int
		Scale     int
	}
	Array struct {
		Element *Type
	}
	Map struct {
		Key   *Type
		Value *Type
	}
	Row struct {
		Fields []RowField
	}
	Function struct {
		Parameters []Type
		Return     *Type
	}
	Custom struct {
		Name string
	}
}

// RowField is a single row element. An empty Name means the field is
// anonymous. Names keep the exact case and characters they were declared
// with.
type RowField struct {
	Name string
	Type Type
}

var (
	Boolean           = Type{TypeID: TypeIDBoolean}
	Tinyint           = Type{TypeID: TypeIDTinyint}
	Smallint          = Type{TypeID: TypeIDSmallint}
	Integer           = Type{TypeID: TypeIDInteger}
	Bigint            = Type{TypeID: TypeIDBigint}
	Hugeint           = Type{TypeID: TypeIDHugeint}
	Real              = Type{TypeID: TypeIDReal}
	Double            = Type{TypeID: TypeIDDouble}
	Varchar           = Type{TypeID: TypeIDVarchar}
	Varbinary         = Type{TypeID: TypeIDVarbinary}
	Timestamp         = Type{TypeID: TypeIDTimestamp}
	Date              = Type{TypeID: TypeIDDate}
	IntervalYearMonth = Type{TypeID: TypeIDIntervalYearMonth}
	IntervalDayTime   = Type{TypeID: TypeIDIntervalDayTime}
	Unknown           = Type{TypeID: TypeIDUnknown}
)

func Decimal(precision, scale int) Type {
	if precision < 0 || scale < 0 {
		panic("decimal type with negative precision or scale")
	}
	out := Type{TypeID: TypeIDDecimal}
	out.Decimal.Precision = precision
	out.Decimal.Scale = scale
	return out
}

func Array(element Type) Type {
	out := Type{TypeID: TypeIDArray}
	out.Array.Element = &element
	return out
}

func Map(key, value Type) Type {
	out := Type{TypeID: TypeIDMap}
	out.Map.Key = &key
	out.Map.Value = &value
	return out
}

func Row(fields ...RowField) Type {
	out := Type{TypeID: TypeIDRow}
	out.Row.Fields = append([]RowField(nil), fields...)
	return out
}

func Field(name string, t Type) RowField {
	return RowField{Name: name, Type: t}
}

// Function builds a function type. The return type is kept separately from
// the parameter types.
func Function(parameters []Type, returned Type) Type {
	out := Type{TypeID: TypeIDFunction}
	out.Function.Parameters = append([]Type(nil), parameters...)
	out.Function.Return = &returned
	return out
}

// Custom wraps a host-registered type. The parser never looks inside, two
// custom types are the same type iff their registered names are equal.
func Custom(name string) Type {
	out := Type{TypeID: TypeIDCustom}
	out.Custom.Name = name
	return out
}

func (t Type) Equals(other Type) bool {
	if t.TypeID != other.TypeID {
		return false
	}
	switch t.TypeID {
	case TypeIDDecimal:
		return t.Decimal == other.Decimal
	case TypeIDArray:
		return t.Array.Element.Equals(*other.Array.Element)
	case TypeIDMap:
		return t.Map.Key.Equals(*other.Map.Key) && t.Map.Value.Equals(*other.Map.Value)
	case TypeIDRow:
		if len(t.Row.Fields) != len(other.Row.Fields) {
			return false
		}
		for i := range t.Row.Fields {
			if t.Row.Fields[i].Name != other.Row.Fields[i].Name {
				return false
			}
			if !t.Row.Fields[i].Type.Equals(other.Row.Fields[i].Type) {
				return false
			}
		}
		return true
	case TypeIDFunction:
		if len(t.Function.Parameters) != len(other.Function.Parameters) {
			return false
		}
		for i := range t.Function.Parameters {
			if !t.Function.Parameters[i].Equals(other.Function.Parameters[i]) {
				return false
			}
		}
		return t.Function.Return.Equals(*other.Function.Return)
	case TypeIDCustom:
		return t.Custom == other.Custom
	}
	return true
}

func (t Type) String() string {
	switch t.TypeID {
	case TypeIDBoolean:
		return "boolean"
	case TypeIDTinyint:
		return "tinyint"
	case TypeIDSmallint:
		return "smallint"
	case TypeIDInteger:
		return "integer"
	case TypeIDBigint:
		return "bigint"
	case TypeIDHugeint:
		return "hugeint"
	case TypeIDReal:
		return "real"
	case TypeIDDouble:
		return "double"
	case TypeIDVarchar:
		return "varchar"
	case TypeIDVarbinary:
		return "varbinary"
	case TypeIDTimestamp:
		return "timestamp"
	case TypeIDDate:
		return "date"
	case TypeIDIntervalYearMonth:
		return "interval year to month"
	case TypeIDIntervalDayTime:
		return "interval day to second"
	case TypeIDUnknown:
		return "unknown"
	case TypeIDDecimal:
		return fmt.Sprintf("decimal(%d,%d)", t.Decimal.Precision, t.Decimal.Scale)
	case TypeIDArray:
		return fmt.Sprintf("array(%s)", *t.Array.Element)
	case TypeIDMap:
		return fmt.Sprintf("map(%s,%s)", *t.Map.Key, *t.Map.Value)
	case TypeIDRow:
		fieldStrings := make([]string, len(t.Row.Fields))
		for i, field := range t.Row.Fields {
			if field.Name == "" {
				fieldStrings[i] = field.Type.String()
			} else {
				fieldStrings[i] = fmt.Sprintf("%s %s", quoteFieldName(field.Name), field.Type)
			}
		}

		return fmt.Sprintf("row(%s)", strings.Join(fieldStrings, ","))
	case TypeIDFunction:
		elementStrings := make([]string, 0, len(t.Function.Parameters)+1)
		for _, parameter := range t.Function.Parameters {
			elementStrings = append(elementStrings, parameter.String())
		}
		elementStrings = append(elementStrings, t.Function.Return.String())

		return fmt.Sprintf("function(%s)", strings.Join(elementStrings, ","))
	case TypeIDCustom:
		return t.Custom.Name
	}
	panic("impossible, type switch bug")
}

func quoteFieldName(name string) string {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		case c == '_':
		default:
			return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
		}
	}
	return name
}
