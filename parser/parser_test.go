package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querylab/typesig/registry"
	"github.com/querylab/typesig/types"
)

func testRegistry() *registry.Registry {
	reg := registry.New()
	// Custom type which doesn't need any parser support.
	reg.Register("json", registry.Static(types.Custom("json")))
	// Custom type which needs and has parser support.
	reg.Register("timestamp with time zone", registry.Static(types.Custom("timestamp with time zone")))
	// Custom type which needs and does not have parser support.
	reg.Register("timestamp without time zone", registry.Static(types.Custom("timestamp without time zone")))
	return reg
}

func parse(t *testing.T, signature string) types.Type {
	t.Helper()
	parsed, err := New(testRegistry()).ParseType(signature)
	require.NoError(t, err)
	return parsed
}

func parseError(t *testing.T, signature string) error {
	t.Helper()
	_, err := New(testRegistry()).ParseType(signature)
	require.Error(t, err)
	return err
}

func TestPrimitiveTypes(t *testing.T) {
	assert.Equal(t, types.Boolean, parse(t, "boolean"))
	assert.Equal(t, types.Integer, parse(t, "int"))
	assert.Equal(t, types.Integer, parse(t, "integer"))
	assert.Equal(t, types.Bigint, parse(t, "bigint"))
	assert.Equal(t, types.Real, parse(t, "real"))
	assert.Equal(t, types.Double, parse(t, "double"))
	assert.Equal(t, types.Date, parse(t, "date"))
	assert.Equal(t, types.Timestamp, parse(t, "timestamp"))

	// Keywords and type names match case-insensitively.
	assert.Equal(t, types.Boolean, parse(t, "BOOLEAN"))
	assert.Equal(t, types.Boolean, parse(t, "BooLEan"))
	assert.Equal(t, types.Bigint, parse(t, "BIGINT"))
}

func TestVarcharType(t *testing.T) {
	assert.Equal(t, types.Varchar, parse(t, "varchar"))
	// The length parameter is accepted and discarded.
	assert.Equal(t, types.Varchar, parse(t, "varchar(4)"))
}

func TestVarbinaryType(t *testing.T) {
	assert.Equal(t, types.Varbinary, parse(t, "varbinary"))
}

func TestArrayType(t *testing.T) {
	assert.Equal(t, types.Array(types.Bigint), parse(t, "array(bigint)"))

	assert.Equal(t, types.Array(types.Integer), parse(t, "array(int)"))
	assert.Equal(t, types.Array(types.Integer), parse(t, "array(integer)"))

	assert.Equal(t, types.Array(types.Array(types.Bigint)), parse(t, "array(array(bigint))"))

	assert.Equal(t, types.Array(types.Array(types.Integer)), parse(t, "array(array(int))"))
}

func TestMapType(t *testing.T) {
	assert.Equal(t, types.Map(types.Bigint, types.Bigint), parse(t, "map(bigint,bigint)"))

	assert.Equal(t,
		types.Map(types.Bigint, types.Array(types.Bigint)),
		parse(t, "map(bigint,array(bigint))"))

	assert.Equal(t,
		types.Map(types.Bigint, types.Map(types.Bigint, types.Map(types.Varchar, types.Bigint))),
		parse(t, "map(bigint,map(bigint,map(varchar,bigint)))"))
}

func TestInvalidTypes(t *testing.T) {
	assert.EqualError(t, parseError(t, "blah()"), "Failed to parse type [blah()]")

	assert.EqualError(t, parseError(t, "array()"), "Failed to parse type [array()]")

	assert.EqualError(t, parseError(t, "map()"), "Failed to parse type [map()]")

	assert.EqualError(t, parseError(t, "x"), "Failed to parse type [x]. Type not registered.")

	// Ensure a prefix-only keyword match is not treated as a row type.
	assert.EqualError(t, parseError(t, "rowxxx(a)"), "Failed to parse type [rowxxx(a)]")

	assert.EqualError(t, parseError(t, ""), "Failed to parse type []")

	assert.EqualError(t, parseError(t, "bigint varchar"), "Failed to parse type [bigint varchar]")

	// Trailing input after a complete type.
	assert.EqualError(t, parseError(t, "bigint)"), "Failed to parse type [bigint)]")
	assert.EqualError(t, parseError(t, "bigint(10)"), "Failed to parse type [bigint(10)]")

	// Lexical failures.
	assert.EqualError(t, parseError(t, "bigint$"), "Failed to parse type [bigint$]")
	assert.EqualError(t, parseError(t, `row("abc bigint)`), `Failed to parse type [row("abc bigint)]`)
}

func TestRowType(t *testing.T) {
	assert.Equal(t,
		types.Row(
			types.Field("a", types.Bigint),
			types.Field("b", types.Varchar),
			types.Field("c", types.Real),
		),
		parse(t, "row(a bigint,b varchar,c real)"))

	assert.Equal(t,
		types.Row(
			types.Field("a", types.Bigint),
			types.Field("b", types.Array(types.Bigint)),
			types.Field("c", types.Row(types.Field("a", types.Bigint))),
		),
		parse(t, "row(a bigint,b array(bigint),c row(a bigint))"))

	// Quoted field names preserve the exact text between the quotes.
	assert.Equal(t,
		types.Row(
			types.Field("12 tb", types.Bigint),
			types.Field("b", types.Bigint),
			types.Field("c", types.Bigint),
		),
		parse(t, `row("12 tb" bigint,b bigint,c bigint)`))

	assert.Equal(t,
		types.Row(
			types.Field("a", types.Varchar),
			types.Field("b", types.Row(types.Field("a", types.Bigint))),
		),
		parse(t, "row(a varchar(10),b row(a bigint))"))

	assert.Equal(t,
		types.Array(types.Row(
			types.Field("col0", types.Bigint),
			types.Field("col1", types.Double),
		)),
		parse(t, "array(row(col0 bigint,col1 double))"))

	assert.Equal(t,
		types.Row(types.Field("col0", types.Array(types.Row(
			types.Field("col0", types.Bigint),
			types.Field("col1", types.Double),
		)))),
		parse(t, "row(col0 array(row(col0 bigint,col1 double)))"))

	// Anonymous fields.
	assert.Equal(t,
		types.Row(
			types.RowField{Type: types.Bigint},
			types.RowField{Type: types.Varchar},
		),
		parse(t, "row(bigint,varchar)"))

	assert.Equal(t,
		types.Row(
			types.RowField{Type: types.Bigint},
			types.RowField{Type: types.Array(types.Bigint)},
			types.RowField{Type: types.Row(types.Field("a", types.Bigint))},
		),
		parse(t, "row(bigint,array(bigint),row(a bigint))"))

	assert.Equal(t,
		types.Row(
			types.RowField{Type: types.Varchar},
			types.Field("b", types.Row(types.RowField{Type: types.Bigint})),
		),
		parse(t, "row(varchar(10),b row(bigint))"))

	assert.Equal(t,
		types.Array(types.Row(
			types.Field("col0", types.Bigint),
			types.RowField{Type: types.Double},
		)),
		parse(t, "array(row(col0 bigint,double))"))

	assert.Equal(t,
		types.Row(types.Field("col0", types.Array(types.Row(
			types.RowField{Type: types.Bigint},
			types.RowField{Type: types.Double},
		)))),
		parse(t, "row(col0 array(row(bigint,double)))"))

	// An empty row is valid.
	assert.Equal(t, types.Row(), parse(t, "row()"))

	// Keywords are usable as field names.
	assert.Equal(t,
		types.Row(types.Field("double", types.Double)),
		parse(t, "row(double double precision)"))

	assert.Equal(t,
		types.Row(types.RowField{Type: types.Double}),
		parse(t, "row(double precision)"))

	assert.Equal(t,
		types.Row(types.Field("a", types.Bigint), types.Field("b", types.Varchar)),
		parse(t, "RoW(a bigint,b varchar)"))

	assert.Equal(t,
		parse(t, "row(a bigint,b varchar)"),
		parse(t, "RoW(a bigint,b varchar)"))

	assert.Equal(t,
		types.Row(types.RowField{Type: types.Array(types.Custom("json"))}),
		parse(t, "row(array(Json))"))

	assert.EqualError(t,
		parseError(t, "row(col0 row(array(HyperLogLog)))"),
		"Failed to parse type [HyperLogLog]. Type not registered.")

	// Field type canonicalization.
	assert.Equal(t,
		types.Row(types.Field("col", types.Integer)),
		parse(t, "row(col iNt)"))
}

func TestTypesWithSpaces(t *testing.T) {
	// Type is handled by the parser but is not registered.
	assert.EqualError(t,
		parseError(t, "row(time time with time zone)"),
		"Failed to parse type [time with time zone]. Type not registered.")

	// Type is not handled by the parser but is registered: no grammar
	// production consumes it inside a row, so the whole input is blamed.
	assert.EqualError(t,
		parseError(t, "row(col0 timestamp without time zone)"),
		"Failed to parse type [row(col0 timestamp without time zone)]")

	assert.Equal(t,
		types.Row(types.Field("double", types.Double)),
		parse(t, "row(double double precision)"))

	assert.EqualError(t,
		parseError(t, "row(time with time zone)"),
		"Failed to parse type [time with time zone]. Type not registered.")

	assert.Equal(t,
		types.Row(types.RowField{Type: types.Double}),
		parse(t, "row(double precision)"))

	assert.Equal(t,
		types.Row(types.RowField{Type: types.IntervalDayTime}),
		parse(t, "row(INTERval DAY TO SECOND)"))

	assert.Equal(t,
		types.Row(types.RowField{Type: types.IntervalYearMonth}),
		parse(t, "row(INTERVAL YEAR TO month)"))

	// Quoted field names.
	assert.Equal(t,
		types.Row(
			types.Field("timestamp with time zone", types.Custom("timestamp with time zone")),
			types.Field("double", types.Double),
		),
		parse(t, `row("timestamp with time zone" timestamp with time zone,"double" double)`))

	assert.Equal(t,
		types.Custom("timestamp with time zone"),
		parse(t, "timestamp with time zone"))

	// A registered multi-word name without its own grammar production is
	// still accepted as the entire input.
	assert.Equal(t,
		types.Custom("timestamp without time zone"),
		parse(t, "timestamp without time zone"))

	// Without the registrations both fail.
	plain := New(registry.New())
	_, err := plain.ParseType("timestamp with time zone")
	assert.EqualError(t, err, "Failed to parse type [timestamp with time zone]. Type not registered.")
	_, err = plain.ParseType("timestamp without time zone")
	assert.EqualError(t, err, "Failed to parse type [timestamp without time zone]")
}

func TestIntervalTypes(t *testing.T) {
	assert.Equal(t,
		types.Row(types.Field("interval", types.IntervalYearMonth)),
		parse(t, "row(interval interval year to month)"))

	assert.Equal(t,
		types.Row(types.RowField{Type: types.IntervalYearMonth}),
		parse(t, "row(interval year to month)"))

	assert.Equal(t, types.IntervalYearMonth, parse(t, "interval year to month"))
	assert.Equal(t, types.IntervalDayTime, parse(t, "interval day to second"))

	// Unit pairs outside the grammar table are rejected.
	assert.EqualError(t, parseError(t, "interval year to second"), "Failed to parse type [interval year to second]")
}

func TestFunctionType(t *testing.T) {
	assert.Equal(t,
		types.Function([]types.Type{types.Bigint, types.Bigint}, types.Bigint),
		parse(t, "function(bigint,bigint,bigint)"))

	assert.Equal(t,
		types.Function([]types.Type{types.Bigint, types.Array(types.Varchar)}, types.Varchar),
		parse(t, "function(bigint,array(varchar),varchar)"))

	// The single element is the return type.
	assert.Equal(t,
		types.Function(nil, types.Varchar),
		parse(t, "function(varchar)"))

	assert.EqualError(t, parseError(t, "function()"), "Failed to parse type [function()]")
}

func TestDecimalType(t *testing.T) {
	assert.Equal(t, types.Decimal(10, 5), parse(t, "decimal(10, 5)"))
	assert.Equal(t, types.Decimal(20, 10), parse(t, "decimal(20,10)"))

	assert.EqualError(t, parseError(t, "decimal"), "Failed to parse type [decimal]")
	assert.EqualError(t, parseError(t, "decimal()"), "Failed to parse type [decimal()]")
	assert.EqualError(t, parseError(t, "decimal(20)"), "Failed to parse type [decimal(20)]")
	assert.EqualError(t, parseError(t, "decimal(, 20)"), "Failed to parse type [decimal(, 20)]")
}

func TestDeeplyNestedArrays(t *testing.T) {
	for depth := 1; depth <= 32; depth++ {
		signature := strings.Repeat("array(", depth) + "varchar" + strings.Repeat(")", depth)
		want := types.Varchar
		for i := 0; i < depth; i++ {
			want = types.Array(want)
		}
		t.Run(fmt.Sprintf("depth_%d", depth), func(t *testing.T) {
			assert.Equal(t, want, parse(t, signature))
		})
	}
}

func TestDefaultRegistryParse(t *testing.T) {
	parsed, err := ParseType("map(varchar,array(bigint))")
	require.NoError(t, err)
	assert.Equal(t, types.Map(types.Varchar, types.Array(types.Bigint)), parsed)
}

func TestRegistryMutationBetweenCalls(t *testing.T) {
	reg := registry.New()
	p := New(reg)

	_, err := p.ParseType("array(hyperloglog)")
	assert.EqualError(t, err, "Failed to parse type [hyperloglog]. Type not registered.")

	reg.Register("hyperloglog", registry.Static(types.Custom("hyperloglog")))

	parsed, err := p.ParseType("array(hyperloglog)")
	require.NoError(t, err)
	assert.Equal(t, types.Array(types.Custom("hyperloglog")), parsed)
}
