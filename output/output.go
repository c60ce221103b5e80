package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/querylab/typesig/types"
)

// WriteTree prints an indented tree rendering of the type.
func WriteTree(w io.Writer, t types.Type) {
	writeTree(w, "", t, 0)
}

func writeTree(w io.Writer, label string, t types.Type, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
	if label != "" {
		fmt.Fprintf(w, "%s: ", label)
	}

	switch t.TypeID {
	case types.TypeIDArray:
		fmt.Fprintln(w, "array")
		writeTree(w, "element", *t.Array.Element, depth+1)
	case types.TypeIDMap:
		fmt.Fprintln(w, "map")
		writeTree(w, "key", *t.Map.Key, depth+1)
		writeTree(w, "value", *t.Map.Value, depth+1)
	case types.TypeIDRow:
		fmt.Fprintln(w, "row")
		for _, field := range t.Row.Fields {
			name := field.Name
			if name == "" {
				name = "(anonymous)"
			}
			writeTree(w, name, field.Type, depth+1)
		}
	case types.TypeIDFunction:
		fmt.Fprintln(w, "function")
		for i, parameter := range t.Function.Parameters {
			writeTree(w, fmt.Sprintf("arg%d", i), parameter, depth+1)
		}
		writeTree(w, "returns", *t.Function.Return, depth+1)
	default:
		fmt.Fprintln(w, t.String())
	}
}

// WriteFields prints the fields of a row type as a name/type table. Any
// other type is presented as a single anonymous field.
func WriteFields(w io.Writer, t types.Type) {
	table := tablewriter.NewWriter(w)
	table.SetColWidth(48)
	table.SetRowLine(false)
	table.SetHeader([]string{"name", "type"})
	table.SetAutoFormatHeaders(false)

	if t.TypeID == types.TypeIDRow {
		for _, field := range t.Row.Fields {
			table.Append([]string{field.Name, field.Type.String()})
		}
	} else {
		table.Append([]string{"", t.String()})
	}

	table.Render()
}
