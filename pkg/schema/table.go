package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	language "golang.org/x/text/language"
	message "golang.org/x/text/message"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Table is a structured tabular result which a chat client can render
// directly. It serializes as {"type":"table","columns":[...],"rows":[...]}.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var printer = message.NewPrinter(language.English)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTable creates an empty table with the given column headings
func NewTable(columns ...string) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]any{},
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a row to the table. The number of values should match
// the number of columns.
func (t *Table) Append(values ...any) *Table {
	t.Rows = append(t.Rows, values)
	return t
}

// Len returns the number of rows in the table
func (t *Table) Len() int {
	return len(t.Rows)
}

// Markdown renders the table as a markdown pipe table. Numeric values
// are formatted with thousands separators, floats to two decimal places.
func (t *Table) Markdown() string {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(t.Columns, " | ") + " |\n")
	sep := make([]string, len(t.Columns))
	for i := range sep {
		sep[i] = strings.Repeat("-", max(len(t.Columns[i]), 3))
	}
	sb.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

////////////////////////////////////////////////////////////////////////////////
// JSON MARSHAL

func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}{
		Type:    "table",
		Columns: t.Columns,
		Rows:    t.Rows,
	})
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var v struct {
		Type    string   `json:"type"`
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	t.Columns = v.Columns
	t.Rows = v.Rows
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Table) String() string {
	return types.Stringify(t)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case float64:
		return printer.Sprintf("%.2f", v)
	case float32:
		return printer.Sprintf("%.2f", float64(v))
	case string:
		return v
	default:
		// Integers (ids, years, counts) carry no separators
		return fmt.Sprint(v)
	}
}
