package sqlexec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Format selects how a Result is turned into text
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Messages returned to the caller
const (
	NoDDLFound       = "no DDL found"
	mutationTemplate = "execution succeeded, affected rows: %d"
	failureTemplate  = "execution failed: %s"
)

// ParseFormat accepts "", "text" and "json"
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q, must be one of text, json", s)
	}
}

// Render converts the outcome of Execute into the string handed back to the
// tool caller. It never fails; errors become "execution failed: <message>".
func Render(res *Result, err error, format Format) string {
	if err != nil {
		return RenderError(err)
	}
	if res == nil {
		return RenderError(fmt.Errorf("no result"))
	}

	if format == FormatJSON {
		out, err := renderJSON(res)
		if err != nil {
			return RenderError(err)
		}
		return out
	}
	return renderText(res)
}

// RenderError formats err for the caller
func RenderError(err error) string {
	return fmt.Sprintf(failureTemplate, err.Error())
}

func renderText(res *Result) string {
	switch res.Kind {
	case Introspection:
		if !res.DDLFound {
			return NoDDLFound
		}
		return res.DDL
	case Query:
		lines := make([]string, 0, len(res.Rows))
		for _, row := range res.Rows {
			lines = append(lines, formatRow(row))
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprintf(mutationTemplate, res.RowsAffected)
	}
}

func renderJSON(res *Result) (string, error) {
	var v interface{}
	switch res.Kind {
	case Introspection:
		if !res.DDLFound {
			return NoDDLFound, nil
		}
		v = map[string]string{"ddl": res.DDL}
	case Query:
		rows := res.Rows
		if rows == nil {
			rows = []Row{}
		}
		v = rows
	default:
		v = map[string]int64{"affected_rows": res.RowsAffected}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to convert to JSON: %w", err)
	}
	return string(data), nil
}

// formatRow renders a row as a dict literal, e.g. {'id': 1, 'name': 'bob'}
func formatRow(row Row) string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for pair := row.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(quote(pair.Key))
		sb.WriteString(": ")
		sb.WriteString(formatValue(pair.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return formatFloat(val, 64)
	case float32:
		// the driver decodes FLOAT columns as float32
		return formatFloat(float64(val), 32)
	case Decimal:
		return "Decimal(" + quote(string(val)) + ")"
	case string:
		return quote(val)
	case []byte:
		return quote(string(val))
	default:
		return quote(fmt.Sprint(val))
	}
}

// formatFloat prints the shortest representation that round-trips at bitSize
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quote wraps s in single quotes, switching to double quotes when s
// contains a single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r == rune(q) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
