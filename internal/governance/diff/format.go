package diff

import (
	"fmt"
	"strings"
)

// FormatReport renders a Result as a human-readable report beginning with
// "[toolName]" followed by one line per delta carrying its severity tag
// (§4.6 "Formatters").
func FormatReport(result Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", result.ToolName)
	for _, d := range result.Deltas {
		fmt.Fprintf(&b, "  [%s] %s.%s: %s\n", d.Severity, d.Category, d.Field, d.Description)
	}
	return b.String()
}

// FormatDeltasAsXml renders a non-empty delta list as a <contract_changes>
// fragment with one child element per delta carrying a severity attribute,
// all text XML-escaped. An empty list formats to the empty string.
func FormatDeltasAsXml(deltas []Delta) string {
	if len(deltas) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<contract_changes>")
	for _, d := range deltas {
		fmt.Fprintf(&b, `<delta category="%s" field="%s" severity="%s">%s</delta>`,
			xmlEscape(d.Category), xmlEscape(d.Field), xmlEscape(string(d.Severity)), xmlEscape(d.Description))
	}
	b.WriteString("</contract_changes>")
	return b.String()
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
