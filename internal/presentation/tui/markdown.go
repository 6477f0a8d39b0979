package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/guts/pkg/schema"
)

// KindMarkdown documents a kind as a markdown section: its tag, parent and
// help text, then a table of properties.
func KindMarkdown(k *schema.Kind) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", k.Name())
	if k.Help() != "" {
		fmt.Fprintf(&sb, "%s\n\n", k.Help())
	}
	fmt.Fprintf(&sb, "- **Tag:** `<%s>`\n", k.Tag())
	if p := k.Parent(); p != nil {
		fmt.Fprintf(&sb, "- **Extends:** %s\n", p.Name())
	}
	sb.WriteString("\n")

	props := k.Props()
	if len(props) == 0 {
		sb.WriteString("_No properties._\n")
		return sb.String()
	}

	sb.WriteString("| Property | Type | Required | Default | XML | Description |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, p := range props {
		meta := p.Type.Meta()
		required := "yes"
		if meta.Optional {
			required = "no"
		}
		def := ""
		if meta.HasDefault {
			def = "`" + formatDefault(meta.Default) + "`"
		}
		placement := meta.XMLStyle.String()
		if meta.XMLTag != "" {
			placement += " `" + meta.XMLTag + "`"
		}
		fmt.Fprintf(&sb, "| %s | `%s` | %s | %s | %s | %s |\n",
			p.Name, escapeCell(p.Type.Name()), required, def, placement, escapeCell(meta.Help))
	}
	return sb.String()
}

// KindsMarkdown documents every kind in order, separated by rules.
func KindsMarkdown(kinds []*schema.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = KindMarkdown(k)
	}
	return strings.Join(parts, "\n---\n\n")
}

func formatDefault(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case float64:
		return schema.FormatFloat(x)
	case complex128:
		return schema.FormatComplex(x)
	}
	return fmt.Sprintf("%v", v)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
