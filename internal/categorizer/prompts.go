package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/budget-tracker/internal/models"
)

// BuildPrompt asks, in Arabic, for exactly one label from the taxonomy.
func BuildPrompt(merchant, description string, taxonomy []models.CategoryConfig) string {
	names := make([]string, 0, len(taxonomy))
	for _, c := range taxonomy {
		names = append(names, fmt.Sprintf("%q", c.Name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "صنف الجهة %q (وصف إضافي: %q) في واحدة من هذه التصنيفات فقط:\n", merchant, description)
	sb.WriteString("[" + strings.Join(names, ", ") + "]\n")

	var hints []string
	for _, c := range taxonomy {
		if c.Description != "" {
			hints = append(hints, fmt.Sprintf("- %s: %s", c.Name, c.Description))
		}
	}
	if len(hints) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(hints, "\n"))
		sb.WriteString("\n")
	}

	sb.WriteString("\nأجب باسم التصنيف فقط.\n")
	return sb.String()
}
