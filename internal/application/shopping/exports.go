package shopping

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Export formats accepted by Export.
const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Export renders the list in the requested format and returns the
// payload plus its content type. Unknown formats default to text.
func (l *List) Export(format string) ([]byte, string) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return l.CSV(), "text/csv"
	case FormatMarkdown:
		return l.Markdown(), "text/markdown"
	case FormatJSON:
		return l.JSON(), "application/json"
	default:
		return l.Text(), "text/plain"
	}
}

// byCategory groups items per category, both levels alphabetical.
func (l *List) byCategory() ([]string, map[string][]Item) {
	grouped := make(map[string][]Item)
	for _, item := range l.Items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, grouped
}

// Text renders category-grouped bullets with totals and cost.
func (l *List) Text() []byte {
	var b strings.Builder
	b.WriteString("Shopping List\n=============\n\n")

	categories, grouped := l.byCategory()
	for _, category := range categories {
		fmt.Fprintf(&b, "%s:\n", category)
		for _, item := range grouped[category] {
			fmt.Fprintf(&b, "  - %s: %s %s (est. %.2f)\n",
				item.Name, formatAmount(item.TotalAmount), item.Unit, item.EstimatedCost)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Items: %d\nEstimated total: %.2f\n", l.ItemCount, l.TotalCost)
	return []byte(b.String())
}

// CSV renders the flat item table.
func (l *List) CSV() []byte {
	var b strings.Builder
	w := csv.NewWriter(&b)

	_ = w.Write([]string{"Ingredient", "Amount", "Unit", "Category", "Total Cost"})
	for _, item := range l.Items {
		_ = w.Write([]string{
			item.Name,
			formatAmount(item.TotalAmount),
			item.Unit,
			item.Category,
			strconv.FormatFloat(item.EstimatedCost, 'f', 2, 64),
		})
	}
	w.Flush()

	return []byte(b.String())
}

// Markdown renders a checkbox list per category.
func (l *List) Markdown() []byte {
	var b strings.Builder
	b.WriteString("# Shopping List\n")

	categories, grouped := l.byCategory()
	for _, category := range categories {
		fmt.Fprintf(&b, "\n## %s\n\n", category)
		for _, item := range grouped[category] {
			fmt.Fprintf(&b, "- [ ] %s: %s %s\n", item.Name, formatAmount(item.TotalAmount), item.Unit)
		}
	}

	fmt.Fprintf(&b, "\n**Items:** %d | **Estimated total:** %.2f\n", l.ItemCount, l.TotalCost)
	return []byte(b.String())
}

// JSON renders the full structured object.
func (l *List) JSON() []byte {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return []byte("{}")
	}
	return data
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
