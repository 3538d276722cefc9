package shopping

import (
	"fmt"
	"strings"
)

// FormatText renders the list as plain text for the CLI and the Telegram
// bot. Layout: sections in shopping order, then the already-have bucket,
// then totals and warnings.
func FormatText(list GroceryList) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Grocery list for week of %s\n", list.WeekStart.Format("Jan 2, 2006"))

	for _, section := range list.Sections {
		fmt.Fprintf(&b, "\n%s\n", section.Name)
		for _, item := range section.Items {
			if item.Packages > 0 {
				fmt.Fprintf(&b, "  [ ] %s — %s ($%.2f)\n", item.Name, packageLabel(item), item.Cost)
			} else {
				fmt.Fprintf(&b, "  [ ] %s — price unknown\n", item.Name)
			}
		}
	}

	if len(list.AlreadyHave) > 0 {
		fmt.Fprintf(&b, "\nAlready have\n")
		for _, item := range list.AlreadyHave {
			fmt.Fprintf(&b, "  [x] %s\n", item.Name)
		}
	}

	fmt.Fprintf(&b, "\nTotal: $%.2f", list.Total)
	if list.Savings > 0 {
		fmt.Fprintf(&b, " (pantry saved $%.2f)", list.Savings)
	}
	b.WriteString("\n")

	for _, w := range list.Warnings {
		fmt.Fprintf(&b, "! %s\n", w)
	}
	return b.String()
}

func packageLabel(item ListItem) string {
	unit := item.Unit
	if unit == "" {
		unit = "each"
	}
	if item.Packages == 1 {
		return fmt.Sprintf("1 package (%.4g %s)", item.Quantity, unit)
	}
	return fmt.Sprintf("%d packages (%.4g %s)", item.Packages, item.Quantity, unit)
}
