package recipe

import (
	"regexp"
	"strconv"
	"strings"

	"meal-budget-planner/internal/units"
)

// Line is one parsed ingredient line. Quantity 0 means the line carried no
// parseable amount; costing treats that as "buy one package".
type Line struct {
	Raw      string
	Quantity float64
	Unit     string
	Name     string
}

// quantityPattern matches a leading fraction ("1/2") or decimal ("1.5", "2")
// followed by the rest of the line.
var quantityPattern = regexp.MustCompile(`^(\d+/\d+|\d+\.?\d*)\s+(.+)$`)

// ParseLine parses a free-text ingredient line like "1 lb ground beef",
// "1/2 cup milk", "2 onions" or "salt". The unit is recognized greedily after
// the quantity; anything that is not a known unit belongs to the name.
func ParseLine(raw string) Line {
	cleaned := strings.TrimSpace(raw)
	line := Line{Raw: cleaned}

	m := quantityPattern.FindStringSubmatch(cleaned)
	if m == nil {
		// No quantity at all: the whole line is the name.
		line.Name = cleaned
		return line
	}

	line.Quantity = parseQuantity(m[1])
	rest := m[2]

	// A two-word unit ("fl oz") takes precedence over a one-word one.
	fields := strings.SplitN(rest, " ", 3)
	if len(fields) >= 3 {
		two := fields[0] + " " + fields[1]
		if units.KnownFamily(two) {
			line.Unit = units.Normalize(two)
			line.Name = strings.TrimSpace(fields[2])
			return line
		}
	}
	if len(fields) >= 2 && units.KnownFamily(fields[0]) {
		line.Unit = units.Normalize(fields[0])
		line.Name = strings.TrimSpace(strings.TrimPrefix(rest, fields[0]))
		return line
	}

	// Quantity but no unit: "2 onions".
	line.Name = strings.TrimSpace(rest)
	return line
}

// ParseLines parses a recipe's raw ingredient list, skipping blank lines.
func ParseLines(raws []string) []Line {
	lines := make([]Line, 0, len(raws))
	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, ParseLine(raw))
	}
	return lines
}

func parseQuantity(s string) float64 {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
