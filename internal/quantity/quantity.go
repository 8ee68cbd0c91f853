// Package quantity consolidates the free-text amounts of shopping list
// lines that share a product into a single display string.
package quantity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`^(\d+)(\s*)(\w*)`)

// Aggregate merges a sequence of amount strings for one product into a
// human-readable total, e.g. ["2 cups","1 cup"] -> "2 cups+1 cup Flour".
//
// Amounts starting with digits are summed per unit token. The unit key
// remembers whether a space separated digits from unit, so "2 cups" and
// "2cups" land in different buckets. Amounts with no leading digits mark the
// result with "Some". The plural name is used unless the combined amount is
// exactly "1" or no plural is defined.
//
// All amounts must refer to the same product; the caller guarantees the
// sequence is non-empty.
func Aggregate(amounts []string, name, pluralName string) string {
	if len(amounts) == 0 {
		panic("quantity: Aggregate called with no amounts")
	}

	var keys []string
	totals := make(map[string]int)
	some := false

	for _, amount := range amounts {
		m := amountPattern.FindStringSubmatch(amount)
		if m == nil {
			some = true
			continue
		}
		magnitude, err := strconv.Atoi(m[1])
		if err != nil {
			// Digit run too long for an int; treat as unspecified.
			some = true
			continue
		}
		key := m[3]
		if len(m[2]) > 0 {
			key = " " + m[3]
		}
		if _, seen := totals[key]; !seen {
			keys = append(keys, key)
		}
		totals[key] += magnitude
	}

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%d%s", totals[key], key))
	}
	combined := strings.Join(parts, "+")
	if some {
		if combined != "" {
			combined = "Some+" + combined
		} else {
			combined = "Some"
		}
	}

	if combined == "1" || pluralName == "" {
		return fmt.Sprintf("%s %s", combined, name)
	}
	return fmt.Sprintf("%s %s", combined, pluralName)
}
