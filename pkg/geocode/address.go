package geocode

import "strings"

// formatOneLine joins address parts into a single geocodable string,
// skipping blank components.
func formatOneLine(address, city, state, zip string) string {
	var parts []string
	for _, p := range []string{address, city, state} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	oneLine := strings.Join(parts, ", ")
	if z := strings.TrimSpace(zip); z != "" {
		if oneLine == "" {
			return z
		}
		oneLine += " " + z
	}
	return oneLine
}
