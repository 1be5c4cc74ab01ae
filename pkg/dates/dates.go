// Package dates converts between the canonical storage form of calendar
// dates (YYYY-MM-DD) and the display form accepted at the boundary
// (DD/MM/YYYY). Records always persist the canonical form.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// ToISO normalizes a date string to YYYY-MM-DD. Strings containing "/" are
// parsed as DD/MM/YYYY; anything else is assumed already canonical and is
// validated as such.
func ToISO(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty date")
	}

	if strings.Contains(value, "/") {
		parts := strings.Split(value, "/")
		if len(parts) != 3 {
			return "", fmt.Errorf("invalid date %q: expected DD/MM/YYYY", value)
		}
		value = fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[1]), pad2(parts[0]))
	}

	t, err := time.Parse(isoLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", value, err)
	}

	// time.Parse accepts non-padded parts like 2024-3-5; reformatting keeps
	// the stored form fixed-width so dates sort correctly as strings.
	return t.Format(isoLayout), nil
}

// ToDisplay converts a canonical YYYY-MM-DD date to DD/MM/YYYY. Strings not
// in canonical form are returned unchanged.
func ToDisplay(value string) string {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return value
	}
	return fmt.Sprintf("%s/%s/%s", parts[2], parts[1], parts[0])
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
