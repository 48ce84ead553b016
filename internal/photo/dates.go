package photo

import (
	"fmt"
	"time"
)

// TakenAtFormats is the hint included in errors for unparseable dates.
const TakenAtFormats = "YYYY-MM-DD, DD/MM/YYYY, or an ISO-8601 timestamp"

// NormalizeTakenAt parses a caller-supplied capture date and returns its
// canonical form: date-only inputs become YYYY-MM-DD, timestamps stay
// RFC 3339. Parsing is strict — impossible calendar dates like 31/02 are
// rejected rather than rolled over.
func NormalizeTakenAt(value string) (string, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse("02/01/2006", value); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("invalid taken_at %q: expected %s", value, TakenAtFormats)
}
