package shared

import "time"

const dateLayout = "2006-01-02"

// Today returns the current local calendar date in ISO form.
func Today() string {
	return time.Now().Format(dateLayout)
}

// Tomorrow returns the next local calendar date in ISO form.
func Tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(dateLayout)
}

// ValidDateRange reports whether checkin and checkout are well-formed
// ISO dates with checkout strictly after checkin.
func ValidDateRange(checkin, checkout string) bool {
	in, err := time.Parse(dateLayout, checkin)
	if err != nil {
		return false
	}
	out, err := time.Parse(dateLayout, checkout)
	if err != nil {
		return false
	}
	return out.After(in)
}
