package services

import "strings"

// ParseLocation splits a free-text location on the first comma into city and
// state. The state half is upper-cased; when no comma is present the state is
// empty. Input is never rejected — unparseable text simply yields no state.
func ParseLocation(location string) (city, state string) {
	if i := strings.Index(location, ","); i >= 0 {
		city = strings.TrimSpace(location[:i])
		state = strings.ToUpper(strings.TrimSpace(location[i+1:]))
		return city, state
	}
	return strings.TrimSpace(location), ""
}

// LocationSlug lower-cases and hyphenates a city/state pair for use in
// listing-site URL templates, e.g. ("San Antonio", "TX") → "san-antonio-tx".
func LocationSlug(city, state string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(city)), " ", "-")
	if state != "" {
		slug += "-" + strings.ToLower(state)
	}
	return slug
}
