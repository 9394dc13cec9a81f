// Package intent builds the device deep links the mobile client fires:
// tel: URIs for the dialer and map directions URLs.
package intent

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// DefaultDirectionsURL is the maps directions endpoint used when none is configured.
const DefaultDirectionsURL = "https://www.google.com/maps/dir/"

var (
	ErrInvalidNumber      = errors.New("invalid phone number")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// DialURI normalizes a display number such as "(054) 472-3184" into "tel:0544723184".
// A leading plus sign is kept.
func DialURI(number string) (string, error) {
	number = strings.TrimSpace(number)
	var b strings.Builder
	for i, r := range number {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", ErrInvalidNumber
		}
	}
	digits := strings.TrimPrefix(b.String(), "+")
	if len(digits) < 3 || len(digits) > 15 {
		return "", ErrInvalidNumber
	}
	return "tel:" + b.String(), nil
}

// DirectionsURL returns a maps deep link with the destination set to lat,lng.
func DirectionsURL(base string, lat, lng float64) (string, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 || (lat == 0 && lng == 0) {
		return "", ErrInvalidCoordinates
	}
	if strings.TrimSpace(base) == "" {
		base = DefaultDirectionsURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("api", "1")
	q.Set("destination", formatCoord(lat)+","+formatCoord(lng))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
