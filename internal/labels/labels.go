// Package labels turns sample timestamps into short chart axis labels.
package labels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kc0bfv/power-sensor-monitor/internal/listx"
)

// Undefined stands in for any fragment a malformed timestamp does not have.
const Undefined = "undefined"

var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Stamp is a timestamp of the form YYYY-MM-DDTHH:MM:SS<zone> cut into its
// text fragments. Nothing is converted or validated.
type Stamp struct {
	Year   string
	Month  string
	Day    string
	Hour   string
	Minute string
	// Second and Zone come from the last time fragment, whose final
	// character is taken as the zone. Neither ends up in Label.
	Second string
	Zone   string
}

// Parse cuts s into fragments. Missing fragments are Undefined.
func Parse(s string) Stamp {
	split := strings.Split(s, "T")
	date, clock := at(split, 0), at(split, 1)

	dsplit := strings.Split(date, "-")
	st := Stamp{
		Year:  at(dsplit, 0),
		Month: at(dsplit, 1),
		Day:   at(dsplit, 2),
	}

	if clock == Undefined {
		st.Hour, st.Minute, st.Second, st.Zone = Undefined, Undefined, Undefined, Undefined
		return st
	}
	tsplit := strings.Split(clock, ":")
	st.Hour = at(tsplit, 0)
	st.Minute = at(tsplit, 1)

	secZone := at(tsplit, 2)
	if secZone == Undefined {
		st.Second, st.Zone = Undefined, Undefined
		return st
	}
	if secZone != "" {
		r := []rune(secZone)
		st.Zone = string(r[len(r)-1:])
		st.Second = string(r[:len(r)-1])
	}
	return st
}

// Label renders the stamp as "MM/DD HH:MM".
// TODO: decide whether the zone belongs in the label once readings come from more than one timezone.
func (s Stamp) Label() string {
	return fmt.Sprintf("%s/%s %s:%s", s.Month, s.Day, s.Hour, s.Minute)
}

// Build returns one label per timestamp. Malformed input yields labels with
// Undefined fragments rather than an error.
func Build(stamps []string) []string {
	return listx.Map(stamps, func(s string) string {
		return Parse(s).Label()
	})
}

// BuildStrict is Build that rejects timestamps missing any fragment or
// carrying non-digit date and clock fields.
func BuildStrict(stamps []string) ([]string, error) {
	out := make([]string, len(stamps))
	for i, s := range stamps {
		st := Parse(s)
		if !wellFormed(s, st) {
			return nil, fmt.Errorf("%w: element %d %q", ErrMalformedTimestamp, i, s)
		}
		out[i] = st.Label()
	}
	return out, nil
}

func wellFormed(raw string, st Stamp) bool {
	if strings.Count(raw, "T") != 1 || strings.Count(raw, ":") != 2 {
		return false
	}
	for _, part := range []string{st.Year, st.Month, st.Day, st.Hour, st.Minute} {
		if part == Undefined || !digits(part) {
			return false
		}
	}
	return st.Zone != Undefined && st.Zone != ""
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func at(parts []string, i int) string {
	if i >= len(parts) {
		return Undefined
	}
	return parts[i]
}
