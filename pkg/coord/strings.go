package coord

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	rDecimal    = regexp.MustCompile(`^(?P<lon>[-+]?\d+(?:\.\d+)?)[;,\s]+(?P<lat>[-+]?\d+(?:\.\d+)?)$`)
	rHemisphere = regexp.MustCompile(`^(?P<lat>\d+(?:\.\d+)?)([nNsS])[;,\s]*(?P<lon>\d+(?:\.\d+)?)([eEwW])$`)
)

// ParseCoordinate parses "lon,lat" (also space or semicolon separated) and "39.9N 116.4E" forms.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.Trim(s, " \t\n\r.,")

	if res := rDecimal.FindStringSubmatch(s); res != nil {
		lon, err := strconv.ParseFloat(res[1], 64)
		if err != nil {
			return Coordinate{}, fmt.Errorf("%w: %s", ErrBadCoordinate, err.Error())
		}

		lat, err := strconv.ParseFloat(res[2], 64)
		if err != nil {
			return Coordinate{}, fmt.Errorf("%w: %s", ErrBadCoordinate, err.Error())
		}

		return Coordinate{Lon: lon, Lat: lat}, nil
	}

	if res := rHemisphere.FindStringSubmatch(s); res != nil {
		lat, err := strconv.ParseFloat(res[1], 64)
		if err != nil {
			return Coordinate{}, fmt.Errorf("%w: %s", ErrBadCoordinate, err.Error())
		}

		if res[2] == "S" || res[2] == "s" {
			lat = -lat
		}

		lon, err := strconv.ParseFloat(res[3], 64)
		if err != nil {
			return Coordinate{}, fmt.Errorf("%w: %s", ErrBadCoordinate, err.Error())
		}

		if res[4] == "W" || res[4] == "w" {
			lon = -lon
		}

		return Coordinate{Lon: lon, Lat: lat}, nil
	}

	return Coordinate{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
}
