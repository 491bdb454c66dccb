package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	s        string
	lon, lat float64
}

func TestStringConvert(t *testing.T) {
	data := []testData{
		{"116.404,39.915", 116.404, 39.915},
		{"116.404, 39.915", 116.404, 39.915},
		{"116.404 39.915", 116.404, 39.915},
		{" 116.404;39.915. ", 116.404, 39.915},
		{"-73.9857,40.7484", -73.9857, 40.7484},
		{"+2,-48.5", 2, -48.5},
		{"39.915N 116.404E", 116.404, 39.915},
		{"39.915n,116.404e", 116.404, 39.915},
		{"33.86S 151.2E", 151.2, -33.86},
		{"51.49N,  0.12w", -0.12, 51.49},
	}

	for _, d := range data {
		c, err := ParseCoordinate(d.s)
		require.NoError(t, err, d.s)
		assert.Equal(t, d.lon, c.Lon, d.s)
		assert.Equal(t, d.lat, c.Lat, d.s)
	}
}

func TestStringBad(t *testing.T) {
	for _, s := range []string{"", "abc", "116.404", "116.404,39.915,10", "39.915E 116.404N", "1.2.3,4"} {
		_, err := ParseCoordinate(s)
		assert.ErrorIs(t, err, ErrBadCoordinate, s)
	}
}
