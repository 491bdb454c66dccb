package coord

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type convData struct {
	lon, lat       float64
	gcjLon, gcjLat float64
	bdLon, bdLat   float64
}

var cities = []convData{
	{116.404, 39.915, 116.41024449916938, 39.91640428150164, 116.41662724378733, 39.922699552216216},
	{121.4737, 31.2304, 121.47822305927693, 31.22845773757727, 121.484781468503, 31.234310593689997},
	{114.0579, 22.5431, 114.06301399856547, 22.54038281422246, 114.06956398703267, 22.546041559073544},
	{87.6168, 43.8256, 87.61964994946926, 43.82680539311119, 87.62609977081571, 43.83294979479328},
	{126.6425, 45.756, 126.64846994046061, 45.75795145080469, 126.65510015168847, 45.76364488223368},
}

func TestWgsToGcj(t *testing.T) {
	for _, d := range cities {
		c := WGS84ToGCJ02(d.lon, d.lat)

		assert.InDelta(t, d.gcjLon, c.Lon, 1e-12)
		assert.InDelta(t, d.gcjLat, c.Lat, 1e-12)
	}
}

func TestWgsToBd(t *testing.T) {
	for _, d := range cities {
		c := WGS84ToBD09(d.lon, d.lat)

		assert.InDelta(t, d.bdLon, c.Lon, 1e-12)
		assert.InDelta(t, d.bdLat, c.Lat, 1e-12)

		gcj := WGS84ToGCJ02(d.lon, d.lat)
		assert.Equal(t, GCJ02ToBD09(gcj.Lon, gcj.Lat), c)
	}
}

func TestBdToWgsComposition(t *testing.T) {
	for _, d := range cities {
		gcj := BD09ToGCJ02(d.bdLon, d.bdLat)
		assert.Equal(t, GCJ02ToWGS84(gcj.Lon, gcj.Lat), BD09ToWGS84(d.bdLon, d.bdLat))
	}
}

func TestOutOfChina(t *testing.T) {
	assert.Equal(t, Coordinate{0, 0}, GCJ02ToWGS84(0, 0))
	assert.Equal(t, Coordinate{0, 0}, WGS84ToGCJ02(0, 0))

	for _, c := range []Coordinate{
		{-0.1278, 51.5074},
		{2.3522, 48.8566},
		{139.6917, 35.6895},
		{72.004, 35},
		{137.8347, 35},
		{105, 0.8293},
		{105, 55.8271},
	} {
		assert.False(t, InChina(c.Lon, c.Lat))
		assert.Equal(t, c, WGS84ToGCJ02(c.Lon, c.Lat))
		assert.Equal(t, c, GCJ02ToWGS84(c.Lon, c.Lat))
	}

	assert.True(t, InChina(72.0041, 0.8294))
	assert.True(t, InChina(116.4, 39.9))
}

// gcj -> wgs is an approximate inverse, observed error is about 6e-5 degrees at worst.
func TestGcjRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 10000; i++ {
		lon := 72.1 + rnd.Float64()*65.6
		lat := 0.9 + rnd.Float64()*54.8

		w := GCJ02ToWGS84(lon, lat)
		g := WGS84ToGCJ02(w.Lon, w.Lat)

		assert.InDelta(t, lon, g.Lon, 1e-4)
		assert.InDelta(t, lat, g.Lat, 1e-4)
	}
}

func TestBdRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))

	for i := 0; i < 10000; i++ {
		lon := rnd.Float64()*360 - 180
		lat := rnd.Float64()*180 - 90

		b := GCJ02ToBD09(lon, lat)
		g := BD09ToGCJ02(b.Lon, b.Lat)

		assert.InDelta(t, lon, g.Lon, 1e-5)
		assert.InDelta(t, lat, g.Lat, 1e-5)
	}
}

func TestNaN(t *testing.T) {
	c := GCJ02ToBD09(math.NaN(), 39.9)
	assert.True(t, math.IsNaN(c.Lon))
	assert.True(t, math.IsNaN(c.Lat))

	// NaN fails the bounding box check and passes through
	c = WGS84ToGCJ02(math.NaN(), 39.9)
	assert.True(t, math.IsNaN(c.Lon))
	assert.Equal(t, 39.9, c.Lat)
}
