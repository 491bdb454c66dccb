package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type distData struct {
	start, end Coordinate
	haversine  float64
	vincenty   float64
	bearing    float64
}

func TestDistance(t *testing.T) {
	data := []distData{
		{Coordinate{0, 0}, Coordinate{0, 1}, 111195.0802335329, 110574.38855795695, 0},
		{Coordinate{0, 0}, Coordinate{1, 0}, 111195.0802335329, 111319.49079322325, 90},
		{Coordinate{0, 0}, Coordinate{90, 0}, 10007557.221017962, 10018754.171390094, 90},
		{Coordinate{116.404, 39.915}, Coordinate{121.4737, 31.2304}, 1068513.7117255568, 1067046.8335178497, 153.085649265193},
		{Coordinate{-0.1278, 51.5074}, Coordinate{2.3522, 48.8566}, 343556.53488088254, 343923.1200906807, 148.11561687105325},
	}

	for _, d := range data {
		assert.InDelta(t, d.haversine, Distance(d.start, d.end), 1e-6)
		assert.InDelta(t, d.vincenty, DistancePlus(d.start, d.end), 1e-6)
		assert.InDelta(t, d.bearing, Bearing(d.start, d.end), 1e-9)

		assert.InDelta(t, Distance(d.start, d.end), Distance(d.end, d.start), 1e-6)
		assert.InDelta(t, DistancePlus(d.start, d.end), DistancePlus(d.end, d.start), 1e-6)
	}
}

func TestOneDegree(t *testing.T) {
	assert.InDelta(t, EarthRadius*math.Pi/180, Distance(Coordinate{0, 0}, Coordinate{0, 1}), 1e-9)
}

func TestSamePoint(t *testing.T) {
	for _, p := range []Coordinate{{0, 0}, {10, 10}, {116.404, 39.915}, {-73.9857, 40.7484}, {180, -89.5}} {
		assert.Equal(t, 0.0, Distance(p, p))
		assert.Equal(t, 0.0, DistancePlus(p, p))
	}
}

func TestAntipodal(t *testing.T) {
	assert.True(t, math.IsNaN(DistancePlus(Coordinate{0, 0}, Coordinate{180, 0})))
	assert.True(t, math.IsNaN(DistancePlus(Coordinate{0, 0}, Coordinate{179.5, 0.5})))

	// haversine has no such problem
	assert.InDelta(t, EarthRadius*math.Pi, Distance(Coordinate{0, 0}, Coordinate{180, 0}), 1e-6)
}

func TestRadians(t *testing.T) {
	assert.Equal(t, math.Pi, ToRadians(180))
	assert.Equal(t, 180.0, ToDegrees(math.Pi))
	assert.InDelta(t, 42.42, ToDegrees(ToRadians(42.42)), 1e-12)
}
