//nolint:gomnd
package coord

import "math"

// Krasovsky ellipsoid parameters used by the GCJ-02 offset.
const (
	gcjA  float64 = 6378245.0              // semi-major axis
	gcjEE float64 = 0.00669342162296594323 // eccentricity squared
)

const bdPi float64 = math.Pi * 3000.0 / 180.0

// China bounding box, exclusive on every side.
const (
	minLon float64 = 72.004
	maxLon float64 = 137.8347
	minLat float64 = 0.8293
	maxLat float64 = 55.8271
)

// InChina reports whether the GCJ-02 offset applies to the point.
func InChina(lon, lat float64) bool {
	return lon > minLon && lon < maxLon && lat > minLat && lat < maxLat
}

func GCJ02ToWGS84(lon, lat float64) Coordinate {
	if !InChina(lon, lat) {
		return Coordinate{Lon: lon, Lat: lat}
	}

	dLon, dLat := delta(lon, lat)

	return Coordinate{Lon: lon - dLon, Lat: lat - dLat}
}

func WGS84ToGCJ02(lon, lat float64) Coordinate {
	if !InChina(lon, lat) {
		return Coordinate{Lon: lon, Lat: lat}
	}

	dLon, dLat := delta(lon, lat)

	return Coordinate{Lon: lon + dLon, Lat: lat + dLat}
}

// GCJ02ToBD09 is applied everywhere, there is no bounding box check for Baidu offset.
func GCJ02ToBD09(lon, lat float64) Coordinate {
	z := math.Sqrt(lon*lon+lat*lat) + 0.00002*math.Sin(lat*bdPi)
	theta := math.Atan2(lat, lon) + 0.000003*math.Cos(lon*bdPi)

	return Coordinate{
		Lon: z*math.Cos(theta) + 0.0065,
		Lat: z*math.Sin(theta) + 0.006,
	}
}

func BD09ToGCJ02(lon, lat float64) Coordinate {
	x := lon - 0.0065
	y := lat - 0.006
	z := math.Sqrt(x*x+y*y) - 0.00002*math.Sin(y*bdPi)
	theta := math.Atan2(y, x) - 0.000003*math.Cos(x*bdPi)

	return Coordinate{
		Lon: z * math.Cos(theta),
		Lat: z * math.Sin(theta),
	}
}

func WGS84ToBD09(lon, lat float64) Coordinate {
	gcj := WGS84ToGCJ02(lon, lat)

	return GCJ02ToBD09(gcj.Lon, gcj.Lat)
}

func BD09ToWGS84(lon, lat float64) Coordinate {
	gcj := BD09ToGCJ02(lon, lat)

	return GCJ02ToWGS84(gcj.Lon, gcj.Lat)
}

// delta returns the GCJ-02 offset in degrees for the point.
func delta(lon, lat float64) (dLon, dLat float64) {
	dLat = transformLat(lon-105.0, lat-35.0)
	dLon = transformLon(lon-105.0, lat-35.0)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - gcjEE*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((gcjA * (1 - gcjEE)) / (magic * sqrtMagic) * math.Pi)
	dLon = (dLon * 180.0) / (gcjA / sqrtMagic * math.Cos(radLat) * math.Pi)

	return dLon, dLat
}

func transformLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0

	return ret
}

func transformLon(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0

	return ret
}
