//nolint:gomnd
package coord

import "math"

// EarthRadius is the mean Earth radius in meters.
const EarthRadius float64 = 6371008.8

// WGS-84 ellipsoid.
const (
	wgsA float64 = 6378137.0         // semi-major axis
	wgsB float64 = 6356752.314245    // semi-minor axis
	wgsF float64 = 1 / 298.257223563 // flattening
)

const (
	vincentyTolerance = 1e-12
	vincentyMaxIter   = 100
)

// Distance returns great-circle distance in meters using haversine formula.
func Distance(start, end Coordinate) float64 {
	lat1 := ToRadians(start.Lat)
	lat2 := ToRadians(end.Lat)
	dLon := ToRadians(end.Lon - start.Lon)
	dLat := lat2 - lat1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistancePlus returns distance in meters on WGS-84 ellipsoid using Vincenty inverse formula.
// It returns NaN when iteration does not converge, which happens for nearly antipodal points.
func DistancePlus(start, end Coordinate) float64 {
	L := ToRadians(end.Lon - start.Lon)
	U1 := math.Atan((1 - wgsF) * math.Tan(ToRadians(start.Lat)))
	U2 := math.Atan((1 - wgsF) * math.Tan(ToRadians(end.Lat)))
	sinU1, cosU1 := math.Sin(U1), math.Cos(U1)
	sinU2, cosU2 := math.Sin(U2), math.Cos(U2)

	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64

	lambda := L

	for iterLimit := vincentyMaxIter; ; {
		sinLambda, cosLambda := math.Sin(lambda), math.Cos(lambda)

		sinSigma = math.Sqrt((cosU2*sinLambda)*(cosU2*sinLambda) +
			(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			return 0
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha

		cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		if math.IsNaN(cos2SigmaM) {
			// equatorial line
			cos2SigmaM = 0
		}

		C := wgsF / 16 * cosSqAlpha * (4 + wgsF*(4-3*cosSqAlpha))
		lambdaP := lambda
		lambda = L + (1-C)*wgsF*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if !(math.Abs(lambda-lambdaP) > vincentyTolerance) {
			break
		}

		if iterLimit--; iterLimit == 0 {
			return math.NaN()
		}
	}

	uSq := cosSqAlpha * (wgsA*wgsA - wgsB*wgsB) / (wgsB * wgsB)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return wgsB * A * (sigma - deltaSigma)
}

// Bearing returns initial bearing from start to end in degrees, [0, 360).
func Bearing(start, end Coordinate) float64 {
	lat1 := ToRadians(start.Lat)
	lat2 := ToRadians(end.Lat)
	dLon := ToRadians(end.Lon - start.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bea := ToDegrees(math.Atan2(y, x))

	if bea < 0 {
		bea += 360
	}

	return bea
}
