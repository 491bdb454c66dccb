package coord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

var (
	ErrUnknownDatum  = errors.New("unknown datum")
	ErrBadCoordinate = errors.New("bad coordinate")
)

// Coordinate is a point in decimal degrees, longitude first.
type Coordinate struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{Lon: lon, Lat: lat}
}

func FromPoint(p orb.Point) Coordinate {
	return Coordinate{Lon: p.Lon(), Lat: p.Lat()}
}

func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.8f,%.8f", c.Lon, c.Lat)
}

type Datum int

const (
	WGS84 Datum = iota + 1
	GCJ02
	BD09
)

var datumNames = map[Datum]string{
	WGS84: "wgs84",
	GCJ02: "gcj02",
	BD09:  "bd09",
}

func Datums() []Datum {
	return []Datum{WGS84, GCJ02, BD09}
}

func (d Datum) String() string {
	if s, ok := datumNames[d]; ok {
		return s
	}

	return fmt.Sprintf("datum(%d)", int(d))
}

// ParseDatum accepts names like "wgs84", "WGS-84", "gcj_02" or "BD09".
func ParseDatum(s string) (Datum, error) {
	name := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))

	for d, n := range datumNames {
		if n == name {
			return d, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownDatum, s)
}

func (d Datum) MarshalText() ([]byte, error) {
	if _, ok := datumNames[d]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDatum, int(d))
	}

	return []byte(d.String()), nil
}

func (d *Datum) UnmarshalText(text []byte) error {
	v, err := ParseDatum(string(text))
	if err != nil {
		return err
	}

	*d = v

	return nil
}

type conversion struct {
	from, to Datum
}

var conversions = map[conversion]func(lon, lat float64) Coordinate{
	{WGS84, GCJ02}: WGS84ToGCJ02,
	{GCJ02, WGS84}: GCJ02ToWGS84,
	{GCJ02, BD09}:  GCJ02ToBD09,
	{BD09, GCJ02}:  BD09ToGCJ02,
	{WGS84, BD09}:  WGS84ToBD09,
	{BD09, WGS84}:  BD09ToWGS84,
}

// Converter returns the function converting coordinates from one datum to another.
// Same datum gives the identity.
func Converter(from, to Datum) (func(Coordinate) Coordinate, error) {
	if _, ok := datumNames[from]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDatum, int(from))
	}

	if _, ok := datumNames[to]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDatum, int(to))
	}

	if from == to {
		return func(c Coordinate) Coordinate { return c }, nil
	}

	f := conversions[conversion{from, to}]

	return func(c Coordinate) Coordinate { return f(c.Lon, c.Lat) }, nil
}

func Convert(c Coordinate, from, to Datum) (Coordinate, error) {
	f, err := Converter(from, to)
	if err != nil {
		return c, err
	}

	return f(c), nil
}

// Projection wraps the conversion as an orb.Projection.
func Projection(from, to Datum) (orb.Projection, error) {
	f, err := Converter(from, to)
	if err != nil {
		return nil, err
	}

	return func(p orb.Point) orb.Point {
		return f(FromPoint(p)).Point()
	}, nil
}
