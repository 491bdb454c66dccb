package coord

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
	"github.com/sourcegraph/conc/iter"
)

// ConvertAll converts points in parallel, result keeps the input order.
func ConvertAll(points []Coordinate, from, to Datum) ([]Coordinate, error) {
	f, err := Converter(from, to)
	if err != nil {
		return nil, err
	}

	return iter.Map(points, func(c *Coordinate) Coordinate {
		return f(*c)
	}), nil
}

// ConvertGeometry returns converted copy of g, g itself is not changed.
func ConvertGeometry(g orb.Geometry, from, to Datum) (orb.Geometry, error) {
	proj, err := Projection(from, to)
	if err != nil {
		return nil, err
	}

	if g == nil {
		return nil, nil
	}

	return project.Geometry(orb.Clone(g), proj), nil
}

func ConvertFeatureCollection(fc *geojson.FeatureCollection, from, to Datum) (*geojson.FeatureCollection, error) {
	proj, err := Projection(from, to)
	if err != nil {
		return nil, err
	}

	res := geojson.NewFeatureCollection()

	if fc == nil {
		return res, nil
	}

	res.ExtraMembers = fc.ExtraMembers.Clone()

	for _, f := range fc.Features {
		if f == nil {
			continue
		}

		nf := &geojson.Feature{
			ID:         f.ID,
			Type:       f.Type,
			Properties: f.Properties.Clone(),
		}

		if f.Geometry != nil {
			nf.Geometry = project.Geometry(orb.Clone(f.Geometry), proj)
		}

		res.Append(nf)
	}

	return res, nil
}
