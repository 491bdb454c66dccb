package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kdudkov/geoconv/pkg/coord"
	"github.com/kdudkov/geoconv/pkg/gpsd"
)

func TestRunText(t *testing.T) {
	out := new(bytes.Buffer)

	err := run(options{from: coord.WGS84, to: coord.GCJ02, format: "text"}, []string{"116.404,39.915", "0,0"}, nil, out)
	require.NoError(t, err)

	assert.Equal(t, "116.41024450,39.91640428\n0.00000000,0.00000000\n", out.String())
}

func TestRunStdin(t *testing.T) {
	out := new(bytes.Buffer)
	in := strings.NewReader("# points\n116.404 39.915\n\n39.915N 116.404E\n")

	err := run(options{from: coord.WGS84, to: coord.BD09, format: "text"}, nil, in, out)
	require.NoError(t, err)

	want := coord.WGS84ToBD09(116.404, 39.915).String()
	assert.Equal(t, want+"\n"+want+"\n", out.String())
}

func TestRunYaml(t *testing.T) {
	out := new(bytes.Buffer)

	err := run(options{from: coord.GCJ02, to: coord.GCJ02, format: "yaml"}, []string{"116.404,39.915"}, nil, out)
	require.NoError(t, err)

	var res []coord.Coordinate
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, []coord.Coordinate{{Lon: 116.404, Lat: 39.915}}, res)
}

func TestRunDistance(t *testing.T) {
	out := new(bytes.Buffer)

	err := run(options{format: "text", distance: true}, []string{"0,0", "180,0"}, nil, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "vincenty: NaN m")
	assert.Contains(t, out.String(), "haversine: 20015114.442 m")

	out.Reset()

	err = run(options{format: "yaml", distance: true}, []string{"0,0", "0,1"}, nil, out)
	require.NoError(t, err)

	var res DistanceResult
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &res))
	require.NotNil(t, res.Vincenty)
	assert.InDelta(t, 110574.38855795695, *res.Vincenty, 1e-6)

	err = run(options{format: "text", distance: true}, []string{"0,0"}, nil, out)
	assert.ErrorIs(t, err, errUsage)
}

func TestRunGeoJSON(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{116.404, 39.915}))

	b, err := fc.MarshalJSON()
	require.NoError(t, err)

	name := filepath.Join(t.TempDir(), "points.geojson")
	require.NoError(t, os.WriteFile(name, b, 0o644))

	out := new(bytes.Buffer)
	require.NoError(t, run(options{from: coord.WGS84, to: coord.GCJ02, format: "text", geoJSON: name}, nil, nil, out))

	res, err := geojson.UnmarshalFeatureCollection(bytes.TrimSpace(out.Bytes()))
	require.NoError(t, err)
	require.Len(t, res.Features, 1)
	assert.Equal(t, coord.WGS84ToGCJ02(116.404, 39.915).Point(), res.Features[0].Geometry)
}

func TestRunErrors(t *testing.T) {
	out := new(bytes.Buffer)

	assert.ErrorIs(t, run(options{from: coord.WGS84, to: coord.GCJ02, format: "xml"}, nil, nil, out), errUsage)
	assert.ErrorIs(t, run(options{from: coord.WGS84, to: coord.GCJ02, format: "text"}, []string{"here"}, nil, out), coord.ErrBadCoordinate)
	assert.ErrorIs(t, run(options{from: coord.WGS84, format: "text"}, []string{"1,1"}, nil, out), coord.ErrUnknownDatum)
}

func TestFollow(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		fmt.Fprintln(conn, `{"class":"TPV","mode":3,"time":"2024-05-01T10:00:00Z","lat":39.915,"lon":116.404,"alt":50}`)

		time.Sleep(time.Second)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*300)
	defer cancel()

	out := new(bytes.Buffer)
	err = follow(ctx, options{to: coord.GCJ02, format: "text"}, gpsd.New(l.Addr().String(), nil), out)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "2024-05-01T10:00:00Z 116.41024450,39.91640428 alt=50.0 speed=0.0 track=0.0\n", out.String())
}
