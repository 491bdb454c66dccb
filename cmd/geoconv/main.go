package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"

	"github.com/kdudkov/geoconv/pkg/coord"
	"github.com/kdudkov/geoconv/pkg/gpsd"
)

var errUsage = errors.New("usage")

type options struct {
	from     coord.Datum
	to       coord.Datum
	format   string
	distance bool
	geoJSON  string
	gpsd     string
}

type DistanceResult struct {
	Start     coord.Coordinate `json:"start" yaml:"start"`
	End       coord.Coordinate `json:"end" yaml:"end"`
	Haversine float64          `json:"haversine" yaml:"haversine"`
	Vincenty  *float64         `json:"vincenty" yaml:"vincenty"`
	Bearing   float64          `json:"bearing" yaml:"bearing"`
}

func main() {
	opts := options{from: coord.WGS84, to: coord.GCJ02}

	flag.TextVar(&opts.from, "from", coord.WGS84, "source datum (wgs84, gcj02, bd09)")
	flag.TextVar(&opts.to, "to", coord.GCJ02, "target datum (wgs84, gcj02, bd09)")
	flag.StringVar(&opts.format, "format", "text", "output format: text, json or yaml")
	flag.BoolVar(&opts.distance, "distance", false, "print distance and bearing between two points")
	flag.StringVar(&opts.geoJSON, "geojson", "", "convert geojson feature collection file, - for stdin")
	flag.StringVar(&opts.gpsd, "gpsd", "", "follow gpsd at host:port and print converted fixes")
	debug := flag.Bool("debug", false, "debug")
	flag.Parse()

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var err error

	if opts.gpsd != "" {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		err = follow(ctx, opts, gpsd.New(opts.gpsd, slog.Default()), os.Stdout)

		stop()
	} else {
		err = run(opts, flag.Args(), os.Stdin, os.Stdout)
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
		}

		slog.Error(err.Error())
		os.Exit(1)
	}
}

func checkFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, format)
	}
}

func run(opts options, args []string, in io.Reader, out io.Writer) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}

	if opts.geoJSON != "" {
		return convertGeoJSON(opts, in, out)
	}

	if opts.distance {
		if len(args) != 2 {
			return fmt.Errorf("%w: distance needs exactly two points", errUsage)
		}

		return distance(opts, args[0], args[1], out)
	}

	if len(args) == 0 {
		var err error
		if args, err = readLines(in); err != nil {
			return err
		}
	}

	points := make([]coord.Coordinate, 0, len(args))

	for _, s := range args {
		c, err := coord.ParseCoordinate(s)
		if err != nil {
			return err
		}

		points = append(points, c)
	}

	res, err := coord.ConvertAll(points, opts.from, opts.to)
	if err != nil {
		return err
	}

	slog.Debug("converted", "from", opts.from, "to", opts.to, "points", len(res))

	if opts.format == "text" {
		for _, c := range res {
			fmt.Fprintln(out, c.String())
		}

		return nil
	}

	return write(opts.format, res, out)
}

// follow prints every gpsd fix converted from WGS-84 to the target datum.
func follow(ctx context.Context, opts options, client *gpsd.Client, out io.Writer) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}

	f, err := coord.Converter(coord.WGS84, opts.to)
	if err != nil {
		return err
	}

	err = client.Listen(ctx, func(fix gpsd.Fix) {
		fix.Position = f(fix.Position)

		switch opts.format {
		case "text":
			fmt.Fprintf(out, "%s %s alt=%.1f speed=%.1f track=%.1f\n",
				fix.Time.Format(time.RFC3339), fix.Position.String(), fix.Alt, fix.Speed, fix.Track)
		default:
			if err := write(opts.format, fix, out); err != nil {
				slog.Error("write error", "error", err)
			}
		}
	})

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func distance(opts options, s1, s2 string, out io.Writer) error {
	start, err := coord.ParseCoordinate(s1)
	if err != nil {
		return err
	}

	end, err := coord.ParseCoordinate(s2)
	if err != nil {
		return err
	}

	res := DistanceResult{
		Start:     start,
		End:       end,
		Haversine: coord.Distance(start, end),
		Bearing:   coord.Bearing(start, end),
	}

	if v := coord.DistancePlus(start, end); !math.IsNaN(v) {
		res.Vincenty = &v
	} else {
		slog.Warn("vincenty formula did not converge", "start", start.String(), "end", end.String())
	}

	if opts.format == "text" {
		vincenty := "NaN"
		if res.Vincenty != nil {
			vincenty = fmt.Sprintf("%.3f", *res.Vincenty)
		}

		fmt.Fprintf(out, "haversine: %.3f m\nvincenty: %s m\nbearing: %.2f\n", res.Haversine, vincenty, res.Bearing)

		return nil
	}

	return write(opts.format, res, out)
}

func convertGeoJSON(opts options, in io.Reader, out io.Writer) error {
	var (
		data []byte
		err  error
	)

	if opts.geoJSON == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(opts.geoJSON)
	}

	if err != nil {
		return err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("bad geojson: %w", err)
	}

	res, err := coord.ConvertFeatureCollection(fc, opts.from, opts.to)
	if err != nil {
		return err
	}

	b, err := res.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func write(format string, v any, out io.Writer) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func readLines(in io.Reader) ([]string, error) {
	var res []string

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" && !strings.HasPrefix(s, "#") {
			res = append(res, s)
		}
	}

	return res, sc.Err()
}
