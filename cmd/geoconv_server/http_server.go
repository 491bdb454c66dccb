package main

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kdudkov/geoconv/pkg/coord"
	"github.com/kdudkov/geoconv/pkg/log"
)

const geoJSONContentType = "application/geo+json"

type DistanceResponse struct {
	Haversine float64  `json:"haversine"`
	Vincenty  *float64 `json:"vincenty"`
	Converged bool     `json:"converged"`
	Bearing   float64  `json:"bearing"`
}

func NewHttp(app *App) *fiber.App {
	srv := fiber.New(fiber.Config{
		EnablePrintRoutes:     false,
		DisableStartupMessage: true,
		BodyLimit:             app.cfg.BodyLimit(),
		ErrorHandler:          errorHandler,
	})

	srv.Use(log.NewFiberLogger(&log.LoggerConfig{
		Name:          "api",
		DoMetrics:     app.cfg.Metrics(),
		LogErrorsOnly: !app.cfg.LogRequests(),
	}))

	srv.Get("/version", getVersionHandler())
	srv.Get("/datums", getDatumsHandler(app))
	srv.Get("/convert", getConvertHandler(app))
	srv.Post("/convert", getConvertBatchHandler(app))
	srv.Post("/geojson", getGeoJSONHandler(app))
	srv.Get("/distance", getDistanceHandler())

	if app.cfg.Metrics() {
		srv.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	return srv
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func getVersionHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"version": getVersion()})
	}
}

func getDatumsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"datums": coord.Datums(),
			"from":   app.defaultFrom,
			"to":     app.defaultTo,
		})
	}
}

func getConvertHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		from, to, err := app.datums(ctx)
		if err != nil {
			return err
		}

		c, err := pointFromQuery(ctx)
		if err != nil {
			return err
		}

		res, err := coord.Convert(c, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		pointsMetric.WithLabelValues(from.String(), to.String()).Inc()

		return ctx.JSON(res)
	}
}

func getConvertBatchHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		from, to, err := app.datums(ctx)
		if err != nil {
			return err
		}

		var points []coord.Coordinate
		if err := ctx.BodyParser(&points); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "bad body: "+err.Error())
		}

		if app.maxPoints > 0 && len(points) > app.maxPoints {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge,
				"too many points: "+strconv.Itoa(len(points))+" > "+strconv.Itoa(app.maxPoints))
		}

		res, err := coord.ConvertAll(points, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		pointsMetric.WithLabelValues(from.String(), to.String()).Add(float64(len(res)))
		app.logger.Debug("batch converted", "from", from, "to", to, "points", len(res))

		return ctx.JSON(res)
	}
}

func getGeoJSONHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		from, to, err := app.datums(ctx)
		if err != nil {
			return err
		}

		fc, err := geojson.UnmarshalFeatureCollection(ctx.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "bad geojson: "+err.Error())
		}

		res, err := coord.ConvertFeatureCollection(fc, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		b, err := res.MarshalJSON()
		if err != nil {
			return err
		}

		featuresMetric.WithLabelValues(from.String(), to.String()).Add(float64(len(res.Features)))

		ctx.Set(fiber.HeaderContentType, geoJSONContentType)

		return ctx.Send(b)
	}
}

func getDistanceHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start, err := coord.ParseCoordinate(ctx.Query("from"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from: "+err.Error())
		}

		end, err := coord.ParseCoordinate(ctx.Query("to"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to: "+err.Error())
		}

		res := DistanceResponse{
			Haversine: coord.Distance(start, end),
			Bearing:   coord.Bearing(start, end),
		}

		// json has no NaN
		if v := coord.DistancePlus(start, end); !math.IsNaN(v) {
			res.Vincenty = &v
			res.Converged = true
		}

		distanceMetric.WithLabelValues(strconv.FormatBool(res.Converged)).Inc()

		return ctx.JSON(res)
	}
}

func (app *App) datums(ctx *fiber.Ctx) (coord.Datum, coord.Datum, error) {
	from, to := app.defaultFrom, app.defaultTo

	if s := ctx.Query("from"); s != "" {
		d, err := coord.ParseDatum(s)
		if err != nil {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		from = d
	}

	if s := ctx.Query("to"); s != "" {
		d, err := coord.ParseDatum(s)
		if err != nil {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		to = d
	}

	return from, to, nil
}

// pointFromQuery reads either point=lon,lat or lon= and lat= parameters.
func pointFromQuery(ctx *fiber.Ctx) (coord.Coordinate, error) {
	if s := ctx.Query("point"); s != "" {
		c, err := coord.ParseCoordinate(s)
		if err != nil {
			return c, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c, nil
	}

	lon, err := strconv.ParseFloat(ctx.Query("lon"), 64)
	if err != nil {
		return coord.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "bad lon: "+ctx.Query("lon"))
	}

	lat, err := strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil {
		return coord.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "bad lat: "+ctx.Query("lat"))
	}

	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return coord.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "coordinates must be finite")
	}

	return coord.NewCoordinate(lon, lat), nil
}
