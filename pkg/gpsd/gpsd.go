package gpsd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/kdudkov/geoconv/pkg/coord"
)

const (
	DefaultAddress = "localhost:2947"
	DialTimeout    = time.Millisecond * 500

	maxReconnectTimeout = time.Minute
	watchCommand        = "?WATCH={\"enable\":true,\"json\":true}\n"
)

// gpsd fix modes
const (
	ModeUnknown = iota
	ModeNoFix
	Mode2D
	Mode3D
)

type baseMsg struct {
	Class string `json:"class"`
}

type tpvMsg struct {
	Class  string    `json:"class"`
	Device string    `json:"device"`
	Mode   int       `json:"mode"`
	Time   time.Time `json:"time"`
	Lat    float64   `json:"lat"`
	Lon    float64   `json:"lon"`
	Alt    float64   `json:"alt"`
	Track  float64   `json:"track"`
	Speed  float64   `json:"speed"`
	Eph    float64   `json:"eph"`
}

type versionMsg struct {
	Release string `json:"release"`
	Rev     string `json:"rev"`
}

// Fix is a position report from gpsd. Position is always WGS-84.
type Fix struct {
	Time     time.Time        `json:"time" yaml:"time"`
	Device   string           `json:"device" yaml:"device"`
	Mode     int              `json:"mode" yaml:"mode"`
	Position coord.Coordinate `json:"position" yaml:"position"`
	Alt      float64          `json:"alt" yaml:"alt"`
	Speed    float64          `json:"speed" yaml:"speed"`
	Track    float64          `json:"track" yaml:"track"`
	Eph      float64          `json:"eph" yaml:"eph"`
}

type Client struct {
	addr   string
	dialer net.Dialer
	logger *slog.Logger
}

func New(addr string, logger *slog.Logger) *Client {
	if addr == "" {
		addr = DefaultAddress
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		addr:   addr,
		dialer: net.Dialer{Timeout: DialTimeout},
		logger: logger.With("logger", "gpsd", "addr", addr),
	}
}

func (c *Client) connect(ctx context.Context) (net.Conn, error) {
	timeout := time.Second * 5

	for {
		conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
		if err == nil {
			if _, err := fmt.Fprint(conn, watchCommand); err != nil {
				_ = conn.Close()
				return nil, err
			}

			return conn, nil
		}

		c.logger.Error("dial error", "error", err)

		select {
		case <-time.After(timeout):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		if timeout < maxReconnectTimeout {
			timeout *= 2
		}
	}
}

// Listen calls cb for every fix with at least 2D position until ctx is done.
// Connection is reestablished on errors.
func (c *Client) Listen(ctx context.Context, cb func(f Fix)) error {
	for ctx.Err() == nil {
		conn, err := c.connect(ctx)
		if err != nil {
			return err
		}

		c.read(ctx, conn, cb)
		_ = conn.Close()
	}

	return ctx.Err()
}

func (c *Client) read(ctx context.Context, conn net.Conn, cb func(f Fix)) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	reader := bufio.NewReader(conn)

	for ctx.Err() == nil {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() == nil {
				c.logger.Error("read error", "error", err)
			}

			return
		}

		fix, ok, err := c.parse(line)
		if err != nil {
			c.logger.Error("JSON decode error", "error", err)
			c.logger.Debug("bad json: " + string(line))

			continue
		}

		if ok && cb != nil {
			cb(fix)
		}
	}
}

// parse returns ok for TPV messages with a usable fix.
func (c *Client) parse(data []byte) (Fix, bool, error) {
	var msg baseMsg

	if err := json.Unmarshal(data, &msg); err != nil {
		return Fix{}, false, err
	}

	switch msg.Class {
	case "TPV":
		var r tpvMsg
		if err := json.Unmarshal(data, &r); err != nil {
			return Fix{}, false, err
		}

		if r.Mode < Mode2D {
			return Fix{}, false, nil
		}

		return Fix{
			Time:     r.Time,
			Device:   r.Device,
			Mode:     r.Mode,
			Position: coord.NewCoordinate(r.Lon, r.Lat),
			Alt:      r.Alt,
			Speed:    r.Speed,
			Track:    r.Track,
			Eph:      r.Eph,
		}, true, nil
	case "VERSION":
		var r versionMsg
		if err := json.Unmarshal(data, &r); err != nil {
			return Fix{}, false, err
		}

		c.logger.Info(fmt.Sprintf("got version %s, rev. %s", r.Release, r.Rev))
	}

	return Fix{}, false, nil
}
