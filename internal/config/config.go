package config

import (
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kdudkov/geoconv/pkg/coord"
)

const envPrefix = "GEOCONV"

type AppConfig struct {
	v *viper.Viper
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{v: viper.New()}

	setDefaults(c.v)

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	return c
}

// Load reads the first config file that can be read. Missing files are not an error.
func (c *AppConfig) Load(filename ...string) bool {
	for _, name := range filename {
		c.v.SetConfigFile(name)

		if err := c.v.ReadInConfig(); err != nil {
			slog.Info("error loading config", slog.String("file", name), slog.Any("error", err))
			continue
		}

		slog.Info("config loaded", slog.String("file", name))

		return true
	}

	return false
}

// Watch calls f every time the loaded config file changes.
func (c *AppConfig) Watch(f func(c *AppConfig)) {
	c.v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config changed", slog.String("file", e.Name), slog.String("op", e.Op.String()))
		f(c)
	})
	c.v.WatchConfig()
}

func (c *AppConfig) Set(key string, v any) {
	c.v.Set(key, v)
}

func (c *AppConfig) Bool(key string) bool {
	return c.v.GetBool(key)
}

func (c *AppConfig) String(key string) string {
	return c.v.GetString(key)
}

func (c *AppConfig) Int(key string) int {
	return c.v.GetInt(key)
}

func (c *AppConfig) Addr() string {
	return c.v.GetString("addr")
}

func (c *AppConfig) Debug() bool {
	return c.v.GetBool("debug")
}

func (c *AppConfig) LogLevel() slog.Level {
	if c.Debug() {
		return slog.LevelDebug
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(c.v.GetString("log_level"))); err != nil {
		return slog.LevelInfo
	}

	return l
}

func (c *AppConfig) LogRequests() bool {
	return c.v.GetBool("log_requests")
}

func (c *AppConfig) Metrics() bool {
	return c.v.GetBool("metrics")
}

// MaxPoints limits number of points in one batch request.
func (c *AppConfig) MaxPoints() int {
	return c.v.GetInt("max_points")
}

func (c *AppConfig) BodyLimit() int {
	return c.v.GetInt("body_limit")
}

// DefaultDatums returns source and target datums used when request does not specify them.
func (c *AppConfig) DefaultDatums() (coord.Datum, coord.Datum, error) {
	from, err := coord.ParseDatum(c.v.GetString("datum.from"))
	if err != nil {
		return 0, 0, err
	}

	to, err := coord.ParseDatum(c.v.GetString("datum.to"))
	if err != nil {
		return 0, 0, err
	}

	return from, to, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_requests", true)
	v.SetDefault("metrics", true)

	v.SetDefault("max_points", 10000)
	v.SetDefault("body_limit", 4*1024*1024)

	v.SetDefault("datum.from", "wgs84")
	v.SetDefault("datum.to", "gcj02")
}
