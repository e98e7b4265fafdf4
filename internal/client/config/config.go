package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
)

// Config holds runtime settings for the jobtracker CLI.
//
// Fields:
//   - APIURL: base URL of the tracker API; request paths are appended to it.
//   - DBPath: SQLite file that keeps the credential pair between runs.
//   - RequestTimeout: transport timeout of a single HTTP exchange.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - LogLevel: minimum level of diagnostic logs written to stderr.
type Config struct {
	APIURL              string
	DBPath              string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:8080/api"
	c.DBPath = "tracker.db"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.LogLevel = "warn"
}

// SlogLevel maps LogLevel onto slog; unknown names mean warn.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON or YAML file (if given) and command-line flags
// (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseEnv(cfg, os.LookupEnv)
	parseConfigFile(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}

// parseConfigFile overlays Config with the file named by -c or -config in
// args, read as YAML for .yaml/.yml and as JSON otherwise. Without such a
// flag nothing happens.
func parseConfigFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parseYaml(cfg, path)
	default:
		parseJson(cfg, path)
	}
}
