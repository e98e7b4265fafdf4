package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL              = "JOBTRACKER_API_URL"
	envDBPath              = "JOBTRACKER_DB_PATH"
	envRequestTimeout      = "JOBTRACKER_REQUEST_TIMEOUT"
	envOnlineCheckInterval = "JOBTRACKER_ONLINE_CHECK_INTERVAL"
	envLogLevel            = "JOBTRACKER_LOG_LEVEL"
)

// loadDotEnv copies variables from the given .env file into the process
// environment. Variables already set in the environment are not overridden.
// A missing file is not an error; a malformed one panics.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays Config with JOBTRACKER_* variables found through lookup.
// Invalid durations panic, like malformed JSON or flags do.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(envAPIURL); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := lookup(envDBPath); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup(envRequestTimeout); ok && v != "" {
		cfg.RequestTimeout = mustDuration(envRequestTimeout, v)
	}
	if v, ok := lookup(envOnlineCheckInterval); ok && v != "" {
		cfg.OnlineCheckInterval = mustDuration(envOnlineCheckInterval, v)
	}
	if v, ok := lookup(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return d
}
