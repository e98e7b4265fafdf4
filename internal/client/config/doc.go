// Package config loads runtime configuration for the jobtracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: an optional .env file in the working directory, then
//     JOBTRACKER_* variables (see parseEnv).
//  3. Optional config file selected via -c or -config: YAML when the name
//     ends in .yaml or .yml (see parseYaml), JSON otherwise (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the tracker API
//	-d string   path of the local SQLite database holding the session
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
// Durations are timex.Duration values, so they can be either strings like
// "15s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8080/api",
//	  "db_path": "tracker.db",
//	  "request_timeout": "15s",
//	  "online_check_interval": "5s",
//	  "log_level": "warn"
//	}
//
// # YAML schema
//
// Same keys; durations are strings only:
//
//	api_url: http://localhost:8080/api
//	request_timeout: 15s
//
// # Environment
//
//	JOBTRACKER_API_URL, JOBTRACKER_DB_PATH, JOBTRACKER_REQUEST_TIMEOUT,
//	JOBTRACKER_ONLINE_CHECK_INTERVAL, JOBTRACKER_LOG_LEVEL
//
// Duration variables use Go duration syntax ("15s").
package config
