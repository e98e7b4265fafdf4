package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YamlConfig mirrors JsonConfig for YAML files. Durations are strings in
// time.ParseDuration form ("15s", "500ms").
type YamlConfig struct {
	APIURL              *string `yaml:"api_url"`
	DBPath              *string `yaml:"db_path"`
	RequestTimeout      *string `yaml:"request_timeout"`
	OnlineCheckInterval *string `yaml:"online_check_interval"`
	LogLevel            *string `yaml:"log_level"`
}

// parseYaml overlays Config with values loaded from the YAML file at path.
// Panics on read, unmarshal or duration errors.
func parseYaml(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var yc YamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		panic(err)
	}

	if yc.APIURL != nil {
		cfg.APIURL = *yc.APIURL
	}
	if yc.DBPath != nil {
		cfg.DBPath = *yc.DBPath
	}
	if yc.RequestTimeout != nil {
		cfg.RequestTimeout = mustDuration("request_timeout", *yc.RequestTimeout)
	}
	if yc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = mustDuration("online_check_interval", *yc.OnlineCheckInterval)
	}
	if yc.LogLevel != nil {
		cfg.LogLevel = *yc.LogLevel
	}
}
