/*
Package config loads calculator settings from YAML or JSON files.

# Overview

Settings files are flat maps. Values are read through Config, a typed view of
map[string]any that falls back to a default when a key is missing or holds a
value of the wrong type. Load turns a file into Settings and validates it.

# Keys

	history_limit          int       entries kept on screen and restored (6)
	history_path           string    SQLite database for history, "" keeps it in memory
	history_busy_timeout   duration  SQLite busy timeout ("5s")
	log_level              string    debug, info, warn or error ("info")
	log_format             string    text or json ("text")
	metrics                bool      record OpenTelemetry metrics (false)
	tracing                bool      record OpenTelemetry spans (false)
	max_depth              int       nesting limit for parentheses, signs and powers, 0 for none (200)

# File Loading

	settings, err := config.Load("calculator.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or work with the raw map
	cfg, err := config.FromYAML(yamlBytes)
	limit := cfg.Int("history_limit", 6)

Durations accept strings such as "250ms" or a number of seconds.
*/
package config
