package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for settings files whose extension is not
// .yaml, .yml or .json.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// decoders maps a lower-case file extension to its decoder.
var decoders = map[string]func([]byte) (Config, error){
	".yaml": FromYAML,
	".yml":  FromYAML,
	".json": FromJSON,
}

// FromFile reads a settings file, choosing the decoder by extension.
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fromBytes, ok := decoders[ext]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read settings: %w", err)
	}
	return fromBytes(data)
}

// FromYAML decodes a YAML mapping. An empty document yields an empty Config.
func FromYAML(data []byte) (Config, error) {
	return decode(yaml.Unmarshal, "yaml", data)
}

// FromJSON decodes a JSON object.
func FromJSON(data []byte) (Config, error) {
	return decode(json.Unmarshal, "json", data)
}

func decode(unmarshal func([]byte, any) error, format string, data []byte) (Config, error) {
	var m map[string]any
	if err := unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("decode %s settings: %w", format, err)
	}
	return New(m), nil
}

// Load reads, converts and validates a settings file.
func Load(path string) (Settings, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	s := FromConfig(cfg)
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
