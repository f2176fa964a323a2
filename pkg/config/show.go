package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/warforge/pkg/errors"
)

// Format is a serialization for the effective configuration.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts toml, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown config format %q", s).
		WithDetail("allowed", "toml, yaml")
}

// Render serializes the configuration.
func Render(cfg *Config, format Format) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = yaml.Marshal(cfg)
	default:
		out, err = toml.Marshal(cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot render configuration as %s", format)
	}
	return out, nil
}
