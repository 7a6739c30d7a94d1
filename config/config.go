// Package config holds the immutable run configuration for the unframe
// pipeline. A Config is built once per invocation and passed by value into
// every per-image task; nothing in here is mutated after Load returns.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Detection configures the border scanner and corner estimator.
type Detection struct {
	Threshold      int     `koanf:"threshold"`       // transition trigger: sum of per-channel absolute differences
	SearchFraction float64 `koanf:"search_fraction"` // scan depth as a fraction of min(width, height)
	MinAreaRatio   float64 `koanf:"min_area_ratio"`  // reject quads smaller than this fraction of the image
	Slack          float64 `koanf:"slack"`           // pixels a corner may fall outside the image rectangle
}

// Output configures how output dimensions are derived from the detected quad.
// Width/Height force exact dimensions when both are positive; otherwise the
// dimensions come from the quad extents, padded to AspectW:AspectH (when both
// are positive) and scaled down to fit MaxWidth/MaxHeight (when positive).
type Output struct {
	Width     int     `koanf:"width"`
	Height    int     `koanf:"height"`
	AspectW   float64 `koanf:"aspect_w"`
	AspectH   float64 `koanf:"aspect_h"`
	MaxWidth  int     `koanf:"max_width"`
	MaxHeight int     `koanf:"max_height"`
}

// Sampling selects the pixel interpolation rule used by the rectifier.
type Sampling struct {
	Filter string `koanf:"filter"` // "bilinear" or "nearest"
}

// Config is the full run configuration.
type Config struct {
	Detection Detection `koanf:"detection"`
	Output    Output    `koanf:"output"`
	Sampling  Sampling  `koanf:"sampling"`
	Workers   int       `koanf:"workers"` // batch pool size; 0 means number of CPUs
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Detection: Detection{
			Threshold:      DefaultThreshold,
			SearchFraction: DefaultSearchFraction,
			MinAreaRatio:   DefaultMinAreaRatio,
			Slack:          DefaultSlack,
		},
		Output: Output{
			AspectW:   DefaultAspectW,
			AspectH:   DefaultAspectH,
			MaxWidth:  DefaultMaxWidth,
			MaxHeight: DefaultMaxHeight,
		},
		Sampling: Sampling{Filter: "bilinear"},
	}
}

// Load merges an optional YAML file (a missing file is not an error) with
// env vars (prefix `UNFRAME__`, delimiter `__`) on top of the defaults.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading config file: %w", err)
		}
	}

	// The callback rewrites UNFRAME__DETECTION__THRESHOLD to
	// detection.threshold, so the provider must split on "." to nest it.
	_ = k.Load(env.Provider("UNFRAME__", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "UNFRAME__")), "__", ".")
	}), nil)

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.Detection.Threshold <= 0 {
		c.Detection.Threshold = DefaultThreshold
	}
	if c.Detection.SearchFraction <= 0 || c.Detection.SearchFraction > 1 {
		c.Detection.SearchFraction = DefaultSearchFraction
	}
	if c.Detection.MinAreaRatio <= 0 {
		c.Detection.MinAreaRatio = DefaultMinAreaRatio
	}
	if c.Detection.Slack < 0 {
		c.Detection.Slack = DefaultSlack
	}
	if c.Sampling.Filter == "" {
		c.Sampling.Filter = "bilinear"
	}
}
