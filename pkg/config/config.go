// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

const (
	// ⚖️ DefaultConcurrency caps in-flight operations when the config does not say otherwise
	DefaultConcurrency = 4

	// 📢 DefaultLogLevel is used when the config does not name a level
	DefaultLogLevel = "info"
)

// 📚 Config represents the complete configuration
type Config struct {
	BufferSize  int    `json:"buffer_size,omitempty" yaml:"buffer_size,omitempty"`  // Copy buffer size in bytes (0 = engine default)
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`  // Max operations in flight (0 = default)
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty"`      // zerolog level name
	Progress    *bool  `json:"progress,omitempty" yaml:"progress,omitempty"`        // Progress reporting toggle (nil = enabled)
}

// 🎯 Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
		LogLevel:    DefaultLogLevel,
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🗺️ discoverNames lists the file names Discover probes, in priority order
var discoverNames = []string{".nativefs.hcl", ".nativefs.yaml", ".nativefs.yml", ".nativefs.json"}

// 🔍 Discover looks for a well-known config file in dir
func Discover(ctx context.Context, dir string) (string, bool) {
	logger := zerolog.Ctx(ctx)
	for _, name := range discoverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		logger.Debug().Str("path", path).Msg("discovered config file")
		return path, true
	}
	return "", false
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	// Check bounds
	if cfg.BufferSize < 0 {
		return errors.Errorf("buffer_size must not be negative, got %d", cfg.BufferSize)
	}
	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}

	// Set defaults
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	return nil
}

// 🔍 ProgressEnabled reports whether progress reporting is requested
func (cfg *Config) ProgressEnabled() bool {
	return cfg.Progress == nil || *cfg.Progress
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	buffer := "default"
	if cfg.BufferSize > 0 {
		buffer = strconv.Itoa(cfg.BufferSize)
	}
	return fmt.Sprintf("buffer=%s concurrency=%d log_level=%s progress=%t", buffer, cfg.Concurrency, cfg.LogLevel, cfg.ProgressEnabled())
}
