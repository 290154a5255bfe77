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

	"github.com/Netflix/go-env"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🌱 environment captures NATIVEFS_* variables. Unset variables stay nil.
type environment struct {
	BufferSize  *int    `env:"NATIVEFS_BUFFER_SIZE"`
	Concurrency *int    `env:"NATIVEFS_CONCURRENCY"`
	LogLevel    *string `env:"NATIVEFS_LOG_LEVEL"`
	Progress    *bool   `env:"NATIVEFS_PROGRESS"`
}

// 🌱 ApplyEnv overlays NATIVEFS_* environment variables onto cfg.
// Variables that are not set leave the corresponding field untouched.
func ApplyEnv(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)

	var e environment
	if _, err := env.UnmarshalFromEnviron(&e); err != nil {
		return errors.Errorf("reading environment: %w", err)
	}

	if e.BufferSize != nil {
		cfg.BufferSize = *e.BufferSize
		logger.Debug().Int("buffer_size", cfg.BufferSize).Msg("buffer size overridden from environment")
	}
	if e.Concurrency != nil {
		cfg.Concurrency = *e.Concurrency
		logger.Debug().Int("concurrency", cfg.Concurrency).Msg("concurrency overridden from environment")
	}
	if e.LogLevel != nil {
		cfg.LogLevel = *e.LogLevel
		logger.Debug().Str("log_level", cfg.LogLevel).Msg("log level overridden from environment")
	}
	if e.Progress != nil {
		cfg.Progress = e.Progress
		logger.Debug().Bool("progress", *e.Progress).Msg("progress overridden from environment")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	return nil
}
