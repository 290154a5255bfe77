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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zb140/nativefs/cmd/nativefs/commands"
	"github.com/zb140/nativefs/cmd/nativefs/opts"
)

func main() {
	// Setup logging with defaults; refined once flags are parsed
	setupLogging(zerolog.InfoLevel)
	ctx := zerolog.DefaultContextLogger.WithContext(context.Background())

	// Shared options, filled in after flag parsing
	ro := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "nativefs",
		Short: "Copy and move files with progress reporting",
		Long: `nativefs copies and moves files through a streaming transfer engine.
Progress is sampled as the bytes flow, moves take an atomic rename fast
path when source and destination share a device, and every outcome is
reported exactly once.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			initialized, err := newRootOpts(cmd.Context())
			if err != nil {
				return err
			}
			*ro = *initialized
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewCopyCmd(ro),
		commands.NewMoveCmd(ro),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
