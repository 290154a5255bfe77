package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zb140/nativefs/cmd/nativefs/opts"
	"github.com/zb140/nativefs/pkg/operation"
)

// NewMoveCmd creates a new move command
func NewMoveCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move SOURCE... DESTINATION",
		Short: "Move files to a new location",
		Long: `Move relocates each source file.
It will:
1. Expand glob patterns (including **) to source files
2. Rename in place when source and destination share a device
3. Stream the bytes and then delete the source otherwise
4. Leave the source untouched whenever a transfer fails`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "move").Logger().WithContext(ctx)

			return runTransfers(ctx, ro, operation.KindMove, args)
		},
	}

	return cmd
}
