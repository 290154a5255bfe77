package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zb140/nativefs/cmd/nativefs/opts"
	"github.com/zb140/nativefs/pkg/operation"
)

// NewCopyCmd creates a new copy command
func NewCopyCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy SOURCE... DESTINATION",
		Short: "Copy files to a new location",
		Long: `Copy streams each source file to the destination.
It will:
1. Expand glob patterns (including **) to source files
2. Stream every file through the transfer engine
3. Report progress roughly once per percent of each file
4. Flush each destination to stable storage before finishing`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "copy").Logger().WithContext(ctx)

			return runTransfers(ctx, ro, operation.KindCopy, args)
		},
	}

	return cmd
}
