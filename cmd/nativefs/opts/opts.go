package opts

import (
	"github.com/zb140/nativefs/pkg/config"
	"github.com/zb140/nativefs/pkg/log"
	"github.com/zb140/nativefs/pkg/operation"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config   *config.Config
	Operator operation.Operator
	Console  *log.Logger
}
