// Package operation exposes file copy and move as asynchronous operations
// with trackable handles
package operation

import (
	"context"

	"github.com/zb140/nativefs/pkg/fsio"
	"github.com/zb140/nativefs/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator is the entry point for starting transfers
type Operator interface {
	// Copy starts an asynchronous file copy and returns its handle
	Copy(ctx context.Context, source, destination string, hooks transfer.Hooks) *Operation
	// Move starts an asynchronous file move and returns its handle
	Move(ctx context.Context, source, destination string, hooks transfer.Hooks) *Operation
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// FS supplies the primitive file operations. Defaults to the host filesystem.
	FS fsio.FS
	// BufferSize is the chunk size in bytes for streamed transfers.
	// Defaults to transfer.DefaultBufferSize.
	BufferSize int
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	engine, err := transfer.New(transfer.Options{
		FS:         opts.FS,
		BufferSize: opts.BufferSize,
	})
	if err != nil {
		return nil, errors.Errorf("creating transfer engine: %w", err)
	}
	return &operator{engine: engine}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	engine *transfer.Engine
}

func (o *operator) Copy(ctx context.Context, source, destination string, hooks transfer.Hooks) *Operation {
	return o.start(ctx, KindCopy, source, destination, hooks)
}

func (o *operator) Move(ctx context.Context, source, destination string, hooks transfer.Hooks) *Operation {
	return o.start(ctx, KindMove, source, destination, hooks)
}
