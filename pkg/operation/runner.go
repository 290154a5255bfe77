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

package operation

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zb140/nativefs/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind distinguishes the two operation flavors
type Kind string

const (
	KindCopy Kind = "copy"
	KindMove Kind = "move"
)

// 🎫 Operation is the handle to one in-flight transfer. It carries no abort
// switch: a started operation always runs to its terminal outcome.
type Operation struct {
	id          string
	kind        Kind
	source      string
	destination string

	done chan struct{}
	err  error // written once, before done is closed
}

// ID returns the unique identifier of this operation
func (o *Operation) ID() string { return o.id }

// Kind returns whether this operation is a copy or a move
func (o *Operation) Kind() Kind { return o.kind }

// Source returns the source path
func (o *Operation) Source() string { return o.source }

// Destination returns the destination path
func (o *Operation) Destination() string { return o.destination }

// Done returns a channel that is closed once the operation has its outcome
func (o *Operation) Done() <-chan struct{} { return o.done }

// Err returns the terminal error, or nil while the operation is running
func (o *Operation) Err() error {
	select {
	case <-o.done:
		return o.err
	default:
		return nil
	}
}

// 🏃 Wait blocks until the operation completes or ctx expires. The operation
// keeps running either way; an early return only stops the waiting.
func (o *Operation) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return errors.Errorf("waiting for %s operation: %w", o.kind, ctx.Err())
	case <-o.done:
		return o.err
	}
}

// ⚡ start launches the blocking transfer on its own goroutine and returns
// the handle immediately. Progress reporting is on exactly when the caller
// supplied an OnProgress hook.
func (op *operator) start(ctx context.Context, kind Kind, source, destination string, hooks transfer.Hooks) *Operation {
	oper := &Operation{
		id:          uuid.NewString(),
		kind:        kind,
		source:      source,
		destination: destination,
		done:        make(chan struct{}),
	}

	req := transfer.Request{
		SourcePath:      source,
		DestinationPath: destination,
		ReportProgress:  hooks.OnProgress != nil,
	}

	logger := zerolog.Ctx(ctx).With().
		Str("operation_id", oper.id).
		Str("kind", string(kind)).
		Logger()
	ctx = logger.WithContext(ctx)

	go func() {
		defer close(oper.done)

		// The engine delivers the outcome to hooks exactly once; the handle
		// records the same error for Wait and Err.
		switch kind {
		case KindMove:
			oper.err = op.engine.Move(ctx, req, hooks)
		default:
			oper.err = op.engine.Copy(ctx, req, hooks)
		}
	}()

	return oper
}
